/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package opstore

import (
	ldbiterator "github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/trustbloc/sidetree-node-go/pkg/api/operation"
)

// Iterator is a lazy scan over the stored operations of one DID suffix, in
// ascending (transaction number, operation index) order. It can be restarted
// to replay the sequence from the beginning.
type Iterator struct {
	store  *Store
	prefix []byte
	iter   ldbiterator.Iterator
	op     *operation.AnchoredOperation
	err    error
}

// Iterator returns an iterator over all stored operations for the given
// suffix. An unknown suffix yields an exhausted iterator.
func (s *Store) Iterator(uniqueSuffix string) *Iterator {
	prefix := append([]byte(uniqueSuffix), keySeparator)

	return &Iterator{
		store:  s,
		prefix: prefix,
		iter:   s.db.NewIterator(util.BytesPrefix(prefix), nil),
	}
}

// Next advances to the next operation. It returns false when the sequence is
// exhausted or an error occurred; check Error to distinguish.
func (i *Iterator) Next() bool {
	if i.err != nil || !i.iter.Next() {
		i.op = nil

		return false
	}

	op, err := unmarshalOperation(i.iter.Value())
	if err != nil {
		i.err = err
		i.op = nil

		return false
	}

	i.op = op

	return true
}

// Operation returns the operation at the current position.
func (i *Iterator) Operation() *operation.AnchoredOperation {
	return i.op
}

// Error returns the first error encountered during iteration.
func (i *Iterator) Error() error {
	if i.err != nil {
		return i.err
	}

	return i.iter.Error()
}

// Restart resets the iterator to the beginning of the sequence.
func (i *Iterator) Restart() {
	i.iter.Release()

	i.iter = i.store.db.NewIterator(util.BytesPrefix(i.prefix), nil)
	i.op = nil
	i.err = nil
}

// Release frees the iterator's resources. The iterator must not be used after
// Release.
func (i *Iterator) Release() {
	i.iter.Release()
}
