/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package opstore implements the anchored operation store. Operations are
// keyed by DID unique suffix and ordered by their blockchain-confirmed
// position so that a DID document can be deterministically replayed.
package opstore

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/trustbloc/sidetree-node-go/pkg/api/operation"
	"github.com/trustbloc/sidetree-node-go/internal/log"
)

var logger = log.New("sidetree-node-opstore")

// ErrConflict is returned from Put when an operation carries the same
// (suffix, transaction number, operation index) key as a stored operation but
// a different payload. Byte-identical duplicates are silently suppressed.
var ErrConflict = errors.New("operation conflicts with stored operation")

const keySeparator = byte(0x00)

// Store is a LevelDB-backed anchored operation store. It is safe for
// concurrent use; the key encoding is the sole uniqueness mechanism, so racing
// writers of the same operation converge on a single stored record.
type Store struct {
	db *leveldb.DB
}

// New opens the store at the given path, creating it on first use.
func New(path string) (*Store, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "open operation store[%s]", path)
	}

	logger.Debug("Opened operation store", log.WithStorePath(path))

	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put stores all of the given operations. Put is idempotent: an operation
// whose key and payload are already stored is silently ignored. A stored
// operation with the same key but a different payload fails the batch with
// ErrConflict. Any other storage failure propagates unmodified and may leave
// previously committed operations from earlier calls in place; retry policy
// belongs to the caller.
func (s *Store) Put(ctx context.Context, ops []*operation.AnchoredOperation) error {
	batch := new(leveldb.Batch)

	for _, op := range ops {
		if err := ctx.Err(); err != nil {
			return err
		}

		key := operationKey(op.UniqueSuffix, op.TransactionNumber, op.OperationIndex)

		value, err := marshalOperation(op)
		if err != nil {
			return err
		}

		stored, err := s.db.Get(key, nil)
		if err == nil {
			if bytes.Equal(stored, value) {
				logger.Debug("Ignoring duplicate operation",
					log.WithSuffix(op.UniqueSuffix),
					log.WithTransactionNumber(op.TransactionNumber))

				continue
			}

			return errors.Wrapf(ErrConflict, "suffix[%s] transaction number[%d] operation index[%d]",
				op.UniqueSuffix, op.TransactionNumber, op.OperationIndex)
		}

		if err != leveldb.ErrNotFound {
			return errors.Wrap(err, "read stored operation")
		}

		batch.Put(key, value)
	}

	if err := s.db.Write(batch, nil); err != nil {
		return errors.Wrap(err, "write operation batch")
	}

	logger.Debug("Stored operations", log.WithTotalOperations(len(ops)))

	return nil
}

// Get returns all stored operations for the given suffix, ascending by
// (transaction number, operation index). An unknown suffix yields an empty
// result, not an error.
func (s *Store) Get(ctx context.Context, uniqueSuffix string) ([]*operation.AnchoredOperation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var ops []*operation.AnchoredOperation

	iter := s.Iterator(uniqueSuffix)
	defer iter.Release()

	for iter.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		ops = append(ops, iter.Operation())
	}

	if err := iter.Error(); err != nil {
		return nil, err
	}

	return ops, nil
}

// Rollback deletes every stored operation whose transaction number is strictly
// greater than the given value. A nil value resets the store completely. This
// reconciles a detected chain reorganization: everything anchored after the
// last-known-good transaction is discarded so it can be re-derived from the
// canonical chain.
func (s *Store) Rollback(ctx context.Context, greaterThan *uint64) error {
	iter := s.db.NewIterator(nil, nil)
	defer iter.Release()

	batch := new(leveldb.Batch)
	deleted := 0

	for iter.Next() {
		if err := ctx.Err(); err != nil {
			return err
		}

		if greaterThan != nil {
			_, txnNumber, _, err := parseOperationKey(iter.Key())
			if err != nil {
				return err
			}

			if txnNumber <= *greaterThan {
				continue
			}
		}

		key := make([]byte, len(iter.Key()))
		copy(key, iter.Key())
		batch.Delete(key)
		deleted++
	}

	if err := iter.Error(); err != nil {
		return errors.Wrap(err, "iterate operations for rollback")
	}

	if err := s.db.Write(batch, nil); err != nil {
		return errors.Wrap(err, "delete rolled back operations")
	}

	logger.Info("Rolled back operations", log.WithTotalOperations(deleted))

	return nil
}

// operationKey encodes the composite ordering key. Transaction number and
// operation index are big-endian so lexicographic key order equals numeric
// order. Suffixes are printable encodings and never contain the separator.
func operationKey(uniqueSuffix string, txnNumber uint64, opIndex uint32) []byte {
	key := make([]byte, 0, len(uniqueSuffix)+13)
	key = append(key, uniqueSuffix...)
	key = append(key, keySeparator)

	var num [8]byte

	binary.BigEndian.PutUint64(num[:], txnNumber)
	key = append(key, num[:]...)

	var idx [4]byte

	binary.BigEndian.PutUint32(idx[:], opIndex)

	return append(key, idx[:]...)
}

func parseOperationKey(key []byte) (string, uint64, uint32, error) {
	if len(key) < 13 {
		return "", 0, 0, errors.Errorf("operation key too short: %d bytes", len(key))
	}

	sep := len(key) - 13
	if key[sep] != keySeparator {
		return "", 0, 0, errors.New("operation key separator not found")
	}

	return string(key[:sep]),
		binary.BigEndian.Uint64(key[sep+1 : sep+9]),
		binary.BigEndian.Uint32(key[sep+9:]),
		nil
}

// marshalOperation and unmarshalOperation are the only conversions between the
// persisted representation and the operation record; untyped database values
// never travel past this boundary.
func marshalOperation(op *operation.AnchoredOperation) ([]byte, error) {
	value, err := json.Marshal(op)
	if err != nil {
		return nil, errors.Wrapf(err, "marshal operation for suffix[%s]", op.UniqueSuffix)
	}

	return value, nil
}

func unmarshalOperation(value []byte) (*operation.AnchoredOperation, error) {
	op := &operation.AnchoredOperation{}
	if err := json.Unmarshal(value, op); err != nil {
		return nil, errors.Wrap(err, "unmarshal stored operation")
	}

	return op, nil
}
