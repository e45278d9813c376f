/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/pkg/errors"

	"github.com/trustbloc/sidetree-node-go/pkg/api/txn"
	"github.com/trustbloc/sidetree-node-go/pkg/blockchain"
)

// MockChainClient mocks the chain-node boundary for testing purposes. Anchors
// written to it are confirmed immediately, one block per anchor.
type MockChainClient struct {
	sync.RWMutex
	height      uint64
	blockHashes map[uint64]string
	txns        []*txn.AnchoredTransaction
	err         error
}

// NewMockChainClient creates a mock chain client.
func NewMockChainClient() *MockChainClient {
	return &MockChainClient{blockHashes: make(map[uint64]string)}
}

// CurrentHeight returns the mock chain height.
func (m *MockChainClient) CurrentHeight(_ context.Context) (uint64, error) {
	m.RLock()
	defer m.RUnlock()

	if m.err != nil {
		return 0, m.err
	}

	return m.height, nil
}

// BlockHash returns the hash at the given height.
func (m *MockChainClient) BlockHash(_ context.Context, height uint64) (string, error) {
	m.RLock()
	defer m.RUnlock()

	if m.err != nil {
		return "", m.err
	}

	hash, ok := m.blockHashes[height]
	if !ok {
		return "", errors.Wrapf(blockchain.ErrBlockNotFound, "height[%d]", height)
	}

	return hash, nil
}

// TransactionsSince returns all transactions with a number strictly greater
// than the given value.
func (m *MockChainClient) TransactionsSince(_ context.Context,
	sinceTransactionNumber uint64) ([]*txn.AnchoredTransaction, error) {
	m.RLock()
	defer m.RUnlock()

	if m.err != nil {
		return nil, m.err
	}

	var result []*txn.AnchoredTransaction

	for _, t := range m.txns {
		if t.TransactionNumber > sinceTransactionNumber {
			result = append(result, t)
		}
	}

	return result, nil
}

// WriteAnchor confirms the given anchor string in a new block.
func (m *MockChainClient) WriteAnchor(_ context.Context, anchorString string, _ uint64) error {
	m.Lock()
	defer m.Unlock()

	if m.err != nil {
		return m.err
	}

	m.height++
	m.blockHashes[m.height] = fmt.Sprintf("hash-%d", m.height)

	m.txns = append(m.txns, &txn.AnchoredTransaction{
		TransactionNumber:   blockchain.TransactionNumber(m.height, 0),
		TransactionTime:     m.height,
		TransactionTimeHash: m.blockHashes[m.height],
		AnchorString:        anchorString,
	})

	return nil
}

// Transactions returns all confirmed transactions.
func (m *MockChainClient) Transactions() []*txn.AnchoredTransaction {
	m.RLock()
	defer m.RUnlock()

	return append([]*txn.AnchoredTransaction{}, m.txns...)
}

// SetBlockHash overrides the hash at the given height, simulating a chain
// reorganization at that height.
func (m *MockChainClient) SetBlockHash(height uint64, hash string) {
	m.Lock()
	defer m.Unlock()

	m.blockHashes[height] = hash
}

// RemoveBlock removes the block at the given height.
func (m *MockChainClient) RemoveBlock(height uint64) {
	m.Lock()
	defer m.Unlock()

	delete(m.blockHashes, height)
}

// SetError injects a transport error into the mock client.
func (m *MockChainClient) SetError(err error) {
	m.Lock()
	defer m.Unlock()

	m.err = err
}
