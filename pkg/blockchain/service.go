/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package blockchain implements the synchronization protocol against the
// anchoring blockchain: reading new anchoring transactions since a checkpoint
// and detecting chain reorganizations via the checkpoint's time-hash
// commitment.
package blockchain

import (
	"context"
	"sort"

	"github.com/pkg/errors"

	"github.com/trustbloc/sidetree-node-go/pkg/api/txn"
	"github.com/trustbloc/sidetree-node-go/internal/log"
)

var logger = log.New("sidetree-node-blockchain")

// ChainClient is the boundary to the underlying blockchain node.
type ChainClient interface {
	// CurrentHeight returns the current chain height.
	CurrentHeight(ctx context.Context) (uint64, error)

	// BlockHash returns the hash the chain currently associates with the
	// given height.
	BlockHash(ctx context.Context, height uint64) (string, error)

	// TransactionsSince returns all anchoring transactions with a transaction
	// number strictly greater than the given value. A zero value returns the
	// full anchoring history.
	TransactionsSince(ctx context.Context, sinceTransactionNumber uint64) ([]*txn.AnchoredTransaction, error)

	// WriteAnchor writes the given anchor string to the chain, paying at most
	// the given fee (in the chain's smallest denomination).
	WriteAnchor(ctx context.Context, anchorString string, maxFee uint64) error
}

// Checkpoint identifies the last anchoring transaction a caller has already
// processed along with the time-hash commitment used to detect that the chain
// has not been rewritten at or before that point. Checkpoints are held by the
// caller driving synchronization; this service does not persist them.
type Checkpoint struct {
	TransactionNumber   uint64
	TransactionTimeHash string
}

// Service reads anchoring transactions from the chain.
type Service struct {
	client ChainClient
}

// New returns a synchronization service over the given chain client.
func New(client ChainClient) *Service {
	return &Service{client: client}
}

// TransactionsSince returns all anchoring transactions after the given
// checkpoint, ascending by transaction number. A nil checkpoint returns the
// full anchoring history.
//
// When a checkpoint is supplied, the hash the chain currently holds at the
// checkpoint's confirmation height is re-derived and compared against the
// checkpoint's time hash. A mismatch, or a height that no longer resolves,
// fails with ReorganizationError: the chain has been rewritten at or before
// the checkpoint and everything stored from that point on must be rolled back
// before retrying with an earlier checkpoint. Failures to reach or parse the
// chain node fail with TransportError instead; those are retryable.
//
// The transaction list is delivered atomically: the full list for the range or
// an error, never a partial result.
func (s *Service) TransactionsSince(ctx context.Context, since *Checkpoint) ([]*txn.AnchoredTransaction, error) {
	sinceTransactionNumber := uint64(0)

	if since != nil {
		if err := s.validateCheckpoint(ctx, since); err != nil {
			return nil, err
		}

		sinceTransactionNumber = since.TransactionNumber
	}

	txns, err := s.client.TransactionsSince(ctx, sinceTransactionNumber)
	if err != nil {
		return nil, NewTransportError(err)
	}

	// callers require ascending order
	sort.Slice(txns, func(i, j int) bool {
		return txns[i].TransactionNumber < txns[j].TransactionNumber
	})

	logger.Debug("Read anchoring transactions",
		log.WithSinceTransactionNumber(sinceTransactionNumber),
		log.WithTotalTransactions(len(txns)))

	return txns, nil
}

// FirstValidTransaction returns the first transaction from the given list
// whose time-hash commitment still matches the chain's current view. The
// caller passes recently processed transactions newest-first to locate the
// last-known-good checkpoint after a reorganization was detected. Nil is
// returned without error when no transaction in the list is valid.
func (s *Service) FirstValidTransaction(ctx context.Context,
	txns []*txn.AnchoredTransaction) (*txn.AnchoredTransaction, error) {
	for _, t := range txns {
		err := s.validateCheckpoint(ctx, &Checkpoint{
			TransactionNumber:   t.TransactionNumber,
			TransactionTimeHash: t.TransactionTimeHash,
		})
		if err == nil {
			return t, nil
		}

		if errors.Is(err, &TransportError{}) {
			return nil, err
		}
	}

	return nil, nil
}

// WriteAnchor writes the given anchor string to the chain.
func (s *Service) WriteAnchor(ctx context.Context, anchorString string, maxFee uint64) error {
	logger.Debug("Writing anchor", log.WithAnchorString(anchorString))

	if err := s.client.WriteAnchor(ctx, anchorString, maxFee); err != nil {
		return NewTransportError(err)
	}

	return nil
}

func (s *Service) validateCheckpoint(ctx context.Context, cp *Checkpoint) error {
	height := BlockHeight(cp.TransactionNumber)

	currentHash, err := s.client.BlockHash(ctx, height)
	if err != nil {
		if errors.Is(err, ErrBlockNotFound) {
			// the block the checkpoint was confirmed in no longer exists
			return &ReorganizationError{
				TransactionNumber:   cp.TransactionNumber,
				TransactionTimeHash: cp.TransactionTimeHash,
			}
		}

		return NewTransportError(err)
	}

	if currentHash != cp.TransactionTimeHash {
		logger.Info("Detected blockchain reorganization",
			log.WithTransactionNumber(cp.TransactionNumber),
			log.WithTransactionTimeHash(cp.TransactionTimeHash),
			log.WithBlockHeight(height))

		return &ReorganizationError{
			TransactionNumber:   cp.TransactionNumber,
			TransactionTimeHash: cp.TransactionTimeHash,
		}
	}

	return nil
}
