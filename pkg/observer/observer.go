/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package observer drives blockchain synchronization: it periodically asks
// the synchronization service for anchoring transactions after the current
// checkpoint, resolves each one into operations and persists them. When the
// service reports a reorganization the observer rolls the operation store
// back to the last checkpoint that still validates and resumes from there.
package observer

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trustbloc/sidetree-node-go/pkg/api/operation"
	"github.com/trustbloc/sidetree-node-go/pkg/api/txn"
	"github.com/trustbloc/sidetree-node-go/pkg/blockchain"
	"github.com/trustbloc/sidetree-node-go/internal/log"
	"github.com/trustbloc/sidetree-node-go/pkg/txnprovider"
)

var logger = log.New("sidetree-node-observer")

const defaultSyncInterval = 10 * time.Second

// maxTrackedTransactions bounds the in-memory list of recently processed
// transactions used to locate the last-known-good checkpoint on rollback.
const maxTrackedTransactions = 1000

// Blockchain reads anchoring transactions since a checkpoint.
type Blockchain interface {
	TransactionsSince(ctx context.Context, since *blockchain.Checkpoint) ([]*txn.AnchoredTransaction, error)
	FirstValidTransaction(ctx context.Context, txns []*txn.AnchoredTransaction) (*txn.AnchoredTransaction, error)
}

// OperationProvider resolves an anchoring transaction into its operations.
type OperationProvider interface {
	GetTxnOperations(ctx context.Context, t *txn.AnchoredTransaction) ([]*operation.AnchoredOperation, error)
}

// OperationStore persists anchored operations and supports rollback.
type OperationStore interface {
	Put(ctx context.Context, ops []*operation.AnchoredOperation) error
	Rollback(ctx context.Context, greaterThan *uint64) error
}

// Providers contains all of the providers required by the observer.
type Providers struct {
	Blockchain Blockchain
	OpProvider OperationProvider
	OpStore    OperationStore
}

// Observer polls the blockchain for anchoring transactions and persists their
// operations.
type Observer struct {
	*Providers

	interval   time.Duration
	checkpoint *blockchain.Checkpoint
	processed  []*txn.AnchoredTransaction

	stopCh chan struct{}
	doneCh chan struct{}
}

// Option is an observer option.
type Option func(o *Observer)

// WithSyncInterval sets the polling interval.
func WithSyncInterval(interval time.Duration) Option {
	return func(o *Observer) {
		o.interval = interval
	}
}

// WithCheckpoint sets the checkpoint to resume synchronization from.
func WithCheckpoint(cp *blockchain.Checkpoint) Option {
	return func(o *Observer) {
		o.checkpoint = cp
	}
}

// New returns a new observer.
func New(providers *Providers, opts ...Option) *Observer {
	o := &Observer{
		Providers: providers,
		interval:  defaultSyncInterval,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// Start starts the observer's synchronization loop.
func (o *Observer) Start() {
	go o.run()
}

// Stop stops the observer and waits for the current sync cycle to finish. A
// rollback in progress completes before the observer stops, so no partially
// rolled back state is left behind by shutdown.
func (o *Observer) Stop() {
	close(o.stopCh)
	<-o.doneCh
}

// Checkpoint returns the last fully processed checkpoint, or nil when nothing
// has been processed.
func (o *Observer) Checkpoint() *blockchain.Checkpoint {
	return o.checkpoint
}

func (o *Observer) run() {
	defer close(o.doneCh)

	ticker := time.NewTicker(o.interval)
	defer ticker.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for {
		select {
		case <-o.stopCh:
			logger.Info("The observer has been stopped. Exiting.")

			return

		case <-ticker.C:
			o.sync(ctx)
		}
	}
}

// sync runs one synchronization cycle. The cycle either advances the
// checkpoint past fully stored transactions or leaves it untouched; a
// rollback never interleaves with stores from the same cycle.
func (o *Observer) sync(ctx context.Context) {
	txns, err := o.Blockchain.TransactionsSince(ctx, o.checkpoint)
	if err != nil {
		if errors.Is(err, &blockchain.ReorganizationError{}) {
			o.rollback(ctx)

			return
		}

		logger.Warn("Failed to read anchoring transactions. Will retry on the next cycle.", log.WithError(err))

		return
	}

	for _, t := range txns {
		if !o.process(ctx, t) {
			return
		}
	}
}

// process resolves and stores one transaction. It returns false when the
// cycle should be aborted without advancing the checkpoint.
func (o *Observer) process(ctx context.Context, t *txn.AnchoredTransaction) bool {
	ops, err := o.OpProvider.GetTxnOperations(ctx, t)
	if err != nil {
		if errors.Is(err, &txnprovider.ContentError{}) {
			// permanent for this batch; skip it rather than stall the chain scan
			logger.Warn("Batch is unresolvable and will be skipped.",
				log.WithAnchorString(t.AnchorString), log.WithError(err))

			o.advance(t)

			return true
		}

		logger.Warn("Failed to resolve batch. Will retry on the next cycle.",
			log.WithAnchorString(t.AnchorString), log.WithError(err))

		return false
	}

	if err := o.OpStore.Put(ctx, ops); err != nil {
		logger.Error("Failed to store operations. Will retry on the next cycle.",
			log.WithAnchorString(t.AnchorString), log.WithError(err))

		return false
	}

	logger.Debug("Successfully processed anchoring transaction",
		log.WithTransactionNumber(t.TransactionNumber),
		log.WithTotalOperations(len(ops)))

	o.advance(t)

	return true
}

func (o *Observer) advance(t *txn.AnchoredTransaction) {
	o.checkpoint = &blockchain.Checkpoint{
		TransactionNumber:   t.TransactionNumber,
		TransactionTimeHash: t.TransactionTimeHash,
	}

	o.processed = append(o.processed, t)
	if len(o.processed) > maxTrackedTransactions {
		o.processed = o.processed[len(o.processed)-maxTrackedTransactions:]
	}
}

// rollback reconciles a detected chain reorganization: it locates the most
// recent processed transaction whose time hash still matches the chain,
// removes everything stored after it and resumes from that checkpoint.
func (o *Observer) rollback(ctx context.Context) {
	newestFirst := make([]*txn.AnchoredTransaction, 0, len(o.processed))
	for i := len(o.processed) - 1; i >= 0; i-- {
		newestFirst = append(newestFirst, o.processed[i])
	}

	lastValid, err := o.Blockchain.FirstValidTransaction(ctx, newestFirst)
	if err != nil {
		logger.Warn("Failed to locate last valid transaction. Will retry on the next cycle.", log.WithError(err))

		return
	}

	if lastValid == nil {
		logger.Info("No processed transaction is valid after reorganization. Resetting the operation store.")

		if err := o.OpStore.Rollback(ctx, nil); err != nil {
			logger.Error("Failed to reset the operation store. Will retry on the next cycle.", log.WithError(err))

			return
		}

		o.checkpoint = nil
		o.processed = nil

		return
	}

	logger.Info("Rolling back operations after reorganization",
		log.WithTransactionNumber(lastValid.TransactionNumber))

	greaterThan := lastValid.TransactionNumber
	if err := o.OpStore.Rollback(ctx, &greaterThan); err != nil {
		logger.Error("Failed to roll back the operation store. Will retry on the next cycle.", log.WithError(err))

		return
	}

	o.checkpoint = &blockchain.Checkpoint{
		TransactionNumber:   lastValid.TransactionNumber,
		TransactionTimeHash: lastValid.TransactionTimeHash,
	}

	kept := o.processed[:0]

	for _, t := range o.processed {
		if t.TransactionNumber <= lastValid.TransactionNumber {
			kept = append(kept, t)
		}
	}

	o.processed = kept
}
