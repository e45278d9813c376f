/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package txn

// AnchoredTransaction defines info about an anchoring transaction that has been
// confirmed on the blockchain.
type AnchoredTransaction struct {

	// TransactionNumber is the chain-assigned, strictly-increasing number of
	// this transaction. Persisted as a 64-bit integer; large counters lose
	// precision in floating-point representations.
	TransactionNumber uint64 `json:"transactionNumber"`

	// TransactionTime is the blockchain time (block height) at which this
	// transaction was confirmed.
	TransactionTime uint64 `json:"transactionTime"`

	// TransactionTimeHash is the hash the chain associates with
	// TransactionTime. A caller holds on to it as a commitment for detecting
	// that the chain has not been rewritten at or before this transaction.
	TransactionTimeHash string `json:"transactionTimeHash"`

	// AnchorString carries the batch file reference committed by this
	// transaction.
	AnchorString string `json:"anchorString"`

	// TransactionFeePaid is the fee paid for this transaction, in the chain's
	// smallest denomination.
	TransactionFeePaid uint64 `json:"transactionFeePaid,omitempty"`

	// NormalizedTransactionFee is the per-operation normalized fee.
	NormalizedTransactionFee uint64 `json:"normalizedTransactionFee,omitempty"`

	// Writer identifies the party that wrote this transaction.
	Writer string `json:"writer,omitempty"`
}
