/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package operation

// AnchoredOperation is the canonical representation of one identity operation
// that has been anchored to the blockchain. The operation buffer is opaque to
// this node; parsing and signature validation happen in the resolution layer.
type AnchoredOperation struct {

	// UniqueSuffix defines the document's unique suffix. It is stable across
	// all operations for one DID.
	UniqueSuffix string `json:"didUniqueSuffix"`

	// OperationBuffer contains the raw operation bytes (signature/patch payload).
	OperationBuffer []byte `json:"operationBuffer"`

	// OperationIndex is the zero-based position of this operation within its
	// anchoring batch.
	OperationIndex uint32 `json:"operationIndex"`

	// TransactionNumber is the chain-assigned number of the transaction this
	// operation was anchored within. Together with OperationIndex it defines
	// the global operation order.
	TransactionNumber uint64 `json:"transactionNumber"`

	// TransactionTime is the blockchain time (block height) at which the
	// anchoring transaction was confirmed.
	TransactionTime uint64 `json:"transactionTime"`

	// BatchFileHash is the content address of the batch file containing this
	// operation.
	BatchFileHash string `json:"batchFileHash"`
}
