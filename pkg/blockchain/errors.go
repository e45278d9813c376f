/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package blockchain

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrBlockNotFound is returned by ChainClient implementations when no block
// exists at the requested height. The synchronization service maps it to a
// reorganization error when it occurs while validating a checkpoint.
var ErrBlockNotFound = errors.New("block not found")

// CodeInvalidTransactionNumberOrTimeHash is the stable machine-readable code
// for the reorganization error. It is rendered verbatim at the HTTP boundary
// so automated clients can branch on it.
const CodeInvalidTransactionNumberOrTimeHash = "InvalidTransactionNumberOrTimeHash"

// ReorganizationError signals that the chain has been rewritten at or before
// the caller's checkpoint. The caller must roll back its operation store and
// retry from an earlier checkpoint; retrying the same call cannot succeed.
type ReorganizationError struct {
	TransactionNumber   uint64
	TransactionTimeHash string
}

// Error implements the error interface.
func (e *ReorganizationError) Error() string {
	return fmt.Sprintf("invalid transaction number [%d] or transaction time hash [%s]",
		e.TransactionNumber, e.TransactionTimeHash)
}

// Code returns the stable machine-readable error code.
func (e *ReorganizationError) Code() string {
	return CodeInvalidTransactionNumberOrTimeHash
}

// Is reports a match for any ReorganizationError regardless of checkpoint, so
// callers can branch with errors.Is(err, &ReorganizationError{}).
func (e *ReorganizationError) Is(target error) bool {
	_, ok := target.(*ReorganizationError)

	return ok
}

// TransportError wraps a failure to reach or parse a response from the chain
// node. It is retryable by the caller with backoff and is deliberately a
// separate kind from ReorganizationError since the recovery action differs.
type TransportError struct {
	cause error
}

// NewTransportError wraps the given cause.
func NewTransportError(cause error) *TransportError {
	return &TransportError{cause: cause}
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("blockchain transport: %s", e.cause.Error())
}

// Unwrap returns the underlying cause.
func (e *TransportError) Unwrap() error {
	return e.cause
}

// Is reports a match for any TransportError.
func (e *TransportError) Is(target error) bool {
	_, ok := target.(*TransportError)

	return ok
}
