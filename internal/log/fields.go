/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package log

import (
	"os"

	"go.uber.org/zap"
)

// Log fields.
const (
	FieldModule              = "module"
	FieldAddress             = "address"
	FieldSuffix              = "suffix"
	FieldAnchorString        = "anchorString"
	FieldTransactionTime     = "transactionTime"
	FieldTransactionNumber   = "transactionNumber"
	FieldTransactionTimeHash = "transactionTimeHash"
	FieldSinceTransaction    = "sinceTransactionNumber"
	FieldTotalOperations     = "totalOperations"
	FieldTotalTransactions   = "totalTransactions"
	FieldSize                = "size"
	FieldMaxSize             = "maxSize"
	FieldBlockHeight         = "blockHeight"
	FieldStorePath           = "storePath"
	FieldSignal              = "signal"
	FieldLogLevel            = "logLevel"
)

// WithAddress sets the content address field.
func WithAddress(value string) zap.Field {
	return zap.String(FieldAddress, value)
}

// WithSuffix sets the DID unique suffix field.
func WithSuffix(value string) zap.Field {
	return zap.String(FieldSuffix, value)
}

// WithAnchorString sets the anchor string field.
func WithAnchorString(value string) zap.Field {
	return zap.String(FieldAnchorString, value)
}

// WithTransactionTime sets the transaction time field.
func WithTransactionTime(value uint64) zap.Field {
	return zap.Uint64(FieldTransactionTime, value)
}

// WithTransactionNumber sets the transaction number field.
func WithTransactionNumber(value uint64) zap.Field {
	return zap.Uint64(FieldTransactionNumber, value)
}

// WithTransactionTimeHash sets the transaction time hash field.
func WithTransactionTimeHash(value string) zap.Field {
	return zap.String(FieldTransactionTimeHash, value)
}

// WithSinceTransactionNumber sets the since-transaction-number field.
func WithSinceTransactionNumber(value uint64) zap.Field {
	return zap.Uint64(FieldSinceTransaction, value)
}

// WithTotalOperations sets the total operations field.
func WithTotalOperations(value int) zap.Field {
	return zap.Int(FieldTotalOperations, value)
}

// WithTotalTransactions sets the total transactions field.
func WithTotalTransactions(value int) zap.Field {
	return zap.Int(FieldTotalTransactions, value)
}

// WithSize sets the size field.
func WithSize(value uint64) zap.Field {
	return zap.Uint64(FieldSize, value)
}

// WithMaxSize sets the maximum size field.
func WithMaxSize(value uint64) zap.Field {
	return zap.Uint64(FieldMaxSize, value)
}

// WithBlockHeight sets the block height field.
func WithBlockHeight(value uint64) zap.Field {
	return zap.Uint64(FieldBlockHeight, value)
}

// WithStorePath sets the store path field.
func WithStorePath(value string) zap.Field {
	return zap.String(FieldStorePath, value)
}

// WithSignal sets the OS signal field.
func WithSignal(value os.Signal) zap.Field {
	return zap.Stringer(FieldSignal, value)
}

// WithLogLevel sets the log level field.
func WithLogLevel(value string) zap.Field {
	return zap.String(FieldLogLevel, value)
}

// WithError sets the error field.
func WithError(err error) zap.Field {
	return zap.Error(err)
}
