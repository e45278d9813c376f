/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package protocol

// Protocol defines protocol parameters.
type Protocol struct {
	// StartingBlockChainTime is the inclusive starting logical blockchain
	// time that this protocol applies to.
	StartingBlockChainTime uint64

	// HashAlgorithmInMultiHashCode is the hash algorithm in multihash code.
	HashAlgorithmInMultiHashCode uint

	// MaxOperationsPerBatch defines the maximum operations per batch.
	MaxOperationsPerBatch uint

	// CompressionAlgorithm is the batch file compression algorithm.
	CompressionAlgorithm string

	// MaxBatchFileSize is the maximum allowed size (in bytes) of a batch file
	// stored in CAS.
	MaxBatchFileSize uint64
}

// Client defines an interface for accessing protocol version/information.
type Client interface {

	// Current returns the latest version of the protocol.
	Current() Protocol
}
