/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package blockchain

// Transaction numbers pack the confirmation block height and the position of
// the anchoring transaction within that block into a single 64-bit integer, so
// chain order is preserved by plain numeric comparison. The packing must use
// exact integer arithmetic; at these magnitudes a floating-point
// representation would silently lose the low bits.

const positionBits = 32

// TransactionNumber constructs the transaction number for the anchoring
// transaction at the given position within the block at the given height.
func TransactionNumber(blockHeight uint64, position uint32) uint64 {
	return blockHeight<<positionBits | uint64(position)
}

// BlockHeight extracts the confirmation block height from a transaction number.
func BlockHeight(transactionNumber uint64) uint64 {
	return transactionNumber >> positionBits
}

// BlockPosition extracts the in-block position from a transaction number.
func BlockPosition(transactionNumber uint64) uint32 {
	return uint32(transactionNumber)
}
