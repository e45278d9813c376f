/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package casutil

import (
	"crypto/sha256"
	"testing"

	"github.com/multiformats/go-multibase"
	"github.com/multiformats/go-multihash"
	"github.com/stretchr/testify/require"
)

func TestComputeAndValidateAddress(t *testing.T) {
	content := []byte("batch file content")

	address, err := ComputeAddress(content)
	require.NoError(t, err)
	require.NotEmpty(t, address)

	require.NoError(t, ValidateAddress(address))
	require.NoError(t, ValidateContent(content, address))
}

func TestValidateAddressMultibase(t *testing.T) {
	content := []byte("batch file content")
	sum := sha256.Sum256(content)

	mh, err := multihash.Encode(sum[:], multihash.SHA2_256)
	require.NoError(t, err)

	address, err := multibase.Encode(multibase.Base58BTC, mh)
	require.NoError(t, err)

	require.NoError(t, ValidateAddress(address))
	require.NoError(t, ValidateContent(content, address))
}

func TestValidateAddressError(t *testing.T) {
	t.Run("empty address", func(t *testing.T) {
		err := ValidateAddress("")
		require.Error(t, err)
		require.Contains(t, err.Error(), "empty")
	})

	t.Run("not an encoded multihash", func(t *testing.T) {
		err := ValidateAddress("not-a-hash!!!")
		require.Error(t, err)
	})

	t.Run("valid encoding, invalid multihash", func(t *testing.T) {
		err := ValidateAddress("YW55IGNhcm5hbCBwbGVhc3VyZQ")
		require.Error(t, err)
	})
}

func TestValidateContentMismatch(t *testing.T) {
	address, err := ComputeAddress([]byte("original content"))
	require.NoError(t, err)

	err = ValidateContent([]byte("different content"), address)
	require.Error(t, err)
	require.Contains(t, err.Error(), "does not match hash")
}
