/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package txnprovider

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAnchorData(t *testing.T) {
	ad, err := ParseAnchorData("10.batchFileHash")
	require.NoError(t, err)
	require.Equal(t, 10, ad.NumberOfOperations)
	require.Equal(t, "batchFileHash", ad.BatchFileHash)

	require.Equal(t, "10.batchFileHash", ad.GetAnchorString())
}

func TestParseAnchorDataError(t *testing.T) {
	t.Run("wrong number of parts", func(t *testing.T) {
		_, err := ParseAnchorData("batchFileHash")
		require.Error(t, err)
		require.Contains(t, err.Error(), "expecting [2] parts")

		_, err = ParseAnchorData("1.hash.extra")
		require.Error(t, err)
	})

	t.Run("number of operations not positive integer", func(t *testing.T) {
		_, err := ParseAnchorData("0.batchFileHash")
		require.Error(t, err)
		require.Contains(t, err.Error(), "must be positive integer")

		_, err = ParseAnchorData("-1.batchFileHash")
		require.Error(t, err)

		_, err = ParseAnchorData("abc.batchFileHash")
		require.Error(t, err)
	})
}
