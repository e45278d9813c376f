/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package txnprovider_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/trustbloc/sidetree-node-go/pkg/api/cas"
	"github.com/trustbloc/sidetree-node-go/pkg/api/txn"
	"github.com/trustbloc/sidetree-node-go/pkg/casutil"
	"github.com/trustbloc/sidetree-node-go/pkg/compression"
	"github.com/trustbloc/sidetree-node-go/pkg/mocks"
	"github.com/trustbloc/sidetree-node-go/pkg/txnprovider"
)

func TestGetTxnOperations(t *testing.T) {
	casClient := mocks.NewMockCAS()

	address, opsCount := writeBatchFile(t, casClient, "suffix-one", "suffix-two")

	provider := newProvider(casClient)

	ops, err := provider.GetTxnOperations(context.Background(), &txn.AnchoredTransaction{
		TransactionNumber:   20,
		TransactionTime:     5,
		TransactionTimeHash: "hash-5",
		AnchorString:        fmt.Sprintf("%d.%s", opsCount, address),
	})
	require.NoError(t, err)
	require.Len(t, ops, 2)

	require.Equal(t, "suffix-one", ops[0].UniqueSuffix)
	require.Equal(t, uint32(0), ops[0].OperationIndex)
	require.Equal(t, "suffix-two", ops[1].UniqueSuffix)
	require.Equal(t, uint32(1), ops[1].OperationIndex)

	for _, op := range ops {
		require.Equal(t, uint64(20), op.TransactionNumber)
		require.Equal(t, uint64(5), op.TransactionTime)
		require.Equal(t, address, op.BatchFileHash)
	}
}

func TestGetTxnOperationsErrors(t *testing.T) {
	casClient := mocks.NewMockCAS()
	provider := newProvider(casClient)

	t.Run("invalid anchor string", func(t *testing.T) {
		_, err := provider.GetTxnOperations(context.Background(), &txn.AnchoredTransaction{
			AnchorString: "invalid",
		})
		require.Error(t, err)
	})

	t.Run("invalid batch file address", func(t *testing.T) {
		_, err := provider.GetTxnOperations(context.Background(), &txn.AnchoredTransaction{
			AnchorString: "1.not-a-valid-address!!!",
		})
		require.Error(t, err)

		var contentErr *txnprovider.ContentError
		require.ErrorAs(t, err, &contentErr)
		require.Equal(t, cas.CodeInvalidHash, contentErr.Code)
	})

	t.Run("batch file not found", func(t *testing.T) {
		// a valid address with no content behind it
		missing, err := missingAddress()
		require.NoError(t, err)

		_, err = provider.GetTxnOperations(context.Background(), &txn.AnchoredTransaction{
			AnchorString: "1." + missing,
		})
		require.Error(t, err)

		var contentErr *txnprovider.ContentError
		require.ErrorAs(t, err, &contentErr)
		require.Equal(t, cas.CodeNotFound, contentErr.Code)
	})

	t.Run("operation count mismatch", func(t *testing.T) {
		address, _ := writeBatchFile(t, casClient, "suffix-one")

		_, err := provider.GetTxnOperations(context.Background(), &txn.AnchoredTransaction{
			AnchorString: "5." + address,
		})
		require.Error(t, err)
		require.Contains(t, err.Error(), "anchor string declares")
	})

	t.Run("transport error", func(t *testing.T) {
		failing := mocks.NewMockCAS()
		failing.SetError(errors.New("storage network unavailable"))

		address, opsCount := writeBatchFile(t, casClient, "suffix-one")

		_, err := newProvider(failing).GetTxnOperations(context.Background(), &txn.AnchoredTransaction{
			AnchorString: fmt.Sprintf("%d.%s", opsCount, address),
		})
		require.Error(t, err)

		var contentErr *txnprovider.ContentError
		require.False(t, errors.As(err, &contentErr))
		require.Contains(t, err.Error(), "storage network unavailable")
	})
}

func newProvider(casClient *mocks.MockCAS) *txnprovider.OperationProvider {
	return txnprovider.NewOperationProvider(
		mocks.NewMockProtocolClient(),
		casClient,
		compression.New(compression.WithDefaultAlgorithms()))
}

// writeBatchFile compresses and stores a batch file containing one create
// operation per suffix. It returns the batch file address and operation count.
func writeBatchFile(t *testing.T, casClient *mocks.MockCAS, suffixes ...string) (string, int) {
	t.Helper()

	var encodedOps []string

	for _, suffix := range suffixes {
		buffer, err := json.Marshal(map[string]string{
			"didUniqueSuffix": suffix,
			"type":            "create",
		})
		require.NoError(t, err)

		encodedOps = append(encodedOps, base64.RawURLEncoding.EncodeToString(buffer))
	}

	content, err := json.Marshal(map[string][]string{"operations": encodedOps})
	require.NoError(t, err)

	registry := compression.New(compression.WithDefaultAlgorithms())

	compressed, err := registry.Compress("GZIP", content)
	require.NoError(t, err)

	address, err := casClient.Write(compressed)
	require.NoError(t, err)

	return address, len(suffixes)
}

func missingAddress() (string, error) {
	return casutil.ComputeAddress([]byte("content that was never stored"))
}
