/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package blockchain_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/trustbloc/sidetree-node-go/pkg/api/txn"
	"github.com/trustbloc/sidetree-node-go/pkg/blockchain"
	"github.com/trustbloc/sidetree-node-go/pkg/mocks"
)

func TestTransactionsSinceFromGenesis(t *testing.T) {
	client := newClientWithAnchors(t, "anchor-1", "anchor-2", "anchor-3")

	svc := blockchain.New(client)

	txns, err := svc.TransactionsSince(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, txns, 3)
	require.Equal(t, "anchor-1", txns[0].AnchorString)
	require.True(t, txns[0].TransactionNumber < txns[1].TransactionNumber)
	require.True(t, txns[1].TransactionNumber < txns[2].TransactionNumber)
}

func TestTransactionsSinceCheckpoint(t *testing.T) {
	client := newClientWithAnchors(t, "anchor-1", "anchor-2", "anchor-3")

	svc := blockchain.New(client)

	all, err := svc.TransactionsSince(context.Background(), nil)
	require.NoError(t, err)

	checkpoint := &blockchain.Checkpoint{
		TransactionNumber:   all[0].TransactionNumber,
		TransactionTimeHash: all[0].TransactionTimeHash,
	}

	txns, err := svc.TransactionsSince(context.Background(), checkpoint)
	require.NoError(t, err)
	require.Len(t, txns, 2)
	require.Equal(t, "anchor-2", txns[0].AnchorString)
	require.Equal(t, "anchor-3", txns[1].AnchorString)
}

func TestTransactionsSinceReorganization(t *testing.T) {
	client := newClientWithAnchors(t, "anchor-1", "anchor-2")

	svc := blockchain.New(client)

	all, err := svc.TransactionsSince(context.Background(), nil)
	require.NoError(t, err)

	checkpoint := &blockchain.Checkpoint{
		TransactionNumber:   all[1].TransactionNumber,
		TransactionTimeHash: all[1].TransactionTimeHash,
	}

	// rewrite the chain at the checkpoint's height
	client.SetBlockHash(blockchain.BlockHeight(checkpoint.TransactionNumber), "rewritten-hash")

	txns, err := svc.TransactionsSince(context.Background(), checkpoint)
	require.Nil(t, txns)
	require.Error(t, err)
	require.ErrorIs(t, err, &blockchain.ReorganizationError{})

	var reorgErr *blockchain.ReorganizationError
	require.ErrorAs(t, err, &reorgErr)
	require.Equal(t, "InvalidTransactionNumberOrTimeHash", reorgErr.Code())
}

func TestTransactionsSinceBlockNoLongerExists(t *testing.T) {
	client := newClientWithAnchors(t, "anchor-1", "anchor-2")

	svc := blockchain.New(client)

	all, err := svc.TransactionsSince(context.Background(), nil)
	require.NoError(t, err)

	checkpoint := &blockchain.Checkpoint{
		TransactionNumber:   all[1].TransactionNumber,
		TransactionTimeHash: all[1].TransactionTimeHash,
	}

	client.RemoveBlock(blockchain.BlockHeight(checkpoint.TransactionNumber))

	_, err = svc.TransactionsSince(context.Background(), checkpoint)
	require.Error(t, err)
	require.ErrorIs(t, err, &blockchain.ReorganizationError{})
}

func TestTransactionsSinceTransportError(t *testing.T) {
	client := newClientWithAnchors(t, "anchor-1")

	svc := blockchain.New(client)

	all, err := svc.TransactionsSince(context.Background(), nil)
	require.NoError(t, err)

	client.SetError(errors.New("connection refused"))

	_, err = svc.TransactionsSince(context.Background(), &blockchain.Checkpoint{
		TransactionNumber:   all[0].TransactionNumber,
		TransactionTimeHash: all[0].TransactionTimeHash,
	})
	require.Error(t, err)
	require.ErrorIs(t, err, &blockchain.TransportError{})
	require.NotErrorIs(t, err, &blockchain.ReorganizationError{})
}

func TestFirstValidTransaction(t *testing.T) {
	client := newClientWithAnchors(t, "anchor-1", "anchor-2", "anchor-3")

	svc := blockchain.New(client)

	all, err := svc.TransactionsSince(context.Background(), nil)
	require.NoError(t, err)

	// rewrite the two most recent blocks
	client.SetBlockHash(blockchain.BlockHeight(all[1].TransactionNumber), "rewritten-2")
	client.SetBlockHash(blockchain.BlockHeight(all[2].TransactionNumber), "rewritten-3")

	// newest first
	first, err := svc.FirstValidTransaction(context.Background(),
		[]*txn.AnchoredTransaction{all[2], all[1], all[0]})
	require.NoError(t, err)
	require.NotNil(t, first)
	require.Equal(t, all[0].TransactionNumber, first.TransactionNumber)
}

func TestFirstValidTransactionNoneValid(t *testing.T) {
	client := newClientWithAnchors(t, "anchor-1")

	svc := blockchain.New(client)

	all, err := svc.TransactionsSince(context.Background(), nil)
	require.NoError(t, err)

	client.SetBlockHash(blockchain.BlockHeight(all[0].TransactionNumber), "rewritten")

	first, err := svc.FirstValidTransaction(context.Background(), all)
	require.NoError(t, err)
	require.Nil(t, first)
}

func TestTransactionNumberPacking(t *testing.T) {
	number := blockchain.TransactionNumber(500000, 17)
	require.Equal(t, uint64(500000), blockchain.BlockHeight(number))
	require.Equal(t, uint32(17), blockchain.BlockPosition(number))

	// later block always yields a larger number
	require.True(t, blockchain.TransactionNumber(500001, 0) > number)
}

func newClientWithAnchors(t *testing.T, anchors ...string) *mocks.MockChainClient {
	t.Helper()

	client := mocks.NewMockChainClient()

	for _, anchor := range anchors {
		require.NoError(t, client.WriteAnchor(context.Background(), anchor, 0))
	}

	return client
}
