/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package bitcoin adapts the chain-node boundary of the synchronization
// service to a bitcoin node. Anchor strings are committed in OP_RETURN
// outputs tagged with a recognizable prefix and recovered by scanning
// confirmed blocks.
package bitcoin

import (
	"bytes"
	"context"
	"encoding/hex"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/rpcclient"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/btcsuite/btcutil"
	"github.com/pkg/errors"

	"github.com/trustbloc/sidetree-node-go/pkg/api/txn"
	"github.com/trustbloc/sidetree-node-go/pkg/blockchain"
	"github.com/trustbloc/sidetree-node-go/internal/log"
)

var logger = log.New("sidetree-node-bitcoin")

// Client reads and writes anchoring transactions on a bitcoin node. It
// implements blockchain.ChainClient.
type Client struct {
	rpc          *rpcclient.Client
	chainParams  *chaincfg.Params
	anchorPrefix []byte
	genesisBlock uint64
}

// New connects to the bitcoin node described by the given configuration.
func New(cfg *Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	chainParams, err := cfg.chainParams()
	if err != nil {
		return nil, err
	}

	rpc, err := rpcclient.New(&rpcclient.ConnConfig{
		Host:         cfg.RPCHost,
		User:         cfg.RPCUser,
		Pass:         cfg.RPCPassword,
		HTTPPostMode: true,
		DisableTLS:   true,
	}, nil)
	if err != nil {
		return nil, errors.Wrap(err, "connect to bitcoin node")
	}

	return &Client{
		rpc:          rpc,
		chainParams:  chainParams,
		anchorPrefix: []byte(cfg.anchorPrefix()),
		genesisBlock: cfg.GenesisBlockHeight,
	}, nil
}

// Close shuts down the RPC connection.
func (c *Client) Close() {
	c.rpc.Shutdown()
}

// CurrentHeight returns the current chain height.
func (c *Client) CurrentHeight(ctx context.Context) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	count, err := c.rpc.GetBlockCount()
	if err != nil {
		return 0, errors.Wrap(err, "get block count")
	}

	return uint64(count), nil
}

// BlockHash returns the hash the chain currently associates with the given
// height. It returns blockchain.ErrBlockNotFound when no block exists there.
func (c *Client) BlockHash(ctx context.Context, height uint64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	hash, err := c.rpc.GetBlockHash(int64(height))
	if err != nil {
		var rpcErr *btcjson.RPCError
		if errors.As(err, &rpcErr) &&
			(rpcErr.Code == btcjson.ErrRPCOutOfRange || rpcErr.Code == btcjson.ErrRPCInvalidParameter) {
			return "", errors.Wrapf(blockchain.ErrBlockNotFound, "height[%d]", height)
		}

		return "", errors.Wrapf(err, "get block hash for height[%d]", height)
	}

	return hash.String(), nil
}

// TransactionsSince scans confirmed blocks for anchoring transactions with a
// transaction number strictly greater than the given value.
func (c *Client) TransactionsSince(ctx context.Context,
	sinceTransactionNumber uint64) ([]*txn.AnchoredTransaction, error) {
	startHeight := c.genesisBlock
	if sinceTransactionNumber > 0 {
		startHeight = blockchain.BlockHeight(sinceTransactionNumber)
	}

	currentHeight, err := c.CurrentHeight(ctx)
	if err != nil {
		return nil, err
	}

	var result []*txn.AnchoredTransaction

	for height := startHeight; height <= currentHeight; height++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		anchors, err := c.blockAnchors(height)
		if err != nil {
			return nil, err
		}

		for _, anchor := range anchors {
			if anchor.TransactionNumber > sinceTransactionNumber {
				result = append(result, anchor)
			}
		}
	}

	logger.Debug("Scanned blocks for anchoring transactions",
		log.WithSinceTransactionNumber(sinceTransactionNumber),
		log.WithTotalTransactions(len(result)))

	return result, nil
}

// WriteAnchor commits the given anchor string to the chain in an OP_RETURN
// output, spending the node wallet's funds with the given maximum fee.
func (c *Client) WriteAnchor(ctx context.Context, anchorString string, maxFee uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	fee := btcutil.Amount(maxFee)

	unspent, err := c.rpc.ListUnspent()
	if err != nil {
		return errors.Wrap(err, "list unspent outputs")
	}

	input, inputAmount, changeAddress, err := c.selectInput(unspent, fee)
	if err != nil {
		return err
	}

	unsigned, err := c.rpc.CreateRawTransaction(
		[]btcjson.TransactionInput{*input},
		map[btcutil.Address]btcutil.Amount{changeAddress: inputAmount - fee},
		nil)
	if err != nil {
		return errors.Wrap(err, "create anchoring transaction")
	}

	anchorScript, err := txscript.NullDataScript(append(append([]byte{}, c.anchorPrefix...), anchorString...))
	if err != nil {
		return errors.Wrap(err, "build anchor script")
	}

	unsigned.AddTxOut(wire.NewTxOut(0, anchorScript))

	signed, complete, err := c.rpc.SignRawTransactionWithWallet(unsigned)
	if err != nil {
		return errors.Wrap(err, "sign anchoring transaction")
	}

	if !complete {
		return errors.New("anchoring transaction could not be fully signed")
	}

	txHash, err := c.rpc.SendRawTransaction(signed, false)
	if err != nil {
		return errors.Wrap(err, "send anchoring transaction")
	}

	logger.Info("Wrote anchor to bitcoin", log.WithAnchorString(anchorString),
		log.WithAddress(txHash.String()))

	return nil
}

func (c *Client) selectInput(unspent []btcjson.ListUnspentResult,
	fee btcutil.Amount) (*btcjson.TransactionInput, btcutil.Amount, btcutil.Address, error) {
	for i := range unspent {
		u := unspent[i]

		if !u.Spendable {
			continue
		}

		amount, err := btcutil.NewAmount(u.Amount)
		if err != nil {
			return nil, 0, nil, errors.Wrap(err, "parse unspent amount")
		}

		if amount <= fee {
			continue
		}

		address, err := btcutil.DecodeAddress(u.Address, c.chainParams)
		if err != nil {
			return nil, 0, nil, errors.Wrapf(err, "decode address[%s]", u.Address)
		}

		return &btcjson.TransactionInput{Txid: u.TxID, Vout: u.Vout}, amount, address, nil
	}

	return nil, 0, nil, errors.Errorf("no spendable output covers the anchoring fee [%d]", fee)
}

func (c *Client) blockAnchors(height uint64) ([]*txn.AnchoredTransaction, error) {
	hash, err := c.rpc.GetBlockHash(int64(height))
	if err != nil {
		return nil, errors.Wrapf(err, "get block hash for height[%d]", height)
	}

	block, err := c.rpc.GetBlockVerboseTx(hash)
	if err != nil {
		return nil, errors.Wrapf(err, "get block[%s]", hash)
	}

	var anchors []*txn.AnchoredTransaction

	for position, tx := range block.Tx {
		anchorString, ok, err := c.anchorFromOutputs(tx.Vout)
		if err != nil {
			return nil, errors.Wrapf(err, "parse outputs of transaction[%s]", tx.Txid)
		}

		if !ok {
			continue
		}

		anchors = append(anchors, &txn.AnchoredTransaction{
			TransactionNumber:   blockchain.TransactionNumber(height, uint32(position)),
			TransactionTime:     height,
			TransactionTimeHash: block.Hash,
			AnchorString:        anchorString,
		})
	}

	return anchors, nil
}

func (c *Client) anchorFromOutputs(outputs []btcjson.Vout) (string, bool, error) {
	for i := range outputs {
		script, err := hex.DecodeString(outputs[i].ScriptPubKey.Hex)
		if err != nil {
			return "", false, errors.Wrap(err, "decode output script")
		}

		if txscript.GetScriptClass(script) != txscript.NullDataTy {
			continue
		}

		pushed, err := txscript.PushedData(script)
		if err != nil || len(pushed) == 0 {
			continue
		}

		data := pushed[0]
		if !bytes.HasPrefix(data, c.anchorPrefix) {
			continue
		}

		return string(data[len(c.anchorPrefix):]), true, nil
	}

	return "", false, nil
}
