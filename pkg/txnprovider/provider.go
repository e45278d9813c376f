/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package txnprovider resolves an anchoring transaction into the operations it
// committed: it parses the transaction's anchor string, pulls the referenced
// batch file from content addressable storage and decodes it into anchored
// operation records.
package txnprovider

import (
	"context"
	"encoding/base64"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/trustbloc/sidetree-node-go/pkg/api/cas"
	"github.com/trustbloc/sidetree-node-go/pkg/api/operation"
	"github.com/trustbloc/sidetree-node-go/pkg/api/protocol"
	"github.com/trustbloc/sidetree-node-go/pkg/api/txn"
	"github.com/trustbloc/sidetree-node-go/pkg/casutil"
	"github.com/trustbloc/sidetree-node-go/internal/log"
)

var logger = log.New("sidetree-node-txnprovider")

type decompressionProvider interface {
	Decompress(alg string, data []byte, maxSizeBytes uint64) ([]byte, error)
}

// OperationProvider resolves batch files into anchored operations.
type OperationProvider struct {
	protocol protocol.Client
	fetcher  cas.Fetcher
	dp       decompressionProvider
}

// NewOperationProvider returns a new operation provider.
func NewOperationProvider(pc protocol.Client, fetcher cas.Fetcher, dp decompressionProvider) *OperationProvider {
	return &OperationProvider{
		protocol: pc,
		fetcher:  fetcher,
		dp:       dp,
	}
}

// batchFile is the on-CAS representation of an anchored operation batch.
type batchFile struct {
	// Operations contains the base64url encoded operation buffers, in batch
	// order.
	Operations []string `json:"operations"`
}

// GetTxnOperations returns all of the operations anchored by the given
// transaction. A non-success fetch outcome surfaces as a ContentError, which
// is permanent for the transaction's batch address; transport failures
// against the storage network propagate as transient errors.
func (p *OperationProvider) GetTxnOperations(ctx context.Context,
	t *txn.AnchoredTransaction) ([]*operation.AnchoredOperation, error) {
	anchorData, err := ParseAnchorData(t.AnchorString)
	if err != nil {
		return nil, err
	}

	pv := p.protocol.Current()

	content, err := p.fetchBatchFile(ctx, anchorData.BatchFileHash, pv)
	if err != nil {
		return nil, err
	}

	bf := &batchFile{}
	if err := json.Unmarshal(content, bf); err != nil {
		return nil, errors.Wrapf(err, "unmarshal batch file[%s]", anchorData.BatchFileHash)
	}

	if len(bf.Operations) != anchorData.NumberOfOperations {
		return nil, errors.Errorf("batch file[%s] has %d operations but anchor string declares %d",
			anchorData.BatchFileHash, len(bf.Operations), anchorData.NumberOfOperations)
	}

	if uint(len(bf.Operations)) > pv.MaxOperationsPerBatch {
		return nil, errors.Errorf("batch file[%s] exceeds maximum of %d operations per batch",
			anchorData.BatchFileHash, pv.MaxOperationsPerBatch)
	}

	ops, err := p.decodeOperations(bf, t, anchorData.BatchFileHash)
	if err != nil {
		return nil, err
	}

	logger.Debug("Successfully resolved anchored operations",
		log.WithAnchorString(t.AnchorString),
		log.WithTotalOperations(len(ops)))

	return ops, nil
}

func (p *OperationProvider) fetchBatchFile(ctx context.Context, address string,
	pv protocol.Protocol) ([]byte, error) {
	if err := casutil.ValidateAddress(address); err != nil {
		logger.Debug("Invalid batch file address", log.WithAddress(address), log.WithError(err))

		return nil, &ContentError{Address: address, Code: cas.CodeInvalidHash}
	}

	result, err := p.fetcher.Fetch(ctx, address, pv.MaxBatchFileSize)
	if err != nil {
		return nil, errors.Wrapf(err, "fetch batch file[%s]", address)
	}

	if result.Code != cas.CodeSuccess {
		return nil, &ContentError{Address: address, Code: result.Code}
	}

	if err := casutil.ValidateContent(result.Content, address); err != nil {
		// content came back but does not hash to its own address
		return nil, &ContentError{Address: address, Code: cas.CodeInvalidHash}
	}

	content, err := p.dp.Decompress(pv.CompressionAlgorithm, result.Content, pv.MaxBatchFileSize)
	if err != nil {
		return nil, errors.Wrapf(err, "decompress batch file[%s]", address)
	}

	return content, nil
}

func (p *OperationProvider) decodeOperations(bf *batchFile, t *txn.AnchoredTransaction,
	batchFileHash string) ([]*operation.AnchoredOperation, error) {
	ops := make([]*operation.AnchoredOperation, 0, len(bf.Operations))

	for index, encoded := range bf.Operations {
		buffer, err := base64.RawURLEncoding.DecodeString(encoded)
		if err != nil {
			return nil, errors.Wrapf(err, "decode operation at index[%d] of batch file[%s]", index, batchFileHash)
		}

		suffix, err := parseSuffix(buffer)
		if err != nil {
			return nil, errors.Wrapf(err, "operation at index[%d] of batch file[%s]", index, batchFileHash)
		}

		ops = append(ops, &operation.AnchoredOperation{
			UniqueSuffix:      suffix,
			OperationBuffer:   buffer,
			OperationIndex:    uint32(index),
			TransactionNumber: t.TransactionNumber,
			TransactionTime:   t.TransactionTime,
			BatchFileHash:     batchFileHash,
		})
	}

	return ops, nil
}

// parseSuffix extracts the DID unique suffix from the operation buffer. The
// buffer stays opaque beyond this one field; parsing and validating the rest
// of the operation belongs to the resolution layer.
func parseSuffix(buffer []byte) (string, error) {
	op := &struct {
		DidUniqueSuffix string `json:"didUniqueSuffix"`
	}{}

	if err := json.Unmarshal(buffer, op); err != nil {
		return "", errors.Wrap(err, "unmarshal operation buffer")
	}

	if op.DidUniqueSuffix == "" {
		return "", errors.New("operation buffer is missing didUniqueSuffix")
	}

	return op.DidUniqueSuffix, nil
}
