/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package txnhandler exposes the synchronization service over HTTP so that
// downstream observers can read anchoring transactions since a checkpoint.
package txnhandler

import (
	"net/http"
	"strconv"

	"github.com/pkg/errors"

	"github.com/trustbloc/sidetree-node-go/pkg/api/txn"
	"github.com/trustbloc/sidetree-node-go/pkg/blockchain"
	"github.com/trustbloc/sidetree-node-go/internal/log"
	"github.com/trustbloc/sidetree-node-go/pkg/restapi/common"
)

var logger = log.New("sidetree-node-txnhandler")

const (
	sinceParam    = "since"
	timeHashParam = "transaction-time-hash"
)

// TransactionsResponse is the body of a successful transactions request.
type TransactionsResponse struct {
	MoreTransactions bool                       `json:"moreTransactions"`
	Transactions     []*txn.AnchoredTransaction `json:"transactions"`
}

// TransactionsHandler handles requests for anchoring transactions.
type TransactionsHandler struct {
	path string
	svc  *blockchain.Service
}

// NewTransactionsHandler returns a new transactions handler.
func NewTransactionsHandler(basePath string, svc *blockchain.Service) *TransactionsHandler {
	return &TransactionsHandler{
		path: basePath + "/transactions",
		svc:  svc,
	}
}

// Path returns the context path.
func (h *TransactionsHandler) Path() string {
	return h.path
}

// Method returns the HTTP method.
func (h *TransactionsHandler) Method() string {
	return http.MethodGet
}

// Handler returns the request handler.
func (h *TransactionsHandler) Handler() common.HTTPRequestHandler {
	return h.Transactions
}

// Transactions returns all anchoring transactions after the checkpoint given
// by the "since" and "transaction-time-hash" query parameters, or the full
// anchoring history when neither is supplied. A checkpoint invalidated by a
// chain reorganization yields a 400 response whose body carries the stable
// code InvalidTransactionNumberOrTimeHash.
func (h *TransactionsHandler) Transactions(rw http.ResponseWriter, req *http.Request) {
	checkpoint, ok := h.parseCheckpoint(rw, req)
	if !ok {
		return
	}

	txns, err := h.svc.TransactionsSince(req.Context(), checkpoint)
	if err != nil {
		var reorgErr *blockchain.ReorganizationError
		if errors.As(err, &reorgErr) {
			common.WriteError(rw, http.StatusBadRequest, reorgErr.Code(),
				"the checkpoint transaction is no longer on the chain; roll back and resync from an earlier checkpoint")

			return
		}

		logger.Error("Failed to read anchoring transactions", log.WithError(err))

		common.WriteError(rw, http.StatusInternalServerError, common.CodeServerError, "")

		return
	}

	common.WriteResponse(rw, http.StatusOK, &TransactionsResponse{
		MoreTransactions: false,
		Transactions:     txns,
	})
}

func (h *TransactionsHandler) parseCheckpoint(rw http.ResponseWriter, req *http.Request) (*blockchain.Checkpoint, bool) {
	since := req.URL.Query().Get(sinceParam)
	timeHash := req.URL.Query().Get(timeHashParam)

	if since == "" && timeHash == "" {
		return nil, true
	}

	if since == "" || timeHash == "" {
		common.WriteError(rw, http.StatusBadRequest, common.CodeInvalidRequest,
			"both 'since' and 'transaction-time-hash' are required to resume from a checkpoint")

		return nil, false
	}

	// 64-bit parse; transaction numbers exceed float precision
	transactionNumber, err := strconv.ParseUint(since, 10, 64)
	if err != nil {
		common.WriteError(rw, http.StatusBadRequest, common.CodeInvalidRequest,
			"'since' must be a non-negative 64-bit integer")

		return nil, false
	}

	return &blockchain.Checkpoint{
		TransactionNumber:   transactionNumber,
		TransactionTimeHash: timeHash,
	}, true
}
