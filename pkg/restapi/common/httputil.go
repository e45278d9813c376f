/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package common

import (
	"encoding/json"
	"net/http"

	"github.com/trustbloc/sidetree-node-go/internal/log"
)

var logger = log.New("sidetree-node-restapi")

// WriteResponse writes a JSON response to the response writer.
func WriteResponse(rw http.ResponseWriter, status int, v interface{}) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)

	if err := json.NewEncoder(rw).Encode(v); err != nil {
		logger.Error("Unable to write response", log.WithError(err))
	}
}

// WriteError writes an error response carrying the given machine-readable
// code to the response writer.
func WriteError(rw http.ResponseWriter, status int, code, message string) {
	WriteResponse(rw, status, &ErrorResponse{Code: code, Message: message})
}
