/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package common

// Error codes rendered at the HTTP boundary for failures that carry no code
// of their own.
const (
	// CodeInvalidRequest indicates a malformed request.
	CodeInvalidRequest = "InvalidRequest"

	// CodeServerError indicates an internal failure; no internal detail is
	// exposed with it.
	CodeServerError = "ServerError"
)

// ErrorResponse is the JSON body written for every failed request. Code is a
// stable machine-readable string so automated clients can branch on it
// instead of parsing free text.
type ErrorResponse struct {
	// Code is the machine-readable error code.
	// Required: true
	Code string `json:"code"`

	// Message optionally carries human-readable detail.
	Message string `json:"message,omitempty"`
}
