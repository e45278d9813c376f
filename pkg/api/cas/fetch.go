/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package cas

import "context"

// Code is the outcome of a content fetch. The set of codes is closed; new
// outcomes are added as new codes, never by overloading an existing one.
type Code string

// Fetch outcome codes.
const (
	// CodeSuccess indicates that the content was fully retrieved.
	CodeSuccess Code = "success"

	// CodeNotFound indicates that no object exists at the requested address.
	CodeNotFound Code = "not_found"

	// CodeInvalidHash indicates that the address is malformed or does not
	// match a verifiable content hash scheme.
	CodeInvalidHash Code = "invalid_hash"

	// CodeMaxSizeExceeded indicates that the object exists but retrieval was
	// aborted because the content exceeds the maximum allowed size.
	CodeMaxSizeExceeded Code = "content_exceeds_maximum_allowed_size"

	// CodeNotAFile indicates that the addressed object is not retrievable as
	// a flat byte stream.
	CodeNotAFile Code = "not_a_file"
)

// FetchResult is the outcome of retrieving content from content addressable
// storage. Content is set if and only if Code is CodeSuccess.
type FetchResult struct {
	Code    Code   `json:"code"`
	Content []byte `json:"content,omitempty"`
}

// NewSuccessResult returns a successful fetch result carrying the content.
func NewSuccessResult(content []byte) *FetchResult {
	return &FetchResult{Code: CodeSuccess, Content: content}
}

// NewFailureResult returns a fetch result for the given non-success code.
// A success code is not accepted here since it would allow a success result
// without content.
func NewFailureResult(code Code) *FetchResult {
	if code == CodeSuccess {
		panic("success fetch result requires content")
	}

	return &FetchResult{Code: code}
}

// Fetcher retrieves content from the underlying content addressable storage.
type Fetcher interface {
	// Fetch retrieves the content at the given address. Retrieval is aborted
	// with CodeMaxSizeExceeded if the content is larger than maxSizeBytes.
	// All content-level outcomes are reported in the fetch result; the error
	// return is reserved for transport failure against the storage network.
	Fetch(ctx context.Context, address string, maxSizeBytes uint64) (*FetchResult, error)
}
