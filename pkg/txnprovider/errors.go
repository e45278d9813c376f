/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package txnprovider

import (
	"fmt"

	"github.com/trustbloc/sidetree-node-go/pkg/api/cas"
)

// ContentError reports a non-success content fetch outcome for a specific
// address. It is a permanent outcome for that address: retrying the identical
// fetch is not expected to succeed, so the caller should treat the batch as
// unresolvable rather than retry.
type ContentError struct {
	Address string
	Code    cas.Code
}

// Error implements the error interface.
func (e *ContentError) Error() string {
	return fmt.Sprintf("content at address[%s] could not be retrieved: %s", e.Address, e.Code)
}

// Is reports a match for any ContentError.
func (e *ContentError) Is(target error) bool {
	_, ok := target.(*ContentError)

	return ok
}
