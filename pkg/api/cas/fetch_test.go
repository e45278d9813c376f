/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package cas

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewSuccessResult(t *testing.T) {
	result := NewSuccessResult([]byte("batch file content"))
	require.Equal(t, CodeSuccess, result.Code)
	require.Equal(t, []byte("batch file content"), result.Content)
}

func TestNewFailureResult(t *testing.T) {
	codes := []Code{CodeNotFound, CodeInvalidHash, CodeMaxSizeExceeded, CodeNotAFile}

	for _, code := range codes {
		result := NewFailureResult(code)
		require.Equal(t, code, result.Code)
		require.Nil(t, result.Content)
	}
}

func TestNewFailureResultWithSuccessCode(t *testing.T) {
	require.Panics(t, func() {
		NewFailureResult(CodeSuccess)
	})
}
