/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package casclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/trustbloc/sidetree-node-go/pkg/api/cas"
	"github.com/trustbloc/sidetree-node-go/pkg/casutil"
)

func TestFetch(t *testing.T) {
	content := []byte("batch file content")

	address, err := casutil.ComputeAddress(content)
	require.NoError(t, err)

	router := mux.NewRouter()
	router.HandleFunc("/{address}", func(rw http.ResponseWriter, req *http.Request) {
		switch mux.Vars(req)["address"] {
		case address:
			_, _ = rw.Write(content)
		case "directory":
			rw.WriteHeader(http.StatusUnprocessableEntity)
		default:
			rw.WriteHeader(http.StatusNotFound)
		}
	})

	server := httptest.NewServer(router)
	defer server.Close()

	client := New(server.URL)

	t.Run("success", func(t *testing.T) {
		result, err := client.Fetch(context.Background(), address, 1000)
		require.NoError(t, err)
		require.Equal(t, cas.CodeSuccess, result.Code)
		require.Equal(t, content, result.Content)
	})

	t.Run("invalid address", func(t *testing.T) {
		result, err := client.Fetch(context.Background(), "not-a-valid-address!!!", 1000)
		require.NoError(t, err)
		require.Equal(t, cas.CodeInvalidHash, result.Code)
		require.Nil(t, result.Content)
	})

	t.Run("not found", func(t *testing.T) {
		missing, err := casutil.ComputeAddress([]byte("never stored"))
		require.NoError(t, err)

		result, err := client.Fetch(context.Background(), missing, 1000)
		require.NoError(t, err)
		require.Equal(t, cas.CodeNotFound, result.Code)
		require.Nil(t, result.Content)
	})

	t.Run("max size exceeded", func(t *testing.T) {
		result, err := client.Fetch(context.Background(), address, 5)
		require.NoError(t, err)
		require.Equal(t, cas.CodeMaxSizeExceeded, result.Code)
		require.Nil(t, result.Content)
	})
}

func TestFetchContentMismatch(t *testing.T) {
	// gateway serves content that does not hash to the requested address
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, _ *http.Request) {
		_, _ = rw.Write([]byte("tampered content"))
	}))
	defer server.Close()

	address, err := casutil.ComputeAddress([]byte("original content"))
	require.NoError(t, err)

	result, err := New(server.URL).Fetch(context.Background(), address, 1000)
	require.NoError(t, err)
	require.Equal(t, cas.CodeInvalidHash, result.Code)
}

func TestFetchTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, _ *http.Request) {
		rw.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	address, err := casutil.ComputeAddress([]byte("content"))
	require.NoError(t, err)

	_, err = New(server.URL).Fetch(context.Background(), address, 1000)
	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), "status 502"))
}
