/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := `
cas-gateway-url: http://localhost:5001/cas
sync-interval: 2s
bitcoin:
  rpc-host: localhost:18443
  network: regtest
  genesis-block-height: 100
`
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o600))

	c, err := loadConfig(path)
	require.NoError(t, err)

	require.Equal(t, "http://localhost:5001/cas", c.CASGatewayURL)
	require.Equal(t, 2*time.Second, c.SyncInterval)
	require.Equal(t, "localhost:18443", c.Bitcoin.RPCHost)
	require.Equal(t, "regtest", c.Bitcoin.Network)
	require.Equal(t, uint64(100), c.Bitcoin.GenesisBlockHeight)

	// defaults
	require.Equal(t, ":8080", c.ListenAddress)
	require.Equal(t, "/sidetree/v1", c.BasePath)
	require.Equal(t, uint(100), c.Protocol.MaxOperationsPerBatch)
	require.Equal(t, uint64(20000), c.Protocol.MaxBatchFileSize)
	require.Equal(t, "GZIP", c.Protocol.CompressionAlgorithm)
}

func TestLoadConfigMissingGateway(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := `
bitcoin:
  rpc-host: localhost:18443
`
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o600))

	_, err := loadConfig(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "cas-gateway-url")
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
