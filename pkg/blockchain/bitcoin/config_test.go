/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bitcoin

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		cfg := &Config{RPCHost: "localhost:8332", Network: "regtest"}
		require.NoError(t, cfg.Validate())
	})

	t.Run("missing host", func(t *testing.T) {
		cfg := &Config{Network: "mainnet"}
		err := cfg.Validate()
		require.Error(t, err)
		require.Contains(t, err.Error(), "RPC host is required")
	})

	t.Run("unsupported network", func(t *testing.T) {
		cfg := &Config{RPCHost: "localhost:8332", Network: "liquid"}
		err := cfg.Validate()
		require.Error(t, err)
		require.Contains(t, err.Error(), "unsupported network")
	})
}

func TestConfigDefaults(t *testing.T) {
	cfg := &Config{RPCHost: "localhost:8332"}

	require.Equal(t, "sidetree:", cfg.anchorPrefix())

	params, err := cfg.chainParams()
	require.NoError(t, err)
	require.Equal(t, "mainnet", params.Name)
}
