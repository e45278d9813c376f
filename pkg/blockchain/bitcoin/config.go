/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bitcoin

import (
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/pkg/errors"
)

const defaultAnchorPrefix = "sidetree:"

// Config configures the bitcoin chain client. It is passed explicitly to New;
// the client never reads the environment.
type Config struct {
	// RPCHost is the host:port of the bitcoin node's RPC interface.
	RPCHost string

	// RPCUser and RPCPassword authenticate against the node.
	RPCUser     string
	RPCPassword string

	// Network selects the chain parameters: mainnet, testnet, regtest or simnet.
	Network string

	// GenesisBlockHeight is the height at which anchoring began; scans for
	// the full anchoring history start here rather than at the chain genesis.
	GenesisBlockHeight uint64

	// AnchorPrefix tags anchoring outputs so they can be recognized when
	// scanning blocks. Defaults to "sidetree:".
	AnchorPrefix string
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.RPCHost == "" {
		return errors.New("bitcoin config: RPC host is required")
	}

	if _, err := c.chainParams(); err != nil {
		return err
	}

	return nil
}

func (c *Config) chainParams() (*chaincfg.Params, error) {
	switch c.Network {
	case "", "mainnet":
		return &chaincfg.MainNetParams, nil
	case "testnet":
		return &chaincfg.TestNet3Params, nil
	case "regtest":
		return &chaincfg.RegressionNetParams, nil
	case "simnet":
		return &chaincfg.SimNetParams, nil
	default:
		return nil, errors.Errorf("bitcoin config: unsupported network [%s]", c.Network)
	}
}

func (c *Config) anchorPrefix() string {
	if c.AnchorPrefix == "" {
		return defaultAnchorPrefix
	}

	return c.AnchorPrefix
}
