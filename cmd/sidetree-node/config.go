/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// config is the explicit configuration object passed to the node's
// constructors. All settings come from the config file with environment
// overrides; nothing else in the node reads the environment.
type config struct {
	ListenAddress string        `mapstructure:"listen-address"`
	BasePath      string        `mapstructure:"base-path"`
	DataDir       string        `mapstructure:"data-dir"`
	LogLevel      string        `mapstructure:"log-level"`
	SyncInterval  time.Duration `mapstructure:"sync-interval"`

	CASGatewayURL string `mapstructure:"cas-gateway-url"`

	Protocol protocolConfig `mapstructure:"protocol"`
	Bitcoin  bitcoinConfig  `mapstructure:"bitcoin"`
}

type protocolConfig struct {
	MaxOperationsPerBatch uint   `mapstructure:"max-operations-per-batch"`
	MaxBatchFileSize      uint64 `mapstructure:"max-batch-file-size"`
	CompressionAlgorithm  string `mapstructure:"compression-algorithm"`
}

type bitcoinConfig struct {
	RPCHost            string `mapstructure:"rpc-host"`
	RPCUser            string `mapstructure:"rpc-user"`
	RPCPassword        string `mapstructure:"rpc-password"`
	Network            string `mapstructure:"network"`
	GenesisBlockHeight uint64 `mapstructure:"genesis-block-height"`
}

func loadConfig(path string) (*config, error) {
	v := viper.New()

	v.SetDefault("listen-address", ":8080")
	v.SetDefault("base-path", "/sidetree/v1")
	v.SetDefault("data-dir", "data")
	v.SetDefault("log-level", "info")
	v.SetDefault("sync-interval", 10*time.Second)
	v.SetDefault("protocol.max-operations-per-batch", 100)
	v.SetDefault("protocol.max-batch-file-size", 20000)
	v.SetDefault("protocol.compression-algorithm", "GZIP")

	v.SetEnvPrefix("SIDETREE_NODE")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)

		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config file[%s]", path)
		}
	}

	cfg := &config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}

	if cfg.CASGatewayURL == "" {
		return nil, errors.New("config: cas-gateway-url is required")
	}

	if cfg.Bitcoin.RPCHost == "" {
		return nil, errors.New("config: bitcoin.rpc-host is required")
	}

	return cfg, nil
}
