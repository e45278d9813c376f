/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/multiformats/go-multihash"

	"github.com/trustbloc/sidetree-node-go/pkg/api/protocol"
	"github.com/trustbloc/sidetree-node-go/pkg/blockchain"
	"github.com/trustbloc/sidetree-node-go/pkg/blockchain/bitcoin"
	"github.com/trustbloc/sidetree-node-go/pkg/casclient"
	"github.com/trustbloc/sidetree-node-go/pkg/compression"
	"github.com/trustbloc/sidetree-node-go/internal/log"
	"github.com/trustbloc/sidetree-node-go/pkg/observer"
	"github.com/trustbloc/sidetree-node-go/pkg/opstore"
	"github.com/trustbloc/sidetree-node-go/pkg/restapi/txnhandler"
	"github.com/trustbloc/sidetree-node-go/pkg/txnprovider"
)

var logger = log.New("sidetree-node")

const shutdownTimeout = 10 * time.Second

// staticProtocolClient serves a single protocol version. Versioned protocol
// parameter maps are out of scope for this node.
type staticProtocolClient struct {
	p protocol.Protocol
}

func (c *staticProtocolClient) Current() protocol.Protocol {
	return c.p
}

func main() {
	configPath := flag.String("config", "", "path to the node configuration file")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load configuration: %s\n", err)
		os.Exit(1)
	}

	setLogLevel(cfg.LogLevel)

	if err := run(cfg); err != nil {
		logger.Error("Node stopped with error", log.WithError(err))
		os.Exit(1)
	}
}

func run(cfg *config) error {
	store, err := opstore.New(filepath.Join(cfg.DataDir, "operations"))
	if err != nil {
		return err
	}

	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("Error closing operation store", log.WithError(err))
		}
	}()

	chainClient, err := bitcoin.New(&bitcoin.Config{
		RPCHost:            cfg.Bitcoin.RPCHost,
		RPCUser:            cfg.Bitcoin.RPCUser,
		RPCPassword:        cfg.Bitcoin.RPCPassword,
		Network:            cfg.Bitcoin.Network,
		GenesisBlockHeight: cfg.Bitcoin.GenesisBlockHeight,
	})
	if err != nil {
		return err
	}

	defer chainClient.Close()

	svc := blockchain.New(chainClient)

	pc := &staticProtocolClient{p: protocol.Protocol{
		StartingBlockChainTime:       cfg.Bitcoin.GenesisBlockHeight,
		HashAlgorithmInMultiHashCode: multihash.SHA2_256,
		MaxOperationsPerBatch:        cfg.Protocol.MaxOperationsPerBatch,
		CompressionAlgorithm:         cfg.Protocol.CompressionAlgorithm,
		MaxBatchFileSize:             cfg.Protocol.MaxBatchFileSize,
	}}

	provider := txnprovider.NewOperationProvider(pc,
		casclient.New(cfg.CASGatewayURL),
		compression.New(compression.WithDefaultAlgorithms()))

	obs := observer.New(&observer.Providers{
		Blockchain: svc,
		OpProvider: provider,
		OpStore:    store,
	}, observer.WithSyncInterval(cfg.SyncInterval))

	obs.Start()
	defer obs.Stop()

	router := mux.NewRouter()

	txnsHandler := txnhandler.NewTransactionsHandler(cfg.BasePath, svc)
	router.HandleFunc(txnsHandler.Path(), txnsHandler.Handler()).Methods(txnsHandler.Method())

	srv := &http.Server{
		Addr:    cfg.ListenAddress,
		Handler: router,
	}

	errCh := make(chan error, 1)

	go func() {
		logger.Info("Listening for requests", log.WithAddress(cfg.ListenAddress))

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info("Received signal, shutting down", log.WithSignal(sig))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(ctx)
}

func setLogLevel(level string) {
	switch level {
	case "debug":
		log.SetDefaultLevel(log.DEBUG)
	case "info", "":
		log.SetDefaultLevel(log.INFO)
	case "warn":
		log.SetDefaultLevel(log.WARN)
	case "error":
		log.SetDefaultLevel(log.ERROR)
	default:
		logger.Warn("Unsupported log level, using INFO", log.WithLogLevel(level))
	}
}
