/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package casclient reads content from a content addressable storage gateway
// over HTTP. This node only ever reads from CAS; batch files are written by
// the batch writer of the anchoring party.
package casclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/trustbloc/sidetree-node-go/pkg/api/cas"
	"github.com/trustbloc/sidetree-node-go/pkg/casutil"
	"github.com/trustbloc/sidetree-node-go/internal/log"
)

var logger = log.New("sidetree-node-casclient")

const defaultRequestTimeout = 30 * time.Second

// Client fetches content by address from an HTTP CAS gateway. It implements
// cas.Fetcher.
type Client struct {
	gatewayURL string
	httpClient *http.Client
}

// Option is a client option.
type Option func(c *Client)

// WithHTTPClient sets the HTTP client used for gateway requests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// New returns a client that resolves content addresses against the given
// gateway URL.
func New(gatewayURL string, opts ...Option) *Client {
	c := &Client{
		gatewayURL: strings.TrimSuffix(gatewayURL, "/"),
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Fetch retrieves the content at the given address. Content-level outcomes
// travel in the fetch result; the error return is reserved for transport
// failure against the gateway.
func (c *Client) Fetch(ctx context.Context, address string, maxSizeBytes uint64) (*cas.FetchResult, error) {
	if err := casutil.ValidateAddress(address); err != nil {
		logger.Debug("Invalid content address", log.WithAddress(address), log.WithError(err))

		return cas.NewFailureResult(cas.CodeInvalidHash), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/%s", c.gatewayURL, address), nil)
	if err != nil {
		return nil, errors.Wrapf(err, "build request for address[%s]", address)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "fetch address[%s]", address)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return cas.NewFailureResult(cas.CodeNotFound), nil
	case http.StatusUnprocessableEntity:
		// the gateway could not serve the object as a flat byte stream
		return cas.NewFailureResult(cas.CodeNotAFile), nil
	default:
		return nil, errors.Errorf("fetch address[%s]: gateway returned status %d", address, resp.StatusCode)
	}

	content, err := io.ReadAll(io.LimitReader(resp.Body, int64(maxSizeBytes)+1))
	if err != nil {
		return nil, errors.Wrapf(err, "read content of address[%s]", address)
	}

	if uint64(len(content)) > maxSizeBytes {
		logger.Debug("Content exceeds maximum allowed size",
			log.WithAddress(address), log.WithMaxSize(maxSizeBytes))

		return cas.NewFailureResult(cas.CodeMaxSizeExceeded), nil
	}

	if err := casutil.ValidateContent(content, address); err != nil {
		logger.Debug("Content does not match its address", log.WithAddress(address), log.WithError(err))

		return cas.NewFailureResult(cas.CodeInvalidHash), nil
	}

	return cas.NewSuccessResult(content), nil
}
