/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package gzip

import (
	"bytes"
	"compress/gzip"
	"io"

	"github.com/pkg/errors"
)

const algName = "GZIP"

// Algorithm implements gzip compression/decompression.
type Algorithm struct {
}

// New creates a new gzip algorithm instance.
func New() *Algorithm {
	return &Algorithm{}
}

// Compress will compress data using gzip.
func (a *Algorithm) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer

	zw := gzip.NewWriter(&buf)

	if _, err := zw.Write(data); err != nil {
		return nil, errors.Wrap(err, "write gzip data")
	}

	if err := zw.Close(); err != nil {
		return nil, errors.Wrap(err, "close gzip writer")
	}

	return buf.Bytes(), nil
}

// Decompress will decompress compressed data. It fails when the decompressed
// output exceeds maxSizeBytes.
func (a *Algorithm) Decompress(data []byte, maxSizeBytes uint64) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewBuffer(data))
	if err != nil {
		return nil, errors.Wrap(err, "create gzip reader")
	}

	defer func() {
		_ = zr.Close()
	}()

	decompressed, err := io.ReadAll(io.LimitReader(zr, int64(maxSizeBytes)+1))
	if err != nil {
		return nil, errors.Wrap(err, "read gzip data")
	}

	if uint64(len(decompressed)) > maxSizeBytes {
		return nil, errors.Errorf("decompressed content exceeds maximum allowed size %d", maxSizeBytes)
	}

	return decompressed, nil
}

// Accept algorithm.
func (a *Algorithm) Accept(alg string) bool {
	return alg == algName
}
