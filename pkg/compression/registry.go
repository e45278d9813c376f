/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package compression

import (
	"github.com/pkg/errors"

	"github.com/trustbloc/sidetree-node-go/pkg/compression/gzip"
)

// Algorithm defines compression algorithm functionality.
type Algorithm interface {
	Compress(value []byte) ([]byte, error)
	Decompress(value []byte, maxSizeBytes uint64) ([]byte, error)
	Accept(alg string) bool
}

// Registry contains compression algorithms.
type Registry struct {
	algorithms []Algorithm
}

// Option is a registry instance option.
type Option func(opts *Registry)

// New returns a new compression algorithm registry.
func New(opts ...Option) *Registry {
	registry := &Registry{}

	for _, opt := range opts {
		opt(registry)
	}

	return registry
}

// Compress compresses data using the specified algorithm.
func (r *Registry) Compress(alg string, data []byte) ([]byte, error) {
	algorithm, err := r.resolveAlgorithm(alg)
	if err != nil {
		return nil, err
	}

	result, err := algorithm.Compress(data)
	if err != nil {
		return nil, errors.Wrapf(err, "compression failed for algorithm[%s]", alg)
	}

	return result, nil
}

// Decompress decompresses data using the specified algorithm. Decompression
// is aborted when the output grows past maxSizeBytes so that a small
// compressed blob cannot exhaust memory.
func (r *Registry) Decompress(alg string, data []byte, maxSizeBytes uint64) ([]byte, error) {
	algorithm, err := r.resolveAlgorithm(alg)
	if err != nil {
		return nil, err
	}

	result, err := algorithm.Decompress(data, maxSizeBytes)
	if err != nil {
		return nil, errors.Wrapf(err, "decompression failed for algorithm[%s]", alg)
	}

	return result, nil
}

func (r *Registry) resolveAlgorithm(alg string) (Algorithm, error) {
	for _, algorithm := range r.algorithms {
		if algorithm.Accept(alg) {
			return algorithm, nil
		}
	}

	return nil, errors.Errorf("compression algorithm '%s' not supported", alg)
}

// WithAlgorithm adds the algorithm to the list of available algorithms.
func WithAlgorithm(alg Algorithm) Option {
	return func(opts *Registry) {
		opts.algorithms = append(opts.algorithms, alg)
	}
}

// WithDefaultAlgorithms adds the default algorithms to the list of available
// algorithms.
func WithDefaultAlgorithms() Option {
	return func(opts *Registry) {
		opts.algorithms = append(opts.algorithms, gzip.New())
	}
}
