/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mocks

import (
	"context"
	"sync"

	"github.com/trustbloc/sidetree-node-go/pkg/api/cas"
	"github.com/trustbloc/sidetree-node-go/pkg/casutil"
)

// MockCAS mocks content addressable storage for testing purposes.
type MockCAS struct {
	mutex   sync.RWMutex
	m       map[string][]byte
	results map[string]*cas.FetchResult
	err     error
}

// NewMockCAS creates a mock CAS.
func NewMockCAS() *MockCAS {
	return &MockCAS{
		m:       make(map[string][]byte),
		results: make(map[string]*cas.FetchResult),
	}
}

// Write stores the given content and returns its address.
func (m *MockCAS) Write(content []byte) (string, error) {
	address, err := casutil.ComputeAddress(content)
	if err != nil {
		return "", err
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.m[address] = content

	return address, nil
}

// Fetch retrieves the content at the given address.
func (m *MockCAS) Fetch(_ context.Context, address string, maxSizeBytes uint64) (*cas.FetchResult, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.err != nil {
		return nil, m.err
	}

	if result, ok := m.results[address]; ok {
		return result, nil
	}

	if err := casutil.ValidateAddress(address); err != nil {
		return cas.NewFailureResult(cas.CodeInvalidHash), nil
	}

	content, ok := m.m[address]
	if !ok {
		return cas.NewFailureResult(cas.CodeNotFound), nil
	}

	if uint64(len(content)) > maxSizeBytes {
		return cas.NewFailureResult(cas.CodeMaxSizeExceeded), nil
	}

	return cas.NewSuccessResult(content), nil
}

// SetResult injects a fetch result for the given address.
func (m *MockCAS) SetResult(address string, result *cas.FetchResult) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.results[address] = result
}

// SetError injects a transport error into the mock CAS.
func (m *MockCAS) SetError(err error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.err = err
}
