/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mocks

import (
	"github.com/trustbloc/sidetree-node-go/pkg/api/protocol"
)

// MaxBatchFileSize is the maximum batch file size used by the mock protocol.
const MaxBatchFileSize = 20000

// MockProtocolClient mocks a protocol client for testing purposes.
type MockProtocolClient struct {
	Protocol protocol.Protocol
}

// NewMockProtocolClient creates a mock protocol client with default protocol
// parameters.
func NewMockProtocolClient() *MockProtocolClient {
	return &MockProtocolClient{
		Protocol: protocol.Protocol{
			StartingBlockChainTime:       0,
			HashAlgorithmInMultiHashCode: 18, // sha2-256
			MaxOperationsPerBatch:        100,
			CompressionAlgorithm:         "GZIP",
			MaxBatchFileSize:             MaxBatchFileSize,
		},
	}
}

// Current returns the mock protocol parameters.
func (m *MockProtocolClient) Current() protocol.Protocol {
	return m.Protocol
}
