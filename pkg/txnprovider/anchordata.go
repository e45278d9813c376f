/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package txnprovider

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const delimiter = "."
const allowedParts = 2

// nolint:gochecknoglobals
var integerRegex = regexp.MustCompile(`^[1-9]\d*$`)

// AnchorData holds the parsed parts of an anchor string.
type AnchorData struct {
	NumberOfOperations int
	BatchFileHash      string
}

// ParseAnchorData parses an anchor string of the form
// "numberOfOperations.batchFileHash" into an anchor data model.
func ParseAnchorData(data string) (*AnchorData, error) {
	parts := strings.Split(data, delimiter)

	if len(parts) != allowedParts {
		return nil, errors.Errorf("parse anchor data[%s] failed: expecting [%d] parts, got [%d] parts",
			data, allowedParts, len(parts))
	}

	if !integerRegex.MatchString(parts[0]) {
		return nil, errors.Errorf("parse anchor data[%s] failed: number of operations must be positive integer", data)
	}

	opsNum, err := strconv.Atoi(parts[0])
	if err != nil {
		return nil, errors.Wrapf(err, "parse anchor data[%s] failed", data)
	}

	return &AnchorData{
		NumberOfOperations: opsNum,
		BatchFileHash:      parts[1],
	}, nil
}

// GetAnchorString returns the anchor string representation of the anchor data.
func (ad *AnchorData) GetAnchorString() string {
	return fmt.Sprintf("%d%s%s", ad.NumberOfOperations, delimiter, ad.BatchFileHash)
}
