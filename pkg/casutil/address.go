/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package casutil provides validation of content addresses and verification of
// fetched content against its address.
package casutil

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"

	"github.com/multiformats/go-multibase"
	"github.com/multiformats/go-multihash"
	"github.com/pkg/errors"
)

// DecodeAddress decodes a content address into multihash bytes. An address is
// either a base64url(no padding) encoded multihash or a self-describing
// multibase encoded multihash.
func DecodeAddress(address string) ([]byte, error) {
	if address == "" {
		return nil, errors.New("content address is empty")
	}

	// base64url characters overlap with several multibase alphabets so both
	// decodings are attempted; the multihash check decides which one applies.
	if mh, err := base64.RawURLEncoding.DecodeString(address); err == nil {
		if validated, err := validateMultihash(address, mh); err == nil {
			return validated, nil
		}
	}

	_, mh, err := multibase.Decode(address)
	if err != nil {
		return nil, errors.Wrapf(err, "content address[%s] is not base64url or multibase encoded", address)
	}

	return validateMultihash(address, mh)
}

func validateMultihash(address string, mh []byte) ([]byte, error) {
	dmh, err := multihash.Decode(mh)
	if err != nil {
		return nil, errors.Wrapf(err, "content address[%s] is not a valid multihash", address)
	}

	if !multihash.ValidCode(dmh.Code) {
		return nil, errors.Errorf("content address[%s] uses unsupported multihash code[%d]", address, dmh.Code)
	}

	return mh, nil
}

// ValidateAddress returns an error if the given content address is malformed
// or does not carry a verifiable content hash.
func ValidateAddress(address string) error {
	_, err := DecodeAddress(address)

	return err
}

// ValidateContent verifies that the given content hashes to the given address
// using the hash algorithm embedded in the address.
func ValidateContent(content []byte, address string) error {
	mh, err := DecodeAddress(address)
	if err != nil {
		return err
	}

	dmh, err := multihash.Decode(mh)
	if err != nil {
		return errors.Wrapf(err, "decode multihash for address[%s]", address)
	}

	if dmh.Code != multihash.SHA2_256 {
		return errors.Errorf("hash algorithm[%d] of address[%s] is not supported for content verification", dmh.Code, address)
	}

	sum := sha256.Sum256(content)

	computed, err := multihash.Encode(sum[:], dmh.Code)
	if err != nil {
		return errors.Wrap(err, "compute content multihash")
	}

	if !bytes.Equal(computed, mh) {
		return errors.Errorf("content does not match hash of address[%s]", address)
	}

	return nil
}

// ComputeAddress returns the base64url encoded SHA2-256 multihash address for
// the given content.
func ComputeAddress(content []byte) (string, error) {
	sum := sha256.Sum256(content)

	mh, err := multihash.Encode(sum[:], multihash.SHA2_256)
	if err != nil {
		return "", errors.Wrap(err, "compute content multihash")
	}

	return base64.RawURLEncoding.EncodeToString(mh), nil
}
