// Copyright (c) 2013-2014 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"bytes"

	"github.com/btcsuite/btcutil/base58"
	"github.com/huynhtastic/programmingbitcoin/util/hashes"
	"github.com/pkg/errors"
)

// checksumSize is the number of hash256 bytes appended to a Base58Check
// payload.
const checksumSize = 4

// checksum returns the first four bytes of hash256(input).
func checksum(input []byte) []byte {
	return hashes.Hash256(input)[:checksumSize]
}

// CheckEncode prepends a version byte to payload, appends a four byte
// checksum and returns the base58 encoding of the result. Leading zero bytes
// are encoded as '1' characters.
func CheckEncode(payload []byte, version byte) string {
	b := make([]byte, 0, 1+len(payload)+checksumSize)
	b = append(b, version)
	b = append(b, payload...)
	b = append(b, checksum(b)...)
	return base58.Encode(b)
}

// CheckDecode decodes a string that was encoded with CheckEncode and verifies
// its checksum. It returns the payload and the version byte.
func CheckDecode(input string) (result []byte, version byte, err error) {
	decoded := base58.Decode(input)
	if len(decoded) < 1+checksumSize {
		return nil, 0, errors.Wrapf(ErrInvalidFormat, "%q decodes to %d bytes", input, len(decoded))
	}
	body := decoded[:len(decoded)-checksumSize]
	if !bytes.Equal(checksum(body), decoded[len(decoded)-checksumSize:]) {
		return nil, 0, errors.Wrapf(ErrInvalidAddressChecksum, "decoding %q", input)
	}
	return body[1:], body[0], nil
}
