// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package btcec

import (
	"fmt"
	"math/big"

	"github.com/pkg/errors"
)

const (
	// asn1SequenceID is the ASN.1 identifier for a sequence.
	asn1SequenceID = 0x30

	// asn1IntegerID is the ASN.1 identifier for an integer.
	asn1IntegerID = 0x02

	// minSigLen is the minimum length of a DER encoded signature and is
	// when both R and S are 1 byte each.
	//
	// 0x30 + <1-byte> + 0x02 + 0x01 + <byte> + 0x2 + 0x01 + <byte>
	minSigLen = 8
)

var bigOne = big.NewInt(1)

// Signature is a type representing an ecdsa signature.
type Signature struct {
	R *big.Int
	S *big.Int
}

// NewSignature instantiates a new signature given some R,S values.
func NewSignature(r, s *big.Int) *Signature {
	return &Signature{R: new(big.Int).Set(r), S: new(big.Int).Set(s)}
}

// Serialize returns the ECDSA signature in the Distinguished Encoding Rules
// (DER) format:
//
// 0x30 <total length> 0x02 <length of R> <R> 0x02 <length of S> <S>
//
// R and S are minimal big endian numbers, prefixed with a zero byte when
// their high bit is set so they are not read as negative. Serialize encodes
// S as is: low-s normalization happens when signing.
func (sig *Signature) Serialize() []byte {
	canonR := canonicalizeInt(sig.R)
	canonS := canonicalizeInt(sig.S)

	// Total length of returned signature is 1 byte for each magic and
	// length (6 total), plus lengths of R and S.
	totalLen := 6 + len(canonR) + len(canonS)
	b := make([]byte, 0, totalLen)
	b = append(b, asn1SequenceID)
	b = append(b, byte(totalLen-2))
	b = append(b, asn1IntegerID)
	b = append(b, byte(len(canonR)))
	b = append(b, canonR...)
	b = append(b, asn1IntegerID)
	b = append(b, byte(len(canonS)))
	b = append(b, canonS...)
	return b
}

// canonicalizeInt returns the bytes of val with leading zeros stripped and a
// single zero byte prepended when the high bit is set.
func canonicalizeInt(val *big.Int) []byte {
	b := val.Bytes()
	if len(b) == 0 {
		b = []byte{0x00}
	}
	if b[0]&0x80 != 0 {
		paddedBytes := make([]byte, len(b)+1)
		copy(paddedBytes[1:], b)
		b = paddedBytes
	}
	return b
}

// ParseDERSignature parses a DER encoded signature. Every structural
// violation fails with ErrMalformedSignature: a wrong sequence or integer
// marker, a total length that disagrees with the buffer, an integer that is
// empty or negative, or trailing bytes.
func ParseDERSignature(sigStr []byte) (*Signature, error) {
	sigLen := len(sigStr)
	if sigLen < minSigLen {
		return nil, errors.Wrapf(ErrMalformedSignature, "too short: %d < %d", sigLen, minSigLen)
	}
	if sigStr[0] != asn1SequenceID {
		return nil, errors.Wrapf(ErrMalformedSignature, "format has wrong type: %#x", sigStr[0])
	}
	if int(sigStr[1]) != sigLen-2 {
		return nil, errors.Wrapf(ErrMalformedSignature, "bad length: %d != %d", sigStr[1], sigLen-2)
	}

	index := 2
	r, err := parseDERInt(sigStr, &index, "R")
	if err != nil {
		return nil, err
	}
	s, err := parseDERInt(sigStr, &index, "S")
	if err != nil {
		return nil, err
	}
	if index != sigLen {
		return nil, errors.Wrapf(ErrMalformedSignature, "%d trailing bytes", sigLen-index)
	}
	return &Signature{R: r, S: s}, nil
}

// parseDERInt reads one 0x02 <len> <bytes> integer starting at *index and
// advances the index past it.
func parseDERInt(sigStr []byte, index *int, name string) (*big.Int, error) {
	if *index+2 > len(sigStr) {
		return nil, errors.Wrapf(ErrMalformedSignature, "%s integer missing", name)
	}
	if sigStr[*index] != asn1IntegerID {
		return nil, errors.Wrapf(ErrMalformedSignature, "%s integer marker: %#x != %#x",
			name, sigStr[*index], asn1IntegerID)
	}
	length := int(sigStr[*index+1])
	*index += 2
	if length == 0 {
		return nil, errors.Wrapf(ErrMalformedSignature, "%s length is zero", name)
	}
	if *index+length > len(sigStr) {
		return nil, errors.Wrapf(ErrMalformedSignature, "%s length %d exceeds signature", name, length)
	}
	if sigStr[*index]&0x80 != 0 {
		return nil, errors.Wrapf(ErrMalformedSignature, "%s is negative", name)
	}
	val := new(big.Int).SetBytes(sigStr[*index : *index+length])
	*index += length
	return val, nil
}

// Verify returns whether the signature is valid for the message hash z
// under pubKey.
func (sig *Signature) Verify(z *big.Int, pubKey *PublicKey) bool {
	return pubKey.Verify(z, sig)
}

// IsEqual compares this Signature instance to the one passed, returning true
// if both Signatures are equivalent. A signature is equivalent to another, if
// they both have the same scalar value for R and S.
func (sig *Signature) IsEqual(otherSig *Signature) bool {
	return sig.R.Cmp(otherSig.R) == 0 &&
		sig.S.Cmp(otherSig.S) == 0
}

// String returns Signature(r,s) with both values in hex.
func (sig *Signature) String() string {
	return fmt.Sprintf("Signature(%x,%x)", sig.R, sig.S)
}
