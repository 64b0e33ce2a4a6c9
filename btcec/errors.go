// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package btcec

import "github.com/pkg/errors"

var (
	// ErrMalformedSignature is returned when a DER encoded signature
	// violates the expected structure.
	ErrMalformedSignature = errors.New("malformed signature")

	// ErrUnsupportedEncoding is returned when a serialized public key
	// starts with an unknown format byte.
	ErrUnsupportedEncoding = errors.New("unsupported public key encoding")

	// ErrMalformedPubKey is returned when a serialized public key has the
	// wrong length for its format or does not describe a curve point.
	ErrMalformedPubKey = errors.New("malformed public key")

	// ErrInvalidPrivateKey is returned when a secret is outside [1, N-1].
	ErrInvalidPrivateKey = errors.New("invalid private key")
)
