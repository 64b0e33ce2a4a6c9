// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import "github.com/pkg/errors"

var (
	// ErrInvalidAddressChecksum is returned when the checksum of a
	// Base58Check string does not match its payload.
	ErrInvalidAddressChecksum = errors.New("checksum mismatch")

	// ErrInvalidFormat is returned when a Base58Check string is not valid
	// base58, or decodes to a payload too short or of the wrong length.
	ErrInvalidFormat = errors.New("invalid format: version and/or checksum bytes missing")

	// ErrUnknownAddressType describes an error where an address can not be
	// decoded as a specific address type due to the version byte not
	// matching the network the address is decoded for.
	ErrUnknownAddressType = errors.New("unknown address type")
)
