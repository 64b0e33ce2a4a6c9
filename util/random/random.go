// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package random

import (
	"crypto/rand"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// Uint64 returns a cryptographically random uint64 value.
func Uint64() (uint64, error) {
	return randomUint64(rand.Reader)
}

// randomUint64 returns a cryptographically random uint64 value read from r.
func randomUint64(r io.Reader) (uint64, error) {
	var b [8]byte
	_, err := io.ReadFull(r, b[:])
	if err != nil {
		return 0, errors.WithStack(err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}
