// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"github.com/huynhtastic/programmingbitcoin/util/hashes"
)

// Hash160 calculates the hash ripemd160(sha256(b)).
func Hash160(buf []byte) []byte {
	return hashes.Hash160(buf)
}

// Hash256 calculates the hash sha256(sha256(b)).
func Hash256(buf []byte) []byte {
	return hashes.Hash256(buf)
}
