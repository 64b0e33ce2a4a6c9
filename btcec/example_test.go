// Copyright (c) 2014 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package btcec_test

import (
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/huynhtastic/programmingbitcoin/btcec"
	"github.com/huynhtastic/programmingbitcoin/util/hashes"
)

// This example demonstrates signing a message with a secp256k1 private key
// that is first parsed from raw bytes and serializing the generated signature.
func Example_signMessage() {
	// Decode a hex-encoded private key.
	pkBytes, err := hex.DecodeString("22a47fa09a223f2aa079edf85a7c2d4f87" +
		"20ee63e502ee2869afab7de234b80c")
	if err != nil {
		fmt.Println(err)
		return
	}
	privKey, err := btcec.PrivKeyFromBytes(pkBytes)
	if err != nil {
		fmt.Println(err)
		return
	}

	// Sign the double sha256 of a message using the private key.
	message := "test message"
	z := new(big.Int).SetBytes(hashes.Hash256([]byte(message)))
	signature, err := privKey.Sign(z)
	if err != nil {
		fmt.Println(err)
		return
	}

	// Round trip the signature through DER and verify it.
	parsed, err := btcec.ParseDERSignature(signature.Serialize())
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("Signature Verified? %v\n", privKey.PubKey().Verify(z, parsed))

	// Output:
	// Signature Verified? true
}

// This example demonstrates verifying a secp256k1 signature against a public
// key that is first parsed from its compressed SEC encoding.
func Example_verifySignature() {
	pubKeyBytes, err := hex.DecodeString("0357a4f368868a8a6d572991e484e664810ff14c05c0fa023275251151fe0e53d1")
	if err != nil {
		fmt.Println(err)
		return
	}
	pubKey, err := btcec.ParsePubKey(pubKeyBytes)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("x: %x\n", pubKey.X())

	// Output:
	// x: 57a4f368868a8a6d572991e484e664810ff14c05c0fa023275251151fe0e53d1
}
