// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package btcec

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/pkg/errors"
)

func TestNewPrivateKeyRange(t *testing.T) {
	curve := S256()
	tests := []struct {
		name    string
		secret  *big.Int
		isValid bool
	}{
		{"zero", big.NewInt(0), false},
		{"negative", big.NewInt(-1), false},
		{"one", big.NewInt(1), true},
		{"N-1", new(big.Int).Sub(curve.N, bigOne), true},
		{"N", curve.N, false},
	}

	for _, test := range tests {
		_, err := NewPrivateKey(test.secret)
		if test.isValid && err != nil {
			t.Errorf("%s: unexpected error %v", test.name, err)
		}
		if !test.isValid && !errors.Is(err, ErrInvalidPrivateKey) {
			t.Errorf("%s: got error %v, want %v", test.name, err, ErrInvalidPrivateKey)
		}
	}
}

func TestPrivKeys(t *testing.T) {
	key := decodeHex("eaf02ca348c524e6392655ba4d29603cd1a7347d9d65cfe93ce1ebffdca22694")

	priv, err := PrivKeyFromBytes(key)
	if err != nil {
		t.Fatalf("PrivKeyFromBytes: %v", err)
	}
	if !bytes.Equal(priv.Serialize(), key) {
		t.Errorf("Serialize: got %x, want %x", priv.Serialize(), key)
	}
	if priv.Hex() != "eaf02ca348c524e6392655ba4d29603cd1a7347d9d65cfe93ce1ebffdca22694" {
		t.Errorf("Hex: got %s", priv.Hex())
	}

	_, err = ParsePubKey(priv.PubKey().SerializeUncompressed())
	if err != nil {
		t.Errorf("ParsePubKey: %v", err)
	}

	small := secretKey(big.NewInt(1))
	if len(small.Serialize()) != PrivKeyBytesLen || len(small.Hex()) != 64 {
		t.Errorf("small secret is not padded: %x %s", small.Serialize(), small.Hex())
	}
	if small.Secret().Cmp(bigOne) != 0 {
		t.Errorf("Secret: got %s, want 1", small.Secret())
	}
}

func TestGeneratePrivateKey(t *testing.T) {
	first, err := GeneratePrivateKey()
	if err != nil {
		t.Fatalf("GeneratePrivateKey: %v", err)
	}
	second, err := GeneratePrivateKey()
	if err != nil {
		t.Fatalf("GeneratePrivateKey: %v", err)
	}
	if first.Secret().Cmp(second.Secret()) == 0 {
		t.Errorf("two generated keys share a secret")
	}
}

func TestSignAndVerify(t *testing.T) {
	key, err := GeneratePrivateKey()
	if err != nil {
		t.Fatalf("GeneratePrivateKey: %v", err)
	}
	z := fromHex("bc62d4b80d9e36da29c16c5d4d9f11731f36052c72401a76c23c0fb5a9b74423")

	sig, err := key.Sign(z)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if !key.PubKey().Verify(z, sig) || !sig.Verify(z, key.PubKey()) {
		t.Errorf("Verify rejected a fresh signature")
	}
	if sig.S.Cmp(S256().HalfOrder()) > 0 {
		t.Errorf("Sign produced high s %x", sig.S)
	}

	otherZ := new(big.Int).Add(z, bigOne)
	if key.PubKey().Verify(otherZ, sig) {
		t.Errorf("Verify accepted the signature for a different hash")
	}

	otherKey := secretKey(big.NewInt(12345))
	if otherKey.PubKey().Verify(z, sig) {
		t.Errorf("Verify accepted the signature under a different key")
	}

	// The same message signed twice must use different nonces.
	again, err := key.Sign(z)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if again.R.Cmp(sig.R) == 0 {
		t.Errorf("two signatures share r %x", sig.R)
	}
}

func TestVerifyRejectsOutOfRange(t *testing.T) {
	key := secretKey(big.NewInt(5000))
	z := big.NewInt(42)
	sig, err := key.Sign(z)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	bad := []*Signature{
		{R: big.NewInt(0), S: sig.S},
		{R: sig.R, S: big.NewInt(0)},
		{R: new(big.Int).Add(sig.R, S256().N), S: sig.S},
		{R: sig.R, S: S256().N},
	}
	for i, candidate := range bad {
		if key.PubKey().Verify(z, candidate) {
			t.Errorf("Verify #%d accepted %s", i, candidate)
		}
	}
}

// TestSignWithNonceReader checks that the nonce drawn from the reader is the
// one used for r.
func TestSignWithNonceReader(t *testing.T) {
	key := secretKey(big.NewInt(0xdeadbeef))
	z := big.NewInt(0x1234)

	nonceBytes := bytes.Repeat([]byte{0x11}, 32)
	sig, err := key.SignWithNonceReader(z, bytes.NewReader(nonceBytes))
	if err != nil {
		t.Fatalf("SignWithNonceReader: %v", err)
	}

	// The reader yields a value below N-1; the nonce is that value plus one.
	k := new(big.Int).SetBytes(nonceBytes)
	k.Add(k, bigOne)
	wantR := S256().ScalarBaseMult(k).X().Num()
	wantR.Mod(wantR, S256().N)
	if sig.R.Cmp(wantR) != 0 {
		t.Errorf("r: got %x, want %x", sig.R, wantR)
	}
	if !key.PubKey().Verify(z, sig) {
		t.Errorf("Verify rejected the signature")
	}

	// An exhausted nonce source is an error.
	if _, err := key.SignWithNonceReader(z, bytes.NewReader(nil)); err == nil {
		t.Errorf("SignWithNonceReader: expected an error from an empty reader")
	}
}
