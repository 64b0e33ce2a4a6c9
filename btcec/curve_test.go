// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package btcec

import (
	"bytes"
	"math/big"
	"testing"

	decredsecp "github.com/decred/dcrd/dcrec/secp256k1/v4"
)

func TestS256Parameters(t *testing.T) {
	curve := S256()
	if !curve.IsOnCurve(curve.Gx, curve.Gy) {
		t.Fatalf("generator is not on the curve")
	}
	if got := curve.ScalarMult(curve.G(), curve.N); !got.IsInfinity() {
		t.Errorf("N*G: got %s, want infinity", got)
	}
	if got := new(big.Int).Mod(curve.P, big.NewInt(4)).Int64(); got != 3 {
		t.Errorf("P mod 4: got %d, want 3", got)
	}
	if curve.IsOnCurve(curve.Gx, new(big.Int).Add(curve.Gy, bigOne)) {
		t.Errorf("IsOnCurve accepted a point off the curve")
	}
}

// TestScalarBaseMultDecred cross-checks k*G against the decred secp256k1
// implementation.
func TestScalarBaseMultDecred(t *testing.T) {
	scalars := []string{
		"1",
		"2",
		"7",
		"1388",
		"deadbeef12345",
		"aa5e28d6a97a2479a65527f7290311a3624d4cc0fa1578598ee3c2613bf99522",
		"fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364140",
	}

	curve := S256()
	for _, hexScalar := range scalars {
		k, _ := new(big.Int).SetString(hexScalar, 16)
		got := curve.ScalarBaseMult(k)

		var kBytes [32]byte
		k.FillBytes(kBytes[:])
		want := decredsecp.PrivKeyFromBytes(kBytes[:]).PubKey().SerializeUncompressed()

		gotKey := &PublicKey{point: got}
		if !bytes.Equal(gotKey.SerializeUncompressed(), want) {
			t.Errorf("ScalarBaseMult(%s): got %x, want %x", hexScalar,
				gotKey.SerializeUncompressed(), want)
		}
	}
}

func TestScalarMultReducesModN(t *testing.T) {
	curve := S256()
	k := big.NewInt(12345)
	kPlusN := new(big.Int).Add(k, curve.N)
	if !curve.ScalarBaseMult(k).Equal(curve.ScalarBaseMult(kPlusN)) {
		t.Errorf("ScalarBaseMult(k) != ScalarBaseMult(k+N)")
	}
}

func TestSqrt(t *testing.T) {
	curve := S256()
	for _, v := range []int64{4, 9, 1 << 20} {
		w := curve.fieldElement(big.NewInt(v))
		root := curve.Sqrt(w)
		if !root.PowInt64(2).Equal(w) {
			t.Errorf("Sqrt(%d): %s squared is not %d", v, root, v)
		}
	}
}
