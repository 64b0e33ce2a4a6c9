// Copyright 2010 The Go Authors. All rights reserved.
// Copyright 2011 ThePiachu. All rights reserved.
// Copyright 2013-2014 Conformal Systems LLC. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package btcec

// References:
//   [SECG]: Recommended Elliptic Curve Domain Parameters
//     http://www.secg.org/sec2-v2.pdf

// The curve arithmetic itself lives in package ecc, in affine coordinates over
// big integers. This package fixes the secp256k1 parameters and builds keys
// and ECDSA on top of it.

import (
	"math/big"
	"sync"

	"github.com/huynhtastic/programmingbitcoin/ecc"
)

// KoblitzCurve holds the domain parameters of a curve y^2 = x^3 + ax + b
// over the prime field P, with a generator (Gx, Gy) of prime order N.
type KoblitzCurve struct {
	P       *big.Int // the order of the underlying field
	N       *big.Int // the order of the base point
	A, B    *big.Int // the constants of the curve equation
	Gx, Gy  *big.Int // (x,y) of the base point
	BitSize int      // the size of the underlying field
	H       int      // cofactor of the curve.

	q         *big.Int // (P+1)/4
	halfOrder *big.Int // N/2
	a, b      *ecc.FieldElement
	g         *ecc.Point
}

// QPlus1Div4 returns the (P+1)/4 constant for the curve for use in calculating
// square roots via exponentiation.
func (curve *KoblitzCurve) QPlus1Div4() *big.Int {
	return new(big.Int).Set(curve.q)
}

// HalfOrder returns N/2, the largest s value of a canonical signature.
func (curve *KoblitzCurve) HalfOrder() *big.Int {
	return new(big.Int).Set(curve.halfOrder)
}

// G returns the generator point.
func (curve *KoblitzCurve) G() *ecc.Point {
	return curve.g
}

// Infinity returns the point at infinity of the curve.
func (curve *KoblitzCurve) Infinity() *ecc.Point {
	return ecc.NewInfinity(curve.a, curve.b)
}

// fieldElement returns v reduced into the curve's field.
func (curve *KoblitzCurve) fieldElement(v *big.Int) *ecc.FieldElement {
	fe, err := ecc.NewFieldElement(new(big.Int).Mod(v, curve.P), curve.P)
	if err != nil {
		// Unreachable: the value was just reduced.
		panic(err)
	}
	return fe
}

// NewPoint returns the affine point (x, y). It fails when x or y is not
// smaller than P or the point is not on the curve.
func (curve *KoblitzCurve) NewPoint(x, y *big.Int) (*ecc.Point, error) {
	fx, err := ecc.NewFieldElement(x, curve.P)
	if err != nil {
		return nil, err
	}
	fy, err := ecc.NewFieldElement(y, curve.P)
	if err != nil {
		return nil, err
	}
	return ecc.NewPoint(fx, fy, curve.a, curve.b)
}

// IsOnCurve returns whether (x, y) is a point of the curve.
func (curve *KoblitzCurve) IsOnCurve(x, y *big.Int) bool {
	_, err := curve.NewPoint(x, y)
	return err == nil
}

// ScalarBaseMult returns k*G. The scalar is first reduced modulo N.
func (curve *KoblitzCurve) ScalarBaseMult(k *big.Int) *ecc.Point {
	return curve.ScalarMult(curve.g, k)
}

// ScalarMult returns k*point. The scalar is first reduced modulo N, which is
// valid for any point of the prime order subgroup.
func (curve *KoblitzCurve) ScalarMult(point *ecc.Point, k *big.Int) *ecc.Point {
	return point.ScalarMult(new(big.Int).Mod(k, curve.N))
}

// Sqrt returns a square root of w in the curve's field. Since P = 3 mod 4,
// w^((P+1)/4) is a root whenever w is a quadratic residue. The caller must
// square the result to find out whether w had a root at all.
func (curve *KoblitzCurve) Sqrt(w *ecc.FieldElement) *ecc.FieldElement {
	return w.Pow(curve.q)
}

// Curve parameters taken from: http://www.secg.org/sec2-v2.pdf
var initonce sync.Once
var secp256k1 KoblitzCurve

func initS256() {
	// See [SECG] section 2.4.1
	secp256k1.P, _ = new(big.Int).SetString("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFC2F", 16)
	secp256k1.N, _ = new(big.Int).SetString("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141", 16)
	secp256k1.A = big.NewInt(0)
	secp256k1.B = big.NewInt(7)
	secp256k1.Gx, _ = new(big.Int).SetString("79BE667EF9DCBBAC55A06295CE870B07029BFCDB2DCE28D959F2815B16F81798", 16)
	secp256k1.Gy, _ = new(big.Int).SetString("483ADA7726A3C4655DA4FBFC0E1108A8FD17B448A68554199C47D08FFB10D4B8", 16)
	secp256k1.BitSize = 256
	secp256k1.H = 1
	secp256k1.q = new(big.Int).Div(new(big.Int).Add(secp256k1.P,
		big.NewInt(1)), big.NewInt(4))
	secp256k1.halfOrder = new(big.Int).Rsh(secp256k1.N, 1)

	secp256k1.a = secp256k1.fieldElement(secp256k1.A)
	secp256k1.b = secp256k1.fieldElement(secp256k1.B)
	g, err := secp256k1.NewPoint(secp256k1.Gx, secp256k1.Gy)
	if err != nil {
		panic("secp256k1 generator is not on the curve: " + err.Error())
	}
	secp256k1.g = g
}

// S256 returns a Curve which implements secp256k1.
func S256() *KoblitzCurve {
	initonce.Do(initS256)
	return &secp256k1
}
