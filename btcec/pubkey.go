// Copyright (c) 2013-2014 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package btcec

import (
	"fmt"
	"math/big"

	"github.com/huynhtastic/programmingbitcoin/ecc"
	"github.com/pkg/errors"
)

// These constants define the lengths of serialized public keys.
const (
	PubKeyBytesLenCompressed   = 33
	PubKeyBytesLenUncompressed = 65
)

const (
	pubkeyCompressed   byte = 0x2 // y_bit + x coord
	pubkeyUncompressed byte = 0x4 // x coord + y coord
)

// PublicKey is a point of secp256k1 used as an ECDSA public key. It is never
// the point at infinity.
type PublicKey struct {
	point *ecc.Point
}

// NewPublicKey returns the public key at (x, y).
func NewPublicKey(x, y *big.Int) (*PublicKey, error) {
	point, err := S256().NewPoint(x, y)
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedPubKey, "%s", err)
	}
	return &PublicKey{point: point}, nil
}

// X returns the x coordinate of the key.
func (p *PublicKey) X() *big.Int {
	return p.point.X().Num()
}

// Y returns the y coordinate of the key.
func (p *PublicKey) Y() *big.Int {
	return p.point.Y().Num()
}

// Point returns the key as a curve point.
func (p *PublicKey) Point() *ecc.Point {
	return p.point
}

// IsEqual compares this PublicKey instance to the one passed, returning true if
// both PublicKeys are equivalent.
func (p *PublicKey) IsEqual(otherPubKey *PublicKey) bool {
	return p.point.Equal(otherPubKey.point)
}

// SerializeUncompressed serializes a public key in the 65-byte
// uncompressed SEC format: 0x04, then x and y as 32-byte big endian numbers.
func (p *PublicKey) SerializeUncompressed() []byte {
	b := make([]byte, 0, PubKeyBytesLenUncompressed)
	b = append(b, pubkeyUncompressed)
	b = paddedAppend(32, b, p.point.X().Num().Bytes())
	return paddedAppend(32, b, p.point.Y().Num().Bytes())
}

// SerializeCompressed serializes a public key in the 33-byte compressed SEC
// format: 0x02 for an even y or 0x03 for an odd one, then x as a 32-byte big
// endian number.
func (p *PublicKey) SerializeCompressed() []byte {
	b := make([]byte, 0, PubKeyBytesLenCompressed)
	format := pubkeyCompressed
	if isOdd(p.point.Y().Num()) {
		format |= 0x1
	}
	b = append(b, format)
	return paddedAppend(32, b, p.point.X().Num().Bytes())
}

// Serialize returns the SEC encoding of the key in the requested form.
func (p *PublicKey) Serialize(compressed bool) []byte {
	if compressed {
		return p.SerializeCompressed()
	}
	return p.SerializeUncompressed()
}

// String returns the compressed SEC encoding of the key in hex.
func (p *PublicKey) String() string {
	return fmt.Sprintf("%x", p.SerializeCompressed())
}

// ParsePubKey parses a public key in either SEC format. A compressed key has
// its y coordinate recovered as the square root of x^3 + 7 whose parity
// matches the format byte.
func ParsePubKey(pubKeyStr []byte) (*PublicKey, error) {
	if len(pubKeyStr) == 0 {
		return nil, errors.Wrap(ErrMalformedPubKey, "pubkey string is empty")
	}

	curve := S256()
	format := pubKeyStr[0]
	ybit := (format & 0x1) == 0x1
	format &= ^byte(0x1)

	switch format {
	case pubkeyUncompressed:
		if ybit {
			return nil, errors.Wrapf(ErrUnsupportedEncoding, "format byte %#x", pubKeyStr[0])
		}
		if len(pubKeyStr) != PubKeyBytesLenUncompressed {
			return nil, errors.Wrapf(ErrMalformedPubKey, "uncompressed key length %d, want %d",
				len(pubKeyStr), PubKeyBytesLenUncompressed)
		}
		x := new(big.Int).SetBytes(pubKeyStr[1:33])
		y := new(big.Int).SetBytes(pubKeyStr[33:])
		return NewPublicKey(x, y)

	case pubkeyCompressed:
		if len(pubKeyStr) != PubKeyBytesLenCompressed {
			return nil, errors.Wrapf(ErrMalformedPubKey, "compressed key length %d, want %d",
				len(pubKeyStr), PubKeyBytesLenCompressed)
		}
		x := new(big.Int).SetBytes(pubKeyStr[1:33])
		if x.Cmp(curve.P) >= 0 {
			return nil, errors.Wrap(ErrMalformedPubKey, "pubkey X parameter is >= to P")
		}
		y, err := decompressY(x, ybit)
		if err != nil {
			return nil, err
		}
		return NewPublicKey(x, y)
	}

	return nil, errors.Wrapf(ErrUnsupportedEncoding, "format byte %#x", pubKeyStr[0])
}

// decompressY returns the y coordinate of the point with the given x whose
// oddness matches odd.
func decompressY(x *big.Int, odd bool) (*big.Int, error) {
	curve := S256()
	fx := curve.fieldElement(x)

	// alpha = x^3 + 7
	alpha, err := fx.PowInt64(3).Add(curve.b)
	if err != nil {
		return nil, err
	}
	beta := curve.Sqrt(alpha)
	if !beta.PowInt64(2).Equal(alpha) {
		return nil, errors.Wrapf(ErrMalformedPubKey, "x %x is not on the curve", x)
	}

	y := beta.Num()
	if isOdd(y) != odd {
		y.Sub(curve.P, y)
	}
	return y, nil
}

// Verify returns whether sig is a valid ECDSA signature of the message hash z
// by this key. It computes u = z/s and v = r/s and accepts when the x
// coordinate of uG + vP equals r modulo N.
func (p *PublicKey) Verify(z *big.Int, sig *Signature) bool {
	curve := S256()
	if sig.R.Sign() <= 0 || sig.S.Sign() <= 0 ||
		sig.R.Cmp(curve.N) >= 0 || sig.S.Cmp(curve.N) >= 0 {
		return false
	}

	nMinus2 := new(big.Int).Sub(curve.N, big.NewInt(2))
	sInv := new(big.Int).Exp(sig.S, nMinus2, curve.N)
	u := new(big.Int).Mul(z, sInv)
	u.Mod(u, curve.N)
	v := new(big.Int).Mul(sig.R, sInv)
	v.Mod(v, curve.N)

	total, err := curve.ScalarBaseMult(u).Add(curve.ScalarMult(p.point, v))
	if err != nil || total.IsInfinity() {
		return false
	}
	x := total.X().Num()
	return x.Mod(x, curve.N).Cmp(sig.R) == 0
}

func isOdd(a *big.Int) bool {
	return a.Bit(0) == 1
}

// paddedAppend appends the src byte slice to dst, returning the new slice.
// If the length of the source is smaller than the passed size, leading zero
// bytes are appended to the dst slice before appending src.
func paddedAppend(size uint, dst, src []byte) []byte {
	for i := 0; i < int(size)-len(src); i++ {
		dst = append(dst, 0)
	}
	return append(dst, src...)
}
