// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package btcec

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"github.com/pkg/errors"
)

// PrivKeyBytesLen defines the length in bytes of a serialized private key.
const PrivKeyBytesLen = 32

// maxNonceAttempts bounds the retries on a zero r or s. Each retry happens
// with probability about 2^-256, so hitting the bound means the nonce source
// is broken.
const maxNonceAttempts = 16

// PrivateKey wraps a secret scalar in [1, N-1] and its public key.
type PrivateKey struct {
	secret *big.Int
	pubKey *PublicKey
}

// NewPrivateKey returns the private key with the given secret. It fails with
// ErrInvalidPrivateKey unless 1 <= secret < N.
func NewPrivateKey(secret *big.Int) (*PrivateKey, error) {
	curve := S256()
	if secret.Sign() <= 0 || secret.Cmp(curve.N) >= 0 {
		return nil, errors.Wrap(ErrInvalidPrivateKey, "secret must be in [1, N-1]")
	}
	secret = new(big.Int).Set(secret)
	return &PrivateKey{
		secret: secret,
		pubKey: &PublicKey{point: curve.ScalarBaseMult(secret)},
	}, nil
}

// PrivKeyFromBytes returns the private key whose secret is the big endian
// number pk.
func PrivKeyFromBytes(pk []byte) (*PrivateKey, error) {
	return NewPrivateKey(new(big.Int).SetBytes(pk))
}

// GeneratePrivateKey returns a private key with a secret drawn uniformly from
// [1, N-1] using crypto/rand.
func GeneratePrivateKey() (*PrivateKey, error) {
	secret, err := randScalar(rand.Reader)
	if err != nil {
		return nil, err
	}
	return NewPrivateKey(secret)
}

// randScalar draws a uniform scalar in [1, N-1] from r.
func randScalar(r io.Reader) (*big.Int, error) {
	nMinus1 := new(big.Int).Sub(S256().N, bigOne)
	k, err := rand.Int(r, nMinus1)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read random scalar")
	}
	return k.Add(k, bigOne), nil
}

// Secret returns a copy of the secret scalar.
func (p *PrivateKey) Secret() *big.Int {
	return new(big.Int).Set(p.secret)
}

// PubKey returns the PublicKey corresponding to this private key.
func (p *PrivateKey) PubKey() *PublicKey {
	return p.pubKey
}

// Serialize returns the private key as a 256-bit big-endian binary-encoded
// number, padded to a length of 32 bytes.
func (p *PrivateKey) Serialize() []byte {
	b := make([]byte, 0, PrivKeyBytesLen)
	return paddedAppend(PrivKeyBytesLen, b, p.secret.Bytes())
}

// Hex returns the 64 character hex encoding of the secret.
func (p *PrivateKey) Hex() string {
	return fmt.Sprintf("%064x", p.secret)
}

// Sign returns an ECDSA signature of the message hash z with a nonce drawn
// from crypto/rand.
func (p *PrivateKey) Sign(z *big.Int) (*Signature, error) {
	return p.SignWithNonceReader(z, rand.Reader)
}

// SignWithNonceReader is like Sign but draws the nonce from nonceSource. The
// source must be unpredictable: two signatures sharing a nonce reveal the
// secret.
//
// The signature is r = (kG).x mod N and s = (z + r*secret)/k mod N with a
// fresh k whenever r or s comes out zero. s is replaced by N-s when above
// N/2, so every signature is in canonical low-s form.
func (p *PrivateKey) SignWithNonceReader(z *big.Int, nonceSource io.Reader) (*Signature, error) {
	curve := S256()
	nMinus2 := new(big.Int).Sub(curve.N, big.NewInt(2))

	for attempt := 0; attempt < maxNonceAttempts; attempt++ {
		k, err := randScalar(nonceSource)
		if err != nil {
			return nil, err
		}

		r := curve.ScalarBaseMult(k).X().Num()
		r.Mod(r, curve.N)
		if r.Sign() == 0 {
			continue
		}

		kInv := new(big.Int).Exp(k, nMinus2, curve.N)
		s := new(big.Int).Mul(r, p.secret)
		s.Add(s, z)
		s.Mul(s, kInv)
		s.Mod(s, curve.N)
		if s.Sign() == 0 {
			continue
		}
		if s.Cmp(curve.halfOrder) > 0 {
			s.Sub(curve.N, s)
		}
		return &Signature{R: r, S: s}, nil
	}
	return nil, errors.Errorf("no usable nonce after %d attempts", maxNonceAttempts)
}
