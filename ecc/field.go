// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecc

import (
	"fmt"
	"math/big"

	"github.com/pkg/errors"
)

var (
	bigOne = big.NewInt(1)
	bigTwo = big.NewInt(2)
)

// FieldElement is an element of the prime field of order Prime. The value
// is always kept in [0, prime).
//
// FieldElement values are immutable: every arithmetic method returns a new
// element and never modifies its receiver or arguments. The exported
// arithmetic methods check that both operands share a modulus and return
// ErrFieldMismatch otherwise.
type FieldElement struct {
	num   *big.Int
	prime *big.Int
}

// NewFieldElement returns the element num of the field of order prime. It
// returns ErrValueOutOfRange when num is negative or not smaller than prime.
func NewFieldElement(num, prime *big.Int) (*FieldElement, error) {
	if num.Sign() < 0 || num.Cmp(prime) >= 0 {
		return nil, errors.Wrapf(ErrValueOutOfRange, "num %s not in field range 0 to %s",
			num, new(big.Int).Sub(prime, bigOne))
	}
	return newFieldElement(num, prime), nil
}

// NewFieldElementInt64 is a convenience wrapper around NewFieldElement for
// small fields.
func NewFieldElementInt64(num, prime int64) (*FieldElement, error) {
	return NewFieldElement(big.NewInt(num), big.NewInt(prime))
}

// newFieldElement copies num and reduces it modulo prime. The prime is
// shared between all elements derived from the same field.
func newFieldElement(num, prime *big.Int) *FieldElement {
	n := new(big.Int).Mod(num, prime)
	return &FieldElement{num: n, prime: prime}
}

// Num returns a copy of the element's value.
func (fe *FieldElement) Num() *big.Int {
	return new(big.Int).Set(fe.num)
}

// Prime returns a copy of the field's modulus.
func (fe *FieldElement) Prime() *big.Int {
	return new(big.Int).Set(fe.prime)
}

// IsZero returns whether the element is the additive identity.
func (fe *FieldElement) IsZero() bool {
	return fe.num.Sign() == 0
}

// SameField returns whether fe and other share a modulus.
func (fe *FieldElement) SameField(other *FieldElement) bool {
	return fe.prime.Cmp(other.prime) == 0
}

// Equal returns whether both the value and the modulus match. A nil
// argument is never equal.
func (fe *FieldElement) Equal(other *FieldElement) bool {
	if fe == nil || other == nil {
		return fe == other
	}
	return fe.num.Cmp(other.num) == 0 && fe.SameField(other)
}

func (fe *FieldElement) checkField(op string, other *FieldElement) error {
	if !fe.SameField(other) {
		return errors.Wrapf(ErrFieldMismatch, "cannot %s %s and %s", op, fe, other)
	}
	return nil
}

// Add returns fe + other.
func (fe *FieldElement) Add(other *FieldElement) (*FieldElement, error) {
	if err := fe.checkField("add", other); err != nil {
		return nil, err
	}
	return fe.add(other), nil
}

// Sub returns fe - other.
func (fe *FieldElement) Sub(other *FieldElement) (*FieldElement, error) {
	if err := fe.checkField("subtract", other); err != nil {
		return nil, err
	}
	return fe.sub(other), nil
}

// Mul returns fe * other.
func (fe *FieldElement) Mul(other *FieldElement) (*FieldElement, error) {
	if err := fe.checkField("multiply", other); err != nil {
		return nil, err
	}
	return fe.mul(other), nil
}

// Div returns fe / other, computed as fe * other^(p-2) by Fermat's little
// theorem. It fails with ErrDivisionByZero when other is zero.
func (fe *FieldElement) Div(other *FieldElement) (*FieldElement, error) {
	if err := fe.checkField("divide", other); err != nil {
		return nil, err
	}
	if other.IsZero() {
		return nil, errors.Wrapf(ErrDivisionByZero, "cannot divide %s by %s", fe, other)
	}
	return fe.div(other), nil
}

// Pow returns fe raised to exponent. Negative exponents are supported: the
// exponent is first reduced modulo p-1, which is valid since a^(p-1) = 1 for
// any non-zero a in a prime field.
func (fe *FieldElement) Pow(exponent *big.Int) *FieldElement {
	order := new(big.Int).Sub(fe.prime, bigOne)
	n := new(big.Int).Mod(exponent, order)
	return &FieldElement{num: new(big.Int).Exp(fe.num, n, fe.prime), prime: fe.prime}
}

// PowInt64 is a convenience wrapper around Pow.
func (fe *FieldElement) PowInt64(exponent int64) *FieldElement {
	return fe.Pow(big.NewInt(exponent))
}

// ScalarMul returns coefficient * fe. This is always well defined since the
// coefficient is an integer rather than a field element.
func (fe *FieldElement) ScalarMul(coefficient *big.Int) *FieldElement {
	n := new(big.Int).Mul(fe.num, coefficient)
	return newFieldElement(n, fe.prime)
}

// Neg returns the additive inverse of fe.
func (fe *FieldElement) Neg() *FieldElement {
	return newFieldElement(new(big.Int).Neg(fe.num), fe.prime)
}

// The unexported operations below assume both operands share a field. They
// are used by the curve arithmetic once the curve parameters have been
// checked.

func (fe *FieldElement) add(other *FieldElement) *FieldElement {
	return newFieldElement(new(big.Int).Add(fe.num, other.num), fe.prime)
}

func (fe *FieldElement) sub(other *FieldElement) *FieldElement {
	return newFieldElement(new(big.Int).Sub(fe.num, other.num), fe.prime)
}

func (fe *FieldElement) mul(other *FieldElement) *FieldElement {
	return newFieldElement(new(big.Int).Mul(fe.num, other.num), fe.prime)
}

func (fe *FieldElement) square() *FieldElement {
	return fe.mul(fe)
}

func (fe *FieldElement) div(other *FieldElement) *FieldElement {
	inverse := new(big.Int).Exp(other.num, new(big.Int).Sub(fe.prime, bigTwo), fe.prime)
	return newFieldElement(inverse.Mul(inverse, fe.num), fe.prime)
}

// String returns the element in the form FieldElement_<prime>(<num>).
func (fe *FieldElement) String() string {
	if fe == nil {
		return "<nil>"
	}
	return fmt.Sprintf("FieldElement_%s(%s)", fe.prime, fe.num)
}
