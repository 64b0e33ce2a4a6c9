// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecc

import (
	"fmt"
	"math/big"

	"github.com/pkg/errors"
)

// Point is a point on the short Weierstrass curve y^2 = x^3 + ax + b over a
// prime field, or the point at infinity of that curve.
//
// The point at infinity carries no coordinates: X and Y return nil for it.
// Points are immutable.
type Point struct {
	x, y     *FieldElement
	a, b     *FieldElement
	infinity bool
}

// NewPoint returns the point (x, y) on the curve defined by a and b. Passing
// nil for both coordinates returns the point at infinity. All four elements
// must belong to the same field.
func NewPoint(x, y, a, b *FieldElement) (*Point, error) {
	if !a.SameField(b) {
		return nil, errors.Wrapf(ErrFieldMismatch, "curve parameters %s and %s", a, b)
	}
	if x == nil && y == nil {
		return NewInfinity(a, b), nil
	}
	if x == nil || y == nil {
		return nil, errors.Wrapf(ErrPointNotOnCurve, "(%s, %s) has a single coordinate", x, y)
	}
	if !x.SameField(a) || !y.SameField(a) {
		return nil, errors.Wrapf(ErrFieldMismatch, "coordinates (%s, %s) are not in the curve's field", x, y)
	}

	left := y.square()
	right := x.square().mul(x).add(a.mul(x)).add(b)
	if !left.Equal(right) {
		return nil, errors.Wrapf(ErrPointNotOnCurve, "(%s, %s): %s != %s",
			x.num, y.num, left.num, right.num)
	}

	return &Point{x: x, y: y, a: a, b: b}, nil
}

// NewInfinity returns the point at infinity of the curve defined by a and b.
func NewInfinity(a, b *FieldElement) *Point {
	return &Point{a: a, b: b, infinity: true}
}

// IsInfinity returns whether p is the additive identity.
func (p *Point) IsInfinity() bool {
	return p.infinity
}

// X returns the x coordinate, or nil for the point at infinity.
func (p *Point) X() *FieldElement {
	return p.x
}

// Y returns the y coordinate, or nil for the point at infinity.
func (p *Point) Y() *FieldElement {
	return p.y
}

// A returns the curve's a parameter.
func (p *Point) A() *FieldElement {
	return p.a
}

// B returns the curve's b parameter.
func (p *Point) B() *FieldElement {
	return p.b
}

// SameCurve returns whether p and other lie on the same curve.
func (p *Point) SameCurve(other *Point) bool {
	return p.a.Equal(other.a) && p.b.Equal(other.b)
}

// Equal returns whether p and other are the same point on the same curve.
func (p *Point) Equal(other *Point) bool {
	if !p.SameCurve(other) {
		return false
	}
	if p.infinity || other.infinity {
		return p.infinity == other.infinity
	}
	return p.x.Equal(other.x) && p.y.Equal(other.y)
}

// Add returns p + other under the curve's group law. It fails with
// ErrCurveMismatch when the points are on different curves.
func (p *Point) Add(other *Point) (*Point, error) {
	if !p.SameCurve(other) {
		return nil, errors.Wrapf(ErrCurveMismatch, "points %s, %s", p, other)
	}
	return p.add(other), nil
}

// add implements the group law for two points already known to share a
// curve.
func (p *Point) add(other *Point) *Point {
	switch {
	case p.infinity:
		return other
	case other.infinity:
		return p
	}

	x1, y1, x2, y2 := p.x, p.y, other.x, other.y

	if x1.Equal(x2) {
		// Either P + (-P), or doubling a point whose tangent is vertical.
		if !y1.Equal(y2) || y1.IsZero() {
			return NewInfinity(p.a, p.b)
		}

		// slope = (3x1^2 + a) / 2y1
		numerator := x1.square().ScalarMul(big.NewInt(3)).add(p.a)
		slope := numerator.div(y1.ScalarMul(bigTwo))
		x3 := slope.square().sub(x1.ScalarMul(bigTwo))
		y3 := slope.mul(x1.sub(x3)).sub(y1)
		return &Point{x: x3, y: y3, a: p.a, b: p.b}
	}

	// slope = (y2 - y1) / (x2 - x1)
	slope := y2.sub(y1).div(x2.sub(x1))
	x3 := slope.square().sub(x1).sub(x2)
	y3 := slope.mul(x1.sub(x3)).sub(y1)
	return &Point{x: x3, y: y3, a: p.a, b: p.b}
}

// Neg returns the additive inverse of p.
func (p *Point) Neg() *Point {
	if p.infinity {
		return p
	}
	return &Point{x: p.x, y: p.y.Neg(), a: p.a, b: p.b}
}

// ScalarMult returns k * p using binary double-and-add. The bits of k are
// processed from least to most significant, so the number of group
// operations grows with the bit length of k rather than its value. A
// negative k multiplies the inverse of p.
func (p *Point) ScalarMult(k *big.Int) *Point {
	current := p
	if k.Sign() < 0 {
		k = new(big.Int).Neg(k)
		current = p.Neg()
	}

	result := NewInfinity(p.a, p.b)
	for i := 0; i < k.BitLen(); i++ {
		if k.Bit(i) == 1 {
			result = result.add(current)
		}
		current = current.add(current)
	}
	return result
}

// String returns Point(infinity) or Point(x,y)_<prime>.
func (p *Point) String() string {
	if p == nil {
		return "<nil>"
	}
	if p.infinity {
		return "Point(infinity)"
	}
	return fmt.Sprintf("Point(%s,%s)_%s", p.x.num, p.y.num, p.x.prime)
}
