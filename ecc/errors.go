// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecc

import "github.com/pkg/errors"

// Errors returned by field and curve operations. Callers should compare
// against these with errors.Is since they are always wrapped with context.
var (
	// ErrFieldMismatch is returned when two field elements with different
	// moduli are combined.
	ErrFieldMismatch = errors.New("field elements belong to different fields")

	// ErrDivisionByZero is returned when dividing by the zero element.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrValueOutOfRange is returned when a field element is constructed
	// from a value outside of [0, prime).
	ErrValueOutOfRange = errors.New("value not in field range")

	// ErrPointNotOnCurve is returned when the coordinates given to NewPoint
	// do not satisfy y^2 = x^3 + ax + b.
	ErrPointNotOnCurve = errors.New("point is not on the curve")

	// ErrCurveMismatch is returned when two points on different curves are
	// added together.
	ErrCurveMismatch = errors.New("points are not on the same curve")
)
