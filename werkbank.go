/*
Package werkbank implements the numeric ground floor for planar profile
construction and simple solid modeling: epsilon-aware float helpers,
pairs / 2D-points with affine transformations, and 3D vectors.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package werkbank

import (
	"errors"
	"math"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'werkbank'
func tracer() tracing.Trace {
	return tracing.Select("werkbank")
}

// === Numeric Data Type =====================================================

// Deg2Rad is a constant for converting from DEG to RAD or vice versa
var Deg2Rad float64 = 0.01745329251

// Epsilon : numbers below ε are considered 0
var Epsilon float64 = 0.0000001

// ErrDegenerateGeometry flags constructs that collapse to nothing:
// zero-length edges, empty loops, non-finite coordinates.
var ErrDegenerateGeometry = errors.New("degenerate geometry")

// Is0 is a predicate: is n = 0 ?
func Is0(n float64) bool {
	return math.Abs(n) <= Epsilon
}

// Is1 is a predicate: is n = 1.0 ?
func Is1(n float64) bool {
	return math.Abs(1-n) <= Epsilon
}

// IsFinite is a predicate: is n a usable number, i.e. neither NaN nor ±Inf?
func IsFinite(n float64) bool {
	return !math.IsNaN(n) && !math.IsInf(n, 0)
}

// Zap makes n = 0 if n "means" to be zero
func Zap(n float64) float64 {
	if Is0(n) {
		n = 0
	}
	return n
}

// Round to ε.
func Round(n float64) float64 {
	return math.Round(n/Epsilon) * Epsilon
}
