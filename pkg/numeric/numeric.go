// Package numeric provides the floating-point tolerance helpers shared by
// the belts and factory solvers.
package numeric

import "math"

// Epsilon is the tolerance used throughout the solvers for "is this
// residual/slack effectively zero" comparisons.
const Epsilon = 1e-9

// Infinity is the sentinel capacity substituted for a missing upper bound.
// It is large enough to exceed any physically meaningful flow or LP bound
// while remaining a representable float64 that participates safely in
// arithmetic (unlike math.MaxFloat64, which overflows on simple sums).
const Infinity = 1e18

// Equal reports whether a and b differ by less than Epsilon.
func Equal(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// LessEqual reports whether a <= b within Epsilon.
func LessEqual(a, b float64) bool {
	return a <= b+Epsilon
}

// Positive reports whether v is greater than Epsilon.
func Positive(v float64) bool {
	return v > Epsilon
}

// RoundNearInteger rounds v to the nearest integer when it is within tol of
// one, otherwise returns v unchanged. Used for presenting deficits that are
// mathematically integral but carry floating-point noise.
func RoundNearInteger(v, tol float64) float64 {
	r := math.Round(v)
	if math.Abs(v-r) < tol {
		return r
	}
	return v
}

// Round2 rounds v to two decimal places, the presentation precision used for
// reported flows.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
