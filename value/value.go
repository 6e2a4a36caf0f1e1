// Copyright 2014 Rob Pike. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package value holds the scalar numeric type the evaluator computes
// with: a single double-precision float, with no arbitrary-precision,
// vector, or matrix machinery.
package value // import "github.com/Aghajari/MathParser/value"

import "math"

// Value is a double-precision result of evaluating an expression.
type Value float64

// Round applies half-up rounding to scale decimal places, the way
// spec.md §3 describes: skipped entirely when v is NaN or infinite,
// or when the caller has disabled rounding.
func Round(v float64, enabled bool, scale int) float64 {
	if !enabled || math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	factor := math.Pow(10, float64(scale))
	scaled := v * factor
	if scaled >= 0 {
		scaled = math.Floor(scaled + 0.5)
	} else {
		scaled = math.Ceil(scaled - 0.5)
	}
	return scaled / factor
}
