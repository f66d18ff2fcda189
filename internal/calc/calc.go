// Package calc holds the normalization primitives shared by the character
// rule sets and the upgrade-value pipeline.
package calc

import (
	"errors"
	"fmt"
	"math"
)

// ErrUndefined is returned when a ratio has no meaningful value
// (zero denominator or a non-finite operand).
var ErrUndefined = errors.New("undefined ratio")

// PercentChange returns (upgraded - original) / original as a decimal
// (0.5 means +50%).
//
// original must be non-zero. A zero original yields ±Inf or NaN, which is
// propagated unchanged. Callers that cannot guarantee a non-zero baseline use
// CheckedPercentChange.
func PercentChange(original, upgraded float64) float64 {
	return (upgraded - original) / original
}

// CheckedPercentChange is PercentChange with the degenerate cases surfaced as ErrUndefined.
func CheckedPercentChange(original, upgraded float64) (float64, error) {
	if original == 0 {
		return 0, fmt.Errorf("percent change from zero baseline: %w", ErrUndefined)
	}
	return CheckFinite(PercentChange(original, upgraded))
}

// Div divides num by den, reporting ErrUndefined instead of producing Inf or NaN.
func Div(num, den float64) (float64, error) {
	if den == 0 {
		return 0, fmt.Errorf("%v / 0: %w", num, ErrUndefined)
	}
	return CheckFinite(num / den)
}

// CheckFinite passes v through when it is a finite number.
func CheckFinite(v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite value %v: %w", v, ErrUndefined)
	}
	return v, nil
}

// Buff turns a decimal bonus into a multiplier (0.2 -> 1.2).
func Buff(bonus float64) float64 {
	return 1 + bonus
}
