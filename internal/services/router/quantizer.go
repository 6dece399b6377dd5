package router

import (
	"math/bits"
)

// Quantize splits a total trade amount into steps cumulative input levels.
// Level i (0-indexed) is floor(amount*(i+1)/steps): non-decreasing, and the
// last level equals amount exactly. Levels may repeat when amount is small
// relative to steps; duplicate levels just produce duplicate quotes.
//
// The intermediate product amount*(i+1) is widened to 128 bits before
// dividing. The quotient always fits in uint64 because i+1 <= steps, but the
// guard stays: a widened quotient that would not fit is reported as
// ErrArithmeticOverflow instead of wrapping.
func Quantize(amount uint64, steps uint8) ([]uint64, error) {
	if steps == 0 {
		return nil, ErrInvalidStepCount
	}
	if amount == 0 {
		return nil, ErrInvalidAmount
	}

	div := uint64(steps)
	levels := make([]uint64, steps)
	for i := range levels {
		hi, lo := bits.Mul64(amount, uint64(i)+1)
		if hi >= div {
			return nil, ErrArithmeticOverflow
		}
		levels[i], _ = bits.Div64(hi, lo, div)
	}
	return levels, nil
}
