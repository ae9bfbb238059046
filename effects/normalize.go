// Package effects implements the buffer transforms of the variant
// pipeline: convolution reverb, overlay mixing, and peak normalization.
// All functions are value-in/value-out; callers' buffers are never
// written to.
package effects

import (
	"errors"
	"math"
)

// Errors returned by effect functions.
var (
	ErrEmptyInput = errors.New("effects: empty input buffer")
	ErrZeroPeak   = errors.New("effects: zero peak, cannot normalize")
)

// Normalize returns a copy of buf scaled so its peak absolute value
// equals 1.0. A buffer with zero peak cannot be normalized and yields
// ErrZeroPeak instead of propagating NaN/Inf.
func Normalize(buf []float64) ([]float64, error) {
	if len(buf) == 0 {
		return nil, ErrEmptyInput
	}
	peak := maxAbs(buf)
	if peak == 0 {
		return nil, ErrZeroPeak
	}
	out := make([]float64, len(buf))
	for i, v := range buf {
		out[i] = v / peak
	}
	return out, nil
}

func maxAbs(x []float64) float64 {
	m := 0.0
	for _, v := range x {
		a := math.Abs(v)
		if a > m {
			m = a
		}
	}
	return m
}
