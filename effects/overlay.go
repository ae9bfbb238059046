package effects

import "fmt"

// Overlay additively mixes secondary into primary at the given volume
// ratio. Both buffers must share a sample rate; callers resample
// beforehand when needed.
//
// Length reconciliation: a shorter secondary is tiled end-to-end from
// its beginning until it covers primary (the loop seam is audible and
// intentional, there is no crossfade); a longer secondary contributes
// only its prefix. The output always has primary's length.
//
// Unlike ApplyReverb, the mix is peak-normalized only when it would
// clip (peak > 1.0); otherwise the sum is returned at its original
// amplitude.
func Overlay(primary, secondary []float64, volumeRatio float64) ([]float64, error) {
	if len(primary) == 0 || len(secondary) == 0 {
		return nil, ErrEmptyInput
	}
	if volumeRatio < 0 {
		return nil, fmt.Errorf("effects: volume ratio must be >= 0: %g", volumeRatio)
	}

	mixed := make([]float64, len(primary))
	for i := range mixed {
		mixed[i] = primary[i] + secondary[i%len(secondary)]*volumeRatio
	}

	if maxAbs(mixed) > 1.0 {
		return Normalize(mixed)
	}
	return mixed, nil
}
