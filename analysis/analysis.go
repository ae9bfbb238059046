// Package analysis provides small signal measurements used to report
// on derived variants: peak, RMS, how much a variant differs from its
// source, and a spectral centroid.
package analysis

import "math"

// Metrics summarizes one derived variant against its source.
type Metrics struct {
	Frames     int `json:"frames"`
	SampleRate int `json:"sample_rate"`

	Peak              float64 `json:"peak"`
	RMS               float64 `json:"rms"`
	DifferingFraction float64 `json:"differing_fraction"`
	CentroidHz        float64 `json:"centroid_hz"`
}

// Summarize measures variant and its deviation from source. The
// centroid is left at zero when the buffer is too short for a
// spectrum.
func Summarize(source, variant []float64, sampleRate int) Metrics {
	m := Metrics{
		Frames:     len(variant),
		SampleRate: sampleRate,
		Peak:       PeakAbs(variant),
		RMS:        RMS(variant),
	}
	m.DifferingFraction = DifferingFraction(source, variant, 1e-6)
	if c, err := SpectralCentroid(variant, sampleRate); err == nil {
		m.CentroidHz = c
	}
	return m
}

// PeakAbs returns the maximum absolute sample value.
func PeakAbs(x []float64) float64 {
	peak := 0.0
	for _, v := range x {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	return peak
}

// RMS returns the root-mean-square level of x.
func RMS(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	var sum float64
	for _, v := range x {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(x)))
}

// DifferingFraction returns the fraction of overlapping samples whose
// absolute difference exceeds eps. Length differences count as fully
// differing tail.
func DifferingFraction(a, b []float64, eps float64) float64 {
	longer := len(a)
	if len(b) > longer {
		longer = len(b)
	}
	if longer == 0 {
		return 0
	}
	overlap := len(a)
	if len(b) < overlap {
		overlap = len(b)
	}
	differing := longer - overlap
	for i := 0; i < overlap; i++ {
		if math.Abs(a[i]-b[i]) > eps {
			differing++
		}
	}
	return float64(differing) / float64(longer)
}
