package analysis

import (
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/cwbudde/algo-fft"
)

const centroidFFTSize = 4096

// SpectralCentroid returns the magnitude-weighted mean frequency of x
// in Hz, averaged over Hann-windowed frames. Buffers shorter than one
// frame are an error.
func SpectralCentroid(x []float64, sampleRate int) (float64, error) {
	if sampleRate <= 0 {
		return 0, fmt.Errorf("analysis: sample rate must be > 0: %d", sampleRate)
	}
	if len(x) < centroidFFTSize {
		return 0, fmt.Errorf("analysis: need at least %d samples for a spectrum, got %d", centroidFFTSize, len(x))
	}

	plan, err := algofft.NewPlanReal64(centroidFFTSize)
	if err != nil {
		return 0, fmt.Errorf("analysis: fft plan: %w", err)
	}

	hann := make([]float64, centroidFFTSize)
	for i := range hann {
		hann[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(centroidFFTSize-1))
	}

	spec := make([]complex128, centroidFFTSize/2+1)
	frame := make([]float64, centroidFFTSize)
	binHz := float64(sampleRate) / float64(centroidFFTSize)
	hop := centroidFFTSize / 2

	var weighted, total float64
	for pos := 0; pos+centroidFFTSize <= len(x); pos += hop {
		for i := 0; i < centroidFFTSize; i++ {
			frame[i] = x[pos+i] * hann[i]
		}
		plan.Forward(spec, frame)
		for k := 1; k < len(spec); k++ {
			mag := cmplx.Abs(spec[k])
			weighted += mag * float64(k) * binHz
			total += mag
		}
	}
	if total == 0 {
		return 0, fmt.Errorf("analysis: silent buffer has no centroid")
	}
	return weighted / total, nil
}
