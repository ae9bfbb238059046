package effects

import (
	"fmt"

	"github.com/cwbudde/algo-dsp/dsp/conv"

	"github.com/cwbudde/algo-augment/irsynth"
)

// ApplyReverb convolves dry with a freshly generated decaying-noise
// impulse response and mixes the wet signal back in:
//
//	out[i] = (1 - wetDry) * dry[i] + wetDry * wet[i]
//
// The convolution uses "same" mode, so the output has the same length
// and sample rate as the input. The result is always peak-normalized.
// seed drives the impulse generator; equal seeds reproduce the reverb.
func ApplyReverb(dry []float64, sampleRate int, roomSize, wetDry float64, seed int64) ([]float64, error) {
	if len(dry) == 0 {
		return nil, ErrEmptyInput
	}
	if wetDry < 0 || wetDry > 1 {
		return nil, fmt.Errorf("effects: wet/dry must be in [0, 1]: %g", wetDry)
	}

	ir, err := irsynth.Generate(irsynth.Config{
		SampleRate: sampleRate,
		RoomSize:   roomSize,
		Seed:       seed,
	})
	if err != nil {
		return nil, fmt.Errorf("effects: impulse response: %w", err)
	}

	wet, err := conv.ConvolveMode(dry, ir, conv.ModeSame)
	if err != nil {
		return nil, fmt.Errorf("effects: convolution: %w", err)
	}

	mixed := make([]float64, len(dry))
	for i := range dry {
		mixed[i] = (1.0-wetDry)*dry[i] + wetDry*wet[i]
	}
	return Normalize(mixed)
}
