// Package transform wraps the delegated pitch-shift and time-stretch
// collaborators behind a small contract. The pipeline validates
// parameters, calls through, and forwards the returned buffer
// unmodified; it never inspects how the transforms work.
package transform

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-dsp/dsp/effects/pitch"
	"github.com/cwbudde/algo-dsp/dsp/resample"
)

// ErrEmptyInput is returned when a transform receives no samples.
var ErrEmptyInput = errors.New("transform: empty input buffer")

// Transformer is the pitch/time collaborator contract.
//
// ShiftPitch changes pitch by semitones without changing duration; the
// output has the same length and sample rate as the input. StretchTime
// changes speed by rate without changing pitch; the output length is
// approximately len(input)/rate at the same sample rate.
type Transformer interface {
	ShiftPitch(input []float64, semitones float64) ([]float64, error)
	StretchTime(input []float64, rate float64) ([]float64, error)
}

// Spectral implements Transformer with a frequency-domain phase-vocoder
// pitch shifter. Time-stretch composes a pitch pre-compensation (ratio
// 1/rate) with fractional resampling to 1/rate of the input length, so
// the duration changes while the pitch does not.
type Spectral struct {
	sampleRate int
}

// NewSpectral creates a transformer for the given sample rate.
func NewSpectral(sampleRate int) (*Spectral, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("transform: sample rate must be > 0: %d", sampleRate)
	}
	return &Spectral{sampleRate: sampleRate}, nil
}

// SampleRate returns the sample rate this transformer operates at.
func (s *Spectral) SampleRate() int { return s.sampleRate }

func (s *Spectral) ShiftPitch(input []float64, semitones float64) ([]float64, error) {
	if len(input) == 0 {
		return nil, ErrEmptyInput
	}

	shifter, err := pitch.NewSpectralPitchShifter(float64(s.sampleRate))
	if err != nil {
		return nil, fmt.Errorf("transform: pitch shifter: %w", err)
	}
	if err := shifter.SetPitchSemitones(semitones); err != nil {
		return nil, fmt.Errorf("transform: %w", err)
	}

	out, err := shifter.ProcessWithError(input)
	if err != nil {
		return nil, fmt.Errorf("transform: pitch shift: %w", err)
	}
	return out, nil
}

func (s *Spectral) StretchTime(input []float64, rate float64) ([]float64, error) {
	if len(input) == 0 {
		return nil, ErrEmptyInput
	}
	if rate <= 0 {
		return nil, fmt.Errorf("transform: stretch rate must be > 0: %g", rate)
	}
	if rate == 1.0 {
		out := make([]float64, len(input))
		copy(out, input)
		return out, nil
	}

	// Pre-shift pitch by 1/rate; the resampling stage below raises it
	// back by rate, leaving only the duration change.
	shifter, err := pitch.NewSpectralPitchShifter(float64(s.sampleRate))
	if err != nil {
		return nil, fmt.Errorf("transform: pitch shifter: %w", err)
	}
	if err := shifter.SetPitchRatio(1.0 / rate); err != nil {
		return nil, fmt.Errorf("transform: stretch rate %g: %w", rate, err)
	}
	compensated, err := shifter.ProcessWithError(input)
	if err != nil {
		return nil, fmt.Errorf("transform: pitch compensation: %w", err)
	}

	r, err := resample.NewForRates(
		float64(s.sampleRate),
		float64(s.sampleRate)/rate,
		resample.WithQuality(resample.QualityBest),
	)
	if err != nil {
		return nil, fmt.Errorf("transform: resampler: %w", err)
	}
	return r.Process(compensated), nil
}
