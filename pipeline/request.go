// Package pipeline orchestrates the variant transforms: it validates
// request parameters, runs each requested transform independently
// against the original source buffer, and hands every successful result
// to an encode/write collaborator. One failing transform never aborts
// its siblings; only a missing or degenerate source fails the request.
package pipeline

import (
	"errors"
	"fmt"
)

// Kind identifies one of the derived variants.
type Kind int

const (
	KindPitchUp Kind = iota
	KindPitchDown
	KindSpeedUp
	KindSpeedDown
	KindReverb
	KindOverlay
)

var kindNames = map[Kind]string{
	KindPitchUp:   "pitch_up",
	KindPitchDown: "pitch_down",
	KindSpeedUp:   "speed_up",
	KindSpeedDown: "speed_down",
	KindReverb:    "reverb",
	KindOverlay:   "overlay",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Request describes the variants to derive from one source buffer.
// Nil fields deactivate the corresponding transform. The request is
// treated as immutable once handed to Process.
type Request struct {
	PitchIncrease *float64 // semitones, > 0
	PitchDecrease *float64 // semitones, < 0
	SpeedIncrease *float64 // rate factor, > 1.0
	SpeedDecrease *float64 // rate factor, in (0, 1.0)

	ReverbRoomSize *float64 // (0, 1.0]
	ReverbWetDry   *float64 // [0, 1.0]; defaults to 0.3 when nil

	Overlay       []float64 // secondary buffer, already at the source sample rate
	OverlayVolume *float64  // >= 0; defaults to 1.0 when nil
}

// DefaultReverbWetDry is used when a request enables reverb without
// setting a wet/dry mix.
const DefaultReverbWetDry = 0.3

// DefaultOverlayVolume is used when a request enables overlay without
// setting a volume ratio.
const DefaultOverlayVolume = 1.0

// Kinds returns the transforms activated by the request, in the fixed
// order they are processed.
func (r *Request) Kinds() []Kind {
	var kinds []Kind
	if r.PitchIncrease != nil {
		kinds = append(kinds, KindPitchUp)
	}
	if r.PitchDecrease != nil {
		kinds = append(kinds, KindPitchDown)
	}
	if r.SpeedIncrease != nil {
		kinds = append(kinds, KindSpeedUp)
	}
	if r.SpeedDecrease != nil {
		kinds = append(kinds, KindSpeedDown)
	}
	if r.ReverbRoomSize != nil {
		kinds = append(kinds, KindReverb)
	}
	if r.Overlay != nil {
		kinds = append(kinds, KindOverlay)
	}
	return kinds
}

// validate checks the parameters of a single transform, before any
// computation. The returned error aborts only that transform.
func (r *Request) validate(kind Kind) error {
	switch kind {
	case KindPitchUp:
		if v := *r.PitchIncrease; v <= 0 {
			return &InvalidParameterError{Name: "pitch_increase", Value: v, Reason: "must be > 0 semitones"}
		}
	case KindPitchDown:
		if v := *r.PitchDecrease; v >= 0 {
			return &InvalidParameterError{Name: "pitch_decrease", Value: v, Reason: "must be < 0 semitones"}
		}
	case KindSpeedUp:
		if v := *r.SpeedIncrease; v <= 1.0 {
			return &InvalidParameterError{Name: "speed_increase", Value: v, Reason: "must be > 1.0"}
		}
	case KindSpeedDown:
		if v := *r.SpeedDecrease; v <= 0 || v >= 1.0 {
			return &InvalidParameterError{Name: "speed_decrease", Value: v, Reason: "must be in (0, 1.0)"}
		}
	case KindReverb:
		if v := *r.ReverbRoomSize; v <= 0 || v > 1.0 {
			return &InvalidParameterError{Name: "reverb_room_size", Value: v, Reason: "must be in (0, 1.0]"}
		}
		if r.ReverbWetDry != nil {
			if v := *r.ReverbWetDry; v < 0 || v > 1.0 {
				return &InvalidParameterError{Name: "reverb_wet_dry", Value: v, Reason: "must be in [0, 1.0]"}
			}
		}
	case KindOverlay:
		if len(r.Overlay) == 0 {
			return fmt.Errorf("pipeline: overlay source is empty: %w", ErrDegenerateBuffer)
		}
		if r.OverlayVolume != nil {
			if v := *r.OverlayVolume; v < 0 {
				return &InvalidParameterError{Name: "overlay_volume", Value: v, Reason: "must be >= 0"}
			}
		}
	}
	return nil
}

func (r *Request) wetDry() float64 {
	if r.ReverbWetDry != nil {
		return *r.ReverbWetDry
	}
	return DefaultReverbWetDry
}

func (r *Request) overlayVolume() float64 {
	if r.OverlayVolume != nil {
		return *r.OverlayVolume
	}
	return DefaultOverlayVolume
}

// Float is a convenience for building requests from literals.
func Float(v float64) *float64 { return &v }

// InvalidParameterError reports a request parameter outside its
// documented domain.
type InvalidParameterError struct {
	Name   string
	Value  float64
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("pipeline: invalid parameter %s=%g: %s", e.Name, e.Value, e.Reason)
}

// Errors reported by the orchestrator.
var (
	// ErrMissingSource means no source buffer reached the orchestrator;
	// without a source no transform can run, so it is request-fatal.
	ErrMissingSource = errors.New("pipeline: missing source buffer")

	// ErrNoSink means the orchestrator has nowhere to hand results.
	ErrNoSink = errors.New("pipeline: no output sink configured")

	// ErrDegenerateBuffer marks zero-length or otherwise unusable
	// buffers detected before computation.
	ErrDegenerateBuffer = errors.New("pipeline: degenerate buffer")
)
