package pipeline

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/cwbudde/algo-augment/effects"
	"github.com/cwbudde/algo-augment/transform"
)

// Sink receives each successfully computed variant. Implementations
// own container/codec formatting, output paths, and collision
// handling; the orchestrator never touches files itself.
type Sink interface {
	Write(kind Kind, samples []float64, sampleRate int) error
}

// TransformerFactory builds the pitch/time collaborator for a source
// sample rate.
type TransformerFactory func(sampleRate int) (transform.Transformer, error)

// Artifact records one successfully derived and written variant.
type Artifact struct {
	Kind       Kind
	Samples    []float64
	SampleRate int
}

// Result reports the outcome of one Process call: which variants were
// produced, and per-transform errors for the ones that were not.
type Result struct {
	Artifacts []Artifact
	Errors    map[Kind]error
}

// Err aggregates the per-transform errors, nil when every requested
// transform succeeded.
func (r *Result) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	errs := make([]error, 0, len(r.Errors))
	for _, k := range []Kind{KindPitchUp, KindPitchDown, KindSpeedUp, KindSpeedDown, KindReverb, KindOverlay} {
		if err, ok := r.Errors[k]; ok {
			errs = append(errs, fmt.Errorf("%s: %w", k, err))
		}
	}
	return errors.Join(errs...)
}

// Orchestrator runs the requested transforms against a source buffer
// and forwards each result to its sink. It holds no state beyond the
// sink, the transformer factory, and the seed source for reverb
// impulse generation.
type Orchestrator struct {
	sink           Sink
	newTransformer TransformerFactory
	rng            *rand.Rand
}

// NewOrchestrator creates an orchestrator whose reverb impulses vary
// from run to run.
func NewOrchestrator(sink Sink) *Orchestrator {
	return NewOrchestratorSeeded(sink, time.Now().UnixNano())
}

// NewOrchestratorSeeded creates an orchestrator with a deterministic
// reverb seed sequence, for reproducible output.
func NewOrchestratorSeeded(sink Sink, seed int64) *Orchestrator {
	return &Orchestrator{
		sink: sink,
		newTransformer: func(sampleRate int) (transform.Transformer, error) {
			return transform.NewSpectral(sampleRate)
		},
		rng: rand.New(rand.NewSource(seed)),
	}
}

// SetTransformerFactory overrides the pitch/time collaborator, e.g.
// with a stub in tests.
func (o *Orchestrator) SetTransformerFactory(f TransformerFactory) {
	o.newTransformer = f
}

// Process derives every variant the request activates. Each transform
// reads the original source buffer; transforms are never chained.
// Per-transform failures land in Result.Errors and do not stop the
// remaining transforms. The returned error is non-nil only for
// request-fatal conditions (no source, bad sample rate, no sink).
func (o *Orchestrator) Process(src []float64, sampleRate int, req Request) (*Result, error) {
	if len(src) == 0 {
		return nil, ErrMissingSource
	}
	if sampleRate <= 0 {
		return nil, &InvalidParameterError{Name: "sample_rate", Value: float64(sampleRate), Reason: "must be > 0"}
	}
	if o.sink == nil {
		return nil, ErrNoSink
	}

	res := &Result{Errors: make(map[Kind]error)}
	var tf transform.Transformer

	for _, kind := range req.Kinds() {
		if err := req.validate(kind); err != nil {
			res.Errors[kind] = err
			continue
		}

		var (
			out []float64
			err error
		)
		switch kind {
		case KindPitchUp, KindPitchDown, KindSpeedUp, KindSpeedDown:
			if tf == nil {
				tf, err = o.newTransformer(sampleRate)
				if err != nil {
					res.Errors[kind] = fmt.Errorf("transformer: %w", err)
					continue
				}
			}
			switch kind {
			case KindPitchUp:
				out, err = tf.ShiftPitch(src, *req.PitchIncrease)
			case KindPitchDown:
				out, err = tf.ShiftPitch(src, *req.PitchDecrease)
			case KindSpeedUp:
				out, err = tf.StretchTime(src, *req.SpeedIncrease)
			case KindSpeedDown:
				out, err = tf.StretchTime(src, *req.SpeedDecrease)
			}
		case KindReverb:
			out, err = effects.ApplyReverb(src, sampleRate, *req.ReverbRoomSize, req.wetDry(), o.rng.Int63())
		case KindOverlay:
			out, err = effects.Overlay(src, req.Overlay, req.overlayVolume())
		}
		if err != nil {
			res.Errors[kind] = err
			continue
		}

		if err := o.sink.Write(kind, out, sampleRate); err != nil {
			res.Errors[kind] = fmt.Errorf("sink: %w", err)
			continue
		}
		res.Artifacts = append(res.Artifacts, Artifact{Kind: kind, Samples: out, SampleRate: sampleRate})
	}
	return res, nil
}
