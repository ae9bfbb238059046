package effects

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-dsp/dsp/core"
	"github.com/cwbudde/algo-dsp/dsp/signal"
	algofft "github.com/cwbudde/algo-fft"

	"github.com/cwbudde/algo-augment/irsynth"
)

func TestApplyReverbScenario(t *testing.T) {
	// 4-second 440 Hz sine at 44100 Hz, medium room, 30% wet.
	const sampleRate = 44100
	gen := signal.NewGenerator(core.WithSampleRate(sampleRate))
	dry, err := gen.Sine(440, 0.5, 4*sampleRate)
	if err != nil {
		t.Fatalf("sine: %v", err)
	}

	out, err := ApplyReverb(dry, sampleRate, 0.5, 0.3, 1234)
	if err != nil {
		t.Fatalf("ApplyReverb: %v", err)
	}
	if len(out) != len(dry) {
		t.Fatalf("length changed: got %d want %d", len(out), len(dry))
	}
	if peak := maxAbs(out); math.Abs(peak-1.0) > 1e-9 {
		t.Fatalf("output not peak-normalized: %.12f", peak)
	}

	// The wet signal must actually be present: the vast majority of
	// samples should differ from the dry input.
	differing := 0
	for i := range out {
		if math.Abs(out[i]-dry[i]) > 1e-6 {
			differing++
		}
	}
	if frac := float64(differing) / float64(len(out)); frac < 0.9 {
		t.Fatalf("only %.1f%% of samples differ from dry input", frac*100)
	}
}

func TestApplyReverbMatchesFFTConvolution(t *testing.T) {
	// Cross-check the wet path against an independent FFT convolution
	// of the identically seeded impulse response.
	const (
		sampleRate = 8000
		roomSize   = 0.02 // 320-sample impulse
		seed       = 77
	)
	gen := signal.NewGenerator(core.WithSampleRate(sampleRate))
	dry, err := gen.Sine(200, 0.4, 1000)
	if err != nil {
		t.Fatalf("sine: %v", err)
	}

	out, err := ApplyReverb(dry, sampleRate, roomSize, 1.0, seed)
	if err != nil {
		t.Fatalf("ApplyReverb: %v", err)
	}

	ir, err := irsynth.Generate(irsynth.Config{SampleRate: sampleRate, RoomSize: roomSize, Seed: seed})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	dry32 := toFloat32(dry)
	ir32 := toFloat32(ir)
	full := make([]float32, len(dry32)+len(ir32)-1)
	if err := algofft.ConvolveReal(full, dry32, ir32); err != nil {
		t.Fatalf("ConvolveReal: %v", err)
	}
	start := (len(ir32) - 1) / 2
	want := make([]float64, len(dry))
	for i := range want {
		want[i] = float64(full[start+i])
	}
	want, err = Normalize(want)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	for i := range out {
		if math.Abs(out[i]-want[i]) > 1e-3 {
			t.Fatalf("wet path mismatch at %d: got=%.6f want=%.6f", i, out[i], want[i])
		}
	}
}

func TestApplyReverbFullyDryStillNormalizes(t *testing.T) {
	// wetDry = 0 keeps the dry signal shape but normalization is
	// unconditional, so the quiet input is scaled up to peak 1.0.
	dry := []float64{0.1, -0.2, 0.15, -0.05, 0.2, -0.1, 0.05, 0.0}
	// Pad so the impulse validates at this rate.
	in := make([]float64, 512)
	copy(in, dry)

	out, err := ApplyReverb(in, 8000, 0.02, 0.0, 1)
	if err != nil {
		t.Fatalf("ApplyReverb: %v", err)
	}
	if peak := maxAbs(out); math.Abs(peak-1.0) > 1e-9 {
		t.Fatalf("output not peak-normalized: %.12f", peak)
	}
	// Relative shape of the dry signal survives a pure-dry mix.
	scale := out[1] / in[1]
	for i := range dry {
		if in[i] == 0 {
			continue
		}
		if math.Abs(out[i]/in[i]-scale) > 1e-9 {
			t.Fatalf("dry shape altered at %d", i)
		}
	}
}

func TestApplyReverbSeedReproducible(t *testing.T) {
	gen := signal.NewGenerator(core.WithSampleRate(16000))
	dry, err := gen.Sine(300, 0.3, 2048)
	if err != nil {
		t.Fatalf("sine: %v", err)
	}

	a, err := ApplyReverb(dry, 16000, 0.1, 0.5, 42)
	if err != nil {
		t.Fatalf("first ApplyReverb: %v", err)
	}
	b, err := ApplyReverb(dry, 16000, 0.1, 0.5, 42)
	if err != nil {
		t.Fatalf("second ApplyReverb: %v", err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed diverged at %d", i)
		}
	}

	c, err := ApplyReverb(dry, 16000, 0.1, 0.5, 43)
	if err != nil {
		t.Fatalf("third ApplyReverb: %v", err)
	}
	same := true
	for i := range a {
		if a[i] != c[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatalf("different seeds produced identical reverbs")
	}
}

func TestApplyReverbRejectsInvalidInput(t *testing.T) {
	if _, err := ApplyReverb(nil, 44100, 0.5, 0.3, 1); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("empty input: got %v want ErrEmptyInput", err)
	}
	good := make([]float64, 4096)
	good[0] = 1
	if _, err := ApplyReverb(good, 44100, 0.0, 0.3, 1); err == nil {
		t.Fatalf("room size 0 accepted")
	}
	if _, err := ApplyReverb(good, 44100, 1.5, 0.3, 1); err == nil {
		t.Fatalf("room size > 1 accepted")
	}
	if _, err := ApplyReverb(good, 44100, 0.5, -0.1, 1); err == nil {
		t.Fatalf("negative wet/dry accepted")
	}
	if _, err := ApplyReverb(good, 44100, 0.5, 1.1, 1); err == nil {
		t.Fatalf("wet/dry > 1 accepted")
	}
}

func toFloat32(x []float64) []float32 {
	out := make([]float32, len(x))
	for i, v := range x {
		out[i] = float32(v)
	}
	return out
}
