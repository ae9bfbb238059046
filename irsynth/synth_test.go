package irsynth

import (
	"math"
	"testing"
)

func TestGenerateBasic(t *testing.T) {
	cfg := Config{SampleRate: 48000, RoomSize: 0.5, Seed: 42}

	ir, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if want := int(0.5 * 2.0 * 48000); len(ir) != want {
		t.Fatalf("unexpected length: got %d want %d", len(ir), want)
	}

	energy := 0.0
	for i, v := range ir {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("non-finite sample at %d", i)
		}
		energy += v * v
	}
	if energy <= 1e-8 {
		t.Fatalf("expected non-zero energy")
	}
}

func TestGenerateDecayEnvelope(t *testing.T) {
	cfg := Config{SampleRate: 44100, RoomSize: 1.0, Seed: 7}

	ir, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	// The tail must carry far less energy than the head: the envelope
	// reaches exp(-3) ~ 0.05 at the end of the impulse.
	n := len(ir)
	head := 0.0
	tail := 0.0
	for i := 0; i < n/4; i++ {
		head += ir[i] * ir[i]
	}
	for i := 3 * n / 4; i < n; i++ {
		tail += ir[i] * ir[i]
	}
	if tail >= head*0.1 {
		t.Fatalf("tail energy %.6g not sufficiently below head energy %.6g", tail, head)
	}
}

func TestGenerateDeterministicForSeed(t *testing.T) {
	cfg := Config{SampleRate: 32000, RoomSize: 0.3, Seed: 99}

	a, err := Generate(cfg)
	if err != nil {
		t.Fatalf("first Generate: %v", err)
	}
	b, err := Generate(cfg)
	if err != nil {
		t.Fatalf("second Generate: %v", err)
	}
	if len(a) != len(b) {
		t.Fatalf("length mismatch: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("non-deterministic output at index %d", i)
		}
	}

	cfg.Seed = 100
	c, err := Generate(cfg)
	if err != nil {
		t.Fatalf("third Generate: %v", err)
	}
	same := true
	for i := range a {
		if a[i] != c[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatalf("different seeds produced identical impulses")
	}
}

func TestValidateRejectsBadConfigs(t *testing.T) {
	bad := []Config{
		{SampleRate: 0, RoomSize: 0.5, Seed: 1},
		{SampleRate: -48000, RoomSize: 0.5, Seed: 1},
		{SampleRate: 48000, RoomSize: 0, Seed: 1},
		{SampleRate: 48000, RoomSize: -0.1, Seed: 1},
		{SampleRate: 48000, RoomSize: 1.5, Seed: 1},
		{SampleRate: 1, RoomSize: 0.5, Seed: 1}, // length 1, degenerate
	}
	for _, cfg := range bad {
		if _, err := Generate(cfg); err == nil {
			t.Fatalf("expected error for config %+v", cfg)
		}
	}
}
