// Package irsynth synthesizes decaying-noise impulse responses for
// convolution reverb. The impulse is Gaussian noise shaped by an
// exponential decay envelope; room size controls both length and decay.
package irsynth

import (
	"fmt"
	"math"
	"math/rand"
)

// Config controls impulse response generation.
type Config struct {
	SampleRate int
	RoomSize   float64 // (0, 1]; impulse duration is RoomSize * 2.0 seconds
	Seed       int64
}

// DefaultConfig returns sensible defaults for a medium room.
func DefaultConfig() Config {
	return Config{
		SampleRate: 48000,
		RoomSize:   0.5,
		Seed:       1,
	}
}

func (c *Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be > 0: %d", c.SampleRate)
	}
	if c.RoomSize <= 0 || c.RoomSize > 1 {
		return fmt.Errorf("room size must be in (0, 1]: %g", c.RoomSize)
	}
	if n := c.Length(); n < 2 {
		return fmt.Errorf("impulse length %d too short (room size %g at %d Hz)", n, c.RoomSize, c.SampleRate)
	}
	return nil
}

// Duration returns the impulse duration in seconds.
func (c *Config) Duration() float64 {
	return c.RoomSize * 2.0
}

// Length returns the impulse length in samples.
func (c *Config) Length() int {
	return int(c.Duration() * float64(c.SampleRate))
}

// Generate synthesizes an impulse response according to cfg.
//
// Each sample is decay(t) * n * 0.1 where n is drawn from a standard
// normal distribution and decay(t) = exp(-3 t / duration). The generator
// is seeded from cfg.Seed, so equal configs produce equal impulses.
func Generate(cfg Config) ([]float64, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	duration := cfg.Duration()
	n := cfg.Length()
	out := make([]float64, n)

	rng := rand.New(rand.NewSource(cfg.Seed))

	step := duration / float64(n-1)
	for i := range out {
		t := float64(i) * step
		decay := math.Exp(-3.0 * t / duration)
		out[i] = decay * rng.NormFloat64() * 0.1
	}
	return out, nil
}
