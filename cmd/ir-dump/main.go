package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cwbudde/algo-augment/analysis"
	"github.com/cwbudde/algo-augment/irsynth"
	"github.com/cwbudde/algo-augment/wavio"
)

func main() {
	cfg := irsynth.DefaultConfig()

	output := flag.String("output", "impulse.wav", "Output WAV path")
	flag.IntVar(&cfg.SampleRate, "sample-rate", cfg.SampleRate, "Output sample rate")
	flag.Float64Var(&cfg.RoomSize, "room-size", cfg.RoomSize, "Room size in (0, 1]")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed")
	flag.Parse()

	ir, err := irsynth.Generate(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ir-dump error: %v\n", err)
		os.Exit(1)
	}

	if err := wavio.WriteMono(*output, ir, cfg.SampleRate); err != nil {
		fmt.Fprintf(os.Stderr, "wav write error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s\n", *output)
	fmt.Printf("SampleRate: %d Hz, Duration: %.3f s, Samples: %d\n", cfg.SampleRate, cfg.Duration(), len(ir))
	fmt.Printf("Peak: %.6f, RMS: %.6f\n", analysis.PeakAbs(ir), analysis.RMS(ir))
}
