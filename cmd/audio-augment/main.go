package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/algo-augment/analysis"
	"github.com/cwbudde/algo-augment/pipeline"
	"github.com/cwbudde/algo-augment/preset"
	"github.com/cwbudde/algo-augment/wavio"
)

func main() {
	input := flag.String("input", "input.wav", "Source WAV file")
	outDir := flag.String("out-dir", "outputs", "Output directory root")
	presetPath := flag.String("preset", "", "Job JSON file; explicit flags override its fields")
	pitchUp := flag.Float64("pitch-up", 0, "Pitch increase in semitones (> 0); 0 disables")
	pitchDown := flag.Float64("pitch-down", 0, "Pitch decrease in semitones (< 0); 0 disables")
	speedUp := flag.Float64("speed-up", 0, "Speed-up rate factor (> 1.0); 0 disables")
	speedDown := flag.Float64("speed-down", 0, "Slow-down rate factor in (0, 1.0); 0 disables")
	roomSize := flag.Float64("room-size", 0, "Reverb room size in (0, 1.0]; 0 disables")
	wetDry := flag.Float64("wet-dry", pipeline.DefaultReverbWetDry, "Reverb wet/dry mix in [0, 1.0]")
	overlayPath := flag.String("overlay", "", "Overlay WAV file; resampled to the source rate if needed")
	overlayVolume := flag.Float64("overlay-volume", pipeline.DefaultOverlayVolume, "Overlay volume ratio (>= 0)")
	seed := flag.Int64("seed", 0, "Reverb impulse seed; 0 uses a time-based seed")
	flag.Parse()

	var req pipeline.Request
	overlayFile := ""

	if *presetPath != "" {
		f, err := preset.LoadJSON(*presetPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading preset %q: %v\n", *presetPath, err)
			os.Exit(1)
		}
		if err := f.Apply(&req); err != nil {
			fmt.Fprintf(os.Stderr, "Error applying preset %q: %v\n", *presetPath, err)
			os.Exit(1)
		}
		overlayFile = f.OverlayWAVPath
	}

	// Explicit flags override preset fields. Zero-valued transform
	// flags mean "not requested", matching their defaults.
	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "pitch-up":
			req.PitchIncrease = pitchUp
		case "pitch-down":
			req.PitchDecrease = pitchDown
		case "speed-up":
			req.SpeedIncrease = speedUp
		case "speed-down":
			req.SpeedDecrease = speedDown
		case "room-size":
			req.ReverbRoomSize = roomSize
		case "wet-dry":
			req.ReverbWetDry = wetDry
		case "overlay":
			overlayFile = *overlayPath
		case "overlay-volume":
			req.OverlayVolume = overlayVolume
		}
	})

	fmt.Printf("Loading source %q...\n", *input)
	src, sampleRate, err := wavio.ReadMono(*input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading %q: %v\n", *input, err)
		os.Exit(1)
	}
	fmt.Printf("  %d frames @ %d Hz (%.2fs)\n", len(src), sampleRate, float64(len(src))/float64(sampleRate))

	if overlayFile != "" {
		overlay, overlayRate, err := wavio.ReadMono(overlayFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading overlay %q: %v\n", overlayFile, err)
			os.Exit(1)
		}
		overlay, err = wavio.ResampleIfNeeded(overlay, overlayRate, sampleRate)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error resampling overlay %q: %v\n", overlayFile, err)
			os.Exit(1)
		}
		req.Overlay = overlay
	}

	if len(req.Kinds()) == 0 {
		fmt.Fprintln(os.Stderr, "No transforms requested; enable at least one of -pitch-up, -pitch-down, -speed-up, -speed-down, -room-size, -overlay")
		os.Exit(1)
	}

	stem := strings.TrimSuffix(filepath.Base(*input), filepath.Ext(*input))
	subdir := filepath.Join(*outDir, stem)
	if err := os.MkdirAll(subdir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", subdir, err)
		os.Exit(1)
	}
	if err := copyFile(*input, filepath.Join(subdir, filepath.Base(*input))); err != nil {
		fmt.Fprintf(os.Stderr, "Error copying source into %q: %v\n", subdir, err)
		os.Exit(1)
	}

	sink := &dirSink{dir: subdir, stem: stem, paths: make(map[pipeline.Kind]string)}
	var orch *pipeline.Orchestrator
	if *seed != 0 {
		orch = pipeline.NewOrchestratorSeeded(sink, *seed)
	} else {
		orch = pipeline.NewOrchestrator(sink)
	}

	res, err := orch.Process(src, sampleRate, req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	for _, a := range res.Artifacts {
		m := analysis.Summarize(src, a.Samples, a.SampleRate)
		fmt.Printf("  %-10s -> %s (%d frames, peak %.3f, rms %.3f, centroid %.0f Hz)\n",
			a.Kind, sink.paths[a.Kind], m.Frames, m.Peak, m.RMS, m.CentroidHz)
	}
	for kind, terr := range res.Errors {
		fmt.Fprintf(os.Stderr, "  %-10s skipped: %v\n", kind, terr)
	}

	fmt.Printf("Done: %d of %d variants written to %s\n", len(res.Artifacts), len(req.Kinds()), subdir)
	if len(res.Artifacts) == 0 {
		os.Exit(1)
	}
}

// dirSink writes each variant as <stem>_<kind>.wav in its directory,
// versioning names on collision.
type dirSink struct {
	dir   string
	stem  string
	paths map[pipeline.Kind]string
}

func (s *dirSink) Write(kind pipeline.Kind, samples []float64, sampleRate int) error {
	path := wavio.UniquePath(s.dir, s.stem+"_"+kind.String(), ".wav")
	if err := wavio.WriteMono(path, samples, sampleRate); err != nil {
		return err
	}
	s.paths[kind] = path
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
