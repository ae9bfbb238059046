// Package wavio is the decode/load and encode/write collaborator of
// the variant pipeline: mono WAV reading (multi-channel input is
// averaged down), 16-bit PCM writing, sample-rate reconciliation, and
// collision-free output naming. The pipeline core never touches files;
// everything file-shaped lives here or in cmd.
package wavio

import (
	"fmt"
	"os"
	"path/filepath"

	dspresample "github.com/cwbudde/algo-dsp/dsp/resample"
	"github.com/cwbudde/wav"
	"github.com/go-audio/audio"
)

// ReadMono decodes a WAV file into a mono float64 buffer and returns
// it with the file's sample rate. Multi-channel files are averaged
// down to mono.
func ReadMono(path string) ([]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("invalid wav file: %s", path)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, err
	}
	if buf == nil || buf.Format == nil || buf.Format.NumChannels < 1 {
		return nil, 0, fmt.Errorf("invalid wav buffer: %s", path)
	}
	if buf.Format.SampleRate <= 0 {
		return nil, 0, fmt.Errorf("invalid wav sample rate %d: %s", buf.Format.SampleRate, path)
	}

	ch := buf.Format.NumChannels
	frames := len(buf.Data) / ch
	if frames == 0 {
		return nil, 0, fmt.Errorf("empty wav data: %s", path)
	}
	out := make([]float64, frames)
	for i := 0; i < frames; i++ {
		var sum float64
		for c := 0; c < ch; c++ {
			sum += float64(buf.Data[i*ch+c])
		}
		out[i] = sum / float64(ch)
	}
	return out, buf.Format.SampleRate, nil
}

// WriteMono encodes data as a mono 16-bit PCM WAV file, creating
// parent directories as needed.
func WriteMono(path string, data []float64, sampleRate int) error {
	if len(data) == 0 {
		return fmt.Errorf("refusing to write empty buffer: %s", path)
	}
	if sampleRate <= 0 {
		return fmt.Errorf("sample rate must be > 0: %d", sampleRate)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)
	defer enc.Close()

	samples := make([]float32, len(data))
	for i, v := range data {
		samples[i] = float32(v)
	}
	buf := &audio.Float32Buffer{
		Format: &audio.Format{
			SampleRate:  sampleRate,
			NumChannels: 1,
		},
		Data:           samples,
		SourceBitDepth: 16,
	}
	return enc.Write(buf)
}

// ResampleIfNeeded converts in from fromRate to toRate, returning the
// input unchanged when the rates already match.
func ResampleIfNeeded(in []float64, fromRate int, toRate int) ([]float64, error) {
	if fromRate == toRate {
		return in, nil
	}
	if fromRate <= 0 || toRate <= 0 {
		return nil, fmt.Errorf("sample rates must be > 0: %d -> %d", fromRate, toRate)
	}
	r, err := dspresample.NewForRates(
		float64(fromRate),
		float64(toRate),
		dspresample.WithQuality(dspresample.QualityBest),
	)
	if err != nil {
		return nil, err
	}
	return r.Process(in), nil
}

// UniquePath returns dir/stem+ext, appending _v1, _v2, ... to the stem
// until the path does not exist yet.
func UniquePath(dir, stem, ext string) string {
	candidate := filepath.Join(dir, stem+ext)
	for v := 1; pathExists(candidate); v++ {
		candidate = filepath.Join(dir, fmt.Sprintf("%s_v%d%s", stem, v, ext))
	}
	return candidate
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
