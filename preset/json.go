// Package preset loads transform requests from JSON job files, so a
// fixed set of variants can be described once and reused across
// inputs.
package preset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/algo-augment/pipeline"
)

// File is the JSON schema for a variant job. All fields are optional;
// a present field activates the corresponding transform. Values are
// carried as-is — domain validation happens per-transform inside the
// pipeline, so one out-of-range field cannot abort the whole job.
type File struct {
	PitchIncrease *float64 `json:"pitch_increase"`
	PitchDecrease *float64 `json:"pitch_decrease"`
	SpeedIncrease *float64 `json:"speed_increase"`
	SpeedDecrease *float64 `json:"speed_decrease"`

	ReverbRoomSize *float64 `json:"reverb_room_size"`
	ReverbWetDry   *float64 `json:"reverb_wet_dry"`

	OverlayWAVPath string   `json:"overlay_wav_path"`
	OverlayVolume  *float64 `json:"overlay_volume"`
}

// LoadJSON reads and parses a job file. A relative overlay path is
// resolved against the job file's directory.
func LoadJSON(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("preset %s: %w", path, err)
	}

	f.OverlayWAVPath = strings.TrimSpace(f.OverlayWAVPath)
	if f.OverlayWAVPath != "" && !filepath.IsAbs(f.OverlayWAVPath) {
		base := filepath.Dir(path)
		f.OverlayWAVPath = filepath.Clean(filepath.Join(base, f.OverlayWAVPath))
	}
	return &f, nil
}

// Apply copies the file's parameters onto a pipeline request. The
// overlay buffer is not loaded here; callers read OverlayWAVPath via
// their decode collaborator and set Request.Overlay themselves.
func (f *File) Apply(dst *pipeline.Request) error {
	if dst == nil {
		return fmt.Errorf("nil destination request")
	}
	if f == nil {
		return nil
	}

	if f.PitchIncrease != nil {
		dst.PitchIncrease = f.PitchIncrease
	}
	if f.PitchDecrease != nil {
		dst.PitchDecrease = f.PitchDecrease
	}
	if f.SpeedIncrease != nil {
		dst.SpeedIncrease = f.SpeedIncrease
	}
	if f.SpeedDecrease != nil {
		dst.SpeedDecrease = f.SpeedDecrease
	}
	if f.ReverbRoomSize != nil {
		dst.ReverbRoomSize = f.ReverbRoomSize
	}
	if f.ReverbWetDry != nil {
		dst.ReverbWetDry = f.ReverbWetDry
	}
	if f.OverlayVolume != nil {
		dst.OverlayVolume = f.OverlayVolume
	}
	return nil
}
