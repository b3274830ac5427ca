// Package config loads optional YAML defaults for assembly options
// (SPEC_FULL.md §1.1), playing the same "external file supplies defaults,
// flags override" role as the teacher's own configuration layer, without
// its line-oriented, cgo-backed parser.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mshroyer/coursepointer-go/internal/course"
	"github.com/mshroyer/coursepointer-go/internal/measure"
	"github.com/mshroyer/coursepointer-go/internal/pointtype"
)

// File is the shape of .coursepointer.yaml.
type File struct {
	ThresholdM  *float64 `yaml:"threshold_m"`
	DedupAlongM *float64 `yaml:"dedup_along_m"`
	Sport       *string  `yaml:"sport"`
	SpeedKMPH   *float64 `yaml:"speed_kmph"`
	Creator     *string  `yaml:"creator"`
	Strict      *bool    `yaml:"strict"`
}

// Load reads a YAML config file from path.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return f, nil
}

// ApplyTo overlays any fields f sets onto opts, returning the merged
// options. Fields left unset in f (nil) leave opts unchanged, so a
// caller can apply CLI flags afterward and have them win.
func (f File) ApplyTo(opts course.AssembleOptions) course.AssembleOptions {
	if f.ThresholdM != nil {
		opts.ThresholdM = measure.Meters(*f.ThresholdM)
	}

	if f.DedupAlongM != nil {
		opts.DedupAlongM = measure.Meters(*f.DedupAlongM)
	}

	if f.Sport != nil {
		opts.Sport = course.Sport(*f.Sport)
	}

	if f.SpeedKMPH != nil {
		opts.SpeedMPS = measure.KilometersPerHour(*f.SpeedKMPH).ToMetersPerSecond()
	}

	if f.Creator != nil {
		opts.CreatorHint = parseCreator(*f.Creator)
	}

	if f.Strict != nil {
		opts.Strict = *f.Strict
	}

	return opts
}

func parseCreator(s string) pointtype.Creator {
	switch s {
	case "gaia":
		return pointtype.CreatorGaia
	case "rwgps":
		return pointtype.CreatorRWGPS
	default:
		return pointtype.CreatorUnknown
	}
}
