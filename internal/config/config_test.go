package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mshroyer/coursepointer-go/internal/course"
	"github.com/mshroyer/coursepointer-go/internal/pointtype"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".coursepointer.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoadAndApplyOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
threshold_m: 50
sport: hiking
speed_kmph: 14.4
creator: gaia
strict: true
`)

	f, err := Load(path)
	require.NoError(t, err)

	opts := f.ApplyTo(course.DefaultOptions())

	assert.Equal(t, 50.0, float64(opts.ThresholdM))
	assert.Equal(t, course.Sport("hiking"), opts.Sport)
	assert.InDelta(t, 4.0, float64(opts.SpeedMPS), 0.001)
	assert.Equal(t, pointtype.CreatorGaia, opts.CreatorHint)
	assert.True(t, opts.Strict)
}

func TestApplyToLeavesUnsetFieldsAlone(t *testing.T) {
	defaults := course.DefaultOptions()

	var f File

	opts := f.ApplyTo(defaults)
	assert.Equal(t, defaults, opts)
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
