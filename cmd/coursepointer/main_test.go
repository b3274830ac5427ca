package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleGPX = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test">
  <rte>
    <rtept lat="0" lon="0"></rtept>
    <rtept lat="0" lon="1"></rtept>
  </rte>
  <wpt lat="0" lon="0.5">
    <name>mid</name>
    <sym>generic</sym>
  </wpt>
</gpx>
`

func writeGPX(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "course.gpx")
	require.NoError(t, os.WriteFile(path, []byte(sampleGPX), 0o644))

	return path
}

func TestRunConvertsAndReportsCoursePoints(t *testing.T) {
	gpxPath := writeGPX(t)
	outPath := filepath.Join(t.TempDir(), "out.fit")

	var stdout, stderr bytes.Buffer

	code := run([]string{"convert", gpxPath, "--output", outPath}, &stdout, &stderr)

	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout.String(), "1 course points")
	assert.Empty(t, stderr.String())

	info, err := os.Stat(outPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(14))
}

func TestRunMissingInputFileReturnsInputError(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"convert", "/no/such/file.gpx"}, &stdout, &stderr)
	assert.Equal(t, exitInputError, code)
	assert.NotEmpty(t, stderr.String())
}

func TestRunNoArgsPrintsUsage(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run(nil, &stdout, &stderr)
	assert.Equal(t, exitUnspecified, code)
	assert.Contains(t, stderr.String(), "Usage:")
}

func TestRunVersionFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"--version"}, &stdout, &stderr)
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout.String(), "coursepointer")
}

func TestRunGridFlagPrintsGridReferences(t *testing.T) {
	gpxPath := writeGPX(t)
	outPath := filepath.Join(t.TempDir(), "out.fit")

	var stdout, stderr bytes.Buffer

	code := run([]string{"convert", gpxPath, "--output", outPath, "--grid"}, &stdout, &stderr)

	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout.String(), "UTM zone=")
}
