package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mshroyer/coursepointer-go/internal/course"
	"github.com/mshroyer/coursepointer-go/internal/geomodel"
	"github.com/mshroyer/coursepointer-go/internal/measure"
	"github.com/mshroyer/coursepointer-go/internal/pointtype"
)

func mustPoint(t *testing.T, lat, lon measure.Degrees) geomodel.GeoPoint {
	t.Helper()

	p, err := geomodel.NewGeoPoint(lat, lon)
	require.NoError(t, err)

	return p
}

func TestFromCourseSummarizesAssembly(t *testing.T) {
	route := []geomodel.GeoPoint{mustPoint(t, 0, 0), mustPoint(t, 0, 1)}
	wp := course.NewWaypoint(mustPoint(t, 0, 0.5), "mid", "generic", "", pointtype.CreatorUnknown)

	opts := course.DefaultOptions()
	opts.ThresholdM = 35

	c, disp, err := course.Assemble("Test", route, []course.Waypoint{wp}, opts, time.Now())
	require.NoError(t, err)

	rep := FromCourse(c, disp)

	assert.Equal(t, "Test", rep.CourseName)
	assert.Equal(t, 1, rep.CoursePointsOut)
	assert.Len(t, rep.Accepted(), 1)
	assert.Len(t, rep.Missed(), 0)
	assert.InDelta(t, 111194.93, float64(rep.TotalLengthM), 0.02)
}

func TestGridLineFormatsKnownLocation(t *testing.T) {
	p := mustPoint(t, 42.662139, -71.365553)

	line := GridLine(p)
	assert.Contains(t, line, "UTM zone=19")
	assert.Contains(t, line, "hemi=N")
	assert.Contains(t, line, "MGRS=")
}

func TestGridLineDegradesNearPoles(t *testing.T) {
	p := mustPoint(t, 89.9, 0)

	line := GridLine(p)
	assert.NotEmpty(t, line)
}
