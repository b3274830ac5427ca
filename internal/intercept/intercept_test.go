package intercept

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mshroyer/coursepointer-go/internal/geodesic"
	"github.com/mshroyer/coursepointer-go/internal/geomodel"
	"github.com/mshroyer/coursepointer-go/internal/measure"
)

func mustPoint(t *testing.T, lat, lon measure.Degrees) geomodel.GeoPoint {
	t.Helper()

	p, err := geomodel.NewGeoPoint(lat, lon)
	require.NoError(t, err)

	return p
}

// TestEquatorMidpointIntercept is scenario 1 from spec.md §8.
func TestEquatorMidpointIntercept(t *testing.T) {
	a := mustPoint(t, 0, 0)
	b := mustPoint(t, 0, 1)
	seg, err := geomodel.NewGeoSegment(a, b)
	require.NoError(t, err)

	mid := mustPoint(t, 0, 0.5)

	result, err := Test(seg, mid, 35)
	require.NoError(t, err)

	assert.True(t, result.Hit)
	assert.InDelta(t, 55597.46, float64(result.Along), 0.01)
	assert.Less(t, float64(result.Perp), 0.001)
}

// TestOffRouteWaypointMisses is scenario 2 from spec.md §8.
func TestOffRouteWaypointMisses(t *testing.T) {
	a := mustPoint(t, 0, 0)
	b := mustPoint(t, 0, 1)
	seg, err := geomodel.NewGeoSegment(a, b)
	require.NoError(t, err)

	off := mustPoint(t, 0.001, 0.5)

	result, err := Test(seg, off, 35)
	require.NoError(t, err)

	// The foot of perpendicular lies inside the segment, so the engine
	// reports it; the miss comes from Perp exceeding the 35m threshold,
	// which the caller compares.
	assert.True(t, result.Hit)
	assert.Greater(t, float64(result.Perp), 35.0)
	assert.InDelta(t, 111.12, float64(result.Perp), 0.5)
}

func TestBeyondEndpointMisses(t *testing.T) {
	a := mustPoint(t, 0, 0)
	b := mustPoint(t, 0, 1)
	seg, err := geomodel.NewGeoSegment(a, b)
	require.NoError(t, err)

	beyond := mustPoint(t, 0, 1.5)

	result, err := Test(seg, beyond, 35)
	require.NoError(t, err)
	assert.False(t, result.Hit)
}

func TestDegenerateSegmentNeverIntercepts(t *testing.T) {
	a := mustPoint(t, 10, 10)
	seg, err := geomodel.NewGeoSegment(a, a)
	require.NoError(t, err)

	p := mustPoint(t, 10, 10.0001)

	result, err := Test(seg, p, 1000)
	require.NoError(t, err)
	assert.False(t, result.Hit)
	assert.True(t, result.Converged)
}

func TestFarAwayWaypointFastRejected(t *testing.T) {
	a := mustPoint(t, 0, 0)
	b := mustPoint(t, 0, 1)
	seg, err := geomodel.NewGeoSegment(a, b)
	require.NoError(t, err)

	far := mustPoint(t, 45, 45)

	result, err := Test(seg, far, 35)
	require.NoError(t, err)
	assert.False(t, result.Hit)
	assert.Greater(t, float64(result.Perp), 1000.0)
}

func TestFractionalInterceptLaw(t *testing.T) {
	// Property-based law from spec.md §8: a waypoint placed exactly on
	// the geodesic at fraction f should report along_m ~= f * s12.
	a := mustPoint(t, 10, -50)
	b := mustPoint(t, 12, -48)
	seg, err := geomodel.NewGeoSegment(a, b)
	require.NoError(t, err)

	for _, f := range []float64{0.1, 0.25, 0.5, 0.75, 0.9} {
		lat, lon := interpolateGeodesic(t, seg, f)
		p := mustPoint(t, lat, lon)

		result, err := Test(seg, p, 35)
		require.NoError(t, err)
		require.True(t, result.Hit)

		expected := float64(seg.Len()) * f
		assert.InDelta(t, expected, float64(result.Along), 1e-2)
		assert.Less(t, float64(result.Perp), 1e-3)
	}
}

func interpolateGeodesic(t *testing.T, seg geomodel.GeoSegment, f float64) (measure.Degrees, measure.Degrees) {
	t.Helper()

	lat, lon, err := geodesicDirect(t, seg, f)
	require.NoError(t, err)

	return lat, lon
}

func geodesicDirect(t *testing.T, seg geomodel.GeoSegment, f float64) (measure.Degrees, measure.Degrees, error) {
	t.Helper()

	// Reuse C1 directly via the segment's cached azimuth to place a point
	// exactly on the geodesic at fractional distance f.
	dist := seg.Len().Scale(f)

	return geodesic.Direct(seg.A().Lat(), seg.A().Lon(), seg.Azi1(), dist)
}
