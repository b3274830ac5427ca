// Package geodesic is the only place CoursePointer talks to the WGS84
// ellipsoid (spec.md §4.1, component C1). It binds
// github.com/tidwall/geodesic_cgo, a cgo wrapper around GeographicLib — the
// same vendor library the real-world coursepointer tool relies on for its
// geodesic math — and layers a gnomonic projection helper on top of it.
//
// Exceptions or panics crossing the cgo boundary never escape this package:
// they are recovered here and turned into ErrDegenerate, per the design note in spec.md §9 ("the core above C1 has no exception
// surface").
package geodesic

import (
	"math"

	geocgo "github.com/tidwall/geodesic_cgo"

	"github.com/mshroyer/coursepointer-go/internal/measure"
)

// wgs84Gnomonic is a read-only, idempotent shared resource: GeographicLib's
// Gnomonic helper holds no mutable state once constructed, so it's safe to
// share across goroutines the way spec.md §9 requires of C1's primitives.
var wgs84Gnomonic = geocgo.NewGnomonic(geocgo.WGS84)

// InverseResult is the solution to the WGS84 inverse geodesic problem.
type InverseResult struct {
	S12  measure.Meters  // surface arc length
	Azi1 measure.Degrees // forward azimuth at point 1, in (-180, 180]
	Azi2 measure.Degrees // forward azimuth at point 2, in (-180, 180]
}

// Inverse solves the WGS84 inverse geodesic problem: given two points,
// find the distance between them and the azimuths at each end.
func Inverse(lat1, lon1, lat2, lon2 measure.Degrees) (InverseResult, error) {
	if hasNaN(float64(lat1), float64(lon1), float64(lat2), float64(lon2)) {
		return InverseResult{}, ErrDegenerate
	}

	var s12, azi1, azi2 float64

	if err := recoverable(func() {
		geocgo.WGS84.Inverse(float64(lat1), float64(lon1), float64(lat2), float64(lon2), &s12, &azi1, &azi2)
	}); err != nil {
		return InverseResult{}, err
	}

	return InverseResult{
		S12:  measure.Meters(s12),
		Azi1: measure.Degrees(azi1),
		Azi2: measure.Degrees(azi2),
	}, nil
}

// Direct solves the WGS84 direct geodesic problem: given a point, an
// azimuth, and a distance, find the resulting point.
func Direct(lat1, lon1, azi1 measure.Degrees, s12 measure.Meters) (lat2, lon2 measure.Degrees, err error) {
	if hasNaN(float64(lat1), float64(lon1), float64(azi1), float64(s12)) {
		return 0, 0, ErrDegenerate
	}

	var outLat, outLon float64

	if err := recoverable(func() {
		geocgo.WGS84.Direct(float64(lat1), float64(lon1), float64(azi1), float64(s12), &outLat, &outLon, nil)
	}); err != nil {
		return 0, 0, err
	}

	return measure.Degrees(outLat), measure.Degrees(outLon), nil
}

// GnomonicProjection is a gnomonic map centered at a fixed point, per
// spec.md §4.1: geodesics near the center project to near-straight lines,
// which is what lets the interception engine (C3) linearize the
// foot-of-perpendicular search.
type GnomonicProjection struct {
	lat0, lon0 measure.Degrees
}

// NewGnomonicProjection returns a gnomonic projection centered at (lat0, lon0).
func NewGnomonicProjection(lat0, lon0 measure.Degrees) GnomonicProjection {
	return GnomonicProjection{lat0: lat0, lon0: lon0}
}

// Forward projects (lat, lon) into the gnomonic plane as (x, y) meters from
// the center. It fails with ErrOutsideHemisphere when the underlying
// projection returns NaN coordinates for the point; Forward applies no
// distance limit of its own.
func (g GnomonicProjection) Forward(lat, lon measure.Degrees) (x, y measure.Meters, err error) {
	if hasNaN(float64(g.lat0), float64(g.lon0), float64(lat), float64(lon)) {
		return 0, 0, ErrDegenerate
	}

	var outX, outY float64

	callErr := recoverable(func() {
		wgs84Gnomonic.Forward(float64(g.lat0), float64(g.lon0), float64(lat), float64(lon), &outX, &outY)
	})
	if callErr != nil {
		return 0, 0, callErr
	}

	// GeographicLib signals an unprojectable point (antipodal region) with
	// NaN outputs rather than an error return.
	if math.IsNaN(outX) || math.IsNaN(outY) {
		return 0, 0, ErrOutsideHemisphere
	}

	return measure.Meters(outX), measure.Meters(outY), nil
}

// Reverse is the inverse of Forward: given a point (x, y) in the gnomonic
// plane, recovers its geographic coordinates.
func (g GnomonicProjection) Reverse(x, y measure.Meters) (lat, lon measure.Degrees, err error) {
	if hasNaN(float64(g.lat0), float64(g.lon0), float64(x), float64(y)) {
		return 0, 0, ErrDegenerate
	}

	var outLat, outLon float64

	if callErr := recoverable(func() {
		wgs84Gnomonic.Reverse(float64(g.lat0), float64(g.lon0), float64(x), float64(y), &outLat, &outLon)
	}); callErr != nil {
		return 0, 0, callErr
	}

	return measure.Degrees(outLat), measure.Degrees(outLon), nil
}

func hasNaN(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) {
			return true
		}
	}

	return false
}

// recoverable runs fn, converting any panic raised across the cgo boundary
// into ErrDegenerate rather than letting it propagate, per spec.md §9.
func recoverable(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = ErrDegenerate
		}
	}()

	fn()

	return nil
}
