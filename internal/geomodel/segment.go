package geomodel

import (
	"github.com/golang/geo/s2"

	"github.com/mshroyer/coursepointer-go/internal/geodesic"
	"github.com/mshroyer/coursepointer-go/internal/measure"
)

// GeoSegment is an ordered pair of GeoPoints with the geodesic attributes
// spec.md §3 requires cached at creation: arc length, forward azimuth at
// A, and reverse azimuth at B. A zero-length segment (A and B at the same
// coordinates) is permitted and carries Len() == 0; callers degrade to
// "no intercept" against it.
type GeoSegment struct {
	a, b       GeoPoint
	length     measure.Meters
	azi1, azi2 measure.Degrees
}

// NewGeoSegment builds a GeoSegment from its endpoints, calling C1's
// Inverse to populate the cached attributes.
func NewGeoSegment(a, b GeoPoint) (GeoSegment, error) {
	result, err := a.InverseTo(b)
	if err != nil {
		return GeoSegment{}, err
	}

	return GeoSegment{
		a:      a,
		b:      b,
		length: result.S12,
		azi1:   result.Azi1,
		azi2:   result.Azi2,
	}, nil
}

// A returns the segment's starting point.
func (s GeoSegment) A() GeoPoint { return s.a }

// B returns the segment's ending point.
func (s GeoSegment) B() GeoPoint { return s.b }

// Len returns the cached geodesic arc length.
func (s GeoSegment) Len() measure.Meters { return s.length }

// Azi1 returns the cached forward azimuth at A.
func (s GeoSegment) Azi1() measure.Degrees { return s.azi1 }

// Azi2 returns the cached reverse azimuth at B.
func (s GeoSegment) Azi2() measure.Degrees { return s.azi2 }

// Degenerate reports whether the segment has zero length.
func (s GeoSegment) Degenerate() bool { return s.length == 0 }

// Midpoint returns the geodesic midpoint of the segment via C1's Direct,
// used by the interception engine (C3) to center its first gnomonic
// projection, per spec.md §4.3 step 2.
func (s GeoSegment) Midpoint() (GeoPoint, error) {
	lat, lon, err := geodesic.Direct(s.a.Lat(), s.a.Lon(), s.azi1, s.length/2)
	if err != nil {
		return GeoPoint{}, err
	}

	return NewGeoPoint(lat, lon)
}

// Bound returns an S2 rectangle bounding the great-circle arc between the
// segment's endpoints (including any poleward bulge of the arc), used by
// internal/course's coarse prefilter. The threshold padding is applied by
// the caller, not here, since it depends on the configured threshold.
func (s GeoSegment) Bound() s2.Rect {
	rb := s2.NewRectBounder()
	rb.AddPoint(s2.PointFromLatLng(s.a.S2LatLng()))
	rb.AddPoint(s2.PointFromLatLng(s.b.S2LatLng()))

	return rb.RectBound()
}
