// Package geomodel implements the geographic value types from spec.md §3
// (component C2): GeoPoint and GeoSegment. Both are immutable once
// constructed; GeoSegment caches the geodesic attributes (length, forward
// and reverse azimuth) computed from its endpoints at creation time.
package geomodel

import (
	"errors"
	"fmt"
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"

	"github.com/mshroyer/coursepointer-go/internal/geodesic"
	"github.com/mshroyer/coursepointer-go/internal/measure"
)

// ErrInvalidCoordinate is returned by NewGeoPoint when latitude or
// longitude is out of range or NaN, per spec.md §7.
var ErrInvalidCoordinate = errors.New("geomodel: invalid coordinate")

// GeoPoint is an immutable WGS84 surface point with an optional elevation.
type GeoPoint struct {
	lat, lon measure.Degrees
	elev     measure.Meters
	hasElev  bool
}

// NewGeoPoint constructs a GeoPoint, failing with ErrInvalidCoordinate when
// lat is outside [-90, 90], lon is outside [-180, 180], or either is NaN.
func NewGeoPoint(lat, lon measure.Degrees) (GeoPoint, error) {
	if math.IsNaN(float64(lat)) || math.IsNaN(float64(lon)) {
		return GeoPoint{}, fmt.Errorf("%w: NaN coordinate", ErrInvalidCoordinate)
	}

	if lat < -90 || lat > 90 {
		return GeoPoint{}, fmt.Errorf("%w: latitude %g out of range", ErrInvalidCoordinate, lat)
	}

	if lon < -180 || lon > 180 {
		return GeoPoint{}, fmt.Errorf("%w: longitude %g out of range", ErrInvalidCoordinate, lon)
	}

	return GeoPoint{lat: lat, lon: lon}, nil
}

// NewGeoPointWithElevation is NewGeoPoint plus an elevation in meters.
func NewGeoPointWithElevation(lat, lon measure.Degrees, elev measure.Meters) (GeoPoint, error) {
	p, err := NewGeoPoint(lat, lon)
	if err != nil {
		return GeoPoint{}, err
	}

	p.elev = elev
	p.hasElev = true

	return p, nil
}

// Lat returns the latitude in decimal degrees.
func (p GeoPoint) Lat() measure.Degrees { return p.lat }

// Lon returns the longitude in decimal degrees.
func (p GeoPoint) Lon() measure.Degrees { return p.lon }

// Elevation returns the elevation in meters and whether one was set.
func (p GeoPoint) Elevation() (measure.Meters, bool) { return p.elev, p.hasElev }

// Equal reports exact bit-equality on normalized fields, per spec.md §3.
func (p GeoPoint) Equal(other GeoPoint) bool {
	return p.lat == other.lat && p.lon == other.lon && p.elev == other.elev && p.hasElev == other.hasElev
}

// S2LatLng returns the S2 library's representation of this point, used by
// internal/course's coarse spatial prefilter (SPEC_FULL.md §4.3 NEW).
func (p GeoPoint) S2LatLng() s2.LatLng {
	return s2.LatLng{
		Lat: s1.Angle(p.lat.ToRadians()),
		Lng: s1.Angle(p.lon.ToRadians()),
	}
}

func (p GeoPoint) String() string {
	return fmt.Sprintf("(%g, %g)", float64(p.lat), float64(p.lon))
}

// InverseTo returns the geodesic distance and azimuths from p to other via
// C1.
func (p GeoPoint) InverseTo(other GeoPoint) (geodesic.InverseResult, error) {
	return geodesic.Inverse(p.lat, p.lon, other.lat, other.lon)
}
