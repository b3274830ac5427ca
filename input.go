package coursepointer

import (
	"io"
	"time"

	"github.com/mshroyer/coursepointer-go/internal/gpxsrc"
	"github.com/mshroyer/coursepointer-go/internal/pointtype"
)

// RawPoint is an unvalidated (lat, lon, elevation?) triple, per spec.md
// §6.1's caller-supplied route representation.
type RawPoint struct {
	Lat, Lon float64
	Elev     float64
	HasElev  bool
}

// RawWaypoint is an unvalidated waypoint, per spec.md §6.1.
type RawWaypoint struct {
	RawPoint

	Name    string
	Symbol  string
	GPXType string

	// Creator overrides Input.Creator for this one waypoint when set to
	// something other than pointtype.CreatorUnknown.
	Creator pointtype.Creator
}

// Input is the caller-supplied route, waypoint pool, and course name that
// Convert assembles into a FIT course file, per spec.md §6.1.
type Input struct {
	Name      string
	Route     []RawPoint
	Waypoints []RawWaypoint

	// Creator is the default creator hint applied to any waypoint that
	// doesn't specify its own (spec.md §4.5).
	Creator pointtype.Creator

	// Created timestamps the course. A zero value means Convert uses the
	// current time.
	Created time.Time
}

// FromGPX reads a GPX document from r into an Input, using the document's
// <rte> (falling back to its first <trk>) as the route and its top-level
// <wpt> elements as the waypoint pool.
func FromGPX(r io.Reader) (Input, error) {
	parsed, err := gpxsrc.Read(r)
	if err != nil {
		return Input{}, newError(Internal, ErrInternal.msg, err)
	}

	name := parsed.Route.Name
	if name == "" {
		name = "Course"
	}

	route := make([]RawPoint, len(parsed.Route.Points))
	for i, p := range parsed.Route.Points {
		route[i] = RawPoint{Lat: p.Lat, Lon: p.Lon, Elev: p.Elev, HasElev: p.HasElev}
	}

	waypoints := make([]RawWaypoint, len(parsed.Waypoints))
	for i, w := range parsed.Waypoints {
		waypoints[i] = RawWaypoint{
			RawPoint: RawPoint{Lat: w.Lat, Lon: w.Lon, Elev: w.Elev, HasElev: w.HasElev},
			Name:     w.Name,
			Symbol:   w.Symbol,
			GPXType:  w.GPXType,
		}
	}

	return Input{Name: name, Route: route, Waypoints: waypoints, Creator: parsed.Creator}, nil
}
