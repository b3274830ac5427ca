// Package gpxsrc reads a GPX document into the core's RoutePoint and
// Waypoint inputs (spec.md §1, "external collaborator"). It is adapted
// from the pack's neighborhood999/gpx reader, extended to also parse
// <rte> routes and top-level <wpt> waypoints, which that package does
// not support, and to carry each waypoint's <sym>/<type>/source creator
// through to internal/pointtype.
package gpxsrc

import (
	"encoding/xml"
	"io"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/mshroyer/coursepointer-go/internal/pointtype"
)

// document mirrors enough of the GPX 1.1 schema to recover a route (or,
// failing that, the first track) plus the waypoint pool.
type document struct {
	XMLName  xml.Name  `xml:"gpx"`
	Creator  string    `xml:"creator,attr,omitempty"`
	Version  string    `xml:"version,attr,omitempty"`
	Metadata *metadata `xml:"metadata,omitempty"`
	Waypoint []point   `xml:"wpt,omitempty"`
	Route    []route   `xml:"rte,omitempty"`
	Track    []track   `xml:"trk,omitempty"`
}

type metadata struct {
	Timestamp string `xml:"time,omitempty"`
}

type route struct {
	Name   string  `xml:"name,omitempty"`
	Points []point `xml:"rtept,omitempty"`
}

type track struct {
	Name     string         `xml:"name,omitempty"`
	Segments []trackSegment `xml:"trkseg,omitempty"`
}

type trackSegment struct {
	Points []point `xml:"trkpt,omitempty"`
}

type point struct {
	Latitude  float64  `xml:"lat,attr"`
	Longitude float64  `xml:"lon,attr"`
	Elevation *float64 `xml:"ele,omitempty"`
	Name      string   `xml:"name,omitempty"`
	Symbol    string   `xml:"sym,omitempty"`
	Type      string   `xml:"type,omitempty"`
}

// Route is one parsed route or track: an ordered list of points plus a
// display name (possibly empty).
type Route struct {
	Name   string
	Points []RawPoint
}

// RawPoint is an unvalidated (lat, lon, elevation?) triple straight off
// the wire, left for the caller to turn into a geomodel.GeoPoint.
type RawPoint struct {
	Lat, Lon float64
	Elev     float64
	HasElev  bool
}

// RawWaypoint is an unvalidated waypoint straight off the wire.
type RawWaypoint struct {
	RawPoint

	Name    string
	Symbol  string
	GPXType string
}

// Parsed is the result of reading a GPX document: the chosen route (a
// <rte> if present, else the first <trk>'s concatenated segments) and
// the pool of top-level <wpt> waypoints.
type Parsed struct {
	Route     Route
	Waypoints []RawWaypoint
	Creator   pointtype.Creator
}

// Read parses r as a GPX document.
func Read(r io.Reader) (Parsed, error) {
	doc := &document{}

	d := xml.NewDecoder(r)
	d.CharsetReader = charset.NewReaderLabel

	if err := d.Decode(doc); err != nil {
		return Parsed{}, err
	}

	return toParsed(doc), nil
}

func toParsed(doc *document) Parsed {
	creator := detectCreator(doc.Creator)

	var rt Route

	switch {
	case len(doc.Route) > 0:
		rt = Route{Name: doc.Route[0].Name, Points: toRawPoints(doc.Route[0].Points)}
	case len(doc.Track) > 0:
		rt = Route{Name: doc.Track[0].Name, Points: concatTrackPoints(doc.Track[0])}
	}

	waypoints := make([]RawWaypoint, 0, len(doc.Waypoint))
	for _, w := range doc.Waypoint {
		waypoints = append(waypoints, RawWaypoint{
			RawPoint: toRawPoint(w),
			Name:     w.Name,
			Symbol:   w.Symbol,
			GPXType:  w.Type,
		})
	}

	return Parsed{Route: rt, Waypoints: waypoints, Creator: creator}
}

func concatTrackPoints(t track) []RawPoint {
	var out []RawPoint

	for _, seg := range t.Segments {
		out = append(out, toRawPoints(seg.Points)...)
	}

	return out
}

func toRawPoints(pts []point) []RawPoint {
	out := make([]RawPoint, len(pts))
	for i, p := range pts {
		out[i] = toRawPoint(p)
	}

	return out
}

func toRawPoint(p point) RawPoint {
	if p.Elevation == nil {
		return RawPoint{Lat: p.Latitude, Lon: p.Longitude}
	}

	return RawPoint{Lat: p.Latitude, Lon: p.Longitude, Elev: *p.Elevation, HasElev: true}
}

// detectCreator maps a GPX <gpx creator="..."> attribute to the creator
// hint enum, using simple substring matches against the two producers
// spec.md §4.5 names.
func detectCreator(creator string) pointtype.Creator {
	lower := strings.ToLower(creator)

	switch {
	case strings.Contains(lower, "gaia"):
		return pointtype.CreatorGaia
	case strings.Contains(lower, "ride with gps"), strings.Contains(lower, "ridewithgps"):
		return pointtype.CreatorRWGPS
	default:
		return pointtype.CreatorUnknown
	}
}
