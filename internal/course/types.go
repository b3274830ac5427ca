// Package course implements the course assembler (spec.md §4.4, component
// C4): it turns a parsed route and a waypoint pool into a Course with
// cumulative distances and a deduplicated, ordered list of CoursePoints.
package course

import (
	"time"
	"unicode/utf8"

	"github.com/mshroyer/coursepointer-go/internal/geomodel"
	"github.com/mshroyer/coursepointer-go/internal/measure"
	"github.com/mshroyer/coursepointer-go/internal/pointtype"
)

// maxNameBytes is the Waypoint-level name ceiling from spec.md §3: 128
// bytes after truncation at null, i.e. 127 data bytes.
const maxNameBytes = 127

func truncateName(name string) string {
	if len(name) <= maxNameBytes {
		return name
	}

	b := []byte(name)[:maxNameBytes]
	for len(b) > 0 && !utf8.RuneStart(b[len(b)-1]) {
		b = b[:len(b)-1]
	}

	return string(b)
}

// RoutePoint is a GeoPoint with its cumulative distance from the start of
// the route, assigned by the assembler.
type RoutePoint struct {
	Point geomodel.GeoPoint
	Cum   measure.Meters
}

// Waypoint is a candidate point that may be promoted to a CoursePoint.
type Waypoint struct {
	Point       geomodel.GeoPoint
	Name        string
	Symbol      string
	GPXType     string
	Creator     pointtype.Creator
	sourceIndex int
}

// NewWaypoint constructs a Waypoint, truncating Name to the 127-byte
// (plus null) ceiling from spec.md §3.
func NewWaypoint(p geomodel.GeoPoint, name, symbol, gpxType string, creator pointtype.Creator) Waypoint {
	return Waypoint{
		Point:   p,
		Name:    truncateName(name),
		Symbol:  symbol,
		GPXType: gpxType,
		Creator: creator,
	}
}

// CoursePoint is a Waypoint promoted to belong to a Course.
type CoursePoint struct {
	Waypoint

	AlongM       measure.Meters
	PerpM        measure.Meters
	SegmentIndex int
	Type         pointtype.Type
}

// Sport names the activity tag a Course carries; see internal/fit.SportCode
// for the mapping to the FIT numeric enum.
type Sport string

// Parallel selects the concurrency strategy for step 3 of the assembler,
// per spec.md §5.
type Parallel int

const (
	// ParallelAuto picks sequential or parallel based on problem size,
	// per the |segments| × |waypoints| ≤ 256 crossover.
	ParallelAuto Parallel = iota
	ParallelForce
	ParallelOff
)

// AssembleOptions configures Assemble, per spec.md §4.4.
type AssembleOptions struct {
	ThresholdM  measure.Meters
	DedupAlongM measure.Meters
	Sport       Sport
	SpeedMPS    measure.MetersPerSecond
	CreatorHint pointtype.Creator
	Parallel    Parallel

	// Cancel, if non-nil, is checked between waypoints; a closed channel
	// aborts assembly with ErrCancelled.
	Cancel <-chan struct{}

	// Logger receives per-waypoint disposition and non-convergence
	// instrumentation when non-nil (SPEC_FULL.md §4.4 NEW).
	Logger Logger

	// Strict surfaces a degenerate segment as a hard error instead of
	// silently skipping it, per spec.md §7.
	Strict bool
}

// Logger is the narrow logging interface internal/course depends on, kept
// small enough that any leveled logger (in particular charmbracelet/log's
// *log.Logger) satisfies it without an adapter.
type Logger interface {
	Debugf(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

// DefaultOptions returns the spec.md §4.4 defaults.
func DefaultOptions() AssembleOptions {
	return AssembleOptions{
		ThresholdM:  35,
		DedupAlongM: 1,
		Sport:       "generic",
		SpeedMPS:    4,
		CreatorHint: pointtype.CreatorUnknown,
		Parallel:    ParallelAuto,
	}
}

// Course is the immutable result of assembly.
type Course struct {
	Name         string
	Sport        Sport
	Route        []RoutePoint
	CoursePoints []CoursePoint
	SpeedMPS     measure.MetersPerSecond
	Created      time.Time
}

// TotalLength returns the cumulative distance of the last route point, or
// zero for an empty route.
func (c Course) TotalLength() measure.Meters {
	if len(c.Route) == 0 {
		return 0
	}

	return c.Route[len(c.Route)-1].Cum
}

// CourseSet is one or more Courses plus the waypoint pool they were built
// from. The current assembler only ever emits a single Course, per
// spec.md §3.
type CourseSet struct {
	Courses   []Course
	Waypoints []Waypoint
}
