package course

import (
	"github.com/mshroyer/coursepointer-go/internal/geomodel"
	"github.com/mshroyer/coursepointer-go/internal/measure"
)

// Disposition records what the assembler decided about one input
// waypoint, for the caller-facing report (spec.md §6.1: "per-waypoint
// disposition with reason strings").
type Disposition struct {
	WaypointIndex int
	Name          string
	Accepted      bool

	// Reason explains a miss; empty when Accepted.
	Reason string

	AlongM measure.Meters
	PerpM  measure.Meters

	// Point is the original waypoint's own position (not the intercept),
	// carried through for presentation-only uses such as internal/report's
	// grid display.
	Point geomodel.GeoPoint
}
