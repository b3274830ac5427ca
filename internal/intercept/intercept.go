// Package intercept implements the interception engine (spec.md §4.3,
// component C3): for one geodesic segment and one point, decide whether
// the point's foot of perpendicular falls within the segment and, if so,
// at what along-track distance and perpendicular distance.
//
// The engine is pure and side-effect-free so the course assembler (C4) can
// call it freely from multiple goroutines, per spec.md §5.
package intercept

import (
	"math"

	"github.com/mshroyer/coursepointer-go/internal/geodesic"
	"github.com/mshroyer/coursepointer-go/internal/geomodel"
	"github.com/mshroyer/coursepointer-go/internal/measure"
)

const (
	maxIterations  = 10
	convergenceRad = 1e-12 // radians, per spec.md §4.3 step 3
	acceptEpsilonM = 1e-6  // meters, per spec.md §4.3 step 4
)

// Result is the outcome of testing one waypoint against one segment.
type Result struct {
	Hit bool

	// Along is the along-segment arc length of the foot of perpendicular,
	// valid only when Hit is true.
	Along measure.Meters

	// Perp is the perpendicular distance from the point to the segment
	// geometry: the true minimum distance to the foot of perpendicular
	// when Hit is true, or min(d_A, d_B) otherwise (spec.md §4.3).
	Perp measure.Meters

	// Converged is false when the Karney iteration hit the hard cap
	// without moving less than convergenceRad between iterations. The
	// spec treats this as "converged at the latest F" rather than a
	// failure; Converged is surfaced only for optional instrumentation.
	Converged bool
}

// Test runs the Karney iteration intercept solver for segment seg and
// point p, with the given acceptance threshold (used only for the fast
// bounding reject in step 1 — the threshold comparison against the final
// Perp is the caller's responsibility, per spec.md §4.4 step 3).
func Test(seg geomodel.GeoSegment, p geomodel.GeoPoint, threshold measure.Meters) (Result, error) {
	if seg.Degenerate() {
		dist, err := seg.A().InverseTo(p)
		if err != nil {
			return Result{}, err
		}

		return Result{Hit: false, Perp: dist.S12, Converged: true}, nil
	}

	// Step 1: bounding reject.
	distA, err := p.InverseTo(seg.A())
	if err != nil {
		return Result{}, err
	}

	distB, err := p.InverseTo(seg.B())
	if err != nil {
		return Result{}, err
	}

	minEndpoint := distA.S12
	if distB.S12 < minEndpoint {
		minEndpoint = distB.S12
	}

	if distA.S12 > seg.Len()+threshold && distB.S12 > seg.Len()+threshold {
		return Result{Hit: false, Perp: minEndpoint, Converged: true}, nil
	}

	// Step 2: initial center at the segment's geodesic midpoint.
	center, err := seg.Midpoint()
	if err != nil {
		return Result{}, err
	}

	converged := false

	var foot geomodel.GeoPoint

	for i := 0; i < maxIterations; i++ {
		proj := geodesic.NewGnomonicProjection(center.Lat(), center.Lon())

		ax, ay, err := proj.Forward(seg.A().Lat(), seg.A().Lon())
		if err != nil {
			return Result{}, err
		}

		bx, by, err := proj.Forward(seg.B().Lat(), seg.B().Lon())
		if err != nil {
			return Result{}, err
		}

		px, py, err := proj.Forward(p.Lat(), p.Lon())
		if err != nil {
			return Result{}, err
		}

		fx, fy := projectOntoLine(float64(ax), float64(ay), float64(bx), float64(by), float64(px), float64(py))

		newFootLat, newFootLon, err := proj.Reverse(measure.Meters(fx), measure.Meters(fy))
		if err != nil {
			return Result{}, err
		}

		newFoot, err := geomodel.NewGeoPoint(newFootLat, newFootLon)
		if err != nil {
			return Result{}, err
		}

		if i > 0 {
			moved, err := foot.InverseTo(newFoot)
			if err != nil {
				return Result{}, err
			}

			if float64(moved.S12.ToKilometers())*1000/earthRadiusApprox < convergenceRad {
				foot = newFoot
				converged = true

				break
			}
		}

		foot = newFoot
		center = newFoot
	}

	// Step 4: acceptance test, done in the final iteration's gnomonic
	// plane so the "open interval" test matches where foot was computed.
	proj := geodesic.NewGnomonicProjection(center.Lat(), center.Lon())

	ax, ay, err := proj.Forward(seg.A().Lat(), seg.A().Lon())
	if err != nil {
		return Result{}, err
	}

	bx, by, err := proj.Forward(seg.B().Lat(), seg.B().Lon())
	if err != nil {
		return Result{}, err
	}

	px, py, err := proj.Forward(p.Lat(), p.Lon())
	if err != nil {
		return Result{}, err
	}

	t, lineLen := lineParameter(float64(ax), float64(ay), float64(bx), float64(by), float64(px), float64(py))

	if t <= acceptEpsilonM || t >= lineLen-acceptEpsilonM {
		return Result{Hit: false, Perp: minEndpoint, Converged: converged}, nil
	}

	alongResult, err := seg.A().InverseTo(foot)
	if err != nil {
		return Result{}, err
	}

	perpResult, err := p.InverseTo(foot)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Hit:       true,
		Along:     alongResult.S12,
		Perp:      perpResult.S12,
		Converged: converged,
	}, nil
}

// earthRadiusApprox converts a linear displacement in meters to an
// equivalent angular displacement in radians for the convergence check in
// step 3, which spec.md §4.3 states in radians. The WGS84 mean radius is
// accurate enough for a convergence *test* (as opposed to the geometry
// itself, which always goes through C1/the gnomonic projection).
const earthRadiusApprox = 6371008.8

// projectOntoLine returns the closest point on the infinite line through
// (ax,ay)-(bx,by) to (px,py), as plane coordinates.
func projectOntoLine(ax, ay, bx, by, px, py float64) (fx, fy float64) {
	t, _ := lineParameterRaw(ax, ay, bx, by, px, py)

	return ax + t*(bx-ax), ay + t*(by-ay)
}

// lineParameter returns the arc-length-like parameter of the foot of
// perpendicular along A-B (0 at A, lineLen at B), used for the open-
// interval acceptance test in step 4.
func lineParameter(ax, ay, bx, by, px, py float64) (t, lineLen float64) {
	frac, length := lineParameterRaw(ax, ay, bx, by, px, py)

	return frac * length, length
}

// lineParameterRaw returns the dimensionless projection fraction (0 at A,
// 1 at B) and the plane length of A-B.
func lineParameterRaw(ax, ay, bx, by, px, py float64) (frac, length float64) {
	dx, dy := bx-ax, by-ay
	length = math.Hypot(dx, dy)

	if length == 0 {
		return 0, 0
	}

	frac = ((px-ax)*dx + (py-ay)*dy) / (dx*dx + dy*dy)

	return frac, length
}
