package course

import (
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/golang/geo/s2"

	"github.com/mshroyer/coursepointer-go/internal/geomodel"
	"github.com/mshroyer/coursepointer-go/internal/intercept"
	"github.com/mshroyer/coursepointer-go/internal/measure"
	"github.com/mshroyer/coursepointer-go/internal/pointtype"
)

// Assemble implements spec.md §4.4 steps 1-6: it builds segments from
// routePoints, computes cumulative distance, tests every waypoint against
// every candidate segment via C3, deduplicates, orders, and tags the
// survivors. name, sport, and created populate the resulting Course's
// metadata.
func Assemble(name string, routePoints []geomodel.GeoPoint, waypoints []Waypoint, opts AssembleOptions, created time.Time) (Course, []Disposition, error) {
	segments, route, err := buildSegments(routePoints, opts)
	if err != nil {
		return Course{}, nil, err
	}

	bestPerWaypoint, dispositions, err := findIntercepts(segments, route, waypoints, opts)
	if err != nil {
		return Course{}, nil, err
	}

	points := attachCoursePoints(waypoints, bestPerWaypoint, opts)

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].AlongM < points[j].AlongM
	})

	points = dedupe(points, opts.DedupAlongM)

	for i := range points {
		points[i].Type = pointtype.Map(points[i].Creator, points[i].Symbol, points[i].GPXType)
	}

	c := Course{
		Name:         name,
		Sport:        opts.Sport,
		Route:        route,
		CoursePoints: points,
		SpeedMPS:     opts.SpeedMPS,
		Created:      created,
	}

	return c, dispositions, nil
}

// buildSegments collapses adjacent exact-coordinate duplicates, then
// builds the GeoSegment list and the cumulative-distance RoutePoint
// sequence, per spec.md §4.4 steps 1-2.
func buildSegments(routePoints []geomodel.GeoPoint, opts AssembleOptions) ([]geomodel.GeoSegment, []RoutePoint, error) {
	distinct := make([]geomodel.GeoPoint, 0, len(routePoints))

	for _, p := range routePoints {
		if len(distinct) > 0 && distinct[len(distinct)-1].Equal(p) {
			continue
		}

		distinct = append(distinct, p)
	}

	if len(distinct) < 2 {
		return nil, nil, ErrEmptyCourse
	}

	segments := make([]geomodel.GeoSegment, 0, len(distinct)-1)
	route := make([]RoutePoint, len(distinct))

	var cum measure.Meters

	route[0] = RoutePoint{Point: distinct[0], Cum: 0}

	for i := 0; i < len(distinct)-1; i++ {
		seg, err := geomodel.NewGeoSegment(distinct[i], distinct[i+1])
		if err != nil {
			return nil, nil, fmt.Errorf("course: building segment %d: %w", i, err)
		}

		if seg.Degenerate() {
			if opts.Strict {
				return nil, nil, fmt.Errorf("%w: segment %d", ErrDegenerateSegment, i)
			}

			if opts.Logger != nil {
				opts.Logger.Warnf("course: skipping degenerate segment %d", i)
			}
		}

		segments = append(segments, seg)
		cum += seg.Len()
		route[i+1] = RoutePoint{Point: distinct[i+1], Cum: cum}
	}

	return segments, route, nil
}

// waypointHit is one accepted intercept of a waypoint against a
// candidate segment.
type waypointHit struct {
	along measure.Meters
	perp  measure.Meters
	seg   int
}

// findIntercepts runs step 3: for every waypoint, test every candidate
// segment via C3 and keep every accepted hit (spec.md §4.4 step 3 attaches
// one provisional CoursePoint per accepted waypoint/segment pair — an
// out-and-back route legitimately intercepts a waypoint twice, at two
// different along_m values, and it's the dedup in step 5 that collapses
// near-duplicates, not this step). Dispatches to the sequential or
// parallel path per opts.Parallel and the |segments|×|waypoints|
// crossover.
func findIntercepts(segments []geomodel.GeoSegment, route []RoutePoint, waypoints []Waypoint, opts AssembleOptions) ([][]waypointHit, []Disposition, error) {
	n := len(segments) * len(waypoints)
	usePrefilter := n > prefilterCrossover

	bounds := make([]s2.Rect, len(segments))
	for i, seg := range segments {
		bounds[i] = paddedBound(seg, opts.ThresholdM)
	}

	parallel := opts.Parallel == ParallelForce || (opts.Parallel == ParallelAuto && n > prefilterCrossover)

	hits := make([][]waypointHit, len(waypoints))
	dispositions := make([]Disposition, len(waypoints))

	testOne := func(i int) error {
		w := waypoints[i]

		candidates := candidateSegments(bounds, w.Point, usePrefilter)

		wHits, missPerp, err := bestIntercept(segments, route, w.Point, candidates, opts)
		if err != nil {
			return err
		}

		hits[i] = wHits
		dispositions[i] = dispositionFor(i, w, wHits, missPerp)

		if opts.Logger != nil {
			if len(wHits) > 0 {
				opts.Logger.Debugf("course: waypoint %q intercepts %d segment(s)", w.Name, len(wHits))
			} else {
				opts.Logger.Debugf("course: waypoint %q misses (perp=%.2fm)", w.Name, missPerp)
			}
		}

		return nil
	}

	if !parallel {
		for i := range waypoints {
			if cancelled(opts.Cancel) {
				return nil, nil, ErrCancelled
			}

			if err := testOne(i); err != nil {
				return nil, nil, err
			}
		}

		return hits, dispositions, nil
	}

	workers := runtime.GOMAXPROCS(0)
	if workers < 1 {
		workers = 1
	}

	// Buffered to the full job count so a worker that exits early on
	// error can never leave the sender below blocked on a full channel.
	jobs := make(chan int, len(waypoints))
	errs := make(chan error, workers)

	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for i := range jobs {
				if cancelled(opts.Cancel) {
					select {
					case errs <- ErrCancelled:
					default:
					}

					return
				}

				if err := testOne(i); err != nil {
					select {
					case errs <- err:
					default:
					}

					return
				}
			}
		}()
	}

	for i := range waypoints {
		jobs <- i
	}

	close(jobs)
	wg.Wait()
	close(errs)

	if err := <-errs; err != nil {
		return nil, nil, err
	}

	return hits, dispositions, nil
}

func cancelled(c <-chan struct{}) bool {
	if c == nil {
		return false
	}

	select {
	case <-c:
		return true
	default:
		return false
	}
}

// bestIntercept tests w against every candidate segment and returns every
// accepted hit (one per intercepted segment), plus the smallest perp
// among rejected segments for use in a miss disposition when none are
// accepted.
func bestIntercept(segments []geomodel.GeoSegment, route []RoutePoint, w geomodel.GeoPoint, candidates []int, opts AssembleOptions) ([]waypointHit, measure.Meters, error) {
	var hits []waypointHit

	minMissPerp := measure.Meters(-1)

	for _, idx := range candidates {
		res, err := intercept.Test(segments[idx], w, opts.ThresholdM)
		if err != nil {
			return nil, 0, err
		}

		if !res.Converged && opts.Logger != nil {
			opts.Logger.Debugf("course: intercept iteration on segment %d stopped at the iteration cap", idx)
		}

		if !res.Hit || res.Perp > opts.ThresholdM {
			if minMissPerp < 0 || res.Perp < minMissPerp {
				minMissPerp = res.Perp
			}

			continue
		}

		hits = append(hits, waypointHit{along: route[idx].Cum + res.Along, perp: res.Perp, seg: idx})
	}

	return hits, minMissPerp, nil
}

// dispositionFor reports the smallest-perp accepted hit when w was
// accepted at all, even though every accepted hit becomes its own
// CoursePoint below.
func dispositionFor(i int, w Waypoint, hits []waypointHit, missPerp measure.Meters) Disposition {
	if len(hits) > 0 {
		best := hits[0]

		for _, h := range hits[1:] {
			if h.perp < best.perp {
				best = h
			}
		}

		return Disposition{WaypointIndex: i, Name: w.Name, Accepted: true, AlongM: best.along, PerpM: best.perp, Point: w.Point}
	}

	return Disposition{
		WaypointIndex: i,
		Name:          w.Name,
		Accepted:      false,
		Reason:        "no segment intercepted within threshold",
		PerpM:         missPerp,
		Point:         w.Point,
	}
}

// attachCoursePoints builds the provisional CoursePoint list from the
// accepted hits, one per waypoint/segment pair, per spec.md §4.4 step 3.
func attachCoursePoints(waypoints []Waypoint, hits [][]waypointHit, opts AssembleOptions) []CoursePoint {
	points := make([]CoursePoint, 0, len(waypoints))

	for i, wHits := range hits {
		for _, hit := range wHits {
			points = append(points, CoursePoint{
				Waypoint:     waypoints[i],
				AlongM:       hit.along,
				PerpM:        hit.perp,
				SegmentIndex: hit.seg,
			})
		}
	}

	return points
}

// dedupe implements spec.md §4.4 step 5: drop any course point whose
// along_m is within dedupAlongM of the previous kept one and whose
// coordinates coincide to within 1m.
func dedupe(points []CoursePoint, dedupAlongM measure.Meters) []CoursePoint {
	if len(points) == 0 {
		return points
	}

	out := make([]CoursePoint, 0, len(points))
	out = append(out, points[0])

	for i := 1; i < len(points); i++ {
		prev := out[len(out)-1]
		cur := points[i]

		if cur.AlongM-prev.AlongM <= dedupAlongM && coordinatesCoincide(prev.Point, cur.Point) {
			continue
		}

		out = append(out, cur)
	}

	return out
}

const dedupCoordinateToleranceM = 1

func coordinatesCoincide(a, b geomodel.GeoPoint) bool {
	res, err := a.InverseTo(b)
	if err != nil {
		return false
	}

	return res.S12 <= dedupCoordinateToleranceM
}
