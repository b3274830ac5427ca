package course

import (
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"

	"github.com/mshroyer/coursepointer-go/internal/geomodel"
	"github.com/mshroyer/coursepointer-go/internal/measure"
)

// prefilterCrossover is the |segments| × |waypoints| threshold below
// which both the spatial prefilter and parallel execution are skipped,
// per SPEC_FULL.md §4.3 NEW and spec.md §5.
const prefilterCrossover = 256

// earthRadiusApproxM is used only to turn a threshold distance into an
// angular padding for the coarse S2 bounding check; it never feeds the
// accepted geometry, which always goes through C1/C3.
const earthRadiusApproxM = 6371008.8

// paddedBound returns seg's bounding rectangle expanded by threshold, a
// cheap superset test: any point that could intercept seg within
// threshold lies inside it, up to the small difference between the
// segment's great-circle arc and its ellipsoidal geodesic. It MUST NOT be
// used to accept points, only to reject segments outright before the
// exact C3 test.
func paddedBound(seg geomodel.GeoSegment, threshold measure.Meters) s2.Rect {
	rect := seg.Bound()
	pad := s1.Angle(float64(threshold) / earthRadiusApproxM)

	return rect.ExpandedByDistance(pad)
}

// candidateSegments returns the indices of segments worth testing waypoint
// against. With the prefilter enabled it skips segments whose padded
// bound cannot contain the waypoint; otherwise it returns every segment.
func candidateSegments(bounds []s2.Rect, w geomodel.GeoPoint, usePrefilter bool) []int {
	if !usePrefilter {
		all := make([]int, len(bounds))
		for i := range all {
			all[i] = i
		}

		return all
	}

	ll := w.S2LatLng()

	var out []int

	for i, b := range bounds {
		if b.ContainsLatLng(ll) {
			out = append(out, i)
		}
	}

	return out
}
