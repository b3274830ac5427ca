// Package coursepointer implements the orchestration API (component C7):
// it threads a parsed route and waypoint pool through the interception
// engine (C3/C4) and the FIT encoder (C6), producing a course file and a
// caller-facing report, per spec.md §6.1.
package coursepointer

import (
	"context"
	"io"
	"time"

	"github.com/mshroyer/coursepointer-go/internal/course"
	"github.com/mshroyer/coursepointer-go/internal/fit"
	"github.com/mshroyer/coursepointer-go/internal/geomodel"
	"github.com/mshroyer/coursepointer-go/internal/pointtype"
	"github.com/mshroyer/coursepointer-go/internal/report"
)

// fitSoftwareVersion is this encoder's self-reported FileCreator software
// version (1.00, FIT's fixed-point convention of version*100), following
// the teacher's own version.go build-stamping pattern but with a literal
// constant since this is a library, not a built binary.
const fitSoftwareVersion uint16 = 100

// Convert assembles in's route and waypoints into a course, encodes it as
// a FIT course file to out, and returns the caller-facing report, per
// spec.md §6.1. ctx is consulted for cancellation between waypoints
// during C4's intercept search (spec.md §5).
func Convert(ctx context.Context, in Input, out io.Writer, opts course.AssembleOptions) (report.ConversionReport, error) {
	created := in.Created
	if created.IsZero() {
		created = time.Now().UTC()
	}

	route, err := toGeoPoints(in.Route)
	if err != nil {
		return report.ConversionReport{}, classify(err)
	}

	waypoints, err := toWaypoints(in.Waypoints, in.Creator)
	if err != nil {
		return report.ConversionReport{}, classify(err)
	}

	opts.Cancel = ctx.Done()

	c, dispositions, err := course.Assemble(in.Name, route, waypoints, opts, created)
	if err != nil {
		return report.ConversionReport{}, classify(err)
	}

	if err := encode(c, created, out); err != nil {
		return report.ConversionReport{}, classify(err)
	}

	return report.FromCourse(c, dispositions), nil
}

func toGeoPoints(raw []RawPoint) ([]geomodel.GeoPoint, error) {
	points := make([]geomodel.GeoPoint, len(raw))

	for i, p := range raw {
		var (
			gp  geomodel.GeoPoint
			err error
		)

		if p.HasElev {
			gp, err = geomodel.NewGeoPointWithElevation(measureDegrees(p.Lat), measureDegrees(p.Lon), measureMeters(p.Elev))
		} else {
			gp, err = geomodel.NewGeoPoint(measureDegrees(p.Lat), measureDegrees(p.Lon))
		}

		if err != nil {
			return nil, err
		}

		points[i] = gp
	}

	return points, nil
}

func toWaypoints(raw []RawWaypoint, defaultCreator pointtype.Creator) ([]course.Waypoint, error) {
	waypoints := make([]course.Waypoint, len(raw))

	for i, w := range raw {
		var (
			gp  geomodel.GeoPoint
			err error
		)

		if w.HasElev {
			gp, err = geomodel.NewGeoPointWithElevation(measureDegrees(w.Lat), measureDegrees(w.Lon), measureMeters(w.Elev))
		} else {
			gp, err = geomodel.NewGeoPoint(measureDegrees(w.Lat), measureDegrees(w.Lon))
		}

		if err != nil {
			return nil, err
		}

		creator := w.Creator
		if creator == pointtype.CreatorUnknown {
			creator = defaultCreator
		}

		waypoints[i] = course.NewWaypoint(gp, w.Name, w.Symbol, w.GPXType, creator)
	}

	return waypoints, nil
}

// encode writes c as a complete FIT course file to w, per spec.md §4.6
// and §6.2.
func encode(c course.Course, created time.Time, w io.Writer) error {
	e := fit.NewEncoder(w)

	if err := e.WriteFileID(created); err != nil {
		return err
	}

	if err := e.WriteCourse(c.Name, fit.SportCode(string(c.Sport))); err != nil {
		return err
	}

	total := c.TotalLength()
	duration := durationAt(total, c.SpeedMPS)

	if len(c.Route) > 0 {
		start := c.Route[0].Point
		end := c.Route[len(c.Route)-1].Point

		lap := fit.LapSummary{
			StartTime:     created,
			Timestamp:     created.Add(duration),
			StartLat:      start.Lat(),
			StartLon:      start.Lon(),
			EndLat:        end.Lat(),
			EndLon:        end.Lon(),
			ElapsedTime:   duration,
			TimerTime:     duration,
			TotalDistance: total,
		}

		if err := e.WriteLap(lap); err != nil {
			return err
		}
	}

	if err := e.WriteEventStart(created); err != nil {
		return err
	}

	// Route points and course points are each already in non-decreasing
	// along_m order; merge them so the two streams interleave in a single
	// non-decreasing sequence rather than writing one stream in full
	// before the other, per spec.md §4.6.
	var ri, ci int
	for ri < len(c.Route) || ci < len(c.CoursePoints) {
		writeRecord := ri < len(c.Route) && (ci >= len(c.CoursePoints) || c.Route[ri].Cum <= c.CoursePoints[ci].AlongM)

		if writeRecord {
			rp := c.Route[ri]
			ts := created.Add(durationAt(rp.Cum, c.SpeedMPS))

			if err := e.WriteRecord(ts, rp.Point.Lat(), rp.Point.Lon(), rp.Cum); err != nil {
				return err
			}

			ri++

			continue
		}

		cp := c.CoursePoints[ci]
		ts := created.Add(durationAt(cp.AlongM, c.SpeedMPS))

		if err := e.WriteCoursePoint(ts, cp.Point.Lat(), cp.Point.Lon(), cp.AlongM, cp.Type, cp.Name); err != nil {
			return err
		}

		ci++
	}

	if err := e.WriteEventStop(created.Add(duration)); err != nil {
		return err
	}

	if err := e.WriteFileCreator(fitSoftwareVersion, 0); err != nil {
		return err
	}

	return e.Close()
}
