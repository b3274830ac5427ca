// Package report builds the caller-facing ConversionReport (spec.md §6.1)
// and, when requested, formats course points as UTM/MGRS grid references
// using the same github.com/tzneal/coordconv API the teacher's
// cmd/samoyed-ll2utm and cmd/samoyed-utm2ll call directly.
package report

import (
	"fmt"

	"github.com/tzneal/coordconv"

	"github.com/mshroyer/coursepointer-go/internal/course"
	"github.com/mshroyer/coursepointer-go/internal/geomodel"
	"github.com/mshroyer/coursepointer-go/internal/measure"
)

// ConversionReport is the caller-facing summary of one Convert call,
// per spec.md §6.1: course name, total length, per-waypoint disposition,
// number of course points emitted.
type ConversionReport struct {
	CourseName      string
	TotalLengthM    measure.Meters
	Dispositions    []course.Disposition
	CoursePointsOut int
}

// Accepted returns the dispositions that were promoted to course points.
func (r ConversionReport) Accepted() []course.Disposition {
	var out []course.Disposition

	for _, d := range r.Dispositions {
		if d.Accepted {
			out = append(out, d)
		}
	}

	return out
}

// Missed returns the dispositions that were not promoted, with their
// miss reason.
func (r ConversionReport) Missed() []course.Disposition {
	var out []course.Disposition

	for _, d := range r.Dispositions {
		if !d.Accepted {
			out = append(out, d)
		}
	}

	return out
}

// FromCourse builds a ConversionReport from an assembled Course and its
// per-waypoint dispositions.
func FromCourse(c course.Course, dispositions []course.Disposition) ConversionReport {
	return ConversionReport{
		CourseName:      c.Name,
		TotalLengthM:    c.TotalLength(),
		Dispositions:    dispositions,
		CoursePointsOut: len(c.CoursePoints),
	}
}

// hemisphereToRune is the same mapping the teacher's cmd/samoyed-ll2utm
// uses to print a UTM hemisphere letter, adapted from src/coordconv.go.
func hemisphereToRune(h coordconv.Hemisphere) rune {
	switch h {
	case coordconv.HemisphereNorth:
		return 'N'
	case coordconv.HemisphereSouth:
		return 'S'
	case coordconv.HemisphereInvalid:
		return '!'
	default:
		return '?'
	}
}

// GridLine formats a course point's position as "UTM zone=... hemi=...
// E=... N=... MGRS=...", for the CLI's --grid flag (SPEC_FULL.md §6.4
// NEW). It never participates in intercept math; formatting failures
// (points outside the UTM/MGRS domain) degrade to an explanatory string
// rather than an error, since this is presentation-only.
func GridLine(p geomodel.GeoPoint) string {
	ll := p.S2LatLng()

	utm, utmErr := coordconv.DefaultUTMConverter.ConvertFromGeodetic(ll, 0)
	mgrs, mgrsErr := coordconv.DefaultMGRSConverter.ConvertFromGeodetic(ll, 5)

	switch {
	case utmErr != nil && mgrsErr != nil:
		return "grid: unavailable at this location"
	case utmErr != nil:
		return fmt.Sprintf("MGRS=%s", mgrs)
	case mgrsErr != nil:
		return fmt.Sprintf("UTM zone=%d hemi=%c E=%.0f N=%.0f", utm.Zone, hemisphereToRune(utm.Hemisphere), utm.Easting, utm.Northing)
	default:
		return fmt.Sprintf("UTM zone=%d hemi=%c E=%.0f N=%.0f MGRS=%s", utm.Zone, hemisphereToRune(utm.Hemisphere), utm.Easting, utm.Northing, mgrs)
	}
}
