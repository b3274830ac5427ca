package coursepointer

import (
	"time"

	"github.com/mshroyer/coursepointer-go/internal/measure"
)

func measureDegrees(f float64) measure.Degrees { return measure.Degrees(f) }
func measureMeters(f float64) measure.Meters    { return measure.Meters(f) }

// durationAt returns the virtual-partner elapsed time to travel distance
// at speed, per spec.md §8 scenario 6. A non-positive speed (a caller
// bypassing AssembleOptions.SpeedMPS's invariant) yields zero rather than
// dividing by zero.
func durationAt(distance measure.Meters, speed measure.MetersPerSecond) time.Duration {
	if !speed.Positive() {
		return 0
	}

	seconds := float64(distance) / float64(speed)

	return time.Duration(seconds * float64(time.Second))
}
