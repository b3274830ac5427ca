// Package measure provides dimensioned scalar types for the quantities
// CoursePointer moves between components: lengths, angles, and speeds.
//
// Go has no compile-time units of measure, so each dimension gets its own
// named type with the conversions and operations below. Mixing dimensions
// (adding Meters to Degrees, say) is a compile error because the types
// differ. Go's built-in arithmetic operators still apply between two values
// of the same type, so Meters * Meters compiles and yields Meters.
package measure

import "fmt"

// Meters is a length in meters.
type Meters float64

// Kilometers is a length in kilometers.
type Kilometers float64

const metersPerKilometer = 1000.0

// ToKilometers converts m to kilometers.
func (m Meters) ToKilometers() Kilometers {
	return Kilometers(float64(m) / metersPerKilometer)
}

// ToMeters converts km to meters.
func (km Kilometers) ToMeters() Meters {
	return Meters(float64(km) * metersPerKilometer)
}

// Add returns m + other.
func (m Meters) Add(other Meters) Meters {
	return m + other
}

// Sub returns m - other.
func (m Meters) Sub(other Meters) Meters {
	return m - other
}

// Scale returns m * factor.
func (m Meters) Scale(factor float64) Meters {
	return Meters(float64(m) * factor)
}

// Div returns m / other as a dimensionless ratio.
func (m Meters) Div(other Meters) float64 {
	return float64(m) / float64(other)
}

// Less reports whether m < other.
func (m Meters) Less(other Meters) bool {
	return m < other
}

// LessEqual reports whether m <= other.
func (m Meters) LessEqual(other Meters) bool {
	return m <= other
}

func (m Meters) String() string {
	return fmt.Sprintf("%gm", float64(m))
}

// Centimeters is the integer unit FIT uses for Record/CoursePoint/Lap
// distance fields (scale factor 100).
type Centimeters uint32

// ToCentimeters converts m to the nearest centimeter, clamped to fit in a
// uint32 (FIT's wire representation).
func (m Meters) ToCentimeters() Centimeters {
	v := float64(m) * 100

	switch {
	case v < 0:
		return 0
	case v > float64(^uint32(0)):
		return Centimeters(^uint32(0))
	default:
		return Centimeters(v + 0.5)
	}
}
