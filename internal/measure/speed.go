package measure

// MetersPerSecond is a speed in meters per second, the unit the FIT
// profile and spec.md's virtual-partner speed are expressed in.
type MetersPerSecond float64

// KilometersPerHour is a speed in kilometers per hour, the unit CLI users
// and config files express speed in.
type KilometersPerHour float64

// MetersPerHour is a speed in meters per hour, an intermediate unit used
// only for the m/s <-> km/h conversion table required by spec.md §4.2.
type MetersPerHour float64

const secondsPerHour = 3600.0

// ToMetersPerHour converts mps to meters/hour.
func (mps MetersPerSecond) ToMetersPerHour() MetersPerHour {
	return MetersPerHour(float64(mps) * secondsPerHour)
}

// ToMetersPerSecond converts mph (meters/hour) back to meters/second.
func (mph MetersPerHour) ToMetersPerSecond() MetersPerSecond {
	return MetersPerSecond(float64(mph) / secondsPerHour)
}

// ToKilometersPerHour converts mps to km/h.
func (mps MetersPerSecond) ToKilometersPerHour() KilometersPerHour {
	return KilometersPerHour(float64(mps.ToMetersPerHour()) / metersPerKilometer)
}

// ToMetersPerSecond converts kph to m/s.
func (kph KilometersPerHour) ToMetersPerSecond() MetersPerSecond {
	return MetersPerHour(float64(kph) * metersPerKilometer).ToMetersPerSecond()
}

// Positive reports whether mps is strictly greater than zero, the
// invariant spec.md §3 requires of Course.speed_mps.
func (mps MetersPerSecond) Positive() bool {
	return mps > 0
}
