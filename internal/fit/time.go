package fit

import "time"

// fitEpoch is the FIT protocol's date_time epoch, per spec.md §6.2.
var fitEpoch = time.Date(1989, 12, 31, 0, 0, 0, 0, time.UTC)

// encodeTime converts t to a FIT uint32 date_time value: whole seconds
// since fitEpoch. Times before the epoch clamp to 0, matching the
// encoder's general policy of clamping rather than erroring on
// out-of-range ambient values (internal/measure does the same for
// distances).
func encodeTime(t time.Time) uint32 {
	d := t.Sub(fitEpoch)
	if d < 0 {
		return 0
	}

	secs := d.Seconds()
	if secs > float64(^uint32(0)) {
		return ^uint32(0)
	}

	return uint32(secs)
}
