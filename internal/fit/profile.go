package fit

// This file names the slice of the FIT/ANT+ global profile that a course
// file needs, per spec.md §4.6/§6.2. Values come from the public FIT SDK
// profile; nothing here is invented.

// Base types, tagged with their size-and-endianness bit in the high
// nibble per the FIT base type byte encoding.
const (
	baseTypeEnum    byte = 0x00
	baseTypeSInt8   byte = 0x01
	baseTypeUInt8   byte = 0x02
	baseTypeSInt16  byte = 0x83
	baseTypeUInt16  byte = 0x84
	baseTypeSInt32  byte = 0x85
	baseTypeUInt32  byte = 0x86
	baseTypeString  byte = 0x07
	baseTypeUInt8z  byte = 0x0A
	baseTypeUInt32z byte = 0x8C
)

func baseTypeSize(bt byte) int {
	switch bt {
	case baseTypeEnum, baseTypeSInt8, baseTypeUInt8, baseTypeUInt8z:
		return 1
	case baseTypeSInt16, baseTypeUInt16:
		return 2
	case baseTypeSInt32, baseTypeUInt32, baseTypeUInt32z:
		return 4
	case baseTypeString:
		return 1 // multiplied by declared length by the caller
	default:
		return 1
	}
}

// Global message numbers.
const (
	globalFileID       uint16 = 0
	globalLap          uint16 = 19
	globalRecord       uint16 = 20
	globalEvent        uint16 = 21
	globalCourse       uint16 = 31
	globalCoursePoint  uint16 = 32
	globalFileCreator  uint16 = 49
)

// file_id.type enum.
const fileTypeCourse byte = 6

// file_id.manufacturer enum. 255 is "development," the value non-Garmin
// FIT writers use so devices don't mistake the file for Garmin-produced.
const manufacturerDevelopment uint16 = 255

// event / event_type enums.
const (
	eventTimer        byte = 0
	eventTypeStart     byte = 0
	eventTypeStopAll   byte = 4 // widely used pairing with Start for course files
)

// course_point.type enum values are spec.md §6.3's closed enumeration,
// defined in internal/pointtype as the canonical FIT numeric codes.

// sportByName maps the CLI/config sport names this tool accepts to their
// FIT sport enum codes. Not exhaustive; riding/running/hiking cover the
// overwhelming majority of course use, with "generic" as a safe default.
var sportByName = map[string]byte{
	"generic": 0,
	"running": 1,
	"cycling": 2,
	"walking": 11,
	"hiking":  17,
	"rowing":  15,
	"mountaineering": 16,
	"paddling": 19,
}

// SportCode returns the FIT sport enum code for name, defaulting to
// generic (0) for unrecognized names so the mapper stays total.
func SportCode(name string) byte {
	if code, ok := sportByName[name]; ok {
		return code
	}

	return sportByName["generic"]
}
