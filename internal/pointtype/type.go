// Package pointtype implements the point-type mapper (spec.md §4.5 and
// §6.3, component C5): a total, pure function from a waypoint's creator
// hint and symbol to a FIT course-point type.
package pointtype

// Type is a course-point type, a closed enumeration whose numeric values
// are the Garmin FIT profile's course_point codes, per spec.md §6.3. The
// encoder (C6) must never emit a code outside this set.
type Type uint8

// The closed enumeration from spec.md §6.3, in profile numeric order.
const (
	Generic Type = iota
	Summit
	Valley
	Water
	Food
	Danger
	Left
	Right
	Straight
	FirstAid
	FourthCategory
	ThirdCategory
	SecondCategory
	FirstCategory
	HorsCategory
	Sprint
	LeftFork
	RightFork
	MiddleFork
	SlightLeft
	SharpLeft
	SlightRight
	SharpRight
	UTurn
	SegmentStart
	SegmentEnd
	Campsite
	AidStation
	RestArea
	GeneralDistance
	Service
	EnergyGel
	SportsDrink
	MileMarker
	Checkpoint
	Shelter
	MeetingSpot
	Overlook
	Toilet
	Shower
	Gear
	SharpCurve
	SteepIncline
	Tunnel
	Bridge
	Obstacle
	Crossing
	Store
	Transition
	Navaid
	Transport
	Alert
	Info
)

var names = [...]string{
	"Generic", "Summit", "Valley", "Water", "Food", "Danger", "Left", "Right",
	"Straight", "FirstAid", "FourthCategory", "ThirdCategory", "SecondCategory",
	"FirstCategory", "HorsCategory", "Sprint", "LeftFork", "RightFork",
	"MiddleFork", "SlightLeft", "SharpLeft", "SlightRight", "SharpRight",
	"UTurn", "SegmentStart", "SegmentEnd", "Campsite", "AidStation",
	"RestArea", "GeneralDistance", "Service", "EnergyGel", "SportsDrink",
	"MileMarker", "Checkpoint", "Shelter", "MeetingSpot", "Overlook",
	"Toilet", "Shower", "Gear", "SharpCurve", "SteepIncline", "Tunnel",
	"Bridge", "Obstacle", "Crossing", "Store", "Transition", "Navaid",
	"Transport", "Alert", "Info",
}

func (t Type) String() string {
	if int(t) < len(names) {
		return names[t]
	}

	return "Unknown"
}

// Creator identifies the GPX producer a waypoint came from, so the mapper
// can apply that producer's own symbol vocabulary before falling back to
// the generic table.
type Creator int

const (
	// CreatorUnknown is used when the GPX file carries no recognizable
	// creator attribute.
	CreatorUnknown Creator = iota
	CreatorGaia
	CreatorRWGPS
)
