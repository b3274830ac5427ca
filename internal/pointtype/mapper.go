package pointtype

import "strings"

// gaiaSymbols maps Gaia GPS's built-in waypoint icon names to course-point
// types. Gaia exports its icon slug in <sym> (e.g. "water-24", "summit").
var gaiaSymbols = map[string]Type{
	"water-24":           Water,
	"water":              Water,
	"drinking-water":     Water,
	"food-24":            Food,
	"restaurant":         Food,
	"picnic-site-24":     Food,
	"summit-24":          Summit,
	"summit":             Summit,
	"peak":               Summit,
	"valley":             Valley,
	"danger-24":          Danger,
	"caution-24":         Danger,
	"warning":            Danger,
	"campsite-24":        Campsite,
	"campground-24":      Campsite,
	"tent-24":            Campsite,
	"lodging-24":         Shelter,
	"shelter-24":         Shelter,
	"aid-station-24":     AidStation,
	"first-aid-24":       FirstAid,
	"hospital-24":        FirstAid,
	"parking-24":         Transition,
	"trailhead-24":       SegmentStart,
	"toilets-24":         Toilet,
	"restroom-24":        Toilet,
	"shower-24":          Shower,
	"shop-24":            Store,
	"grocery-24":         Store,
	"viewpoint-24":       Overlook,
	"scenic-area-24":     Overlook,
	"bridge":             Bridge,
	"tunnel":             Tunnel,
	"gate-24":            Obstacle,
	"road-closed-24":     Obstacle,
	"intersection-24":    Crossing,
	"junction":           Crossing,
	"left":               Left,
	"right":              Right,
	"straight":           Straight,
}

// rwgpsSymbols maps Ride with GPS's POI "type" vocabulary (exposed in the
// GPX <type> element and also echoed in <sym> by some exports) to
// course-point types.
var rwgpsSymbols = map[string]Type{
	"generic":          Generic,
	"food":             Food,
	"water":            Water,
	"convenience_store": Store,
	"caution":          Danger,
	"danger":           Danger,
	"hazard":           Danger,
	"first_aid":        FirstAid,
	"hospital":          FirstAid,
	"camping":          Campsite,
	"shelter":          Shelter,
	"lodging":          Shelter,
	"rest_stop":        RestArea,
	"restroom":         Toilet,
	"shower":           Shower,
	"bike_shop":        Service,
	"bike_parking":     Transition,
	"parking":          Transition,
	"aid_station":      AidStation,
	"control":          Checkpoint,
	"checkpoint":       Checkpoint,
	"gas":              Service,
	"geographic":       Overlook,
	"scenic":           Overlook,
	"summit":           Summit,
	"viewpoint":        Overlook,
	"start":            SegmentStart,
	"finish":           SegmentEnd,
	"segment_end":      SegmentEnd,
	"transition":       Transition,
	"gear":             Gear,
	"straight":         Straight,
	"left":             Left,
	"right":            Right,
	"uturn":            UTurn,
	"u-turn":           UTurn,
	"sprint":           Sprint,
	"4th_category":     FourthCategory,
	"3rd_category":     ThirdCategory,
	"2nd_category":     SecondCategory,
	"1st_category":     FirstCategory,
	"hors_category":    HorsCategory,
}

// directMatches is the creator-agnostic fallback table, matched
// case-insensitively against both symbol and GPX type strings.
var directMatches = map[string]Type{
	"water":     Water,
	"food":      Food,
	"danger":    Danger,
	"summit":    Summit,
	"valley":    Valley,
	"left":      Left,
	"right":     Right,
	"straight":  Straight,
	"first aid": FirstAid,
	"first-aid": FirstAid,
	"campsite":  Campsite,
	"shelter":   Shelter,
	"toilet":    Toilet,
	"shower":    Shower,
	"store":     Store,
	"overlook":  Overlook,
	"bridge":    Bridge,
	"tunnel":    Tunnel,
	"crossing":  Crossing,
	"checkpoint": Checkpoint,
	"gear":      Gear,
	"start":     SegmentStart,
	"finish":    SegmentEnd,
}

// Map is a total function from (creator, symbol, gpxType) to a
// course-point Type, defaulting to Generic, per spec.md §4.5. Unrecognized
// creators fall back to the direct-match table only.
func Map(creator Creator, symbol, gpxType string) Type {
	switch creator {
	case CreatorGaia:
		if t, ok := gaiaSymbols[symbol]; ok {
			return t
		}
	case CreatorRWGPS:
		if t, ok := rwgpsSymbols[strings.ToLower(symbol)]; ok {
			return t
		}

		if t, ok := rwgpsSymbols[strings.ToLower(gpxType)]; ok {
			return t
		}
	case CreatorUnknown:
		// No per-creator table; fall through to direct matches below.
	}

	if t, ok := directMatches[strings.ToLower(symbol)]; ok {
		return t
	}

	if t, ok := directMatches[strings.ToLower(gpxType)]; ok {
		return t
	}

	return Generic
}
