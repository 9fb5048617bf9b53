// Package regulation maps geographic locations to the power-output rules
// that apply to small plug-in solar installations, and provides the
// rule-of-thumb optimal panel orientation for a latitude.
package regulation

import (
	"math"
)

// European balcony-solar ceilings, modeled after the German microinverter
// plug-in rules (§8 EEG simplified regime).
const (
	EuropeMaxInverterOutputW = 800.0
	EuropeMaxPanelCapacityW  = 2000.0
)

// Europe bounding box used for the region test
const (
	europeMinLat = 35.0
	europeMaxLat = 71.0
	europeMinLon = -10.0
	europeMaxLon = 40.0
)

// Hemisphere identifies which half of the globe a latitude falls in
type Hemisphere string

const (
	HemisphereNorthern Hemisphere = "northern"
	HemisphereSouthern Hemisphere = "southern"
)

// Regulation describes the caps that apply to an installation at some
// location. Nil caps mean unconstrained. Defaulted is set when the
// location could not be interpreted and the conservative European rules
// were substituted; callers should log that as a warning.
type Regulation struct {
	MaxInverterOutputW *float64
	MaxPanelCapacityW  *float64
	AppliesCap         bool
	RegionName         string
	Defaulted          bool
}

// LocationInfo carries hemisphere and rule-of-thumb optimal orientation
// for a latitude.
type LocationInfo struct {
	Hemisphere        Hemisphere
	OptimalAzimuthDeg float64
	OptimalTiltDeg    float64
}

func europeRegulation(defaulted bool) Regulation {
	inverter := EuropeMaxInverterOutputW
	panel := EuropeMaxPanelCapacityW
	name := "Europe"
	if defaulted {
		name = "Europe (defaulted)"
	}
	return Regulation{
		MaxInverterOutputW: &inverter,
		MaxPanelCapacityW:  &panel,
		AppliesCap:         true,
		RegionName:         name,
		Defaulted:          defaulted,
	}
}

// Resolve returns the regulation applicable at a latitude/longitude.
// Locations inside the European bounding box get the balcony-solar caps;
// everywhere else is unconstrained. An uninterpretable location (NaN or
// infinite coordinates) falls back to the European caps as the
// conservative default.
func Resolve(latitude, longitude float64) Regulation {
	if math.IsNaN(latitude) || math.IsNaN(longitude) ||
		math.IsInf(latitude, 0) || math.IsInf(longitude, 0) {
		return europeRegulation(true)
	}

	if latitude >= europeMinLat && latitude <= europeMaxLat &&
		longitude >= europeMinLon && longitude <= europeMaxLon {
		return europeRegulation(false)
	}

	return Regulation{
		AppliesCap: false,
		RegionName: "unregulated",
	}
}

// Info returns hemisphere and optimal panel orientation for a latitude.
// Northern installations face south (180°), southern face north (0°);
// optimal tilt tracks |latitude| clamped to the practical 10-60° range.
func Info(latitude float64) LocationInfo {
	info := LocationInfo{
		Hemisphere:        HemisphereNorthern,
		OptimalAzimuthDeg: 180,
	}
	if latitude < 0 {
		info.Hemisphere = HemisphereSouthern
		info.OptimalAzimuthDeg = 0
	}

	tilt := math.Abs(latitude)
	if tilt < 10 {
		tilt = 10
	}
	if tilt > 60 {
		tilt = 60
	}
	info.OptimalTiltDeg = tilt

	return info
}
