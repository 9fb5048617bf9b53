package solar

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// IrradianceCurve holds one normalized irradiance value per hour of day,
// each in [0,1]. The curve describes shape only; callers anchor it to real
// watt-hours with ScaleToPeakSunHours.
type IrradianceCurve [24]float64

// ClimateZone is a coarse |latitude| bucket used for weather correction
// and for the fallback sunshine estimate when no measured data exists.
type ClimateZone int

const (
	ZoneTropical ClimateZone = iota
	ZoneSubtropical
	ZoneTemperate
	ZonePolar
)

// String returns the zone name for logging and display
func (z ClimateZone) String() string {
	switch z {
	case ZoneTropical:
		return "tropical"
	case ZoneSubtropical:
		return "subtropical"
	case ZoneTemperate:
		return "temperate"
	default:
		return "polar"
	}
}

// ZoneForLatitude buckets a latitude into a climate zone by absolute value
func ZoneForLatitude(latitudeDeg float64) ClimateZone {
	absLat := math.Abs(latitudeDeg)
	switch {
	case absLat >= 60:
		return ZonePolar
	case absLat >= 45:
		return ZoneTemperate
	case absLat >= 23.5:
		return ZoneSubtropical
	default:
		return ZoneTropical
	}
}

// baseWeatherFactor is the mean cloud-cover correction per climate zone.
// Subtropical deserts are clearest; tropical zones lose output to
// convective cloud despite high sun angles.
func baseWeatherFactor(zone ClimateZone) float64 {
	switch zone {
	case ZoneTropical:
		return 0.75
	case ZoneSubtropical:
		return 0.80
	case ZoneTemperate:
		return 0.70
	default:
		return 0.55
	}
}

// WeatherFactor returns the climate correction for a location and day of
// year: the zone's mean cloudiness scaled by a seasonal term that favors
// the local summer half-year. Hemisphere flips the seasonal phase.
func WeatherFactor(latitudeDeg float64, dayOfYear int) float64 {
	base := baseWeatherFactor(ZoneForLatitude(latitudeDeg))

	// Seasonal multiplier peaks at the northern summer solstice (day 172)
	// and is inverted for the southern hemisphere
	phase := 2 * math.Pi * float64(dayOfYear-172) / 365.0
	seasonal := 1 + 0.15*math.Cos(phase)
	if latitudeDeg < 0 {
		seasonal = 1 - 0.15*math.Cos(phase)
	}

	factor := base * seasonal
	if factor > 1 {
		return 1
	}
	if factor < 0 {
		return 0
	}
	return factor
}

// BuildDailyCurve produces the 24-hour normalized irradiance profile for a
// day of year and latitude: sun position, atmospheric attenuation, climate
// weather factor, and a smooth intra-day variation term. The variation term
// (0.9 + 0.2·sin(h·π/12)) is a stylistic realism adjustment that de-flattens
// the midday plateau; it is not physically derived.
func BuildDailyCurve(dayOfYear int, latitudeDeg float64) IrradianceCurve {
	var curve IrradianceCurve
	weather := WeatherFactor(latitudeDeg, dayOfYear)

	for h := 0; h < 24; h++ {
		pos := Position(h, dayOfYear, latitudeDeg)
		if pos.ElevationDeg <= 0 {
			continue
		}

		v := Attenuate(pos.ElevationDeg) * weather
		v *= 0.9 + 0.2*math.Sin(float64(h)*math.Pi/12.0)

		if v > 1 {
			v = 1
		}
		if v < 0 {
			v = 0
		}
		curve[h] = v
	}

	return curve
}

// Sum returns the total of all hourly values, the curve's peak-sun-hour
// equivalent before scaling.
func (c IrradianceCurve) Sum() float64 {
	return floats.Sum(c[:])
}

// ScaleToPeakSunHours returns a copy of the curve scaled so its sum equals
// the desired peak sun hours. A zero-sum curve (polar night) is returned
// unchanged.
func (c IrradianceCurve) ScaleToPeakSunHours(peakSunHours float64) IrradianceCurve {
	total := c.Sum()
	if total <= 0 {
		return c
	}

	scale := peakSunHours / total
	var scaled IrradianceCurve
	for h, v := range c {
		scaled[h] = v * scale
	}
	return scaled
}
