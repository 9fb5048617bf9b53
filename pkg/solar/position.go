// Package solar provides the clear-sky solar production model: sun position,
// atmospheric attenuation, daily irradiance curves and panel orientation
// scoring. All functions are pure and operate in degrees at the boundary.
package solar

import (
	"math"
)

// SunPosition describes where the sun sits in the sky for an observer.
// Elevation is clamped to 0 when the sun is below the horizon; azimuth
// increases monotonically through the day (0=N, 90=E, 180=S, 270=W).
type SunPosition struct {
	ElevationDeg float64
	AzimuthDeg   float64
}

// degToRad converts an angle from degrees to radians for trigonometric calculations
func degToRad(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}

// radToDeg converts an angle from radians to degrees for human-readable output
func radToDeg(rad float64) float64 {
	return rad * (180.0 / math.Pi)
}

// fixAngle normalizes an angle to the range [0, 360) degrees
func fixAngle(angle float64) float64 {
	return math.Mod(angle+360, 360)
}

// clampUnit limits a value to the domain of asin/acos
func clampUnit(x float64) float64 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}

// Declination returns the solar declination in degrees for a day of year,
// using the Cooper approximation. Peaks at ±23.45° on the solstices.
func Declination(dayOfYear int) float64 {
	return 23.45 * math.Sin(degToRad(360.0*float64(284+dayOfYear)/365.0))
}

// HourAngle returns the sun's hour angle in degrees for a local solar hour.
// Negative before solar noon, positive after, 15° per hour.
func HourAngle(hour int) float64 {
	return 15.0 * (float64(hour) - 12.0)
}

// Position computes the sun's elevation and azimuth for a local solar hour,
// day of year and latitude. The result is never cached: declination and
// hour angle are cheap to recompute and latitude varies per call site.
func Position(hour, dayOfYear int, latitudeDeg float64) SunPosition {
	decl := degToRad(Declination(dayOfYear))
	lat := degToRad(latitudeDeg)
	ha := degToRad(HourAngle(hour))

	sinElev := math.Sin(lat)*math.Sin(decl) + math.Cos(lat)*math.Cos(decl)*math.Cos(ha)
	elev := math.Asin(clampUnit(sinElev))
	if elev <= 0 {
		// Sun below horizon: no position worth reporting beyond "down"
		return SunPosition{ElevationDeg: 0, AzimuthDeg: 0}
	}

	// Azimuth from the spherical triangle. cos(elev) approaches zero when
	// the sun is at the zenith, so the acos argument must be clamped.
	cosAz := (math.Sin(decl)*math.Cos(lat) - math.Cos(decl)*math.Sin(lat)*math.Cos(ha)) / math.Cos(elev)
	az := radToDeg(math.Acos(clampUnit(cosAz)))

	// Mirror for afternoon hours so azimuth sweeps east to west
	if HourAngle(hour) > 0 {
		az = 360.0 - az
	}

	return SunPosition{
		ElevationDeg: radToDeg(elev),
		AzimuthDeg:   fixAngle(az),
	}
}
