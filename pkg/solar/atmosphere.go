package solar

import (
	"math"
)

// Constants
const (
	clearSkyPeak = 1000.0 // Assumed clear-sky peak horizontal irradiance in W/m²
	dniScale     = 900.0  // Direct normal irradiance scale factor in W/m²
	diffuseScale = 100.0  // Diffuse sky irradiance scale factor in W/m²
)

// AirMass returns the relative atmospheric path length of sunlight using the
// Kasten-Young formula. Grows from ~1 overhead toward ~38 at the horizon.
func AirMass(elevationDeg float64) float64 {
	elevRad := degToRad(elevationDeg)
	return 1.0 / (math.Sin(elevRad) + 0.50572*math.Pow(elevationDeg+6.07995, -1.6364))
}

// Attenuate converts a sun elevation into a normalized clear-sky horizontal
// irradiance factor in [0,1]. This is an analytical approximation, not
// measured data: a repeatable, deterministic proxy for clear-sky conditions
// that callers scale by a weather factor.
func Attenuate(elevationDeg float64) float64 {
	if elevationDeg <= 0 {
		return 0
	}

	elevRad := degToRad(elevationDeg)
	am := AirMass(elevationDeg)

	// Direct beam after atmospheric extinction, plus scattered skylight
	dni := dniScale * math.Exp(-0.357*math.Pow(am, 0.678))
	diffuse := diffuseScale * math.Sin(elevRad)

	horizontal := dni*math.Sin(elevRad) + diffuse

	normalized := horizontal / clearSkyPeak
	if normalized > 1 {
		return 1
	}
	if normalized < 0 {
		return 0
	}
	return normalized
}
