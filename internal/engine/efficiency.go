package engine

import (
	"math"
)

// efficiencyFloor keeps degenerate orientations from zeroing the whole
// simulation; the orientation factor already captures true zero production.
const efficiencyFloor = 0.3

// angularDifference returns the smallest angle between two bearings in
// degrees, wrapping correctly at 0/360.
func angularDifference(a, b float64) float64 {
	diff := math.Mod(math.Abs(a-b), 360)
	if diff > 180 {
		diff = 360 - diff
	}
	return diff
}

// PanelEfficiency returns the static azimuth/tilt efficiency multiplier
// for an array relative to the optimal orientation at its location.
func PanelEfficiency(panelAzimuthDeg, panelTiltDeg, optimalAzimuthDeg, optimalTiltDeg float64) float64 {
	azDiff := angularDifference(panelAzimuthDeg, optimalAzimuthDeg)
	azimuthTerm := 0.7 + 0.3*math.Cos(azDiff*math.Pi/180.0)

	tiltTerm := tiltEfficiency(panelTiltDeg, optimalTiltDeg)

	combined := azimuthTerm * tiltTerm
	if combined < efficiencyFloor {
		return efficiencyFloor
	}
	if combined > 1 {
		return 1
	}
	return combined
}

// tiltEfficiency is piecewise linear around the optimal tilt: rising from
// 0.85 at horizontal toward 1.0 at the optimum, then falling toward 0.75
// at vertical. The fall is split at the midpoint between optimum and 90°
// so moderate over-tilting costs less than going full vertical.
func tiltEfficiency(tiltDeg, optimalDeg float64) float64 {
	if optimalDeg <= 0 {
		optimalDeg = 1
	}

	switch {
	case tiltDeg <= optimalDeg:
		return 0.85 + 0.15*(tiltDeg/optimalDeg)
	case tiltDeg <= optimalDeg+(90-optimalDeg)/2:
		// Just above optimum: shallow decline to 0.9
		span := (90 - optimalDeg) / 2
		return 1.0 - 0.1*((tiltDeg-optimalDeg)/span)
	default:
		// Far above optimum: steeper decline toward 0.75 at vertical
		span := (90 - optimalDeg) / 2
		over := tiltDeg - optimalDeg - span
		return 0.9 - 0.15*(over/span)
	}
}
