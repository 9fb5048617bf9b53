package solar

import (
	"math"
)

// OrientationFactor scores how directly the sun strikes a tilted panel:
// the cosine of the incidence angle between the sun ray and the panel
// normal, as a factor in [0,1]. 1.0 means the sun hits the panel
// perpendicularly; 0 means the sun is parallel to or behind the panel
// plane, or below the horizon.
//
// This is the only 3-D vector computation in the system and is what makes
// tilt and azimuth choices meaningfully affect output.
func OrientationFactor(sunElevationDeg, sunAzimuthDeg, panelTiltDeg, panelAzimuthDeg float64) float64 {
	if sunElevationDeg <= 0 {
		return 0
	}

	elev := degToRad(sunElevationDeg)
	sunAz := degToRad(sunAzimuthDeg)
	tilt := degToRad(panelTiltDeg)
	panelAz := degToRad(panelAzimuthDeg)

	// Unit vector toward the sun (x=east, y=north, z=up)
	sunX := math.Cos(elev) * math.Sin(sunAz)
	sunY := math.Cos(elev) * math.Cos(sunAz)
	sunZ := math.Sin(elev)

	// Unit normal of the tilted panel facing panelAz
	normX := math.Sin(tilt) * math.Sin(panelAz)
	normY := math.Sin(tilt) * math.Cos(panelAz)
	normZ := math.Cos(tilt)

	dot := sunX*normX + sunY*normY + sunZ*normZ
	if dot < 0 {
		return 0
	}
	return dot
}
