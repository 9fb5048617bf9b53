package solar

import (
	"math"
	"time"
)

// Daylight describes the sunlit window of a day as minutes from midnight
// UTC. Polar is set when the sun never rises or never sets; in that case
// SunriseMinutes and SunsetMinutes are -1.
type Daylight struct {
	SunriseMinutes int
	SunsetMinutes  int
	DayLengthHours float64
	Polar          bool
}

// jdFromTime converts a UTC time to Julian Day
func jdFromTime(t time.Time) float64 {
	return 2440587.5 + float64(t.Unix())/86400.0
}

// equationOfTime calculates the Equation of Time in minutes, the difference
// between apparent and mean solar time, combining obliquity and eccentricity
// effects of Earth's orbit.
func equationOfTime(t time.Time) float64 {
	jd := jdFromTime(t)
	T := (jd - 2451545.0) / 36525.0 // Julian centuries since J2000.0

	L0 := fixAngle(280.46646 + T*(36000.76983+T*0.0003032)) // Mean longitude of the Sun
	M := fixAngle(357.52911 + T*(35999.05029-T*0.0001537))  // Mean anomaly of the Sun
	e := 0.016708634 - T*(0.000042037+T*0.0000001267)       // Orbital eccentricity
	eps0 := 23 + (26+(21.448-T*(46.815+T*(0.00059-T*0.001813)))/60)/60

	y := math.Tan(degToRad(eps0)/2) * math.Tan(degToRad(eps0)/2)
	return radToDeg(y*math.Sin(degToRad(2*L0))-
		2*e*math.Sin(degToRad(M))+
		4*e*y*math.Sin(degToRad(M))*math.Cos(degToRad(2*L0))-
		0.5*y*y*math.Sin(degToRad(4*L0))-
		1.25*e*e*math.Sin(degToRad(2*M))) * 4 // 4 minutes per degree
}

// DaylightWindow computes sunrise and sunset for a day of year at the given
// latitude and longitude. Used for the estimate detail view; the production
// engine derives night hours from Position directly.
func DaylightWindow(dayOfYear int, latitude, longitude float64) Daylight {
	declRad := degToRad(Declination(dayOfYear))
	latRad := degToRad(latitude)

	// At sunrise/sunset the zenith angle is 90°: cos(H) = -tan(lat)·tan(decl)
	cosH := -math.Tan(latRad) * math.Tan(declRad)

	if cosH < -1.0 || cosH > 1.0 {
		// Midnight sun or polar night
		dayLen := 0.0
		if cosH < -1.0 {
			dayLen = 24.0
		}
		return Daylight{SunriseMinutes: -1, SunsetMinutes: -1, DayLengthHours: dayLen, Polar: true}
	}

	hourAngleMinutes := radToDeg(math.Acos(cosH)) / 15.0 * 60.0

	// Solar noon in UTC, adjusted for longitude (4 min/deg) and the
	// equation of time for this day
	refTime := time.Date(time.Now().UTC().Year(), 1, 1, 12, 0, 0, 0, time.UTC).AddDate(0, 0, dayOfYear-1)
	solarNoon := 720.0 - longitude*4.0 - equationOfTime(refTime)

	sunrise := math.Mod(solarNoon-hourAngleMinutes+1440, 1440)
	sunset := math.Mod(solarNoon+hourAngleMinutes+1440, 1440)

	return Daylight{
		SunriseMinutes: int(math.Round(sunrise)),
		SunsetMinutes:  int(math.Round(sunset)),
		DayLengthHours: 2 * hourAngleMinutes / 60.0,
	}
}

// FormatSunTime converts UTC minutes from midnight to a clock string in the
// given timezone location. Returns "" for polar days.
func FormatSunTime(utcMinutes int, loc *time.Location) string {
	if utcMinutes < 0 {
		return ""
	}

	t := time.Date(2000, 1, 1, utcMinutes/60, utcMinutes%60, 0, 0, time.UTC)
	return t.In(loc).Format("3:04 PM")
}
