package solar

import (
	"math"
	"testing"
	"time"
)

func TestDaylightWindow(t *testing.T) {
	tests := []struct {
		name             string
		dayOfYear        int
		latitude         float64
		longitude        float64
		polar            bool
		sunriseApproxUTC int // approximate expected sunrise in UTC minutes (±60 min tolerance)
		sunsetApproxUTC  int // approximate expected sunset in UTC minutes (±60 min tolerance)
	}{
		{
			name:             "Equator at equinox",
			dayOfYear:        79,
			latitude:         0.0,
			longitude:        0.0,
			sunriseApproxUTC: 360,  // ~6:00 AM UTC
			sunsetApproxUTC:  1080, // ~6:00 PM UTC
		},
		{
			name:             "London summer solstice",
			dayOfYear:        172,
			latitude:         51.5,
			longitude:        -0.1,
			sunriseApproxUTC: 260,  // ~4:20 AM UTC
			sunsetApproxUTC:  1260, // ~9:00 PM UTC
		},
		{
			name:      "Arctic polar day",
			dayOfYear: 172,
			latitude:  70.0,
			longitude: 25.0,
			polar:     true,
		},
		{
			name:      "Arctic polar night",
			dayOfYear: 355,
			latitude:  70.0,
			longitude: 25.0,
			polar:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := DaylightWindow(tt.dayOfYear, tt.latitude, tt.longitude)

			if tt.polar {
				if !d.Polar || d.SunriseMinutes != -1 || d.SunsetMinutes != -1 {
					t.Errorf("expected polar conditions, got %+v", d)
				}
				return
			}

			if d.Polar {
				t.Fatalf("unexpected polar conditions: %+v", d)
			}

			tolerance := 60
			if diff := int(math.Abs(float64(d.SunriseMinutes - tt.sunriseApproxUTC))); diff > tolerance && diff < 1440-tolerance {
				t.Errorf("sunrise = %d minutes, expected ~%d (±%d)", d.SunriseMinutes, tt.sunriseApproxUTC, tolerance)
			}
			if diff := int(math.Abs(float64(d.SunsetMinutes - tt.sunsetApproxUTC))); diff > tolerance && diff < 1440-tolerance {
				t.Errorf("sunset = %d minutes, expected ~%d (±%d)", d.SunsetMinutes, tt.sunsetApproxUTC, tolerance)
			}
		})
	}
}

func TestDaylightWindowConsistency(t *testing.T) {
	// Day length at mid-latitudes should stay between 4 and 20 hours all year
	for doy := 1; doy <= 365; doy++ {
		d := DaylightWindow(doy, 45.0, 0.0)
		if d.Polar {
			t.Errorf("day %d: unexpected polar conditions at 45°N", doy)
			continue
		}
		if d.DayLengthHours < 4 || d.DayLengthHours > 20 {
			t.Errorf("day %d: unreasonable day length %.2f hours", doy, d.DayLengthHours)
		}
	}
}

func TestFormatSunTime(t *testing.T) {
	tests := []struct {
		name       string
		utcMinutes int
		expected   string
	}{
		{"noon UTC", 720, "12:00 PM"},
		{"midnight UTC", 0, "12:00 AM"},
		{"negative minutes returns empty", -1, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatSunTime(tt.utcMinutes, time.UTC); got != tt.expected {
				t.Errorf("FormatSunTime(%d) = %q, expected %q", tt.utcMinutes, got, tt.expected)
			}
		})
	}
}
