package engine

import (
	"math"
	"testing"
)

func TestPanelEfficiency(t *testing.T) {
	tests := []struct {
		name                 string
		panelAz, panelTilt   float64
		optimalAz, optimalTilt float64
		want                 float64
		tolerance            float64
	}{
		{"optimal orientation", 180, 51, 180, 51, 1.0, 1e-9},
		{"flat panel at optimal azimuth", 180, 0, 180, 51, 0.85, 1e-9},
		{"vertical panel at optimal azimuth", 180, 90, 180, 51, 0.75, 1e-9},
		{"facing away entirely", 0, 51, 180, 51, 0.4, 1e-9},
		{"azimuth wrap at north", 350, 51, 10, 51, 0.7 + 0.3*math.Cos(20*math.Pi/180), 1e-9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PanelEfficiency(tt.panelAz, tt.panelTilt, tt.optimalAz, tt.optimalTilt)
			if math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("PanelEfficiency = %.6f, expected %.6f", got, tt.want)
			}
		})
	}
}

func TestPanelEfficiencyFloor(t *testing.T) {
	// Worst case: facing away and vertical. The raw product would be
	// 0.4 × 0.75 = 0.3; nothing may fall below the floor.
	for az := 0.0; az < 360; az += 30 {
		for tilt := 0.0; tilt <= 90; tilt += 15 {
			got := PanelEfficiency(az, tilt, 180, 35)
			if got < 0.3 {
				t.Errorf("PanelEfficiency(az=%.0f, tilt=%.0f) = %.4f below the 0.3 floor", az, tilt, got)
			}
			if got > 1 {
				t.Errorf("PanelEfficiency(az=%.0f, tilt=%.0f) = %.4f above 1", az, tilt, got)
			}
		}
	}
}

func TestPanelEfficiencyTiltShape(t *testing.T) {
	const optimal = 40.0

	// Rising below the optimum
	prev := -1.0
	for tilt := 0.0; tilt <= optimal; tilt += 5 {
		got := PanelEfficiency(180, tilt, 180, optimal)
		if got <= prev {
			t.Errorf("tilt %.0f: efficiency %.4f should rise toward the optimum", tilt, got)
		}
		prev = got
	}

	// Falling above the optimum
	prev = 2.0
	for tilt := optimal; tilt <= 90; tilt += 5 {
		got := PanelEfficiency(180, tilt, 180, optimal)
		if got >= prev {
			t.Errorf("tilt %.0f: efficiency %.4f should fall past the optimum", tilt, got)
		}
		prev = got
	}
}

func TestAngularDifference(t *testing.T) {
	tests := []struct {
		a, b, want float64
	}{
		{0, 0, 0},
		{0, 180, 180},
		{350, 10, 20},
		{10, 350, 20},
		{90, 270, 180},
		{359, 1, 2},
	}

	for _, tt := range tests {
		if got := angularDifference(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("angularDifference(%.0f, %.0f) = %.4f, expected %.4f", tt.a, tt.b, got, tt.want)
		}
	}
}
