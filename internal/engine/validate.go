package engine

import (
	"fmt"
	"math"
)

// ValidationError reports a caller-supplied value the engine refuses to
// run with. The engine never silently clamps caller configuration; only
// internally derived intermediates are clamped for numerical stability.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func validFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Validate rejects out-of-range input before any computation runs
func (r *EstimateRequest) Validate() error {
	if !validFinite(r.Location.Latitude) || r.Location.Latitude < -90 || r.Location.Latitude > 90 {
		return invalid("latitude", "must be within [-90, 90]")
	}
	if !validFinite(r.Location.Longitude) || r.Location.Longitude < -180 || r.Location.Longitude > 180 {
		return invalid("longitude", "must be within [-180, 180]")
	}

	if r.Array.PanelCount < 0 {
		return invalid("panel_count", "must not be negative")
	}
	if !validFinite(r.Array.TotalWattageW) || r.Array.TotalWattageW < 0 {
		return invalid("total_wattage_w", "must not be negative")
	}
	if !validFinite(r.Array.TotalAreaM2) || r.Array.TotalAreaM2 < 0 {
		return invalid("total_area_m2", "must not be negative")
	}
	if r.Array.PerPanelWattageW != 0 {
		expected := float64(r.Array.PanelCount) * r.Array.PerPanelWattageW
		if math.Abs(expected-r.Array.TotalWattageW) > 0.5 {
			return invalid("total_wattage_w", "must equal panel_count × per_panel_wattage_w")
		}
	}

	if !validFinite(r.Orientation.PanelAzimuthDeg) || r.Orientation.PanelAzimuthDeg < 0 || r.Orientation.PanelAzimuthDeg >= 360 {
		return invalid("panel_azimuth_deg", "must be within [0, 360)")
	}
	if !validFinite(r.Orientation.PanelTiltDeg) || r.Orientation.PanelTiltDeg < 0 || r.Orientation.PanelTiltDeg > 90 {
		return invalid("panel_tilt_deg", "must be within [0, 90]")
	}

	if !validFinite(r.PeakSunHours) || r.PeakSunHours < 0 {
		return invalid("peak_sun_hours", "must not be negative")
	}

	return nil
}
