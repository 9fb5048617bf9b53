// Package engine implements the solar production estimator: it combines
// sun geometry, atmospheric attenuation, panel orientation and regional
// regulation into hourly power figures, applies inverter clipping, and
// integrates them into daily, seasonal and annual energy results.
package engine

import (
	"github.com/sunwatt/sunwatt/pkg/regulation"
)

// Location is a geographic point in decimal degrees
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// PanelArrayConfig describes the physical panel array. It is derived
// upstream (line length, panel dimensions, wattage ceiling) and passed in
// as a value; TotalWattageW is expected to equal PanelCount times the
// per-panel wattage.
type PanelArrayConfig struct {
	PanelCount       int     `json:"panel_count"`
	PerPanelWattageW float64 `json:"per_panel_wattage_w,omitempty"`
	TotalWattageW    float64 `json:"total_wattage_w"`
	TotalAreaM2      float64 `json:"total_area_m2"`
}

// OrientationParams describes how the array is mounted
type OrientationParams struct {
	PanelAzimuthDeg float64 `json:"panel_azimuth_deg"`
	PanelTiltDeg    float64 `json:"panel_tilt_deg"`
}

// HourlySample is one hour of the daily integration pass
type HourlySample struct {
	Hour                int     `json:"hour"`
	InstantaneousPowerW float64 `json:"instantaneous_power_w"`
	ClippedPowerW       float64 `json:"clipped_power_w"`
	ClippingLossW       float64 `json:"clipping_loss_w"`
}

// DailyProductionResult is the outcome of integrating one day of
// production. Each hourly sample contributes one Wh per W of clipped power.
type DailyProductionResult struct {
	TotalEnergyWh          float64        `json:"total_energy_wh"`
	EnergyLostToClippingWh float64        `json:"energy_lost_to_clipping_wh"`
	MaxInstantaneousPowerW float64        `json:"max_instantaneous_power_w"`
	FractionalHoursClipped float64        `json:"fractional_hours_clipped"`
	Samples                []HourlySample `json:"samples,omitempty"`
}

// SeasonalSample is one hemisphere-aware season of the annual breakdown
type SeasonalSample struct {
	SeasonName         string  `json:"season"`
	ReferenceDayOfYear int     `json:"reference_day_of_year"`
	DailyEnergyKwh     float64 `json:"daily_energy_kwh"`
	MonthlyEnergyKwh   float64 `json:"monthly_energy_kwh"`
	ClippingLossPct    float64 `json:"clipping_loss_percent"`
	PeakSunHours       float64 `json:"peak_sun_hours"`
}

// AnnualOutput is the terminal artifact handed to the presentation layer.
// It is built once per calculation and never mutated; a new user action
// produces a brand-new AnnualOutput.
type AnnualOutput struct {
	AnnualEnergyKwh         float64            `json:"annual_energy_kwh"`
	UnclippedEstimateKwh    float64            `json:"unclipped_estimate_kwh"`
	EnergyLostToClippingKwh float64            `json:"energy_lost_to_clipping_kwh"`
	ClippingLossPct         float64            `json:"clipping_loss_percent"`
	MaxInstantaneousPowerW  float64            `json:"max_instantaneous_power_w"`
	IsCompliant             bool               `json:"is_compliant"`
	ExceedsPanelLimit       bool               `json:"exceeds_panel_limit"`
	ExceedsInverterCapacity bool               `json:"exceeds_inverter_capacity"`
	SeasonalBreakdown       [4]SeasonalSample  `json:"seasonal_breakdown"`
}

// EstimateRequest bundles everything the engine needs for one calculation.
// PeakSunHours comes from the sunshine collaborator or its fallback table.
type EstimateRequest struct {
	Location     Location          `json:"location"`
	Array        PanelArrayConfig  `json:"array"`
	Orientation  OrientationParams `json:"orientation"`
	PeakSunHours float64           `json:"peak_sun_hours"`
}

// Estimate is the full engine result: the annual output plus the
// intermediate figures the detail view renders.
type Estimate struct {
	Annual       AnnualOutput          `json:"annual"`
	ReferenceDay DailyProductionResult `json:"reference_day"`
	Regulation   regulation.Regulation `json:"-"`
	Efficiency   float64               `json:"efficiency"`
	PeakSunHours float64               `json:"peak_sun_hours"`
}
