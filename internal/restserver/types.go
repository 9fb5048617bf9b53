package restserver

import (
	"github.com/sunwatt/sunwatt/internal/engine"
	"github.com/sunwatt/sunwatt/internal/sunshine"
)

// EstimateRequest is the JSON body of POST /api/v1/estimate. Peak sun
// hours are normally resolved through the sunshine collaborator; a client
// that already holds a measured annual figure may pass it to skip the
// fetch.
type EstimateRequest struct {
	Location               engine.Location          `json:"location"`
	Array                  engine.PanelArrayConfig  `json:"array"`
	Orientation            engine.OrientationParams `json:"orientation"`
	ElectricityPricePerKwh float64                  `json:"electricity_price_per_kwh,omitempty"`
	AnnualSunshineHours    float64                  `json:"annual_sunshine_hours,omitempty"`
}

// RegulationInfo is the wire form of the resolved regulation
type RegulationInfo struct {
	RegionName         string   `json:"region_name"`
	AppliesCap         bool     `json:"applies_cap"`
	MaxInverterOutputW *float64 `json:"max_inverter_output_w"`
	MaxPanelCapacityW  *float64 `json:"max_panel_capacity_w"`
}

// OrientationAdvice reports the rule-of-thumb optimum for the location
type OrientationAdvice struct {
	Hemisphere        string  `json:"hemisphere"`
	OptimalAzimuthDeg float64 `json:"optimal_azimuth_deg"`
	OptimalTiltDeg    float64 `json:"optimal_tilt_deg"`
}

// DaylightInfo is the sunrise/sunset almanac line of the detail view
type DaylightInfo struct {
	SunriseUTC     string  `json:"sunrise_utc,omitempty"`
	SunsetUTC      string  `json:"sunset_utc,omitempty"`
	DayLengthHours float64 `json:"day_length_hours"`
	Polar          bool    `json:"polar,omitempty"`
}

// Economics is the display-only price × energy line
type Economics struct {
	ElectricityPricePerKwh float64 `json:"electricity_price_per_kwh"`
	AnnualSavings          float64 `json:"annual_savings"`
}

// EstimateResponse is the full payload the presentation layer renders
type EstimateResponse struct {
	Annual       engine.AnnualOutput          `json:"annual"`
	ReferenceDay engine.DailyProductionResult `json:"reference_day"`
	Efficiency   float64                      `json:"efficiency"`
	Sunshine     sunshine.Estimate            `json:"sunshine"`
	Regulation   RegulationInfo               `json:"regulation"`
	Advice       OrientationAdvice            `json:"orientation_advice"`
	Daylight     DaylightInfo                 `json:"daylight"`
	Economics    Economics                    `json:"economics"`
}

// RegulationResponse answers GET /api/v1/regulation
type RegulationResponse struct {
	Regulation RegulationInfo    `json:"regulation"`
	Advice     OrientationAdvice `json:"orientation_advice"`
}

type errorResponse struct {
	Error string `json:"error"`
}
