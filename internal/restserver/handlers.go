package restserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/sunwatt/sunwatt/internal/engine"
	"github.com/sunwatt/sunwatt/internal/sunshine"
	"github.com/sunwatt/sunwatt/pkg/regulation"
	"github.com/sunwatt/sunwatt/pkg/solar"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func regulationInfo(reg regulation.Regulation) RegulationInfo {
	return RegulationInfo{
		RegionName:         reg.RegionName,
		AppliesCap:         reg.AppliesCap,
		MaxInverterOutputW: reg.MaxInverterOutputW,
		MaxPanelCapacityW:  reg.MaxPanelCapacityW,
	}
}

func orientationAdvice(info regulation.LocationInfo) OrientationAdvice {
	return OrientationAdvice{
		Hemisphere:        string(info.Hemisphere),
		OptimalAzimuthDeg: info.OptimalAzimuthDeg,
		OptimalTiltDeg:    info.OptimalTiltDeg,
	}
}

func (c *Controller) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (c *Controller) handleEstimate(w http.ResponseWriter, r *http.Request) {
	var req EstimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body: " + err.Error()})
		return
	}

	// Resolve sunshine data before the engine runs: client-supplied
	// figure, external fetch, or climate-zone fallback.
	var sun sunshine.Estimate
	if req.AnnualSunshineHours > 0 {
		sun = sunshine.FromAnnualHours(req.AnnualSunshineHours)
	} else {
		sun = c.fetcher.AnnualSunshine(r.Context(), req.Location.Latitude, req.Location.Longitude)
	}

	est, err := c.engine.Run(engine.EstimateRequest{
		Location:     req.Location,
		Array:        req.Array,
		Orientation:  req.Orientation,
		PeakSunHours: sun.DailyPeakSunHours,
	})
	if err != nil {
		var verr *engine.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: verr.Error()})
			return
		}
		c.logger.Errorf("estimate failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "estimate failed"})
		return
	}

	price := req.ElectricityPricePerKwh
	if price <= 0 {
		price = c.defaultPrice
	}

	info := regulation.Info(req.Location.Latitude)
	daylight := solar.DaylightWindow(172, req.Location.Latitude, req.Location.Longitude)

	writeJSON(w, http.StatusOK, EstimateResponse{
		Annual:       est.Annual,
		ReferenceDay: est.ReferenceDay,
		Efficiency:   est.Efficiency,
		Sunshine:     sun,
		Regulation:   regulationInfo(est.Regulation),
		Advice:       orientationAdvice(info),
		Daylight: DaylightInfo{
			SunriseUTC:     solar.FormatSunTime(daylight.SunriseMinutes, time.UTC),
			SunsetUTC:      solar.FormatSunTime(daylight.SunsetMinutes, time.UTC),
			DayLengthHours: daylight.DayLengthHours,
			Polar:          daylight.Polar,
		},
		Economics: Economics{
			ElectricityPricePerKwh: price,
			AnnualSavings:          est.Annual.AnnualEnergyKwh * price,
		},
	})
}

func (c *Controller) handleRegulation(w http.ResponseWriter, r *http.Request) {
	lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lon, lonErr := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if latErr != nil || lonErr != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "lat and lon query parameters are required"})
		return
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "lat/lon out of range"})
		return
	}

	writeJSON(w, http.StatusOK, RegulationResponse{
		Regulation: regulationInfo(regulation.Resolve(lat, lon)),
		Advice:     orientationAdvice(regulation.Info(lat)),
	})
}
