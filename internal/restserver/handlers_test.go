package restserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/sunwatt/sunwatt/internal/engine"
	"github.com/sunwatt/sunwatt/internal/sunshine"
	"github.com/sunwatt/sunwatt/pkg/config"
)

func testController(t *testing.T) *Controller {
	t.Helper()

	logger := zap.NewNop().Sugar()
	cfg := &config.Data{
		Server:  config.ServerData{ListenAddr: ":0"},
		Pricing: config.PricingData{ElectricityPricePerKwh: 0.30},
	}

	return NewController(context.Background(), &sync.WaitGroup{}, cfg,
		engine.New(logger), sunshine.NewFetcher("", time.Second, logger), logger)
}

func postEstimate(t *testing.T, c *Controller, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshaling request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/estimate", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c.Server.Handler.ServeHTTP(rec, req)
	return rec
}

func TestHandleEstimate(t *testing.T) {
	c := testController(t)

	rec := postEstimate(t, c, EstimateRequest{
		Location:    engine.Location{Latitude: 51.0, Longitude: 9.0},
		Array:       engine.PanelArrayConfig{PanelCount: 2, TotalWattageW: 800, TotalAreaM2: 4},
		Orientation: engine.OrientationParams{PanelAzimuthDeg: 180, PanelTiltDeg: 35},
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp EstimateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}

	if resp.Annual.AnnualEnergyKwh <= 0 {
		t.Error("expected non-zero annual energy for a German array")
	}
	if !resp.Regulation.AppliesCap {
		t.Error("Germany should carry the balcony-solar cap")
	}
	if resp.Regulation.MaxInverterOutputW == nil || *resp.Regulation.MaxInverterOutputW != 800 {
		t.Errorf("inverter cap = %v, expected 800", resp.Regulation.MaxInverterOutputW)
	}
	if resp.Sunshine.Source != sunshine.SourceClimateZone {
		t.Errorf("sunshine source = %s, expected climate-zone fallback", resp.Sunshine.Source)
	}
	if resp.Advice.OptimalAzimuthDeg != 180 {
		t.Errorf("optimal azimuth = %.0f, expected 180 in the north", resp.Advice.OptimalAzimuthDeg)
	}
	if resp.Economics.AnnualSavings <= 0 {
		t.Error("expected non-zero savings with the default price")
	}
	wantSavings := resp.Annual.AnnualEnergyKwh * 0.30
	if diff := resp.Economics.AnnualSavings - wantSavings; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("savings = %.4f, expected %.4f", resp.Economics.AnnualSavings, wantSavings)
	}
}

func TestHandleEstimateClientSunshine(t *testing.T) {
	c := testController(t)

	rec := postEstimate(t, c, EstimateRequest{
		Location:            engine.Location{Latitude: 51.0, Longitude: 9.0},
		Array:               engine.PanelArrayConfig{TotalWattageW: 800},
		Orientation:         engine.OrientationParams{PanelAzimuthDeg: 180, PanelTiltDeg: 35},
		AnnualSunshineHours: 1750,
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp EstimateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Sunshine.Source != sunshine.SourceMeasured {
		t.Errorf("sunshine source = %s, expected measured", resp.Sunshine.Source)
	}
	if resp.Sunshine.AnnualHours != 1750 {
		t.Errorf("annual hours = %.0f, expected 1750", resp.Sunshine.AnnualHours)
	}
}

func TestHandleEstimateValidation(t *testing.T) {
	c := testController(t)

	rec := postEstimate(t, c, EstimateRequest{
		Location:    engine.Location{Latitude: 95, Longitude: 9.0},
		Array:       engine.PanelArrayConfig{TotalWattageW: 800},
		Orientation: engine.OrientationParams{PanelAzimuthDeg: 180, PanelTiltDeg: 35},
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, expected 400", rec.Code)
	}

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Error == "" {
		t.Error("expected an error message naming the offending field")
	}
}

func TestHandleEstimateBadJSON(t *testing.T) {
	c := testController(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/estimate", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	c.Server.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, expected 400", rec.Code)
	}
}

func TestHandleRegulation(t *testing.T) {
	c := testController(t)

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantCap    bool
	}{
		{"Germany", "?lat=51.0&lon=9.0", http.StatusOK, true},
		{"continental US", "?lat=40.0&lon=-100.0", http.StatusOK, false},
		{"missing params", "", http.StatusBadRequest, false},
		{"out of range", "?lat=123&lon=9", http.StatusBadRequest, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/regulation"+tt.query, nil)
			rec := httptest.NewRecorder()
			c.Server.Handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, expected %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			var resp RegulationResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decoding response: %v", err)
			}
			if resp.Regulation.AppliesCap != tt.wantCap {
				t.Errorf("AppliesCap = %v, expected %v", resp.Regulation.AppliesCap, tt.wantCap)
			}
		})
	}
}

func TestHandleHealth(t *testing.T) {
	c := testController(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	c.Server.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, expected 200", rec.Code)
	}
}
