package sunshine

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFallback(t *testing.T) {
	tests := []struct {
		name      string
		latitude  float64
		wantHours float64
	}{
		{"tropical", 5, 2200},
		{"subtropical", 30, 2800},
		{"temperate", 51, 1700},
		{"polar", 65, 1200},
		{"southern temperate", -50, 1700},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			est := Fallback(tt.latitude)

			if est.AnnualHours != tt.wantHours {
				t.Errorf("AnnualHours = %.0f, expected %.0f", est.AnnualHours, tt.wantHours)
			}
			if est.Source != SourceClimateZone {
				t.Errorf("Source = %s, expected %s", est.Source, SourceClimateZone)
			}

			wantDaily := tt.wantHours / 365.0 * 0.7
			if math.Abs(est.DailyPeakSunHours-wantDaily) > 1e-9 {
				t.Errorf("DailyPeakSunHours = %.4f, expected %.4f", est.DailyPeakSunHours, wantDaily)
			}
		})
	}
}

func TestAnnualSunshineMeasured(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("lat") == "" || r.URL.Query().Get("lon") == "" {
			t.Error("expected lat and lon query parameters")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"annual_sunshine_hours": 1650.5}`))
	}))
	defer srv.Close()

	f := NewFetcher(srv.URL, time.Second, nil)
	est := f.AnnualSunshine(context.Background(), 51.0, 9.0)

	if est.Source != SourceMeasured {
		t.Fatalf("Source = %s, expected %s", est.Source, SourceMeasured)
	}
	if est.AnnualHours != 1650.5 {
		t.Errorf("AnnualHours = %.1f, expected 1650.5", est.AnnualHours)
	}
}

func TestAnnualSunshineFallsBack(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("not json"))
			},
		},
		{
			name: "implausible figure",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"annual_sunshine_hours": -40}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			f := NewFetcher(srv.URL, time.Second, nil)
			est := f.AnnualSunshine(context.Background(), 51.0, 9.0)

			if est.Source != SourceClimateZone {
				t.Errorf("Source = %s, expected fallback", est.Source)
			}
			if est.AnnualHours != 1700 {
				t.Errorf("AnnualHours = %.0f, expected temperate fallback 1700", est.AnnualHours)
			}
		})
	}
}

func TestAnnualSunshineNoEndpoint(t *testing.T) {
	f := NewFetcher("", time.Second, nil)
	est := f.AnnualSunshine(context.Background(), -10.0, 30.0)

	if est.Source != SourceClimateZone {
		t.Errorf("Source = %s, expected fallback with no endpoint", est.Source)
	}
	if est.AnnualHours != 2200 {
		t.Errorf("AnnualHours = %.0f, expected tropical fallback 2200", est.AnnualHours)
	}
}

func TestAnnualSunshineRespectsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"annual_sunshine_hours": 1650}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	f := NewFetcher(srv.URL, time.Second, nil)
	est := f.AnnualSunshine(ctx, 51.0, 9.0)

	if est.Source != SourceClimateZone {
		t.Errorf("Source = %s, expected fallback on context timeout", est.Source)
	}
}
