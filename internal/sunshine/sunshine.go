// Package sunshine supplies the measured annual-sunshine-hours input for a
// location. It makes a single optional HTTP fetch before the engine runs;
// any failure falls back to a deterministic climate-zone estimate so the
// engine can always run with synthetic inputs.
package sunshine

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/sunwatt/sunwatt/pkg/solar"
)

// peakIntensityFraction converts sunshine hours into peak-sun-hour
// equivalents: recorded sunshine includes low-intensity hours that do not
// deliver the full 1000 W/m².
const peakIntensityFraction = 0.7

// Source identifies where an estimate came from
type Source string

const (
	SourceMeasured    Source = "measured"
	SourceClimateZone Source = "climate-zone"
)

// Estimate is the sunshine figure handed to the engine
type Estimate struct {
	AnnualHours       float64 `json:"annual_sunshine_hours"`
	DailyPeakSunHours float64 `json:"daily_peak_sun_hours"`
	Source            Source  `json:"source"`
}

type response struct {
	AnnualSunshineHours float64 `json:"annual_sunshine_hours"`
}

// Fetcher retrieves annual sunshine hours from an external data service.
// A zero endpoint disables fetching and always uses the fallback table.
type Fetcher struct {
	endpoint string
	client   *http.Client
	logger   *zap.SugaredLogger
}

// NewFetcher creates a fetcher against the given endpoint. Timeout bounds
// the single request; there is no retry policy here, the fallback covers
// failures.
func NewFetcher(endpoint string, timeout time.Duration, logger *zap.SugaredLogger) *Fetcher {
	return &Fetcher{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

// fallbackAnnualHours is the static climate-zone table keyed by |latitude|
// bucket. Values are typical recorded sunshine hours per year.
func fallbackAnnualHours(zone solar.ClimateZone) float64 {
	switch zone {
	case solar.ZoneTropical:
		return 2200
	case solar.ZoneSubtropical:
		return 2800
	case solar.ZoneTemperate:
		return 1700
	default:
		return 1200
	}
}

// FromAnnualHours builds a measured estimate from a figure the caller
// already holds, converting to daily peak-sun-hour equivalents.
func FromAnnualHours(hours float64) Estimate {
	return Estimate{
		AnnualHours:       hours,
		DailyPeakSunHours: hours / 365.0 * peakIntensityFraction,
		Source:            SourceMeasured,
	}
}

// Fallback returns the climate-zone estimate for a latitude without any
// network access.
func Fallback(latitude float64) Estimate {
	hours := fallbackAnnualHours(solar.ZoneForLatitude(latitude))
	est := FromAnnualHours(hours)
	est.Source = SourceClimateZone
	return est
}

// AnnualSunshine fetches the measured figure for a location, falling back
// to the climate-zone table on any failure. Failures are a low-severity
// notice, never an error: the engine must always be able to run.
func (f *Fetcher) AnnualSunshine(ctx context.Context, latitude, longitude float64) Estimate {
	if f.endpoint == "" {
		return Fallback(latitude)
	}

	est, err := f.fetch(ctx, latitude, longitude)
	if err != nil {
		if f.logger != nil {
			f.logger.Infow("sunshine data unavailable, using climate-zone estimate",
				"latitude", latitude, "longitude", longitude,
				"zone", solar.ZoneForLatitude(latitude).String(), "reason", err)
		}
		return Fallback(latitude)
	}
	return est
}

func (f *Fetcher) fetch(ctx context.Context, latitude, longitude float64) (Estimate, error) {
	u, err := url.Parse(f.endpoint)
	if err != nil {
		return Estimate{}, fmt.Errorf("invalid sunshine endpoint: %w", err)
	}
	q := u.Query()
	q.Set("lat", fmt.Sprintf("%.4f", latitude))
	q.Set("lon", fmt.Sprintf("%.4f", longitude))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Estimate{}, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return Estimate{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Estimate{}, fmt.Errorf("sunshine service returned status %d", resp.StatusCode)
	}

	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Estimate{}, fmt.Errorf("decoding sunshine response: %w", err)
	}

	if body.AnnualSunshineHours <= 0 || body.AnnualSunshineHours > 24*365 {
		return Estimate{}, fmt.Errorf("implausible sunshine figure %.1f", body.AnnualSunshineHours)
	}

	return FromAnnualHours(body.AnnualSunshineHours), nil
}
