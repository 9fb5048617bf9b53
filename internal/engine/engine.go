package engine

import (
	"go.uber.org/zap"

	"github.com/sunwatt/sunwatt/pkg/regulation"
	"github.com/sunwatt/sunwatt/pkg/solar"
)

// referenceDay is the single representative day whose production is
// multiplied by 365 to approximate the annual total: day 172, the
// northern summer solstice. It stays fixed for all locations; the
// seasonal breakdown is the hemisphere-aware view.
const referenceDay = 172

const daysInYear = 365

// negligibleIrradiance is the threshold below which an hour is treated
// as producing nothing
const negligibleIrradiance = 0.001

// DayParams are the inputs to one daily integration pass
type DayParams struct {
	DCCapacityW        float64
	PeakSunHours       float64
	Efficiency         float64
	MaxInverterOutputW *float64 // nil means unconstrained
	PanelAzimuthDeg    float64
	PanelTiltDeg       float64
	DayOfYear          int
	LatitudeDeg        float64
}

// Engine runs production simulations. The logger is an optional trace
// hook; a nil logger disables tracing entirely.
type Engine struct {
	logger *zap.SugaredLogger
}

// New creates an engine with an optional trace logger
func New(logger *zap.SugaredLogger) *Engine {
	return &Engine{logger: logger}
}

func (e *Engine) tracef(template string, args ...interface{}) {
	if e.logger != nil {
		e.logger.Debugf(template, args...)
	}
}

// SimulateDay integrates one day of production hour by hour: irradiance
// curve scaled to the day's peak sun hours, orientation factor per hour,
// inverter clipping, and the running pre-clip power maximum.
func (e *Engine) SimulateDay(p DayParams) DailyProductionResult {
	curve := solar.BuildDailyCurve(p.DayOfYear, p.LatitudeDeg).ScaleToPeakSunHours(p.PeakSunHours)

	result := DailyProductionResult{
		Samples: make([]HourlySample, 0, 24),
	}

	for h := 0; h < 24; h++ {
		sample := HourlySample{Hour: h}

		if curve[h] > negligibleIrradiance {
			pos := solar.Position(h, p.DayOfYear, p.LatitudeDeg)
			orient := solar.OrientationFactor(pos.ElevationDeg, pos.AzimuthDeg, p.PanelTiltDeg, p.PanelAzimuthDeg)

			effective := curve[h] * orient
			power := p.DCCapacityW * p.Efficiency * effective

			sample.InstantaneousPowerW = power
			sample.ClippedPowerW = power

			if power > result.MaxInstantaneousPowerW {
				result.MaxInstantaneousPowerW = power
			}

			if p.MaxInverterOutputW != nil && power > *p.MaxInverterOutputW {
				lost := power - *p.MaxInverterOutputW
				sample.ClippedPowerW = *p.MaxInverterOutputW
				sample.ClippingLossW = lost
				result.EnergyLostToClippingWh += lost
				// Fractional clipped hours: severity-weighted, not a count
				result.FractionalHoursClipped += lost / power
			}
		}

		// One sample spans one hour, so 1 W of clipped power = 1 Wh
		result.TotalEnergyWh += sample.ClippedPowerW
		result.Samples = append(result.Samples, sample)
	}

	e.tracef("simulated day %d at lat %.2f: %.1f Wh, peak %.1f W, clipped %.1f Wh",
		p.DayOfYear, p.LatitudeDeg, result.TotalEnergyWh, result.MaxInstantaneousPowerW, result.EnergyLostToClippingWh)

	return result
}

// SimulateYear approximates annual production by simulating the reference
// day (172, northern summer solstice) and multiplying by 365. The
// seasonal breakdown computed separately is the more faithful view of the
// year's shape; this total deliberately preserves the simpler estimate.
func (e *Engine) SimulateYear(p DayParams) DailyProductionResult {
	p.DayOfYear = referenceDay
	return e.SimulateDay(p)
}

// seasonReferenceDays returns the four solstice/equinox reference days
// with hemisphere-correct season labels.
func seasonReferenceDays(hemisphere regulation.Hemisphere) [4]SeasonalSample {
	if hemisphere == regulation.HemisphereSouthern {
		return [4]SeasonalSample{
			{SeasonName: "Autumn", ReferenceDayOfYear: 80},
			{SeasonName: "Winter", ReferenceDayOfYear: 172},
			{SeasonName: "Spring", ReferenceDayOfYear: 266},
			{SeasonName: "Summer", ReferenceDayOfYear: 355},
		}
	}
	return [4]SeasonalSample{
		{SeasonName: "Spring", ReferenceDayOfYear: 80},
		{SeasonName: "Summer", ReferenceDayOfYear: 172},
		{SeasonName: "Autumn", ReferenceDayOfYear: 266},
		{SeasonName: "Winter", ReferenceDayOfYear: 355},
	}
}

// rawDailyIrradiance sums the attenuated clear-sky irradiance over a day,
// without weather correction. Used to form seasonal scaling ratios.
func rawDailyIrradiance(dayOfYear int, latitudeDeg float64) float64 {
	total := 0.0
	for h := 0; h < 24; h++ {
		total += solar.Attenuate(solar.Position(h, dayOfYear, latitudeDeg).ElevationDeg)
	}
	return total
}

// simulateSeasons fills in the four seasonal samples. Each season's peak
// sun hours scale the annual average by the ratio of that day's raw
// irradiance to the local summer solstice's, times the weather factor for
// that day.
func (e *Engine) simulateSeasons(p DayParams, hemisphere regulation.Hemisphere) [4]SeasonalSample {
	seasons := seasonReferenceDays(hemisphere)

	summerRef := referenceDay
	if hemisphere == regulation.HemisphereSouthern {
		summerRef = 355
	}
	summerIrradiance := rawDailyIrradiance(summerRef, p.LatitudeDeg)

	for i := range seasons {
		day := seasons[i].ReferenceDayOfYear

		ratio := 0.0
		if summerIrradiance > 0 {
			ratio = rawDailyIrradiance(day, p.LatitudeDeg) / summerIrradiance
		}
		psh := p.PeakSunHours * ratio * solar.WeatherFactor(p.LatitudeDeg, day)

		dayParams := p
		dayParams.DayOfYear = day
		dayParams.PeakSunHours = psh
		result := e.SimulateDay(dayParams)

		seasons[i].PeakSunHours = psh
		seasons[i].DailyEnergyKwh = result.TotalEnergyWh / 1000.0
		seasons[i].MonthlyEnergyKwh = seasons[i].DailyEnergyKwh * daysInYear / 12.0

		unclipped := result.TotalEnergyWh + result.EnergyLostToClippingWh
		if unclipped > 0 {
			seasons[i].ClippingLossPct = result.EnergyLostToClippingWh / unclipped * 100.0
		}
	}

	return seasons
}

// Run validates the request and produces the complete estimate: annual
// output, seasonal breakdown, compliance flags and the reference-day
// detail.
func (e *Engine) Run(req EstimateRequest) (*Estimate, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	reg := regulation.Resolve(req.Location.Latitude, req.Location.Longitude)
	if reg.Defaulted && e.logger != nil {
		e.logger.Warnw("location could not be interpreted, substituting default regulation",
			"latitude", req.Location.Latitude, "longitude", req.Location.Longitude, "region", reg.RegionName)
	}

	info := regulation.Info(req.Location.Latitude)
	efficiency := PanelEfficiency(req.Orientation.PanelAzimuthDeg, req.Orientation.PanelTiltDeg,
		info.OptimalAzimuthDeg, info.OptimalTiltDeg)

	params := DayParams{
		DCCapacityW:        req.Array.TotalWattageW,
		PeakSunHours:       req.PeakSunHours,
		Efficiency:         efficiency,
		MaxInverterOutputW: reg.MaxInverterOutputW,
		PanelAzimuthDeg:    req.Orientation.PanelAzimuthDeg,
		PanelTiltDeg:       req.Orientation.PanelTiltDeg,
		LatitudeDeg:        req.Location.Latitude,
	}

	refDay := e.SimulateYear(params)

	annual := AnnualOutput{
		AnnualEnergyKwh:         refDay.TotalEnergyWh * daysInYear / 1000.0,
		EnergyLostToClippingKwh: refDay.EnergyLostToClippingWh * daysInYear / 1000.0,
		MaxInstantaneousPowerW:  refDay.MaxInstantaneousPowerW,
		SeasonalBreakdown:       e.simulateSeasons(params, info.Hemisphere),
	}
	annual.UnclippedEstimateKwh = annual.AnnualEnergyKwh + annual.EnergyLostToClippingKwh
	if annual.UnclippedEstimateKwh > 0 {
		annual.ClippingLossPct = annual.EnergyLostToClippingKwh / annual.UnclippedEstimateKwh * 100.0
	}

	// Compliance is a business-rule flag, not an error: the pre-clip power
	// maximum surfaces that the array is oversized even though output is
	// capped.
	if reg.AppliesCap {
		if reg.MaxPanelCapacityW != nil && req.Array.TotalWattageW > *reg.MaxPanelCapacityW {
			annual.ExceedsPanelLimit = true
		}
		if reg.MaxInverterOutputW != nil && refDay.MaxInstantaneousPowerW > *reg.MaxInverterOutputW {
			annual.ExceedsInverterCapacity = true
		}
		annual.IsCompliant = !annual.ExceedsPanelLimit && !annual.ExceedsInverterCapacity
	} else {
		annual.IsCompliant = true
	}

	return &Estimate{
		Annual:       annual,
		ReferenceDay: refDay,
		Regulation:   reg,
		Efficiency:   efficiency,
		PeakSunHours: req.PeakSunHours,
	}, nil
}
