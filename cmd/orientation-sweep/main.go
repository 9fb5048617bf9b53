package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/stat"

	"github.com/sunwatt/sunwatt/internal/engine"
	"github.com/sunwatt/sunwatt/internal/sunshine"
	"github.com/sunwatt/sunwatt/pkg/regulation"
)

// SweepResult holds one tilt/azimuth combination and its annual yield
type SweepResult struct {
	TiltDeg     float64
	AzimuthDeg  float64
	AnnualKwh   float64
	ClippingPct float64
	IsCompliant bool
}

func main() {
	var (
		lat      = flag.Float64("lat", 51.0, "Latitude in decimal degrees")
		lon      = flag.Float64("lon", 9.0, "Longitude in decimal degrees")
		wattage  = flag.Float64("wattage", 800.0, "Total array DC wattage in W")
		annual   = flag.Float64("sunshine-hours", 0, "Measured annual sunshine hours (0 = climate-zone estimate)")
		tiltStep = flag.Float64("tilt-step", 5.0, "Tilt grid step in degrees")
		azStep   = flag.Float64("azimuth-step", 15.0, "Azimuth grid step in degrees")
		topN     = flag.Int("top", 10, "Number of best orientations to display")
		csvPath  = flag.String("csv", "", "Optional CSV output file path")
	)
	flag.Parse()

	if *lat < -90 || *lat > 90 || *lon < -180 || *lon > 180 {
		fmt.Fprintf(os.Stderr, "Error: coordinates out of range\n")
		os.Exit(1)
	}

	var psh float64
	if *annual > 0 {
		psh = sunshine.FromAnnualHours(*annual).DailyPeakSunHours
	} else {
		psh = sunshine.Fallback(*lat).DailyPeakSunHours
	}

	fmt.Printf("Panel Orientation Sweep\n")
	fmt.Printf("=======================\n\n")
	fmt.Printf("Configuration:\n")
	fmt.Printf("  Location:       %.4f, %.4f\n", *lat, *lon)
	fmt.Printf("  Array Wattage:  %.0f W\n", *wattage)
	fmt.Printf("  Peak Sun Hours: %.2f h/day\n", psh)

	reg := regulation.Resolve(*lat, *lon)
	fmt.Printf("  Regulation:     %s", reg.RegionName)
	if reg.AppliesCap {
		fmt.Printf(" (inverter cap %.0f W, panel cap %.0f W)", *reg.MaxInverterOutputW, *reg.MaxPanelCapacityW)
	}
	fmt.Printf("\n\n")

	results := sweep(*lat, *lon, *wattage, psh, *tiltStep, *azStep)

	annuals := make([]float64, len(results))
	for i, r := range results {
		annuals[i] = r.AnnualKwh
	}

	sort.Slice(results, func(i, j int) bool { return results[i].AnnualKwh > results[j].AnnualKwh })

	fmt.Printf("Sweep statistics over %d orientations:\n", len(results))
	fmt.Printf("  Mean annual yield: %.1f kWh\n", stat.Mean(annuals, nil))
	fmt.Printf("  Std deviation:     %.1f kWh\n", stat.StdDev(annuals, nil))
	fmt.Printf("  Best:              %.1f kWh\n", results[0].AnnualKwh)
	fmt.Printf("  Worst:             %.1f kWh\n\n", results[len(results)-1].AnnualKwh)

	info := regulation.Info(*lat)
	fmt.Printf("Rule-of-thumb optimum for this latitude: azimuth %.0f°, tilt %.0f°\n\n",
		info.OptimalAzimuthDeg, info.OptimalTiltDeg)

	n := *topN
	if n > len(results) {
		n = len(results)
	}
	fmt.Printf("%-6s %-9s %-12s %-10s %s\n", "Tilt", "Azimuth", "Annual kWh", "Clip %", "Compliant")
	for _, r := range results[:n] {
		fmt.Printf("%-6.0f %-9.0f %-12.1f %-10.2f %v\n",
			r.TiltDeg, r.AzimuthDeg, r.AnnualKwh, r.ClippingPct, r.IsCompliant)
	}

	if *csvPath != "" {
		if err := writeCSV(*csvPath, results); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing CSV: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\nFull sweep written to %s\n", *csvPath)
	}
}

func sweep(lat, lon, wattage, psh, tiltStep, azStep float64) []SweepResult {
	eng := engine.New(nil)
	var results []SweepResult

	for tilt := 0.0; tilt <= 90.0; tilt += tiltStep {
		for az := 0.0; az < 360.0; az += azStep {
			est, err := eng.Run(engine.EstimateRequest{
				Location:     engine.Location{Latitude: lat, Longitude: lon},
				Array:        engine.PanelArrayConfig{TotalWattageW: wattage},
				Orientation:  engine.OrientationParams{PanelAzimuthDeg: az, PanelTiltDeg: tilt},
				PeakSunHours: psh,
			})
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error at tilt %.0f azimuth %.0f: %v\n", tilt, az, err)
				os.Exit(1)
			}

			results = append(results, SweepResult{
				TiltDeg:     tilt,
				AzimuthDeg:  az,
				AnnualKwh:   est.Annual.AnnualEnergyKwh,
				ClippingPct: est.Annual.ClippingLossPct,
				IsCompliant: est.Annual.IsCompliant,
			})
		}
	}

	return results
}

func writeCSV(path string, results []SweepResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"tilt_deg", "azimuth_deg", "annual_kwh", "clipping_pct", "compliant"}); err != nil {
		return err
	}
	for _, r := range results {
		record := []string{
			strconv.FormatFloat(r.TiltDeg, 'f', 0, 64),
			strconv.FormatFloat(r.AzimuthDeg, 'f', 0, 64),
			strconv.FormatFloat(r.AnnualKwh, 'f', 2, 64),
			strconv.FormatFloat(r.ClippingPct, 'f', 2, 64),
			strconv.FormatBool(r.IsCompliant),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	return nil
}
