// Package config provides configuration loading for the sunwatt service.
package config

import (
	"time"
)

// Provider defines the interface for configuration data sources
type Provider interface {
	LoadConfig() (*Data, error)
	IsReadOnly() bool
	Close() error
}

// Data represents the complete service configuration
type Data struct {
	Server   ServerData   `json:"server"`
	Sunshine SunshineData `json:"sunshine,omitempty"`
	Pricing  PricingData  `json:"pricing,omitempty"`
	LogFile  string       `json:"log_file,omitempty"`
}

// ServerData holds the HTTP listener configuration
type ServerData struct {
	ListenAddr string `json:"listen_addr"`
}

// SunshineData configures the external annual-sunshine-hours lookup.
// An empty endpoint disables the fetch and the climate-zone fallback
// table is used for every request.
type SunshineData struct {
	Endpoint       string `json:"endpoint,omitempty"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty"`
}

// Timeout returns the fetch timeout with a 5 second default
func (s SunshineData) Timeout() time.Duration {
	if s.TimeoutSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// PricingData holds display-only economics defaults
type PricingData struct {
	ElectricityPricePerKwh float64 `json:"electricity_price_per_kwh,omitempty"`
}

// applyDefaults fills in values a minimal config file may omit
func (d *Data) applyDefaults() {
	if d.Server.ListenAddr == "" {
		d.Server.ListenAddr = ":8090"
	}
	if d.Pricing.ElectricityPricePerKwh == 0 {
		d.Pricing.ElectricityPricePerKwh = 0.30
	}
}
