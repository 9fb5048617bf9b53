package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// YAMLProvider implements Provider for YAML configuration files
type YAMLProvider struct {
	filename string
}

// NewYAMLProvider creates a new YAML configuration provider
func NewYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{filename: filename}
}

// LoadConfig loads the complete configuration from the YAML file
func (y *YAMLProvider) LoadConfig() (*Data, error) {
	cfgFile, err := os.ReadFile(y.filename)
	if err != nil {
		return nil, err
	}

	// Load into a temporary struct with YAML tags
	var yamlConfig struct {
		Server struct {
			ListenAddr string `yaml:"listen_addr"`
		} `yaml:"server"`
		Sunshine struct {
			Endpoint       string `yaml:"endpoint"`
			TimeoutSeconds int    `yaml:"timeout_seconds"`
		} `yaml:"sunshine,omitempty"`
		Pricing struct {
			ElectricityPricePerKwh float64 `yaml:"electricity_price_per_kwh"`
		} `yaml:"pricing,omitempty"`
		LogFile string `yaml:"log_file,omitempty"`
	}

	if err := yaml.Unmarshal(cfgFile, &yamlConfig); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", y.filename, err)
	}

	config := &Data{
		Server: ServerData{
			ListenAddr: yamlConfig.Server.ListenAddr,
		},
		Sunshine: SunshineData{
			Endpoint:       yamlConfig.Sunshine.Endpoint,
			TimeoutSeconds: yamlConfig.Sunshine.TimeoutSeconds,
		},
		Pricing: PricingData{
			ElectricityPricePerKwh: yamlConfig.Pricing.ElectricityPricePerKwh,
		},
		LogFile: yamlConfig.LogFile,
	}
	config.applyDefaults()

	return config, nil
}

// IsReadOnly reports that YAML files are not writable through the provider
func (y *YAMLProvider) IsReadOnly() bool {
	return true
}

// Close is a no-op for file-based configuration
func (y *YAMLProvider) Close() error {
	return nil
}
