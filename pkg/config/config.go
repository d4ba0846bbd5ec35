// Package config provides configuration loading and management for isospectrum.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"isospectrum/pkg/isospectrum"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Processing parameters
	Processing struct {
		// NumCores specifies how many field files are reduced concurrently
		NumCores int `yaml:"numCores"`

		// ShellEdges selects the shell interval convention: lower, upper, or wrapped
		ShellEdges string `yaml:"shellEdges"`
	} `yaml:"processing"`

	// Output parameters
	Output struct {
		// Dir is where spectra, plots, and field images are written
		Dir string `yaml:"dir"`

		// SavePlots writes a PNG line plot next to each spectrum
		SavePlots bool `yaml:"savePlots"`

		// LogScale plots energy on a logarithmic axis
		LogScale bool `yaml:"logScale"`

		// SaveFieldImages writes a grayscale image of each 2D input field
		SaveFieldImages bool `yaml:"saveFieldImages"`

		// PlotWidth and PlotHeight are the plot size in pixels
		PlotWidth  int `yaml:"plotWidth"`
		PlotHeight int `yaml:"plotHeight"`

		// Verbose controls the level of logging output
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Processing.NumCores = runtime.NumCPU()
	cfg.Processing.ShellEdges = isospectrum.EdgesLower.String()

	cfg.Output.Dir = "spectra"
	cfg.Output.SavePlots = true
	cfg.Output.LogScale = false
	cfg.Output.SaveFieldImages = false
	cfg.Output.PlotWidth = 1000
	cfg.Output.PlotHeight = 600
	cfg.Output.Verbose = true

	return cfg
}

// Validate checks that the configuration values are usable
func (c *Config) Validate() error {
	if c.Processing.NumCores < 1 {
		return fmt.Errorf("processing.numCores must be at least 1, got %d", c.Processing.NumCores)
	}
	if _, err := isospectrum.ParseShellEdges(c.Processing.ShellEdges); err != nil {
		return fmt.Errorf("processing.shellEdges: %w", err)
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir must not be empty")
	}
	if c.Output.SavePlots && (c.Output.PlotWidth <= 0 || c.Output.PlotHeight <= 0) {
		return fmt.Errorf("output plot size must be positive, got %dx%d", c.Output.PlotWidth, c.Output.PlotHeight)
	}
	return nil
}

// ShellEdges returns the parsed shell interval convention
func (c *Config) ShellEdges() (isospectrum.ShellEdges, error) {
	return isospectrum.ParseShellEdges(c.Processing.ShellEdges)
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}
