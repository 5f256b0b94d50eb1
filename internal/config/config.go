// Package config provides configuration loading for the simulator.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all run configuration.
type Config struct {
	Simulation SimulationParams `yaml:"simulation"`
	History    HistoryConfig    `yaml:"history"`
	Run        RunConfig        `yaml:"run"`
	Census     CensusConfig     `yaml:"census"`
}

// SimulationParams is the per-run parameter snapshot. It is stored
// verbatim in every persisted simulation record.
type SimulationParams struct {
	InteractionChance  float32 `yaml:"interaction_chance" json:"interaction_chance"`
	ReproductionChance float32 `yaml:"reproduction_chance" json:"reproduction_chance"`
	HungerTickChance   float32 `yaml:"hunger_tick_chance" json:"hunger_tick_chance"`
	AmbitionTickChance float32 `yaml:"ambition_tick_chance" json:"ambition_tick_chance"`
	SimulationDuration uint32  `yaml:"simulation_duration" json:"simulation_duration"` // ticks before an unattended run stops
	InitialPopulation  uint32  `yaml:"initial_population" json:"initial_population"`   // ≥2 guarantees one of each sex
}

// HistoryConfig controls where run records go.
type HistoryConfig struct {
	Dir         string `yaml:"dir"`
	ArchivePath string `yaml:"archive_path"`
}

// RunConfig controls the driver.
type RunConfig struct {
	Seed         int64         `yaml:"seed"`
	TickInterval time.Duration `yaml:"tick_interval"`
	Speed        float64       `yaml:"speed"`
	Headless     bool          `yaml:"headless"`
}

// CensusConfig controls the per-tick census log.
type CensusConfig struct {
	Path string `yaml:"path"`
}

// DefaultParams returns the built-in simulation parameters.
func DefaultParams() SimulationParams {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg.Simulation
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	return cfg, nil
}

// WriteYAML saves the effective configuration.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
