// Package config loads and saves scenario configurations for the
// balance lab as YAML, with a set of named presets.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/balancelab/internal/model"
)

const (
	DefaultDt       = 0.01
	DefaultDuration = 10.0
)

// MassPlacement puts a mass of Value kilograms at a signed Distance
// from the plank center, in meters.
type MassPlacement struct {
	Value    float64 `yaml:"value"`
	Distance float64 `yaml:"distance"`
}

type Config struct {
	Scenario    string          `yaml:"scenario"`
	Dt          float64         `yaml:"dt"`
	Duration    float64         `yaml:"duration"`
	Seed        int64           `yaml:"seed"`
	ColumnState string          `yaml:"column_state"` // double | single | none
	InitTilt    float64         `yaml:"init_tilt"`
	Masses      []MassPlacement `yaml:"masses"`
}

func DefaultConfig() *Config {
	return &Config{
		Scenario:    "custom",
		Dt:          DefaultDt,
		Duration:    DefaultDuration,
		ColumnState: "none",
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ParseColumnState maps the YAML value onto the model enum.
func ParseColumnState(s string) (model.ColumnState, error) {
	switch s {
	case "double", "":
		return model.DoubleColumns, nil
	case "single":
		return model.SingleColumn, nil
	case "none":
		return model.NoColumns, nil
	default:
		return model.DoubleColumns, fmt.Errorf("unknown column state: %q", s)
	}
}

// Validate checks placements against the plank geometry before any of
// them reach the model, where they would panic.
func (c *Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", c.Duration)
	}
	if _, err := ParseColumnState(c.ColumnState); err != nil {
		return err
	}
	seen := make(map[float64]bool)
	for _, p := range c.Masses {
		if p.Value <= 0 {
			return fmt.Errorf("mass value must be positive, got %f", p.Value)
		}
		if p.Distance < -model.MaxValidMassDistance || p.Distance > model.MaxValidMassDistance {
			return fmt.Errorf("mass distance %f outside ±%.2f", p.Distance, model.MaxValidMassDistance)
		}
		if seen[p.Distance] {
			return fmt.Errorf("duplicate mass distance %f", p.Distance)
		}
		seen[p.Distance] = true
	}
	return nil
}
