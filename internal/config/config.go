// Package config loads the YAML configuration that wraps a breakup run.
// Configuration-file parsing is an external collaborator to the core sbm
// package — sbm never imports this package, only cmd/sbmgen does.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config is the external configuration surface of a breakup run: the
// minimal characteristic length to generate down to, which event kind to
// run, the default satellite class for synthesized satellites, and whether
// to enforce mass conservation.
type Config struct {
	MinimalCharacteristicLength float64 `mapstructure:"minimalCharacteristicLength"`
	SimulationType              string  `mapstructure:"simulationType"`
	SatType                     string  `mapstructure:"satType"`
	MassConservation            bool    `mapstructure:"massConservation"`
}

// Load reads and parses a YAML configuration file at path, loading a
// single settings file up front rather than threading flags through every
// layer.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if cfg.MinimalCharacteristicLength <= 0 {
		return nil, fmt.Errorf("config: minimalCharacteristicLength must be positive, got %v", cfg.MinimalCharacteristicLength)
	}
	return &cfg, nil
}
