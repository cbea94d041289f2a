package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvOverrides are environment variables that take precedence over radar.yml.
type EnvOverrides struct {
	RedisURL   string `env:"RADAR_REDIS_URL"`
	Namespace  string `env:"RADAR_NAMESPACE"`
	SourceKind string `env:"RADAR_SOURCE_KIND"`
	Source     string `env:"RADAR_SOURCE"`
	Seed       int64  `env:"RADAR_SEED"`
}

// ParseEnv loads overrides from environment variables.
func ParseEnv() (*EnvOverrides, error) {
	var o EnvOverrides
	if err := env.Parse(&o); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &o, nil
}

// ApplyEnv overlays environment overrides onto a validated config and
// re-validates it.
func ApplyEnv(cfg *RadarConfig) error {
	o, err := ParseEnv()
	if err != nil {
		return err
	}

	if o.RedisURL != "" {
		cfg.Store.RedisURL = o.RedisURL
	}
	if o.Namespace != "" {
		cfg.Store.Namespace = o.Namespace
	}
	if o.SourceKind != "" {
		cfg.Source.Kind = o.SourceKind
	}
	if o.Source != "" {
		cfg.Source.Location = o.Source
	}
	if o.Seed != 0 {
		cfg.Layout.Seed = o.Seed
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration after environment overrides: %w", err)
	}
	return nil
}
