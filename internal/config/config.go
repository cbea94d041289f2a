package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/dyluth/radar/internal/layout"
	"github.com/dyluth/radar/pkg/itemstore"
	"github.com/dyluth/radar/pkg/radar"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the CLI looks for configuration when --config is not given.
const DefaultPath = "radar.yml"

// Source kinds
const (
	SourceKindFile  = "file"
	SourceKindURL   = "url"
	SourceKindAPI   = "api"
	SourceKindStore = "store"
)

// Defaults applied by Validate
const (
	DefaultDelimiter = "|"
	DefaultRedisURL  = "redis://localhost:6379"
	DefaultNamespace = "default"
)

// RadarConfig represents the top-level radar.yml configuration
type RadarConfig struct {
	Version string        `yaml:"version"`
	Title   string        `yaml:"title,omitempty"`
	Layout  *LayoutConfig `yaml:"layout,omitempty"`
	Source  *SourceConfig `yaml:"source,omitempty"`
	Store   *StoreConfig  `yaml:"store,omitempty"`
}

// LayoutConfig controls the radar geometry. Nil fields take defaults.
type LayoutConfig struct {
	Radius            *float64 `yaml:"radius,omitempty"`
	MaxRings          *int     `yaml:"max_rings,omitempty"`
	MinSeparation     *float64 `yaml:"min_separation,omitempty"`
	MaxAttempts       *int     `yaml:"max_attempts,omitempty"`
	AngleInsetDegrees *float64 `yaml:"angle_inset_degrees,omitempty"`
	RadiusInset       *float64 `yaml:"radius_inset,omitempty"`
	Seed              int64    `yaml:"seed,omitempty"` // 0 = time based
}

// SourceConfig selects where rows come from
type SourceConfig struct {
	Kind      string `yaml:"kind"`     // file, url, api or store
	Location  string `yaml:"location"` // path, URL or API base URL
	Delimiter string `yaml:"delimiter,omitempty"`
}

// StoreConfig locates the item store
type StoreConfig struct {
	RedisURL  string `yaml:"redis_url,omitempty"`
	Namespace string `yaml:"namespace,omitempty"`
}

// Default returns a validated configuration with every default applied.
func Default() *RadarConfig {
	cfg := &RadarConfig{Version: "1.0"}
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("default config is invalid: %v", err))
	}
	return cfg
}

// Validate performs strict validation on the configuration and fills in defaults
func (c *RadarConfig) Validate() error {
	// Required: version
	if c.Version != "1.0" {
		return fmt.Errorf("unsupported version: %s (expected: 1.0)", c.Version)
	}

	if c.Layout == nil {
		c.Layout = &LayoutConfig{}
	}
	if err := c.Layout.Validate(); err != nil {
		return fmt.Errorf("layout: %w", err)
	}

	if c.Source == nil {
		c.Source = &SourceConfig{}
	}
	if err := c.Source.Validate(); err != nil {
		return fmt.Errorf("source: %w", err)
	}

	if c.Store == nil {
		c.Store = &StoreConfig{}
	}
	if c.Store.RedisURL == "" {
		c.Store.RedisURL = DefaultRedisURL
	}
	if c.Store.Namespace == "" {
		c.Store.Namespace = DefaultNamespace
	}
	if err := itemstore.ValidateNamespace(c.Store.Namespace); err != nil {
		return fmt.Errorf("store: %w", err)
	}

	return nil
}

// Validate applies layout defaults and checks ranges
func (l *LayoutConfig) Validate() error {
	if l.Radius == nil {
		l.Radius = float64Ptr(layout.DefaultRadius)
	}
	if l.MaxRings == nil {
		l.MaxRings = intPtr(radar.DefaultMaxRings)
	}
	if l.MinSeparation == nil {
		l.MinSeparation = float64Ptr(layout.DefaultMinSeparation)
	}
	if l.MaxAttempts == nil {
		l.MaxAttempts = intPtr(layout.DefaultMaxAttempts)
	}
	if l.AngleInsetDegrees == nil {
		l.AngleInsetDegrees = float64Ptr(layout.DefaultAngleInset * 180 / math.Pi)
	}
	if l.RadiusInset == nil {
		l.RadiusInset = float64Ptr(layout.DefaultRadiusInset)
	}

	if *l.MaxRings > radar.DefaultMaxRings {
		return fmt.Errorf("max_rings must be <= %d, got %d", radar.DefaultMaxRings, *l.MaxRings)
	}

	return l.Geometry().Validate()
}

// Geometry converts the layout section into a layout.Geometry centred at (R, R).
// Validate must have been called first.
func (l *LayoutConfig) Geometry() layout.Geometry {
	return layout.Geometry{
		Radius:        *l.Radius,
		CenterX:       *l.Radius,
		CenterY:       *l.Radius,
		MaxRings:      *l.MaxRings,
		MinSeparation: *l.MinSeparation,
		MaxAttempts:   *l.MaxAttempts,
		AngleInset:    *l.AngleInsetDegrees * math.Pi / 180,
		RadiusInset:   *l.RadiusInset,
	}
}

// Validate checks the source kind. An empty source is allowed; the CLI may
// supply one with flags.
func (s *SourceConfig) Validate() error {
	if s.Delimiter == "" {
		s.Delimiter = DefaultDelimiter
	}
	if len([]rune(s.Delimiter)) != 1 {
		return fmt.Errorf("delimiter must be a single character, got %q", s.Delimiter)
	}

	switch s.Kind {
	case "":
		if s.Location != "" {
			return fmt.Errorf("kind is required when location is set")
		}
	case SourceKindFile, SourceKindURL, SourceKindAPI:
		if s.Location == "" {
			return fmt.Errorf("location is required for kind '%s'", s.Kind)
		}
	case SourceKindStore:
	default:
		return fmt.Errorf("invalid kind: %s (must be 'file', 'url', 'api' or 'store')", s.Kind)
	}

	return nil
}

// Load reads and validates radar.yml from the specified path
func Load(path string) (*RadarConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config RadarConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Relative file sources are relative to the config file
	if config.Source.Kind == SourceKindFile && !filepath.IsAbs(config.Source.Location) {
		config.Source.Location = filepath.Join(filepath.Dir(path), config.Source.Location)
	}

	return &config, nil
}

// LoadOrDefault loads path if it exists. A missing file yields Default()
// unless required is set.
func LoadOrDefault(path string, required bool) (*RadarConfig, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) && !required {
		return Default(), nil
	}
	return Load(path)
}

func intPtr(v int) *int             { return &v }
func float64Ptr(v float64) *float64 { return &v }
