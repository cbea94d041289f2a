package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/dyluth/radar/internal/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "radar.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))
	return configPath
}

func TestLoad_ValidConfig(t *testing.T) {
	configPath := writeConfig(t, `version: "1.0"
title: "2025 Q4 Technology Radar"
layout:
  radius: 300
  max_rings: 3
  min_separation: 20
  seed: 42
source:
  kind: file
  location: radars/current.csv
store:
  redis_url: redis://cache:6379/1
  namespace: team-a
`)

	config, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "1.0", config.Version)
	assert.Equal(t, "2025 Q4 Technology Radar", config.Title)
	assert.Equal(t, 300.0, *config.Layout.Radius)
	assert.Equal(t, 3, *config.Layout.MaxRings)
	assert.Equal(t, int64(42), config.Layout.Seed)
	assert.Equal(t, SourceKindFile, config.Source.Kind)
	assert.Equal(t, filepath.Join(filepath.Dir(configPath), "radars", "current.csv"), config.Source.Location)
	assert.Equal(t, "|", config.Source.Delimiter)
	assert.Equal(t, "redis://cache:6379/1", config.Store.RedisURL)
	assert.Equal(t, "team-a", config.Store.Namespace)

	// Unspecified layout fields take defaults
	assert.Equal(t, layout.DefaultMaxAttempts, *config.Layout.MaxAttempts)
	assert.Equal(t, layout.DefaultRadiusInset, *config.Layout.RadiusInset)
}

func TestLoad_AbsoluteFileSourceUnchanged(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "radar.csv")
	configPath := writeConfig(t, "version: \"1.0\"\nsource:\n  kind: file\n  location: "+abs+"\n")

	config, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, abs, config.Source.Location)
}

func TestLoad_FileNotFound(t *testing.T) {
	config, err := Load("/nonexistent/radar.yml")
	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestLoad_InvalidYAML(t *testing.T) {
	configPath := writeConfig(t, `version: "1.0"
layout:
  - this is invalid
    yaml syntax
`)

	config, err := Load(configPath)
	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadOrDefault(t *testing.T) {
	t.Run("missing optional file yields defaults", func(t *testing.T) {
		config, err := LoadOrDefault(filepath.Join(t.TempDir(), "radar.yml"), false)
		require.NoError(t, err)
		assert.Equal(t, DefaultNamespace, config.Store.Namespace)
	})

	t.Run("missing required file fails", func(t *testing.T) {
		_, err := LoadOrDefault(filepath.Join(t.TempDir(), "radar.yml"), true)
		assert.Error(t, err)
	})

	t.Run("existing file is loaded", func(t *testing.T) {
		config, err := LoadOrDefault(writeConfig(t, "version: \"1.0\"\ntitle: loaded\n"), false)
		require.NoError(t, err)
		assert.Equal(t, "loaded", config.Title)
	})
}

func TestDefault(t *testing.T) {
	config := Default()
	g := config.Layout.Geometry()

	assert.Equal(t, layout.DefaultGeometry().Radius, g.Radius)
	assert.Equal(t, layout.DefaultGeometry().MaxRings, g.MaxRings)
	assert.InDelta(t, layout.DefaultAngleInset, g.AngleInset, 1e-12)
	assert.Equal(t, g.Radius, g.CenterX)
	assert.Equal(t, g.Radius, g.CenterY)
	assert.Equal(t, DefaultRedisURL, config.Store.RedisURL)
	assert.Equal(t, DefaultDelimiter, config.Source.Delimiter)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		config RadarConfig
		errMsg string
	}{
		{
			name:   "unsupported version",
			config: RadarConfig{Version: "2.0"},
			errMsg: "unsupported version: 2.0",
		},
		{
			name:   "too many rings",
			config: RadarConfig{Version: "1.0", Layout: &LayoutConfig{MaxRings: intPtr(5)}},
			errMsg: "max_rings must be <= 4",
		},
		{
			name:   "non-positive radius",
			config: RadarConfig{Version: "1.0", Layout: &LayoutConfig{Radius: float64Ptr(0)}},
			errMsg: "radius must be > 0",
		},
		{
			name:   "angle inset too wide",
			config: RadarConfig{Version: "1.0", Layout: &LayoutConfig{AngleInsetDegrees: float64Ptr(60)}},
			errMsg: "angle inset",
		},
		{
			name:   "unknown source kind",
			config: RadarConfig{Version: "1.0", Source: &SourceConfig{Kind: "sheets", Location: "x"}},
			errMsg: "invalid kind: sheets",
		},
		{
			name:   "file source without location",
			config: RadarConfig{Version: "1.0", Source: &SourceConfig{Kind: SourceKindFile}},
			errMsg: "location is required",
		},
		{
			name:   "location without kind",
			config: RadarConfig{Version: "1.0", Source: &SourceConfig{Location: "radar.csv"}},
			errMsg: "kind is required",
		},
		{
			name:   "multi-character delimiter",
			config: RadarConfig{Version: "1.0", Source: &SourceConfig{Delimiter: "||"}},
			errMsg: "single character",
		},
		{
			name:   "invalid namespace",
			config: RadarConfig{Version: "1.0", Store: &StoreConfig{Namespace: "Team A"}},
			errMsg: "invalid namespace",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestValidate_StoreSourceNeedsNoLocation(t *testing.T) {
	config := RadarConfig{Version: "1.0", Source: &SourceConfig{Kind: SourceKindStore}}
	assert.NoError(t, config.Validate())
}

func TestLayoutGeometry_ConvertsDegrees(t *testing.T) {
	l := &LayoutConfig{AngleInsetDegrees: float64Ptr(9)}
	require.NoError(t, l.Validate())
	assert.InDelta(t, math.Pi/20, l.Geometry().AngleInset, 1e-12)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("RADAR_REDIS_URL", "redis://env:6379")
	t.Setenv("RADAR_NAMESPACE", "from-env")
	t.Setenv("RADAR_SOURCE_KIND", "url")
	t.Setenv("RADAR_SOURCE", "https://example.com/radar.csv")
	t.Setenv("RADAR_SEED", "7")

	config := Default()
	require.NoError(t, ApplyEnv(config))

	assert.Equal(t, "redis://env:6379", config.Store.RedisURL)
	assert.Equal(t, "from-env", config.Store.Namespace)
	assert.Equal(t, SourceKindURL, config.Source.Kind)
	assert.Equal(t, "https://example.com/radar.csv", config.Source.Location)
	assert.Equal(t, int64(7), config.Layout.Seed)
}

func TestApplyEnv_InvalidOverride(t *testing.T) {
	t.Setenv("RADAR_SEED", "not-a-number")
	assert.Error(t, ApplyEnv(Default()))
}

func TestApplyEnv_RevalidatesResult(t *testing.T) {
	t.Setenv("RADAR_SOURCE_KIND", "sheets")
	t.Setenv("RADAR_SOURCE", "x")

	err := ApplyEnv(Default())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after environment overrides")
}
