// Package config provides YAML-based configuration loading for the raycast
// tool: caster defaults, output formatting, level and storage locations, and
// logging.
package config

import (
	"fmt"
	"math"
	"strings"
)

// Config contains all configuration for the raycast tool.
type Config struct {
	Caster  CasterConfig  `yaml:"caster"`
	Output  OutputConfig  `yaml:"output"`
	Levels  LevelsConfig  `yaml:"levels"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// CasterConfig defines the default viewer parameters used when a level or
// command line does not override them.
type CasterConfig struct {
	Rays        int     `yaml:"rays"`
	FOV         float64 `yaml:"fov"`          // Degrees
	MaxDistance float64 `yaml:"max_distance"` // Grid units
}

// OutputConfig defines how cast results are reported.
type OutputConfig struct {
	Format    string `yaml:"format"`    // "table", "summary", "map" or "yaml"
	MaxRays   int    `yaml:"max_rays"`  // Rows shown in table output, 0 = all
	Precision int    `yaml:"precision"` // Decimal places for distances
}

// LevelsConfig defines where level files are looked up.
type LevelsConfig struct {
	Dir string `yaml:"dir"` // Extra level directory, empty = built-in levels only
}

// StorageConfig defines the pose database location.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// LogConfig defines logger behaviour.
type LogConfig struct {
	Level     string `yaml:"level"` // debug, info, warn, error
	Timestamp bool   `yaml:"timestamp"`
}

// Validate checks that the configuration can drive a caster.
func (c Config) Validate() error {
	if c.Caster.Rays <= 0 {
		return fmt.Errorf("config: caster.rays must be positive, got %d", c.Caster.Rays)
	}
	if c.Caster.FOV <= 0 || c.Caster.FOV >= 360 {
		return fmt.Errorf("config: caster.fov must be in (0, 360), got %v", c.Caster.FOV)
	}
	if c.Caster.MaxDistance <= 0 || math.IsInf(c.Caster.MaxDistance, 0) || math.IsNaN(c.Caster.MaxDistance) {
		return fmt.Errorf("config: caster.max_distance must be a positive finite number, got %v", c.Caster.MaxDistance)
	}
	switch c.Output.Format {
	case FormatTable, FormatYAML, FormatSummary, FormatMap:
	default:
		return fmt.Errorf("config: unknown output.format %q", c.Output.Format)
	}
	if c.Output.MaxRays < 0 {
		return fmt.Errorf("config: output.max_rays must not be negative, got %d", c.Output.MaxRays)
	}
	return nil
}

// Output formats.
const (
	FormatTable   = "table"
	FormatYAML    = "yaml"
	FormatSummary = "summary"
	FormatMap     = "map"
)

// QualityPreset represents a named ray density.
type QualityPreset string

const (
	QualityLow    QualityPreset = "low"
	QualityMedium QualityPreset = "medium"
	QualityHigh   QualityPreset = "high"
)

// ParseQualityPreset parses a preset name, case-insensitively.
func ParseQualityPreset(s string) (QualityPreset, error) {
	switch p := QualityPreset(strings.ToLower(s)); p {
	case QualityLow, QualityMedium, QualityHigh:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown quality preset %q (want low, medium or high)", s)
	}
}

// RaysForPreset returns the ray count for a quality preset.
func RaysForPreset(preset QualityPreset) int {
	switch preset {
	case QualityLow:
		return 40
	case QualityHigh:
		return 320
	default:
		return 120
	}
}

// ApplyQualityPreset sets the caster ray count from a preset.
func ApplyQualityPreset(cfg *Config, preset QualityPreset) {
	cfg.Caster.Rays = RaysForPreset(preset)
}
