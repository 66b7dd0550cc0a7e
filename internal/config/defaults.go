package config

import (
	_ "embed"
)

//go:embed defaults/raycast.yaml
var defaultYAML []byte

// DefaultConfig returns the hardcoded default configuration.
func DefaultConfig() Config {
	return Config{
		Caster: CasterConfig{
			Rays:        120,
			FOV:         60,
			MaxDistance: 16,
		},
		Output: OutputConfig{
			Format:    FormatTable,
			MaxRays:   0,
			Precision: 3,
		},
		Levels: LevelsConfig{
			Dir: "",
		},
		Storage: StorageConfig{
			DBPath: "~/.raycast/poses.db",
		},
		Log: LogConfig{
			Level:     "info",
			Timestamp: false,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
