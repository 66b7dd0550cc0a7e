package formats

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

func init() {
	Register(Format{Name: "yaml", Parse: ParseYAML}, FormatExtensionsYAML()...)
}

// YAMLLevel represents the YAML structure for a level file.
// The grid is given either as numeric tiles or as character rows with an
// optional legend.
type YAMLLevel struct {
	ID          string            `yaml:"id"`
	Name        string            `yaml:"name"`
	Size        *YAMLSize         `yaml:"size,omitempty"`
	Tiles       [][]int32         `yaml:"tiles,omitempty"`
	Rows        []string          `yaml:"rows,omitempty"`
	Legend      map[string]int32  `yaml:"legend,omitempty"`
	Transparent []int32           `yaml:"transparent,omitempty"`
	Spawn       *YAMLSpawn        `yaml:"spawn,omitempty"`
	Metadata    map[string]string `yaml:"metadata,omitempty"`
}

// YAMLSize represents grid dimensions.
type YAMLSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// YAMLSpawn represents the viewer start pose. Angle is in degrees.
type YAMLSpawn struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Angle float64 `yaml:"angle"`
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	if yl.ID == "" {
		return Level{}, errors.New("level has no id")
	}
	if yl.Tiles != nil && yl.Rows != nil {
		return Level{}, errors.New("level sets both tiles and rows")
	}

	level := Level{
		ID:          yl.ID,
		Name:        yl.Name,
		Tiles:       yl.Tiles,
		Transparent: yl.Transparent,
		Metadata:    yl.Metadata,
	}

	if yl.Rows != nil {
		tiles, spawn, err := parseRows(yl.Rows, yl.Legend)
		if err != nil {
			return Level{}, err
		}
		level.Tiles = tiles
		level.Spawn = spawn
	}
	if level.Tiles == nil {
		return Level{}, errors.New("level has no tiles or rows")
	}

	// An explicit size is the declared shape; otherwise the grid defines it.
	if yl.Size != nil {
		level.Width, level.Height = yl.Size.W, yl.Size.H
	} else {
		level.Height = len(level.Tiles)
		if level.Height > 0 {
			level.Width = len(level.Tiles[0])
		}
	}

	if yl.Spawn != nil {
		level.Spawn = &Spawn{X: yl.Spawn.X, Y: yl.Spawn.Y, Angle: yl.Spawn.Angle}
	}

	return level, nil
}

// FormatExtensionsYAML returns supported file extensions.
func FormatExtensionsYAML() []string {
	return []string{".yaml", ".yml"}
}
