package report

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLFrame is the document written by YAML.
type YAMLFrame struct {
	Level  string     `yaml:"level"`
	Caster YAMLCaster `yaml:"caster"`
	Rays   []YAMLRay  `yaml:"rays"`
}

// YAMLCaster is the caster state. Angles are radians, FOV is degrees.
type YAMLCaster struct {
	X           float64 `yaml:"x"`
	Y           float64 `yaml:"y"`
	Angle       float64 `yaml:"angle"`
	FOV         float64 `yaml:"fov"`
	RayGap      float64 `yaml:"ray_gap"`
	MaxDistance float64 `yaml:"max_distance"`
}

// YAMLRay is one ray and its hits, nearest first.
type YAMLRay struct {
	Index int       `yaml:"index"`
	Angle float64   `yaml:"angle"`
	Hits  []YAMLHit `yaml:"hits"`
}

// YAMLHit mirrors raycast.RayHit.
type YAMLHit struct {
	Tile        int32      `yaml:"tile"`
	Distance    float64    `yaml:"distance"`
	RawDistance float64    `yaml:"raw_distance"`
	Dir         [2]float64 `yaml:"dir,flow"`
	YSide       bool       `yaml:"y_side"`
	Cell        [2]int     `yaml:"cell,flow"`
	Point       [2]float64 `yaml:"point,flow"`
}

// ToYAMLFrame converts a frame to its document form.
func ToYAMLFrame(f Frame) YAMLFrame {
	doc := YAMLFrame{
		Level: f.LevelID,
		Caster: YAMLCaster{
			X:           f.X,
			Y:           f.Y,
			Angle:       f.Angle,
			FOV:         f.FOV,
			RayGap:      f.RayGap,
			MaxDistance: f.MaxDistance,
		},
		Rays: make([]YAMLRay, len(f.Hits)),
	}

	for i, hits := range f.Hits {
		ray := YAMLRay{
			Index: i,
			Angle: f.Angles[i],
			Hits:  make([]YAMLHit, len(hits)),
		}
		for j, h := range hits {
			ray.Hits[j] = YAMLHit{
				Tile:        h.TileID,
				Distance:    h.Distance,
				RawDistance: h.RawDistance,
				Dir:         [2]float64{h.DirX, h.DirY},
				YSide:       h.IsYSide,
				Cell:        [2]int{h.Cell.X, h.Cell.Y},
				Point:       [2]float64{h.Point.X, h.Point.Y},
			}
		}
		doc.Rays[i] = ray
	}

	return doc
}

// YAML encodes a frame as a YAML document.
func YAML(f Frame) ([]byte, error) {
	out, err := yaml.Marshal(ToYAMLFrame(f))
	if err != nil {
		return nil, fmt.Errorf("report: yaml marshal: %w", err)
	}
	return out, nil
}
