// Package formats provides pluggable level file format parsers.
// Each format registers itself by file extension in an init() function.
package formats

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-raycast/internal/registry"
)

// Spawn is the viewer start pose stored in a level file.
type Spawn struct {
	X     float64
	Y     float64
	Angle float64 // Degrees
}

// Level represents a parsed level ready for use. Tiles are not checked
// against Width and Height here; that happens when the tile map is built.
type Level struct {
	ID          string
	Name        string
	Width       int
	Height      int
	Tiles       [][]int32
	Transparent []int32
	Spawn       *Spawn
	Metadata    map[string]string
}

// Parser turns raw file contents into a Level.
type Parser func(data []byte) (Level, error)

// Format describes a registered level file format.
type Format struct {
	Name  string
	Parse Parser
}

var formats = registry.New[Format]("format")

// Register makes a format available for each of the given extensions.
// Extensions are matched case-insensitively and include the dot.
func Register(f Format, exts ...string) {
	for _, ext := range exts {
		formats.Register(strings.ToLower(ext), f.Name, f)
	}
}

// ByExtension returns the format registered for ext.
func ByExtension(ext string) (Format, error) {
	return formats.Get(strings.ToLower(ext))
}

// Supported reports whether a format is registered for ext.
func Supported(ext string) bool {
	return formats.Exists(strings.ToLower(ext))
}

// Extensions returns all registered extensions, sorted.
func Extensions() []string {
	infos := formats.List()
	exts := make([]string, len(infos))
	for i, info := range infos {
		exts[i] = info.ID
	}
	return exts
}

// Parse parses data using the format registered for ext.
func Parse(data []byte, ext string) (Level, error) {
	f, err := ByExtension(ext)
	if err != nil {
		return Level{}, err
	}
	lvl, err := f.Parse(data)
	if err != nil {
		return Level{}, fmt.Errorf("%s: %w", f.Name, err)
	}
	return lvl, nil
}

// glyphTile maps a grid character to a tile ID using the legend first,
// then the built-in glyphs: '.', ' ' and '@' are open space, '#' is 1 and
// digits are their own value.
func glyphTile(r rune, legend map[string]int32) (int32, error) {
	if id, ok := legend[string(r)]; ok {
		return id, nil
	}
	switch {
	case r == '.' || r == ' ' || r == '@':
		return 0, nil
	case r == '#':
		return 1, nil
	case r >= '0' && r <= '9':
		return int32(r - '0'), nil
	}
	return 0, fmt.Errorf("unknown tile glyph %q", r)
}

// parseRows converts character rows to tile IDs. The first '@' found becomes
// the spawn point at the centre of its cell.
func parseRows(rows []string, legend map[string]int32) ([][]int32, *Spawn, error) {
	var spawn *Spawn
	tiles := make([][]int32, len(rows))
	for y, row := range rows {
		tiles[y] = make([]int32, 0, len(row))
		x := 0
		for _, r := range row {
			id, err := glyphTile(r, legend)
			if err != nil {
				return nil, nil, fmt.Errorf("row %d column %d: %w", y, x, err)
			}
			if r == '@' && spawn == nil {
				spawn = &Spawn{X: float64(x) + 0.5, Y: float64(y) + 0.5}
			}
			tiles[y] = append(tiles[y], id)
			x++
		}
	}
	return tiles, spawn, nil
}
