// Package levels provides level loading for the raycaster: level files on
// disk or embedded in the binary, turned into tile maps and casters.
// This package depends on raycast but raycast does not depend on levels.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-raycast/internal/core"
	"github.com/vovakirdan/tui-raycast/internal/levels/formats"
	"github.com/vovakirdan/tui-raycast/internal/raycast"
)

// ErrLevelNotFound is returned by LoadByID when no level has the ID.
var ErrLevelNotFound = errors.New("level not found")

//go:embed builtin
var builtinFS embed.FS

// Level represents a complete level definition.
type Level struct {
	ID          string
	Name        string
	Width       int
	Height      int
	Tiles       [][]int32
	Transparent []int32
	Spawn       *formats.Spawn
	Metadata    map[string]string
	FilePath    string
}

// TileMap builds a tile map from the level. A grid that does not match the
// declared size yields a *raycast.ShapeMismatchError.
func (l *Level) TileMap() (*raycast.TileMap, error) {
	m, err := raycast.NewTileMap(l.Width, l.Height, l.Tiles)
	if err != nil {
		return nil, err
	}
	m.AddTransparentTiles(l.Transparent...)
	return m, nil
}

// Validate checks that the level can be turned into a tile map.
func (l *Level) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("level %s: size %dx%d is not positive", l.ID, l.Width, l.Height)
	}
	if _, err := l.TileMap(); err != nil {
		return fmt.Errorf("level %s: %w", l.ID, err)
	}
	return nil
}

// SpawnPose returns the start position and facing angle in radians.
// Levels without a spawn start in the centre of the map facing east.
func (l *Level) SpawnPose() (core.Vec2[float64], float64) {
	if l.Spawn == nil {
		return core.ToFloat(core.V(l.Width, l.Height)).Scale(0.5), 0
	}
	return core.V(l.Spawn.X, l.Spawn.Y), core.Radians(l.Spawn.Angle)
}

// NewCaster creates a caster at the level's spawn pose.
func (l *Level) NewCaster(rays int, fov, maxDistance float64) *raycast.Caster {
	pos, angle := l.SpawnPose()
	return raycast.NewCaster(pos, angle, rays, fov, maxDistance)
}

// Loader handles loading levels from a directory tree.
type Loader struct {
	Root   string
	Logger *log.Logger // optional; receives warnings about skipped files

	fsys fs.FS
}

// NewLoader creates a loader for a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{Root: root, fsys: os.DirFS(root)}
}

// NewBuiltinLoader creates a loader over the levels embedded in the binary.
func NewBuiltinLoader() *Loader {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		// fs.Sub only fails on an invalid path literal.
		panic(err)
	}
	return &Loader{Root: "builtin", fsys: sub}
}

// LoadAll recursively scans and loads all level files.
// Files that fail to parse or validate are skipped with a warning.
// Returns levels sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	err := fs.WalkDir(l.filesystem(), ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		if !formats.Supported(path.Ext(p)) {
			return nil
		}

		level, err := l.LoadFile(p)
		if err != nil {
			l.warn("skipping level file", "path", l.display(p), "error", err)
			return nil
		}
		if err := level.Validate(); err != nil {
			l.warn("skipping invalid level", "path", l.display(p), "error", err)
			return nil
		}

		levels = append(levels, level)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	// Sort by ID for determinism
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})

	return levels, nil
}

// LoadFile loads a single level file, relative to the loader root.
// Shape is not validated; call Validate or TileMap for that.
func (l *Loader) LoadFile(p string) (Level, error) {
	data, err := fs.ReadFile(l.filesystem(), p)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", l.display(p), err)
	}
	return parse(data, p, l.display(p))
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}

	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}

	return Level{}, fmt.Errorf("%w: %s", ErrLevelNotFound, id)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

// ReadFile loads a level from an arbitrary path on disk.
func ReadFile(p string) (Level, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", p, err)
	}
	return parse(data, p, p)
}

// parse dispatches on the file extension. Files without an id take their
// base name as the ID.
func parse(data []byte, p, display string) (Level, error) {
	ext := strings.ToLower(path.Ext(p))
	parsed, err := formats.Parse(data, ext)
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", display, err)
	}

	id := parsed.ID
	if id == "" {
		id = strings.TrimSuffix(path.Base(strings.ReplaceAll(p, "\\", "/")), path.Ext(p))
	}

	return Level{
		ID:          id,
		Name:        parsed.Name,
		Width:       parsed.Width,
		Height:      parsed.Height,
		Tiles:       parsed.Tiles,
		Transparent: parsed.Transparent,
		Spawn:       parsed.Spawn,
		Metadata:    parsed.Metadata,
		FilePath:    display,
	}, nil
}

// filesystem returns the loader's file system, defaulting to Root on disk
// for loaders built as struct literals.
func (l *Loader) filesystem() fs.FS {
	if l.fsys == nil {
		l.fsys = os.DirFS(l.Root)
	}
	return l.fsys
}

func (l *Loader) display(p string) string {
	return path.Join(l.Root, p)
}

func (l *Loader) warn(msg string, keyvals ...any) {
	if l.Logger != nil {
		l.Logger.Warn(msg, keyvals...)
	}
}
