// Package raycast implements grid DDA ray casting over a tile map: the data a
// first-person raycasting renderer traces against, and the pure function that
// turns a viewer state into per-column wall hits.
package raycast

import (
	"errors"
	"fmt"
	"sort"
)

// ErrShapeMismatch is matched by every ShapeMismatchError via errors.Is.
var ErrShapeMismatch = errors.New("raycast: tile grid shape mismatch")

// ShapeMismatchError reports a tile grid whose dimensions disagree with the
// declared map size.
type ShapeMismatchError struct {
	ExpectedWidth  int
	ExpectedHeight int
	ActualWidth    int // width of the offending row, or of row 0 on a height mismatch
	ActualHeight   int
	Row            int // first row with the wrong width, -1 if the row count is wrong
}

func (e *ShapeMismatchError) Error() string {
	if e.ExpectedWidth <= 0 || e.ExpectedHeight <= 0 {
		return fmt.Sprintf("raycast: map size %dx%d is not positive", e.ExpectedWidth, e.ExpectedHeight)
	}
	if e.Row < 0 {
		return fmt.Sprintf("raycast: tile grid has %d rows, expected %d (map is %dx%d)",
			e.ActualHeight, e.ExpectedHeight, e.ExpectedWidth, e.ExpectedHeight)
	}
	return fmt.Sprintf("raycast: tile grid row %d has %d columns, expected %d (map is %dx%d)",
		e.Row, e.ActualWidth, e.ExpectedWidth, e.ExpectedWidth, e.ExpectedHeight)
}

// Is lets errors.Is(err, ErrShapeMismatch) match.
func (e *ShapeMismatchError) Is(target error) bool {
	return target == ErrShapeMismatch
}

// TileMap is a fixed-size grid of tile IDs. ID 0 is open space; any other ID
// is an occupied tile. IDs in the transparent set are recorded as hits but do
// not stop a ray.
type TileMap struct {
	width       int
	height      int
	tiles       [][]int32 // tiles[y][x]
	transparent map[int32]struct{}
}

// NewTileMap creates a width x height map. Both dimensions must be positive.
// A nil tiles grid yields an all-zero map; otherwise the grid must have exactly
// height rows of width columns and is copied, so later changes to the caller's
// slices do not leak in.
func NewTileMap(width, height int, tiles [][]int32) (*TileMap, error) {
	if width <= 0 || height <= 0 {
		actualW := 0
		if len(tiles) > 0 {
			actualW = len(tiles[0])
		}
		return nil, &ShapeMismatchError{
			ExpectedWidth:  width,
			ExpectedHeight: height,
			ActualWidth:    actualW,
			ActualHeight:   len(tiles),
			Row:            -1,
		}
	}

	m := &TileMap{
		width:       width,
		height:      height,
		transparent: make(map[int32]struct{}),
	}

	if tiles == nil {
		m.tiles = make([][]int32, height)
		for y := range m.tiles {
			m.tiles[y] = make([]int32, width)
		}
		return m, nil
	}

	if err := m.SetTiles(tiles); err != nil {
		return nil, err
	}
	return m, nil
}

// checkShape validates a grid against the map's declared dimensions.
func (m *TileMap) checkShape(tiles [][]int32) error {
	if len(tiles) != m.height {
		actualW := 0
		if len(tiles) > 0 {
			actualW = len(tiles[0])
		}
		return &ShapeMismatchError{
			ExpectedWidth:  m.width,
			ExpectedHeight: m.height,
			ActualWidth:    actualW,
			ActualHeight:   len(tiles),
			Row:            -1,
		}
	}
	for y, row := range tiles {
		if len(row) != m.width {
			return &ShapeMismatchError{
				ExpectedWidth:  m.width,
				ExpectedHeight: m.height,
				ActualWidth:    len(row),
				ActualHeight:   len(tiles),
				Row:            y,
			}
		}
	}
	return nil
}

// SetTiles replaces the whole grid. The new grid is validated in full before
// anything is swapped, so a failed call leaves the map untouched.
func (m *TileMap) SetTiles(tiles [][]int32) error {
	if err := m.checkShape(tiles); err != nil {
		return err
	}

	next := make([][]int32, len(tiles))
	for y, row := range tiles {
		next[y] = append([]int32(nil), row...)
	}
	m.tiles = next
	return nil
}

// AddTransparentTile marks a tile ID as see-through. Adding an ID twice is a no-op.
func (m *TileMap) AddTransparentTile(id int32) {
	m.transparent[id] = struct{}{}
}

// AddTransparentTiles marks several IDs as see-through.
func (m *TileMap) AddTransparentTiles(ids ...int32) {
	for _, id := range ids {
		m.AddTransparentTile(id)
	}
}

// IsTransparent reports whether id is in the transparent set.
func (m *TileMap) IsTransparent(id int32) bool {
	_, ok := m.transparent[id]
	return ok
}

// TransparentTiles returns the transparent IDs in ascending order.
func (m *TileMap) TransparentTiles() []int32 {
	ids := make([]int32, 0, len(m.transparent))
	for id := range m.transparent {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Width returns the number of columns.
func (m *TileMap) Width() int {
	return m.width
}

// Height returns the number of rows.
func (m *TileMap) Height() int {
	return m.height
}

// Size returns width and height.
func (m *TileMap) Size() (int, int) {
	return m.width, m.height
}

// InBounds returns true if (x, y) lies within [0,width) x [0,height).
func (m *TileMap) InBounds(x, y int) bool {
	return x >= 0 && x < m.width && y >= 0 && y < m.height
}

// Tile returns the ID at (x, y). ok is false outside the grid.
func (m *TileMap) Tile(x, y int) (id int32, ok bool) {
	if !m.InBounds(x, y) {
		return 0, false
	}
	return m.tiles[y][x], true
}

// Tiles returns a copy of the grid, row-major.
func (m *TileMap) Tiles() [][]int32 {
	out := make([][]int32, len(m.tiles))
	for y, row := range m.tiles {
		out[y] = append([]int32(nil), row...)
	}
	return out
}
