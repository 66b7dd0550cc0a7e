package raycast

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/vovakirdan/tui-raycast/internal/core"
)

const tolerance = 1e-6

// mustMap builds a TileMap from rows or fails the test.
func mustMap(t *testing.T, tiles [][]int32) *TileMap {
	t.Helper()
	m, err := NewTileMap(len(tiles[0]), len(tiles), tiles)
	if err != nil {
		t.Fatalf("NewTileMap() failed: %v", err)
	}
	return m
}

// room returns a w x h map enclosed by walls of ID 1.
func room(t *testing.T, w, h int) *TileMap {
	t.Helper()
	tiles := make([][]int32, h)
	for y := range tiles {
		tiles[y] = make([]int32, w)
		for x := range tiles[y] {
			if x == 0 || y == 0 || x == w-1 || y == h-1 {
				tiles[y][x] = 1
			}
		}
	}
	return mustMap(t, tiles)
}

// corridor returns a 5x5 empty map with the given tiles placed on row 2.
func corridor(t *testing.T, row map[int]int32) *TileMap {
	t.Helper()
	tiles := make([][]int32, 5)
	for y := range tiles {
		tiles[y] = make([]int32, 5)
	}
	for x, id := range row {
		tiles[2][x] = id
	}
	return mustMap(t, tiles)
}

func approx(a, b float64) bool {
	return math.Abs(a-b) <= tolerance
}

func TestCastRaysEmptyGrid(t *testing.T) {
	m, _ := NewTileMap(6, 6, nil)

	casters := []*Caster{
		NewCaster(core.V(3.5, 3.5), 0, 10, 60, 20),
		NewCaster(core.V(0.1, 5.9), 2.1, 7, 90, 5),
		NewCaster(core.V(-4.0, 12.0), -1.0, 3, 45, 30),
	}

	for _, c := range casters {
		results := CastRays(m, c)
		if len(results) != c.RayCount() {
			t.Fatalf("len(CastRays()) = %d, expected %d", len(results), c.RayCount())
		}
		for i, hits := range results {
			if len(hits) != 0 {
				t.Errorf("ray %d has %d hits on an empty grid", i, len(hits))
			}
		}
	}
}

func TestCastRaysZeroRays(t *testing.T) {
	m := room(t, 5, 5)
	c := NewCaster(core.V(2.5, 2.5), 0, 0, 60, 10)

	if c.RayGap() != 0 {
		t.Errorf("RayGap() = %v, expected 0", c.RayGap())
	}
	results := CastRays(m, c)
	if results == nil || len(results) != 0 {
		t.Errorf("CastRays() = %v, expected empty non-nil slice", results)
	}
}

func TestCastRaySingleOpaqueTileAhead(t *testing.T) {
	m := corridor(t, map[int]int32{4: 1})
	c := NewCaster(core.V(1.5, 2.5), 0, 2, 60, 10)

	// With two rays the second one points straight along the facing angle.
	results := CastRays(m, c)
	hits := results[1]
	if len(hits) != 1 {
		t.Fatalf("central ray has %d hits, expected 1", len(hits))
	}

	hit := hits[0]
	if hit.TileID != 1 {
		t.Errorf("TileID = %d, expected 1", hit.TileID)
	}
	// Boundary of the tile at x=4 is 2.5 units away.
	if !approx(hit.Distance, 2.5) {
		t.Errorf("Distance = %v, expected 2.5", hit.Distance)
	}
	if !approx(hit.RawDistance, hit.Distance) {
		t.Errorf("RawDistance = %v, expected it to equal Distance for the central ray", hit.RawDistance)
	}
	if hit.IsYSide {
		t.Error("IsYSide = true, expected a vertical grid line crossing")
	}
	if hit.Cell != core.V(4, 2) {
		t.Errorf("Cell = %v, expected (4, 2)", hit.Cell)
	}
	if !approx(hit.Point.X, 4.0) || !approx(hit.Point.Y, 2.5+Epsilon*hit.RawDistance) {
		t.Errorf("Point = %v, expected (4, ~2.5)", hit.Point)
	}
	// sin(0) is exactly zero and gets replaced by Epsilon.
	if hit.DirY != Epsilon || !approx(hit.DirX, 1) {
		t.Errorf("direction = (%v, %v), expected (1, %v)", hit.DirX, hit.DirY, Epsilon)
	}
}

func TestCastRayNegativeZeroAngle(t *testing.T) {
	m := corridor(t, map[int]int32{4: 1})
	c := NewCaster(core.V(1.5, 2.5), 0, 1, 60, 10)

	// sin(-0) is -0, which is replaced by the same positive Epsilon as +0.
	hits := CastRay(m, c, math.Copysign(0, -1))
	if len(hits) != 1 {
		t.Fatalf("got %d hits, expected 1", len(hits))
	}
	hit := hits[0]
	if hit.DirY != Epsilon || math.Signbit(hit.DirY) {
		t.Errorf("DirY = %v, expected +%v", hit.DirY, Epsilon)
	}
	if hit.Cell != core.V(4, 2) {
		t.Errorf("Cell = %v, expected (4, 2)", hit.Cell)
	}
	if hit.Point.Y <= 2.5 {
		t.Errorf("Point.Y = %v, expected the ray to drift toward +y", hit.Point.Y)
	}
}

func TestCastRayStopsAtFirstOpaqueTile(t *testing.T) {
	m := corridor(t, map[int]int32{3: 1, 4: 2})
	c := NewCaster(core.V(1.5, 2.5), 0, 1, 60, 10)

	hits := CastRay(m, c, 0)
	if len(hits) != 1 {
		t.Fatalf("got %d hits, expected 1", len(hits))
	}
	if hits[0].TileID != 1 || !approx(hits[0].Distance, 1.5) {
		t.Errorf("hit = %+v, expected tile 1 at 1.5", hits[0])
	}
}

func TestCastRayTransparentTiles(t *testing.T) {
	tests := []struct {
		name string
		row  map[int]int32
		want []RayHit
	}{
		{
			name: "window then wall",
			row:  map[int]int32{2: 5, 4: 1},
			want: []RayHit{
				{TileID: 5, Distance: 0.5},
				{TileID: 1, Distance: 2.5},
			},
		},
		{
			name: "thick window recorded once",
			row:  map[int]int32{2: 5, 3: 5, 4: 1},
			want: []RayHit{
				{TileID: 5, Distance: 0.5},
				{TileID: 1, Distance: 2.5},
			},
		},
		{
			name: "open space resets the window",
			row:  map[int]int32{2: 5, 4: 5},
			want: []RayHit{
				{TileID: 5, Distance: 0.5},
				{TileID: 5, Distance: 2.5},
			},
		},
		{
			name: "different transparent tiles back to back",
			row:  map[int]int32{2: 5, 3: 6, 4: 1},
			want: []RayHit{
				{TileID: 5, Distance: 0.5},
				{TileID: 6, Distance: 1.5},
				{TileID: 1, Distance: 2.5},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := corridor(t, tc.row)
			m.AddTransparentTiles(5, 6)
			c := NewCaster(core.V(1.5, 2.5), 0, 1, 60, 10)

			got := CastRay(m, c, 0)
			opts := cmp.Options{
				cmpopts.IgnoreFields(RayHit{}, "DirX", "DirY", "IsYSide", "RawDistance", "Cell", "Point"),
				cmpopts.EquateApprox(0, tolerance),
			}
			if diff := cmp.Diff(tc.want, got, opts); diff != "" {
				t.Errorf("hits mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCastRayRangeExhausted(t *testing.T) {
	m := corridor(t, map[int]int32{4: 1})
	c := NewCaster(core.V(1.5, 2.5), 0, 1, 60, 1.0)

	if hits := CastRay(m, c, 0); len(hits) != 0 {
		t.Errorf("got %d hits, expected none beyond max range", len(hits))
	}
}

func TestCastRayOutsideGridKeepsStepping(t *testing.T) {
	m := corridor(t, map[int]int32{1: 1})
	c := NewCaster(core.V(-3.5, 2.5), 0, 1, 60, 10)

	hits := CastRay(m, c, 0)
	if len(hits) != 1 {
		t.Fatalf("got %d hits, expected the ray to re-enter the grid and hit", len(hits))
	}
	if !approx(hits[0].Distance, 4.5) {
		t.Errorf("Distance = %v, expected 4.5", hits[0].Distance)
	}
}

func TestCastRayNegativeStartUsesFloor(t *testing.T) {
	m := corridor(t, map[int]int32{0: 1})
	c := NewCaster(core.V(-0.5, 2.5), 0, 1, 60, 10)

	hits := CastRay(m, c, 0)
	if len(hits) != 1 || !approx(hits[0].Distance, 0.5) {
		t.Fatalf("hits = %+v, expected tile at x=0 at distance 0.5", hits)
	}
}

func TestCastRayZeroDistanceClamped(t *testing.T) {
	m := corridor(t, map[int]int32{1: 1})
	// Standing exactly on the grid line shared with the wall, facing it.
	c := NewCaster(core.V(2.0, 2.5), math.Pi, 1, 60, 10)

	hits := CastRay(m, c, math.Pi)
	if len(hits) != 1 {
		t.Fatalf("got %d hits, expected 1", len(hits))
	}
	if !approx(hits[0].Distance, Epsilon) {
		t.Errorf("Distance = %v, expected %v", hits[0].Distance, Epsilon)
	}
}

func TestCastRayFisheyeCorrection(t *testing.T) {
	m := room(t, 12, 12)
	c := NewCaster(core.V(6.5, 6.5), 0, 1, 60, 20)

	off := 0.4
	hits := CastRay(m, c, off)
	if len(hits) != 1 {
		t.Fatalf("got %d hits, expected 1", len(hits))
	}
	hit := hits[0]
	if !approx(hit.Distance, hit.RawDistance*math.Cos(off)) {
		t.Errorf("Distance = %v, expected RawDistance*cos(%v) = %v", hit.Distance, off, hit.RawDistance*math.Cos(off))
	}
	// The wall at x=11 starts 4.5 units ahead; perpendicular distance is exactly that.
	if !approx(hit.Distance, 4.5) {
		t.Errorf("Distance = %v, expected 4.5", hit.Distance)
	}
}

func TestCastRaysAdjacentAngles(t *testing.T) {
	m := room(t, 10, 10)
	c := NewCaster(core.V(4.3, 5.7), 0.3, 8, 60, 20)

	results := CastRays(m, c)
	if len(results) != 8 {
		t.Fatalf("len(CastRays()) = %d, expected 8", len(results))
	}

	for i := 1; i < len(results); i++ {
		if len(results[i-1]) == 0 || len(results[i]) == 0 {
			t.Fatalf("ray %d or %d has no hits in an enclosed room", i-1, i)
		}
		a, b := results[i-1][0], results[i][0]
		cross := a.DirX*b.DirY - a.DirY*b.DirX
		dot := a.DirX*b.DirX + a.DirY*b.DirY
		if got := math.Atan2(cross, dot); !approx(got, c.RayGap()) {
			t.Errorf("angle between rays %d and %d = %v, expected %v", i-1, i, got, c.RayGap())
		}
	}

	if !approx(c.RayGap(), core.Radians(60.0/8)) {
		t.Errorf("RayGap() = %v, expected %v", c.RayGap(), core.Radians(60.0/8))
	}
	if !approx(c.RayAngle(0), 0.3-core.Radians(30.0)) {
		t.Errorf("RayAngle(0) = %v, expected left edge of the field of view", c.RayAngle(0))
	}
}

func TestCastRaysReflectsCasterUpdates(t *testing.T) {
	m := room(t, 10, 10)
	c := NewCaster(core.V(5.5, 5.5), 0, 2, 60, 20)

	steps := []struct {
		name     string
		apply    func()
		expected float64
	}{
		{"initial", func() {}, 3.5},
		{"moved west", func() { c.SetPosition(2.5, 5.5) }, 6.5},
		{"turned around", func() { c.SetAngle(math.Pi) }, 1.5},
		{"moved back", func() { c.SetPosition(5.5, 5.5) }, 4.5},
	}

	for _, s := range steps {
		s.apply()
		results := CastRays(m, c)
		central := results[1]
		if len(central) != 1 {
			t.Fatalf("%s: central ray has %d hits, expected 1", s.name, len(central))
		}
		if !approx(central[0].Distance, s.expected) {
			t.Errorf("%s: Distance = %v, expected %v", s.name, central[0].Distance, s.expected)
		}
	}
}

func TestCastRaysDoesNotMutateInputs(t *testing.T) {
	m := room(t, 8, 8)
	m.AddTransparentTile(1)
	c := NewCaster(core.V(3.5, 3.5), 1.0, 16, 90, 10)

	before := m.Tiles()
	pos, angle := c.Position(), c.Angle()

	first := CastRays(m, c)
	second := CastRays(m, c)

	if diff := cmp.Diff(before, m.Tiles()); diff != "" {
		t.Errorf("tiles changed (-before +after):\n%s", diff)
	}
	if c.Position() != pos || c.Angle() != angle {
		t.Error("caster state changed during CastRays")
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated CastRays differ (-first +second):\n%s", diff)
	}
}
