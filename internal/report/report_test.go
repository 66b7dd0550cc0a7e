package report

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-raycast/internal/core"
	"github.com/vovakirdan/tui-raycast/internal/raycast"
)

// testFrame has three rays: a window then a wall, nothing, and a single wall
// hit on a horizontal grid line.
func testFrame() Frame {
	return Frame{
		LevelID:     "test",
		X:           1.5,
		Y:           2.5,
		Angle:       0,
		FOV:         60,
		RayGap:      core.Radians(20.0),
		MaxDistance: 8,
		Angles:      []float64{core.Radians(-30.0), core.Radians(-10.0), core.Radians(10.0)},
		Hits: [][]raycast.RayHit{
			{
				{TileID: 5, Distance: 2.5, DirX: 1},
				{TileID: 1, Distance: 4.5, DirX: 1},
			},
			{},
			{
				{TileID: 1, Distance: 1.25, DirY: 1, IsYSide: true},
			},
		},
	}
}

func TestSummarize(t *testing.T) {
	got := Summarize(testFrame())

	want := Summary{
		Rays:         3,
		RaysWithHits: 2,
		TotalHits:    3,
		YSideHits:    1,
		Nearest:      1.25,
		Farthest:     4.5,
		Tiles: []TileCount{
			{TileID: 1, Hits: 2},
			{TileID: 5, Hits: 1},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Summarize() mismatch (-want +got):\n%s", diff)
	}
}

func TestSummarizeNoHits(t *testing.T) {
	got := Summarize(Frame{Hits: [][]raycast.RayHit{{}, {}}})

	if got.Rays != 2 || got.RaysWithHits != 0 || got.TotalHits != 0 {
		t.Errorf("Summarize() = %+v, expected 2 rays and no hits", got)
	}
	if !math.IsNaN(got.Nearest) || !math.IsNaN(got.Farthest) {
		t.Errorf("Nearest/Farthest = %v/%v, expected NaN", got.Nearest, got.Farthest)
	}
	if len(got.Tiles) != 0 {
		t.Errorf("Tiles = %v, expected none", got.Tiles)
	}
}

func TestSampleRows(t *testing.T) {
	tests := []struct {
		name string
		n    int
		max  int
		want []int
	}{
		{"all when unlimited", 4, 0, []int{0, 1, 2, 3}},
		{"all when max exceeds", 3, 10, []int{0, 1, 2}},
		{"evenly spread", 5, 3, []int{0, 2, 4}},
		{"first and last", 9, 2, []int{0, 8}},
		{"single picks middle", 5, 1, []int{2}},
		{"no rays", 0, 3, []int{}},
		{"negative max selects all", 3, -4, []int{0, 1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sampleRows(tt.n, tt.max)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("sampleRows(%d, %d) mismatch (-want +got):\n%s", tt.n, tt.max, diff)
			}
		})
	}
}

func TestTable(t *testing.T) {
	out := Table(testFrame(), Options{Precision: 3})

	for _, want := range []string{
		"level", "test",
		"RAY", "ANGLE°", "HITS",
		"5@2.500x 1@4.500x",
		"1@1.250y",
		"-30.00",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Table() missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "showing") {
		t.Errorf("Table() reported sampling when every ray is shown:\n%s", out)
	}
}

func TestTableSampled(t *testing.T) {
	out := Table(testFrame(), Options{MaxRays: 2, Precision: 2})

	if !strings.Contains(out, "showing 2 of 3 rays") {
		t.Errorf("Table() missing sampling note:\n%s", out)
	}
	// First and last rays are kept, the empty middle ray is dropped.
	if !strings.Contains(out, "5@2.50x") || !strings.Contains(out, "1@1.25y") {
		t.Errorf("Table() missing sampled rows:\n%s", out)
	}
}

func TestHeader(t *testing.T) {
	tests := []struct {
		name      string
		angle     float64
		precision int
		want      []string
	}{
		{"facing east", 0, 2, []string{"0.00°", "(1.50, 2.50)"}},
		{"negative angle wraps", -math.Pi / 2, 1, []string{"270.00°", "(1.5, 2.5)"}},
		{"full turn wraps", 2*math.Pi + math.Pi/4, 0, []string{"45.00°", "(2, 2)"}},
		{"negative precision clamps to zero", math.Pi, -3, []string{"180.00°", "range 8"}},
		{"huge precision clamps", 0, 40, []string{"(1.500000000000, 2.500000000000)"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := testFrame()
			f.Angle = tt.angle

			out := Header(f, Options{Precision: tt.precision})
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("Header() missing %q in %q", want, out)
				}
			}
		})
	}
}

func TestSummaryText(t *testing.T) {
	f := testFrame()
	out := SummaryText(f, Summarize(f), Options{Precision: 2})

	for _, want := range []string{"2 / 3", "1.25", "4.50", "1×2 5×1"} {
		if !strings.Contains(out, want) {
			t.Errorf("SummaryText() missing %q in:\n%s", want, out)
		}
	}
}

func TestYAML(t *testing.T) {
	f := testFrame()

	data, err := YAML(f)
	if err != nil {
		t.Fatalf("YAML() failed: %v", err)
	}

	var got YAMLFrame
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatalf("output is not valid YAML: %v\n%s", err, data)
	}
	if diff := cmp.Diff(ToYAMLFrame(f), got); diff != "" {
		t.Errorf("YAML() round trip mismatch (-want +got):\n%s", diff)
	}
	if got.Rays[1].Hits == nil || len(got.Rays[1].Hits) != 0 {
		t.Errorf("empty ray hits = %v, expected an empty list", got.Rays[1].Hits)
	}
	if !strings.Contains(string(data), "y_side: true") {
		t.Errorf("YAML() missing y_side flag:\n%s", data)
	}
}

func TestNewFrame(t *testing.T) {
	m, err := raycast.NewTileMap(4, 3, [][]int32{
		{1, 1, 1, 1},
		{1, 0, 0, 1},
		{1, 1, 1, 1},
	})
	if err != nil {
		t.Fatalf("NewTileMap() failed: %v", err)
	}
	c := raycast.NewCaster(core.V(1.5, 1.5), 0, 4, 60, 10)
	hits := raycast.CastRays(m, c)

	f := NewFrame("box", c, hits)

	if f.LevelID != "box" || f.X != 1.5 || f.Y != 1.5 || f.FOV != 60 || f.MaxDistance != 10 {
		t.Errorf("NewFrame() = %+v, expected caster state copied", f)
	}
	if len(f.Angles) != 4 {
		t.Fatalf("len(Angles) = %d, expected 4", len(f.Angles))
	}
	for i := range f.Angles {
		if f.Angles[i] != c.RayAngle(i) {
			t.Errorf("Angles[%d] = %v, expected %v", i, f.Angles[i], c.RayAngle(i))
		}
	}
	if s := Summarize(f); s.RaysWithHits != 4 {
		t.Errorf("RaysWithHits = %d, expected every ray to hit the box", s.RaysWithHits)
	}
}
