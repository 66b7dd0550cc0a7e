// Package report turns cast results into human and machine readable output:
// styled tables, YAML documents and per-frame summaries.
package report

import (
	"math"
	"sort"

	"github.com/vovakirdan/tui-raycast/internal/core"
	"github.com/vovakirdan/tui-raycast/internal/raycast"
)

// Frame is one CastRays invocation together with the caster state that
// produced it.
type Frame struct {
	LevelID     string
	X, Y        float64
	Angle       float64 // Radians
	FOV         float64 // Degrees
	RayGap      float64 // Radians
	MaxDistance float64
	Angles      []float64 // Per-ray angle, radians
	Hits        [][]raycast.RayHit
}

// NewFrame captures the caster state alongside its hit lists.
func NewFrame(levelID string, c *raycast.Caster, hits [][]raycast.RayHit) Frame {
	pos := c.Position()
	angles := make([]float64, len(hits))
	if len(hits) > 0 {
		angles[0] = c.RayAngle(0)
		for i := 1; i < len(angles); i++ {
			angles[i] = angles[i-1] + c.RayGap()
		}
	}
	return Frame{
		LevelID:     levelID,
		X:           pos.X,
		Y:           pos.Y,
		Angle:       c.Angle(),
		FOV:         c.FieldOfView(),
		RayGap:      c.RayGap(),
		MaxDistance: c.MaxRayDistance(),
		Angles:      angles,
		Hits:        hits,
	}
}

// TileCount is the number of hits recorded against one tile ID.
type TileCount struct {
	TileID int32
	Hits   int
}

// Summary aggregates a frame.
type Summary struct {
	Rays         int
	RaysWithHits int
	TotalHits    int
	YSideHits    int
	Nearest      float64 // Smallest corrected distance, NaN without hits
	Farthest     float64 // Largest last-hit distance, NaN without hits
	Tiles        []TileCount
}

// Summarize computes aggregate figures for a frame.
func Summarize(f Frame) Summary {
	s := Summary{
		Rays:     len(f.Hits),
		Nearest:  math.NaN(),
		Farthest: math.NaN(),
	}

	counts := make(map[int32]int)
	for _, hits := range f.Hits {
		if len(hits) == 0 {
			continue
		}
		s.RaysWithHits++
		s.TotalHits += len(hits)

		for _, h := range hits {
			counts[h.TileID]++
			if h.IsYSide {
				s.YSideHits++
			}
			if math.IsNaN(s.Nearest) || h.Distance < s.Nearest {
				s.Nearest = h.Distance
			}
		}

		last := hits[len(hits)-1].Distance
		if math.IsNaN(s.Farthest) || last > s.Farthest {
			s.Farthest = last
		}
	}

	for id, n := range counts {
		s.Tiles = append(s.Tiles, TileCount{TileID: id, Hits: n})
	}
	sort.Slice(s.Tiles, func(i, j int) bool {
		if s.Tiles[i].Hits != s.Tiles[j].Hits {
			return s.Tiles[i].Hits > s.Tiles[j].Hits
		}
		return s.Tiles[i].TileID < s.Tiles[j].TileID
	})

	return s
}

// sampleRows picks up to max ray indices spread evenly across n rays,
// always including the first and last. max <= 0 selects every ray.
func sampleRows(n, max int) []int {
	max = core.Clamp(max, 0, n)
	if max == 0 || max == n {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		return idx
	}
	if max == 1 {
		return []int{n / 2}
	}

	idx := make([]int, max)
	for i := range idx {
		idx[i] = i * (n - 1) / (max - 1)
	}
	return idx
}
