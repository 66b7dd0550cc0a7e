package raycast

import (
	"math"

	"github.com/vovakirdan/tui-raycast/internal/core"
)

// Epsilon stands in for an exactly-zero ray direction component (so the slope
// math never divides by zero) and for a zero hit distance. The substitute is
// always +Epsilon, even for a negative zero, so such a ray steps toward +x or +y.
const Epsilon = 1e-4

// RayHit is one tile intersection along a ray.
type RayHit struct {
	TileID   int32
	Distance float64 // camera-perpendicular (fisheye corrected)
	DirX     float64
	DirY     float64
	IsYSide  bool // crossed a horizontal grid line

	RawDistance float64            // distance along the ray before fisheye correction
	Cell        core.Vec2[int]     // grid cell of the hit tile
	Point       core.Vec2[float64] // where the ray entered Cell
}

// CastRays casts caster.RayCount() rays left to right across the field of
// view and returns one hit list per ray, each ordered nearest first. A list
// is empty when nothing was hit within range. Neither argument is modified.
//
// Steps that leave the map do not end a ray: it keeps stepping through the
// void until its distance budget runs out, and may re-enter the grid.
func CastRays(m *TileMap, c *Caster) [][]RayHit {
	if c.rayCount <= 0 {
		return [][]RayHit{}
	}

	results := make([][]RayHit, c.rayCount)
	rayAngle := c.firstRayAngle()
	for i := range results {
		results[i] = CastRay(m, c, rayAngle)
		rayAngle += c.rayGap
	}
	return results
}

// CastRay traces a single ray from the caster's position at rayAngle.
// Distances are fisheye corrected against the caster's facing angle.
func CastRay(m *TileMap, c *Caster, rayAngle float64) []RayHit {
	dir := core.FromAngle(rayAngle)
	if dir.X == 0 {
		dir.X = Epsilon
	}
	if dir.Y == 0 {
		dir.Y = Epsilon
	}

	// Distance along the ray to cross one full cell on each axis.
	step := core.V(
		math.Sqrt(1+(dir.Y/dir.X)*(dir.Y/dir.X)),
		math.Sqrt(1+(dir.X/dir.Y)*(dir.X/dir.Y)),
	)

	pos := c.pos
	cell := core.Floor(pos)

	gridStep := core.V(-1, -1)
	if dir.X > 0 {
		gridStep.X = 1
	}
	if dir.Y > 0 {
		gridStep.Y = 1
	}

	// Distance to the first grid line on each axis, from inside the start cell.
	var side core.Vec2[float64]
	if dir.X >= 0 {
		side.X = (float64(cell.X+1) - pos.X) * step.X
	} else {
		side.X = (pos.X - float64(cell.X)) * step.X
	}
	if dir.Y >= 0 {
		side.Y = (float64(cell.Y+1) - pos.Y) * step.Y
	} else {
		side.Y = (pos.Y - float64(cell.Y)) * step.Y
	}

	fisheye := math.Cos(rayAngle - c.angle)

	var (
		hits     []RayHit
		distance float64
		ySide    bool
		ignored  int32
		ignoring bool
	)
	for distance < c.maxRayDistance {
		distance = math.Min(side.X, side.Y)

		if side.X <= side.Y {
			ySide = false
			side.X += step.X
			cell.X += gridStep.X
		} else {
			ySide = true
			side.Y += step.Y
			cell.Y += gridStep.Y
		}

		tile, ok := m.Tile(cell.X, cell.Y)
		if !ok {
			continue
		}
		if tile == 0 {
			ignoring = false
			continue
		}
		if ignoring && tile == ignored {
			continue
		}

		if distance == 0 {
			distance = Epsilon
		}
		raw := distance
		distance *= fisheye

		hits = append(hits, RayHit{
			TileID:      tile,
			Distance:    distance,
			DirX:        dir.X,
			DirY:        dir.Y,
			IsYSide:     ySide,
			RawDistance: raw,
			Cell:        cell,
			Point:       pos.Add(dir.Scale(raw)),
		})

		if !m.IsTransparent(tile) {
			break
		}
		ignored, ignoring = tile, true
	}

	if hits == nil {
		hits = []RayHit{}
	}
	return hits
}
