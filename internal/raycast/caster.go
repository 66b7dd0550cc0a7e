package raycast

import (
	"github.com/vovakirdan/tui-raycast/internal/core"
)

// Caster is the viewer state rays are cast from.
type Caster struct {
	pos            core.Vec2[float64] // grid units; the fraction is the offset inside a cell
	angle          float64            // radians
	fov            float64            // degrees
	rayCount       int
	rayGap         float64 // radians between adjacent rays
	maxRayDistance float64
}

// NewCaster creates a caster. The angular gap between rays is derived here
// once from fov and rayCount; neither has a setter, so it never goes stale.
// A rayCount <= 0 gives a zero gap and CastRays returns no rays.
func NewCaster(pos core.Vec2[float64], angle float64, rayCount int, fov, maxRayDistance float64) *Caster {
	var gap float64
	if rayCount > 0 {
		gap = core.Radians(fov / float64(rayCount))
	}
	return &Caster{
		pos:            pos,
		angle:          angle,
		fov:            fov,
		rayCount:       rayCount,
		rayGap:         gap,
		maxRayDistance: maxRayDistance,
	}
}

// SetPosition moves the caster.
func (c *Caster) SetPosition(x, y float64) {
	c.pos = core.V(x, y)
}

// SetAngle turns the caster. Any real angle is accepted.
func (c *Caster) SetAngle(angle float64) {
	c.angle = angle
}

func (c *Caster) Position() core.Vec2[float64] { return c.pos }
func (c *Caster) Angle() float64               { return c.angle }
func (c *Caster) FieldOfView() float64         { return c.fov }
func (c *Caster) RayCount() int                { return c.rayCount }
func (c *Caster) RayGap() float64              { return c.rayGap }
func (c *Caster) MaxRayDistance() float64      { return c.maxRayDistance }

// firstRayAngle is the angle of the leftmost ray.
func (c *Caster) firstRayAngle() float64 {
	return c.angle - core.Radians(c.fov/2)
}

// RayAngle returns the angle of ray i, accumulated the same way CastRays
// steps across the field of view.
func (c *Caster) RayAngle(i int) float64 {
	a := c.firstRayAngle()
	for n := 0; n < i; n++ {
		a += c.rayGap
	}
	return a
}
