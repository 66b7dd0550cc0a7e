package core

import "math"

// Vec2 is a two-component value with componentwise arithmetic.
// Float instantiations carry positions and directions, integer ones carry
// grid cells and grid steps.
type Vec2[T Number] struct {
	X, Y T
}

// V creates a new vector.
func V[T Number](x, y T) Vec2[T] {
	return Vec2[T]{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2[T]) Add(o Vec2[T]) Vec2[T] {
	return Vec2[T]{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2[T]) Sub(o Vec2[T]) Vec2[T] {
	return Vec2[T]{X: v.X - o.X, Y: v.Y - o.Y}
}

// Mul returns the componentwise product of v and o.
func (v Vec2[T]) Mul(o Vec2[T]) Vec2[T] {
	return Vec2[T]{X: v.X * o.X, Y: v.Y * o.Y}
}

// Scale multiplies both components by s.
func (v Vec2[T]) Scale(s T) Vec2[T] {
	return Vec2[T]{X: v.X * s, Y: v.Y * s}
}

// Floor maps a float vector to the grid cell containing it.
func Floor(v Vec2[float64]) Vec2[int] {
	return Vec2[int]{X: FloorInt(v.X), Y: FloorInt(v.Y)}
}

// ToFloat converts any vector to float64 components.
func ToFloat[T Number](v Vec2[T]) Vec2[float64] {
	return Vec2[float64]{X: float64(v.X), Y: float64(v.Y)}
}

// FromAngle returns the unit direction for an angle in radians.
func FromAngle(a float64) Vec2[float64] {
	return Vec2[float64]{X: math.Cos(a), Y: math.Sin(a)}
}
