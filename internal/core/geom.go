// Package core provides fundamental value types and numeric helpers shared by
// the raycaster and its host tooling. It has no dependencies on the CLI,
// storage or output layers, which keeps the ray-casting math pure and testable.
package core

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Number is the set of numeric kinds the helpers in this package accept.
type Number interface {
	constraints.Integer | constraints.Float
}

// Clamp restricts a value to be within [lo, hi].
func Clamp[T Number](val, lo, hi T) T {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// Radians converts degrees to radians.
func Radians[T Number](deg T) float64 {
	return float64(deg) * (math.Pi / 180)
}

// Degrees converts radians to degrees.
func Degrees[T Number](rad T) float64 {
	return float64(rad) * (180 / math.Pi)
}

// FloorInt returns the largest integer not greater than f.
// Unlike int(f) this rounds toward negative infinity, so -0.25 maps to -1.
func FloorInt(f float64) int {
	return int(math.Floor(f))
}

// NormalizeAngle wraps an angle in radians into [0, 2π).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
