package systems

import (
	"math"
	"math/rand"
)

// Vec2 is a 2D point or vector in surface pixels.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Rotate returns v rotated by angle radians around the origin.
func (v Vec2) Rotate(angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{v.X*cos - v.Y*sin, v.X*sin + v.Y*cos}
}

// Bounds is the rectangle [0, Width] x [0, Height] that entities are confined to.
type Bounds struct {
	Width, Height float64
}

// Valid reports whether the bounds have a positive area.
func (b Bounds) Valid() bool {
	return b.Width > 0 && b.Height > 0
}

// Center returns the middle of the bounds.
func (b Bounds) Center() Vec2 {
	return Vec2{b.Width / 2, b.Height / 2}
}

// Contains reports whether p lies inside the closed bounds.
func (b Bounds) Contains(p Vec2) bool {
	return p.X >= 0 && p.X <= b.Width && p.Y >= 0 && p.Y <= b.Height
}

// Clamp moves p to the nearest point inside the bounds.
func (b Bounds) Clamp(p Vec2) Vec2 {
	return Vec2{clampFloat(p.X, 0, b.Width), clampFloat(p.Y, 0, b.Height)}
}

// Range is an inclusive [Min, Max] interval.
type Range struct {
	Min, Max float64
}

// Valid reports whether Min <= Max.
func (r Range) Valid() bool {
	return r.Min <= r.Max
}

// Sample returns a value uniformly distributed in the range.
func (r Range) Sample(rng *rand.Rand) float64 {
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// clampFloat clamps v between minVal and maxVal.
func clampFloat(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// clamp01 clamps v to the [0, 1] range.
func clamp01(v float64) float64 {
	return clampFloat(v, 0, 1)
}

// wrap maps v into [0, size] by jumping to the opposite edge.
func wrap(v, size float64) float64 {
	if v < 0 {
		return size
	}
	if v > size {
		return 0
	}
	return v
}
