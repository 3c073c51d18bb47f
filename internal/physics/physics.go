// Package physics provides the kinematic entity record, 2D vector math and
// disc overlap tests used by the simulation.
package physics

import "math"

// Distance calculates the Euclidean distance between two points.
func Distance(a, b Vec2) float64 {
	return math.Sqrt(DistanceSquared(a, b))
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(a, b Vec2) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return dx*dx + dy*dy
}

// PointInCircle checks if a point is within radius of a target position.
func PointInCircle(p, center Vec2, radius float64) bool {
	return DistanceSquared(p, center) <= radius*radius
}

// CirclesOverlap reports whether two discs overlap. Touching discs
// (distance exactly r1+r2) count as overlapping.
func CirclesOverlap(c1 Vec2, r1 float64, c2 Vec2, r2 float64) bool {
	minDist := r1 + r2
	return DistanceSquared(c1, c2) <= minDist*minDist
}

// Bounds is an axis-aligned box in world units.
type Bounds struct {
	Min, Max Vec2
}

// NewBounds creates bounds anchored at the origin with the given size.
func NewBounds(width, height float64) Bounds {
	return Bounds{Max: Vec2{X: width, Y: height}}
}

// Width returns the horizontal extent.
func (b Bounds) Width() float64 { return b.Max.X - b.Min.X }

// Height returns the vertical extent.
func (b Bounds) Height() float64 { return b.Max.Y - b.Min.Y }

// Center returns the midpoint of the box.
func (b Bounds) Center() Vec2 {
	return Vec2{X: (b.Min.X + b.Max.X) / 2, Y: (b.Min.Y + b.Max.Y) / 2}
}

// Contains reports whether p lies inside the box (edges inclusive).
func (b Bounds) Contains(p Vec2) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// Wrap wraps p around the box edges (Asteroids-style).
func (b Bounds) Wrap(p Vec2) Vec2 {
	return Vec2{
		X: wrapRange(p.X, b.Min.X, b.Width()),
		Y: wrapRange(p.Y, b.Min.Y, b.Height()),
	}
}

func wrapRange(v, lo, size float64) float64 {
	if size <= 0 {
		return v
	}
	v = math.Mod(v-lo, size)
	if v < 0 {
		v += size
	}
	return v + lo
}
