package physics

import "math"

// Vec2 is a 2D vector in world units.
type Vec2 struct {
	X, Y float64
}

// Zero is the zero vector.
var Zero = Vec2{}

// FromAngle returns the unit vector for an angle in degrees
// (0 points along +X, angles grow counter-clockwise).
func FromAngle(degrees float64) Vec2 {
	rad := degrees * math.Pi / 180
	return Vec2{X: math.Cos(rad), Y: math.Sin(rad)}
}

func (v Vec2) Add(o Vec2) Vec2        { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2        { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2   { return Vec2{X: v.X * s, Y: v.Y * s} }
func (v Vec2) Dot(o Vec2) float64     { return v.X*o.X + v.Y*o.Y }
func (v Vec2) LengthSquared() float64 { return v.X*v.X + v.Y*v.Y }
func (v Vec2) Length() float64        { return math.Sqrt(v.LengthSquared()) }

// Normalize returns the unit vector along v and its original length.
// A zero-length vector yields (Zero, 0); callers must handle that case.
func (v Vec2) Normalize() (Vec2, float64) {
	l := v.Length()
	if l == 0 {
		return Zero, 0
	}
	return Vec2{X: v.X / l, Y: v.Y / l}, l
}

// Angle returns the heading of v in degrees within [0, 360).
func (v Vec2) Angle() float64 {
	return WrapDegrees(math.Atan2(v.Y, v.X) * 180 / math.Pi)
}

// Rotate rotates v counter-clockwise by degrees.
func (v Vec2) Rotate(degrees float64) Vec2 {
	rad := degrees * math.Pi / 180
	s, c := math.Sincos(rad)
	return Vec2{X: v.X*c - v.Y*s, Y: v.X*s + v.Y*c}
}

// Lerp interpolates between a and b by t.
func Lerp(a, b Vec2, t float64) Vec2 {
	return Vec2{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}

// WrapDegrees normalizes an angle to [0, 360).
func WrapDegrees(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	// math.Mod of a tiny negative value plus 360 can round up to 360
	if d >= 360 {
		d = 0
	}
	return d
}
