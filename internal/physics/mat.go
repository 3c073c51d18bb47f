package physics

import "math"

// Mat3 is a row-major 2D affine transform. The last row is implicitly (0, 0, 1).
type Mat3 struct {
	A, B, Tx float64
	C, D, Ty float64
}

// Identity is the identity transform.
var Identity = Mat3{A: 1, D: 1}

// Translation returns a transform that moves points by t.
func Translation(t Vec2) Mat3 {
	return Mat3{A: 1, D: 1, Tx: t.X, Ty: t.Y}
}

// Rotation returns a counter-clockwise rotation by degrees.
func Rotation(degrees float64) Mat3 {
	s, c := math.Sincos(degrees * math.Pi / 180)
	return Mat3{A: c, B: -s, C: s, D: c}
}

// Scaling returns a uniform scale.
func Scaling(s float64) Mat3 {
	return Mat3{A: s, D: s}
}

// TRS builds translate * rotate * scale, the model matrix used for entities.
func TRS(pos Vec2, degrees, scale float64) Mat3 {
	s, c := math.Sincos(degrees * math.Pi / 180)
	return Mat3{
		A: c * scale, B: -s * scale, Tx: pos.X,
		C: s * scale, D: c * scale, Ty: pos.Y,
	}
}

// Mul returns m * o (o is applied first).
func (m Mat3) Mul(o Mat3) Mat3 {
	return Mat3{
		A:  m.A*o.A + m.B*o.C,
		B:  m.A*o.B + m.B*o.D,
		Tx: m.A*o.Tx + m.B*o.Ty + m.Tx,
		C:  m.C*o.A + m.D*o.C,
		D:  m.C*o.B + m.D*o.D,
		Ty: m.C*o.Tx + m.D*o.Ty + m.Ty,
	}
}

// Apply transforms a point.
func (m Mat3) Apply(p Vec2) Vec2 {
	return Vec2{
		X: m.A*p.X + m.B*p.Y + m.Tx,
		Y: m.C*p.X + m.D*p.Y + m.Ty,
	}
}

// Origin returns the translated origin (the entity position for a TRS matrix).
func (m Mat3) Origin() Vec2 {
	return Vec2{X: m.Tx, Y: m.Ty}
}
