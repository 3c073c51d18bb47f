package physics

// Body is the kinematic record every entity carries.
//
// Velocity is stored as a unit direction plus a non-negative speed. Orientation
// is independent of the direction of travel and only changes through the
// rotate calls or SetOrientation.
type Body struct {
	Position    Vec2
	Orientation float64 // Degrees, always within [0, 360)
	Direction   Vec2    // Unit heading of travel
	Speed       float64 // Never negative

	Force         Vec2    // Accumulated for the current frame
	InverseMass   float64 // 0 means immovable by forces
	RotationSpeed float64 // Degrees per second, applied by Spin

	CosmeticRadius float64 // Visual size
	PhysicalRadius float64 // Collision size
}

// NewBody creates a body at pos facing along +X with unit inverse mass.
func NewBody(pos Vec2) Body {
	return Body{
		Position:    pos,
		Direction:   Vec2{X: 1},
		InverseMass: 1,
	}
}

// Velocity returns direction * speed.
func (b *Body) Velocity() Vec2 {
	return b.Direction.Scale(b.Speed)
}

// SetVelocity splits v into direction and speed. A zero vector keeps the
// previous direction so the heading stays well-defined.
func (b *Body) SetVelocity(v Vec2) {
	dir, speed := v.Normalize()
	if speed == 0 {
		b.Speed = 0
		if b.Direction == Zero {
			b.Direction = Vec2{X: 1}
		}
		return
	}
	b.Direction = dir
	b.Speed = speed
}

// SetHeading sets the direction of travel from an angle in degrees.
// Negative speeds reverse the heading instead of being stored.
func (b *Body) SetHeading(degrees, speed float64) {
	if speed < 0 {
		degrees += 180
		speed = -speed
	}
	b.Direction = FromAngle(degrees)
	b.Speed = speed
}

// ApplyForce adds f to the force accumulator.
func (b *Body) ApplyForce(f Vec2) {
	b.Force = b.Force.Add(f)
}

// ClearForce resets the accumulator. Called once per frame.
func (b *Body) ClearForce() {
	b.Force = Zero
}

// Integrate advances the body by dt using explicit Euler:
// a = F * invMass, v += a*dt, p += v*dt.
func (b *Body) Integrate(dt float64) {
	if b.InverseMass != 0 && b.Force != Zero {
		accel := b.Force.Scale(b.InverseMass)
		b.SetVelocity(b.Velocity().Add(accel.Scale(dt)))
	}
	b.Position = b.Position.Add(b.Velocity().Scale(dt))
}

// Spin rotates by RotationSpeed * dt.
func (b *Body) Spin(dt float64) {
	if b.RotationSpeed != 0 {
		b.RotateCounterClockwise(b.RotationSpeed * dt)
	}
}

// RotateClockwise rotates the orientation clockwise by degrees.
func (b *Body) RotateClockwise(degrees float64) {
	b.Orientation = WrapDegrees(b.Orientation - degrees)
}

// RotateCounterClockwise rotates the orientation counter-clockwise by degrees.
func (b *Body) RotateCounterClockwise(degrees float64) {
	b.Orientation = WrapDegrees(b.Orientation + degrees)
}

// SetOrientation sets the facing angle, normalized to [0, 360).
func (b *Body) SetOrientation(degrees float64) {
	b.Orientation = WrapDegrees(degrees)
}

// Forward returns the unit vector of the facing angle.
func (b *Body) Forward() Vec2 {
	return FromAngle(b.Orientation)
}

// Overlaps reports whether the physical discs of two bodies overlap.
func (b *Body) Overlaps(o *Body) bool {
	return CirclesOverlap(b.Position, b.PhysicalRadius, o.Position, o.PhysicalRadius)
}

// ClampSpeed caps the speed at max (no-op when max <= 0).
func (b *Body) ClampSpeed(max float64) {
	if max > 0 && b.Speed > max {
		b.Speed = max
	}
}
