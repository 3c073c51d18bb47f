package object

import (
	"github.com/tomz197/rockfall/internal/loop/config"
	"github.com/tomz197/rockfall/internal/physics"
	"github.com/tomz197/rockfall/internal/service"
)

// laserLength is the visual reach of the Boss laser.
const laserLength = 60.0

// AttachData places a visual child relative to its parent every frame.
// Attached entities never take part in collision.
type AttachData struct {
	// Offset is in the parent's frame when FollowRotation is set, otherwise
	// in the child's own frame.
	Offset         physics.Vec2
	FollowRotation bool
	// Lifetime kills the child after this many seconds when > 0.
	Lifetime float64
}

func (w *World) makeAttached(kind Kind, parent *Entity, a AttachData) *Entity {
	e := newEntity(kind, FactionNone, parent.Position)
	e.Parent = parent.Handle()
	e.Speed = 0
	e.InverseMass = 0
	e.Attach = &a
	if a.FollowRotation {
		e.SetOrientation(parent.Orientation)
	}
	follow(e, parent)
	w.Spawn(e)
	return e
}

// MakeThrust attaches a flame behind a ship. It shows only while the ship
// thrusts.
func (w *World) MakeThrust(ship *Entity) *Entity {
	e := w.makeAttached(KindThrust, ship, AttachData{
		Offset:         physics.Vec2{X: -config.ThrustOffset},
		FollowRotation: true,
	})
	e.CosmeticRadius = config.ThrustCosmeticRadius
	e.Tint = service.Yellow
	e.Visible = false
	return e
}

// MakeLaserCharge attaches the glow a Boss shows before firing.
func (w *World) MakeLaserCharge(ufo *Entity) *Entity {
	e := w.makeAttached(KindLaserCharge, ufo, AttachData{Lifetime: config.BossChargeDuration})
	e.CosmeticRadius = ufo.CosmeticRadius
	e.Tint = service.Red
	e.Scale = 0
	return e
}

// MakeLaser attaches a beam pointing along heading (degrees) from a Boss.
func (w *World) MakeLaser(ufo *Entity, heading float64) *Entity {
	e := newEntity(KindLaser, FactionNone, ufo.Position)
	e.SetOrientation(heading)
	e.Parent = ufo.Handle()
	e.Speed = 0
	e.InverseMass = 0
	e.Attach = &AttachData{
		Offset:   physics.Vec2{X: ufo.CosmeticRadius + laserLength/2},
		Lifetime: config.BossLaserDuration,
	}
	e.HalfExtents = physics.Vec2{X: laserLength / 2, Y: 0.5}
	e.Tint = service.Red
	follow(e, ufo)
	w.Spawn(e)
	return e
}

// follow moves e to its offset from parent.
func follow(e, parent *Entity) {
	a := e.Attach
	frame := e.Orientation
	if a.FollowRotation {
		e.SetOrientation(parent.Orientation)
		frame = parent.Orientation
	}
	e.Position = parent.Position.Add(a.Offset.Rotate(frame).Scale(parent.Scale))
}

// attachedParent returns the live parent of e, killing e when the parent is
// gone or dying, or when e outlived its lifetime.
func attachedParent(w *World, e *Entity) *Entity {
	parent := w.Get(e.Parent)
	if parent == nil || parent.IsDead() {
		e.Kill()
		return nil
	}
	if l := e.Attach.Lifetime; l > 0 && e.Age >= l {
		e.Kill()
		return nil
	}
	return parent
}

func thrustBehavior() Behavior {
	return Behavior{Update: thrustUpdate}
}

func thrustUpdate(w *World, e *Entity, _ float64) {
	parent := attachedParent(w, e)
	if parent == nil {
		return
	}
	follow(e, parent)
	e.Visible = parent.Ship != nil && parent.Ship.Thrusting
	e.Scale = parent.Scale * w.randRange(0.7, 1.1)
	e.Alpha = parent.Alpha
}

func laserBehavior() Behavior {
	return Behavior{Update: laserUpdate}
}

func laserUpdate(w *World, e *Entity, _ float64) {
	parent := attachedParent(w, e)
	if parent == nil {
		return
	}
	follow(e, parent)
	// Fade out over the beam's life.
	e.Alpha = 1 - e.Age/e.Attach.Lifetime
}

func laserChargeBehavior() Behavior {
	return Behavior{Update: laserChargeUpdate}
}

func laserChargeUpdate(w *World, e *Entity, _ float64) {
	parent := attachedParent(w, e)
	if parent == nil {
		return
	}
	follow(e, parent)
	e.Scale = smoothstep(e.Age / e.Attach.Lifetime)
}
