package object

import "fmt"

// Behavior is the per-kind table of lifecycle hooks. Nil hooks are skipped.
type Behavior struct {
	// OnCreate runs right after the entity is placed in the pending list.
	OnCreate func(w *World, e *Entity)
	// Update runs once per frame before integration.
	Update func(w *World, e *Entity, dt float64)
	// OnFire performs the entity's attack.
	OnFire func(w *World, e *Entity)
	// OnCollision is the entity's reaction to overlapping other.
	OnCollision func(w *World, e, other *Entity)
	// OnDestroy runs at end of frame just before the entity is released.
	OnDestroy func(w *World, e *Entity)

	// Kinematic entities are integrated and wrapped by the world.
	Kinematic bool
	// MaxSpeed caps speed after integration when > 0.
	MaxSpeed float64
}

var behaviors [kindCount]Behavior

// init fills the table; the hooks reach back into World, which refers to the
// table, so a package-level initializer would form a cycle.
func init() {
	behaviors = [kindCount]Behavior{
		KindShip:        shipBehavior(),
		KindAsteroid:    asteroidBehavior(),
		KindBullet:      bulletBehavior(),
		KindMine:        mineBehavior(),
		KindUFO:         ufoBehavior(),
		KindExplosion:   explosionBehavior(),
		KindThrust:      thrustBehavior(),
		KindLaser:       laserBehavior(),
		KindLaserCharge: laserChargeBehavior(),
	}
}

// BehaviorOf returns the hook table for k.
func BehaviorOf(k Kind) *Behavior {
	if k >= kindCount {
		panic(fmt.Sprintf("object: no behaviour for kind %d", uint8(k)))
	}
	return &behaviors[k]
}
