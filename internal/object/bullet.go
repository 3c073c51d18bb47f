package object

import (
	"github.com/tomz197/rockfall/internal/loop/config"
	"github.com/tomz197/rockfall/internal/physics"
	"github.com/tomz197/rockfall/internal/service"
)

// BulletData is the per-bullet state.
type BulletData struct {
	Owner Handle
	TTL   float64 // Seconds left before the bullet expires
}

// MakeBullet spawns a bullet fired by owner. The bullet takes the owner's
// faction and lives for the difficulty's bullet time-to-live.
func (w *World) MakeBullet(owner *Entity, pos physics.Vec2, heading, speed float64) *Entity {
	e := newEntity(KindBullet, owner.Faction, pos)
	e.CosmeticRadius = config.BulletCosmeticRadius
	e.PhysicalRadius = config.BulletPhysicalRadius
	e.Parent = owner.Handle()
	e.SetHeading(heading, speed)
	e.SetOrientation(heading)
	if owner.Faction == FactionPlayer {
		e.Tint = service.Yellow
	} else {
		e.Tint = service.Red
	}
	e.Bullet = &BulletData{
		Owner: owner.Handle(),
		TTL:   w.Difficulty.BulletTTL(),
	}
	w.Spawn(e)
	return e
}

func bulletBehavior() Behavior {
	return Behavior{
		Update:      bulletUpdate,
		OnCollision: bulletCollision,
		Kinematic:   true,
	}
}

func bulletUpdate(_ *World, e *Entity, dt float64) {
	e.Bullet.TTL -= dt
	if e.Bullet.TTL <= 0 {
		e.Kill()
	}
}

// bulletCollision consumes the bullet on contact with another side.
func bulletCollision(_ *World, e, other *Entity) {
	if e.Faction != other.Faction {
		e.Kill()
	}
}
