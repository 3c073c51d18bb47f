package object

import (
	"github.com/tomz197/rockfall/internal/physics"
	"github.com/tomz197/rockfall/internal/sprite"
)

// ExplosionData is the per-explosion state.
type ExplosionData struct {
	Anim *sprite.Animation
}

// MakeExplosion spawns a one-shot explosion animation with the given radius.
func (w *World) MakeExplosion(pos physics.Vec2, radius float64) *Entity {
	e := newEntity(KindExplosion, FactionNone, pos)
	e.CosmeticRadius = radius
	e.Speed = 0
	e.Material = w.explosionAnim.Material()
	e.UV = w.explosionAnim.UVAt(0)
	e.SetOrientation(w.randAngle())
	e.Explosion = &ExplosionData{Anim: w.explosionAnim}
	w.Spawn(e)
	return e
}

func explosionBehavior() Behavior {
	return Behavior{Update: explosionUpdate}
}

func explosionUpdate(_ *World, e *Entity, _ float64) {
	anim := e.Explosion.Anim
	e.UV = anim.UVAt(e.Age)
	if anim.Finished(e.Age) {
		e.Kill()
	}
}
