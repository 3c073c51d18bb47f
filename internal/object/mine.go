package object

import (
	"math"

	"github.com/tomz197/rockfall/internal/loop/config"
	"github.com/tomz197/rockfall/internal/physics"
	"github.com/tomz197/rockfall/internal/service"
)

// blastReach covers the largest target radius so the grid query returns
// every entity whose disc can touch the blast.
const blastReach = config.MineBlastRadius + 6.0

// MineData is the per-mine state.
type MineData struct {
	Owner     Handle
	Armed     bool
	Detonated bool
}

// MakeMine drops a stationary mine at the owner's position.
func (w *World) MakeMine(owner *Entity) *Entity {
	e := newEntity(KindMine, owner.Faction, owner.Position)
	e.CosmeticRadius = config.MineCosmeticRadius
	e.PhysicalRadius = config.MinePhysicalRadius
	e.Parent = owner.Handle()
	e.Speed = 0
	e.InverseMass = 0
	e.Tint = service.Cyan
	e.Alpha = 0.5
	e.Mine = &MineData{Owner: owner.Handle()}
	w.Spawn(e)
	w.play(service.SoundMineDrop)
	return e
}

func mineBehavior() Behavior {
	return Behavior{
		Update:      mineUpdate,
		OnCollision: mineCollision,
		OnDestroy:   mineDestroy,
	}
}

func mineUpdate(_ *World, e *Entity, _ float64) {
	if !e.Mine.Armed && e.Age >= config.MineArmDelay {
		e.Mine.Armed = true
	}
	if e.Mine.Armed {
		e.Alpha = 0.75 + 0.25*math.Sin(e.Age*8)
	}
	if e.Age >= config.MineLifetime {
		e.Kill()
	}
}

func mineCollision(w *World, e, other *Entity) {
	if e.Faction != other.Faction {
		w.Detonate(e)
	}
}

// mineDestroy leaves a small puff for mines that expired without a blast.
func mineDestroy(w *World, e *Entity) {
	if !e.Mine.Detonated {
		w.MakeExplosion(e.Position, 0.5)
	}
}

// Detonate kills mine and damages every live, promoted asteroid and UFO whose
// physical disc overlaps the blast disc. A mine detonates at most once.
func (w *World) Detonate(mine *Entity) {
	if mine.IsDead() {
		return
	}
	mine.Kill()
	mine.Mine.Detonated = true

	w.blastGrid.Clear()
	w.blastTargets = w.blastTargets[:0]
	for _, kind := range [...]Kind{KindAsteroid, KindUFO} {
		for _, h := range w.typed[kind] {
			t := w.Get(h)
			if t == nil || !t.Collidable() || t.Faction == mine.Faction {
				continue
			}
			w.blastGrid.Insert(t.Position, len(w.blastTargets))
			w.blastTargets = append(w.blastTargets, t)
		}
	}

	w.blastGrid.QueryRadius(mine.Position, blastReach, func(i int) bool {
		t := w.blastTargets[i]
		reach := config.MineBlastRadius + t.PhysicalRadius
		if physics.WrappedDistanceSquared(mine.Position, t.Position, w.Bounds) <= reach*reach {
			t.Damage(config.MineBlastDamage)
		}
		return false
	})

	w.MakeExplosion(mine.Position, config.MineBlastRadius/2)
	w.Listener.Shake(0.5)
	w.play(service.SoundMineBlast)
}
