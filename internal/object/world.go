package object

import (
	"fmt"
	"math/rand"
	"slices"

	"github.com/tomz197/rockfall/internal/loop/config"
	"github.com/tomz197/rockfall/internal/physics"
	"github.com/tomz197/rockfall/internal/service"
	"github.com/tomz197/rockfall/internal/sprite"
)

// Listener receives gameplay notifications raised by entity hooks.
type Listener interface {
	AwardScore(points int)
	Shake(amount float64)
}

type nopListener struct{}

func (nopListener) AwardScore(int) {}
func (nopListener) Shake(float64)  {}

// slot is one arena cell. gen is bumped each time the slot is released so
// outstanding handles to the old occupant stop resolving.
type slot struct {
	gen    uint32
	entity *Entity
}

// World owns every entity. Entities are addressed by Handle; the live list
// keeps index 0 for the ship, typed lists give per-kind iteration, and new
// entities wait in the pending list until the end of the frame.
type World struct {
	Bounds     physics.Bounds
	Difficulty config.Difficulty
	Rand       *rand.Rand
	Audio      service.Audio
	Listener   Listener

	slots   []slot
	free    []uint32
	live    []Handle
	pending []Handle
	typed   [kindCount][]Handle

	blastGrid     *physics.SpatialGrid
	blastTargets  []*Entity
	explosionAnim *sprite.Animation
	frame         uint64
}

// NewWorld creates an empty world. The live list starts with the reserved,
// empty ship slot.
func NewWorld(bounds physics.Bounds, difficulty config.Difficulty, svc service.Services) *World {
	svc = svc.WithDefaults()
	return &World{
		Bounds:     bounds,
		Difficulty: difficulty,
		Rand:       svc.Rand,
		Audio:      svc.Audio,
		Listener:   nopListener{},
		live:       []Handle{Nil},
		blastGrid:  physics.NewSpatialGrid(bounds, config.MineBlastRadius),
		explosionAnim: svc.Renderer.CreateAnimatedSprite(sprite.Desc{
			Material:  KindExplosion.String(),
			Columns:   config.ExplosionColumns,
			Rows:      config.ExplosionRows,
			LastFrame: config.ExplosionColumns*config.ExplosionRows - 1,
			Duration:  config.ExplosionDuration,
			Mode:      sprite.PlayOnce,
		}),
	}
}

// Frame returns the number of completed end-of-frame passes.
func (w *World) Frame() uint64 { return w.frame }

// Get resolves a handle. Stale or nil handles return nil.
func (w *World) Get(h Handle) *Entity {
	if h.IsNil() || int(h.index) >= len(w.slots) {
		return nil
	}
	s := w.slots[h.index]
	if s.gen != h.gen || s.entity == nil {
		return nil
	}
	return s.entity
}

// MustGet resolves a handle that the caller knows is valid.
func (w *World) MustGet(h Handle) *Entity {
	e := w.Get(h)
	if e == nil {
		panic(fmt.Sprintf("object: stale %s", h))
	}
	return e
}

// Spawn places e in the pending list and the typed list of its kind, then
// runs its OnCreate hook. The entity is promoted to the live list at the end
// of the frame, so it is neither updated nor collided with this frame.
func (w *World) Spawn(e *Entity) Handle {
	var index uint32
	if n := len(w.free); n > 0 {
		index = w.free[n-1]
		w.free = w.free[:n-1]
	} else {
		index = uint32(len(w.slots))
		w.slots = append(w.slots, slot{gen: 1})
	}
	s := &w.slots[index]
	s.entity = e

	e.handle = Handle{index: index, gen: s.gen}
	e.pending = true
	w.pending = append(w.pending, e.handle)
	w.typed[e.Kind] = append(w.typed[e.Kind], e.handle)

	if hook := BehaviorOf(e.Kind).OnCreate; hook != nil {
		hook(w, e)
	}
	return e.handle
}

// Live returns the live list. Index 0 is the ship slot and may be Nil.
// The slice must not be modified.
func (w *World) Live() []Handle { return w.live }

// Pending returns handles spawned this frame.
func (w *World) Pending() []Handle { return w.pending }

// Typed returns the observer list for kind, including pending entities and
// dead entities that have not been destroyed yet. Entities spawned while the
// caller iterates are appended past the returned slice's length.
func (w *World) Typed(kind Kind) []Handle { return w.typed[kind] }

// Count returns the number of entities of kind, pending and dying included.
func (w *World) Count(kind Kind) int { return len(w.typed[kind]) }

// Ship returns the first ship that is still alive, pending or not.
func (w *World) Ship() *Entity {
	for _, h := range w.typed[KindShip] {
		if e := w.Get(h); e != nil && !e.IsDead() {
			return e
		}
	}
	return nil
}

// Update advances every live entity: the kind hook first, then integration
// and wrapping for kinematic kinds. Pending entities wait for promotion.
func (w *World) Update(dt float64) {
	for i := 0; i < len(w.live); i++ {
		e := w.Get(w.live[i])
		if e == nil {
			continue
		}
		e.Age += dt
		b := BehaviorOf(e.Kind)
		if b.Update != nil {
			b.Update(w, e, dt)
		}
		if b.Kinematic {
			e.Integrate(dt)
			e.ClampSpeed(b.MaxSpeed)
			e.Spin(dt)
			e.Position = w.Bounds.Wrap(e.Position)
		}
	}
}

// Fire invokes the OnFire hook of e.
func (w *World) Fire(e *Entity) {
	if hook := BehaviorOf(e.Kind).OnFire; hook != nil {
		hook(w, e)
	}
}

// Collide delivers a collision to target: other is what it ran into.
func (w *World) Collide(target, other *Entity) {
	if hook := BehaviorOf(target.Kind).OnCollision; hook != nil {
		hook(w, target, other)
	}
}

// EndFrame destroys entities that have been dead for a full frame, compacts
// the live list (slot 0 is cleared, never removed), promotes pending
// entities and clears force accumulators.
func (w *World) EndFrame() {
	destroyed := false
	for i := 0; i < len(w.live); i++ {
		e := w.Get(w.live[i])
		if e == nil || !e.IsDead() {
			continue
		}
		if !e.reapable {
			e.reapable = true
			continue
		}
		w.destroy(e)
		destroyed = true
	}

	if destroyed {
		if w.Get(w.live[0]) == nil {
			w.live[0] = Nil
		}
		rest := slices.DeleteFunc(w.live[1:], func(h Handle) bool {
			return w.Get(h) == nil
		})
		w.live = w.live[:1+len(rest)]
		for k := range w.typed {
			w.typed[k] = slices.DeleteFunc(w.typed[k], func(h Handle) bool {
				return w.Get(h) == nil
			})
		}
	}

	// Indexed: a ship replaced during promotion may spawn its explosion.
	for i := 0; i < len(w.pending); i++ {
		h := w.pending[i]
		e := w.Get(h)
		if e == nil {
			continue
		}
		e.pending = false
		if e.Kind == KindShip {
			w.replaceShip(h)
			continue
		}
		w.live = append(w.live, h)
	}
	w.pending = w.pending[:0]

	for _, h := range w.live {
		if e := w.Get(h); e != nil {
			e.ClearForce()
		}
	}
	w.frame++
}

// replaceShip puts h in the ship slot. A dead ship still holding the slot
// is destroyed first. Promoting over a live ship panics.
func (w *World) replaceShip(h Handle) {
	if prev := w.Get(w.live[0]); prev != nil {
		if !prev.IsDead() {
			panic(fmt.Sprintf("object: ship %s promoted over live ship %s", h, prev.handle))
		}
		w.destroy(prev)
		w.typed[KindShip] = slices.DeleteFunc(w.typed[KindShip], func(h Handle) bool {
			return w.Get(h) == nil
		})
	}
	w.live[0] = h
}

// destroy fires OnDestroy, awards the score value and releases the slot.
func (w *World) destroy(e *Entity) {
	if e.ScoreValue != 0 {
		w.Listener.AwardScore(e.ScoreValue)
	}
	if hook := BehaviorOf(e.Kind).OnDestroy; hook != nil {
		hook(w, e)
	}
	s := &w.slots[e.handle.index]
	s.entity = nil
	s.gen++
	w.free = append(w.free, e.handle.index)
}

// Clear releases every entity without running destroy hooks. Outstanding
// handles stop resolving.
func (w *World) Clear() {
	w.free = w.free[:0]
	for i := range w.slots {
		s := &w.slots[i]
		if s.entity != nil {
			s.entity = nil
			s.gen++
		}
		w.free = append(w.free, uint32(i))
	}
	w.live = append(w.live[:0], Nil)
	w.pending = w.pending[:0]
	for k := range w.typed {
		w.typed[k] = w.typed[k][:0]
	}
}

// Render rebuilds every visible entity's mesh and submits it. Dead entities
// that have not been destroyed yet are still drawn.
func (w *World) Render(r service.Renderer, debug bool) {
	for _, h := range w.live {
		e := w.Get(h)
		if e == nil {
			continue
		}
		if e.Visible && e.Alpha > 0 && e.Scale > 0 {
			e.RebuildMesh()
			r.SetModelMatrix(e.Transform)
			r.DrawQuad(r.GetMaterial(e.Material), e.Mesh, e.Tint.WithAlpha(e.Alpha))
		}
		if debug && e.PhysicalRadius > 0 {
			r.DrawCircle(e.Position, e.CosmeticRadius, service.Grey)
			r.DrawCircle(e.Position, e.PhysicalRadius, service.Red)
		}
	}
}

// play forwards a sound to the audio service.
func (w *World) play(sound string) {
	if w.Audio != nil {
		w.Audio.Play(sound)
	}
}

// randRange returns a uniform value in [lo, hi).
func (w *World) randRange(lo, hi float64) float64 {
	return lo + w.Rand.Float64()*(hi-lo)
}

// randAngle returns a uniform heading in degrees.
func (w *World) randAngle() float64 {
	return w.Rand.Float64() * 360
}

// shortestOffset returns the vector from a to b across the wrapping world.
func (w *World) shortestOffset(a, b physics.Vec2) physics.Vec2 {
	d := b.Sub(a)
	if width := w.Bounds.Width(); width > 0 {
		if d.X > width/2 {
			d.X -= width
		} else if d.X < -width/2 {
			d.X += width
		}
	}
	if height := w.Bounds.Height(); height > 0 {
		if d.Y > height/2 {
			d.Y -= height
		} else if d.Y < -height/2 {
			d.Y += height
		}
	}
	return d
}
