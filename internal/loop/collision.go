package loop

import (
	"github.com/tomz197/rockfall/internal/object"
	"github.com/tomz197/rockfall/internal/physics"
)

// overlaps is the disc test used by the sweep: physical radii, measured
// across the wrapping world, touching counts.
func overlaps(w *object.World, a, b *object.Entity) bool {
	r := a.PhysicalRadius + b.PhysicalRadius
	return physics.WrappedDistanceSquared(a.Position, b.Position, w.Bounds) <= r*r
}

// sweepCollisions runs every pair check for the frame. Each check calls
// OnCollision on the target only. Pending, dead and unarmed entities are
// skipped, so a bullet consumed by one target cannot hit another.
func (m *mainState) sweepCollisions() {
	w := m.world
	checkBulletAsteroidCollisions(w)
	checkBulletUFOCollisions(w)
	if checkShipCollisions(w, w.Get(m.ship)) {
		m.onShipDestroyed()
	}
	checkMineCollisions(w)
}

// checkBulletAsteroidCollisions lets asteroids react to bullets.
func checkBulletAsteroidCollisions(w *object.World) {
	checkPairs(w, object.KindBullet, object.KindAsteroid, false)
}

// checkBulletUFOCollisions lets UFOs react to bullets of another faction.
func checkBulletUFOCollisions(w *object.World) {
	checkPairs(w, object.KindBullet, object.KindUFO, true)
}

// checkMineCollisions lets asteroids and UFOs trigger armed mines.
func checkMineCollisions(w *object.World) {
	checkPairs(w, object.KindMine, object.KindAsteroid, true)
	checkPairs(w, object.KindMine, object.KindUFO, true)
}

// checkPairs tests every source of one kind against every target of another
// and delivers hits to the target.
func checkPairs(w *object.World, source, target object.Kind, factionsMustDiffer bool) {
	for _, sh := range w.Typed(source) {
		s := w.Get(sh)
		if s == nil || !s.Collidable() {
			continue
		}
		for _, th := range w.Typed(target) {
			t := w.Get(th)
			if t == nil || !t.Collidable() {
				continue
			}
			if factionsMustDiffer && s.Faction == t.Faction {
				continue
			}
			if overlaps(w, s, t) {
				w.Collide(t, s)
				if !s.Collidable() {
					break
				}
			}
		}
	}
}

// checkShipCollisions tests the ship against asteroids, bullets and UFOs.
// It stops at the first hit that kills the ship and reports the death.
func checkShipCollisions(w *object.World, ship *object.Entity) bool {
	if ship == nil || !ship.Collidable() || ship.Ship.Invulnerable() {
		return false
	}
	for _, kind := range [...]object.Kind{object.KindAsteroid, object.KindBullet, object.KindUFO} {
		for _, h := range w.Typed(kind) {
			o := w.Get(h)
			if o == nil || !o.Collidable() || o.Faction == ship.Faction {
				continue
			}
			if !overlaps(w, ship, o) {
				continue
			}
			w.Collide(ship, o)
			if ship.IsDead() {
				return true
			}
		}
	}
	return false
}
