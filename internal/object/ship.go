package object

import (
	"math"

	"github.com/tomz197/rockfall/internal/loop/config"
	"github.com/tomz197/rockfall/internal/physics"
	"github.com/tomz197/rockfall/internal/service"
)

// Control is the ship's input for one frame, filled by the Main state from
// whichever device the player uses.
type Control struct {
	Turn     float64 // -1 full clockwise, +1 full counter-clockwise
	Thrust   float64 // 0..1
	Fire     bool
	DropMine bool

	// Aim, when HasAim is set, is a world point the ship turns to face
	// instead of using Turn.
	Aim    physics.Vec2
	HasAim bool
}

// ShipData is the player ship's state.
type ShipData struct {
	Control Control

	FireCooldown float64
	MineCooldown float64

	// Respawning ships are invulnerable and ease in scale and alpha.
	Respawning  bool
	RespawnTime float64

	Thrusting bool
	Thrust    Handle // Flame child
}

// MakeShip spawns the player ship at pos. A respawned ship starts
// invulnerable and invisible, easing in over the first second.
func (w *World) MakeShip(pos physics.Vec2, respawning bool) *Entity {
	e := newEntity(KindShip, FactionPlayer, pos)
	e.CosmeticRadius = config.ShipCosmeticRadius
	e.PhysicalRadius = config.ShipPhysicalRadius
	e.Health = config.ShipHealth
	e.ScoreValue = config.ScoreShip
	e.Speed = 0
	e.SetOrientation(90)
	e.Ship = &ShipData{Respawning: respawning}
	if respawning {
		e.Scale = 0
		e.Alpha = 0
	}
	w.Spawn(e)
	return e
}

// Invulnerable reports whether the ship ignores collisions.
func (s *ShipData) Invulnerable() bool { return s.Respawning }

func shipBehavior() Behavior {
	return Behavior{
		OnCreate:    shipCreate,
		Update:      shipUpdate,
		OnFire:      shipFire,
		OnCollision: shipCollision,
		OnDestroy:   shipDestroy,
		Kinematic:   true,
		MaxSpeed:    config.ShipMaxSpeed,
	}
}

func shipCreate(w *World, e *Entity) {
	e.Ship.Thrust = w.MakeThrust(e).Handle()
}

func shipUpdate(w *World, e *Entity, dt float64) {
	s := e.Ship

	if s.Respawning {
		s.RespawnTime += dt
		ease := smoothstep(s.RespawnTime / config.RespawnEaseDuration)
		e.Scale = ease
		e.Alpha = ease
		if s.RespawnTime >= config.RespawnInvulnerable {
			s.Respawning = false
			e.Scale = 1
			e.Alpha = 1
		}
	}

	// A dead ship waits out its last frame without acting on stale controls.
	if e.IsDead() {
		s.Thrusting = false
		return
	}

	c := s.Control
	if c.HasAim {
		if d := w.shortestOffset(e.Position, c.Aim); d.LengthSquared() > 0 {
			e.SetOrientation(d.Angle())
		}
	} else if c.Turn > 0 {
		e.RotateCounterClockwise(c.Turn * config.ShipRotationSpeed * dt)
	} else if c.Turn < 0 {
		e.RotateClockwise(-c.Turn * config.ShipRotationSpeed * dt)
	}

	s.Thrusting = c.Thrust > 0
	if s.Thrusting {
		e.ApplyForce(e.Forward().Scale(config.ShipThrustForce * math.Min(c.Thrust, 1)))
	} else {
		e.Speed *= math.Pow(config.ShipDrag, dt)
	}

	s.FireCooldown = math.Max(s.FireCooldown-dt, 0)
	if c.Fire && s.FireCooldown == 0 {
		w.Fire(e)
		s.FireCooldown = config.ShipFireInterval
	}

	s.MineCooldown = math.Max(s.MineCooldown-dt, 0)
	if c.DropMine && s.MineCooldown == 0 && w.minesOwnedBy(e.Handle()) < config.MaxLiveMines {
		w.MakeMine(e)
		s.MineCooldown = config.MineDropInterval
	}
}

func shipFire(w *World, e *Entity) {
	nose := e.Position.Add(e.Forward().Scale(e.CosmeticRadius))
	b := w.MakeBullet(e, nose, e.Orientation, config.ShipBulletSpeed)
	// Shots carry the ship's momentum.
	b.SetVelocity(b.Velocity().Add(e.Velocity()))
	w.play(service.SoundFire)
}

// shipCollision is the ship's reaction to running into other. Same-faction
// contacts and contacts while respawning are ignored; UFOs kill outright.
func shipCollision(w *World, e, other *Entity) {
	if e.Ship.Invulnerable() || e.Faction == other.Faction {
		return
	}
	switch other.Kind {
	case KindBullet:
		other.Kill()
		e.Damage(1)
	case KindUFO:
		e.Kill()
	default:
		e.Damage(1)
	}
}

func shipDestroy(w *World, e *Entity) {
	if t := w.Get(e.Ship.Thrust); t != nil {
		t.Kill()
	}
	w.MakeExplosion(e.Position, 2.5)
	w.Listener.Shake(1)
	w.play(service.SoundShipExplode)
}

// minesOwnedBy counts mines dropped by owner that have not died yet.
func (w *World) minesOwnedBy(owner Handle) int {
	n := 0
	for _, h := range w.typed[KindMine] {
		if m := w.Get(h); m != nil && !m.IsDead() && m.Mine.Owner == owner {
			n++
		}
	}
	return n
}

// smoothstep eases t in [0, 1] with zero slope at both ends.
func smoothstep(t float64) float64 {
	t = min(max(t, 0), 1)
	return t * t * (3 - 2*t)
}
