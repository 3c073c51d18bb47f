package object

import (
	"fmt"

	"github.com/tomz197/rockfall/internal/loop/config"
	"github.com/tomz197/rockfall/internal/physics"
	"github.com/tomz197/rockfall/internal/service"
)

// UFOTier is the enemy craft class.
type UFOTier int

const (
	UFOSmall UFOTier = iota
	UFOBig
	UFOBoss
)

type ufoTier struct {
	name           string
	cosmeticRadius float64
	physicalRadius float64
	health         int
	fireInterval   float64 // Seconds between attacks
	bulletSpeed    float64
	score          int
	speedScale     float64
	tracks         bool // Aims at the ship instead of firing at random
}

var ufoTiers = [...]ufoTier{
	UFOSmall: {"small", 2.5, 2.0, 1, 1.6, 35, config.ScoreSmallUFO, 1.0, false},
	UFOBig:   {"big", 4.0, 3.4, 3, 1.2, 40, config.ScoreBigUFO, 0.8, true},
	UFOBoss:  {"boss", 7.0, 6.0, 12, 4.0, 45, config.ScoreBossUFO, 0.5, true},
}

func (t UFOTier) tier() ufoTier {
	if t < UFOSmall || t > UFOBoss {
		panic(fmt.Sprintf("object: invalid ufo tier %d", int(t)))
	}
	return ufoTiers[t]
}

func (t UFOTier) String() string { return t.tier().name }

// TierForWave picks the UFO class that appears during wave.
func TierForWave(wave int) UFOTier {
	switch {
	case wave > 0 && wave%config.BossWaveInterval == 0:
		return UFOBoss
	case wave >= config.BigUFOFirstWave:
		return UFOBig
	default:
		return UFOSmall
	}
}

// UFOPhase sequences the Boss attack. Other tiers stay in UFOCruise.
type UFOPhase int

const (
	UFOCruise UFOPhase = iota
	UFOCharging
	UFOFiring
)

// UFOData is the per-UFO state.
type UFOData struct {
	Tier         UFOTier
	FireCooldown float64
	TurnCooldown float64
	Phase        UFOPhase
	PhaseTime    float64
	AimHeading   float64 // Degrees; heading of the next or current attack
	Charge       Handle
	Laser        Handle
}

// MakeUFO spawns a UFO of the given tier at pos on a random course.
func (w *World) MakeUFO(tier UFOTier, pos physics.Vec2) *Entity {
	t := tier.tier()
	e := newEntity(KindUFO, FactionEnemy, pos)
	e.CosmeticRadius = t.cosmeticRadius
	e.PhysicalRadius = t.physicalRadius
	e.Health = t.health
	e.ScoreValue = t.score
	e.Material = "ufo_" + t.name
	e.Tint = service.Red
	e.SetHeading(w.randAngle(), config.UFOSpeed*t.speedScale)
	e.UFO = &UFOData{
		Tier:         tier,
		FireCooldown: t.fireInterval,
		TurnCooldown: config.UFOTurnInterval,
	}
	w.Spawn(e)
	w.play(service.SoundUFOArrive)
	return e
}

// MakeUFOAtEdge spawns a UFO on the left or right world edge.
func (w *World) MakeUFOAtEdge(tier UFOTier) *Entity {
	b := w.Bounds
	x := b.Min.X + config.EdgeSpawnMargin
	if w.Rand.Intn(2) == 1 {
		x = b.Max.X - config.EdgeSpawnMargin
	}
	return w.MakeUFO(tier, physics.Vec2{X: x, Y: w.randRange(b.Min.Y, b.Max.Y)})
}

func ufoBehavior() Behavior {
	return Behavior{
		Update:      ufoUpdate,
		OnFire:      ufoFire,
		OnCollision: ufoCollision,
		OnDestroy:   ufoDestroy,
		Kinematic:   true,
	}
}

func ufoUpdate(w *World, e *Entity, dt float64) {
	u := e.UFO
	t := u.Tier.tier()

	if u.Phase == UFOCruise {
		u.TurnCooldown -= dt
		if u.TurnCooldown <= 0 {
			e.SetHeading(w.randAngle(), config.UFOSpeed*t.speedScale)
			u.TurnCooldown = config.UFOTurnInterval
		}
		u.FireCooldown -= dt
		if u.FireCooldown > 0 {
			return
		}
		u.AimHeading = w.ufoAim(e)
		if u.Tier != UFOBoss {
			w.Fire(e)
			u.FireCooldown = t.fireInterval
			return
		}
		// Boss stops to telegraph its attack.
		u.Phase = UFOCharging
		u.PhaseTime = 0
		e.Speed = 0
		u.Charge = w.MakeLaserCharge(e).Handle()
		return
	}

	u.PhaseTime += dt
	switch u.Phase {
	case UFOCharging:
		if u.PhaseTime >= config.BossChargeDuration {
			u.Phase = UFOFiring
			u.PhaseTime = 0
			u.AimHeading = w.ufoAim(e)
			u.Laser = w.MakeLaser(e, u.AimHeading).Handle()
			w.Fire(e)
			w.play(service.SoundLaser)
		}
	case UFOFiring:
		if u.PhaseTime >= config.BossLaserDuration {
			u.Phase = UFOCruise
			u.FireCooldown = t.fireInterval
			e.SetHeading(w.randAngle(), config.UFOSpeed*t.speedScale)
		}
	}
}

// ufoAim returns the attack heading: at the ship with difficulty jitter for
// tracking tiers, otherwise uniformly random.
func (w *World) ufoAim(e *Entity) float64 {
	ship := w.Ship()
	if !e.UFO.Tier.tier().tracks || ship == nil {
		return w.randAngle()
	}
	jitter := w.Difficulty.UFOAimJitter()
	return w.shortestOffset(e.Position, ship.Position).Angle() + w.randRange(-jitter, jitter)
}

// ufoFire shoots one bullet along AimHeading, or a fan for the Boss.
func ufoFire(w *World, e *Entity) {
	u := e.UFO
	t := u.Tier.tier()
	speed := t.bulletSpeed * w.Difficulty.UFOBulletSpeedScale()

	if u.Tier != UFOBoss {
		w.ufoBullet(e, u.AimHeading, speed)
		w.play(service.SoundUFOFire)
		return
	}
	n := config.BossFanBullets
	step := config.BossFanSpread / float64(n-1)
	start := u.AimHeading - config.BossFanSpread/2
	for i := range n {
		w.ufoBullet(e, start+float64(i)*step, speed)
	}
}

func (w *World) ufoBullet(e *Entity, heading, speed float64) {
	muzzle := e.Position.Add(physics.FromAngle(heading).Scale(e.CosmeticRadius))
	w.MakeBullet(e, muzzle, heading, speed)
}

func ufoCollision(w *World, e, other *Entity) {
	if e.Faction == other.Faction {
		return
	}
	switch other.Kind {
	case KindBullet:
		other.Kill()
		e.Damage(1)
	case KindMine:
		w.Detonate(other)
	case KindShip:
		// Ramming costs the ship its life, not the UFO.
	default:
		e.Damage(1)
	}
}

func ufoDestroy(w *World, e *Entity) {
	for _, h := range [...]Handle{e.UFO.Charge, e.UFO.Laser} {
		if c := w.Get(h); c != nil {
			c.Kill()
		}
	}
	w.MakeExplosion(e.Position, e.CosmeticRadius/2)
	w.play(service.SoundExplodeLarge)
	if e.UFO.Tier == UFOBoss {
		w.Listener.Shake(1.5)
	}
}
