package object

import (
	"fmt"

	"github.com/tomz197/rockfall/internal/loop/config"
	"github.com/tomz197/rockfall/internal/physics"
	"github.com/tomz197/rockfall/internal/service"
)

// AsteroidSize represents the size category of an asteroid.
type AsteroidSize int

const (
	AsteroidSmall AsteroidSize = iota
	AsteroidMedium
	AsteroidLarge
)

// asteroidTier holds the fixed properties of one size.
type asteroidTier struct {
	name           string
	cosmeticRadius float64
	physicalRadius float64
	health         int
	score          int
	sound          string
}

var asteroidTiers = [...]asteroidTier{
	AsteroidSmall:  {"small", 1.8, 1.5, 1, config.ScoreSmallAsteroid, service.SoundExplodeSmall},
	AsteroidMedium: {"medium", 3.5, 3.0, 2, config.ScoreMediumAsteroid, service.SoundExplodeMedium},
	AsteroidLarge:  {"large", 6.0, 5.0, 3, config.ScoreLargeAsteroid, service.SoundExplodeLarge},
}

func (s AsteroidSize) tier() asteroidTier {
	if s < AsteroidSmall || s > AsteroidLarge {
		panic(fmt.Sprintf("object: invalid asteroid size %d", int(s)))
	}
	return asteroidTiers[s]
}

func (s AsteroidSize) String() string { return s.tier().name }

// PhysicalRadius returns the collision radius of the size.
func (s AsteroidSize) PhysicalRadius() float64 { return s.tier().physicalRadius }

// Health returns the starting health of the size.
func (s AsteroidSize) Health() int { return s.tier().health }

// splitInto returns the child size, how many children, and the child speed
// multiplier range. ok is false for sizes that do not split.
func (s AsteroidSize) splitInto() (child AsteroidSize, count int, lo, hi float64, ok bool) {
	switch s {
	case AsteroidLarge:
		return AsteroidMedium, config.MediumSplitCount, config.MediumSpeedScaleMin, config.MediumSpeedScaleMax, true
	case AsteroidMedium:
		return AsteroidSmall, config.SmallSplitCount, config.SmallSpeedScaleMin, config.SmallSpeedScaleMax, true
	default:
		return 0, 0, 0, 0, false
	}
}

// AsteroidData is the per-asteroid state.
type AsteroidData struct {
	Size AsteroidSize
}

// MakeAsteroid spawns an asteroid travelling along heading (degrees) at speed
// and spinning at spin degrees per second.
func (w *World) MakeAsteroid(size AsteroidSize, pos physics.Vec2, heading, speed, spin float64) *Entity {
	t := size.tier()
	e := newEntity(KindAsteroid, FactionAsteroid, pos)
	e.CosmeticRadius = t.cosmeticRadius
	e.PhysicalRadius = t.physicalRadius
	e.Health = t.health
	e.ScoreValue = t.score
	e.Material = "asteroid_" + t.name
	e.Tint = service.Grey
	e.SetHeading(heading, speed)
	e.SetOrientation(w.randAngle())
	e.RotationSpeed = spin
	e.Asteroid = &AsteroidData{Size: size}
	w.Spawn(e)
	return e
}

// MakeAsteroidAtEdge spawns a Large asteroid at a random point just inside a
// random world edge, with a random heading, wave speed and spin.
func (w *World) MakeAsteroidAtEdge() *Entity {
	b := w.Bounds
	m := config.EdgeSpawnMargin
	var pos physics.Vec2
	switch w.Rand.Intn(4) {
	case 0: // Top
		pos = physics.Vec2{X: w.randRange(b.Min.X, b.Max.X), Y: b.Max.Y - m}
	case 1: // Bottom
		pos = physics.Vec2{X: w.randRange(b.Min.X, b.Max.X), Y: b.Min.Y + m}
	case 2: // Left
		pos = physics.Vec2{X: b.Min.X + m, Y: w.randRange(b.Min.Y, b.Max.Y)}
	default: // Right
		pos = physics.Vec2{X: b.Max.X - m, Y: w.randRange(b.Min.Y, b.Max.Y)}
	}

	speed := w.randRange(config.AsteroidMinWaveSpeed, config.AsteroidMaxWaveSpeed)
	spin := w.randRange(-config.AsteroidMaxSpin, config.AsteroidMaxSpin)
	return w.MakeAsteroid(AsteroidLarge, pos, w.randAngle(), speed, spin)
}

func asteroidBehavior() Behavior {
	return Behavior{
		OnCollision: asteroidCollision,
		OnDestroy:   asteroidDestroy,
		Kinematic:   true,
	}
}

// asteroidCollision takes a hit from a bullet or triggers a mine. Asteroids
// have no faction rule of their own: anything not of their faction hurts.
func asteroidCollision(w *World, e, other *Entity) {
	if e.Faction == other.Faction {
		return
	}
	switch other.Kind {
	case KindBullet:
		other.Kill()
		e.Damage(1)
	case KindMine:
		w.Detonate(other)
	default:
		e.Damage(1)
	}
}

// asteroidDestroy splits the asteroid into the next size down. Children take
// the parent's speed scaled by a random factor on independent random headings.
func asteroidDestroy(w *World, e *Entity) {
	size := e.Asteroid.Size
	w.MakeExplosion(e.Position, e.CosmeticRadius/2)
	w.play(size.tier().sound)

	child, count, lo, hi, ok := size.splitInto()
	if !ok {
		return
	}
	base := e.Speed
	if base == 0 {
		// Children of a resting asteroid scatter instead of piling up.
		base = config.AsteroidRestingSplitSpeed
	}
	for range count {
		speed := base * w.randRange(lo, hi)
		spin := w.randRange(-config.AsteroidMaxSpin, config.AsteroidMaxSpin)
		w.MakeAsteroid(child, e.Position, w.randAngle(), speed, spin)
	}
}
