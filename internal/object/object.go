// Package object holds the entity model: a single entity record, the closed
// set of entity kinds with their behaviour tables, and the World arena that
// owns every entity and hands out stable handles.
package object

import (
	"fmt"

	"github.com/tomz197/rockfall/internal/physics"
	"github.com/tomz197/rockfall/internal/service"
	"github.com/tomz197/rockfall/internal/sprite"
)

// Kind is the closed set of entity variants.
type Kind uint8

const (
	KindShip Kind = iota
	KindAsteroid
	KindBullet
	KindMine
	KindUFO
	KindExplosion
	KindThrust
	KindLaser
	KindLaserCharge
	kindCount
)

// Kinds lists every entity kind.
func Kinds() []Kind {
	ks := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		ks = append(ks, k)
	}
	return ks
}

func (k Kind) String() string {
	switch k {
	case KindShip:
		return "ship"
	case KindAsteroid:
		return "asteroid"
	case KindBullet:
		return "bullet"
	case KindMine:
		return "mine"
	case KindUFO:
		return "ufo"
	case KindExplosion:
		return "explosion"
	case KindThrust:
		return "thrust"
	case KindLaser:
		return "laser"
	case KindLaserCharge:
		return "laser_charge"
	default:
		panic(fmt.Sprintf("object: unknown kind %d", uint8(k)))
	}
}

// Faction is the coarse side an entity fights for.
type Faction uint8

const (
	FactionNone Faction = iota
	FactionPlayer
	FactionEnemy
	FactionAsteroid
)

func (f Faction) String() string {
	switch f {
	case FactionNone:
		return "none"
	case FactionPlayer:
		return "player"
	case FactionEnemy:
		return "enemy"
	case FactionAsteroid:
		return "asteroid"
	default:
		panic(fmt.Sprintf("object: unknown faction %d", uint8(f)))
	}
}

// Handle is a stable reference to an entity in a World. Handles to destroyed
// entities resolve to nil, even after the slot is reused.
type Handle struct {
	index uint32
	gen   uint32
}

// Nil is the zero handle; it never resolves.
var Nil Handle

// IsNil reports whether h is the zero handle.
func (h Handle) IsNil() bool { return h.gen == 0 }

func (h Handle) String() string {
	if h.IsNil() {
		return "handle(nil)"
	}
	return fmt.Sprintf("handle(%d#%d)", h.index, h.gen)
}

// Entity is the single record shared by every kind. Kind-specific state lives
// in exactly one of the variant pointers, matching Kind.
type Entity struct {
	physics.Body

	Kind       Kind
	Faction    Faction
	Health     int
	ScoreValue int
	Parent     Handle
	Age        float64 // Seconds since the entity was created

	// Appearance, rebuilt into Transform and Mesh once per rendered frame.
	Material    string
	Scale       float64
	Alpha       float64
	Tint        service.Color
	Visible     bool
	HalfExtents physics.Vec2 // Overrides CosmeticRadius for non-square quads
	UV          sprite.UV
	Transform   physics.Mat3
	Mesh        [4]service.Vertex

	Ship      *ShipData
	Asteroid  *AsteroidData
	Bullet    *BulletData
	Mine      *MineData
	UFO       *UFOData
	Explosion *ExplosionData
	Attach    *AttachData

	handle   Handle
	dead     bool
	reapable bool // Survived one end-of-frame pass while dead
	pending  bool // Spawned but not yet promoted to the live list
}

func newEntity(kind Kind, faction Faction, pos physics.Vec2) *Entity {
	return &Entity{
		Body:     physics.NewBody(pos),
		Kind:     kind,
		Faction:  faction,
		Health:   1,
		Material: kind.String(),
		Scale:    1,
		Alpha:    1,
		Tint:     service.White,
		Visible:  true,
		UV:       sprite.Full,
	}
}

// Handle returns the entity's handle in its world.
func (e *Entity) Handle() Handle { return e.handle }

// Kill marks the entity dead. It stays in the world, still updated and
// rendered, until the end-of-frame pass after the one that first sees it dead.
func (e *Entity) Kill() {
	e.dead = true
	if e.Health > 0 {
		e.Health = 0
	}
}

// IsDead reports whether the entity was killed or ran out of health.
func (e *Entity) IsDead() bool {
	return e.dead || e.Health <= 0
}

// IsPending reports whether the entity was spawned this frame and has not
// been promoted to the live list yet.
func (e *Entity) IsPending() bool { return e.pending }

// Damage removes health and kills the entity when it reaches zero.
func (e *Entity) Damage(amount int) {
	e.Health -= amount
	if e.Health <= 0 {
		e.Kill()
	}
}

// Collidable reports whether the entity takes part in collision sweeps this
// frame: promoted, alive, and (for mines) armed.
func (e *Entity) Collidable() bool {
	if e.pending || e.IsDead() {
		return false
	}
	if e.Mine != nil && !e.Mine.Armed {
		return false
	}
	return true
}

// RebuildMesh recomputes the model matrix and the textured quad.
func (e *Entity) RebuildMesh() {
	half := e.HalfExtents
	if half == physics.Zero {
		half = physics.Vec2{X: e.CosmeticRadius, Y: e.CosmeticRadius}
	}
	e.Transform = physics.TRS(e.Position, e.Orientation, e.Scale)
	uv := e.UV
	e.Mesh = [4]service.Vertex{
		{Pos: physics.Vec2{X: -half.X, Y: -half.Y}, U: uv.MinU, V: uv.MaxV},
		{Pos: physics.Vec2{X: half.X, Y: -half.Y}, U: uv.MaxU, V: uv.MaxV},
		{Pos: physics.Vec2{X: half.X, Y: half.Y}, U: uv.MaxU, V: uv.MinV},
		{Pos: physics.Vec2{X: -half.X, Y: half.Y}, U: uv.MinU, V: uv.MinV},
	}
}
