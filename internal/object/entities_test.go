package object

import (
	"math"
	"testing"

	"github.com/tomz197/rockfall/internal/loop/config"
	"github.com/tomz197/rockfall/internal/physics"
)

func TestAsteroidSplit_ChildCounts(t *testing.T) {
	tests := []struct {
		size     AsteroidSize
		children int
		child    AsteroidSize
	}{
		{AsteroidLarge, 2, AsteroidMedium},
		{AsteroidMedium, 4, AsteroidSmall},
		{AsteroidSmall, 0, 0},
	}

	for _, tt := range tests {
		w, _ := newTestWorld(config.Normal)
		a := w.MakeAsteroid(tt.size, physics.Vec2{X: 80, Y: 45}, 0, 0, 0)
		w.EndFrame()
		a.Kill()
		w.EndFrame()
		w.EndFrame()

		hs := w.Typed(KindAsteroid)
		if len(hs) != tt.children {
			t.Errorf("%s: expected %d children, got %d", tt.size, tt.children, len(hs))
			continue
		}
		for _, h := range hs {
			if got := w.MustGet(h).Asteroid.Size; got != tt.child {
				t.Errorf("%s: expected child size %s, got %s", tt.size, tt.child, got)
			}
		}
	}
}

func TestAsteroidSplit_ChildSpeedRange(t *testing.T) {
	tests := []struct {
		name   string
		size   AsteroidSize
		speed  float64
		lo, hi float64
	}{
		{"large", AsteroidLarge, 3, config.MediumSpeedScaleMin, config.MediumSpeedScaleMax},
		{"slow large", AsteroidLarge, 0.5, config.MediumSpeedScaleMin, config.MediumSpeedScaleMax},
		{"crawling large", AsteroidLarge, 0.05, config.MediumSpeedScaleMin, config.MediumSpeedScaleMax},
		{"slow medium", AsteroidMedium, 0.5, config.SmallSpeedScaleMin, config.SmallSpeedScaleMax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := newTestWorld(config.Normal)
			for range 50 {
				a := w.MakeAsteroid(tt.size, physics.Vec2{X: 80, Y: 45}, 30, tt.speed, 0)
				w.EndFrame()
				a.Kill()
				w.EndFrame()
				w.EndFrame()
			}

			hs := w.Typed(KindAsteroid)
			if len(hs) == 0 {
				t.Fatal("Expected children")
			}
			for _, h := range hs {
				ratio := w.MustGet(h).Speed / tt.speed
				if ratio < tt.lo-1e-9 || ratio > tt.hi+1e-9 {
					t.Errorf("Expected speed multiplier in [%v, %v], got %v", tt.lo, tt.hi, ratio)
				}
			}
		})
	}
}

func TestAsteroidSplit_RestingParentScatters(t *testing.T) {
	w, _ := newTestWorld(config.Normal)
	a := w.MakeAsteroid(AsteroidLarge, physics.Vec2{X: 80, Y: 45}, 0, 0, 0)
	w.EndFrame()
	a.Kill()
	w.EndFrame()
	w.EndFrame()

	lo := config.AsteroidRestingSplitSpeed * config.MediumSpeedScaleMin
	hi := config.AsteroidRestingSplitSpeed * config.MediumSpeedScaleMax
	for _, h := range w.Typed(KindAsteroid) {
		if got := w.MustGet(h).Speed; got < lo-1e-9 || got > hi+1e-9 {
			t.Errorf("Expected child speed in [%v, %v], got %v", lo, hi, got)
		}
	}
}

// Three bullets, one per frame, bring a large asteroid down. It is destroyed
// on the following end of frame and exactly two mediums appear.
func TestLargeAsteroid_ThreeBulletsThenSplit(t *testing.T) {
	w, l := newTestWorld(config.Normal)
	ship := w.MakeShip(physics.Vec2{X: 20, Y: 20}, false)
	rock := w.MakeAsteroid(AsteroidLarge, physics.Vec2{}, 0, 0, 0)
	w.EndFrame()

	var bullet *Entity
	for frame := 1; frame <= 4; frame++ {
		w.Update(dt)
		if bullet != nil && bullet.Collidable() && rock.Collidable() && rock.Overlaps(&bullet.Body) {
			w.Collide(rock, bullet)
		}
		if frame <= 3 {
			bullet = w.MakeBullet(ship, physics.Vec2{}, 0, 0)
		}
		w.EndFrame()

		if frame == 3 && rock.Health != 1 {
			t.Fatalf("Expected health 1 after two hits, got %d", rock.Health)
		}
	}
	if !rock.IsDead() {
		t.Fatalf("Expected asteroid dead after three hits, health %d", rock.Health)
	}
	if w.Get(rock.Handle()) == nil {
		t.Fatal("Expected dead asteroid to survive one end of frame")
	}

	step(w)
	if w.Get(rock.Handle()) != nil {
		t.Fatal("Expected asteroid destroyed on the following end of frame")
	}
	if n := countLive(w, KindAsteroid); n != 2 {
		t.Errorf("Expected 2 live medium asteroids, got %d", n)
	}
	if l.score != config.ScoreLargeAsteroid {
		t.Errorf("Expected score %d, got %d", config.ScoreLargeAsteroid, l.score)
	}
}

func TestBullet_ConsumedByTarget(t *testing.T) {
	w, _ := newTestWorld(config.Normal)
	ship := w.MakeShip(physics.Vec2{X: 20, Y: 20}, false)
	rock := w.MakeAsteroid(AsteroidLarge, physics.Vec2{}, 0, 0, 0)
	b := w.MakeBullet(ship, physics.Vec2{}, 0, 0)
	w.EndFrame()

	w.Collide(rock, b)
	if !b.IsDead() {
		t.Error("Expected bullet consumed by the asteroid")
	}
	if rock.Health != AsteroidLarge.Health()-1 {
		t.Errorf("Expected one damage, got health %d", rock.Health)
	}
}

func TestBullet_ExpiresAfterTTL(t *testing.T) {
	w, _ := newTestWorld(config.Hard)
	ship := w.MakeShip(physics.Vec2{X: 20, Y: 20}, false)
	b := w.MakeBullet(ship, physics.Vec2{X: 20, Y: 20}, 0, 10)
	w.EndFrame()

	if b.Faction != FactionPlayer {
		t.Errorf("Expected bullet to inherit player faction, got %s", b.Faction)
	}
	frames := int(math.Ceil(config.Hard.BulletTTL()/dt)) + 1
	for range frames {
		w.Update(dt)
	}
	if !b.IsDead() {
		t.Errorf("Expected bullet dead after %v seconds", config.Hard.BulletTTL())
	}
}

func TestShip_FireRateLimited(t *testing.T) {
	w, _ := newTestWorld(config.Normal)
	ship := w.MakeShip(physics.Vec2{X: 80, Y: 45}, false)
	w.EndFrame()

	ship.Ship.Control.Fire = true
	for range 6 {
		step(w)
	}
	if n := w.Count(KindBullet); n != 1 {
		t.Errorf("Expected 1 bullet within the fire interval, got %d", n)
	}
}

func TestShip_ThrustAcceleratesAlongFacing(t *testing.T) {
	w, _ := newTestWorld(config.Normal)
	ship := w.MakeShip(physics.Vec2{X: 80, Y: 45}, false)
	w.EndFrame()

	ship.Ship.Control.Thrust = 1
	for range 10 {
		step(w)
	}
	want := config.ShipThrustForce * 10 * dt
	v := ship.Velocity()
	if math.Abs(v.Y-want) > 1e-9 || math.Abs(v.X) > 1e-9 {
		t.Errorf("Expected velocity (0, %v), got %+v", want, v)
	}

	thrust := w.MustGet(ship.Ship.Thrust)
	if !thrust.Visible {
		t.Error("Expected flame visible while thrusting")
	}
	behind := ship.Position.Sub(ship.Forward().Scale(config.ThrustOffset))
	if physics.Distance(thrust.Position, behind) > 1e-9 {
		t.Errorf("Expected flame behind the ship at %+v, got %+v", behind, thrust.Position)
	}
}

func TestShip_RespawnEasesIn(t *testing.T) {
	w, _ := newTestWorld(config.Normal)
	ship := w.MakeShip(w.Bounds.Center(), true)
	w.EndFrame()
	if ship.Scale != 0 || ship.Alpha != 0 {
		t.Fatalf("Expected respawning ship to start invisible, got scale %v alpha %v", ship.Scale, ship.Alpha)
	}

	rock := w.MakeAsteroid(AsteroidLarge, ship.Position, 0, 0, 0)
	w.EndFrame()
	w.Collide(ship, rock)
	if ship.IsDead() {
		t.Fatal("Expected respawning ship to ignore collisions")
	}

	half := int(config.RespawnEaseDuration / 2 / dt)
	for range half {
		w.Update(dt)
	}
	if ship.Scale <= 0 || ship.Scale >= 1 {
		t.Errorf("Expected scale mid-ease, got %v", ship.Scale)
	}

	for range int(config.RespawnInvulnerable/dt) + 2 {
		w.Update(dt)
	}
	if ship.Ship.Respawning || ship.Scale != 1 || ship.Alpha != 1 {
		t.Error("Expected respawn state to end after the invulnerability window")
	}
	w.Collide(ship, rock)
	if !ship.IsDead() {
		t.Error("Expected ship to die once vulnerable")
	}
}

func TestShip_UFOContactKills(t *testing.T) {
	w, _ := newTestWorld(config.Normal)
	ship := w.MakeShip(physics.Vec2{X: 80, Y: 45}, false)
	ufo := w.MakeUFO(UFOBig, physics.Vec2{X: 80, Y: 45})
	w.EndFrame()
	ship.Health = 5

	w.Collide(ship, ufo)
	if !ship.IsDead() {
		t.Error("Expected UFO contact to kill the ship outright")
	}
}

func TestShip_DeadShipIgnoresControls(t *testing.T) {
	w, _ := newTestWorld(config.Normal)
	ship := w.MakeShip(physics.Vec2{X: 80, Y: 45}, false)
	w.EndFrame()

	ship.Ship.Control = Control{Thrust: 1, Fire: true, DropMine: true}
	ship.Kill()
	w.EndFrame()
	w.Update(dt)

	if n := w.Count(KindBullet); n != 0 {
		t.Errorf("Expected no bullets after ship death, got %d", n)
	}
	if n := w.Count(KindMine); n != 0 {
		t.Errorf("Expected no mines after ship death, got %d", n)
	}
	if ship.Ship.Thrusting || ship.Speed != 0 {
		t.Errorf("Expected a dead ship not to thrust, speed %v", ship.Speed)
	}
}

func TestShip_DestroyAwardsPenaltyAndRemovesThrust(t *testing.T) {
	w, l := newTestWorld(config.Normal)
	ship := w.MakeShip(physics.Vec2{X: 80, Y: 45}, false)
	thrust := ship.Ship.Thrust
	w.EndFrame()

	ship.Kill()
	step(w)
	step(w)
	if l.score != config.ScoreShip {
		t.Errorf("Expected score %d, got %d", config.ScoreShip, l.score)
	}
	if l.shakes == 0 {
		t.Error("Expected camera shake on ship death")
	}
	step(w)
	step(w)
	if w.Get(thrust) != nil {
		t.Error("Expected thrust child destroyed with the ship")
	}
}

func TestMine_ArmsAndLimit(t *testing.T) {
	w, _ := newTestWorld(config.Normal)
	ship := w.MakeShip(physics.Vec2{X: 80, Y: 45}, false)
	w.EndFrame()

	ship.Ship.Control.DropMine = true
	for range int(10 / dt) {
		step(w)
	}
	if n := w.minesOwnedBy(ship.Handle()); n != config.MaxLiveMines {
		t.Errorf("Expected %d live mines, got %d", config.MaxLiveMines, n)
	}

	m := w.MustGet(w.Typed(KindMine)[0])
	if !m.Mine.Armed || !m.Collidable() {
		t.Error("Expected old mine to be armed")
	}
	if m.Speed != 0 {
		t.Errorf("Expected mine to be stationary, got speed %v", m.Speed)
	}
}

func TestMine_UnarmedNotCollidable(t *testing.T) {
	w, _ := newTestWorld(config.Normal)
	ship := w.MakeShip(physics.Vec2{X: 80, Y: 45}, false)
	m := w.MakeMine(ship)
	w.EndFrame()
	if m.Collidable() {
		t.Error("Expected fresh mine to be unarmed")
	}
	for range int(config.MineArmDelay/dt) + 2 {
		w.Update(dt)
	}
	if !m.Collidable() {
		t.Error("Expected mine armed after the arm delay")
	}
}

func TestMine_BlastDamagesAcrossWorldEdge(t *testing.T) {
	w, _ := newTestWorld(config.Normal)
	ship := w.MakeShip(physics.Vec2{X: 80, Y: 45}, false)
	ship.Position = physics.Vec2{X: 1, Y: 45}
	m := w.MakeMine(ship)
	near := w.MakeAsteroid(AsteroidSmall, physics.Vec2{X: 158, Y: 45}, 0, 0, 0)
	far := w.MakeAsteroid(AsteroidSmall, physics.Vec2{X: 40, Y: 45}, 0, 0, 0)
	w.EndFrame()

	w.Collide(near, m)
	if !m.IsDead() || !m.Mine.Detonated {
		t.Fatal("Expected mine to detonate")
	}
	if !near.IsDead() {
		t.Error("Expected asteroid across the edge to be caught in the blast")
	}
	if far.IsDead() {
		t.Error("Expected distant asteroid to survive")
	}

	near.Health = 1
	w.Detonate(m)
	if near.Health != 1 {
		t.Error("Expected a mine to detonate only once")
	}
}

func TestMine_ExpiresAfterLifetime(t *testing.T) {
	w, _ := newTestWorld(config.Normal)
	ship := w.MakeShip(physics.Vec2{X: 80, Y: 45}, false)
	m := w.MakeMine(ship)
	w.EndFrame()
	for range int(config.MineLifetime/dt) + 2 {
		w.Update(dt)
	}
	if !m.IsDead() || m.Mine.Detonated {
		t.Error("Expected mine to expire quietly")
	}
}

func TestWaveSpawner_NormalWaveTwo(t *testing.T) {
	w, _ := newTestWorld(config.Normal)
	s := NewWaveSpawner()

	if got := s.Update(w); got != 1 {
		t.Fatalf("Expected wave 1 to start, got %d", got)
	}
	if n := w.Count(KindAsteroid); n != 5 {
		t.Fatalf("Expected 5 asteroids in wave 1, got %d", n)
	}
	if got := s.Update(w); got != 0 {
		t.Fatalf("Expected no wave while asteroids remain, got %d", got)
	}

	w.Clear()
	if got := s.Update(w); got != 2 {
		t.Fatalf("Expected wave 2 to start, got %d", got)
	}
	if n := w.Count(KindAsteroid); n != 10 {
		t.Errorf("Expected 10 asteroids in wave 2, got %d", n)
	}
	for _, h := range w.Typed(KindAsteroid) {
		a := w.MustGet(h)
		if a.Asteroid.Size != AsteroidLarge {
			t.Errorf("Expected large asteroid, got %s", a.Asteroid.Size)
		}
		if a.Speed < config.AsteroidMinWaveSpeed || a.Speed > config.AsteroidMaxWaveSpeed {
			t.Errorf("Expected wave speed in range, got %v", a.Speed)
		}
		b := w.Bounds
		m := config.EdgeSpawnMargin + 1e-9
		onEdge := a.Position.X <= b.Min.X+m || a.Position.X >= b.Max.X-m ||
			a.Position.Y <= b.Min.Y+m || a.Position.Y >= b.Max.Y-m
		if !onEdge {
			t.Errorf("Expected asteroid on a world edge, got %+v", a.Position)
		}
	}
}

func TestTierForWave(t *testing.T) {
	tests := []struct {
		wave int
		want UFOTier
	}{
		{1, UFOSmall},
		{2, UFOSmall},
		{3, UFOBig},
		{5, UFOBoss},
		{7, UFOBig},
		{10, UFOBoss},
	}
	for _, tt := range tests {
		if got := TierForWave(tt.wave); got != tt.want {
			t.Errorf("wave %d: expected %s, got %s", tt.wave, tt.want, got)
		}
	}
}

func TestUFO_TrackingAimWithinJitter(t *testing.T) {
	w, _ := newTestWorld(config.Hard)
	w.MakeShip(physics.Vec2{X: 100, Y: 45}, false)
	ufo := w.MakeUFO(UFOBig, physics.Vec2{X: 80, Y: 45})
	w.EndFrame()

	jitter := config.Hard.UFOAimJitter()
	for range 100 {
		got := w.ufoAim(ufo)
		if got > 180 {
			got -= 360
		}
		if math.Abs(got) > jitter {
			t.Fatalf("Expected aim within %v degrees of the ship, got %v", jitter, got)
		}
	}
}

func TestUFO_BossChargesThenFiresFan(t *testing.T) {
	w, _ := newTestWorld(config.Normal)
	w.MakeShip(physics.Vec2{X: 20, Y: 20}, false)
	boss := w.MakeUFO(UFOBoss, physics.Vec2{X: 80, Y: 45})
	w.EndFrame()

	boss.UFO.FireCooldown = 0
	step(w)
	if boss.UFO.Phase != UFOCharging {
		t.Fatalf("Expected boss to start charging, got phase %d", boss.UFO.Phase)
	}
	if w.Get(boss.UFO.Charge) == nil {
		t.Fatal("Expected a laser charge child")
	}
	if w.Count(KindBullet) != 0 {
		t.Fatal("Expected no bullets while charging")
	}

	for range int(config.BossChargeDuration/dt) + 2 {
		step(w)
	}
	if boss.UFO.Phase != UFOFiring {
		t.Fatalf("Expected boss to be firing, got phase %d", boss.UFO.Phase)
	}
	if n := w.Count(KindBullet); n != config.BossFanBullets {
		t.Errorf("Expected %d bullets in the fan, got %d", config.BossFanBullets, n)
	}
	laser := w.Get(boss.UFO.Laser)
	if laser == nil {
		t.Fatal("Expected a laser child")
	}
	if laser.Collidable() && laser.PhysicalRadius > 0 {
		t.Error("Expected laser to stay out of collisions")
	}

	for range int(config.BossLaserDuration/dt) + 2 {
		step(w)
	}
	if boss.UFO.Phase != UFOCruise {
		t.Errorf("Expected boss back to cruise, got phase %d", boss.UFO.Phase)
	}
}

func TestUFO_DestroyKillsChildrenAndShakes(t *testing.T) {
	w, l := newTestWorld(config.Normal)
	boss := w.MakeUFO(UFOBoss, physics.Vec2{X: 80, Y: 45})
	charge := w.MakeLaserCharge(boss)
	w.EndFrame()
	boss.UFO.Charge = charge.Handle()

	boss.Kill()
	w.EndFrame()
	w.EndFrame()
	if !charge.IsDead() {
		t.Error("Expected charge to die with its boss")
	}
	if l.score != config.ScoreBossUFO {
		t.Errorf("Expected score %d, got %d", config.ScoreBossUFO, l.score)
	}
	if l.shakes == 0 {
		t.Error("Expected camera shake on boss destruction")
	}
}

func TestExplosion_DiesWhenAnimationEnds(t *testing.T) {
	w, _ := newTestWorld(config.Normal)
	e := w.MakeExplosion(physics.Vec2{X: 10, Y: 10}, 2)
	w.EndFrame()

	first := e.UV
	w.Update(dt * 10)
	if e.UV == first {
		t.Error("Expected the explosion to advance frames")
	}
	for range int(config.ExplosionDuration/dt) + 2 {
		w.Update(dt)
	}
	if !e.IsDead() {
		t.Error("Expected explosion dead after its animation")
	}
}

func TestBehaviorOf_PanicsOnUnknownKind(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected unknown kind to panic")
		}
	}()
	BehaviorOf(kindCount)
}
