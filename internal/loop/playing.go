package loop

import (
	"fmt"

	"github.com/tomz197/rockfall/internal/loop/config"
	"github.com/tomz197/rockfall/internal/object"
	"github.com/tomz197/rockfall/internal/physics"
	"github.com/tomz197/rockfall/internal/service"
)

// mainState is the gameplay mode: it routes input to the ship, spawns waves
// and UFOs, runs the collision sweep, and respawns the ship.
type mainState struct {
	game    *Game
	world   *object.World
	spawner *object.WaveSpawner
	shake   *Shake

	ship         object.Handle
	respawnTimer float64 // Seconds until the next ship appears, when > 0
	ufoTimer     float64
	paused       bool
	debug        bool
}

func newMainState() *mainState {
	return &mainState{}
}

// AwardScore implements object.Listener.
func (m *mainState) AwardScore(points int) {
	m.game.Player.AwardScore(points)
}

// Shake implements object.Listener.
func (m *mainState) Shake(amount float64) {
	m.shake.Add(amount)
}

func (m *mainState) OnEnter(g *Game) {
	m.game = g
	st := g.Settings
	g.Player = NewPlayer(st.Difficulty.StartingLives())
	g.LastWave = 0

	m.world = object.NewWorld(g.MainWorldBounds(), st.Difficulty, g.Services)
	m.world.Listener = m
	m.spawner = object.NewWaveSpawner()
	m.shake = NewShake(st.ShakeIntensity, st.ShakeDecay)
	m.ship = m.world.MakeShip(m.world.Bounds.Center(), false).Handle()
	m.respawnTimer = 0
	m.ufoTimer = st.Difficulty.UFOSpawnInterval()
	m.paused = false

	g.Services.Log.Info("Game started", "difficulty", st.Difficulty, "lives", g.Player.Lives)
	g.play(service.SoundMusic)
}

func (m *mainState) OnExit(g *Game) {
	g.LastWave = m.spawner.Current()
	m.world.Clear()
	m.ship = object.Nil
}

// BeginFrame starts a new wave when no asteroids are left.
func (m *mainState) BeginFrame(g *Game) {
	if m.paused {
		return
	}
	wave := m.spawner.Update(m.world)
	if wave == 0 {
		return
	}
	g.LastWave = wave
	g.Services.Log.Info("Wave started", "wave", wave, "asteroids", m.world.Difficulty.WaveSize(wave))
	if object.TierForWave(wave) == object.UFOBoss {
		m.world.MakeUFOAtEdge(object.UFOBoss)
	}
}

func (m *mainState) Update(g *Game, dt float64) {
	in := g.Services.Input
	if in.WasKeyJustPressed(service.KeyPause) {
		m.paused = !m.paused
	}
	if in.WasKeyJustPressed(service.KeyDebug) {
		m.debug = !m.debug
	}
	if m.paused {
		return
	}

	if ship := m.world.Get(m.ship); ship != nil {
		ship.Ship.Control = m.readControl(g)
	}

	m.world.Update(dt)
	m.updateUFOSpawns(dt)
	m.sweepCollisions()
	m.updateRespawn(dt)
	m.shake.Update(dt)
}

func (m *mainState) EndFrame(g *Game) {
	if m.paused {
		return
	}
	m.world.EndFrame()
}

// readControl maps the configured device onto ship controls.
func (m *mainState) readControl(g *Game) object.Control {
	in := g.Services.Input
	var c object.Control

	switch g.Settings.Controls {
	case ControlsController:
		pad := in.Controller()
		if pad.Connected {
			c.Turn = -pad.LeftStick.X
			c.Thrust = max(pad.RightTrigger, 0)
			c.Fire = pad.ButtonA
			c.DropMine = pad.ButtonB
			return c
		}
	case ControlsMouse:
		if pos, ok := in.Cursor(); ok {
			c.Aim = pos
			c.HasAim = true
		}
	}

	if in.IsKeyDown(service.KeyLeft) {
		c.Turn++
	}
	if in.IsKeyDown(service.KeyRight) {
		c.Turn--
	}
	if in.IsKeyDown(service.KeyUp) {
		c.Thrust = 1
	}
	c.Fire = in.IsKeyDown(service.KeyFire)
	c.DropMine = in.WasKeyJustPressed(service.KeyMine)
	return c
}

// updateUFOSpawns sends a UFO every difficulty-scaled interval, one at a time.
func (m *mainState) updateUFOSpawns(dt float64) {
	m.ufoTimer -= dt
	if m.ufoTimer > 0 {
		return
	}
	m.ufoTimer = m.world.Difficulty.UFOSpawnInterval()
	if m.world.Count(object.KindUFO) > 0 {
		return
	}
	tier := object.TierForWave(max(m.spawner.Current(), 1))
	if tier == object.UFOBoss {
		// Bosses arrive only with their wave.
		tier = object.UFOBig
	}
	m.world.MakeUFOAtEdge(tier)
}

// onShipDestroyed runs in the sweep the moment the ship dies.
func (m *mainState) onShipDestroyed() {
	g := m.game
	g.Player.LoseLife()
	m.ship = object.Nil
	g.Services.Log.Info("Ship destroyed", "lives", g.Player.Lives, "score", g.Player.Score)

	if g.Player.IsGameOver() {
		g.RequestState(StateGameOver)
		return
	}
	m.respawnTimer = config.RespawnDelay
}

// updateRespawn places a fresh, easing-in ship at the world centre once the
// respawn delay has elapsed.
func (m *mainState) updateRespawn(dt float64) {
	if m.respawnTimer <= 0 {
		return
	}
	m.respawnTimer -= dt
	if m.respawnTimer <= 0 {
		m.respawnTimer = 0
		m.ship = m.world.MakeShip(m.world.Bounds.Center(), true).Handle()
	}
}

// Ship returns the player's ship, or nil between a death and the respawn.
func (m *mainState) Ship() *object.Entity { return m.world.Get(m.ship) }

func (m *mainState) Render(g *Game, r service.Renderer) {
	b := m.world.Bounds
	off := m.shake.Offset(g.Services.Rand)
	r.SetCamera(physics.Bounds{Min: b.Min.Add(off), Max: b.Max.Add(off)})
	m.world.Render(r, m.debug)
	m.renderHUD(g, r)
}

func (m *mainState) renderHUD(g *Game, r service.Renderer) {
	b := m.world.Bounds
	r.SetCamera(b)
	_, lineH := r.MeasureText("0")
	top := b.Max.Y - 1

	r.DrawText(physics.Vec2{X: b.Min.X + 2, Y: top}, fmt.Sprintf("Score %d", g.Player.Score), service.White)
	lives := fmt.Sprintf("Lives %d", g.Player.Lives)
	w, _ := r.MeasureText(lives)
	r.DrawText(physics.Vec2{X: b.Max.X - 2 - w, Y: top}, lives, service.White)
	drawCentered(r, b, top, fmt.Sprintf("Wave %d", m.spawner.Current()), service.Grey)

	if m.paused {
		drawCentered(r, b, b.Center().Y+lineH/2, "PAUSED", service.Yellow)
	}
	if m.debug {
		r.DrawText(physics.Vec2{X: b.Min.X + 2, Y: b.Min.Y + 1 + lineH},
			fmt.Sprintf("entities %d  frame %d", len(m.world.Live()), m.world.Frame()), service.Grey)
	}
}
