package loop

import (
	"fmt"

	"github.com/tomz197/rockfall/internal/loop/config"
	"github.com/tomz197/rockfall/internal/physics"
	"github.com/tomz197/rockfall/internal/service"
)

// StateID names a top-level game mode.
type StateID int

const (
	StateTitle StateID = iota
	StateOptions
	StateMain
	StateGameOver
	stateCount
)

func (id StateID) String() string {
	switch id {
	case StateTitle:
		return "title"
	case StateOptions:
		return "options"
	case StateMain:
		return "main"
	case StateGameOver:
		return "game_over"
	default:
		return fmt.Sprintf("state(%d)", int(id))
	}
}

// State is one top-level mode. Every frame runs BeginFrame, Update, Render
// and EndFrame on the current state; OnEnter and OnExit bracket its time as
// the current state.
type State interface {
	OnEnter(g *Game)
	OnExit(g *Game)
	BeginFrame(g *Game)
	Update(g *Game, dt float64)
	Render(g *Game, r service.Renderer)
	EndFrame(g *Game)
}

// Game owns the state machine and everything shared between modes: the
// services, the player, and the settings.
type Game struct {
	Services service.Services
	Settings Settings
	Player   *Player

	states    [stateCount]State
	current   StateID
	next      StateID
	requested bool
	quit      bool
	banner    string
	frame     uint64

	// Last finished game, shown by GameOver.
	LastWave int
}

// NewGame creates a game on the Title screen.
func NewGame(svc service.Services) *Game {
	svc = svc.WithDefaults()
	settings, err := LoadSettings(svc.Config)
	if err != nil {
		svc.Log.Warn("Using defaults for some settings", "err", err)
	}

	g := &Game{
		Services: svc,
		Settings: settings,
		Player:   NewPlayer(settings.Difficulty.StartingLives()),
	}
	g.states = [stateCount]State{
		StateTitle:    &titleState{},
		StateOptions:  &optionsState{},
		StateMain:     newMainState(),
		StateGameOver: &gameOverState{},
	}
	g.applyVolumes()
	g.current = StateTitle
	g.mustState(g.current).OnEnter(g)
	return g
}

// Current returns the active state.
func (g *Game) Current() StateID { return g.current }

// RequestState asks for a transition. It takes effect at the start of the
// next frame; a later request in the same frame replaces an earlier one.
func (g *Game) RequestState(id StateID) {
	g.mustState(id)
	g.next = id
	g.requested = true
}

// Quit asks the frontend to stop after this frame.
func (g *Game) Quit() { g.quit = true }

// Done reports whether the game asked to stop.
func (g *Game) Done() bool { return g.quit }

// Frame returns the number of frames run so far.
func (g *Game) Frame() uint64 { return g.frame }

// SetBanner shows a message over every state until cleared with "".
func (g *Game) SetBanner(text string) { g.banner = text }

// MainWorldBounds returns the world box for the renderer's output: fixed
// height, width following the output aspect ratio.
func (g *Game) MainWorldBounds() physics.Bounds {
	w, h := g.Services.Renderer.OutputSize()
	width := config.DefaultWorldWidth
	if w > 0 && h > 0 {
		width = config.WorldHeight * float64(w) / float64(h)
	}
	return physics.NewBounds(width, config.WorldHeight)
}

// RunFrame advances the game by one frame of dt seconds.
func (g *Game) RunFrame(dt float64) {
	dt = min(max(dt, 0), config.MaxFrameDelta)
	g.BeginFrame()
	s := g.mustState(g.current)
	s.Update(g, dt)
	g.Render()
	s.EndFrame(g)
	g.frame++
}

// BeginFrame applies a pending transition, exactly one OnExit then one
// OnEnter, then starts the frame on the current state.
func (g *Game) BeginFrame() {
	if g.requested {
		g.requested = false
		old, next := g.current, g.next
		g.mustState(old).OnExit(g)
		g.current = next
		g.Services.Log.Debug("State change", "from", old, "to", next)
		g.mustState(next).OnEnter(g)
	}
	g.mustState(g.current).BeginFrame(g)
}

// Render draws the current state and the banner.
func (g *Game) Render() {
	r := g.Services.Renderer
	g.mustState(g.current).Render(g, r)
	if g.banner != "" {
		b := g.screenBounds()
		drawCentered(r, b, b.Center().Y-config.WorldHeight/3, g.banner, service.Yellow)
	}
}

// screenBounds returns the world box used for menu screens.
func (g *Game) screenBounds() physics.Bounds {
	return g.MainWorldBounds()
}

// mustState returns the state for id. An unknown id is a corrupted state
// machine and aborts.
func (g *Game) mustState(id StateID) State {
	if id < 0 || id >= stateCount || g.states[id] == nil {
		panic(fmt.Sprintf("loop: undefined game state %s", id))
	}
	return g.states[id]
}

// SaveSettings stores and persists the current settings.
func (g *Game) SaveSettings() {
	g.Settings.Store(g.Services.Config)
	if err := g.Services.Config.Save(); err != nil {
		g.Services.Log.Warn("Failed to save settings", "err", err)
	}
}

func (g *Game) applyVolumes() {
	g.Services.Audio.SetGroupVolume(service.GroupSound, g.Settings.SoundVolume)
	g.Services.Audio.SetGroupVolume(service.GroupMusic, g.Settings.MusicVolume)
}

func (g *Game) play(sound string) {
	g.Services.Audio.Play(sound)
}
