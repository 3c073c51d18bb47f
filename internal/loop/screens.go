package loop

import (
	"fmt"

	"github.com/tomz197/rockfall/internal/physics"
	"github.com/tomz197/rockfall/internal/service"
)

// titleState is the start screen. O opens Options, Q or Escape quits, any
// other key starts a game.
type titleState struct{}

func (*titleState) OnEnter(g *Game)    {}
func (*titleState) OnExit(g *Game)     {}
func (*titleState) BeginFrame(g *Game) {}
func (*titleState) EndFrame(g *Game)   {}

func (*titleState) Update(g *Game, _ float64) {
	in := g.Services.Input
	switch {
	case in.WasKeyJustPressed(service.KeyQuit), in.WasKeyJustPressed(service.KeyEscape):
		g.Quit()
	case in.WasKeyJustPressed(service.KeyOptions):
		g.play(service.SoundMenuSelect)
		g.RequestState(StateOptions)
	case in.AnyKeyJustPressed() || in.Controller().Start || in.Controller().ButtonA:
		g.play(service.SoundMenuSelect)
		g.RequestState(StateMain)
	}
}

func (*titleState) Render(g *Game, r service.Renderer) {
	b := g.screenBounds()
	r.SetCamera(b)
	c := b.Center()

	drawCentered(r, b, c.Y+12, "R O C K F A L L", service.White)
	drawCentered(r, b, c.Y+2, "Press any key to start", service.Grey)
	drawCentered(r, b, c.Y-4, "O  options    Q  quit", service.Grey)
	drawCentered(r, b, c.Y-14, controlsHint(g.Settings.Controls), service.Grey)
	if g.Settings.HighScore > 0 {
		drawCentered(r, b, c.Y-20, fmt.Sprintf("High score %d", g.Settings.HighScore), service.Yellow)
	}
}

func controlsHint(c ControlScheme) string {
	switch c {
	case ControlsMouse:
		return "Mouse aims, W thrusts, Space fires, M drops a mine"
	case ControlsController:
		return "Stick steers, trigger thrusts, A fires, B drops a mine"
	default:
		return "A/D rotate, W thrust, Space fire, M mine, P pause"
	}
}

// gameOverState shows the final score. Any key returns to Title.
type gameOverState struct {
	newHigh bool
}

func (s *gameOverState) OnEnter(g *Game) {
	s.newHigh = g.Player.Score > g.Settings.HighScore
	if s.newHigh {
		g.Settings.HighScore = g.Player.Score
		g.SaveSettings()
	}
	g.Services.Log.Info("Game over", "score", g.Player.Score, "wave", g.LastWave)
}

func (*gameOverState) OnExit(g *Game)     {}
func (*gameOverState) BeginFrame(g *Game) {}
func (*gameOverState) EndFrame(g *Game)   {}

func (*gameOverState) Update(g *Game, _ float64) {
	in := g.Services.Input
	if in.AnyKeyJustPressed() || in.Controller().Start || in.Controller().ButtonA {
		g.RequestState(StateTitle)
	}
}

func (s *gameOverState) Render(g *Game, r service.Renderer) {
	b := g.screenBounds()
	r.SetCamera(b)
	c := b.Center()

	drawCentered(r, b, c.Y+8, "GAME OVER", service.Red)
	drawCentered(r, b, c.Y+1, fmt.Sprintf("Score %d    Wave %d", g.Player.Score, g.LastWave), service.White)
	if s.newHigh {
		drawCentered(r, b, c.Y-4, "New high score!", service.Yellow)
	}
	drawCentered(r, b, c.Y-10, "Press any key", service.Grey)
}

// drawCentered draws text horizontally centred in b with its top edge at y.
func drawCentered(r service.Renderer, b physics.Bounds, y float64, text string, tint service.Color) {
	w, _ := r.MeasureText(text)
	r.DrawText(physics.Vec2{X: b.Center().X - w/2, Y: y}, text, tint)
}
