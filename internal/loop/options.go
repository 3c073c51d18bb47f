package loop

import (
	"fmt"
	"math"

	"github.com/tomz197/rockfall/internal/service"
)

// optionItem is one row of the Options menu.
type optionItem int

const (
	optionDifficulty optionItem = iota
	optionControls
	optionSound
	optionMusic
	optionCount
)

const volumeStep = 0.1

// optionsState edits the settings. Up/Down select a row, Left/Right change
// it, Enter or Escape save and return to Title.
type optionsState struct {
	selected optionItem
}

func (s *optionsState) OnEnter(g *Game) { s.selected = optionDifficulty }

func (s *optionsState) OnExit(g *Game) {
	g.SaveSettings()
	g.Player = NewPlayer(g.Settings.Difficulty.StartingLives())
}

func (*optionsState) BeginFrame(g *Game) {}
func (*optionsState) EndFrame(g *Game)   {}

func (s *optionsState) Update(g *Game, _ float64) {
	in := g.Services.Input
	switch {
	case in.WasKeyJustPressed(service.KeyEnter), in.WasKeyJustPressed(service.KeyEscape):
		g.play(service.SoundMenuSelect)
		g.RequestState(StateTitle)
	case in.WasKeyJustPressed(service.KeyUp):
		s.selected = (s.selected + optionCount - 1) % optionCount
		g.play(service.SoundMenuMove)
	case in.WasKeyJustPressed(service.KeyDown):
		s.selected = (s.selected + 1) % optionCount
		g.play(service.SoundMenuMove)
	case in.WasKeyJustPressed(service.KeyLeft):
		s.change(g, -1)
	case in.WasKeyJustPressed(service.KeyRight):
		s.change(g, 1)
	}
}

// change steps the selected setting by dir (-1 or +1).
func (s *optionsState) change(g *Game, dir int) {
	st := &g.Settings
	switch s.selected {
	case optionDifficulty:
		if dir > 0 {
			st.Difficulty = st.Difficulty.Next()
		} else {
			st.Difficulty = st.Difficulty.Prev()
		}
	case optionControls:
		if dir > 0 {
			st.Controls = st.Controls.Next()
		} else {
			st.Controls = st.Controls.Prev()
		}
	case optionSound:
		st.SoundVolume = stepVolume(st.SoundVolume, dir)
	case optionMusic:
		st.MusicVolume = stepVolume(st.MusicVolume, dir)
	}
	g.applyVolumes()
	g.play(service.SoundMenuMove)
}

// stepVolume moves v by one step, snapped to the step grid, within [0, 1].
func stepVolume(v float64, dir int) float64 {
	steps := math.Round(v/volumeStep + float64(dir))
	return min(max(steps/(1/volumeStep), 0), 1)
}

func (s *optionsState) label(g *Game, item optionItem) string {
	st := g.Settings
	switch item {
	case optionDifficulty:
		return fmt.Sprintf("Difficulty   < %s >", st.Difficulty)
	case optionControls:
		return fmt.Sprintf("Controls     < %s >", st.Controls)
	case optionSound:
		return fmt.Sprintf("Sound        < %3.0f%% >", st.SoundVolume*100)
	case optionMusic:
		return fmt.Sprintf("Music        < %3.0f%% >", st.MusicVolume*100)
	default:
		panic(fmt.Sprintf("loop: unknown option %d", int(item)))
	}
}

func (s *optionsState) Render(g *Game, r service.Renderer) {
	b := g.screenBounds()
	r.SetCamera(b)
	c := b.Center()

	drawCentered(r, b, c.Y+16, "OPTIONS", service.White)
	for i := range optionCount {
		tint := service.Grey
		if i == s.selected {
			tint = service.Yellow
		}
		drawCentered(r, b, c.Y+6-float64(i)*5, s.label(g, i), tint)
	}
	drawCentered(r, b, c.Y-18, "Up/Down select, Left/Right change, Enter to save", service.Grey)
}
