package main

import (
	"errors"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tomz197/rockfall/internal/audio"
	"github.com/tomz197/rockfall/internal/config"
	"github.com/tomz197/rockfall/internal/loop"
	gameconfig "github.com/tomz197/rockfall/internal/loop/config"
	"github.com/tomz197/rockfall/internal/service"
)

const (
	windowWidth  = 1280
	windowHeight = 720
)

// app adapts a loop.Game to ebiten. ebiten paces Update at the target
// frame rate, so every tick advances the game by one fixed timestep.
type app struct {
	game   *loop.Game
	r      *renderer
	in     *input
	width  int
	height int
}

func (a *app) Update() error {
	if a.game.Done() {
		return ebiten.Termination
	}
	a.r.resize(a.width, a.height)
	a.r.begin()
	a.in.poll()
	a.game.RunFrame(gameconfig.FixedTimestep)
	return nil
}

func (a *app) Draw(screen *ebiten.Image) {
	screen.DrawImage(a.r.canvas, nil)
}

func (a *app) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.width, a.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "rockfall/desktop", ReportTimestamp: true})

	settings, err := config.LoadSettings(config.GetEnv("ROCKFALL_SETTINGS", "rockfall.conf"))
	if err != nil && !errors.Is(err, config.ErrNoSettingsFile) {
		logger.Warn("Settings unreadable, using defaults", "err", err)
	}

	player := audio.New(logger.WithPrefix("rockfall/audio"))
	var sound service.Audio = service.NopAudio{}
	if err := player.Start(); err != nil {
		logger.Warn("Audio disabled", "err", err)
	} else {
		defer player.Close()
		sound = player
		if dir := config.GetEnv("ROCKFALL_SOUNDS", ""); dir != "" {
			if err := player.RegisterWavFilesFromFolder(dir); err != nil {
				logger.Warn("Some sounds failed to load", "err", err)
			}
		}
	}

	r := newRenderer(windowWidth, windowHeight)
	in := newInput(r)
	a := &app{
		r:      r,
		in:     in,
		width:  windowWidth,
		height: windowHeight,
	}
	a.game = loop.NewGame(service.Services{
		Renderer: r,
		Audio:    sound,
		Input:    in,
		Config:   settings,
		Log:      logger,
		Rand:     rand.New(rand.NewSource(time.Now().UnixNano())),
	})

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("Rockfall")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(gameconfig.TargetFPS)
	if err := ebiten.RunGame(a); err != nil {
		logger.Fatal("Game error", "err", err)
	}
	logger.Info("Game ended", "frames", a.game.Frame())
}
