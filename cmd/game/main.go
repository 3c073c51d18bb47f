package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/rockfall/internal/audio"
	"github.com/tomz197/rockfall/internal/config"
	"github.com/tomz197/rockfall/internal/loop"
	"github.com/tomz197/rockfall/internal/service"
	"golang.org/x/term"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logFile, err := os.OpenFile(config.GetEnv("ROCKFALL_LOG", "rockfall.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logFile.Close()
	logger := log.NewWithOptions(logFile, log.Options{
		Prefix:          "rockfall/game",
		ReportTimestamp: true,
		Level:           log.DebugLevel,
	})

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

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	g, fe := loop.NewTerminalGame(os.Stdin, os.Stdout, service.Services{
		Audio:  sound,
		Config: settings,
		Log:    logger,
		Rand:   rand.New(rand.NewSource(seed(logger))),
	}, loop.TerminalOptions{})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fe.Out.Start()
	defer fe.Out.Stop()

	logger.Info("Game started")
	err = loop.Run(ctx, g, fe, loop.RunOptions{})
	if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
		err = nil
	}
	logger.Info("Game ended", "frames", g.Frame(), "err", err)
	return err
}

// seed returns ROCKFALL_SEED when set, otherwise the current time.
func seed(logger *log.Logger) int64 {
	n, ok, err := config.GetEnvInt("ROCKFALL_SEED")
	if err != nil {
		logger.Warn("Ignoring malformed seed", "err", err)
	}
	if ok {
		return n
	}
	return time.Now().UnixNano()
}
