package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/tomz197/rockfall/internal/config"
	"github.com/tomz197/rockfall/internal/draw"
	"github.com/tomz197/rockfall/internal/loop"
	gameconfig "github.com/tomz197/rockfall/internal/loop/config"
	"github.com/tomz197/rockfall/internal/service"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
	defaultSettingsDir = "settings"
)

// Lobby of connected players, shared by all SSH sessions.
var (
	lobby       = loop.NewLobby()
	logger      = log.NewWithOptions(os.Stderr, log.Options{Prefix: "rockfall/ssh", ReportTimestamp: true})
	settingsDir string
)

func main() {
	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	settingsDir = config.GetEnv("ROCKFALL_SETTINGS_DIR", defaultSettingsDir)
	workingDir, workErr := os.Getwd()
	if workErr != nil {
		logger.Warn("Failed to get working directory", "err", workErr)
	}
	logger.Info("SSH config", "host", host, "port", port, "hostKeyPath", hostKeyPath,
		"settingsDir", settingsDir, "workingDir", workingDir)

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			gameMiddleware,
			activeterm.Middleware(),
			logging.Middleware(),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("Failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("Starting SSH server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("Server error", "err", err)
		}
	}()

	<-done
	logger.Info("Shutting down server...")

	// Notify players and wait for them to disconnect
	grace := time.Duration(gameconfig.ShutdownDisplaySeconds * float64(time.Second))
	logger.Info("Notifying connected players about shutdown...", "players", lobby.Count())
	if left := lobby.Shutdown(grace + 5*time.Second); left > 0 {
		logger.Warn("Players still connected at shutdown", "players", left)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("Shutdown error", "err", err)
	}
}

// gameMiddleware runs one independent game per SSH session.
func gameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		player := lobby.Join(sess.User())
		defer player.Leave()
		sessLog := logger.With("user", player.Username, "session", player.ID)
		sessLog.Info("New game session", "terminal", pty.Term,
			"size", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height), "players", lobby.Count())

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)

		// Listen for window size changes in a goroutine
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		settings, err := config.LoadSettings(config.UserSettingsPath(settingsDir, player.Username))
		if err != nil && !errors.Is(err, config.ErrNoSettingsFile) {
			sessLog.Warn("Settings unreadable, using defaults", "err", err)
		}

		g, fe := loop.NewTerminalGame(sess, sess, service.Services{
			Audio:  service.NopAudio{}, // Sound stays on the server
			Config: settings,
			Log:    sessLog,
			Rand:   rand.New(rand.NewSource(time.Now().UnixNano() + int64(player.ID))),
		}, loop.TerminalOptions{TermSizeFunc: sizeTracker.getSize})

		fe.Out.Start()
		err = loop.Run(sess.Context(), g, fe, loop.RunOptions{
			IdleWarn:      gameconfig.InactivityWarnUser * time.Second,
			IdleTimeout:   gameconfig.InactivityDisconnectUser * time.Second,
			Shutdown:      lobby.ShuttingDown(),
			ShutdownGrace: time.Duration(gameconfig.ShutdownDisplaySeconds * float64(time.Second)),
		})
		fe.Out.Stop()

		switch {
		case errors.Is(err, loop.ErrIdleTimeout):
			fmt.Fprintln(sess, "Disconnected after being idle. Bye!")
		case err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, context.Canceled):
			sessLog.Error("Game error", "err", err)
		}

		sessLog.Info("Session ended", "frames", g.Frame())
		next(sess)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
