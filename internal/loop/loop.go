// Package loop provides the game state machine, the gameplay orchestration
// and the real-time driver that paces frames for a frontend.
package loop

import (
	"context"
	"errors"
	"time"

	"github.com/tomz197/rockfall/internal/loop/config"
)

// ErrIdleTimeout is returned by Run when the player stopped pressing keys.
var ErrIdleTimeout = errors.New("loop: idle timeout")

// Frontend is the platform surface a Game runs on.
type Frontend interface {
	// Poll refreshes input state for the coming frame.
	Poll() error
	// Present flushes everything the frame drew.
	Present() error
}

// RunOptions tunes Run. Zero values disable the corresponding feature.
type RunOptions struct {
	IdleWarn    time.Duration
	IdleTimeout time.Duration
	// Shutdown is closed when the host is going down; Run shows a banner and
	// returns after ShutdownGrace.
	Shutdown      <-chan struct{}
	ShutdownGrace time.Duration
}

// Run drives g at the target frame rate with the standard Input → Update →
// Draw cycle until the game quits, the context ends, or an option ends it.
// Every frame advances the simulation by exactly one fixed timestep.
func Run(ctx context.Context, g *Game, fe Frontend, opts RunOptions) error {
	lastInput := time.Now()
	var shutdownAt time.Time

	for !g.Done() {
		frameStart := time.Now()

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		// ===== INPUT PHASE =====
		if err := fe.Poll(); err != nil {
			return err
		}
		if g.Services.Input.AnyKeyJustPressed() {
			lastInput = frameStart
			if shutdownAt.IsZero() {
				g.SetBanner("")
			}
		}
		idle := frameStart.Sub(lastInput)
		switch {
		case opts.IdleTimeout > 0 && idle > opts.IdleTimeout:
			return ErrIdleTimeout
		case opts.IdleWarn > 0 && idle > opts.IdleWarn && shutdownAt.IsZero():
			g.SetBanner("Still there? Press any key to stay connected")
		}

		if shutdownAt.IsZero() && isClosed(opts.Shutdown) {
			shutdownAt = frameStart
			g.SetBanner("SERVER SHUTTING DOWN - please reconnect in a moment")
		}
		if !shutdownAt.IsZero() && frameStart.Sub(shutdownAt) > opts.ShutdownGrace {
			return nil
		}

		// ===== UPDATE + DRAW PHASE =====
		g.RunFrame(config.FixedTimestep)
		if err := fe.Present(); err != nil {
			return err
		}

		// ===== FRAME TIMING =====
		elapsed := time.Since(frameStart)
		if elapsed < config.TargetFrameTime {
			time.Sleep(config.TargetFrameTime - elapsed)
		}
	}
	return nil
}

func isClosed(ch <-chan struct{}) bool {
	if ch == nil {
		return false
	}
	select {
	case <-ch:
		return true
	default:
		return false
	}
}
