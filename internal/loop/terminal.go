package loop

import (
	"io"

	"github.com/tomz197/rockfall/internal/draw"
	"github.com/tomz197/rockfall/internal/input"
	"github.com/tomz197/rockfall/internal/loop/config"
	"github.com/tomz197/rockfall/internal/service"
)

// Terminal is the Frontend for a byte-stream terminal: a local tty or an SSH
// session.
type Terminal struct {
	In  *input.Terminal
	Out *draw.Terminal
}

// TerminalOptions configures NewTerminalGame.
type TerminalOptions struct {
	// TermSizeFunc returns the terminal dimensions.
	// If nil, uses draw.DefaultTermSizeFunc.
	TermSizeFunc draw.TermSizeFunc
}

// NewTerminalGame wires a Game to a terminal reading keys from r and drawing
// to w. svc supplies everything but the renderer and input.
func NewTerminalGame(r io.Reader, w io.Writer, svc service.Services, opts TerminalOptions) (*Game, Terminal) {
	size := opts.TermSizeFunc
	if size == nil {
		size = draw.DefaultTermSizeFunc
	}
	fe := Terminal{
		In:  input.NewTerminal(r),
		Out: draw.NewTerminal(w, size, config.MaxTermWidth, config.MaxTermHeight),
	}
	svc.Renderer = fe.Out
	svc.Input = fe.In
	return NewGame(svc), fe
}

func (t Terminal) Poll() error { return t.In.Poll() }

func (t Terminal) Present() error { return t.Out.Present() }

var _ Frontend = Terminal{}
