package loop

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/tomz197/rockfall/internal/draw"
	"github.com/tomz197/rockfall/internal/service"
)

func TestNewTerminalGame_QuitFromTitle(t *testing.T) {
	var out bytes.Buffer
	g, fe := NewTerminalGame(strings.NewReader("q"), &out, service.Services{},
		TerminalOptions{TermSizeFunc: draw.FixedTermSize(80, 24)})

	if w, h := g.Services.Renderer.OutputSize(); w != 80 || h != 48 {
		t.Fatalf("Expected the terminal renderer at 80x48 pixels, got %dx%d", w, h)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := Run(ctx, g, fe, RunOptions{}); err != nil {
		t.Fatalf("Expected a clean quit, got %v", err)
	}
	if !g.Done() {
		t.Error("Expected the game to quit")
	}
	if !strings.Contains(out.String(), "R O C K F A L L") {
		t.Error("Expected the title on screen")
	}
}
