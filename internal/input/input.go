// Package input turns a raw terminal byte stream into the game's polled
// service.Input. Terminals only report key presses, so a key counts as held
// while its presses keep arriving within the hold window.
package input

import (
	"bufio"
	"io"
	"time"

	"github.com/tomz197/rockfall/internal/physics"
	"github.com/tomz197/rockfall/internal/service"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
const keyHoldDuration = 30 * time.Millisecond

const (
	ctrlC byte = 0x03
	esc   byte = 0x1b
)

// Terminal is a service.Input fed by a byte stream. Call Poll once per
// frame before the game runs.
type Terminal struct {
	ch     chan byte
	closed bool
	now    func() time.Time

	last    map[service.Key]time.Time // Latest press per key
	down    map[service.Key]bool
	pressed map[service.Key]bool
	any     bool
	pending []byte
}

// NewTerminal spawns a goroutine that reads from r and feeds the returned
// Terminal. The goroutine ends when r returns an error.
func NewTerminal(r io.Reader) *Terminal {
	t := newTerminal(time.Now)
	br := bufio.NewReader(r)
	go func() {
		defer close(t.ch)
		for {
			b, err := br.ReadByte()
			if err != nil {
				return
			}
			t.ch <- b
		}
	}()
	return t
}

func newTerminal(now func() time.Time) *Terminal {
	return &Terminal{
		ch:      make(chan byte, 128),
		now:     now,
		last:    make(map[service.Key]time.Time),
		down:    make(map[service.Key]bool),
		pressed: make(map[service.Key]bool),
	}
}

// Poll drains all available bytes (non-blocking) and updates key state.
// It returns io.EOF once the stream has ended and every byte was consumed.
func (t *Terminal) Poll() error {
	now := t.now()
	buf := t.pending
	t.pending = nil

drain:
	for !t.closed {
		select {
		case b, ok := <-t.ch:
			if !ok {
				t.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	seen, n := t.parse(buf)
	t.any = n > 0
	clear(t.pressed)
	for _, k := range service.Keys() {
		wasDown := t.down[k]
		if seen[k] {
			t.last[k] = now
			t.pressed[k] = !wasDown
		}
		t.down[k] = seen[k] || (!t.last[k].IsZero() && now.Sub(t.last[k]) < keyHoldDuration)
	}

	if t.closed && len(t.pending) == 0 && len(buf) == 0 {
		return io.EOF
	}
	return nil
}

// parse decodes buf into the set of keys pressed and the number of key
// presses, mapped or not. An escape sequence cut off at the end of buf is
// kept for the next Poll unless the stream has ended.
func (t *Terminal) parse(buf []byte) (map[service.Key]bool, int) {
	seen := make(map[service.Key]bool)
	n := 0
	for i := 0; i < len(buf); i++ {
		b := buf[i]
		n++
		if b == esc && i+1 < len(buf) && (buf[i+1] == '[' || buf[i+1] == 'O') {
			if i+2 >= len(buf) {
				if !t.closed {
					t.pending = append(t.pending, buf[i:]...)
					n--
				}
				break
			}
			// CSI or SS3 sequence: ESC [ <code> / ESC O <code>
			switch buf[i+2] {
			case 'A':
				seen[service.KeyUp] = true
			case 'B':
				seen[service.KeyDown] = true
			case 'C':
				seen[service.KeyRight] = true
			case 'D':
				seen[service.KeyLeft] = true
			}
			i += 2
			continue
		}
		if k, ok := keyForByte(b); ok {
			seen[k] = true
		}
	}
	return seen, n
}

// keyForByte maps a single byte onto a logical key.
func keyForByte(b byte) (service.Key, bool) {
	switch b {
	case 'q', 'Q', ctrlC:
		return service.KeyQuit, true
	case 'a', 'A', 'h', 'H':
		return service.KeyLeft, true
	case 'd', 'D', 'l', 'L':
		return service.KeyRight, true
	case 'w', 'W', 'k', 'K':
		return service.KeyUp, true
	case 's', 'S', 'j', 'J':
		return service.KeyDown, true
	case ' ':
		return service.KeyFire, true
	case 'm', 'M', 'f', 'F':
		return service.KeyMine, true
	case '\n', '\r':
		return service.KeyEnter, true
	case esc:
		return service.KeyEscape, true
	case 'p', 'P':
		return service.KeyPause, true
	case 'o', 'O':
		return service.KeyOptions, true
	case '`':
		return service.KeyDebug, true
	}
	return 0, false
}

func (t *Terminal) IsKeyDown(k service.Key) bool { return t.down[k] }

func (t *Terminal) WasKeyJustPressed(k service.Key) bool { return t.pressed[k] }

// AnyKeyJustPressed also counts keys without a logical mapping.
func (t *Terminal) AnyKeyJustPressed() bool { return t.any }

// Controller always reports a disconnected pad.
func (t *Terminal) Controller() service.ControllerState { return service.ControllerState{} }

// Cursor is unavailable in a terminal.
func (t *Terminal) Cursor() (physics.Vec2, bool) { return physics.Vec2{}, false }

var _ service.Input = (*Terminal)(nil)
