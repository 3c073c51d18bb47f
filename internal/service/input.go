package service

import "github.com/tomz197/rockfall/internal/physics"

// Key identifies a logical key. Frontends map physical keys onto these.
type Key int

const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyFire
	KeyMine
	KeyEnter
	KeyEscape
	KeyPause
	KeyOptions
	KeyQuit
	KeyDebug
	keyCount
)

// Keys lists every logical key.
func Keys() []Key {
	keys := make([]Key, 0, keyCount)
	for k := Key(0); k < keyCount; k++ {
		keys = append(keys, k)
	}
	return keys
}

var keyNames = [keyCount]string{
	KeyUp:      "up",
	KeyDown:    "down",
	KeyLeft:    "left",
	KeyRight:   "right",
	KeyFire:    "fire",
	KeyMine:    "mine",
	KeyEnter:   "enter",
	KeyEscape:  "escape",
	KeyPause:   "pause",
	KeyOptions: "options",
	KeyQuit:    "quit",
	KeyDebug:   "debug",
}

func (k Key) String() string {
	if k < 0 || k >= keyCount {
		return "unknown"
	}
	return keyNames[k]
}

// ControllerState is an analog gamepad sample.
type ControllerState struct {
	Connected    bool
	LeftStick    physics.Vec2 // Each axis in [-1, 1], +Y is up
	RightTrigger float64      // [0, 1]
	ButtonA      bool
	ButtonB      bool
	Start        bool
}

// Input is polled once per frame; it never calls back into the game.
type Input interface {
	IsKeyDown(k Key) bool
	WasKeyJustPressed(k Key) bool
	AnyKeyJustPressed() bool
	Controller() ControllerState
	// Cursor returns the pointer position in world units, if the backend has one.
	Cursor() (physics.Vec2, bool)
}
