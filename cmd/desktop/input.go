package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tomz197/rockfall/internal/physics"
	"github.com/tomz197/rockfall/internal/service"
)

var keyBindings = map[service.Key][]ebiten.Key{
	service.KeyUp:      {ebiten.KeyArrowUp, ebiten.KeyW},
	service.KeyDown:    {ebiten.KeyArrowDown, ebiten.KeyS},
	service.KeyLeft:    {ebiten.KeyArrowLeft, ebiten.KeyA},
	service.KeyRight:   {ebiten.KeyArrowRight, ebiten.KeyD},
	service.KeyFire:    {ebiten.KeySpace},
	service.KeyMine:    {ebiten.KeyM, ebiten.KeyF},
	service.KeyEnter:   {ebiten.KeyEnter, ebiten.KeyNumpadEnter},
	service.KeyEscape:  {ebiten.KeyEscape},
	service.KeyPause:   {ebiten.KeyP},
	service.KeyOptions: {ebiten.KeyO},
	service.KeyQuit:    {ebiten.KeyQ},
	service.KeyDebug:   {ebiten.KeyBackquote},
}

// input is a service.Input over ebiten's keyboard, mouse and first standard
// gamepad. ebiten already tracks just-pressed state per tick.
type input struct {
	r       *renderer
	gamepad ebiten.GamepadID
	pad     bool
	keys    []ebiten.Key
}

func newInput(r *renderer) *input {
	return &input{r: r}
}

// poll picks the gamepad for this tick.
func (in *input) poll() {
	in.pad = false
	for _, id := range ebiten.AppendGamepadIDs(nil) {
		if ebiten.IsStandardGamepadLayoutAvailable(id) {
			in.gamepad, in.pad = id, true
			return
		}
	}
}

func (in *input) IsKeyDown(k service.Key) bool {
	for _, key := range keyBindings[k] {
		if ebiten.IsKeyPressed(key) {
			return true
		}
	}
	return false
}

func (in *input) WasKeyJustPressed(k service.Key) bool {
	for _, key := range keyBindings[k] {
		if inpututil.IsKeyJustPressed(key) {
			return true
		}
	}
	return false
}

func (in *input) AnyKeyJustPressed() bool {
	in.keys = inpututil.AppendJustPressedKeys(in.keys[:0])
	if len(in.keys) > 0 || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return true
	}
	if !in.pad {
		return false
	}
	for b := ebiten.StandardGamepadButton(0); b <= ebiten.StandardGamepadButtonMax; b++ {
		if inpututil.IsStandardGamepadButtonJustPressed(in.gamepad, b) {
			return true
		}
	}
	return false
}

func (in *input) Controller() service.ControllerState {
	if !in.pad {
		return service.ControllerState{}
	}
	id := in.gamepad
	return service.ControllerState{
		Connected: true,
		LeftStick: physics.Vec2{
			X: ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal),
			Y: -ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical),
		},
		RightTrigger: ebiten.StandardGamepadButtonValue(id, ebiten.StandardGamepadButtonFrontBottomRight),
		ButtonA:      ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom),
		ButtonB:      ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightRight),
		Start:        ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonCenterRight),
	}
}

func (in *input) Cursor() (physics.Vec2, bool) {
	x, y := ebiten.CursorPosition()
	return in.r.toWorld(x, y), true
}

var _ service.Input = (*input)(nil)
