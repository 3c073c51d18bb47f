package loop

import (
	"math/rand"
	"testing"

	"github.com/tomz197/rockfall/internal/loop/config"
	"github.com/tomz197/rockfall/internal/physics"
	"github.com/tomz197/rockfall/internal/service"
)

const dt = config.FixedTimestep

// scriptedInput reports keys pressed for the next frame only. Held keys stay
// down until released.
type scriptedInput struct {
	service.NopInput
	held    map[service.Key]bool
	pressed map[service.Key]bool
}

func newScriptedInput() *scriptedInput {
	return &scriptedInput{held: map[service.Key]bool{}, pressed: map[service.Key]bool{}}
}

func (in *scriptedInput) press(k service.Key)   { in.pressed[k] = true }
func (in *scriptedInput) hold(k service.Key)    { in.held[k] = true }
func (in *scriptedInput) release(k service.Key) { delete(in.held, k) }
func (in *scriptedInput) clear()                { in.pressed = map[service.Key]bool{} }

func (in *scriptedInput) IsKeyDown(k service.Key) bool { return in.held[k] || in.pressed[k] }

func (in *scriptedInput) WasKeyJustPressed(k service.Key) bool { return in.pressed[k] }

func (in *scriptedInput) AnyKeyJustPressed() bool { return len(in.pressed) > 0 }

// recordingAudio counts played sounds and remembers group volumes.
type recordingAudio struct {
	service.NopAudio
	played  map[string]int
	volumes map[service.Group]float64
}

func newRecordingAudio() *recordingAudio {
	return &recordingAudio{played: map[string]int{}, volumes: map[service.Group]float64{}}
}

func (a *recordingAudio) Play(sound string) { a.played[sound]++ }

func (a *recordingAudio) SetGroupVolume(g service.Group, v float64) { a.volumes[g] = v }

// recordingRenderer keeps every string drawn.
type recordingRenderer struct {
	service.NopRenderer
	texts []string
}

func (r *recordingRenderer) DrawText(_ physics.Vec2, text string, _ service.Color) {
	r.texts = append(r.texts, text)
}

func (r *recordingRenderer) drew(text string) bool {
	for _, t := range r.texts {
		if t == text {
			return true
		}
	}
	return false
}

// countingConfig is a MemoryConfig that counts saves.
type countingConfig struct {
	*service.MemoryConfig
	saves int
}

func (c *countingConfig) Save() error {
	c.saves++
	return nil
}

type testRig struct {
	game     *Game
	input    *scriptedInput
	audio    *recordingAudio
	renderer *recordingRenderer
	config   *countingConfig
}

func newTestRig(t *testing.T, stored map[string]string) *testRig {
	t.Helper()
	cfg := &countingConfig{MemoryConfig: service.NewMemoryConfig()}
	for k, v := range stored {
		cfg.Set(k, v)
	}
	rig := &testRig{
		input:    newScriptedInput(),
		audio:    newRecordingAudio(),
		renderer: &recordingRenderer{},
		config:   cfg,
	}
	rig.game = NewGame(service.Services{
		Renderer: rig.renderer,
		Audio:    rig.audio,
		Input:    rig.input,
		Config:   cfg,
		Rand:     rand.New(rand.NewSource(7)),
	})
	return rig
}

// frame runs one frame and forgets this frame's key presses.
func (r *testRig) frame() {
	r.game.RunFrame(dt)
	r.input.clear()
}

func (r *testRig) frames(n int) {
	for range n {
		r.frame()
	}
}

// pressFrame presses k for exactly one frame.
func (r *testRig) pressFrame(k service.Key) {
	r.input.press(k)
	r.frame()
}

func (r *testRig) main(t *testing.T) *mainState {
	t.Helper()
	if r.game.Current() != StateMain {
		t.Fatalf("Expected main state, got %s", r.game.Current())
	}
	return r.game.states[StateMain].(*mainState)
}
