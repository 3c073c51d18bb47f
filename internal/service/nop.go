package service

import (
	"maps"

	"github.com/tomz197/rockfall/internal/physics"
	"github.com/tomz197/rockfall/internal/sprite"
)

// NopRenderer discards all drawing. Its output is a fixed 160x90.
type NopRenderer struct{}

func (NopRenderer) OutputSize() (int, int)                     { return 160, 90 }
func (NopRenderer) GetMaterial(name string) Material           { return Material{Name: name} }
func (NopRenderer) SetCamera(physics.Bounds)                   {}
func (NopRenderer) SetModelMatrix(physics.Mat3)                {}
func (NopRenderer) DrawQuad(Material, [4]Vertex, Color)        {}
func (NopRenderer) DrawLine(physics.Vec2, physics.Vec2, Color) {}
func (NopRenderer) DrawCircle(physics.Vec2, float64, Color)    {}
func (NopRenderer) DrawText(physics.Vec2, string, Color)       {}
func (NopRenderer) MeasureText(text string) (float64, float64) {
	return 1.5 * float64(len(text)), 2.5
}
func (NopRenderer) CreateAnimatedSprite(d sprite.Desc) *sprite.Animation {
	return sprite.NewAnimation(d)
}

// NopAudio plays nothing.
type NopAudio struct{}

func (NopAudio) Play(string)                             {}
func (NopAudio) RegisterWavFilesFromFolder(string) error { return nil }
func (NopAudio) SetGroupVolume(Group, float64)           {}

// NopInput reports no input.
type NopInput struct{}

func (NopInput) IsKeyDown(Key) bool           { return false }
func (NopInput) WasKeyJustPressed(Key) bool   { return false }
func (NopInput) AnyKeyJustPressed() bool      { return false }
func (NopInput) Controller() ControllerState  { return ControllerState{} }
func (NopInput) Cursor() (physics.Vec2, bool) { return physics.Zero, false }

// MemoryConfig is an in-memory Config whose Save is a no-op.
type MemoryConfig struct {
	values map[string]string
}

// NewMemoryConfig creates an empty in-memory config.
func NewMemoryConfig() *MemoryConfig {
	return &MemoryConfig{values: make(map[string]string)}
}

func (c *MemoryConfig) Get(key string) (string, bool) {
	v, ok := c.values[key]
	return v, ok
}

func (c *MemoryConfig) Set(key, value string) { c.values[key] = value }

func (c *MemoryConfig) Save() error { return nil }

// Snapshot returns a copy of the stored values.
func (c *MemoryConfig) Snapshot() map[string]string {
	return maps.Clone(c.values)
}
