// Package service defines the narrow interfaces the simulation uses to reach
// its collaborators (rendering, audio, input, persisted settings) and the
// Services context object passed through update and render calls.
package service

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/tomz197/rockfall/internal/physics"
	"github.com/tomz197/rockfall/internal/sprite"
)

// Color is an RGBA tint with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

// Common tints.
var (
	White  = Color{1, 1, 1, 1}
	Red    = Color{1, 0.25, 0.2, 1}
	Yellow = Color{1, 0.9, 0.3, 1}
	Cyan   = Color{0.3, 0.9, 1, 1}
	Grey   = Color{0.6, 0.6, 0.6, 1}
)

// WithAlpha returns c with its alpha multiplied by a.
func (c Color) WithAlpha(a float64) Color {
	c.A *= a
	return c
}

// Vertex is a textured quad corner in model space.
type Vertex struct {
	Pos physics.Vec2
	U   float64
	V   float64
}

// Material is an opaque handle returned by the renderer.
type Material struct {
	Name string
	ID   int
}

// Renderer is the drawing backend.
type Renderer interface {
	// OutputSize returns the render target size in backend units (pixels, cells).
	OutputSize() (width, height int)
	GetMaterial(name string) Material
	CreateAnimatedSprite(desc sprite.Desc) *sprite.Animation
	// SetCamera maps the given world box onto the whole output.
	SetCamera(view physics.Bounds)
	// SetModelMatrix sets the transform applied to subsequent DrawQuad calls.
	SetModelMatrix(m physics.Mat3)
	DrawQuad(mat Material, quad [4]Vertex, tint Color)
	// DrawLine and DrawCircle take world coordinates.
	DrawLine(a, b physics.Vec2, tint Color)
	DrawCircle(center physics.Vec2, radius float64, tint Color)
	// DrawText places text with its top-left corner at a world position.
	DrawText(pos physics.Vec2, text string, tint Color)
	// MeasureText returns the extent of text in world units under the
	// current camera.
	MeasureText(text string) (width, height float64)
}

// Group is an audio channel group with its own volume.
type Group int

const (
	GroupSound Group = iota
	GroupMusic
)

// Audio plays fire-and-forget sounds.
type Audio interface {
	Play(sound string)
	RegisterWavFilesFromFolder(dir string) error
	SetGroupVolume(group Group, volume float64)
}

// Config is a key/value store with file persistence.
type Config interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Save() error
}

// Services bundles the collaborators for one running game. It replaces
// process-wide singletons: each frontend session owns exactly one.
type Services struct {
	Renderer Renderer
	Audio    Audio
	Input    Input
	Config   Config
	Log      *log.Logger
	Rand     *rand.Rand
}

// WithDefaults fills unset collaborators with no-op implementations.
func (s Services) WithDefaults() Services {
	if s.Renderer == nil {
		s.Renderer = NopRenderer{}
	}
	if s.Audio == nil {
		s.Audio = NopAudio{}
	}
	if s.Input == nil {
		s.Input = NopInput{}
	}
	if s.Config == nil {
		s.Config = NewMemoryConfig()
	}
	if s.Log == nil {
		s.Log = log.New(io.Discard)
	}
	if s.Rand == nil {
		s.Rand = rand.New(rand.NewSource(1))
	}
	return s
}
