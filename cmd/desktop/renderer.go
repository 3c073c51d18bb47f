package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tomz197/rockfall/internal/draw"
	"github.com/tomz197/rockfall/internal/physics"
	"github.com/tomz197/rockfall/internal/service"
	"github.com/tomz197/rockfall/internal/sprite"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

const strokeWidth = 1.5

// renderer is a service.Renderer drawing vector shapes into an offscreen
// image. The game draws during ebiten's Update; Draw copies the image out.
type renderer struct {
	canvas *ebiten.Image
	face   font.Face
	ascent int

	camera    physics.Bounds
	model     physics.Mat3
	materials map[string]service.Material
	sheets    map[string]sprite.Desc
	scratch   []physics.Vec2
}

func newRenderer(width, height int) *renderer {
	r := &renderer{
		face:      basicfont.Face7x13,
		model:     physics.Identity,
		materials: make(map[string]service.Material),
		sheets:    make(map[string]sprite.Desc),
	}
	r.ascent = r.face.Metrics().Ascent.Ceil()
	r.resize(width, height)
	r.camera = physics.NewBounds(float64(width), float64(height))
	return r
}

// resize replaces the canvas when the window layout changed.
func (r *renderer) resize(width, height int) {
	width, height = max(width, 1), max(height, 1)
	if r.canvas != nil {
		if w, h := r.canvas.Bounds().Dx(), r.canvas.Bounds().Dy(); w == width && h == height {
			return
		}
		r.canvas.Deallocate()
	}
	r.canvas = ebiten.NewImage(width, height)
}

func (r *renderer) begin() {
	r.canvas.Clear()
}

func (r *renderer) OutputSize() (int, int) {
	b := r.canvas.Bounds()
	return b.Dx(), b.Dy()
}

func (r *renderer) GetMaterial(name string) service.Material {
	if m, ok := r.materials[name]; ok {
		return m
	}
	m := service.Material{Name: name, ID: len(r.materials) + 1}
	r.materials[name] = m
	return m
}

func (r *renderer) CreateAnimatedSprite(desc sprite.Desc) *sprite.Animation {
	r.sheets[desc.Material] = desc
	return sprite.NewAnimation(desc)
}

func (r *renderer) SetCamera(view physics.Bounds) { r.camera = view }

func (r *renderer) SetModelMatrix(m physics.Mat3) { r.model = m }

// toScreen maps a world position to canvas pixels. World y points up.
func (r *renderer) toScreen(p physics.Vec2) (float32, float32) {
	w, h := r.OutputSize()
	return float32((p.X - r.camera.Min.X) / r.camera.Width() * float64(w)),
		float32((r.camera.Max.Y - p.Y) / r.camera.Height() * float64(h))
}

// toWorld is the inverse of toScreen.
func (r *renderer) toWorld(x, y int) physics.Vec2 {
	w, h := r.OutputSize()
	return physics.Vec2{
		X: r.camera.Min.X + float64(x)/float64(w)*r.camera.Width(),
		Y: r.camera.Max.Y - float64(y)/float64(h)*r.camera.Height(),
	}
}

func (r *renderer) scale() float32 {
	w, _ := r.OutputSize()
	return float32(float64(w) / r.camera.Width())
}

func (r *renderer) DrawQuad(mat service.Material, quad [4]service.Vertex, tint service.Color) {
	if mat.Name == draw.MaterialExplosion {
		progress := draw.SheetProgress(r.sheets[mat.Name], quad)
		c, radius := draw.WorldCircle(r.model, quad)
		for _, ring := range draw.ExplosionRings(progress) {
			r.DrawCircle(c, radius*ring.Radius, tint.WithAlpha(ring.Alpha))
		}
		return
	}

	shape := draw.ShapeFor(mat.Name)
	if shape.Circle {
		c, radius := draw.WorldCircle(r.model, quad)
		if shape.Filled {
			x, y := r.toScreen(c)
			vector.DrawFilledCircle(r.canvas, x, y, float32(radius)*r.scale(), toColor(tint), true)
			return
		}
		r.DrawCircle(c, radius, tint)
		return
	}

	width := float32(strokeWidth)
	if shape.Filled {
		width *= 2
	}
	r.scratch = shape.WorldPoints(r.scratch[:0], r.model, quad)
	for i, p := range r.scratch {
		q := r.scratch[(i+1)%len(r.scratch)]
		x0, y0 := r.toScreen(p)
		x1, y1 := r.toScreen(q)
		vector.StrokeLine(r.canvas, x0, y0, x1, y1, width, toColor(tint), true)
	}
}

func (r *renderer) DrawLine(a, b physics.Vec2, tint service.Color) {
	x0, y0 := r.toScreen(a)
	x1, y1 := r.toScreen(b)
	vector.StrokeLine(r.canvas, x0, y0, x1, y1, strokeWidth, toColor(tint), true)
}

func (r *renderer) DrawCircle(center physics.Vec2, radius float64, tint service.Color) {
	x, y := r.toScreen(center)
	vector.StrokeCircle(r.canvas, x, y, float32(radius)*r.scale(), strokeWidth, toColor(tint), true)
}

// DrawText draws with the top-left corner of the text at pos.
func (r *renderer) DrawText(pos physics.Vec2, s string, tint service.Color) {
	x, y := r.toScreen(pos)
	text.Draw(r.canvas, s, r.face, int(x), int(y)+r.ascent, toColor(tint))
}

func (r *renderer) MeasureText(s string) (float64, float64) {
	b := text.BoundString(r.face, s)
	scale := float64(r.scale())
	return float64(b.Dx()) / scale, float64(r.face.Metrics().Height.Ceil()) / scale
}

func toColor(c service.Color) color.Color {
	channel := func(v float64) uint8 {
		return uint8(min(max(v, 0), 1) * 255)
	}
	return color.NRGBA{R: channel(c.R), G: channel(c.G), B: channel(c.B), A: channel(c.A)}
}

var _ service.Renderer = (*renderer)(nil)
