package draw

import (
	"io"
	"math"
	"unicode/utf8"

	"github.com/tomz197/rockfall/internal/physics"
	"github.com/tomz197/rockfall/internal/service"
	"github.com/tomz197/rockfall/internal/sprite"
)

// Terminal is a service.Renderer drawing into a Canvas. Draw calls during a
// frame fill the canvas; Present writes the changed cells and starts the
// next frame. One pixel is half a cell, so pixels are roughly square.
type Terminal struct {
	canvas *Canvas
	out    *ChunkWriter
	raw    io.Writer
	size   TermSizeFunc

	maxWidth, maxHeight int
	termWidth           int
	termHeight          int

	camera    physics.Bounds
	model     physics.Mat3
	materials map[string]service.Material
	sheets    map[string]sprite.Desc
	scratch   []physics.Vec2
	points    []Point
}

// NewTerminal creates a renderer writing to w. The render area is clamped to
// maxWidth x maxHeight cells and centred in larger terminals.
func NewTerminal(w io.Writer, size TermSizeFunc, maxWidth, maxHeight int) *Terminal {
	t := &Terminal{
		canvas:    NewCanvas(1, 1),
		out:       NewChunkWriter(w),
		raw:       w,
		size:      size,
		maxWidth:  maxWidth,
		maxHeight: maxHeight,
		model:     physics.Identity,
		materials: make(map[string]service.Material),
		sheets:    make(map[string]sprite.Desc),
	}
	t.updateSize()
	t.camera = physics.NewBounds(float64(t.canvas.PixelWidth()), float64(t.canvas.PixelHeight()))
	return t
}

// Canvas exposes the drawing buffer.
func (t *Terminal) Canvas() *Canvas { return t.canvas }

// Start hides the cursor and clears the screen.
func (t *Terminal) Start() {
	HideCursor(t.raw)
	ClearScreen(t.raw)
	t.canvas.ForceRedraw()
}

// Stop restores the cursor and clears the screen.
func (t *Terminal) Stop() {
	ClearScreen(t.raw)
	ShowCursor(t.raw)
}

// Present flushes the frame, clears the canvas for the next one and picks up
// terminal resizes.
func (t *Terminal) Present() error {
	full := t.canvas.forceRedraw
	if err := t.canvas.Render(t.out); err != nil {
		return err
	}
	if full {
		t.out.RenderBorder(t.canvas)
	}
	if err := t.out.Flush(); err != nil {
		return err
	}
	t.canvas.Clear()
	t.updateSize()
	return nil
}

// updateSize resizes the canvas when the terminal changed size. The screen
// is cleared so nothing outside the new render area survives.
func (t *Terminal) updateSize() {
	w, h, err := t.size()
	if err != nil || w <= 0 || h <= 0 {
		return
	}
	if w == t.termWidth && h == t.termHeight {
		return
	}
	first := t.termWidth == 0
	t.termWidth, t.termHeight = w, h
	rw, rh, offCol, offRow := ClampTermSize(w, h, t.maxWidth, t.maxHeight)
	t.canvas.Resize(rw, rh)
	t.canvas.SetOffset(offCol, offRow)
	t.canvas.ForceRedraw()
	if !first {
		t.out.WriteString("\033[H\033[2J")
	}
}

// OutputSize returns the canvas resolution in pixels.
func (t *Terminal) OutputSize() (int, int) {
	return t.canvas.PixelWidth(), t.canvas.PixelHeight()
}

// GetMaterial returns a stable handle per material name.
func (t *Terminal) GetMaterial(name string) service.Material {
	if m, ok := t.materials[name]; ok {
		return m
	}
	m := service.Material{Name: name, ID: len(t.materials) + 1}
	t.materials[name] = m
	return m
}

// CreateAnimatedSprite remembers the sheet layout so quads using the
// material can be drawn by frame.
func (t *Terminal) CreateAnimatedSprite(desc sprite.Desc) *sprite.Animation {
	a := sprite.NewAnimation(desc)
	t.sheets[desc.Material] = desc
	return a
}

func (t *Terminal) SetCamera(view physics.Bounds) { t.camera = view }

func (t *Terminal) SetModelMatrix(m physics.Mat3) { t.model = m }

// toPixel maps a world position onto the canvas. World y points up, canvas
// rows grow downwards.
func (t *Terminal) toPixel(p physics.Vec2) Point {
	cam := t.camera
	return Point{
		X: (p.X - cam.Min.X) / cam.Width() * float64(t.canvas.PixelWidth()),
		Y: (cam.Max.Y - p.Y) / cam.Height() * float64(t.canvas.PixelHeight()),
	}
}

// pixelRadii converts a world length into horizontal and vertical pixels.
func (t *Terminal) pixelRadii(r float64) (rx, ry float64) {
	return r / t.camera.Width() * float64(t.canvas.PixelWidth()),
		r / t.camera.Height() * float64(t.canvas.PixelHeight())
}

func (t *Terminal) DrawQuad(mat service.Material, quad [4]service.Vertex, tint service.Color) {
	if mat.Name == MaterialExplosion {
		t.drawExplosion(mat, quad, tint)
		return
	}
	color := Color256(tint)
	if color == NoColor {
		return
	}

	shape := ShapeFor(mat.Name)
	if shape.Circle {
		c, r := WorldCircle(t.model, quad)
		t.drawWorldCircle(c, r, color, shape.Filled)
		return
	}

	t.scratch = shape.WorldPoints(t.scratch[:0], t.model, quad)
	t.points = t.points[:0]
	for _, p := range t.scratch {
		t.points = append(t.points, t.toPixel(p))
	}
	t.canvas.DrawPolygon(t.points, color, shape.Filled)
}

func (t *Terminal) drawExplosion(mat service.Material, quad [4]service.Vertex, tint service.Color) {
	progress := SheetProgress(t.sheets[mat.Name], quad)
	c, r := WorldCircle(t.model, quad)
	for _, ring := range ExplosionRings(progress) {
		color := Color256(tint.WithAlpha(ring.Alpha))
		if color == NoColor {
			continue
		}
		t.drawWorldCircle(c, r*ring.Radius, color, false)
	}
}

func (t *Terminal) drawWorldCircle(center physics.Vec2, radius float64, color uint8, filled bool) {
	p := t.toPixel(center)
	rx, ry := t.pixelRadii(radius)
	if !filled {
		t.canvas.DrawCircle(p, rx, ry, color)
		return
	}
	const segments = 12
	t.points = t.points[:0]
	for i := range segments {
		a := 2 * math.Pi * float64(i) / segments
		t.points = append(t.points, Point{X: p.X + rx*math.Cos(a), Y: p.Y + ry*math.Sin(a)})
	}
	t.canvas.DrawPolygon(t.points, color, true)
}

func (t *Terminal) DrawLine(a, b physics.Vec2, tint service.Color) {
	if color := Color256(tint); color != NoColor {
		t.canvas.DrawLine(t.toPixel(a), t.toPixel(b), color)
	}
}

func (t *Terminal) DrawCircle(center physics.Vec2, radius float64, tint service.Color) {
	if color := Color256(tint); color != NoColor {
		t.drawWorldCircle(center, radius, color, false)
	}
}

// DrawText writes text on the overlay with its top-left corner at pos.
func (t *Terminal) DrawText(pos physics.Vec2, text string, tint service.Color) {
	color := Color256(tint)
	if color == NoColor {
		return
	}
	p := t.toPixel(pos)
	t.canvas.WriteText(int(math.Round(p.X)), int(math.Floor(p.Y/2)), text, color)
}

// MeasureText returns the world extent of text: one column per rune, one
// row high.
func (t *Terminal) MeasureText(text string) (float64, float64) {
	cellW := t.camera.Width() / float64(t.canvas.TerminalWidth())
	cellH := t.camera.Height() / float64(t.canvas.TerminalHeight())
	return float64(utf8.RuneCountInString(text)) * cellW, cellH
}

var _ service.Renderer = (*Terminal)(nil)
