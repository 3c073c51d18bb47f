package draw

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tomz197/rockfall/internal/physics"
	"github.com/tomz197/rockfall/internal/service"
	"github.com/tomz197/rockfall/internal/sprite"
)

func TestColor256(t *testing.T) {
	if got := Color256(service.Color{R: 1, G: 1, B: 1, A: 1}); got != 231 {
		t.Errorf("Expected white to map to 231, got %d", got)
	}
	if got := Color256(service.Color{R: 1, A: 1}); got != 196 {
		t.Errorf("Expected red to map to 196, got %d", got)
	}
	if got := Color256(service.White.WithAlpha(0)); got != NoColor {
		t.Errorf("Expected transparent tint to be skipped, got %d", got)
	}
}

func TestCanvas_HalfBlocks(t *testing.T) {
	c := NewCanvas(3, 1)
	c.SetPixel(0, 0, 231)
	c.SetPixel(1, 1, 231)
	c.SetPixel(2, 0, 231)
	c.SetPixel(2, 1, 231)

	if got := c.cellAt(0, 0); got.ch != BlockUpperHalf {
		t.Errorf("Expected upper half, got %q", got.ch)
	}
	if got := c.cellAt(1, 0); got.ch != BlockLowerHalf {
		t.Errorf("Expected lower half, got %q", got.ch)
	}
	if got := c.cellAt(2, 0); got.ch != BlockFull {
		t.Errorf("Expected full block, got %q", got.ch)
	}
}

func TestCanvas_TwoColoursShareACell(t *testing.T) {
	c := NewCanvas(1, 1)
	c.SetPixel(0, 0, 196)
	c.SetPixel(0, 1, 21)

	got := c.cellAt(0, 0)
	if got.ch != BlockUpperHalf || got.fg != 196 || got.bg != 21 {
		t.Errorf("Expected upper half red on blue, got %+v", got)
	}
}

func TestCanvas_TextCoversPixels(t *testing.T) {
	c := NewCanvas(4, 1)
	c.SetPixel(1, 0, 196)
	c.WriteText(1, 0, "hit me", 231)

	if got := c.cellAt(1, 0); got.ch != 'h' || got.fg != 231 {
		t.Errorf("Expected text over pixels, got %+v", got)
	}
	if got := c.cellAt(3, 0); got.ch != 't' {
		t.Errorf("Expected text cut at the edge, got %q", got.ch)
	}
}

func TestCanvas_RenderOnlyChanges(t *testing.T) {
	c := NewCanvas(4, 2)
	c.SetPixel(1, 1, 231)

	var first bytes.Buffer
	if err := c.Render(&first); err != nil {
		t.Fatal(err)
	}
	if !strings.ContainsRune(first.String(), BlockLowerHalf) {
		t.Fatalf("Expected the first render to draw the pixel, got %q", first.String())
	}

	var second bytes.Buffer
	if err := c.Render(&second); err != nil {
		t.Fatal(err)
	}
	if second.Len() != 0 {
		t.Errorf("Expected nothing for an unchanged frame, got %q", second.String())
	}

	c.Clear()
	var third bytes.Buffer
	if err := c.Render(&third); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(third.String(), "\033[1;2H") {
		t.Errorf("Expected the cleared cell to be rewritten, got %q", third.String())
	}

	c.ForceRedraw()
	var fourth bytes.Buffer
	if err := c.Render(&fourth); err != nil {
		t.Fatal(err)
	}
	if strings.Count(fourth.String(), " ") != 8 {
		t.Errorf("Expected a forced redraw of all 8 cells, got %q", fourth.String())
	}
}

func TestCanvas_RenderAppliesOffset(t *testing.T) {
	c := NewCanvas(2, 1)
	c.SetOffset(5, 3)
	c.SetPixel(0, 0, 231)

	var buf bytes.Buffer
	if err := c.Render(&buf); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "\033[4;6H") {
		t.Errorf("Expected output to start at row 4 col 6, got %q", buf.String())
	}
}

func TestCanvas_FillPolygon(t *testing.T) {
	c := NewCanvas(10, 5)
	c.DrawPolygon([]Point{{1, 1}, {8, 1}, {8, 8}, {1, 8}}, 231, true)

	for _, p := range []Point{{4, 4}, {1, 1}, {8, 8}} {
		if c.Pixel(int(p.X), int(p.Y)) == NoColor {
			t.Errorf("Expected pixel %v to be filled", p)
		}
	}
	if c.Pixel(0, 0) != NoColor || c.Pixel(9, 9) != NoColor {
		t.Error("Expected pixels outside the square to stay empty")
	}
}

func TestClampTermSize(t *testing.T) {
	w, h, col, row := ClampTermSize(400, 100, 320, 90)
	if w != 320 || h != 90 || col != 40 || row != 5 {
		t.Errorf("Unexpected clamp %d %d %d %d", w, h, col, row)
	}
	w, h, col, row = ClampTermSize(80, 24, 320, 90)
	if w != 80 || h != 24 || col != 0 || row != 0 {
		t.Errorf("Expected small terminals untouched, got %d %d %d %d", w, h, col, row)
	}
}

func TestChunkWriter_Flush(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out)
	long := strings.Repeat("x", maxChunkSize*2+10)
	cw.WriteString(long)
	if out.Len() != 0 {
		t.Fatal("Expected nothing written before Flush")
	}
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if out.String() != long {
		t.Errorf("Expected %d bytes, got %d", len(long), out.Len())
	}
}

func TestSheetProgress(t *testing.T) {
	desc := sprite.Desc{Material: "explosion", Columns: 5, Rows: 5, LastFrame: 24}
	anim := sprite.NewAnimation(desc)

	quadAt := func(cell int) [4]service.Vertex {
		uv := anim.CellUV(cell)
		return [4]service.Vertex{
			{U: uv.MinU, V: uv.MaxV}, {U: uv.MaxU, V: uv.MaxV},
			{U: uv.MaxU, V: uv.MinV}, {U: uv.MinU, V: uv.MinV},
		}
	}
	if p := SheetProgress(desc, quadAt(0)); p != 0 {
		t.Errorf("Expected 0 at the first frame, got %v", p)
	}
	if p := SheetProgress(desc, quadAt(12)); p != 0.5 {
		t.Errorf("Expected 0.5 at frame 12, got %v", p)
	}
	if p := SheetProgress(desc, quadAt(24)); p != 1 {
		t.Errorf("Expected 1 at the last frame, got %v", p)
	}
}

func TestShape_WorldPoints(t *testing.T) {
	quad := [4]service.Vertex{
		{Pos: physics.Vec2{X: -2, Y: -2}}, {Pos: physics.Vec2{X: 2, Y: -2}},
		{Pos: physics.Vec2{X: 2, Y: 2}}, {Pos: physics.Vec2{X: -2, Y: 2}},
	}
	model := physics.TRS(physics.Vec2{X: 10, Y: 20}, 90, 1)
	pts := ShapeFor("ship").WorldPoints(nil, model, quad)

	nose := pts[0]
	if d := nose.Sub(physics.Vec2{X: 10, Y: 22}).Length(); d > 1e-9 {
		t.Errorf("Expected the nose pointing up at (10, 22), got %v", nose)
	}
	if len(ShapeFor("no_such_material").Points) != 4 {
		t.Error("Expected unknown materials to draw their quad")
	}
}

func TestTerminal_DrawsIntoCanvas(t *testing.T) {
	var out bytes.Buffer
	r := NewTerminal(&out, FixedTermSize(40, 10), 320, 90)
	if w, h := r.OutputSize(); w != 40 || h != 20 {
		t.Fatalf("Expected 40x20 pixels, got %dx%d", w, h)
	}
	r.SetCamera(physics.NewBounds(40, 20))

	r.DrawLine(physics.Vec2{X: 0, Y: 10}, physics.Vec2{X: 39, Y: 10}, service.White)
	if r.Canvas().Pixel(20, 10) == NoColor {
		t.Error("Expected the line across the middle")
	}

	r.DrawText(physics.Vec2{X: 2, Y: 20}, "Score", service.White)
	if got := r.Canvas().cellAt(2, 0); got.ch != 'S' {
		t.Errorf("Expected text at the top-left, got %q", got.ch)
	}
	if w, h := r.MeasureText("Score"); w != 5 || h != 2 {
		t.Errorf("Expected 5x2 world units, got %vx%v", w, h)
	}

	if err := r.Present(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Score") {
		t.Error("Expected the text in the output")
	}
	if r.Canvas().Pixel(20, 10) != NoColor {
		t.Error("Expected the canvas cleared after Present")
	}
}

func TestTerminal_ResizeClearsScreen(t *testing.T) {
	var out bytes.Buffer
	w, h := 40, 10
	r := NewTerminal(&out, func() (int, int, error) { return w, h, nil }, 320, 90)
	if err := r.Present(); err != nil {
		t.Fatal(err)
	}
	out.Reset()

	w = 60
	if err := r.Present(); err != nil { // Picks up the new size
		t.Fatal(err)
	}
	if err := r.Present(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "\033[H\033[2J") {
		t.Error("Expected a clear after resize")
	}
	if pw, _ := r.OutputSize(); pw != 60 {
		t.Errorf("Expected width 60, got %d", pw)
	}
}
