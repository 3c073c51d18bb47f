package draw

import (
	"math"

	"github.com/tomz197/rockfall/internal/physics"
	"github.com/tomz197/rockfall/internal/service"
	"github.com/tomz197/rockfall/internal/sprite"
)

// Shape is how a material is drawn inside its quad, in quad space: both axes
// span [-1, 1] and +X is the entity's forward direction. Backends without
// textures draw these instead of sampling a sheet.
type Shape struct {
	Points []Point
	Circle bool
	Filled bool
}

// MaterialExplosion is drawn as expanding rings instead of a shape.
const MaterialExplosion = "explosion"

var quadOutline = Shape{Points: []Point{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}}

var shapes = map[string]Shape{
	"ship": {Points: []Point{{1, 0}, {-0.8, 0.7}, {-0.45, 0}, {-0.8, -0.7}}},
	"asteroid_small": {Points: []Point{
		{1, 0.1}, {0.6, 0.8}, {-0.1, 0.95}, {-0.8, 0.6}, {-1, -0.1}, {-0.6, -0.8}, {0.2, -0.95}, {0.85, -0.55},
	}},
	"asteroid_medium": {Points: []Point{
		{0.95, 0.2}, {0.7, 0.75}, {0.15, 0.7}, {-0.3, 1}, {-0.85, 0.55}, {-0.75, 0}, {-1, -0.45},
		{-0.45, -0.95}, {0.1, -0.75}, {0.6, -0.9}, {1, -0.35},
	}},
	"asteroid_large": {Points: []Point{
		{1, 0}, {0.8, 0.5}, {0.45, 0.55}, {0.3, 0.95}, {-0.25, 0.9}, {-0.6, 0.7}, {-0.95, 0.3},
		{-0.8, -0.1}, {-1, -0.5}, {-0.55, -0.9}, {-0.05, -0.7}, {0.35, -1}, {0.8, -0.65},
	}},
	"ufo_small": {Points: []Point{
		{-1, 0}, {-0.45, -0.45}, {0.45, -0.45}, {1, 0}, {0.45, 0.3}, {0.25, 0.75}, {-0.25, 0.75}, {-0.45, 0.3},
	}},
	"ufo_big": {Points: []Point{
		{-1, 0}, {-0.45, -0.45}, {0.45, -0.45}, {1, 0}, {0.45, 0.3}, {0.25, 0.75}, {-0.25, 0.75}, {-0.45, 0.3},
	}},
	"ufo_boss": {Points: []Point{
		{-1, 0}, {-0.7, -0.5}, {-0.3, -0.35}, {0.3, -0.35}, {0.7, -0.5}, {1, 0}, {0.5, 0.35},
		{0.3, 0.85}, {-0.3, 0.85}, {-0.5, 0.35},
	}, Filled: true},
	"bullet":       {Circle: true, Filled: true},
	"mine":         {Points: []Point{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}, Filled: true},
	"thrust":       {Points: []Point{{1, 0.6}, {-1, 0}, {1, -0.6}}, Filled: true},
	"laser":        {Points: quadOutline.Points, Filled: true},
	"laser_charge": {Circle: true},
}

// ShapeFor returns the shape drawn for a material. Unknown materials draw
// their quad outline.
func ShapeFor(material string) Shape {
	if s, ok := shapes[material]; ok {
		return s
	}
	return quadOutline
}

// QuadFrame returns the centre and half size of a quad in model space.
func QuadFrame(quad [4]service.Vertex) (center, half physics.Vec2) {
	lo, hi := quad[0].Pos, quad[0].Pos
	for _, v := range quad[1:] {
		lo = physics.Vec2{X: math.Min(lo.X, v.Pos.X), Y: math.Min(lo.Y, v.Pos.Y)}
		hi = physics.Vec2{X: math.Max(hi.X, v.Pos.X), Y: math.Max(hi.Y, v.Pos.Y)}
	}
	return lo.Add(hi).Scale(0.5), hi.Sub(lo).Scale(0.5)
}

// WorldPoints maps the shape's polygon through the quad and model matrix
// into world space, appending to dst.
func (s Shape) WorldPoints(dst []physics.Vec2, model physics.Mat3, quad [4]service.Vertex) []physics.Vec2 {
	center, half := QuadFrame(quad)
	for _, p := range s.Points {
		local := physics.Vec2{X: center.X + p.X*half.X, Y: center.Y + p.Y*half.Y}
		dst = append(dst, model.Apply(local))
	}
	return dst
}

// WorldCircle returns the world centre and radius of a circle shape.
func WorldCircle(model physics.Mat3, quad [4]service.Vertex) (physics.Vec2, float64) {
	center, half := QuadFrame(quad)
	c := model.Apply(center)
	edge := model.Apply(center.Add(physics.Vec2{X: half.X}))
	return c, edge.Sub(c).Length()
}

// SheetProgress returns how far through its sheet the quad's UV rectangle
// is, in [0, 1].
func SheetProgress(desc sprite.Desc, quad [4]service.Vertex) float64 {
	cols, rows := max(desc.Columns, 1), max(desc.Rows, 1)
	minU, minV := quad[0].U, quad[0].V
	for _, v := range quad[1:] {
		minU = math.Min(minU, v.U)
		minV = math.Min(minV, v.V)
	}
	col := int(math.Round(minU * float64(cols)))
	row := int(math.Round(minV * float64(rows)))
	cell := row*cols + col

	frames := desc.LastFrame - desc.FirstFrame
	if frames <= 0 {
		return 1
	}
	return min(max(float64(cell-desc.FirstFrame)/float64(frames), 0), 1)
}

// Ring is one circle of an explosion frame. Radius is relative to the quad
// half size.
type Ring struct {
	Radius float64
	Alpha  float64
}

// ExplosionRings returns the rings drawn for an explosion at progress in
// [0, 1]: a fast outer shock ring and a slower inner fireball that fades
// first.
func ExplosionRings(progress float64) []Ring {
	rings := []Ring{{Radius: 0.3 + 0.7*progress, Alpha: 1 - 0.8*progress}}
	if progress < 0.6 {
		rings = append(rings, Ring{Radius: 0.15 + 0.5*progress, Alpha: 1 - progress/0.6})
	}
	return rings
}
