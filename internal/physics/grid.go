package physics

import "math"

// SpatialGrid is a uniform grid over a wrapping world. Items are inserted by
// position and caller-defined index, then queried by radius. Used for area
// effects (mine blasts) where a query disc may straddle a world edge.
type SpatialGrid struct {
	bounds      Bounds
	cellSize    float64
	invCellSize float64
	cols        int
	rows        int
	cells       [][]int
}

// NewSpatialGrid creates a grid covering bounds. cellSize should be close to
// the typical query radius.
func NewSpatialGrid(bounds Bounds, cellSize float64) *SpatialGrid {
	cols := max(int(math.Ceil(bounds.Width()/cellSize)), 1)
	rows := max(int(math.Ceil(bounds.Height()/cellSize)), 1)

	return &SpatialGrid{
		bounds:      bounds,
		cellSize:    cellSize,
		invCellSize: 1.0 / cellSize,
		cols:        cols,
		rows:        rows,
		cells:       make([][]int, cols*rows),
	}
}

// Clear empties every cell, keeping the backing arrays.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds an item at p.
func (g *SpatialGrid) Insert(p Vec2, index int) {
	col, row := g.cellOf(p)
	idx := row*g.cols + col
	g.cells[idx] = append(g.cells[idx], index)
}

// QueryRadius calls fn for every item in cells touched by the disc
// (center, radius), wrapping at world edges. Each item is reported at most
// once. fn returning true stops the query. Callers still run the exact
// overlap test; the grid is only a broad phase.
func (g *SpatialGrid) QueryRadius(center Vec2, radius float64, fn func(index int) bool) {
	col, row := g.cellOf(center)
	reach := int(math.Ceil(radius*g.invCellSize)) + 1

	spanC := min(2*reach+1, g.cols)
	spanR := min(2*reach+1, g.rows)

	for dr := 0; dr < spanR; dr++ {
		r := wrapIndex(row-reach+dr, g.rows)
		rowOffset := r * g.cols
		for dc := 0; dc < spanC; dc++ {
			c := wrapIndex(col-reach+dc, g.cols)
			for _, item := range g.cells[rowOffset+c] {
				if fn(item) {
					return
				}
			}
		}
	}
}

// cellOf converts world coordinates to a clamped cell.
func (g *SpatialGrid) cellOf(p Vec2) (col, row int) {
	col = int((p.X - g.bounds.Min.X) * g.invCellSize)
	row = int((p.Y - g.bounds.Min.Y) * g.invCellSize)
	col = min(max(col, 0), g.cols-1)
	row = min(max(row, 0), g.rows-1)
	return col, row
}

func wrapIndex(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// WrappedDistanceSquared is DistanceSquared measured along the shortest path
// in a world that wraps at bounds.
func WrappedDistanceSquared(a, b Vec2, bounds Bounds) float64 {
	dx := math.Abs(b.X - a.X)
	dy := math.Abs(b.Y - a.Y)
	if w := bounds.Width(); w > 0 && dx > w/2 {
		dx = w - dx
	}
	if h := bounds.Height(); h > 0 && dy > h/2 {
		dy = h - dy
	}
	return dx*dx + dy*dy
}
