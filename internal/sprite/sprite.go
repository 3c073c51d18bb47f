// Package sprite describes sprite-sheet animations: which cells of a sheet
// play, for how long, and the UV rectangle to sample at a given time.
package sprite

import "math"

// Mode controls what happens after the last frame.
type Mode int

const (
	PlayOnce Mode = iota // Hold the last frame and report finished
	Loop                 // Wrap back to the first frame
	PingPong             // Bounce between first and last frame
)

// Desc describes an animation over a uniform grid of cells.
type Desc struct {
	Material   string
	Columns    int
	Rows       int
	FirstFrame int
	LastFrame  int
	Duration   float64 // Seconds for one pass over the frames
	Mode       Mode
}

// UV is a texture-space rectangle.
type UV struct {
	MinU, MinV float64
	MaxU, MaxV float64
}

// Full covers the whole texture.
var Full = UV{MaxU: 1, MaxV: 1}

// Animation is an immutable, shareable playback definition.
type Animation struct {
	desc   Desc
	frames int
}

// NewAnimation validates desc and builds an animation. Degenerate values are
// clamped so lookups never divide by zero.
func NewAnimation(desc Desc) *Animation {
	desc.Columns = max(desc.Columns, 1)
	desc.Rows = max(desc.Rows, 1)
	cells := desc.Columns * desc.Rows
	desc.FirstFrame = min(max(desc.FirstFrame, 0), cells-1)
	desc.LastFrame = min(max(desc.LastFrame, desc.FirstFrame), cells-1)
	return &Animation{
		desc:   desc,
		frames: desc.LastFrame - desc.FirstFrame + 1,
	}
}

// Material returns the sheet material name.
func (a *Animation) Material() string { return a.desc.Material }

// Duration returns the length of one pass in seconds.
func (a *Animation) Duration() float64 { return a.desc.Duration }

// FrameCount returns the number of frames in one pass.
func (a *Animation) FrameCount() int { return a.frames }

// Finished reports whether a PlayOnce animation has completed at elapsed.
// Looping animations never finish.
func (a *Animation) Finished(elapsed float64) bool {
	return a.desc.Mode == PlayOnce && elapsed >= a.desc.Duration
}

// Frame returns the sheet cell index shown at elapsed seconds.
func (a *Animation) Frame(elapsed float64) int {
	if a.frames == 1 || a.desc.Duration <= 0 {
		return a.desc.FirstFrame
	}
	perFrame := a.desc.Duration / float64(a.frames)
	step := int(math.Floor(max(elapsed, 0) / perFrame))

	switch a.desc.Mode {
	case Loop:
		step %= a.frames
	case PingPong:
		period := 2*a.frames - 2
		step %= period
		if step >= a.frames {
			step = period - step
		}
	default:
		step = min(step, a.frames-1)
	}
	return a.desc.FirstFrame + step
}

// UVAt returns the texture rectangle for the frame at elapsed seconds.
func (a *Animation) UVAt(elapsed float64) UV {
	return a.CellUV(a.Frame(elapsed))
}

// CellUV returns the texture rectangle of a sheet cell.
func (a *Animation) CellUV(cell int) UV {
	col := cell % a.desc.Columns
	row := cell / a.desc.Columns
	w := 1 / float64(a.desc.Columns)
	h := 1 / float64(a.desc.Rows)
	return UV{
		MinU: float64(col) * w,
		MinV: float64(row) * h,
		MaxU: float64(col+1) * w,
		MaxV: float64(row+1) * h,
	}
}

// Progress returns elapsed/duration clamped to [0, 1] for PlayOnce animations.
func (a *Animation) Progress(elapsed float64) float64 {
	if a.desc.Duration <= 0 {
		return 1
	}
	return min(max(elapsed/a.desc.Duration, 0), 1)
}
