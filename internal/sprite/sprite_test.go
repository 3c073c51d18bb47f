package sprite

import "testing"

func newExplosionSheet(mode Mode) *Animation {
	return NewAnimation(Desc{
		Material:   "explosion",
		Columns:    5,
		Rows:       5,
		FirstFrame: 0,
		LastFrame:  24,
		Duration:   1.0,
		Mode:       mode,
	})
}

func TestAnimationFrame_PlayOnceHoldsLast(t *testing.T) {
	a := newExplosionSheet(PlayOnce)

	if got := a.Frame(0); got != 0 {
		t.Errorf("Expected first frame 0, got %d", got)
	}
	if got := a.Frame(0.5); got != 12 {
		t.Errorf("Expected frame 12 at half time, got %d", got)
	}
	if got := a.Frame(5); got != 24 {
		t.Errorf("Expected last frame held, got %d", got)
	}
	if a.Finished(0.99) {
		t.Error("Expected animation not finished before duration")
	}
	if !a.Finished(1.0) {
		t.Error("Expected animation finished at duration")
	}
}

func TestAnimationFrame_LoopWraps(t *testing.T) {
	a := newExplosionSheet(Loop)
	if got := a.Frame(1.02); got != 0 {
		t.Errorf("Expected loop to wrap to frame 0, got %d", got)
	}
	if a.Finished(100) {
		t.Error("Expected looping animation never to finish")
	}
}

func TestAnimationFrame_PingPong(t *testing.T) {
	a := NewAnimation(Desc{Columns: 4, Rows: 1, LastFrame: 3, Duration: 4, Mode: PingPong})
	want := []int{0, 1, 2, 3, 2, 1, 0, 1}
	for i, w := range want {
		if got := a.Frame(float64(i) + 0.5); got != w {
			t.Errorf("Step %d: expected frame %d, got %d", i, w, got)
		}
	}
}

func TestAnimationCellUV(t *testing.T) {
	a := NewAnimation(Desc{Columns: 4, Rows: 2, LastFrame: 7, Duration: 1})
	uv := a.CellUV(5)
	if uv.MinU != 0.25 || uv.MaxU != 0.5 || uv.MinV != 0.5 || uv.MaxV != 1 {
		t.Errorf("Unexpected UV for cell 5: %+v", uv)
	}
}

func TestNewAnimation_ClampsDegenerateDesc(t *testing.T) {
	a := NewAnimation(Desc{Columns: 0, Rows: 0, FirstFrame: 3, LastFrame: -1})
	if a.FrameCount() != 1 {
		t.Errorf("Expected single frame, got %d", a.FrameCount())
	}
	if got := a.Frame(10); got != 0 {
		t.Errorf("Expected frame 0, got %d", got)
	}
	if a.Progress(1) != 1 {
		t.Error("Expected zero-duration animation to report full progress")
	}
}
