package object

// WaveSpawner starts a new wave of large asteroids whenever the world has
// none left.
type WaveSpawner struct {
	wave int // Next wave to spawn, starting at 1
}

// NewWaveSpawner creates a spawner whose first wave is 1.
func NewWaveSpawner() *WaveSpawner {
	return &WaveSpawner{wave: 1}
}

// Wave returns the number of the next wave to spawn.
func (s *WaveSpawner) Wave() int { return s.wave }

// Current returns the wave in progress (0 before the first spawn).
func (s *WaveSpawner) Current() int { return s.wave - 1 }

// Update spawns wave × multiplier large asteroids along the world edges when
// the asteroid count is zero. Pending and dying asteroids count, so a split
// in progress never triggers an early wave. It returns the number of the
// wave it started, or 0.
func (s *WaveSpawner) Update(w *World) int {
	if w.Count(KindAsteroid) > 0 {
		return 0
	}
	n := w.Difficulty.WaveSize(s.wave)
	for range n {
		w.MakeAsteroidAtEdge()
	}
	started := s.wave
	s.wave++
	return started
}
