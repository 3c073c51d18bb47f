package loop

import (
	"math"
	"math/rand"

	"github.com/tomz197/rockfall/internal/physics"
)

// Shake is a trauma-based camera shake. Trauma in [0, 1] decays linearly;
// the offset grows with trauma squared.
type Shake struct {
	Intensity float64 // World units at full trauma
	Decay     float64 // Trauma lost per second

	trauma float64
}

// NewShake creates a shake with the given parameters.
func NewShake(intensity, decay float64) *Shake {
	return &Shake{Intensity: intensity, Decay: decay}
}

// Add raises trauma, capped at 1.
func (s *Shake) Add(amount float64) {
	s.trauma = math.Min(s.trauma+amount, 1)
}

// Trauma returns the current trauma level.
func (s *Shake) Trauma() float64 { return s.trauma }

// Update decays trauma.
func (s *Shake) Update(dt float64) {
	s.trauma = math.Max(s.trauma-s.Decay*dt, 0)
}

// Reset clears trauma.
func (s *Shake) Reset() { s.trauma = 0 }

// Offset returns a random camera displacement for the current trauma.
func (s *Shake) Offset(r *rand.Rand) physics.Vec2 {
	if s.trauma == 0 || s.Intensity == 0 {
		return physics.Zero
	}
	mag := s.Intensity * s.trauma * s.trauma
	return physics.FromAngle(r.Float64() * 360).Scale(mag * r.Float64())
}
