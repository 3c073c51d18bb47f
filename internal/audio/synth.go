package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/tomz197/rockfall/internal/service"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a fixed-length wave whose frequency slides linearly
// from freq to endFreq.
type oscillator struct {
	freq     float64
	endFreq  float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator creates an oscillator with a constant frequency.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, duration, wave, rate)
}

// NewSweep creates an oscillator gliding from freq to endFreq.
func NewSweep(freq, endFreq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		endFreq:  endFreq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewSource(int64(freq*1000) + int64(duration))),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		t := float64(o.position) / float64(o.duration)
		freq := o.freq + (o.endFreq-o.freq)*t
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope creates an attack/sustain/release envelope over duration.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := max(total-att-rel, 0)

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			remaining := e.totalSamples - e.position
			vol = max(float64(remaining)/float64(e.releaseSamples), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s in a linear gain. math.Log2(0) is -Inf, so 0 is silence.
func newVolume(s beep.Streamer, vol float64) *effects.Volume {
	v := &effects.Volume{Streamer: s, Base: 2}
	setVolume(v, vol)
	return v
}

func setVolume(v *effects.Volume, vol float64) {
	if vol <= 0 {
		v.Volume = 0
		v.Silent = true
		return
	}
	v.Volume = math.Log2(vol)
	v.Silent = false
}

// shaped is an oscillator with an envelope and a fixed gain.
func shaped(rate beep.SampleRate, from, to float64, d time.Duration, wave WaveType, attack, release time.Duration, gain float64) beep.Streamer {
	osc := NewSweep(from, to, d, wave, rate)
	return newVolume(NewEnvelope(osc, d, attack, release, rate), gain)
}

// synthesize builds the fallback for a game sound when no wav is registered.
// It returns nil for unknown sounds.
func synthesize(sound string, rate beep.SampleRate) beep.Streamer {
	ms := func(n int) time.Duration { return time.Duration(n) * time.Millisecond }

	switch sound {
	case service.SoundFire:
		return shaped(rate, 1400, 500, ms(90), WaveSquare, ms(2), ms(60), 0.15)
	case service.SoundUFOFire:
		return shaped(rate, 900, 300, ms(120), WaveSaw, ms(2), ms(80), 0.15)
	case service.SoundLaser:
		return beep.Mix(
			shaped(rate, 180, 90, ms(400), WaveSaw, ms(20), ms(200), 0.2),
			shaped(rate, 0, 0, ms(400), WaveNoise, ms(20), ms(300), 0.08),
		)
	case service.SoundExplodeLarge:
		return explosion(rate, ms(700), 70, 0.45)
	case service.SoundExplodeMedium:
		return explosion(rate, ms(450), 110, 0.35)
	case service.SoundExplodeSmall:
		return explosion(rate, ms(250), 160, 0.25)
	case service.SoundShipExplode:
		return beep.Seq(
			explosion(rate, ms(500), 60, 0.5),
			explosion(rate, ms(600), 40, 0.35),
		)
	case service.SoundMineDrop:
		return shaped(rate, 300, 600, ms(80), WaveSine, ms(5), ms(40), 0.2)
	case service.SoundMineBlast:
		return explosion(rate, ms(800), 50, 0.5)
	case service.SoundUFOArrive:
		return beep.Seq(
			shaped(rate, 660, 880, ms(150), WaveSine, ms(10), ms(50), 0.15),
			shaped(rate, 880, 660, ms(150), WaveSine, ms(10), ms(50), 0.15),
		)
	case service.SoundMenuMove:
		return shaped(rate, 880, 880, ms(40), WaveSquare, ms(2), ms(20), 0.1)
	case service.SoundMenuSelect:
		return beep.Seq(
			shaped(rate, 988, 988, ms(60), WaveSquare, ms(2), ms(30), 0.12),
			shaped(rate, 1319, 1319, ms(120), WaveSquare, ms(2), ms(80), 0.12),
		)
	case service.SoundMusic:
		return newPulse(rate)
	default:
		return nil
	}
}

// explosion mixes shaped noise with a falling low rumble.
func explosion(rate beep.SampleRate, d time.Duration, rumble float64, gain float64) beep.Streamer {
	return newVolume(beep.Mix(
		NewEnvelope(NewOscillator(0, d, WaveNoise, rate), d, d/50, d*3/4, rate),
		newVolume(NewEnvelope(NewSweep(rumble, rumble/2, d, WaveSine, rate), d, d/50, d/2, rate), 0.8),
	), gain)
}

// pulse is the endless background track: a kick on every beat over a bass
// line that steps through a four-note loop.
type pulse struct {
	rate    beep.SampleRate
	pos     int
	samples int
}

var bassLine = [...]float64{55, 55, 65.41, 49}

func newPulse(rate beep.SampleRate) beep.Streamer {
	return &pulse{rate: rate, samples: rate.N(500 * time.Millisecond)}
}

func (p *pulse) Stream(samples [][2]float64) (n int, ok bool) {
	kickLen := p.rate.N(90 * time.Millisecond)
	for i := range samples {
		beatPos := p.pos % p.samples
		t := float64(beatPos) / float64(p.rate)

		kick := 0.0
		if beatPos < kickLen {
			env := 1.0 - float64(beatPos)/float64(kickLen)
			kick = 0.35 * env * math.Sin(2*math.Pi*60*(1+2*env)*t)
		}
		note := bassLine[(p.pos/p.samples)%len(bassLine)]
		bass := 0.12 * math.Sin(2*math.Pi*note*float64(p.pos)/float64(p.rate))

		samples[i][0] = kick + bass
		samples[i][1] = kick + bass
		p.pos++
	}
	return len(samples), true
}

func (p *pulse) Err() error { return nil }
