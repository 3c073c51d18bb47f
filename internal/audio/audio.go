// Package audio implements the game's Audio service on top of beep: wav
// files registered from a folder, synthesized fallbacks for every game
// sound, and per-group volume.
package audio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
	"github.com/tomz197/rockfall/internal/service"
)

const (
	sampleRate = beep.SampleRate(44100)

	// resampleQuality is the beep interpolation quality used for wav files
	// recorded at another rate.
	resampleQuality = 4
)

// Player is a service.Audio. Until Start is called it mixes into a mixer
// nobody drains, which keeps it usable without a sound device.
type Player struct {
	mu      sync.Mutex
	log     *log.Logger
	mixer   *beep.Mixer
	buffers map[string]*beep.Buffer
	volumes map[service.Group]float64
	music   *effects.Volume
	started bool
}

// New creates a player with both groups at full volume. A nil logger
// discards.
func New(logger *log.Logger) *Player {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Player{
		log:     logger,
		mixer:   &beep.Mixer{},
		buffers: make(map[string]*beep.Buffer),
		volumes: map[service.Group]float64{
			service.GroupSound: 1,
			service.GroupMusic: 1,
		},
	}
}

// Start opens the sound device and begins draining the mixer.
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.started = true
	return nil
}

// Close silences everything. The device stays open; beep cannot reopen it.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.lockSpeaker()
	p.mixer.Clear()
	p.music = nil
	p.unlockSpeaker()
}

// Play starts sound. Music replaces whatever music is playing; other sounds
// overlap freely. Unknown sounds are ignored.
func (p *Player) Play(sound string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	group := service.GroupOf(sound)
	s := p.source(sound, group == service.GroupMusic)
	if s == nil {
		p.log.Debug("Unknown sound", "sound", sound)
		return
	}
	vol := newVolume(s, p.volumes[group])

	p.lockSpeaker()
	defer p.unlockSpeaker()
	if group == service.GroupMusic {
		if p.music != nil {
			p.music.Streamer = silence{}
		}
		p.music = vol
	}
	p.mixer.Add(vol)
}

// source returns the registered wav for sound, or its synthesized fallback.
func (p *Player) source(sound string, loop bool) beep.Streamer {
	if buf, ok := p.buffers[sound]; ok {
		if loop {
			return &looped{buf: buf, cur: buf.Streamer(0, buf.Len())}
		}
		return buf.Streamer(0, buf.Len())
	}
	return synthesize(sound, sampleRate)
}

// SetGroupVolume sets a group volume in [0, 1]. Playing music follows at
// once; effects already playing keep their volume.
func (p *Player) SetGroupVolume(group service.Group, volume float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	volume = min(max(volume, 0), 1)
	p.volumes[group] = volume
	if group == service.GroupMusic && p.music != nil {
		p.lockSpeaker()
		setVolume(p.music, volume)
		p.unlockSpeaker()
	}
}

// RegisterWavFilesFromFolder loads every .wav file in dir, named by its file
// name without extension. A file that fails to decode is skipped and
// reported; the others still load.
func (p *Player) RegisterWavFilesFromFolder(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read sound folder: %w", err)
	}

	var errs []error
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".wav") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		buf, err := loadWav(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		name := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		p.mu.Lock()
		p.buffers[name] = buf
		p.mu.Unlock()
		p.log.Debug("Registered sound", "sound", name, "samples", buf.Len())
	}
	return errors.Join(errs...)
}

// Registered reports whether a wav file was loaded for sound.
func (p *Player) Registered(sound string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.buffers[sound]
	return ok
}

func loadWav(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	s, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	defer s.Close()

	var src beep.Streamer = s
	if format.SampleRate != sampleRate {
		src = beep.Resample(resampleQuality, format.SampleRate, sampleRate, s)
	}
	format.SampleRate = sampleRate
	buf := beep.NewBuffer(format)
	buf.Append(src)
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return buf, nil
}

func (p *Player) lockSpeaker() {
	if p.started {
		speaker.Lock()
	}
}

func (p *Player) unlockSpeaker() {
	if p.started {
		speaker.Unlock()
	}
}

// looped replays a buffer forever.
type looped struct {
	buf *beep.Buffer
	cur beep.StreamSeeker
}

func (l *looped) Stream(samples [][2]float64) (n int, ok bool) {
	if l.buf.Len() == 0 {
		return 0, false
	}
	for n < len(samples) {
		m, ok := l.cur.Stream(samples[n:])
		n += m
		if !ok || m == 0 {
			l.cur = l.buf.Streamer(0, l.buf.Len())
		}
	}
	return n, true
}

func (l *looped) Err() error { return nil }

// silence ends immediately; the mixer then drops the stream.
type silence struct{}

func (silence) Stream([][2]float64) (int, bool) { return 0, false }
func (silence) Err() error                      { return nil }
