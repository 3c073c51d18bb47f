package loop

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tomz197/rockfall/internal/loop/config"
	"github.com/tomz197/rockfall/internal/service"
)

// Settings keys in the persisted key=value file.
const (
	KeyDifficulty     = "difficulty"
	KeyControls       = "controls"
	KeySoundVolume    = "sound_volume"
	KeyMusicVolume    = "music_volume"
	KeyShakeIntensity = "shake_intensity"
	KeyShakeDecay     = "shake_decay"
	KeyHighScore      = "high_score"
)

// ControlScheme selects which device steers the ship.
type ControlScheme int

const (
	ControlsKeyboard ControlScheme = iota
	ControlsMouse
	ControlsController
	controlSchemeCount
)

var controlNames = [controlSchemeCount]string{
	ControlsKeyboard:   "keyboard",
	ControlsMouse:      "mouse",
	ControlsController: "controller",
}

func (c ControlScheme) String() string {
	if c < 0 || c >= controlSchemeCount {
		return "unknown"
	}
	return controlNames[c]
}

// Next cycles to the following scheme, wrapping around.
func (c ControlScheme) Next() ControlScheme { return (c + 1) % controlSchemeCount }

// Prev cycles to the preceding scheme, wrapping around.
func (c ControlScheme) Prev() ControlScheme {
	return (c + controlSchemeCount - 1) % controlSchemeCount
}

// ParseControlScheme reads a scheme name (case-insensitive).
func ParseControlScheme(s string) (ControlScheme, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for c, name := range controlNames {
		if name == s {
			return ControlScheme(c), nil
		}
	}
	return ControlsKeyboard, fmt.Errorf("unknown control scheme %q", s)
}

// Settings are the player preferences read from the Config service.
type Settings struct {
	Difficulty     config.Difficulty
	Controls       ControlScheme
	SoundVolume    float64 // 0..1
	MusicVolume    float64 // 0..1
	ShakeIntensity float64
	ShakeDecay     float64
	HighScore      int
}

// DefaultSettings returns the settings used when nothing is stored.
func DefaultSettings() Settings {
	return Settings{
		Difficulty:     config.Normal,
		Controls:       ControlsKeyboard,
		SoundVolume:    0.8,
		MusicVolume:    0.5,
		ShakeIntensity: config.DefaultShakeIntensity,
		ShakeDecay:     config.DefaultShakeDecay,
	}
}

// LoadSettings reads settings from c. Missing or malformed values keep their
// defaults; the returned error lists the malformed ones.
func LoadSettings(c service.Config) (Settings, error) {
	s := DefaultSettings()
	var bad []string

	if v, ok := c.Get(KeyDifficulty); ok {
		if d, err := config.ParseDifficulty(v); err == nil {
			s.Difficulty = d
		} else {
			bad = append(bad, KeyDifficulty)
		}
	}
	if v, ok := c.Get(KeyControls); ok {
		if cs, err := ParseControlScheme(v); err == nil {
			s.Controls = cs
		} else {
			bad = append(bad, KeyControls)
		}
	}

	floats := []struct {
		key    string
		dst    *float64
		lo, hi float64
	}{
		{KeySoundVolume, &s.SoundVolume, 0, 1},
		{KeyMusicVolume, &s.MusicVolume, 0, 1},
		{KeyShakeIntensity, &s.ShakeIntensity, 0, 10},
		{KeyShakeDecay, &s.ShakeDecay, 0, 100},
	}
	for _, f := range floats {
		v, ok := c.Get(f.key)
		if !ok {
			continue
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || math.IsNaN(n) {
			bad = append(bad, f.key)
			continue
		}
		*f.dst = min(max(n, f.lo), f.hi)
	}

	if v, ok := c.Get(KeyHighScore); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			s.HighScore = n
		} else {
			bad = append(bad, KeyHighScore)
		}
	}

	if len(bad) > 0 {
		return s, fmt.Errorf("malformed settings: %s", strings.Join(bad, ", "))
	}
	return s, nil
}

// Store writes s into c. It does not save.
func (s Settings) Store(c service.Config) {
	c.Set(KeyDifficulty, s.Difficulty.String())
	c.Set(KeyControls, s.Controls.String())
	c.Set(KeySoundVolume, formatFloat(s.SoundVolume))
	c.Set(KeyMusicVolume, formatFloat(s.MusicVolume))
	c.Set(KeyShakeIntensity, formatFloat(s.ShakeIntensity))
	c.Set(KeyShakeDecay, formatFloat(s.ShakeDecay))
	c.Set(KeyHighScore, strconv.Itoa(s.HighScore))
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
