package config

import (
	"fmt"
	"strings"
)

// Difficulty selects one column of the rule tables below.
type Difficulty int

const (
	Easy Difficulty = iota
	Normal
	Hard
	difficultyCount
)

// Difficulties lists every level in menu order.
var Difficulties = []Difficulty{Easy, Normal, Hard}

type difficultyRules struct {
	name           string
	bulletTTL      float64
	startingLives  int
	waveMultiplier int
	ufoBulletSpeed float64 // Multiplier on the tier bullet speed
	ufoAimJitter   float64 // Multiplier on UFOBaseAimJitter
	ufoSpawnRate   float64 // Multiplier on UFO spawn frequency
}

var rules = [difficultyCount]difficultyRules{
	Easy:   {name: "easy", bulletTTL: 3.0, startingLives: 5, waveMultiplier: 3, ufoBulletSpeed: 0.75, ufoAimJitter: 2.0, ufoSpawnRate: 0.75},
	Normal: {name: "normal", bulletTTL: 2.0, startingLives: 4, waveMultiplier: 5, ufoBulletSpeed: 1.0, ufoAimJitter: 1.0, ufoSpawnRate: 1.0},
	Hard:   {name: "hard", bulletTTL: 1.0, startingLives: 3, waveMultiplier: 7, ufoBulletSpeed: 1.25, ufoAimJitter: 0.4, ufoSpawnRate: 1.5},
}

func (d Difficulty) rules() difficultyRules {
	if d < 0 || d >= difficultyCount {
		panic(fmt.Sprintf("config: invalid difficulty %d", int(d)))
	}
	return rules[d]
}

func (d Difficulty) String() string { return d.rules().name }

// BulletTTL returns how long bullets live, in seconds.
func (d Difficulty) BulletTTL() float64 { return d.rules().bulletTTL }

// StartingLives returns the player's lives at the start of a game.
func (d Difficulty) StartingLives() int { return d.rules().startingLives }

// WaveMultiplier returns the number of large asteroids per wave number.
func (d Difficulty) WaveMultiplier() int { return d.rules().waveMultiplier }

// UFOBulletSpeedScale scales UFO bullet speed.
func (d Difficulty) UFOBulletSpeedScale() float64 { return d.rules().ufoBulletSpeed }

// UFOAimJitter returns the maximum aim error of tracking UFOs, in degrees.
func (d Difficulty) UFOAimJitter() float64 { return UFOBaseAimJitter * d.rules().ufoAimJitter }

// UFOSpawnInterval returns seconds between UFO arrivals.
func (d Difficulty) UFOSpawnInterval() float64 { return UFOSpawnInterval / d.rules().ufoSpawnRate }

// WaveSize returns how many large asteroids wave n spawns.
func (d Difficulty) WaveSize(wave int) int { return wave * d.WaveMultiplier() }

// Next cycles to the following level, wrapping around.
func (d Difficulty) Next() Difficulty { return (d + 1) % difficultyCount }

// Prev cycles to the preceding level, wrapping around.
func (d Difficulty) Prev() Difficulty { return (d + difficultyCount - 1) % difficultyCount }

// ParseDifficulty reads a difficulty name (case-insensitive).
func ParseDifficulty(s string) (Difficulty, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, d := range Difficulties {
		if d.String() == s {
			return d, nil
		}
	}
	return Normal, fmt.Errorf("unknown difficulty %q", s)
}
