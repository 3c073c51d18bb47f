package loop

// Player is the score and lives of the person at the controls.
type Player struct {
	Lives int
	Score int
}

// NewPlayer creates a player with the given number of lives.
func NewPlayer(lives int) *Player {
	return &Player{Lives: lives}
}

// AwardScore adds points. Negative points (the ship's own destruction) lower
// the score, which may drop below zero.
func (p *Player) AwardScore(points int) {
	p.Score += points
}

// LoseLife takes one life. Lives never go below zero.
func (p *Player) LoseLife() {
	if p.Lives > 0 {
		p.Lives--
	}
}

// IsGameOver reports whether the player has no lives left.
func (p *Player) IsGameOver() bool {
	return p.Lives == 0
}
