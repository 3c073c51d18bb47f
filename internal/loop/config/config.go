// Package config centralizes all tunable game parameters.
package config

import "time"

// World dimensions. The width follows the render output aspect ratio.
const (
	WorldHeight       = 90.0
	DefaultWorldWidth = 160.0
)

// Frame timing
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
	FixedTimestep   = 1.0 / TargetFPS
	MaxFrameDelta   = 0.1 // Seconds; longer frames are clamped
)

// Scoring
const (
	ScoreLargeAsteroid  = 20
	ScoreMediumAsteroid = 50
	ScoreSmallAsteroid  = 100
	ScoreSmallUFO       = 200
	ScoreBigUFO         = 500
	ScoreBossUFO        = 2000
	ScoreShip           = -100 // Awarded when the player's ship is destroyed
)

// Ship
const (
	ShipCosmeticRadius = 2.5
	ShipPhysicalRadius = 1.6
	ShipHealth         = 1
	ShipThrustForce    = 45.0 // Force units; ship inverse mass is 1
	ShipRotationSpeed  = 270.0
	ShipMaxSpeed       = 40.0
	ShipFireInterval   = 0.18 // Seconds between shots
	ShipBulletSpeed    = 70.0
	ShipDrag           = 0.5 // Fraction of speed kept per second while coasting

	MineDropInterval = 1.5
	MaxLiveMines     = 3

	RespawnDelay         = 2.0 // Seconds between ship death and respawn
	RespawnInvulnerable  = 2.5 // Seconds of invulnerability after respawn
	RespawnEaseDuration  = 1.0 // Seconds for scale/alpha to ease in
	ThrustOffset         = 2.2 // Distance behind the ship centre
	ThrustCosmeticRadius = 1.2
)

// Asteroids
const (
	AsteroidMinWaveSpeed = 1.5
	AsteroidMaxWaveSpeed = 4.0
	AsteroidMaxSpin      = 60.0 // Degrees per second, either direction

	MediumSplitCount          = 2 // Children spawned by a Large asteroid
	SmallSplitCount           = 4 // Children spawned by a Medium asteroid
	MediumSpeedScaleMin       = 2.5
	MediumSpeedScaleMax       = 5.0
	SmallSpeedScaleMin        = 1.25
	SmallSpeedScaleMax        = 2.0
	AsteroidRestingSplitSpeed = 1.0 // Split base speed of an asteroid at rest
	EdgeSpawnMargin           = 1.0 // Distance inside the world edge for wave spawns
)

// Bullets
const (
	BulletCosmeticRadius = 0.6
	BulletPhysicalRadius = 0.4
)

// Mines
const (
	MineCosmeticRadius = 1.4
	MinePhysicalRadius = 1.2
	MineArmDelay       = 0.5
	MineLifetime       = 15.0
	MineBlastRadius    = 8.0
	MineBlastDamage    = 1
)

// UFOs
const (
	UFOSpawnInterval   = 18.0 // Seconds, divided by the difficulty UFO rate
	UFOSpeed           = 8.0
	UFOTurnInterval    = 2.5 // Seconds between course changes
	BossWaveInterval   = 5   // A Boss arrives at the start of every Nth wave
	BigUFOFirstWave    = 3
	BossChargeDuration = 1.0
	BossLaserDuration  = 0.4
	BossFanBullets     = 5
	BossFanSpread      = 40.0 // Degrees across the whole fan
	UFOBaseAimJitter   = 10.0 // Degrees, scaled by difficulty
)

// Explosions
const (
	ExplosionDuration = 0.6
	ExplosionColumns  = 5
	ExplosionRows     = 5
)

// Camera shake
const (
	DefaultShakeIntensity = 1.5
	DefaultShakeDecay     = 3.0
)

// Sessions
const (
	ShutdownDisplaySeconds   = 10.0 // Seconds to show the shutdown banner before disconnecting
	InactivityWarnUser       = 90   // Seconds
	InactivityDisconnectUser = 120  // Seconds
	MaxUsernameLength        = 16
)

// Terminal rendering
const (
	MaxTermWidth  = 320 // Columns; larger terminals get a centred render area
	MaxTermHeight = 90  // Rows
)
