package service

import "strings"

// Sound names understood by every Audio implementation. A wav file registered
// under the same base name replaces the built-in version.
const (
	SoundFire          = "fire"
	SoundUFOFire       = "ufo_fire"
	SoundLaser         = "laser"
	SoundExplodeLarge  = "explode_large"
	SoundExplodeMedium = "explode_medium"
	SoundExplodeSmall  = "explode_small"
	SoundShipExplode   = "ship_explode"
	SoundMineDrop      = "mine_drop"
	SoundMineBlast     = "mine_blast"
	SoundUFOArrive     = "ufo_arrive"
	SoundMenuMove      = "menu_move"
	SoundMenuSelect    = "menu_select"
	SoundMusic         = "music_main"
)

// Sounds lists every built-in sound.
var Sounds = []string{
	SoundFire, SoundUFOFire, SoundLaser,
	SoundExplodeLarge, SoundExplodeMedium, SoundExplodeSmall, SoundShipExplode,
	SoundMineDrop, SoundMineBlast, SoundUFOArrive,
	SoundMenuMove, SoundMenuSelect, SoundMusic,
}

// GroupOf returns the channel group a sound plays on. Names starting with
// "music" belong to the music group.
func GroupOf(sound string) Group {
	if strings.HasPrefix(sound, "music") {
		return GroupMusic
	}
	return GroupSound
}
