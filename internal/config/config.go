// Package config loads the YAML game configuration and applies difficulty
// presets on top of it.
package config

// T2048Config contains all configuration for the tile-merge game.
type T2048Config struct {
	Board     BoardConfig     `yaml:"board"`
	Animation AnimationConfig `yaml:"animation"`
	Levels    []LevelConfig   `yaml:"levels"`
}

// BoardConfig defines spawning parameters.
type BoardConfig struct {
	InitialTiles int     `yaml:"initial_tiles"` // Number tiles placed at reset
	Spawn4       float64 `yaml:"spawn4"`        // Chance of spawning 4 in endless mode
}

// AnimationConfig defines how many ticks each presentation phase lasts.
// Zero ticks completes a phase immediately.
type AnimationConfig struct {
	SlideTicks      int `yaml:"slide_ticks"`
	PopTicks        int `yaml:"pop_ticks"`
	EffectTicks     int `yaml:"effect_ticks"`
	PopupInTicks    int `yaml:"popup_in_ticks"`
	PopupHoldTicks  int `yaml:"popup_hold_ticks"`
	PopupOutTicks   int `yaml:"popup_out_ticks"`
	LevelClearTicks int `yaml:"level_clear_ticks"`
}

// LevelConfig defines one campaign level.
type LevelConfig struct {
	Name   string          `yaml:"name"`
	Target int             `yaml:"target"`           // Number tile value that clears the level
	Spawn4 float64         `yaml:"spawn4"`           // Chance of spawning 4 instead of 2
	Layout []TilePlacement `yaml:"layout,omitempty"` // Special tiles placed at reset
}

// TilePlacement puts one tile on the board when a level starts.
type TilePlacement struct {
	Tile  string `yaml:"tile"` // Tile kind name, e.g. "brick" or "cat"
	Row   int    `yaml:"row"`
	Col   int    `yaml:"col"`
	Value int    `yaml:"value,omitempty"` // Overrides the kind's base value when > 0
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets returns every preset in display order.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}
}
