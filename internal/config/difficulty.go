package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/tile-merge/internal/grid"
)

// ErrUnknownPreset is returned by ParsePreset for an unrecognized name.
var ErrUnknownPreset = errors.New("config: unknown difficulty preset")

// ParsePreset converts a preset name to a DifficultyPreset. An empty name is normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	if name == "" {
		return DifficultyNormal, nil
	}
	p := DifficultyPreset(strings.ToLower(name))
	for _, known := range Presets() {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPreset, name)
}

// presetTuning describes how a preset shifts the configured values.
type presetTuning struct {
	spawn4Scale float64 // Multiplier applied to every spawn4 chance
	spawn4Add   float64 // Added after scaling
	catDelta    int     // Added to every Cat countdown in level layouts
}

var tunings = map[DifficultyPreset]presetTuning{
	DifficultyEasy:   {spawn4Scale: 0.5, catDelta: -1},
	DifficultyNormal: {spawn4Scale: 1},
	DifficultyHard:   {spawn4Scale: 1, spawn4Add: 0.10, catDelta: 2},
	DifficultyFixed:  {spawn4Scale: 0},
}

// ApplyT2048Preset modifies the config based on a difficulty preset.
// Fixed never spawns a 4.
func ApplyT2048Preset(cfg *T2048Config, preset DifficultyPreset) {
	tune, ok := tunings[preset]
	if !ok {
		return
	}

	cfg.Board.Spawn4 = tune.spawn4(cfg.Board.Spawn4)

	levels := make([]LevelConfig, len(cfg.Levels))
	copy(levels, cfg.Levels)
	cfg.Levels = levels

	for i := range cfg.Levels {
		lvl := &cfg.Levels[i]
		lvl.Spawn4 = tune.spawn4(lvl.Spawn4)
		if tune.catDelta == 0 {
			continue
		}
		// Cats are the only counters the player must wear down.
		layout := make([]TilePlacement, len(lvl.Layout))
		copy(layout, lvl.Layout)
		for j := range layout {
			if typ, err := grid.ParseType(layout[j].Tile); err != nil || typ != grid.TypeCat {
				continue
			}
			v := layout[j].Value
			if v == 0 {
				v = grid.Defaults(grid.TypeCat).Value
			}
			layout[j].Value = max(1, v+tune.catDelta)
		}
		lvl.Layout = layout
	}
}

func (t presetTuning) spawn4(p float64) float64 {
	return clampF(p*t.spawn4Scale+t.spawn4Add, 0.0, 1.0)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
