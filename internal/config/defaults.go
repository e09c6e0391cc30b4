package config

import (
	_ "embed"
)

//go:embed defaults/t2048.yaml
var defaultT2048YAML []byte

// DefaultT2048Config returns the built-in configuration used when no YAML is readable.
func DefaultT2048Config() T2048Config {
	return T2048Config{
		Board: BoardConfig{
			InitialTiles: 2,
			Spawn4:       0.10,
		},
		Animation: AnimationConfig{
			SlideTicks:      8,
			PopTicks:        6,
			EffectTicks:     12,
			PopupInTicks:    10,
			PopupHoldTicks:  60,
			PopupOutTicks:   8,
			LevelClearTicks: 120,
		},
		Levels: []LevelConfig{
			{Name: "Warm-up", Target: 64, Spawn4: 0.10},
			{
				Name: "First Brick", Target: 128, Spawn4: 0.10,
				Layout: []TilePlacement{{Tile: "brick", Row: 1, Col: 1}},
			},
			{
				Name: "Locked Chest", Target: 128, Spawn4: 0.10,
				Layout: []TilePlacement{
					{Tile: "chest", Row: 0, Col: 0},
					{Tile: "key", Row: 3, Col: 3},
					{Tile: "brick", Row: 2, Col: 2},
				},
			},
			{
				Name: "Cat Nap", Target: 256, Spawn4: 0.10,
				Layout: []TilePlacement{{Tile: "cat", Row: 0, Col: 3, Value: 3}},
			},
		},
	}
}
