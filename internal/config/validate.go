package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tile-merge/internal/grid"
)

// ErrInvalidConfig wraps every validation and decoding failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Validate checks the configuration for values the game cannot run with.
func (c T2048Config) Validate() error {
	if c.Board.InitialTiles < 0 || c.Board.InitialTiles > grid.CellCount {
		return fmt.Errorf("%w: board.initial_tiles %d out of range [0, %d]", ErrInvalidConfig, c.Board.InitialTiles, grid.CellCount)
	}
	if err := checkProbability("board.spawn4", c.Board.Spawn4); err != nil {
		return err
	}

	ticks := map[string]int{
		"slide_ticks":       c.Animation.SlideTicks,
		"pop_ticks":         c.Animation.PopTicks,
		"effect_ticks":      c.Animation.EffectTicks,
		"popup_in_ticks":    c.Animation.PopupInTicks,
		"popup_hold_ticks":  c.Animation.PopupHoldTicks,
		"popup_out_ticks":   c.Animation.PopupOutTicks,
		"level_clear_ticks": c.Animation.LevelClearTicks,
	}
	for name, v := range ticks {
		if v < 0 {
			return fmt.Errorf("%w: animation.%s must not be negative", ErrInvalidConfig, name)
		}
	}

	if len(c.Levels) == 0 {
		return fmt.Errorf("%w: at least one level is required", ErrInvalidConfig)
	}
	for i, lvl := range c.Levels {
		if err := lvl.validate(c.Board.InitialTiles); err != nil {
			return fmt.Errorf("level %d (%s): %w", i+1, lvl.Name, err)
		}
	}
	return nil
}

func (l LevelConfig) validate(initialTiles int) error {
	if l.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidConfig)
	}
	if l.Target < 4 || l.Target&(l.Target-1) != 0 {
		return fmt.Errorf("%w: target %d is not a power of two >= 4", ErrInvalidConfig, l.Target)
	}
	if err := checkProbability("spawn4", l.Spawn4); err != nil {
		return err
	}
	if len(l.Layout)+initialTiles > grid.CellCount {
		return fmt.Errorf("%w: layout of %d tiles leaves no room for %d initial tiles", ErrInvalidConfig, len(l.Layout), initialTiles)
	}

	seen := make(map[int]bool, len(l.Layout))
	for _, p := range l.Layout {
		typ, err := grid.ParseType(p.Tile)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		if typ == grid.TypeEmpty {
			return fmt.Errorf("%w: layout cannot place empty tiles", ErrInvalidConfig)
		}
		if p.Row < 0 || p.Row >= grid.Size || p.Col < 0 || p.Col >= grid.Size {
			return fmt.Errorf("%w: cell (%d, %d) is off the board", ErrInvalidConfig, p.Row, p.Col)
		}
		if p.Value < 0 {
			return fmt.Errorf("%w: %s value %d must not be negative", ErrInvalidConfig, p.Tile, p.Value)
		}
		// Zero means the default 2.
		if typ == grid.TypeNumber && p.Value != 0 && (p.Value < 2 || p.Value&(p.Value-1) != 0) {
			return fmt.Errorf("%w: number value %d is not a power of two >= 2", ErrInvalidConfig, p.Value)
		}
		idx := grid.Index(p.Row, p.Col)
		if seen[idx] {
			return fmt.Errorf("%w: cell (%d, %d) is used twice", ErrInvalidConfig, p.Row, p.Col)
		}
		seen[idx] = true
	}
	return nil
}

func checkProbability(name string, p float64) error {
	if p < 0 || p > 1 {
		return fmt.Errorf("%w: %s %.2f out of range [0, 1]", ErrInvalidConfig, name, p)
	}
	return nil
}
