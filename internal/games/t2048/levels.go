// Package t2048 implements the tile-merge puzzle: a campaign of levels with
// special tiles and an endless mode, both built on the grid engine.
package t2048

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tile-merge/internal/config"
	"github.com/vovakirdan/tile-merge/internal/grid"
)

// Level defines a campaign level with a target tile and a starting layout.
type Level struct {
	ID     int
	Name   string
	Target int     // Number tile value that clears the level
	Spawn4 float64 // Probability of spawning 4 instead of 2 (0.0-1.0)
	Layout []Placement
}

// Package-level settings applied on the next Reset.
var (
	configPath         string
	difficultyPreset   = config.DifficultyNormal
	selectedStartLevel int
	logger             = log.New(io.Discard)
)

// SetConfigPath sets a custom config file path. Empty uses the default search order.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset applied to the loaded config.
func SetDifficultyPreset(preset config.DifficultyPreset) {
	difficultyPreset = preset
}

// SetStartLevel sets the starting level (1-based). 0 means start from the beginning.
func SetStartLevel(level int) {
	selectedStartLevel = level
}

// GetStartLevel returns the currently selected start level.
func GetStartLevel() int {
	return selectedStartLevel
}

// SetLogger sets the logger games use for move and level events.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// LoadConfig loads the configuration from the configured path with the
// difficulty preset applied. Falls back to built-in defaults on error.
func LoadConfig() config.T2048Config {
	cfg, err := config.LoadT2048(configPath)
	if err != nil {
		logger.Warn("using default config", "path", configPath, "err", err)
		cfg = config.DefaultT2048Config()
	}
	config.ApplyT2048Preset(&cfg, difficultyPreset)
	return cfg
}

// LevelsFromConfig converts configured levels into campaign levels.
func LevelsFromConfig(cfg config.T2048Config) ([]Level, error) {
	levels := make([]Level, 0, len(cfg.Levels))
	for i, lc := range cfg.Levels {
		lvl := Level{
			ID:     i + 1,
			Name:   lc.Name,
			Target: lc.Target,
			Spawn4: lc.Spawn4,
		}
		for _, p := range lc.Layout {
			typ, err := grid.ParseType(p.Tile)
			if err != nil {
				return nil, fmt.Errorf("t2048: level %d: %w", i+1, err)
			}
			lvl.Layout = append(lvl.Layout, Placement{
				Type:  typ,
				Index: grid.Index(p.Row, p.Col),
				Value: p.Value,
			})
		}
		levels = append(levels, lvl)
	}
	return levels, nil
}

// LoadLevels returns the campaign levels of the current configuration.
func LoadLevels() []Level {
	levels, err := LevelsFromConfig(LoadConfig())
	if err != nil {
		logger.Warn("using default levels", "err", err)
		levels, _ = LevelsFromConfig(config.DefaultT2048Config())
	}
	return levels
}

// LevelNames returns the names of all levels.
func LevelNames(levels []Level) []string {
	names := make([]string, len(levels))
	for i, lvl := range levels {
		names[i] = lvl.Name
	}
	return names
}

// Specials lists the non-number tiles a level starts with, e.g. "brick, cat(3)".
func (l Level) Specials() string {
	if len(l.Layout) == 0 {
		return "-"
	}
	names := make([]string, len(l.Layout))
	for i, p := range l.Layout {
		names[i] = grid.Defaults(p.Type, valueOverride(p.Value)...).String()
	}
	return strings.Join(names, ", ")
}

func valueOverride(v int) []grid.Override {
	if v > 0 {
		return []grid.Override{grid.WithValue(v)}
	}
	return nil
}
