package t2048

import (
	"errors"
	"math/rand"

	"github.com/vovakirdan/tile-merge/internal/config"
	"github.com/vovakirdan/tile-merge/internal/core"
	"github.com/vovakirdan/tile-merge/internal/grid"
	"github.com/vovakirdan/tile-merge/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeCampaign Mode = "campaign"
	ModeEndless  Mode = "endless"
)

// Game implements the tile-merge puzzle on top of the grid engine.
type Game struct {
	mode Mode
	rng  *rand.Rand
	tick uint64

	cfg       config.T2048Config
	levels    []Level
	board     *grid.Board
	seq       *Sequencer
	presenter *TerminalPresenter

	pinned     *config.T2048Config // Used instead of LoadConfig when set
	startLevel int                 // 1-based level for the next Reset, 0 for none

	levelIndex    int // Current level (0-indexed)
	currentTarget int // Current tile target, 0 in endless
	spawn4Prob    float64

	// Screen dimensions
	screenW int
	screenH int

	// Game state flags
	gameOver        bool
	levelCleared    bool
	won             bool
	paused          bool
	tooSmall        bool
	levelClearTicks int
}

// New creates a new campaign mode game.
func New() *Game {
	return &Game{mode: ModeCampaign}
}

// NewEndless creates a new endless mode game.
func NewEndless() *Game {
	return &Game{mode: ModeEndless}
}

func init() {
	registry.Register("2048", func() registry.Game {
		return New()
	})
	registry.Register("2048_endless", func() registry.Game {
		return NewEndless()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "2048_endless"
	}
	return "2048"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "2048 (Endless)"
	}
	return "2048"
}

// Configure pins the configuration and start level used by Reset instead of
// the package-level settings. level is 1-based; 0 starts at the beginning.
func (g *Game) Configure(cfg config.T2048Config, level int) {
	g.pinned = &cfg
	g.startLevel = level
}

// Reset initializes/restarts the game.
func (g *Game) Reset(rc core.RuntimeConfig) {
	if g.pinned != nil {
		g.ResetWithConfig(rc, *g.pinned)
		return
	}
	g.ResetWithConfig(rc, LoadConfig())
}

// ResetWithConfig restarts the game with an explicit configuration.
func (g *Game) ResetWithConfig(rc core.RuntimeConfig, cfg config.T2048Config) {
	g.cfg = cfg
	levels, err := LevelsFromConfig(cfg)
	if err != nil {
		logger.Warn("invalid levels, using defaults", "err", err)
		g.cfg = config.DefaultT2048Config()
		levels, _ = LevelsFromConfig(g.cfg)
	}
	g.levels = levels

	g.rng = rand.New(rand.NewSource(rc.Seed))
	g.tick = 0
	g.screenW = rc.ScreenW
	g.screenH = rc.ScreenH
	g.gameOver = false
	g.levelCleared = false
	g.won = false
	g.paused = false
	g.levelClearTicks = 0

	// Apply selected start level (campaign only), consumed on use.
	// A pinned game never reads the package-level setting.
	start := g.startLevel
	g.startLevel = 0
	if start == 0 && g.mode == ModeCampaign && g.pinned == nil {
		start = selectedStartLevel
		selectedStartLevel = 0
	}
	g.levelIndex = 0
	if g.mode == ModeCampaign && start > 0 && start <= len(g.levels) {
		g.levelIndex = start - 1
	}

	g.board = grid.NewBoard(g.rng)
	g.presenter = NewTerminalPresenter(g.cfg.Animation)
	g.seq = NewSequencer(g.board, g.presenter,
		WithLogger(logger.WithPrefix(g.ID())),
		WithSpawn(g.spawnTile),
		WithSettle(g.afterMove),
	)

	g.loadLevel()
	g.checkScreenSize()
}

// loadLevel sets up the current level parameters and board.
func (g *Game) loadLevel() {
	var layout []Placement
	if g.mode == ModeEndless {
		g.currentTarget = 0 // No target in endless
		g.spawn4Prob = g.cfg.Board.Spawn4
	} else {
		level := g.Level()
		g.currentTarget = level.Target
		g.spawn4Prob = level.Spawn4
		layout = level.Layout
	}

	if err := g.seq.Reset(layout, g.cfg.Board.InitialTiles); err != nil {
		logger.Error("level setup failed", "level", g.levelIndex+1, "err", err)
		g.gameOver = true
		return
	}
	logger.Info("level start", "mode", g.mode, "level", g.levelIndex+1, "target", g.currentTarget)
}

// Level returns the current campaign level.
func (g *Game) Level() Level {
	if len(g.levels) == 0 {
		return Level{}
	}
	return g.levels[core.Clamp(g.levelIndex, 0, len(g.levels)-1)]
}

// LevelCount returns the number of campaign levels.
func (g *Game) LevelCount() int {
	return len(g.levels)
}

// spawnTile produces the Number tile placed after each move.
func (g *Game) spawnTile() grid.Tile {
	value := 2
	if g.rng.Float64() < g.spawn4Prob {
		value = 4
	}
	return grid.Defaults(grid.TypeNumber, grid.WithValue(value))
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	g.tooSmall = g.screenW < minScreenW || g.screenH < minScreenH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	// Handle window size check
	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	// Handle pause
	if in.Has(core.ActionPause) && !g.gameOver && !g.won {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.presenter.Advance()
	if in.Has(core.ActionConfirm) && g.seq.Phase() == PhasePopupActive {
		g.presenter.Dismiss()
	}
	g.seq.Update()

	// Handle level cleared animation
	if g.levelCleared {
		g.levelClearTicks++
		if g.levelClearTicks >= g.cfg.Animation.LevelClearTicks {
			g.advanceLevel()
		}
		return core.StepResult{State: g.State()}
	}

	// Don't process moves if game over or won
	if g.gameOver || g.won {
		return core.StepResult{State: g.State()}
	}

	if a, ok := in.Direction(); ok {
		g.seq.Move(directionOf(a))
	}

	return core.StepResult{State: g.State()}
}

// directionOf maps a directional action to a board direction.
func directionOf(a core.Action) grid.Direction {
	switch a {
	case core.ActionDown:
		return grid.Down
	case core.ActionLeft:
		return grid.Left
	case core.ActionRight:
		return grid.Right
	default:
		return grid.Up
	}
}

// afterMove checks the level target and game over once a move has settled.
func (g *Game) afterMove(res grid.MoveResult, spawned int, err error) {
	// Check for level target (campaign only)
	if g.mode == ModeCampaign && g.currentTarget > 0 {
		if g.board.MaxValue(grid.TypeNumber) >= g.currentTarget {
			logger.Info("level cleared", "level", g.levelIndex+1, "moves", g.seq.Moves())
			g.levelCleared = true
			g.levelClearTicks = 0
			return
		}
	}

	if errors.Is(err, grid.ErrBoardFull) || len(g.board.EmptyIndices()) == 0 {
		if !grid.CanMove(g.board) {
			logger.Info("game over", "mode", g.mode, "max", g.board.MaxValue(grid.TypeNumber), "moves", g.seq.Moves())
			g.gameOver = true
		}
	}
}

// advanceLevel moves to the next level.
func (g *Game) advanceLevel() {
	g.levelCleared = false
	g.levelClearTicks = 0

	if g.levelIndex >= len(g.levels)-1 {
		// Completed all levels
		logger.Info("campaign complete", "levels", len(g.levels))
		g.won = true
		return
	}

	g.levelIndex++
	g.loadLevel()
}

// Board returns the live board. Callers must not mutate it.
func (g *Game) Board() *grid.Board {
	return g.board
}

// Sequencer returns the move sequencer.
func (g *Game) Sequencer() *Sequencer {
	return g.seq
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		GameOver: g.gameOver || g.won,
		Won:      g.won,
		Paused:   g.paused || g.tooSmall || g.levelCleared,
	}
}

// Resize updates the screen dimensions without restarting the game.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}
