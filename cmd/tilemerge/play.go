package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tile-merge/internal/core"
	"github.com/vovakirdan/tile-merge/internal/games/t2048"
	"github.com/vovakirdan/tile-merge/internal/platform/tui"
	"github.com/vovakirdan/tile-merge/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the puzzle",
	Long: `Open the mode selector and play.

Modes:
  Campaign      - Clear every level by reaching its target tile
  Endless       - No target, play until the board locks up
  Select Level  - Start the campaign at any level
  Tile Codex    - Browse the tile rules

Controls:
  Arrows/WASD/HJKL  - Slide
  Mouse drag        - Swipe
  Enter/Space       - Skip the popup
  P/Esc             - Pause
  R                 - Restart
  B                 - Back to the selector (paused or game over)
  ?                 - Toggle help
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - Fewer 4s, shorter cat countdowns
  normal - Config values as written
  hard   - More 4s, longer cat countdowns
  fixed  - Only 2s ever spawn

Examples:
  tilemerge play
  tilemerge play --difficulty easy
  tilemerge play --seed 42
  tilemerge play --config ./my-levels.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	// The TUI owns the terminal; logs only go to an explicit file.
	if flagLogFile == "" {
		t2048.SetLogger(log.New(io.Discard))
	}

	for {
		// Get terminal size each round, it may have changed while playing
		width, height := 80, 24 // Defaults
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}

		cfg := core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		}
		if cfg.Seed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		selection, err := tui.RunSelector(t2048.LoadLevels(), preset, cfg)
		if err != nil {
			return fmt.Errorf("selector: %w", err)
		}
		// User quit
		if selection == nil {
			return nil
		}
		preset = selection.Difficulty
		t2048.SetDifficultyPreset(preset)

		if selection.Choice == tui.ChoiceCodex {
			back, codexErr := tui.RunCodex(width, height)
			if codexErr != nil {
				return fmt.Errorf("codex: %w", codexErr)
			}
			if !back {
				return nil
			}
			continue
		}

		t2048.SetStartLevel(selection.Level)
		game, err := registry.Create(selection.GameID())
		if err != nil {
			return fmt.Errorf("creating game: %w", err)
		}

		logger.Info("game started", "game", game.ID(), "level", selection.Level, "difficulty", preset, "seed", cfg.Seed)
		state, back, err := tui.Run(game, cfg)
		if err != nil {
			return fmt.Errorf("running game: %w", err)
		}
		logger.Info("game ended", "game", game.ID(), "won", state.Won, "over", state.GameOver)

		if !back {
			return nil
		}
	}
}
