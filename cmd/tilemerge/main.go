// tilemerge is a 2048-style sliding tile puzzle for the terminal.
//
// Usage:
//
//	tilemerge play              - Pick a mode and play
//	tilemerge levels            - List campaign levels
//	tilemerge codex             - Show the tile rules and merge rules
//	tilemerge serve             - Start SSH server for remote play
//	tilemerge mcp               - Serve the game to agents over MCP stdio
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--config <path>       - Custom game config YAML
//	--difficulty <name>   - Difficulty preset: easy, normal, hard, fixed
//	--log-level <level>   - debug, info, warn, error (default: warn)
//	--log-file <path>     - Write logs to a file instead of stderr
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tile-merge/internal/config"
	"github.com/vovakirdan/tile-merge/internal/games/t2048"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string

	// Set up by setup before any command runs
	logger  *log.Logger
	preset  config.DifficultyPreset
	logSink io.Closer
)

func main() {
	err := rootCmd.Execute()
	if logSink != nil {
		logSink.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tilemerge",
	Short: "Tile Merge - a 2048 puzzle with special tiles",
	Long: `Tile Merge is a terminal sliding puzzle. Slide the board, merge equal
numbers and deal with bricks, bombs, keys, chests and cats on the way to
each level's target tile.

Available commands:
  play     - Pick campaign, endless or a level and play
  levels   - Show the campaign levels
  codex    - Show the tile rule table and merge rules
  serve    - Start SSH server for remote play
  mcp      - Serve the game to agents over MCP stdio

Examples:
  tilemerge play
  tilemerge play --difficulty hard --seed 42
  tilemerge levels --config ./my-levels.yaml
  tilemerge serve --ssh :2222
  tilemerge mcp --log-file /tmp/tilemerge.log`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file instead of stderr")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(codexCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
}

// setup builds the logger and applies the game flags.
func setup(cmd *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}

	var out io.Writer = os.Stderr
	if flagLogFile != "" {
		f, openErr := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if openErr != nil {
			return fmt.Errorf("cannot open log file: %w", openErr)
		}
		out = f
		logSink = f
	}

	logger = log.NewWithOptions(out, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "tilemerge",
	})

	preset, err = config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}

	t2048.SetLogger(logger)
	t2048.SetConfigPath(flagConfig)
	t2048.SetDifficultyPreset(preset)
	return nil
}
