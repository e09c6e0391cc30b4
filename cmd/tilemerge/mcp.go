package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tile-merge/internal/config"
	"github.com/vovakirdan/tile-merge/internal/transport/mcp"
)

var flagMaxSessions int

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the game to agents over MCP stdio",
	Long: `Runs a Model Context Protocol server on stdin/stdout so an agent can
play. Tools: new_game, move, game_state, tile_rules, list_sessions, end_game.

Logs go to stderr (or --log-file); stdout carries only the protocol.

Example client config:
  {"command": "tilemerge", "args": ["mcp", "--config", "./levels.yaml"]}`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().IntVar(&flagMaxSessions, "max-sessions", mcp.DefaultSessionLimit, "Sessions kept before the oldest is dropped (0 = unlimited)")
}

func runMCP(_ *cobra.Command, _ []string) error {
	gameCfg, err := config.LoadT2048(flagConfig)
	if err != nil {
		logger.Warn("using default config", "path", flagConfig, "err", err)
		gameCfg = config.DefaultT2048Config()
	}

	s := mcp.NewServer(gameCfg,
		mcp.WithLogger(logger.WithPrefix("mcp")),
		mcp.WithSessionLimit(flagMaxSessions),
	)
	return s.ServeStdio()
}
