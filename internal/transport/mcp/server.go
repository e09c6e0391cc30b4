// Package mcp exposes the tile-merge puzzle to agents as Model Context Protocol tools.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/vovakirdan/tile-merge/internal/config"
	"github.com/vovakirdan/tile-merge/internal/games/t2048"
	"github.com/vovakirdan/tile-merge/internal/grid"
)

// DefaultSessionLimit caps the sessions one server keeps alive.
const DefaultSessionLimit = 64

// Server serves game sessions over MCP.
type Server struct {
	cfg       config.T2048Config
	sessions  *SessionStore
	logger    *log.Logger
	mcpServer *server.MCPServer
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger for tool calls.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSessionLimit caps the number of live sessions.
func WithSessionLimit(n int) Option {
	return func(s *Server) {
		s.sessions = NewSessionStore(n)
	}
}

// NewServer creates a server whose games start from cfg.
func NewServer(cfg config.T2048Config, opts ...Option) *Server {
	s := &Server{
		cfg:      cfg,
		sessions: NewSessionStore(DefaultSessionLimit),
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.initMCPServer()
	return s
}

func (s *Server) initMCPServer() {
	s.mcpServer = server.NewMCPServer(
		"Tile Merge",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Tile Merge - MCP Interface

A 4x4 sliding puzzle. Every move slides all tiles toward one edge; equal
numbers merge into their sum, and a new 2 or 4 appears after each move
that changed the board.

SPECIAL TILES:
- brick: static, blocks a cell until a bomb is slid into it
- bomb: merges with a brick and both disappear
- key + chest: merging them opens the chest, which leaves a bomb
- cat: static countdown, every number merged into it lowers the count; gone at 0
- placeholder: static filler that never merges

CAMPAIGN: reach the level target tile to advance. ENDLESS: play until stuck.

AVAILABLE TOOLS:
- new_game: start a session (campaign or endless)
- move: slide the board up/down/left/right
- game_state: board, level and status of a session
- tile_rules: the tile rule table and merge rules
- list_sessions: active sessions
- end_game: close a session`),
	)

	s.registerTools()
}

func (s *Server) registerTools() {
	presets := make([]string, 0, len(config.Presets()))
	for _, p := range config.Presets() {
		presets = append(presets, string(p))
	}

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "new_game",
		Description: "Start a new game session and return its id and starting board",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"mode": map[string]interface{}{
					"type":        "string",
					"enum":        []string{string(t2048.ModeCampaign), string(t2048.ModeEndless)},
					"description": "Game mode (default: campaign)",
				},
				"level": map[string]interface{}{
					"type":        "number",
					"description": "1-based campaign level to start at (default: 1)",
				},
				"difficulty": map[string]interface{}{
					"type":        "string",
					"enum":        presets,
					"description": "Difficulty preset (default: normal)",
				},
				"seed": map[string]interface{}{
					"type":        "number",
					"description": "Random seed for reproducible games (default: time based)",
				},
			},
		},
	}, s.handleNewGame)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Slide every tile of the board in one direction",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session id returned by new_game",
				},
				"direction": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"up", "down", "left", "right"},
					"description": "Direction to slide",
				},
			},
			Required: []string{"session_id", "direction"},
		},
	}, s.handleMove)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the board, level and status of a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session id returned by new_game",
				},
				"format": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"text", "json"},
					"description": "Output format (default: text)",
				},
			},
			Required: []string{"session_id"},
		},
	}, s.handleGameState)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "tile_rules",
		Description: "List the tile kinds with their defaults and the merge rules in precedence order",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleTileRules)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleListSessions)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "end_game",
		Description: "Close a game session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session id returned by new_game",
				},
			},
			Required: []string{"session_id"},
		},
	}, s.handleEndGame)
}

// GetMCPServer returns the underlying MCP server.
func (s *Server) GetMCPServer() *server.MCPServer {
	return s.mcpServer
}

// Sessions returns the session store.
func (s *Server) Sessions() *SessionStore {
	return s.sessions
}

// ServeStdio serves MCP over stdin and stdout until the client disconnects.
func (s *Server) ServeStdio() error {
	s.logger.Info("serving MCP on stdio")
	return server.ServeStdio(s.mcpServer)
}

// arguments returns the tool arguments, tolerating a missing map.
func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		return map[string]interface{}{}
	}
	return args
}

// intArg reads a JSON number argument.
func intArg(args map[string]interface{}, name string) (int64, error) {
	raw, ok := args[name]
	if !ok || raw == nil {
		return 0, nil
	}
	f, ok := raw.(float64)
	if !ok {
		return 0, fmt.Errorf("%s must be a number", name)
	}
	return int64(f), nil
}

func (s *Server) handleNewGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	mode, _ := args["mode"].(string)
	difficulty, _ := args["difficulty"].(string)

	level, err := intArg(args, "level")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	seed, err := intArg(args, "seed")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	preset, err := config.ParsePreset(difficulty)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	sess, err := s.sessions.Create(s.cfg, GameOptions{
		Mode:       t2048.Mode(mode),
		Level:      int(level),
		Difficulty: preset,
		Seed:       seed,
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.logger.Info("session created", "session", sess.ID, "mode", sess.Mode, "level", level, "difficulty", preset, "seed", sess.Seed)

	result := fmt.Sprintf("Created session: %s\nMode: %s | Difficulty: %s | Seed: %d\n\n", sess.ID, sess.Mode, preset, sess.Seed)
	result += formatSnapshot(sess.Snapshot())
	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	direction, _ := args["direction"].(string)

	dir, err := grid.ParseDirection(direction)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	report, err := sess.Move(dir)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.logger.Debug("move", "session", sess.ID, "dir", dir, "moved", report.Moved, "merges", report.Merges)
	if st := report.State.State; st == t2048.StateGameOver || st == t2048.StateWin {
		s.logger.Info("game finished", "session", sess.ID, "state", st, "moves", report.State.Moves, "max", report.State.MaxTile)
	}

	return mcp.NewToolResultText(formatMoveReport(report)), nil
}

func (s *Server) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	format, _ := args["format"].(string)

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	snap := sess.Snapshot()
	switch format {
	case "", "text":
		return mcp.NewToolResultText(formatSnapshot(snap)), nil
	case "json":
		data, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown format %q", format)), nil
	}
}

func (s *Server) handleTileRules(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(formatRules()), nil
}

func (s *Server) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessions := s.sessions.List()

	result := fmt.Sprintf("Active Sessions (%d):\n\n", len(sessions))
	for _, sess := range sessions {
		snap := sess.Snapshot()
		result += fmt.Sprintf("- %s (Mode: %s, Level: %d, Moves: %d, State: %s, Created: %s)\n",
			sess.ID, sess.Mode, snap.Level, snap.Moves, snap.State, sess.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleEndGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)

	if err := s.sessions.Delete(sessionID); err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return nil, err
	}

	s.logger.Info("session ended", "session", sessionID)
	return mcp.NewToolResultText(fmt.Sprintf("Ended session: %s", sessionID)), nil
}
