package t2048

import "github.com/vovakirdan/tile-merge/internal/grid"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying      GameStateType = "playing"
	StateLevelCleared GameStateType = "level_cleared"
	StateGameOver     GameStateType = "game_over"
	StateWin          GameStateType = "win"
	StatePausedSmall  GameStateType = "paused_small_window"
)

// CellSnapshot is one board cell. Empty cells have Type "empty".
type CellSnapshot struct {
	Type  string `json:"type"`
	Value int    `json:"value,omitempty"`
}

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick    uint64                       `json:"tick"`
	Mode    string                       `json:"mode"`     // "campaign" or "endless"
	Level   int                          `json:"level"`    // Current level (1-indexed for display)
	Target  int                          `json:"target"`   // Current target tile value, 0 in endless
	Board   [grid.CellCount]CellSnapshot `json:"board"`
	MaxTile int                          `json:"max_tile"` // Highest number tile on board
	Phase   string                       `json:"phase"`
	State   GameStateType                `json:"state"`
	Moves   int                          `json:"moves"`
}

// Rows returns the board as Size rows of Size cells.
func (s Snapshot) Rows() [][]CellSnapshot {
	rows := make([][]CellSnapshot, grid.Size)
	for r := range grid.Size {
		rows[r] = s.Board[r*grid.Size : (r+1)*grid.Size]
	}
	return rows
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.won:
		state = StateWin
	case g.gameOver:
		state = StateGameOver
	case g.levelCleared:
		state = StateLevelCleared
	}

	var cells [grid.CellCount]CellSnapshot
	for i, t := range g.board.Cells() {
		cells[i] = CellSnapshot{Type: t.Type.String(), Value: t.Value}
	}

	return Snapshot{
		Tick:    g.tick,
		Mode:    string(g.mode),
		Level:   g.levelIndex + 1,
		Target:  g.currentTarget,
		Board:   cells,
		MaxTile: g.board.MaxValue(grid.TypeNumber),
		Phase:   g.seq.Phase().String(),
		State:   state,
		Moves:   g.seq.Moves(),
	}
}
