package mcp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/tile-merge/internal/games/t2048"
	"github.com/vovakirdan/tile-merge/internal/grid"
)

const cellTextWidth = 8

// cellText returns the short token for one cell.
func cellText(c t2048.CellSnapshot) string {
	switch c.Type {
	case grid.TypeEmpty.String():
		return "."
	case grid.TypeNumber.String():
		return strconv.Itoa(c.Value)
	case grid.TypeCat.String():
		return fmt.Sprintf("cat(%d)", c.Value)
	default:
		return c.Type
	}
}

// formatBoard renders the board as aligned rows.
func formatBoard(snap t2048.Snapshot) string {
	var sb strings.Builder
	for _, row := range snap.Rows() {
		for _, c := range row {
			sb.WriteString(fmt.Sprintf("%*s", cellTextWidth, cellText(c)))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// formatSnapshot renders a status header followed by the board.
func formatSnapshot(snap t2048.Snapshot) string {
	var result strings.Builder

	if snap.Mode == string(t2048.ModeEndless) {
		result.WriteString(fmt.Sprintf("Endless | Max tile: %d | Moves: %d\n\n", snap.MaxTile, snap.Moves))
	} else {
		result.WriteString(fmt.Sprintf("Level %d | Target: %d | Max tile: %d | Moves: %d\n\n",
			snap.Level, snap.Target, snap.MaxTile, snap.Moves))
	}

	result.WriteString(formatBoard(snap))

	switch snap.State {
	case t2048.StateWin:
		result.WriteString("\nCAMPAIGN COMPLETE")
	case t2048.StateGameOver:
		result.WriteString("\nGAME OVER: no moves left")
	case t2048.StateLevelCleared:
		result.WriteString("\nLEVEL CLEARED")
	}

	return result.String()
}

// formatMoveReport renders the outcome of a move and the resulting board.
func formatMoveReport(r MoveReport) string {
	response := ""
	if r.Moved {
		response = fmt.Sprintf("Moved %s\n", r.Direction)
	} else {
		response = fmt.Sprintf("Nothing moved %s\n", r.Direction)
	}

	var events []string
	if r.Merges > 0 {
		events = append(events, fmt.Sprintf("%d merge(s)", r.Merges))
	}
	if r.Removed > 0 {
		events = append(events, fmt.Sprintf("%d tile(s) removed", r.Removed))
	}
	if r.Popups > 0 {
		events = append(events, "a chest was opened")
	}
	if r.LevelCleared {
		events = append(events, "level cleared")
	}
	if len(events) > 0 {
		response += "Events: " + strings.Join(events, ", ") + "\n"
	}

	response += "\n" + formatSnapshot(r.State)
	return response
}

// formatRules lists the tile rule table and the merge precedence list.
func formatRules() string {
	var sb strings.Builder

	sb.WriteString("Tiles:\n")
	for _, a := range grid.RuleTable() {
		if a.Type == grid.TypeEmpty {
			continue
		}
		sb.WriteString(fmt.Sprintf("- %s: value=%d static=%t popup=%t", a.Type, a.Value, a.Static, a.ShowsResultPopup))
		if !a.OnMerge.IsZero() {
			sb.WriteString(fmt.Sprintf(" on_merge=%s/%s", a.OnMerge.Visual, a.OnMerge.Animation))
		}
		if !a.OnRemove.IsZero() {
			sb.WriteString(fmt.Sprintf(" on_remove=%s/%s", a.OnRemove.Visual, a.OnRemove.Animation))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\nMerge rules (first match wins):\n")
	for i, r := range grid.MergeRules() {
		allowed := "merges"
		if !r.Allowed {
			allowed = "blocked"
		}
		sb.WriteString(fmt.Sprintf("%d. %s (%s): %s\n", i+1, r.Name, allowed, r.Description))
	}

	return sb.String()
}
