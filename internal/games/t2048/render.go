package t2048

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/vovakirdan/tile-merge/internal/core"
	"github.com/vovakirdan/tile-merge/internal/grid"
)

const (
	cellWidth  = 7 // Width of each cell (including left border)
	cellHeight = 3 // Height of each cell (including top border)

	boardW    = grid.Size*cellWidth + 1
	boardH    = grid.Size*cellHeight + 1
	hudHeight = 3

	minScreenW = boardW + 2
	minScreenH = hudHeight + 1 + boardH + 2
)

// glyph is the two-line art of a tile inside a cell.
type glyph struct {
	lines [2]string
	color core.Color
}

// glyphFor returns the art for a tile.
func glyphFor(t grid.Tile) glyph {
	switch t.Type {
	case grid.TypeNumber:
		return glyph{lines: [2]string{strconv.Itoa(t.Value), ""}, color: core.NumberColor(t.Value)}
	case grid.TypeBrick:
		return glyph{lines: [2]string{"▓▓▓▓▓▓", "▓▓▓▓▓▓"}, color: core.ColorBrown}
	case grid.TypeBomb:
		return glyph{lines: [2]string{"(**)", "bomb"}, color: core.ColorBrightRed}
	case grid.TypeKey:
		return glyph{lines: [2]string{"o─┬┐", "key"}, color: core.ColorBrightYellow}
	case grid.TypeChest:
		return glyph{lines: [2]string{"[##]", "chest"}, color: core.ColorOrange}
	case grid.TypeCat:
		return glyph{lines: [2]string{"=^.^=", "x" + strconv.Itoa(t.Value)}, color: core.ColorPink}
	case grid.TypePlaceholder:
		return glyph{lines: [2]string{"····", "····"}, color: core.ColorGray}
	default:
		return glyph{}
	}
}

// effectRune returns the particle drawn for an effect visual.
func effectRune(visual string) (rune, core.Color) {
	switch visual {
	case "explosion":
		return '*', core.ColorBrightRed
	case "sparkle":
		return '+', core.ColorBrightYellow
	case "dust":
		return '░', core.ColorGray
	default:
		return '·', core.ColorWhite
	}
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	// Check screen size
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	// Calculate board position (centered)
	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight + 1

	g.renderHUD(dst, boardX)
	g.renderGrid(dst, boardX, boardY)
	g.renderTiles(dst, boardX, boardY)
	g.renderEffects(dst, boardX, boardY)

	area := core.NewRect(boardX, boardY, boardW, boardH)
	g.renderPopup(dst, area)
	g.renderOverlays(dst, area)

	hint := g.Controls()
	if len(hint) <= g.screenW {
		dst.DrawTextColor((g.screenW-len(hint))/2, boardY+boardH+1, hint, core.ColorGray)
	}
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", minScreenW, minScreenH))
}

// renderHUD draws level and progress info.
func (g *Game) renderHUD(dst *core.Screen, boardX int) {
	title := "2048"
	dst.DrawTextColor(boardX+(boardW-len(title))/2, 0, title, core.ColorBrightYellow)

	var infoStr, nameStr string
	if g.mode == ModeCampaign {
		infoStr = fmt.Sprintf("Level %d/%d  Target: %d", g.levelIndex+1, len(g.levels), g.currentTarget)
		nameStr = g.Level().Name
	} else {
		infoStr = "Endless"
		nameStr = fmt.Sprintf("Max: %d", g.board.MaxValue(grid.TypeNumber))
	}
	dst.DrawText(boardX, 1, infoStr)

	moves := fmt.Sprintf("Moves: %d", g.seq.Moves())
	dst.DrawText(boardX+boardW-len(moves), 1, moves)

	dst.DrawTextColor(boardX+(boardW-len([]rune(nameStr)))/2, 2, nameStr, core.ColorCyan)
}

// renderGrid draws the 4x4 grid lines.
func (g *Game) renderGrid(dst *core.Screen, boardX, boardY int) {
	for y := range grid.Size + 1 {
		for x := range grid.Size + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			var corner rune
			switch {
			case y == 0 && x == 0:
				corner = '┌'
			case y == 0 && x == grid.Size:
				corner = '┐'
			case y == grid.Size && x == 0:
				corner = '└'
			case y == grid.Size && x == grid.Size:
				corner = '┘'
			case y == 0:
				corner = '┬'
			case y == grid.Size:
				corner = '┴'
			case x == 0:
				corner = '├'
			case x == grid.Size:
				corner = '┤'
			default:
				corner = '┼'
			}
			dst.SetColor(px, py, corner, core.ColorGray)

			if x < grid.Size {
				for i := 1; i < cellWidth; i++ {
					dst.SetColor(px+i, py, '─', core.ColorGray)
				}
			}
			if y < grid.Size {
				for i := 1; i < cellHeight; i++ {
					dst.SetColor(px, py+i, '│', core.ColorGray)
				}
			}
		}
	}
}

// cellOrigin returns the top-left inner character of a cell at fractional coordinates.
func cellOrigin(boardX, boardY int, row, col float64) (int, int) {
	x := boardX + int(math.Round(col*cellWidth)) + 1
	y := boardY + int(math.Round(row*cellHeight)) + 1
	return x, y
}

// renderTiles draws every view at its animated position.
func (g *Game) renderTiles(dst *core.Screen, boardX, boardY int) {
	inner := cellWidth - 1
	for _, sp := range g.presenter.Sprites() {
		gl := glyphFor(sp.Tile)
		color := gl.color
		if sp.Popping {
			color = core.ColorBrightWhite
		}

		x, y := cellOrigin(boardX, boardY, sp.Row, sp.Col)
		for i, line := range gl.lines {
			if line == "" {
				continue
			}
			n := len([]rune(line))
			pad := max(0, (inner-n)/2)
			dst.DrawTextColor(x+pad, y+i, line, color)
		}
	}
}

// renderEffects draws particles in the corners of cells playing an effect.
func (g *Game) renderEffects(dst *core.Screen, boardX, boardY int) {
	for _, fx := range g.presenter.Effects() {
		r, color := effectRune(fx.Effect.Visual)
		row, col := grid.RowCol(fx.Index)
		x, y := cellOrigin(boardX, boardY, float64(row), float64(col))

		// Particles drift outward as the effect plays.
		spread := 0
		if fx.Progress > 0.5 {
			spread = 1
		}
		dst.SetColor(x-spread+0, y, r, color)
		dst.SetColor(x+cellWidth-2+spread, y, r, color)
		dst.SetColor(x-spread+0, y+cellHeight-2, r, color)
		dst.SetColor(x+cellWidth-2+spread, y+cellHeight-2, r, color)
	}
}

// popupLines returns the text of the result popup for a visual.
func popupLines(visual string) []string {
	name := strings.ToUpper(visual)
	switch visual {
	case "bomb":
		return []string{"UNLOCKED!", "The chest held a " + name, "Slide it into a brick", "Enter: continue"}
	default:
		return []string{"NEW TILE", name, "Enter: continue"}
	}
}

// renderPopup draws the result popup, opening vertically as it bounces in.
func (g *Game) renderPopup(dst *core.Screen, area core.Rect) {
	pop, ok := g.presenter.Popup()
	if !ok {
		return
	}

	lines := popupLines(pop.Visual)
	visible := int(math.Ceil(pop.Open * float64(len(lines))))
	if visible <= 0 {
		return
	}
	g.drawOverlay(dst, area, core.ColorBrightYellow, lines[:visible]...)
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, area core.Rect) {
	if g.paused {
		g.drawOverlay(dst, area, core.ColorDefault, "PAUSED", "Press P to resume")
		return
	}

	if g.levelCleared {
		targetStr := fmt.Sprintf("Target %d reached!", g.currentTarget)
		if g.levelIndex >= len(g.levels)-1 {
			g.drawOverlay(dst, area, core.ColorBrightGreen, targetStr, "Final level complete!")
		} else {
			next := g.levels[g.levelIndex+1]
			g.drawOverlay(dst, area, core.ColorBrightGreen, targetStr, fmt.Sprintf("Next: %s", next.Name))
		}
		return
	}

	if g.won {
		g.drawOverlay(dst, area, core.ColorBrightGreen, "CAMPAIGN COMPLETE!", "Every level cleared", "Press R to restart")
		return
	}

	if g.gameOver {
		maxStr := fmt.Sprintf("Max tile: %d", g.board.MaxValue(grid.TypeNumber))
		g.drawOverlay(dst, area, core.ColorBrightRed, "GAME OVER", maxStr, "Press R to restart")
	}
}

// drawOverlay draws a boxed, centered text overlay.
func (g *Game) drawOverlay(dst *core.Screen, area core.Rect, color core.Color, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len([]rune(line)))
	}

	box := area.Centered(maxLen+4, len(lines)+2)
	dst.DrawRect(box, ' ')
	dst.DrawBoxColor(box, color)

	cx, _ := box.Center()
	for i, line := range lines {
		dst.DrawTextColor(cx-len([]rune(line))/2, box.Y+1+i, line, color)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD/HJKL: Move | Enter: Skip popup | P: Pause | R: Restart | Q: Quit"
}
