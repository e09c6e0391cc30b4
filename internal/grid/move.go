package grid

import (
	"fmt"
	"strings"
)

// Direction is a collapse direction.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions returns all four directions.
func Directions() []Direction {
	return []Direction{Up, Down, Left, Right}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// ParseDirection converts "up", "down", "left" or "right" (any case) to a Direction.
func ParseDirection(name string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "up", "u":
		return Up, nil
	case "down", "d":
		return Down, nil
	case "left", "l":
		return Left, nil
	case "right", "r":
		return Right, nil
	default:
		return Up, fmt.Errorf("%w: %q", ErrUnknownDirection, name)
	}
}

// Transition records one tile changing slot during a move.
type Transition struct {
	ID     uint64 // Identity of the tile that moved
	From   int
	To     int
	Merged bool // The tile was absorbed by the occupant of To
}

// Emission is an event the presentation layer should play at a cell.
type Emission struct {
	Index   int
	Trigger Trigger
	Effect  Effect
}

// MoveResult describes everything a move changed, in processing order.
type MoveResult struct {
	Direction   Direction
	Transitions []Transition
	Emissions   []Emission
	Popups      []int // Cells whose merge result shows the result popup
	Removed     []int // Cells swept to empty after the pass
}

// ChangedCount returns the number of tiles that changed slot.
func (r MoveResult) ChangedCount() int {
	return len(r.Transitions)
}

// Moved reports whether any tile changed slot.
func (r MoveResult) Moved() bool {
	return len(r.Transitions) > 0
}

// Merges returns the number of transitions that ended in a merge.
func (r MoveResult) Merges() int {
	n := 0
	for _, t := range r.Transitions {
		if t.Merged {
			n++
		}
	}
	return n
}

// lineIndices returns the cells of one line ordered from the destination edge.
func lineIndices(dir Direction, line int) [Size]int {
	var idx [Size]int
	for k := range Size {
		switch dir {
		case Left:
			idx[k] = Index(line, k)
		case Right:
			idx[k] = Index(line, Size-1-k)
		case Up:
			idx[k] = Index(k, line)
		case Down:
			idx[k] = Index(Size-1-k, line)
		}
	}
	return idx
}

// Move collapses the board in dir and applies the result in place.
//
// Each line is processed in one pass, nearest the destination edge first, so
// every decision sees the cells ahead of it already settled for this move.
// Tiles marked for removal keep their slot until the final sweep.
func Move(b *Board, dir Direction) MoveResult {
	res := MoveResult{Direction: dir}

	for line := range Size {
		idx := lineIndices(dir, line)

		for pos := 1; pos < Size; pos++ {
			from := idx[pos]
			tile := b.cells[from]
			if tile.IsEmpty() || tile.Static {
				continue
			}

			dest, merge := 0, false
			for i := pos - 1; i >= 0; i-- {
				other := b.cells[idx[i]]
				if other.IsEmpty() {
					continue
				}
				if CanMerge(other, tile) {
					dest, merge = i, true
				} else {
					dest = i + 1
				}
				break
			}
			if dest == pos {
				continue
			}

			to := idx[dest]
			b.cells[from] = Empty()
			if merge {
				result := Resolve(b.cells[to], tile)
				b.cells[to] = result

				if e, ok := tile.Event(TriggerMerge); ok {
					res.Emissions = append(res.Emissions, Emission{Index: to, Trigger: TriggerMerge, Effect: e})
				}
				if result.PendingRemoval {
					if e, ok := result.Event(TriggerRemove); ok {
						res.Emissions = append(res.Emissions, Emission{Index: to, Trigger: TriggerRemove, Effect: e})
					}
				}
				if result.ShowsResultPopup && !result.PendingRemoval {
					res.Popups = append(res.Popups, to)
				}
			} else {
				b.cells[to] = tile
			}

			res.Transitions = append(res.Transitions, Transition{
				ID:     tile.ID,
				From:   from,
				To:     to,
				Merged: merge,
			})
		}
	}

	// Sweep
	for i, t := range b.cells {
		if t.PendingRemoval {
			res.Removed = append(res.Removed, i)
		}
		b.cells[i] = t.settled()
	}

	return res
}

// CanMove reports whether a move in any direction would change the board.
// The board itself is left untouched.
func CanMove(b *Board) bool {
	for _, dir := range Directions() {
		if Move(b.Clone(), dir).Moved() {
			return true
		}
	}
	return false
}
