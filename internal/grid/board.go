package grid

import (
	"fmt"
	"math/rand"
	"strings"
)

// Board dimensions.
const (
	Size      = 4
	CellCount = Size * Size
)

// Rand is the source of randomness used for spawn positions.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Board is the 4x4 grid of tiles, indexed row*Size+col.
type Board struct {
	cells  [CellCount]Tile
	nextID uint64
	rng    Rand
}

// NewBoard returns an empty board drawing spawn positions from rng.
// A nil rng uses a fixed-seed source.
func NewBoard(rng Rand) *Board {
	if rng == nil {
		rng = rand.New(rand.NewSource(0))
	}
	b := &Board{rng: rng}
	b.Clear()
	return b
}

// Index converts a row and column to a cell index.
func Index(row, col int) int {
	return row*Size + col
}

// RowCol converts a cell index to its row and column.
func RowCol(index int) (row, col int) {
	return index / Size, index % Size
}

// InRange reports whether index addresses a board cell.
func InRange(index int) bool {
	return index >= 0 && index < CellCount
}

// Clear empties every cell.
func (b *Board) Clear() {
	for i := range b.cells {
		b.cells[i] = Empty()
	}
}

// At returns the tile in the given cell.
func (b *Board) At(index int) Tile {
	return b.cells[index]
}

// Set stores a tile in the given cell, assigning an identity to new content.
func (b *Board) Set(index int, t Tile) {
	if !t.IsEmpty() && t.ID == 0 {
		b.nextID++
		t.ID = b.nextID
	}
	if t.IsEmpty() {
		t.ID = 0
	}
	b.cells[index] = t
}

// IsEmptyAt reports whether the given cell is empty.
func (b *Board) IsEmptyAt(index int) bool {
	return b.cells[index].IsEmpty()
}

// Cells returns a copy of all cells.
func (b *Board) Cells() [CellCount]Tile {
	return b.cells
}

// Clone returns an independent copy sharing the random source.
func (b *Board) Clone() *Board {
	c := *b
	return &c
}

// EmptyIndices lists the empty cells in index order.
func (b *Board) EmptyIndices() []int {
	var empty []int
	for i, t := range b.cells {
		if t.IsEmpty() {
			empty = append(empty, i)
		}
	}
	return empty
}

// Count returns the number of non-empty cells.
func (b *Board) Count() int {
	n := 0
	for _, t := range b.cells {
		if !t.IsEmpty() {
			n++
		}
	}
	return n
}

// CountType returns the number of cells holding kind t.
func (b *Board) CountType(t Type) int {
	n := 0
	for _, c := range b.cells {
		if c.Type == t {
			n++
		}
	}
	return n
}

// MaxValue returns the highest value held by a tile of kind t, or 0.
func (b *Board) MaxValue(t Type) int {
	maxVal := 0
	for _, c := range b.cells {
		if c.Type == t && c.Value > maxVal {
			maxVal = c.Value
		}
	}
	return maxVal
}

// RandomEmptyIndex picks an empty cell uniformly at random.
// Returns ErrBoardFull when no cell is empty.
func (b *Board) RandomEmptyIndex() (int, error) {
	empty := b.EmptyIndices()
	if len(empty) == 0 {
		return -1, ErrBoardFull
	}
	return empty[b.rng.Intn(len(empty))], nil
}

// Spawn places a defaulted tile of kind t in a random empty cell.
// Returns the chosen index, or ErrBoardFull.
func (b *Board) Spawn(t Type, opts ...Override) (int, error) {
	index, err := b.RandomEmptyIndex()
	if err != nil {
		return -1, err
	}
	b.Set(index, Defaults(t, opts...))
	return index, nil
}

// Place puts a defaulted tile of kind t into a specific cell, replacing its content.
func (b *Board) Place(index int, t Type, opts ...Override) error {
	if !InRange(index) {
		return fmt.Errorf("%w: %d", ErrOutOfRange, index)
	}
	b.Set(index, Defaults(t, opts...))
	return nil
}

// String renders the board as four rows of tiles.
func (b *Board) String() string {
	var sb strings.Builder
	for row := range Size {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := range Size {
			if col > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(b.cells[Index(row, col)].String())
		}
	}
	return sb.String()
}
