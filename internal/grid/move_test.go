package grid

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// boardOf builds a board from cell index to tile.
func boardOf(cells map[int]Tile) *Board {
	b := NewBoard(nil)
	for i, t := range cells {
		b.Set(i, t)
	}
	return b
}

// rowOf returns the tiles of row r as strings.
func rowOf(b *Board, r int) []string {
	out := make([]string, Size)
	for c := range Size {
		out[c] = b.At(Index(r, c)).String()
	}
	return out
}

func TestMoveScenarios(t *testing.T) {
	t.Run("single slide", func(t *testing.T) {
		b := boardOf(map[int]Tile{3: number(2)})
		res := Move(b, Left)

		assert.Equal(t, 1, res.ChangedCount())
		require.Len(t, res.Transitions, 1)
		assert.Equal(t, 3, res.Transitions[0].From)
		assert.Equal(t, 0, res.Transitions[0].To)
		assert.False(t, res.Transitions[0].Merged)
		assert.Equal(t, []string{"number(2)", ".", ".", "."}, rowOf(b, 0))
	})

	t.Run("merge across gap", func(t *testing.T) {
		b := boardOf(map[int]Tile{0: number(2), 3: number(2)})
		res := Move(b, Left)

		assert.Equal(t, 1, res.ChangedCount())
		assert.True(t, res.Transitions[0].Merged)
		assert.Equal(t, []string{"number(4)", ".", ".", "."}, rowOf(b, 0))
		assert.False(t, b.At(0).Merged, "merged marker is cleared after the sweep")
	})

	// [brick, ., ., bomb] Left is the bomb-defuses-brick case: the bomb is the
	// only tile that can move, so it travels to the brick and both are removed.
	t.Run("bomb slides into brick", func(t *testing.T) {
		b := boardOf(map[int]Tile{0: Defaults(TypeBrick), 3: Defaults(TypeBomb)})
		res := Move(b, Left)

		assert.Equal(t, 1, res.ChangedCount())
		assert.True(t, b.IsEmptyAt(0))
		assert.True(t, b.IsEmptyAt(3))
		assert.Equal(t, 0, b.Count())
		assert.Empty(t, res.Popups)
		assert.Equal(t, []int{0}, res.Removed)
		assert.Equal(t, []Emission{
			{Index: 0, Trigger: TriggerMerge, Effect: Effect{"explosion", "blast"}},
			{Index: 0, Trigger: TriggerRemove, Effect: Effect{"dust", "crumble"}},
		}, res.Emissions)
	})

	// [bomb, ., ., brick] Left: the bomb is already at the edge and a brick never
	// initiates a move, so this layout changes nothing. The bomb+brick merge is
	// covered by the mirrored layout above.
	t.Run("brick blocks a bomb placed before it", func(t *testing.T) {
		b := boardOf(map[int]Tile{0: Defaults(TypeBomb), 3: Defaults(TypeBrick)})
		before := b.Cells()
		res := Move(b, Left)

		assert.Equal(t, 0, res.ChangedCount())
		assert.Equal(t, before, b.Cells())
	})

	t.Run("empty board", func(t *testing.T) {
		for _, dir := range Directions() {
			b := NewBoard(nil)
			res := Move(b, dir)
			assert.Equal(t, 0, res.ChangedCount(), dir.String())
			assert.False(t, res.Moved())
			assert.Equal(t, 0, b.Count())
		}
	})
}

func TestMoveRows(t *testing.T) {
	tests := []struct {
		name    string
		row     []Tile
		want    []string
		changed int
	}{
		{
			name:    "merge once per move",
			row:     []Tile{number(2), number(2), number(4), Empty()},
			want:    []string{"number(4)", "number(4)", ".", "."},
			changed: 2,
		},
		{
			name:    "four equal",
			row:     []Tile{number(4), number(4), number(4), number(4)},
			want:    []string{"number(8)", "number(8)", ".", "."},
			changed: 3,
		},
		{
			name:    "three equal",
			row:     []Tile{number(2), number(2), number(2), Empty()},
			want:    []string{"number(4)", "number(2)", ".", "."},
			changed: 2,
		},
		{
			name:    "bombs never stack",
			row:     []Tile{Defaults(TypeBomb), Defaults(TypeBomb), Empty(), Empty()},
			want:    []string{"bomb", "bomb", ".", "."},
			changed: 0,
		},
		{
			name:    "placeholder blocks",
			row:     []Tile{Empty(), Defaults(TypePlaceholder), Empty(), number(2)},
			want:    []string{".", "placeholder", "number(2)", "."},
			changed: 1,
		},
		{
			name:    "static tiles stay",
			row:     []Tile{Empty(), Defaults(TypeChest), Empty(), cat(3)},
			want:    []string{".", "chest", ".", "cat(3)"},
			changed: 0,
		},
		{
			name:    "number stops at chest",
			row:     []Tile{Defaults(TypeChest), Empty(), number(2), Empty()},
			want:    []string{"chest", "number(2)", ".", "."},
			changed: 1,
		},
		{
			name:    "removed tile blocks until sweep",
			row:     []Tile{Defaults(TypeBrick), Defaults(TypeBomb), number(2), Empty()},
			want:    []string{".", "number(2)", ".", "."},
			changed: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBoard(nil)
			for c, tile := range tt.row {
				if !tile.IsEmpty() {
					b.Set(Index(0, c), tile)
				}
			}
			res := Move(b, Left)
			assert.Equal(t, tt.want, rowOf(b, 0))
			assert.Equal(t, tt.changed, res.ChangedCount())
		})
	}
}

func TestMoveDirections(t *testing.T) {
	// Column 1: 2 at top, 2 at bottom.
	tests := []struct {
		dir  Direction
		want int
	}{
		{Up, Index(0, 1)},
		{Down, Index(3, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			b := boardOf(map[int]Tile{Index(0, 1): number(2), Index(3, 1): number(2)})
			res := Move(b, tt.dir)
			assert.Equal(t, 1, res.ChangedCount())
			assert.Equal(t, 4, b.At(tt.want).Value)
			assert.Equal(t, 1, b.Count())
		})
	}

	b := boardOf(map[int]Tile{Index(2, 0): number(2), Index(2, 1): number(4)})
	res := Move(b, Right)
	assert.Equal(t, 2, res.ChangedCount())
	assert.Equal(t, []string{".", ".", "number(2)", "number(4)"}, rowOf(b, 2))
}

func TestMoveLinesAreIndependent(t *testing.T) {
	b := boardOf(map[int]Tile{
		Index(0, 3): number(2),
		Index(1, 0): number(2),
		Index(1, 1): number(4),
	})
	res := Move(b, Left)
	assert.Equal(t, 1, res.ChangedCount())
	assert.Equal(t, []string{"number(2)", ".", ".", "."}, rowOf(b, 0))
	assert.Equal(t, []string{"number(2)", "number(4)", ".", "."}, rowOf(b, 1))
}

func TestMoveKeyUnlocksChest(t *testing.T) {
	b := boardOf(map[int]Tile{0: Defaults(TypeChest), 2: Defaults(TypeKey)})
	chestID := b.At(0).ID
	res := Move(b, Left)

	assert.Equal(t, TypeBomb, b.At(0).Type)
	assert.Equal(t, chestID, b.At(0).ID)
	assert.Equal(t, []int{0}, res.Popups)
	assert.Equal(t, []Emission{{Index: 0, Trigger: TriggerMerge, Effect: Effect{"sparkle", "unlock"}}}, res.Emissions)
}

func TestMoveCat(t *testing.T) {
	t.Run("counts down", func(t *testing.T) {
		b := boardOf(map[int]Tile{0: cat(3), 1: number(2)})
		res := Move(b, Left)
		assert.Equal(t, TypeCat, b.At(0).Type)
		assert.Equal(t, 2, b.At(0).Value)
		assert.Empty(t, res.Removed)
		for _, e := range res.Emissions {
			assert.NotEqual(t, TriggerRemove, e.Trigger)
		}
	})

	t.Run("leaves at zero", func(t *testing.T) {
		b := boardOf(map[int]Tile{0: cat(1), 3: number(16)})
		res := Move(b, Left)
		assert.True(t, b.IsEmptyAt(0))
		assert.Equal(t, 0, b.Count())
		assert.Equal(t, []int{0}, res.Removed)
		assert.Contains(t, res.Emissions, Emission{Index: 0, Trigger: TriggerRemove, Effect: Effect{"explosion", "blast"}})
	})
}

// randomBoard fills a board with a mix of every kind.
func randomBoard(rng *rand.Rand) *Board {
	kinds := Types()
	b := NewBoard(rng)
	for i := range CellCount {
		k := kinds[rng.Intn(len(kinds))]
		switch k {
		case TypeEmpty:
			continue
		case TypeNumber:
			b.Set(i, number(2<<rng.Intn(3)))
		case TypeCat:
			b.Set(i, cat(1+rng.Intn(3)))
		default:
			b.Set(i, Defaults(k))
		}
	}
	return b
}

func TestMoveProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for range 500 {
		for _, dir := range Directions() {
			b := randomBoard(rng)
			before := b.Clone()
			beforeCount := b.Count()

			res := Move(b, dir)

			// Static tiles never move.
			for _, tr := range res.Transitions {
				require.False(t, before.At(tr.From).Static, "static %s moved %s from %d", before.At(tr.From), dir, tr.From)
				require.Equal(t, before.At(tr.From).ID, tr.ID)
			}

			// Occupant accounting.
			assert.Equal(t, beforeCount-res.Merges()-len(res.Removed), b.Count())

			// Surviving identities existed before the move.
			ids := map[uint64]bool{}
			for i := range CellCount {
				if id := before.At(i).ID; id != 0 {
					ids[id] = true
				}
			}
			for i := range CellCount {
				tile := b.At(i)
				require.False(t, tile.Consumed(), "markers survive the sweep at %d", i)
				if !tile.IsEmpty() {
					require.True(t, ids[tile.ID], "unknown identity at %d", i)
				}
			}

			// No move means no change.
			if !res.Moved() {
				require.Equal(t, before.Cells(), b.Cells())
			}
		}
	}
}

func TestMoveIdempotentWhenBlocked(t *testing.T) {
	b := boardOf(map[int]Tile{0: number(2), 1: number(4), 4: number(8)})
	Move(b, Left)
	before := b.Cells()
	res := Move(b, Left)
	assert.Equal(t, 0, res.ChangedCount())
	assert.Equal(t, before, b.Cells())
}

func TestCanMove(t *testing.T) {
	b := NewBoard(nil)
	assert.False(t, CanMove(b))

	// Checkerboard of 2 and 4 cannot move.
	for i := range CellCount {
		r, c := RowCol(i)
		if (r+c)%2 == 0 {
			b.Set(i, number(2))
		} else {
			b.Set(i, number(4))
		}
	}
	before := b.Cells()
	assert.False(t, CanMove(b))
	assert.Equal(t, before, b.Cells())

	b.Set(0, number(4))
	assert.True(t, CanMove(b))
}

func TestParseDirection(t *testing.T) {
	for _, dir := range Directions() {
		got, err := ParseDirection(dir.String())
		require.NoError(t, err)
		assert.Equal(t, dir, got)
	}
	_, err := ParseDirection("sideways")
	assert.ErrorIs(t, err, ErrUnknownDirection)
}
