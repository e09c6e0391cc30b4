package grid

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seqRand returns a fixed sequence of values, wrapped to the requested bound.
type seqRand struct {
	vals []int
	i    int
}

func (r *seqRand) Intn(n int) int {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v % n
}

func TestNewBoardIsEmpty(t *testing.T) {
	b := NewBoard(nil)
	assert.Equal(t, 0, b.Count())
	assert.Len(t, b.EmptyIndices(), CellCount)
	for i := range CellCount {
		assert.True(t, b.IsEmptyAt(i))
		assert.Equal(t, TypeEmpty, b.At(i).Type)
	}
}

func TestIndexRowCol(t *testing.T) {
	for i := range CellCount {
		r, c := RowCol(i)
		assert.Equal(t, i, Index(r, c))
	}
	assert.Equal(t, 7, Index(1, 3))
	assert.False(t, InRange(-1))
	assert.False(t, InRange(CellCount))
}

func TestSetAssignsIdentity(t *testing.T) {
	b := NewBoard(nil)
	b.Set(0, number(2))
	b.Set(1, number(2))
	assert.NotZero(t, b.At(0).ID)
	assert.NotEqual(t, b.At(0).ID, b.At(1).ID)

	kept := b.At(0)
	b.Set(5, kept)
	assert.Equal(t, kept.ID, b.At(5).ID)

	b.Set(5, Empty())
	assert.Zero(t, b.At(5).ID)
}

func TestSpawnPicksAmongEmpty(t *testing.T) {
	b := NewBoard(&seqRand{vals: []int{2}})
	for i := range 3 {
		b.Set(i, number(2))
	}

	// Empty cells are 3..15; the third of them is 5.
	index, err := b.Spawn(TypeNumber)
	require.NoError(t, err)
	assert.Equal(t, 5, index)
	assert.Equal(t, 2, b.At(5).Value)
	assert.Equal(t, 4, b.Count())
}

func TestSpawnOverride(t *testing.T) {
	b := NewBoard(&seqRand{vals: []int{0}})
	index, err := b.Spawn(TypeCat, WithValue(5))
	require.NoError(t, err)
	assert.Equal(t, 0, index)
	assert.Equal(t, 5, b.At(0).Value)
}

func TestSpawnFullBoard(t *testing.T) {
	b := NewBoard(nil)
	for i := range CellCount {
		b.Set(i, number(2))
	}
	_, err := b.RandomEmptyIndex()
	assert.True(t, errors.Is(err, ErrBoardFull))

	index, err := b.Spawn(TypeNumber)
	assert.ErrorIs(t, err, ErrBoardFull)
	assert.Equal(t, -1, index)
}

func TestPlace(t *testing.T) {
	b := NewBoard(nil)
	require.NoError(t, b.Place(Index(2, 1), TypeBrick))
	assert.Equal(t, TypeBrick, b.At(9).Type)
	assert.Equal(t, 1, b.CountType(TypeBrick))

	err := b.Place(16, TypeBrick)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestMaxValue(t *testing.T) {
	b := NewBoard(nil)
	assert.Equal(t, 0, b.MaxValue(TypeNumber))
	b.Set(0, number(8))
	b.Set(1, number(64))
	b.Set(2, cat(100))
	assert.Equal(t, 64, b.MaxValue(TypeNumber))
}

func TestCloneIsIndependent(t *testing.T) {
	b := NewBoard(nil)
	b.Set(0, number(2))
	c := b.Clone()
	c.Set(0, Empty())
	assert.Equal(t, TypeNumber, b.At(0).Type)
}

func TestBoardString(t *testing.T) {
	b := NewBoard(nil)
	b.Set(0, number(2))
	b.Set(15, Defaults(TypeBrick))
	want := "number(2) . . .\n. . . .\n. . . .\n. . . brick"
	assert.Equal(t, want, b.String())
}
