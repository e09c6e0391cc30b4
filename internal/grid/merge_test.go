package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func number(v int) Tile { return Defaults(TypeNumber, WithValue(v)) }

func cat(v int) Tile { return Defaults(TypeCat, WithValue(v)) }

func TestCanMerge(t *testing.T) {
	tests := []struct {
		name string
		a, b Tile
		want bool
	}{
		{"equal numbers", number(2), number(2), true},
		{"different numbers", number(2), number(4), false},
		{"brick bomb", Defaults(TypeBrick), Defaults(TypeBomb), true},
		{"bomb brick", Defaults(TypeBomb), Defaults(TypeBrick), true},
		{"bomb bomb", Defaults(TypeBomb), Defaults(TypeBomb), false},
		{"key chest", Defaults(TypeKey), Defaults(TypeChest), true},
		{"chest key", Defaults(TypeChest), Defaults(TypeKey), true},
		{"cat number", cat(3), number(2), true},
		{"number cat", number(8), cat(1), true},
		{"placeholder placeholder", Defaults(TypePlaceholder), Defaults(TypePlaceholder), false},
		{"placeholder number", Defaults(TypePlaceholder), number(2), false},
		{"brick brick", Defaults(TypeBrick), Defaults(TypeBrick), true},
		{"brick number", Defaults(TypeBrick), number(2), false},
		{"empty empty", Empty(), Empty(), false},
		{"empty number", Empty(), number(2), false},
		{"number key", number(2), Defaults(TypeKey), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanMerge(tt.a, tt.b))
		})
	}
}

func TestCanMergeConsumed(t *testing.T) {
	merged := Resolve(number(2), number(2))
	assert.True(t, merged.Merged)
	assert.False(t, CanMerge(merged, number(4)))

	removed := cat(1)
	removed.PendingRemoval = true
	assert.False(t, CanMerge(removed, number(2)))
}

func TestResolve(t *testing.T) {
	t.Run("doubling keeps target identity", func(t *testing.T) {
		target := number(4)
		target.ID = 10
		source := number(4)
		source.ID = 11

		got := Resolve(target, source)
		assert.Equal(t, TypeNumber, got.Type)
		assert.Equal(t, 8, got.Value)
		assert.Equal(t, uint64(10), got.ID)
		assert.False(t, got.PendingRemoval)
	})

	t.Run("bomb defuses brick", func(t *testing.T) {
		got := Resolve(Defaults(TypeBrick), Defaults(TypeBomb))
		assert.Equal(t, TypeBrick, got.Type)
		assert.True(t, got.PendingRemoval)
		assert.Equal(t, Empty(), got.settled())
	})

	t.Run("bomb target still removes", func(t *testing.T) {
		got := Resolve(Defaults(TypeBomb), Defaults(TypeBrick))
		assert.True(t, got.PendingRemoval)
	})

	t.Run("key unlocks chest into bomb", func(t *testing.T) {
		got := Resolve(Defaults(TypeChest), Defaults(TypeKey))
		assert.Equal(t, TypeBomb, got.Type)
		assert.True(t, got.ShowsResultPopup)
		assert.False(t, got.PendingRemoval)
	})

	t.Run("cat counts down", func(t *testing.T) {
		got := Resolve(cat(3), number(64))
		assert.Equal(t, TypeCat, got.Type)
		assert.Equal(t, 2, got.Value)
		assert.False(t, got.PendingRemoval)
	})

	t.Run("cat leaves at zero", func(t *testing.T) {
		got := Resolve(cat(1), number(2))
		assert.Equal(t, 0, got.Value)
		assert.True(t, got.PendingRemoval)
	})

	t.Run("rejected pair panics", func(t *testing.T) {
		assert.Panics(t, func() { Resolve(Defaults(TypeBomb), Defaults(TypeBomb)) })
	})
}

func TestMergeRulesPrecedence(t *testing.T) {
	rules := MergeRules()
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.Name
	}
	assert.Equal(t, []string{"brick+bomb", "bomb+bomb", "placeholder", "key+chest", "cat+number", "same"}, names)

	// Returned slice is a copy.
	rules[0].Name = "changed"
	assert.Equal(t, "brick+bomb", MergeRules()[0].Name)
}
