package grid

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	tests := []struct {
		typ      Type
		value    int
		static   bool
		onMerge  Effect
		onRemove Effect
		popup    bool
	}{
		{TypeEmpty, 0, false, Effect{}, Effect{}, false},
		{TypePlaceholder, 0, true, Effect{}, Effect{}, false},
		{TypeBrick, 0, true, Effect{}, Effect{"dust", "crumble"}, false},
		{TypeNumber, 2, false, Effect{"sparkle", "pop"}, Effect{}, false},
		{TypeBomb, 0, false, Effect{"explosion", "blast"}, Effect{}, true},
		{TypeKey, 0, false, Effect{"sparkle", "unlock"}, Effect{}, false},
		{TypeChest, 0, true, Effect{}, Effect{}, false},
		{TypeCat, 3, true, Effect{}, Effect{"explosion", "blast"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			tile := Defaults(tt.typ)
			assert.Equal(t, tt.typ, tile.Type)
			assert.Equal(t, tt.value, tile.Value)
			assert.Equal(t, tt.static, tile.Static)
			assert.Equal(t, tt.onMerge, tile.Events[TriggerMerge])
			assert.Equal(t, tt.onRemove, tile.Events[TriggerRemove])
			assert.Equal(t, tt.popup, tile.ShowsResultPopup)
			assert.Zero(t, tile.ID)
			assert.False(t, tile.Consumed())
		})
	}
}

func TestDefaultsOverride(t *testing.T) {
	cat := Defaults(TypeCat, WithValue(7))
	assert.Equal(t, 7, cat.Value)

	// The table itself is unchanged.
	assert.Equal(t, 3, Defaults(TypeCat).Value)
}

func TestDefaultsUnknownTypePanics(t *testing.T) {
	assert.Panics(t, func() { Defaults(Type(99)) })
}

func TestLookup(t *testing.T) {
	a, ok := Lookup(TypeCat)
	require.True(t, ok)
	assert.Equal(t, 3, a.Value)
	assert.True(t, a.Static)

	_, ok = Lookup(Type(99))
	assert.False(t, ok)
}

func TestRuleTableOrder(t *testing.T) {
	rows := RuleTable()
	require.Len(t, rows, len(Types()))
	for i, row := range rows {
		assert.Equal(t, Type(i), row.Type)
	}
}

func TestParseType(t *testing.T) {
	typ, err := ParseType(" Chest ")
	require.NoError(t, err)
	assert.Equal(t, TypeChest, typ)

	_, err = ParseType("dragon")
	assert.True(t, errors.Is(err, ErrUnknownType))
}

func TestTileEvent(t *testing.T) {
	e, ok := Defaults(TypeNumber).Event(TriggerMerge)
	assert.True(t, ok)
	assert.Equal(t, "sparkle", e.Visual)

	_, ok = Defaults(TypeNumber).Event(TriggerRemove)
	assert.False(t, ok)

	_, ok = Defaults(TypeNumber).Event(Trigger(5))
	assert.False(t, ok)
}

func TestTileString(t *testing.T) {
	assert.Equal(t, ".", Empty().String())
	assert.Equal(t, "number(2)", Defaults(TypeNumber).String())
	assert.Equal(t, "cat(3)", Defaults(TypeCat).String())
	assert.Equal(t, "brick", Defaults(TypeBrick).String())
}
