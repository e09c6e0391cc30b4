// Package grid implements the tile-merging board engine: tile kinds and their
// default attributes, the merge rules between kinds, the 4x4 board, and the
// directional collapse that moves and merges tiles.
//
// The package has no rendering or input dependencies. Everything a presentation
// layer needs to animate a move is reported in MoveResult.
package grid

import (
	"fmt"
	"strings"
)

// Type identifies the kind of content a board cell holds.
type Type int

const (
	TypeEmpty Type = iota
	TypePlaceholder
	TypeBrick
	TypeNumber
	TypeBomb
	TypeKey
	TypeChest
	TypeCat
)

var typeNames = [...]string{
	TypeEmpty:       "empty",
	TypePlaceholder: "placeholder",
	TypeBrick:       "brick",
	TypeNumber:      "number",
	TypeBomb:        "bomb",
	TypeKey:         "key",
	TypeChest:       "chest",
	TypeCat:         "cat",
}

// String returns the lowercase name of the type.
func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return fmt.Sprintf("type(%d)", int(t))
	}
	return typeNames[t]
}

// Valid reports whether t is one of the declared tile kinds.
func (t Type) Valid() bool {
	return t >= 0 && int(t) < len(typeNames)
}

// Types returns every declared tile kind in declaration order.
func Types() []Type {
	types := make([]Type, len(typeNames))
	for i := range typeNames {
		types[i] = Type(i)
	}
	return types
}

// ParseType converts a tile name (case-insensitive) to its Type.
func ParseType(name string) (Type, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range typeNames {
		if n == name {
			return Type(i), nil
		}
	}
	return TypeEmpty, fmt.Errorf("%w: %q", ErrUnknownType, name)
}

// Trigger names the moment a tile event fires.
type Trigger int

const (
	TriggerMerge Trigger = iota
	TriggerRemove

	triggerCount
)

// String returns the trigger name as used by the presentation layer.
func (t Trigger) String() string {
	switch t {
	case TriggerMerge:
		return "onMerge"
	case TriggerRemove:
		return "onRemove"
	default:
		return "unknown"
	}
}

// Effect is the visual and animation pair a presenter plays for an event.
type Effect struct {
	Visual    string
	Animation string
}

// IsZero reports whether the effect is unset.
func (e Effect) IsZero() bool {
	return e.Visual == "" && e.Animation == ""
}

// Tile is the semantic content of one board cell.
// Every cell always holds a Tile; an empty cell holds a TypeEmpty tile.
type Tile struct {
	ID     uint64 // Identity assigned by the board on placement; 0 for empty cells
	Type   Type
	Value  int  // Score for Number, countdown for Cat, unused otherwise
	Static bool // Never initiates a move

	// PendingRemoval marks content that has been consumed during the current
	// move and becomes empty when the move finishes.
	PendingRemoval bool

	// Merged marks a merge result for the rest of the current move so it
	// cannot absorb a second tile.
	Merged bool

	Events           [triggerCount]Effect
	ShowsResultPopup bool
}

// IsEmpty reports whether the tile is the empty kind.
func (t Tile) IsEmpty() bool {
	return t.Type == TypeEmpty
}

// Consumed reports whether the tile already took part in a merge this move.
func (t Tile) Consumed() bool {
	return t.PendingRemoval || t.Merged
}

// Event returns the effect registered for the trigger, if any.
func (t Tile) Event(tr Trigger) (Effect, bool) {
	if tr < 0 || tr >= triggerCount {
		return Effect{}, false
	}
	e := t.Events[tr]
	return e, !e.IsZero()
}

// String renders the tile compactly for logs and test failures.
func (t Tile) String() string {
	switch t.Type {
	case TypeEmpty:
		return "."
	case TypeNumber, TypeCat:
		return fmt.Sprintf("%s(%d)", t.Type, t.Value)
	default:
		return t.Type.String()
	}
}

// settled returns the tile as it is once the move finishes.
func (t Tile) settled() Tile {
	if t.PendingRemoval {
		return Empty()
	}
	t.Merged = false
	return t
}
