package grid

import "fmt"

// Attributes are the canonical defaults of one tile kind.
type Attributes struct {
	Type             Type
	Value            int
	Static           bool
	OnMerge          Effect
	OnRemove         Effect
	ShowsResultPopup bool
}

// ruleTable holds the defaults for every tile kind. It is never mutated.
var ruleTable = map[Type]Attributes{
	TypeEmpty: {
		Type: TypeEmpty,
	},
	TypePlaceholder: {
		Type:   TypePlaceholder,
		Static: true,
	},
	TypeBrick: {
		Type:     TypeBrick,
		Static:   true,
		OnRemove: Effect{Visual: "dust", Animation: "crumble"},
	},
	TypeNumber: {
		Type:    TypeNumber,
		Value:   2,
		OnMerge: Effect{Visual: "sparkle", Animation: "pop"},
	},
	TypeBomb: {
		Type:             TypeBomb,
		OnMerge:          Effect{Visual: "explosion", Animation: "blast"},
		ShowsResultPopup: true,
	},
	TypeKey: {
		Type:    TypeKey,
		OnMerge: Effect{Visual: "sparkle", Animation: "unlock"},
	},
	TypeChest: {
		Type:   TypeChest,
		Static: true,
	},
	TypeCat: {
		Type:     TypeCat,
		Value:    3,
		Static:   true,
		OnRemove: Effect{Visual: "explosion", Animation: "blast"},
	},
}

// Override adjusts a freshly defaulted tile.
type Override func(*Tile)

// WithValue overrides the tile value, e.g. a Cat with a custom countdown.
func WithValue(v int) Override {
	return func(t *Tile) {
		t.Value = v
	}
}

// Lookup returns the attributes registered for a kind.
func Lookup(t Type) (Attributes, bool) {
	a, ok := ruleTable[t]
	return a, ok
}

// Defaults returns a new tile with the canonical attributes of t.
// Panics if t is not a registered kind; that is a programming error.
func Defaults(t Type, opts ...Override) Tile {
	a, ok := Lookup(t)
	if !ok {
		panic(fmt.Sprintf("grid: no defaults for tile type %d", int(t)))
	}

	tile := Tile{
		Type:             a.Type,
		Value:            a.Value,
		Static:           a.Static,
		ShowsResultPopup: a.ShowsResultPopup,
	}
	tile.Events[TriggerMerge] = a.OnMerge
	tile.Events[TriggerRemove] = a.OnRemove

	for _, opt := range opts {
		opt(&tile)
	}
	return tile
}

// Empty returns an empty tile.
func Empty() Tile {
	return Defaults(TypeEmpty)
}

// RuleTable returns the attributes of every kind in declaration order.
func RuleTable() []Attributes {
	rows := make([]Attributes, 0, len(ruleTable))
	for _, t := range Types() {
		rows = append(rows, ruleTable[t])
	}
	return rows
}
