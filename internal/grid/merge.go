package grid

import "fmt"

// MergeRule is one entry of the merge precedence list.
type MergeRule struct {
	Name        string
	Description string
	Allowed     bool

	match   func(a, b Tile) bool
	resolve func(target, source Tile) Tile
}

// mergeRules is evaluated top to bottom; the first matching rule wins.
var mergeRules = []MergeRule{
	{
		Name:        "brick+bomb",
		Description: "a bomb defuses a brick; both leave the board",
		Allowed:     true,
		match:       pairOf(TypeBrick, TypeBomb),
		resolve: func(target, source Tile) Tile {
			brick := pick(target, source, TypeBrick)
			brick.PendingRemoval = true
			return brick
		},
	},
	{
		Name:        "bomb+bomb",
		Description: "bombs never stack",
		Allowed:     false,
		match:       pairOf(TypeBomb, TypeBomb),
	},
	{
		Name:        "placeholder",
		Description: "placeholders block every merge",
		Allowed:     false,
		match: func(a, b Tile) bool {
			return a.Type == TypePlaceholder || b.Type == TypePlaceholder
		},
	},
	{
		Name:        "key+chest",
		Description: "a key unlocks a chest, which becomes a bomb",
		Allowed:     true,
		match:       pairOf(TypeKey, TypeChest),
		resolve: func(target, source Tile) Tile {
			return Defaults(TypeBomb)
		},
	},
	{
		Name:        "cat+number",
		Description: "a number lowers the cat counter by one; the cat leaves at zero",
		Allowed:     true,
		match:       pairOf(TypeCat, TypeNumber),
		resolve: func(target, source Tile) Tile {
			cat := pick(target, source, TypeCat)
			cat.Value--
			if cat.Value <= 0 {
				cat.Value = 0
				cat.PendingRemoval = true
			}
			return cat
		},
	},
	{
		Name:        "same",
		Description: "equal type and value double",
		Allowed:     true,
		match: func(a, b Tile) bool {
			return a.Type == b.Type && a.Value == b.Value
		},
		resolve: func(target, source Tile) Tile {
			target.Value *= 2
			return target
		},
	},
}

// MergeRules returns the merge precedence list for display.
func MergeRules() []MergeRule {
	rules := make([]MergeRule, len(mergeRules))
	copy(rules, mergeRules)
	return rules
}

// pairOf matches the two kinds in either order.
func pairOf(x, y Type) func(a, b Tile) bool {
	return func(a, b Tile) bool {
		return (a.Type == x && b.Type == y) || (a.Type == y && b.Type == x)
	}
}

// pick returns whichever of a, b has kind t, preferring a.
func pick(a, b Tile, t Type) Tile {
	if a.Type == t {
		return a
	}
	return b
}

// ruleFor returns the first rule matching the pair.
func ruleFor(a, b Tile) (MergeRule, bool) {
	for _, r := range mergeRules {
		if r.match(a, b) {
			return r, true
		}
	}
	return MergeRule{}, false
}

// CanMerge reports whether a and b may combine.
// Empty tiles and tiles already consumed this move never merge.
func CanMerge(a, b Tile) bool {
	if a.IsEmpty() || b.IsEmpty() {
		return false
	}
	if a.Consumed() || b.Consumed() {
		return false
	}
	r, ok := ruleFor(a, b)
	return ok && r.Allowed
}

// Resolve combines source into target and returns the target slot's new content.
// The result keeps the target's identity and is marked merged for the rest of
// the move. Resolving a pair CanMerge rejects is a programming error and panics.
func Resolve(target, source Tile) Tile {
	if !CanMerge(target, source) {
		panic(fmt.Sprintf("grid: cannot merge %s into %s", source, target))
	}
	r, _ := ruleFor(target, source)

	result := r.resolve(target, source)
	result.ID = target.ID
	result.Merged = true
	return result
}
