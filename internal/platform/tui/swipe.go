package tui

import (
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tile-merge/internal/core"
)

// Swipe thresholds.
const (
	swipeMinMagnitude = 20.0
	swipeMaxDuration  = time.Second
	swipeDominance    = 0.8

	// A terminal cell is about twice as tall as it is wide; distances are
	// measured in units of half a column so a row counts as four.
	unitsPerColumn = 2.0
	unitsPerRow    = 4.0
)

// SwipeDecoder turns a mouse press/release pair into a direction.
type SwipeDecoder struct {
	pressed bool
	x, y    int
	at      time.Time
}

// Press records the start of a gesture.
func (d *SwipeDecoder) Press(x, y int, at time.Time) {
	d.pressed = true
	d.x, d.y = x, y
	d.at = at
}

// Release ends a gesture. It returns a direction when the drag was long and
// quick enough and clearly along one axis.
func (d *SwipeDecoder) Release(x, y int, at time.Time) (core.Action, bool) {
	if !d.pressed {
		return core.ActionNone, false
	}
	d.pressed = false

	if at.Sub(d.at) >= swipeMaxDuration {
		return core.ActionNone, false
	}

	dx := float64(x-d.x) * unitsPerColumn
	dy := float64(y-d.y) * unitsPerRow
	magnitude := math.Hypot(dx, dy)
	if magnitude <= swipeMinMagnitude {
		return core.ActionNone, false
	}

	nx, ny := dx/magnitude, dy/magnitude
	switch {
	case nx > swipeDominance:
		return core.ActionRight, true
	case nx < -swipeDominance:
		return core.ActionLeft, true
	case ny > swipeDominance:
		return core.ActionDown, true
	case ny < -swipeDominance:
		return core.ActionUp, true
	}
	return core.ActionNone, false
}

// Handle feeds a Bubble Tea mouse message to the decoder.
func (d *SwipeDecoder) Handle(msg tea.MouseMsg, at time.Time) (core.Action, bool) {
	if msg.Button != tea.MouseButtonLeft && msg.Action != tea.MouseActionRelease {
		return core.ActionNone, false
	}
	switch msg.Action {
	case tea.MouseActionPress:
		d.Press(msg.X, msg.Y, at)
	case tea.MouseActionRelease:
		return d.Release(msg.X, msg.Y, at)
	}
	return core.ActionNone, false
}
