package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tile-merge/internal/core"
)

func TestSwipeDecoder(t *testing.T) {
	t0 := time.Unix(1000, 0)

	tests := []struct {
		name    string
		dx, dy  int
		elapsed time.Duration
		want    core.Action
		ok      bool
	}{
		{"right", 12, 0, 200 * time.Millisecond, core.ActionRight, true},
		{"left", -12, 1, 200 * time.Millisecond, core.ActionLeft, true},
		{"down", 0, 6, 200 * time.Millisecond, core.ActionDown, true},
		{"up", 1, -6, 200 * time.Millisecond, core.ActionUp, true},
		{"too short", 10, 0, 200 * time.Millisecond, core.ActionNone, false},
		{"too slow", 12, 0, time.Second, core.ActionNone, false},
		{"diagonal", 10, 5, 200 * time.Millisecond, core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d SwipeDecoder
			d.Press(40, 12, t0)
			got, ok := d.Release(40+tt.dx, 12+tt.dy, t0.Add(tt.elapsed))
			if got != tt.want || ok != tt.ok {
				t.Errorf("Release(%+d,%+d) = %v, %v; want %v, %v", tt.dx, tt.dy, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestSwipeReleaseWithoutPress(t *testing.T) {
	var d SwipeDecoder
	if _, ok := d.Release(50, 10, time.Now()); ok {
		t.Error("Release without Press should not decode a swipe")
	}
}

func TestSwipeHandleMouseMsg(t *testing.T) {
	var d SwipeDecoder
	t0 := time.Unix(1000, 0)

	press := tea.MouseMsg{X: 10, Y: 5, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}
	if _, ok := d.Handle(press, t0); ok {
		t.Fatal("press alone should not decode")
	}

	release := tea.MouseMsg{X: 30, Y: 5, Button: tea.MouseButtonNone, Action: tea.MouseActionRelease}
	got, ok := d.Handle(release, t0.Add(100*time.Millisecond))
	if !ok || got != core.ActionRight {
		t.Errorf("Handle(release) = %v, %v; want Right", got, ok)
	}

	// Right-button drags are ignored
	d.Handle(tea.MouseMsg{X: 10, Y: 5, Button: tea.MouseButtonRight, Action: tea.MouseActionPress}, t0)
	if _, ok := d.Handle(release, t0.Add(100*time.Millisecond)); ok {
		t.Error("right-button drag should not decode")
	}
}
