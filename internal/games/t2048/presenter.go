package t2048

import (
	"fmt"

	"github.com/vovakirdan/tile-merge/internal/grid"
)

// Handle identifies a view owned by a Presenter. Zero means no view.
type Handle uint64

// Signal reports completion of a presentation step.
type Signal interface {
	Done() bool
}

type doneSignal struct{}

func (doneSignal) Done() bool { return true }

// Done is a signal that is already complete.
var Done Signal = doneSignal{}

// Presenter is the rendering side of the game. The sequencer drives it and
// waits on the signals it returns; it never reads board state from it.
type Presenter interface {
	CreateView(t grid.Tile, index int) Handle
	BindView(h Handle, t grid.Tile)
	DestroyView(h Handle)
	AnimateSlide(h Handle, to int) Signal
	PlayEffect(e grid.Effect, index int) Signal
	ShowPopup(visual string) Signal
	HidePopup() Signal
}

// View is what a presenter knows about one tile view.
type View struct {
	Tile  grid.Tile
	Index int
}

// Latch is a Signal completed by calling Release.
type Latch struct {
	done bool
}

// Done reports whether the latch has been released.
func (l *Latch) Done() bool { return l.done }

// Release completes the latch.
func (l *Latch) Release() { l.done = true }

// InstantPresenter completes every step immediately unless told to hold a
// kind of step, in which case it returns latches released by Release.
// It records every call so tests can assert the presentation sequence.
type InstantPresenter struct {
	HoldSlides  bool
	HoldEffects bool
	HoldPopups  bool

	Calls []string
	Views map[Handle]View

	next    Handle
	latches []*Latch
	popup   string
}

// NewInstantPresenter creates a presenter that completes every step at once.
func NewInstantPresenter() *InstantPresenter {
	return &InstantPresenter{Views: make(map[Handle]View)}
}

func (p *InstantPresenter) record(format string, args ...any) {
	p.Calls = append(p.Calls, fmt.Sprintf(format, args...))
}

func (p *InstantPresenter) signal(hold bool) Signal {
	if !hold {
		return Done
	}
	l := &Latch{}
	p.latches = append(p.latches, l)
	return l
}

// Release completes every outstanding latch.
func (p *InstantPresenter) Release() {
	for _, l := range p.latches {
		l.Release()
	}
	p.latches = nil
}

// Pending returns the number of outstanding latches.
func (p *InstantPresenter) Pending() int {
	return len(p.latches)
}

// PopupVisible returns the visual of the popup on screen, if any.
func (p *InstantPresenter) PopupVisible() (string, bool) {
	return p.popup, p.popup != ""
}

func (p *InstantPresenter) CreateView(t grid.Tile, index int) Handle {
	p.next++
	p.Views[p.next] = View{Tile: t, Index: index}
	p.record("create %d %s@%d", p.next, t, index)
	return p.next
}

func (p *InstantPresenter) BindView(h Handle, t grid.Tile) {
	v := p.Views[h]
	v.Tile = t
	p.Views[h] = v
	p.record("bind %d %s", h, t)
}

func (p *InstantPresenter) DestroyView(h Handle) {
	delete(p.Views, h)
	p.record("destroy %d", h)
}

func (p *InstantPresenter) AnimateSlide(h Handle, to int) Signal {
	v := p.Views[h]
	v.Index = to
	p.Views[h] = v
	p.record("slide %d ->%d", h, to)
	return p.signal(p.HoldSlides)
}

func (p *InstantPresenter) PlayEffect(e grid.Effect, index int) Signal {
	p.record("effect %s:%s@%d", e.Visual, e.Animation, index)
	return p.signal(p.HoldEffects)
}

func (p *InstantPresenter) ShowPopup(visual string) Signal {
	p.popup = visual
	p.record("popup show %s", visual)
	return p.signal(p.HoldPopups)
}

func (p *InstantPresenter) HidePopup() Signal {
	p.popup = ""
	p.record("popup hide")
	return p.signal(p.HoldPopups)
}
