package t2048

import (
	"sort"

	"github.com/vovakirdan/tile-merge/internal/config"
	"github.com/vovakirdan/tile-merge/internal/core"
	"github.com/vovakirdan/tile-merge/internal/grid"
)

// countdown is a Signal that completes after a fixed number of ticks.
type countdown struct {
	left  int
	total int
}

func newCountdown(ticks int) *countdown {
	return &countdown{left: ticks, total: ticks}
}

func (c *countdown) Done() bool { return c.left <= 0 }

func (c *countdown) step() {
	if c.left > 0 {
		c.left--
	}
}

func (c *countdown) finish() { c.left = 0 }

// progress runs 0.0 → 1.0 over the countdown.
func (c *countdown) progress() float64 {
	if c.total <= 0 {
		return 1
	}
	return 1 - float64(c.left)/float64(c.total)
}

type tileView struct {
	tile  grid.Tile
	from  int
	at    int
	slide *countdown
	pop   *countdown // Pop-in for new tiles, pulse for merge results
}

type effectView struct {
	effect grid.Effect
	index  int
	timer  *countdown
}

type popupView struct {
	visual string
	open   *countdown // Bounce in
	show   *countdown // Bounce in plus hold; the ShowPopup signal
	hide   *countdown // Nil until HidePopup
}

// TerminalPresenter animates views on a fixed tick. Game.Step advances it and
// Game.Render draws its sprites.
type TerminalPresenter struct {
	anim    config.AnimationConfig
	tick    uint64
	next    Handle
	views   map[Handle]*tileView
	effects []*effectView
	popup   *popupView
}

// NewTerminalPresenter creates a presenter with the given phase durations.
func NewTerminalPresenter(anim config.AnimationConfig) *TerminalPresenter {
	return &TerminalPresenter{
		anim:  anim,
		views: make(map[Handle]*tileView),
	}
}

func (p *TerminalPresenter) CreateView(t grid.Tile, index int) Handle {
	p.next++
	p.views[p.next] = &tileView{
		tile: t,
		from: index,
		at:   index,
		pop:  newCountdown(p.anim.PopTicks),
	}
	return p.next
}

func (p *TerminalPresenter) BindView(h Handle, t grid.Tile) {
	v, ok := p.views[h]
	if !ok {
		return
	}
	v.tile = t
	v.pop = newCountdown(p.anim.PopTicks)
}

func (p *TerminalPresenter) DestroyView(h Handle) {
	delete(p.views, h)
}

func (p *TerminalPresenter) AnimateSlide(h Handle, to int) Signal {
	v, ok := p.views[h]
	if !ok {
		return Done
	}
	v.from = v.at
	v.at = to
	v.slide = newCountdown(p.anim.SlideTicks)
	return v.slide
}

func (p *TerminalPresenter) PlayEffect(e grid.Effect, index int) Signal {
	fx := &effectView{effect: e, index: index, timer: newCountdown(p.anim.EffectTicks)}
	p.effects = append(p.effects, fx)
	return fx.timer
}

func (p *TerminalPresenter) ShowPopup(visual string) Signal {
	p.popup = &popupView{
		visual: visual,
		open:   newCountdown(p.anim.PopupInTicks),
		show:   newCountdown(p.anim.PopupInTicks + p.anim.PopupHoldTicks),
	}
	return p.popup.show
}

func (p *TerminalPresenter) HidePopup() Signal {
	if p.popup == nil {
		return Done
	}
	p.popup.show.finish()
	hide := newCountdown(p.anim.PopupOutTicks)
	if hide.Done() {
		p.popup = nil
		return hide
	}
	p.popup.hide = hide
	return hide
}

// Dismiss cuts the popup hold short.
func (p *TerminalPresenter) Dismiss() {
	if p.popup != nil && p.popup.hide == nil {
		p.popup.open.finish()
		p.popup.show.finish()
	}
}

// Advance moves every running animation forward by one tick.
func (p *TerminalPresenter) Advance() {
	p.tick++

	for _, v := range p.views {
		if v.slide != nil {
			v.slide.step()
			if v.slide.Done() {
				v.from = v.at
			}
		}
		v.pop.step()
	}

	live := p.effects[:0]
	for _, fx := range p.effects {
		fx.timer.step()
		if !fx.timer.Done() {
			live = append(live, fx)
		}
	}
	p.effects = live

	if p.popup != nil {
		p.popup.open.step()
		p.popup.show.step()
		if p.popup.hide != nil {
			p.popup.hide.step()
			if p.popup.hide.Done() {
				p.popup = nil
			}
		}
	}
}

// Busy reports whether any animation is still running.
func (p *TerminalPresenter) Busy() bool {
	for _, v := range p.views {
		if (v.slide != nil && !v.slide.Done()) || !v.pop.Done() {
			return true
		}
	}
	return len(p.effects) > 0 || p.popup != nil
}

// TileSprite is a view at its current animated position in cell units.
type TileSprite struct {
	Tile    grid.Tile
	Row     float64
	Col     float64
	Popping bool
}

// EffectSprite is an effect being played on a cell.
type EffectSprite struct {
	Effect   grid.Effect
	Index    int
	Progress float64
}

// PopupSprite is the result popup; Open runs 0.0 (closed) to 1.0 (fully open).
type PopupSprite struct {
	Visual string
	Open   float64
}

// Sprites returns all views in creation order.
func (p *TerminalPresenter) Sprites() []TileSprite {
	handles := make([]Handle, 0, len(p.views))
	for h := range p.views {
		handles = append(handles, h)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })

	sprites := make([]TileSprite, 0, len(handles))
	for _, h := range handles {
		v := p.views[h]
		row, col := v.position()
		sprites = append(sprites, TileSprite{
			Tile:    v.tile,
			Row:     row,
			Col:     col,
			Popping: !v.pop.Done(),
		})
	}
	return sprites
}

// Effects returns the effects still playing.
func (p *TerminalPresenter) Effects() []EffectSprite {
	out := make([]EffectSprite, len(p.effects))
	for i, fx := range p.effects {
		out[i] = EffectSprite{Effect: fx.effect, Index: fx.index, Progress: fx.timer.progress()}
	}
	return out
}

// Popup returns the popup on screen, if any.
func (p *TerminalPresenter) Popup() (PopupSprite, bool) {
	if p.popup == nil {
		return PopupSprite{}, false
	}
	open := easeOutQuad(p.popup.open.progress())
	if p.popup.hide != nil {
		open = 1 - p.popup.hide.progress()
	}
	return PopupSprite{Visual: p.popup.visual, Open: open}, true
}

// position interpolates the view between its slide origin and destination.
func (v *tileView) position() (row, col float64) {
	toRow, toCol := grid.RowCol(v.at)
	if v.slide == nil || v.slide.Done() {
		return float64(toRow), float64(toCol)
	}
	fromRow, fromCol := grid.RowCol(v.from)
	t := easeOutQuad(v.slide.progress())
	return core.Lerp(float64(fromRow), float64(toRow), t), core.Lerp(float64(fromCol), float64(toCol), t)
}

// easeOutQuad provides smooth deceleration for animation.
func easeOutQuad(t float64) float64 {
	return t * (2 - t)
}
