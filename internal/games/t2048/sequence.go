package t2048

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tile-merge/internal/grid"
)

// Phase is a step of the move sequence.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSliding
	PhaseResolving
	PhasePopupActive
	PhaseSpawning
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSliding:
		return "sliding"
	case PhaseResolving:
		return "resolving"
	case PhasePopupActive:
		return "popup"
	case PhaseSpawning:
		return "spawning"
	default:
		return "unknown"
	}
}

// Placement puts a tile on a specific cell at reset.
type Placement struct {
	Type  grid.Type
	Index int
	Value int // Overrides the base value when > 0
}

// SettleFunc is called once a move has fully played out. spawned is the
// index of the new tile, or -1 with err set when no tile could be placed.
type SettleFunc func(res grid.MoveResult, spawned int, err error)

// Sequencer runs moves against the board and plays them through a Presenter.
// Board state is updated as soon as a move is accepted; the phases only gate
// input and spawning on the presenter's completion signals.
type Sequencer struct {
	board     *grid.Board
	presenter Presenter
	logger    *log.Logger
	spawn     func() grid.Tile
	onSettle  SettleFunc

	views [grid.CellCount]Handle // Slot to view lookup; never owns the view

	phase        Phase
	pending      []Signal
	result       grid.MoveResult
	absorbed     []Handle
	popupIndex   int
	popupShowing bool
	spawned      int
	spawnErr     error

	moves   int
	dropped int
}

// SequencerOption configures a Sequencer.
type SequencerOption func(*Sequencer)

// WithLogger sets the logger for move and spawn events.
func WithLogger(l *log.Logger) SequencerOption {
	return func(s *Sequencer) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSpawn sets the tile produced after every successful move.
func WithSpawn(f func() grid.Tile) SequencerOption {
	return func(s *Sequencer) {
		if f != nil {
			s.spawn = f
		}
	}
}

// WithSettle registers a callback for the end of every move.
func WithSettle(f SettleFunc) SequencerOption {
	return func(s *Sequencer) {
		s.onSettle = f
	}
}

// NewSequencer creates an idle sequencer over board.
func NewSequencer(board *grid.Board, p Presenter, opts ...SequencerOption) *Sequencer {
	s := &Sequencer{
		board:     board,
		presenter: p,
		logger:    log.New(io.Discard),
		spawn:     func() grid.Tile { return grid.Defaults(grid.TypeNumber) },
		spawned:   -1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Board returns the board the sequencer mutates.
func (s *Sequencer) Board() *grid.Board { return s.board }

// Phase returns the current phase.
func (s *Sequencer) Phase() Phase { return s.phase }

// Ready reports whether directional input is accepted.
func (s *Sequencer) Ready() bool { return s.phase == PhaseIdle }

// Handle returns the view bound to a cell, or 0.
func (s *Sequencer) Handle(index int) Handle { return s.views[index] }

// LastResult returns the most recent accepted move.
func (s *Sequencer) LastResult() grid.MoveResult { return s.result }

// Moves returns the number of accepted moves since reset.
func (s *Sequencer) Moves() int { return s.moves }

// Dropped returns the number of moves ignored because input was locked.
func (s *Sequencer) Dropped() int { return s.dropped }

// Reset clears the board, places the layout, spawns initial tiles and
// creates a view for every occupied cell.
func (s *Sequencer) Reset(layout []Placement, initial int) error {
	for i, h := range s.views {
		if h != 0 {
			s.presenter.DestroyView(h)
			s.views[i] = 0
		}
	}
	s.board.Clear()
	s.phase = PhaseIdle
	s.pending = nil
	s.absorbed = nil
	s.result = grid.MoveResult{}
	s.popupIndex, s.popupShowing = 0, false
	s.spawned, s.spawnErr = -1, nil
	s.moves, s.dropped = 0, 0

	for _, p := range layout {
		var opts []grid.Override
		if p.Value > 0 {
			opts = append(opts, grid.WithValue(p.Value))
		}
		if err := s.board.Place(p.Index, p.Type, opts...); err != nil {
			return err
		}
	}
	for range initial {
		if _, err := s.place(); err != nil {
			return err
		}
	}

	for i := range grid.CellCount {
		if !s.board.IsEmptyAt(i) && s.views[i] == 0 {
			s.views[i] = s.presenter.CreateView(s.board.At(i), i)
		}
	}
	return nil
}

// place puts a spawn tile in a random empty cell without creating a view.
func (s *Sequencer) place() (int, error) {
	index, err := s.board.RandomEmptyIndex()
	if err != nil {
		return -1, err
	}
	s.board.Set(index, s.spawn())
	return index, nil
}

// Move applies a move in dir and starts playing it.
// Returns false when input is locked or nothing moved.
func (s *Sequencer) Move(dir grid.Direction) bool {
	if s.phase != PhaseIdle {
		s.dropped++
		s.logger.Debug("move dropped", "dir", dir, "phase", s.phase)
		return false
	}

	res := grid.Move(s.board, dir)
	if !res.Moved() {
		s.logger.Debug("move blocked", "dir", dir)
		return false
	}

	s.moves++
	s.result = res
	s.logger.Debug("move",
		"dir", dir,
		"changed", res.ChangedCount(),
		"merges", res.Merges(),
		"removed", len(res.Removed),
	)

	for _, tr := range res.Transitions {
		h := s.views[tr.From]
		s.views[tr.From] = 0
		if h == 0 {
			continue
		}
		s.pending = append(s.pending, s.presenter.AnimateSlide(h, tr.To))
		if tr.Merged {
			s.absorbed = append(s.absorbed, h)
		} else {
			s.views[tr.To] = h
		}
	}

	s.phase = PhaseSliding
	s.advance()
	return true
}

// Update re-checks pending signals and moves to the next phase when they are done.
func (s *Sequencer) Update() {
	s.advance()
}

func (s *Sequencer) advance() {
	for s.phase != PhaseIdle {
		for _, sig := range s.pending {
			if !sig.Done() {
				return
			}
		}
		s.pending = s.pending[:0]

		switch s.phase {
		case PhaseSliding:
			s.resolve()
		case PhaseResolving:
			s.finishResolve()
		case PhasePopupActive:
			s.stepPopup()
		case PhaseSpawning:
			s.settle()
		}
	}
}

// resolve drops absorbed views, rebinds merge results and plays effects.
func (s *Sequencer) resolve() {
	for _, h := range s.absorbed {
		s.presenter.DestroyView(h)
	}
	s.absorbed = s.absorbed[:0]

	for _, tr := range s.result.Transitions {
		if !tr.Merged || s.board.IsEmptyAt(tr.To) {
			continue
		}
		if h := s.views[tr.To]; h != 0 {
			s.presenter.BindView(h, s.board.At(tr.To))
		}
	}

	s.phase = PhaseResolving
	for _, em := range s.result.Emissions {
		s.logger.Debug("effect", "trigger", em.Trigger, "visual", em.Effect.Visual, "cell", em.Index)
		s.pending = append(s.pending, s.presenter.PlayEffect(em.Effect, em.Index))
	}
}

// finishResolve removes swept views and starts the popup or the spawn.
func (s *Sequencer) finishResolve() {
	for _, i := range s.result.Removed {
		if h := s.views[i]; h != 0 {
			s.presenter.DestroyView(h)
			s.views[i] = 0
		}
	}

	if len(s.result.Popups) > 0 {
		s.phase = PhasePopupActive
		s.popupIndex = 0
		s.showPopup()
		return
	}
	s.startSpawn()
}

func (s *Sequencer) showPopup() {
	visual := s.board.At(s.result.Popups[s.popupIndex]).Type.String()
	s.logger.Debug("popup", "visual", visual)
	s.pending = append(s.pending, s.presenter.ShowPopup(visual))
	s.popupShowing = true
}

// stepPopup hides a shown popup, then shows the next one or moves on to spawning.
func (s *Sequencer) stepPopup() {
	if s.popupShowing {
		s.pending = append(s.pending, s.presenter.HidePopup())
		s.popupShowing = false
		return
	}
	s.popupIndex++
	if s.popupIndex < len(s.result.Popups) {
		s.showPopup()
		return
	}
	s.startSpawn()
}

func (s *Sequencer) startSpawn() {
	s.phase = PhaseSpawning
	s.spawned, s.spawnErr = s.place()
	if s.spawnErr != nil {
		s.logger.Warn("spawn failed", "err", s.spawnErr)
		return
	}
	s.views[s.spawned] = s.presenter.CreateView(s.board.At(s.spawned), s.spawned)
	s.logger.Debug("spawn", "cell", s.spawned, "tile", s.board.At(s.spawned))
}

func (s *Sequencer) settle() {
	s.phase = PhaseIdle
	if s.onSettle != nil {
		s.onSettle(s.result, s.spawned, s.spawnErr)
	}
}
