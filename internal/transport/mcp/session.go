package mcp

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/tile-merge/internal/config"
	"github.com/vovakirdan/tile-merge/internal/core"
	"github.com/vovakirdan/tile-merge/internal/games/t2048"
	"github.com/vovakirdan/tile-merge/internal/grid"
)

// Agent sessions play on a virtual screen large enough for the board.
const (
	virtualScreenW = 80
	virtualScreenH = 24

	// maxSettleSteps bounds the ticks spent settling one move.
	maxSettleSteps = 64
)

var (
	ErrSessionNotFound = errors.New("mcp: session not found")
	ErrGameFinished    = errors.New("mcp: game is over")
	ErrUnknownMode     = errors.New("mcp: unknown mode")
)

// GameOptions selects how a new session plays.
type GameOptions struct {
	Mode       t2048.Mode
	Level      int // 1-based campaign level, 0 for the first
	Difficulty config.DifficultyPreset
	Seed       int64 // 0 picks a time-based seed
}

// Session is one game driven by tool calls. Animations are disabled, so
// every move settles within the call that made it.
type Session struct {
	ID        string
	Mode      t2048.Mode
	Seed      int64
	CreatedAt time.Time

	mu    sync.Mutex
	game  *t2048.Game
	order uint64 // Creation order within the store
}

// MoveReport is the outcome of one move.
type MoveReport struct {
	Direction    string         `json:"direction"`
	Moved        bool           `json:"moved"`
	Merges       int            `json:"merges"`
	Removed      int            `json:"removed"`
	Popups       int            `json:"popups"`
	LevelCleared bool           `json:"level_cleared"`
	State        t2048.Snapshot `json:"state"`
}

// instant returns cfg with every animation phase finishing immediately.
func instant(cfg config.T2048Config) config.T2048Config {
	cfg.Animation = config.AnimationConfig{}
	return cfg
}

func newSession(base config.T2048Config, opts GameOptions) (*Session, error) {
	var game *t2048.Game
	switch opts.Mode {
	case t2048.ModeCampaign, "":
		game = t2048.New()
		opts.Mode = t2048.ModeCampaign
	case t2048.ModeEndless:
		game = t2048.NewEndless()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, opts.Mode)
	}

	cfg := instant(base)
	config.ApplyT2048Preset(&cfg, opts.Difficulty)
	if opts.Mode == t2048.ModeCampaign && (opts.Level < 0 || opts.Level > len(cfg.Levels)) {
		return nil, fmt.Errorf("mcp: level %d out of range 1-%d", opts.Level, len(cfg.Levels))
	}
	game.Configure(cfg, opts.Level)

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	game.Reset(core.RuntimeConfig{
		ScreenW:  virtualScreenW,
		ScreenH:  virtualScreenH,
		TickRate: 60,
		Seed:     seed,
	})

	return &Session{
		ID:        uuid.NewString(),
		Mode:      opts.Mode,
		Seed:      seed,
		CreatedAt: time.Now(),
		game:      game,
	}, nil
}

// actionOf maps a board direction to the input action that performs it.
func actionOf(d grid.Direction) core.Action {
	switch d {
	case grid.Down:
		return core.ActionDown
	case grid.Left:
		return core.ActionLeft
	case grid.Right:
		return core.ActionRight
	default:
		return core.ActionUp
	}
}

// Move slides the board and steps the game until the move has settled.
func (s *Session) Move(dir grid.Direction) (MoveReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.game.State().GameOver {
		return MoveReport{}, ErrGameFinished
	}

	seq := s.game.Sequencer()
	before := seq.Moves()
	level := s.game.Snapshot().Level

	s.game.Step(core.FrameOf(actionOf(dir)))
	moved := seq.Moves() > before
	res := seq.LastResult()

	cleared := s.game.Snapshot().State == t2048.StateLevelCleared
	for i := 0; i < maxSettleSteps && s.settling(); i++ {
		s.game.Step(core.NewInputFrame())
	}
	snap := s.game.Snapshot()

	report := MoveReport{
		Direction:    dir.String(),
		Moved:        moved,
		LevelCleared: cleared || snap.Level != level || snap.State == t2048.StateWin,
		State:        snap,
	}
	if moved {
		report.Merges = res.Merges()
		report.Removed = len(res.Removed)
		report.Popups = len(res.Popups)
	}
	return report, nil
}

// settling reports whether the game still has work to do before the next move.
func (s *Session) settling() bool {
	return !s.game.Sequencer().Ready() || s.game.Snapshot().State == t2048.StateLevelCleared
}

// Snapshot returns the current game state.
func (s *Session) Snapshot() t2048.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Snapshot()
}

// Board returns the board as text, one row per line.
func (s *Session) Board() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Board().String()
}

// SessionStore keeps the live sessions of one server.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	limit    int
	created  uint64
}

// NewSessionStore creates a store holding at most limit sessions; 0 is unbounded.
func NewSessionStore(limit int) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
		limit:    limit,
	}
}

// Create starts a new session. The oldest session is evicted once the store is full.
func (st *SessionStore) Create(base config.T2048Config, opts GameOptions) (*Session, error) {
	sess, err := newSession(base, opts)
	if err != nil {
		return nil, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if st.limit > 0 && len(st.sessions) >= st.limit {
		st.evictOldest()
	}
	st.created++
	sess.order = st.created
	st.sessions[sess.ID] = sess
	return sess, nil
}

func (st *SessionStore) evictOldest() {
	var oldest *Session
	for _, s := range st.sessions {
		if oldest == nil || s.order < oldest.order {
			oldest = s
		}
	}
	if oldest != nil {
		delete(st.sessions, oldest.ID)
	}
}

// Get returns a session by id.
func (st *SessionStore) Get(id string) (*Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	sess, ok := st.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSessionNotFound, id)
	}
	return sess, nil
}

// Delete ends a session. Deleting an unknown id is an error.
func (st *SessionStore) Delete(id string) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[id]; !ok {
		return fmt.Errorf("%w: %q", ErrSessionNotFound, id)
	}
	delete(st.sessions, id)
	return nil
}

// List returns all sessions, oldest first.
func (st *SessionStore) List() []*Session {
	st.mu.RLock()
	defer st.mu.RUnlock()
	out := make([]*Session, 0, len(st.sessions))
	for _, s := range st.sessions {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].order < out[j].order })
	return out
}

// Len returns the number of live sessions.
func (st *SessionStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
