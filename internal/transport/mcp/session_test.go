package mcp

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tile-merge/internal/config"
	"github.com/vovakirdan/tile-merge/internal/games/t2048"
	"github.com/vovakirdan/tile-merge/internal/grid"
)

// pairConfig starts every level with two 2s in the top-left corner so a
// single left move reaches a target of 4.
func pairConfig(levels int) config.T2048Config {
	cfg := config.DefaultT2048Config()
	cfg.Board.InitialTiles = 0
	cfg.Levels = nil
	for range levels {
		cfg.Levels = append(cfg.Levels, config.LevelConfig{
			Name:   "Pair",
			Target: 4,
			Layout: []config.TilePlacement{
				{Tile: "number", Row: 0, Col: 0, Value: 2},
				{Tile: "number", Row: 0, Col: 1, Value: 2},
			},
		})
	}
	return cfg
}

func TestNewSessionDefaults(t *testing.T) {
	store := NewSessionStore(0)
	sess, err := store.Create(config.DefaultT2048Config(), GameOptions{Seed: 7})
	require.NoError(t, err)

	assert.Equal(t, t2048.ModeCampaign, sess.Mode)
	assert.NotEmpty(t, sess.ID)

	snap := sess.Snapshot()
	assert.Equal(t, 1, snap.Level)
	assert.Equal(t, 64, snap.Target)
	assert.Equal(t, t2048.StatePlaying, snap.State)
}

func TestNewSessionRejectsBadOptions(t *testing.T) {
	store := NewSessionStore(0)

	_, err := store.Create(config.DefaultT2048Config(), GameOptions{Mode: "arcade"})
	assert.ErrorIs(t, err, ErrUnknownMode)

	_, err = store.Create(config.DefaultT2048Config(), GameOptions{Level: 99})
	assert.Error(t, err)

	assert.Zero(t, store.Len())
}

func TestSessionStartLevel(t *testing.T) {
	store := NewSessionStore(0)
	sess, err := store.Create(config.DefaultT2048Config(), GameOptions{Level: 2, Seed: 1})
	require.NoError(t, err)

	snap := sess.Snapshot()
	assert.Equal(t, 2, snap.Level)
	assert.Equal(t, "brick", snap.Board[grid.Index(1, 1)].Type)
}

func TestSessionMoveSettles(t *testing.T) {
	store := NewSessionStore(0)
	sess, err := store.Create(config.DefaultT2048Config(), GameOptions{Mode: t2048.ModeEndless, Seed: 3})
	require.NoError(t, err)

	for _, dir := range []grid.Direction{grid.Left, grid.Up, grid.Right, grid.Down} {
		report, err := sess.Move(dir)
		require.NoError(t, err, "Move(%s)", dir)
		assert.Equal(t, t2048.PhaseIdle.String(), report.State.Phase, "Move(%s) phase", dir)
		assert.Equal(t, dir.String(), report.Direction)
	}
}

func TestSessionMoveClearsLevel(t *testing.T) {
	store := NewSessionStore(0)
	sess, err := store.Create(pairConfig(2), GameOptions{Seed: 5})
	require.NoError(t, err)

	report, err := sess.Move(grid.Left)
	require.NoError(t, err)

	assert.True(t, report.Moved)
	assert.Equal(t, 1, report.Merges)
	assert.True(t, report.LevelCleared)
	assert.Equal(t, 2, report.State.Level)
	assert.Equal(t, t2048.StatePlaying, report.State.State)
}

func TestSessionFinishedRejectsMoves(t *testing.T) {
	store := NewSessionStore(0)
	sess, err := store.Create(pairConfig(1), GameOptions{Seed: 5})
	require.NoError(t, err)

	report, err := sess.Move(grid.Left)
	require.NoError(t, err)
	require.Equal(t, t2048.StateWin, report.State.State)

	_, err = sess.Move(grid.Right)
	assert.ErrorIs(t, err, ErrGameFinished)
}

func TestSessionStoreEvictsOldest(t *testing.T) {
	store := NewSessionStore(2)
	cfg := config.DefaultT2048Config()

	first, err := store.Create(cfg, GameOptions{Seed: 1})
	require.NoError(t, err)
	second, err := store.Create(cfg, GameOptions{Seed: 2})
	require.NoError(t, err)
	third, err := store.Create(cfg, GameOptions{Seed: 3})
	require.NoError(t, err)

	require.Equal(t, 2, store.Len())

	_, err = store.Get(first.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	list := store.List()
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, third.ID, list[1].ID)
}

func TestSessionStoreDelete(t *testing.T) {
	store := NewSessionStore(0)
	sess, err := store.Create(config.DefaultT2048Config(), GameOptions{Seed: 1})
	require.NoError(t, err)

	require.NoError(t, store.Delete(sess.ID))
	assert.ErrorIs(t, store.Delete(sess.ID), ErrSessionNotFound)
	assert.Empty(t, store.List())
}

func TestSessionStoreConcurrentCreate(t *testing.T) {
	store := NewSessionStore(0)
	cfg := config.DefaultT2048Config()

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := range workers {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			sess, err := store.Create(cfg, GameOptions{Seed: seed})
			if err != nil {
				errs <- err
				return
			}
			if _, err := sess.Move(grid.Left); err != nil {
				errs <- err
			}
		}(int64(i + 1))
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, workers, store.Len())
	for _, sess := range store.List() {
		assert.Equal(t, 1, sess.Snapshot().Level)
	}
}
