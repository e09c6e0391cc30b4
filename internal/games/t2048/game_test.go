package t2048

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tile-merge/internal/config"
	"github.com/vovakirdan/tile-merge/internal/core"
	"github.com/vovakirdan/tile-merge/internal/grid"
)

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     seed,
	}
}

// instantConfig plays every move out within the tick it is made.
func instantConfig(levels ...config.LevelConfig) config.T2048Config {
	cfg := config.DefaultT2048Config()
	cfg.Animation = config.AnimationConfig{LevelClearTicks: 2}
	if len(levels) > 0 {
		cfg.Levels = levels
	}
	return cfg
}

func press(g *Game, a core.Action) core.StepResult {
	return g.Step(core.FrameOf(a))
}

func TestGameRegistered(t *testing.T) {
	g := New()
	if g.ID() != "2048" || g.Title() != "2048" {
		t.Errorf("campaign ID/Title = %q/%q", g.ID(), g.Title())
	}
	e := NewEndless()
	if e.ID() != "2048_endless" {
		t.Errorf("endless ID = %q, want 2048_endless", e.ID())
	}
}

func TestResetPlacesInitialTiles(t *testing.T) {
	g := New()
	g.ResetWithConfig(testRuntime(1), instantConfig())

	if got := g.Board().Count(); got != 2 {
		t.Errorf("Count() after reset = %d, want 2", got)
	}
	if g.Sequencer().Phase() != PhaseIdle {
		t.Errorf("Phase() = %s, want idle", g.Sequencer().Phase())
	}
	if len(g.presenter.Sprites()) != 2 {
		t.Errorf("sprites = %d, want 2", len(g.presenter.Sprites()))
	}
}

func TestResetPlacesLevelLayout(t *testing.T) {
	g := New()
	g.ResetWithConfig(testRuntime(1), instantConfig(config.LevelConfig{
		Name: "Layout", Target: 64,
		Layout: []config.TilePlacement{
			{Tile: "brick", Row: 1, Col: 1},
			{Tile: "cat", Row: 0, Col: 3, Value: 4},
		},
	}))

	b := g.Board()
	if b.At(grid.Index(1, 1)).Type != grid.TypeBrick {
		t.Errorf("cell (1,1) = %s, want brick", b.At(grid.Index(1, 1)))
	}
	if cat := b.At(grid.Index(0, 3)); cat.Type != grid.TypeCat || cat.Value != 4 {
		t.Errorf("cell (0,3) = %s, want cat(4)", cat)
	}
	if b.Count() != 4 {
		t.Errorf("Count() = %d, want 4 (layout plus initial tiles)", b.Count())
	}
}

func TestDeterministicPlay(t *testing.T) {
	play := func() Snapshot {
		g := NewEndless()
		g.ResetWithConfig(testRuntime(12345), instantConfig())
		for _, a := range []core.Action{core.ActionLeft, core.ActionUp, core.ActionRight, core.ActionDown, core.ActionLeft} {
			press(g, a)
		}
		return g.Snapshot()
	}

	snap1 := play()
	snap2 := play()
	if snap1 != snap2 {
		t.Errorf("Same seed should produce same game:\n%+v\nvs\n%+v", snap1, snap2)
	}
}

func TestNoChangeNoSpawn(t *testing.T) {
	g := NewEndless()
	g.ResetWithConfig(testRuntime(42), instantConfig())
	if err := g.seq.Reset([]Placement{{Type: grid.TypeNumber, Index: 0}}, 0); err != nil {
		t.Fatal(err)
	}

	press(g, core.ActionLeft)
	press(g, core.ActionUp)

	if g.Board().Count() != 1 {
		t.Errorf("blocked move spawned a tile: Count() = %d", g.Board().Count())
	}
	if g.seq.Moves() != 0 {
		t.Errorf("Moves() = %d, want 0", g.seq.Moves())
	}
}

func TestCampaignProgression(t *testing.T) {
	g := New()
	g.ResetWithConfig(testRuntime(42), instantConfig(
		config.LevelConfig{Name: "One", Target: 8},
		config.LevelConfig{Name: "Two", Target: 16, Layout: []config.TilePlacement{{Tile: "brick", Row: 3, Col: 3}}},
	))
	if err := g.seq.Reset([]Placement{
		{Type: grid.TypeNumber, Index: 0, Value: 4},
		{Type: grid.TypeNumber, Index: 3, Value: 4},
	}, 0); err != nil {
		t.Fatal(err)
	}

	res := press(g, core.ActionLeft)
	if !g.levelCleared {
		t.Fatal("Should detect level cleared when target tile exists")
	}
	if !res.State.Paused {
		t.Error("Level cleared should pause input")
	}

	// Input during the level clear pause is ignored
	moves := g.seq.Moves()
	press(g, core.ActionRight)
	if g.seq.Moves() != moves {
		t.Error("Move accepted during level clear")
	}
	g.Step(core.NewInputFrame())

	if g.levelIndex != 1 {
		t.Errorf("Should advance to level 2, got level %d", g.levelIndex+1)
	}
	if g.currentTarget != 16 {
		t.Errorf("currentTarget = %d, want 16", g.currentTarget)
	}
	if g.Board().CountType(grid.TypeBrick) != 1 {
		t.Error("Level 2 layout should be placed on a fresh board")
	}
}

func TestCampaignWin(t *testing.T) {
	g := New()
	g.ResetWithConfig(testRuntime(42), instantConfig(config.LevelConfig{Name: "Only", Target: 8}))
	if err := g.seq.Reset([]Placement{
		{Type: grid.TypeNumber, Index: 0, Value: 4},
		{Type: grid.TypeNumber, Index: 1, Value: 4},
	}, 0); err != nil {
		t.Fatal(err)
	}

	press(g, core.ActionLeft)
	g.Step(core.NewInputFrame())
	res := g.Step(core.NewInputFrame())

	if !res.State.Won || !res.State.GameOver {
		t.Errorf("State = %+v, want won and over", res.State)
	}
	if g.Snapshot().State != StateWin {
		t.Errorf("Snapshot State = %s, want win", g.Snapshot().State)
	}
}

func TestEndlessModeNoWin(t *testing.T) {
	g := NewEndless()
	g.ResetWithConfig(testRuntime(42), instantConfig())
	if err := g.seq.Reset([]Placement{
		{Type: grid.TypeNumber, Index: 0, Value: 4096},
		{Type: grid.TypeNumber, Index: 3, Value: 4096},
	}, 0); err != nil {
		t.Fatal(err)
	}

	press(g, core.ActionLeft)

	if g.levelCleared {
		t.Error("Endless mode should not have level cleared")
	}
	if g.won {
		t.Error("Endless mode should not have win state")
	}
	if got := g.Snapshot().MaxTile; got != 8192 {
		t.Errorf("MaxTile = %d, want 8192", got)
	}
}

func TestGameOver(t *testing.T) {
	g := New()
	g.ResetWithConfig(testRuntime(42), instantConfig(config.LevelConfig{Name: "Stuck", Target: 2048, Spawn4: 1}))

	// Only cells 0 and 1 are open; the spawn after the slide fills the board with 2, 4
	layout := []Placement{{Type: grid.TypeNumber, Index: 1}}
	for i := 2; i < grid.CellCount; i++ {
		layout = append(layout, Placement{Type: grid.TypePlaceholder, Index: i})
	}
	if err := g.seq.Reset(layout, 0); err != nil {
		t.Fatal(err)
	}

	res := press(g, core.ActionLeft)
	if !res.State.GameOver {
		t.Fatalf("State = %+v, want game over\n%s", res.State, g.Board())
	}
	if res.State.Won {
		t.Error("Game over should not be a win")
	}

	// Moves after game over are ignored
	press(g, core.ActionRight)
	if g.seq.Moves() != 1 {
		t.Errorf("Moves() = %d, want 1", g.seq.Moves())
	}
}

func TestPause(t *testing.T) {
	g := NewEndless()
	g.ResetWithConfig(testRuntime(42), instantConfig())
	before := g.Snapshot().Board

	res := press(g, core.ActionPause)
	if !res.State.Paused {
		t.Fatal("Pause should pause")
	}
	for _, a := range []core.Action{core.ActionLeft, core.ActionRight, core.ActionUp, core.ActionDown} {
		press(g, a)
	}
	if g.Snapshot().Board != before {
		t.Error("Board changed while paused")
	}

	res = press(g, core.ActionPause)
	if res.State.Paused {
		t.Error("Second pause should resume")
	}
}

func TestPopupBlocksUntilDismissed(t *testing.T) {
	cfg := instantConfig(config.LevelConfig{Name: "Chest", Target: 2048})
	cfg.Animation.PopupHoldTicks = 1000
	g := New()
	g.ResetWithConfig(testRuntime(7), cfg)
	if err := g.seq.Reset([]Placement{
		{Type: grid.TypeChest, Index: 0},
		{Type: grid.TypeKey, Index: 3},
	}, 0); err != nil {
		t.Fatal(err)
	}

	press(g, core.ActionLeft)
	if g.seq.Phase() != PhasePopupActive {
		t.Fatalf("Phase() = %s, want popup", g.seq.Phase())
	}
	if _, ok := g.presenter.Popup(); !ok {
		t.Error("popup should be on screen")
	}

	press(g, core.ActionDown)
	if g.seq.Dropped() != 1 {
		t.Errorf("Dropped() = %d, want 1", g.seq.Dropped())
	}

	press(g, core.ActionConfirm)
	if g.seq.Phase() != PhaseIdle {
		t.Errorf("Phase() after confirm = %s, want idle", g.seq.Phase())
	}
	if g.Board().CountType(grid.TypeBomb) != 1 {
		t.Error("chest should have become a bomb")
	}
	if g.Board().Count() != 2 {
		t.Errorf("Count() = %d, want bomb plus spawn", g.Board().Count())
	}
}

func TestScreenTooSmall(t *testing.T) {
	g := New()
	rc := testRuntime(1)
	rc.ScreenW = 20
	g.ResetWithConfig(rc, instantConfig())

	res := press(g, core.ActionLeft)
	if !res.State.Paused {
		t.Error("Too small screen should pause")
	}
	if g.Snapshot().State != StatePausedSmall {
		t.Errorf("Snapshot State = %s, want paused_small_window", g.Snapshot().State)
	}

	screen := core.NewScreen(20, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("Render should show the too small message")
	}
}

func TestSnapshot(t *testing.T) {
	g := New()
	g.ResetWithConfig(testRuntime(42), instantConfig())

	snap := g.Snapshot()

	if snap.Mode != "campaign" {
		t.Errorf("Snapshot Mode = %s, want campaign", snap.Mode)
	}
	if snap.Level != 1 {
		t.Errorf("Snapshot Level = %d, want 1", snap.Level)
	}
	if snap.Target != 64 {
		t.Errorf("Snapshot Target = %d, want 64", snap.Target)
	}
	if snap.State != StatePlaying {
		t.Errorf("Snapshot State = %s, want playing", snap.State)
	}
	if snap.Phase != "idle" {
		t.Errorf("Snapshot Phase = %s, want idle", snap.Phase)
	}

	empty := 0
	for _, row := range snap.Rows() {
		for _, c := range row {
			if c.Type == "empty" {
				empty++
			}
		}
	}
	if empty != grid.CellCount-2 {
		t.Errorf("empty cells = %d, want %d", empty, grid.CellCount-2)
	}
}

func TestRender(t *testing.T) {
	g := New()
	g.ResetWithConfig(testRuntime(42), instantConfig(config.LevelConfig{
		Name: "Render", Target: 64,
		Layout: []config.TilePlacement{
			{Tile: "brick", Row: 0, Col: 0},
			{Tile: "cat", Row: 3, Col: 3, Value: 3},
		},
	}))

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"2048", "Level 1/1", "Target: 64", "Render", "▓▓▓▓▓▓", "=^.^=", "x3", "┌", "┘"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render output missing %q", want)
		}
	}
}

func TestLoadLevelsDefault(t *testing.T) {
	levels := LoadLevels()
	if len(levels) == 0 {
		t.Fatal("LoadLevels() returned no levels")
	}
	for i, lvl := range levels {
		if lvl.ID != i+1 {
			t.Errorf("level %d ID = %d", i, lvl.ID)
		}
		if lvl.Target <= 0 {
			t.Errorf("level %q Target = %d", lvl.Name, lvl.Target)
		}
	}
	if names := LevelNames(levels); names[0] != levels[0].Name {
		t.Errorf("LevelNames()[0] = %q, want %q", names[0], levels[0].Name)
	}
}

func TestLevelSpecials(t *testing.T) {
	lvl := Level{Layout: []Placement{
		{Type: grid.TypeBrick, Index: 0},
		{Type: grid.TypeCat, Index: 3, Value: 5},
	}}
	if got := lvl.Specials(); got != "brick, cat(5)" {
		t.Errorf("Specials() = %q, want %q", got, "brick, cat(5)")
	}
	if got := (Level{}).Specials(); got != "-" {
		t.Errorf("empty Specials() = %q, want -", got)
	}
}

func TestLevelsFromConfigRejectsUnknownTile(t *testing.T) {
	cfg := config.T2048Config{Levels: []config.LevelConfig{{
		Name: "Bad", Target: 8,
		Layout: []config.TilePlacement{{Tile: "dragon"}},
	}}}
	if _, err := LevelsFromConfig(cfg); err == nil {
		t.Error("LevelsFromConfig should reject unknown tile kinds")
	}
}

func TestStartLevel(t *testing.T) {
	SetStartLevel(2)
	defer SetStartLevel(0)

	g := New()
	g.ResetWithConfig(testRuntime(1), instantConfig(
		config.LevelConfig{Name: "One", Target: 8},
		config.LevelConfig{Name: "Two", Target: 16},
	))
	if g.Level().Name != "Two" {
		t.Errorf("Level() = %q, want Two", g.Level().Name)
	}
	if GetStartLevel() != 0 {
		t.Error("start level should be consumed by reset")
	}
}

func TestConfiguredGameIgnoresStartLevelSetting(t *testing.T) {
	SetStartLevel(2)
	defer SetStartLevel(0)

	g := New()
	g.Configure(instantConfig(
		config.LevelConfig{Name: "One", Target: 8},
		config.LevelConfig{Name: "Two", Target: 16},
	), 0)
	g.Reset(testRuntime(1))

	if g.Level().Name != "One" {
		t.Errorf("Level() = %q, want One", g.Level().Name)
	}
	if GetStartLevel() != 2 {
		t.Errorf("GetStartLevel() = %d, want 2 (left for unpinned games)", GetStartLevel())
	}
}
