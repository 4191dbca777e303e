package tetris

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

func newTestGame(t *testing.T, seed int64) *Game {
	t.Helper()
	g := New(Settings{Config: config.DefaultTetrisConfig()})
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed})
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestRegistered(t *testing.T) {
	if !registry.Exists(ID) {
		t.Fatalf("game %q not registered", ID)
	}
	g, err := registry.Create(ID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.Title() != "Tetris" {
		t.Errorf("Title = %q", g.Title())
	}
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.DefaultTetrisConfig()
	cfg.Timing.FallIntervalMS = 800
	cfg.Timing.LockDelayMS = 300
	cfg.Seed = 99

	opts, err := OptionsFromConfig(cfg)
	if err != nil {
		t.Fatalf("OptionsFromConfig: %v", err)
	}
	if opts.FallInterval != 800*time.Millisecond {
		t.Errorf("FallInterval = %s", opts.FallInterval)
	}
	if opts.LockDelay != 300*time.Millisecond {
		t.Errorf("LockDelay = %s", opts.LockDelay)
	}
	if opts.Seed != 99 {
		t.Errorf("Seed = %d", opts.Seed)
	}

	cfg.Preview.Depth = 0
	if _, err := OptionsFromConfig(cfg); err == nil {
		t.Error("expected error for zero preview depth")
	}
}

func TestResetInvalidConfigFallsBack(t *testing.T) {
	cfg := config.DefaultTetrisConfig()
	cfg.Timing.LockDelayMS = 0
	g := New(Settings{Config: cfg})
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 5})

	s := g.Snapshot()
	if s.LockDelay != engine.DefaultOptions().LockDelay {
		t.Errorf("LockDelay = %s, want default", s.LockDelay)
	}
	if !s.HasActive {
		t.Error("expected a spawned piece")
	}
}

func TestResetSeedOverride(t *testing.T) {
	a := newTestGame(t, 7)
	b := newTestGame(t, 7)

	if a.State().Seed != 7 {
		t.Errorf("Seed = %d, want 7", a.State().Seed)
	}
	sa, sb := a.Snapshot(), b.Snapshot()
	if sa.Active.Kind != sb.Active.Kind {
		t.Errorf("active kinds differ: %s vs %s", sa.Active.Kind, sb.Active.Kind)
	}
	for i := range sa.Next {
		if sa.Next[i] != sb.Next[i] {
			t.Fatalf("next[%d] differs: %s vs %s", i, sa.Next[i], sb.Next[i])
		}
	}
}

func TestStepHardDrop(t *testing.T) {
	g := newTestGame(t, 1)

	res := g.Step(frame(core.ActionHardDrop))
	if res.State.Pieces != 2 {
		t.Errorf("Pieces = %d, want 2", res.State.Pieces)
	}
	if res.State.Score <= 0 {
		t.Errorf("Score = %d, want hard drop points", res.State.Score)
	}
	if res.Cleared != 0 || res.Action != "" {
		t.Errorf("unexpected clear: %d %q", res.Cleared, res.Action)
	}
}

func TestStepHold(t *testing.T) {
	g := newTestGame(t, 3)
	first := g.Snapshot().Active.Kind

	g.Step(frame(core.ActionHold))
	s := g.Snapshot()
	if s.Hold != first {
		t.Errorf("Hold = %s, want %s", s.Hold, first)
	}
	if !s.HoldUsed {
		t.Error("expected hold to be used for this spawn")
	}
}

func TestStepMovesEveryRepeat(t *testing.T) {
	g := newTestGame(t, 11)
	startX := g.Snapshot().Active.Center.X

	in := core.NewInputFrame()
	in.Set(core.ActionLeft)
	in.Set(core.ActionLeft)
	g.Step(in)

	if got := g.Snapshot().Active.Center.X; got != startX-2 {
		t.Errorf("Center.X = %d, want %d", got, startX-2)
	}
}

func TestPauseFreezesGame(t *testing.T) {
	g := newTestGame(t, 1)

	res := g.Step(frame(core.ActionPause))
	if !res.State.Paused {
		t.Fatal("expected paused")
	}

	before := g.Snapshot()
	for range 120 {
		g.Step(frame(core.ActionHardDrop))
	}
	after := g.Snapshot()
	if after.Pieces != before.Pieces || after.Active.Center != before.Active.Center {
		t.Error("game changed while paused")
	}
	if g.Elapsed() != 0 {
		t.Errorf("Elapsed = %s, want 0 while paused", g.Elapsed())
	}

	res = g.Step(frame(core.ActionPause))
	if res.State.Paused {
		t.Error("expected resumed")
	}
}

func TestSoftDropReleasesWithoutRepeats(t *testing.T) {
	g := newTestGame(t, 1)

	g.Step(frame(core.ActionSoftDrop))
	for range 40 {
		g.Step(core.NewInputFrame())
	}
	scored := g.State().Score
	if scored <= 0 {
		t.Fatalf("Score = %d, want soft drop points", scored)
	}

	for range 30 {
		g.Step(core.NewInputFrame())
	}
	if got := g.State().Score; got != scored {
		t.Errorf("Score = %d after release, want %d", got, scored)
	}
}

func TestGameOverStopsSteps(t *testing.T) {
	g := newTestGame(t, 1)

	for range 200 {
		if g.State().GameOver {
			break
		}
		g.Step(frame(core.ActionHardDrop))
	}
	st := g.State()
	if !st.GameOver {
		t.Fatal("expected game over from stacking in the middle")
	}
	if st.Reason == "" {
		t.Error("expected a game over reason")
	}

	res := g.Step(frame(core.ActionHardDrop))
	if res.State.Pieces != st.Pieces {
		t.Error("step after game over changed the game")
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Error("missing game over overlay")
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, 1)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	for _, want := range []string{"TETRIS", "HOLD", "NEXT", "SCORE", "LEVEL", "LINES", "██"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}

	g.Step(frame(core.ActionPause))
	g.Render(screen)
	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("missing pause overlay")
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := newTestGame(t, 1)
	g.Resize(30, 10)

	screen := core.NewScreen(30, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("expected too-small message")
	}
}

func TestWrap(t *testing.T) {
	got := wrap("Back-to-Back T-Spin Double", 12)
	want := []string{"Back-to-Back", "T-Spin", "Double"}
	if len(got) != len(want) {
		t.Fatalf("wrap = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}
