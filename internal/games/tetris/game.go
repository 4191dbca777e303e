// Package tetris adapts the rules engine to the fixed-tick terminal platform:
// it maps input frames to engine operations, advances the engine clock once
// per tick and draws engine snapshots into a core.Screen.
package tetris

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// ID is the registry identifier of the game.
const ID = "tetris"

// SoftDropRelease is how long soft drop stays engaged after the last
// soft-drop key event. Terminals report key repeats but never key releases.
const SoftDropRelease = 350 * time.Millisecond

// Settings is the shared configuration every new game starts from.
type Settings struct {
	Config config.TetrisConfig
	Logger *log.Logger // nil discards engine logs
}

// Package-level settings used by the registry factory.
var (
	settingsMu sync.RWMutex
	settings   = Settings{Config: config.DefaultTetrisConfig()}
)

// Configure replaces the settings used by games created through the registry.
// Call it before starting the platform.
func Configure(s Settings) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	settings = s
}

func currentSettings() Settings {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return settings
}

func init() {
	registry.Register(ID, "Tetris", func() registry.Game {
		return New(currentSettings())
	})
}

// Game implements registry.Game on top of the rules engine.
type Game struct {
	cfg    config.TetrisConfig
	logger *log.Logger
	engine *engine.Game

	// Screen dimensions
	screenW int
	screenH int

	tickRate int
	tick     time.Duration
	ticks    uint64

	paused   bool
	softLeft time.Duration // soft drop auto-release countdown
}

// New creates a game using the given settings.
func New(s Settings) *Game {
	logger := s.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Game{
		cfg:    s.Config,
		logger: logger,
		engine: engine.New(logger.WithPrefix("engine")),
	}
}

// OptionsFromConfig converts a gameplay config into validated engine options.
func OptionsFromConfig(cfg config.TetrisConfig) (engine.Options, error) {
	opts := engine.Options{
		FairRandom:     cfg.Randomizer.Fair,
		HoldEnabled:    cfg.Hold.Enabled,
		FallInterval:   time.Duration(cfg.Timing.FallIntervalMS) * time.Millisecond,
		LockDelay:      time.Duration(cfg.Timing.LockDelayMS) * time.Millisecond,
		MaxLockMoves:   cfg.Timing.MaxLockMoves,
		SoftDropFactor: cfg.Timing.SoftDropFactor,
		PreviewDepth:   cfg.Preview.Depth,
		StartLevel:     cfg.Level.Start,
		LevelCap:       cfg.Level.Cap,
		Seed:           cfg.Seed,
	}
	if err := opts.Validate(); err != nil {
		return engine.Options{}, fmt.Errorf("tetris: %w", err)
	}
	return opts, nil
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Tetris"
}

// Reset starts a new game. A non-zero runtime seed overrides the configured one.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	cfg = cfg.Normalized()
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tickRate = cfg.TickRate
	g.tick = time.Second / time.Duration(g.tickRate)
	g.ticks = 0
	g.paused = false
	g.softLeft = 0

	opts, err := OptionsFromConfig(g.cfg)
	if err != nil {
		g.logger.Error("invalid config, using defaults", "err", err)
		opts = engine.DefaultOptions()
	}
	if cfg.Seed != 0 {
		opts.Seed = cfg.Seed
	}

	// Options are validated above, so NewGame cannot fail here.
	if err := g.engine.NewGame(opts); err != nil {
		g.logger.Error("new game", "err", err)
	}
}

// Resize adapts the layout to a new screen size.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
}

// Step applies one tick of input and advances the engine clock by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.engine.GameOver() {
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.ticks++
	before := g.engine.Snapshot()

	if in.Has(core.ActionHold) {
		g.engine.Hold()
	}
	for range in.Count(core.ActionRotateCW) {
		g.engine.RotateCW()
	}
	for range in.Count(core.ActionRotateCCW) {
		g.engine.RotateCCW()
	}
	for range in.Count(core.ActionLeft) {
		g.engine.MoveLeft()
	}
	for range in.Count(core.ActionRight) {
		g.engine.MoveRight()
	}
	g.updateSoftDrop(in.Has(core.ActionSoftDrop))
	if in.Has(core.ActionHardDrop) {
		g.engine.HardDrop()
	}

	g.engine.Advance(g.tick)

	after := g.engine.Snapshot()
	result := core.StepResult{
		State:   g.State(),
		Cleared: after.Lines - before.Lines,
	}
	if after.Awards != before.Awards {
		result.Action = after.LastAction
	}
	return result
}

// updateSoftDrop keeps soft drop engaged while key repeats keep arriving and
// releases it once they stop for SoftDropRelease.
func (g *Game) updateSoftDrop(pressed bool) {
	if pressed {
		if g.softLeft <= 0 {
			g.engine.SoftDropStart()
		}
		g.softLeft = SoftDropRelease
		return
	}
	if g.softLeft <= 0 {
		return
	}
	g.softLeft -= g.tick
	if g.softLeft <= 0 {
		g.softLeft = 0
		g.engine.SoftDropStop()
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	s := g.engine.Snapshot()
	return core.GameState{
		Score:    s.Score,
		Lines:    s.Lines,
		Level:    s.Level,
		Pieces:   s.Pieces,
		Seed:     s.Seed,
		Reason:   s.Reason.String(),
		GameOver: s.GameOver,
		Paused:   g.paused,
	}
}

// Snapshot exposes the engine snapshot for tests and tooling.
func (g *Game) Snapshot() engine.Snapshot {
	return g.engine.Snapshot()
}

// Elapsed returns the game time played so far, excluding pauses.
func (g *Game) Elapsed() time.Duration {
	return g.engine.Now()
}
