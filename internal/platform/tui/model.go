package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// helpHeight is the number of rows below the game reserved for key hints.
const helpHeight = 1

// LocalPlayer is the player name recorded for games played without SSH.
const LocalPlayer = "local"

// elapsedReporter is implemented by games that track their own play time.
type elapsedReporter interface {
	Elapsed() time.Duration
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game        registry.Game
	screen      *core.Screen
	store       *storage.Store
	logger      *log.Logger
	config      core.RuntimeConfig
	player      string
	keys        *KeyMapper
	help        help.Model
	inputFrame  core.InputFrame
	gameState   core.GameState
	board       ScoreboardModel
	showBoard   bool
	quitting    bool
	resultSaved bool // Whether the result has been saved for current game over
	newBest     bool // the last finished game beat every stored score
}

// NewModel creates a new Bubble Tea model for the given game.
// A zero cfg.Seed lets every game pick its own seed; a fixed seed is reused
// on restart. A nil logger discards log output.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, player string, logger *log.Logger) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if player == "" {
		player = LocalPlayer
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, gameHeight(cfg.ScreenH)),
		store:      store,
		logger:     logger,
		config:     cfg,
		player:     player,
		keys:       NewKeyMapper(),
		help:       h,
		inputFrame: core.NewInputFrame(),
	}
}

func gameHeight(h int) int {
	return max(h-helpHeight, 0)
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	cfg := m.config
	cfg.ScreenH = gameHeight(cfg.ScreenH)
	m.game.Reset(cfg)
	// Note: gameState will be set on first tick (value receiver limitation)

	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showBoard {
		var cmd tea.Cmd
		m.board, cmd = m.board.Update(msg)
		switch {
		case m.board.IsQuitting():
			m.quitting = true
			return m, tea.Quit
		case m.board.Closed():
			m.showBoard = false
		}
		return m, cmd
	}

	keys := m.keys.Keys()
	switch {
	case key.Matches(msg, keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, keys.Results):
		if m.gameState.GameOver || m.gameState.Paused {
			m.board = NewScoreboardModel(m.store, m.game.ID(), m.config.ScreenW, m.config.ScreenH)
			// Remote players share one store and may not wipe it
			m.board.AllowClear(m.player == LocalPlayer)
			m.showBoard = true
		}
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleResize adapts the screen and the game layout without restarting.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, gameHeight(msg.Height))
	m.game.Resize(msg.Width, gameHeight(msg.Height))
	m.help.Width = msg.Width
	if m.showBoard {
		m.board.Resize(msg.Width, msg.Height)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	// The game is frozen while the results board is open
	if m.showBoard {
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		cfg := m.config
		cfg.ScreenH = gameHeight(cfg.ScreenH)
		m.game.Reset(cfg)
		m.gameState = m.game.State()
		m.resultSaved = false
		m.newBest = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	if result.Action != "" {
		m.logger.Debug("action", "player", m.player, "desc", result.Action, "cleared", result.Cleared)
	}

	if m.gameState.GameOver && !m.resultSaved {
		m.newBest = m.saveResult()
		m.resultSaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveResult records the finished game in the session store and reports
// whether it beat the previous high score.
func (m Model) saveResult() bool {
	if m.store == nil {
		return false
	}
	best, err := m.store.HighScore(m.game.ID())
	if err != nil {
		m.logger.Warn("high score", "err", err)
	}
	st := m.gameState
	r := storage.Result{
		GameID: m.game.ID(),
		Player: m.player,
		Score:  st.Score,
		Lines:  st.Lines,
		Level:  st.Level,
		Pieces: st.Pieces,
		Reason: st.Reason,
		Seed:   st.Seed,
	}
	if e, ok := m.game.(elapsedReporter); ok {
		r.Duration = e.Elapsed()
	}
	if _, err := m.store.SaveResult(r); err != nil {
		m.logger.Error("save result", "player", m.player, "err", err)
		return false
	}
	m.logger.Info("result saved", "player", m.player, "score", r.Score, "lines", r.Lines)

	if err != nil || r.Score <= best {
		return false
	}
	m.logger.Info("new high score", "player", m.player, "score", r.Score, "previous", best)
	return true
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot", "err", err)
		return
	}
	dir := filepath.Join(home, ".tetris", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot", "err", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showBoard {
		return m.board.View()
	}

	m.game.Render(m.screen)

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	footer := helpStyle.Render(m.help.View(m.keys.Keys()))
	if m.newBest && m.gameState.GameOver {
		footer = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")).Render("NEW BEST ") + footer
	}
	return RenderScreen(m.screen) + "\n" + footer
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(game, store, cfg, LocalPlayer, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
