package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-hex/internal/core"
	"github.com/vovakirdan/tui-hex/internal/games/hexgame"
	"github.com/vovakirdan/tui-hex/internal/storage"
)

// Model is the Bubble Tea model for a local game against the computer.
type Model struct {
	game       *hexgame.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	embedded   bool // Back returns to a menu instead of quitting
	quitting   bool
	backToMenu bool
	saved      bool // Whether the current finished game has been stored
	lastSaveID string
}

// NewModel creates a model for the given game. The game keeps its
// configured settings; Init starts a fresh game with cfg.
func NewModel(game *hexgame.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		logger:     log.Default(),
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}
}

// WithLogger returns a copy of the model that reports storage failures to l.
func (m Model) WithLogger(l *log.Logger) Model {
	if l != nil {
		m.logger = l
	}
	return m
}

// Init starts the game and the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		m.game.Abandon()
		return m, tea.Quit
	case action == core.ActionBack:
		m.game.Abandon()
		if m.embedded {
			m.backToMenu = true
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleTick runs one game step and stores the game once it ends.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	result := m.game.Step(m.inputFrame)
	m.inputFrame.Clear()
	m.gameState = result.State

	switch {
	case !m.gameState.GameOver:
		m.saved = false
	case !m.saved:
		m.saveResult()
		m.saved = true
	}

	return m, tickCmd(m.config.TickRate)
}

// saveResult stores the finished game and, on a human win, its score.
// Storage is best effort: failures are logged and play goes on.
func (m *Model) saveResult() {
	if m.store == nil {
		return
	}
	id, err := m.store.SaveGame(GameRecord(m.game.Record()))
	if err != nil {
		m.logger.Warn("could not save game", "variant", m.game.ID(), "error", err)
		return
	}
	m.lastSaveID = id
	if m.gameState.Score > 0 {
		if _, err := m.store.SaveScore(m.game.ID(), m.gameState.Score); err != nil {
			m.logger.Warn("could not save score", "variant", m.game.ID(), "error", err)
		}
	}
}

// GameRecord converts a finished game's summary into its storage row.
func GameRecord(r hexgame.Record) storage.GameRecord {
	return storage.GameRecord{
		Variant:      r.Variant,
		Size:         r.Size,
		Shape:        r.Shape,
		Strength:     r.Strength,
		HumanSide:    r.HumanSide,
		FirstSide:    r.First,
		Winner:       r.Winner,
		Moves:        r.Moves,
		MoveCount:    r.MoveCount,
		DurationSecs: int(r.Duration / time.Second),
	}
}

// saveScreenshot writes the current board as plain text under ~/.hex/screenshots.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".hex", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if the user asked to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user asked to return to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// GameState returns the state after the latest tick.
func (m Model) GameState() core.GameState {
	return m.gameState
}

// LastSavedID returns the storage id of the most recently saved game.
func (m Model) LastSavedID() string {
	return m.lastSaveID
}

// Run plays one game in the terminal until the user quits.
func Run(game *hexgame.Game, store *storage.Store, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewModel(game, store, cfg),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
