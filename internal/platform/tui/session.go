package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-hex/internal/core"
	"github.com/vovakirdan/tui-hex/internal/games/hexgame"
	"github.com/vovakirdan/tui-hex/internal/multiplayer"
	"github.com/vovakirdan/tui-hex/internal/storage"
)

// onlineGameID is the variant online lobbies are created for.
const onlineGameID = "hex"

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenOnline
	screenHistory
)

// SessionModel manages one SSH session: menu, local games, online play and
// the history screen, returning to the menu after each.
type SessionModel struct {
	store       *storage.Store
	logger      *log.Logger
	config      core.RuntimeConfig
	settings    hexgame.Settings
	session     *multiplayer.ChannelSession // nil disables online play
	coordinator CoordinatorSender
	screen      sessionScreen
	menu        MenuModel
	game        Model
	online      OnlineModel
	history     HistoryModel
	quitting    bool
}

// NewSessionModel creates a session model. With a nil session or
// coordinator the menu offers local play only.
func NewSessionModel(
	store *storage.Store,
	logger *log.Logger,
	settings hexgame.Settings,
	cfg core.RuntimeConfig,
	session *multiplayer.ChannelSession,
	coordinator CoordinatorSender,
) SessionModel {
	if session == nil || coordinator == nil {
		session, coordinator = nil, nil
	}
	if logger == nil {
		logger = log.Default()
	}
	m := SessionModel{
		store:       store,
		logger:      logger,
		config:      cfg,
		settings:    settings,
		session:     session,
		coordinator: coordinator,
	}
	m.menu = NewMenuModel(settings, cfg, m.session != nil)
	return m
}

// Init starts the menu and, for online sessions, the event pump.
func (m SessionModel) Init() tea.Cmd {
	if m.session == nil {
		return m.menu.Init()
	}
	return tea.Batch(m.menu.Init(), WaitForEvent(m.session.Events()))
}

// Update routes messages to the active screen.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	// Coordinator events always re-arm the pump, whatever screen is showing.
	if evt, ok := msg.(multiplayer.SessionEvent); ok && m.session != nil {
		var cmd tea.Cmd
		if m.screen == screenOnline {
			m, cmd = m.updateOnline(evt)
		}
		return m, tea.Batch(cmd, WaitForEvent(m.session.Events()))
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenOnline:
		return m.updateOnline(msg)
	case screenHistory:
		return m.updateHistory(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) toMenu() (SessionModel, tea.Cmd) {
	m.screen = screenMenu
	m.menu = NewMenuModel(m.settings, m.config, m.session != nil)
	return m, m.menu.Init()
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (SessionModel, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}
	m.settings = m.menu.Settings()

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsHistory():
		m.screen = screenHistory
		m.history = NewHistoryModel(m.store, m.config.ScreenW, m.config.ScreenH)
		return m, m.history.Init()

	case m.menu.WantsOnline():
		m.screen = screenOnline
		m.online = NewOnlineModel(onlineGameID, m.session.ID(), m.coordinator, m.config.ScreenW, m.config.ScreenH)
		return m, m.online.Init()

	case m.menu.Selected() != nil:
		game, err := hexgame.New(m.menu.Selected().GameID)
		if err != nil {
			// The menu only lists registered variants.
			m.logger.Error("cannot create game", "game", m.menu.Selected().GameID, "error", err)
			return m.toMenu()
		}
		game.Configure(m.settings)

		m.game = NewModel(game, m.store, m.config).WithLogger(m.logger)
		m.game.embedded = true
		m.screen = screenGame
		return m, m.game.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (SessionModel, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if game, ok := next.(Model); ok {
		m.game = game
	}

	switch {
	case m.game.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.game.BackToMenu():
		return m.toMenu()
	}
	return m, cmd
}

// updateOnline handles updates when in the online flow.
func (m SessionModel) updateOnline(msg tea.Msg) (SessionModel, tea.Cmd) {
	next, cmd := m.online.Update(msg)
	if online, ok := next.(OnlineModel); ok {
		m.online = online
	}

	switch {
	case m.online.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.online.BackToMenu():
		return m.toMenu()
	}
	return m, cmd
}

// updateHistory handles updates when on the history screen.
func (m SessionModel) updateHistory(msg tea.Msg) (SessionModel, tea.Cmd) {
	next, cmd := m.history.Update(msg)
	if history, ok := next.(HistoryModel); ok {
		m.history = history
	}

	switch {
	case m.history.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.history.IsGoingBack():
		return m.toMenu()
	}
	return m, cmd
}

// View renders the active screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenOnline:
		return m.online.View()
	case screenHistory:
		return m.history.View()
	default:
		return m.menu.View()
	}
}

// RunSession runs the menu-driven session in the local terminal, without
// online play.
func RunSession(store *storage.Store, logger *log.Logger, settings hexgame.Settings, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewSessionModel(store, logger, settings, cfg, nil, nil),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
