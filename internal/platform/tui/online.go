package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-hex/internal/core"
	"github.com/vovakirdan/tui-hex/internal/games/hexgame"
	"github.com/vovakirdan/tui-hex/internal/hex"
	"github.com/vovakirdan/tui-hex/internal/multiplayer"
)

// OnlineState represents the current state of the online flow.
type OnlineState int

const (
	OnlineStateChooseMode    OnlineState = iota // Choose Host or Join
	OnlineStateHostWaiting                      // Hosting, waiting for joiner
	OnlineStateJoinEnterCode                    // Entering join code
	OnlineStateJoinWaiting                      // Waiting to connect to host
	OnlineStateInMatch                          // In active match
	OnlineStateMatchEnded                       // Match has ended
)

// CoordinatorSender is the part of the coordinator the online screens use.
type CoordinatorSender interface {
	Send(msg multiplayer.CoordinatorMessage)
}

// WaitForEvent returns a command that delivers the next coordinator event
// for a session. It returns nil once the channel is closed.
func WaitForEvent(events <-chan multiplayer.SessionEvent) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-events
		if !ok {
			return nil
		}
		return evt
	}
}

const onlineHelp = "arrows move  enter place  esc resign  q quit"

// OnlineModel handles the online flow from lobby to finished match. It does
// not read events itself; the owner feeds them in through Update.
type OnlineModel struct {
	state       OnlineState
	width       int
	height      int
	keyMapper   *KeyMapper
	gameID      string
	sessionID   multiplayer.SessionID
	coordinator CoordinatorSender

	// Host state
	lobbyCode string

	// Join state
	codeInput textinput.Model
	joinError string

	// Match state
	matchID  multiplayer.MatchID
	side     core.PlayerID
	seq      int
	match    *hexgame.Match
	cursor   hex.Coord
	message  string
	screen   *core.Screen
	endEvent multiplayer.MatchEndedEvent

	backToMenu bool
	quitting   bool
}

// NewOnlineModel creates the online flow for one variant.
func NewOnlineModel(gameID string, sessionID multiplayer.SessionID, coordinator CoordinatorSender, width, height int) OnlineModel {
	ti := textinput.New()
	ti.Placeholder = "ABC123"
	ti.CharLimit = 6
	ti.Width = 8
	ti.Validate = validJoinCode

	return OnlineModel{
		state:       OnlineStateChooseMode,
		width:       width,
		height:      height,
		keyMapper:   NewKeyMapper(),
		gameID:      gameID,
		sessionID:   sessionID,
		coordinator: coordinator,
		codeInput:   ti,
		screen:      core.NewScreen(width, height),
	}
}

// validJoinCode accepts partial codes made of letters and digits.
func validJoinCode(s string) error {
	for _, r := range s {
		if !(r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9') {
			return fmt.Errorf("invalid character %q", r)
		}
	}
	return nil
}

// Init initializes the online model.
func (m OnlineModel) Init() tea.Cmd {
	return nil
}

// Update handles key presses and coordinator events.
func (m OnlineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil
	case multiplayer.SessionEvent:
		return m.handleEvent(msg), nil
	}
	return m, nil
}

func (m OnlineModel) handleEvent(evt multiplayer.SessionEvent) OnlineModel {
	switch evt := evt.(type) {
	case multiplayer.LobbyCreatedEvent:
		m.lobbyCode = evt.Code
		m.state = OnlineStateHostWaiting
	case multiplayer.LobbyJoinedEvent:
		m.side = evt.Side
	case multiplayer.LobbyErrorEvent:
		m.joinError = evt.Message
		switch m.state {
		case OnlineStateJoinWaiting:
			m.state = OnlineStateJoinEnterCode
			m.codeInput.Focus()
		case OnlineStateHostWaiting:
			m.state = OnlineStateChooseMode
		}
	case multiplayer.MatchStartedEvent:
		m.matchID = evt.MatchID
		m.side = evt.Side
		m.lobbyCode = evt.Code
		m.state = OnlineStateInMatch
		m.message = ""
		m.seq = -1
	case multiplayer.SnapshotEvent:
		if evt.MatchID == m.matchID && evt.Seq > m.seq {
			m.applySnapshot(evt)
		}
	case multiplayer.MoveRejectedEvent:
		if evt.MatchID == m.matchID {
			m.message = evt.Reason
		}
	case multiplayer.MatchEndedEvent:
		switch m.state {
		case OnlineStateInMatch:
			m.endEvent = evt
			m.state = OnlineStateMatchEnded
		case OnlineStateJoinWaiting:
			// The host closed the lobby before the match began.
			m.joinError = evt.Reason.String()
			m.state = OnlineStateJoinEnterCode
			m.codeInput.Focus()
		}
	}
	return m
}

func (m *OnlineModel) applySnapshot(evt multiplayer.SnapshotEvent) {
	snap, ok := evt.Snapshot.(hexgame.Snapshot)
	if !ok {
		return
	}
	match, err := snap.Match()
	if err != nil {
		m.message = err.Error()
		return
	}
	if m.match == nil || !match.Board().Playable(m.cursor) {
		m.cursor = hexgame.StartCursor(match.Board())
	}
	m.match = match
	m.seq = evt.Seq
	m.message = ""
}

func (m OnlineModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.leave()
		m.quitting = true
		return m, tea.Quit
	}

	switch m.state {
	case OnlineStateChooseMode:
		return m.handleChooseModeKey(msg)
	case OnlineStateHostWaiting:
		return m.handleHostWaitingKey(msg)
	case OnlineStateJoinEnterCode:
		return m.handleJoinCodeKey(msg)
	case OnlineStateJoinWaiting:
		return m.handleJoinWaitingKey(msg)
	case OnlineStateInMatch:
		return m.handleMatchKey(msg)
	case OnlineStateMatchEnded:
		return m.handleEndedKey(msg)
	}
	return m, nil
}

func (m OnlineModel) handleChooseModeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "h", "H", "1":
		m.joinError = ""
		m.coordinator.Send(multiplayer.CreateLobbyMsg{
			SessionID: m.sessionID,
			GameID:    m.gameID,
		})
	case "j", "J", "2":
		m.state = OnlineStateJoinEnterCode
		m.codeInput.Reset()
		m.joinError = ""
		cmd := m.codeInput.Focus()
		return m, cmd
	case "esc", "b":
		m.backToMenu = true
	case "q":
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m OnlineModel) handleHostWaitingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "b":
		m.leave()
		m.backToMenu = true
	case "q":
		m.leave()
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m OnlineModel) handleJoinCodeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.codeInput.Blur()
		m.state = OnlineStateChooseMode
		return m, nil
	case "enter":
		code := strings.ToUpper(strings.TrimSpace(m.codeInput.Value()))
		if code == "" {
			return m, nil
		}
		m.codeInput.Blur()
		m.state = OnlineStateJoinWaiting
		m.joinError = ""
		m.lobbyCode = code
		m.coordinator.Send(multiplayer.JoinLobbyMsg{
			SessionID: m.sessionID,
			Code:      code,
		})
		return m, nil
	}

	var cmd tea.Cmd
	m.codeInput, cmd = m.codeInput.Update(msg)
	return m, cmd
}

func (m OnlineModel) handleJoinWaitingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "b":
		m.leave()
		m.state = OnlineStateJoinEnterCode
		cmd := m.codeInput.Focus()
		return m, cmd
	}
	return m, nil
}

func (m OnlineModel) handleMatchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.leave()
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionBack:
		m.leave()
		m.backToMenu = true
	case core.ActionUp:
		m.moveCursor(-1, 0)
	case core.ActionDown:
		m.moveCursor(1, 0)
	case core.ActionLeft:
		m.moveCursor(0, -1)
	case core.ActionRight:
		m.moveCursor(0, 1)
	case core.ActionConfirm:
		m.submit()
	}
	return m, nil
}

func (m OnlineModel) handleEndedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "esc", "b", "enter", " ":
		m.backToMenu = true
	}
	return m, nil
}

func (m *OnlineModel) moveCursor(dr, dc int) {
	if m.match != nil {
		m.cursor = hexgame.StepCursor(m.match.Board(), m.cursor, dr, dc)
	}
}

// submit sends the cursor cell as this player's move. The match decides
// whether it stands; the position only changes when a snapshot arrives.
func (m *OnlineModel) submit() {
	if m.match == nil {
		return
	}
	if !m.myTurn() {
		m.message = hexgame.Explain(multiplayer.ErrNotYourTurn)
		return
	}
	m.message = ""
	m.coordinator.Send(multiplayer.PlayerMoveMsg{
		MatchID: m.matchID,
		Player:  m.side,
		Move:    multiplayer.Move{Row: m.cursor.Row, Col: m.cursor.Col},
	})
}

// leave tells the coordinator this session is walking away from whatever
// lobby or match it is in.
func (m *OnlineModel) leave() {
	switch m.state {
	case OnlineStateHostWaiting:
		m.coordinator.Send(multiplayer.CancelLobbyMsg{SessionID: m.sessionID, Code: m.lobbyCode})
	case OnlineStateJoinWaiting:
		m.coordinator.Send(multiplayer.LeaveLobbyMsg{SessionID: m.sessionID, Code: m.lobbyCode})
	case OnlineStateInMatch:
		m.coordinator.Send(multiplayer.LeaveMatchMsg{SessionID: m.sessionID, MatchID: m.matchID})
	}
}

func (m OnlineModel) mySide() hex.Side {
	return hexgame.SideFor(m.side)
}

func (m OnlineModel) myTurn() bool {
	return m.match != nil && !m.match.Over() && m.match.ToMove() == m.mySide()
}

// View renders the current state.
func (m OnlineModel) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	switch m.state {
	case OnlineStateChooseMode:
		return m.viewChooseMode()
	case OnlineStateHostWaiting:
		return m.viewHostWaiting()
	case OnlineStateJoinEnterCode:
		return m.viewJoinEnterCode()
	case OnlineStateJoinWaiting:
		return m.viewJoinWaiting()
	default:
		return m.viewMatch()
	}
}

func (m OnlineModel) lines(lines ...string) string {
	var b strings.Builder
	b.WriteString("\n")
	for _, l := range lines {
		b.WriteString(centerText(l, m.width))
		b.WriteString("\n")
	}
	return b.String()
}

func (m OnlineModel) viewChooseMode() string {
	var errLine string
	if m.joinError != "" {
		errLine = "Error: " + m.joinError
	}
	return m.lines(
		"ONLINE HEX",
		"",
		"The host plays Red and moves first.",
		"",
		"[H] Host a game",
		"[J] Join a game",
		"",
		errLine,
		"Esc: Back  |  Q: Quit",
	)
}

func (m OnlineModel) viewHostWaiting() string {
	return m.lines(
		"HOSTING GAME",
		"",
		"Share this code with your opponent:",
		"",
		fmt.Sprintf("[ %s ]", m.lobbyCode),
		"",
		"Waiting for player to join...",
		"",
		"Esc: Cancel  |  Q: Quit",
	)
}

func (m OnlineModel) viewJoinEnterCode() string {
	var errLine string
	if m.joinError != "" {
		errLine = "Error: " + m.joinError
	}
	return m.lines(
		"JOIN GAME",
		"",
		"Enter the game code:",
		"",
		m.codeInput.View(),
		"",
		errLine,
		"Enter: Connect  |  Esc: Back",
	)
}

func (m OnlineModel) viewJoinWaiting() string {
	return m.lines(
		"CONNECTING",
		"",
		fmt.Sprintf("Joining game: %s", m.lobbyCode),
		"",
		"Please wait...",
		"",
		"Esc: Cancel",
	)
}

func (m OnlineModel) viewMatch() string {
	m.screen.Clear()
	if m.match == nil {
		m.screen.DrawTextCentered(m.screen.Height()/2, "Match starting...")
		return RenderScreen(m.screen)
	}

	help := onlineHelp
	if m.state == OnlineStateMatchEnded {
		help = "enter back to menu  q quit"
	}
	hexgame.DrawBoard(m.screen, m.match, hexgame.BoardView{
		Title:      fmt.Sprintf("Online Hex  %s  you play %s", m.lobbyCode, menuSideName(m.mySide())),
		Status:     m.status(),
		Help:       help,
		Cursor:     m.cursor,
		ShowCursor: m.myTurn(),
	})
	return RenderScreen(m.screen)
}

func (m OnlineModel) status() string {
	if m.state == OnlineStateMatchEnded {
		return endMessage(m.endEvent, m.side)
	}
	switch {
	case m.message != "":
		return m.message
	case m.myTurn():
		return "Your move"
	default:
		return "Waiting for your opponent"
	}
}

// endMessage describes a finished match from one player's point of view.
func endMessage(evt multiplayer.MatchEndedEvent, me core.PlayerID) string {
	var outcome string
	switch evt.Winner {
	case me:
		outcome = "You win!"
	case me.Other():
		outcome = "Your opponent wins"
	default:
		outcome = "Draw"
	}
	if evt.Reason == multiplayer.MatchEndReasonCompleted {
		return fmt.Sprintf("%s after %d moves", outcome, evt.MoveCount)
	}
	return fmt.Sprintf("%s: %s", outcome, evt.Reason)
}

// State returns the current online state.
func (m OnlineModel) State() OnlineState {
	return m.state
}

// BackToMenu returns true if user wants to go back to menu.
func (m OnlineModel) BackToMenu() bool {
	return m.backToMenu
}

// IsQuitting returns true if user wants to quit entirely.
func (m OnlineModel) IsQuitting() bool {
	return m.quitting
}

// MatchID returns the match ID if a match was started.
func (m OnlineModel) MatchID() multiplayer.MatchID {
	return m.matchID
}

// Side returns which seat this session plays.
func (m OnlineModel) Side() core.PlayerID {
	return m.side
}

// LobbyCode returns the lobby code.
func (m OnlineModel) LobbyCode() string {
	return m.lobbyCode
}

// Match returns the latest position, or nil before the first snapshot.
func (m OnlineModel) Match() *hexgame.Match {
	return m.match
}

// Cursor returns the cursor cell.
func (m OnlineModel) Cursor() hex.Coord {
	return m.cursor
}
