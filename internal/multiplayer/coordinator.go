package multiplayer

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Lobby represents a waiting room for a match.
type Lobby struct {
	Code      string
	GameID    string
	Host      SessionHandle
	Joiner    SessionHandle
	CreatedAt time.Time
}

// CoordinatorConfig holds configuration for the coordinator.
type CoordinatorConfig struct {
	LobbyTimeout  time.Duration // How long before an empty lobby expires
	TurnTimeout   time.Duration // Per-move clock; zero disables it
	CleanupPeriod time.Duration // How often to clean up expired lobbies
	Logger        *log.Logger   // Defaults to log.Default()
}

// DefaultCoordinatorConfig returns sensible defaults.
func DefaultCoordinatorConfig() CoordinatorConfig {
	return CoordinatorConfig{
		LobbyTimeout:  2 * time.Minute,
		CleanupPeriod: 30 * time.Second,
	}
}

// GameFactory creates the rules object for a new match.
type GameFactory func(gameID string) (OnlineGame, error)

// MatchResultSaver persists finished matches without the coordinator
// depending on the storage package.
type MatchResultSaver interface {
	SaveMatchResult(result MatchResultData) error
}

// MatchResultData contains match result data for persistence.
type MatchResultData struct {
	MatchID        string
	GameID         string
	Player1Session string
	Player2Session string
	WinnerSession  string
	EndReason      string
	MoveCount      int
	DurationSecs   int
}

// Coordinator manages lobbies and active matches.
type Coordinator struct {
	config      CoordinatorConfig
	gameFactory GameFactory
	sessions    *SessionRegistry
	resultSaver MatchResultSaver // Optional, can be nil
	logger      *log.Logger

	mu      sync.RWMutex
	lobbies map[string]*Lobby        // code -> lobby
	matches map[MatchID]*OnlineMatch // matchID -> match

	sessionLobby map[SessionID]string  // sessionID -> lobby code
	sessionMatch map[SessionID]MatchID // sessionID -> matchID

	msgChan  chan CoordinatorMessage
	done     chan struct{}
	stopOnce sync.Once
}

// NewCoordinator creates a new coordinator.
func NewCoordinator(cfg CoordinatorConfig, factory GameFactory, sessions *SessionRegistry) *Coordinator {
	if cfg.CleanupPeriod <= 0 {
		cfg.CleanupPeriod = DefaultCoordinatorConfig().CleanupPeriod
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Coordinator{
		config:       cfg,
		gameFactory:  factory,
		sessions:     sessions,
		logger:       logger,
		lobbies:      make(map[string]*Lobby),
		matches:      make(map[MatchID]*OnlineMatch),
		sessionLobby: make(map[SessionID]string),
		sessionMatch: make(map[SessionID]MatchID),
		msgChan:      make(chan CoordinatorMessage, 256),
		done:         make(chan struct{}),
	}
}

// SetResultSaver sets the optional match result saver.
func (c *Coordinator) SetResultSaver(saver MatchResultSaver) {
	c.resultSaver = saver
}

// Start begins the coordinator's background processing.
func (c *Coordinator) Start() {
	go c.processMessages()
	go c.cleanupLoop()
}

// Stop shuts down the coordinator and every running match.
func (c *Coordinator) Stop() {
	c.stopOnce.Do(func() {
		close(c.done)
		c.mu.RLock()
		for _, m := range c.matches {
			m.Stop()
		}
		c.mu.RUnlock()
	})
}

// Send sends a message to the coordinator for async processing.
func (c *Coordinator) Send(msg CoordinatorMessage) {
	select {
	case c.msgChan <- msg:
	case <-c.done:
	}
}

func (c *Coordinator) processMessages() {
	for {
		select {
		case msg := <-c.msgChan:
			c.handleMessage(msg)
		case <-c.done:
			return
		}
	}
}

func (c *Coordinator) handleMessage(msg CoordinatorMessage) {
	switch m := msg.(type) {
	case CreateLobbyMsg:
		c.handleCreateLobby(m)
	case JoinLobbyMsg:
		c.handleJoinLobby(m)
	case CancelLobbyMsg:
		c.handleCancelLobby(m)
	case LeaveLobbyMsg:
		c.handleLeaveLobby(m)
	case LeaveMatchMsg:
		c.handleLeaveMatch(m)
	case PlayerMoveMsg:
		c.handlePlayerMove(m)
	case SessionDisconnectedMsg:
		c.handleSessionDisconnected(m)
	}
}

func (c *Coordinator) handleCreateLobby(msg CreateLobbyMsg) {
	session, ok := c.sessions.Get(msg.SessionID)
	if !ok {
		return
	}

	c.mu.Lock()
	if _, inLobby := c.sessionLobby[msg.SessionID]; inLobby {
		c.mu.Unlock()
		session.Send(LobbyErrorEvent{Message: "Already in a lobby"})
		return
	}
	if _, inMatch := c.sessionMatch[msg.SessionID]; inMatch {
		c.mu.Unlock()
		session.Send(LobbyErrorEvent{Message: "Already in a match"})
		return
	}

	code := c.generateUniqueCode()
	c.lobbies[code] = &Lobby{
		Code:      code,
		GameID:    msg.GameID,
		Host:      session,
		CreatedAt: time.Now(),
	}
	c.sessionLobby[msg.SessionID] = code
	c.mu.Unlock()

	c.logger.Info("lobby created", "code", code, "game", msg.GameID)
	session.Send(LobbyCreatedEvent{Code: code, GameID: msg.GameID})
}

func (c *Coordinator) handleJoinLobby(msg JoinLobbyMsg) {
	session, ok := c.sessions.Get(msg.SessionID)
	if !ok {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, inLobby := c.sessionLobby[msg.SessionID]; inLobby {
		session.Send(LobbyErrorEvent{Message: "Already in a lobby"})
		return
	}

	code := normalizeCode(msg.Code)
	lobby, exists := c.lobbies[code]
	if !exists {
		session.Send(LobbyErrorEvent{Message: "Lobby not found"})
		return
	}
	if lobby.Joiner != nil {
		session.Send(LobbyErrorEvent{Message: "Lobby is full"})
		return
	}
	if lobby.Host.ID() == msg.SessionID {
		session.Send(LobbyErrorEvent{Message: "Cannot join your own lobby"})
		return
	}

	lobby.Joiner = session
	c.sessionLobby[msg.SessionID] = code

	lobby.Host.Send(LobbyJoinedEvent{
		Code:       code,
		Side:       Player1,
		OpponentID: msg.SessionID,
	})
	session.Send(LobbyJoinedEvent{
		Code:       code,
		Side:       Player2,
		OpponentID: lobby.Host.ID(),
	})

	c.startMatch(lobby)
}

// startMatch must be called with c.mu held.
func (c *Coordinator) startMatch(lobby *Lobby) {
	hostID := lobby.Host.ID()
	joinerID := lobby.Joiner.ID()

	delete(c.sessionLobby, hostID)
	delete(c.sessionLobby, joinerID)
	delete(c.lobbies, lobby.Code)

	game, err := c.gameFactory(lobby.GameID)
	if err != nil {
		c.logger.Error("cannot create game", "game", lobby.GameID, "err", err)
		lobby.Host.Send(LobbyErrorEvent{Message: "Failed to create game"})
		lobby.Joiner.Send(LobbyErrorEvent{Message: "Failed to create game"})
		return
	}

	matchID := NewMatchID()
	match := NewOnlineMatch(matchID, lobby.Code, lobby.GameID, game, lobby.Host, lobby.Joiner, c.config.TurnTimeout)

	c.matches[matchID] = match
	c.sessionMatch[hostID] = matchID
	c.sessionMatch[joinerID] = matchID

	lobby.Host.Send(MatchStartedEvent{
		MatchID: matchID,
		GameID:  lobby.GameID,
		Side:    Player1,
		Code:    lobby.Code,
	})
	lobby.Joiner.Send(MatchStartedEvent{
		MatchID: matchID,
		GameID:  lobby.GameID,
		Side:    Player2,
		Code:    lobby.Code,
	})

	c.logger.Info("match started", "match", matchID, "game", lobby.GameID, "code", lobby.Code)

	go match.Run(func(result MatchResult) {
		c.handleMatchEnded(matchID, result)
	})
}

func (c *Coordinator) handleMatchEnded(matchID MatchID, result MatchResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	match, exists := c.matches[matchID]
	if !exists {
		return
	}

	c.logger.Info("match ended",
		"match", matchID,
		"reason", result.Reason,
		"winner", result.Winner,
		"moves", result.MoveCount,
	)

	if c.resultSaver != nil {
		winnerSession := ""
		switch result.Winner {
		case Player1:
			winnerSession = string(match.player1Session.ID())
		case Player2:
			winnerSession = string(match.player2Session.ID())
		}

		data := MatchResultData{
			MatchID:        string(matchID),
			GameID:         match.GameID(),
			Player1Session: string(match.player1Session.ID()),
			Player2Session: string(match.player2Session.ID()),
			WinnerSession:  winnerSession,
			EndReason:      result.Reason.String(),
			MoveCount:      result.MoveCount,
			DurationSecs:   int(result.Duration.Seconds()),
		}
		saver := c.resultSaver
		go func() {
			if err := saver.SaveMatchResult(data); err != nil {
				c.logger.Warn("cannot save match result", "match", data.MatchID, "err", err)
			}
		}()
	}

	delete(c.sessionMatch, match.player1Session.ID())
	delete(c.sessionMatch, match.player2Session.ID())
	delete(c.matches, matchID)

	endEvent := MatchEndedEvent{
		MatchID:   matchID,
		Reason:    result.Reason,
		Winner:    result.Winner,
		MoveCount: result.MoveCount,
	}
	match.player1Session.Send(endEvent)
	match.player2Session.Send(endEvent)
}

func (c *Coordinator) handleCancelLobby(msg CancelLobbyMsg) {
	c.mu.Lock()
	defer c.mu.Unlock()

	code := normalizeCode(msg.Code)
	lobby, exists := c.lobbies[code]
	if !exists || lobby.Host.ID() != msg.SessionID {
		return
	}

	c.closeLobby(lobby)
}

func (c *Coordinator) handleLeaveLobby(msg LeaveLobbyMsg) {
	c.mu.Lock()
	defer c.mu.Unlock()

	code := normalizeCode(msg.Code)
	lobby, exists := c.lobbies[code]
	if !exists {
		return
	}

	if lobby.Joiner != nil && lobby.Joiner.ID() == msg.SessionID {
		lobby.Joiner = nil
		delete(c.sessionLobby, msg.SessionID)
		lobby.Host.Send(LobbyPlayerLeftEvent{Code: code})
		return
	}

	if lobby.Host.ID() == msg.SessionID {
		c.closeLobby(lobby)
	}
}

// closeLobby must be called with c.mu held.
func (c *Coordinator) closeLobby(lobby *Lobby) {
	if lobby.Joiner != nil {
		lobby.Joiner.Send(MatchEndedEvent{Reason: MatchEndReasonHostLeft})
		delete(c.sessionLobby, lobby.Joiner.ID())
	}
	delete(c.sessionLobby, lobby.Host.ID())
	delete(c.lobbies, lobby.Code)
}

func (c *Coordinator) handleLeaveMatch(msg LeaveMatchMsg) {
	c.mu.RLock()
	match, exists := c.matches[msg.MatchID]
	c.mu.RUnlock()

	if exists {
		match.PlayerDisconnected(msg.SessionID)
	}
}

func (c *Coordinator) handlePlayerMove(msg PlayerMoveMsg) {
	c.mu.RLock()
	match, exists := c.matches[msg.MatchID]
	c.mu.RUnlock()

	if exists {
		match.SubmitMove(msg.Player, msg.Move)
	}
}

func (c *Coordinator) handleSessionDisconnected(msg SessionDisconnectedMsg) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if code, inLobby := c.sessionLobby[msg.SessionID]; inLobby {
		if lobby, exists := c.lobbies[code]; exists {
			if lobby.Host.ID() == msg.SessionID {
				c.closeLobby(lobby)
			} else if lobby.Joiner != nil && lobby.Joiner.ID() == msg.SessionID {
				lobby.Joiner = nil
				lobby.Host.Send(LobbyPlayerLeftEvent{Code: code})
			}
		}
		delete(c.sessionLobby, msg.SessionID)
	}

	if matchID, inMatch := c.sessionMatch[msg.SessionID]; inMatch {
		if match, exists := c.matches[matchID]; exists {
			match.PlayerDisconnected(msg.SessionID)
		}
	}
}

func (c *Coordinator) cleanupLoop() {
	ticker := time.NewTicker(c.config.CleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanupExpiredLobbies()
		case <-c.done:
			return
		}
	}
}

func (c *Coordinator) cleanupExpiredLobbies() {
	if c.config.LobbyTimeout <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for code, lobby := range c.lobbies {
		if lobby.Joiner == nil && now.Sub(lobby.CreatedAt) > c.config.LobbyTimeout {
			lobby.Host.Send(LobbyErrorEvent{Message: "Lobby expired"})
			delete(c.sessionLobby, lobby.Host.ID())
			delete(c.lobbies, code)
			c.logger.Debug("lobby expired", "code", code)
		}
	}
}

func (c *Coordinator) generateUniqueCode() string {
	for {
		code := generateJoinCode()
		if _, exists := c.lobbies[code]; !exists {
			return code
		}
	}
}

// generateJoinCode creates a 6-character code from the base32 alphabet
// (A-Z, 2-7).
func generateJoinCode() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%06X", time.Now().UnixNano()&0xFFFFFF)
	}
	return base32.StdEncoding.EncodeToString(b)[:6]
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// GetLobby returns a lobby by code.
func (c *Coordinator) GetLobby(code string) (*Lobby, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	l, ok := c.lobbies[normalizeCode(code)]
	return l, ok
}

// GetMatch returns a running match by ID.
func (c *Coordinator) GetMatch(id MatchID) (*OnlineMatch, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.matches[id]
	return m, ok
}

// LobbyCount returns the number of open lobbies.
func (c *Coordinator) LobbyCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.lobbies)
}

// MatchCount returns the number of running matches.
func (c *Coordinator) MatchCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.matches)
}
