package multiplayer

import (
	"errors"
	"sync"
	"time"
)

// ErrNotYourTurn is returned when a player moves while the opponent is to move.
var ErrNotYourTurn = errors.New("not your turn")

// OnlineGame is the authoritative rules object behind a match. The match
// loop owns it exclusively, so implementations need no locking.
type OnlineGame interface {
	// Apply plays mv for player, who must be the player to move.
	Apply(player PlayerID, mv Move) error

	// Snapshot returns the current position for transmission.
	Snapshot() GameSnapshot

	// ToMove returns the player whose turn it is.
	ToMove() PlayerID

	// IsGameOver returns true once the game has ended.
	IsGameOver() bool

	// Winner returns Player1 or Player2, or 0 for no winner.
	Winner() PlayerID

	// MoveCount returns the number of moves applied.
	MoveCount() int
}

// MatchResult contains the outcome of a finished match.
type MatchResult struct {
	MatchID   MatchID
	Reason    MatchEndReason
	Winner    PlayerID
	MoveCount int
	Duration  time.Duration
}

type playerMove struct {
	player PlayerID
	move   Move
}

// OnlineMatch is one running game between two sessions. Moves arrive on a
// channel and are applied one at a time by Run.
type OnlineMatch struct {
	id     MatchID
	code   string
	gameID string
	game   OnlineGame

	player1Session SessionHandle
	player2Session SessionHandle

	moves       chan playerMove
	turnTimeout time.Duration
	started     time.Time

	done           chan struct{}
	doneOnce       sync.Once
	disconnectChan chan SessionID
}

// NewOnlineMatch creates a match. A zero turnTimeout disables the per-move clock.
func NewOnlineMatch(
	id MatchID,
	code string,
	gameID string,
	game OnlineGame,
	p1Session, p2Session SessionHandle,
	turnTimeout time.Duration,
) *OnlineMatch {
	return &OnlineMatch{
		id:             id,
		code:           code,
		gameID:         gameID,
		game:           game,
		player1Session: p1Session,
		player2Session: p2Session,
		moves:          make(chan playerMove, 16),
		turnTimeout:    turnTimeout,
		done:           make(chan struct{}),
		disconnectChan: make(chan SessionID, 2),
	}
}

// ID returns the match identifier.
func (m *OnlineMatch) ID() MatchID {
	return m.id
}

// Code returns the join code the match was created from.
func (m *OnlineMatch) Code() string {
	return m.code
}

// GameID returns the game identifier.
func (m *OnlineMatch) GameID() string {
	return m.gameID
}

// SubmitMove queues a move. If the queue is full the move is rejected
// straight away instead of blocking the coordinator.
func (m *OnlineMatch) SubmitMove(player PlayerID, mv Move) {
	select {
	case m.moves <- playerMove{player: player, move: mv}:
	default:
		m.session(player).Send(MoveRejectedEvent{MatchID: m.id, Move: mv, Reason: "too many pending moves"})
	}
}

// PlayerDisconnected signals that a player has gone.
func (m *OnlineMatch) PlayerDisconnected(sessionID SessionID) {
	select {
	case m.disconnectChan <- sessionID:
	default:
	}
}

// Run is the match loop. It sends the opening position, then applies moves
// until the game ends, a player leaves, or the player to move times out.
// onComplete is not called when the match is stopped with Stop.
func (m *OnlineMatch) Run(onComplete func(MatchResult)) {
	defer m.Stop()

	m.started = time.Now()
	go m.monitorSessions()
	m.broadcast()

	var timeout <-chan time.Time
	var timer *time.Timer
	if m.turnTimeout > 0 {
		timer = time.NewTimer(m.turnTimeout)
		defer timer.Stop()
		timeout = timer.C
	}

	finish := func(reason MatchEndReason, winner PlayerID) {
		if onComplete != nil {
			onComplete(MatchResult{
				MatchID:   m.id,
				Reason:    reason,
				Winner:    winner,
				MoveCount: m.game.MoveCount(),
				Duration:  time.Since(m.started),
			})
		}
	}

	for {
		select {
		case pm := <-m.moves:
			if err := m.apply(pm); err != nil {
				m.session(pm.player).Send(MoveRejectedEvent{MatchID: m.id, Move: pm.move, Reason: err.Error()})
				continue
			}
			m.broadcast()
			if m.game.IsGameOver() {
				finish(MatchEndReasonCompleted, m.game.Winner())
				return
			}
			if timer != nil {
				timer.Reset(m.turnTimeout)
			}

		case <-timeout:
			finish(MatchEndReasonTurnTimeout, m.game.ToMove().Other())
			return

		case sessionID := <-m.disconnectChan:
			finish(MatchEndReasonDisconnect, m.playerFor(sessionID).Other())
			return

		case <-m.done:
			return
		}
	}
}

func (m *OnlineMatch) apply(pm playerMove) error {
	if m.game.IsGameOver() {
		return errors.New("game is over")
	}
	if pm.player != m.game.ToMove() {
		return ErrNotYourTurn
	}
	return m.game.Apply(pm.player, pm.move)
}

func (m *OnlineMatch) broadcast() {
	evt := SnapshotEvent{
		MatchID:  m.id,
		Seq:      m.game.MoveCount(),
		Snapshot: m.game.Snapshot(),
	}
	m.player1Session.Send(evt)
	m.player2Session.Send(evt)
}

func (m *OnlineMatch) session(p PlayerID) SessionHandle {
	if p == Player2 {
		return m.player2Session
	}
	return m.player1Session
}

func (m *OnlineMatch) playerFor(sessionID SessionID) PlayerID {
	if sessionID == m.player2Session.ID() {
		return Player2
	}
	return Player1
}

func (m *OnlineMatch) monitorSessions() {
	select {
	case <-m.player1Session.Done():
		m.PlayerDisconnected(m.player1Session.ID())
	case <-m.player2Session.Done():
		m.PlayerDisconnected(m.player2Session.ID())
	case <-m.done:
	}
}

// Stop ends the match loop without reporting a result.
func (m *OnlineMatch) Stop() {
	m.doneOnce.Do(func() {
		close(m.done)
	})
}

// Done is closed when the match loop has stopped.
func (m *OnlineMatch) Done() <-chan struct{} {
	return m.done
}
