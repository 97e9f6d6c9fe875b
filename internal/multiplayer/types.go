// Package multiplayer runs turn-based matches between two sessions: lobbies
// with join codes, an authoritative match loop per game, and result
// reporting. It knows nothing about SSH or Bubble Tea.
package multiplayer

import (
	"github.com/google/uuid"
	"github.com/vovakirdan/tui-hex/internal/core"
)

// PlayerID is an alias to core.PlayerID for convenience.
// Player1 is always the lobby host and plays side A.
type PlayerID = core.PlayerID

// Re-export player constants for convenience.
const (
	Player1 = core.Player1
	Player2 = core.Player2
)

// SessionID uniquely identifies a player's session (e.g., SSH connection).
type SessionID string

// NewSessionID returns a fresh random session identifier.
func NewSessionID() SessionID {
	return SessionID(uuid.NewString())
}

// MatchID uniquely identifies a game match.
type MatchID string

// NewMatchID returns a fresh random match identifier.
func NewMatchID() MatchID {
	return MatchID(uuid.NewString())
}

// Move is a cell chosen by a player.
type Move struct {
	Row, Col int
}

// MatchEndReason describes why a match ended.
type MatchEndReason int

const (
	MatchEndReasonCompleted   MatchEndReason = iota // A side connected, or the board filled up
	MatchEndReasonDisconnect                        // Opponent disconnected
	MatchEndReasonCancelled                         // Match was cancelled
	MatchEndReasonHostLeft                          // Host left the lobby
	MatchEndReasonJoinerLeft                        // Joiner left the lobby
	MatchEndReasonTurnTimeout                       // The player to move ran out of time
)

func (r MatchEndReason) String() string {
	switch r {
	case MatchEndReasonCompleted:
		return "Match completed"
	case MatchEndReasonDisconnect:
		return "Opponent disconnected"
	case MatchEndReasonCancelled:
		return "Match cancelled"
	case MatchEndReasonHostLeft:
		return "Host left"
	case MatchEndReasonJoinerLeft:
		return "Opponent left"
	case MatchEndReasonTurnTimeout:
		return "Turn timed out"
	default:
		return "Unknown"
	}
}
