// Package hexgame is the playable Hex game: turn bookkeeping around the
// engine board, computer turns, online play and rendering into a
// core.Screen.
package hexgame

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-hex/internal/hex"
	"github.com/vovakirdan/tui-hex/internal/notation"
)

var (
	// ErrGameOver is returned when a move is made after the game ended.
	ErrGameOver = errors.New("hexgame: game is over")
	// ErrNothingToUndo is returned when there are fewer moves than requested.
	ErrNothingToUndo = errors.New("hexgame: nothing to undo")
)

// Match is one game on one board: whose turn it is, the moves so far and
// how it ended.
type Match struct {
	board   *hex.Board
	first   hex.Side
	toMove  hex.Side
	history []hex.Coord
	winner  hex.Side
	draw    bool
}

// NewMatch starts an empty match. An invalid first side falls back to A.
func NewMatch(size int, shape hex.Shape, first hex.Side) *Match {
	return NewMatchOnBoard(hex.NewBoard(size, shape), first)
}

// NewMatchOnBoard starts a match on an empty board the caller built, for
// example one with a custom shape predicate.
func NewMatchOnBoard(b *hex.Board, first hex.Side) *Match {
	if !first.Valid() {
		first = hex.SideA
	}
	b.Reset()
	return &Match{board: b, first: first, toMove: first}
}

// Replay rebuilds a match from a move list, as stored by Record.
func Replay(size int, shape hex.Shape, first hex.Side, moves []hex.Coord) (*Match, error) {
	m := NewMatch(size, shape, first)
	for i, c := range moves {
		if err := m.Play(c); err != nil {
			return nil, fmt.Errorf("hexgame: replay move %d: %w", i+1, err)
		}
	}
	return m, nil
}

// Board returns the live board. Callers must not modify it; use Clone for
// anything that places stones.
func (m *Match) Board() *hex.Board { return m.board }

// First returns the side that opened the match.
func (m *Match) First() hex.Side { return m.first }

// ToMove returns the side to move, or hex.None once the match is over.
func (m *Match) ToMove() hex.Side { return m.toMove }

// Winner returns the side that connected its edges, or hex.None.
func (m *Match) Winner() hex.Side { return m.winner }

// Draw reports whether the board filled up with no connection.
func (m *Match) Draw() bool { return m.draw }

// Over reports whether the match has ended.
func (m *Match) Over() bool { return m.winner != hex.None || m.draw }

// MoveCount returns the number of stones played.
func (m *Match) MoveCount() int { return len(m.history) }

// History returns a copy of the moves in play order.
func (m *Match) History() []hex.Coord {
	return append([]hex.Coord(nil), m.history...)
}

// LastMove returns the most recent move.
func (m *Match) LastMove() (hex.Coord, bool) {
	if len(m.history) == 0 {
		return hex.Coord{}, false
	}
	return m.history[len(m.history)-1], true
}

// SideOf returns the side that played (or will play) the i-th move.
func (m *Match) SideOf(i int) hex.Side {
	if i%2 == 0 {
		return m.first
	}
	return m.first.Opponent()
}

// Play places a stone for the side to move.
func (m *Match) Play(c hex.Coord) error {
	if m.Over() {
		return ErrGameOver
	}
	side := m.toMove
	if err := m.board.Play(c, side); err != nil {
		return fmt.Errorf("hexgame: %s at %s: %w", side, notation.Format(c), err)
	}
	m.history = append(m.history, c)

	switch {
	case m.board.HasWon(side):
		m.winner = side
		m.toMove = hex.None
	case m.board.EmptyCount() == 0:
		m.draw = true
		m.toMove = hex.None
	default:
		m.toMove = side.Opponent()
	}
	return nil
}

// Undo takes back the last n moves. It changes nothing when fewer than n
// moves have been played.
func (m *Match) Undo(n int) error {
	if n <= 0 {
		return nil
	}
	if n > len(m.history) {
		return ErrNothingToUndo
	}
	for range n {
		last := m.history[len(m.history)-1]
		m.history = m.history[:len(m.history)-1]
		m.board.SetOwner(last, hex.None)
	}
	m.winner = hex.None
	m.draw = false
	m.toMove = m.SideOf(len(m.history))
	return nil
}

// WinningPath returns the winner's connecting chain, or nil.
func (m *Match) WinningPath() []hex.Coord {
	if m.winner == hex.None {
		return nil
	}
	return m.board.WinningPath(m.winner)
}

// Reset clears the board and gives the first move back to the opener.
func (m *Match) Reset() {
	m.board.Reset()
	m.history = m.history[:0]
	m.toMove = m.first
	m.winner = hex.None
	m.draw = false
}
