package hexgame

import (
	"fmt"

	"github.com/vovakirdan/tui-hex/internal/config"
	"github.com/vovakirdan/tui-hex/internal/hex"
	"github.com/vovakirdan/tui-hex/internal/multiplayer"
)

// Online adapts a Match to multiplayer.OnlineGame. The host (Player1)
// plays side A and always moves first.
type Online struct {
	variant string
	match   *Match
}

// NewOnline creates an online game for a variant id.
func NewOnline(id string, size int, shape hex.Shape) (*Online, error) {
	v, ok := lookupVariant(id)
	if !ok {
		return nil, fmt.Errorf("hexgame: unknown variant %q", id)
	}
	if v.fixedShape {
		shape = v.shape
	}
	return &Online{variant: id, match: NewMatch(size, shape, hex.SideA)}, nil
}

// OnlineFactory returns the coordinator's game factory for the configured
// board size and shape.
func OnlineFactory(cfg config.HexConfig) multiplayer.GameFactory {
	return func(gameID string) (multiplayer.OnlineGame, error) {
		shape, err := cfg.BoardShape()
		if err != nil {
			return nil, fmt.Errorf("hexgame: %w", err)
		}
		return NewOnline(gameID, cfg.Board.Size, shape)
	}
}

// SideFor maps an online seat to a board side.
func SideFor(p multiplayer.PlayerID) hex.Side {
	if p == multiplayer.Player2 {
		return hex.SideB
	}
	return hex.SideA
}

// PlayerFor maps a board side to an online seat, 0 for hex.None.
func PlayerFor(s hex.Side) multiplayer.PlayerID {
	switch s {
	case hex.SideA:
		return multiplayer.Player1
	case hex.SideB:
		return multiplayer.Player2
	default:
		return 0
	}
}

// Apply plays mv for player.
func (o *Online) Apply(player multiplayer.PlayerID, mv multiplayer.Move) error {
	if SideFor(player) != o.match.ToMove() {
		return multiplayer.ErrNotYourTurn
	}
	return o.match.Play(hex.Coord{Row: mv.Row, Col: mv.Col})
}

// ToMove returns the seat to move, 0 once the game is over.
func (o *Online) ToMove() multiplayer.PlayerID { return PlayerFor(o.match.ToMove()) }

// IsGameOver reports whether the match has ended.
func (o *Online) IsGameOver() bool { return o.match.Over() }

// Winner returns the winning seat, 0 for a draw or an unfinished game.
func (o *Online) Winner() multiplayer.PlayerID { return PlayerFor(o.match.Winner()) }

// MoveCount returns the number of moves played.
func (o *Online) MoveCount() int { return o.match.MoveCount() }

// Snapshot returns an immutable copy of the position.
func (o *Online) Snapshot() multiplayer.GameSnapshot {
	b := o.match.Board()
	return Snapshot{
		Variant: o.variant,
		Size:    b.Size(),
		Shape:   b.Shape(),
		Moves:   o.match.History(),
		ToMove:  o.match.ToMove(),
		Winner:  o.match.Winner(),
		Draw:    o.match.Draw(),
	}
}

// Snapshot is the position sent to both players after every move. It
// carries the move list; the receiver rebuilds the board with Match.
type Snapshot struct {
	Variant string
	Size    int
	Shape   hex.Shape
	Moves   []hex.Coord
	ToMove  hex.Side
	Winner  hex.Side
	Draw    bool
}

// IsGameSnapshot implements multiplayer.GameSnapshot.
func (Snapshot) IsGameSnapshot() {}

// Match replays the snapshot's moves into a fresh match.
func (s Snapshot) Match() (*Match, error) {
	return Replay(s.Size, s.Shape, hex.SideA, s.Moves)
}
