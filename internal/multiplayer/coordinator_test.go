package multiplayer

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

// lineGame is a tiny turn-based game: each cell may be taken once, a move
// on row 9 wins, and the game is drawn after limit moves.
type lineGame struct {
	taken  map[Move]bool
	toMove PlayerID
	moves  int
	winner PlayerID
	limit  int
}

type lineSnapshot struct{ moves int }

func (lineSnapshot) IsGameSnapshot() {}

func newLineGame(limit int) *lineGame {
	return &lineGame{taken: make(map[Move]bool), toMove: Player1, limit: limit}
}

func (g *lineGame) Apply(player PlayerID, mv Move) error {
	if g.taken[mv] {
		return errors.New("occupied")
	}
	g.taken[mv] = true
	g.moves++
	if mv.Row == 9 {
		g.winner = player
	}
	g.toMove = player.Other()
	return nil
}

func (g *lineGame) Snapshot() GameSnapshot { return lineSnapshot{moves: g.moves} }
func (g *lineGame) ToMove() PlayerID       { return g.toMove }
func (g *lineGame) IsGameOver() bool       { return g.winner != 0 || g.moves >= g.limit }
func (g *lineGame) Winner() PlayerID       { return g.winner }
func (g *lineGame) MoveCount() int         { return g.moves }

type resultRecorder struct {
	results chan MatchResultData
}

func (r *resultRecorder) SaveMatchResult(data MatchResultData) error {
	r.results <- data
	return nil
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func waitFor[T SessionEvent](t *testing.T, s *ChannelSession) T {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-s.Events():
			if e, ok := evt.(T); ok {
				return e
			}
		case <-deadline:
			var zero T
			t.Fatalf("session %s: timed out waiting for %T", s.ID(), zero)
			return zero
		}
	}
}

type fixture struct {
	coord  *Coordinator
	host   *ChannelSession
	joiner *ChannelSession
	saved  *resultRecorder
}

func newFixture(t *testing.T, cfg CoordinatorConfig, limit int) *fixture {
	t.Helper()
	cfg.Logger = quietLogger()
	sessions := NewSessionRegistry()
	f := &fixture{
		host:   NewChannelSession("host", 0),
		joiner: NewChannelSession("joiner", 0),
		saved:  &resultRecorder{results: make(chan MatchResultData, 1)},
	}
	sessions.Register(f.host)
	sessions.Register(f.joiner)

	f.coord = NewCoordinator(cfg, func(string) (OnlineGame, error) {
		return newLineGame(limit), nil
	}, sessions)
	f.coord.SetResultSaver(f.saved)
	f.coord.Start()
	t.Cleanup(f.coord.Stop)
	return f
}

// start creates a lobby, joins it and returns the match id once both sides
// have seen the opening snapshot.
func (f *fixture) start(t *testing.T) MatchID {
	t.Helper()
	f.coord.Send(CreateLobbyMsg{SessionID: f.host.ID(), GameID: "line"})
	created := waitFor[LobbyCreatedEvent](t, f.host)
	if len(created.Code) != 6 {
		t.Fatalf("join code %q is not 6 characters", created.Code)
	}

	f.coord.Send(JoinLobbyMsg{SessionID: f.joiner.ID(), Code: " " + created.Code + " "})
	hostStart := waitFor[MatchStartedEvent](t, f.host)
	joinStart := waitFor[MatchStartedEvent](t, f.joiner)
	if hostStart.Side != Player1 || joinStart.Side != Player2 {
		t.Fatalf("sides = %v, %v", hostStart.Side, joinStart.Side)
	}
	if hostStart.MatchID != joinStart.MatchID {
		t.Fatal("players were told different match ids")
	}
	for _, s := range []*ChannelSession{f.host, f.joiner} {
		if snap := waitFor[SnapshotEvent](t, s); snap.Seq != 0 {
			t.Fatalf("opening snapshot seq = %d", snap.Seq)
		}
	}
	return hostStart.MatchID
}

func TestMatchPlaysToCompletion(t *testing.T) {
	f := newFixture(t, DefaultCoordinatorConfig(), 10)
	id := f.start(t)

	f.coord.Send(PlayerMoveMsg{MatchID: id, Player: Player2, Move: Move{Row: 0, Col: 0}})
	rejected := waitFor[MoveRejectedEvent](t, f.joiner)
	if rejected.Reason != ErrNotYourTurn.Error() {
		t.Errorf("out-of-turn reason = %q", rejected.Reason)
	}

	f.coord.Send(PlayerMoveMsg{MatchID: id, Player: Player1, Move: Move{Row: 0, Col: 0}})
	for _, s := range []*ChannelSession{f.host, f.joiner} {
		if snap := waitFor[SnapshotEvent](t, s); snap.Seq != 1 {
			t.Fatalf("snapshot seq = %d, want 1", snap.Seq)
		}
	}

	f.coord.Send(PlayerMoveMsg{MatchID: id, Player: Player2, Move: Move{Row: 0, Col: 0}})
	if r := waitFor[MoveRejectedEvent](t, f.joiner); r.Reason != "occupied" {
		t.Errorf("occupied reason = %q", r.Reason)
	}

	f.coord.Send(PlayerMoveMsg{MatchID: id, Player: Player2, Move: Move{Row: 9, Col: 1}})
	ended := waitFor[MatchEndedEvent](t, f.host)
	if ended.Reason != MatchEndReasonCompleted || ended.Winner != Player2 || ended.MoveCount != 2 {
		t.Errorf("host saw %+v", ended)
	}
	waitFor[MatchEndedEvent](t, f.joiner)

	select {
	case data := <-f.saved.results:
		if data.WinnerSession != "joiner" || data.MoveCount != 2 || data.GameID != "line" {
			t.Errorf("saved %+v", data)
		}
		if data.MatchID != string(id) {
			t.Errorf("saved match id %q, want %q", data.MatchID, id)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("result was not saved")
	}

	if f.coord.MatchCount() != 0 {
		t.Errorf("MatchCount() = %d after the match ended", f.coord.MatchCount())
	}
}

func TestMatchDraw(t *testing.T) {
	f := newFixture(t, DefaultCoordinatorConfig(), 2)
	id := f.start(t)

	f.coord.Send(PlayerMoveMsg{MatchID: id, Player: Player1, Move: Move{Row: 0, Col: 0}})
	f.coord.Send(PlayerMoveMsg{MatchID: id, Player: Player2, Move: Move{Row: 0, Col: 1}})

	ended := waitFor[MatchEndedEvent](t, f.host)
	if ended.Winner != 0 || ended.Reason != MatchEndReasonCompleted {
		t.Errorf("draw ended as %+v", ended)
	}
	if data := <-f.saved.results; data.WinnerSession != "" {
		t.Errorf("draw saved winner %q", data.WinnerSession)
	}
}

func TestDisconnectAwardsOpponent(t *testing.T) {
	f := newFixture(t, DefaultCoordinatorConfig(), 10)
	f.start(t)

	f.coord.Send(SessionDisconnectedMsg{SessionID: f.host.ID()})
	ended := waitFor[MatchEndedEvent](t, f.joiner)
	if ended.Reason != MatchEndReasonDisconnect || ended.Winner != Player2 {
		t.Errorf("joiner saw %+v", ended)
	}
}

func TestClosedSessionEndsMatch(t *testing.T) {
	f := newFixture(t, DefaultCoordinatorConfig(), 10)
	f.start(t)

	f.joiner.Close()
	ended := waitFor[MatchEndedEvent](t, f.host)
	if ended.Reason != MatchEndReasonDisconnect || ended.Winner != Player1 {
		t.Errorf("host saw %+v", ended)
	}
}

func TestLeaveMatchForfeits(t *testing.T) {
	f := newFixture(t, DefaultCoordinatorConfig(), 10)
	id := f.start(t)

	f.coord.Send(LeaveMatchMsg{SessionID: f.joiner.ID(), MatchID: id})
	if ended := waitFor[MatchEndedEvent](t, f.host); ended.Winner != Player1 {
		t.Errorf("leaving player's opponent did not win: %+v", ended)
	}
}

func TestTurnTimeout(t *testing.T) {
	cfg := DefaultCoordinatorConfig()
	cfg.TurnTimeout = 50 * time.Millisecond
	f := newFixture(t, cfg, 10)
	f.start(t)

	ended := waitFor[MatchEndedEvent](t, f.joiner)
	if ended.Reason != MatchEndReasonTurnTimeout || ended.Winner != Player2 {
		t.Errorf("timeout ended as %+v", ended)
	}
}

func TestJoinErrors(t *testing.T) {
	f := newFixture(t, DefaultCoordinatorConfig(), 10)

	f.coord.Send(JoinLobbyMsg{SessionID: f.joiner.ID(), Code: "NOPE42"})
	if e := waitFor[LobbyErrorEvent](t, f.joiner); e.Message != "Lobby not found" {
		t.Errorf("unknown code: %q", e.Message)
	}

	f.coord.Send(CreateLobbyMsg{SessionID: f.host.ID(), GameID: "line"})
	created := waitFor[LobbyCreatedEvent](t, f.host)

	f.coord.Send(CreateLobbyMsg{SessionID: f.host.ID(), GameID: "line"})
	if e := waitFor[LobbyErrorEvent](t, f.host); e.Message != "Already in a lobby" {
		t.Errorf("second lobby: %q", e.Message)
	}

	f.coord.Send(JoinLobbyMsg{SessionID: f.host.ID(), Code: created.Code})
	if e := waitFor[LobbyErrorEvent](t, f.host); e.Message != "Already in a lobby" {
		t.Errorf("host joining own lobby: %q", e.Message)
	}

	f.coord.Send(CancelLobbyMsg{SessionID: f.host.ID(), Code: created.Code})
	f.coord.Send(JoinLobbyMsg{SessionID: f.joiner.ID(), Code: created.Code})
	if e := waitFor[LobbyErrorEvent](t, f.joiner); e.Message != "Lobby not found" {
		t.Errorf("cancelled lobby: %q", e.Message)
	}
}

func TestExpiredLobbiesAreRemoved(t *testing.T) {
	cfg := DefaultCoordinatorConfig()
	cfg.LobbyTimeout = time.Millisecond
	f := newFixture(t, cfg, 10)

	f.coord.Send(CreateLobbyMsg{SessionID: f.host.ID(), GameID: "line"})
	created := waitFor[LobbyCreatedEvent](t, f.host)
	if _, ok := f.coord.GetLobby(created.Code); !ok {
		t.Fatal("lobby missing right after creation")
	}

	time.Sleep(5 * time.Millisecond)
	f.coord.cleanupExpiredLobbies()

	if e := waitFor[LobbyErrorEvent](t, f.host); e.Message != "Lobby expired" {
		t.Errorf("expiry message %q", e.Message)
	}
	if f.coord.LobbyCount() != 0 {
		t.Errorf("LobbyCount() = %d", f.coord.LobbyCount())
	}
}

func TestChannelSessionDropsOldest(t *testing.T) {
	s := NewChannelSession(NewSessionID(), 2)
	s.Send(LobbyPlayerLeftEvent{Code: "1"})
	s.Send(LobbyPlayerLeftEvent{Code: "2"})
	s.Send(LobbyPlayerLeftEvent{Code: "3"})

	first := (<-s.Events()).(LobbyPlayerLeftEvent)
	second := (<-s.Events()).(LobbyPlayerLeftEvent)
	if first.Code != "2" || second.Code != "3" {
		t.Errorf("kept %q, %q; want 2, 3", first.Code, second.Code)
	}

	s.Close()
	s.Close()
	s.Send(LobbyPlayerLeftEvent{Code: "4"})
	select {
	case evt := <-s.Events():
		t.Errorf("closed session received %v", evt)
	default:
	}
}

func TestSessionRegistry(t *testing.T) {
	r := NewSessionRegistry()
	s := NewChannelSession("a", 1)
	r.Register(s)
	if got, ok := r.Get("a"); !ok || got.ID() != "a" {
		t.Error("Get() after Register failed")
	}
	if r.Count() != 1 {
		t.Errorf("Count() = %d", r.Count())
	}
	r.Unregister("a")
	if _, ok := r.Get("a"); ok {
		t.Error("Get() after Unregister succeeded")
	}
}

func TestIDsAreUnique(t *testing.T) {
	if NewMatchID() == NewMatchID() || NewSessionID() == NewSessionID() {
		t.Error("generated ids collide")
	}
	if code := generateJoinCode(); len(code) != 6 {
		t.Errorf("join code %q", code)
	}
}
