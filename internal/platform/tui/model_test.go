package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-hex/internal/core"
	"github.com/vovakirdan/tui-hex/internal/games/hexgame"
	"github.com/vovakirdan/tui-hex/internal/hex"
	"github.com/vovakirdan/tui-hex/internal/storage"
)

func testModel(t *testing.T, store *storage.Store, human hex.Side) Model {
	t.Helper()
	game, err := hexgame.New("hex")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	settings := hexgame.DefaultSettings()
	settings.Size = 3
	settings.HumanSide = human
	settings.Strength = hex.StrengthSampling
	settings.ThinkDelay = 0
	game.Configure(settings)

	cfg := core.DefaultConfig()
	cfg.Seed = 7
	m := NewModel(game, store, cfg)
	m.Init()
	return m
}

func TestModelSavesFinishedGame(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "hex.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	m := testModel(t, store, hex.None)
	deadline := time.Now().Add(5 * time.Second)
	for !m.GameState().GameOver {
		if time.Now().After(deadline) {
			t.Fatal("computer game did not finish")
		}
		next, _ := m.Update(TickMsg(time.Now()))
		m = next.(Model)
		time.Sleep(time.Millisecond)
	}

	// Further ticks must not store the same game twice.
	for range 3 {
		next, _ := m.Update(TickMsg(time.Now()))
		m = next.(Model)
	}

	games, err := store.RecentGames(10)
	if err != nil {
		t.Fatalf("RecentGames() failed: %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("stored %d games, want 1", len(games))
	}
	if games[0].ID != m.LastSavedID() || games[0].Variant != "hex" || games[0].HumanSide != "none" {
		t.Errorf("stored game = %+v", games[0])
	}
}

func TestModelBackAndQuit(t *testing.T) {
	m := testModel(t, nil, hex.SideA)
	m.embedded = true
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	if !m.BackToMenu() || m.IsQuitting() {
		t.Errorf("embedded esc: back=%v quit=%v", m.BackToMenu(), m.IsQuitting())
	}

	m = testModel(t, nil, hex.SideA)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	if !m.IsQuitting() || cmd == nil {
		t.Error("standalone esc should quit")
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestModelMovesCursor(t *testing.T) {
	m := testModel(t, nil, hex.SideA)
	start := m.game.Cursor()

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = next.(Model)
	next, _ = m.Update(TickMsg(time.Now()))
	m = next.(Model)

	if m.game.Cursor() == start {
		t.Error("right arrow did not move the cursor")
	}
	if m.View() == "" {
		t.Error("View() is empty during play")
	}
}

func TestGameRecord(t *testing.T) {
	rec := GameRecord(hexgame.Record{
		Variant:   "hex_diamond",
		Size:      5,
		Shape:     "diamond",
		Strength:  "search",
		HumanSide: "b",
		First:     "a",
		Winner:    "b",
		Moves:     "c3 b2",
		MoveCount: 2,
		Duration:  90 * time.Second,
	})

	want := storage.GameRecord{
		Variant:      "hex_diamond",
		Size:         5,
		Shape:        "diamond",
		Strength:     "search",
		HumanSide:    "b",
		FirstSide:    "a",
		Winner:       "b",
		Moves:        "c3 b2",
		MoveCount:    2,
		DurationSecs: 90,
	}
	if rec != want {
		t.Errorf("GameRecord() = %+v, want %+v", rec, want)
	}
}
