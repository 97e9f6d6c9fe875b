package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-hex/internal/multiplayer"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveScore("hex", 40); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()
	if high, _ := store.HighScore("hex"); high != 40 {
		t.Errorf("HighScore() after reopen = %d", high)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore("hex", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("hex_diamond", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("hex", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not in descending order: %v", scores)
	}

	other, err := store.TopScores("hex_diamond", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(other) != 1 {
		t.Errorf("Expected 1 diamond score, got %d", len(other))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := range 5 {
		store.SaveScore("hex", (i+1)*100)
	}

	scores, err := store.TopScores("hex", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("hex")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty variant, got %d", high)
	}

	store.SaveScore("hex", 100)
	store.SaveScore("hex", 300)
	store.SaveScore("hex", 200)

	high, err = store.HighScore("hex")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreGames(t *testing.T) {
	store := openTestStore(t)

	first := GameRecord{
		Variant: "hex", Size: 7, Shape: "hexagon", Strength: "search",
		HumanSide: "a", FirstSide: "a", Winner: "b",
		Moves: "d4 c5 e3", MoveCount: 3, DurationSecs: 12,
	}
	id, err := store.SaveGame(first)
	if err != nil {
		t.Fatalf("SaveGame() failed: %v", err)
	}
	if len(id) != 36 {
		t.Errorf("SaveGame() id %q is not a uuid", id)
	}

	got, err := store.GameByID(id)
	if err != nil || got == nil {
		t.Fatalf("GameByID() = %v, %v", got, err)
	}
	first.ID = id
	first.CreatedAt = got.CreatedAt
	if *got != first {
		t.Errorf("GameByID() = %+v, want %+v", *got, first)
	}

	missing, err := store.GameByID("no-such-game")
	if err != nil || missing != nil {
		t.Errorf("GameByID(missing) = %v, %v", missing, err)
	}

	second := first
	second.ID = "fixed-id"
	second.Winner = "a"
	if id, err := store.SaveGame(second); err != nil || id != "fixed-id" {
		t.Fatalf("SaveGame() with id = %q, %v", id, err)
	}
	if _, err := store.SaveGame(second); err == nil {
		t.Error("SaveGame() accepted a duplicate id")
	}

	recent, err := store.RecentGames(10)
	if err != nil {
		t.Fatalf("RecentGames() failed: %v", err)
	}
	if len(recent) != 2 || recent[0].ID != "fixed-id" {
		t.Errorf("RecentGames() = %+v, want newest first", recent)
	}
}

func TestStoreStrengthRecords(t *testing.T) {
	store := openTestStore(t)

	games := []GameRecord{
		{Strength: "search", HumanSide: "a", Winner: "a"},
		{Strength: "search", HumanSide: "b", Winner: "a"},
		{Strength: "search", HumanSide: "a", Winner: "none"},
		{Strength: "heuristic", HumanSide: "b", Winner: "b"},
		{Strength: "sampling", HumanSide: "none", Winner: "a"},
	}
	for _, g := range games {
		g.Variant, g.Shape, g.FirstSide = "hex", "hexagon", "a"
		if _, err := store.SaveGame(g); err != nil {
			t.Fatalf("SaveGame() failed: %v", err)
		}
	}

	records, err := store.StrengthRecords()
	if err != nil {
		t.Fatalf("StrengthRecords() failed: %v", err)
	}
	want := []StrengthRecord{
		{Strength: "heuristic", Wins: 1},
		{Strength: "search", Wins: 1, Losses: 1, Draws: 1},
	}
	if len(records) != len(want) {
		t.Fatalf("StrengthRecords() = %+v", records)
	}
	for i := range want {
		if records[i] != want[i] {
			t.Errorf("record %d = %+v, want %+v", i, records[i], want[i])
		}
	}
	if records[1].Played() != 3 {
		t.Errorf("Played() = %d", records[1].Played())
	}
}

func TestHumanResult(t *testing.T) {
	tests := []struct {
		human, winner, want string
	}{
		{"a", "a", "win"},
		{"a", "b", "loss"},
		{"b", "none", "draw"},
		{"none", "a", ""},
	}
	for _, tt := range tests {
		got := GameRecord{HumanSide: tt.human, Winner: tt.winner}.HumanResult()
		if got != tt.want {
			t.Errorf("HumanResult(%s vs %s) = %q, want %q", tt.human, tt.winner, got, tt.want)
		}
	}
}

func TestStoreClearVariant(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("hex", 100)
	store.SaveScore("hex_triangle", 300)
	store.SaveGame(GameRecord{Variant: "hex", Winner: "a", HumanSide: "a"})

	if err := store.ClearVariant("hex"); err != nil {
		t.Fatalf("ClearVariant() failed: %v", err)
	}

	if scores, _ := store.TopScores("hex", 10); len(scores) != 0 {
		t.Errorf("Expected 0 hex scores after clear, got %d", len(scores))
	}
	if games, _ := store.RecentGames(10); len(games) != 0 {
		t.Errorf("Expected 0 games after clear, got %d", len(games))
	}
	if scores, _ := store.TopScores("hex_triangle", 10); len(scores) != 1 {
		t.Error("Other variants should not be affected")
	}
}

func TestStoreVariantStats(t *testing.T) {
	store := openTestStore(t)
	store.SaveScore("hex", 100)
	store.SaveScore("hex", 300)

	stats, err := store.AllVariantStats()
	if err != nil {
		t.Fatalf("AllVariantStats() failed: %v", err)
	}
	hs, ok := stats["hex"]
	if !ok {
		t.Fatal("no stats for hex")
	}
	if hs.GamesCount != 2 || hs.HighScore != 300 || hs.AvgScore != 200 {
		t.Errorf("stats = %+v", hs)
	}
}

func TestStoreOnlineMatches(t *testing.T) {
	store := openTestStore(t)

	data := multiplayer.MatchResultData{
		MatchID:        "m-1",
		GameID:         "hex",
		Player1Session: "s1",
		Player2Session: "s2",
		WinnerSession:  "s2",
		EndReason:      multiplayer.MatchEndReasonCompleted.String(),
		MoveCount:      17,
		DurationSecs:   95,
	}
	if err := store.SaveMatchResult(data); err != nil {
		t.Fatalf("SaveMatchResult() failed: %v", err)
	}
	data.MatchID = "m-2"
	data.WinnerSession = ""
	if err := store.SaveMatchResult(data); err != nil {
		t.Fatalf("SaveMatchResult() failed: %v", err)
	}

	got, err := store.OnlineMatchByID("m-1")
	if err != nil || got == nil {
		t.Fatalf("OnlineMatchByID() = %v, %v", got, err)
	}
	if got.WinnerSession != "s2" || got.MoveCount != 17 || got.Duration != 95 {
		t.Errorf("OnlineMatchByID() = %+v", got)
	}

	if missing, err := store.OnlineMatchByID("nope"); err != nil || missing != nil {
		t.Errorf("OnlineMatchByID(missing) = %v, %v", missing, err)
	}

	recent, err := store.RecentOnlineMatches(1)
	if err != nil {
		t.Fatalf("RecentOnlineMatches() failed: %v", err)
	}
	if len(recent) != 1 || recent[0].MatchID != "m-2" || recent[0].WinnerSession != "" {
		t.Errorf("RecentOnlineMatches() = %+v", recent)
	}

	if err := store.SaveMatchResult(data); err == nil {
		t.Error("SaveMatchResult() accepted a duplicate match id")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
