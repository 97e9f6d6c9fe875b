package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GameRecord is one finished local game.
type GameRecord struct {
	ID           string // uuid, assigned by SaveGame when empty
	Variant      string
	Size         int
	Shape        string
	Strength     string
	HumanSide    string // a, b, or none for computer-only games
	FirstSide    string
	Winner       string // a, b, or none for a draw
	Moves        string // space separated cell names, e.g. "f6 e7 d7"
	MoveCount    int
	DurationSecs int
	CreatedAt    time.Time
}

// HumanResult returns "win", "loss" or "draw" from the human's point of
// view, or "" for a computer-only game.
func (r GameRecord) HumanResult() string {
	switch {
	case r.HumanSide == "none" || r.HumanSide == "":
		return ""
	case r.Winner == "none":
		return "draw"
	case r.Winner == r.HumanSide:
		return "win"
	default:
		return "loss"
	}
}

// StrengthRecord is the human's tally against one computer strength.
type StrengthRecord struct {
	Strength string
	Wins     int
	Losses   int
	Draws    int
}

// Played returns the number of games in the tally.
func (r StrengthRecord) Played() int {
	return r.Wins + r.Losses + r.Draws
}

// SaveGame stores a finished game and returns its id.
func (s *Store) SaveGame(rec GameRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	_, err := s.db.Exec(
		`INSERT INTO games
		 (id, variant, size, shape, strength, human_side, first_side, winner, moves, move_count, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.Variant,
		rec.Size,
		rec.Shape,
		rec.Strength,
		rec.HumanSide,
		rec.FirstSide,
		rec.Winner,
		rec.Moves,
		rec.MoveCount,
		rec.DurationSecs,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save game: %w", err)
	}
	return rec.ID, nil
}

const gameColumns = `id, variant, size, shape, strength, human_side, first_side,
		winner, moves, move_count, duration_secs, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGame(row rowScanner) (GameRecord, error) {
	var rec GameRecord
	var createdAt any
	err := row.Scan(
		&rec.ID,
		&rec.Variant,
		&rec.Size,
		&rec.Shape,
		&rec.Strength,
		&rec.HumanSide,
		&rec.FirstSide,
		&rec.Winner,
		&rec.Moves,
		&rec.MoveCount,
		&rec.DurationSecs,
		&createdAt,
	)
	rec.CreatedAt = parseTime(createdAt)
	return rec, err
}

// GameByID returns a stored game, or nil when no game has that id.
func (s *Store) GameByID(id string) (*GameRecord, error) {
	rec, err := scanGame(s.db.QueryRow(`SELECT `+gameColumns+` FROM games WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query game: %w", err)
	}
	return &rec, nil
}

// RecentGames returns the latest games, newest first.
func (s *Store) RecentGames(limit int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+gameColumns+`
		 FROM games
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query games: %w", err)
	}
	defer rows.Close()

	var games []GameRecord
	for rows.Next() {
		rec, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		games = append(games, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return games, nil
}

// StrengthRecords tallies the human's results against each computer
// strength, ordered by strength name. Computer-only games are ignored.
func (s *Store) StrengthRecords() ([]StrengthRecord, error) {
	rows, err := s.db.Query(
		`SELECT strength,
		        SUM(CASE WHEN winner = human_side THEN 1 ELSE 0 END),
		        SUM(CASE WHEN winner <> human_side AND winner <> 'none' THEN 1 ELSE 0 END),
		        SUM(CASE WHEN winner = 'none' THEN 1 ELSE 0 END)
		 FROM games
		 WHERE human_side <> 'none'
		 GROUP BY strength
		 ORDER BY strength`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query strength records: %w", err)
	}
	defer rows.Close()

	var records []StrengthRecord
	for rows.Next() {
		var r StrengthRecord
		if err := rows.Scan(&r.Strength, &r.Wins, &r.Losses, &r.Draws); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}
