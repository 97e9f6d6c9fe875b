package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-hex/internal/multiplayer"
)

// OnlineMatchResult represents the outcome of an online match.
type OnlineMatchResult struct {
	ID             int64
	MatchID        string
	GameID         string
	Player1Session string
	Player2Session string
	WinnerSession  string // Empty for a draw
	EndReason      string
	MoveCount      int
	Duration       int // Duration in seconds
	CreatedAt      time.Time
}

// SaveOnlineMatch records the result of an online match.
// Returns the ID of the inserted record.
func (s *Store) SaveOnlineMatch(result OnlineMatchResult) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO online_matches
		 (match_id, game_id, player1_session, player2_session, winner_session, end_reason, move_count, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		result.MatchID,
		result.GameID,
		result.Player1Session,
		result.Player2Session,
		result.WinnerSession,
		result.EndReason,
		result.MoveCount,
		result.Duration,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save online match: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

const matchColumns = `id, match_id, game_id, player1_session, player2_session,
		winner_session, end_reason, move_count, duration_secs, created_at`

func scanMatch(row rowScanner) (OnlineMatchResult, error) {
	var result OnlineMatchResult
	var createdAt any
	var winnerSession sql.NullString
	err := row.Scan(
		&result.ID,
		&result.MatchID,
		&result.GameID,
		&result.Player1Session,
		&result.Player2Session,
		&winnerSession,
		&result.EndReason,
		&result.MoveCount,
		&result.Duration,
		&createdAt,
	)
	result.WinnerSession = winnerSession.String
	result.CreatedAt = parseTime(createdAt)
	return result, err
}

// OnlineMatchByID retrieves an online match by its match ID, or nil.
func (s *Store) OnlineMatchByID(matchID string) (*OnlineMatchResult, error) {
	result, err := scanMatch(s.db.QueryRow(`SELECT `+matchColumns+` FROM online_matches WHERE match_id = ?`, matchID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query online match: %w", err)
	}
	return &result, nil
}

// RecentOnlineMatches retrieves the most recent online matches.
func (s *Store) RecentOnlineMatches(limit int) ([]OnlineMatchResult, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+matchColumns+`
		 FROM online_matches
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query online matches: %w", err)
	}
	defer rows.Close()

	var results []OnlineMatchResult
	for rows.Next() {
		result, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return results, nil
}

// SaveMatchResult implements multiplayer.MatchResultSaver.
func (s *Store) SaveMatchResult(data multiplayer.MatchResultData) error {
	_, err := s.SaveOnlineMatch(OnlineMatchResult{
		MatchID:        data.MatchID,
		GameID:         data.GameID,
		Player1Session: data.Player1Session,
		Player2Session: data.Player2Session,
		WinnerSession:  data.WinnerSession,
		EndReason:      data.EndReason,
		MoveCount:      data.MoveCount,
		Duration:       data.DurationSecs,
	})
	return err
}

var _ multiplayer.MatchResultSaver = (*Store)(nil)
