// Package storage provides SQLite-based persistence for game scores and
// finished local matches.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db *sql.DB
}

// ScoreEntry represents a single high score record.
type ScoreEntry struct {
	ID         int64
	GameID     string
	Difficulty string
	Score      int
	CreatedAt  time.Time
}

// MatchResult represents the outcome of a head-to-head game played by two
// people at the same keyboard.
type MatchResult struct {
	ID        int64
	MatchID   string // Assigned by SaveMatch when empty
	GameID    string
	LeftName  string
	RightName string
	Score1    int
	Score2    int
	Winner    string // Empty for an abandoned match
	Moves     int
	Duration  int // Duration in seconds
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			difficulty TEXT NOT NULL DEFAULT '',
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_game_id ON scores(game_id);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, difficulty, score DESC);

		CREATE TABLE IF NOT EXISTS matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL UNIQUE,
			game_id TEXT NOT NULL,
			left_name TEXT NOT NULL,
			right_name TEXT NOT NULL,
			score1 INTEGER NOT NULL DEFAULT 0,
			score2 INTEGER NOT NULL DEFAULT 0,
			winner TEXT,
			moves INTEGER NOT NULL DEFAULT 0,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_matches_game_id ON matches(game_id);
		CREATE INDEX IF NOT EXISTS idx_matches_left ON matches(left_name);
		CREATE INDEX IF NOT EXISTS idx_matches_right ON matches(right_name);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// parseTime handles both driver-decoded times and raw SQLite text.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// SaveScore records a new score for the given game and difficulty.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(gameID, difficulty string, score int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO scores (game_id, difficulty, score) VALUES (?, ?, ?)",
		gameID, difficulty, score,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopScores retrieves the top N scores for the given game.
// An empty difficulty matches every difficulty.
// Results are ordered by score descending.
func (s *Store) TopScores(gameID, difficulty string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, difficulty, score, created_at
		 FROM scores
		 WHERE game_id = ? AND (? = '' OR difficulty = ?)
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		gameID, difficulty, difficulty, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameID, &e.Difficulty, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest score for the given game and difficulty.
// An empty difficulty matches every difficulty. Returns 0 if no scores exist.
func (s *Store) HighScore(gameID, difficulty string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE game_id = ? AND (? = '' OR difficulty = ?)",
		gameID, difficulty, difficulty,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearScores deletes all scores for the given game.
func (s *Store) ClearScores(gameID string) error {
	_, err := s.db.Exec("DELETE FROM scores WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// SaveMatch records a finished match. A random match ID is generated when
// result.MatchID is empty. Returns the match ID.
func (s *Store) SaveMatch(result MatchResult) (string, error) {
	if result.MatchID == "" {
		result.MatchID = uuid.New().String()
	}

	_, err := s.db.Exec(
		`INSERT INTO matches
		 (match_id, game_id, left_name, right_name, score1, score2, winner, moves, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		result.MatchID,
		result.GameID,
		result.LeftName,
		result.RightName,
		result.Score1,
		result.Score2,
		result.Winner,
		result.Moves,
		result.Duration,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save match: %w", err)
	}

	return result.MatchID, nil
}

const matchColumns = `id, match_id, game_id, left_name, right_name,
		score1, score2, winner, moves, duration_secs, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanMatch(row scanner) (MatchResult, error) {
	var result MatchResult
	var createdAt any
	var winner sql.NullString

	err := row.Scan(
		&result.ID,
		&result.MatchID,
		&result.GameID,
		&result.LeftName,
		&result.RightName,
		&result.Score1,
		&result.Score2,
		&winner,
		&result.Moves,
		&result.Duration,
		&createdAt,
	)
	if err != nil {
		return result, err
	}

	if winner.Valid {
		result.Winner = winner.String
	}
	result.CreatedAt = parseTime(createdAt)
	return result, nil
}

// MatchByID retrieves a match by its match ID. Returns nil if not found.
func (s *Store) MatchByID(matchID string) (*MatchResult, error) {
	row := s.db.QueryRow(
		`SELECT `+matchColumns+` FROM matches WHERE match_id = ?`,
		matchID,
	)

	result, err := scanMatch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query match: %w", err)
	}
	return &result, nil
}

// RecentMatches retrieves the most recent matches of a game, newest first.
// An empty gameID matches every game.
func (s *Store) RecentMatches(gameID string, limit int) ([]MatchResult, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+matchColumns+`
		 FROM matches
		 WHERE ? = '' OR game_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	return collectMatches(rows)
}

// PlayerMatches retrieves the matches a named player took part in.
func (s *Store) PlayerMatches(name string, limit int) ([]MatchResult, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+matchColumns+`
		 FROM matches
		 WHERE left_name = ? OR right_name = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		name, name, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query player matches: %w", err)
	}
	return collectMatches(rows)
}

func collectMatches(rows *sql.Rows) ([]MatchResult, error) {
	defer rows.Close()

	var results []MatchResult
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

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID     string
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	Matches    int
	LastPlayed time.Time
}

// GetGameStats retrieves aggregated statistics for a specific game.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(SUM(score), 0)
		 FROM scores WHERE game_id = ?`,
		gameID,
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore, &stats.TotalScore)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}

	err = s.db.QueryRow(
		`SELECT COUNT(*) FROM matches WHERE game_id = ?`,
		gameID,
	).Scan(&stats.Matches)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot count matches: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT MAX(created_at) FROM (
			SELECT created_at FROM scores WHERE game_id = ?
			UNION ALL
			SELECT created_at FROM matches WHERE game_id = ?
		 )`,
		gameID, gameID,
	).Scan(&lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// GetAllGamesStats retrieves statistics for all games that have been played.
func (s *Store) GetAllGamesStats() (map[string]*GameStats, error) {
	rows, err := s.db.Query(
		`SELECT game_id, COUNT(*), MAX(score), AVG(score), SUM(score), MAX(created_at)
		 FROM scores
		 GROUP BY game_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all games stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*GameStats)
	for rows.Next() {
		var gs GameStats
		var lastPlayed any
		if err := rows.Scan(&gs.GameID, &gs.GamesCount, &gs.HighScore, &gs.AvgScore, &gs.TotalScore, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		gs.LastPlayed = parseTime(lastPlayed)
		stats[gs.GameID] = &gs
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	mrows, err := s.db.Query(
		`SELECT game_id, COUNT(*), MAX(created_at) FROM matches GROUP BY game_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get match stats: %w", err)
	}
	defer mrows.Close()

	for mrows.Next() {
		var gameID string
		var count int
		var lastPlayed any
		if err := mrows.Scan(&gameID, &count, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan match stats row: %w", err)
		}
		gs, ok := stats[gameID]
		if !ok {
			gs = &GameStats{GameID: gameID}
			stats[gameID] = gs
		}
		gs.Matches = count
		if t := parseTime(lastPlayed); t.After(gs.LastPlayed) {
			gs.LastPlayed = t
		}
	}

	return stats, mrows.Err()
}
