// Package progress records scored attempts so learners can track improvement.
package progress

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ieee0824/pronounce-go/score"

	_ "modernc.org/sqlite"
)

const schema = `
	CREATE TABLE IF NOT EXISTS attempts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sentence TEXT NOT NULL,
		difficulty TEXT NOT NULL,
		acoustic REAL NOT NULL,
		content REAL NOT NULL,
		phoneme REAL,
		final REAL NOT NULL,
		createdAt REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS attempts_sentence ON attempts(sentence);
`

// Attempt is one scored recording.
type Attempt struct {
	ID         int64
	Sentence   string
	Difficulty score.Difficulty
	Scores     score.Bundle
	CreatedAt  time.Time
}

// Stats summarizes attempts.
type Stats struct {
	Attempts  int     `json:"attempts"`
	Successes int     `json:"successes"`
	Average   float64 `json:"average"`
	Best      float64 `json:"best"`
}

// SuccessRate returns Successes/Attempts, or 0 with no attempts.
func (s Stats) SuccessRate() float64 {
	if s.Attempts == 0 {
		return 0
	}
	return float64(s.Successes) / float64(s.Attempts)
}

// Store persists attempts in SQLite.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the database at path. Use ":memory:" for
// a throwaway store.
func Open(path string) (*Store, error) {
	dsn := path
	if path != ":memory:" {
		dsn = fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// :memory: databases are per-connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores an attempt and returns its ID.
func (s *Store) Record(ctx context.Context, sentence string, d score.Difficulty, b score.Bundle) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO attempts (sentence, difficulty, acoustic, content, phoneme, final, createdAt)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, sentence, string(d), b.Acoustic, b.Content, nullable(b.Phoneme),
		b.Final, unixFromTime(s.now()))
	if err != nil {
		return 0, fmt.Errorf("insert attempt: %w", err)
	}
	return res.LastInsertId()
}

// Recent returns up to limit attempts, newest first. An empty sentence
// matches every sentence.
func (s *Store) Recent(ctx context.Context, sentence string, limit int) ([]Attempt, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, sentence, difficulty, acoustic, content, phoneme, final, createdAt
		FROM attempts
		WHERE ? = '' OR sentence = ?
		ORDER BY createdAt DESC, id DESC
		LIMIT ?
	`, sentence, sentence, limit)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var out []Attempt
	for rows.Next() {
		var a Attempt
		var difficulty string
		var phoneme sql.NullFloat64
		var createdAt float64
		if err := rows.Scan(&a.ID, &a.Sentence, &difficulty, &a.Scores.Acoustic, &a.Scores.Content, &phoneme,
			&a.Scores.Final, &createdAt); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		a.Difficulty = score.Difficulty(difficulty)
		a.Scores.Phoneme = fromNull(phoneme)
		a.CreatedAt = timeFromUnix(createdAt)
		out = append(out, a)
	}
	return out, rows.Err()
}

// Stats summarizes attempts for sentence, or for all sentences when empty.
func (s *Store) Stats(ctx context.Context, sentence string) (Stats, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN final >= ? THEN 1 ELSE 0 END), 0),
		       COALESCE(AVG(final), 0),
		       COALESCE(MAX(final), 0)
		FROM attempts
		WHERE ? = '' OR sentence = ?
	`, score.SuccessThreshold, sentence, sentence)

	var st Stats
	if err := row.Scan(&st.Attempts, &st.Successes, &st.Average, &st.Best); err != nil {
		return Stats{}, fmt.Errorf("scan stats: %w", err)
	}
	return st, nil
}

// ByDifficulty summarizes attempts per difficulty level. Levels without
// attempts are absent from the map.
func (s *Store) ByDifficulty(ctx context.Context) (map[score.Difficulty]Stats, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT difficulty,
		       COUNT(*),
		       SUM(CASE WHEN final >= ? THEN 1 ELSE 0 END),
		       AVG(final),
		       MAX(final)
		FROM attempts
		GROUP BY difficulty
	`, score.SuccessThreshold)
	if err != nil {
		return nil, fmt.Errorf("query stats: %w", err)
	}
	defer rows.Close()

	out := make(map[score.Difficulty]Stats)
	for rows.Next() {
		var d string
		var st Stats
		if err := rows.Scan(&d, &st.Attempts, &st.Successes, &st.Average, &st.Best); err != nil {
			return nil, fmt.Errorf("scan stats: %w", err)
		}
		out[score.Difficulty(d)] = st
	}
	return out, rows.Err()
}

func nullable(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func fromNull(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func unixFromTime(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}

func timeFromUnix(f float64) time.Time {
	sec := int64(f)
	nsec := int64((f - float64(sec)) * 1e9)
	return time.Unix(sec, nsec)
}
