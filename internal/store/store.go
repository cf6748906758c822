package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
	_ "modernc.org/sqlite"

	"github.com/valpere/waitlist/internal"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS submission_attempts (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL,
		email_key TEXT NOT NULL,
		source TEXT NOT NULL,
		base_url TEXT NOT NULL,
		outcome TEXT NOT NULL,
		status_code INTEGER DEFAULT 0,
		detail TEXT DEFAULT '',
		latency_ms INTEGER DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_attempts_email_key ON submission_attempts(email_key);
	CREATE INDEX IF NOT EXISTS idx_attempts_created ON submission_attempts(created_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// SaveAttempt appends one attempt to the journal.
func (s *Store) SaveAttempt(ctx context.Context, a internal.Attempt) error {
	if a.Timestamp.IsZero() {
		a.Timestamp = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO submission_attempts (id, email, email_key, source, base_url, outcome, status_code, detail, latency_ms, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Email, normalizeEmail(a.Email), a.Source, a.BaseURL, a.Outcome, a.StatusCode, a.Detail, a.Latency.Milliseconds(), a.Timestamp)
	return err
}

// ListAttempts returns the newest attempts first. limit <= 0 returns all of them.
func (s *Store) ListAttempts(ctx context.Context, limit int) ([]internal.Attempt, error) {
	query := `SELECT id, email, source, base_url, outcome, status_code, detail, latency_ms, created_at FROM submission_attempts ORDER BY created_at DESC, rowid DESC`
	var args []interface{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []internal.Attempt
	for rows.Next() {
		var a internal.Attempt
		var latencyMs int64
		if err := rows.Scan(&a.ID, &a.Email, &a.Source, &a.BaseURL, &a.Outcome, &a.StatusCode, &a.Detail, &latencyMs, &a.Timestamp); err != nil {
			return nil, err
		}
		a.Latency = time.Duration(latencyMs) * time.Millisecond
		results = append(results, a)
	}

	return results, rows.Err()
}

// AttemptsForEmail returns every attempt whose address normalizes to the same
// key as email, newest first.
func (s *Store) AttemptsForEmail(ctx context.Context, email string) ([]internal.Attempt, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, email, source, base_url, outcome, status_code, detail, latency_ms, created_at FROM submission_attempts WHERE email_key = ? ORDER BY created_at DESC, rowid DESC`,
		normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []internal.Attempt
	for rows.Next() {
		var a internal.Attempt
		var latencyMs int64
		if err := rows.Scan(&a.ID, &a.Email, &a.Source, &a.BaseURL, &a.Outcome, &a.StatusCode, &a.Detail, &latencyMs, &a.Timestamp); err != nil {
			return nil, err
		}
		a.Latency = time.Duration(latencyMs) * time.Millisecond
		results = append(results, a)
	}

	return results, rows.Err()
}

// JournalStats summarises the attempt journal.
type JournalStats struct {
	TotalAttempts  int
	Joined         int
	Invalid        int
	Rejected       int
	Unreachable    int
	DistinctEmails int
}

// Stats returns summary statistics for the journal.
func (s *Store) Stats(ctx context.Context) (*JournalStats, error) {
	stats := &JournalStats{}

	err := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN outcome = 'joined' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN outcome = 'invalid' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN outcome = 'rejected' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN outcome = 'unreachable' THEN 1 ELSE 0 END), 0),
			COUNT(DISTINCT email_key)
		FROM submission_attempts`).Scan(
		&stats.TotalAttempts,
		&stats.Joined,
		&stats.Invalid,
		&stats.Rejected,
		&stats.Unreachable,
		&stats.DistinctEmails,
	)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// DeleteAttempt permanently removes a journal entry by ID.
func (s *Store) DeleteAttempt(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM submission_attempts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("attempt not found: %s", id)
	}
	return nil
}

// ClearAttempts removes all journal entries.
func (s *Store) ClearAttempts(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM submission_attempts`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) Close() error {
	return s.db.Close()
}

// normalizeEmail trims whitespace, applies Unicode NFC normalization and
// lower-cases the address so that lookups ignore case and composition.
func normalizeEmail(email string) string {
	return strings.ToLower(norm.NFC.String(strings.TrimSpace(email)))
}
