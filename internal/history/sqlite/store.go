package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/artpar/quill/internal/history"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Store implements history.Store using SQLite.
type Store struct {
	mu     sync.RWMutex
	db     *sql.DB
	closed bool
}

var _ history.Store = (*Store)(nil)

// New creates a new SQLite-based history store.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return store, nil
}

// NewInMemory creates a new in-memory SQLite store (useful for testing).
func NewInMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}
	// Each connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return store, nil
}

// initialize creates the necessary tables and indexes.
func (s *Store) initialize() error {
	schema := `
		CREATE TABLE IF NOT EXISTS positions (
			path TEXT PRIMARY KEY,
			row INTEGER NOT NULL,
			col INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS saves (
			id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			path TEXT NOT NULL,
			lines INTEGER NOT NULL,
			bytes INTEGER NOT NULL,
			saved_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_saves_path ON saves(path, saved_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// SavePosition records the cursor position for a file.
func (s *Store) SavePosition(ctx context.Context, pos history.Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return history.ErrStoreClosed
	}

	if pos.UpdatedAt.IsZero() {
		pos.UpdatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO positions (path, row, col, updated_at) VALUES (?, ?, ?, ?)",
		pos.Path, pos.Row, pos.Col, pos.UpdatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to save position: %w", err)
	}

	return nil
}

// Position returns the recorded cursor position for path.
func (s *Store) Position(ctx context.Context, path string) (history.Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return history.Position{}, history.ErrStoreClosed
	}

	pos := history.Position{Path: path}
	var updated int64
	err := s.db.QueryRowContext(ctx,
		"SELECT row, col, updated_at FROM positions WHERE path = ?",
		path,
	).Scan(&pos.Row, &pos.Col, &updated)

	if errors.Is(err, sql.ErrNoRows) {
		return history.Position{}, history.ErrNotFound
	}
	if err != nil {
		return history.Position{}, fmt.Errorf("failed to get position: %w", err)
	}

	pos.UpdatedAt = time.Unix(0, updated)
	return pos, nil
}

// RecordSave appends a save to the log.
func (s *Store) RecordSave(ctx context.Context, rec history.SaveRecord) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", history.ErrStoreClosed
	}

	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.SavedAt.IsZero() {
		rec.SavedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO saves (id, session_id, path, lines, bytes, saved_at) VALUES (?, ?, ?, ?, ?, ?)",
		rec.ID, rec.SessionID, rec.Path, rec.Lines, rec.Bytes, rec.SavedAt.UnixNano(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to record save: %w", err)
	}

	return rec.ID, nil
}

// ListSaves returns the most recent saves of path, newest first.
func (s *Store) ListSaves(ctx context.Context, path string, limit int) ([]history.SaveRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, history.ErrStoreClosed
	}

	query := "SELECT id, session_id, path, lines, bytes, saved_at FROM saves WHERE path = ? ORDER BY saved_at DESC, rowid DESC"
	args := []any{path}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list saves: %w", err)
	}
	defer rows.Close()

	var records []history.SaveRecord
	for rows.Next() {
		var rec history.SaveRecord
		var saved int64
		if err := rows.Scan(&rec.ID, &rec.SessionID, &rec.Path, &rec.Lines, &rec.Bytes, &saved); err != nil {
			return nil, fmt.Errorf("failed to scan save: %w", err)
		}
		rec.SavedAt = time.Unix(0, saved)
		records = append(records, rec)
	}

	return records, rows.Err()
}

// PruneSaves keeps only the newest keep saves of path.
func (s *Store) PruneSaves(ctx context.Context, path string, keep int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, history.ErrStoreClosed
	}
	if keep < 0 {
		keep = 0
	}

	result, err := s.db.ExecContext(ctx, `
		DELETE FROM saves WHERE path = ? AND id NOT IN (
			SELECT id FROM saves WHERE path = ? ORDER BY saved_at DESC, rowid DESC LIMIT ?
		)`,
		path, path, keep,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to prune saves: %w", err)
	}

	return result.RowsAffected()
}

// Close closes the store.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	return s.db.Close()
}
