// Package history remembers per-file editing metadata between sessions: the
// last cursor position and a log of saves. File content itself is never
// stored here.
package history

import (
	"context"
	"errors"
)

// Common errors
var (
	ErrNotFound    = errors.New("history entry not found")
	ErrStoreClosed = errors.New("history store is closed")
)

// Store defines the interface for history storage operations. Paths are
// stored as given; callers pass absolute paths.
type Store interface {
	// SavePosition records the cursor position for a file, replacing any earlier one.
	SavePosition(ctx context.Context, pos Position) error

	// Position returns the recorded cursor position for path, or ErrNotFound.
	Position(ctx context.Context, path string) (Position, error)

	// RecordSave appends a save to the log and returns its ID.
	RecordSave(ctx context.Context, rec SaveRecord) (string, error)

	// ListSaves returns the most recent saves of path, newest first.
	// A limit of 0 returns all of them.
	ListSaves(ctx context.Context, path string, limit int) ([]SaveRecord, error)

	// PruneSaves keeps only the newest keep saves of path and returns how many were removed.
	PruneSaves(ctx context.Context, path string, keep int) (int64, error)

	// Close closes the store and releases resources.
	Close() error
}
