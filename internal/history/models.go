package history

import (
	"time"
)

// Position is the last cursor position recorded for a file.
type Position struct {
	Path      string    `json:"path"`
	Row       int       `json:"row"`
	Col       int       `json:"col"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SaveRecord is one successful write of a file.
type SaveRecord struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Path      string    `json:"path"`
	Lines     int       `json:"lines"`
	Bytes     int       `json:"bytes"`
	SavedAt   time.Time `json:"saved_at"`
}
