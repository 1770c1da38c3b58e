package session

import (
	"github.com/artpar/quill/internal/cursor"
	"github.com/artpar/quill/internal/vim"
)

// Document is read-only access to the lines being edited.
type Document interface {
	LineCount() int
	LineLen(row int) int
	Line(row int) string
}

// Frame is everything a renderer needs to draw the session after a keystroke.
type Frame struct {
	Doc         Document
	Cursor      cursor.Cursor
	Mode        vim.Mode
	Path        string
	Dirty       bool
	Status      string
	CommandLine string
	PendingQuit bool
}

// Frame snapshots the session for rendering.
func (s *Session) Frame() Frame {
	return Frame{
		Doc:         s.buf,
		Cursor:      s.cur,
		Mode:        s.modes.Current(),
		Path:        s.buf.Path(),
		Dirty:       s.buf.Dirty(),
		Status:      s.Status(),
		CommandLine: s.modes.CommandBuffer(),
		PendingQuit: s.pendingQuit,
	}
}
