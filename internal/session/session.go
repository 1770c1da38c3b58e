// Package session is the editing engine: it owns the buffer, cursor, mode
// and quit state of one editing session and applies one keystroke at a time.
package session

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/artpar/quill/internal/buffer"
	"github.com/artpar/quill/internal/cursor"
	"github.com/artpar/quill/internal/vim"
	"github.com/google/uuid"
)

// HelpMessage is shown when a session starts.
const HelpMessage = "HELP: ESC = normal mode | i = insert mode | :w = save | :q = quit | :wq = save and quit"

// SaveEvent describes a successful save.
type SaveEvent struct {
	SessionID string
	Path      string
	Lines     int
	Bytes     int
	At        time.Time
}

// SaveHook is called after every successful save.
type SaveHook func(SaveEvent)

// Session holds all editable state. It is not safe for concurrent use; one
// control loop owns it.
type Session struct {
	id    string
	buf   *buffer.Buffer
	cur   cursor.Cursor
	modes *vim.ModeManager
	keys  *vim.KeyMap[*Session]

	pendingQuit bool
	quit        bool

	status        string
	statusAt      time.Time
	statusTimeout time.Duration

	logger *slog.Logger
	now    func() time.Time
	onSave []SaveHook
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		s.logger = l
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// WithStatusTimeout sets how long status messages stay visible. Zero keeps
// them until replaced.
func WithStatusTimeout(d time.Duration) Option {
	return func(s *Session) {
		s.statusTimeout = d
	}
}

// WithSaveHook registers a hook run after each successful save.
func WithSaveHook(h SaveHook) Option {
	return func(s *Session) {
		s.onSave = append(s.onSave, h)
	}
}

// WithID sets the session ID instead of a random one.
func WithID(id string) Option {
	return func(s *Session) {
		s.id = id
	}
}

// New creates a session editing buf, in normal mode with the cursor at the
// top of the document.
func New(buf *buffer.Buffer, opts ...Option) *Session {
	s := &Session{
		id:     uuid.NewString(),
		buf:    buf,
		modes:  vim.NewModeManager(),
		keys:   newKeyMap(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if buf.IsNew() {
		s.setStatus(fmt.Sprintf("New file: %s", buf.Path()))
	} else {
		s.setStatus(HelpMessage)
	}
	return s
}

// HandleKey applies one keystroke and reports whether the session is over.
// Keys with no binding in the current mode are ignored.
func (s *Session) HandleKey(k vim.Key) bool {
	if s.quit {
		return true
	}

	mode := s.modes.Current()
	if mode != vim.ModeNormal || k != vim.RuneKey('q') {
		s.pendingQuit = false
	}

	s.keys.Dispatch(mode, s, k)
	return s.quit
}

// ID returns the session ID.
func (s *Session) ID() string {
	return s.id
}

// Buffer returns the buffer being edited.
func (s *Session) Buffer() *buffer.Buffer {
	return s.buf
}

// Cursor returns the cursor position.
func (s *Session) Cursor() cursor.Cursor {
	return s.cur
}

// SetCursor moves the cursor to c, clamped to the document.
func (s *Session) SetCursor(c cursor.Cursor) {
	s.cur = c.Clamp(s.buf, s.modes.IsInsert())
}

// Mode returns the active mode.
func (s *Session) Mode() vim.Mode {
	return s.modes.Current()
}

// CommandLine returns the command being typed in command mode.
func (s *Session) CommandLine() string {
	return s.modes.CommandBuffer()
}

// Dirty reports unsaved changes.
func (s *Session) Dirty() bool {
	return s.buf.Dirty()
}

// PendingQuit reports whether q was pressed once on a dirty buffer.
func (s *Session) PendingQuit() bool {
	return s.pendingQuit
}

// Quit reports whether the session has ended.
func (s *Session) Quit() bool {
	return s.quit
}

// Status returns the current status message, or "" once it has expired.
func (s *Session) Status() string {
	if s.status == "" {
		return ""
	}
	if s.statusTimeout > 0 && s.now().Sub(s.statusAt) >= s.statusTimeout {
		return ""
	}
	return s.status
}

// ClearStatus removes the status message.
func (s *Session) ClearStatus() {
	s.status = ""
}

// Save writes the buffer to path, or to the bound path when path is empty.
// A successful save to an explicit path binds the session to it.
func (s *Session) Save(path string) (string, error) {
	n, err := s.buf.Save(path)
	if err != nil {
		s.logger.Error("save failed", "path", s.targetName(path), "error", err)
		return "", err
	}
	if path != "" {
		s.buf.SetPath(path)
	}

	event := SaveEvent{
		SessionID: s.id,
		Path:      s.buf.Path(),
		Lines:     s.buf.LineCount(),
		Bytes:     n,
		At:        s.now(),
	}
	s.logger.Info("saved", "path", event.Path, "lines", event.Lines, "bytes", event.Bytes)
	for _, h := range s.onSave {
		h(event)
	}

	return fmt.Sprintf("Saved %d lines to %s", event.Lines, event.Path), nil
}

func (s *Session) targetName(path string) string {
	if path != "" {
		return path
	}
	return s.buf.Path()
}

func (s *Session) setStatus(msg string) {
	s.status = msg
	s.statusAt = s.now()
}

func (s *Session) exit(reason string) {
	s.quit = true
	s.pendingQuit = false
	s.logger.Info("session ended", "reason", reason, "path", s.buf.Path(), "dirty", s.buf.Dirty())
}
