// Package app wires configuration, logging and history around editing
// sessions.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/artpar/quill/internal/buffer"
	"github.com/artpar/quill/internal/config"
	"github.com/artpar/quill/internal/cursor"
	"github.com/artpar/quill/internal/history"
	"github.com/artpar/quill/internal/session"
)

// Hook names
const (
	HookSessionOpen  = "session_open"
	HookPostSave     = "post_save"
	HookSessionClose = "session_close"
)

// HookHandler is a function that handles a hook event.
type HookHandler func(ctx context.Context, data any) (any, error)

// App is the main application container with dependency injection.
type App struct {
	config  config.Config
	logger  *slog.Logger
	history history.Store
	hooks   map[string][]HookHandler
}

// Option is a function that configures the App.
type Option func(*App)

// New creates a new App with the given options.
func New(opts ...Option) *App {
	app := &App{
		config: config.Default(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		hooks:  make(map[string][]HookHandler),
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// WithConfig sets the application configuration.
func WithConfig(cfg config.Config) Option {
	return func(a *App) {
		a.config = cfg
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		a.logger = l
	}
}

// WithHistory sets the history store. Without one, nothing is remembered.
func WithHistory(store history.Store) Option {
	return func(a *App) {
		a.history = store
	}
}

// Config returns the application configuration.
func (a *App) Config() config.Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// OpenSession loads path and starts a session on it. An empty path starts
// an unnamed buffer; a nonexistent one starts a new file.
func (a *App) OpenSession(ctx context.Context, path string) (*session.Session, error) {
	var buf *buffer.Buffer
	if path == "" {
		buf = buffer.New()
	} else {
		var err error
		buf, err = buffer.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}
	}

	s := session.New(buf,
		session.WithLogger(a.logger),
		session.WithStatusTimeout(a.config.StatusTimeout),
		session.WithSaveHook(func(ev session.SaveEvent) {
			a.onSave(ctx, ev)
		}),
	)

	a.logger.Info("session opened",
		"session", s.ID(),
		"path", buf.Path(),
		"lines", buf.LineCount(),
		"new_file", buf.IsNew(),
	)

	if path != "" && !buf.IsNew() && a.config.History.RestoreCursor {
		a.restoreCursor(ctx, s)
	}

	if _, err := a.ExecuteHooks(ctx, HookSessionOpen, s); err != nil {
		return nil, fmt.Errorf("failed to run %s hooks: %w", HookSessionOpen, err)
	}

	return s, nil
}

// CloseSession records where the cursor was left and runs close hooks.
func (a *App) CloseSession(ctx context.Context, s *session.Session) error {
	if key, ok := historyKey(s.Buffer().Path()); ok && a.historyOn() {
		cur := s.Cursor()
		err := a.history.SavePosition(ctx, history.Position{Path: key, Row: cur.Row, Col: cur.Col})
		if err != nil {
			a.logger.Warn("failed to record cursor position", "path", key, "error", err)
		}
	}

	if _, err := a.ExecuteHooks(ctx, HookSessionClose, s); err != nil {
		return fmt.Errorf("failed to run %s hooks: %w", HookSessionClose, err)
	}
	return nil
}

// Close releases the history store.
func (a *App) Close() error {
	if a.history == nil {
		return nil
	}
	return a.history.Close()
}

// RegisterHook registers a hook handler for the given hook name.
func (a *App) RegisterHook(hook string, handler HookHandler) {
	a.hooks[hook] = append(a.hooks[hook], handler)
}

// GetHooks returns all handlers for the given hook.
func (a *App) GetHooks(hook string) []HookHandler {
	return a.hooks[hook]
}

// ExecuteHooks executes all handlers for the given hook in order, feeding
// each the previous handler's result.
func (a *App) ExecuteHooks(ctx context.Context, hook string, data any) (any, error) {
	result := data

	for _, handler := range a.hooks[hook] {
		var err error
		result, err = handler(ctx, result)
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

func (a *App) historyOn() bool {
	return a.history != nil && a.config.History.Enabled
}

func (a *App) restoreCursor(ctx context.Context, s *session.Session) {
	key, ok := historyKey(s.Buffer().Path())
	if !ok || !a.historyOn() {
		return
	}

	pos, err := a.history.Position(ctx, key)
	if errors.Is(err, history.ErrNotFound) {
		return
	}
	if err != nil {
		a.logger.Warn("failed to read cursor position", "path", key, "error", err)
		return
	}

	s.SetCursor(cursor.Cursor{Row: pos.Row, Col: pos.Col})
	a.logger.Debug("cursor restored", "path", key, "row", s.Cursor().Row, "col", s.Cursor().Col)
}

func (a *App) onSave(ctx context.Context, ev session.SaveEvent) {
	if key, ok := historyKey(ev.Path); ok && a.historyOn() {
		a.recordSave(ctx, key, ev)
	}

	if _, err := a.ExecuteHooks(ctx, HookPostSave, ev); err != nil {
		a.logger.Warn("post_save hook failed", "path", ev.Path, "error", err)
	}
}

func (a *App) recordSave(ctx context.Context, key string, ev session.SaveEvent) {
	_, err := a.history.RecordSave(ctx, history.SaveRecord{
		SessionID: ev.SessionID,
		Path:      key,
		Lines:     ev.Lines,
		Bytes:     ev.Bytes,
		SavedAt:   ev.At,
	})
	if err != nil {
		a.logger.Warn("failed to record save", "path", key, "error", err)
		return
	}

	if keep := a.config.History.MaxSaves; keep > 0 {
		if _, err := a.history.PruneSaves(ctx, key, keep); err != nil {
			a.logger.Warn("failed to prune save log", "path", key, "error", err)
		}
	}
}

func historyKey(path string) (string, bool) {
	if path == "" {
		return "", false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}
	return abs, true
}
