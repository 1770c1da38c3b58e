package harness

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/artpar/quill/internal/app"
	"github.com/artpar/quill/internal/config"
	"github.com/artpar/quill/internal/history"
	"github.com/artpar/quill/internal/history/sqlite"
	"github.com/artpar/quill/internal/tui"
)

// TUIRunner provides TUI testing capabilities.
type TUIRunner struct {
	harness *E2EHarness
}

// TUISession represents an active TUI test session. It drives the
// bubbletea model directly rather than a running program.
type TUISession struct {
	runner  *TUIRunner
	app     *app.App
	model   *tui.Model
	t       *testing.T
	history history.Store
	quit    bool
}

// Start opens path in a new session with an 80x24 screen.
func (r *TUIRunner) Start(t *testing.T, path string) *TUISession {
	t.Helper()
	return r.StartWithSize(t, path, 80, 24)
}

// StartWithSize opens path with custom dimensions.
func (r *TUIRunner) StartWithSize(t *testing.T, path string, width, height int) *TUISession {
	t.Helper()

	cfg, err := config.Load(r.harness.configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	store, err := sqlite.NewInMemory()
	if err != nil {
		t.Fatalf("failed to create in-memory history store: %v", err)
	}

	a := app.New(app.WithConfig(cfg), app.WithHistory(store))
	t.Cleanup(func() { a.Close() })

	s, err := a.OpenSession(context.Background(), path)
	if err != nil {
		t.Fatalf("failed to open session: %v", err)
	}

	model := tui.NewModel(s, tui.WithVersion("test"))
	model.Update(tea.WindowSizeMsg{Width: width, Height: height})

	return &TUISession{
		runner:  r,
		app:     a,
		model:   model,
		t:       t,
		history: store,
	}
}

// SendKey sends a key press by name ("esc", "enter", "up", ...) or a
// single character.
func (s *TUISession) SendKey(key string) *TUISession {
	if s.quit {
		s.t.Fatalf("key %q sent after quit", key)
	}
	_, cmd := s.model.Update(parseKeyMsg(key))
	s.executeCmd(cmd)
	return s
}

// SendKeys sends multiple key presses.
func (s *TUISession) SendKeys(keys ...string) *TUISession {
	for _, key := range keys {
		s.SendKey(key)
	}
	return s
}

// Type sends a sequence of rune keys.
func (s *TUISession) Type(text string) *TUISession {
	for _, r := range text {
		s.SendKey(string(r))
	}
	return s
}

// Command types ":" + line and presses enter.
func (s *TUISession) Command(line string) *TUISession {
	return s.Type(":" + line).SendKey("enter")
}

// executeCmd records quit commands. Status expiry ticks are not run.
func (s *TUISession) executeCmd(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	if _, ok := cmd().(tea.QuitMsg); ok {
		s.quit = true
	}
}

// Output returns the current screen.
func (s *TUISession) Output() string {
	return s.model.View()
}

// Quitted reports whether the program asked to exit.
func (s *TUISession) Quitted() bool {
	return s.quit
}

// Close ends the session the way the CLI does.
func (s *TUISession) Close() {
	s.t.Helper()
	if err := s.app.CloseSession(context.Background(), s.model.Session()); err != nil {
		s.t.Fatalf("failed to close session: %v", err)
	}
}

// Model returns the underlying model for direct assertions.
func (s *TUISession) Model() *tui.Model {
	return s.model
}

// History returns the in-memory history store.
func (s *TUISession) History() history.Store {
	return s.history
}

// parseKeyMsg converts key string to tea.KeyMsg.
func parseKeyMsg(key string) tea.KeyMsg {
	switch strings.ToLower(key) {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc", "escape":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}
