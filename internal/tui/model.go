// Package tui draws an editing session in the terminal with bubbletea and
// feeds terminal keystrokes back into it.
package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/artpar/quill/internal/session"
)

// statusExpiredMsg forces a redraw once the status message may have expired.
type statusExpiredMsg struct{}

// Model is the bubbletea model of one editing session.
type Model struct {
	session       *session.Session
	styles        Styles
	version       string
	statusTimeout time.Duration

	width  int
	height int
	rowOff int
	colOff int
}

// Option configures a Model.
type Option func(*Model)

// WithStatusTimeout schedules redraws so expired status messages disappear.
func WithStatusTimeout(d time.Duration) Option {
	return func(m *Model) {
		m.statusTimeout = d
	}
}

// WithStyles overrides the default styles.
func WithStyles(s Styles) Option {
	return func(m *Model) {
		m.styles = s
	}
}

// WithVersion sets the version shown on the welcome screen.
func WithVersion(v string) Option {
	return func(m *Model) {
		m.version = v
	}
}

// NewModel creates a model drawing s.
func NewModel(s *session.Session, opts ...Option) *Model {
	m := &Model{
		session: s,
		styles:  DefaultStyles(),
		version: "dev",
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Init schedules expiry of the startup message.
func (m *Model) Init() tea.Cmd {
	return m.expireStatus()
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		for _, k := range TranslateKey(msg) {
			if m.session.HandleKey(k) {
				return m, tea.Quit
			}
		}
		m.scroll()
		return m, m.expireStatus()

	case statusExpiredMsg:
		return m, nil
	}

	return m, nil
}

// SetSize sets the screen dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.scroll()
}

// Session returns the session being drawn.
func (m *Model) Session() *session.Session {
	return m.session
}

// Offsets returns the first visible row and display column.
func (m *Model) Offsets() (row, col int) {
	return m.rowOff, m.colOff
}

func (m *Model) expireStatus() tea.Cmd {
	if m.statusTimeout <= 0 || m.session.Status() == "" {
		return nil
	}
	return tea.Tick(m.statusTimeout, func(time.Time) tea.Msg {
		return statusExpiredMsg{}
	})
}

// textRows is the number of screen rows available for the document.
func (m *Model) textRows() int {
	if m.height-2 < 1 {
		return 1
	}
	return m.height - 2
}

// scroll moves the viewport so the cursor stays visible.
func (m *Model) scroll() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	cur := m.session.Cursor()
	rows := m.textRows()

	if cur.Row < m.rowOff {
		m.rowOff = cur.Row
	}
	if cur.Row >= m.rowOff+rows {
		m.rowOff = cur.Row - rows + 1
	}

	line := m.session.Buffer().Line(cur.Row)
	x := displayCol(line, cur.Col)
	w := 1
	if runes := []rune(line); cur.Col < len(runes) {
		w = cellWidth(runes[cur.Col])
	}

	if x < m.colOff {
		m.colOff = x
	}
	if x+w > m.colOff+m.width {
		m.colOff = x + w - m.width
	}
}

// Run draws s full screen until the session quits or ctx is cancelled.
func Run(ctx context.Context, s *session.Session, opts ...Option) error {
	p := tea.NewProgram(NewModel(s, opts...), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run terminal UI: %w", err)
	}
	return nil
}
