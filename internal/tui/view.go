package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/artpar/quill/internal/session"
	"github.com/artpar/quill/internal/vim"
)

// View renders the document rows, the status bar and the message bar.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	f := m.session.Frame()

	lines := m.renderRows(f)
	lines = append(lines, m.renderStatusBar(f), m.renderMessageBar(f))
	return strings.Join(lines, "\n")
}

func (m *Model) renderRows(f session.Frame) []string {
	rows := m.textRows()
	out := make([]string, 0, rows)
	empty := f.Doc.LineCount() == 1 && f.Doc.LineLen(0) == 0

	for y := 0; y < rows; y++ {
		row := y + m.rowOff
		switch {
		case row < f.Doc.LineCount():
			cursorCol := -1
			if row == f.Cursor.Row && f.Mode != vim.ModeCommand {
				cursorCol = f.Cursor.Col
			}
			out = append(out, m.renderLine(f.Doc.Line(row), cursorCol))
		case empty && y == rows/3:
			out = append(out, m.renderWelcome())
		default:
			out = append(out, m.styles.Filler.Render("~"))
		}
	}
	return out
}

// renderLine draws the visible part of line, highlighting the rune at
// cursorCol. A cursor past the end is drawn as a blank cell.
func (m *Model) renderLine(line string, cursorCol int) string {
	var b strings.Builder
	right := m.colOff + m.width
	x := 0
	runes := []rune(line)

	for i, r := range runes {
		w := cellWidth(r)
		if x >= right {
			break
		}
		if x < m.colOff {
			x += w
			if x > m.colOff {
				b.WriteString(strings.Repeat(" ", min(x, right)-m.colOff))
			}
			continue
		}
		if x+w > right {
			break
		}
		cell := glyph(r)
		if i == cursorCol {
			cell = m.styles.Cursor.Render(cell)
		}
		b.WriteString(cell)
		x += w
	}

	if cursorCol >= len(runes) && x >= m.colOff && x < right {
		b.WriteString(m.styles.Cursor.Render(" "))
	}
	return b.String()
}

func (m *Model) renderWelcome() string {
	welcome := fmt.Sprintf("quill -- version %s", m.version)
	pad := (m.width - lipgloss.Width(welcome)) / 2
	if pad <= 1 {
		return Truncate(welcome, m.width)
	}
	return m.styles.Filler.Render("~") + strings.Repeat(" ", pad-1) + m.styles.Welcome.Render(welcome)
}

// renderStatusBar draws " NAME - N lines [modified]", the mode badge and
// the cursor position. Only the name is shortened when space runs out.
func (m *Model) renderStatusBar(f session.Frame) string {
	name := f.Path
	if name == "" {
		name = "[No Name]"
	}
	suffix := fmt.Sprintf(" - %d lines ", f.Doc.LineCount())
	if f.Dirty {
		suffix += "[modified] "
	}
	badge := m.styles.ModeBadge(f.Mode)
	pos := fmt.Sprintf(" %d:%d ", f.Cursor.Row+1, f.Cursor.Col+1)

	room := m.width - lipgloss.Width(badge) - lipgloss.Width(pos)
	nameRoom := room - 1 - runewidth.StringWidth(suffix)
	if nameRoom < 1 {
		short := ""
		if f.Dirty {
			short = "[modified]"
		}
		if room < 0 {
			return m.styles.StatusBar.Render(Truncate(short, m.width))
		}
		return m.styles.StatusBar.Render(PadRight(short, room)) + badge + m.styles.StatusBar.Render(pos)
	}

	left := " " + Truncate(name, nameRoom) + suffix
	return m.styles.StatusBar.Render(PadRight(left, room)) + badge + m.styles.StatusBar.Render(pos)
}

func (m *Model) renderMessageBar(f session.Frame) string {
	if f.Mode == vim.ModeCommand {
		line := Truncate(":"+f.CommandLine, m.width-1)
		return line + m.styles.Cursor.Render(" ")
	}

	msg := Truncate(f.Status, m.width)
	if isWarning(f.Status) {
		return m.styles.Warning.Render(msg)
	}
	return m.styles.Message.Render(msg)
}

func isWarning(status string) bool {
	for _, prefix := range []string{"WARNING", "Error", "Unknown command", "File has unsaved"} {
		if strings.HasPrefix(status, prefix) {
			return true
		}
	}
	return false
}
