package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/artpar/quill/internal/vim"
)

// Styles holds the lipgloss styles used to draw the editor.
type Styles struct {
	Filler    lipgloss.Style
	Cursor    lipgloss.Style
	StatusBar lipgloss.Style
	Normal    lipgloss.Style
	Insert    lipgloss.Style
	Command   lipgloss.Style
	Message   lipgloss.Style
	Warning   lipgloss.Style
	Welcome   lipgloss.Style
}

// DefaultStyles returns default styling.
func DefaultStyles() Styles {
	badge := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	return Styles{
		Filler: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),
		Cursor: lipgloss.NewStyle().
			Reverse(true),
		StatusBar: lipgloss.NewStyle().
			Reverse(true),
		Normal: badge.
			Background(lipgloss.Color("34")).
			Foreground(lipgloss.Color("255")),
		Insert: badge.
			Background(lipgloss.Color("214")).
			Foreground(lipgloss.Color("0")),
		Command: badge.
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("229")),
		Message: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color("160")).
			Bold(true),
		Welcome: lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")),
	}
}

// ModeBadge renders the mode name in its colour.
func (s Styles) ModeBadge(m vim.Mode) string {
	switch m {
	case vim.ModeInsert:
		return s.Insert.Render(m.String())
	case vim.ModeCommand:
		return s.Command.Render(m.String())
	default:
		return s.Normal.Render(m.String())
	}
}

// cellWidth is the number of terminal columns r occupies. Control and
// zero-width runes are drawn as a single blank.
func cellWidth(r rune) int {
	if w := runewidth.RuneWidth(r); w > 0 {
		return w
	}
	return 1
}

func glyph(r rune) string {
	if runewidth.RuneWidth(r) == 0 {
		return " "
	}
	return string(r)
}

// displayCol returns the screen column of rune index col in line.
func displayCol(line string, col int) int {
	x := 0
	for i, r := range []rune(line) {
		if i >= col {
			break
		}
		x += cellWidth(r)
	}
	return x
}

// Truncate truncates a string to fit within a display width.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}

// PadRight pads a string with spaces to a display width, truncating longer
// strings.
func PadRight(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return runewidth.Truncate(s, width, "")
	}
	return s + strings.Repeat(" ", width-w)
}
