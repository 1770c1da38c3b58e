package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/artpar/quill/internal/vim"
)

// TranslateKey converts a bubbletea key message into editor keys. Pasted
// text arrives as several runes and yields one key per rune. Ctrl+C is
// treated as Esc.
func TranslateKey(msg tea.KeyMsg) []vim.Key {
	switch msg.Type {
	case tea.KeyRunes:
		keys := make([]vim.Key, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			keys = append(keys, vim.RuneKey(r))
		}
		return keys
	case tea.KeySpace:
		return []vim.Key{vim.RuneKey(' ')}
	case tea.KeyEnter:
		return []vim.Key{{Type: vim.KeyEnter}}
	case tea.KeyEsc, tea.KeyCtrlC:
		return []vim.Key{{Type: vim.KeyEsc}}
	case tea.KeyBackspace, tea.KeyCtrlH:
		return []vim.Key{{Type: vim.KeyBackspace}}
	case tea.KeyTab:
		return []vim.Key{{Type: vim.KeyTab}}
	case tea.KeyUp:
		return []vim.Key{{Type: vim.KeyUp}}
	case tea.KeyDown:
		return []vim.Key{{Type: vim.KeyDown}}
	case tea.KeyLeft:
		return []vim.Key{{Type: vim.KeyLeft}}
	case tea.KeyRight:
		return []vim.Key{{Type: vim.KeyRight}}
	}
	return []vim.Key{{Type: vim.KeyUnknown}}
}
