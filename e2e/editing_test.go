package e2e

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artpar/quill/e2e/harness"
	"github.com/artpar/quill/internal/session"
)

func TestScript_NewFile(t *testing.T) {
	h := harness.New(t, harness.Config{})
	path := h.Path("hello.txt")

	result, err := h.CLI().Script("ihello<Esc>:wq<CR>", path)
	require.NoError(t, err)
	assert.Equal(t, 0, result.ExitCode)

	assert.Equal(t, "hello", h.ReadFile(path))
	a := harness.NewAssertions(t)
	a.OutputContains(result.Stderr, "New file: "+path, "Saved 1 lines to "+path)
}

func TestScript_RoundTripPreservesBytes(t *testing.T) {
	h := harness.New(t, harness.Config{})
	content := "first\r\nsecond\r\n\r\nlast\r\n"
	path := h.WriteFile("crlf.txt", content)

	_, err := h.CLI().Script(":w<CR>:q<CR>", path)
	require.NoError(t, err)
	assert.Equal(t, content, h.ReadFile(path))
}

func TestScript_EditExistingFile(t *testing.T) {
	h := harness.New(t, harness.Config{})
	path := h.WriteFile("list.txt", "apple\nbanana\ncherry\n")

	_, err := h.CLI().Script("jxxxA<Esc>j<BS>:wq<CR>", path)
	require.NoError(t, err)
	// A, Esc and BS have no normal mode binding.
	assert.Equal(t, "apple\nana\ncherry\n", h.ReadFile(path))
}

func TestScript_QuitConfirmation(t *testing.T) {
	h := harness.New(t, harness.Config{})
	path := h.WriteFile("f.txt", "abc")

	t.Run("any other key cancels the pending quit", func(t *testing.T) {
		result, err := h.CLI().Script("xqlq", path)
		assert.ErrorIs(t, err, session.ErrInputClosed)
		assert.Equal(t, 1, result.ExitCode)
	})

	t.Run("q twice discards changes", func(t *testing.T) {
		result, err := h.CLI().Script("xqq", path)
		require.NoError(t, err)
		assert.Contains(t, result.Stderr, "WARNING! File has unsaved changes. Press q again to quit without saving.")
		assert.Equal(t, "abc", h.ReadFile(path))
	})

	t.Run(":q refuses and :q! forces", func(t *testing.T) {
		result, err := h.CLI().Script("x:q<CR>:q!<CR>", path)
		require.NoError(t, err)
		assert.Contains(t, result.Stderr, "File has unsaved changes. Use :q! to force quit.")
		assert.Equal(t, "abc", h.ReadFile(path))
	})
}

func TestScript_SaveAs(t *testing.T) {
	h := harness.New(t, harness.Config{})
	target := h.Path("named.txt")

	result, err := h.CLI().Script("inotes<Esc>:w<CR>:w "+target+"<CR>:q<CR>", "")
	require.NoError(t, err)
	assert.Contains(t, result.Stderr, "Error saving file: no file name")
	assert.Equal(t, "notes", h.ReadFile(target))
}

func TestScript_UnknownCommand(t *testing.T) {
	h := harness.New(t, harness.Config{})

	result, err := h.CLI().Script(":wat<CR>:q<CR>", "")
	require.NoError(t, err)
	assert.Contains(t, result.Stderr, "Unknown command: wat")
}

func TestScript_HistoryDatabase(t *testing.T) {
	h := harness.New(t, harness.Config{})
	path := h.WriteFile("f.txt", "a\nb\n")

	_, err := h.CLI().Script(":w<CR>:q<CR>", path)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(h.DataDir(), "history.db"))
}

func TestTUI_Journey(t *testing.T) {
	h := harness.New(t, harness.Config{})
	path := h.WriteFile("journey.txt", "one\ntwo\n")
	a := harness.NewAssertions(t)

	s := h.TUI().Start(t, path)
	out := s.Output()
	a.ModeVisible(out, "NORMAL")
	a.Modified(out, false)
	a.OutputContains(out, "journey.txt - 2 lines", "HELP: ESC = normal mode")

	s.SendKeys("j", "i").Type("X")
	out = s.Output()
	a.ModeVisible(out, "INSERT")
	a.Modified(out, true)
	a.MessageIs(out, "-- INSERT --")
	a.OutputContains(out, "Xtwo", " 2:2 ")

	s.SendKey("esc").Type(":w")
	out = s.Output()
	a.ModeVisible(out, "COMMAND")
	a.MessageIs(out, ":w ")

	s.SendKey("enter")
	out = s.Output()
	a.Modified(out, false)
	a.MessageIs(out, "Saved 2 lines to "+path)
	assert.Equal(t, "one\nXtwo\n", h.ReadFile(path))

	s.Command("q")
	assert.True(t, s.Quitted())
	s.Close()

	abs, err := filepath.Abs(path)
	require.NoError(t, err)
	pos, err := s.History().Position(context.Background(), abs)
	require.NoError(t, err)
	assert.Equal(t, 1, pos.Row)
	assert.Equal(t, 1, pos.Col)

	saves, err := s.History().ListSaves(context.Background(), abs, 0)
	require.NoError(t, err)
	assert.Len(t, saves, 1)
}

func TestTUI_CtrlCNeverQuits(t *testing.T) {
	h := harness.New(t, harness.Config{})
	s := h.TUI().Start(t, "")

	s.SendKey("i").Type("text").SendKey("ctrl+c").SendKey("ctrl+c")
	assert.False(t, s.Quitted())
	harness.NewAssertions(t).ModeVisible(s.Output(), "NORMAL")
}
