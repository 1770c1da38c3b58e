package session

import (
	"github.com/artpar/quill/internal/command"
	"github.com/artpar/quill/internal/vim"
)

// newKeyMap builds the (mode, key) dispatch table.
func newKeyMap() *vim.KeyMap[*Session] {
	km := vim.NewKeyMap[*Session]()

	// Normal mode
	km.Register(vim.ModeNormal, "i", "insert mode", (*Session).enterInsert)
	km.Register(vim.ModeNormal, ":", "command mode", (*Session).enterCommand)
	km.Register(vim.ModeNormal, "x", "delete character", (*Session).deleteUnderCursor)
	km.Register(vim.ModeNormal, "q", "quit", (*Session).quitKey)
	km.Register(vim.ModeNormal, "h", "move left", (*Session).moveLeft)
	km.Register(vim.ModeNormal, "left", "move left", (*Session).moveLeft)
	km.Register(vim.ModeNormal, "j", "move down", (*Session).moveDown)
	km.Register(vim.ModeNormal, "down", "move down", (*Session).moveDown)
	km.Register(vim.ModeNormal, "k", "move up", (*Session).moveUp)
	km.Register(vim.ModeNormal, "up", "move up", (*Session).moveUp)
	km.Register(vim.ModeNormal, "l", "move right", (*Session).moveRight)
	km.Register(vim.ModeNormal, "right", "move right", (*Session).moveRight)

	// Insert mode
	km.Register(vim.ModeInsert, "esc", "normal mode", (*Session).leaveInsert)
	km.Register(vim.ModeInsert, "enter", "new line", (*Session).newline)
	km.Register(vim.ModeInsert, "backspace", "delete before cursor", (*Session).backspace)
	km.Register(vim.ModeInsert, "left", "move left", (*Session).moveLeft)
	km.Register(vim.ModeInsert, "down", "move down", (*Session).moveDown)
	km.Register(vim.ModeInsert, "up", "move up", (*Session).moveUp)
	km.Register(vim.ModeInsert, "right", "move right", (*Session).moveRight)
	km.Register(vim.ModeInsert, vim.ClassPrintable, "insert text", (*Session).insertChar)

	// Command mode
	km.Register(vim.ModeCommand, "esc", "cancel", (*Session).abortCommand)
	km.Register(vim.ModeCommand, "enter", "run command", (*Session).runCommand)
	km.Register(vim.ModeCommand, "backspace", "delete character", (*Session).commandBackspace)
	km.Register(vim.ModeCommand, vim.ClassPrintable, "type command", (*Session).commandChar)

	return km
}

// Bindings lists the key bindings of mode as key/description pairs.
func Bindings(mode vim.Mode) [][2]string {
	var out [][2]string
	for _, kb := range newKeyMap().Bindings(mode) {
		out = append(out, [2]string{kb.Key(), kb.Description()})
	}
	return out
}

func (s *Session) insertMode() bool {
	return s.modes.IsInsert()
}

// Normal mode

func (s *Session) enterInsert(vim.Key) {
	s.modes.SetMode(vim.ModeInsert)
	s.setStatus("-- INSERT --")
}

func (s *Session) enterCommand(vim.Key) {
	s.modes.SetMode(vim.ModeCommand)
}

func (s *Session) deleteUnderCursor(vim.Key) {
	if s.buf.DeleteCharAt(s.cur.Row, s.cur.Col) {
		s.cur = s.cur.Clamp(s.buf, false)
	}
}

func (s *Session) quitKey(vim.Key) {
	switch {
	case !s.buf.Dirty():
		s.exit("quit")
	case !s.pendingQuit:
		s.pendingQuit = true
		s.setStatus("WARNING! File has unsaved changes. Press q again to quit without saving.")
	default:
		s.exit("quit without saving")
	}
}

func (s *Session) moveLeft(vim.Key) {
	s.cur = s.cur.MoveLeft(s.buf, s.insertMode())
}

func (s *Session) moveRight(vim.Key) {
	s.cur = s.cur.MoveRight(s.buf, s.insertMode())
}

func (s *Session) moveUp(vim.Key) {
	s.cur = s.cur.MoveUp(s.buf, s.insertMode())
}

func (s *Session) moveDown(vim.Key) {
	s.cur = s.cur.MoveDown(s.buf, s.insertMode())
}

// Insert mode

func (s *Session) leaveInsert(vim.Key) {
	s.modes.SetMode(vim.ModeNormal)
	s.cur = s.cur.Clamp(s.buf, false)
	s.ClearStatus()
}

func (s *Session) insertChar(k vim.Key) {
	s.buf.InsertChar(s.cur.Row, s.cur.Col, k.Rune)
	s.cur.Col++
}

func (s *Session) newline(vim.Key) {
	s.buf.SplitLine(s.cur.Row, s.cur.Col)
	s.cur.Row++
	s.cur.Col = 0
}

func (s *Session) backspace(vim.Key) {
	if s.cur.Col > 0 {
		if s.buf.DeleteCharAt(s.cur.Row, s.cur.Col-1) {
			s.cur.Col--
		}
		return
	}
	if at, ok := s.buf.JoinWithPrevious(s.cur.Row); ok {
		s.cur.Row--
		s.cur.Col = at
	}
}

// Command mode

func (s *Session) commandChar(k vim.Key) {
	s.modes.AppendToCommandBuffer(k.Rune)
}

func (s *Session) commandBackspace(k vim.Key) {
	if !s.modes.BackspaceCommandBuffer() {
		s.abortCommand(k)
	}
}

func (s *Session) abortCommand(vim.Key) {
	s.modes.SetMode(vim.ModeNormal)
}

func (s *Session) runCommand(vim.Key) {
	line := s.modes.CommandBuffer()
	s.modes.SetMode(vim.ModeNormal)

	res := command.Run(line, s)
	if res.Err != nil {
		s.logger.Warn("command failed", "command", line, "error", res.Err)
	}
	if res.Status != "" {
		s.setStatus(res.Status)
	}
	if res.Quit {
		s.exit(":" + line)
	}
}
