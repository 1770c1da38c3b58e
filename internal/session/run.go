package session

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/artpar/quill/internal/vim"
)

// ErrInputClosed is returned by Run when the key source runs dry before the
// session quits.
var ErrInputClosed = errors.New("input ended before quit")

// KeySource blocks until the next keystroke is available.
type KeySource interface {
	ReadKey(ctx context.Context) (vim.Key, error)
}

// Renderer draws a frame.
type Renderer interface {
	Render(f Frame) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(f Frame) error

// Render calls f.
func (f RendererFunc) Render(frame Frame) error {
	return f(frame)
}

// Run alternates between rendering and reading one key until the session
// quits. It renders once more after the final key.
func (s *Session) Run(ctx context.Context, keys KeySource, r Renderer) error {
	for {
		if err := r.Render(s.Frame()); err != nil {
			return fmt.Errorf("failed to render: %w", err)
		}
		if s.quit {
			return nil
		}

		k, err := keys.ReadKey(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return ErrInputClosed
			}
			return fmt.Errorf("failed to read key: %w", err)
		}
		s.HandleKey(k)
	}
}

// ScriptedKeys is a KeySource that replays a fixed list of keys and then
// reports io.EOF.
type ScriptedKeys struct {
	keys []vim.Key
	pos  int
}

// NewScriptedKeys creates a source replaying keys in order.
func NewScriptedKeys(keys ...vim.Key) *ScriptedKeys {
	return &ScriptedKeys{keys: keys}
}

// ParseScript creates a source from key notation; see vim.ParseKeys.
func ParseScript(script string) (*ScriptedKeys, error) {
	keys, err := vim.ParseKeys(script)
	if err != nil {
		return nil, err
	}
	return NewScriptedKeys(keys...), nil
}

// ReadKey returns the next key.
func (sk *ScriptedKeys) ReadKey(ctx context.Context) (vim.Key, error) {
	if err := ctx.Err(); err != nil {
		return vim.Key{}, err
	}
	if sk.pos >= len(sk.keys) {
		return vim.Key{}, io.EOF
	}
	k := sk.keys[sk.pos]
	sk.pos++
	return k, nil
}

// Remaining returns how many keys have not been read yet.
func (sk *ScriptedKeys) Remaining() int {
	return len(sk.keys) - sk.pos
}

// StatusWriter is a Renderer for headless runs. It writes each new status
// message to w on its own line.
type StatusWriter struct {
	w    io.Writer
	last string
}

// NewStatusWriter creates a StatusWriter.
func NewStatusWriter(w io.Writer) *StatusWriter {
	return &StatusWriter{w: w}
}

// Render writes the frame's status if it changed.
func (sw *StatusWriter) Render(f Frame) error {
	if f.Status == "" || f.Status == sw.last {
		return nil
	}
	sw.last = f.Status
	_, err := fmt.Fprintln(sw.w, f.Status)
	return err
}
