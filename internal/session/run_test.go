package session

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/artpar/quill/internal/buffer"
	"github.com/artpar/quill/internal/vim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type recordingRenderer struct {
	frames []Frame
	lines  [][]string
}

func (r *recordingRenderer) Render(f Frame) error {
	r.frames = append(r.frames, f)
	lines := make([]string, f.Doc.LineCount())
	for i := range lines {
		lines[i] = f.Doc.Line(i)
	}
	r.lines = append(r.lines, lines)
	return nil
}

func (r *recordingRenderer) last() Frame {
	return r.frames[len(r.frames)-1]
}

func TestRun(t *testing.T) {
	t.Run("insert then save and quit writes the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.txt")
		s := openTestSession(t, path)
		keys, err := ParseScript("ihello<Esc>:wq<CR>")
		require.NoError(t, err)
		r := &recordingRenderer{}

		err = s.Run(context.Background(), keys, r)
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "hello", string(data))
		assert.True(t, s.Quit())
		assert.Equal(t, 0, keys.Remaining())
	})

	t.Run("renders after every key", func(t *testing.T) {
		s := newTestSession(t, "")
		keys, err := ParseScript("iab<Esc>q")
		require.NoError(t, err)
		r := &recordingRenderer{}

		err = s.Run(context.Background(), keys, r)
		require.ErrorIs(t, err, ErrInputClosed)

		// initial frame plus one per key
		require.Len(t, r.frames, 6)
		assert.Equal(t, vim.ModeInsert, r.frames[1].Mode)
		assert.Equal(t, []string{"a"}, r.lines[2])
		assert.Equal(t, vim.ModeNormal, r.frames[4].Mode)
		assert.True(t, r.last().PendingQuit)
		assert.True(t, r.last().Dirty)
	})

	t.Run("dirty quit twice exits and leaves the file alone", func(t *testing.T) {
		path := writeFile(t, "keep me")
		s := openTestSession(t, path)
		keys, err := ParseScript("xxxxqq")
		require.NoError(t, err)

		err = s.Run(context.Background(), keys, &recordingRenderer{})
		require.NoError(t, err)
		assert.Equal(t, "keep me", readFile(t, path))
	})

	t.Run("wq without a file name keeps running", func(t *testing.T) {
		s := newTestSession(t, "")
		keys, err := ParseScript("ihello<Esc>:wq<CR>")
		require.NoError(t, err)
		r := &recordingRenderer{}

		err = s.Run(context.Background(), keys, r)
		assert.ErrorIs(t, err, ErrInputClosed)
		assert.False(t, s.Quit())
		assert.Equal(t, "Error saving file: no file name", r.last().Status)
	})

	t.Run("renderer errors stop the loop", func(t *testing.T) {
		s := newTestSession(t, "")
		boom := errors.New("boom")
		err := s.Run(context.Background(), NewScriptedKeys(), RendererFunc(func(Frame) error { return boom }))
		assert.ErrorIs(t, err, boom)
	})

	t.Run("cancelled context stops the loop", func(t *testing.T) {
		s := newTestSession(t, "")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := s.Run(ctx, NewScriptedKeys(vim.RuneKey('i')), &recordingRenderer{})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestStatusWriter(t *testing.T) {
	var out bytes.Buffer
	sw := NewStatusWriter(&out)

	require.NoError(t, sw.Render(Frame{Status: "one"}))
	require.NoError(t, sw.Render(Frame{Status: "one"}))
	require.NoError(t, sw.Render(Frame{}))
	require.NoError(t, sw.Render(Frame{Status: "two"}))

	assert.Equal(t, "one\ntwo\n", out.String())
}

func TestLoadSaveRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		lines := rapid.SliceOfN(rapid.StringMatching(`[a-zA-Z0-9 ]{0,20}`), 1, 6).Draw(t, "lines")
		trailing := rapid.Bool().Draw(t, "trailing")
		content := ""
		for i, l := range lines {
			if i > 0 {
				content += "\n"
			}
			content += l
		}
		if trailing {
			content += "\n"
		}

		path := filepath.Join(os.TempDir(), "quill-roundtrip-"+rapid.StringMatching(`[a-z]{12}`).Draw(t, "name"))
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("write: %v", err)
		}
		defer os.Remove(path)

		buf, err := buffer.Load(path)
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		s := New(buf)
		for _, k := range []vim.Key{vim.RuneKey(':'), vim.RuneKey('w'), enter} {
			s.HandleKey(k)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if string(data) != content {
			t.Fatalf("round trip changed content: %q -> %q", content, string(data))
		}
	})
}

var propertyKeys = []vim.Key{
	vim.RuneKey('h'), vim.RuneKey('j'), vim.RuneKey('k'), vim.RuneKey('l'),
	{Type: vim.KeyUp}, {Type: vim.KeyDown}, {Type: vim.KeyLeft}, {Type: vim.KeyRight},
	vim.RuneKey('x'), vim.RuneKey('i'), vim.RuneKey('a'), vim.RuneKey('Z'),
	esc, enter, backspace,
}

func TestCursorStaysInBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		lines := rapid.SliceOfN(rapid.StringMatching(`[a-z ]{0,15}`), 1, 6).Draw(t, "lines")
		content := ""
		for i, l := range lines {
			if i > 0 {
				content += "\n"
			}
			content += l
		}
		s := New(buffer.FromString(content))

		n := rapid.IntRange(1, 200).Draw(t, "numKeys")
		for i := 0; i < n; i++ {
			k := rapid.SampledFrom(propertyKeys).Draw(t, "key")
			s.HandleKey(k)

			buf := s.Buffer()
			if buf.LineCount() < 1 {
				t.Fatalf("buffer has no lines")
			}
			if !s.Cursor().Valid(buf, s.Mode() == vim.ModeInsert) {
				t.Fatalf("cursor %+v invalid in mode %s for %q", s.Cursor(), s.Mode(), buf.Lines())
			}
		}
	})
}

func TestNormalMovementNeverDirties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		lines := rapid.SliceOfN(rapid.StringMatching(`[a-z]{0,10}`), 1, 5).Draw(t, "lines")
		content := ""
		for i, l := range lines {
			if i > 0 {
				content += "\n"
			}
			content += l
		}
		s := New(buffer.FromString(content))
		moves := rapid.SliceOf(rapid.SampledFrom(propertyKeys[:8])).Draw(t, "moves")
		for _, k := range moves {
			s.HandleKey(k)
			if !s.Cursor().Valid(s.Buffer(), false) {
				t.Fatalf("cursor %+v out of bounds", s.Cursor())
			}
		}
		if s.Dirty() {
			t.Fatalf("movement dirtied the buffer")
		}
	})
}
