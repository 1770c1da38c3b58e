package vim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	t.Run("string names", func(t *testing.T) {
		assert.Equal(t, "q", RuneKey('q').String())
		assert.Equal(t, "enter", Key{Type: KeyEnter}.String())
		assert.Equal(t, "esc", Key{Type: KeyEsc}.String())
		assert.Equal(t, "backspace", Key{Type: KeyBackspace}.String())
	})

	t.Run("printable", func(t *testing.T) {
		assert.True(t, RuneKey('a').Printable())
		assert.True(t, RuneKey('é').Printable())
		assert.True(t, RuneKey(' ').Printable())
		assert.False(t, RuneKey('\t').Printable())
		assert.False(t, Key{Type: KeyEnter}.Printable())
	})
}

func TestParseKeys(t *testing.T) {
	t.Run("plain characters", func(t *testing.T) {
		keys, err := ParseKeys("ihi")
		require.NoError(t, err)
		assert.Equal(t, []Key{RuneKey('i'), RuneKey('h'), RuneKey('i')}, keys)
	})

	t.Run("special keys are case insensitive", func(t *testing.T) {
		keys, err := ParseKeys("<Esc><cr><BS><up><DOWN><Left><right><lt><Space>")
		require.NoError(t, err)
		assert.Equal(t, []Key{
			{Type: KeyEsc},
			{Type: KeyEnter},
			{Type: KeyBackspace},
			{Type: KeyUp},
			{Type: KeyDown},
			{Type: KeyLeft},
			{Type: KeyRight},
			RuneKey('<'),
			RuneKey(' '),
		}, keys)
	})

	t.Run("newline is enter and carriage return is dropped", func(t *testing.T) {
		keys, err := ParseKeys(":wq\r\n")
		require.NoError(t, err)
		assert.Equal(t, []Key{RuneKey(':'), RuneKey('w'), RuneKey('q'), {Type: KeyEnter}}, keys)
	})

	t.Run("unterminated bracket", func(t *testing.T) {
		_, err := ParseKeys("a<Esc")
		assert.ErrorIs(t, err, ErrBadKeyNotation)
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := ParseKeys("<F13>")
		assert.ErrorIs(t, err, ErrBadKeyNotation)
	})
}
