package vim

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Common errors.
var (
	ErrBadKeyNotation = errors.New("bad key notation")
)

// KeyType identifies a key independently of the terminal backend.
type KeyType int

const (
	KeyRune KeyType = iota
	KeyEnter
	KeyEsc
	KeyBackspace
	KeyTab
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyUnknown
)

var keyNames = map[KeyType]string{
	KeyEnter:     "enter",
	KeyEsc:       "esc",
	KeyBackspace: "backspace",
	KeyTab:       "tab",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyUnknown:   "unknown",
}

// Key is a single keystroke. Rune is only meaningful for KeyRune.
type Key struct {
	Type KeyType
	Rune rune
}

// RuneKey returns the key that types r.
func RuneKey(r rune) Key {
	return Key{Type: KeyRune, Rune: r}
}

// String returns the binding name of the key: the character itself for rune
// keys, a lower-case name otherwise.
func (k Key) String() string {
	if k.Type == KeyRune {
		return string(k.Rune)
	}
	return keyNames[k.Type]
}

// Printable returns true for rune keys that insert visible text.
func (k Key) Printable() bool {
	return k.Type == KeyRune && unicode.IsPrint(k.Rune)
}

var notationNames = map[string]Key{
	"esc":       {Type: KeyEsc},
	"cr":        {Type: KeyEnter},
	"enter":     {Type: KeyEnter},
	"return":    {Type: KeyEnter},
	"bs":        {Type: KeyBackspace},
	"backspace": {Type: KeyBackspace},
	"tab":       {Type: KeyTab},
	"up":        {Type: KeyUp},
	"down":      {Type: KeyDown},
	"left":      {Type: KeyLeft},
	"right":     {Type: KeyRight},
	"space":     RuneKey(' '),
	"lt":        RuneKey('<'),
}

// ParseKeys turns a keystroke script into keys. Special keys are written in
// angle brackets, case-insensitively: <Esc>, <CR>, <BS>, <Tab>, <Up>, <Down>,
// <Left>, <Right>, <Space> and <lt> for a literal '<'. A newline is Enter and
// carriage returns are dropped.
func ParseKeys(script string) ([]Key, error) {
	var keys []Key
	runes := []rune(script)

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch r {
		case '\r':
			continue
		case '\n':
			keys = append(keys, Key{Type: KeyEnter})
			continue
		case '<':
			end := indexRune(runes[i+1:], '>')
			if end < 0 {
				return nil, fmt.Errorf("%w: unterminated '<' at offset %d", ErrBadKeyNotation, i)
			}
			name := strings.ToLower(string(runes[i+1 : i+1+end]))
			k, ok := notationNames[name]
			if !ok {
				return nil, fmt.Errorf("%w: unknown key <%s>", ErrBadKeyNotation, name)
			}
			keys = append(keys, k)
			i += end + 1
			continue
		}
		keys = append(keys, RuneKey(r))
	}

	return keys, nil
}

func indexRune(rs []rune, target rune) int {
	for i, r := range rs {
		if r == target {
			return i
		}
	}
	return -1
}
