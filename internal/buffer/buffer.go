package buffer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"
)

// Common errors.
var (
	ErrNoFileName = errors.New("no file name")
	ErrNotUTF8    = errors.New("file is not valid UTF-8")
)

// Buffer is the in-memory document. It always holds at least one line.
// Each line keeps the terminator it was loaded with; eols[i] follows
// lines[i] and the last entry is "" unless the file ended with a newline.
type Buffer struct {
	lines      [][]rune
	eols       []string
	path       string
	lineEnding string
	newFile    bool
	dirty      bool
}

// New creates an empty, unnamed buffer with a single empty line.
func New() *Buffer {
	return &Buffer{
		lines:      [][]rune{{}},
		eols:       []string{""},
		lineEnding: DefaultLineEnding,
	}
}

// FromString creates an unnamed buffer holding content. The buffer starts clean.
func FromString(content string) *Buffer {
	b := New()
	b.setContent(content)
	return b
}

// Load reads the file at path into a new buffer bound to path.
// A path that does not exist yields an empty buffer marked as a new file.
func Load(path string) (*Buffer, error) {
	b := New()
	b.path = path

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			b.newFile = true
			return b, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if !utf8.Valid(content) {
		return nil, fmt.Errorf("failed to read %s: %w", path, ErrNotUTF8)
	}

	b.setContent(string(content))
	return b, nil
}

// Save writes the whole buffer to path, or to the bound path when path is
// empty, and returns the number of bytes written. The buffer is clean after
// a successful save; on failure it is left untouched.
func (b *Buffer) Save(path string) (int, error) {
	if path == "" {
		path = b.path
	}
	if path == "" {
		return 0, ErrNoFileName
	}

	data := b.Bytes()
	if err := writeFileAtomic(path, data); err != nil {
		return 0, err
	}

	b.dirty = false
	if path == b.path {
		b.newFile = false
	}
	return len(data), nil
}

// Path returns the bound file path, or "" for an unnamed buffer.
func (b *Buffer) Path() string {
	return b.path
}

// SetPath binds the buffer to path for future parameterless saves.
func (b *Buffer) SetPath(path string) {
	if path != b.path {
		b.newFile = false
	}
	b.path = path
}

// IsNew returns true if the bound path did not exist when the buffer was loaded
// and nothing has been saved to it since.
func (b *Buffer) IsNew() bool {
	return b.newFile
}

// Dirty returns true if the buffer has changes that have not been saved.
func (b *Buffer) Dirty() bool {
	return b.dirty
}

// LineEnding returns the terminator given to lines created by editing: the
// most common one in the loaded file, or the platform default.
func (b *Buffer) LineEnding() string {
	return b.lineEnding
}

// LineCount returns the number of lines. It is never less than one.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// LineLen returns the length of line row in characters, or 0 if row is out of range.
func (b *Buffer) LineLen(row int) int {
	if !b.validRow(row) {
		return 0
	}
	return len(b.lines[row])
}

// Line returns line row, or "" if row is out of range.
func (b *Buffer) Line(row int) string {
	if !b.validRow(row) {
		return ""
	}
	return string(b.lines[row])
}

// Lines returns a copy of all lines.
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.lines))
	for i, l := range b.lines {
		out[i] = string(l)
	}
	return out
}

// String returns the content as it would be written to disk.
func (b *Buffer) String() string {
	return string(b.Bytes())
}

// Bytes serializes the buffer, each line followed by its own terminator.
func (b *Buffer) Bytes() []byte {
	var sb strings.Builder
	for i, l := range b.lines {
		sb.WriteString(string(l))
		sb.WriteString(b.eols[i])
	}
	return []byte(sb.String())
}

func (b *Buffer) validRow(row int) bool {
	return row >= 0 && row < len(b.lines)
}

func (b *Buffer) setContent(content string) {
	b.lines = b.lines[:0]
	b.eols = b.eols[:0]
	var crlf, lf int

	for {
		i := strings.IndexByte(content, '\n')
		if i < 0 {
			break
		}
		line, eol := content[:i], "\n"
		if strings.HasSuffix(line, "\r") {
			line, eol = line[:len(line)-1], "\r\n"
			crlf++
		} else {
			lf++
		}
		b.lines = append(b.lines, []rune(line))
		b.eols = append(b.eols, eol)
		content = content[i+1:]
	}
	if content != "" || len(b.lines) == 0 {
		b.lines = append(b.lines, []rune(content))
		b.eols = append(b.eols, "")
	}

	switch {
	case crlf > 0 && crlf >= lf:
		b.lineEnding = "\r\n"
	case lf > 0:
		b.lineEnding = "\n"
	default:
		b.lineEnding = DefaultLineEnding
	}
	b.dirty = false
}
