// Package cursor implements cursor movement over a line-oriented document.
// Every operation is a pure function of the document shape and the previous
// position, and always returns a position inside the document.
package cursor

// Shape is the part of a document the cursor needs to know about.
type Shape interface {
	LineCount() int
	LineLen(row int) int
}

// Cursor is a (row, column) position. Columns count characters, not bytes.
type Cursor struct {
	Row int
	Col int
}

// MaxCol returns the largest valid column on row. With insert set the cursor
// may sit just past the last character; otherwise it must be on a character,
// or at column 0 of an empty line.
func MaxCol(s Shape, row int, insert bool) int {
	n := s.LineLen(row)
	if insert || n == 0 {
		return n
	}
	return n - 1
}

// Clamp pulls c back inside the document.
func (c Cursor) Clamp(s Shape, insert bool) Cursor {
	last := s.LineCount() - 1
	if last < 0 {
		last = 0
	}
	c.Row = clamp(c.Row, 0, last)
	c.Col = clamp(c.Col, 0, MaxCol(s, c.Row, insert))
	return c
}

// MoveUp moves one row up. The column is re-clamped to the new line.
func (c Cursor) MoveUp(s Shape, insert bool) Cursor {
	c.Row--
	return c.Clamp(s, insert)
}

// MoveDown moves one row down. The column is re-clamped to the new line.
func (c Cursor) MoveDown(s Shape, insert bool) Cursor {
	c.Row++
	return c.Clamp(s, insert)
}

// MoveLeft moves one column left. Column 0 does not wrap to the previous line.
func (c Cursor) MoveLeft(s Shape, insert bool) Cursor {
	c.Col--
	return c.Clamp(s, insert)
}

// MoveRight moves one column right. The end of the line does not wrap to the
// next line.
func (c Cursor) MoveRight(s Shape, insert bool) Cursor {
	c.Col++
	return c.Clamp(s, insert)
}

// Valid reports whether c satisfies the cursor bounds for s.
func (c Cursor) Valid(s Shape, insert bool) bool {
	return c.Row >= 0 && c.Row < s.LineCount() &&
		c.Col >= 0 && c.Col <= MaxCol(s, c.Row, insert)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
