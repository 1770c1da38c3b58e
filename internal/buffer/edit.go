package buffer

// InsertChar inserts ch into line row before column col. Columns past the end
// of the line append.
func (b *Buffer) InsertChar(row, col int, ch rune) {
	if !b.validRow(row) {
		return
	}
	line := b.lines[row]
	col = clampCol(col, len(line))

	updated := make([]rune, 0, len(line)+1)
	updated = append(updated, line[:col]...)
	updated = append(updated, ch)
	updated = append(updated, line[col:]...)
	b.lines[row] = updated
	b.dirty = true
}

// DeleteCharAt removes the character at column col of line row and reports
// whether one was removed. An empty line or a column past the end is a no-op.
func (b *Buffer) DeleteCharAt(row, col int) bool {
	if !b.validRow(row) {
		return false
	}
	line := b.lines[row]
	if col < 0 || col >= len(line) {
		return false
	}

	b.lines[row] = append(line[:col:col], line[col+1:]...)
	b.dirty = true
	return true
}

// SplitLine breaks line row at column col; the tail becomes a new line
// directly below and keeps the original terminator.
func (b *Buffer) SplitLine(row, col int) {
	if !b.validRow(row) {
		return
	}
	line := b.lines[row]
	col = clampCol(col, len(line))

	head := append([]rune(nil), line[:col]...)
	tail := append([]rune(nil), line[col:]...)

	lines := make([][]rune, 0, len(b.lines)+1)
	lines = append(lines, b.lines[:row]...)
	lines = append(lines, head, tail)
	lines = append(lines, b.lines[row+1:]...)
	b.lines = lines

	eols := make([]string, 0, len(b.eols)+1)
	eols = append(eols, b.eols[:row]...)
	eols = append(eols, b.lineEnding)
	eols = append(eols, b.eols[row:]...)
	b.eols = eols
	b.dirty = true
}

// JoinWithPrevious appends line row to line row-1 and removes it. It returns
// the length the previous line had before the join, which is where the joined
// text now starts. Row 0 has no previous line and is left alone.
func (b *Buffer) JoinWithPrevious(row int) (int, bool) {
	if row <= 0 || !b.validRow(row) {
		return 0, false
	}
	prev := b.lines[row-1]
	at := len(prev)

	joined := make([]rune, 0, len(prev)+len(b.lines[row]))
	joined = append(joined, prev...)
	joined = append(joined, b.lines[row]...)
	b.lines[row-1] = joined
	b.lines = append(b.lines[:row], b.lines[row+1:]...)
	b.eols[row-1] = b.eols[row]
	b.eols = append(b.eols[:row], b.eols[row+1:]...)
	b.dirty = true
	return at, true
}

func clampCol(col, n int) int {
	if col < 0 {
		return 0
	}
	if col > n {
		return n
	}
	return col
}
