package buffer

import (
	"io"
)

// A Buffer is a wrapper around any buffer data structure like ropes or a gap
// buffer that can be used for text editors. All API function parameters are
// line and column indexes, starting at zero, and all "end" ranges are
// inclusive.
//
// Any bounds out of range are panics! If you are unsure your position or
// range may be out of bounds, use ClampLineCol() or compare with Lines() or
// RunesInLine().
type Buffer interface {
	// Line returns the data at the given line, including the ending line
	// delimiter. Data returned may or may not be a copy: do not write to it.
	Line(line int) []byte

	// LineRunes returns the runes of the given line without its delimiter.
	// This is the form the syntax highlighter scans.
	LineRunes(line int) []rune

	// Bytes returns all of the bytes in the buffer. This function is very
	// likely to copy all of the data in the buffer. Use sparingly.
	Bytes() []byte

	// Insert copies a byte slice (inserting it) into the position at line, col.
	Insert(line, col int, value []byte)

	// Remove deletes any characters between startLine, startCol, and endLine,
	// endCol, inclusive bounds.
	Remove(startLine, startCol, endLine, endCol int)

	// Len returns the number of bytes in the buffer.
	Len() int

	// Lines returns the number of lines in the buffer. If the buffer is
	// empty, 1 is returned, because there is always at least one line.
	Lines() int

	// RunesInLine returns the number of runes in the given line, that is,
	// the number of UTF-8 codepoints, excluding line delimiters.
	RunesInLine(line int) int

	// ClampLineCol clamps any provided line and col to only possible values
	// within the buffer, pointing to runes. It first clamps the line, then
	// clamps the column.
	ClampLineCol(line, col int) (int, int)

	// LineColToPos returns the index of the byte at line, col. If line is
	// less than zero, or more than the number of available lines, the
	// function will panic. If col is greater than the length of the line,
	// the position of the last byte of the line is returned, instead.
	LineColToPos(line, col int) int

	// PosToLineCol converts a byte offset of the buffer's bytes into a line
	// and column. Position will be clamped.
	PosToLineCol(pos int) (int, int)

	WriteTo(w io.Writer) (int64, error)
}
