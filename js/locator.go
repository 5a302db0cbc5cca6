package js

import (
	"fmt"
	"sort"
)

// Position is a 1-based line and column. Columns count bytes.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Locator maps byte offsets in one buffer to line and column positions.
// It is immutable after construction and safe for concurrent use.
type Locator struct {
	size       int
	lineStarts []int
}

// NewLocator indexes the line starts of src. Line terminators are LF, CR,
// CRLF, U+2028 and U+2029.
func NewLocator(src []byte) *Locator {
	starts := make([]int, 1, len(src)/32+1)
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '\n':
			starts = append(starts, i+1)
		case '\r':
			if i+1 < len(src) && src[i+1] == '\n' {
				i++
			}
			starts = append(starts, i+1)
		case 0xe2:
			// U+2028 and U+2029 are E2 80 A8 and E2 80 A9.
			if i+2 < len(src) && src[i+1] == 0x80 && (src[i+2] == 0xa8 || src[i+2] == 0xa9) {
				i += 2
				starts = append(starts, i+1)
			}
		}
	}
	return &Locator{size: len(src), lineStarts: starts}
}

// Range returns the begin and end offsets of span.
func (l *Locator) Range(span Span) (begin, end ByteOffset) {
	return span.Start, span.End
}

// Position returns the line and column of off. Offsets past the end of the
// buffer are clamped to the end.
func (l *Locator) Position(off ByteOffset) Position {
	o := int(off)
	if o > l.size {
		o = l.size
	}
	line := sort.Search(len(l.lineStarts), func(i int) bool {
		return l.lineStarts[i] > o
	}) - 1
	return Position{Line: line + 1, Column: o - l.lineStarts[line] + 1}
}

// LineCount returns the number of lines in the buffer.
func (l *Locator) LineCount() int {
	return len(l.lineStarts)
}
