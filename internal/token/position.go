package token

import (
	"fmt"
	"sort"
)

// Position is a location in the source. Offset is a 0-based byte offset,
// Line and Column are 1-based; Column counts bytes.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// LineIndex maps byte offsets of a document to lines and columns.
type LineIndex struct {
	size int
	nl   []int // offsets of '\n' bytes
}

// NewLineIndex indexes the line breaks of src.
func NewLineIndex(src []byte) *LineIndex {
	idx := &LineIndex{size: len(src)}
	for i, b := range src {
		if b == '\n' {
			idx.nl = append(idx.nl, i)
		}
	}
	return idx
}

// Position returns the position of the byte at off. Offsets past the end
// of the document are clamped to the end.
func (x *LineIndex) Position(off int) Position {
	if off < 0 {
		off = 0
	}
	if off > x.size {
		off = x.size
	}
	line := sort.Search(len(x.nl), func(i int) bool {
		return x.nl[i] >= off
	})
	col := off + 1
	if line > 0 {
		col = off - x.nl[line-1]
	}
	return Position{Offset: off, Line: line + 1, Column: col}
}
