package tomldoc

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax is matched by every *SyntaxError.
	ErrSyntax = errors.New("tomldoc: syntax error")
	// ErrOutOfRange is matched by every *RangeError.
	ErrOutOfRange = errors.New("tomldoc: index out of range")
	// ErrDuplicateKey is returned when an insertion would define a key
	// that a sibling already defines.
	ErrDuplicateKey = errors.New("tomldoc: duplicate key")
	// ErrDuplicateTable is returned when a container insertion clashes
	// with an existing header.
	ErrDuplicateTable = errors.New("tomldoc: duplicate table")
	// ErrInvalidTrivia is returned when trivia text contains anything
	// other than whitespace, line breaks and comments allowed in its slot.
	ErrInvalidTrivia = errors.New("tomldoc: invalid trivia")
	// ErrAttached is returned when a value that already belongs to a
	// parent is inserted again.
	ErrAttached = errors.New("tomldoc: value already has a parent")
	// ErrEmptyPath is returned for a key path without segments.
	ErrEmptyPath = errors.New("tomldoc: empty key path")
)

// A SyntaxError describes malformed input. Line and Column are 1-based;
// Column counts bytes.
type SyntaxError struct {
	Offset int
	Line   int
	Column int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("tomldoc: syntax error at line %d, column %d (offset %d): %s", e.Line, e.Column, e.Offset, e.Msg)
}

// Is reports whether target is ErrSyntax.
func (e *SyntaxError) Is(target error) bool { return target == ErrSyntax }

// A RangeError reports an index outside of a sequence of length Len.
type RangeError struct {
	Index int
	Len   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("tomldoc: index %d out of range (length %d)", e.Index, e.Len)
}

// Is reports whether target is ErrOutOfRange.
func (e *RangeError) Is(target error) bool { return target == ErrOutOfRange }

// checkIndex validates a read or remove index.
func checkIndex(i, n int) error {
	if i < 0 || i >= n {
		return &RangeError{Index: i, Len: n}
	}
	return nil
}

// checkInsert validates an insertion index, which may equal n.
func checkInsert(i, n int) error {
	if i < 0 || i > n {
		return &RangeError{Index: i, Len: n}
	}
	return nil
}
