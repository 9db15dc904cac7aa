package tomldoc

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// triviaRule restricts what a trivia slot may hold.
type triviaRule int

const (
	// ruleInline allows spaces and tabs.
	ruleInline triviaRule = iota
	// ruleLineEnd also allows a comment that closes the line. Line
	// breaks are not allowed.
	ruleLineEnd
	// ruleBlock allows line breaks, and comments that end with one.
	ruleBlock
	// ruleTail is ruleBlock where the last comment may end the document.
	ruleTail
)

// checkTrivia validates s against rule and returns an error wrapping
// ErrInvalidTrivia.
func checkTrivia(s string, rule triviaRule) error {
	for i := 0; i < len(s); {
		switch ch := s[i]; ch {
		case ' ', '\t':
			i++
		case '\n', '\r':
			if ch == '\r' && (i+1 >= len(s) || s[i+1] != '\n') {
				return triviaError(s, "carriage return must be followed by a line feed")
			}
			if rule < ruleBlock {
				return triviaError(s, "line breaks are not allowed here")
			}
			i++
		case '#':
			if rule == ruleInline {
				return triviaError(s, "comments are not allowed here")
			}
			end := i + 1
			for end < len(s) && s[end] != '\n' && s[end] != '\r' {
				c := s[end]
				if (c < 0x20 && c != '\t') || c == 0x7f {
					return triviaError(s, fmt.Sprintf("forbidden control character U+%04X in comment", c))
				}
				end++
			}
			if !utf8.ValidString(s[i:end]) {
				return triviaError(s, "invalid utf-8 in comment")
			}
			if end == len(s) && rule == ruleBlock {
				return triviaError(s, "comment must end with a line break")
			}
			i = end
		default:
			return triviaError(s, fmt.Sprintf("unexpected %q", s[i:i+1]))
		}
	}
	return nil
}

func triviaError(s, msg string) error {
	return fmt.Errorf("%w %q: %s", ErrInvalidTrivia, s, msg)
}

// hasLineBreak reports whether trivia contains a line feed.
func hasLineBreak(s string) bool {
	return strings.IndexByte(s, '\n') >= 0
}

// joinTrivia concatenates two trivia spans so the result is still valid
// under rule, separating them with a line break when a comment would
// otherwise swallow the text that follows.
func joinTrivia(a, b string, rule triviaRule) string {
	s := a + b
	if checkTrivia(s, rule) != nil && checkTrivia(a+"\n"+b, rule) == nil {
		return a + "\n" + b
	}
	return s
}

// Separators that depend on position are decided when writing, from the
// sibling list and the index alone. Stored trivia is never rewritten on
// insertion, so removing an inserted node restores the previous text.

// lineSeparator returns the line break written before an entry whose
// leading trivia does not start a new line.
func lineSeparator(leading string) string {
	if hasLineBreak(leading) {
		return ""
	}
	return "\n"
}

// seq describes the elements of an array or inline table for writing.
type seq struct {
	n int
	// lead and trail return the markup holding the leading and trailing
	// trivia of element i.
	lead, trail func(i int) *Markup
	write       func(w *writer, i int)
}

// writeTo writes the elements separated by commas. A pinned element with
// empty leading trivia that follows a fresh one is set apart by a space.
// Blank trailing trivia of the last pinned element, such as the space in
// "[ 1, 2 ]", moves behind fresh elements appended after it.
func (s seq) writeTo(w *writer) {
	tail := s.deferredTail()
	for i := range s.n {
		if i > 0 {
			w.WriteByte(',')
			if m := s.lead(i); !m.auto && m.leading == "" && s.lead(i-1).auto {
				w.WriteByte(' ')
			}
		}
		if i != tail {
			s.write(w, i)
			continue
		}
		var sub writer
		s.write(&sub, i)
		w.WriteString(strings.TrimSuffix(sub.String(), s.trail(i).trailing))
	}
	if tail >= 0 {
		w.WriteString(s.trail(tail).trailing)
	}
}

// deferredTail returns the index of the last pinned element when only
// fresh elements follow it and its trailing trivia is blank, else -1.
func (s seq) deferredTail() int {
	k := s.n - 1
	for k >= 0 && s.lead(k).auto {
		k--
	}
	if k < 0 || k == s.n-1 {
		return -1
	}
	t := s.trail(k).trailing
	if t == "" || strings.Trim(t, " \t\r\n") != "" {
		return -1
	}
	return k
}
