// Package literal decodes and encodes the spelling of TOML scalar
// literals. Decoding never alters the source text; callers keep the raw
// literal next to the decoded value.
package literal

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Error describes an invalid literal. Offset is relative to the start of
// the literal.
type Error struct {
	Offset int
	Msg    string
}

func (e *Error) Error() string {
	return e.Msg
}

func errorf(off int, format string, args ...any) *Error {
	return &Error{Offset: off, Msg: fmt.Sprintf(format, args...)}
}

// Unquote decodes any of the four TOML string forms, selected by the
// quotes of raw.
func Unquote(raw string) (string, error) {
	switch {
	case strings.HasPrefix(raw, `"""`):
		return unquoteBasic(raw, 3, true)
	case strings.HasPrefix(raw, `'''`):
		return unquoteLiteral(raw, 3, true)
	case strings.HasPrefix(raw, `"`):
		return unquoteBasic(raw, 1, false)
	case strings.HasPrefix(raw, `'`):
		return unquoteLiteral(raw, 1, false)
	}
	return "", errorf(0, "not a string literal")
}

func unquoteLiteral(raw string, q int, multiline bool) (string, error) {
	if len(raw) < 2*q {
		return "", errorf(0, "unterminated string")
	}
	start, end := q, len(raw)-q
	if multiline {
		start = skipFirstNewline(raw, start)
	}
	if err := checkText(raw, start, end, multiline); err != nil {
		return "", err
	}
	if !utf8.ValidString(raw[start:end]) {
		return "", errorf(start, "invalid utf-8 in string")
	}
	return raw[start:end], nil
}

func unquoteBasic(raw string, q int, multiline bool) (string, error) { //nolint:gocognit
	if len(raw) < 2*q {
		return "", errorf(0, "unterminated string")
	}
	start, end := q, len(raw)-q
	if multiline {
		start = skipFirstNewline(raw, start)
	}

	var sb strings.Builder
	i := start
	for i < end {
		ch := raw[i]
		if ch != '\\' {
			if err := checkByte(raw, i, end, multiline); err != nil {
				return "", err
			}
			if ch < utf8.RuneSelf {
				sb.WriteByte(ch)
				i++
				continue
			}
			r, size := utf8.DecodeRuneInString(raw[i:end])
			if r == utf8.RuneError && size <= 1 {
				return "", errorf(i, "invalid utf-8 in string")
			}
			sb.WriteString(raw[i : i+size])
			i += size
			continue
		}

		if i+1 >= end {
			return "", errorf(i, "incomplete escape sequence")
		}
		esc := raw[i+1]
		switch esc {
		case 'b':
			sb.WriteByte('\b')
		case 't':
			sb.WriteByte('\t')
		case 'n':
			sb.WriteByte('\n')
		case 'f':
			sb.WriteByte('\f')
		case 'r':
			sb.WriteByte('\r')
		case '"':
			sb.WriteByte('"')
		case '\\':
			sb.WriteByte('\\')
		case 'u', 'U':
			n := 4
			if esc == 'U' {
				n = 8
			}
			r, err := readHex(raw, i+2, n, end)
			if err != nil {
				return "", err
			}
			sb.WriteRune(r)
			i += 2 + n
			continue
		default:
			if multiline {
				if next, ok := lineEndingBackslash(raw, i+1, end); ok {
					i = next
					continue
				}
			}
			return "", errorf(i, "invalid escape sequence \\%c", esc)
		}
		i += 2
	}
	return sb.String(), nil
}

// lineEndingBackslash reports whether the backslash before i ends a line,
// and returns the position of the next non-whitespace character.
func lineEndingBackslash(raw string, i, end int) (int, bool) {
	j := i
	for j < end && (raw[j] == ' ' || raw[j] == '\t') {
		j++
	}
	if j < end && raw[j] == '\r' && j+1 < end && raw[j+1] == '\n' {
		j++
	}
	if j >= end || raw[j] != '\n' {
		return 0, false
	}
	for j < end && (raw[j] == ' ' || raw[j] == '\t' || raw[j] == '\n' || raw[j] == '\r') {
		j++
	}
	return j, true
}

func readHex(raw string, i, n, end int) (rune, error) {
	if i+n > end {
		return 0, errorf(i-2, "incomplete unicode escape")
	}
	var r rune
	for _, c := range []byte(raw[i : i+n]) {
		var d rune
		switch {
		case '0' <= c && c <= '9':
			d = rune(c - '0')
		case 'a' <= c && c <= 'f':
			d = rune(c-'a') + 10
		case 'A' <= c && c <= 'F':
			d = rune(c-'A') + 10
		default:
			return 0, errorf(i-2, "invalid unicode escape")
		}
		r = r*16 + d
	}
	if (r >= 0xD800 && r <= 0xDFFF) || r > utf8.MaxRune {
		return 0, errorf(i-2, "invalid unicode scalar value U+%X", r)
	}
	return r, nil
}

func skipFirstNewline(raw string, i int) int {
	switch {
	case strings.HasPrefix(raw[i:], "\n"):
		return i + 1
	case strings.HasPrefix(raw[i:], "\r\n"):
		return i + 2
	}
	return i
}

// checkText rejects control characters in raw[start:end]. Multi-line
// strings may contain line breaks.
func checkText(raw string, start, end int, multiline bool) error {
	for i := start; i < end; i++ {
		if err := checkByte(raw, i, end, multiline); err != nil {
			return err
		}
	}
	return nil
}

func checkByte(raw string, i, end int, multiline bool) error {
	ch := raw[i]
	switch {
	case ch == '\t':
	case multiline && ch == '\n':
	case multiline && ch == '\r' && i+1 < end && raw[i+1] == '\n':
	case ch < 0x20 || ch == 0x7f:
		return errorf(i, "forbidden control character U+%04X in string", ch)
	}
	return nil
}

// QuoteBasic returns s as a single-line basic string literal.
func QuoteBasic(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\b':
			sb.WriteString(`\b`)
		case '\t':
			sb.WriteString(`\t`)
		case '\n':
			sb.WriteString(`\n`)
		case '\f':
			sb.WriteString(`\f`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&sb, `\u%04X`, r)
				continue
			}
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
