package lexer

import (
	"fmt"
	"unicode/utf8"

	"github.com/KimNorgaard/go-tomldoc/internal/token"
)

// Mode selects how a run of bare characters is classified. TOML is context
// sensitive: "1979-05-27" is a key on the left of '=' and a date on the
// right of it, so the parser tells the lexer what it expects next.
type Mode int

const (
	// Key mode lexes bare keys and merges "[[" and "]]" for array of
	// tables headers.
	Key Mode = iota
	// Value mode lexes numbers, booleans and datetimes.
	Value
)

// Lexer holds the state for tokenizing TOML source. Every byte of the
// input ends up in exactly one token.
type Lexer struct {
	input  []byte
	pos    int
	line   int
	column int
}

// New creates and returns a new Lexer.
func New(input []byte) *Lexer {
	return &Lexer{input: input, line: 1, column: 1}
}

// Next scans the input and returns the next token, classifying bare
// characters according to mode.
func (l *Lexer) Next(mode Mode) token.Token { //nolint:gocognit
	tok := token.Token{Pos: token.Position{Offset: l.pos, Line: l.line, Column: l.column}}
	if l.pos >= len(l.input) {
		tok.Type = token.EOF
		return tok
	}

	start := l.pos
	end := start + 1
	ch := l.input[start]
	switch ch {
	case ' ', '\t':
		for end < len(l.input) && isWhitespace(l.input[end]) {
			end++
		}
		tok.Type = token.WHITESPACE
	case '\n':
		tok.Type = token.NEWLINE
	case '\r':
		if l.peek(1) != '\n' {
			return l.illegal(tok, 1, "carriage return must be followed by a line feed")
		}
		end++
		tok.Type = token.NEWLINE
	case '#':
		var msg string
		end, msg = l.readComment()
		if msg != "" {
			return l.illegal(tok, end-start, msg)
		}
		tok.Type = token.COMMENT
	case '"', '\'':
		var msg string
		tok.Type, end, msg = l.readString(ch)
		if msg != "" {
			return l.illegal(tok, end-start, msg)
		}
	case '[':
		tok.Type = token.LBRACK
		if mode == Key && l.peek(1) == '[' {
			end++
			tok.Type = token.LLBRACK
		}
	case ']':
		tok.Type = token.RBRACK
		if mode == Key && l.peek(1) == ']' {
			end++
			tok.Type = token.RRBRACK
		}
	case '{', '}', ',', '.', '=':
		tok.Type = token.Type(ch)
	default:
		switch {
		case mode == Key && isBareKeyChar(ch):
			for end < len(l.input) && isBareKeyChar(l.input[end]) {
				end++
			}
			tok.Type = token.IDENT
		case mode == Value && isValueChar(ch):
			end = l.readValue()
			lit := string(l.input[start:end])
			typ, ok := Classify(lit)
			if !ok {
				return l.illegal(tok, end-start, fmt.Sprintf("invalid value %q", lit))
			}
			tok.Type = typ
		default:
			r, size := utf8.DecodeRune(l.input[start:])
			if r == utf8.RuneError && size <= 1 {
				return l.illegal(tok, 1, "invalid utf-8")
			}
			return l.illegal(tok, size, fmt.Sprintf("unexpected character %q", r))
		}
	}

	tok.Literal = string(l.input[start:end])
	l.advance(end)
	return tok
}

// Classify reports the value token type of a bare run such as "0x1f",
// "inf" or "1979-05-27". It only looks at the shape; the literal package
// validates the details.
func Classify(lit string) (token.Type, bool) {
	switch lit {
	case "true", "false":
		return token.BOOL, true
	case "inf", "+inf", "-inf", "nan", "+nan", "-nan":
		return token.FLOAT, true
	}
	if lit == "" {
		return token.ILLEGAL, false
	}
	if isDatetimeShape(lit) {
		return token.DATETIME, true
	}
	first := lit[0]
	if !isDigit(first) && first != '+' && first != '-' {
		return token.ILLEGAL, false
	}
	if len(lit) > 1 && lit[0] == '0' && (lit[1] == 'x' || lit[1] == 'o' || lit[1] == 'b') {
		return token.INT, true
	}
	for i := 0; i < len(lit); i++ {
		switch lit[i] {
		case '.', 'e', 'E':
			return token.FLOAT, true
		}
	}
	return token.INT, true
}

func (l *Lexer) illegal(tok token.Token, n int, msg string) token.Token {
	tok.Type = token.ILLEGAL
	tok.Literal = msg
	l.advance(l.pos + n)
	return tok
}

// advance moves the cursor to end, keeping line and column in sync.
func (l *Lexer) advance(end int) {
	if end > len(l.input) {
		end = len(l.input)
	}
	for _, b := range l.input[l.pos:end] {
		if b == '\n' {
			l.line++
			l.column = 1
		} else {
			l.column++
		}
	}
	l.pos = end
}

func (l *Lexer) peek(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

// readComment returns the end of the comment starting at l.pos. The line
// break is not part of the comment.
func (l *Lexer) readComment() (int, string) {
	i := l.pos + 1
	for i < len(l.input) {
		ch := l.input[i]
		switch {
		case ch == '\n':
			return i, ""
		case ch == '\r':
			if i+1 < len(l.input) && l.input[i+1] == '\n' {
				return i, ""
			}
			return i + 1, "carriage return must be followed by a line feed"
		case ch == '\t':
			i++
		case ch < 0x20 || ch == 0x7f:
			return i + 1, fmt.Sprintf("forbidden control character U+%04X in comment", ch)
		case ch < utf8.RuneSelf:
			i++
		default:
			r, size := utf8.DecodeRune(l.input[i:])
			if r == utf8.RuneError && size <= 1 {
				return i + 1, "invalid utf-8 in comment"
			}
			i += size
		}
	}
	return i, ""
}

// readString finds the end of the string starting at l.pos with the given
// quote. Escapes are skipped, not decoded.
func (l *Lexer) readString(quote byte) (token.Type, int, string) {
	basic := quote == '"'
	if l.peek(1) == quote && l.peek(2) == quote {
		typ := token.MLLITERAL
		if basic {
			typ = token.MLSTRING
		}
		i := l.pos + 3
		for i < len(l.input) {
			ch := l.input[i]
			if basic && ch == '\\' {
				i += 2
				continue
			}
			if ch == quote && i+2 < len(l.input) && l.input[i+1] == quote && l.input[i+2] == quote {
				end := i + 3
				// Up to two quotes may directly precede the closing delimiter.
				for extra := 0; extra < 2 && end < len(l.input) && l.input[end] == quote; extra++ {
					end++
				}
				return typ, end, ""
			}
			i++
		}
		return token.ILLEGAL, len(l.input), "unterminated multi-line string"
	}

	typ := token.LITERAL
	if basic {
		typ = token.STRING
	}
	i := l.pos + 1
	for i < len(l.input) {
		ch := l.input[i]
		switch {
		case ch == '\n' || ch == '\r':
			return token.ILLEGAL, i, "unterminated string"
		case basic && ch == '\\':
			if i+1 < len(l.input) && l.input[i+1] != '\n' && l.input[i+1] != '\r' {
				i += 2
				continue
			}
			i++
		case ch == quote:
			return typ, i + 1, ""
		default:
			i++
		}
	}
	return token.ILLEGAL, i, "unterminated string"
}

// readValue returns the end of the bare value run starting at l.pos. A
// space separating the date and time of a datetime is part of the run.
func (l *Lexer) readValue() int {
	i := l.pos
	for {
		for i < len(l.input) && isValueChar(l.input[i]) {
			i++
		}
		if i-l.pos == 10 && isDate(l.input[l.pos:i]) && i+3 < len(l.input) &&
			l.input[i] == ' ' && isDigit(l.input[i+1]) && isDigit(l.input[i+2]) && l.input[i+3] == ':' {
			i++
			continue
		}
		return i
	}
}

func isDatetimeShape(lit string) bool {
	if len(lit) >= 10 && isDate([]byte(lit[:10])) {
		return true
	}
	return len(lit) >= 5 && isDigit(lit[0]) && isDigit(lit[1]) && lit[2] == ':'
}

func isDate(b []byte) bool {
	if len(b) != 10 || b[4] != '-' || b[7] != '-' {
		return false
	}
	for i, c := range b {
		if i == 4 || i == 7 {
			continue
		}
		if !isDigit(c) {
			return false
		}
	}
	return true
}

func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isBareKeyChar(ch byte) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || isDigit(ch) || ch == '_' || ch == '-'
}

func isValueChar(ch byte) bool {
	return isBareKeyChar(ch) || ch == '+' || ch == '.' || ch == ':'
}
