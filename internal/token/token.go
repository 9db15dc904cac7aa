package token

// Type is the type of a token.
type Type string

// Token represents a lexical token. Literal always holds the exact source
// bytes of the token, except for ILLEGAL tokens where it holds a message
// describing the problem.
type Token struct {
	Type    Type
	Literal string
	Pos     Position
}

const (
	// Special tokens
	ILLEGAL Type = "ILLEGAL" // An unknown or invalid token
	EOF     Type = "EOF"     // End of file

	// Trivia
	WHITESPACE Type = "WHITESPACE" // spaces and tabs
	NEWLINE    Type = "NEWLINE"    // \n or \r\n
	COMMENT    Type = "COMMENT"    // # a comment

	// Keys
	IDENT Type = "IDENT" // bare key: a, key-1, 1234

	// Values
	STRING    Type = "STRING"    // "basic"
	LITERAL   Type = "LITERAL"   // 'literal'
	MLSTRING  Type = "MLSTRING"  // """multi-line basic"""
	MLLITERAL Type = "MLLITERAL" // '''multi-line literal'''
	INT       Type = "INT"       // 1_000, 0xff
	FLOAT     Type = "FLOAT"     // 3.14, -inf
	BOOL      Type = "BOOL"      // true, false
	DATETIME  Type = "DATETIME"  // 1979-05-27T07:32:00Z

	// Delimiters
	LBRACK  Type = "["
	RBRACK  Type = "]"
	LLBRACK Type = "[["
	RRBRACK Type = "]]"
	LBRACE  Type = "{"
	RBRACE  Type = "}"
	COMMA   Type = ","
	DOT     Type = "."
	EQUAL   Type = "="
)

// IsTrivia reports whether tokens of type t carry no semantic content.
func (t Type) IsTrivia() bool {
	return t == WHITESPACE || t == NEWLINE || t == COMMENT
}

// IsKey reports whether a token of type t can name a key segment.
func (t Type) IsKey() bool {
	return t == IDENT || t == STRING || t == LITERAL
}

// IsString reports whether t is one of the four string literal types.
func (t Type) IsString() bool {
	return t == STRING || t == LITERAL || t == MLSTRING || t == MLLITERAL
}

// Describe returns a short human readable form of the token for error
// messages.
func (t Token) Describe() string {
	switch t.Type {
	case EOF:
		return "end of file"
	case NEWLINE:
		return "newline"
	case WHITESPACE:
		return "whitespace"
	case COMMENT:
		return "comment"
	case ILLEGAL:
		return "illegal token"
	}
	lit := t.Literal
	if string(t.Type) == lit {
		return "'" + lit + "'"
	}
	if len(lit) > 20 {
		lit = lit[:20] + "..."
	}
	return string(t.Type) + " '" + lit + "'"
}
