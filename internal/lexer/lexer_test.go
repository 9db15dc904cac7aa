package lexer_test

import (
	"strings"
	"testing"

	"github.com/KimNorgaard/go-tomldoc/internal/lexer"
	"github.com/KimNorgaard/go-tomldoc/internal/token"
	"github.com/stretchr/testify/require"
)

type expectedToken struct {
	expectedType    token.Type
	expectedLiteral string
}

func lexAll(t *testing.T, mode lexer.Mode, input string) []token.Token {
	t.Helper()
	l := lexer.New([]byte(input))
	var toks []token.Token
	for range len(input) + 1 {
		tok := l.Next(mode)
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks
		}
	}
	t.Fatalf("lexer did not reach EOF for %q", input)
	return nil
}

func requireTokens(t *testing.T, mode lexer.Mode, input string, expected []expectedToken) {
	t.Helper()
	toks := lexAll(t, mode, input)
	require.Len(t, toks, len(expected), "tokens: %v", toks)
	for i, tt := range expected {
		require.Equal(t, tt.expectedType, toks[i].Type, "token %d", i)
		require.Equal(t, tt.expectedLiteral, toks[i].Literal, "token %d", i)
	}
}

func TestNextTokenKeyMode(t *testing.T) {
	input := "# top\n[[a . \"b c\"]]\n\tkey-1 = 'v'\r\n[t]"
	requireTokens(t, lexer.Key, input, []expectedToken{
		{token.COMMENT, "# top"},
		{token.NEWLINE, "\n"},
		{token.LLBRACK, "[["},
		{token.IDENT, "a"},
		{token.WHITESPACE, " "},
		{token.DOT, "."},
		{token.WHITESPACE, " "},
		{token.STRING, `"b c"`},
		{token.RRBRACK, "]]"},
		{token.NEWLINE, "\n"},
		{token.WHITESPACE, "\t"},
		{token.IDENT, "key-1"},
		{token.WHITESPACE, " "},
		{token.EQUAL, "="},
		{token.WHITESPACE, " "},
		{token.LITERAL, "'v'"},
		{token.NEWLINE, "\r\n"},
		{token.LBRACK, "["},
		{token.IDENT, "t"},
		{token.RBRACK, "]"},
		{token.EOF, ""},
	})
}

func TestNextTokenValueMode(t *testing.T) {
	input := `[[1_000, -0x1f], {x}, 6.626e-34, -inf, nan, true, 1979-05-27 07:32:00Z, 07:32:00, 1979-05-27]`
	requireTokens(t, lexer.Value, input, []expectedToken{
		{token.LBRACK, "["},
		{token.LBRACK, "["},
		{token.INT, "1_000"},
		{token.COMMA, ","},
		{token.WHITESPACE, " "},
		{token.INT, "-0x1f"},
		{token.RBRACK, "]"},
		{token.COMMA, ","},
		{token.WHITESPACE, " "},
		{token.LBRACE, "{"},
		{token.ILLEGAL, `invalid value "x"`},
		{token.RBRACE, "}"},
		{token.COMMA, ","},
		{token.WHITESPACE, " "},
		{token.FLOAT, "6.626e-34"},
		{token.COMMA, ","},
		{token.WHITESPACE, " "},
		{token.FLOAT, "-inf"},
		{token.COMMA, ","},
		{token.WHITESPACE, " "},
		{token.FLOAT, "nan"},
		{token.COMMA, ","},
		{token.WHITESPACE, " "},
		{token.BOOL, "true"},
		{token.COMMA, ","},
		{token.WHITESPACE, " "},
		{token.DATETIME, "1979-05-27 07:32:00Z"},
		{token.COMMA, ","},
		{token.WHITESPACE, " "},
		{token.DATETIME, "07:32:00"},
		{token.COMMA, ","},
		{token.WHITESPACE, " "},
		{token.DATETIME, "1979-05-27"},
		{token.RBRACK, "]"},
		{token.EOF, ""},
	})
}

func TestStrings(t *testing.T) {
	tests := []struct {
		input    string
		expected token.Type
	}{
		{`""`, token.STRING},
		{`"a \" b"`, token.STRING},
		{`''`, token.LITERAL},
		{`'C:\dir\'`, token.LITERAL},
		{`""""""`, token.MLSTRING},
		{"\"\"\"\nline\n\"\"\"", token.MLSTRING},
		{`"""quoted ""x"" """""`, token.MLSTRING},
		{`"""a \""" b"""`, token.MLSTRING},
		{"'''\n'single' ''''", token.MLLITERAL},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			toks := lexAll(t, lexer.Value, tt.input)
			require.Len(t, toks, 2)
			require.Equal(t, tt.expected, toks[0].Type)
			require.Equal(t, tt.input, toks[0].Literal)
		})
	}
}

func TestIllegal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"unterminated string", "\"abc\nx", "unterminated string"},
		{"unterminated at eof", `"abc`, "unterminated string"},
		{"unterminated multi-line", `"""abc`, "unterminated multi-line string"},
		{"lone carriage return", "\ra", "carriage return must be followed by a line feed"},
		{"control character in comment", "# a\x01", "forbidden control character U+0001 in comment"},
		{"unexpected character", "@", `unexpected character '@'`},
		{"invalid utf-8", "\xff", "invalid utf-8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := lexer.New([]byte(tt.input)).Next(lexer.Key)
			require.Equal(t, token.ILLEGAL, tok.Type)
			require.Equal(t, tt.expected, tok.Literal)
			require.Equal(t, 0, tok.Pos.Offset)
		})
	}
}

func TestPositions(t *testing.T) {
	toks := lexAll(t, lexer.Key, "a\n  b")
	require.Equal(t, token.Position{Offset: 0, Line: 1, Column: 1}, toks[0].Pos)
	require.Equal(t, token.Position{Offset: 1, Line: 1, Column: 2}, toks[1].Pos)
	require.Equal(t, token.Position{Offset: 2, Line: 2, Column: 1}, toks[2].Pos)
	require.Equal(t, token.Position{Offset: 4, Line: 2, Column: 3}, toks[3].Pos)
	require.Equal(t, token.EOF, toks[4].Type)
	require.Equal(t, token.Position{Offset: 5, Line: 2, Column: 4}, toks[4].Pos)
}

func TestLosslessConcatenation(t *testing.T) {
	input := "a.b = [ 1, # one\n  2 ]\r\n\n[x] # c\n"
	var sb strings.Builder
	for _, tok := range lexAll(t, lexer.Key, input) {
		require.NotEqual(t, token.ILLEGAL, tok.Type, tok.Literal)
		sb.WriteString(tok.Literal)
	}
	require.Equal(t, input, sb.String())
}

func TestClassify(t *testing.T) {
	tests := []struct {
		input    string
		expected token.Type
		ok       bool
	}{
		{"true", token.BOOL, true},
		{"+nan", token.FLOAT, true},
		{"0b101", token.INT, true},
		{"0o17", token.INT, true},
		{"1e10", token.FLOAT, true},
		{"-12", token.INT, true},
		{"1979-05-27T00:00:00", token.DATETIME, true},
		{"10:30:00.5", token.DATETIME, true},
		{"yes", token.ILLEGAL, false},
		{"", token.ILLEGAL, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			typ, ok := lexer.Classify(tt.input)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.expected, typ)
		})
	}
}
