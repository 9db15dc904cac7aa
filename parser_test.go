package tomldoc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"\n\n",
		"# only a comment",
		"a = 1",
		"a = 1\n",
		"a=1\r\nb=2\r\n",
		"  key   =   \"value\"   # comment   \n",
		"a . b . c = true",
		"\"quoted key\" = 'literal'",
		"'single' = \"\"\"\nmulti\nline\"\"\"",
		"s = '''\nraw \\n text'''",
		"1234 = 5_000",
		"hex = 0xDEAD_beef\noct = 0o755\nbin = 0b1010",
		"f = [1.0, -2e-3, inf, -nan, 6.626e-34]",
		"dt = [1979-05-27T07:32:00Z, 1979-05-27 00:32:00.999-07:00, 1979-05-27T07:32:00, 1979-05-27, 07:32:00.5]",
		"lower = 1979-05-27t07:32:00z",
		"a = [ ]",
		"a = [[1, 2], [\"a\", 'b'], [[]]]",
		"a = [\n  1, # one\n  2,\n  # dangling\n]",
		"a = [\n  1\n  , 2\n]",
		"t = {}",
		"t = { }",
		"t = {a = 1, b.c = { d = [ ] } }",
		"[table]",
		"[ a . \"b\" . c ]   # comment\nkey = 1",
		"[[ fruit ]]\nname = 1\n[[fruit]]\nname = 2",
		"[a.b]\n[a]\n[a.c]",
		"[x]\ny.z = 1\n[x.y.w]",
		"\t\r\na=\"b\"\r\n",
		"[[a.b]]\n\t[[a.b.c]]\n[[a.b.c]]",
		"a = \"\\u00e9\\U0001F600\\\\\"",
		"a = 1 #",
		"a = 1 # trailing at eof",
		"k = \"\"\"\n\\\n   folded \\\n   text\"\"\"",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			doc, err := ParseString(input)
			require.NoError(t, err)
			require.Equal(t, input, doc.String())
		})
	}
}

func TestParseTriviaSlots(t *testing.T) {
	doc, err := ParseString("# top\n  a . b = 1 # c\n\n[t] # h\nx=\"y\"\n# end\n")
	require.NoError(t, err)

	require.Equal(t, 1, doc.LenChildren())
	c := doc.entries[0].(*DirectChild)
	require.Equal(t, "# top\n  ", c.keys[0].leading)
	require.Equal(t, " ", c.keys[0].trailing)
	require.Equal(t, " ", c.keys[1].leading)
	require.Equal(t, " ", c.keys[1].trailing)
	require.Equal(t, " ", c.value.LeadingTrivia())
	require.Equal(t, " # c", c.value.TrailingTrivia())
	require.False(t, c.keys[0].auto)

	tbl := doc.entries[1].(*Container)
	require.Equal(t, "\n\n", tbl.LeadingTrivia())
	require.Equal(t, " # h", tbl.HeaderTrailingTrivia())
	require.Equal(t, "\n", tbl.children[0].LeadingTrivia())
	require.Equal(t, "", tbl.TrailingTrivia())
	require.Equal(t, "\n# end\n", doc.TrailingTrivia())

	arrDoc, err := ParseString("a = [ 1 ,\n 2, ]")
	require.NoError(t, err)
	arr := arrDoc.entries[0].(*DirectChild).value.(*ArrayValue)
	require.Equal(t, " ", arr.values[0].LeadingTrivia())
	require.Equal(t, " ", arr.values[0].TrailingTrivia())
	require.Equal(t, "\n ", arr.values[1].LeadingTrivia())
	require.True(t, arr.TrailingComma())
	require.Equal(t, " ", arr.ClosingTrivia())
}

func TestParseValues(t *testing.T) {
	doc, err := ParseString(`s = "a\tb"
l = 'C:\x'
n = 0o17
f = 1e3
b = false
d = 1979-05-27
tm = 07:32:00
ldt = 1979-05-27T07:32:00.25
odt = 1979-05-27T07:32:00+01:00
a = [1, "x", {k = true}]
`)
	require.NoError(t, err)

	m, err := doc.Map()
	require.NoError(t, err)
	require.Equal(t, "a\tb", m["s"])
	require.Equal(t, `C:\x`, m["l"])
	require.Equal(t, int64(15), m["n"])
	require.Equal(t, 1000.0, m["f"])
	require.Equal(t, false, m["b"])
	require.Equal(t, LocalDate, m["d"].(Datetime).Kind)
	require.Equal(t, LocalTime, m["tm"].(Datetime).Kind)
	require.Equal(t, 250_000_000, m["ldt"].(Datetime).Time.Nanosecond())
	odt := m["odt"].(Datetime)
	require.Equal(t, OffsetDatetime, odt.Kind)
	_, offset := odt.Time.Zone()
	require.Equal(t, 3600, offset)
	require.Equal(t, []any{int64(1), "x", map[string]any{"k": true}}, m["a"])
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		msg    string
		line   int
		column int
	}{
		{"missing value", "a = ", "expected a value, got end of file", 1, 5},
		{"missing equals", "a 1", "expected '=' after key, got IDENT '1'", 1, 3},
		{"missing key", "= 1", "expected a key, got '='", 1, 1},
		{"two pairs on a line", "a = 1 b = 2", "expected a line break, got IDENT 'b'", 1, 7},
		{"unterminated string", "a = \"abc", "unterminated string", 1, 5},
		{"bad underscore", "a = 0x_1", "underscores must be surrounded by digits", 1, 7},
		{"bad escape", "\na = \"\\q\"", `invalid escape sequence \q`, 2, 6},
		{"leading zero", "a = 012", `leading zeros are not allowed in "012"`, 1, 5},
		{"bad datetime", "a = 1979-13-01", `invalid datetime "1979-13-01"`, 1, 5},
		{"invalid bare value", "a = yes", `invalid value "yes"`, 1, 5},
		{"double comma in array", "a = [1,,]", "expected a value, got ','", 1, 8},
		{"missing comma in array", "a = [1 2]", "expected ',' or ']', got INT '2'", 1, 8},
		{"unterminated array", "a = [1,\n", "expected a value, got end of file", 2, 1},
		{"inline trailing comma", "a = {x = 1,}", "trailing comma is not allowed in an inline table", 1, 12},
		{"newline in inline table", "a = {x = 1\n}", "expected ',' or '}', got newline", 1, 11},
		{"unclosed header", "[a\nb = 1", "expected ']', got newline", 1, 3},
		{"text after header", "[a] b = 1", "expected a line break, got IDENT 'b'", 1, 5},
		{"empty header", "[]", "expected a key, got ']'", 1, 2},
		{"lone carriage return", "a = 1\r", "carriage return must be followed by a line feed", 1, 6},
		{"control character in comment", "# \x00", "forbidden control character U+0000 in comment", 1, 1},
		{"duplicate key", "a = 1\na = 2", "key a is already defined", 2, 1},
		{"duplicate table", "[a]\n[a]", "table a is already defined", 2, 1},
		{"table over dotted keys", "a.b = 1\n[a]", "table a is already defined by dotted keys", 2, 1},
		{"header through value", "a = 1\n[a.b]", "key a is already defined as a value", 2, 1},
		{"array of tables over table", "[a]\n[[a]]", "array of tables a is already defined as a table", 2, 1},
		{"table over array of tables", "[[a]]\n[a]", "table a is already defined as an array of tables", 2, 1},
		{"dotted key into header table", "[a.b]\n[a]\nb.c = 1", "table a.b cannot be extended with dotted keys", 3, 1},
		{"value over implicit table", "[a.b]\nc = 1\n[a]\nb = 2", "key a.b is already defined", 4, 1},
		{"extend inline table", "a = {x = 1}\n[a.b]", "key a is already defined as a value", 2, 1},
		{"duplicate in inline table", "a = {x = 1, x = 2}", "key x is already defined", 1, 13},
		{"quoted duplicate", "a = 1\n\"a\" = 2", "key a is already defined", 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseString(tt.input)
			require.Nil(t, doc)
			require.ErrorIs(t, err, ErrSyntax)
			var se *SyntaxError
			require.ErrorAs(t, err, &se)
			require.Equal(t, tt.msg, se.Msg)
			require.Equal(t, tt.line, se.Line, "line")
			require.Equal(t, tt.column, se.Column, "column")
		})
	}
}

func TestSyntaxErrorMessage(t *testing.T) {
	_, err := ParseString("a = 1\nb = ")
	require.EqualError(t, err, "tomldoc: syntax error at line 2, column 5 (offset 10): expected a value, got end of file")
}

func TestArrayOfTablesScopes(t *testing.T) {
	_, err := ParseString("[[a]]\nx = 1\n[a.b]\n[[a]]\nx = 2\n[a.b]")
	require.NoError(t, err)
}

func TestMaxDepth(t *testing.T) {
	_, err := ParseString("a = [[[1]]]", MaxDepth(3))
	require.NoError(t, err)

	_, err = ParseString("a = [[[1]]]", MaxDepth(2))
	var se *SyntaxError
	require.ErrorAs(t, err, &se)
	require.Equal(t, "maximum nesting depth of 2 exceeded", se.Msg)
	require.Equal(t, 6, se.Offset)

	_, err = ParseString("a = {b = {c = 1}}", MaxDepth(1))
	require.ErrorIs(t, err, ErrSyntax)

	_, err = ParseString("a = 1", MaxDepth(0))
	require.EqualError(t, err, "tomldoc: max depth must be a positive integer")
}

func TestCheckTrivia(t *testing.T) {
	tests := []struct {
		input string
		rule  triviaRule
		ok    bool
	}{
		{" \t", ruleInline, true},
		{"#c", ruleInline, false},
		{"\n", ruleInline, false},
		{" # c", ruleLineEnd, true},
		{" # c\n", ruleLineEnd, false},
		{"\n# c\n  ", ruleBlock, true},
		{"\n# c", ruleBlock, false},
		{"\n# c", ruleTail, true},
		{"\r\n", ruleBlock, true},
		{"\r", ruleBlock, false},
		{"x", ruleTail, false},
		{"# \x01\n", ruleBlock, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := checkTrivia(tt.input, tt.rule)
			if tt.ok {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalidTrivia)
		})
	}
}

func TestJoinTrivia(t *testing.T) {
	require.Equal(t, "\n# a\n ", joinTrivia("\n# a", "\n ", ruleBlock))
	require.Equal(t, " # a\n", joinTrivia(" # a", "", ruleBlock))
	require.Equal(t, "\n# a", joinTrivia("\n# a", "", ruleTail))
}
