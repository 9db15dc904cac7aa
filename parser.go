package tomldoc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/KimNorgaard/go-tomldoc/internal/lexer"
	"github.com/KimNorgaard/go-tomldoc/internal/literal"
	"github.com/KimNorgaard/go-tomldoc/internal/token"
)

type valueParseFn func(depth int) (Value, error)

// Parser turns TOML source into a Document. Parsing stops at the first
// error; no partial document is returned.
type Parser struct {
	src  []byte
	opts []Option

	l        *lexer.Lexer
	lines    *token.LineIndex
	curToken token.Token
	maxDepth int
	scope    *scope

	valueParseFns map[token.Type]valueParseFn
}

// NewParser creates a parser for src. Options are applied by Parse.
func NewParser(src []byte, opts ...Option) *Parser {
	p := &Parser{src: src, opts: opts}

	p.valueParseFns = make(map[token.Type]valueParseFn)
	p.registerValue(token.STRING, p.parseString)
	p.registerValue(token.LITERAL, p.parseString)
	p.registerValue(token.MLSTRING, p.parseString)
	p.registerValue(token.MLLITERAL, p.parseString)
	p.registerValue(token.INT, p.parseInteger)
	p.registerValue(token.FLOAT, p.parseFloat)
	p.registerValue(token.BOOL, p.parseBoolean)
	p.registerValue(token.DATETIME, p.parseDatetime)
	p.registerValue(token.LBRACK, p.parseArray)
	p.registerValue(token.LBRACE, p.parseInlineTable)

	return p
}

// Parse parses the whole input. Syntax errors are reported as
// *SyntaxError.
func (p *Parser) Parse() (*Document, error) {
	o := options{maxDepth: defaultMaxDepth}
	for _, opt := range p.opts {
		if err := opt(&o); err != nil {
			return nil, err
		}
	}
	p.maxDepth = o.maxDepth
	p.l = lexer.New(p.src)
	p.scope = newScope()
	p.nextToken(lexer.Key)

	doc := New()
	var current *Container
	for {
		lead, err := p.trivia(lexer.Key, true)
		if err != nil {
			return nil, err
		}

		switch p.curToken.Type {
		case token.EOF:
			doc.trailing = lead
			return doc, nil
		case token.LBRACK, token.LLBRACK:
			c, err := p.parseContainer(lead)
			if err != nil {
				return nil, err
			}
			c.doc = doc
			doc.entries = append(doc.entries, c)
			current = c
		default:
			var base []string
			if current != nil {
				base = current.Path()
			}
			child, err := p.parseChild(lead, ruleBlock, ruleLineEnd, lexer.Key, base, p.scope, 0)
			if err != nil {
				return nil, err
			}
			if err := p.expectLineEnd(); err != nil {
				return nil, err
			}
			if current != nil {
				current.children = append(current.children, child)
			} else {
				doc.entries = append(doc.entries, child)
			}
		}
	}
}

// The contract for all parse functions is that they are entered with
// p.curToken being the first token of the construct, and they return with
// p.curToken pointing to the token after it.

// parseContainer parses a [table] or [[array of tables]] header.
func (p *Parser) parseContainer(lead string) (*Container, error) {
	start := p.curToken.Pos.Offset
	kind, closing := Table, token.RBRACK
	if p.curTokenIs(token.LLBRACK) {
		kind, closing = ArrayOfTables, token.RRBRACK
	}
	p.nextToken(lexer.Key)

	keyLead, err := p.trivia(lexer.Key, false)
	if err != nil {
		return nil, err
	}
	keys, err := p.parseKeys(keyLead, ruleInline)
	if err != nil {
		return nil, err
	}
	if !p.curTokenIs(closing) {
		return nil, p.unexpected(fmt.Sprintf("'%s'", closing))
	}
	p.nextToken(lexer.Key)

	trail, err := p.trivia(lexer.Key, false)
	if err != nil {
		return nil, err
	}
	if err := p.expectLineEnd(); err != nil {
		return nil, err
	}

	path := keyNames(keys)
	if kind == Table {
		err = p.scope.defineTable(path)
	} else {
		err = p.scope.defineArrayTable(path)
	}
	if err != nil {
		return nil, p.errorAt(start, "%s", err)
	}

	return &Container{
		kind: kind,
		keys: keys,
		head: Markup{
			leading:   lead,
			trailing:  trail,
			owned:     true,
			leadRule:  ruleBlock,
			trailRule: ruleLineEnd,
		},
	}, nil
}

// parseChild parses key = value. lead is the trivia already read before
// the key. trailMode selects how tokens after the value's trivia are
// lexed; scalars themselves always advance in Value mode so that "]]"
// closing nested arrays stays two tokens.
func (p *Parser) parseChild(lead string, leadRule, trailRule triviaRule, trailMode lexer.Mode, base []string, sc *scope, depth int) (*DirectChild, error) {
	start := p.curToken.Pos.Offset
	keys, err := p.parseKeys(lead, leadRule)
	if err != nil {
		return nil, err
	}
	if !p.curTokenIs(token.EQUAL) {
		return nil, p.unexpected("'=' after key")
	}
	p.nextToken(lexer.Value)

	valueLead, err := p.trivia(lexer.Value, false)
	if err != nil {
		return nil, err
	}
	v, err := p.parseValue(depth)
	if err != nil {
		return nil, err
	}
	trail, err := p.trivia(trailMode, false)
	if err != nil {
		return nil, err
	}

	m := v.markup()
	m.leading, m.trailing = valueLead, trail
	m.bind(ruleInline, trailRule)

	if err := sc.defineValue(base, keyNames(keys)); err != nil {
		return nil, p.errorAt(start, "%s", err)
	}
	return &DirectChild{keys: keys, value: v}, nil
}

// parseKeys parses a simple or dotted key. lead is the trivia before the
// first segment.
func (p *Parser) parseKeys(lead string, leadRule triviaRule) ([]*Key, error) {
	var keys []*Key
	for {
		if !p.curToken.Type.IsKey() {
			return nil, p.unexpected("a key")
		}
		name := p.curToken.Literal
		if p.curToken.Type.IsString() {
			var err error
			if name, err = p.unquote(); err != nil {
				return nil, err
			}
		}
		k := &Key{
			Markup: Markup{raw: p.curToken.Literal, leading: lead, owned: true, trailRule: ruleInline},
			name:   name,
		}
		if len(keys) == 0 {
			k.leadRule = leadRule
		}
		p.nextToken(lexer.Key)

		trail, err := p.trivia(lexer.Key, false)
		if err != nil {
			return nil, err
		}
		k.trailing = trail
		keys = append(keys, k)

		if !p.curTokenIs(token.DOT) {
			return keys, nil
		}
		p.nextToken(lexer.Key)
		if lead, err = p.trivia(lexer.Key, false); err != nil {
			return nil, err
		}
	}
}

func (p *Parser) parseValue(depth int) (Value, error) {
	fn := p.valueParseFns[p.curToken.Type]
	if fn == nil {
		return nil, p.unexpected("a value")
	}
	return fn(depth)
}

func (p *Parser) parseString(int) (Value, error) {
	s, err := p.unquote()
	if err != nil {
		return nil, err
	}
	v := &StringValue{Markup: Markup{raw: p.curToken.Literal}, value: s}
	p.nextToken(lexer.Value)
	return v, nil
}

func (p *Parser) parseInteger(int) (Value, error) {
	n, err := literal.ParseInt(p.curToken.Literal)
	if err != nil {
		return nil, p.literalError(err)
	}
	v := &IntegerValue{Markup: Markup{raw: p.curToken.Literal}, value: n}
	p.nextToken(lexer.Value)
	return v, nil
}

func (p *Parser) parseFloat(int) (Value, error) {
	f, err := literal.ParseFloat(p.curToken.Literal)
	if err != nil {
		return nil, p.literalError(err)
	}
	v := &FloatValue{Markup: Markup{raw: p.curToken.Literal}, value: f}
	p.nextToken(lexer.Value)
	return v, nil
}

func (p *Parser) parseBoolean(int) (Value, error) {
	v := &BooleanValue{Markup: Markup{raw: p.curToken.Literal}, value: p.curToken.Literal == "true"}
	p.nextToken(lexer.Value)
	return v, nil
}

func (p *Parser) parseDatetime(int) (Value, error) {
	d, err := ParseDatetime(p.curToken.Literal)
	if err != nil {
		return nil, p.errorAt(p.curToken.Pos.Offset, "%s", err)
	}
	v := &DatetimeValue{Markup: Markup{raw: p.curToken.Literal}, value: d}
	p.nextToken(lexer.Value)
	return v, nil
}

func (p *Parser) parseArray(depth int) (Value, error) {
	if depth+1 > p.maxDepth {
		return nil, p.errorAt(p.curToken.Pos.Offset, "maximum nesting depth of %d exceeded", p.maxDepth)
	}
	arr := &ArrayValue{}
	p.nextToken(lexer.Value) // consume '['

	for {
		lead, err := p.trivia(lexer.Value, true)
		if err != nil {
			return nil, err
		}
		if p.curTokenIs(token.RBRACK) {
			arr.closing = lead
			break
		}
		v, err := p.parseValue(depth + 1)
		if err != nil {
			return nil, err
		}
		trail, err := p.trivia(lexer.Value, true)
		if err != nil {
			return nil, err
		}
		m := v.markup()
		m.leading, m.trailing = lead, trail
		m.bind(ruleBlock, ruleBlock)
		arr.values = append(arr.values, v)

		if p.curTokenIs(token.COMMA) {
			arr.trailingComma = true
			p.nextToken(lexer.Value)
			continue
		}
		arr.trailingComma = false
		if p.curTokenIs(token.RBRACK) {
			break
		}
		return nil, p.unexpected("',' or ']'")
	}
	p.nextToken(lexer.Value) // consume ']'
	return arr, nil
}

func (p *Parser) parseInlineTable(depth int) (Value, error) {
	if depth+1 > p.maxDepth {
		return nil, p.errorAt(p.curToken.Pos.Offset, "maximum nesting depth of %d exceeded", p.maxDepth)
	}
	tbl := &InlineTableValue{}
	local := newScope()
	p.nextToken(lexer.Key) // consume '{'

	for {
		lead, err := p.trivia(lexer.Key, false)
		if err != nil {
			return nil, err
		}
		if p.curTokenIs(token.RBRACE) {
			if len(tbl.children) > 0 {
				return nil, p.errorAt(p.curToken.Pos.Offset, "trailing comma is not allowed in an inline table")
			}
			tbl.closing = lead
			break
		}
		child, err := p.parseChild(lead, ruleInline, ruleInline, lexer.Value, nil, local, depth+1)
		if err != nil {
			return nil, err
		}
		tbl.children = append(tbl.children, child)

		if p.curTokenIs(token.COMMA) {
			p.nextToken(lexer.Key)
			continue
		}
		if p.curTokenIs(token.RBRACE) {
			break
		}
		return nil, p.unexpected("',' or '}'")
	}
	p.nextToken(lexer.Value) // consume '}'
	return tbl, nil
}

// trivia collects whitespace and comments, and line breaks when
// newlines is set. Tokens after line breaks are lexed in mode.
func (p *Parser) trivia(mode lexer.Mode, newlines bool) (string, error) {
	var sb strings.Builder
	for {
		switch p.curToken.Type {
		case token.WHITESPACE, token.COMMENT:
		case token.NEWLINE:
			if !newlines {
				return sb.String(), nil
			}
		case token.ILLEGAL:
			return "", p.unexpected("")
		default:
			return sb.String(), nil
		}
		sb.WriteString(p.curToken.Literal)
		p.nextToken(mode)
	}
}

func (p *Parser) expectLineEnd() error {
	if p.curTokenIs(token.NEWLINE) || p.curTokenIs(token.EOF) {
		return nil
	}
	return p.unexpected("a line break")
}

func (p *Parser) unquote() (string, error) {
	s, err := literal.Unquote(p.curToken.Literal)
	if err != nil {
		return "", p.literalError(err)
	}
	return s, nil
}

func (p *Parser) literalError(err error) error {
	off := p.curToken.Pos.Offset
	var le *literal.Error
	if errors.As(err, &le) {
		off += le.Offset
	}
	return p.errorAt(off, "%s", err)
}

func (p *Parser) unexpected(what string) error {
	if p.curTokenIs(token.ILLEGAL) {
		return p.errorAt(p.curToken.Pos.Offset, "%s", p.curToken.Literal)
	}
	return p.errorAt(p.curToken.Pos.Offset, "expected %s, got %s", what, p.curToken.Describe())
}

func (p *Parser) errorAt(off int, format string, args ...any) error {
	if p.lines == nil {
		p.lines = token.NewLineIndex(p.src)
	}
	pos := p.lines.Position(off)
	return &SyntaxError{Offset: pos.Offset, Line: pos.Line, Column: pos.Column, Msg: fmt.Sprintf(format, args...)}
}

func (p *Parser) registerValue(t token.Type, fn valueParseFn) {
	p.valueParseFns[t] = fn
}

func (p *Parser) nextToken(mode lexer.Mode) {
	p.curToken = p.l.Next(mode)
}

func (p *Parser) curTokenIs(t token.Type) bool {
	return p.curToken.Type == t
}
