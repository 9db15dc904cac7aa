package tomldoc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/KimNorgaard/go-tomldoc/internal/literal"
)

// Kind identifies the variant of a Value.
type Kind int

const (
	KindString Kind = iota
	KindInteger
	KindFloat
	KindBoolean
	KindDatetime
	KindArray
	KindInlineTable
)

var kindNames = [...]string{
	KindString:      "string",
	KindInteger:     "integer",
	KindFloat:       "float",
	KindBoolean:     "boolean",
	KindDatetime:    "datetime",
	KindArray:       "array",
	KindInlineTable: "inline table",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Value is a TOML value together with its Markup. The set of
// implementations is closed: *StringValue, *IntegerValue, *FloatValue,
// *BooleanValue, *DatetimeValue, *ArrayValue and *InlineTableValue.
type Value interface {
	Kind() Kind
	// Raw returns the value as written, without surrounding trivia.
	Raw() string
	LeadingTrivia() string
	TrailingTrivia() string
	SetLeadingTrivia(string) error
	SetTrailingTrivia(string) error
	// Interface returns the decoded value as string, int64, float64,
	// bool, Datetime, []any or map[string]any.
	Interface() any

	markup() *Markup
	writeTo(w *writer)
}

// StringStyle is the quoting form of a string literal.
type StringStyle int

const (
	BasicString StringStyle = iota
	LiteralString
	MultiLineBasicString
	MultiLineLiteralString
)

// StringValue is a string in any of its four quoting forms.
type StringValue struct {
	Markup
	value string
}

// NewString returns a basic string value.
func NewString(s string) *StringValue {
	return &StringValue{Markup: newMarkup(literal.QuoteBasic(s)), value: s}
}

func (v *StringValue) Kind() Kind     { return KindString }
func (v *StringValue) Value() string  { return v.value }
func (v *StringValue) Interface() any { return v.value }

// Style reports how the string was quoted in the source.
func (v *StringValue) Style() StringStyle {
	switch {
	case strings.HasPrefix(v.raw, `"""`):
		return MultiLineBasicString
	case strings.HasPrefix(v.raw, `'''`):
		return MultiLineLiteralString
	case strings.HasPrefix(v.raw, `'`):
		return LiteralString
	}
	return BasicString
}

// IntegerValue is a 64-bit signed integer, in any base.
type IntegerValue struct {
	Markup
	value int64
}

// NewInteger returns a decimal integer value.
func NewInteger(n int64) *IntegerValue {
	return &IntegerValue{Markup: newMarkup(literal.FormatInt(n)), value: n}
}

func (v *IntegerValue) Kind() Kind     { return KindInteger }
func (v *IntegerValue) Value() int64   { return v.value }
func (v *IntegerValue) Interface() any { return v.value }

// FloatValue is a 64-bit float, including inf and nan.
type FloatValue struct {
	Markup
	value float64
}

// NewFloat returns a float value spelled with the fewest digits that
// read back as f.
func NewFloat(f float64) *FloatValue {
	return &FloatValue{Markup: newMarkup(literal.FormatFloat(f)), value: f}
}

func (v *FloatValue) Kind() Kind     { return KindFloat }
func (v *FloatValue) Value() float64 { return v.value }
func (v *FloatValue) Interface() any { return v.value }

// BooleanValue is true or false.
type BooleanValue struct {
	Markup
	value bool
}

func NewBoolean(b bool) *BooleanValue {
	raw := "false"
	if b {
		raw = "true"
	}
	return &BooleanValue{Markup: newMarkup(raw), value: b}
}

func (v *BooleanValue) Kind() Kind     { return KindBoolean }
func (v *BooleanValue) Value() bool    { return v.value }
func (v *BooleanValue) Interface() any { return v.value }

// DatetimeValue is one of the four date and time forms.
type DatetimeValue struct {
	Markup
	value Datetime
}

func NewDatetime(d Datetime) *DatetimeValue {
	return &DatetimeValue{Markup: newMarkup(d.String()), value: d}
}

func (v *DatetimeValue) Kind() Kind      { return KindDatetime }
func (v *DatetimeValue) Value() Datetime { return v.value }
func (v *DatetimeValue) Interface() any  { return v.value }

var errNilValue = errors.New("tomldoc: nil value")

// attach binds v to a parent slot with the given trivia rules.
func attach(v Value, lead, trail triviaRule) error {
	if v == nil {
		return errNilValue
	}
	m := v.markup()
	if m.owned {
		return ErrAttached
	}
	if err := m.canBind(lead, trail); err != nil {
		return err
	}
	m.bind(lead, trail)
	return nil
}

// adopt moves the trivia of old onto its replacement v.
func adopt(v, old Value) error {
	m, o := v.markup(), old.markup()
	if m.owned {
		return ErrAttached
	}
	m.leading, m.trailing, m.auto = o.leading, o.trailing, o.auto
	m.bind(o.leadRule, o.trailRule)
	o.detach()
	return nil
}
