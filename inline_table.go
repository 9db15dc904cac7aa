package tomldoc

import (
	"fmt"
	"iter"
)

// InlineTableValue is a table written on one line between braces.
type InlineTableValue struct {
	Markup
	children []*DirectChild
	closing  string
}

// NewInlineTable returns an empty inline table.
func NewInlineTable() *InlineTableValue {
	return &InlineTableValue{Markup: newMarkup("")}
}

func (t *InlineTableValue) Kind() Kind { return KindInlineTable }

func (t *InlineTableValue) Len() int { return len(t.children) }

// Get returns the pair at index i.
func (t *InlineTableValue) Get(i int) (*DirectChild, error) {
	if err := checkIndex(i, len(t.children)); err != nil {
		return nil, err
	}
	return t.children[i], nil
}

// Children iterates over the pairs in order.
func (t *InlineTableValue) Children() iter.Seq2[int, *DirectChild] {
	return func(yield func(int, *DirectChild) bool) {
		for i, c := range t.children {
			if !yield(i, c) {
				return
			}
		}
	}
}

// InsertChild places a key/value pair at index i.
func (t *InlineTableValue) InsertChild(i int, key string, v Value) (*DirectChild, error) {
	return t.InsertDottedChild(i, []string{key}, v)
}

// InsertDottedChild places a pair with a dotted key at index i.
func (t *InlineTableValue) InsertDottedChild(i int, path []string, v Value) (*DirectChild, error) {
	if err := checkInsert(i, len(t.children)); err != nil {
		return nil, err
	}
	if len(path) == 0 {
		return nil, ErrEmptyPath
	}
	if findOverlap(t.children, path) != nil {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateKey, displayPath(path))
	}
	c, err := newChild(path, v, ruleInline, ruleInline)
	if err != nil {
		return nil, err
	}
	t.children = append(t.children, nil)
	copy(t.children[i+1:], t.children[i:])
	t.children[i] = c
	t.settle()
	return c, nil
}

// Remove drops the pair at index i together with its trivia.
func (t *InlineTableValue) Remove(i int) error {
	if err := checkIndex(i, len(t.children)); err != nil {
		return err
	}
	old := t.children[i]
	t.children = append(t.children[:i], t.children[i+1:]...)
	old.detach()
	t.settle()
	return nil
}

// ClosingTrivia returns the trivia inside the braces of an empty table.
func (t *InlineTableValue) ClosingTrivia() string { return t.closing }

// SetClosingTrivia replaces the trivia before '}'.
func (t *InlineTableValue) SetClosingTrivia(s string) error {
	if err := checkTrivia(s, ruleInline); err != nil {
		return err
	}
	t.closing = s
	return nil
}

// Interface returns the pairs as a map[string]any. Dotted keys become
// nested maps.
func (t *InlineTableValue) Interface() any {
	m := make(map[string]any, len(t.children))
	for _, c := range t.children {
		// Pairs never overlap: the parser and InsertDottedChild reject
		// keys that are a prefix of one another.
		_ = setChild(m, c)
	}
	return m
}

// Raw renders the table, including the trivia of its pairs.
func (t *InlineTableValue) Raw() string {
	var w writer
	t.writeContent(&w)
	return w.String()
}

func (t *InlineTableValue) settle() {
	for i, c := range t.children {
		if i == 0 {
			c.lead().place("")
		} else {
			c.lead().place(" ")
		}
	}
}

func (t *InlineTableValue) writeTo(w *writer) {
	w.WriteString(t.leading)
	t.writeContent(w)
	w.WriteString(t.trailing)
}

func (t *InlineTableValue) writeContent(w *writer) {
	w.WriteByte('{')
	seq{
		n:     len(t.children),
		lead:  func(i int) *Markup { return t.children[i].lead() },
		trail: func(i int) *Markup { return t.children[i].value.markup() },
		write: func(w *writer, i int) { t.children[i].writeTo(w) },
	}.writeTo(w)
	w.WriteString(t.closing)
	w.WriteByte('}')
}
