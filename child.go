package tomldoc

// Entry is an element of a document's unified sequence: a *DirectChild
// or a *Container.
type Entry interface {
	// LeadingTrivia returns the trivia before the entry, including the
	// line break that ends the previous entry.
	LeadingTrivia() string
	SetLeadingTrivia(string) error
	// TrailingTrivia returns the trivia ending the entry's last line,
	// excluding the line break.
	TrailingTrivia() string
	// String returns the entry's text including its trivia.
	String() string

	lead() *Markup
	writeTo(w *writer)
	detach()
}

// DirectChild is a key/value pair. Dotted keys keep every segment with
// its own trivia; the first segment carries the line's leading trivia.
type DirectChild struct {
	keys  []*Key
	value Value
}

// newChild builds a fresh child. lead is the rule for the line's leading
// trivia and trail the rule for the value's trailing trivia.
func newChild(path []string, v Value, lead, trail triviaRule) (*DirectChild, error) {
	if len(path) == 0 {
		return nil, ErrEmptyPath
	}
	if err := attach(v, ruleInline, trail); err != nil {
		return nil, err
	}
	if m := v.markup(); m.auto {
		m.leading = " "
		m.auto = false
	}
	keys := newPathKeys(path, " ")
	keys[0].leadRule = lead
	return &DirectChild{keys: keys, value: v}, nil
}

// Key returns the first key segment.
func (c *DirectChild) Key() *Key { return c.keys[0] }

// Keys returns every key segment.
func (c *DirectChild) Keys() []*Key {
	return append([]*Key(nil), c.keys...)
}

// Path returns the decoded key segments.
func (c *DirectChild) Path() []string { return keyNames(c.keys) }

// Name returns the dotted key, spelled as in a document.
func (c *DirectChild) Name() string { return displayPath(c.Path()) }

func (c *DirectChild) Value() Value { return c.value }

// SetValue replaces the value. The new value takes over the trivia of the
// old one, so comments after the value survive.
func (c *DirectChild) SetValue(v Value) error {
	if v == nil {
		return errNilValue
	}
	if v == c.value {
		return nil
	}
	if err := adopt(v, c.value); err != nil {
		return err
	}
	c.value = v
	return nil
}

func (c *DirectChild) LeadingTrivia() string { return c.keys[0].leading }

func (c *DirectChild) SetLeadingTrivia(s string) error {
	return c.keys[0].SetLeadingTrivia(s)
}

func (c *DirectChild) TrailingTrivia() string { return c.value.TrailingTrivia() }

func (c *DirectChild) String() string {
	var w writer
	c.writeTo(&w)
	return w.String()
}

func (c *DirectChild) lead() *Markup { return &c.keys[0].Markup }

func (c *DirectChild) writeTo(w *writer) {
	writeKeys(w, c.keys)
	w.WriteByte('=')
	c.value.writeTo(w)
}

func (c *DirectChild) detach() {
	c.value.markup().detach()
}

// findOverlap returns the first child whose key path overlaps path.
func findOverlap(children []*DirectChild, path []string) *DirectChild {
	for _, c := range children {
		if pathsOverlap(c.Path(), path) {
			return c
		}
	}
	return nil
}
