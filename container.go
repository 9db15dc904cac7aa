package tomldoc

import (
	"fmt"
	"iter"
	"slices"
)

// ContainerKind tells a [table] header from an [[array of tables]]
// header.
type ContainerKind int

const (
	Table ContainerKind = iota
	ArrayOfTables
)

func (k ContainerKind) String() string {
	switch k {
	case Table:
		return "table"
	case ArrayOfTables:
		return "array of tables"
	}
	return fmt.Sprintf("ContainerKind(%d)", int(k))
}

// Container is a table header and the key/value pairs below it.
// Containers are flat siblings within a document; [a.b] is not stored
// inside [a]. Use Document.ContainersWithPrefix to group them.
type Container struct {
	kind ContainerKind
	keys []*Key
	// head holds the leading trivia and the trivia after the closing
	// bracket.
	head     Markup
	children []*DirectChild
	// doc is the document holding the container, nil once removed.
	doc *Document
}

func newContainer(path []string, kind ContainerKind) *Container {
	return &Container{
		kind: kind,
		keys: newPathKeys(path, ""),
		head: Markup{auto: true, owned: true, leadRule: ruleBlock, trailRule: ruleLineEnd},
	}
}

func (c *Container) Kind() ContainerKind { return c.kind }

// Keys returns the header's key segments.
func (c *Container) Keys() []*Key {
	return append([]*Key(nil), c.keys...)
}

// Path returns the decoded header path.
func (c *Container) Path() []string { return keyNames(c.keys) }

// Name returns the header path spelled as in a document.
func (c *Container) Name() string { return displayPath(c.Path()) }

// HasPrefix reports whether the header path starts with path.
func (c *Container) HasPrefix(path ...string) bool {
	return hasPrefix(c.Path(), path)
}

func (c *Container) LeadingTrivia() string { return c.head.leading }

func (c *Container) SetLeadingTrivia(s string) error { return c.head.SetLeadingTrivia(s) }

// HeaderTrailingTrivia returns the whitespace and comment after the
// closing bracket of the header.
func (c *Container) HeaderTrailingTrivia() string { return c.head.trailing }

func (c *Container) SetHeaderTrailingTrivia(s string) error { return c.head.SetTrailingTrivia(s) }

// TrailingTrivia returns the trivia ending the container's last line:
// that of its last child, or of the header when it has no children.
func (c *Container) TrailingTrivia() string {
	if n := len(c.children); n > 0 {
		return c.children[n-1].TrailingTrivia()
	}
	return c.head.trailing
}

// Len returns the number of children.
func (c *Container) Len() int { return len(c.children) }

// Child returns the child at index i.
func (c *Container) Child(i int) (*DirectChild, error) {
	if err := checkIndex(i, len(c.children)); err != nil {
		return nil, err
	}
	return c.children[i], nil
}

// Children iterates over the children in order.
func (c *Container) Children() iter.Seq2[int, *DirectChild] {
	return func(yield func(int, *DirectChild) bool) {
		for i, ch := range c.children {
			if !yield(i, ch) {
				return
			}
		}
	}
}

// InsertChild places a key/value pair at index i.
func (c *Container) InsertChild(i int, key string, v Value) (*DirectChild, error) {
	return c.InsertDottedChild(i, []string{key}, v)
}

// InsertDottedChild places a pair with a dotted key at index i.
func (c *Container) InsertDottedChild(i int, path []string, v Value) (*DirectChild, error) {
	if err := checkInsert(i, len(c.children)); err != nil {
		return nil, err
	}
	if len(path) == 0 {
		return nil, ErrEmptyPath
	}
	if findOverlap(c.children, path) != nil {
		return nil, fmt.Errorf("%w: %s in %s", ErrDuplicateKey, displayPath(path), c.Name())
	}
	if c.doc != nil {
		pending := &DirectChild{keys: newPathKeys(path, "")}
		err := c.doc.conflict(c.doc.entries, func(x *Container) []*DirectChild {
			if x == c {
				return slices.Insert(slices.Clone(c.children), i, pending)
			}
			return x.children
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDuplicateKey, err)
		}
	}
	ch, err := newChild(path, v, ruleBlock, ruleLineEnd)
	if err != nil {
		return nil, err
	}
	c.children = append(c.children, nil)
	copy(c.children[i+1:], c.children[i:])
	c.children[i] = ch
	c.settle()
	return ch, nil
}

// Remove drops the child at index i together with its trivia.
func (c *Container) Remove(i int) error {
	if err := checkIndex(i, len(c.children)); err != nil {
		return err
	}
	old := c.children[i]
	c.children = append(c.children[:i], c.children[i+1:]...)
	old.detach()
	return nil
}

func (c *Container) String() string {
	var w writer
	c.writeTo(&w)
	return w.String()
}

func (c *Container) settle() {
	for _, ch := range c.children {
		ch.lead().place("\n")
	}
}

func (c *Container) lead() *Markup { return &c.head }

func (c *Container) writeTo(w *writer) {
	w.WriteString(c.head.leading)
	if c.kind == ArrayOfTables {
		w.WriteString("[[")
	} else {
		w.WriteByte('[')
	}
	writeKeys(w, c.keys)
	if c.kind == ArrayOfTables {
		w.WriteString("]]")
	} else {
		w.WriteByte(']')
	}
	w.WriteString(c.head.trailing)
	for _, ch := range c.children {
		w.WriteString(lineSeparator(ch.LeadingTrivia()))
		ch.writeTo(w)
	}
}

func (c *Container) detach() {
	c.doc = nil
	for _, ch := range c.children {
		ch.detach()
	}
}
