package tomldoc

import (
	"fmt"
	"io"
	"iter"
	"slices"
)

// Document is a parsed or built TOML document. Its entries form one
// sequence: the top-level children first, then the containers in source
// order. Writing a document concatenates every node's text, so a parsed
// document that was not modified reproduces its input byte for byte.
//
// A Document is not safe for concurrent use.
type Document struct {
	entries  []Entry
	trailing string
}

// New returns an empty document.
func New() *Document {
	return &Document{}
}

// Len returns the number of entries.
func (d *Document) Len() int { return len(d.entries) }

// Entry returns the entry at index i of the unified sequence.
func (d *Document) Entry(i int) (Entry, error) {
	if err := checkIndex(i, len(d.entries)); err != nil {
		return nil, err
	}
	return d.entries[i], nil
}

// Entries iterates over children and containers in document order.
func (d *Document) Entries() iter.Seq2[int, Entry] {
	return func(yield func(int, Entry) bool) {
		for i, e := range d.entries {
			if !yield(i, e) {
				return
			}
		}
	}
}

// LenChildren returns the number of top-level key/value pairs.
func (d *Document) LenChildren() int {
	for i, e := range d.entries {
		if _, ok := e.(*Container); ok {
			return i
		}
	}
	return len(d.entries)
}

// LenContainers returns the number of table headers.
func (d *Document) LenContainers() int { return len(d.entries) - d.LenChildren() }

// Child returns the top-level child at index i.
func (d *Document) Child(i int) (*DirectChild, error) {
	if err := checkIndex(i, d.LenChildren()); err != nil {
		return nil, err
	}
	return d.entries[i].(*DirectChild), nil
}

// Children iterates over the top-level key/value pairs.
func (d *Document) Children() iter.Seq2[int, *DirectChild] {
	return func(yield func(int, *DirectChild) bool) {
		for i := range d.LenChildren() {
			if !yield(i, d.entries[i].(*DirectChild)) {
				return
			}
		}
	}
}

// Container returns the container at index i, counted among containers.
func (d *Document) Container(i int) (*Container, error) {
	n := d.LenChildren()
	if err := checkIndex(i, len(d.entries)-n); err != nil {
		return nil, err
	}
	return d.entries[n+i].(*Container), nil
}

// Containers iterates over every container, at any depth, in document
// order.
func (d *Document) Containers() iter.Seq2[int, *Container] {
	return d.ContainersWithPrefix()
}

// ContainersWithPrefix iterates over the containers whose header path
// starts with path, the container for path itself included. Indexes are
// container indexes as accepted by Container.
func (d *Document) ContainersWithPrefix(path ...string) iter.Seq2[int, *Container] {
	return func(yield func(int, *Container) bool) {
		n := d.LenChildren()
		for i, e := range d.entries[n:] {
			c := e.(*Container)
			if !c.HasPrefix(path...) {
				continue
			}
			if !yield(i, c) {
				return
			}
		}
	}
}

// FindContainer returns the first container whose header path equals
// path.
func (d *Document) FindContainer(path ...string) (*Container, bool) {
	for _, c := range d.ContainersWithPrefix(path...) {
		if len(c.keys) == len(path) {
			return c, true
		}
	}
	return nil, false
}

// FindChild returns the first pair whose full path, header path
// included, equals path.
func (d *Document) FindChild(path ...string) (*DirectChild, bool) {
	for _, c := range d.Children() {
		if slices.Equal(c.Path(), path) {
			return c, true
		}
	}
	for _, c := range d.Containers() {
		prefix := c.Path()
		if len(prefix) >= len(path) || !hasPrefix(path, prefix) {
			continue
		}
		for _, ch := range c.children {
			if slices.Equal(ch.Path(), path[len(prefix):]) {
				return ch, true
			}
		}
	}
	return nil, false
}

// TrailingTrivia returns the trivia after the last entry.
func (d *Document) TrailingTrivia() string { return d.trailing }

// SetTrailingTrivia replaces the trivia after the last entry.
func (d *Document) SetTrailingTrivia(s string) error {
	if err := checkTrivia(s, ruleTail); err != nil {
		return err
	}
	d.trailing = s
	return nil
}

// InsertChild places a top-level key/value pair at index i, where i
// counts top-level children only.
func (d *Document) InsertChild(i int, key string, v Value) (*DirectChild, error) {
	return d.InsertDottedChild(i, []string{key}, v)
}

// InsertDottedChild places a top-level pair with a dotted key such as
// a.b = 1 at index i.
func (d *Document) InsertDottedChild(i int, path []string, v Value) (*DirectChild, error) {
	n := d.LenChildren()
	if err := checkInsert(i, n); err != nil {
		return nil, err
	}
	if len(path) == 0 {
		return nil, ErrEmptyPath
	}
	for _, c := range d.Children() {
		if pathsOverlap(c.Path(), path) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateKey, displayPath(path))
		}
	}
	pending := &DirectChild{keys: newPathKeys(path, "")}
	if err := d.conflict(slices.Insert(slices.Clone(d.entries), i, Entry(pending)), containerChildren); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDuplicateKey, err)
	}
	c, err := newChild(path, v, ruleBlock, ruleLineEnd)
	if err != nil {
		return nil, err
	}
	d.insertEntry(i, c)
	return c, nil
}

// InsertContainer places a new header for path at index i, where i
// counts containers only. Any number of array of tables headers may
// share a path; a table header must be unique and may not share its path
// with an array of tables.
func (d *Document) InsertContainer(i int, path []string, kind ContainerKind) (*Container, error) {
	n := d.LenChildren()
	if err := checkInsert(i, len(d.entries)-n); err != nil {
		return nil, err
	}
	if len(path) == 0 {
		return nil, ErrEmptyPath
	}
	if kind != Table && kind != ArrayOfTables {
		return nil, fmt.Errorf("tomldoc: invalid container kind %v", kind)
	}
	for _, c := range d.Containers() {
		if !slices.Equal(c.Path(), path) {
			continue
		}
		if kind == Table || c.kind == Table {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTable, displayPath(path))
		}
	}
	c := newContainer(path, kind)
	if err := d.conflict(slices.Insert(slices.Clone(d.entries), n+i, Entry(c)), containerChildren); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDuplicateTable, err)
	}
	c.doc = d
	d.insertEntry(n+i, c)
	return c, nil
}

// insertEntry places e at unified index i and settles positional trivia.
func (d *Document) insertEntry(i int, e Entry) {
	d.entries = slices.Insert(d.entries, i, e)
	d.settle()
}

// Remove drops the entry at index i of the unified sequence with its
// trivia and everything it owns. No other trivia changes.
func (d *Document) Remove(i int) error {
	if err := checkIndex(i, len(d.entries)); err != nil {
		return err
	}
	d.removeEntry(i)
	return nil
}

// RemovePreserveTrivia drops the entry at index i of the unified
// sequence but keeps its leading trivia and the trivia ending its last
// line, so comments around it survive. The kept text is prepended to the
// next entry's leading trivia, or to the document's trailing trivia when
// no entry follows.
//
// For a container with children the trivia ending its last line is that
// of its last child. Comments on the header line and between its
// children are removed with it.
func (d *Document) RemovePreserveTrivia(i int) error {
	if err := checkIndex(i, len(d.entries)); err != nil {
		return err
	}
	e := d.entries[i]
	kept := e.LeadingTrivia() + e.TrailingTrivia()
	d.removeEntry(i)
	d.passTrivia(i, kept)
	return nil
}

// RemoveChildPreserveTrivia drops child i of the container at container
// index ci, keeping its trivia like RemovePreserveTrivia. The kept text
// moves to the next child of the container, else to the next entry of
// the document, else to the document's trailing trivia.
func (d *Document) RemoveChildPreserveTrivia(ci, i int) error {
	c, err := d.Container(ci)
	if err != nil {
		return err
	}
	if err := checkIndex(i, len(c.children)); err != nil {
		return err
	}
	ch := c.children[i]
	kept := ch.LeadingTrivia() + ch.TrailingTrivia()
	if err := c.Remove(i); err != nil {
		return err
	}
	if i < len(c.children) {
		c.children[i].lead().prepend(kept)
		return nil
	}
	d.passTrivia(d.LenChildren()+ci+1, kept)
	return nil
}

func (d *Document) removeEntry(i int) {
	e := d.entries[i]
	d.entries = slices.Delete(d.entries, i, i+1)
	e.detach()
	d.settle()
}

// conflict replays the definitions of entries and reports the first key
// or table defined twice. Conflicts the document already has are not
// blamed on the pending change.
func (d *Document) conflict(entries []Entry, children func(*Container) []*DirectChild) error {
	err := checkEntries(entries, children)
	if err == nil || checkEntries(d.entries, containerChildren) != nil {
		return nil
	}
	return err
}

func containerChildren(c *Container) []*DirectChild { return c.children }

// passTrivia hands kept trivia to the entry at index i, or to the
// document's trailing trivia.
func (d *Document) passTrivia(i int, kept string) {
	if i < len(d.entries) {
		d.entries[i].lead().prepend(kept)
		return
	}
	d.trailing = joinTrivia(kept, d.trailing, ruleTail)
}

// settle recomputes the positional trivia of fresh nodes.
func (d *Document) settle() {
	for i, e := range d.entries {
		if i == 0 {
			e.lead().place("")
		} else {
			e.lead().place("\n")
		}
		if c, ok := e.(*Container); ok {
			c.settle()
		}
	}
}

// String returns the document text.
func (d *Document) String() string {
	var w writer
	d.writeTo(&w)
	return w.String()
}

// Bytes returns the document text.
func (d *Document) Bytes() []byte {
	return []byte(d.String())
}

// WriteTo writes the document text to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, d.String())
	return int64(n), err
}

func (d *Document) writeTo(w *writer) {
	for i, e := range d.entries {
		if i > 0 {
			w.WriteString(lineSeparator(e.LeadingTrivia()))
		}
		e.writeTo(w)
	}
	w.WriteString(d.trailing)
}
