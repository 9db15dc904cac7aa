package tomldoc

import "iter"

// ArrayValue is an array of values. Elements keep the trivia around them,
// including line breaks and comments of multi-line arrays.
type ArrayValue struct {
	Markup
	values        []Value
	trailingComma bool
	closing       string
}

// NewArray returns an array holding values. None of the values may
// already belong to a parent.
func NewArray(values ...Value) (*ArrayValue, error) {
	a := &ArrayValue{Markup: newMarkup("")}
	seen := make(map[Value]bool, len(values))
	for _, v := range values {
		if v == nil {
			return nil, errNilValue
		}
		if seen[v] || v.markup().owned {
			return nil, ErrAttached
		}
		if err := v.markup().canBind(ruleBlock, ruleBlock); err != nil {
			return nil, err
		}
		seen[v] = true
	}
	for _, v := range values {
		v.markup().bind(ruleBlock, ruleBlock)
	}
	a.values = append(a.values, values...)
	a.settle()
	return a, nil
}

func (a *ArrayValue) Kind() Kind { return KindArray }

func (a *ArrayValue) Len() int { return len(a.values) }

// Get returns the element at index i.
func (a *ArrayValue) Get(i int) (Value, error) {
	if err := checkIndex(i, len(a.values)); err != nil {
		return nil, err
	}
	return a.values[i], nil
}

// Values iterates over the elements in order.
func (a *ArrayValue) Values() iter.Seq2[int, Value] {
	return func(yield func(int, Value) bool) {
		for i, v := range a.values {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Insert places v at index i, shifting later elements.
func (a *ArrayValue) Insert(i int, v Value) error {
	if err := checkInsert(i, len(a.values)); err != nil {
		return err
	}
	if err := attach(v, ruleBlock, ruleBlock); err != nil {
		return err
	}
	a.values = append(a.values, nil)
	copy(a.values[i+1:], a.values[i:])
	a.values[i] = v
	a.settle()
	return nil
}

// Append adds v after the last element.
func (a *ArrayValue) Append(v Value) error {
	return a.Insert(len(a.values), v)
}

// Set replaces the element at index i. The new value takes over the
// trivia of the old one.
func (a *ArrayValue) Set(i int, v Value) error {
	if err := checkIndex(i, len(a.values)); err != nil {
		return err
	}
	if v == nil {
		return errNilValue
	}
	if v == a.values[i] {
		return nil
	}
	if err := adopt(v, a.values[i]); err != nil {
		return err
	}
	a.values[i] = v
	return nil
}

// Remove drops the element at index i together with its trivia.
func (a *ArrayValue) Remove(i int) error {
	if err := checkIndex(i, len(a.values)); err != nil {
		return err
	}
	old := a.values[i]
	a.values = append(a.values[:i], a.values[i+1:]...)
	if len(a.values) == 0 {
		a.trailingComma = false
	}
	old.markup().detach()
	a.settle()
	return nil
}

// TrailingComma reports whether the last element is followed by a comma.
func (a *ArrayValue) TrailingComma() bool { return a.trailingComma && len(a.values) > 0 }

// ClosingTrivia returns the trivia before ']' that follows a trailing
// comma or fills an empty array.
func (a *ArrayValue) ClosingTrivia() string { return a.closing }

// SetClosingTrivia replaces the trivia before ']'.
func (a *ArrayValue) SetClosingTrivia(s string) error {
	if err := checkTrivia(s, ruleBlock); err != nil {
		return err
	}
	a.closing = s
	return nil
}

// Interface returns the elements as a []any.
func (a *ArrayValue) Interface() any {
	out := make([]any, len(a.values))
	for i, v := range a.values {
		out[i] = v.Interface()
	}
	return out
}

// Raw renders the array, including the trivia of its elements.
func (a *ArrayValue) Raw() string {
	var w writer
	a.writeContent(&w)
	return w.String()
}

// release gives up ownership of the elements of an array that was never
// attached.
func (a *ArrayValue) release() {
	for _, v := range a.values {
		v.markup().owned = false
	}
}

func (a *ArrayValue) settle() {
	for i, v := range a.values {
		if i == 0 {
			v.markup().place("")
		} else {
			v.markup().place(" ")
		}
	}
}

func (a *ArrayValue) writeTo(w *writer) {
	w.WriteString(a.leading)
	a.writeContent(w)
	w.WriteString(a.trailing)
}

func (a *ArrayValue) writeContent(w *writer) {
	w.WriteByte('[')
	elem := func(i int) *Markup { return a.values[i].markup() }
	seq{
		n:     len(a.values),
		lead:  elem,
		trail: elem,
		write: func(w *writer, i int) { a.values[i].writeTo(w) },
	}.writeTo(w)
	if a.TrailingComma() {
		w.WriteByte(',')
	}
	w.WriteString(a.closing)
	w.WriteByte(']')
}
