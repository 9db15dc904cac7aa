package tomldoc

// Markup is the textual form of a key or value: its raw literal and the
// trivia around it. The writer emits Markup verbatim, so an untouched
// node always reproduces its source text.
type Markup struct {
	raw      string
	leading  string
	trailing string

	// auto marks trivia that follows the node's position; the parent
	// recomputes it after each structural change.
	auto bool
	// owned is set while the node belongs to a parent.
	owned bool

	leadRule  triviaRule
	trailRule triviaRule
}

func newMarkup(raw string) Markup {
	return Markup{raw: raw, auto: true}
}

// Raw returns the literal exactly as written in the source.
func (m *Markup) Raw() string { return m.raw }

// LeadingTrivia returns the trivia written before the node.
func (m *Markup) LeadingTrivia() string { return m.leading }

// TrailingTrivia returns the trivia written after the node.
func (m *Markup) TrailingTrivia() string { return m.trailing }

// SetLeadingTrivia replaces the leading trivia. The text must consist of
// trivia allowed at the node's position. Once set, the trivia no longer
// follows the node's position.
func (m *Markup) SetLeadingTrivia(s string) error {
	if err := checkTrivia(s, m.leadRule); err != nil {
		return err
	}
	m.leading = s
	m.auto = false
	return nil
}

// SetTrailingTrivia replaces the trailing trivia.
func (m *Markup) SetTrailingTrivia(s string) error {
	if err := checkTrivia(s, m.trailRule); err != nil {
		return err
	}
	m.trailing = s
	return nil
}

func (m *Markup) markup() *Markup { return m }

// canBind reports whether the current trivia fits the given rules.
func (m *Markup) canBind(lead, trail triviaRule) error {
	if err := checkTrivia(m.leading, lead); err != nil {
		return err
	}
	return checkTrivia(m.trailing, trail)
}

func (m *Markup) bind(lead, trail triviaRule) {
	m.leadRule, m.trailRule = lead, trail
	m.owned = true
}

// place sets positional trivia on auto nodes.
func (m *Markup) place(s string) {
	if m.auto {
		m.leading = s
	}
}

// prepend adds s in front of the leading trivia and fixes it.
func (m *Markup) prepend(s string) {
	m.leading = joinTrivia(s, m.leading, m.leadRule)
	m.auto = false
}

// detach resets the trivia of a node removed from its parent.
func (m *Markup) detach() {
	m.leading, m.trailing = "", ""
	m.auto = true
	m.owned = false
	m.leadRule, m.trailRule = ruleInline, ruleInline
}

func (m *Markup) writeTo(w *writer) {
	w.WriteString(m.leading)
	w.WriteString(m.raw)
	w.WriteString(m.trailing)
}
