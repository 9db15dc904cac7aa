package tomldoc

import (
	"strings"

	"github.com/KimNorgaard/go-tomldoc/internal/literal"
)

// Key is one segment of a key or table header. Name is the decoded
// segment; Raw is its spelling, which may be bare or quoted.
type Key struct {
	Markup
	name string
}

// NewKey returns a key segment spelled bare when possible and as a basic
// string otherwise.
func NewKey(name string) *Key {
	return &Key{Markup: newMarkup(literal.FormatKey(name)), name: name}
}

// Name returns the decoded key segment.
func (k *Key) Name() string { return k.name }

// newPathKeys builds fresh segments for path. The last segment carries
// the trailing trivia given.
func newPathKeys(path []string, trailing string) []*Key {
	keys := make([]*Key, len(path))
	for i, name := range path {
		k := NewKey(name)
		k.auto = i == 0
		k.leadRule, k.trailRule = ruleInline, ruleInline
		keys[i] = k
	}
	keys[len(keys)-1].trailing = trailing
	return keys
}

func keyNames(keys []*Key) []string {
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.name
	}
	return names
}

// displayPath spells a path the way it would appear in a document.
func displayPath(path []string) string {
	parts := make([]string, len(path))
	for i, name := range path {
		parts[i] = literal.FormatKey(name)
	}
	return strings.Join(parts, ".")
}

func writeKeys(w *writer, keys []*Key) {
	for i, k := range keys {
		if i > 0 {
			w.WriteByte('.')
		}
		k.writeTo(w)
	}
}

// pathsOverlap reports whether two dotted paths define the same key or
// one of them extends the other.
func pathsOverlap(a, b []string) bool {
	n := min(len(a), len(b))
	for i := range n {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func hasPrefix(path, prefix []string) bool {
	if len(prefix) > len(path) {
		return false
	}
	for i, name := range prefix {
		if path[i] != name {
			return false
		}
	}
	return true
}
