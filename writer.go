package tomldoc

import "strings"

// writer accumulates document text. Every node writes its trivia and raw
// text in source order; nothing is re-encoded.
type writer struct {
	strings.Builder
}
