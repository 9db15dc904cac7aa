// Package textdiff reports line differences between two texts, such as a
// source file and the text written back from its parsed document.
package textdiff

import (
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Op classifies a diff line.
type Op int

const (
	Equal Op = iota
	Delete
	Insert
)

// Line is one line of a diff, without its line break.
type Line struct {
	Op   Op
	Text string
}

// Lines returns the line diff turning from into to.
func Lines(from, to string) []Line {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out []Line
	for _, d := range diffs {
		op := Equal
		switch d.Type {
		case diffpatch.DiffDelete:
			op = Delete
		case diffpatch.DiffInsert:
			op = Insert
		}
		for _, text := range splitLines(d.Text) {
			out = append(out, Line{Op: op, Text: text})
		}
	}
	return out
}

// Unified renders the changed lines of the diff with up to context
// unchanged lines around each change. It returns "" when the texts are
// equal.
func Unified(from, to string, context int) string {
	lines := Lines(from, to)
	keep := make([]bool, len(lines))
	changed := false
	for i, l := range lines {
		if l.Op == Equal {
			continue
		}
		changed = true
		for j := max(0, i-context); j <= min(len(lines)-1, i+context); j++ {
			keep[j] = true
		}
	}
	if !changed {
		return ""
	}

	var sb strings.Builder
	skipped := false
	for i, l := range lines {
		if !keep[i] {
			skipped = true
			continue
		}
		if skipped {
			sb.WriteString("...\n")
			skipped = false
		}
		switch l.Op {
		case Delete:
			sb.WriteByte('-')
		case Insert:
			sb.WriteByte('+')
		default:
			sb.WriteByte(' ')
		}
		sb.WriteString(l.Text)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FirstDifference returns the byte offset at which the texts start to
// differ, or -1 if they are equal.
func FirstDifference(from, to string) int {
	if from == to {
		return -1
	}
	n := diffpatch.New().DiffCommonPrefix(from, to)
	return len(string([]rune(from)[:n]))
}

// splitLines splits s after each line feed. A final line without a line
// feed is kept.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\n")
	}
	return lines
}
