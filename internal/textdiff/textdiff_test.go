package textdiff_test

import (
	"testing"

	"github.com/KimNorgaard/go-tomldoc/internal/textdiff"
	"github.com/stretchr/testify/require"
)

func TestLines(t *testing.T) {
	lines := textdiff.Lines("a\nb\nc\n", "a\nx\nc\n")
	require.Equal(t, []textdiff.Line{
		{Op: textdiff.Equal, Text: "a"},
		{Op: textdiff.Delete, Text: "b"},
		{Op: textdiff.Insert, Text: "x"},
		{Op: textdiff.Equal, Text: "c"},
	}, lines)
}

func TestUnified(t *testing.T) {
	tests := []struct {
		name     string
		from     string
		to       string
		context  int
		expected string
	}{
		{"equal", "a\nb\n", "a\nb\n", 1, ""},
		{"change with context", "a\nb\nc\nd\ne\n", "a\nb\nX\nd\ne\n", 1, "...\n b\n-c\n+X\n d\n"},
		{"no context", "a\nb\n", "a\nc\n", 0, "...\n-b\n+c\n"},
		{"missing final newline", "a\n", "a", 0, "-a\n+a\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, textdiff.Unified(tt.from, tt.to, tt.context))
		})
	}
}

func TestFirstDifference(t *testing.T) {
	require.Equal(t, -1, textdiff.FirstDifference("same", "same"))
	require.Equal(t, 2, textdiff.FirstDifference("abc", "abd"))
	require.Equal(t, 3, textdiff.FirstDifference("abc", "abcd"))
	require.Equal(t, 3, textdiff.FirstDifference("é=1", "é=2"))
}
