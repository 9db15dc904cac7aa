package tomldoc_test

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KimNorgaard/go-tomldoc"
	"github.com/KimNorgaard/go-tomldoc/internal/textdiff"
	"github.com/stretchr/testify/require"
)

var update = flag.Bool("update", false, "update golden files")

// outline lists every entry of a document with the trivia around it.
func outline(d *tomldoc.Document) string {
	var sb strings.Builder
	child := func(indent string, c *tomldoc.DirectChild) {
		fmt.Fprintf(&sb, "%schild %s = %s lead=%q trail=%q\n", indent, c.Name(), c.Value().Raw(), c.LeadingTrivia(), c.TrailingTrivia())
	}
	for _, e := range d.Entries() {
		switch e := e.(type) {
		case *tomldoc.DirectChild:
			child("", e)
		case *tomldoc.Container:
			kind := "table"
			if e.Kind() == tomldoc.ArrayOfTables {
				kind = "array-table"
			}
			fmt.Fprintf(&sb, "%s %s lead=%q trail=%q\n", kind, e.Name(), e.LeadingTrivia(), e.HeaderTrailingTrivia())
			for _, c := range e.Children() {
				child("  ", c)
			}
		}
	}
	fmt.Fprintf(&sb, "trailing %q\n", d.TrailingTrivia())
	return sb.String()
}

func TestGolden(t *testing.T) {
	files, err := filepath.Glob("testdata/*.toml")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		t.Run(file, func(t *testing.T) {
			src, err := os.ReadFile(file)
			require.NoError(t, err)

			var actual string
			doc, err := tomldoc.Parse(src)
			if err != nil {
				// Invalid documents record the error in the golden file.
				actual = err.Error() + "\n"
			} else {
				out := doc.String()
				require.True(t, out == string(src), "round trip changed the document:\n%s", textdiff.Unified(string(src), out, 2))
				actual = outline(doc)
			}

			goldenFile := strings.TrimSuffix(file, ".toml") + ".golden"
			if *update {
				err := os.WriteFile(goldenFile, []byte(actual), 0o644)
				require.NoError(t, err)
			}

			expected, err := os.ReadFile(goldenFile)
			require.NoError(t, err, "Golden file not found. Run with -update to create it.")

			require.Equal(t, string(expected), actual, "Outline does not match golden file.")
		})
	}
}
