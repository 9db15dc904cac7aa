/*
Package tomldoc parses TOML into an editable document that keeps every
byte of its source: comments, blank lines, spacing, quoting style and
number spelling. Writing an unmodified document reproduces the input
exactly, which makes the package suited for configuration editors,
linters and tools that rewrite files owned by people.

A Document is an ordered sequence of entries. Top-level key/value pairs
(*DirectChild) come first, followed by table headers (*Container) with
the pairs below them. Containers are flat: [server.tls] is a sibling of
[server], and ContainersWithPrefix groups them when needed.

Whitespace, line breaks and comments are stored as trivia on the node
they precede or follow. Inserted nodes receive trivia derived from their
position so that the output stays valid TOML:

	doc, err := tomldoc.Parse([]byte("# settings\nname = \"demo\" # shown in the UI\n"))
	if err != nil {
		// handle error
	}

	if _, err := doc.InsertInteger(1, "port", 8080); err != nil {
		// handle error
	}
	fmt.Print(doc)
	// # settings
	// name = "demo" # shown in the UI
	// port = 8080

Removing an entry with RemovePreserveTrivia keeps the comments around it
by handing them to the entry that follows.

For reading values without caring about layout, Document.Map returns the
document as nested maps, and Document.Decode or Unmarshal store it in Go
structs tagged with `toml:"name"`.
*/
package tomldoc
