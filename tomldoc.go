package tomldoc

// Parse parses TOML source into a Document.
func Parse(src []byte, opts ...Option) (*Document, error) {
	return NewParser(src, opts...).Parse()
}

// ParseString parses TOML text into a Document.
func ParseString(s string, opts ...Option) (*Document, error) {
	return Parse([]byte(s), opts...)
}
