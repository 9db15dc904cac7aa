package literal

// IsBareKey reports whether name can be written as a bare key.
func IsBareKey(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		if !(('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') || c == '_' || c == '-') {
			return false
		}
	}
	return true
}

// FormatKey returns the spelling of a key segment: bare when possible,
// a basic string otherwise.
func FormatKey(name string) string {
	if IsBareKey(name) {
		return name
	}
	return QuoteBasic(name)
}
