package domain

// Preview shortens text to at most limit runes, appending "..." when
// something was cut. A non-positive limit returns text unchanged.
func Preview(text string, limit int) string {
	if limit <= 0 {
		return text
	}
	n := 0
	for i := range text {
		if n == limit {
			return text[:i] + "..."
		}
		n++
	}
	return text
}
