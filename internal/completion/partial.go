package completion

// ExtractPartial returns the partial word that ends exactly at cursor (a rune
// offset into text). ok is false when nothing matches, for example when the
// cursor follows whitespace; callers treat that as a fallback, not an error.
func ExtractPartial(text string, cursor int, wordStart *Pattern) (partial string, ok bool) {
	runes := []rune(text)
	if cursor < 0 || cursor > len(runes) {
		return "", false
	}

	partial, ok, err := wordStart.suffix(string(runes[:cursor]))
	if err != nil || !ok || partial == "" {
		return "", false
	}
	return partial, true
}
