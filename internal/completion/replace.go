package completion

import "unicode/utf8"

// Span is the rune range of the input line written by the current session
type Span struct {
	Start  int
	Length int
}

// End returns the offset just past the span, where the cursor sits
func (s Span) End() int {
	return s.Start + s.Length
}

// ApplyReplacement removes oldLen runes before cursor, inserts newText in
// their place and returns the new text with the new cursor offset
// (cursor + len(newText) - oldLen). Offsets outside text are clamped.
func ApplyReplacement(text string, cursor, oldLen int, newText string) (string, int) {
	runes := []rune(text)
	cursor = clamp(cursor, 0, len(runes))
	oldLen = clamp(oldLen, 0, cursor)
	start := cursor - oldLen

	insert := []rune(newText)
	out := make([]rune, 0, len(runes)-oldLen+len(insert))
	out = append(out, runes[:start]...)
	out = append(out, insert...)
	out = append(out, runes[cursor:]...)

	return string(out), start + len(insert)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
