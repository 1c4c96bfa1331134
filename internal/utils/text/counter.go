// Package text holds rune-aware string helpers.
package text

// CountRunes counts the number of Unicode characters (runes) in the given text.
// Length limits on user input are expressed in characters, not bytes.
//
// Examples:
//
//	CountRunes("hello")   // returns 5
//	CountRunes("привет")  // returns 6
//	CountRunes("")        // returns 0
func CountRunes(text string) int {
	n := 0
	for range text {
		n++
	}
	return n
}

// Truncate returns the first n characters of text, or text itself if it is
// shorter. Multi-byte characters are never split.
func Truncate(text string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range text {
		if i == n {
			return text[:pos]
		}
		i++
	}
	return text
}
