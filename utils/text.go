package utils

// TruncateForTitle shortens s to at most max runes, appending "..." when
// anything was cut off.
func TruncateForTitle(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

// CharCount reports the number of characters (runes) in s.
func CharCount(s string) int {
	return len([]rune(s))
}
