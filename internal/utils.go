package internal

import "unicode/utf8"

// CountChars returns the number of Unicode code points in s.
// This is the quantity the Translation API bills by, and the quantity
// recorded against the monthly quota.
func CountChars(s string) int {
	return utf8.RuneCountInString(s)
}

// Truncate shortens s to at most max runes, appending "..." when cut
func Truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max]) + "..."
}
