package internal

// TruncateRight keeps the first n runes of text.
func TruncateRight(text string, n int) string {
	return TruncateRightWithSuffix(text, n, "")
}

// TruncateRightWithSuffix keeps the first n runes of text and appends the
// suffix only if truncation happens.
func TruncateRightWithSuffix(text string, n int, suffix string) string {
	if n <= 0 {
		return suffix
	}

	rs := []rune(text)
	if len(rs) <= n {
		return text
	}

	return string(rs[:n]) + suffix
}
