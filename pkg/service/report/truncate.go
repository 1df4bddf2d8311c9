package report

// DefaultMaxSummaryChars limits category summaries to roughly 3-4 lines.
const DefaultMaxSummaryChars = 350

// Truncate cuts text to at most maxChars characters, preferring the last
// sentence boundary (a literal '.') within the limit. If the prefix holds
// no period, the raw prefix is returned without added punctuation.
func Truncate(text string, maxChars int) string {
	runes := []rune(text)
	if len(runes) <= maxChars {
		return text
	}

	prefix := runes[:maxChars]
	for i := maxChars - 1; i >= 0; i-- {
		if prefix[i] == '.' {
			return string(prefix[:i+1])
		}
	}
	return string(prefix)
}
