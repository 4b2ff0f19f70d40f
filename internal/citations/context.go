package citations

import "strings"

// extractContext derives the text window around a match. Boundaries start
// at matchStart-window/2 and matchEnd+window/2, clamped to the text, then
// snapped to whitespace so the window never begins or ends mid-word. The
// returned offsets always satisfy
// 0 <= contextStart <= matchStart <= matchEnd <= contextEnd <= len(text).
func extractContext(text string, matchStart, matchEnd, window int) (string, int, int) {
	contextStart := matchStart - window/2
	if contextStart < 0 {
		contextStart = 0
	}
	contextEnd := matchEnd + window/2
	if contextEnd > len(text) {
		contextEnd = len(text)
	}

	if contextStart > 0 {
		// Snap forward to the first space so the window opens on a word
		// boundary; never move past the match itself.
		if idx := strings.Index(text[contextStart:matchStart], " "); idx >= 0 {
			contextStart += idx + 1
		}
	}

	if contextEnd < len(text) {
		if idx := strings.LastIndex(text[matchEnd:contextEnd], " "); idx >= 0 {
			contextEnd = matchEnd + idx
		}
	}

	return strings.TrimSpace(text[contextStart:contextEnd]), contextStart, contextEnd
}
