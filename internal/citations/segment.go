package citations

import (
	"regexp"
	"strings"
)

// SentenceSegmenter splits text into sentences. The punctuation-based
// splitter is the baseline; a linguistic segmenter can be substituted
// without changing any scoring contract.
type SentenceSegmenter interface {
	Name() string
	Segment(text string) []string
}

var sentenceTerminators = regexp.MustCompile(`[.!?]+`)

// punctSegmenter splits on runs of sentence terminators. Abbreviations are
// deliberately not special-cased.
type punctSegmenter struct{}

// NewPunctuationSegmenter returns the baseline sentence splitter.
func NewPunctuationSegmenter() SentenceSegmenter {
	return punctSegmenter{}
}

func (punctSegmenter) Name() string {
	return "punctuation"
}

func (punctSegmenter) Segment(text string) []string {
	var sentences []string
	for _, part := range sentenceTerminators.Split(text, -1) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			sentences = append(sentences, trimmed)
		}
	}
	return sentences
}

// sentencePosition returns the 1-based index of the sentence containing the
// byte offset pos: the number of terminator-delimited segments completed
// before pos, plus one.
func sentencePosition(seg SentenceSegmenter, text string, pos int) int {
	prefix := text[:pos]
	n := len(seg.Segment(prefix))
	if n > 0 && !endsSentence(prefix) {
		// The last segment is the (partial) sentence the match sits in.
		n--
	}
	return n + 1
}

// endsSentence reports whether s ends with a sentence terminator, ignoring
// trailing whitespace and closing quotes/brackets.
func endsSentence(s string) bool {
	s = strings.TrimRight(s, " \t\n\r)\"'”’")
	if s == "" {
		return false
	}
	last := s[len(s)-1]
	return last == '.' || last == '!' || last == '?'
}

// sentenceAt returns the sentence containing the byte offset pos, used for
// sentiment scoring when the caller withholds the context window.
func sentenceAt(text string, pos int) string {
	start := 0
	if loc := lastTerminator(text[:pos]); loc >= 0 {
		start = loc + 1
	}
	end := len(text)
	if loc := sentenceTerminators.FindStringIndex(text[pos:]); loc != nil {
		end = pos + loc[1]
	}
	return strings.TrimSpace(text[start:end])
}

func lastTerminator(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		switch s[i] {
		case '.', '!', '?':
			return i
		}
	}
	return -1
}
