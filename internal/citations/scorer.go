package citations

import (
	"regexp"
	"strings"

	"github.com/citelens/citations-bot/internal/models"
)

// SentimentScorer scores the sentiment of a piece of text. The keyword
// lexicon scorer is the baseline; a statistical model is a drop-in
// replacement behind the same interface.
type SentimentScorer interface {
	Name() string
	Score(text string) (float64, models.SentimentType)
}

// lexiconSentiment is the baseline keyword scorer.
type lexiconSentiment struct {
	lexicon *Lexicon
}

// NewLexiconSentiment returns the baseline keyword sentiment scorer.
func NewLexiconSentiment(lexicon *Lexicon) SentimentScorer {
	return &lexiconSentiment{lexicon: lexicon}
}

func (s *lexiconSentiment) Name() string {
	return "pattern_based"
}

// Score counts lexicon hits and normalizes by word count over ten, which
// keeps long mostly-neutral contexts from drifting positive or negative on
// a single keyword.
func (s *lexiconSentiment) Score(text string) (float64, models.SentimentType) {
	if text == "" {
		return 0, models.SentimentNeutral
	}

	lower := strings.ToLower(text)
	positive := countHits(lower, s.lexicon.Positive)
	negative := countHits(lower, s.lexicon.Negative)

	words := len(strings.Fields(text))
	if words == 0 {
		return 0, models.SentimentNeutral
	}

	norm := float64(words) / 10
	if norm < 1 {
		norm = 1
	}
	score := clamp((float64(positive)-float64(negative))/norm, -1, 1)

	switch {
	case score > 0.1:
		return score, models.SentimentPositive
	case score < -0.1:
		return score, models.SentimentNegative
	case positive > 0 && negative > 0:
		return score, models.SentimentMixed
	default:
		return score, models.SentimentNeutral
	}
}

func countHits(lower string, keywords []string) int {
	total := 0
	for _, word := range keywords {
		total += strings.Count(lower, word)
	}
	return total
}

var (
	bulletPrefix   = regexp.MustCompile(`(?m)^\s*[-*\x{2022}]\s+`)
	numberedPrefix = regexp.MustCompile(`(?m)^\s*\d+\.\s+`)
)

// quoteRunes accepts straight and typographic quotation marks. The text is
// never rewritten, so curly quotes have to be recognized where they stand.
const quoteRunes = "\"“”„"

// prominenceScore rates how visibly a mention is placed: base 0.5 with
// additive adjustments from the lexicon, clamped to [0,1].
func (e *Extractor) prominenceScore(text string, start, end, position, totalSentences int, mentionText string) float64 {
	w := e.lexicon.Prominence
	score := 0.5

	switch {
	case position == 1:
		score += w.FirstSentence
	case position <= 3:
		score += w.EarlySentence
	case position == totalSentences:
		score += w.LastSentence
	}

	beforeStart := start - 50
	if beforeStart < 0 {
		beforeStart = 0
	}
	afterEnd := end + 50
	if afterEnd > len(text) {
		afterEnd = len(text)
	}
	before := text[beforeStart:start]
	after := text[end:afterEnd]

	if bulletPrefix.MatchString(before) || numberedPrefix.MatchString(before) {
		score += w.ListItem
	}

	if strings.ContainsAny(before, quoteRunes) && strings.ContainsAny(after, quoteRunes) {
		score += w.Quoted
	}

	if isEmphasized(mentionText) || strings.Contains(before, "**") || strings.Contains(after, "**") {
		score += w.Emphasis
	}

	if strings.Contains(before, "(") && strings.Contains(after, ")") {
		score += w.Parenthetical
	}

	return clamp(score, 0, 1)
}

// isEmphasized reports fully upper-cased mention text. Matches without any
// letters do not count.
func isEmphasized(mentionText string) bool {
	upper := strings.ToUpper(mentionText)
	return mentionText == upper && upper != strings.ToLower(mentionText)
}

// confidenceScore rates how trustworthy the mention is as a brand signal:
// exact canonical matches beat alias variants, business vocabulary in the
// context adds up to 0.2, and the running total is scaled by the
// per-mention-type reliability weight.
func (e *Extractor) confidenceScore(mentionText, searchTerm, brandName, context string, mentionType models.MentionType) float64 {
	confidence := 0.5

	switch {
	case strings.EqualFold(mentionText, brandName):
		confidence += 0.3
	case strings.EqualFold(mentionText, searchTerm):
		confidence += 0.2
	}

	if context != "" {
		lower := strings.ToLower(context)
		hits := 0
		for _, term := range e.lexicon.BusinessTerms {
			if strings.Contains(lower, term) {
				hits++
			}
		}
		bonus := float64(hits) * 0.05
		if bonus > 0.2 {
			bonus = 0.2
		}
		confidence += bonus
	}

	weight, ok := e.lexicon.TypeWeights[mentionType]
	if !ok {
		weight = 0.6
	}
	confidence *= weight

	return clamp(confidence, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
