package citations

import (
	"strings"

	"github.com/citelens/citations-bot/internal/models"
)

// analyzeResponse computes response-wide structural statistics over the
// final mention list and the raw text. The numbers are descriptive only;
// nothing in the engine branches on them.
func analyzeResponse(text string, mentions []models.BrandMention, seg SentenceSegmenter) map[string]interface{} {
	sentences := seg.Segment(text)
	sentenceCount := len(sentences)
	words := len(strings.Fields(text))

	sentenceWords := 0
	for _, s := range sentences {
		sentenceWords += len(strings.Fields(s))
	}

	positions := make([]int, 0, len(mentions))
	sentimentDist := make(map[string]int, len(models.AllSentimentTypes))
	for _, st := range models.AllSentimentTypes {
		sentimentDist[string(st)] = 0
	}
	for _, m := range mentions {
		positions = append(positions, m.Position)
		sentimentDist[string(m.SentimentType)]++
	}

	return map[string]interface{}{
		"total_sentences":        sentenceCount,
		"total_words":            words,
		"total_characters":       len(text),
		"mentions_per_sentence":  float64(len(mentions)) / float64(maxInt(sentenceCount, 1)),
		"avg_sentence_length":    float64(sentenceWords) / float64(maxInt(sentenceCount, 1)),
		"has_lists":              bulletPrefix.MatchString(text),
		"has_numbered_lists":     numberedPrefix.MatchString(text),
		"has_quotes":             strings.ContainsAny(text, quoteRunes),
		"mention_positions":      positions,
		"mention_density":        float64(len(mentions)) / float64(maxInt(words, 1)),
		"sentiment_distribution": sentimentDist,
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
