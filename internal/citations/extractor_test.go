package citations

import (
	"errors"
	"testing"
	"time"

	"github.com/citelens/citations-bot/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestExtract_InvalidInput(t *testing.T) {
	e := newTestExtractor()

	tooMany := make([]string, MaxBrands+1)
	for i := range tooMany {
		tooMany[i] = "Brand"
	}

	tests := []struct {
		name string
		req  Request
	}{
		{
			name: "Empty brand list",
			req:  NewRequest("some text", "query", nil),
		},
		{
			name: "Too many brands",
			req:  NewRequest("some text", "query", tooMany),
		},
		{
			name: "Non-positive context window",
			req: Request{
				ResponseText:  "some text",
				BrandNames:    []string{"Slack"},
				ContextWindow: 0,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := e.Extract(tt.req)
			assert.Nil(t, result)

			var invalid *InvalidInputError
			assert.True(t, errors.As(err, &invalid))
		})
	}
}

func TestExtract_NoMentions(t *testing.T) {
	e := newTestExtractor()

	result, err := e.Extract(NewRequest(
		"This text talks about nothing in particular.",
		"any tools?",
		[]string{"Acme"},
	))

	assert.NoError(t, err)
	assert.Equal(t, 1, result.TotalBrandsChecked)
	assert.Equal(t, 0, result.BrandsMentioned)
	assert.NotNil(t, result.BrandMentions)
	assert.Empty(t, result.BrandMentions)
	assert.Equal(t, "unknown", result.Platform)
}

func TestExtract_Completeness(t *testing.T) {
	e := newTestExtractor()

	// Nothing rhetorical about these occurrences; the fallback must still
	// surface every brand present verbatim as a full word.
	result, err := e.Extract(NewRequest(
		"Acme shipped. Meanwhile Acme again, somewhere.",
		"",
		[]string{"Acme"},
	))

	assert.NoError(t, err)
	assert.Equal(t, 1, result.BrandsMentioned)
	assert.NotEmpty(t, result.BrandMentions)
	for _, m := range result.BrandMentions {
		assert.Equal(t, "Acme", m.MentionText)
		assert.Equal(t, models.MentionDirect, m.MentionType)
		assert.True(t, m.Mentioned)
	}
}

func TestExtract_ExactMentionScenario(t *testing.T) {
	e := newTestExtractor()

	result, err := e.Extract(NewRequest(
		"Slack is great for team chat.",
		"best chat tool?",
		[]string{"Slack"},
	))

	assert.NoError(t, err)
	assert.Equal(t, 1, result.BrandsMentioned)
	assert.Len(t, result.BrandMentions, 1)

	m := result.BrandMentions[0]
	assert.Equal(t, "Slack", m.BrandName)
	assert.Equal(t, 1, m.Position)
	assert.Contains(t, []models.MentionType{models.MentionDirect, models.MentionReview}, m.MentionType)
	assert.Equal(t, models.SentimentPositive, m.SentimentType)
}

func TestExtract_ComparisonScenario(t *testing.T) {
	e := newTestExtractor()

	result, err := e.Extract(NewRequest(
		"Asana vs Trello for task tracking",
		"asana or trello?",
		[]string{"Asana", "Trello"},
	))

	assert.NoError(t, err)
	assert.Equal(t, 2, result.BrandsMentioned)
	assert.Len(t, result.BrandMentions, 2)
	for _, m := range result.BrandMentions {
		assert.Equal(t, models.MentionComparison, m.MentionType)
	}
}

func TestExtract_CaseAndAliasInsensitivity(t *testing.T) {
	e := newTestExtractor()

	result, err := e.Extract(NewRequest(
		"i use microsoft teams daily",
		"",
		[]string{"Microsoft Teams"},
	))

	assert.NoError(t, err)
	assert.Equal(t, 1, result.BrandsMentioned)
	assert.Len(t, result.BrandMentions, 1)
	assert.Equal(t, "Microsoft Teams", result.BrandMentions[0].BrandName)
}

func TestExtract_OverlappingPatternsDeduplicate(t *testing.T) {
	e := newTestExtractor()

	result, err := e.Extract(NewRequest(
		"I recommend Slack, it's excellent.",
		"",
		[]string{"Slack"},
	))

	assert.NoError(t, err)
	assert.Len(t, result.BrandMentions, 1)

	m := result.BrandMentions[0]
	assert.Equal(t, models.SentimentPositive, m.SentimentType)
	assert.Greater(t, m.ConfidenceScore, 0.0)
}

func TestExtract_ScoreRangesAndContextBounds(t *testing.T) {
	e := newTestExtractor()

	text := "Many teams compare Slack vs Microsoft Teams. Some love Slack deeply. " +
		"Others say Microsoft Teams is great because it ships with Office. " +
		"Try Notion instead of using either, or consider Asana as an alternative."

	result, err := e.Extract(NewRequest(
		text, "what should we use?",
		[]string{"Slack", "Microsoft Teams", "Notion", "Asana"},
	))

	assert.NoError(t, err)
	assert.NotEmpty(t, result.BrandMentions)

	for _, m := range result.BrandMentions {
		assert.GreaterOrEqual(t, m.SentimentScore, -1.0)
		assert.LessOrEqual(t, m.SentimentScore, 1.0)
		assert.GreaterOrEqual(t, m.ProminenceScore, 0.0)
		assert.LessOrEqual(t, m.ProminenceScore, 1.0)
		assert.GreaterOrEqual(t, m.ConfidenceScore, 0.0)
		assert.LessOrEqual(t, m.ConfidenceScore, 1.0)

		matchStart := m.Metadata["match_start"].(int)
		matchEnd := m.Metadata["match_end"].(int)
		assert.GreaterOrEqual(t, m.ContextStart, 0)
		assert.LessOrEqual(t, m.ContextStart, matchStart)
		assert.LessOrEqual(t, matchStart, matchEnd)
		assert.LessOrEqual(t, matchEnd, m.ContextEnd)
		assert.LessOrEqual(t, m.ContextEnd, len(text))
	}
}

func TestExtract_MentionsSortedByPosition(t *testing.T) {
	e := newTestExtractor()

	result, err := e.Extract(NewRequest(
		"Intro sentence first. Later we love Slack a lot. Even later, Asana works.",
		"",
		[]string{"Asana", "Slack"},
	))

	assert.NoError(t, err)
	last := 0
	for _, m := range result.BrandMentions {
		assert.GreaterOrEqual(t, m.Position, last)
		last = m.Position
	}
}

func TestExtract_Deterministic(t *testing.T) {
	e := newTestExtractor()

	req := NewRequest(
		"Slack is great. Asana vs Trello next. Try Notion instead of using Jira.",
		"tools?",
		[]string{"Slack", "Asana", "Trello", "Notion", "Jira"},
	)

	first, err := e.Extract(req)
	assert.NoError(t, err)
	second, err := e.Extract(req)
	assert.NoError(t, err)

	// Only the processing timestamps may differ between runs.
	stripTimes(first)
	stripTimes(second)
	assert.Equal(t, first, second)
}

func stripTimes(result *models.CitationExtractionResult) {
	result.ProcessedAt = time.Time{}
	for i := range result.BrandMentions {
		result.BrandMentions[i].ExtractedAt = time.Time{}
	}
}

func TestExtract_SkipsUnexpandableBrands(t *testing.T) {
	e := newTestExtractor()

	result, err := e.Extract(NewRequest(
		"Slack is great for team chat.",
		"",
		[]string{"***", "Slack"},
	))

	assert.NoError(t, err)
	assert.Equal(t, 2, result.TotalBrandsChecked)
	assert.Equal(t, 1, result.BrandsMentioned)

	skipped, ok := result.ExtractionMetadata["skipped_brands"].([]string)
	assert.True(t, ok)
	assert.Equal(t, []string{"***"}, skipped)
}

func TestExtract_ContextWithheld(t *testing.T) {
	e := newTestExtractor()

	req := NewRequest("Boring opener. Everyone should try Slack, it works great.", "", []string{"Slack"})
	req.IncludeContext = false

	result, err := e.Extract(req)
	assert.NoError(t, err)
	assert.Len(t, result.BrandMentions, 1)

	m := result.BrandMentions[0]
	assert.Empty(t, m.Context)
	// Without a window the offsets collapse to the match span, and the
	// mention sentence still drives sentiment.
	assert.Equal(t, m.Metadata["match_start"].(int), m.ContextStart)
	assert.Equal(t, m.Metadata["match_end"].(int), m.ContextEnd)
	assert.Equal(t, models.SentimentPositive, m.SentimentType)
}

func TestExtract_ResponseAnalysis(t *testing.T) {
	e := newTestExtractor()

	text := "Top picks:\n- Slack for chat\n- Asana for tasks\nThey said \"Slack wins\" overall."
	result, err := e.Extract(NewRequest(text, "", []string{"Slack", "Asana"}))

	assert.NoError(t, err)

	analysis := result.ResponseAnalysis
	assert.True(t, analysis["has_lists"].(bool))
	assert.True(t, analysis["has_quotes"].(bool))
	assert.False(t, analysis["has_numbered_lists"].(bool))
	assert.Greater(t, analysis["total_sentences"].(int), 0)
	assert.Greater(t, analysis["total_words"].(int), 0)

	dist := analysis["sentiment_distribution"].(map[string]int)
	for _, st := range models.AllSentimentTypes {
		_, present := dist[string(st)]
		assert.True(t, present)
	}

	positions := analysis["mention_positions"].([]int)
	assert.Len(t, positions, len(result.BrandMentions))
}

func TestExtract_ExtractionMetadata(t *testing.T) {
	e := newTestExtractor()

	result, err := e.Extract(NewRequest("Slack is great.", "", []string{"Slack"}))
	assert.NoError(t, err)

	meta := result.ExtractionMetadata
	assert.Equal(t, "pattern_based", meta["extraction_method"])
	assert.Equal(t, "punctuation", meta["segmenter"])
	assert.Equal(t, DefaultContextWindow, meta["context_window"])
	assert.Equal(t, len("Slack is great."), meta["response_length"])
}

type fixedSentiment struct{}

func (fixedSentiment) Name() string { return "external_model" }

func (fixedSentiment) Score(string) (float64, models.SentimentType) {
	return 0.42, models.SentimentPositive
}

func TestExtract_PluggableSentimentRecordedInMetadata(t *testing.T) {
	e := NewExtractor(Config{Sentiment: fixedSentiment{}})

	result, err := e.Extract(NewRequest("Slack is around.", "", []string{"Slack"}))
	assert.NoError(t, err)

	assert.Equal(t, "external_model", result.ExtractionMetadata["extraction_method"])
	for _, m := range result.BrandMentions {
		assert.Equal(t, 0.42, m.SentimentScore)
	}
}
