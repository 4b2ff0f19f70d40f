package citations

import (
	"testing"

	"github.com/citelens/citations-bot/internal/models"
	"github.com/stretchr/testify/assert"
)

func newTestExtractor() *Extractor {
	return NewExtractor(Config{})
}

func TestFindMentions_TypedPatterns(t *testing.T) {
	e := newTestExtractor()

	tests := []struct {
		name         string
		text         string
		alias        string
		expectedType models.MentionType
		expectedText string
	}{
		{
			name:         "Direct verb pattern",
			text:         "Slack is a chat platform.",
			alias:        "Slack",
			expectedType: models.MentionDirect,
			expectedText: "Slack is",
		},
		{
			name:         "Comparison left of connective",
			text:         "Asana vs Trello for task tracking",
			alias:        "Asana",
			expectedType: models.MentionComparison,
			expectedText: "Asana vs",
		},
		{
			name:         "Comparison right of connective",
			text:         "Asana vs Trello for task tracking",
			alias:        "Trello",
			expectedType: models.MentionComparison,
			expectedText: "vs Trello",
		},
		{
			name:         "Recommendation verb",
			text:         "You should try Notion for notes.",
			alias:        "Notion",
			expectedType: models.MentionRecommendation,
			expectedText: "try Notion",
		},
		{
			name:         "Alternative phrasing",
			text:         "Use Linear instead of using Jira today.",
			alias:        "Jira",
			expectedType: models.MentionAlternative,
			expectedText: "instead of using Jira",
		},
		{
			name:         "Feature possessive",
			text:         "Notion's capability to link pages is handy.",
			alias:        "Notion",
			expectedType: models.MentionFeature,
			expectedText: "Notion's capability",
		},
		{
			name:         "Review opinion verb",
			text:         "Our team really does love Slack",
			alias:        "Slack",
			expectedType: models.MentionReview,
			expectedText: "love Slack",
		},
		{
			name:         "Question context",
			text:         "Which plan does Notion offer for teams?",
			alias:        "Notion",
			expectedType: models.MentionQuestion,
			expectedText: "Which plan does Notion offer for teams?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches := e.findMentions(tt.text, tt.alias)
			assert.NotEmpty(t, matches)

			found := false
			for _, m := range matches {
				if m.mentionType == tt.expectedType && m.text == tt.expectedText {
					found = true
					assert.Equal(t, tt.expectedText, tt.text[m.start:m.end])
				}
			}
			assert.True(t, found, "expected %s match %q in %v", tt.expectedType, tt.expectedText, matches)
		})
	}
}

func TestFindMentions_FallbackCapturesLiteralOccurrences(t *testing.T) {
	e := newTestExtractor()

	// No rhetorical template fits, so the bare search must still find both
	// occurrences as direct mentions.
	text := "Acme everywhere: Acme."
	matches := e.findMentions(text, "Acme")

	assert.Len(t, matches, 2)
	for _, m := range matches {
		assert.Equal(t, models.MentionDirect, m.mentionType)
		assert.Equal(t, "Acme", m.text)
	}
}

func TestFindMentions_CaseInsensitive(t *testing.T) {
	e := newTestExtractor()

	matches := e.findMentions("i use microsoft teams daily", "Microsoft Teams")
	assert.NotEmpty(t, matches)
	assert.Equal(t, models.MentionRecommendation, matches[0].mentionType)
	assert.Equal(t, "use microsoft teams", matches[0].text)
}

func TestFindMentions_NoOccurrences(t *testing.T) {
	e := newTestExtractor()
	assert.Empty(t, e.findMentions("nothing to see here", "Acme"))
}

func TestIsFullWordMatch(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		start    int
		end      int
		expected bool
	}{
		{name: "Standalone word", text: "use Slack now", start: 4, end: 9, expected: true},
		{name: "Embedded prefix", text: "Slackers unite", start: 0, end: 5, expected: false},
		{name: "Embedded suffix", text: "unSlack this", start: 2, end: 7, expected: false},
		{name: "At text end", text: "we chose Slack", start: 9, end: 14, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isFullWordMatch(tt.text, tt.start, tt.end))
		})
	}
}
