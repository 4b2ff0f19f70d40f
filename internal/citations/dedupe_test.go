package citations

import (
	"testing"

	"github.com/citelens/citations-bot/internal/models"
	"github.com/stretchr/testify/assert"
)

func mention(brand string, position, cs, ce int, mt models.MentionType, confidence float64) models.BrandMention {
	return models.BrandMention{
		BrandName:       brand,
		Mentioned:       true,
		Position:        position,
		ContextStart:    cs,
		ContextEnd:      ce,
		MentionType:     mt,
		ConfidenceScore: confidence,
	}
}

func TestDedupeMentions_HigherConfidenceWins(t *testing.T) {
	in := []models.BrandMention{
		mention("Slack", 1, 0, 40, models.MentionReview, 0.35),
		mention("Slack", 1, 0, 40, models.MentionDirect, 0.72),
	}

	out := dedupeMentions(in)

	assert.Len(t, out, 1)
	assert.Equal(t, models.MentionDirect, out[0].MentionType)
	assert.Equal(t, 0.72, out[0].ConfidenceScore)
}

func TestDedupeMentions_TiesKeepFirstSeen(t *testing.T) {
	in := []models.BrandMention{
		mention("Slack", 1, 0, 40, models.MentionRecommendation, 0.4),
		mention("Slack", 1, 0, 40, models.MentionComparison, 0.4),
	}

	out := dedupeMentions(in)

	assert.Len(t, out, 1)
	assert.Equal(t, models.MentionRecommendation, out[0].MentionType)
}

func TestDedupeMentions_DistinctSpansSurvive(t *testing.T) {
	in := []models.BrandMention{
		mention("Slack", 1, 0, 40, models.MentionDirect, 0.72),
		mention("Slack", 2, 45, 90, models.MentionReview, 0.35),
		mention("Slack", 1, 0, 38, models.MentionDirect, 0.5),
	}

	out := dedupeMentions(in)
	assert.Len(t, out, 3)
}

func TestDedupeMentions_Idempotent(t *testing.T) {
	in := []models.BrandMention{
		mention("Slack", 1, 0, 40, models.MentionDirect, 0.72),
		mention("Slack", 1, 0, 40, models.MentionReview, 0.35),
		mention("Asana", 2, 45, 90, models.MentionComparison, 0.4),
	}

	once := dedupeMentions(in)
	twice := dedupeMentions(once)

	assert.Equal(t, once, twice)
}

func TestSortByPosition_StableForEqualPositions(t *testing.T) {
	mentions := []models.BrandMention{
		mention("B", 3, 0, 10, models.MentionDirect, 0.5),
		mention("A", 1, 0, 10, models.MentionDirect, 0.5),
		mention("C", 1, 20, 30, models.MentionDirect, 0.5),
	}

	sortByPosition(mentions)

	assert.Equal(t, "A", mentions[0].BrandName)
	assert.Equal(t, "C", mentions[1].BrandName)
	assert.Equal(t, "B", mentions[2].BrandName)
}
