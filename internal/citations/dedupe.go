package citations

import (
	"sort"

	"github.com/citelens/citations-bot/internal/models"
)

type spanKey struct {
	position     int
	contextStart int
	contextEnd   int
}

// dedupeMentions collapses candidates that share a (position, context span)
// key, keeping the highest-confidence candidate; ties keep the first seen.
// Running it on already-deduplicated input is a no-op.
func dedupeMentions(mentions []models.BrandMention) []models.BrandMention {
	unique := make([]models.BrandMention, 0, len(mentions))
	index := make(map[spanKey]int, len(mentions))

	for _, mention := range mentions {
		key := spanKey{mention.Position, mention.ContextStart, mention.ContextEnd}
		if at, seen := index[key]; seen {
			if mention.ConfidenceScore > unique[at].ConfidenceScore {
				unique[at] = mention
			}
			continue
		}
		index[key] = len(unique)
		unique = append(unique, mention)
	}

	return unique
}

// sortByPosition orders mentions by sentence position, preserving matcher
// emission order for equal positions.
func sortByPosition(mentions []models.BrandMention) {
	sort.SliceStable(mentions, func(i, j int) bool {
		return mentions[i].Position < mentions[j].Position
	})
}
