package citations

import "github.com/citelens/citations-bot/internal/models"

// PatternFamily groups the pattern templates for one mention type.
// Templates are fmt verbs: %s is replaced with the regex-quoted alias.
// Families are evaluated in slice order so extraction stays deterministic.
type PatternFamily struct {
	Type      models.MentionType
	Templates []string
}

// ProminenceWeights are the additive adjustments applied to the 0.5 base
// prominence score before clamping to [0,1].
type ProminenceWeights struct {
	FirstSentence float64
	EarlySentence float64 // within the first three sentences
	LastSentence  float64
	ListItem      float64
	Emphasis      float64
	Quoted        float64
	Parenthetical float64
}

// Lexicon holds the static data tables the engine scores against:
// sentiment keyword lists, mention-type pattern templates, prominence
// adjustments, per-type reliability weights and business-context terms.
// It is pure data so alternative lexicons can be swapped in without
// touching the algorithms.
type Lexicon struct {
	Positive []string
	Negative []string
	Neutral  []string

	Patterns []PatternFamily

	Prominence ProminenceWeights

	// TypeWeights scale confidence by how trustworthy each rhetorical
	// pattern is as a signal.
	TypeWeights map[models.MentionType]float64

	// BusinessTerms raise confidence when present in the context window.
	BusinessTerms []string
}

// DefaultLexicon returns the built-in English lexicon.
func DefaultLexicon() *Lexicon {
	return &Lexicon{
		Positive: []string{
			"excellent", "outstanding", "great", "good", "amazing", "fantastic",
			"wonderful", "impressive", "reliable", "efficient", "helpful",
			"easy", "simple", "intuitive", "powerful", "robust", "solid",
			"recommend", "love", "like", "prefer", "best", "top", "leading",
			"superior", "advanced", "innovative", "seamless", "smooth",
		},
		Negative: []string{
			"terrible", "awful", "bad", "poor", "horrible", "disappointing",
			"frustrating", "difficult", "hard", "complex", "confusing",
			"slow", "unreliable", "buggy", "broken", "expensive", "costly",
			"hate", "dislike", "avoid", "worst", "lacking", "limited",
			"problematic", "issues", "problems", "complaints", "concerns",
		},
		Neutral: []string{
			"okay", "fine", "decent", "average", "standard", "normal",
			"typical", "basic", "plain", "adequate", "sufficient",
			"acceptable", "reasonable", "moderate", "fair", "balanced",
		},
		Patterns: []PatternFamily{
			{
				Type: models.MentionDirect,
				Templates: []string{
					`\b%s(?:'s|\s+is|\s+are|\s+has|\s+does)`,
					`(?:using|with|via|through)\s+%s\b`,
				},
			},
			{
				Type: models.MentionComparison,
				Templates: []string{
					`%s\s+(?:vs\.?|versus|compared to|against)`,
					`(?:vs\.?|versus|compared to|against)\s+%s`,
					`%s\s+(?:or|and)\s+\w+`,
					`(?:between|among)\s+[^.!?]*%s`,
				},
			},
			{
				Type: models.MentionRecommendation,
				Templates: []string{
					`(?:recommend|suggest|advise|consider)\s+[^.!?]*%s`,
					`%s\s+(?:is recommended|is suggested)`,
					`(?:try|use|check out|go with)\s+%s`,
					`%s\s+(?:would be|might be|could be)\s+(?:good|great|excellent)`,
				},
			},
			{
				Type: models.MentionAlternative,
				Templates: []string{
					`(?:alternative|option|choice|substitute)\s+[^.!?]*%s`,
					`%s\s+(?:as an alternative|as another option)`,
					`(?:instead of|rather than)\s+[^.!?]*%s`,
					`%s\s+(?:alternatively|otherwise)`,
				},
			},
			{
				Type: models.MentionFeature,
				Templates: []string{
					`%s(?:'s)?\s+(?:feature|capability|function|tool)`,
					`(?:feature|capability|function|tool)s?\s+(?:of|in)\s+%s`,
					`%s\s+(?:offers|provides|includes|supports)`,
					`(?:with|using)\s+%s(?:'s)\s+\w+`,
				},
			},
			{
				Type: models.MentionReview,
				Templates: []string{
					`%s\s+(?:is|are)\s+(?:good|great|excellent|bad|poor|terrible)`,
					`(?:love|like|hate|dislike)\s+%s`,
					`%s\s+(?:works|performs|functions)`,
					`(?:experience with|opinion on|thoughts about)\s+%s`,
				},
			},
			{
				Type: models.MentionQuestion,
				Templates: []string{
					`(?:what|which|how|why|should|can|does)\b[^.!?]*?\b%s\b[^.!?]*\?`,
					`\b%s\s*\?`,
				},
			},
		},
		Prominence: ProminenceWeights{
			FirstSentence: 0.4,
			EarlySentence: 0.2,
			LastSentence:  0.1,
			ListItem:      0.15,
			Emphasis:      0.3,
			Quoted:        0.35,
			Parenthetical: -0.2,
		},
		TypeWeights: map[models.MentionType]float64{
			models.MentionDirect:         0.9,
			models.MentionRecommendation: 0.8,
			models.MentionComparison:     0.8,
			models.MentionReview:         0.7,
			models.MentionFeature:        0.7,
			models.MentionAlternative:    0.6,
			models.MentionQuestion:       0.5,
		},
		BusinessTerms: []string{
			"software", "tool", "platform", "service", "company", "solution", "product",
		},
	}
}
