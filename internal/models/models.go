package models

import "time"

// MentionType classifies the rhetorical framing of a brand mention
type MentionType string

const (
	MentionDirect         MentionType = "direct"         // brand named outright
	MentionComparison     MentionType = "comparison"     // brand in comparison context
	MentionRecommendation MentionType = "recommendation" // brand recommended
	MentionAlternative    MentionType = "alternative"    // brand as alternative/substitute
	MentionFeature        MentionType = "feature"        // brand capabilities discussed
	MentionReview         MentionType = "review"         // brand review/opinion
	MentionQuestion       MentionType = "question"       // brand inside a question
)

// SentimentType labels the sentiment of the context around a mention
type SentimentType string

const (
	SentimentPositive SentimentType = "positive"
	SentimentNegative SentimentType = "negative"
	SentimentNeutral  SentimentType = "neutral"
	SentimentMixed    SentimentType = "mixed"
)

// AllSentimentTypes lists every sentiment label; used as histogram keys
var AllSentimentTypes = []SentimentType{
	SentimentPositive, SentimentNegative, SentimentNeutral, SentimentMixed,
}

// BrandMention is a single brand mention extracted from an AI response.
// Values are never mutated after construction.
type BrandMention struct {
	BrandName       string                 `json:"brand_name"`
	Mentioned       bool                   `json:"mentioned"`
	Position        int                    `json:"position"` // 1-based sentence index
	MentionText     string                 `json:"mention_text"`
	Context         string                 `json:"context"`
	ContextStart    int                    `json:"context_start"` // byte offset into response text
	ContextEnd      int                    `json:"context_end"`
	MentionType     MentionType            `json:"mention_type"`
	SentimentScore  float64                `json:"sentiment_score"`  // -1 to 1
	SentimentType   SentimentType          `json:"sentiment_type"`
	ProminenceScore float64                `json:"prominence_score"` // 0 to 1
	ConfidenceScore float64                `json:"confidence_score"` // 0 to 1
	ExtractedAt     time.Time              `json:"extracted_at"`
	Metadata        map[string]interface{} `json:"metadata"`
}

// CitationExtractionResult aggregates all mentions found in one response
type CitationExtractionResult struct {
	QueryText          string                 `json:"query_text"`
	Platform           string                 `json:"platform"`
	ResponseText       string                 `json:"response_text"`
	TotalBrandsChecked int                    `json:"total_brands_checked"`
	BrandsMentioned    int                    `json:"brands_mentioned"`
	BrandMentions      []BrandMention         `json:"brand_mentions"`
	ResponseAnalysis   map[string]interface{} `json:"response_analysis"`
	ExtractionMetadata map[string]interface{} `json:"extraction_metadata"`
	ProcessedAt        time.Time              `json:"processed_at"`
}

// Report represents a periodic report over one or more extraction runs
type Report struct {
	GeneratedAt   time.Time                  `json:"generated_at"`
	Period        string                     `json:"period"` // "daily" or "weekly"
	TotalMentions int                        `json:"total_mentions"`
	Results       []CitationExtractionResult `json:"results"`
	Mentions      []BrandMention             `json:"mentions"`
	Summary       map[string]interface{}     `json:"summary"`
}

// Alert represents an urgent notification
type Alert struct {
	ID        string        `json:"id"`
	Type      string        `json:"type"` // "critical", "urgent", "info"
	Title     string        `json:"title"`
	Message   string        `json:"message"`
	Mention   *BrandMention `json:"mention,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}
