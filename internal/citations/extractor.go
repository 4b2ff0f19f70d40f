// Package citations implements the citation extraction engine: it scans
// free-form response text for brand mentions, attaches word-boundary
// context windows, and scores each mention for sentiment, prominence and
// confidence. The engine is pure computation over in-memory text; it holds
// no shared mutable state beyond the alias cache and performs no I/O, so
// extractions are safely parallelizable across responses.
package citations

import (
	"fmt"
	"time"

	"github.com/citelens/citations-bot/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultContextWindow is the context window size in bytes.
	DefaultContextWindow = 150

	// MaxBrands bounds the brand list per extraction call.
	MaxBrands = 20
)

// Config carries the optional collaborators for an Extractor. Zero values
// select the baseline strategies.
type Config struct {
	Lexicon       *Lexicon
	Segmenter     SentenceSegmenter
	Sentiment     SentimentScorer
	AliasProvider AliasProvider
}

// Extractor is the public entry point of the engine. It is safe for
// concurrent use.
type Extractor struct {
	lexicon   *Lexicon
	segmenter SentenceSegmenter
	sentiment SentimentScorer
	aliases   *AliasResolver
}

// NewExtractor creates an extractor, filling unset collaborators with the
// baseline lexicon, punctuation segmenter and keyword sentiment scorer.
func NewExtractor(cfg Config) *Extractor {
	lexicon := cfg.Lexicon
	if lexicon == nil {
		lexicon = DefaultLexicon()
	}
	segmenter := cfg.Segmenter
	if segmenter == nil {
		segmenter = NewPunctuationSegmenter()
	}
	sentiment := cfg.Sentiment
	if sentiment == nil {
		sentiment = NewLexiconSentiment(lexicon)
	}

	return &Extractor{
		lexicon:   lexicon,
		segmenter: segmenter,
		sentiment: sentiment,
		aliases:   NewAliasResolver(cfg.AliasProvider),
	}
}

// Request holds the inputs for one extraction call.
type Request struct {
	ResponseText   string
	QueryText      string
	BrandNames     []string
	Platform       string
	IncludeContext bool
	ContextWindow  int
}

// NewRequest builds a request with the default platform, context window and
// context inclusion.
func NewRequest(responseText, queryText string, brandNames []string) Request {
	return Request{
		ResponseText:   responseText,
		QueryText:      queryText,
		BrandNames:     brandNames,
		Platform:       "unknown",
		IncludeContext: true,
		ContextWindow:  DefaultContextWindow,
	}
}

// Extract runs the full pipeline for a batch of brands against one
// response: alias resolution, pattern matching, context extraction,
// scoring, deduplication and response analysis. A brand whose aliases
// cannot be expanded is skipped and recorded in the extraction metadata;
// only invalid call-level input fails the whole call.
func (e *Extractor) Extract(req Request) (*models.CitationExtractionResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	platform := req.Platform
	if platform == "" {
		platform = "unknown"
	}

	text := req.ResponseText
	totalSentences := len(e.segmenter.Segment(text))
	now := time.Now().UTC()

	logrus.Debugf("Extracting citations for %d brands from %s response", len(req.BrandNames), platform)

	allMentions := []models.BrandMention{}
	brandsMentioned := 0
	var skipped []string

	for _, brandName := range req.BrandNames {
		aliases, err := e.aliases.Resolve(brandName)
		if err != nil {
			logrus.Warnf("Skipping brand: %v", err)
			skipped = append(skipped, brandName)
			continue
		}

		var brandMentions []models.BrandMention
		for _, alias := range aliases {
			for _, match := range e.findMentions(text, alias) {
				brandMentions = append(brandMentions,
					e.buildMention(text, brandName, alias, match, req, totalSentences, now))
			}
		}

		brandMentions = dedupeMentions(brandMentions)
		if len(brandMentions) > 0 {
			brandsMentioned++
			allMentions = append(allMentions, brandMentions...)
		}
	}

	sortByPosition(allMentions)

	metadata := map[string]interface{}{
		"response_length":   len(text),
		"total_sentences":   totalSentences,
		"extraction_method": e.sentiment.Name(),
		"segmenter":         e.segmenter.Name(),
		"context_window":    req.ContextWindow,
		"include_context":   req.IncludeContext,
	}
	if len(skipped) > 0 {
		metadata["skipped_brands"] = skipped
	}

	result := &models.CitationExtractionResult{
		QueryText:          req.QueryText,
		Platform:           platform,
		ResponseText:       req.ResponseText,
		TotalBrandsChecked: len(req.BrandNames),
		BrandsMentioned:    brandsMentioned,
		BrandMentions:      allMentions,
		ResponseAnalysis:   analyzeResponse(text, allMentions, e.segmenter),
		ExtractionMetadata: metadata,
		ProcessedAt:        now,
	}

	logrus.Debugf("Citation extraction completed: %d/%d brands mentioned",
		brandsMentioned, len(req.BrandNames))
	return result, nil
}

func validateRequest(req Request) error {
	if len(req.BrandNames) == 0 {
		return &InvalidInputError{Reason: "brand list is empty"}
	}
	if len(req.BrandNames) > MaxBrands {
		return &InvalidInputError{Reason: fmt.Sprintf("brand list exceeds %d entries", MaxBrands)}
	}
	if req.ContextWindow <= 0 {
		return &InvalidInputError{Reason: "context window must be positive"}
	}
	return nil
}

func (e *Extractor) buildMention(text, brandName, alias string, match rawMatch, req Request, totalSentences int, now time.Time) models.BrandMention {
	position := sentencePosition(e.segmenter, text, match.start)

	context := ""
	contextStart, contextEnd := match.start, match.end
	if req.IncludeContext {
		context, contextStart, contextEnd = extractContext(text, match.start, match.end, req.ContextWindow)
	}

	sentimentInput := context
	if sentimentInput == "" {
		sentimentInput = sentenceAt(text, match.start)
	}
	sentimentScore, sentimentType := e.sentiment.Score(sentimentInput)

	prominence := e.prominenceScore(text, match.start, match.end, position, totalSentences, match.text)
	confidence := e.confidenceScore(match.text, alias, brandName, context, match.mentionType)

	return models.BrandMention{
		BrandName:       brandName,
		Mentioned:       true,
		Position:        position,
		MentionText:     match.text,
		Context:         context,
		ContextStart:    contextStart,
		ContextEnd:      contextEnd,
		MentionType:     match.mentionType,
		SentimentScore:  sentimentScore,
		SentimentType:   sentimentType,
		ProminenceScore: prominence,
		ConfidenceScore: confidence,
		ExtractedAt:     now,
		Metadata: map[string]interface{}{
			"search_term":     alias,
			"match_start":     match.start,
			"match_end":       match.end,
			"pattern_type":    string(match.mentionType),
			"full_word_match": isFullWordMatch(text, match.start, match.end),
		},
	}
}
