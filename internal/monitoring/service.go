package monitoring

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/citelens/citations-bot/internal/citations"
	"github.com/citelens/citations-bot/internal/config"
	"github.com/citelens/citations-bot/internal/models"
	"github.com/citelens/citations-bot/internal/notifications"
	"github.com/citelens/citations-bot/internal/platforms"
	"github.com/citelens/citations-bot/internal/storage"
)

// Service orchestrates citation monitoring: it runs the configured queries
// against every enabled AI platform, extracts brand mentions from each
// response, persists the results and reports on them.
type Service struct {
	config              *config.Config
	extractor           *citations.Extractor
	archive             storage.ArchiveInterface
	store               storage.CitationStore
	notificationService notifications.NotificationInterface
	platforms           []platforms.Platform
	metrics             *Metrics
	mu                  sync.RWMutex
}

// Metrics holds monitoring metrics
type Metrics struct {
	TotalMentions      int            `json:"total_mentions"`
	ResponsesAnalyzed  int            `json:"responses_analyzed"`
	LastRun            time.Time      `json:"last_run"`
	LastRunDuration    string         `json:"last_run_duration"`
	PlatformMetrics    map[string]int `json:"platform_metrics"`
	BrandMetrics       map[string]int `json:"brand_metrics"`
	SentimentBreakdown map[string]int `json:"sentiment_breakdown"`
	ErrorCount         int            `json:"error_count"`
}

// queryOutcome carries one platform response through the pipeline
type queryOutcome struct {
	platform string
	query    string
	result   *models.CitationExtractionResult
}

// NewService creates a new monitoring service
func NewService(cfg *config.Config, archive storage.ArchiveInterface, store storage.CitationStore, notificationService notifications.NotificationInterface) *Service {
	service := &Service{
		config:              cfg,
		extractor:           citations.NewExtractor(citations.Config{}),
		archive:             archive,
		store:               store,
		notificationService: notificationService,
		metrics: &Metrics{
			PlatformMetrics:    make(map[string]int),
			BrandMetrics:       make(map[string]int),
			SentimentBreakdown: make(map[string]int),
		},
	}

	service.initializePlatforms()

	return service
}

func (s *Service) initializePlatforms() {
	s.platforms = []platforms.Platform{
		platforms.NewOpenAIPlatform(s.config.OpenAIAPIKey, s.config.OpenAIModel),
		platforms.NewPerplexityPlatform(s.config.PerplexityAPIKey, s.config.PerplexityModel),
		platforms.NewGeminiPlatform(s.config.GeminiAPIKey, s.config.GeminiModel),
	}
}

// Extract runs the extraction engine directly against a single response.
// Used by the HTTP extract endpoint; no persistence happens here.
func (s *Service) Extract(req citations.Request) (*models.CitationExtractionResult, error) {
	return s.extractor.Extract(req)
}

// RunMonitoring performs the main monitoring task: every configured query
// is sent to every enabled platform, and each response goes through the
// extraction engine.
func (s *Service) RunMonitoring() error {
	start := time.Now()
	logrus.Info("Starting citation monitoring run")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	enabled := s.enabledPlatforms()
	if len(enabled) == 0 {
		return fmt.Errorf("no AI platforms are enabled, check API key configuration")
	}

	jobs := len(enabled) * len(s.config.Queries)
	logrus.Infof("Running %d queries against %d platforms (%d responses expected)",
		len(s.config.Queries), len(enabled), jobs)

	var wg sync.WaitGroup
	outcomesChan := make(chan queryOutcome, jobs)
	errorsChan := make(chan error, jobs)

	for _, platform := range enabled {
		for _, query := range s.config.Queries {
			wg.Add(1)
			go func(p platforms.Platform, q string) {
				defer wg.Done()

				logrus.Infof("Asking %s: %q", p.GetName(), q)
				response, err := p.Ask(ctx, q)
				if err != nil {
					logrus.Errorf("Error querying %s: %v", p.GetName(), err)
					errorsChan <- err
					return
				}

				result, err := s.extractResponse(response, q, p.GetName())
				if err != nil {
					logrus.Errorf("Error extracting citations from %s response: %v", p.GetName(), err)
					errorsChan <- err
					return
				}

				logrus.Infof("Found %d brand mentions in %s response", len(result.BrandMentions), p.GetName())
				outcomesChan <- queryOutcome{platform: p.GetName(), query: q, result: result}
			}(platform, query)
		}
	}

	go func() {
		wg.Wait()
		close(outcomesChan)
		close(errorsChan)
	}()

	var results []*models.CitationExtractionResult
	for outcome := range outcomesChan {
		results = append(results, outcome.result)
	}

	errorCount := 0
	for range errorsChan {
		errorCount++
	}

	totalMentions := 0
	for _, result := range results {
		totalMentions += len(result.BrandMentions)
	}
	logrus.Infof("Collected %d mentions from %d responses", totalMentions, len(results))

	if err := s.persistResults(ctx, results); err != nil {
		logrus.Errorf("Failed to persist results: %v", err)
		return err
	}

	s.updateMetrics(results, time.Since(start), errorCount)

	report := s.generateReport(results)
	if err := s.notificationService.SendReport(report); err != nil {
		logrus.Errorf("Failed to send report: %v", err)
		return err
	}

	logrus.Infof("Monitoring run completed in %v", time.Since(start))
	return nil
}

func (s *Service) enabledPlatforms() []platforms.Platform {
	var enabled []platforms.Platform
	for _, p := range s.platforms {
		if p.IsEnabled() {
			enabled = append(enabled, p)
		} else {
			logrus.Debugf("Platform %s disabled, missing credentials", p.GetName())
		}
	}
	return enabled
}

func (s *Service) extractResponse(response, query, platform string) (*models.CitationExtractionResult, error) {
	req := citations.NewRequest(response, query, s.config.Brands)
	req.Platform = platform
	req.ContextWindow = s.config.ContextWindow
	req.IncludeContext = s.config.IncludeContext
	return s.extractor.Extract(req)
}

func (s *Service) persistResults(ctx context.Context, results []*models.CitationExtractionResult) error {
	for _, result := range results {
		if s.archive != nil {
			if _, err := s.archive.ArchiveResult(result); err != nil {
				return fmt.Errorf("failed to archive result for %s: %w", result.Platform, err)
			}
		}
		if s.store != nil {
			if _, err := s.store.SaveResult(ctx, result); err != nil {
				return fmt.Errorf("failed to store citations for %s: %w", result.Platform, err)
			}
		}
	}
	return nil
}

func (s *Service) generateReport(results []*models.CitationExtractionResult) *models.Report {
	report := &models.Report{
		GeneratedAt: time.Now(),
		Period:      s.config.ReportSchedule,
		Summary:     make(map[string]interface{}),
	}

	sentimentCount := make(map[string]int)
	brandCount := make(map[string]int)
	platformCount := make(map[string]int)
	var allMentions []models.BrandMention

	for _, result := range results {
		report.Results = append(report.Results, *result)
		platformCount[result.Platform] += len(result.BrandMentions)
		for _, mention := range result.BrandMentions {
			sentimentCount[string(mention.SentimentType)]++
			brandCount[mention.BrandName]++
			allMentions = append(allMentions, mention)
		}
	}

	// Most prominent mentions first
	sort.SliceStable(allMentions, func(i, j int) bool {
		return allMentions[i].ProminenceScore > allMentions[j].ProminenceScore
	})

	report.TotalMentions = len(allMentions)
	report.Mentions = allMentions
	report.Summary["sentiment"] = sentimentCount
	report.Summary["mentions_by_brand"] = brandCount
	report.Summary["mentions_by_platform"] = platformCount

	return report
}

func (s *Service) updateMetrics(results []*models.CitationExtractionResult, duration time.Duration, errorCount int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics.LastRun = time.Now()
	s.metrics.LastRunDuration = duration.String()
	s.metrics.ErrorCount = errorCount
	s.metrics.ResponsesAnalyzed = len(results)

	s.metrics.TotalMentions = 0
	s.metrics.PlatformMetrics = make(map[string]int)
	s.metrics.BrandMetrics = make(map[string]int)
	s.metrics.SentimentBreakdown = make(map[string]int)

	for _, result := range results {
		s.metrics.PlatformMetrics[result.Platform] += len(result.BrandMentions)
		for _, mention := range result.BrandMentions {
			s.metrics.TotalMentions++
			s.metrics.BrandMetrics[mention.BrandName]++
			s.metrics.SentimentBreakdown[string(mention.SentimentType)]++
		}
	}
}

// GetMetrics returns current metrics as JSON
func (s *Service) GetMetrics() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, _ := json.MarshalIndent(s.metrics, "", "  ")
	return string(data)
}

// RunCitationCheck sweeps recently stored mentions for high-confidence
// negative sentiment and sends an alert for each. Runs every 4 hours.
func (s *Service) RunCitationCheck() error {
	if !s.config.SentimentAlertsEnabled {
		logrus.Debug("Sentiment alerts disabled, skipping citation check")
		return nil
	}
	if s.store == nil {
		logrus.Debug("No citation store configured, skipping citation check")
		return nil
	}

	start := time.Now()
	logrus.Info("Starting citation sentiment check")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	mentions, err := s.store.MentionsSince(ctx, time.Now().Add(-4*time.Hour))
	if err != nil {
		return fmt.Errorf("failed to load recent citations: %w", err)
	}

	alertable := s.filterAlertableMentions(mentions)
	if len(alertable) == 0 {
		logrus.Info("No negative mentions requiring alerts")
		return nil
	}

	logrus.Infof("Found %d negative mentions requiring alerts", len(alertable))

	for i := range alertable {
		mention := alertable[i]
		alert := &models.Alert{
			ID:    uuid.NewString(),
			Type:  "urgent",
			Title: fmt.Sprintf("Negative mention of %s detected", mention.BrandName),
			Message: fmt.Sprintf("An AI platform response mentioned %s negatively (sentiment %.2f, confidence %.2f)",
				mention.BrandName, mention.SentimentScore, mention.ConfidenceScore),
			Mention:   &mention,
			CreatedAt: time.Now(),
		}
		if err := s.notificationService.SendAlert(alert); err != nil {
			logrus.Errorf("Failed to send alert for %s: %v", mention.BrandName, err)
		}
	}

	logrus.Infof("Citation check completed in %v, sent %d alerts", time.Since(start), len(alertable))
	return nil
}

func (s *Service) filterAlertableMentions(mentions []models.BrandMention) []models.BrandMention {
	var alertable []models.BrandMention
	for _, mention := range mentions {
		if mention.SentimentType != models.SentimentNegative {
			continue
		}
		if mention.ConfidenceScore < s.config.AlertConfidenceFloor {
			continue
		}
		alertable = append(alertable, mention)
	}
	return alertable
}
