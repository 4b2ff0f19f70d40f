package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/citelens/citations-bot/internal/models"
)

// PostgresStore persists extraction results in Postgres. Each result
// becomes one query_results row plus one citations row per mention.
type PostgresStore struct {
	db *sqlx.DB
}

// Ensure PostgresStore implements CitationStore
var _ CitationStore = (*PostgresStore)(nil)

type citationRow struct {
	ID              string    `db:"id"`
	QueryResultID   string    `db:"query_result_id"`
	BrandName       string    `db:"brand_name"`
	Mentioned       bool      `db:"mentioned"`
	Position        int       `db:"position"`
	MentionText     string    `db:"mention_text"`
	Context         string    `db:"context"`
	ContextStart    int       `db:"context_start"`
	ContextEnd      int       `db:"context_end"`
	MentionType     string    `db:"mention_type"`
	SentimentScore  float64   `db:"sentiment_score"`
	SentimentType   string    `db:"sentiment_type"`
	ProminenceScore float64   `db:"prominence_score"`
	ConfidenceScore float64   `db:"confidence_score"`
	CreatedAt       time.Time `db:"created_at"`
	Metadata        []byte    `db:"metadata"`
}

const schema = `
CREATE TABLE IF NOT EXISTS query_results (
	id UUID PRIMARY KEY,
	query_text TEXT NOT NULL,
	platform VARCHAR(50) NOT NULL,
	response_text TEXT NOT NULL,
	brands_checked INT NOT NULL,
	brands_mentioned INT NOT NULL,
	executed_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS citations (
	id UUID PRIMARY KEY,
	query_result_id UUID REFERENCES query_results(id) ON DELETE CASCADE,
	brand_name VARCHAR(255) NOT NULL,
	mentioned BOOLEAN NOT NULL,
	position INT NOT NULL,
	mention_text TEXT,
	context TEXT,
	context_start INT NOT NULL,
	context_end INT NOT NULL,
	mention_type VARCHAR(32) NOT NULL,
	sentiment_score DOUBLE PRECISION NOT NULL,
	sentiment_type VARCHAR(16) NOT NULL,
	prominence_score DOUBLE PRECISION NOT NULL,
	confidence_score DOUBLE PRECISION NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	metadata JSONB
);

CREATE INDEX IF NOT EXISTS idx_citations_created_at ON citations (created_at);
CREATE INDEX IF NOT EXISTS idx_citations_brand_name ON citations (brand_name);
`

// NewPostgresStore connects to Postgres and ensures the schema exists
func NewPostgresStore(databaseURL string) (*PostgresStore, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL is required")
	}

	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure citation schema: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// SaveResult stores an extraction result and all of its mentions in one
// transaction. Returns the generated query result ID.
func (s *PostgresStore) SaveResult(ctx context.Context, result *models.CitationExtractionResult) (string, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	resultID := uuid.NewString()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO query_results (id, query_text, platform, response_text, brands_checked, brands_mentioned, executed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		resultID,
		result.QueryText,
		result.Platform,
		result.ResponseText,
		result.TotalBrandsChecked,
		result.BrandsMentioned,
		result.ProcessedAt,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert query result: %w", err)
	}

	for _, mention := range result.BrandMentions {
		metadata, err := json.Marshal(mention.Metadata)
		if err != nil {
			return "", fmt.Errorf("failed to serialize mention metadata: %w", err)
		}

		row := citationRow{
			ID:              uuid.NewString(),
			QueryResultID:   resultID,
			BrandName:       mention.BrandName,
			Mentioned:       mention.Mentioned,
			Position:        mention.Position,
			MentionText:     mention.MentionText,
			Context:         mention.Context,
			ContextStart:    mention.ContextStart,
			ContextEnd:      mention.ContextEnd,
			MentionType:     string(mention.MentionType),
			SentimentScore:  mention.SentimentScore,
			SentimentType:   string(mention.SentimentType),
			ProminenceScore: mention.ProminenceScore,
			ConfidenceScore: mention.ConfidenceScore,
			CreatedAt:       mention.ExtractedAt,
			Metadata:        metadata,
		}

		_, err = tx.NamedExecContext(ctx, `
			INSERT INTO citations (id, query_result_id, brand_name, mentioned, position,
				mention_text, context, context_start, context_end, mention_type,
				sentiment_score, sentiment_type, prominence_score, confidence_score,
				created_at, metadata)
			VALUES (:id, :query_result_id, :brand_name, :mentioned, :position,
				:mention_text, :context, :context_start, :context_end, :mention_type,
				:sentiment_score, :sentiment_type, :prominence_score, :confidence_score,
				:created_at, :metadata)`, row)
		if err != nil {
			return "", fmt.Errorf("failed to insert citation for %s: %w", mention.BrandName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit citations: %w", err)
	}

	logrus.Debugf("Stored %d citations for query result %s", len(result.BrandMentions), resultID)
	return resultID, nil
}

// MentionsSince returns all mentions stored on or after the given time,
// ordered oldest first.
func (s *PostgresStore) MentionsSince(ctx context.Context, since time.Time) ([]models.BrandMention, error) {
	var rows []citationRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, query_result_id, brand_name, mentioned, position,
			mention_text, context, context_start, context_end, mention_type,
			sentiment_score, sentiment_type, prominence_score, confidence_score,
			created_at, metadata
		FROM citations
		WHERE created_at >= $1
		ORDER BY created_at ASC`, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query citations: %w", err)
	}

	mentions := make([]models.BrandMention, 0, len(rows))
	for _, row := range rows {
		mention := models.BrandMention{
			BrandName:       row.BrandName,
			Mentioned:       row.Mentioned,
			Position:        row.Position,
			MentionText:     row.MentionText,
			Context:         row.Context,
			ContextStart:    row.ContextStart,
			ContextEnd:      row.ContextEnd,
			MentionType:     models.MentionType(row.MentionType),
			SentimentScore:  row.SentimentScore,
			SentimentType:   models.SentimentType(row.SentimentType),
			ProminenceScore: row.ProminenceScore,
			ConfidenceScore: row.ConfidenceScore,
			ExtractedAt:     row.CreatedAt,
		}
		if len(row.Metadata) > 0 {
			if err := json.Unmarshal(row.Metadata, &mention.Metadata); err != nil {
				logrus.Warnf("Failed to decode metadata for citation %s: %v", row.ID, err)
			}
		}
		mentions = append(mentions, mention)
	}

	return mentions, nil
}

// Close releases the underlying connection pool
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
