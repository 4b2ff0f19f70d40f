package storage

import (
	"context"
	"time"

	"github.com/citelens/citations-bot/internal/models"
)

// ArchiveInterface defines the contract for blob-style result archival
type ArchiveInterface interface {
	Store(filename string, data []byte) error
	Retrieve(filename string) ([]byte, error)
	List(prefix string) ([]string, error)
	Delete(filename string) error
	ArchiveResult(result *models.CitationExtractionResult) (string, error)
}

// CitationStore defines the contract for the relational citation store
type CitationStore interface {
	SaveResult(ctx context.Context, result *models.CitationExtractionResult) (string, error)
	MentionsSince(ctx context.Context, since time.Time) ([]models.BrandMention, error)
	Close() error
}
