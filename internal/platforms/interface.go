package platforms

import (
	"context"
)

// Platform interface defines the contract for all AI answer platforms
type Platform interface {
	GetName() string
	Ask(ctx context.Context, query string) (string, error)
	IsEnabled() bool
}
