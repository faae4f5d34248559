package search

import (
	"context"

	"github.com/kailas-cloud/medspace/internal/domain/content"
)

// CatalogReader loads the candidate pool for a ranking call.
type CatalogReader interface {
	List(ctx context.Context) ([]content.Item, error)
}
