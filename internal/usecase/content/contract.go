package content

import (
	"context"

	domcontent "github.com/kailas-cloud/medspace/internal/domain/content"
)

// Repository defines the storage contract for catalog items.
type Repository interface {
	Upsert(ctx context.Context, item domcontent.Item) (bool, error)
	UpsertMany(ctx context.Context, items []domcontent.Item) error
	Get(ctx context.Context, id string) (domcontent.Item, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domcontent.Item, error)
	Count(ctx context.Context) (int, error)
}
