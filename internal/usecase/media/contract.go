package media

import (
	"context"
	"time"

	dommedia "github.com/kailas-cloud/medspace/internal/domain/media"
)

// Bucket is the object storage contract.
type Bucket interface {
	List(ctx context.Context, prefix string) ([]dommedia.Object, error)
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}
