package media

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kailas-cloud/medspace/internal/domain"
	dommedia "github.com/kailas-cloud/medspace/internal/domain/media"
)

// DefaultURLExpiry is used when no expiry is configured.
const DefaultURLExpiry = 15 * time.Minute

// Service browses the media bucket and signs download links.
type Service struct {
	bucket  Bucket
	expiry  time.Duration
	timeNow func() time.Time
}

// New creates a media service. A nil bucket disables every operation.
func New(bucket Bucket, expiry time.Duration) *Service {
	if expiry <= 0 {
		expiry = DefaultURLExpiry
	}
	return &Service{bucket: bucket, expiry: expiry, timeNow: time.Now}
}

// Enabled reports whether a bucket is configured.
func (s *Service) Enabled() bool { return s.bucket != nil }

// List returns the objects under prefix, skipping folder placeholders.
func (s *Service) List(ctx context.Context, prefix string) ([]dommedia.Object, error) {
	if s.bucket == nil {
		return nil, domain.ErrMediaDisabled
	}
	if strings.Contains(prefix, "..") {
		return nil, fmt.Errorf("%w: prefix must not contain %q", domain.ErrInvalidMediaKey, "..")
	}

	objects, err := s.bucket.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}

	out := objects[:0]
	for _, o := range objects {
		if dommedia.IsDirectory(o.Key) {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

// Sign returns a presigned GET URL for key.
func (s *Service) Sign(ctx context.Context, key string) (dommedia.SignedURL, error) {
	if s.bucket == nil {
		return dommedia.SignedURL{}, domain.ErrMediaDisabled
	}
	if err := dommedia.ValidateKey(key); err != nil {
		return dommedia.SignedURL{}, fmt.Errorf("%w: %w", domain.ErrInvalidMediaKey, err)
	}

	expiresAt := s.timeNow().Add(s.expiry)
	url, err := s.bucket.PresignGet(ctx, key, s.expiry)
	if err != nil {
		return dommedia.SignedURL{}, fmt.Errorf("presign %s: %w", key, err)
	}

	return dommedia.SignedURL{URL: url, Key: key, ExpiresAt: expiresAt}, nil
}
