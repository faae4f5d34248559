package search

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/medspace/internal/domain/search/request"
	"github.com/kailas-cloud/medspace/internal/domain/search/result"
	"github.com/kailas-cloud/medspace/internal/metrics"
)

// Response is a ranked page of the catalog.
type Response struct {
	Query      string
	Results    []result.Scored
	TotalFound int // ranked items before truncation
	TotalItems int // candidate pool size before filtering
}

// Service ranks the content catalog against free-text queries.
type Service struct {
	catalog  CatalogReader
	endpoint string
}

// New creates a search service. endpoint labels the ranking metrics.
func New(catalog CatalogReader, endpoint string) *Service {
	return &Service{catalog: catalog, endpoint: endpoint}
}

// Search loads the catalog, ranks it and returns the top req.Limit() results.
func (s *Service) Search(ctx context.Context, req request.Request) (Response, error) {
	pool, err := s.catalog.List(ctx)
	if err != nil {
		return Response{}, fmt.Errorf("load catalog: %w", err)
	}

	start := time.Now()
	ranked, err := Rank(req.Query(), pool)
	if err != nil {
		return Response{}, fmt.Errorf("rank: %w", err)
	}
	metrics.RankDuration.WithLabelValues(s.endpoint).Observe(time.Since(start).Seconds())
	metrics.RankCandidates.WithLabelValues(s.endpoint).Observe(float64(len(pool)))
	metrics.RankMatches.WithLabelValues(s.endpoint).Observe(float64(len(ranked)))

	results := ranked
	if len(results) > req.Limit() {
		results = results[:req.Limit()]
	}

	return Response{
		Query:      req.Query(),
		Results:    results,
		TotalFound: len(ranked),
		TotalItems: len(pool),
	}, nil
}
