package medspace

import (
	"context"
	"fmt"
	"strings"
	"time"

	domcontent "github.com/kailas-cloud/medspace/internal/domain/content"
	"github.com/kailas-cloud/medspace/internal/domain/search/request"
	searchuc "github.com/kailas-cloud/medspace/internal/usecase/search"
)

// SearchService ranks the stored catalog.
type SearchService struct {
	svc          searchUseCase
	defaultLimit int
	obs          *observer
}

// Query ranks the catalog against query and returns the top limit hits.
// limit <= 0 uses the client default.
func (s *SearchService) Query(ctx context.Context, query string, limit int) (_ SearchPage, err error) {
	start := time.Now()
	defer func() { s.obs.observe("search.query", start, err) }()

	if limit <= 0 {
		limit = s.defaultLimit
	}
	req, err := request.New(query, limit)
	if err != nil {
		return SearchPage{}, fmt.Errorf("%w: %w", ErrInvalidQuery, err)
	}

	resp, err := s.svc.Search(ctx, req)
	if err != nil {
		return SearchPage{}, fmt.Errorf("search: %w", err)
	}
	s.obs.observeHits(resp.TotalFound)
	return SearchPage{
		Query:      resp.Query,
		Hits:       hitsFromDomain(resp.Results),
		TotalFound: resp.TotalFound,
		TotalItems: resp.TotalItems,
	}, nil
}

// Rank scores items against query in memory and returns every hit, best first.
// An item with an empty title fails the whole call with ErrInvalidContent.
func Rank(query string, items []Item) ([]Hit, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", ErrInvalidQuery)
	}

	pool := make([]domcontent.Item, len(items))
	for i, it := range items {
		pool[i] = itemToDomain(it)
	}
	ranked, err := searchuc.Rank(query, pool)
	if err != nil {
		return nil, fmt.Errorf("rank: %w", err)
	}
	return hitsFromDomain(ranked), nil
}
