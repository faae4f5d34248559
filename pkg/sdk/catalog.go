package medspace

import (
	"context"
	"fmt"
	"time"
)

// CatalogService manages catalog items.
type CatalogService struct {
	svc catalogUseCase
	obs *observer
}

// Upsert creates or replaces an item. Returns true when the item was created.
func (s *CatalogService) Upsert(ctx context.Context, it Item) (created bool, err error) {
	start := time.Now()
	defer func() { s.obs.observe("catalog.upsert", start, err) }()

	if it.ID == "" {
		return false, fmt.Errorf("upsert item: %w: id is required", ErrInvalidContent)
	}
	_, created, err = s.svc.Upsert(ctx, it.ID, itemToDraft(it))
	if err != nil {
		return false, fmt.Errorf("upsert item %s: %w", it.ID, err)
	}
	return created, nil
}

// Get returns one item by id.
func (s *CatalogService) Get(ctx context.Context, id string) (_ Item, err error) {
	start := time.Now()
	defer func() { s.obs.observe("catalog.get", start, err) }()

	it, err := s.svc.Get(ctx, id)
	if err != nil {
		return Item{}, fmt.Errorf("get item %s: %w", id, err)
	}
	return itemFromDomain(it), nil
}

// List returns every item in the catalog.
func (s *CatalogService) List(ctx context.Context) (_ []Item, err error) {
	start := time.Now()
	defer func() { s.obs.observe("catalog.list", start, err) }()

	items, err := s.svc.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	out := make([]Item, len(items))
	for i, it := range items {
		out[i] = itemFromDomain(it)
	}
	return out, nil
}

// Delete removes an item.
func (s *CatalogService) Delete(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("catalog.delete", start, err) }()

	if err = s.svc.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete item %s: %w", id, err)
	}
	return nil
}

// Count returns the number of items in the catalog.
func (s *CatalogService) Count(ctx context.Context) (_ int, err error) {
	start := time.Now()
	defer func() { s.obs.observe("catalog.count", start, err) }()

	n, err := s.svc.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return n, nil
}

// Seed loads a YAML catalog file (top-level "items" list) into the store.
func (s *CatalogService) Seed(ctx context.Context, path string) (_ int, err error) {
	start := time.Now()
	defer func() { s.obs.observe("catalog.seed", start, err) }()

	n, err := s.svc.Seed(ctx, path)
	if err != nil {
		return 0, fmt.Errorf("seed catalog: %w", err)
	}
	return n, nil
}
