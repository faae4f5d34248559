package content

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/kailas-cloud/medspace/internal/db"
	"github.com/kailas-cloud/medspace/internal/domain"
	domcontent "github.com/kailas-cloud/medspace/internal/domain/content"
)

// Hash field names.
const (
	fieldID          = "id"
	fieldTitle       = "title"
	fieldType        = "type"
	fieldSpecialty   = "specialty"
	fieldDescription = "description"
	fieldMediaKey    = "media_key"
)

// store is the consumer interface for content items (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	ReplaceHash(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements usecase/content.Repository with one hash per item.
type Repo struct {
	store  store
	prefix string
}

// New creates a content repository. prefix namespaces keys (e.g. "medspace:").
func New(s store, prefix string) *Repo {
	return &Repo{store: s, prefix: prefix + "content:"}
}

// Upsert creates or replaces an item. Returns true if created.
func (r *Repo) Upsert(ctx context.Context, item domcontent.Item) (bool, error) {
	key := r.key(item.ID())

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("check exists %s: %w", key, err)
	}

	// HSET only adds fields, so an existing hash is swapped whole to drop
	// cleared fields. The old item stays intact if the swap fails.
	if exists {
		if err := r.store.ReplaceHash(ctx, key, toHash(item)); err != nil {
			return false, fmt.Errorf("replace %s: %w", key, err)
		}
		return false, nil
	}

	if err := r.store.HSet(ctx, key, toHash(item)); err != nil {
		return false, fmt.Errorf("hset %s: %w", key, err)
	}
	return !exists, nil
}

// UpsertMany writes items in one pipelined round-trip.
func (r *Repo) UpsertMany(ctx context.Context, items []domcontent.Item) error {
	batch := make([]db.HashSetItem, len(items))
	for i, item := range items {
		batch[i] = db.HashSetItem{Key: r.key(item.ID()), Fields: toHash(item)}
	}
	if err := r.store.HSetMulti(ctx, batch); err != nil {
		return fmt.Errorf("hset multi: %w", err)
	}
	return nil
}

// Get returns an item by ID.
func (r *Repo) Get(ctx context.Context, id string) (domcontent.Item, error) {
	key := r.key(id)
	m, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return domcontent.Item{}, fmt.Errorf("hgetall %s: %w", key, err)
	}
	if len(m) == 0 {
		return domcontent.Item{}, domain.ErrNotFound
	}
	return fromHash(id, m), nil
}

// Delete removes an item.
func (r *Repo) Delete(ctx context.Context, id string) error {
	key := r.key(id)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return domain.ErrNotFound
	}

	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

// List returns every item ordered by ID.
// Items are hydrated without validation; the ranker rejects malformed ones.
func (r *Repo) List(ctx context.Context) ([]domcontent.Item, error) {
	keys, err := r.store.Scan(ctx, r.prefix+"*")
	if err != nil {
		return nil, fmt.Errorf("scan content: %w", err)
	}
	if len(keys) == 0 {
		return nil, nil
	}
	sort.Strings(keys)

	hashes, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("hgetall content: %w", err)
	}

	items := make([]domcontent.Item, 0, len(hashes))
	for i, m := range hashes {
		// deleted between SCAN and HGETALL
		if len(m) == 0 {
			continue
		}
		items = append(items, fromHash(strings.TrimPrefix(keys[i], r.prefix), m))
	}
	return items, nil
}

// Count returns the number of stored items.
func (r *Repo) Count(ctx context.Context) (int, error) {
	keys, err := r.store.Scan(ctx, r.prefix+"*")
	if err != nil {
		return 0, fmt.Errorf("scan content: %w", err)
	}
	return len(keys), nil
}

func (r *Repo) key(id string) string {
	return r.prefix + id
}

func toHash(item domcontent.Item) map[string]string {
	m := map[string]string{
		fieldID:    item.ID(),
		fieldTitle: item.Title(),
		fieldType:  string(item.Kind()),
	}
	if item.Specialty() != "" {
		m[fieldSpecialty] = item.Specialty()
	}
	if item.Description() != "" {
		m[fieldDescription] = item.Description()
	}
	if item.MediaKey() != "" {
		m[fieldMediaKey] = item.MediaKey()
	}
	return m
}

func fromHash(keyID string, m map[string]string) domcontent.Item {
	id := m[fieldID]
	if id == "" {
		id = keyID
	}
	return domcontent.Reconstruct(
		id, m[fieldTitle], domcontent.Kind(m[fieldType]),
		m[fieldSpecialty], m[fieldDescription], m[fieldMediaKey],
	)
}
