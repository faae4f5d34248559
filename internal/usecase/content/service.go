package content

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/parquet-go/parquet-go"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/medspace/internal/domain"
	domcontent "github.com/kailas-cloud/medspace/internal/domain/content"
)

// Draft is unvalidated item input from the API or a seed file.
type Draft struct {
	ID          string `yaml:"id" parquet:"id,optional"`
	Title       string `yaml:"title" parquet:"title,optional"`
	Type        string `yaml:"type" parquet:"type,optional"`
	Specialty   string `yaml:"specialty" parquet:"specialty,optional"`
	Description string `yaml:"description" parquet:"description,optional"`
	MediaKey    string `yaml:"media_key" parquet:"media_key,optional"`
}

// Service handles catalog CRUD and seeding.
type Service struct {
	repo   Repository
	newID  func() string
	logger *zap.Logger
}

// New creates a content service.
func New(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, newID: uuid.NewString, logger: logger}
}

// Build validates a draft into an item.
func Build(d Draft) (domcontent.Item, error) {
	item, err := domcontent.New(d.ID, d.Title, domcontent.Kind(d.Type), d.Specialty)
	if err != nil {
		return domcontent.Item{}, fmt.Errorf("%w: %w", domain.ErrInvalidContent, err)
	}
	item, err = item.WithDescription(d.Description)
	if err != nil {
		return domcontent.Item{}, fmt.Errorf("%w: %w", domain.ErrInvalidContent, err)
	}
	return item.WithMediaKey(d.MediaKey), nil
}

// Create stores a new item, assigning a UUID when the draft has no ID.
func (s *Service) Create(ctx context.Context, d Draft) (domcontent.Item, error) {
	if d.ID == "" {
		d.ID = s.newID()
	}
	item, err := Build(d)
	if err != nil {
		return domcontent.Item{}, err
	}
	if _, err := s.repo.Upsert(ctx, item); err != nil {
		return domcontent.Item{}, fmt.Errorf("create content: %w", err)
	}
	return item, nil
}

// Upsert creates or replaces the item with the given ID. Returns true if created.
func (s *Service) Upsert(ctx context.Context, id string, d Draft) (domcontent.Item, bool, error) {
	d.ID = id
	item, err := Build(d)
	if err != nil {
		return domcontent.Item{}, false, err
	}
	created, err := s.repo.Upsert(ctx, item)
	if err != nil {
		return domcontent.Item{}, false, fmt.Errorf("upsert content: %w", err)
	}
	return item, created, nil
}

// Get retrieves an item by ID.
func (s *Service) Get(ctx context.Context, id string) (domcontent.Item, error) {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return domcontent.Item{}, fmt.Errorf("get content: %w", err)
	}
	return item, nil
}

// Delete removes an item.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete content: %w", err)
	}
	return nil
}

// List returns the whole catalog. It is also the candidate pool for ranking.
func (s *Service) List(ctx context.Context) ([]domcontent.Item, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}
	return items, nil
}

// Count returns the catalog size.
func (s *Service) Count(ctx context.Context) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count content: %w", err)
	}
	return n, nil
}

// seedFile is the on-disk layout of a catalog seed.
type seedFile struct {
	Items []Draft `yaml:"items"`
}

// Seed loads items from a YAML (top-level "items") or Parquet export and
// upserts them in one batch. Any invalid entry aborts the whole seed before
// anything is written.
func (s *Service) Seed(ctx context.Context, path string) (int, error) {
	drafts, err := readSeed(path)
	if err != nil {
		return 0, err
	}

	items := make([]domcontent.Item, 0, len(drafts))
	seen := make(map[string]struct{}, len(drafts))
	for i, d := range drafts {
		item, err := Build(d)
		if err != nil {
			return 0, fmt.Errorf("seed item #%d: %w", i, err)
		}
		if _, dup := seen[item.ID()]; dup {
			return 0, fmt.Errorf("seed item #%d: duplicate id %q: %w", i, item.ID(), domain.ErrInvalidContent)
		}
		seen[item.ID()] = struct{}{}
		items = append(items, item)
	}

	if len(items) == 0 {
		s.logger.Warn("Seed file has no items", zap.String("path", path))
		return 0, nil
	}
	if err := s.repo.UpsertMany(ctx, items); err != nil {
		return 0, fmt.Errorf("seed content: %w", err)
	}

	s.logger.Info("Catalog seeded", zap.String("path", path), zap.Int("items", len(items)))
	return len(items), nil
}

func readSeed(path string) ([]Draft, error) {
	path = filepath.Clean(path)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".parquet":
		rows, err := parquet.ReadFile[Draft](path)
		if err != nil {
			return nil, fmt.Errorf("read seed %s: %w", path, err)
		}
		return rows, nil
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read seed %s: %w", path, err)
		}
		var f seedFile
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse seed %s: %w", path, err)
		}
		return f.Items, nil
	default:
		return nil, fmt.Errorf("seed %s: unsupported format (want .yaml, .yml or .parquet)", path)
	}
}
