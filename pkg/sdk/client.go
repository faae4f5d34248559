package medspace

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/medspace/internal/db"
	dbRedis "github.com/kailas-cloud/medspace/internal/db/redis"
	"github.com/kailas-cloud/medspace/internal/domain"
	domcontent "github.com/kailas-cloud/medspace/internal/domain/content"
	"github.com/kailas-cloud/medspace/internal/domain/search/request"
	contentrepo "github.com/kailas-cloud/medspace/internal/repository/content"
	contentuc "github.com/kailas-cloud/medspace/internal/usecase/content"
	healthuc "github.com/kailas-cloud/medspace/internal/usecase/health"
	searchuc "github.com/kailas-cloud/medspace/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces for substitution in tests.
type catalogUseCase interface {
	Upsert(ctx context.Context, id string, d contentuc.Draft) (domcontent.Item, bool, error)
	Get(ctx context.Context, id string) (domcontent.Item, error)
	List(ctx context.Context) ([]domcontent.Item, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	Seed(ctx context.Context, path string) (int, error)
}

type searchUseCase interface {
	Search(ctx context.Context, req request.Request) (searchuc.Response, error)
}

// Client is the medspace SDK entry point.
type Client struct {
	store        db.Store
	catalogSvc   catalogUseCase
	searchSvc    searchUseCase
	healthSvc    healthUseCase
	defaultLimit int
	obs          *observer
}

// New creates a medspace Client and connects to the database.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		keyPrefix:    domain.KeyPrefix,
		defaultLimit: request.DefaultLimit,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("medspace: database address required (use WithValkey or WithRedis)")
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("medspace: database not ready: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		store.Close()
		return nil, err
	}
	return wireClient(store, cfg, obs), nil
}

// createStore connects through rueidis; valkey and redis speak the same protocol.
func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case "valkey", "redis":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Username: cfg.username,
			Password: cfg.password,
			DB:       cfg.db,
		})
		if err != nil {
			return nil, fmt.Errorf("medspace: create %s store: %w", cfg.driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("medspace: unknown driver %q", cfg.driver)
	}
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) *Client {
	catalogSvc := contentuc.New(contentrepo.New(store, cfg.keyPrefix), zap.NewNop())

	return &Client{
		store:        store,
		catalogSvc:   catalogSvc,
		searchSvc:    searchuc.New(catalogSvc, "sdk"),
		healthSvc:    healthuc.New(store, nil, nil),
		defaultLimit: cfg.defaultLimit,
		obs:          obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Catalog returns the catalog management service.
func (c *Client) Catalog() *CatalogService {
	return &CatalogService{svc: c.catalogSvc, obs: c.obs}
}

// Search returns the ranking service over the stored catalog.
func (c *Client) Search() *SearchService {
	return &SearchService{svc: c.searchSvc, defaultLimit: c.defaultLimit, obs: c.obs}
}
