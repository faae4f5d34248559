package medspace

import (
	"context"

	domcontent "github.com/kailas-cloud/medspace/internal/domain/content"
	"github.com/kailas-cloud/medspace/internal/domain/search/request"
	contentuc "github.com/kailas-cloud/medspace/internal/usecase/content"
	healthuc "github.com/kailas-cloud/medspace/internal/usecase/health"
	searchuc "github.com/kailas-cloud/medspace/internal/usecase/search"
)

// --- catalogUseCase mock ---

type mockCatalogUC struct {
	upsertFn func(ctx context.Context, id string, d contentuc.Draft) (domcontent.Item, bool, error)
	getFn    func(ctx context.Context, id string) (domcontent.Item, error)
	listFn   func(ctx context.Context) ([]domcontent.Item, error)
	deleteFn func(ctx context.Context, id string) error
	countFn  func(ctx context.Context) (int, error)
	seedFn   func(ctx context.Context, path string) (int, error)
}

func (m *mockCatalogUC) Upsert(ctx context.Context, id string, d contentuc.Draft) (domcontent.Item, bool, error) {
	return m.upsertFn(ctx, id, d)
}

func (m *mockCatalogUC) Get(ctx context.Context, id string) (domcontent.Item, error) {
	return m.getFn(ctx, id)
}

func (m *mockCatalogUC) List(ctx context.Context) ([]domcontent.Item, error) {
	return m.listFn(ctx)
}

func (m *mockCatalogUC) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

func (m *mockCatalogUC) Count(ctx context.Context) (int, error) {
	return m.countFn(ctx)
}

func (m *mockCatalogUC) Seed(ctx context.Context, path string) (int, error) {
	return m.seedFn(ctx, path)
}

// --- searchUseCase mock ---

type mockSearchUC struct {
	searchFn func(ctx context.Context, req request.Request) (searchuc.Response, error)
}

func (m *mockSearchUC) Search(ctx context.Context, req request.Request) (searchuc.Response, error) {
	return m.searchFn(ctx, req)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(_ context.Context) healthuc.Report { return m.report }

// --- helpers ---

func staticCatalog(items ...domcontent.Item) *mockCatalogUC {
	return &mockCatalogUC{
		listFn: func(_ context.Context) ([]domcontent.Item, error) { return items, nil },
	}
}
