package assistant

import (
	"context"

	"github.com/kailas-cloud/medspace/internal/domain/search/request"
	"github.com/kailas-cloud/medspace/internal/usecase/search"
)

// Searcher ranks the catalog for a query.
type Searcher interface {
	Search(ctx context.Context, req request.Request) (search.Response, error)
}

// BudgetChecker enforces the assistant token budget.
type BudgetChecker interface {
	Check(ctx context.Context) error
	Record(tokens int64)
	RemainingDaily() int64
	RemainingMonthly() int64
}
