package usage

import (
	"context"
	"time"

	domusage "github.com/kailas-cloud/medspace/internal/domain/usage"
	"github.com/kailas-cloud/medspace/internal/domain/usage/budget"
	"github.com/kailas-cloud/medspace/internal/domain/usage/metrics"
)

// Service handles usage reporting.
type Service struct {
	br      BudgetReader
	timeNow func() time.Time
}

// New creates a Service. br can be nil when the assistant is disabled.
func New(br BudgetReader) *Service {
	return &Service{br: br, timeNow: time.Now}
}

// GetReport builds a usage report for the given period.
func (s *Service) GetReport(_ context.Context, period domusage.Period) domusage.Report {
	now := s.timeNow().UTC()
	var start, end time.Time
	var limit, used, remaining, requests int64 = 0, 0, -1, 0

	switch period {
	case domusage.PeriodMonth:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 1, 0)
		if s.br != nil {
			limit = s.br.MonthlyLimit()
			used = s.br.MonthlyUsed()
			remaining = s.br.RemainingMonthly()
			requests = s.br.MonthlyRequests()
		}
	default:
		period = domusage.PeriodDay
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		end = start.Add(24 * time.Hour)
		if s.br != nil {
			limit = s.br.DailyLimit()
			used = s.br.DailyUsed()
			remaining = s.br.RemainingDaily()
			requests = s.br.DailyRequests()
		}
	}

	b := budget.New(limit, used, remaining, end.UnixMilli())
	m := metrics.New(int(requests), int(used))

	return domusage.NewReport(period, start.UnixMilli(), end.UnixMilli(), m, b)
}
