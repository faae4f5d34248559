// Package usage describes assistant token consumption over a period.
package usage

import (
	"fmt"

	"github.com/kailas-cloud/medspace/internal/domain/usage/budget"
	"github.com/kailas-cloud/medspace/internal/domain/usage/metrics"
)

// Period is the aggregation granularity.
type Period string

// Aggregation period constants.
const (
	PeriodDay   Period = "day"
	PeriodMonth Period = "month"
)

// ParsePeriod converts a query parameter into a Period. Empty means day.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case "", PeriodDay:
		return PeriodDay, nil
	case PeriodMonth:
		return PeriodMonth, nil
	default:
		return "", fmt.Errorf("unknown period %q (want day or month)", s)
	}
}

// Report is an assistant usage report for a time period.
type Report struct {
	period      Period
	periodStart int64
	periodEnd   int64
	metrics     metrics.Metrics
	budget      budget.Budget
}

// NewReport creates a usage report.
func NewReport(period Period, start, end int64, m metrics.Metrics, b budget.Budget) Report {
	return Report{
		period:      period,
		periodStart: start,
		periodEnd:   end,
		metrics:     m,
		budget:      b,
	}
}

// Period returns the aggregation granularity.
func (r Report) Period() Period { return r.period }

// PeriodStart returns the period start timestamp (unix millis).
func (r Report) PeriodStart() int64 { return r.periodStart }

// PeriodEnd returns the period end timestamp (unix millis).
func (r Report) PeriodEnd() int64 { return r.periodEnd }

// Metrics returns the usage metrics.
func (r Report) Metrics() metrics.Metrics { return r.metrics }

// Budget returns the budget status.
func (r Report) Budget() budget.Budget { return r.budget }
