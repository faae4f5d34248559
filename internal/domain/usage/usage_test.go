package usage

import (
	"testing"

	"github.com/kailas-cloud/medspace/internal/domain/usage/budget"
	"github.com/kailas-cloud/medspace/internal/domain/usage/metrics"
)

func TestNewReport(t *testing.T) {
	m := metrics.New(42, 38400)
	b := budget.New(1000000, 38400, 961600, 1700000000000)

	r := NewReport(PeriodMonth, 1700000000, 1702600000, m, b)

	if r.Period() != PeriodMonth {
		t.Errorf("Period() = %q", r.Period())
	}
	if r.PeriodStart() != 1700000000 {
		t.Errorf("PeriodStart() = %d", r.PeriodStart())
	}
	if r.PeriodEnd() != 1702600000 {
		t.Errorf("PeriodEnd() = %d", r.PeriodEnd())
	}
	if r.Metrics().Requests() != 42 {
		t.Errorf("Metrics().Requests() = %d", r.Metrics().Requests())
	}
	if r.Budget().TokensLimit() != 1000000 {
		t.Errorf("Budget().TokensLimit() = %d", r.Budget().TokensLimit())
	}
}

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		in      string
		want    Period
		wantErr bool
	}{
		{"", PeriodDay, false},
		{"day", PeriodDay, false},
		{"month", PeriodMonth, false},
		{"total", "", true},
		{"DAY", "", true},
	}
	for _, tt := range tests {
		got, err := ParsePeriod(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePeriod(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePeriod(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
