package medspace

import (
	"context"
	"time"

	healthuc "github.com/kailas-cloud/medspace/internal/usecase/health"
)

// HealthStatus is the aggregated catalog store health.
type HealthStatus struct {
	Status string            // "ok" or "error"
	Checks map[string]string // component -> "ok"/"error"
}

// OK reports whether every check passed.
func (h HealthStatus) OK() bool { return h.Status == string(healthuc.Healthy) }

// Health checks the catalog database.
func (c *Client) Health(ctx context.Context) HealthStatus {
	start := time.Now()
	report := c.healthSvc.Check(ctx)

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	status := HealthStatus{Status: string(report.Status), Checks: checks}

	var err error
	if !status.OK() {
		err = errUnhealthy
	}
	c.obs.observe("health", start, err)
	return status
}

// healthUseCase is the internal interface for health checks.
type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}
