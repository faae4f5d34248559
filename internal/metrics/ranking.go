package metrics

import "github.com/prometheus/client_golang/prometheus"

// Ranking Prometheus metrics, labeled by the calling endpoint.
var (
	RankDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "medspace",
			Name:      "rank_duration_seconds",
			Help:      "Keyword ranking duration in seconds",
			Buckets:   []float64{0.00005, 0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.05},
		},
		[]string{"endpoint"},
	)

	RankCandidates = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "medspace",
			Name:      "rank_candidates",
			Help:      "Candidate pool size per ranking call",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		},
		[]string{"endpoint"},
	)

	RankMatches = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "medspace",
			Name:      "rank_matches",
			Help:      "Items with a positive score per ranking call",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100, 250},
		},
		[]string{"endpoint"},
	)
)

// Assistant Prometheus metrics.
var (
	AssistantRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "medspace",
			Name:      "assistant_requests_total",
			Help:      "Total number of assistant provider requests",
		},
		[]string{"operation", "model", "status"},
	)

	AssistantRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "medspace",
			Name:      "assistant_request_duration_seconds",
			Help:      "Assistant provider request duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 40},
		},
		[]string{"operation", "model"},
	)

	AssistantTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "medspace",
			Name:      "assistant_tokens_total",
			Help:      "Total chat tokens consumed",
		},
		[]string{"model", "type"},
	)

	AssistantBudgetTokensRemaining = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "medspace",
			Name:      "assistant_budget_tokens_remaining",
			Help:      "Remaining assistant token budget",
		},
		[]string{"period"},
	)
)

var domainMetricsRegistered bool

// RegisterDomainMetrics registers ranking and assistant metrics. Must be called once from main.
func RegisterDomainMetrics() {
	if domainMetricsRegistered {
		return
	}
	prometheus.MustRegister(RankDuration)
	prometheus.MustRegister(RankCandidates)
	prometheus.MustRegister(RankMatches)
	prometheus.MustRegister(AssistantRequestsTotal)
	prometheus.MustRegister(AssistantRequestDuration)
	prometheus.MustRegister(AssistantTokensTotal)
	prometheus.MustRegister(AssistantBudgetTokensRemaining)
	domainMetricsRegistered = true
}
