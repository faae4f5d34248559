package health

import "context"

// Pinger checks availability of the database or the media bucket.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ProviderChecker checks assistant provider availability.
type ProviderChecker interface {
	HealthCheck(ctx context.Context) error
}
