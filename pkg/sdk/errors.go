package medspace

import (
	"errors"

	"github.com/kailas-cloud/medspace/internal/domain"
)

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound       = domain.ErrNotFound
	ErrInvalidQuery   = domain.ErrInvalidQuery
	ErrInvalidContent = domain.ErrInvalidContent
)

var errUnhealthy = errors.New("medspace: unhealthy")
