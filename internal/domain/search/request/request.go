package request

import (
	"fmt"
	"strings"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length in bytes.
	MaxQueryLength = 4096
	DefaultLimit   = 10
	MaxLimit       = 100
)

// Request is a validated ranking query.
type Request struct {
	query string
	limit int
}

// New validates and normalizes search parameters.
// The query is trimmed and must be non-empty. limit<=0 means DefaultLimit; limit is clamped to MaxLimit.
func New(query string, limit int) (Request, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Request{}, fmt.Errorf("query is required")
	}
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("query too long (max %d chars)", MaxQueryLength)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Request{query: query, limit: limit}, nil
}

// Query returns the trimmed query text.
func (r Request) Query() string { return r.query }

// Limit returns the number of top results exposed to the client.
func (r Request) Limit() int { return r.limit }
