package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrInvalidQuery signals an empty or oversized search query.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrInvalidContent signals a content item that fails validation (e.g. missing title).
	ErrInvalidContent = errors.New("invalid content")

	// ErrAssistantQuotaExceeded signals an exhausted assistant token budget.
	ErrAssistantQuotaExceeded = errors.New("assistant quota exceeded")
	// ErrAssistantProviderError signals a chat or speech provider failure.
	ErrAssistantProviderError = errors.New("assistant provider error")

	// ErrMediaDisabled signals that no media bucket is configured.
	ErrMediaDisabled = errors.New("media storage not configured")
	// ErrInvalidMediaKey signals an empty or unsafe object key.
	ErrInvalidMediaKey = errors.New("invalid media key")
)

// ContentValidationError wraps ErrInvalidContent with the offending item.
type ContentValidationError struct {
	ID     string
	Index  int
	Reason string
}

func (e *ContentValidationError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s: item #%d: %s", ErrInvalidContent.Error(), e.Index, e.Reason)
	}
	return fmt.Sprintf("%s: item %q: %s", ErrInvalidContent.Error(), e.ID, e.Reason)
}

func (e *ContentValidationError) Unwrap() error { return ErrInvalidContent }

// NewContentValidation creates a content validation error.
func NewContentValidation(id string, index int, reason string) error {
	return &ContentValidationError{ID: id, Index: index, Reason: reason}
}
