// Package content holds the content item aggregate ranked by the search and assistant endpoints.
package content

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind is the closed content type tag.
type Kind string

// Content kind constants.
const (
	Video     Kind = "video"
	Document  Kind = "document"
	Guideline Kind = "guideline"
	Image     Kind = "image"
)

// IsValid checks if the kind is one of the supported values.
func (k Kind) IsValid() bool {
	return k == Video || k == Document || k == Guideline || k == Image
}

// SpecialtyUnknown is the sentinel for items without a specialty.
const SpecialtyUnknown = "unknown"

// Field limits.
const (
	MaxIDLength          = 256
	MaxTitleLength       = 512
	MaxSpecialtyLength   = 128
	MaxDescriptionLength = 8192
)

var idRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Item is a single piece of catalog content (immutable value object).
type Item struct {
	id          string
	title       string
	kind        Kind
	specialty   string
	description string
	mediaKey    string
}

// New validates and creates an Item.
// ID: ^[a-zA-Z0-9_-]+$, 1-256 chars. Title: non-blank, max 512. Kind must be valid.
func New(id, title string, kind Kind, specialty string) (Item, error) {
	if id == "" {
		return Item{}, fmt.Errorf("content ID is required")
	}
	if len(id) > MaxIDLength {
		return Item{}, fmt.Errorf("content ID too long (max %d)", MaxIDLength)
	}
	if !idRegex.MatchString(id) {
		return Item{}, fmt.Errorf("content ID must be alphanumeric with underscores and hyphens")
	}
	if strings.TrimSpace(title) == "" {
		return Item{}, fmt.Errorf("title is required")
	}
	if len(title) > MaxTitleLength {
		return Item{}, fmt.Errorf("title too long (max %d)", MaxTitleLength)
	}
	if !kind.IsValid() {
		return Item{}, fmt.Errorf("invalid content type %q", kind)
	}
	if len(specialty) > MaxSpecialtyLength {
		return Item{}, fmt.Errorf("specialty too long (max %d)", MaxSpecialtyLength)
	}
	return Item{id: id, title: title, kind: kind, specialty: specialty}, nil
}

// Reconstruct creates an Item without validation (storage hydration).
func Reconstruct(id, title string, kind Kind, specialty, description, mediaKey string) Item {
	return Item{
		id: id, title: title, kind: kind, specialty: specialty,
		description: description, mediaKey: mediaKey,
	}
}

// WithDescription returns a copy with the description set.
func (i Item) WithDescription(d string) (Item, error) {
	if len(d) > MaxDescriptionLength {
		return Item{}, fmt.Errorf("description too long (max %d)", MaxDescriptionLength)
	}
	i.description = d
	return i, nil
}

// WithMediaKey returns a copy pointing at an object in the media bucket.
func (i Item) WithMediaKey(key string) Item {
	i.mediaKey = key
	return i
}

// ID returns the item identifier.
func (i Item) ID() string { return i.id }

// Title returns the display title.
func (i Item) Title() string { return i.title }

// Kind returns the content type tag.
func (i Item) Kind() Kind { return i.kind }

// Specialty returns the raw specialty tag (may be empty or "unknown").
func (i Item) Specialty() string { return i.specialty }

// Description returns the free-text description.
func (i Item) Description() string { return i.description }

// MediaKey returns the object key in the media bucket, if any.
func (i Item) MediaKey() string { return i.mediaKey }

// HasSpecialty reports whether the specialty tag carries information.
func (i Item) HasSpecialty() bool {
	return i.specialty != "" && i.specialty != SpecialtyUnknown
}
