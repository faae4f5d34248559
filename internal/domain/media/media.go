// Package media describes objects stored in the media bucket.
package media

import (
	"fmt"
	"path"
	"strings"
	"time"
)

// Kind classifies an object by its file extension.
type Kind string

// Object kinds.
const (
	KindVideo    Kind = "video"
	KindImage    Kind = "image"
	KindDocument Kind = "document"
	KindOther    Kind = "other"
)

// MaxKeyLength matches the S3 object key limit.
const MaxKeyLength = 1024

var extKinds = map[string]Kind{
	".mp4": KindVideo, ".mov": KindVideo, ".m4v": KindVideo, ".webm": KindVideo, ".mkv": KindVideo,
	".jpg": KindImage, ".jpeg": KindImage, ".png": KindImage, ".gif": KindImage, ".webp": KindImage, ".svg": KindImage,
	".pdf": KindDocument, ".doc": KindDocument, ".docx": KindDocument, ".ppt": KindDocument,
	".pptx": KindDocument, ".txt": KindDocument, ".md": KindDocument,
}

// KindOf infers the object kind from the key's extension (case-insensitive).
func KindOf(key string) Kind {
	if k, ok := extKinds[strings.ToLower(path.Ext(key))]; ok {
		return k
	}
	return KindOther
}

// Object is one listed bucket entry.
type Object struct {
	Key          string
	Size         int64
	LastModified time.Time
	Kind         Kind
}

// NewObject builds an Object, inferring its kind.
func NewObject(key string, size int64, modified time.Time) Object {
	return Object{Key: key, Size: size, LastModified: modified, Kind: KindOf(key)}
}

// IsDirectory reports whether the key is a folder placeholder.
func IsDirectory(key string) bool {
	return strings.HasSuffix(key, "/")
}

// SignedURL is a time-limited GET link to an object.
type SignedURL struct {
	URL       string
	Key       string
	ExpiresAt time.Time
}

// ValidateKey rejects keys that are empty, oversized, or contain path traversal.
func ValidateKey(key string) error {
	switch {
	case key == "":
		return fmt.Errorf("key is required")
	case len(key) > MaxKeyLength:
		return fmt.Errorf("key too long (max %d)", MaxKeyLength)
	case strings.Contains(key, ".."):
		return fmt.Errorf("key must not contain %q", "..")
	case IsDirectory(key):
		return fmt.Errorf("key %q is a directory", key)
	}
	return nil
}
