package source

import (
	"context"
	"time"
)

// DocumentInfo describes a candidate document as reported by its source.
type DocumentInfo struct {
	Key          string    // Object key or file name
	Size         int64     // Size in bytes
	LastModified time.Time // Modification time as reported by the source
}

// Origin identifies where a source's documents live. It is recorded in the
// manifest so a processor can tell which bucket/endpoint a run came from.
type Origin struct {
	Bucket   string // Bucket name, or directory path for local sources
	Endpoint string // Endpoint URL, or "local" for local sources
}

// Source provides listing and retrieval of documents from a storage backend.
type Source interface {
	// List returns documents whose keys start with prefix, in backend order.
	// An empty prefix matches everything. Callers must not assume the result
	// is sorted.
	List(ctx context.Context, prefix string) ([]DocumentInfo, error)

	// Fetch downloads the document identified by key to destPath,
	// overwriting any existing file.
	Fetch(ctx context.Context, key, destPath string) error

	// Origin identifies the backend for manifest metadata.
	Origin() Origin

	// Close releases resources held by the source.
	Close() error
}
