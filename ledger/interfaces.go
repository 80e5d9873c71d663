package ledger

import (
	"context"
	"time"
)

// Entry records one successfully ingested document.
type Entry struct {
	Key         string    // Source object key or file name
	ContentHash uint64    // BLAKE2b-64 of the document bytes
	ChunkCount  int       // Chunks produced when the document was ingested
	ProcessedAt time.Time // When the document was last ingested
}

// Ledger provides lookup and recording of ingested documents.
// Implementations must be safe for concurrent use.
type Ledger interface {
	// Get returns the entry for key.
	// Returns ErrNotFound if the key has never been recorded.
	Get(ctx context.Context, key string) (*Entry, error)

	// Put records or replaces the entry for entry.Key.
	Put(ctx context.Context, entry *Entry) error

	// Close releases resources held by the ledger.
	Close() error
}
