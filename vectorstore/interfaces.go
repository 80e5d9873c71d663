package vectorstore

import (
	"context"

	"github.com/poiesic/ragline/core"
)

// Collection identifies a vector collection and the embedding contract its
// vectors must satisfy. The collection is owned by the external vector
// database; this package only references it.
type Collection struct {
	// Id is the collection identifier, e.g. "my-documents".
	Id string

	// EmbeddingModel is the model whose vectors the collection stores.
	EmbeddingModel string

	// EmbeddingDimension is the declared vector width. Inserting vectors of
	// a different width is an invariant violation callers must prevent.
	EmbeddingDimension int

	// ProviderId names the storage provider backing the collection,
	// e.g. "pgvector".
	ProviderId string
}

// Store provides registration and insertion against a vector database.
// Insertion uses upsert semantics: chunks with known IDs are replaced, so
// re-inserting identical input does not duplicate data.
type Store interface {
	// RegisterCollection creates the collection if it does not already
	// exist. Registering an existing collection is not an error.
	RegisterCollection(ctx context.Context, col Collection) error

	// Insert upserts chunks (content plus embedding) into the collection.
	Insert(ctx context.Context, collectionId string, chunks []core.Chunk) error

	// Close releases resources held by the store client.
	Close() error
}
