package processing

import "errors"

var (
	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrStoreRequired is returned when a vector store is not provided.
	ErrStoreRequired = errors.New("vector store required")

	// ErrCollectionRequired is returned when the target collection is not
	// fully specified.
	ErrCollectionRequired = errors.New("collection id and dimension required")

	// ErrEmptyDocument indicates a document yielded no extractable text.
	ErrEmptyDocument = errors.New("document contains no extractable text")
)
