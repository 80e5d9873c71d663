package vectorstore

import "errors"

var (
	// ErrInvalidConfig indicates incomplete store configuration.
	ErrInvalidConfig = errors.New("invalid vector store configuration")

	// ErrRegistrationFailed indicates the collection could not be registered.
	ErrRegistrationFailed = errors.New("collection registration failed")

	// ErrInsertionFailed indicates chunks could not be inserted.
	ErrInsertionFailed = errors.New("chunk insertion failed")
)
