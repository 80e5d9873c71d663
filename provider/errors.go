package provider

import "errors"

var (
	// ErrSourceRequired is returned when a document source is not provided.
	ErrSourceRequired = errors.New("document source required")

	// ErrDownloadDirRequired is returned when no download directory is given.
	ErrDownloadDirRequired = errors.New("download directory required")
)
