package processing

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tmc/langchaingo/documentloaders"
	"github.com/tmc/langchaingo/schema"
)

// Loader extracts text from staged documents, dispatching on file extension.
//
// Supported formats: PDF, HTML, CSV; anything else is read as plain text.
// Parse failures (e.g. a corrupt PDF) surface as per-document errors.
type Loader struct{}

// NewLoader creates a document loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses the document bytes and returns the extracted text.
// The path is only used to pick the format; data is the file's contents.
func (l *Loader) Load(ctx context.Context, path string, data []byte) (string, error) {
	var (
		docs []schema.Document
		err  error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		docs, err = documentloaders.NewPDF(bytes.NewReader(data), int64(len(data))).Load(ctx)
	case ".html", ".htm":
		docs, err = documentloaders.NewHTML(bytes.NewReader(data)).Load(ctx)
	case ".csv":
		docs, err = documentloaders.NewCSV(bytes.NewReader(data)).Load(ctx)
	default:
		docs, err = documentloaders.NewText(bytes.NewReader(data)).Load(ctx)
	}
	if err != nil {
		return "", fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}

	parts := make([]string, 0, len(docs))
	for _, doc := range docs {
		if doc.PageContent != "" {
			parts = append(parts, doc.PageContent)
		}
	}

	return strings.Join(parts, "\n\n"), nil
}
