package processing

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tmc/langchaingo/textsplitter"
)

const (
	// DefaultChunkSize is the default chunk size in characters.
	DefaultChunkSize = 512

	// DefaultChunkOverlap is the default overlap between adjacent chunks.
	DefaultChunkOverlap = 64
)

// Chunker splits extracted document text into chunks using a hybrid
// strategy: markdown documents are split along their structure, everything
// else falls back to recursive character splitting. Chunk size and overlap
// are configuration, applied to both strategies.
type Chunker struct {
	chunkSize    int
	chunkOverlap int
}

// NewChunker creates a chunker with the given size/overlap policy.
// Non-positive values fall back to the defaults.
func NewChunker(chunkSize, chunkOverlap int) *Chunker {
	if chunkSize < 1 {
		chunkSize = DefaultChunkSize
	}
	if chunkOverlap < 0 {
		chunkOverlap = DefaultChunkOverlap
	}
	return &Chunker{
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
	}
}

// Split chunks the text of the document at path. The path picks the
// splitting strategy; blank chunks are dropped.
func (c *Chunker) Split(path, text string) ([]string, error) {
	var (
		chunks []string
		err    error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		splitter := textsplitter.NewMarkdownTextSplitter(
			textsplitter.WithChunkSize(c.chunkSize),
			textsplitter.WithChunkOverlap(c.chunkOverlap),
		)
		chunks, err = splitter.SplitText(text)
	default:
		splitter := textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(c.chunkSize),
			textsplitter.WithChunkOverlap(c.chunkOverlap),
		)
		chunks, err = splitter.SplitText(text)
	}
	if err != nil {
		return nil, fmt.Errorf("splitting %s: %w", filepath.Base(path), err)
	}

	kept := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		if strings.TrimSpace(chunk) != "" {
			kept = append(kept, chunk)
		}
	}

	return kept, nil
}
