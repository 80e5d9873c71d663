package processing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitShortText(t *testing.T) {
	chunker := NewChunker(512, 64)

	chunks, err := chunker.Split("note.txt", "a short document")
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "a short document", chunks[0])
}

func TestSplitLongText(t *testing.T) {
	chunker := NewChunker(64, 8)

	var b strings.Builder
	for i := 0; i < 40; i++ {
		b.WriteString("the quick brown fox jumps over the lazy dog. ")
	}

	chunks, err := chunker.Split("long.txt", b.String())
	require.NoError(t, err)
	assert.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.NotEmpty(t, strings.TrimSpace(chunk))
	}
}

func TestSplitMarkdownUsesStructure(t *testing.T) {
	chunker := NewChunker(64, 0)

	text := "# First Section\n\nContent of the first section goes here.\n\n" +
		"# Second Section\n\nContent of the second section goes here."

	chunks, err := chunker.Split("readme.md", text)
	require.NoError(t, err)
	assert.Greater(t, len(chunks), 1)

	joined := strings.Join(chunks, "\n")
	assert.Contains(t, joined, "First Section")
	assert.Contains(t, joined, "Second Section")
}

func TestSplitEmptyText(t *testing.T) {
	chunker := NewChunker(512, 64)

	chunks, err := chunker.Split("empty.txt", "")
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestNewChunkerDefaults(t *testing.T) {
	chunker := NewChunker(0, -1)
	assert.Equal(t, DefaultChunkSize, chunker.chunkSize)
	assert.Equal(t, DefaultChunkOverlap, chunker.chunkOverlap)
}
