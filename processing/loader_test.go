package processing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPlainText(t *testing.T) {
	loader := NewLoader()

	text, err := loader.Load(context.Background(), "notes.txt", []byte("hello from a text file"))
	require.NoError(t, err)
	assert.Equal(t, "hello from a text file", text)
}

func TestLoadUnknownExtensionFallsBackToText(t *testing.T) {
	loader := NewLoader()

	text, err := loader.Load(context.Background(), "data.log", []byte("line one\nline two"))
	require.NoError(t, err)
	assert.Contains(t, text, "line one")
	assert.Contains(t, text, "line two")
}

func TestLoadHTMLStripsMarkup(t *testing.T) {
	loader := NewLoader()

	html := []byte("<html><body><h1>Title</h1><p>Body paragraph.</p></body></html>")
	text, err := loader.Load(context.Background(), "page.html", html)
	require.NoError(t, err)
	assert.Contains(t, text, "Title")
	assert.Contains(t, text, "Body paragraph.")
	assert.NotContains(t, text, "<h1>")
}

func TestLoadCSV(t *testing.T) {
	loader := NewLoader()

	csv := []byte("name,city\nalice,berlin\nbob,lisbon\n")
	text, err := loader.Load(context.Background(), "people.csv", csv)
	require.NoError(t, err)
	assert.Contains(t, text, "alice")
	assert.Contains(t, text, "lisbon")
}

func TestLoadCorruptPDF(t *testing.T) {
	loader := NewLoader()

	_, err := loader.Load(context.Background(), "broken.pdf", []byte("this is not a pdf"))
	assert.Error(t, err)
	assert.ErrorContains(t, err, "broken.pdf")
}
