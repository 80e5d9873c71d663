package ragline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	aimock "github.com/poiesic/ragline/ai/mock"
	"github.com/poiesic/ragline/core"
	"github.com/poiesic/ragline/processing"
	"github.com/poiesic/ragline/provider"
	"github.com/poiesic/ragline/source"
	"github.com/poiesic/ragline/source/local"
	"github.com/poiesic/ragline/vectorstore"
	vsmock "github.com/poiesic/ragline/vectorstore/mock"
)

const testDim = 8

func testCollection() vectorstore.Collection {
	return vectorstore.Collection{
		Id:                 "runner-docs",
		EmbeddingModel:     "all-MiniLM-L6-v2",
		EmbeddingDimension: testDim,
		ProviderId:         "pgvector",
	}
}

// sourceDir creates a directory of text documents and a source over it.
func sourceDir(t *testing.T, files map[string]string) source.Source {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}

	src, err := local.NewSource(dir)
	require.NoError(t, err)
	return src
}

func TestNewRunnerGuards(t *testing.T) {
	src := sourceDir(t, nil)
	embedder := aimock.NewEmbedder(testDim)
	store := vsmock.NewStore()

	_, err := NewRunner(nil, embedder, store, testCollection())
	assert.ErrorIs(t, err, provider.ErrSourceRequired)

	_, err = NewRunner(src, nil, store, testCollection())
	assert.ErrorIs(t, err, processing.ErrEmbedderRequired)

	_, err = NewRunner(src, embedder, nil, testCollection())
	assert.ErrorIs(t, err, processing.ErrStoreRequired)
}

func TestRunEndToEnd(t *testing.T) {
	src := sourceDir(t, map[string]string{
		"one.txt": "the first document in the bundle",
		"two.txt": "the second document in the bundle",
	})
	store := vsmock.NewStore()

	runner, err := NewRunner(src, aimock.NewEmbedder(testDim), store, testCollection(),
		WithProviderOptions(provider.WithExtensions([]string{".txt"})))
	require.NoError(t, err)

	report, err := runner.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, report.DocumentCount)
	assert.Len(t, report.ProcessedDocuments, 2)
	assert.Empty(t, report.FailedDocuments)
	assert.Equal(t, core.StatusSuccess, report.VectorDBRegistration)
	assert.Equal(t, core.StatusSuccess, report.VectorDBInsertion)

	require.Len(t, store.Registered, 1)
	assert.Equal(t, "runner-docs", store.Registered[0].Id)
	assert.Len(t, store.Inserted, report.TotalChunks)
}

func TestRunCleansStagingByDefault(t *testing.T) {
	src := sourceDir(t, map[string]string{
		"doc.txt": "ephemeral staging content",
	})
	staging := filepath.Join(t.TempDir(), "staging")

	runner, err := NewRunner(src, aimock.NewEmbedder(testDim), vsmock.NewStore(), testCollection(),
		WithStagingDir(staging),
		WithProviderOptions(provider.WithExtensions([]string{".txt"})))
	require.NoError(t, err)

	_, err = runner.Run(context.Background())
	require.NoError(t, err)

	_, err = os.Stat(staging)
	assert.True(t, os.IsNotExist(err), "staging dir should be removed")
}

func TestRunKeepArtifacts(t *testing.T) {
	src := sourceDir(t, map[string]string{
		"keep.txt": "retained staging content",
	})
	staging := filepath.Join(t.TempDir(), "staging")

	runner, err := NewRunner(src, aimock.NewEmbedder(testDim), vsmock.NewStore(), testCollection(),
		WithStagingDir(staging),
		WithKeepArtifacts(),
		WithProviderOptions(provider.WithExtensions([]string{".txt"})))
	require.NoError(t, err)

	report, err := runner.Run(context.Background())
	require.NoError(t, err)

	manifest, err := core.ReadManifest(filepath.Join(staging, ManifestFileName))
	require.NoError(t, err)
	assert.Equal(t, 1, manifest.Metadata.FileCount)
	assert.Equal(t, "local", manifest.Metadata.Endpoint)

	downloaded, err := os.ReadFile(filepath.Join(staging, "downloads", "keep.txt"))
	require.NoError(t, err)
	assert.Equal(t, "retained staging content", string(downloaded))

	metricsData, err := os.ReadFile(filepath.Join(staging, MetricsFileName))
	require.NoError(t, err)
	assert.Contains(t, string(metricsData), `"total_chunks"`)
	assert.Contains(t, string(metricsData), `"vector_db_insertion": "success"`)
	assert.Equal(t, core.StatusSuccess, report.VectorDBInsertion)
}

func TestRunEmptySourceFails(t *testing.T) {
	src := sourceDir(t, nil)

	runner, err := NewRunner(src, aimock.NewEmbedder(testDim), vsmock.NewStore(), testCollection(),
		WithProviderOptions(provider.WithExtensions([]string{".txt"})))
	require.NoError(t, err)

	_, err = runner.Run(context.Background())
	assert.ErrorIs(t, err, core.ErrNoDocuments)
}

func TestRunFilteredByDefaultExtensions(t *testing.T) {
	// Default extension set accepts only PDFs; text files are ignored.
	src := sourceDir(t, map[string]string{
		"notes.txt": "not a pdf",
	})

	runner, err := NewRunner(src, aimock.NewEmbedder(testDim), vsmock.NewStore(), testCollection())
	require.NoError(t, err)

	_, err = runner.Run(context.Background())
	assert.ErrorIs(t, err, core.ErrNoDocuments)
}
