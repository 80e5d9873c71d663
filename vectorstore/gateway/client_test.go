package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/poiesic/ragline/core"
	"github.com/poiesic/ragline/vectorstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore(t *testing.T) {
	t.Run("missing base URL fails", func(t *testing.T) {
		_, err := NewStore(Config{})
		assert.ErrorIs(t, err, vectorstore.ErrInvalidConfig)
	})

	t.Run("trailing slash is trimmed", func(t *testing.T) {
		store, err := NewStore(Config{BaseURL: "http://localhost:8321/"})
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8321", store.(*Store).baseURL)
	})
}

func TestRegisterCollection(t *testing.T) {
	var received registerRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, registerPath, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	store, err := NewStore(Config{BaseURL: srv.URL})
	require.NoError(t, err)
	defer store.Close()

	col := vectorstore.Collection{
		Id:                 "docs",
		EmbeddingModel:     "all-MiniLM-L6-v2",
		EmbeddingDimension: 384,
		ProviderId:         "pgvector",
	}
	require.NoError(t, store.RegisterCollection(context.Background(), col))

	assert.Equal(t, "docs", received.VectorDBId)
	assert.Equal(t, "all-MiniLM-L6-v2", received.EmbeddingModel)
	assert.Equal(t, 384, received.EmbeddingDimension)
	assert.Equal(t, "pgvector", received.ProviderId)
}

func TestRegisterCollectionFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "provider unavailable", http.StatusBadGateway)
	}))
	defer srv.Close()

	store, err := NewStore(Config{BaseURL: srv.URL})
	require.NoError(t, err)

	err = store.RegisterCollection(context.Background(), vectorstore.Collection{Id: "docs"})
	require.Error(t, err)
	assert.ErrorIs(t, err, vectorstore.ErrRegistrationFailed)
	assert.Contains(t, err.Error(), "502")
}

func TestInsert(t *testing.T) {
	var received insertRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, insertPath, r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	store, err := NewStore(Config{BaseURL: srv.URL})
	require.NoError(t, err)
	defer store.Close()

	chunks := []core.Chunk{
		{Id: core.ChunkID("a.pdf", 0, "first"), Content: "first", Source: "a.pdf", Index: 0, Vector: []float32{0.1, 0.2}},
		{Id: core.ChunkID("a.pdf", 1, "second"), Content: "second", Source: "a.pdf", Index: 1, Vector: []float32{0.3, 0.4}},
	}
	require.NoError(t, store.Insert(context.Background(), "docs", chunks))

	assert.Equal(t, "docs", received.VectorDBId)
	require.Len(t, received.Chunks, 2)
	assert.Equal(t, "first", received.Chunks[0].Content)
	assert.Equal(t, "a.pdf", received.Chunks[0].Source)
	assert.Equal(t, []float32{0.1, 0.2}, received.Chunks[0].Embedding)
	assert.NotEmpty(t, received.Chunks[0].ChunkId)
	assert.NotEqual(t, received.Chunks[0].ChunkId, received.Chunks[1].ChunkId)
}

func TestInsertIdempotentIDs(t *testing.T) {
	// Same logical chunks in two calls must carry the same chunk IDs,
	// which is what lets the gateway upsert instead of duplicating.
	var batches [][]wireChunk
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req insertRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		batches = append(batches, req.Chunks)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	store, err := NewStore(Config{BaseURL: srv.URL})
	require.NoError(t, err)

	chunks := []core.Chunk{
		{Id: core.ChunkID("a.pdf", 0, "same text"), Content: "same text", Source: "a.pdf"},
	}
	require.NoError(t, store.Insert(context.Background(), "docs", chunks))
	require.NoError(t, store.Insert(context.Background(), "docs", chunks))

	require.Len(t, batches, 2)
	assert.Equal(t, batches[0][0].ChunkId, batches[1][0].ChunkId)
}

func TestInsertFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad vectors", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	store, err := NewStore(Config{BaseURL: srv.URL})
	require.NoError(t, err)

	err = store.Insert(context.Background(), "docs", []core.Chunk{{Content: "x"}})
	assert.ErrorIs(t, err, vectorstore.ErrInsertionFailed)
}

func TestUnreachableGateway(t *testing.T) {
	store, err := NewStore(Config{BaseURL: "http://127.0.0.1:1"})
	require.NoError(t, err)

	err = store.RegisterCollection(context.Background(), vectorstore.Collection{Id: "docs"})
	assert.Error(t, err)
}
