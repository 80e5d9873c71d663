// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package gateway implements vectorstore.Store over the gateway's HTTP API.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/poiesic/ragline/core"
	"github.com/poiesic/ragline/vectorstore"
)

const (
	registerPath = "/v1/vector-dbs"
	insertPath   = "/v1/vector-io/insert"

	defaultTimeout = 30 * time.Second
)

// Config holds gateway connection configuration.
type Config struct {
	// BaseURL is the gateway endpoint, e.g. "http://localhost:8321".
	BaseURL string

	// Timeout for HTTP requests. Defaults to 30s.
	Timeout time.Duration
}

// Store implements vectorstore.Store against the gateway HTTP API.
type Store struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ vectorstore.Store = (*Store)(nil)

// NewStore creates a gateway-backed vector store client.
//
// Returns vectorstore.Store interface to enforce abstraction.
func NewStore(cfg Config) (vectorstore.Store, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: base URL is required", vectorstore.ErrInvalidConfig)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Store{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: slog.Default().With("component", "vector-gateway"),
	}, nil
}

// registerRequest is the wire form of a collection registration.
type registerRequest struct {
	VectorDBId         string `json:"vector_db_id"`
	EmbeddingModel     string `json:"embedding_model"`
	EmbeddingDimension int    `json:"embedding_dimension"`
	ProviderId         string `json:"provider_id"`
}

// insertRequest is the wire form of a chunk batch insertion.
type insertRequest struct {
	VectorDBId string      `json:"vector_db_id"`
	Chunks     []wireChunk `json:"chunks"`
}

type wireChunk struct {
	ChunkId   string    `json:"chunk_id"`
	Content   string    `json:"content"`
	Source    string    `json:"source"`
	Embedding []float32 `json:"embedding"`
}

// RegisterCollection creates the collection on the gateway.
// The gateway treats re-registration of an existing collection as a no-op.
func (s *Store) RegisterCollection(ctx context.Context, col vectorstore.Collection) error {
	req := registerRequest{
		VectorDBId:         col.Id,
		EmbeddingModel:     col.EmbeddingModel,
		EmbeddingDimension: col.EmbeddingDimension,
		ProviderId:         col.ProviderId,
	}

	if err := s.post(ctx, registerPath, req); err != nil {
		return fmt.Errorf("%w: %w", vectorstore.ErrRegistrationFailed, err)
	}

	s.logger.Info("collection registered", "collection", col.Id, "dimension", col.EmbeddingDimension)
	return nil
}

// Insert upserts chunks into the collection.
func (s *Store) Insert(ctx context.Context, collectionId string, chunks []core.Chunk) error {
	wire := make([]wireChunk, len(chunks))
	for i, chunk := range chunks {
		wire[i] = wireChunk{
			ChunkId:   strconv.FormatUint(uint64(chunk.Id), 16),
			Content:   chunk.Content,
			Source:    chunk.Source,
			Embedding: chunk.Vector,
		}
	}

	req := insertRequest{
		VectorDBId: collectionId,
		Chunks:     wire,
	}

	if err := s.post(ctx, insertPath, req); err != nil {
		return fmt.Errorf("%w: %w", vectorstore.ErrInsertionFailed, err)
	}

	s.logger.Info("chunks inserted", "collection", collectionId, "chunks", len(chunks))
	return nil
}

func (s *Store) Close() error {
	s.httpClient.CloseIdleConnections()
	return nil
}

// post sends a JSON body and fails on any non-2xx response.
func (s *Store) post(ctx context.Context, path string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Read a bounded amount of the body for the error message.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("gateway returned %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
