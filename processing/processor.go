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


package processing

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/poiesic/ragline/ai"
	"github.com/poiesic/ragline/core"
	"github.com/poiesic/ragline/ledger"
	"github.com/poiesic/ragline/vectorstore"
)

// Processor turns a manifest of staged documents into embedded chunks in a
// vector collection. Per-document failures are recorded in the metrics
// report and do not stop the run; only setup failures are fatal.
type Processor struct {
	embedder   ai.Embedder
	store      vectorstore.Store
	collection vectorstore.Collection
	loader     *Loader
	chunker    *Chunker
	ledger     ledger.Ledger
	logger     *slog.Logger
}

// Option configures a Processor.
type Option func(*Processor)

// WithChunking sets the chunk size and overlap used when splitting text.
func WithChunking(chunkSize, chunkOverlap int) Option {
	return func(p *Processor) {
		p.chunker = NewChunker(chunkSize, chunkOverlap)
	}
}

// WithLedger enables skip-unchanged processing: documents whose content hash
// matches their ledger entry are counted as processed without re-embedding.
func WithLedger(l ledger.Ledger) Option {
	return func(p *Processor) {
		p.ledger = l
	}
}

// WithLogger sets the logger for the processor.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) {
		p.logger = logger
	}
}

// NewProcessor creates a processor targeting the given collection.
// The embedder and store are required; the collection must carry an id and
// a positive embedding dimension.
func NewProcessor(embedder ai.Embedder, store vectorstore.Store, collection vectorstore.Collection, opts ...Option) (*Processor, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if store == nil {
		return nil, ErrStoreRequired
	}
	if collection.Id == "" || collection.EmbeddingDimension < 1 {
		return nil, ErrCollectionRequired
	}

	p := &Processor{
		embedder:   embedder,
		store:      store,
		collection: collection,
		loader:     NewLoader(),
		chunker:    NewChunker(DefaultChunkSize, DefaultChunkOverlap),
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

// Run processes every document in the manifest and returns the metrics
// report for the run.
//
// The embedder is probed once before anything is written: if the probe
// vector's width differs from the collection's declared dimension, Run
// fails with core.ErrDimensionMismatch and the vector store is never
// touched. Collection registration failure is recorded in the report but
// does not abort the run.
func (p *Processor) Run(ctx context.Context, manifest *core.Manifest) (*core.MetricsReport, error) {
	if manifest == nil || len(manifest.DocumentPaths) == 0 {
		return nil, core.ErrNoDocuments
	}

	if err := p.probeDimension(ctx); err != nil {
		return nil, err
	}

	report := core.NewMetricsReport(len(manifest.DocumentPaths))

	if err := p.store.RegisterCollection(ctx, p.collection); err != nil {
		p.logger.Error("collection registration failed",
			"collection", p.collection.Id, "error", err)
		report.VectorDBRegistration = core.StatusFailure
	} else {
		report.VectorDBRegistration = core.StatusSuccess
	}

	var (
		allChunks []core.Chunk
		pending   []*ledger.Entry
	)

	for _, path := range manifest.DocumentPaths {
		key := manifest.KeyFor(path)
		if key == "" {
			key = filepath.Base(path)
		}

		chunks, hash, skippedCount, err := p.processDocument(ctx, path, key)
		if err != nil {
			p.logger.Warn("document failed", "file", path, "error", err)
			report.AddFailed(path, err)
			continue
		}

		if chunks == nil {
			// Unchanged since the last run; the ledger has its chunk count.
			p.logger.Debug("document unchanged, skipping", "file", path)
			report.AddProcessed(path, skippedCount)
			continue
		}

		allChunks = append(allChunks, chunks...)
		pending = append(pending, &ledger.Entry{
			Key:         key,
			ContentHash: hash,
			ChunkCount:  len(chunks),
		})
		report.AddProcessed(path, len(chunks))
		p.logger.Info("document processed", "file", path, "chunks", len(chunks))
	}

	report.VectorDBInsertion = core.StatusSuccess
	if len(allChunks) > 0 {
		if err := p.store.Insert(ctx, p.collection.Id, allChunks); err != nil {
			p.logger.Error("chunk insertion failed",
				"collection", p.collection.Id, "chunks", len(allChunks), "error", err)
			report.VectorDBInsertion = core.StatusFailure
		}
	}

	if p.ledger != nil && report.VectorDBInsertion == core.StatusSuccess {
		for _, entry := range pending {
			if err := p.ledger.Put(ctx, entry); err != nil {
				p.logger.Warn("ledger update failed", "key", entry.Key, "error", err)
			}
		}
	}

	return report, nil
}

// probeDimension embeds a short probe text and verifies the vector width
// against the collection's declared dimension.
func (p *Processor) probeDimension(ctx context.Context) error {
	vector, err := p.embedder.EmbedText(ctx, "dimension probe")
	if err != nil {
		return fmt.Errorf("probing embedder: %w", err)
	}
	if len(vector) != p.collection.EmbeddingDimension {
		return fmt.Errorf("%w: embedder produced %d, collection declares %d",
			core.ErrDimensionMismatch, len(vector), p.collection.EmbeddingDimension)
	}
	return nil
}

// processDocument loads, chunks and embeds one document. On success it also
// returns the document's content hash for the ledger.
//
// When the ledger shows the document is unchanged since its last successful
// ingestion, it returns nil chunks and the recorded chunk count instead.
func (p *Processor) processDocument(ctx context.Context, path, key string) ([]core.Chunk, uint64, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("reading document: %w", err)
	}
	hash := core.HashContent(data)

	if p.ledger != nil {
		entry, err := p.ledger.Get(ctx, key)
		if err == nil && entry.ContentHash == hash {
			return nil, 0, entry.ChunkCount, nil
		}
	}

	text, err := p.loader.Load(ctx, path, data)
	if err != nil {
		return nil, 0, 0, err
	}
	if text == "" {
		return nil, 0, 0, ErrEmptyDocument
	}

	texts, err := p.chunker.Split(path, text)
	if err != nil {
		return nil, 0, 0, err
	}
	if len(texts) == 0 {
		return nil, 0, 0, ErrEmptyDocument
	}

	vectors, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("embedding chunks: %w", err)
	}
	if len(vectors) != len(texts) {
		return nil, 0, 0, fmt.Errorf("embedder returned %d vectors for %d chunks", len(vectors), len(texts))
	}

	chunks := make([]core.Chunk, len(texts))
	for i, content := range texts {
		chunks[i] = core.Chunk{
			Id:      core.ChunkID(key, i, content),
			Content: content,
			Source:  key,
			Index:   i,
			Vector:  vectors[i],
		}
	}

	return chunks, hash, 0, nil
}
