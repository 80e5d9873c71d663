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


package ragline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/poiesic/ragline/ai"
	"github.com/poiesic/ragline/core"
	"github.com/poiesic/ragline/processing"
	"github.com/poiesic/ragline/provider"
	"github.com/poiesic/ragline/source"
	"github.com/poiesic/ragline/vectorstore"
)

const (
	// ManifestFileName is the manifest artifact written into the staging dir.
	ManifestFileName = "manifest.json"

	// MetricsFileName is the metrics artifact written into the staging dir.
	MetricsFileName = "metrics.json"
)

// Runner composes the document provider and the document processor into one
// in-process ingestion run. Documents are staged into a working directory,
// processed, and the directory is removed afterwards unless artifact
// retention is requested.
type Runner struct {
	src        source.Source
	embedder   ai.Embedder
	store      vectorstore.Store
	collection vectorstore.Collection

	stagingDir    string
	keepArtifacts bool
	providerOpts  []provider.Option
	processorOpts []processing.Option
	logger        *slog.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithStagingDir sets the staging directory for downloads and artifacts.
// When unset, a fresh temporary directory is created per run.
func WithStagingDir(dir string) RunnerOption {
	return func(r *Runner) {
		r.stagingDir = dir
	}
}

// WithKeepArtifacts disables staging-directory cleanup after the run, leaving
// the downloaded documents, manifest and metrics report on disk.
func WithKeepArtifacts() RunnerOption {
	return func(r *Runner) {
		r.keepArtifacts = true
	}
}

// WithProviderOptions forwards options to the document provider.
func WithProviderOptions(opts ...provider.Option) RunnerOption {
	return func(r *Runner) {
		r.providerOpts = append(r.providerOpts, opts...)
	}
}

// WithProcessorOptions forwards options to the document processor.
func WithProcessorOptions(opts ...processing.Option) RunnerOption {
	return func(r *Runner) {
		r.processorOpts = append(r.processorOpts, opts...)
	}
}

// WithLogger sets the logger for the runner.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRunner creates a pipeline runner over the given source, embedder and
// vector store, targeting the given collection.
func NewRunner(src source.Source, embedder ai.Embedder, store vectorstore.Store, collection vectorstore.Collection, opts ...RunnerOption) (*Runner, error) {
	if src == nil {
		return nil, provider.ErrSourceRequired
	}
	if embedder == nil {
		return nil, processing.ErrEmbedderRequired
	}
	if store == nil {
		return nil, processing.ErrStoreRequired
	}

	r := &Runner{
		src:        src,
		embedder:   embedder,
		store:      store,
		collection: collection,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}

	return r, nil
}

// Run executes the full pipeline: stage documents, write the manifest,
// process, write the metrics report. Returns the metrics report of the
// processing stage.
//
// When no staging directory was configured, a temporary one is created and
// removed before Run returns unless WithKeepArtifacts was set. A configured
// staging directory is subject to the same cleanup policy.
func (r *Runner) Run(ctx context.Context) (*core.MetricsReport, error) {
	staging := r.stagingDir
	if staging == "" {
		dir, err := os.MkdirTemp("", "ragline-")
		if err != nil {
			return nil, fmt.Errorf("creating staging dir: %w", err)
		}
		staging = dir
	} else if err := os.MkdirAll(staging, 0755); err != nil {
		return nil, fmt.Errorf("creating staging dir: %w", err)
	}

	if !r.keepArtifacts {
		defer func() {
			if err := os.RemoveAll(staging); err != nil {
				r.logger.Warn("staging cleanup failed", "dir", staging, "err", err)
			}
		}()
	}

	r.logger.Info("pipeline starting", "staging", staging, "collection", r.collection.Id)

	prov, err := provider.New(r.src, r.providerOpts...)
	if err != nil {
		return nil, err
	}

	manifest, err := prov.Run(ctx, filepath.Join(staging, "downloads"))
	if err != nil {
		return nil, fmt.Errorf("providing documents: %w", err)
	}

	manifestPath := filepath.Join(staging, ManifestFileName)
	if err := core.WriteManifest(manifest, manifestPath); err != nil {
		return nil, err
	}
	r.logger.Info("manifest written", "path", manifestPath, "documents", manifest.Metadata.FileCount)

	proc, err := processing.NewProcessor(r.embedder, r.store, r.collection, r.processorOpts...)
	if err != nil {
		return nil, err
	}

	report, err := proc.Run(ctx, manifest)
	if err != nil {
		return nil, fmt.Errorf("processing documents: %w", err)
	}

	metricsPath := filepath.Join(staging, MetricsFileName)
	if err := core.WriteMetrics(report, metricsPath); err != nil {
		return nil, err
	}

	r.logger.Info("pipeline finished",
		"processed", len(report.ProcessedDocuments),
		"failed", len(report.FailedDocuments),
		"chunks", report.TotalChunks)

	return report, nil
}
