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


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/ragline"
	"github.com/poiesic/ragline/ai"
	"github.com/poiesic/ragline/ai/openai"
	"github.com/poiesic/ragline/core"
	"github.com/poiesic/ragline/ledger"
	badgerledger "github.com/poiesic/ragline/ledger/badger"
	"github.com/poiesic/ragline/processing"
	"github.com/poiesic/ragline/provider"
	"github.com/poiesic/ragline/source"
	"github.com/poiesic/ragline/source/local"
	"github.com/poiesic/ragline/source/s3"
	"github.com/poiesic/ragline/vectorstore"
	"github.com/poiesic/ragline/vectorstore/gateway"
)

func main() {
	app := &cli.App{
		Name:  "ragline",
		Usage: "Document ingestion pipeline for vector databases",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "provide",
				Usage:  "Download documents from object storage and write a manifest",
				Action: provideCommand,
				Flags: append(s3Flags(),
					&cli.StringFlag{
						Name:  "prefix",
						Usage: "Only list objects whose keys start with this prefix",
					},
					&cli.StringFlag{
						Name:  "extensions",
						Usage: "Comma-separated accepted file extensions",
						Value: ".pdf",
					},
					&cli.IntFlag{
						Name:  "max-files",
						Usage: "Maximum number of documents to download",
						Value: 100,
					},
					&cli.StringFlag{
						Name:     "download-dir",
						Usage:    "Directory to stage downloaded documents in",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Path to write the manifest to",
						Value:   "manifest.json",
					},
				),
			},
			{
				Name:   "process",
				Usage:  "Embed manifest documents and insert them into the vector store",
				Action: processCommand,
				Flags: append(processingFlags(),
					&cli.StringFlag{
						Name:     "input",
						Aliases:  []string{"i"},
						Usage:    "Manifest file, or a single document to process directly",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "metrics",
						Usage: "Path to write the metrics report to",
						Value: "metrics.json",
					},
				),
			},
			{
				Name:   "run",
				Usage:  "Run the full pipeline: download, embed, insert",
				Action: runCommand,
				Flags: append(append(s3Flags(), processingFlags()...),
					&cli.StringFlag{
						Name:  "local-files-dir",
						Usage: "Read documents from this directory instead of object storage",
					},
					&cli.StringFlag{
						Name:  "prefix",
						Usage: "Only list objects whose keys start with this prefix",
					},
					&cli.StringFlag{
						Name:  "extensions",
						Usage: "Comma-separated accepted file extensions",
						Value: ".pdf",
					},
					&cli.IntFlag{
						Name:  "max-files",
						Usage: "Maximum number of documents to download",
						Value: 100,
					},
					&cli.StringFlag{
						Name:  "staging-dir",
						Usage: "Staging directory (defaults to a fresh temporary directory)",
					},
					&cli.BoolFlag{
						Name:  "no-cleanup",
						Usage: "Keep the staging directory and its artifacts after the run",
					},
				),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// s3Flags are the object storage connection flags shared by provide and run.
func s3Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "endpoint",
			Usage: "S3-compatible endpoint URL",
			Value: "http://localhost:9000",
		},
		&cli.StringFlag{
			Name:  "access-key",
			Usage: "Object storage access key",
		},
		&cli.StringFlag{
			Name:  "secret-key",
			Usage: "Object storage secret key",
		},
		&cli.StringFlag{
			Name:  "bucket",
			Usage: "Bucket to read documents from",
		},
		&cli.StringFlag{
			Name:  "region",
			Usage: "Object storage region",
		},
	}
}

// processingFlags are the embedding and vector store flags shared by process
// and run.
func processingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "vector-store-url",
			Usage: "Vector store gateway URL",
			Value: "http://localhost:8321",
		},
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "all-MiniLM-L6-v2",
		},
		&cli.IntFlag{
			Name:  "embedding-dimension",
			Usage: "Embedding vector dimension",
			Value: 384,
		},
		&cli.StringFlag{
			Name:     "vector-db-id",
			Usage:    "Vector collection identifier",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "provider-id",
			Usage: "Vector storage provider backing the collection",
			Value: "pgvector",
		},
		&cli.IntFlag{
			Name:  "chunk-size",
			Usage: "Chunk size in characters",
			Value: processing.DefaultChunkSize,
		},
		&cli.IntFlag{
			Name:  "chunk-overlap",
			Usage: "Overlap between adjacent chunks in characters",
			Value: processing.DefaultChunkOverlap,
		},
		&cli.StringFlag{
			Name:  "ledger",
			Usage: "Ledger database directory; unchanged documents are skipped",
		},
	}
}

func provideCommand(c *cli.Context) error {
	ctx := context.Background()

	src, err := newS3Source(ctx, c)
	if err != nil {
		return err
	}
	defer src.Close()

	prov, err := provider.New(src,
		provider.WithPrefix(c.String("prefix")),
		provider.WithExtensions(splitExtensions(c.String("extensions"))),
		provider.WithMaxFiles(c.Int("max-files")),
	)
	if err != nil {
		return err
	}

	manifest, err := prov.Run(ctx, c.String("download-dir"))
	if err != nil {
		return fmt.Errorf("providing documents: %w", err)
	}

	output := c.String("output")
	if err := core.WriteManifest(manifest, output); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Downloaded %d documents\n", manifest.Metadata.FileCount)
	fmt.Fprintf(os.Stderr, "Manifest: %s\n", output)
	return nil
}

func processCommand(c *cli.Context) error {
	ctx := context.Background()

	manifest, err := loadManifestOrFile(c.String("input"))
	if err != nil {
		return err
	}

	embedder, store, collection, err := newProcessingStack(c)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := []processing.Option{
		processing.WithChunking(c.Int("chunk-size"), c.Int("chunk-overlap")),
	}

	runLedger, err := openLedger(c)
	if err != nil {
		return err
	}
	if runLedger != nil {
		defer runLedger.Close()
		opts = append(opts, processing.WithLedger(runLedger))
	}

	proc, err := processing.NewProcessor(embedder, store, collection, opts...)
	if err != nil {
		return err
	}

	report, err := proc.Run(ctx, manifest)
	if err != nil {
		return fmt.Errorf("processing failed: %w", err)
	}

	if err := core.WriteMetrics(report, c.String("metrics")); err != nil {
		return err
	}

	printSummary(report)
	return nil
}

func runCommand(c *cli.Context) error {
	ctx := context.Background()

	var (
		src source.Source
		err error
	)
	if dir := c.String("local-files-dir"); dir != "" {
		src, err = local.NewSource(dir)
	} else {
		src, err = newS3Source(ctx, c)
	}
	if err != nil {
		return err
	}
	defer src.Close()

	embedder, store, collection, err := newProcessingStack(c)
	if err != nil {
		return err
	}
	defer store.Close()

	processorOpts := []processing.Option{
		processing.WithChunking(c.Int("chunk-size"), c.Int("chunk-overlap")),
	}

	runLedger, err := openLedger(c)
	if err != nil {
		return err
	}
	if runLedger != nil {
		defer runLedger.Close()
		processorOpts = append(processorOpts, processing.WithLedger(runLedger))
	}

	runnerOpts := []ragline.RunnerOption{
		ragline.WithProviderOptions(
			provider.WithPrefix(c.String("prefix")),
			provider.WithExtensions(splitExtensions(c.String("extensions"))),
			provider.WithMaxFiles(c.Int("max-files")),
		),
		ragline.WithProcessorOptions(processorOpts...),
	}
	if dir := c.String("staging-dir"); dir != "" {
		runnerOpts = append(runnerOpts, ragline.WithStagingDir(dir))
	}
	if c.Bool("no-cleanup") {
		runnerOpts = append(runnerOpts, ragline.WithKeepArtifacts())
	}

	runner, err := ragline.NewRunner(src, embedder, store, collection, runnerOpts...)
	if err != nil {
		return err
	}

	report, err := runner.Run(ctx)
	if err != nil {
		return fmt.Errorf("pipeline failed: %w", err)
	}

	printSummary(report)
	return nil
}

// newS3Source builds an object storage source from the CLI flags.
func newS3Source(ctx context.Context, c *cli.Context) (source.Source, error) {
	return s3.NewSource(ctx, &s3.Config{
		Endpoint:  c.String("endpoint"),
		AccessKey: c.String("access-key"),
		SecretKey: c.String("secret-key"),
		Region:    c.String("region"),
		Bucket:    c.String("bucket"),
	})
}

// newProcessingStack builds the embedder, vector store client and target
// collection from the CLI flags.
func newProcessingStack(c *cli.Context) (ai.Embedder, vectorstore.Store, vectorstore.Collection, error) {
	collection := vectorstore.Collection{
		Id:                 c.String("vector-db-id"),
		EmbeddingModel:     c.String("embedding-model"),
		EmbeddingDimension: c.Int("embedding-dimension"),
		ProviderId:         c.String("provider-id"),
	}

	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("embedding-host")),
		ai.WithModel(c.String("embedding-model")),
		ai.WithDimension(c.Int("embedding-dimension")),
	)
	embedder, err := openai.NewEmbedder(aiConfig)
	if err != nil {
		return nil, nil, collection, fmt.Errorf("creating embedder: %w", err)
	}

	store, err := gateway.NewStore(gateway.Config{
		BaseURL: c.String("vector-store-url"),
	})
	if err != nil {
		return nil, nil, collection, fmt.Errorf("creating vector store client: %w", err)
	}

	return embedder, store, collection, nil
}

// openLedger opens the ledger database if the flag was given.
func openLedger(c *cli.Context) (ledger.Ledger, error) {
	path := c.String("ledger")
	if path == "" {
		return nil, nil
	}
	l, err := badgerledger.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	return l, nil
}

// loadManifestOrFile reads a manifest, or wraps a single document in a
// synthetic one so individual files can be processed directly.
func loadManifestOrFile(path string) (*core.Manifest, error) {
	if strings.HasSuffix(strings.ToLower(path), ".json") {
		return core.ReadManifest(path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading input %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("input %s is a directory; expected a manifest or document", path)
	}

	return &core.Manifest{
		DocumentPaths: []string{path},
		Metadata: core.ManifestMetadata{
			Endpoint:  "local",
			FileCount: 1,
			Details: []core.FileDetail{{
				FilePath:     path,
				Key:          filepath.Base(path),
				Size:         info.Size(),
				LastModified: info.ModTime(),
			}},
		},
	}, nil
}

// splitExtensions parses the comma-separated extensions flag.
// An empty result accepts every key.
func splitExtensions(raw string) []string {
	var exts []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if !strings.HasPrefix(part, ".") {
			part = "." + part
		}
		exts = append(exts, part)
	}
	return exts
}

func printSummary(report *core.MetricsReport) {
	fmt.Fprintf(os.Stderr, "Documents: %d\n", report.DocumentCount)
	fmt.Fprintf(os.Stderr, "Processed: %d\n", len(report.ProcessedDocuments))
	fmt.Fprintf(os.Stderr, "Failed: %d\n", len(report.FailedDocuments))
	fmt.Fprintf(os.Stderr, "Total chunks: %d\n", report.TotalChunks)
	fmt.Fprintf(os.Stderr, "Registration: %s\n", report.VectorDBRegistration)
	fmt.Fprintf(os.Stderr, "Insertion: %s\n", report.VectorDBInsertion)
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
