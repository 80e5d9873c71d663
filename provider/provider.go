package provider

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/poiesic/ragline/core"
	"github.com/poiesic/ragline/source"
)

const (
	defaultMaxFiles = 100
)

// defaultExtensions is the accepted extension set when none is configured.
var defaultExtensions = []string{".pdf"}

// Provider downloads documents matching its filters from a source and
// produces a manifest describing what was staged.
type Provider struct {
	src        source.Source
	prefix     string
	extensions []string
	maxFiles   int
	logger     *slog.Logger
}

// Option configures a Provider.
type Option func(*Provider)

// WithPrefix restricts listing to keys starting with prefix.
func WithPrefix(prefix string) Option {
	return func(p *Provider) {
		p.prefix = prefix
	}
}

// WithExtensions sets the accepted file extensions (e.g. ".pdf", ".txt").
// Matching is case-insensitive. An empty set accepts every key.
// Default is [".pdf"].
func WithExtensions(extensions []string) Option {
	return func(p *Provider) {
		p.extensions = extensions
	}
}

// WithMaxFiles caps the number of documents downloaded.
// Values below 1 keep the default of 100.
func WithMaxFiles(max int) Option {
	return func(p *Provider) {
		if max >= 1 {
			p.maxFiles = max
		}
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Provider) {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
	}
}

// New creates a document provider over the given source.
func New(src source.Source, opts ...Option) (*Provider, error) {
	if src == nil {
		return nil, ErrSourceRequired
	}

	p := &Provider{
		src:        src,
		extensions: defaultExtensions,
		maxFiles:   defaultMaxFiles,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With("component", "provider")

	return p, nil
}

// Run lists, filters and downloads documents into downloadDir, returning the
// manifest of what was staged.
//
// Filtering: keys must start with the configured prefix and end with one of
// the configured extensions. Matches are downloaded in key order until the
// max-files cap is reached. A download failure skips that document and is
// logged; it does not fail the run. Listing failures are fatal.
func (p *Provider) Run(ctx context.Context, downloadDir string) (*core.Manifest, error) {
	if downloadDir == "" {
		return nil, ErrDownloadDirRequired
	}
	if err := os.MkdirAll(downloadDir, 0755); err != nil {
		return nil, fmt.Errorf("creating download dir: %w", err)
	}

	origin := p.src.Origin()
	p.logger.Info("fetching documents", "bucket", origin.Bucket, "prefix", p.prefix)

	infos, err := p.src.List(ctx, p.prefix)
	if err != nil {
		return nil, err
	}

	matched := p.filter(infos)

	// Deterministic manifest order regardless of backend listing order.
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].Key < matched[j].Key
	})

	details := make([]core.FileDetail, 0, len(matched))
	for _, info := range matched {
		if len(details) >= p.maxFiles {
			p.logger.Info("reached max files limit", "max", p.maxFiles)
			break
		}

		destPath := filepath.Join(downloadDir, filepath.Base(info.Key))
		if err := p.src.Fetch(ctx, info.Key, destPath); err != nil {
			p.logger.Warn("skipping document, download failed", "key", info.Key, "err", err)
			continue
		}

		details = append(details, core.FileDetail{
			FilePath:     destPath,
			Key:          info.Key,
			Size:         info.Size,
			LastModified: info.LastModified,
		})
	}

	paths := make([]string, len(details))
	for i, detail := range details {
		paths[i] = detail.FilePath
	}

	manifest := &core.Manifest{
		DocumentPaths: paths,
		Metadata: core.ManifestMetadata{
			Bucket:    origin.Bucket,
			Endpoint:  origin.Endpoint,
			FileCount: len(details),
			Details:   details,
		},
	}

	p.logger.Info("documents staged", "count", len(details), "dir", downloadDir)
	return manifest, nil
}

// filter keeps documents that match the configured extension set.
// Prefix filtering already happened at the source.
func (p *Provider) filter(infos []source.DocumentInfo) []source.DocumentInfo {
	if len(p.extensions) == 0 {
		return infos
	}

	var matched []source.DocumentInfo
	for _, info := range infos {
		lower := strings.ToLower(info.Key)
		for _, ext := range p.extensions {
			if strings.HasSuffix(lower, strings.ToLower(ext)) {
				matched = append(matched, info)
				break
			}
		}
	}
	return matched
}
