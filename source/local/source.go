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


// Package local implements source.Source over a plain directory.
// It substitutes for object storage when running the pipeline locally.
package local

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/poiesic/ragline/source"
)

// localSource implements source.Source over a directory. Keys are bare file
// names; subdirectories are not traversed.
type localSource struct {
	dir    string
	logger *slog.Logger
}

var _ source.Source = (*localSource)(nil)

// NewSource creates a source over the given directory.
// The directory must exist.
//
// Returns the source.Source interface to enforce abstraction.
func NewSource(dir string) (source.Source, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: directory is required", source.ErrInvalidConfig)
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", source.ErrConnectionFailed, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", source.ErrInvalidConfig, dir)
	}

	return &localSource{
		dir:    dir,
		logger: slog.Default().With("component", "local-source", "dir", dir),
	}, nil
}

func (l *localSource) List(ctx context.Context, prefix string) ([]source.DocumentInfo, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", source.ErrConnectionFailed, err)
	}

	var infos []source.DocumentInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if prefix != "" && !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", entry.Name(), err)
		}
		infos = append(infos, source.DocumentInfo{
			Key:          entry.Name(),
			Size:         fi.Size(),
			LastModified: fi.ModTime(),
		})
	}

	l.logger.Debug("listed files", "prefix", prefix, "count", len(infos))
	return infos, nil
}

func (l *localSource) Fetch(ctx context.Context, key, destPath string) error {
	src, err := os.Open(filepath.Join(l.dir, key))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", source.ErrObjectNotFound, key)
		}
		return fmt.Errorf("opening %s: %w", key, err)
	}
	defer src.Close()

	dst, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", destPath, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("copying %s: %w", key, err)
	}

	return nil
}

func (l *localSource) Origin() source.Origin {
	return source.Origin{
		Bucket:   l.dir,
		Endpoint: "local",
	}
}

func (l *localSource) Close() error {
	return nil
}
