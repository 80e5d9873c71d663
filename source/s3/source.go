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


// Package s3 implements source.Source for S3-compatible object storage.
package s3

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/poiesic/ragline/source"
)

// Config holds connection parameters for an S3-compatible endpoint.
type Config struct {
	// Endpoint is the storage endpoint URL, e.g. "http://localhost:9000".
	// An https scheme enables TLS.
	Endpoint string

	// AccessKey and SecretKey are the static credentials.
	AccessKey string
	SecretKey string

	// Region is optional; most MinIO deployments leave it empty.
	Region string

	// Bucket is the bucket to read documents from.
	Bucket string
}

// Validate checks that the configuration is complete.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("%w: endpoint is required", source.ErrInvalidConfig)
	}
	if c.AccessKey == "" {
		return fmt.Errorf("%w: access key is required", source.ErrInvalidConfig)
	}
	if c.SecretKey == "" {
		return fmt.Errorf("%w: secret key is required", source.ErrInvalidConfig)
	}
	if c.Bucket == "" {
		return fmt.Errorf("%w: bucket is required", source.ErrInvalidConfig)
	}
	return nil
}

// hostSecure splits an endpoint URL into the host:port form minio expects
// and whether TLS should be used. A bare host without scheme is accepted.
func hostSecure(endpoint string) (string, bool, error) {
	if !strings.Contains(endpoint, "://") {
		return endpoint, false, nil
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", false, fmt.Errorf("%w: %w", source.ErrInvalidConfig, err)
	}
	if u.Host == "" {
		return "", false, fmt.Errorf("%w: endpoint %q has no host", source.ErrInvalidConfig, endpoint)
	}
	return u.Host, u.Scheme == "https", nil
}

// s3Source implements source.Source backed by a minio client.
type s3Source struct {
	client *minio.Client
	config *Config
	logger *slog.Logger
}

var _ source.Source = (*s3Source)(nil)

// NewSource connects to an S3-compatible endpoint and verifies that the
// configured bucket is reachable. Invalid credentials or an unreachable
// endpoint surface here as ErrConnectionFailed, before any listing happens.
//
// Returns the source.Source interface to enforce abstraction.
func NewSource(ctx context.Context, config *Config) (source.Source, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", source.ErrInvalidConfig)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	host, secure, err := hostSecure(config.Endpoint)
	if err != nil {
		return nil, err
	}

	client, err := minio.New(host, &minio.Options{
		Creds:  credentials.NewStaticV4(config.AccessKey, config.SecretKey, ""),
		Secure: secure,
		Region: config.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", source.ErrConnectionFailed, err)
	}

	// BucketExists doubles as the connectivity and credential check.
	exists, err := client.BucketExists(ctx, config.Bucket)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", source.ErrConnectionFailed, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: bucket %q does not exist", source.ErrConnectionFailed, config.Bucket)
	}

	return &s3Source{
		client: client,
		config: config,
		logger: slog.Default().With("component", "s3-source", "bucket", config.Bucket),
	}, nil
}

// List returns the objects in the bucket whose keys start with prefix.
func (s *s3Source) List(ctx context.Context, prefix string) ([]source.DocumentInfo, error) {
	opts := minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}

	var infos []source.DocumentInfo
	for obj := range s.client.ListObjects(ctx, s.config.Bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("%w: listing objects: %w", source.ErrConnectionFailed, obj.Err)
		}
		infos = append(infos, source.DocumentInfo{
			Key:          obj.Key,
			Size:         obj.Size,
			LastModified: obj.LastModified,
		})
	}

	s.logger.Debug("listed objects", "prefix", prefix, "count", len(infos))
	return infos, nil
}

// Fetch downloads the object to destPath.
func (s *s3Source) Fetch(ctx context.Context, key, destPath string) error {
	err := s.client.FGetObject(ctx, s.config.Bucket, key, destPath, minio.GetObjectOptions{})
	if err != nil {
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" {
			return fmt.Errorf("%w: %s", source.ErrObjectNotFound, key)
		}
		return fmt.Errorf("downloading %s: %w", key, err)
	}

	s.logger.Debug("downloaded object", "key", key, "dest", destPath)
	return nil
}

func (s *s3Source) Origin() source.Origin {
	return source.Origin{
		Bucket:   s.config.Bucket,
		Endpoint: s.config.Endpoint,
	}
}

func (s *s3Source) Close() error {
	// The minio client holds no connections that need explicit teardown.
	return nil
}
