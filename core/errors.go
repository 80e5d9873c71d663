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


package core

import "errors"

// Domain errors
var (
	// ErrInvalidManifest indicates a Manifest failed validation.
	ErrInvalidManifest = errors.New("invalid manifest")

	// ErrManifestNotFound indicates the manifest file does not exist.
	ErrManifestNotFound = errors.New("manifest not found")

	// ErrNoDocuments indicates a run was started with an empty document set.
	ErrNoDocuments = errors.New("no documents to process")

	// ErrDimensionMismatch indicates the configured embedding dimension does
	// not match the width of vectors the embedding model actually produces.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrInvalidConfig indicates invalid pipeline configuration.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidMetrics indicates a MetricsReport failed consistency checks.
	ErrInvalidMetrics = errors.New("invalid metrics report")
)
