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

import "fmt"

// ValidateManifest validates a Manifest according to domain rules.
//
// Validation rules:
//   - Manifest must not be nil
//   - FileCount must equal len(DocumentPaths)
//   - DocumentPaths must not contain empty entries
//   - Every Details entry must carry a FilePath and a Key
//
// NOT validated:
//   - Path existence on disk (the manifest may be read on a different host
//     than it was written on)
func ValidateManifest(m *Manifest) error {
	if m == nil {
		return fmt.Errorf("%w: manifest is nil", ErrInvalidManifest)
	}

	if m.Metadata.FileCount != len(m.DocumentPaths) {
		return fmt.Errorf("%w: file_count %d does not match %d document paths",
			ErrInvalidManifest, m.Metadata.FileCount, len(m.DocumentPaths))
	}

	for i, path := range m.DocumentPaths {
		if path == "" {
			return fmt.Errorf("%w: empty document path at index %d", ErrInvalidManifest, i)
		}
	}

	for i, detail := range m.Metadata.Details {
		if detail.FilePath == "" {
			return fmt.Errorf("%w: detail %d has no file path", ErrInvalidManifest, i)
		}
		if detail.Key == "" {
			return fmt.Errorf("%w: detail %d has no key", ErrInvalidManifest, i)
		}
	}

	return nil
}

// ValidateMetrics checks the internal consistency of a MetricsReport.
//
// Consistency rules:
//   - DocumentCount equals processed + failed documents
//   - TotalChunks equals the sum of per-document chunk counts
func ValidateMetrics(r *MetricsReport) error {
	if r == nil {
		return fmt.Errorf("%w: report is nil", ErrInvalidMetrics)
	}

	if got := len(r.ProcessedDocuments) + len(r.FailedDocuments); got != r.DocumentCount {
		return fmt.Errorf("%w: document_count %d, but %d documents accounted for",
			ErrInvalidMetrics, r.DocumentCount, got)
	}

	sum := 0
	for _, doc := range r.ProcessedDocuments {
		sum += doc.Chunks
	}
	if sum != r.TotalChunks {
		return fmt.Errorf("%w: total_chunks %d, but per-document counts sum to %d",
			ErrInvalidMetrics, r.TotalChunks, sum)
	}

	return nil
}
