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


// Package core defines the domain model shared by the ragline pipeline stages.
//
// The two on-disk artifacts the pipeline exchanges are defined here:
//
//   - Manifest: written by the document provider, read by the processor.
//     Lists the locally staged document paths together with per-file
//     source metadata. Immutable once written.
//   - MetricsReport: written once per processing run. Records per-document
//     outcomes and the aggregate registration/insertion status.
//
// Chunks are ephemeral: they exist between splitting and vector-store
// insertion and are never persisted locally. Chunk IDs are derived from
// content (see IDFromContent), so re-inserting the same input produces the
// same IDs and upserts instead of duplicating.
package core
