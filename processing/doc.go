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


// Package processing implements the document-processor stage of the pipeline.
//
// A Processor consumes a core.Manifest and, for each staged document:
// loads and parses it, splits the text into chunks, embeds each chunk, and
// upserts the chunks into a vector collection. Documents are handled one at
// a time in manifest order.
//
// Error discipline follows the pipeline's taxonomy: configuration errors
// (embedding dimension mismatch, empty document set) abort the run before
// anything is written; per-document errors (unparseable file, embedding
// failure) are recorded in the metrics report and the run continues.
package processing
