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


// Package ai defines the embedding abstraction used by the document
// processor.
//
// The Embedder interface is the only AI capability the pipeline needs.
// Package ai/openai implements it against any OpenAI-compatible embeddings
// endpoint (Ollama, vLLM, LocalAI, OpenAI itself); package ai/mock provides
// a deterministic test double.
//
// Config declares, among other things, the embedding Dimension the caller
// expects. The processor verifies the declared dimension against the model's
// actual output width before writing anything to the vector store.
package ai
