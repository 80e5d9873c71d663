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


// Package ledger tracks which documents have already been ingested.
//
// The ledger records, per source key, the content hash and chunk count of
// the last successful ingestion. A processor configured with a ledger skips
// documents whose content is unchanged since they were last inserted, which
// keeps repeated runs over the same bucket cheap on top of the vector
// store's upsert semantics.
//
// The ledger is optional: without one the pipeline still behaves correctly,
// it just re-embeds and re-upserts unchanged documents.
//
// Package ledger/badger provides the BadgerDB-backed implementation.
// Constructors return the Ledger interface to keep callers decoupled from
// the backend.
package ledger
