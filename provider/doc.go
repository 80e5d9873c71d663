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


// Package provider implements the document-provider stage of the pipeline.
//
// A Provider lists documents from a source, filters them by key prefix and
// extension, downloads up to a configured number of matches into a staging
// directory in key-sorted order, and emits a core.Manifest describing the
// result. Individual download failures are skipped and logged; only listing
// and connectivity failures abort a run.
package provider
