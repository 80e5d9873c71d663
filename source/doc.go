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


// Package source abstracts where documents come from.
//
// A Source exposes exactly the two capabilities the document provider needs:
// listing candidate documents and fetching one to a local path. Backends:
//
//   - s3: S3-compatible object storage (MinIO, AWS S3) via minio-go
//   - local: a plain directory, used as a substitute source for local runs
//
// Constructors return the Source interface rather than concrete types so the
// provider and runner stay decoupled from the backend in use.
package source
