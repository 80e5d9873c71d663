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


// Package vectorstore abstracts the vector-database gateway the processor
// writes to.
//
// The gateway owns collections and similarity search; this pipeline only
// registers collections and inserts chunk vectors. Package
// vectorstore/gateway implements Store against the gateway's HTTP API;
// vectorstore/mock provides a recording double for tests.
package vectorstore
