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


package ledger

import (
	"fmt"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// MarshalEntry serializes an Entry to bytes.
// ProcessedAt is stored as Unix microseconds.
func MarshalEntry(entry *Entry) []byte {
	micros := entry.ProcessedAt.UnixMicro()

	size := ord.String.Size(entry.Key) +
		varint.Uint64.Size(entry.ContentHash) +
		varint.Int.Size(entry.ChunkCount) +
		varint.Int64.Size(micros)

	buf := make([]byte, size)
	n := ord.String.Marshal(entry.Key, buf)
	n += varint.Uint64.Marshal(entry.ContentHash, buf[n:])
	n += varint.Int.Marshal(entry.ChunkCount, buf[n:])
	varint.Int64.Marshal(micros, buf[n:])
	return buf
}

// UnmarshalEntry deserializes an Entry from bytes.
func UnmarshalEntry(data []byte) (*Entry, error) {
	key, n, err := ord.String.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: key: %w", ErrSerializationFailed, err)
	}

	hash, m, err := varint.Uint64.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: content hash: %w", ErrSerializationFailed, err)
	}
	n += m

	count, m, err := varint.Int.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: chunk count: %w", ErrSerializationFailed, err)
	}
	n += m

	micros, _, err := varint.Int64.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: processed at: %w", ErrSerializationFailed, err)
	}

	return &Entry{
		Key:         key,
		ContentHash: hash,
		ChunkCount:  count,
		ProcessedAt: time.UnixMicro(micros).UTC(),
	}, nil
}
