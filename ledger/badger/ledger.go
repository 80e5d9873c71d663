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


package badger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/ragline/ledger"
)

// badgerLedger implements ledger.Ledger over a Backend.
type badgerLedger struct {
	backend *Backend
}

var _ ledger.Ledger = (*badgerLedger)(nil)

// NewLedger creates a ledger over the given backend.
//
// Returns the ledger.Ledger interface to enforce abstraction. The backend's
// lifetime is owned by the caller; Close on the ledger does not close it.
func NewLedger(backend *Backend) (ledger.Ledger, error) {
	if backend == nil {
		return nil, errors.New("backend required")
	}
	return &badgerLedger{backend: backend}, nil
}

// Open is a convenience constructor that opens a database at path and
// returns a ledger owning it: Close closes the database.
func Open(path string) (ledger.Ledger, error) {
	backend, err := OpenBackend(path, false)
	if err != nil {
		return nil, fmt.Errorf("opening ledger database: %w", err)
	}
	return &owningLedger{badgerLedger{backend: backend}}, nil
}

func (l *badgerLedger) Get(ctx context.Context, key string) (*ledger.Entry, error) {
	var entry *ledger.Entry

	err := l.backend.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(entryKey(key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("%w: %s", ledger.ErrNotFound, key)
			}
			return err
		}
		return item.Value(func(val []byte) error {
			entry, err = ledger.UnmarshalEntry(val)
			return err
		})
	})
	if err != nil {
		return nil, err
	}

	return entry, nil
}

func (l *badgerLedger) Put(ctx context.Context, entry *ledger.Entry) error {
	if entry == nil || entry.Key == "" {
		return fmt.Errorf("%w: key is required", ledger.ErrInvalidEntry)
	}
	if entry.ProcessedAt.IsZero() {
		entry.ProcessedAt = time.Now().UTC()
	}

	return l.backend.db.Update(func(txn *badger.Txn) error {
		return txn.Set(entryKey(entry.Key), ledger.MarshalEntry(entry))
	})
}

func (l *badgerLedger) Close() error {
	// Backend lifetime is owned by the caller.
	return nil
}

// owningLedger closes its backend on Close.
type owningLedger struct {
	badgerLedger
}

func (l *owningLedger) Close() error {
	return l.backend.Close()
}
