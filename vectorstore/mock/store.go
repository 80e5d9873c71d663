// Package mock provides a recording test double for the vectorstore package.
package mock

import (
	"context"

	"github.com/poiesic/ragline/core"
	"github.com/poiesic/ragline/vectorstore"
)

// Store is a test double for vectorstore.Store.
// It records every call and allows error injection via function fields.
type Store struct {
	// RegisterFunc is called by RegisterCollection if set.
	RegisterFunc func(ctx context.Context, col vectorstore.Collection) error

	// InsertFunc is called by Insert if set.
	InsertFunc func(ctx context.Context, collectionId string, chunks []core.Chunk) error

	// Registered accumulates collections passed to RegisterCollection.
	Registered []vectorstore.Collection

	// Inserted accumulates all chunks passed to Insert, across calls.
	Inserted []core.Chunk

	// InsertCalls counts Insert invocations.
	InsertCalls int
}

var _ vectorstore.Store = (*Store)(nil)

// NewStore creates a recording mock store.
// Note: returns the concrete type to allow test assertions.
func NewStore() *Store {
	return &Store{}
}

func (m *Store) RegisterCollection(ctx context.Context, col vectorstore.Collection) error {
	m.Registered = append(m.Registered, col)
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, col)
	}
	return nil
}

func (m *Store) Insert(ctx context.Context, collectionId string, chunks []core.Chunk) error {
	m.InsertCalls++
	if m.InsertFunc != nil {
		if err := m.InsertFunc(ctx, collectionId, chunks); err != nil {
			return err
		}
	}
	m.Inserted = append(m.Inserted, chunks...)
	return nil
}

func (m *Store) Close() error {
	return nil
}
