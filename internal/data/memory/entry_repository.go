// Package memory provides an in-memory ledger.Repository used by tests and
// local development. It mirrors the MongoDB repository's semantics: the
// store assigns ids on insert and deletes are scoped to the owning user.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/ledgerbook/internal/domain/ledger"
)

// EntryRepository is a thread-safe in-memory ledger entry store
type EntryRepository struct {
	mu      sync.Mutex
	entries []*ledger.Entry
}

// NewEntryRepository creates an empty in-memory entry repository
func NewEntryRepository() *EntryRepository {
	return &EntryRepository{}
}

// Insert stores a copy of the entry and stamps it with a fresh id
func (r *EntryRepository) Insert(ctx context.Context, entry *ledger.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry.ID = uuid.New()
	stored := *entry
	r.entries = append(r.entries, &stored)
	return nil
}

// GetByID retrieves an entry by its id
func (r *EntryRepository) GetByID(ctx context.Context, id uuid.UUID) (*ledger.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.entries {
		if e.ID == id {
			out := *e
			return &out, nil
		}
	}
	return nil, ledger.ErrEntryNotFound{EntryID: id}
}

// GetByUserID retrieves the user's entries in insertion order
func (r *EntryRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*ledger.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*ledger.Entry
	for _, e := range r.entries {
		if e.UserID == userID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

// Update replaces a stored entry matching both id and owner
func (r *EntryRepository) Update(ctx context.Context, entry *ledger.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, e := range r.entries {
		if e.ID == entry.ID && e.UserID == entry.UserID {
			stored := *entry
			r.entries[i] = &stored
			return nil
		}
	}
	return ledger.ErrEntryNotFound{EntryID: entry.ID}
}

// Delete removes an entry by id, scoped to the owning user
func (r *EntryRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, e := range r.entries {
		if e.ID == id && e.UserID == userID {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return nil
		}
	}
	return ledger.ErrEntryNotFound{EntryID: id}
}

// Compile-time check: EntryRepository implements ledger.Repository
var _ ledger.Repository = (*EntryRepository)(nil)
