package ledger

import (
	"context"

	"github.com/google/uuid"
)

// Repository manages ledger entry persistence. Every operation that
// touches a user's entries is scoped by that user's id; the store assigns
// the entry id on insert.
type Repository interface {
	// Insert stores the entry and stamps it with a store-assigned id.
	Insert(ctx context.Context, entry *Entry) error

	// GetByID retrieves a single entry by its store-assigned id.
	GetByID(ctx context.Context, id uuid.UUID) (*Entry, error)

	// GetByUserID retrieves all entries owned by the user in insertion order.
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*Entry, error)

	// Update replaces the stored fields of the entry identified by entry.ID,
	// provided it is owned by entry.UserID.
	Update(ctx context.Context, entry *Entry) error

	// Delete removes the entry with the given id, provided it is owned by
	// userID. Ids are globally unique; the owner check is scoping, not lookup.
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

// ErrEntryNotFound indicates a missing or foreign-owned ledger entry
type ErrEntryNotFound struct {
	EntryID uuid.UUID
}

func (e ErrEntryNotFound) Error() string {
	return "ledger entry not found: " + e.EntryID.String()
}

// Is implements the errors.Is interface for ErrEntryNotFound
func (e ErrEntryNotFound) Is(target error) bool {
	t, ok := target.(ErrEntryNotFound)
	if !ok {
		return false
	}
	// An empty target EntryID matches any ErrEntryNotFound
	if t.EntryID == uuid.Nil {
		return true
	}
	return e.EntryID == t.EntryID
}
