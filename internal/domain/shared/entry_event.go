// Package shared holds types that cross process boundaries, such as the
// ledger event published after store writes.
package shared

import (
	"time"

	"github.com/google/uuid"
)

// EntryEventType names the ledger lifecycle events
type EntryEventType string

const (
	EntryEventRecorded EntryEventType = "entry.recorded"
	EntryEventUpdated  EntryEventType = "entry.updated"
	EntryEventDeleted  EntryEventType = "entry.deleted"
)

// EntryEvent is the message published to the ledger events topic after a
// successful store write. Amounts travel as decimal strings to avoid
// binary floating point on the wire.
type EntryEvent struct {
	Type       EntryEventType `json:"type"`
	EntryID    uuid.UUID      `json:"entry_id"`
	UserID     uuid.UUID      `json:"user_id"`
	Account    string         `json:"account,omitempty"`
	Debit      string         `json:"debit,omitempty"`
	Credit     string         `json:"credit,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}
