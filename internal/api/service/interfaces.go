package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerbook/internal/domain/accounting"
	"github.com/ledgerbook/internal/domain/identity"
	"github.com/ledgerbook/internal/domain/ledger"
)

// EntryInput carries the user-supplied fields of a ledger entry. The debit
// and credit legs are never accepted from the caller; they are derived by
// the classifier.
type EntryInput struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Direction   string
	Account     string
}

// AccountDescriptor describes one selectable account of the chart
type AccountDescriptor struct {
	Account    accounting.Account  `json:"account"`
	Category   accounting.Category `json:"category"`
	NormalSide string              `json:"normal_side"`
}

// LedgerService defines the interface for bookkeeping operations
type LedgerService interface {
	// RecordEntry classifies the input into debit and credit legs and stores
	// it under the given user. Returns the stored entry with its assigned id.
	RecordEntry(ctx context.Context, userID uuid.UUID, input *EntryInput) (*ledger.Entry, error)

	// ListEntries retrieves the user's entries in insertion order. A
	// non-empty account restricts the result to entries posted to it;
	// an account outside the chart yields ErrUnknownAccount.
	ListEntries(ctx context.Context, userID uuid.UUID, account string) ([]*ledger.Entry, error)

	// UpdateEntry re-classifies the input and replaces the stored entry.
	// Returns ErrEntryNotFound if the entry doesn't exist or belongs to
	// another user.
	UpdateEntry(ctx context.Context, userID, entryID uuid.UUID, input *EntryInput) (*ledger.Entry, error)

	// DeleteEntry removes the user's entry.
	// Returns ErrEntryNotFound if the entry doesn't exist or belongs to
	// another user.
	DeleteEntry(ctx context.Context, userID, entryID uuid.UUID) error

	// TrialBalance recomputes the debit and credit totals over all of the
	// user's entries.
	TrialBalance(ctx context.Context, userID uuid.UUID) (ledger.TrialBalance, error)

	// ChartOfAccounts returns the selectable accounts in display order
	ChartOfAccounts() []AccountDescriptor
}

// AuthService defines the interface for registration and login
type AuthService interface {
	// Register creates a new user with a hashed password
	// Returns ErrDuplicateEmail if the email is already registered
	Register(ctx context.Context, email, password string) (*identity.User, error)

	// Login verifies the credentials and issues a signed bearer token
	// Returns ErrInvalidCredentials on unknown email or wrong password
	Login(ctx context.Context, email, password string) (string, *identity.User, error)

	// VerifyToken validates a bearer token and returns the user id it
	// was issued for
	VerifyToken(tokenString string) (uuid.UUID, error)
}
