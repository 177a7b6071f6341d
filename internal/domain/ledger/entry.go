package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerbook/internal/domain/accounting"
)

// Entry is a persisted ledger record, visible only to the user that
// created it.
//
// Invariants: Amount > 0, exactly one of Debit/Credit is nonzero, and
// Debit + Credit == Amount.
type Entry struct {
	ID          uuid.UUID            `json:"id"`
	UserID      uuid.UUID            `json:"user_id"`
	Date        time.Time            `json:"date"`
	Description string               `json:"description,omitempty"`
	Amount      decimal.Decimal      `json:"amount"`
	Direction   accounting.Direction `json:"direction"`
	Account     accounting.Account   `json:"account"`
	Debit       decimal.Decimal      `json:"debit"`
	Credit      decimal.Decimal      `json:"credit"`
	CreatedAt   time.Time            `json:"created_at"`
}
