package accounting

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount indicates a zero or negative transaction amount
var ErrInvalidAmount = errors.New("amount must be positive")

// Classify derives the debit/credit pair for a transaction against the
// chart. Exactly one of the returned values equals amount and the other is
// zero, so debit + credit == amount holds exactly.
//
// An increase posts to the account's normal side: debit for debit-normal
// accounts, credit for credit-normal ones. A decrease posts to the
// opposite side.
func (c *Chart) Classify(acc Account, dir Direction, amount decimal.Decimal) (debit, credit decimal.Decimal, err error) {
	cat, ok := c.categories[acc]
	if !ok {
		return decimal.Zero, decimal.Zero, ErrUnknownAccount{Account: acc}
	}

	if dir != DirectionIncrease && dir != DirectionDecrease {
		return decimal.Zero, decimal.Zero, ErrUnknownDirection{Token: string(dir)}
	}

	if amount.Sign() <= 0 {
		return decimal.Zero, decimal.Zero, ErrInvalidAmount
	}

	debitSide := cat.IsDebitNormal() == (dir == DirectionIncrease)
	if debitSide {
		return amount, decimal.Zero, nil
	}
	return decimal.Zero, amount, nil
}
