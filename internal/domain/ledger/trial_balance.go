package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/ledgerbook/internal/domain/accounting"
)

// balanceTolerance absorbs rounding introduced upstream of the ledger
// (amounts are parsed from user input). Sums themselves are exact.
var balanceTolerance = decimal.New(1, -4) // 0.0001

// TrialBalance is the derived summary over a user's entries. It is
// recomputed from the store on every view and never cached.
type TrialBalance struct {
	TotalDebit  decimal.Decimal `json:"total_debit"`
	TotalCredit decimal.Decimal `json:"total_credit"`
	Discrepancy decimal.Decimal `json:"discrepancy"` // TotalDebit - TotalCredit, signed
	Balanced    bool            `json:"balanced"`
}

// Summarize sums debits and credits over the entries. Decimal arithmetic
// keeps the sums exact, so the result is identical for any permutation of
// the same entries. An empty input yields zero totals and a balanced
// verdict.
func Summarize(entries []*Entry) TrialBalance {
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero

	for _, e := range entries {
		totalDebit = totalDebit.Add(e.Debit)
		totalCredit = totalCredit.Add(e.Credit)
	}

	discrepancy := totalDebit.Sub(totalCredit)

	return TrialBalance{
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
		Discrepancy: discrepancy,
		Balanced:    discrepancy.Abs().LessThan(balanceTolerance),
	}
}

// FilterByAccount returns the entries posted to the given account,
// preserving their original relative order. An account with no entries
// yields an empty result, not an error.
func FilterByAccount(entries []*Entry, acc accounting.Account) []*Entry {
	var out []*Entry
	for _, e := range entries {
		if e.Account == acc {
			out = append(out, e)
		}
	}
	return out
}
