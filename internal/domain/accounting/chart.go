// Package accounting holds the chart of accounts and the double-entry
// classification rules. Everything here is pure: no I/O, no clocks, no
// persistence concerns.
package accounting

import (
	"errors"
	"fmt"
)

// Category partitions the chart of accounts. The only semantic fact the
// classifier needs about a category is its normal balance side.
type Category string

const (
	CategoryAsset     Category = "ASSET"
	CategoryLiability Category = "LIABILITY"
	CategoryEquity    Category = "EQUITY"
	CategoryRevenue   Category = "REVENUE"
	CategoryExpense   Category = "EXPENSE"
	CategoryDividends Category = "DIVIDENDS"
)

// IsDebitNormal reports whether accounts in this category increase with a
// debit entry. Assets, expenses and dividends/drawings are debit-normal;
// liabilities, equity and revenue are credit-normal.
func (c Category) IsDebitNormal() bool {
	switch c {
	case CategoryAsset, CategoryExpense, CategoryDividends:
		return true
	default:
		return false
	}
}

// Account is a named account drawn from a closed enumeration.
type Account string

// The fixed chart offered to users. Display order matters for the
// presentation layer; the classifier only consults the category table.
const (
	AccountCash               Account = "Cash"
	AccountAccountsReceivable Account = "Accounts Receivable"
	AccountInventory          Account = "Inventory"
	AccountEquipment          Account = "Equipment"
	AccountAccountsPayable    Account = "Accounts Payable"
	AccountUnearnedRevenue    Account = "Unearned Revenue"
	AccountCommonStock        Account = "Common Stock"
	AccountRetainedEarnings   Account = "Retained Earnings"
	AccountSalesRevenue       Account = "Sales Revenue"
	AccountRentExpense        Account = "Rent Expense"
	AccountUtilitiesExpense   Account = "Utilities Expense"
	AccountDividends          Account = "Dividends"
)

// ErrUnknownAccount indicates an account outside the chart's enumeration
type ErrUnknownAccount struct {
	Account Account
}

func (e ErrUnknownAccount) Error() string {
	return "unknown account: " + string(e.Account)
}

// Is implements the errors.Is interface for ErrUnknownAccount
func (e ErrUnknownAccount) Is(target error) bool {
	t, ok := target.(ErrUnknownAccount)
	if !ok {
		return false
	}
	if t.Account == "" {
		return true
	}
	return e.Account == t.Account
}

// Chart pairs the selectable account list with the account-to-category
// table. The two are validated against each other at construction time so
// an account can never be selectable without a known normal balance side.
type Chart struct {
	accounts   []Account
	categories map[Account]Category
}

// NewChart builds a chart from a selectable account list and a category
// table. It fails if the list names an account missing from the table or
// the table maps an account absent from the list.
func NewChart(accounts []Account, categories map[Account]Category) (*Chart, error) {
	if len(accounts) == 0 {
		return nil, errors.New("chart must contain at least one account")
	}

	seen := make(map[Account]bool, len(accounts))
	for _, acc := range accounts {
		if seen[acc] {
			return nil, fmt.Errorf("account %q listed twice in chart", acc)
		}
		seen[acc] = true

		if _, ok := categories[acc]; !ok {
			return nil, fmt.Errorf("account %q has no category in the normal-side table", acc)
		}
	}

	for acc := range categories {
		if !seen[acc] {
			return nil, fmt.Errorf("category table maps %q which is not a selectable account", acc)
		}
	}

	chart := &Chart{
		accounts:   make([]Account, len(accounts)),
		categories: make(map[Account]Category, len(categories)),
	}
	copy(chart.accounts, accounts)
	for acc, cat := range categories {
		chart.categories[acc] = cat
	}

	return chart, nil
}

// NewDefaultChart builds the fixed chart of the bookkeeping form.
func NewDefaultChart() (*Chart, error) {
	accounts := []Account{
		AccountCash,
		AccountAccountsReceivable,
		AccountInventory,
		AccountEquipment,
		AccountAccountsPayable,
		AccountUnearnedRevenue,
		AccountCommonStock,
		AccountRetainedEarnings,
		AccountSalesRevenue,
		AccountRentExpense,
		AccountUtilitiesExpense,
		AccountDividends,
	}

	categories := map[Account]Category{
		AccountCash:               CategoryAsset,
		AccountAccountsReceivable: CategoryAsset,
		AccountInventory:          CategoryAsset,
		AccountEquipment:          CategoryAsset,
		AccountAccountsPayable:    CategoryLiability,
		AccountUnearnedRevenue:    CategoryLiability,
		AccountCommonStock:        CategoryEquity,
		AccountRetainedEarnings:   CategoryEquity,
		AccountSalesRevenue:       CategoryRevenue,
		AccountRentExpense:        CategoryExpense,
		AccountUtilitiesExpense:   CategoryExpense,
		AccountDividends:          CategoryDividends,
	}

	return NewChart(accounts, categories)
}

// Accounts returns the selectable accounts in display order.
func (c *Chart) Accounts() []Account {
	out := make([]Account, len(c.accounts))
	copy(out, c.accounts)
	return out
}

// Category returns the category of the given account.
// The second return is false if the account is not in the chart.
func (c *Chart) Category(acc Account) (Category, bool) {
	cat, ok := c.categories[acc]
	return cat, ok
}

// Contains reports whether the account is part of the chart's enumeration.
func (c *Chart) Contains(acc Account) bool {
	_, ok := c.categories[acc]
	return ok
}
