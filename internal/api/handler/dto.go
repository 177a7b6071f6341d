package handler

import "github.com/ledgerbook/internal/api/service"

// dateLayout is the wire format for entry dates
const dateLayout = "2006-01-02"

// RegisterRequest represents a request to create a new user
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

// LoginResponse carries the issued bearer token alongside the user
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// EntryRequest represents a request to record or replace a ledger entry.
// Amount travels as a decimal string to keep exact values on the wire.
type EntryRequest struct {
	Date        string `json:"date,omitempty"`
	Description string `json:"description,omitempty"`
	Amount      string `json:"amount" binding:"required"`
	Direction   string `json:"direction" binding:"required"`
	Account     string `json:"account" binding:"required"`
}

// EntryResponse represents a classified ledger entry in API responses
type EntryResponse struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Description string `json:"description,omitempty"`
	Amount      string `json:"amount"`
	Direction   string `json:"direction"`
	Account     string `json:"account"`
	Debit       string `json:"debit"`
	Credit      string `json:"credit"`
	CreatedAt   string `json:"created_at"`
}

// EntryListResponse represents a list of ledger entries in API responses
type EntryListResponse struct {
	Entries []EntryResponse `json:"entries"`
}

// TrialBalanceResponse represents the derived summary in API responses
type TrialBalanceResponse struct {
	TotalDebit  string `json:"total_debit"`
	TotalCredit string `json:"total_credit"`
	Discrepancy string `json:"discrepancy"`
	Balanced    bool   `json:"balanced"`
}

// ChartResponse represents the selectable accounts in API responses
type ChartResponse struct {
	Accounts []service.AccountDescriptor `json:"accounts"`
}
