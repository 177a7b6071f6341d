package handler

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerbook/internal/api/middleware"
	"github.com/ledgerbook/internal/api/service"
	"github.com/ledgerbook/internal/domain/accounting"
	"github.com/ledgerbook/internal/domain/ledger"
)

// LedgerHandler handles HTTP requests for bookkeeping operations
type LedgerHandler struct {
	ledgerService service.LedgerService
	logger        *slog.Logger
}

// NewLedgerHandler creates a new ledger handler
func NewLedgerHandler(logger *slog.Logger, ledgerService service.LedgerService) *LedgerHandler {
	return &LedgerHandler{
		ledgerService: ledgerService,
		logger:        logger,
	}
}

// Record classifies and stores a new ledger entry
func (h *LedgerHandler) Record(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		RespondUnauthorized(c, "")
		return
	}

	input, ok := h.bindEntryInput(c)
	if !ok {
		return
	}

	entry, err := h.ledgerService.RecordEntry(c.Request.Context(), userID, input)
	if err != nil {
		h.respondEntryError(c, err)
		return
	}

	RespondCreated(c, mapEntryToResponse(entry))
}

// List retrieves the user's entries, optionally filtered by account via the
// "account" query parameter
func (h *LedgerHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		RespondUnauthorized(c, "")
		return
	}

	entries, err := h.ledgerService.ListEntries(c.Request.Context(), userID, c.Query("account"))
	if err != nil {
		h.respondEntryError(c, err)
		return
	}

	response := EntryListResponse{Entries: make([]EntryResponse, 0, len(entries))}
	for _, entry := range entries {
		response.Entries = append(response.Entries, mapEntryToResponse(entry))
	}

	RespondOK(c, response)
}

// Update re-classifies and replaces an existing entry
func (h *LedgerHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		RespondUnauthorized(c, "")
		return
	}

	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "Invalid entry ID")
		return
	}

	input, ok := h.bindEntryInput(c)
	if !ok {
		return
	}

	entry, err := h.ledgerService.UpdateEntry(c.Request.Context(), userID, entryID, input)
	if err != nil {
		h.respondEntryError(c, err)
		return
	}

	RespondOK(c, mapEntryToResponse(entry))
}

// Delete removes the user's entry
func (h *LedgerHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		RespondUnauthorized(c, "")
		return
	}

	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "Invalid entry ID")
		return
	}

	if err := h.ledgerService.DeleteEntry(c.Request.Context(), userID, entryID); err != nil {
		h.respondEntryError(c, err)
		return
	}

	RespondNoContent(c)
}

// TrialBalance returns the derived debit and credit totals over the user's
// entries
func (h *LedgerHandler) TrialBalance(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		RespondUnauthorized(c, "")
		return
	}

	tb, err := h.ledgerService.TrialBalance(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to compute trial balance", "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, TrialBalanceResponse{
		TotalDebit:  tb.TotalDebit.String(),
		TotalCredit: tb.TotalCredit.String(),
		Discrepancy: tb.Discrepancy.String(),
		Balanced:    tb.Balanced,
	})
}

// ListAccounts returns the selectable accounts of the chart
func (h *LedgerHandler) ListAccounts(c *gin.Context) {
	RespondOK(c, ChartResponse{Accounts: h.ledgerService.ChartOfAccounts()})
}

// bindEntryInput parses the request body into a service input, responding
// with 400 on malformed payloads
func (h *LedgerHandler) bindEntryInput(c *gin.Context) (*service.EntryInput, bool) {
	var req EntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return nil, false
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		RespondBadRequest(c, "Invalid amount: must be a decimal number")
		return nil, false
	}

	var date time.Time
	if req.Date != "" {
		date, err = time.Parse(dateLayout, req.Date)
		if err != nil {
			RespondBadRequest(c, "Invalid date: expected "+dateLayout)
			return nil, false
		}
	}

	return &service.EntryInput{
		Date:        date,
		Description: req.Description,
		Amount:      amount,
		Direction:   req.Direction,
		Account:     req.Account,
	}, true
}

// respondEntryError maps domain errors to HTTP statuses
func (h *LedgerHandler) respondEntryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, accounting.ErrUnknownAccount{}):
		RespondBadRequest(c, err.Error())
	case errors.Is(err, accounting.ErrUnknownDirection{}):
		RespondBadRequest(c, err.Error())
	case errors.Is(err, accounting.ErrInvalidAmount):
		RespondBadRequest(c, err.Error())
	case errors.Is(err, ledger.ErrEntryNotFound{}):
		RespondNotFound(c, "Entry not found")
	default:
		h.logger.Error("Ledger operation failed", "error", err)
		RespondInternalError(c)
	}
}

// mapEntryToResponse maps a ledger entry to a response DTO
func mapEntryToResponse(entry *ledger.Entry) EntryResponse {
	return EntryResponse{
		ID:          entry.ID.String(),
		Date:        entry.Date.Format(dateLayout),
		Description: entry.Description,
		Amount:      entry.Amount.String(),
		Direction:   string(entry.Direction),
		Account:     string(entry.Account),
		Debit:       entry.Debit.String(),
		Credit:      entry.Credit.String(),
		CreatedAt:   entry.CreatedAt.Format(time.RFC3339),
	}
}
