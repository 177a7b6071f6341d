package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ledgerbook/internal/api/middleware"
	"github.com/ledgerbook/internal/api/service"
	"github.com/ledgerbook/internal/domain/accounting"
	"github.com/ledgerbook/internal/domain/ledger"
)

type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) RecordEntry(ctx context.Context, userID uuid.UUID, input *service.EntryInput) (*ledger.Entry, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Entry), args.Error(1)
}

func (m *MockLedgerService) ListEntries(ctx context.Context, userID uuid.UUID, account string) ([]*ledger.Entry, error) {
	args := m.Called(ctx, userID, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.Entry), args.Error(1)
}

func (m *MockLedgerService) UpdateEntry(ctx context.Context, userID, entryID uuid.UUID, input *service.EntryInput) (*ledger.Entry, error) {
	args := m.Called(ctx, userID, entryID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Entry), args.Error(1)
}

func (m *MockLedgerService) DeleteEntry(ctx context.Context, userID, entryID uuid.UUID) error {
	args := m.Called(ctx, userID, entryID)
	return args.Error(0)
}

func (m *MockLedgerService) TrialBalance(ctx context.Context, userID uuid.UUID) (ledger.TrialBalance, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(ledger.TrialBalance), args.Error(1)
}

func (m *MockLedgerService) ChartOfAccounts() []service.AccountDescriptor {
	args := m.Called()
	return args.Get(0).([]service.AccountDescriptor)
}

// setupLedgerRouter wires the handler behind a stub auth layer that injects
// the given user id
func setupLedgerRouter(h *LedgerHandler, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != uuid.Nil {
			c.Set(middleware.UserIDKey, userID)
		}
		c.Next()
	})
	r.POST("/entries", h.Record)
	r.GET("/entries", h.List)
	r.PUT("/entries/:id", h.Update)
	r.DELETE("/entries/:id", h.Delete)
	r.GET("/trial-balance", h.TrialBalance)
	r.GET("/accounts", h.ListAccounts)
	return r
}

func handlerTestLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func decodeData[T any](t *testing.T, body []byte) T {
	t.Helper()
	var topLevel Response
	require.NoError(t, json.Unmarshal(body, &topLevel))
	require.NotNil(t, topLevel.Data)

	dataBytes, err := json.Marshal(topLevel.Data)
	require.NoError(t, err)

	var out T
	require.NoError(t, json.Unmarshal(dataBytes, &out))
	return out
}

func TestLedgerHandler_Record(t *testing.T) {
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockLedgerService)
		h := NewLedgerHandler(handlerTestLogger(), mockService)

		stored := &ledger.Entry{
			ID:        uuid.New(),
			UserID:    userID,
			Date:      time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			Amount:    decimal.NewFromInt(250),
			Direction: accounting.DirectionIncrease,
			Account:   accounting.AccountCash,
			Debit:     decimal.NewFromInt(250),
			Credit:    decimal.Zero,
			CreatedAt: time.Now().UTC(),
		}
		mockService.On("RecordEntry", mock.Anything, userID, mock.MatchedBy(func(input *service.EntryInput) bool {
			return input.Account == "Cash" && input.Direction == "Received" && input.Amount.Equal(decimal.NewFromInt(250))
		})).Return(stored, nil).Once()

		router := setupLedgerRouter(h, userID)

		body, _ := json.Marshal(EntryRequest{
			Date:      "2024-03-01",
			Amount:    "250",
			Direction: "Received",
			Account:   "Cash",
		})
		req, _ := http.NewRequest(http.MethodPost, "/entries", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		resp := decodeData[EntryResponse](t, rr.Body.Bytes())
		assert.Equal(t, stored.ID.String(), resp.ID)
		assert.Equal(t, "250", resp.Debit)
		assert.Equal(t, "0", resp.Credit)
		assert.Equal(t, "2024-03-01", resp.Date)
		mockService.AssertExpectations(t)
	})

	t.Run("UnknownAccountReturns400", func(t *testing.T) {
		mockService := new(MockLedgerService)
		h := NewLedgerHandler(handlerTestLogger(), mockService)

		mockService.On("RecordEntry", mock.Anything, userID, mock.Anything).
			Return(nil, accounting.ErrUnknownAccount{Account: "Goodwill"}).Once()

		router := setupLedgerRouter(h, userID)

		body, _ := json.Marshal(EntryRequest{Amount: "10", Direction: "increase", Account: "Goodwill"})
		req, _ := http.NewRequest(http.MethodPost, "/entries", bytes.NewBuffer(body))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "unknown account")
	})

	t.Run("NonDecimalAmountReturns400", func(t *testing.T) {
		mockService := new(MockLedgerService)
		h := NewLedgerHandler(handlerTestLogger(), mockService)
		router := setupLedgerRouter(h, userID)

		body, _ := json.Marshal(EntryRequest{Amount: "ten", Direction: "increase", Account: "Cash"})
		req, _ := http.NewRequest(http.MethodPost, "/entries", bytes.NewBuffer(body))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockService.AssertNotCalled(t, "RecordEntry", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("MissingRequiredFieldsReturns400", func(t *testing.T) {
		mockService := new(MockLedgerService)
		h := NewLedgerHandler(handlerTestLogger(), mockService)
		router := setupLedgerRouter(h, userID)

		req, _ := http.NewRequest(http.MethodPost, "/entries", bytes.NewBufferString(`{"amount":"10"}`))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("MalformedDateReturns400", func(t *testing.T) {
		mockService := new(MockLedgerService)
		h := NewLedgerHandler(handlerTestLogger(), mockService)
		router := setupLedgerRouter(h, userID)

		body, _ := json.Marshal(EntryRequest{Date: "03/01/2024", Amount: "10", Direction: "increase", Account: "Cash"})
		req, _ := http.NewRequest(http.MethodPost, "/entries", bytes.NewBuffer(body))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("NoAuthenticatedUserReturns401", func(t *testing.T) {
		mockService := new(MockLedgerService)
		h := NewLedgerHandler(handlerTestLogger(), mockService)
		router := setupLedgerRouter(h, uuid.Nil)

		body, _ := json.Marshal(EntryRequest{Amount: "10", Direction: "increase", Account: "Cash"})
		req, _ := http.NewRequest(http.MethodPost, "/entries", bytes.NewBuffer(body))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestLedgerHandler_List(t *testing.T) {
	userID := uuid.New()

	t.Run("PassesAccountFilterThrough", func(t *testing.T) {
		mockService := new(MockLedgerService)
		h := NewLedgerHandler(handlerTestLogger(), mockService)

		entries := []*ledger.Entry{
			{ID: uuid.New(), UserID: userID, Account: accounting.AccountCash, Amount: decimal.NewFromInt(5), Debit: decimal.NewFromInt(5), Credit: decimal.Zero},
		}
		mockService.On("ListEntries", mock.Anything, userID, "Cash").Return(entries, nil).Once()

		router := setupLedgerRouter(h, userID)

		req, _ := http.NewRequest(http.MethodGet, "/entries?account=Cash", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		resp := decodeData[EntryListResponse](t, rr.Body.Bytes())
		require.Len(t, resp.Entries, 1)
		assert.Equal(t, "Cash", resp.Entries[0].Account)
		mockService.AssertExpectations(t)
	})

	t.Run("EmptyLedgerReturnsEmptyList", func(t *testing.T) {
		mockService := new(MockLedgerService)
		h := NewLedgerHandler(handlerTestLogger(), mockService)

		mockService.On("ListEntries", mock.Anything, userID, "").Return([]*ledger.Entry{}, nil).Once()

		router := setupLedgerRouter(h, userID)

		req, _ := http.NewRequest(http.MethodGet, "/entries", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		resp := decodeData[EntryListResponse](t, rr.Body.Bytes())
		assert.Empty(t, resp.Entries)
	})
}

func TestLedgerHandler_Update(t *testing.T) {
	userID := uuid.New()
	entryID := uuid.New()

	t.Run("NotFoundReturns404", func(t *testing.T) {
		mockService := new(MockLedgerService)
		h := NewLedgerHandler(handlerTestLogger(), mockService)

		mockService.On("UpdateEntry", mock.Anything, userID, entryID, mock.Anything).
			Return(nil, ledger.ErrEntryNotFound{EntryID: entryID}).Once()

		router := setupLedgerRouter(h, userID)

		body, _ := json.Marshal(EntryRequest{Amount: "10", Direction: "increase", Account: "Cash"})
		req, _ := http.NewRequest(http.MethodPut, "/entries/"+entryID.String(), bytes.NewBuffer(body))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("InvalidIDReturns400", func(t *testing.T) {
		mockService := new(MockLedgerService)
		h := NewLedgerHandler(handlerTestLogger(), mockService)
		router := setupLedgerRouter(h, userID)

		body, _ := json.Marshal(EntryRequest{Amount: "10", Direction: "increase", Account: "Cash"})
		req, _ := http.NewRequest(http.MethodPut, "/entries/not-a-uuid", bytes.NewBuffer(body))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockService.AssertNotCalled(t, "UpdateEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestLedgerHandler_Delete(t *testing.T) {
	userID := uuid.New()
	entryID := uuid.New()

	t.Run("SuccessReturns204", func(t *testing.T) {
		mockService := new(MockLedgerService)
		h := NewLedgerHandler(handlerTestLogger(), mockService)

		mockService.On("DeleteEntry", mock.Anything, userID, entryID).Return(nil).Once()

		router := setupLedgerRouter(h, userID)

		req, _ := http.NewRequest(http.MethodDelete, "/entries/"+entryID.String(), nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Empty(t, rr.Body.String())
	})

	t.Run("NotFoundReturns404", func(t *testing.T) {
		mockService := new(MockLedgerService)
		h := NewLedgerHandler(handlerTestLogger(), mockService)

		mockService.On("DeleteEntry", mock.Anything, userID, entryID).
			Return(ledger.ErrEntryNotFound{EntryID: entryID}).Once()

		router := setupLedgerRouter(h, userID)

		req, _ := http.NewRequest(http.MethodDelete, "/entries/"+entryID.String(), nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestLedgerHandler_TrialBalance(t *testing.T) {
	userID := uuid.New()

	mockService := new(MockLedgerService)
	h := NewLedgerHandler(handlerTestLogger(), mockService)

	mockService.On("TrialBalance", mock.Anything, userID).Return(ledger.TrialBalance{
		TotalDebit:  decimal.NewFromInt(500),
		TotalCredit: decimal.NewFromInt(250),
		Discrepancy: decimal.NewFromInt(250),
		Balanced:    false,
	}, nil).Once()

	router := setupLedgerRouter(h, userID)

	req, _ := http.NewRequest(http.MethodGet, "/trial-balance", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	resp := decodeData[TrialBalanceResponse](t, rr.Body.Bytes())
	assert.Equal(t, "500", resp.TotalDebit)
	assert.Equal(t, "250", resp.TotalCredit)
	assert.Equal(t, "250", resp.Discrepancy)
	assert.False(t, resp.Balanced)
}

func TestLedgerHandler_ListAccounts(t *testing.T) {
	mockService := new(MockLedgerService)
	h := NewLedgerHandler(handlerTestLogger(), mockService)

	mockService.On("ChartOfAccounts").Return([]service.AccountDescriptor{
		{Account: accounting.AccountCash, Category: accounting.CategoryAsset, NormalSide: "debit"},
		{Account: accounting.AccountSalesRevenue, Category: accounting.CategoryRevenue, NormalSide: "credit"},
	}).Once()

	router := setupLedgerRouter(h, uuid.New())

	req, _ := http.NewRequest(http.MethodGet, "/accounts", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	resp := decodeData[ChartResponse](t, rr.Body.Bytes())
	require.Len(t, resp.Accounts, 2)
	assert.Equal(t, accounting.AccountCash, resp.Accounts[0].Account)
	assert.Equal(t, "debit", resp.Accounts[0].NormalSide)
}
