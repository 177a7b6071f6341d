package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ledgerbook/internal/api/service"
	"github.com/ledgerbook/internal/domain/identity"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, email, password string) (*identity.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, *identity.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*identity.User), args.Error(2)
}

func (m *MockAuthService) VerifyToken(tokenString string) (uuid.UUID, error) {
	args := m.Called(tokenString)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func setupAuthRouter(h *AuthHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	return r
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(MockAuthService)
		h := NewAuthHandler(handlerTestLogger(), mockService)

		user := &identity.User{ID: uuid.New(), Email: "jamie@example.com", CreatedAt: time.Now().UTC()}
		mockService.On("Register", mock.Anything, "jamie@example.com", "hunter2hunter2").Return(user, nil).Once()

		router := setupAuthRouter(h)

		body, _ := json.Marshal(RegisterRequest{Email: "jamie@example.com", Password: "hunter2hunter2"})
		req, _ := http.NewRequest(http.MethodPost, "/auth/register", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		resp := decodeData[UserResponse](t, rr.Body.Bytes())
		assert.Equal(t, user.ID.String(), resp.ID)
		assert.Equal(t, "jamie@example.com", resp.Email)
		assert.NotContains(t, rr.Body.String(), "password")
		mockService.AssertExpectations(t)
	})

	t.Run("DuplicateEmailReturns409", func(t *testing.T) {
		mockService := new(MockAuthService)
		h := NewAuthHandler(handlerTestLogger(), mockService)

		mockService.On("Register", mock.Anything, "jamie@example.com", "hunter2hunter2").
			Return(nil, identity.ErrDuplicateEmail{Email: "jamie@example.com"}).Once()

		router := setupAuthRouter(h)

		body, _ := json.Marshal(RegisterRequest{Email: "jamie@example.com", Password: "hunter2hunter2"})
		req, _ := http.NewRequest(http.MethodPost, "/auth/register", bytes.NewBuffer(body))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("ShortPasswordReturns400", func(t *testing.T) {
		mockService := new(MockAuthService)
		h := NewAuthHandler(handlerTestLogger(), mockService)
		router := setupAuthRouter(h)

		body, _ := json.Marshal(RegisterRequest{Email: "jamie@example.com", Password: "short"})
		req, _ := http.NewRequest(http.MethodPost, "/auth/register", bytes.NewBuffer(body))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockService.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("InvalidEmailReturns400", func(t *testing.T) {
		mockService := new(MockAuthService)
		h := NewAuthHandler(handlerTestLogger(), mockService)
		router := setupAuthRouter(h)

		body, _ := json.Marshal(RegisterRequest{Email: "not-an-email", Password: "hunter2hunter2"})
		req, _ := http.NewRequest(http.MethodPost, "/auth/register", bytes.NewBuffer(body))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("SuccessReturnsToken", func(t *testing.T) {
		mockService := new(MockAuthService)
		h := NewAuthHandler(handlerTestLogger(), mockService)

		user := &identity.User{ID: uuid.New(), Email: "jamie@example.com", CreatedAt: time.Now().UTC()}
		mockService.On("Login", mock.Anything, "jamie@example.com", "hunter2hunter2").
			Return("signed-token", user, nil).Once()

		router := setupAuthRouter(h)

		body, _ := json.Marshal(LoginRequest{Email: "jamie@example.com", Password: "hunter2hunter2"})
		req, _ := http.NewRequest(http.MethodPost, "/auth/login", bytes.NewBuffer(body))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		resp := decodeData[LoginResponse](t, rr.Body.Bytes())
		assert.Equal(t, "signed-token", resp.Token)
		assert.Equal(t, user.ID.String(), resp.User.ID)
		mockService.AssertExpectations(t)
	})

	t.Run("BadCredentialsReturn401", func(t *testing.T) {
		mockService := new(MockAuthService)
		h := NewAuthHandler(handlerTestLogger(), mockService)

		mockService.On("Login", mock.Anything, "jamie@example.com", "wrong").
			Return("", nil, service.ErrInvalidCredentials).Once()

		router := setupAuthRouter(h)

		body, _ := json.Marshal(LoginRequest{Email: "jamie@example.com", Password: "wrong"})
		req, _ := http.NewRequest(http.MethodPost, "/auth/login", bytes.NewBuffer(body))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		require.Contains(t, rr.Body.String(), "UNAUTHORIZED")
	})
}
