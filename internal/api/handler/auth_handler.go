package handler

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ledgerbook/internal/api/service"
	"github.com/ledgerbook/internal/domain/identity"
)

// AuthHandler handles HTTP requests for registration and login
type AuthHandler struct {
	authService service.AuthService
	logger      *slog.Logger
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(logger *slog.Logger, authService service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Register creates a new user, returns 409 if the email is taken
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, identity.ErrDuplicateEmail{}) {
			RespondConflict(c, "Email is already registered")
			return
		}
		h.logger.Error("Failed to register user", "error", err)
		RespondInternalError(c)
		return
	}

	RespondCreated(c, mapUserToResponse(user))
}

// Login verifies the credentials and returns a bearer token
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			RespondUnauthorized(c, "Invalid email or password")
			return
		}
		h.logger.Error("Failed to log user in", "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, LoginResponse{
		Token: token,
		User:  mapUserToResponse(user),
	})
}

// mapUserToResponse maps a user to a response DTO
func mapUserToResponse(user *identity.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		Email:     user.Email,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}
