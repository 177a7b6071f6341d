package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// AuthorizationHeader is the HTTP header carrying the bearer token
	AuthorizationHeader = "Authorization"

	// UserIDKey is the key used to store the authenticated user id in the context
	UserIDKey = "user_id"

	bearerPrefix = "Bearer "
)

// TokenVerifier validates a bearer token and returns the user id it was
// issued for
type TokenVerifier interface {
	VerifyToken(tokenString string) (uuid.UUID, error)
}

// Auth middleware rejects requests without a valid bearer token and stores
// the authenticated user id in the context for handlers
func Auth(logger *slog.Logger, verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(AuthorizationHeader)
		if !strings.HasPrefix(header, bearerPrefix) {
			abortUnauthorized(c, "Missing bearer token")
			return
		}

		userID, err := verifier.VerifyToken(strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			logger.Info("Rejected bearer token",
				"path", c.Request.URL.Path,
				"error", err,
			)
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(UserIDKey, userID)

		c.Next()
	}
}

// GetUserID retrieves the authenticated user id from the gin context.
// The second return is false on routes outside the auth middleware.
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	if v, exists := c.Get(UserIDKey); exists {
		if userID, ok := v.(uuid.UUID); ok {
			return userID, true
		}
	}
	return uuid.Nil, false
}

func abortUnauthorized(c *gin.Context, message string) {
	response := gin.H{
		"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": message,
		},
	}

	if correlationID := GetCorrelationID(c); correlationID != "" {
		response["correlation_id"] = correlationID
	}

	c.AbortWithStatusJSON(http.StatusUnauthorized, response)
}
