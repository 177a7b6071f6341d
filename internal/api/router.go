package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ledgerbook/internal/api/handler"
	"github.com/ledgerbook/internal/api/middleware"
)

// setupRouter configures API routes and middleware for the application.
// Registration, login and the chart listing are public; everything touching
// a user's ledger sits behind the bearer token middleware.
func setupRouter(
	logger *slog.Logger,
	r *gin.Engine,
	authHandler *handler.AuthHandler,
	ledgerHandler *handler.LedgerHandler,
	verifier middleware.TokenVerifier,
) {
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CorrelationID())

	// API v1 endpoints
	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// The chart of accounts is fixed and not user-specific
		v1.GET("/accounts", ledgerHandler.ListAccounts)

		protected := v1.Group("")
		protected.Use(middleware.Auth(logger, verifier))
		{
			entries := protected.Group("/entries")
			{
				entries.POST("", ledgerHandler.Record)
				entries.GET("", ledgerHandler.List)
				entries.PUT("/:id", ledgerHandler.Update)
				entries.DELETE("/:id", ledgerHandler.Delete)
			}

			protected.GET("/trial-balance", ledgerHandler.TrialBalance)
		}
	}

	// Health check endpoint for monitoring
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})
}
