// Package http provides the API server, its router and the shared gin middleware.
package http

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/fintrack/internal/auth/http"
	budgetHTTP "github.com/allisson/fintrack/internal/budget/http"
	"github.com/allisson/fintrack/internal/config"
	expenseHTTP "github.com/allisson/fintrack/internal/expense/http"
	"github.com/allisson/fintrack/internal/metrics"
	userHTTP "github.com/allisson/fintrack/internal/user/http"
)

// Server represents the API HTTP server.
type Server struct {
	listener
	db     *sql.DB
	router *gin.Engine
}

// Handlers groups the resource handlers mounted under /v1.
type Handlers struct {
	User    *userHTTP.UserHandler
	Expense *expenseHTTP.ExpenseHandler
	Budget  *budgetHTTP.BudgetHandler
}

// NewServer creates a new HTTP server. Call SetupRouter before Start.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		listener: newListener("http server", host, port, logger),
		db:       db,
	}
}

// SetupRouter builds the gin engine.
//
// Routes:
//   - GET /health, GET /ready
//   - POST /v1/users (public, per-IP rate limited)
//   - everything else under /v1 runs authentication, per-user rate limiting and the
//     encryption context, in that order
//
// ctx bounds the lifetime of the rate limiter cleanup goroutines.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	handlers Handlers,
	authentication gin.HandlerFunc,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")

	register := []gin.HandlerFunc{}
	if cfg.RateLimitRegistrationEnabled {
		register = append(register, authHTTP.IPRateLimitMiddleware(
			ctx, cfg.RateLimitRegistrationRequestsPerSec, cfg.RateLimitRegistrationBurst, s.logger,
		))
	}
	register = append(register, handlers.User.RegisterHandler)
	v1.POST("/users", register...)

	protected := v1.Group("")
	protected.Use(authentication)
	if cfg.RateLimitEnabled {
		protected.Use(authHTTP.RateLimitMiddleware(ctx, cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger))
	}
	protected.Use(authHTTP.EncryptionContextMiddleware(s.logger))

	protected.GET("/users/me", handlers.User.MeHandler)

	expenses := protected.Group("/expenses")
	{
		expenses.POST("", handlers.Expense.CreateHandler)
		expenses.POST("/batch", handlers.Expense.CreateBatchHandler)
		expenses.PUT("/bulk", handlers.Expense.UpdateBatchHandler)
		expenses.POST("/bulk-delete", handlers.Expense.DeleteBatchHandler)
		expenses.GET("", handlers.Expense.ListHandler)
		expenses.GET("/:id", handlers.Expense.GetHandler)
		expenses.PUT("/:id", handlers.Expense.UpdateHandler)
		expenses.DELETE("/:id", handlers.Expense.DeleteHandler)
	}

	budgets := protected.Group("/budgets")
	{
		budgets.GET("", handlers.Budget.ListHandler)
		budgets.PUT("/:period", handlers.Budget.UpsertHandler)
		budgets.GET("/:period", handlers.Budget.GetHandler)
		budgets.DELETE("/:period", handlers.Budget.DeleteHandler)
	}

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return errors.New("router not configured")
	}
	return s.serve(s.router)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (s *Server) readinessHandler(c *gin.Context) {
	dbStatus := "ok"
	if s.db == nil {
		dbStatus = "error"
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := s.db.PingContext(ctx); err != nil {
			s.logger.Warn("readiness check failed", slog.Any("error", err))
			dbStatus = "error"
		}
	}

	if dbStatus != "ok" {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": dbStatus},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"database": dbStatus},
	})
}
