package api

import (
	"context"
	"net/http"
	"time"

	"github.com/admin-edit-comment/internal/config"
	"github.com/admin-edit-comment/internal/metrics"
	"github.com/admin-edit-comment/internal/models"
	"github.com/admin-edit-comment/internal/service"
	"github.com/admin-edit-comment/internal/view"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Authenticator resolves a bearer token into the acting user
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// HealthChecker reports whether a backing store is reachable
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Dependencies are the collaborators the HTTP layer needs
type Dependencies struct {
	Services *service.Services
	Renderer view.Renderer
	Auth     Authenticator
	// Health and Metrics are optional
	Health   HealthChecker
	Metrics  *metrics.Metrics
}

// NewRouter creates and configures the Gin router
func NewRouter(deps *Dependencies, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(requestIDMiddleware())
	router.Use(localeMiddleware())
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(metricsMiddleware(deps.Metrics))
	router.Use(corsMiddleware())

	// Handlers
	commentHandler := NewCommentHandler(deps.Services, deps.Renderer, deps.Metrics, log)
	settingsHandler := NewSettingsHandler(deps.Services, cfg, log)
	writeLimit := rateLimitMiddleware(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)

	// Health check
	router.GET("/health", healthCheck(deps.Health))
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	// API v1
	v1 := router.Group("/v1")
	v1.Use(timeoutMiddleware(cfg.Server.RequestTimeout))
	v1.Use(authMiddleware(deps.Auth, log))
	v1.Use(requireCapability((*models.User).CanEditPosts))
	{
		// Comment endpoints
		comments := v1.Group("/comments")
		{
			comments.POST("/insert", writeLimit, commentHandler.Insert)
			comments.POST("/delete", writeLimit, commentHandler.Delete)
		}

		// Endpoint compatible with the admin ajax convention, dispatching on "action"
		v1.POST("/ajax", writeLimit, commentHandler.Dispatch)

		// Comment box of one content item
		v1.GET("/posts/:post_id/comments", commentHandler.MetaBox)

		// Settings endpoints
		settings := v1.Group("/settings")
		settings.Use(requireCapability((*models.User).CanManageOptions))
		{
			settings.GET("", settingsHandler.Get)
			settings.PUT("", writeLimit, settingsHandler.Update)
		}
	}

	return router
}

// healthCheck returns the health status
func healthCheck(checker HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, code := "healthy", http.StatusOK
		if checker != nil {
			if err := checker.HealthCheck(c.Request.Context()); err != nil {
				status, code = "unhealthy", http.StatusServiceUnavailable
			}
		}

		c.JSON(code, gin.H{
			"status":    status,
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   "admin-edit-comment",
		})
	}
}
