package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/admin-edit-comment/internal/api"
	"github.com/admin-edit-comment/internal/auth"
	"github.com/admin-edit-comment/internal/config"
	"github.com/admin-edit-comment/internal/database"
	"github.com/admin-edit-comment/internal/metrics"
	"github.com/admin-edit-comment/internal/notify"
	"github.com/admin-edit-comment/internal/repository"
	"github.com/admin-edit-comment/internal/service"
	"github.com/admin-edit-comment/internal/view"
	"github.com/admin-edit-comment/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log := logger.New("info", "json")
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	log.Info().Msg("Starting admin edit comment server...")

	// Initialize database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Run migrations
	if err := db.RunMigrations(cfg.Database.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Initialize repositories
	repos := repository.New(db)

	// Initialize services
	services := service.NewServices(repos, cfg, log)

	// Initialize metrics
	m, err := metrics.New()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize metrics")
	}

	// Subscribe after-insert notifications
	var webhook *notify.Webhook
	if len(cfg.Notify.URLs) > 0 {
		webhook, err = notify.NewWebhook(cfg.Notify.URLs, cfg.Notify.Timeout, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to configure notifications")
		}
		services.Comment.OnAfterInsert(webhook.WithMetrics(m).Handle)
		log.Info().Int("targets", len(cfg.Notify.URLs)).Msg("Comment notifications enabled")
	}

	// Initialize router
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	router := api.NewRouter(&api.Dependencies{
		Services: services,
		Renderer: view.NewBuilder(services.Comment, repos.User, cfg.Comments.AuthorCacheTTL, log),
		Auth:     auth.NewAuthenticator(tokens, repos.User),
		Health:   db,
		Metrics:  m,
	}, cfg, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	// Flush pending notifications
	if webhook != nil {
		if err := webhook.Close(ctx); err != nil {
			log.Warn().Err(err).Msg("Pending notifications dropped")
		}
	}

	log.Info().Msg("Server exited gracefully")
}
