package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"devevent/config"
	_ "devevent/docs"
	"devevent/internal/adapters/auth"
	"devevent/internal/adapters/email"
	"devevent/internal/adapters/image"
	delivery "devevent/internal/delivery/http"
	"devevent/internal/delivery/http/controllers"
	"devevent/internal/delivery/http/middleware"
	"devevent/internal/repository/postgres"
	"devevent/internal/services"
)

const (
	serviceTimeout  = 5 * time.Second
	shutdownTimeout = 10 * time.Second
)

// @title DevEvent API
// @version 1.0
// @description Event listing and booking API with submission moderation.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger := config.NewLogger(cfg)

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)
	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "err", err)
		os.Exit(1)
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.SESAccessKeyID,
			SecretAccessKey: cfg.SESSecretKey,
		},
	})
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}
	images, err := image.NewStore(image.Config{
		Provider: cfg.ImageProvider,
		S3: image.S3Config{
			Region:          cfg.ImageRegion,
			Bucket:          cfg.ImageBucket,
			AccessKeyID:     cfg.ImageAccessKey,
			SecretAccessKey: cfg.ImageSecretKey,
			PublicBaseURL:   cfg.ImageBaseURL,
		},
	})
	if err != nil {
		logger.Error("failed to create image store", "err", err)
		os.Exit(1)
	}

	tokens := auth.NewJWTTokens(cfg.JWTSecret)
	hasher := auth.NewBcryptCodeHasher(0)

	eventRepo := postgres.NewEventRepository(db)
	pendingRepo := postgres.NewPendingEventRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	moderationRepo := postgres.NewModerationRepository(db)

	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())
	eventService := services.NewEventService(eventRepo, bookingRepo, images, serviceTimeout)
	moderationService := services.NewModerationService(pendingRepo, moderationRepo, images, serviceTimeout)
	bookingService := services.NewBookingService(bookingRepo, eventRepo, emailService, logger, serviceTimeout)
	queryService := services.NewQueryService(eventRepo, pendingRepo, serviceTimeout)
	authService := services.NewAuthService(cfg.AdminCodeHash, hasher, tokens)

	authController := controllers.NewAuthController(logger, authService)
	eventController := controllers.NewEventController(logger, eventService, moderationService, queryService)
	moderationController := controllers.NewModerationController(logger, moderationService)
	bookingController := controllers.NewBookingController(logger, bookingService)

	mux := delivery.NewRouter(logger, tokens, authController, eventController, moderationController, bookingController)
	handler := middleware.CORS(cfg.CORSAllowedOrigins, middleware.LoggingMiddleware(logger, mux))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server starting", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "err", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
