package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/baedyl/Loxea-api/internal/config"
	"github.com/baedyl/Loxea-api/internal/database"
	"github.com/baedyl/Loxea-api/internal/middleware"
	"github.com/baedyl/Loxea-api/internal/modules/admin"
	"github.com/baedyl/Loxea-api/internal/modules/assistance"
	"github.com/baedyl/Loxea-api/internal/modules/auth"
	"github.com/baedyl/Loxea-api/internal/modules/directory"
	"github.com/baedyl/Loxea-api/internal/modules/feedback"
	"github.com/baedyl/Loxea-api/internal/modules/identification"
	"github.com/baedyl/Loxea-api/internal/observability"
	jwtsvc "github.com/baedyl/Loxea-api/internal/pkg/jwt"
	"github.com/baedyl/Loxea-api/internal/pkg/response"
	"github.com/baedyl/Loxea-api/internal/repository"
	"github.com/baedyl/Loxea-api/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := observability.NewLogger(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("database connect failed", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}

	objects, err := storage.NewS3Store(context.Background(), cfg.Storage)
	if err != nil {
		logger.Fatal("object storage init failed", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	identRepo := repository.NewIdentificationRepository(db)
	assistRepo := repository.NewAssistanceRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	contactRepo := repository.NewContactRepository(db)
	faqRepo := repository.NewFAQRepository(db)

	issuer := jwtsvc.New(cfg.JWTSecret)

	authService := auth.NewService(userRepo, tokenRepo, identRepo, issuer, cfg.AccessTTL, cfg.RefreshTTL)
	authHandler := auth.NewHandler(authService)

	assistService := assistance.NewService(assistRepo, objects, logger)
	assistHandler := assistance.NewHandler(assistService)

	feedbackHandler := feedback.NewHandler(feedbackRepo)
	directoryHandler := directory.NewHandler(contactRepo, faqRepo)
	adminHandler := admin.NewHandler(userRepo)

	identService := identification.NewService(identRepo)
	identHandler := identification.NewHandler(identService)

	if cfg.AppEnv != "dev" && cfg.AppEnv != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	policy := middleware.NewRoutePolicy()

	r := gin.New()
	r.Use(
		middleware.RequestLogger(logger),
		middleware.CORS(cfg.CORSAllowedOrigins),
		middleware.Authorization(policy, issuer, tokenRepo, userRepo),
	)
	r.NoRoute(response.NotFoundRoute)

	api := r.Group("/api")
	{
		authHandler.RegisterRoutes(api)
		assistHandler.RegisterClientRoutes(api, policy)
		feedbackHandler.RegisterClientRoutes(api, policy)
		directoryHandler.RegisterClientRoutes(api)
	}

	bo := r.Group("/bo")
	{
		// Back-office staff authenticate through the same flows.
		authHandler.RegisterRoutes(bo)
		adminHandler.RegisterRoutes(bo, policy)
		feedbackHandler.RegisterBackOfficeRoutes(bo, policy)
		directoryHandler.RegisterBackOfficeRoutes(bo, policy)
		assistHandler.RegisterBackOfficeRoutes(bo, policy)
		identHandler.RegisterRoutes(bo, policy)
	}

	srv := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", cfg.ServerAddr), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
}
