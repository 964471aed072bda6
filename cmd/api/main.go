package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"urswat-backend/config"
	_ "urswat-backend/docs" // Important for Swagger
	v1 "urswat-backend/internal/delivery/http/v1"
	"urswat-backend/internal/repository/postgres"
	"urswat-backend/internal/usecase"
	"urswat-backend/pkg/auth"
	"urswat-backend/pkg/cvstore"
	"urswat-backend/pkg/database"
	"urswat-backend/pkg/email"
	"urswat-backend/pkg/logger"

	"github.com/go-playground/validator/v10"
)

// @title           Urswat Lead Intake API
// @version         1.0
// @description     Recruiting lead-intake backend: public talent and company registration plus an authenticated staff dashboard.
// @host            localhost:8080
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting lead intake backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(context.Background(), cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if err := database.Migrate(cfg.DBUrl); err != nil {
		logger.Log.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	// 4. Setup Repositories
	talentRepo := postgres.NewTalentRepository(dbPool)
	companyRepo := postgres.NewCompanyRepository(dbPool)
	userRepo := postgres.NewUserRepository(dbPool)

	// 5. Setup Email Sender and CV Store
	mailer := email.NewSender(cfg)
	if !mailer.IsConfigured() {
		logger.Log.Warn("Email sender not fully configured - welcome emails will be skipped")
	}

	cvStore, err := cvstore.New(cfg.UploadDir, cfg.UploadURLPrefix)
	if err != nil {
		logger.Log.Error("Failed to initialize CV store", "error", err)
		os.Exit(1)
	}

	// 6. Setup UseCases
	validate := validator.New()
	tokens := auth.NewTokenManager(cfg.JWTSecret)
	talentUC := usecase.NewTalentUsecase(talentRepo, cvStore, mailer, validate)
	companyUC := usecase.NewCompanyUsecase(companyRepo, mailer, validate)
	authUC := usecase.NewAuthUsecase(userRepo, tokens, validate)
	userUC := usecase.NewUserUsecase(userRepo, validate)

	// 7. Seed bootstrap admin
	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if err := authUC.EnsureAdmin(context.Background(), cfg.AdminEmail, cfg.AdminPassword); err != nil {
			logger.Log.Error("Failed to seed admin user", "error", err)
			os.Exit(1)
		}
	}

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		TalentUC:    talentUC,
		CompanyUC:   companyUC,
		AuthUC:      authUC,
		UserUC:      userUC,
		Tokens:      tokens,
		UploadDir:   cfg.UploadDir,
		FrontendURL: cfg.FrontendURL,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
