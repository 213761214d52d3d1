package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"

	_ "github.com/lib/pq"

	httpapi "bloodlink-backend/internal/api/http"
	"bloodlink-backend/internal/config"
	"bloodlink-backend/internal/logger"
	"bloodlink-backend/internal/repository/postgres"
	"bloodlink-backend/internal/security"
	"bloodlink-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting BloodLink Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)

	// Identity provider is optional; without it the token exchange
	// endpoint rejects everything but password login still works.
	var verifier security.IdentityVerifier
	if cfg.Firebase.ProjectID != "" {
		verifier, err = security.NewFirebaseVerifier(context.Background(), cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
		if err != nil {
			logger.Error("Failed to initialize identity verifier", "error", err)
			log.Fatalf("Failed to initialize identity verifier: %v", err)
		}
		logger.Info("Identity verifier initialized", "project_id", cfg.Firebase.ProjectID)
	} else {
		logger.Warn("No identity provider configured, token exchange disabled")
	}

	// Initialize external gateways
	paymentGateway := service.NewStripeGateway(cfg.Stripe.SecretKey, cfg.Stripe.Currency)
	emailSvc := service.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)

	// Initialize Services
	authSvc := service.NewAuthService(store.UserRepository, tokenManager, verifier)
	userSvc := service.NewUserService(store.UserRepository, emailSvc)
	requestSvc := service.NewRequestService(store.RequestRepository, store.UserRepository, emailSvc)
	blogSvc := service.NewBlogService(store.BlogRepository, store.UserRepository)
	fundSvc := service.NewFundService(store.FundRepository, store.UserRepository, paymentGateway)

	// Initialize HTTP handlers and router
	router := httpapi.NewRouter(httpapi.Handlers{
		Auth:    httpapi.NewAuthHandler(authSvc),
		User:    httpapi.NewUserHandler(userSvc),
		Request: httpapi.NewRequestHandler(requestSvc),
		Blog:    httpapi.NewBlogHandler(blogSvc),
		Fund:    httpapi.NewFundHandler(fundSvc),
	}, tokenManager)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
