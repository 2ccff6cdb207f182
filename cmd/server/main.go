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

	"github.com/anonto42/forum-server/internal/handlers"
	"github.com/anonto42/forum-server/internal/middleware"
	"github.com/anonto42/forum-server/internal/router"
	"github.com/anonto42/forum-server/pkg/config"
	"github.com/anonto42/forum-server/pkg/firebase"
	"github.com/anonto42/forum-server/pkg/payment"
	"github.com/anonto42/forum-server/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	// Initialize Firebase
	ctx := context.Background()
	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}
	var identity middleware.IdentityVerifier
	if firebaseApp != nil {
		identity = firebaseApp
	}

	if cfg.StripeSecretKey == "" {
		log.Println("STRIPE_SECRET_KEY not set, payment intents will be rejected by Stripe.")
	}
	processor := payment.NewStripeProcessor(cfg.StripeSecretKey)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()
	e.HTTPErrorHandler = handlers.HTTPErrorHandler

	// Setup global middleware
	config.SetupMiddleware(e, cfg)

	// Setup routes and dependencies
	setupCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	err = router.SetupRoutes(setupCtx, e, cfg, db.Postgres, db.Mongo, identity, processor)
	cancel()
	if err != nil {
		db.CloseDB()
		log.Fatalf("Failed to set up routes: %v", err)
	}

	// Start server
	go func() {
		log.Printf("Server running on port %s (%s)", cfg.Port, cfg.Env)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}
	log.Println("Server stopped gracefully")
}
