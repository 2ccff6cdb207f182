package router

import (
	"context"
	"fmt"
	"log"

	"github.com/anonto42/forum-server/internal/auth"
	"github.com/anonto42/forum-server/internal/feed"
	"github.com/anonto42/forum-server/internal/handlers"
	"github.com/anonto42/forum-server/internal/middleware"
	"github.com/anonto42/forum-server/internal/models"
	"github.com/anonto42/forum-server/internal/repositories"
	"github.com/anonto42/forum-server/pkg/config"
	"github.com/anonto42/forum-server/pkg/payment"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// Dependencies are the collaborators the route table is built from
type Dependencies struct {
	Tokens        *auth.TokenService
	Identity      middleware.IdentityVerifier
	FeedSettings  feed.Settings
	Users         repositories.UserRepository
	Posts         repositories.PostRepository
	Comments      repositories.CommentRepository
	Feed          repositories.FeedRepository
	Catalog       repositories.CatalogRepository
	Announcements repositories.AnnouncementRepository
	Reports       repositories.ReportRepository
	Payments      repositories.PaymentRepository
	Stats         handlers.StatsReader
	Processor     payment.Processor
}

// SetupRoutes prepares both stores, builds the repositories and registers every route
func SetupRoutes(ctx context.Context, e *echo.Echo, cfg *config.Config, pgdb *gorm.DB, mgClient *mongo.Client, identity middleware.IdentityVerifier, processor payment.Processor) error {
	// AutoMigrate PostgreSQL models
	if err := pgdb.AutoMigrate(&models.Payment{}); err != nil {
		return fmt.Errorf("failed to auto migrate payments: %w", err)
	}
	log.Println("PostgreSQL auto-migrations completed.")

	store := repositories.NewStore(mgClient.Database(cfg.DBName), repositories.Collections(cfg.Collections), cfg.UseTransactions)
	if err := store.EnsureIndexes(ctx); err != nil {
		return err
	}

	settings, err := feed.NewSettings(cfg.FeedPageSize, cfg.FeedCommentLimit, cfg.FeedFilterMatch)
	if err != nil {
		return err
	}

	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL, cfg.CookieMaxAge, cfg.IsProduction())
	if err != nil {
		return err
	}

	// --- Initialize Repositories ---
	RegisterRoutes(e, Dependencies{
		Tokens:        tokens,
		Identity:      identity,
		FeedSettings:  settings,
		Users:         repositories.NewMongoUserRepository(store),
		Posts:         repositories.NewMongoPostRepository(store),
		Comments:      repositories.NewMongoCommentRepository(store),
		Feed:          repositories.NewMongoFeedRepository(store, settings),
		Catalog:       repositories.NewMongoCatalogRepository(store),
		Announcements: repositories.NewMongoAnnouncementRepository(store),
		Reports:       repositories.NewMongoReportRepository(store),
		Payments:      repositories.NewPostgresPaymentRepository(pgdb),
		Stats:         store,
		Processor:     processor,
	})
	return nil
}

// RegisterRoutes registers the forum routes. Guards are attached per route so that unknown paths
// still answer 404.
func RegisterRoutes(e *echo.Echo, deps Dependencies) {
	guards := handlers.Guards{
		Token: middleware.JWTAuthMiddleware(deps.Tokens),
		Admin: middleware.AdminMiddleware(deps.Users),
	}
	if deps.Identity != nil {
		guards.Identity = middleware.FirebaseIdentityMiddleware(deps.Identity)
		log.Println("Sign-in identity verification enabled on /jwt.")
	}

	api := e.Group("")

	// Health check - always accessible
	handlers.RegisterHealthRoutes(api)

	handlers.NewAuthHandler(deps.Tokens).RegisterAuthRoutes(api, guards)
	handlers.NewUserHandler(deps.Users).RegisterUserRoutes(api, guards)
	log.Println("Auth and user routes configured.")

	handlers.NewCatalogHandler(deps.Catalog).RegisterCatalogRoutes(api)
	handlers.NewPostHandler(deps.Posts, deps.Users).RegisterPostRoutes(api, guards)
	handlers.NewCommentHandler(deps.Comments, deps.Users).RegisterCommentRoutes(api, guards)
	handlers.NewFeedHandler(deps.Feed, deps.Users, deps.FeedSettings).RegisterFeedRoutes(api, guards)
	log.Println("Post, comment and feed routes configured.")

	handlers.NewAnnouncementHandler(deps.Announcements).RegisterAnnouncementRoutes(api, guards)
	handlers.NewReportHandler(deps.Reports).RegisterReportRoutes(api, guards)
	handlers.NewAdminHandler(deps.Users, deps.Stats).RegisterAdminRoutes(api, guards)
	log.Println("Admin routes configured.")

	handlers.NewPaymentHandler(deps.Payments, deps.Users, deps.Processor).RegisterPaymentRoutes(api, guards)
	log.Println("Payment routes configured.")

	log.Println("All routes configured.")
}
