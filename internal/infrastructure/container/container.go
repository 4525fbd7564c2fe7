package container

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/reelmate/reelmate-backend/internal/config"
	"github.com/reelmate/reelmate-backend/internal/delivery/http"
	"github.com/reelmate/reelmate-backend/internal/delivery/http/handler"
	"github.com/reelmate/reelmate-backend/internal/delivery/http/middleware"
	"github.com/reelmate/reelmate-backend/internal/infrastructure/catalog"
	"github.com/reelmate/reelmate-backend/internal/infrastructure/database"
	"github.com/reelmate/reelmate-backend/internal/infrastructure/server"
	"github.com/reelmate/reelmate-backend/internal/infrastructure/wingman"
	"github.com/reelmate/reelmate-backend/internal/repository/postgres"
	"github.com/reelmate/reelmate-backend/internal/usecase/auth"
	"github.com/reelmate/reelmate-backend/internal/usecase/feed"
	"github.com/reelmate/reelmate-backend/internal/usecase/match"
	"github.com/reelmate/reelmate-backend/internal/usecase/profile"
	"github.com/reelmate/reelmate-backend/internal/usecase/swipe"
	"github.com/rs/zerolog/log"
)

// Container holds all application dependencies
type Container struct {
	Config  *config.Config
	DB      *sqlx.DB
	Redis   *redis.Client
	Server  *server.Server
	Wingman *wingman.Client
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	// Initialize database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize Redis. The genre cache degrades to catalog-only fetches
	// without it, so a failed connection is not fatal.
	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, genre cache disabled")
		redisClient = nil
	}

	// Initialize wingman client for icebreaker generation
	var wingmanClient *wingman.Client
	if cfg.Wingman.APIKey != "" {
		wingmanClient, err = wingman.NewClient(cfg.Wingman.APIKey)
		if err != nil {
			log.Warn().Err(err).Msg("wingman client unavailable, matches will not get icebreakers")
			wingmanClient = nil
		}
	}

	// Initialize genre catalog index
	genreIndex := catalog.NewGenreIndex(redisClient, cfg.Catalog.APIKey, cfg.Catalog.BaseURL)

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	swipeRepo := postgres.NewSwipeRepository(db)
	matchRepo := postgres.NewMatchRepository(db)

	// Initialize use cases
	authUseCase := auth.NewAuthUseCase(
		userRepo,
		profileRepo,
		cfg.JWT.AccessSecret,
		time.Duration(cfg.JWT.AccessExpiryMin)*time.Minute,
	)

	profileUseCase := profile.NewProfileUseCase(
		profileRepo,
		genreIndex,
	)

	feedUseCase := feed.NewFeedUseCase(
		profileRepo,
		swipeRepo,
	)

	swipeUseCase := swipe.NewSwipeUseCase(
		swipeRepo,
		matchRepo,
		profileRepo,
		wingmanClient,
	)

	matchUseCase := match.NewMatchUseCase(
		matchRepo,
		profileRepo,
	)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUseCase)
	profileHandler := handler.NewProfileHandler(profileUseCase)
	catalogHandler := handler.NewCatalogHandler(genreIndex)
	feedHandler := handler.NewFeedHandler(feedUseCase)
	swipeHandler := handler.NewSwipeHandler(swipeUseCase)
	matchHandler := handler.NewMatchHandler(matchUseCase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(authUseCase)

	// Initialize router
	router := http.NewRouter(
		authHandler,
		profileHandler,
		catalogHandler,
		feedHandler,
		swipeHandler,
		matchHandler,
		authMiddleware,
	)

	// Setup routes
	ginRouter := router.Setup()

	// Initialize server
	srv := server.NewServer(&cfg.Server, ginRouter)

	return &Container{
		Config:  cfg,
		DB:      db,
		Redis:   redisClient,
		Server:  srv,
		Wingman: wingmanClient,
	}, nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Wingman != nil {
		c.Wingman.Close()
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close redis")
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
