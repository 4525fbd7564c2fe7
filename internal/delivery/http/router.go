package http

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/reelmate/reelmate-backend/internal/delivery/http/handler"
	"github.com/reelmate/reelmate-backend/internal/delivery/http/middleware"
	"github.com/reelmate/reelmate-backend/internal/domain"
)

type Router struct {
	authHandler    *handler.AuthHandler
	profileHandler *handler.ProfileHandler
	catalogHandler *handler.CatalogHandler
	feedHandler    *handler.FeedHandler
	swipeHandler   *handler.SwipeHandler
	matchHandler   *handler.MatchHandler
	authMiddleware *middleware.AuthMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	catalogHandler *handler.CatalogHandler,
	feedHandler *handler.FeedHandler,
	swipeHandler *handler.SwipeHandler,
	matchHandler *handler.MatchHandler,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		authHandler:    authHandler,
		profileHandler: profileHandler,
		catalogHandler: catalogHandler,
		feedHandler:    feedHandler,
		swipeHandler:   swipeHandler,
		matchHandler:   matchHandler,
		authMiddleware: authMiddleware,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.Default()

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("swipeaction", func(fl validator.FieldLevel) bool {
			return domain.SwipeAction(fl.Field().String()).Valid()
		})
		v.RegisterValidation("gender", func(fl validator.FieldLevel) bool {
			return domain.Gender(fl.Field().String()).Valid()
		})
	}

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	// API v1
	v1 := router.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authHandler.Register)
			auth.POST("/login", r.authHandler.Login)
			auth.GET("/me", r.authMiddleware.RequireAuth(), r.authHandler.Me)
		}

		// Genre catalog (public)
		v1.GET("/catalog/genres", r.catalogHandler.GetGenres)

		// Protected routes
		protected := v1.Group("")
		protected.Use(r.authMiddleware.RequireAuth())
		{
			// Profile routes
			profile := protected.Group("/profile")
			{
				profile.GET("/me", r.profileHandler.GetMyProfile)
				profile.PUT("/me", r.profileHandler.UpdateMyProfile)
				profile.GET("/:uid", r.profileHandler.GetProfileByUID)
			}

			// Feed routes
			feed := protected.Group("/feed")
			{
				feed.GET("/candidates", r.feedHandler.GetCandidates)
			}

			// Swipe routes
			protected.POST("/swipe", r.swipeHandler.RecordSwipe)

			// Match routes
			protected.GET("/matches", r.matchHandler.GetMyMatches)
		}
	}

	return router
}
