package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"memorial-backend/internal/shared/middleware"
	"memorial-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupProfileRoutes(v1, c)
		setupProviderRoutes(v1, c)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
	}

	users := v1.Group("/users")
	users.Use(middleware.RequireAuth(c.JWTManager))
	{
		users.GET("/me", c.UserHandler.Me)
		users.DELETE("/me", c.UserHandler.DeleteAccount)
	}
}

// ========================================
// PROFILE ROUTES
// ========================================
// Reads, candle lighting and comment submission are public; everything
// else resolves the caller's role against the profile, so the handlers
// only need the verified identity when one is present.
func setupProfileRoutes(v1 *gin.RouterGroup, c *container.Container) {
	profiles := v1.Group("/profiles")
	profiles.Use(middleware.OptionalAuth(c.JWTManager))
	{
		profiles.GET("", c.ProfileHandler.List)
		profiles.GET("/:slug", c.ProfileHandler.Get)
		profiles.POST("/:slug/candle", c.ProfileHandler.LightCandle)
		profiles.POST("/:slug/comments", c.ProfileHandler.SubmitComment)
		profiles.GET("/:slug/stories", c.ProfileHandler.ListStories)
	}

	authed := v1.Group("/profiles")
	authed.Use(middleware.RequireAuth(c.JWTManager))
	{
		authed.POST("", c.ProfileHandler.Create)
		authed.PUT("/:slug", c.ProfileHandler.Update)
		authed.DELETE("/:slug", c.ProfileHandler.Delete)
		authed.PUT("/:slug/aftercare", c.ProfileHandler.SetAftercarePlan)
		authed.POST("/:slug/photos", c.ProfileHandler.UploadPhoto)

		authed.GET("/:slug/contributors", c.ProfileHandler.ListContributors)
		authed.POST("/:slug/contributors", c.ProfileHandler.InviteContributor)
		authed.DELETE("/:slug/contributors", c.ProfileHandler.RemoveContributor)

		authed.POST("/:slug/comments/:id/approve", c.ProfileHandler.ApproveComment)
		authed.DELETE("/:slug/comments/:id", c.ProfileHandler.DeleteComment)

		authed.POST("/:slug/stories", c.ProfileHandler.SubmitStory)
		authed.PUT("/:slug/stories", c.ProfileHandler.SetStoryApproval)
		authed.DELETE("/:slug/stories", c.ProfileHandler.DeleteStory)

		authed.POST("/:slug/generate-storybook", c.ProfileHandler.GenerateStorybook)
	}

	invitations := v1.Group("/invitations")
	invitations.Use(middleware.RequireAuth(c.JWTManager))
	{
		invitations.POST("/accept", c.ProfileHandler.AcceptInvitation)
	}
}

// ========================================
// PROVIDER ROUTES
// ========================================
func setupProviderRoutes(v1 *gin.RouterGroup, c *container.Container) {
	providers := v1.Group("/providers")
	{
		providers.GET("/search", c.ProviderHandler.Search)
		providers.GET("/:id", c.ProviderHandler.Get)
	}

	v1.POST("/leads", c.ProviderHandler.SubmitLead)
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		}

		dbStatus := "ok"
		if appCtx.DB == nil {
			dbStatus = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := appCtx.DB.Ping(ctx); err != nil {
				dbStatus = fmt.Sprintf("error: %v", err)
			}
		}

		redisStatus := "ok"
		if appCtx.Cache == nil {
			redisStatus = "disconnected"
		} else if err := appCtx.Cache.Ping(c.Request.Context()); err != nil {
			redisStatus = fmt.Sprintf("error: %v", err)
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			health["status"] = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
