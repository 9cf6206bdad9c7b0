package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sps-user-service/internal/adapter/gin/handler"
	"sps-user-service/internal/adapter/gin/middleware"
	"sps-user-service/pkg/security"
)

// SetupRouter configures and returns a Gin router with all routes and middleware
func SetupRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	tokens *security.TokenManager,
	log *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))

	// Health check endpoint
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "SPS User Management API is running!",
		})
	})

	authn := middleware.Auth(tokens, log)
	admin := middleware.RequireAdmin(log)

	// Authentication routes
	auth := router.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.GET("/profile", authn, authHandler.Profile)
	}

	// User routes (all protected, mutations admin-only)
	users := router.Group("/users", authn)
	{
		users.POST("", admin, userHandler.CreateUser)
		users.GET("", userHandler.ListUsers)
		users.GET("/:id", userHandler.GetUser)
		users.PUT("/:id", admin, userHandler.UpdateUser)
		users.DELETE("/:id", admin, userHandler.DeleteUser)
	}

	// Unmatched routes get a JSON 404 rather than gin's default
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "API endpoint not found"})
	})

	return router
}
