package main

import (
	"fmt"
	"net/http"
	"os"
	"souqly/internal/config"
	"souqly/internal/database"
	"souqly/internal/handlers"
	"souqly/internal/logger"
	"souqly/internal/middleware"
	"souqly/internal/services"
	"souqly/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "souqly/internal/docs" // Import swagger docs
)

// @title           Souqly API
// @version         1.0
// @description     Souqly is a digital services storefront with a multilingual catalog, WhatsApp order hand-off, and an admin back office.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom binding validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	taxonomyService := services.NewTaxonomyService(db)
	catalogService := services.NewCatalogService(db)
	reviewService := services.NewReviewService(db)
	favoriteService := services.NewFavoriteService(db)
	settingsService := services.NewSettingsService(db, appConfig.WhatsAppNumber)
	auditService := services.NewAuditService(db)
	orderService := services.NewOrderService(db, settingsService, auditService)

	// Bootstrap admin account from the environment if configured
	if err := userService.EnsureAdmin(appConfig.AdminEmail, appConfig.AdminPassword); err != nil {
		return fmt.Errorf("failed to bootstrap admin account: %w", err)
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	taxonomyHandler := handlers.NewTaxonomyHandler(taxonomyService)
	catalogHandler := handlers.NewCatalogHandler(catalogService, reviewService, favoriteService, taxonomyService)
	orderHandler := handlers.NewOrderHandler(orderService, auditService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	adminUserHandler := handlers.NewAdminUserHandler(userService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Guest-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	v1.GET("/categories", taxonomyHandler.ListCategories)
	v1.GET("/categories/:id", taxonomyHandler.GetCategory)
	v1.GET("/icons", catalogHandler.ListIcons)
	v1.GET("/contact", settingsHandler.GetContact)

	// Storefront routes usable with or without a session
	storefront := v1.Group("/")
	storefront.Use(middleware.OptionalAuth())
	storefront.GET("/services", catalogHandler.ListServices)
	storefront.GET("/services/:id", catalogHandler.GetService)
	storefront.GET("/services/:id/reviews", reviewHandler.ListReviews)
	storefront.POST("/orders", orderHandler.CreateOrder)
	storefront.GET("/orders/lookup", orderHandler.LookupOrders)
	storefront.POST("/orders/:id/cancel", orderHandler.CancelOrder)
	storefront.GET("/favorites", favoriteHandler.ListFavorites)
	storefront.POST("/favorites/:id/toggle", favoriteHandler.ToggleFavorite)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())
	protected.GET("/profile", authHandler.GetProfile)
	protected.GET("/orders/mine", orderHandler.ListMyOrders)
	protected.POST("/services/:id/reviews", reviewHandler.CreateReview)
	protected.DELETE("/reviews/:id", reviewHandler.DeleteReview)

	// Admin back office
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminRequired())

	admin.POST("/categories", taxonomyHandler.CreateCategory)
	admin.PUT("/categories/:id", taxonomyHandler.UpdateCategory)
	admin.DELETE("/categories/:id", taxonomyHandler.DeleteCategory)

	admin.GET("/services", catalogHandler.AdminListServices)
	admin.POST("/services", catalogHandler.CreateService)
	admin.PUT("/services/:id", catalogHandler.UpdateService)
	admin.PATCH("/services/:id/active", catalogHandler.SetServiceActive)
	admin.DELETE("/services/:id", catalogHandler.DeleteService)

	admin.GET("/orders", orderHandler.AdminListOrders)
	admin.GET("/orders/:id", orderHandler.AdminGetOrder)
	admin.PATCH("/orders/:id/status", orderHandler.AdminUpdateOrderStatus)

	admin.GET("/users", adminUserHandler.ListUsers)
	admin.PATCH("/users/:id/role", adminUserHandler.SetUserRole)
	admin.PATCH("/users/:id/active", adminUserHandler.SetUserActive)

	admin.GET("/settings", settingsHandler.GetSettings)
	admin.PUT("/settings", settingsHandler.UpdateSettings)

	log.Infof("Starting Souqly backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
