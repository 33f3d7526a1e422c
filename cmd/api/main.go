package main

import (
	"fmt"
	"net/http"
	"os"

	"fintrack/internal/config"
	"fintrack/internal/database"
	"fintrack/internal/handlers"
	"fintrack/internal/logger"
	"fintrack/internal/middleware"
	"fintrack/internal/services"
	"fintrack/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "fintrack/internal/docs" // Import swagger docs
)

// @title           Finance Tracker API
// @version         1.0
// @description     Personal finance tracker backend: authenticated users record income and expense transactions, list them, export them as CSV, and bulk-clear them.

// @host      localhost:8080
// @BasePath  /api

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
	transactionService := services.NewTransactionService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Root and health endpoints
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Finance Tracker backend running successfully. Try /api/transactions/")
	})
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	// Public routes
	api.POST("/signup/", authHandler.Signup)
	api.POST("/token/", authHandler.Login)
	api.POST("/token/refresh/", authHandler.Refresh)

	// Protected transaction routes
	transactions := api.Group("/transactions")
	transactions.Use(middleware.AuthMiddleware())
	transactions.GET("/", transactionHandler.ListTransactions)
	transactions.POST("/", transactionHandler.CreateTransaction)
	transactions.GET("/export_csv/", transactionHandler.ExportCSV)
	transactions.DELETE("/clear/", transactionHandler.ClearTransactions)
	transactions.GET("/:id/", transactionHandler.GetTransactionByID)
	transactions.PUT("/:id/", transactionHandler.UpdateTransaction)
	transactions.PATCH("/:id/", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id/", transactionHandler.DeleteTransaction)

	log.Infof("Starting Finance Tracker backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
