package main

import (
	"fmt"
	"net/http"
	"os"

	"spendsmart/internal/config"
	"spendsmart/internal/database"
	"spendsmart/internal/handlers"
	"spendsmart/internal/logger"
	"spendsmart/internal/middleware"
	"spendsmart/internal/services"
	"spendsmart/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "spendsmart/internal/docs" // Import swagger docs
)

// @title           SpendSmart API
// @version         1.0
// @description     SpendSmart is a personal finance application for tracking expenses, savings goals, streak-based habits, and a password-protected piggy bank.
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

	// Register custom request validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	expenseService := services.NewExpenseService(db)
	goalService := services.NewGoalService(db)
	piggyBankService := services.NewPiggyBankService(db)
	feedbackService := services.NewFeedbackService(db)
	loginEventService := services.NewLoginEventService(db)
	adminService := services.NewAdminService(db)

	// Bootstrap the owner account
	if err := userService.EnsureOwner(appConfig.OwnerEmail, appConfig.OwnerPassword); err != nil {
		return fmt.Errorf("failed to ensure owner account: %w", err)
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, loginEventService, goalService)
	expenseHandler := handlers.NewExpenseHandler(expenseService)
	goalHandler := handlers.NewGoalHandler(goalService)
	piggyBankHandler := handlers.NewPiggyBankHandler(piggyBankService)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService)
	adminHandler := handlers.NewAdminHandler(adminService, loginEventService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

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
	auth.POST("/forgot-password", authHandler.ForgotPassword)

	// Feedback submission and login-event reporting are open to visitors
	v1.POST("/feedback", feedbackHandler.Create)
	v1.POST("/logins", adminHandler.RecordLogin)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.POST("/auth/logout", authHandler.Logout)

	// User profile
	protected.GET("/profile", authHandler.GetProfile)
	protected.PUT("/profile/income", authHandler.SetIncome)

	// Expense ledger
	expenses := protected.Group("/expenses")
	expenses.POST("", expenseHandler.AddExpense)
	expenses.GET("", expenseHandler.ListExpenses)
	expenses.GET("/summary", expenseHandler.GetSummary)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	// Per-month income
	protected.PUT("/income/monthly", expenseHandler.SetMonthlyIncome)
	protected.GET("/income/monthly", expenseHandler.ListMonthlyIncomes)

	// Goals, streaks and badges
	goals := protected.Group("/goals")
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("", goalHandler.ListGoals)
	goals.POST("/:id/progress", goalHandler.AddProgress)
	goals.DELETE("/:id", goalHandler.DeleteGoal)

	protected.POST("/streak/check", goalHandler.CheckStreak)
	protected.GET("/streak", goalHandler.GetStreak)
	protected.GET("/badges", goalHandler.ListBadges)

	// Piggy bank
	piggy := protected.Group("/piggybank")
	piggy.GET("", piggyBankHandler.GetState)
	piggy.PUT("/password", piggyBankHandler.SetPassword)
	piggy.POST("/transactions", piggyBankHandler.Transact)
	piggy.GET("/transactions", piggyBankHandler.ListTransactions)

	// Account deletion request (user-initiated, owner-reviewed)
	protected.POST("/account/deletion-request", adminHandler.RequestDeletion)

	// Owner dashboard
	admin := protected.Group("/admin")
	admin.Use(middleware.RequireOwner())
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/logins", adminHandler.ListLogins)
	admin.GET("/feedback", feedbackHandler.List)
	admin.GET("/feedback/summary", feedbackHandler.Summary)
	admin.PUT("/feedback/:id", feedbackHandler.Update)
	admin.DELETE("/feedback/:id", feedbackHandler.Delete)
	admin.GET("/deletion-requests", adminHandler.ListDeletionRequests)
	admin.POST("/deletion-requests/:id/approve", adminHandler.ApproveDeletionRequest)
	admin.POST("/deletion-requests/:id/deny", adminHandler.DenyDeletionRequest)

	log.Infof("Starting SpendSmart backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
