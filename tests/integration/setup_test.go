package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"spendsmart/internal/handlers"
	"spendsmart/internal/logger"
	"spendsmart/internal/middleware"
	"spendsmart/internal/models"
	"spendsmart/internal/services"
	"spendsmart/internal/validator"
)

// ownerEmail and ownerPassword are the bootstrapped owner credentials
// every test app starts with.
const (
	ownerEmail    = "owner@spendsmart.local"
	ownerPassword = "owner-review-password"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.Expense{},
		&models.MonthlyIncome{},
		&models.Goal{},
		&models.BadgeAward{},
		&models.Streak{},
		&models.PiggyBank{},
		&models.PiggyTransaction{},
		&models.FeedbackItem{},
		&models.LoginEvent{},
		&models.DeletionRequest{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory
// SQLite. The owner account is bootstrapped the same way the server does it
// on startup.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
	userService := services.NewUserService(db)
	expenseService := services.NewExpenseService(db)
	goalService := services.NewGoalService(db)
	piggyBankService := services.NewPiggyBankService(db)
	feedbackService := services.NewFeedbackService(db)
	loginEventService := services.NewLoginEventService(db)
	adminService := services.NewAdminService(db)

	if err := userService.EnsureOwner(ownerEmail, ownerPassword); err != nil {
		t.Fatalf("failed to bootstrap owner account: %v", err)
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, loginEventService, goalService)
	expenseHandler := handlers.NewExpenseHandler(expenseService)
	goalHandler := handlers.NewGoalHandler(goalService)
	piggyBankHandler := handlers.NewPiggyBankHandler(piggyBankService)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService)
	adminHandler := handlers.NewAdminHandler(adminService, loginEventService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)
	auth.POST("/forgot-password", authHandler.ForgotPassword)

	v1.POST("/feedback", feedbackHandler.Create)
	v1.POST("/logins", adminHandler.RecordLogin)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.POST("/auth/logout", authHandler.Logout)
	protected.GET("/profile", authHandler.GetProfile)
	protected.PUT("/profile/income", authHandler.SetIncome)

	expenses := protected.Group("/expenses")
	expenses.POST("", expenseHandler.AddExpense)
	expenses.GET("", expenseHandler.ListExpenses)
	expenses.GET("/summary", expenseHandler.GetSummary)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	protected.PUT("/income/monthly", expenseHandler.SetMonthlyIncome)
	protected.GET("/income/monthly", expenseHandler.ListMonthlyIncomes)

	goals := protected.Group("/goals")
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("", goalHandler.ListGoals)
	goals.POST("/:id/progress", goalHandler.AddProgress)
	goals.DELETE("/:id", goalHandler.DeleteGoal)

	protected.POST("/streak/check", goalHandler.CheckStreak)
	protected.GET("/streak", goalHandler.GetStreak)
	protected.GET("/badges", goalHandler.ListBadges)

	piggy := protected.Group("/piggybank")
	piggy.GET("", piggyBankHandler.GetState)
	piggy.PUT("/password", piggyBankHandler.SetPassword)
	piggy.POST("/transactions", piggyBankHandler.Transact)
	piggy.GET("/transactions", piggyBankHandler.ListTransactions)

	protected.POST("/account/deletion-request", adminHandler.RequestDeletion)

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

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// assertErrorCode asserts that the response carries the given error code.
func assertErrorCode(t *testing.T, rec *httptest.ResponseRecorder, code string) {
	t.Helper()
	result := parseJSON(t, rec)
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

// registerUser registers a new user and returns the access token, refresh token, and user ID.
func (app *testApp) registerUser(t *testing.T, name, email, password string) (accessToken, refreshToken string, userID float64) {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"email":%q,"password":%q}`, name, email, password)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["access_token"].(string), result["refresh_token"].(string), user["id"].(float64)
}

// loginUser logs in and returns the access and refresh tokens.
func (app *testApp) loginUser(t *testing.T, email, password string) (accessToken, refreshToken string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/api/v1/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["access_token"].(string), result["refresh_token"].(string)
}

// loginOwner logs in with the bootstrapped owner credentials.
func (app *testApp) loginOwner(t *testing.T) (accessToken string) {
	t.Helper()
	token, _ := app.loginUser(t, ownerEmail, ownerPassword)
	return token
}
