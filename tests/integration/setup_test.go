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

	"fintrack/internal/handlers"
	"fintrack/internal/logger"
	"fintrack/internal/middleware"
	"fintrack/internal/models"
	"fintrack/internal/services"
	"fintrack/internal/validator"
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

	if err := db.AutoMigrate(&models.User{}, &models.Transaction{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates the full application stack backed by an isolated in-memory SQLite.
// The route table mirrors cmd/api.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	userService := services.NewUserService(db)
	transactionService := services.NewTransactionService(db)

	authHandler := handlers.NewAuthHandler(userService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Finance Tracker backend running successfully. Try /api/transactions/")
	})

	api := router.Group("/api")
	api.POST("/signup/", authHandler.Signup)
	api.POST("/token/", authHandler.Login)
	api.POST("/token/refresh/", authHandler.Refresh)

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

	return &testApp{DB: db, Router: router}
}

// doRequest performs an HTTP request against the test app. An empty token
// leaves the request unauthenticated.
func (app *testApp) doRequest(method, path, token, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// signupAndLogin registers a user and returns an access token for it.
func (app *testApp) signupAndLogin(t *testing.T, username, password string) string {
	t.Helper()

	rec := app.doRequest(http.MethodPost, "/api/signup/", "",
		fmt.Sprintf(`{"username":%q,"email":"%s@example.com","password":%q}`, username, username, password))
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup failed with %d: %s", rec.Code, rec.Body.String())
	}

	rec = app.doRequest(http.MethodPost, "/api/token/", "",
		fmt.Sprintf(`{"username":%q,"password":%q}`, username, password))
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed with %d: %s", rec.Code, rec.Body.String())
	}

	var tokens struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &tokens); err != nil {
		t.Fatalf("failed to parse token response: %v", err)
	}
	if tokens.Access == "" {
		t.Fatal("expected non-empty access token")
	}
	return tokens.Access
}

// parseJSON decodes a JSON object response body.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// parseJSONArray decodes a JSON array response body.
func parseJSONArray(t *testing.T, rec *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var result []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON array response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}
