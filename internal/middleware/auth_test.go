package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"fintrack/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func protectedRouter() *gin.Engine {
	r := gin.New()
	r.GET("/protected", AuthMiddleware(), func(c *gin.Context) {
		userID, _ := c.Get("userID")
		username, _ := c.Get("username")
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "username": username})
	})
	return r
}

func doAuthRequest(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func testUser() *models.User {
	user := &models.User{Username: "alice"}
	user.ID = 7
	return user
}

func TestAuthMiddleware(t *testing.T) {
	t.Run("valid_access_token", func(t *testing.T) {
		token, err := GenerateAccessToken(testUser())
		if err != nil {
			t.Fatalf("failed to generate access token: %v", err)
		}

		rec := doAuthRequest(protectedRouter(), "Bearer "+token)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("missing_header", func(t *testing.T) {
		rec := doAuthRequest(protectedRouter(), "")

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("malformed_header", func(t *testing.T) {
		rec := doAuthRequest(protectedRouter(), "Token abcdef")

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("garbage_token", func(t *testing.T) {
		rec := doAuthRequest(protectedRouter(), "Bearer not-a-jwt")

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("refresh_token_rejected_as_access", func(t *testing.T) {
		token, err := GenerateRefreshToken(testUser())
		if err != nil {
			t.Fatalf("failed to generate refresh token: %v", err)
		}

		rec := doAuthRequest(protectedRouter(), "Bearer "+token)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}

func TestValidateRefreshToken(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		token, err := GenerateRefreshToken(testUser())
		if err != nil {
			t.Fatalf("failed to generate refresh token: %v", err)
		}

		claims, err := ValidateRefreshToken(token)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if claims.UserID != 7 || claims.Username != "alice" {
			t.Errorf("unexpected claims: %+v", claims)
		}
	})

	t.Run("access_token_rejected", func(t *testing.T) {
		token, err := GenerateAccessToken(testUser())
		if err != nil {
			t.Fatalf("failed to generate access token: %v", err)
		}

		if _, err := ValidateRefreshToken(token); err == nil {
			t.Fatal("expected access token to be rejected as refresh token")
		}
	})
}
