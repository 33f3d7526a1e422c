package integration

import (
	"net/http"
	"testing"
)

func TestSignupFlow(t *testing.T) {
	t.Run("signup_then_duplicate", func(t *testing.T) {
		app := setupApp(t)

		rec := app.doRequest(http.MethodPost, "/api/signup/", "",
			`{"username":"alice","email":"alice@example.com","password":"pw123456"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		body := parseJSON(t, rec)
		if body["message"] != "User created successfully!" {
			t.Errorf("unexpected message: %v", body["message"])
		}

		rec = app.doRequest(http.MethodPost, "/api/signup/", "",
			`{"username":"alice","email":"other@example.com","password":"different"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for duplicate username, got %d", rec.Code)
		}
		body = parseJSON(t, rec)
		if body["error"] != "Username already exists." {
			t.Errorf("unexpected error: %v", body["error"])
		}
	})

	t.Run("missing_fields", func(t *testing.T) {
		app := setupApp(t)

		rec := app.doRequest(http.MethodPost, "/api/signup/", "", `{"email":"x@example.com"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestTokenFlow(t *testing.T) {
	t.Run("login_and_refresh", func(t *testing.T) {
		app := setupApp(t)
		app.signupAndLogin(t, "alice", "pw123456")

		rec := app.doRequest(http.MethodPost, "/api/token/", "", `{"username":"alice","password":"pw123456"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		tokens := parseJSON(t, rec)
		refresh, _ := tokens["refresh"].(string)
		if refresh == "" {
			t.Fatal("expected refresh token")
		}

		rec = app.doRequest(http.MethodPost, "/api/token/refresh/", "", `{"refresh":"`+refresh+`"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		body := parseJSON(t, rec)
		access, _ := body["access"].(string)
		if access == "" {
			t.Fatal("expected new access token")
		}

		// The refreshed access token must work on protected routes
		rec = app.doRequest(http.MethodGet, "/api/transactions/", access, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 with refreshed token, got %d", rec.Code)
		}
	})

	t.Run("wrong_password", func(t *testing.T) {
		app := setupApp(t)
		app.signupAndLogin(t, "alice", "pw123456")

		rec := app.doRequest(http.MethodPost, "/api/token/", "", `{"username":"alice","password":"wrong"}`)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("refresh_token_rejected_on_protected_route", func(t *testing.T) {
		app := setupApp(t)
		app.signupAndLogin(t, "alice", "pw123456")

		rec := app.doRequest(http.MethodPost, "/api/token/", "", `{"username":"alice","password":"pw123456"}`)
		tokens := parseJSON(t, rec)
		refresh, _ := tokens["refresh"].(string)

		rec = app.doRequest(http.MethodGet, "/api/transactions/", refresh, "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 using refresh token as access token, got %d", rec.Code)
		}
	})
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	app := setupApp(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/transactions/"},
		{http.MethodPost, "/api/transactions/"},
		{http.MethodGet, "/api/transactions/1/"},
		{http.MethodDelete, "/api/transactions/clear/"},
		{http.MethodGet, "/api/transactions/export_csv/"},
	}
	for _, p := range paths {
		rec := app.doRequest(p.method, p.path, "", "")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: expected 401 without token, got %d", p.method, p.path, rec.Code)
		}
	}
}

func TestHealthRoute(t *testing.T) {
	app := setupApp(t)

	rec := app.doRequest(http.MethodGet, "/", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.Len() == 0 {
		t.Error("expected a health message body")
	}
}
