package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/mp-classroom/classroom-gateway/internal/token"
)

func newGuardedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	guard := NewRouteGuard(token.NewCarrier("accessToken", 3600, false))
	router.Use(guard.Middleware())
	router.NoRoute(func(c *gin.Context) {
		c.String(http.StatusOK, "page")
	})
	return router
}

func TestGuard(t *testing.T) {
	router := newGuardedRouter()

	tests := []struct {
		name       string
		path       string
		withToken  bool
		wantStatus int
		wantLoc    string
	}{
		{"root is public", "/", false, http.StatusOK, ""},
		{"signup is public", "/signup", false, http.StatusOK, ""},
		{"signup subpath is public", "/signup/student", false, http.StatusOK, ""},
		{"protected page without token redirects", "/tasks", false, http.StatusFound, "/"},
		{"protected page with token proceeds", "/tasks", true, http.StatusOK, ""},
		{"user page without token redirects", "/user", false, http.StatusFound, "/"},
		{"asset prefix always proceeds", "/assets/app.js", false, http.StatusOK, ""},
		{"favicon always proceeds", "/favicon.ico", false, http.StatusOK, ""},
		{"file extension always proceeds", "/logo.svg", false, http.StatusOK, ""},
		{"nested asset always proceeds", "/img/bg.png", false, http.StatusOK, ""},
		{"api without token gets 401", "/api/tasks", false, http.StatusUnauthorized, ""},
		{"api login is public", "/api/login", false, http.StatusOK, ""},
		{"api signup is public", "/api/signup", false, http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.withToken {
				req.AddCookie(&http.Cookie{Name: "accessToken", Value: "tok"})
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantLoc != "" {
				if got := rec.Header().Get("Location"); got != tt.wantLoc {
					t.Errorf("Location = %q, want %q", got, tt.wantLoc)
				}
			}
		})
	}
}

func TestGuardStaticIgnoresTokenAbsence(t *testing.T) {
	router := newGuardedRouter()

	// static requests proceed regardless of token presence
	for _, path := range []string{"/assets/main.css", "/favicon.ico", "/fonts/inter.woff2"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("%s: status = %d, want 200", path, rec.Code)
		}
	}
}

func TestGuardAPIResponseCarriesRedirect(t *testing.T) {
	router := newGuardedRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/anomalies", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"redirect":"/"`) {
		t.Errorf("body = %s, want redirect hint", rec.Body.String())
	}
}
