package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	authsvc "fayclick/internal/service/auth"
)

var errWeakPassword = errors.New("password must be at least 8 characters")

func TestLoginHandler_Success(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/auth/login", loginHandler(&stubAuth{user: testUser(), token: "tok-123"}))

	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"login":"771234567","password":"Fayclick1"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Token     string `json:"token"`
		ExpiresIn int    `json:"expiresIn"`
		User      struct {
			StructureName string `json:"structureName"`
		} `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Token != "tok-123" || resp.ExpiresIn != 3600 {
		t.Fatalf("unexpected response %+v", resp)
	}
	if resp.User.StructureName != "Boutique Demo" {
		t.Fatalf("expected structure name in payload, got %+v", resp.User)
	}
}

func TestLoginHandler_BadCredentials(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/auth/login", loginHandler(&stubAuth{loginErr: authsvc.ErrInvalidCredentials}))

	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"login":"771234567","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestLoginHandler_MissingFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/auth/login", loginHandler(&stubAuth{}))

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"login":"771234567"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestChangePasswordHandler_WeakPassword(t *testing.T) {
	svc := &stubAuth{user: testUser(), changeErr: errWeakPassword}
	router := authedRouter(t, func(g *gin.RouterGroup) {
		g.POST("/auth/password", changePasswordHandler(svc))
	})

	rec := doJSON(t, router, http.MethodPost, "/auth/password",
		`{"currentPassword":"Fayclick1","newPassword":"weak"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "at least") {
		t.Fatalf("expected policy message, got %s", rec.Body.String())
	}
}

func TestMeHandler(t *testing.T) {
	router := authedRouter(t, func(g *gin.RouterGroup) {
		g.GET("/auth/me", meHandler)
	})

	rec := doJSON(t, router, http.MethodGet, "/auth/me", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"passwordChanged"`) {
		t.Fatalf("expected passwordChanged field, got %s", rec.Body.String())
	}
}
