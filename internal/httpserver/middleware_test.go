package httpserver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"fayclick/internal/domain"
	authsvc "fayclick/internal/service/auth"
)

type stubAuth struct {
	user      *domain.User
	token     string
	loginErr  error
	lookupErr error
	changeErr error
}

func (s *stubAuth) Login(_ context.Context, _, _ string) (*domain.User, string, error) {
	return s.user, s.token, s.loginErr
}

func (s *stubAuth) LookupByToken(_ context.Context, _ string) (*domain.User, error) {
	return s.user, s.lookupErr
}

func (s *stubAuth) ChangePassword(_ context.Context, _, _, _ string) error {
	return s.changeErr
}

func (s *stubAuth) Logout(_ context.Context, _ string) error { return nil }

func (s *stubAuth) AccessTTLSeconds() int { return 3600 }

type stubGate struct {
	canSell bool
	sub     *domain.Subscription
	err     error
}

func (s *stubGate) CanSell(_ context.Context, _ string) (bool, error) {
	return s.canSell, s.err
}

func (s *stubGate) Subscription(_ context.Context, _ string) (*domain.Subscription, error) {
	if s.sub == nil {
		return nil, domain.ErrNotFound
	}
	return s.sub, nil
}

func testUser() *domain.User {
	return &domain.User{
		ID:            "u1",
		StructureID:   "s1",
		StructureName: "Boutique Demo",
		Login:         "771234567",
		Role:          "owner",
	}
}

func TestAuthMiddleware_Success(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(authMiddleware(&stubAuth{user: testUser()}))
	router.GET("/test", func(c *gin.Context) {
		u := currentUser(c)
		if u == nil || u.StructureID != "s1" {
			t.Fatalf("expected user in context, got %+v", u)
		}
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer sometoken")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(authMiddleware(&stubAuth{user: testUser()}))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(authMiddleware(&stubAuth{lookupErr: authsvc.ErrInvalidToken}))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer expired")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestRequireActiveSubscription_Expired(t *testing.T) {
	gin.SetMode(gin.TestMode)
	gate := &stubGate{
		canSell: false,
		sub: &domain.Subscription{
			StructureID: "s1",
			Plan:        "standard",
			Active:      true,
			ExpiresAt:   time.Now().Add(-24 * time.Hour),
		},
	}
	router := gin.New()
	router.Use(authMiddleware(&stubAuth{user: testUser()}), requireActiveSubscription(gate))
	router.POST("/sell", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodPost, "/sell", nil)
	req.Header.Set("Authorization", "Bearer ok")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusPaymentRequired {
		t.Fatalf("expected status 402, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "renew") || !strings.Contains(body, "standard") {
		t.Fatalf("expected renewal payload, got %s", body)
	}
}

func TestRequireActiveSubscription_Active(t *testing.T) {
	gin.SetMode(gin.TestMode)
	gate := &stubGate{canSell: true}
	router := gin.New()
	router.Use(authMiddleware(&stubAuth{user: testUser()}), requireActiveSubscription(gate))
	router.POST("/sell", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodPost, "/sell", nil)
	req.Header.Set("Authorization", "Bearer ok")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestRequireActiveSubscription_GateError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	gate := &stubGate{err: errors.New("db down")}
	router := gin.New()
	router.Use(authMiddleware(&stubAuth{user: testUser()}), requireActiveSubscription(gate))
	router.POST("/sell", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodPost, "/sell", nil)
	req.Header.Set("Authorization", "Bearer ok")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
}
