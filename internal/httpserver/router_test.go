package httpserver

import (
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	cartsvc "fayclick/internal/service/cart"
)

func TestBuildRouter_HealthAndAuthGating(t *testing.T) {
	store := cartsvc.NewStore(time.Minute)
	t.Cleanup(store.Close)

	logger := log.New(io.Discard, "", 0)
	router, err := buildRouter(logger, nil, Deps{
		Auth:     &stubAuth{user: testUser()},
		Products: &stubProducts{},
		Gate:     &stubGate{canSell: true},
		Checkout: &stubCheckout{},
		Carts:    store,
	})
	if err != nil {
		t.Fatalf("build router: %v", err)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz: expected 200, got %d", rec.Code)
	}

	// No db pool wired: readiness must refuse.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("readyz: expected 503, got %d", rec.Code)
	}

	// Authenticated routes refuse anonymous requests.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("products without token: expected 401, got %d", rec.Code)
	}

	// With a token the same route resolves.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("products with token: expected 200, got %d", rec.Code)
	}
}
