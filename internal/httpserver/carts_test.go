package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"fayclick/internal/domain"
	cartsvc "fayclick/internal/service/cart"
	productsvc "fayclick/internal/service/product"
)

type stubProducts struct {
	byID map[string]*domain.Product
}

func (s *stubProducts) List(_ context.Context, _ string) ([]domain.Product, error) { return nil, nil }

func (s *stubProducts) Get(_ context.Context, _, id string) (*domain.Product, error) {
	p, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (s *stubProducts) Create(_ context.Context, _ string, _ productsvc.Input) (*domain.Product, error) {
	return nil, nil
}

func (s *stubProducts) Update(_ context.Context, _, _ string, _ productsvc.Input) (*domain.Product, error) {
	return nil, nil
}

func (s *stubProducts) Delete(_ context.Context, _, _ string) error { return nil }

func (s *stubProducts) AdjustStock(_ context.Context, _, _ string, _ int) (*domain.Product, error) {
	return nil, nil
}

func cartRouter(t *testing.T) (*gin.Engine, *cartsvc.Store) {
	t.Helper()
	store := cartsvc.NewStore(time.Minute)
	t.Cleanup(store.Close)
	products := &stubProducts{byID: map[string]*domain.Product{
		"p1": {ID: "p1", StructureID: "s1", Name: "Savon", Price: 1000, Stock: 10},
		"p2": {ID: "p2", StructureID: "s1", Name: "Huile 1L", Price: 2500, Stock: 0},
	}}
	router := authedRouter(t, func(g *gin.RouterGroup) {
		g.POST("/carts", createCartHandler(store))
		g.GET("/carts/:id", getCartHandler(store))
		g.DELETE("/carts/:id", destroyCartHandler(store))
		g.POST("/carts/:id/lines", addCartLineHandler(store, products))
		g.PATCH("/carts/:id/lines/:productId", updateCartLineHandler(store))
		g.DELETE("/carts/:id/lines/:productId", removeCartLineHandler(store))
		g.PUT("/carts/:id/discount", setDiscountHandler(store))
	})
	return router, store
}

func createCart(t *testing.T, router *gin.Engine) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/carts", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("create cart: %d %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		CartID string `json:"cartId"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp.CartID
}

func TestCartFlow_AddDiscountAndTotals(t *testing.T) {
	router, _ := cartRouter(t)
	cartID := createCart(t, router)

	rec := doJSON(t, router, http.MethodPost, "/carts/"+cartID+"/lines", `{"productId":"p1","quantity":2}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("add line: %d %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPut, "/carts/"+cartID+"/discount", `{"amount":500}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("set discount: %d %s", rec.Code, rec.Body.String())
	}

	var snap domain.CartSnapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.Subtotal != 2000 || snap.Discount != 500 || snap.NetTotal != 1500 {
		t.Fatalf("unexpected totals %+v", snap)
	}
}

func TestAddCartLine_OutOfStock(t *testing.T) {
	router, _ := cartRouter(t)
	cartID := createCart(t, router)

	rec := doJSON(t, router, http.MethodPost, "/carts/"+cartID+"/lines", `{"productId":"p2","quantity":1}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for out-of-stock product, got %d", rec.Code)
	}
}

func TestAddCartLine_UnknownProduct(t *testing.T) {
	router, _ := cartRouter(t)
	cartID := createCart(t, router)

	rec := doJSON(t, router, http.MethodPost, "/carts/"+cartID+"/lines", `{"productId":"ghost"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestGetCart_UnknownID(t *testing.T) {
	router, _ := cartRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/carts/nope", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestDestroyCart(t *testing.T) {
	router, store := cartRouter(t)
	cartID := createCart(t, router)

	rec := doJSON(t, router, http.MethodDelete, "/carts/"+cartID, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if _, err := store.Get("s1", cartID); err == nil {
		t.Fatal("expected cart to be gone")
	}
}

func TestUpdateCartLine_ZeroRemoves(t *testing.T) {
	router, _ := cartRouter(t)
	cartID := createCart(t, router)

	doJSON(t, router, http.MethodPost, "/carts/"+cartID+"/lines", `{"productId":"p1","quantity":2}`)
	rec := doJSON(t, router, http.MethodPatch, "/carts/"+cartID+"/lines/p1", `{"quantity":0}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update line: %d", rec.Code)
	}
	var snap domain.CartSnapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(snap.Lines) != 0 {
		t.Fatalf("expected empty cart, got %+v", snap.Lines)
	}
}
