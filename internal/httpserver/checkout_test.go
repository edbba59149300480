package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"fayclick/internal/domain"
	"fayclick/internal/service/checkout"
)

type stubCheckout struct {
	receipt   *domain.Receipt
	status    *checkout.WalletStatus
	err       error
	cancelErr error
}

func (s *stubCheckout) CheckoutCash(_ context.Context, _, _ string, _ *string, _ int64) (*domain.Receipt, error) {
	return s.receipt, s.err
}

func (s *stubCheckout) StartWallet(_ context.Context, _, _ string, _ domain.PaymentMethod, _ string, _ *string) (*checkout.WalletStatus, error) {
	return s.status, s.err
}

func (s *stubCheckout) Status(_, _ string) (*checkout.WalletStatus, error) {
	return s.status, s.err
}

func (s *stubCheckout) Cancel(_, _ string) error { return s.cancelErr }

func (s *stubCheckout) RetryEncashment(_ context.Context, _, _ string) (*checkout.WalletStatus, error) {
	return s.status, s.err
}

func authedRouter(t *testing.T, register func(*gin.RouterGroup)) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("")
	group.Use(authMiddleware(&stubAuth{user: testUser()}))
	register(group)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func sampleReceipt() *domain.Receipt {
	return &domain.Receipt{
		ReceiptNumber: "RC-20260828-000001",
		InvoiceNumber: "FV-20260828-000001",
		StructureName: "Boutique Demo",
		Method:        domain.MethodCash,
		MethodLabel:   "Espèces",
		Lines: []domain.ReceiptLine{
			{ProductName: "Savon", Quantity: 2, UnitPrice: 1000, LineTotal: 2000},
		},
		Subtotal:       2000,
		Discount:       500,
		Total:          1500,
		CashReceived:   2000,
		ChangeDue:      500,
		IssuedAt:       time.Now(),
		DisplaySeconds: 8,
	}
}

func TestCheckoutCashHandler_Created(t *testing.T) {
	svc := &stubCheckout{receipt: sampleReceipt()}
	router := authedRouter(t, func(g *gin.RouterGroup) {
		g.POST("/checkout/cash", checkoutCashHandler(svc))
	})

	rec := doJSON(t, router, http.MethodPost, "/checkout/cash", `{"cartId":"c1","cashReceived":2000}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp receiptResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Receipt == nil || resp.Receipt.ReceiptNumber != "RC-20260828-000001" {
		t.Fatalf("unexpected receipt %+v", resp.Receipt)
	}
	if !strings.Contains(resp.Ticket, "TOTAL") || !strings.Contains(resp.ShareText, "FCFA") {
		t.Fatalf("expected rendered forms, got %+v", resp)
	}
}

func TestCheckoutCashHandler_InsufficientCash(t *testing.T) {
	svc := &stubCheckout{err: checkout.ErrInsufficientCash}
	router := authedRouter(t, func(g *gin.RouterGroup) {
		g.POST("/checkout/cash", checkoutCashHandler(svc))
	})

	rec := doJSON(t, router, http.MethodPost, "/checkout/cash", `{"cartId":"c1","cashReceived":100}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestCheckoutCashHandler_BadPayload(t *testing.T) {
	router := authedRouter(t, func(g *gin.RouterGroup) {
		g.POST("/checkout/cash", checkoutCashHandler(&stubCheckout{}))
	})

	rec := doJSON(t, router, http.MethodPost, "/checkout/cash", `{"cashReceived":100}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing cartId, got %d", rec.Code)
	}
}

func TestStartWalletHandler_Accepted(t *testing.T) {
	svc := &stubCheckout{status: &checkout.WalletStatus{
		PaymentID:        "p1",
		Method:           domain.MethodOM,
		Amount:           1500,
		Status:           domain.StatusPending,
		QRPayload:        "qr-data",
		Deeplink:         "om://pay/p1",
		RemainingSeconds: 90,
	}}
	router := authedRouter(t, func(g *gin.RouterGroup) {
		g.POST("/checkout/wallet", startWalletHandler(svc))
	})

	rec := doJSON(t, router, http.MethodPost, "/checkout/wallet",
		`{"cartId":"c1","method":"OM","phone":"771234567"}`)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "qr-data") {
		t.Fatalf("expected QR payload in response: %s", rec.Body.String())
	}
}

func TestStartWalletHandler_RejectsUnknownMethod(t *testing.T) {
	router := authedRouter(t, func(g *gin.RouterGroup) {
		g.POST("/checkout/wallet", startWalletHandler(&stubCheckout{}))
	})

	rec := doJSON(t, router, http.MethodPost, "/checkout/wallet",
		`{"cartId":"c1","method":"CASH","phone":"771234567"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for CASH via wallet route, got %d", rec.Code)
	}
}

func TestWalletStatusHandler_CompletedCarriesTicket(t *testing.T) {
	svc := &stubCheckout{status: &checkout.WalletStatus{
		PaymentID: "p1",
		Method:    domain.MethodWave,
		Amount:    1500,
		Status:    domain.StatusCompleted,
		Receipt:   sampleReceipt(),
	}}
	router := authedRouter(t, func(g *gin.RouterGroup) {
		g.GET("/checkout/wallet/:paymentId", walletStatusHandler(svc))
	})

	rec := doJSON(t, router, http.MethodGet, "/checkout/wallet/p1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp walletResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Ticket == "" || resp.ShareText == "" {
		t.Fatalf("expected rendered receipt on completed payment: %s", rec.Body.String())
	}
}

func TestWalletStatusHandler_UnknownPayment(t *testing.T) {
	svc := &stubCheckout{err: domain.ErrNotFound}
	router := authedRouter(t, func(g *gin.RouterGroup) {
		g.GET("/checkout/wallet/:paymentId", walletStatusHandler(svc))
	})

	rec := doJSON(t, router, http.MethodGet, "/checkout/wallet/missing", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestCancelWalletHandler_PendingEncashmentRefused(t *testing.T) {
	svc := &stubCheckout{cancelErr: checkout.ErrEncashmentIncomplete}
	router := authedRouter(t, func(g *gin.RouterGroup) {
		g.DELETE("/checkout/wallet/:paymentId", cancelWalletHandler(svc))
	})

	rec := doJSON(t, router, http.MethodDelete, "/checkout/wallet/p1", "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}
