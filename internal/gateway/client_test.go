package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"fayclick/internal/domain"
)

func TestCreatePayment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/payments" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("X-Api-Key") != "secret" {
			t.Fatalf("missing api key header")
		}
		var in map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if in["method"] != "OM" || in["phone"] != "771234567" {
			t.Fatalf("unexpected payload: %+v", in)
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"correlation_uuid": "9f1b2c3d-0000-0000-0000-000000000000",
			"qr_payload":       "QR-DATA",
			"deeplink":         "om://pay/123",
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", nil)
	out, err := c.CreatePayment(context.Background(), domain.MethodOM, "771234567", 1500, "FAY-001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.CorrelationUUID == "" || out.QRPayload != "QR-DATA" || out.Deeplink != "om://pay/123" {
		t.Fatalf("unexpected response: %+v", out)
	}
}

func TestCreatePaymentGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", nil)
	if _, err := c.CreatePayment(context.Background(), domain.MethodWave, "761234567", 500, "FAY-002"); err == nil {
		t.Fatalf("expected error on 502")
	}
}

func TestCreatePaymentMissingCorrelation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"qr_payload": "QR"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", nil)
	if _, err := c.CreatePayment(context.Background(), domain.MethodWave, "761234567", 500, "FAY-003"); err == nil {
		t.Fatalf("expected error on missing correlation uuid")
	}
}

func TestPollStatusMapping(t *testing.T) {
	cases := map[string]domain.PaymentStatus{
		"PENDING":    domain.StatusPending,
		"processing": domain.StatusProcessing,
		"COMPLETED":  domain.StatusCompleted,
		"SUCCESS":    domain.StatusCompleted,
		"FAILED":     domain.StatusFailed,
		"CANCELLED":  domain.StatusFailed,
		"weird":      domain.StatusPending,
	}
	for raw, want := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]string{"status": raw})
		}))
		c := NewClient(srv.URL, "secret", nil)
		got, err := c.PollStatus(context.Background(), "abc")
		srv.Close()
		if err != nil {
			t.Fatalf("status %q: unexpected error %v", raw, err)
		}
		if got != want {
			t.Fatalf("status %q: expected %s, got %s", raw, want, got)
		}
	}
}

func TestPollStatusHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", nil)
	if _, err := c.PollStatus(context.Background(), "abc"); err == nil {
		t.Fatalf("expected error on 500")
	}
}
