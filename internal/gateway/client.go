package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"fayclick/internal/domain"
)

// CreatedPayment is the gateway's answer to a payment creation: the
// correlation UUID used for status polls plus what the client needs to
// show the payer (QR payload, optional wallet deeplink).
type CreatedPayment struct {
	CorrelationUUID string `json:"correlation_uuid"`
	QRPayload       string `json:"qr_payload"`
	Deeplink        string `json:"deeplink,omitempty"`
}

// Client talks to the external wallet payment gateway over HTTP/JSON.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  *log.Logger
}

// NewClient builds a gateway client. The API key is sent on every request.
func NewClient(baseURL, apiKey string, logger *log.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 15 * time.Second},
		logger:  logger,
	}
}

type createPaymentRequest struct {
	Method    string `json:"method"`
	Phone     string `json:"phone"`
	Amount    int64  `json:"amount"`
	Reference string `json:"reference"`
}

// CreatePayment registers a payment intent at the gateway.
func (c *Client) CreatePayment(ctx context.Context, method domain.PaymentMethod, phone string, amount int64, reference string) (*CreatedPayment, error) {
	body, err := json.Marshal(createPaymentRequest{
		Method:    string(method),
		Phone:     phone,
		Amount:    amount,
		Reference: reference,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/payments", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("create payment: gateway returned %d", resp.StatusCode)
	}

	var out CreatedPayment
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("create payment: decode response: %w", err)
	}
	if out.CorrelationUUID == "" {
		return nil, fmt.Errorf("create payment: gateway response missing correlation uuid")
	}
	return &out, nil
}

type statusResponse struct {
	Status string `json:"status"`
}

// PollStatus fetches the current status of a payment. Unknown statuses
// map to PENDING so the caller keeps polling until its ceiling.
func (c *Client) PollStatus(ctx context.Context, correlationUUID string) (domain.PaymentStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/payments/"+correlationUUID, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("poll status: %w", err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("poll status: gateway returned %d", resp.StatusCode)
	}

	var out statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("poll status: decode response: %w", err)
	}

	switch strings.ToUpper(strings.TrimSpace(out.Status)) {
	case "COMPLETED", "SUCCESS":
		return domain.StatusCompleted, nil
	case "FAILED", "CANCELLED", "REJECTED":
		return domain.StatusFailed, nil
	case "PROCESSING":
		return domain.StatusProcessing, nil
	default:
		if c.logger != nil && out.Status != "" && out.Status != "PENDING" {
			c.logger.Printf("gateway returned unknown status %q for %s", out.Status, correlationUUID)
		}
		return domain.StatusPending, nil
	}
}

func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 4096))
	_ = body.Close()
}
