package domain

import "time"

type PaymentMethod string

const (
	MethodCash PaymentMethod = "CASH"
	MethodOM   PaymentMethod = "OM"
	MethodWave PaymentMethod = "WAVE"
)

// Label returns the human label printed on receipts.
func (m PaymentMethod) Label() string {
	switch m {
	case MethodCash:
		return "Espèces"
	case MethodOM:
		return "Orange Money"
	case MethodWave:
		return "Wave"
	default:
		return string(m)
	}
}

type PaymentStatus string

const (
	StatusPending    PaymentStatus = "PENDING"
	StatusProcessing PaymentStatus = "PROCESSING"
	StatusCompleted  PaymentStatus = "COMPLETED"
	StatusFailed     PaymentStatus = "FAILED"
	StatusTimeout    PaymentStatus = "TIMEOUT"
)

// Terminal reports whether the status ends the payment workflow.
func (s PaymentStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusTimeout
}

// PaymentRequest tracks one wallet payment attempt from creation at the
// gateway until a terminal status. Discarded once terminal.
type PaymentRequest struct {
	ID              string        `json:"id"`
	Method          PaymentMethod `json:"method"`
	Phone           string        `json:"phone,omitempty"`
	Amount          int64         `json:"amount"`
	ExternalRef     string        `json:"externalRef"`
	CorrelationUUID string        `json:"correlationUuid"`
	QRPayload       string        `json:"qrPayload,omitempty"`
	Deeplink        string        `json:"deeplink,omitempty"`
	Status          PaymentStatus `json:"status"`
	CreatedAt       time.Time     `json:"createdAt"`
	ExpiresAt       time.Time     `json:"expiresAt"`
}
