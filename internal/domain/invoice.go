package domain

import "time"

// Invoice is created exactly once per successful checkout and is
// immutable afterwards.
type Invoice struct {
	ID          string        `json:"id"`
	Number      string        `json:"number"`
	StructureID string        `json:"-"`
	ClientID    *string       `json:"clientId,omitempty"`
	Lines       []InvoiceLine `json:"lines"`
	Subtotal    int64         `json:"subtotal"`
	Discount    int64         `json:"discount"`
	Total       int64         `json:"total"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// InvoiceLine is the frozen copy of a cart line at submit time.
type InvoiceLine struct {
	ID          string `json:"id"`
	InvoiceID   string `json:"invoiceId"`
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	UnitPrice   int64  `json:"unitPrice"`
	Quantity    int    `json:"quantity"`
	LineTotal   int64  `json:"lineTotal"`
}

// Encashment records that an invoice has been paid. CashReceived and
// ChangeDue are only meaningful for cash settlements.
type Encashment struct {
	ID              string        `json:"id"`
	ReceiptNumber   string        `json:"receiptNumber"`
	InvoiceID       string        `json:"invoiceId"`
	StructureID     string        `json:"-"`
	Method          PaymentMethod `json:"method"`
	Amount          int64         `json:"amount"`
	CashReceived    int64         `json:"cashReceived,omitempty"`
	ChangeDue       int64         `json:"changeDue,omitempty"`
	TxRef           string        `json:"txRef,omitempty"`
	CorrelationUUID string        `json:"correlationUuid,omitempty"`
	Phone           string        `json:"phone,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
}
