package domain

import "time"

type QuoteStatus string

const (
	QuoteDraft    QuoteStatus = "draft"
	QuoteSent     QuoteStatus = "sent"
	QuoteAccepted QuoteStatus = "accepted"
	QuoteRejected QuoteStatus = "rejected"
)

// Quote (devis) is a priced proposal for a client. An accepted quote can
// be converted into an invoice; converted quotes keep InvoiceID set.
type Quote struct {
	ID          string      `json:"id"`
	Number      string      `json:"number"`
	StructureID string      `json:"-"`
	ClientID    string      `json:"clientId"`
	Status      QuoteStatus `json:"status"`
	Lines       []QuoteLine `json:"lines"`
	Total       int64       `json:"total"`
	InvoiceID   *string     `json:"invoiceId,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
}

type QuoteLine struct {
	ID          string `json:"id"`
	QuoteID     string `json:"quoteId"`
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	UnitPrice   int64  `json:"unitPrice"`
	Quantity    int    `json:"quantity"`
	LineTotal   int64  `json:"lineTotal"`
}
