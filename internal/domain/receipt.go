package domain

import "time"

// ReceiptLine is one printed row of the ticket.
type ReceiptLine struct {
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unitPrice"`
	LineTotal   int64  `json:"lineTotal"`
}

// Receipt is the read-only summary presented after a confirmed payment.
// It is composed from the invoice and encashment, never stored on its own.
type Receipt struct {
	ReceiptNumber  string        `json:"receiptNumber"`
	InvoiceNumber  string        `json:"invoiceNumber"`
	StructureName  string        `json:"structureName"`
	Method         PaymentMethod `json:"method"`
	MethodLabel    string        `json:"methodLabel"`
	Lines          []ReceiptLine `json:"lines"`
	Subtotal       int64         `json:"subtotal"`
	Discount       int64         `json:"discount"`
	Total          int64         `json:"total"`
	CashReceived   int64         `json:"cashReceived,omitempty"`
	ChangeDue      int64         `json:"changeDue,omitempty"`
	IssuedAt       time.Time     `json:"issuedAt"`
	DisplaySeconds int           `json:"displaySeconds"`
}
