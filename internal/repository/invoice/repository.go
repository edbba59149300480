package invoice

import (
	"context"

	"fayclick/internal/domain"
)

type LineInput struct {
	ProductID   string
	ProductName string
	UnitPrice   int64
	Quantity    int
}

type CreateInvoiceInput struct {
	StructureID string
	ClientID    *string
	Lines       []LineInput
	Subtotal    int64
	Discount    int64
	Total       int64
}

type EncashmentInput struct {
	StructureID     string
	InvoiceID       string
	Method          domain.PaymentMethod
	Amount          int64
	CashReceived    int64
	ChangeDue       int64
	TxRef           string
	CorrelationUUID string
	Phone           string
}

type Repository interface {
	CreateInvoice(ctx context.Context, in CreateInvoiceInput) (*domain.Invoice, error)
	RecordEncashment(ctx context.Context, in EncashmentInput) (*domain.Encashment, error)
	GetByID(ctx context.Context, structureID, id string) (*domain.Invoice, error)
	ListByStructure(ctx context.Context, structureID string, limit int) ([]domain.Invoice, error)
	ListUnsettled(ctx context.Context, structureID string) ([]domain.Invoice, error)
}
