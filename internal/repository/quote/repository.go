package quote

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

type CreateQuoteInput struct {
	StructureID string
	ClientID    string
	Lines       []LineInput
}

type Repository interface {
	Create(ctx context.Context, in CreateQuoteInput) (*domain.Quote, error)
	GetByID(ctx context.Context, structureID, id string) (*domain.Quote, error)
	ListByStructure(ctx context.Context, structureID string) ([]domain.Quote, error)
	SetStatus(ctx context.Context, structureID, id string, status domain.QuoteStatus) error
	MarkConverted(ctx context.Context, structureID, id, invoiceID string) error
}
