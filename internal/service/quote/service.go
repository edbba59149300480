package quote

import (
	"context"
	"errors"

	"fayclick/internal/domain"
	invoicerepo "fayclick/internal/repository/invoice"
	quoterepo "fayclick/internal/repository/quote"
)

var (
	// ErrInvalidQuote is returned when a create payload fails validation.
	ErrInvalidQuote = errors.New("invalid quote")
	// ErrBadTransition is returned for a status change the lifecycle forbids.
	ErrBadTransition = errors.New("quote status transition not allowed")
	// ErrNotConvertible is returned when converting a quote that is not accepted
	// or has already produced an invoice.
	ErrNotConvertible = errors.New("quote cannot be converted")
)

type Service struct {
	quotes   quoterepo.Repository
	invoices invoicerepo.Repository
}

func New(quotes quoterepo.Repository, invoices invoicerepo.Repository) *Service {
	return &Service{quotes: quotes, invoices: invoices}
}

// LineInput mirrors one proposed line of a quote.
type LineInput struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	UnitPrice   int64  `json:"unitPrice"`
	Quantity    int    `json:"quantity"`
}

func (s *Service) Create(ctx context.Context, structureID, clientID string, lines []LineInput) (*domain.Quote, error) {
	if clientID == "" || len(lines) == 0 {
		return nil, ErrInvalidQuote
	}
	in := quoterepo.CreateQuoteInput{StructureID: structureID, ClientID: clientID}
	for _, l := range lines {
		if l.ProductName == "" || l.UnitPrice < 0 || l.Quantity <= 0 {
			return nil, ErrInvalidQuote
		}
		in.Lines = append(in.Lines, quoterepo.LineInput{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			UnitPrice:   l.UnitPrice,
			Quantity:    l.Quantity,
		})
	}
	return s.quotes.Create(ctx, in)
}

func (s *Service) Get(ctx context.Context, structureID, id string) (*domain.Quote, error) {
	return s.quotes.GetByID(ctx, structureID, id)
}

func (s *Service) List(ctx context.Context, structureID string) ([]domain.Quote, error) {
	return s.quotes.ListByStructure(ctx, structureID)
}

// Send marks a draft quote as sent to the client.
func (s *Service) Send(ctx context.Context, structureID, id string) (*domain.Quote, error) {
	return s.transition(ctx, structureID, id, domain.QuoteSent, domain.QuoteDraft)
}

// Accept marks a sent quote as accepted.
func (s *Service) Accept(ctx context.Context, structureID, id string) (*domain.Quote, error) {
	return s.transition(ctx, structureID, id, domain.QuoteAccepted, domain.QuoteSent)
}

// Reject marks a sent quote as rejected.
func (s *Service) Reject(ctx context.Context, structureID, id string) (*domain.Quote, error) {
	return s.transition(ctx, structureID, id, domain.QuoteRejected, domain.QuoteSent)
}

// ConvertToInvoice freezes an accepted quote into an invoice. The quote
// keeps a reference to the invoice and cannot be converted twice.
func (s *Service) ConvertToInvoice(ctx context.Context, structureID, id string) (*domain.Invoice, error) {
	q, err := s.quotes.GetByID(ctx, structureID, id)
	if err != nil {
		return nil, err
	}
	if q.Status != domain.QuoteAccepted || q.InvoiceID != nil {
		return nil, ErrNotConvertible
	}

	in := invoicerepo.CreateInvoiceInput{
		StructureID: structureID,
		ClientID:    &q.ClientID,
		Subtotal:    q.Total,
		Total:       q.Total,
	}
	for _, l := range q.Lines {
		in.Lines = append(in.Lines, invoicerepo.LineInput{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			UnitPrice:   l.UnitPrice,
			Quantity:    l.Quantity,
		})
	}
	inv, err := s.invoices.CreateInvoice(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := s.quotes.MarkConverted(ctx, structureID, id, inv.ID); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *Service) transition(ctx context.Context, structureID, id string, to domain.QuoteStatus, from ...domain.QuoteStatus) (*domain.Quote, error) {
	q, err := s.quotes.GetByID(ctx, structureID, id)
	if err != nil {
		return nil, err
	}
	allowed := false
	for _, st := range from {
		if q.Status == st {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, ErrBadTransition
	}
	if err := s.quotes.SetStatus(ctx, structureID, id, to); err != nil {
		return nil, err
	}
	q.Status = to
	return q, nil
}
