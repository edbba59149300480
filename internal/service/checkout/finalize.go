package checkout

import (
	"context"

	"fayclick/internal/domain"
	"fayclick/internal/receipt"
	invoicerepo "fayclick/internal/repository/invoice"
)

// settlementProof carries what the encashment record needs to point back
// at the settlement: the cash amounts, or the wallet trail.
type settlementProof struct {
	cashReceived    int64
	changeDue       int64
	txRef           string
	correlationUUID string
	phone           string
}

type finalizeInput struct {
	structureID string
	clientID    *string
	snapshot    domain.CartSnapshot
	method      domain.PaymentMethod
	proof       settlementProof
}

// finalize creates the invoice then records its encashment. Step 1
// failing aborts loudly with no invoice. Step 2 failing after step 1
// returns the created invoice alongside the error so the caller can
// surface the partial-failure state and retry the encashment alone.
func (s *Service) finalize(ctx context.Context, in finalizeInput) (*domain.Receipt, *domain.Invoice, error) {
	lines := make([]invoicerepo.LineInput, 0, len(in.snapshot.Lines))
	for _, l := range in.snapshot.Lines {
		lines = append(lines, invoicerepo.LineInput{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			UnitPrice:   l.UnitPrice,
			Quantity:    l.Quantity,
		})
	}

	invoice, err := s.invoices.CreateInvoice(ctx, invoicerepo.CreateInvoiceInput{
		StructureID: in.structureID,
		ClientID:    in.clientID,
		Lines:       lines,
		Subtotal:    in.snapshot.Subtotal,
		Discount:    in.snapshot.Discount,
		Total:       in.snapshot.NetTotal,
	})
	if err != nil {
		return nil, nil, err
	}

	rcpt, err := s.encash(ctx, in.structureID, invoice, in.snapshot, in.method, in.proof)
	if err != nil {
		return nil, invoice, err
	}
	return rcpt, invoice, nil
}

// encash records the payment of an existing invoice and builds the
// receipt shown to the user.
func (s *Service) encash(ctx context.Context, structureID string, invoice *domain.Invoice, snap domain.CartSnapshot, method domain.PaymentMethod, proof settlementProof) (*domain.Receipt, error) {
	enc, err := s.invoices.RecordEncashment(ctx, invoicerepo.EncashmentInput{
		StructureID:     structureID,
		InvoiceID:       invoice.ID,
		Method:          method,
		Amount:          invoice.Total,
		CashReceived:    proof.cashReceived,
		ChangeDue:       proof.changeDue,
		TxRef:           proof.txRef,
		CorrelationUUID: proof.correlationUUID,
		Phone:           proof.phone,
	})
	if err != nil {
		return nil, err
	}

	structureName := ""
	if s.structures != nil {
		if st, err := s.structures.Get(ctx, structureID); err == nil {
			structureName = st.Name
		}
	}

	rcpt := receipt.Build(invoice, enc, structureName, s.opts.DisplaySeconds)

	if s.events != nil {
		if err := s.events.EncashmentRecorded(ctx, *enc, invoice.Number); err != nil && s.logger != nil {
			s.logger.Printf("publish encashment %s: %v", enc.ReceiptNumber, err)
		}
	}
	return rcpt, nil
}
