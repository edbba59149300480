package checkout

import (
	"context"
	"time"

	"github.com/google/uuid"

	"fayclick/internal/domain"
	"fayclick/internal/gateway"
)

// WalletStatus is the snapshot handed to the client on each status read.
type WalletStatus struct {
	PaymentID        string               `json:"paymentId"`
	Method           domain.PaymentMethod `json:"method"`
	Amount           int64                `json:"amount"`
	Status           domain.PaymentStatus `json:"status"`
	QRPayload        string               `json:"qrPayload,omitempty"`
	Deeplink         string               `json:"deeplink,omitempty"`
	RemainingSeconds int                  `json:"remainingSeconds"`
	Failure          string               `json:"failure,omitempty"`
	// EncashmentPending marks the "payment recorded may be incomplete"
	// condition: the wallet debit succeeded and the invoice exists, but
	// the encashment record is missing.
	EncashmentPending bool            `json:"encashmentPending"`
	Receipt           *domain.Receipt `json:"receipt,omitempty"`
}

// StartWallet validates the phone, creates the payment at the gateway
// and starts the status poller. The returned status carries the QR
// payload and deeplink the payer needs.
func (s *Service) StartWallet(ctx context.Context, structureID, cartID string, method domain.PaymentMethod, phone string, clientID *string) (*WalletStatus, error) {
	if err := s.checkGate(ctx, structureID); err != nil {
		return nil, err
	}

	normalized, err := gateway.NormalizePhone(method, phone)
	if err != nil {
		return nil, err
	}

	cart, err := s.carts.Get(structureID, cartID)
	if err != nil {
		return nil, err
	}
	snap := cart.Snapshot()
	if len(snap.Lines) == 0 {
		return nil, ErrEmptyCart
	}

	reference := "FAY-" + uuid.NewString()
	created, err := s.gateway.CreatePayment(ctx, method, normalized, snap.NetTotal, reference)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	ceiling := s.timeoutFor(method)
	p := &payment{
		req: domain.PaymentRequest{
			ID:              uuid.NewString(),
			Method:          method,
			Phone:           normalized,
			Amount:          snap.NetTotal,
			ExternalRef:     reference,
			CorrelationUUID: created.CorrelationUUID,
			QRPayload:       created.QRPayload,
			Deeplink:        created.Deeplink,
			Status:          domain.StatusPending,
			CreatedAt:       now,
			ExpiresAt:       now.Add(ceiling),
		},
		structureID: structureID,
		cartID:      cartID,
		clientID:    clientID,
		snapshot:    snap,
	}

	pollCtx, cancel := context.WithDeadline(context.Background(), p.req.ExpiresAt)
	p.cancel = cancel

	s.mu.Lock()
	s.payments[p.req.ID] = p
	s.mu.Unlock()

	s.wg.Add(1)
	go s.poll(pollCtx, p)

	return s.snapshotStatus(p), nil
}

// poll drives one payment to a terminal status. The loop is sequential,
// so at most one status check is in flight at any time. It exits on a
// terminal gateway status, on the wall-clock ceiling, or when cancelled.
func (s *Service) poll(ctx context.Context, p *payment) {
	defer s.wg.Done()
	defer p.cancel()

	ticker := time.NewTicker(s.opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if ctx.Err() == context.DeadlineExceeded {
				s.markTimeout(p)
			}
			return
		case <-ticker.C:
			status, err := s.gateway.PollStatus(ctx, p.req.CorrelationUUID)
			if err != nil {
				if ctx.Err() != nil {
					if ctx.Err() == context.DeadlineExceeded {
						s.markTimeout(p)
					}
					return
				}
				// A single failed poll is retried on the next tick.
				if s.logger != nil {
					s.logger.Printf("poll %s: %v", p.req.ID, err)
				}
				continue
			}

			switch status {
			case domain.StatusCompleted:
				s.handleCompleted(p)
				return
			case domain.StatusFailed:
				s.markFailed(p, "payment refused by wallet")
				return
			case domain.StatusProcessing:
				p.mu.Lock()
				if !p.req.Status.Terminal() {
					p.req.Status = domain.StatusProcessing
				}
				p.mu.Unlock()
			}
		}
	}
}

// handleCompleted runs the finalizer exactly once. The guard makes later
// COMPLETED deliveries no-ops: first call wins.
func (s *Service) handleCompleted(p *payment) {
	p.mu.Lock()
	if p.finalized {
		p.mu.Unlock()
		return
	}
	p.finalized = true
	p.req.Status = domain.StatusCompleted
	p.mu.Unlock()

	// The wallet has been debited: finalization must not be cut short by
	// poller teardown, so it runs on its own deadline.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	receipt, invoice, err := s.finalize(ctx, finalizeInput{
		structureID: p.structureID,
		clientID:    p.clientID,
		snapshot:    p.snapshot,
		method:      p.req.Method,
		proof: settlementProof{
			txRef:           p.req.ExternalRef,
			correlationUUID: p.req.CorrelationUUID,
			phone:           p.req.Phone,
		},
	})

	p.mu.Lock()
	defer p.mu.Unlock()
	p.invoice = invoice
	switch {
	case err == nil:
		p.receipt = receipt
		s.carts.Destroy(p.cartID)
	case invoice != nil:
		// Invoice exists but the encashment write failed. Keep the
		// payment around so the encashment alone can be retried.
		p.encashmentPending = true
		p.failure = ErrEncashmentIncomplete.Error()
	default:
		p.req.Status = domain.StatusFailed
		p.failure = err.Error()
	}
}

func (s *Service) markFailed(p *payment, reason string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.finalized || p.req.Status.Terminal() {
		return
	}
	p.req.Status = domain.StatusFailed
	p.failure = reason
}

// markTimeout transitions to TIMEOUT exactly once; a payment that
// already reached a terminal status is left untouched.
func (s *Service) markTimeout(p *payment) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.finalized || p.req.Status.Terminal() {
		return
	}
	p.req.Status = domain.StatusTimeout
}

// Status returns the current snapshot of a wallet payment.
func (s *Service) Status(structureID, paymentID string) (*WalletStatus, error) {
	p, err := s.lookup(structureID, paymentID)
	if err != nil {
		return nil, err
	}
	return s.snapshotStatus(p), nil
}

// Cancel stops the poller immediately and discards all payment state.
// Cancelling before completion leaves the cart untouched and performs no
// backend writes; on a terminal payment it simply dismisses the record.
func (s *Service) Cancel(structureID, paymentID string) error {
	p, err := s.lookup(structureID, paymentID)
	if err != nil {
		return err
	}

	p.mu.Lock()
	pending := p.encashmentPending
	p.mu.Unlock()
	if pending {
		// Keep the record: the invoice exists server-side and must be
		// reconciled, not silently dropped.
		return ErrEncashmentIncomplete
	}

	p.cancel()
	s.mu.Lock()
	delete(s.payments, paymentID)
	s.mu.Unlock()
	return nil
}

// RetryEncashment re-runs step 2 of the finalizer for a payment stuck in
// the encashment-pending state. The invoice is never re-created.
func (s *Service) RetryEncashment(ctx context.Context, structureID, paymentID string) (*WalletStatus, error) {
	p, err := s.lookup(structureID, paymentID)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	if !p.encashmentPending || p.invoice == nil {
		p.mu.Unlock()
		return nil, ErrNotRetryable
	}
	invoice := p.invoice
	snap := p.snapshot
	method := p.req.Method
	proof := settlementProof{
		txRef:           p.req.ExternalRef,
		correlationUUID: p.req.CorrelationUUID,
		phone:           p.req.Phone,
	}
	p.mu.Unlock()

	receipt, err := s.encash(ctx, p.structureID, invoice, snap, method, proof)
	if err != nil {
		return nil, ErrEncashmentIncomplete
	}

	p.mu.Lock()
	p.encashmentPending = false
	p.failure = ""
	p.receipt = receipt
	p.mu.Unlock()
	s.carts.Destroy(p.cartID)

	return s.snapshotStatus(p), nil
}

func (s *Service) lookup(structureID, paymentID string) (*payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.payments[paymentID]
	if !ok || p.structureID != structureID {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (s *Service) snapshotStatus(p *payment) *WalletStatus {
	p.mu.Lock()
	defer p.mu.Unlock()

	remaining := int(time.Until(p.req.ExpiresAt).Seconds())
	if remaining < 0 || p.req.Status.Terminal() {
		remaining = 0
	}
	return &WalletStatus{
		PaymentID:         p.req.ID,
		Method:            p.req.Method,
		Amount:            p.req.Amount,
		Status:            p.req.Status,
		QRPayload:         p.req.QRPayload,
		Deeplink:          p.req.Deeplink,
		RemainingSeconds:  remaining,
		Failure:           p.failure,
		EncashmentPending: p.encashmentPending,
		Receipt:           p.receipt,
	}
}
