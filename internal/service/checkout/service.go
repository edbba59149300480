package checkout

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"fayclick/internal/domain"
	"fayclick/internal/gateway"
	invoicerepo "fayclick/internal/repository/invoice"
	cartstore "fayclick/internal/service/cart"
)

var (
	// ErrInsufficientCash means cash received is below the amount due.
	ErrInsufficientCash = errors.New("cash received is below amount due")
	// ErrEmptyCart rejects checkout of a cart with no lines.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrSubscriptionExpired signals the feature gate refused the sale.
	ErrSubscriptionExpired = errors.New("subscription expired")
	// ErrEncashmentIncomplete marks the partial-failure state: the invoice
	// exists but recording its payment failed. Never masked as success.
	ErrEncashmentIncomplete = errors.New("invoice created but encashment not recorded")
	// ErrNotRetryable is returned when RetryEncashment is called on a
	// payment that is not in the encashment-pending state.
	ErrNotRetryable = errors.New("payment has no pending encashment")
)

type walletGateway interface {
	CreatePayment(ctx context.Context, method domain.PaymentMethod, phone string, amount int64, reference string) (*gateway.CreatedPayment, error)
	PollStatus(ctx context.Context, correlationUUID string) (domain.PaymentStatus, error)
}

type invoiceRepo interface {
	CreateInvoice(ctx context.Context, in invoicerepo.CreateInvoiceInput) (*domain.Invoice, error)
	RecordEncashment(ctx context.Context, in invoicerepo.EncashmentInput) (*domain.Encashment, error)
}

type featureGate interface {
	CanSell(ctx context.Context, structureID string) (bool, error)
}

type eventPublisher interface {
	EncashmentRecorded(ctx context.Context, enc domain.Encashment, invoiceNumber string) error
}

type structureRepo interface {
	Get(ctx context.Context, id string) (*domain.Structure, error)
}

// Options tunes the polling loop and receipt presentation.
type Options struct {
	PollInterval   time.Duration
	OMTimeout      time.Duration
	WaveTimeout    time.Duration
	DisplaySeconds int
}

func (o *Options) applyDefaults() {
	if o.PollInterval <= 0 {
		o.PollInterval = 3 * time.Second
	}
	if o.OMTimeout <= 0 {
		o.OMTimeout = 90 * time.Second
	}
	if o.WaveTimeout <= 0 {
		o.WaveTimeout = 120 * time.Second
	}
	if o.DisplaySeconds <= 0 {
		o.DisplaySeconds = 8
	}
}

// Service drives the checkout workflow: cash settlement, wallet payment
// initiation and polling, and invoice/encashment finalization. All live
// wallet payments are owned here and discarded once terminal.
type Service struct {
	carts      *cartstore.Store
	gateway    walletGateway
	invoices   invoiceRepo
	gate       featureGate
	events     eventPublisher
	structures structureRepo
	logger     *log.Logger
	opts       Options

	mu       sync.Mutex
	payments map[string]*payment
	wg       sync.WaitGroup
}

// payment is the in-flight state of one wallet payment attempt plus the
// idempotency guard around its completion.
type payment struct {
	mu sync.Mutex

	req         domain.PaymentRequest
	structureID string
	cartID      string
	clientID    *string
	snapshot    domain.CartSnapshot

	cancel context.CancelFunc

	// finalized flips exactly once; the poller may observe COMPLETED
	// more than once before it stops, later observations are no-ops.
	finalized bool

	invoice           *domain.Invoice
	receipt           *domain.Receipt
	encashmentPending bool
	failure           string
}

// New wires the checkout service. events and structures may be nil.
func New(carts *cartstore.Store, gw walletGateway, invoices invoiceRepo, gate featureGate, events eventPublisher, structures structureRepo, logger *log.Logger, opts Options) *Service {
	opts.applyDefaults()
	return &Service{
		carts:      carts,
		gateway:    gw,
		invoices:   invoices,
		gate:       gate,
		events:     events,
		structures: structures,
		logger:     logger,
		opts:       opts,
		payments:   make(map[string]*payment),
	}
}

// ChangeDue computes the cash change, floored at zero.
func ChangeDue(amountDue, cashReceived int64) int64 {
	if cashReceived <= amountDue {
		return 0
	}
	return cashReceived - amountDue
}

// CheckoutCash settles a cart with cash. Settlement is immediate and
// local, so the finalizer runs synchronously.
func (s *Service) CheckoutCash(ctx context.Context, structureID, cartID string, clientID *string, cashReceived int64) (*domain.Receipt, error) {
	if err := s.checkGate(ctx, structureID); err != nil {
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
	if cashReceived < snap.NetTotal {
		return nil, ErrInsufficientCash
	}

	receipt, _, err := s.finalize(ctx, finalizeInput{
		structureID: structureID,
		clientID:    clientID,
		snapshot:    snap,
		method:      domain.MethodCash,
		proof: settlementProof{
			cashReceived: cashReceived,
			changeDue:    ChangeDue(snap.NetTotal, cashReceived),
		},
	})
	if err != nil {
		return nil, err
	}

	s.carts.Destroy(cartID)
	return receipt, nil
}

// Shutdown cancels every live poller and waits for them to stop.
func (s *Service) Shutdown() {
	s.mu.Lock()
	for _, p := range s.payments {
		p.cancel()
	}
	s.mu.Unlock()
	s.wg.Wait()
}

// LivePayments returns the number of payments still owned by the service.
func (s *Service) LivePayments() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.payments)
}

func (s *Service) checkGate(ctx context.Context, structureID string) error {
	if s.gate == nil {
		return nil
	}
	ok, err := s.gate.CanSell(ctx, structureID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrSubscriptionExpired
	}
	return nil
}

func (s *Service) timeoutFor(method domain.PaymentMethod) time.Duration {
	if method == domain.MethodWave {
		return s.opts.WaveTimeout
	}
	return s.opts.OMTimeout
}
