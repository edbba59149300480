package invoice

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"fayclick/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	return &postgresRepo{pool: pool, logger: logger}
}

// CreateInvoice inserts the invoice and its line snapshot in one
// transaction. The invoice number embeds the UTC date and a global sequence.
func (r *postgresRepo) CreateInvoice(ctx context.Context, in CreateInvoiceInput) (*domain.Invoice, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var seq int64
	if err := tx.QueryRow(ctx, `SELECT nextval('invoice_number_seq')`).Scan(&seq); err != nil {
		return nil, err
	}
	number := fmt.Sprintf("FV-%s-%06d", time.Now().UTC().Format("20060102"), seq)

	const q = `
INSERT INTO invoices (number, structure_id, client_id, subtotal, discount, total)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id::text, created_at
`
	inv := domain.Invoice{
		Number:      number,
		StructureID: in.StructureID,
		ClientID:    in.ClientID,
		Subtotal:    in.Subtotal,
		Discount:    in.Discount,
		Total:       in.Total,
	}
	if err := tx.QueryRow(ctx, q, number, in.StructureID, in.ClientID, in.Subtotal, in.Discount, in.Total).Scan(&inv.ID, &inv.CreatedAt); err != nil {
		return nil, err
	}

	for _, l := range in.Lines {
		var line domain.InvoiceLine
		err := tx.QueryRow(ctx, `
INSERT INTO invoice_lines (invoice_id, product_id, product_name, unit_price, quantity, line_total)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id::text
`, inv.ID, l.ProductID, l.ProductName, l.UnitPrice, l.Quantity, l.UnitPrice*int64(l.Quantity)).Scan(&line.ID)
		if err != nil {
			return nil, err
		}
		line.InvoiceID = inv.ID
		line.ProductID = l.ProductID
		line.ProductName = l.ProductName
		line.UnitPrice = l.UnitPrice
		line.Quantity = l.Quantity
		line.LineTotal = l.UnitPrice * int64(l.Quantity)
		inv.Lines = append(inv.Lines, line)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &inv, nil
}

// RecordEncashment writes the settlement record for an invoice and
// returns it with its generated receipt number.
func (r *postgresRepo) RecordEncashment(ctx context.Context, in EncashmentInput) (*domain.Encashment, error) {
	var seq int64
	if err := r.pool.QueryRow(ctx, `SELECT nextval('receipt_number_seq')`).Scan(&seq); err != nil {
		return nil, err
	}
	receiptNumber := fmt.Sprintf("RC-%s-%06d", time.Now().UTC().Format("20060102"), seq)

	const q = `
INSERT INTO encashments (receipt_number, invoice_id, structure_id, method, amount, cash_received, change_due, tx_ref, correlation_uuid, phone)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING id::text, created_at
`
	enc := domain.Encashment{
		ReceiptNumber:   receiptNumber,
		InvoiceID:       in.InvoiceID,
		StructureID:     in.StructureID,
		Method:          in.Method,
		Amount:          in.Amount,
		CashReceived:    in.CashReceived,
		ChangeDue:       in.ChangeDue,
		TxRef:           in.TxRef,
		CorrelationUUID: in.CorrelationUUID,
		Phone:           in.Phone,
	}
	err := r.pool.QueryRow(ctx, q,
		receiptNumber, in.InvoiceID, in.StructureID, string(in.Method), in.Amount,
		in.CashReceived, in.ChangeDue, nullable(in.TxRef), nullable(in.CorrelationUUID), nullable(in.Phone),
	).Scan(&enc.ID, &enc.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &enc, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, structureID, id string) (*domain.Invoice, error) {
	const q = `
SELECT id::text, number, structure_id::text, client_id::text, subtotal, discount, total, created_at
FROM invoices
WHERE structure_id = $1 AND id = $2
`
	inv, err := r.scanInvoice(r.pool.QueryRow(ctx, q, structureID, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadLines(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *postgresRepo) ListByStructure(ctx context.Context, structureID string, limit int) ([]domain.Invoice, error) {
	if limit <= 0 {
		limit = 50
	}
	const q = `
SELECT id::text, number, structure_id::text, client_id::text, subtotal, discount, total, created_at
FROM invoices
WHERE structure_id = $1
ORDER BY created_at DESC
LIMIT $2
`
	return r.listInvoices(ctx, q, structureID, limit)
}

// ListUnsettled returns invoices that have no encashment record: the
// follow-up surface for partial checkout failures.
func (r *postgresRepo) ListUnsettled(ctx context.Context, structureID string) ([]domain.Invoice, error) {
	const q = `
SELECT i.id::text, i.number, i.structure_id::text, i.client_id::text, i.subtotal, i.discount, i.total, i.created_at
FROM invoices i
LEFT JOIN encashments e ON e.invoice_id = i.id
WHERE i.structure_id = $1 AND e.id IS NULL
ORDER BY i.created_at ASC
`
	return r.listInvoices(ctx, q, structureID)
}

func (r *postgresRepo) listInvoices(ctx context.Context, q string, args ...interface{}) ([]domain.Invoice, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Invoice
	for rows.Next() {
		inv, err := r.scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *inv)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *postgresRepo) scanInvoice(row rowScanner) (*domain.Invoice, error) {
	var inv domain.Invoice
	var clientID *string
	err := row.Scan(&inv.ID, &inv.Number, &inv.StructureID, &clientID, &inv.Subtotal, &inv.Discount, &inv.Total, &inv.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	inv.ClientID = clientID
	return &inv, nil
}

func (r *postgresRepo) loadLines(ctx context.Context, inv *domain.Invoice) error {
	const q = `
SELECT id::text, invoice_id::text, product_id::text, product_name, unit_price, quantity, line_total
FROM invoice_lines
WHERE invoice_id = $1
ORDER BY created_at ASC
`
	rows, err := r.pool.Query(ctx, q, inv.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var line domain.InvoiceLine
		if err := rows.Scan(&line.ID, &line.InvoiceID, &line.ProductID, &line.ProductName, &line.UnitPrice, &line.Quantity, &line.LineTotal); err != nil {
			return err
		}
		inv.Lines = append(inv.Lines, line)
	}
	return rows.Err()
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
