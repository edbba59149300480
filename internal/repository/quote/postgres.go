package quote

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fayclick/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Create(ctx context.Context, in CreateQuoteInput) (*domain.Quote, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var seq int64
	if err := tx.QueryRow(ctx, `SELECT nextval('quote_number_seq')`).Scan(&seq); err != nil {
		return nil, err
	}
	number := fmt.Sprintf("DV-%s-%06d", time.Now().UTC().Format("20060102"), seq)

	var total int64
	for _, l := range in.Lines {
		total += l.UnitPrice * int64(l.Quantity)
	}

	q := domain.Quote{
		Number:      number,
		StructureID: in.StructureID,
		ClientID:    in.ClientID,
		Status:      domain.QuoteDraft,
		Total:       total,
	}
	err = tx.QueryRow(ctx, `
INSERT INTO quotes (number, structure_id, client_id, status, total)
VALUES ($1, $2, $3, $4, $5)
RETURNING id::text, created_at
`, number, in.StructureID, in.ClientID, string(domain.QuoteDraft), total).Scan(&q.ID, &q.CreatedAt)
	if err != nil {
		return nil, err
	}

	for _, l := range in.Lines {
		var line domain.QuoteLine
		err := tx.QueryRow(ctx, `
INSERT INTO quote_lines (quote_id, product_id, product_name, unit_price, quantity, line_total)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id::text
`, q.ID, l.ProductID, l.ProductName, l.UnitPrice, l.Quantity, l.UnitPrice*int64(l.Quantity)).Scan(&line.ID)
		if err != nil {
			return nil, err
		}
		line.QuoteID = q.ID
		line.ProductID = l.ProductID
		line.ProductName = l.ProductName
		line.UnitPrice = l.UnitPrice
		line.Quantity = l.Quantity
		line.LineTotal = l.UnitPrice * int64(l.Quantity)
		q.Lines = append(q.Lines, line)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, structureID, id string) (*domain.Quote, error) {
	const q = `
SELECT id::text, number, structure_id::text, client_id::text, status, total, invoice_id::text, created_at
FROM quotes
WHERE structure_id = $1 AND id = $2
`
	out, err := r.scanQuote(r.pool.QueryRow(ctx, q, structureID, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadLines(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *postgresRepo) ListByStructure(ctx context.Context, structureID string) ([]domain.Quote, error) {
	const q = `
SELECT id::text, number, structure_id::text, client_id::text, status, total, invoice_id::text, created_at
FROM quotes
WHERE structure_id = $1
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q, structureID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Quote
	for rows.Next() {
		qt, err := r.scanQuote(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *qt)
	}
	return out, rows.Err()
}

func (r *postgresRepo) SetStatus(ctx context.Context, structureID, id string, status domain.QuoteStatus) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE quotes SET status = $3 WHERE structure_id = $1 AND id = $2
`, structureID, id, string(status))
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) MarkConverted(ctx context.Context, structureID, id, invoiceID string) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE quotes SET invoice_id = $3 WHERE structure_id = $1 AND id = $2 AND invoice_id IS NULL
`, structureID, id, invoiceID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *postgresRepo) scanQuote(row rowScanner) (*domain.Quote, error) {
	var q domain.Quote
	var status string
	var invoiceID *string
	err := row.Scan(&q.ID, &q.Number, &q.StructureID, &q.ClientID, &status, &q.Total, &invoiceID, &q.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	q.Status = domain.QuoteStatus(status)
	q.InvoiceID = invoiceID
	return &q, nil
}

func (r *postgresRepo) loadLines(ctx context.Context, q *domain.Quote) error {
	rows, err := r.pool.Query(ctx, `
SELECT id::text, quote_id::text, product_id::text, product_name, unit_price, quantity, line_total
FROM quote_lines
WHERE quote_id = $1
ORDER BY created_at ASC
`, q.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var line domain.QuoteLine
		if err := rows.Scan(&line.ID, &line.QuoteID, &line.ProductID, &line.ProductName, &line.UnitPrice, &line.Quantity, &line.LineTotal); err != nil {
			return err
		}
		q.Lines = append(q.Lines, line)
	}
	return rows.Err()
}
