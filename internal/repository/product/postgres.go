package product

import (
	"context"
	"errors"
	"io"
	"log"

	"fayclick/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const productColumns = `id::text, structure_id::text, sku, name, COALESCE(description, ''), price, stock, created_at`

func (r *postgresRepo) ListByStructure(ctx context.Context, structureID string) ([]domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE structure_id = $1
ORDER BY name ASC
`
	rows, err := r.pool.Query(ctx, q, structureID)
	if err != nil {
		r.logger.Printf("product repo: list structure_id=%s error=%v", structureID, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.StructureID, &p.SKU, &p.Name, &p.Description, &p.Price, &p.Stock, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, structureID, id string) (*domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE structure_id = $1 AND id = $2
`
	return r.scanOne(r.pool.QueryRow(ctx, q, structureID, id))
}

func (r *postgresRepo) Create(ctx context.Context, product domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (structure_id, sku, name, description, price, stock)
VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)
RETURNING ` + productColumns + `
`
	out, err := r.scanOne(r.pool.QueryRow(ctx, q, product.StructureID, product.SKU, product.Name, product.Description, product.Price, product.Stock))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Printf("product repo: create sku=%s structure_id=%s error=%v", product.SKU, product.StructureID, err)
		return nil, err
	}
	return out, nil
}

func (r *postgresRepo) Update(ctx context.Context, product domain.Product) (*domain.Product, error) {
	const q = `
UPDATE products
SET sku = $3, name = $4, description = NULLIF($5, ''), price = $6, stock = $7
WHERE structure_id = $1 AND id = $2
RETURNING ` + productColumns + `
`
	return r.scanOne(r.pool.QueryRow(ctx, q, product.StructureID, product.ID, product.SKU, product.Name, product.Description, product.Price, product.Stock))
}

func (r *postgresRepo) Delete(ctx context.Context, structureID, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE structure_id = $1 AND id = $2`, structureID, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AdjustStock applies a delta without letting stock go negative.
func (r *postgresRepo) AdjustStock(ctx context.Context, structureID, id string, delta int) (*domain.Product, error) {
	const q = `
UPDATE products
SET stock = GREATEST(0, stock + $3)
WHERE structure_id = $1 AND id = $2
RETURNING ` + productColumns + `
`
	return r.scanOne(r.pool.QueryRow(ctx, q, structureID, id, delta))
}

func (r *postgresRepo) scanOne(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.StructureID, &p.SKU, &p.Name, &p.Description, &p.Price, &p.Stock, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}
