package client

import (
	"context"
	"errors"

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

const columns = `id::text, structure_id::text, name, COALESCE(phone, ''), COALESCE(address, ''), created_at`

func (r *postgresRepo) ListByStructure(ctx context.Context, structureID string) ([]domain.Client, error) {
	const q = `
SELECT ` + columns + `
FROM clients
WHERE structure_id = $1
ORDER BY name ASC
`
	rows, err := r.pool.Query(ctx, q, structureID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Client
	for rows.Next() {
		var c domain.Client
		if err := rows.Scan(&c.ID, &c.StructureID, &c.Name, &c.Phone, &c.Address, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *postgresRepo) GetByID(ctx context.Context, structureID, id string) (*domain.Client, error) {
	return r.scanOne(r.pool.QueryRow(ctx, `SELECT `+columns+` FROM clients WHERE structure_id = $1 AND id = $2`, structureID, id))
}

func (r *postgresRepo) Create(ctx context.Context, c domain.Client) (*domain.Client, error) {
	const q = `
INSERT INTO clients (structure_id, name, phone, address)
VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''))
RETURNING ` + columns + `
`
	return r.scanOne(r.pool.QueryRow(ctx, q, c.StructureID, c.Name, c.Phone, c.Address))
}

func (r *postgresRepo) Update(ctx context.Context, c domain.Client) (*domain.Client, error) {
	const q = `
UPDATE clients
SET name = $3, phone = NULLIF($4, ''), address = NULLIF($5, '')
WHERE structure_id = $1 AND id = $2
RETURNING ` + columns + `
`
	return r.scanOne(r.pool.QueryRow(ctx, q, c.StructureID, c.ID, c.Name, c.Phone, c.Address))
}

func (r *postgresRepo) Delete(ctx context.Context, structureID, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM clients WHERE structure_id = $1 AND id = $2`, structureID, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) scanOne(row pgx.Row) (*domain.Client, error) {
	var c domain.Client
	err := row.Scan(&c.ID, &c.StructureID, &c.Name, &c.Phone, &c.Address, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}
