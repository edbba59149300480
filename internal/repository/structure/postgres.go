package structure

import (
	"context"
	"errors"

	"fayclick/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

const columns = `id::text, code, name, COALESCE(phone, ''), COALESCE(address, ''), COALESCE(city, ''), created_at`

func (r *postgresRepo) Get(ctx context.Context, id string) (*domain.Structure, error) {
	return r.scanOne(r.pool.QueryRow(ctx, `SELECT `+columns+` FROM structures WHERE id = $1`, id))
}

func (r *postgresRepo) GetByCode(ctx context.Context, code string) (*domain.Structure, error) {
	return r.scanOne(r.pool.QueryRow(ctx, `SELECT `+columns+` FROM structures WHERE code = $1`, code))
}

func (r *postgresRepo) Create(ctx context.Context, s *domain.Structure) (*domain.Structure, error) {
	const q = `
INSERT INTO structures (code, name, phone, address, city)
VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''))
RETURNING ` + columns + `
`
	out, err := r.scanOne(r.pool.QueryRow(ctx, q, s.Code, s.Name, s.Phone, s.Address, s.City))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	return out, nil
}

func (r *postgresRepo) Update(ctx context.Context, s *domain.Structure) (*domain.Structure, error) {
	const q = `
UPDATE structures
SET name = $2, phone = NULLIF($3, ''), address = NULLIF($4, ''), city = NULLIF($5, '')
WHERE id = $1
RETURNING ` + columns + `
`
	return r.scanOne(r.pool.QueryRow(ctx, q, s.ID, s.Name, s.Phone, s.Address, s.City))
}

func (r *postgresRepo) scanOne(row pgx.Row) (*domain.Structure, error) {
	var s domain.Structure
	err := row.Scan(&s.ID, &s.Code, &s.Name, &s.Phone, &s.Address, &s.City, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}
