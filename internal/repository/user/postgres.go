package user

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

const columns = `
u.id::text, u.structure_id::text, s.name, u.login, u.password_hash,
u.role, u.password_changed, u.created_at`

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const q = `
SELECT ` + columns + `
FROM users u
JOIN structures s ON s.id = u.structure_id
WHERE u.id = $1
`
	return r.scanOne(r.pool.QueryRow(ctx, q, id))
}

func (r *postgresRepo) GetByLogin(ctx context.Context, login string) (*domain.User, error) {
	const q = `
SELECT ` + columns + `
FROM users u
JOIN structures s ON s.id = u.structure_id
WHERE u.login = $1
`
	return r.scanOne(r.pool.QueryRow(ctx, q, login))
}

func (r *postgresRepo) Create(ctx context.Context, u domain.User) (*domain.User, error) {
	const q = `
INSERT INTO users (structure_id, login, password_hash, role, password_changed)
VALUES ($1, $2, $3, $4, $5)
RETURNING id::text, created_at
`
	err := r.pool.QueryRow(ctx, q, u.StructureID, u.Login, u.PasswordHash, u.Role, u.PasswordChanged).
		Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	return &u, nil
}

func (r *postgresRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET password_hash = $2, password_changed = TRUE WHERE id = $1`,
		id, passwordHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) scanOne(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.StructureID, &u.StructureName, &u.Login, &u.PasswordHash,
		&u.Role, &u.PasswordChanged, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
