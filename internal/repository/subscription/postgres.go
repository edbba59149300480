package subscription

import (
	"context"
	"errors"
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

func (r *postgresRepo) GetByStructure(ctx context.Context, structureID string) (*domain.Subscription, error) {
	const q = `
SELECT structure_id::text, plan, active, expires_at
FROM subscriptions
WHERE structure_id = $1
`
	return r.scanOne(r.pool.QueryRow(ctx, q, structureID))
}

func (r *postgresRepo) Upsert(ctx context.Context, sub domain.Subscription) (*domain.Subscription, error) {
	const q = `
INSERT INTO subscriptions (structure_id, plan, active, expires_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (structure_id) DO UPDATE SET
    plan = EXCLUDED.plan,
    active = EXCLUDED.active,
    expires_at = EXCLUDED.expires_at
RETURNING structure_id::text, plan, active, expires_at
`
	return r.scanOne(r.pool.QueryRow(ctx, q, sub.StructureID, sub.Plan, sub.Active, sub.ExpiresAt))
}

func (r *postgresRepo) Renew(ctx context.Context, structureID string, until time.Time) (*domain.Subscription, error) {
	const q = `
UPDATE subscriptions
SET active = TRUE, expires_at = $2
WHERE structure_id = $1
RETURNING structure_id::text, plan, active, expires_at
`
	return r.scanOne(r.pool.QueryRow(ctx, q, structureID, until))
}

func (r *postgresRepo) scanOne(row pgx.Row) (*domain.Subscription, error) {
	var s domain.Subscription
	err := row.Scan(&s.StructureID, &s.Plan, &s.Active, &s.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}
