package subscription

import (
	"context"
	"time"

	"fayclick/internal/domain"
)

type Repository interface {
	GetByStructure(ctx context.Context, structureID string) (*domain.Subscription, error)
	Upsert(ctx context.Context, sub domain.Subscription) (*domain.Subscription, error)
	Renew(ctx context.Context, structureID string, until time.Time) (*domain.Subscription, error)
}
