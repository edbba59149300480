package client

import (
	"context"

	"fayclick/internal/domain"
)

type Repository interface {
	ListByStructure(ctx context.Context, structureID string) ([]domain.Client, error)
	GetByID(ctx context.Context, structureID, id string) (*domain.Client, error)
	Create(ctx context.Context, c domain.Client) (*domain.Client, error)
	Update(ctx context.Context, c domain.Client) (*domain.Client, error)
	Delete(ctx context.Context, structureID, id string) error
}
