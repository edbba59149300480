package product

import (
	"context"

	"fayclick/internal/domain"
)

type Repository interface {
	ListByStructure(ctx context.Context, structureID string) ([]domain.Product, error)
	GetByID(ctx context.Context, structureID, id string) (*domain.Product, error)
	Create(ctx context.Context, product domain.Product) (*domain.Product, error)
	Update(ctx context.Context, product domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, structureID, id string) error
	AdjustStock(ctx context.Context, structureID, id string, delta int) (*domain.Product, error)
}
