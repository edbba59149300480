package structure

import (
	"context"

	"fayclick/internal/domain"
)

type Repository interface {
	Get(ctx context.Context, id string) (*domain.Structure, error)
	GetByCode(ctx context.Context, code string) (*domain.Structure, error)
	Create(ctx context.Context, s *domain.Structure) (*domain.Structure, error)
	Update(ctx context.Context, s *domain.Structure) (*domain.Structure, error)
}
