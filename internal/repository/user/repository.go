package user

import (
	"context"

	"fayclick/internal/domain"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByLogin(ctx context.Context, login string) (*domain.User, error)
	Create(ctx context.Context, u domain.User) (*domain.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}
