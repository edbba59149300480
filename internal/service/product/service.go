package product

import (
	"context"
	"errors"
	"strings"

	"fayclick/internal/domain"
	productrepo "fayclick/internal/repository/product"
)

// ErrInvalidProduct is returned when a create/update payload fails validation.
var ErrInvalidProduct = errors.New("invalid product")

type Service struct {
	repo productrepo.Repository
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo}
}

// Input carries the mutable fields of a product.
type Input struct {
	SKU         string `json:"sku"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Stock       int    `json:"stock"`
}

func (s *Service) List(ctx context.Context, structureID string) ([]domain.Product, error) {
	return s.repo.ListByStructure(ctx, structureID)
}

func (s *Service) Get(ctx context.Context, structureID, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, structureID, id)
}

func (s *Service) Create(ctx context.Context, structureID string, in Input) (*domain.Product, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, domain.Product{
		StructureID: structureID,
		SKU:         strings.TrimSpace(in.SKU),
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		Stock:       in.Stock,
	})
}

func (s *Service) Update(ctx context.Context, structureID, id string, in Input) (*domain.Product, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, domain.Product{
		ID:          id,
		StructureID: structureID,
		SKU:         strings.TrimSpace(in.SKU),
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		Stock:       in.Stock,
	})
}

func (s *Service) Delete(ctx context.Context, structureID, id string) error {
	return s.repo.Delete(ctx, structureID, id)
}

// AdjustStock applies a signed delta; the stored stock never goes below zero.
func (s *Service) AdjustStock(ctx context.Context, structureID, id string, delta int) (*domain.Product, error) {
	return s.repo.AdjustStock(ctx, structureID, id, delta)
}

func validate(in Input) error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrInvalidProduct
	}
	if in.Price < 0 || in.Stock < 0 {
		return ErrInvalidProduct
	}
	return nil
}
