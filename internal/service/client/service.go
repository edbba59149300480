package client

import (
	"context"
	"errors"
	"strings"

	"fayclick/internal/domain"
	clientrepo "fayclick/internal/repository/client"
)

// ErrInvalidClient is returned when a create/update payload fails validation.
var ErrInvalidClient = errors.New("invalid client")

type Service struct {
	repo clientrepo.Repository
}

func New(repo clientrepo.Repository) *Service {
	return &Service{repo: repo}
}

// Input carries the mutable fields of a client record.
type Input struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func (s *Service) List(ctx context.Context, structureID string) ([]domain.Client, error) {
	return s.repo.ListByStructure(ctx, structureID)
}

func (s *Service) Get(ctx context.Context, structureID, id string) (*domain.Client, error) {
	return s.repo.GetByID(ctx, structureID, id)
}

func (s *Service) Create(ctx context.Context, structureID string, in Input) (*domain.Client, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrInvalidClient
	}
	return s.repo.Create(ctx, domain.Client{
		StructureID: structureID,
		Name:        name,
		Phone:       strings.TrimSpace(in.Phone),
		Address:     strings.TrimSpace(in.Address),
	})
}

func (s *Service) Update(ctx context.Context, structureID, id string, in Input) (*domain.Client, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrInvalidClient
	}
	return s.repo.Update(ctx, domain.Client{
		ID:          id,
		StructureID: structureID,
		Name:        name,
		Phone:       strings.TrimSpace(in.Phone),
		Address:     strings.TrimSpace(in.Address),
	})
}

func (s *Service) Delete(ctx context.Context, structureID, id string) error {
	return s.repo.Delete(ctx, structureID, id)
}
