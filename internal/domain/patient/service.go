package patient

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hospital/records/pkg/pagination"
)

// Service manages patients on behalf of their owning user.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, in Input) (*Patient, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	p := &Patient{UserID: ownerID}
	in.apply(p)
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create patient: %w", err)
	}
	return p, nil
}

func (s *Service) List(ctx context.Context, ownerID uuid.UUID, page pagination.Params) ([]*Patient, error) {
	return s.repo.ListForOwner(ctx, ownerID, page)
}

func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (*Patient, error) {
	return s.repo.GetForOwner(ctx, ownerID, id)
}

// Update replaces name, age and disease.
func (s *Service) Update(ctx context.Context, ownerID, id uuid.UUID, in Input) (*Patient, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	p, err := s.repo.GetForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	in.apply(p)
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes the patient and, through the schema, its mappings.
func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.Delete(ctx, ownerID, id)
}
