package doctor

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hospital/records/pkg/pagination"
)

// Service manages doctors. Doctors are shared: any authenticated user may
// read or change any of them.
type Service struct {
	repo   Repository
	logger zerolog.Logger
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{repo: repo, logger: logger.With().Str("component", "doctor").Logger()}
}

func (s *Service) Create(ctx context.Context, creatorID uuid.UUID, in CreateInput) (*Doctor, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	d := &Doctor{UserID: creatorID, Name: in.Name, SpecializedIn: in.SpecializedIn}
	if in.YrsOfExperience != nil {
		d.YrsOfExperience = *in.YrsOfExperience
	}
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, fmt.Errorf("create doctor: %w", err)
	}
	return d, nil
}

func (s *Service) List(ctx context.Context, page pagination.Params) ([]*Doctor, error) {
	return s.repo.List(ctx, page)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return s.repo.GetByID(ctx, id)
}

// Update changes only the fields present in patch.
func (s *Service) Update(ctx context.Context, id uuid.UUID, patch Patch) (*Doctor, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	if patch.Empty() {
		return s.repo.GetByID(ctx, id)
	}
	return s.repo.Update(ctx, id, patch)
}

// Delete removes the doctor together with its mappings.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("doctor_id", id.String()).Msg("doctor deleted")
	return nil
}
