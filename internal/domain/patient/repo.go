package patient

import (
	"context"

	"github.com/google/uuid"

	"github.com/hospital/records/pkg/pagination"
)

// Repository stores patients. Every owner-scoped method reports a patient
// belonging to someone else as domain.ErrNotFound.
type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	GetForOwner(ctx context.Context, ownerID, id uuid.UUID) (*Patient, error)
	ListForOwner(ctx context.Context, ownerID uuid.UUID, page pagination.Params) ([]*Patient, error)
	Update(ctx context.Context, p *Patient) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}
