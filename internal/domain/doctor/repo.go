package doctor

import (
	"context"

	"github.com/google/uuid"

	"github.com/hospital/records/pkg/pagination"
)

type Repository interface {
	Create(ctx context.Context, d *Doctor) error
	GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error)
	List(ctx context.Context, page pagination.Params) ([]*Doctor, error)
	// Update applies a non-empty patch and returns the stored row.
	Update(ctx context.Context, id uuid.UUID, patch Patch) (*Doctor, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
