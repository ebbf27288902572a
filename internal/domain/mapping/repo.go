package mapping

import (
	"context"

	"github.com/google/uuid"

	"github.com/hospital/records/pkg/pagination"
)

// Filter narrows List. Nil fields do not filter.
type Filter struct {
	PatientID *uuid.UUID
	OwnerID   *uuid.UUID
	Page      pagination.Params
}

// Repository is the relation store for doctor-patient mappings. The
// storage enforces one row per (doctor, patient); Create reports a
// losing concurrent insert as domain.ErrAlreadyExists.
type Repository interface {
	Exists(ctx context.Context, doctorID, patientID uuid.UUID) (bool, error)
	Create(ctx context.Context, m *Mapping) error
	GetByID(ctx context.Context, id uuid.UUID) (*Mapping, error)
	List(ctx context.Context, f Filter) ([]*Mapping, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
