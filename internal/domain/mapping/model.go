package mapping

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hospital/records/internal/domain"
)

// Mapping links a doctor to a patient. Names are read from the doctor and
// patient rows, never stored on the mapping.
type Mapping struct {
	ID             uuid.UUID `json:"id"`
	DoctorID       uuid.UUID `json:"doctor"`
	DoctorName     string    `json:"doctor_name"`
	PatientName    string    `json:"patient_name"`
	PatientID      uuid.UUID `json:"patient"`
	MappingDoneOn  time.Time `json:"mapping_done_on"`
	PatientOwnerID uuid.UUID `json:"-"`
}

// CreateRequest is the body of POST /mapping.
type CreateRequest struct {
	Doctor  string `json:"doctor" validate:"required,uuidref"`
	Patient string `json:"patient" validate:"required,uuidref"`
}

func (r *CreateRequest) Validate() error {
	r.Doctor = strings.TrimSpace(r.Doctor)
	r.Patient = strings.TrimSpace(r.Patient)
	return domain.Validate(r)
}

// IDs validates and parses both references.
func (r CreateRequest) IDs() (doctorID, patientID uuid.UUID, err error) {
	if err := r.Validate(); err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return uuid.MustParse(r.Doctor), uuid.MustParse(r.Patient), nil
}

// Scope decides which mappings a caller may see and change.
type Scope string

const (
	// ScopeOpen lets any authenticated caller work with every mapping.
	ScopeOpen Scope = "open"
	// ScopeOwner limits callers to mappings of patients they own.
	ScopeOwner Scope = "owner"
)
