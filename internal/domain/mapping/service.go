package mapping

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hospital/records/internal/domain"
	"github.com/hospital/records/internal/domain/doctor"
	"github.com/hospital/records/internal/domain/patient"
	"github.com/hospital/records/pkg/pagination"
)

// ErrDuplicateMapping is returned when the doctor is already assigned to
// the patient, whether caught by the pre-check or by the unique index.
var ErrDuplicateMapping = domain.NewError(domain.ErrAlreadyExists, "This doctor is already assigned to this patient.")

type DoctorFinder interface {
	GetByID(ctx context.Context, id uuid.UUID) (*doctor.Doctor, error)
}

type PatientFinder interface {
	GetByID(ctx context.Context, id uuid.UUID) (*patient.Patient, error)
}

// TxRunner runs fn in a transaction carried by the context it receives.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type Service struct {
	mappings Repository
	doctors  DoctorFinder
	patients PatientFinder
	tx       TxRunner
	scope    Scope
	logger   zerolog.Logger
}

func NewService(mappings Repository, doctors DoctorFinder, patients PatientFinder, tx TxRunner, scope Scope, logger zerolog.Logger) *Service {
	if scope == "" {
		scope = ScopeOpen
	}
	return &Service{
		mappings: mappings,
		doctors:  doctors,
		patients: patients,
		tx:       tx,
		scope:    scope,
		logger:   logger.With().Str("component", "mapping").Logger(),
	}
}

// patientFor loads a patient the caller may use. Under ScopeOwner another
// user's patient is reported as missing.
func (s *Service) patientFor(ctx context.Context, caller, id uuid.UUID) (*patient.Patient, error) {
	p, err := s.patients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.scope == ScopeOwner && p.UserID != caller {
		return nil, domain.NotFound("patient")
	}
	return p, nil
}

// CreateMapping assigns a doctor to a patient.
func (s *Service) CreateMapping(ctx context.Context, caller uuid.UUID, req CreateRequest) (*Mapping, error) {
	doctorID, patientID, err := req.IDs()
	if err != nil {
		return nil, err
	}

	var created *Mapping
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		d, err := s.doctors.GetByID(ctx, doctorID)
		if err != nil {
			return err
		}
		p, err := s.patientFor(ctx, caller, patientID)
		if err != nil {
			return err
		}

		exists, err := s.mappings.Exists(ctx, doctorID, patientID)
		if err != nil {
			return err
		}
		if exists {
			return ErrDuplicateMapping
		}

		m := &Mapping{DoctorID: doctorID, PatientID: patientID}
		if err := s.mappings.Create(ctx, m); err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				s.logger.Warn().
					Str("doctor_id", doctorID.String()).
					Str("patient_id", patientID.String()).
					Msg("duplicate mapping rejected by unique index")
				return ErrDuplicateMapping
			}
			return err
		}

		m.DoctorName = d.Name
		m.PatientName = p.Name
		m.PatientOwnerID = p.UserID
		created = m
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateMapping) {
			return nil, ErrDuplicateMapping
		}
		return nil, fmt.Errorf("create mapping: %w", err)
	}

	s.logger.Info().
		Str("mapping_id", created.ID.String()).
		Str("doctor_id", doctorID.String()).
		Str("patient_id", patientID.String()).
		Msg("mapping created")
	return created, nil
}

// ListAllMappings returns every mapping visible to the caller.
func (s *Service) ListAllMappings(ctx context.Context, caller uuid.UUID, page pagination.Params) ([]*Mapping, error) {
	f := Filter{Page: page}
	if s.scope == ScopeOwner {
		f.OwnerID = &caller
	}
	items, err := s.mappings.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list mappings: %w", err)
	}
	return items, nil
}

// ListMappingsForPatient returns the patient's mappings, or an empty list
// when there are none.
func (s *Service) ListMappingsForPatient(ctx context.Context, caller, patientID uuid.UUID, page pagination.Params) ([]*Mapping, error) {
	if _, err := s.patientFor(ctx, caller, patientID); err != nil {
		return nil, err
	}
	items, err := s.mappings.List(ctx, Filter{PatientID: &patientID, Page: page})
	if err != nil {
		return nil, fmt.Errorf("list patient mappings: %w", err)
	}
	return items, nil
}

// DeleteMapping removes a mapping. Deleting an id twice yields NotFound.
func (s *Service) DeleteMapping(ctx context.Context, caller, id uuid.UUID) error {
	if s.scope == ScopeOpen {
		return s.mappings.Delete(ctx, id)
	}
	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		m, err := s.mappings.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if m.PatientOwnerID != caller {
			return domain.NotFound("mapping")
		}
		return s.mappings.Delete(ctx, id)
	})
}
