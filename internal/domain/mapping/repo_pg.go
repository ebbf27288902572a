package mapping

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hospital/records/internal/domain"
	"github.com/hospital/records/internal/platform/db"
)

const (
	doctorFKConstraint  = "doctor_patient_mappings_doctor_id_fkey"
	patientFKConstraint = "doctor_patient_mappings_patient_id_fkey"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func selectMappings() sq.SelectBuilder {
	return psql.Select(
		"m.id", "m.doctor_id", "d.name", "m.patient_id", "p.name", "p.user_id", "m.mapping_done_on",
	).
		From("doctor_patient_mappings m").
		Join("doctors d ON d.id = m.doctor_id").
		Join("patients p ON p.id = m.patient_id")
}

func scanMapping(row pgx.Row) (*Mapping, error) {
	var m Mapping
	err := row.Scan(&m.ID, &m.DoctorID, &m.DoctorName, &m.PatientID, &m.PatientName,
		&m.PatientOwnerID, &m.MappingDoneOn)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repoPG) Exists(ctx context.Context, doctorID, patientID uuid.UUID) (bool, error) {
	var exists bool
	err := db.Conn(ctx, r.pool).QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM doctor_patient_mappings WHERE doctor_id = $1 AND patient_id = $2
		)`, doctorID, patientID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check mapping: %w", db.MapError(err))
	}
	return exists, nil
}

func (r *repoPG) Create(ctx context.Context, m *Mapping) error {
	m.ID = uuid.New()
	err := db.Conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO doctor_patient_mappings (id, doctor_id, patient_id)
		VALUES ($1, $2, $3)
		RETURNING mapping_done_on`,
		m.ID, m.DoctorID, m.PatientID).Scan(&m.MappingDoneOn)
	switch {
	case err == nil:
		return nil
	case db.IsForeignKeyViolation(err, doctorFKConstraint):
		return domain.NotFound("doctor")
	case db.IsForeignKeyViolation(err, patientFKConstraint):
		return domain.NotFound("patient")
	}
	return fmt.Errorf("insert mapping: %w", db.MapError(err))
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Mapping, error) {
	query, args, err := selectMappings().Where(sq.Eq{"m.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build mapping query: %w", err)
	}
	m, err := scanMapping(db.Conn(ctx, r.pool).QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NotFound("mapping")
	}
	if err != nil {
		return nil, fmt.Errorf("get mapping: %w", db.MapError(err))
	}
	return m, nil
}

func (r *repoPG) List(ctx context.Context, f Filter) ([]*Mapping, error) {
	b := selectMappings()
	if f.PatientID != nil {
		b = b.Where(sq.Eq{"m.patient_id": *f.PatientID})
	}
	if f.OwnerID != nil {
		b = b.Where(sq.Eq{"p.user_id": *f.OwnerID})
	}
	query, args, err := f.Page.Apply(b.OrderBy("m.mapping_done_on", "m.id")).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build mapping list: %w", err)
	}

	rows, err := db.Conn(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list mappings: %w", db.MapError(err))
	}
	defer rows.Close()

	out := make([]*Mapping, 0)
	for rows.Next() {
		m, err := scanMapping(rows)
		if err != nil {
			return nil, fmt.Errorf("scan mapping: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list mappings: %w", db.MapError(err))
	}
	return out, nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := db.Conn(ctx, r.pool).Exec(ctx, `DELETE FROM doctor_patient_mappings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete mapping: %w", db.MapError(err))
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("mapping")
	}
	return nil
}
