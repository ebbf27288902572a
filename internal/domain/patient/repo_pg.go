package patient

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
	"github.com/hospital/records/pkg/pagination"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const cols = `id, user_id, name, age, disease, created_at`

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	if err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Age, &p.Disease, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func getErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.NotFound("patient")
	}
	return fmt.Errorf("get patient: %w", db.MapError(err))
}

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	err := db.Conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO patients (id, user_id, name, age, disease)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		p.ID, p.UserID, p.Name, p.Age, p.Disease).Scan(&p.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert patient: %w", db.MapError(err))
	}
	return nil
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	p, err := scanPatient(db.Conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+cols+` FROM patients WHERE id = $1`, id))
	if err != nil {
		return nil, getErr(err)
	}
	return p, nil
}

func (r *repoPG) GetForOwner(ctx context.Context, ownerID, id uuid.UUID) (*Patient, error) {
	p, err := scanPatient(db.Conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+cols+` FROM patients WHERE id = $1 AND user_id = $2`, id, ownerID))
	if err != nil {
		return nil, getErr(err)
	}
	return p, nil
}

func (r *repoPG) ListForOwner(ctx context.Context, ownerID uuid.UUID, page pagination.Params) ([]*Patient, error) {
	query, args, err := page.Apply(psql.Select(cols).
		From("patients").
		Where(sq.Eq{"user_id": ownerID}).
		OrderBy("created_at", "id")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build patient list: %w", err)
	}

	rows, err := db.Conn(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", db.MapError(err))
	}
	defer rows.Close()

	out := make([]*Patient, 0)
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan patient: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *repoPG) Update(ctx context.Context, p *Patient) error {
	tag, err := db.Conn(ctx, r.pool).Exec(ctx, `
		UPDATE patients SET name = $3, age = $4, disease = $5
		WHERE id = $1 AND user_id = $2`,
		p.ID, p.UserID, p.Name, p.Age, p.Disease)
	if err != nil {
		return fmt.Errorf("update patient: %w", db.MapError(err))
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("patient")
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	tag, err := db.Conn(ctx, r.pool).Exec(ctx,
		`DELETE FROM patients WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete patient: %w", db.MapError(err))
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("patient")
	}
	return nil
}
