package doctor

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

const cols = `id, user_id, name, specialized_in, yrs_of_experience, created_at`

func scanDoctor(row pgx.Row) (*Doctor, error) {
	var d Doctor
	if err := row.Scan(&d.ID, &d.UserID, &d.Name, &d.SpecializedIn, &d.YrsOfExperience, &d.CreatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *repoPG) Create(ctx context.Context, d *Doctor) error {
	d.ID = uuid.New()
	err := db.Conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO doctors (id, user_id, name, specialized_in, yrs_of_experience)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		d.ID, d.UserID, d.Name, d.SpecializedIn, d.YrsOfExperience).Scan(&d.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert doctor: %w", db.MapError(err))
	}
	return nil
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	d, err := scanDoctor(db.Conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+cols+` FROM doctors WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NotFound("doctor")
	}
	if err != nil {
		return nil, fmt.Errorf("get doctor: %w", db.MapError(err))
	}
	return d, nil
}

func (r *repoPG) List(ctx context.Context, page pagination.Params) ([]*Doctor, error) {
	query, args, err := page.Apply(psql.Select(cols).
		From("doctors").
		OrderBy("created_at", "id")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build doctor list: %w", err)
	}

	rows, err := db.Conn(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", db.MapError(err))
	}
	defer rows.Close()

	out := make([]*Doctor, 0)
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan doctor: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *repoPG) Update(ctx context.Context, id uuid.UUID, patch Patch) (*Doctor, error) {
	query, args, err := psql.Update("doctors").
		SetMap(patch.Columns()).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + cols).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build doctor update: %w", err)
	}

	d, err := scanDoctor(db.Conn(ctx, r.pool).QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NotFound("doctor")
	}
	if err != nil {
		return nil, fmt.Errorf("update doctor: %w", db.MapError(err))
	}
	return d, nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := db.Conn(ctx, r.pool).Exec(ctx, `DELETE FROM doctors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete doctor: %w", db.MapError(err))
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("doctor")
	}
	return nil
}
