//go:build integration

package patient

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/hospital/records/internal/domain"
	"github.com/hospital/records/internal/platform/db/dbtest"
	"github.com/hospital/records/pkg/pagination"
)

func TestRepoPG(t *testing.T) {
	pool := dbtest.Setup(t)
	ctx := context.Background()

	owner, other := uuid.New(), uuid.New()
	for _, id := range []uuid.UUID{owner, other} {
		if _, err := pool.Exec(ctx,
			`INSERT INTO users (id, email, name, password_hash) VALUES ($1, $2, 'u', 'h')`,
			id, id.String()+"@example.com"); err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}

	repo := NewRepoPG(pool)
	flu := "flu"
	p := &Patient{UserID: owner, Name: "First", Age: 30, Disease: &flu}
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	second := &Patient{UserID: owner, Name: "Second", Age: 5}
	if err := repo.Create(ctx, second); err != nil {
		t.Fatalf("Create second: %v", err)
	}

	got, err := repo.GetForOwner(ctx, owner, p.ID)
	if err != nil {
		t.Fatalf("GetForOwner: %v", err)
	}
	if got.Disease == nil || *got.Disease != "flu" {
		t.Errorf("unexpected disease %v", got.Disease)
	}
	if _, err := repo.GetForOwner(ctx, other, p.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("foreign owner: expected ErrNotFound, got %v", err)
	}

	all, err := repo.ListForOwner(ctx, owner, pagination.Params{})
	if err != nil || len(all) != 2 {
		t.Fatalf("ListForOwner: %v, %d rows", err, len(all))
	}
	page, err := repo.ListForOwner(ctx, owner, pagination.Params{Limit: 1, Offset: 1})
	if err != nil || len(page) != 1 || page[0].ID != second.ID {
		t.Fatalf("paged list: %v, %+v", err, page)
	}

	p.Name, p.Age, p.Disease = "Renamed", 31, nil
	if err := repo.Update(ctx, p); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ = repo.GetByID(ctx, p.ID)
	if got.Name != "Renamed" || got.Disease != nil {
		t.Errorf("update not stored: %+v", got)
	}

	bad := &Patient{UserID: owner, Name: "Negative", Age: -1}
	if err := repo.Create(ctx, bad); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("check constraint: expected ErrValidation, got %v", err)
	}

	if err := repo.Delete(ctx, other, p.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("foreign delete: expected ErrNotFound, got %v", err)
	}
	if err := repo.Delete(ctx, owner, p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, p.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("after delete: expected ErrNotFound, got %v", err)
	}
}
