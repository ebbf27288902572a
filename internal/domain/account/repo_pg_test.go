//go:build integration

package account

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/hospital/records/internal/domain"
	"github.com/hospital/records/internal/platform/db/dbtest"
)

func TestUserRepoPG(t *testing.T) {
	repo := NewUserRepoPG(dbtest.Setup(t))
	ctx := context.Background()
	email := uuid.NewString() + "@example.com"

	u := &User{Email: email, Name: "Repo User", PasswordHash: "hash"}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.ID == uuid.Nil || u.CreatedAt.IsZero() {
		t.Fatal("expected id and created_at to be assigned")
	}

	got, err := repo.GetByEmail(ctx, email)
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if got.ID != u.ID || got.PasswordHash != "hash" {
		t.Errorf("unexpected user %+v", got)
	}
	if _, err := repo.GetByID(ctx, u.ID); err != nil {
		t.Errorf("GetByID: %v", err)
	}

	err = repo.Create(ctx, &User{Email: email, Name: "Dup", PasswordHash: "x"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}

	if _, err := repo.GetByEmail(ctx, "missing-"+email); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
