package db

import (
	"io/fs"
	"strings"
	"testing"
)

func TestMigrationsFS_ContainsOrderedGooseFiles(t *testing.T) {
	entries, err := fs.ReadDir(MigrationsFS(), ".")
	if err != nil {
		t.Fatalf("read embedded migrations: %v", err)
	}
	if len(entries) < 3 {
		t.Fatalf("expected at least 3 migrations, got %d", len(entries))
	}
	prev := ""
	for _, e := range entries {
		if !strings.HasSuffix(e.Name(), ".sql") {
			t.Errorf("unexpected non-sql file %s", e.Name())
		}
		if e.Name() <= prev {
			t.Errorf("migrations not ordered: %s after %s", e.Name(), prev)
		}
		prev = e.Name()

		body, err := fs.ReadFile(MigrationsFS(), e.Name())
		if err != nil {
			t.Fatalf("read %s: %v", e.Name(), err)
		}
		if !strings.Contains(string(body), "-- +goose Up") {
			t.Errorf("%s is missing the goose Up annotation", e.Name())
		}
	}
}

func TestMigrationsFS_MappingUniqueConstraint(t *testing.T) {
	body, err := fs.ReadFile(MigrationsFS(), "00003_doctor_patient_mappings.sql")
	if err != nil {
		t.Fatalf("read mapping migration: %v", err)
	}
	if !strings.Contains(string(body), "UNIQUE (doctor_id, patient_id)") {
		t.Error("mapping table must declare the (doctor_id, patient_id) unique constraint")
	}
	if strings.Count(string(body), "ON DELETE CASCADE") != 2 {
		t.Error("mapping rows must cascade from both doctor and patient")
	}
}
