package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hospital/records/internal/domain"
)

// PostgreSQL SQLSTATE codes the repositories care about.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeInvalidText         = "22P02"
)

// MapError converts pgx errors into domain sentinels. The original error
// stays in the chain so constraint names are still visible in logs.
// Context cancellation passes through untouched.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return &constraintError{kind: domain.ErrAlreadyExists, detail: pgErr.ConstraintName, cause: err}
		case codeForeignKeyViolation:
			return &constraintError{kind: domain.ErrNotFound, detail: pgErr.ConstraintName, cause: err}
		case codeCheckViolation, codeInvalidText:
			return &constraintError{kind: domain.ErrValidation, detail: pgErr.Message, cause: err}
		}
	}
	return err
}

// constraintError pairs a domain sentinel with the driver error behind it.
// Both are reachable through errors.Is and errors.As.
type constraintError struct {
	kind   error
	detail string
	cause  error
}

func (e *constraintError) Error() string {
	return fmt.Sprintf("%s: %s", e.kind, e.detail)
}

func (e *constraintError) Unwrap() []error {
	return []error{e.kind, e.cause}
}

// IsUniqueViolation reports whether err is a unique constraint violation,
// optionally restricted to the named constraint.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != codeUniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

// IsForeignKeyViolation reports whether err is a foreign key violation,
// optionally restricted to the named constraint.
func IsForeignKeyViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != codeForeignKeyViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
