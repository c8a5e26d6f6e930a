// Package repo contains all persistence logic for the Trip Tracker API.
// Each resource has its own file with an interface and a Postgres
// implementation; trips additionally have a read-only flat-file store and a
// facade that arbitrates between the two. No business logic lives here —
// only SQL, file I/O, and type mapping.
package repo

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the per-entity
// scan helpers to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505), which repos surface as domain.ErrDuplicate.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// isCallerDataError reports whether err is Postgres rejecting the caller's
// payload rather than the storage failing: data exceptions (SQLSTATE class
// 22, e.g. "abc" where a number belongs) and integrity-constraint violations
// (class 23, e.g. null in a NOT NULL column). The trip facade surfaces these
// as domain.ErrValidation; only transport-level failures count as the
// database being down.
func isCallerDataError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		(strings.HasPrefix(pgErr.Code, "22") || strings.HasPrefix(pgErr.Code, "23"))
}
