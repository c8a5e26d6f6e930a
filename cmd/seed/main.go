// Package main seeds the first user so a fresh deployment has a working
// login. Safe to re-run: an existing username is reported, not an error.
//
// Usage:
//
//	seed -password 's3cret'                       # admin / admin@admin.com
//	seed -username ops -email ops@example.com -role staff -password '...'
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver for goose
	"github.com/pressly/goose/v3"

	"github.com/mkumaran/trip-tracker/backend/internal/auth"
	"github.com/mkumaran/trip-tracker/backend/internal/config"
	"github.com/mkumaran/trip-tracker/backend/internal/domain"
	"github.com/mkumaran/trip-tracker/backend/internal/repo"
	"github.com/mkumaran/trip-tracker/backend/internal/service"
	"github.com/mkumaran/trip-tracker/backend/migrations"
)

func main() {
	username := flag.String("username", "admin", "username for the seeded user")
	email := flag.String("email", "admin@admin.com", "email for the seeded user")
	role := flag.String("role", "admin", "role for the seeded user")
	password := flag.String("password", "", "password for the seeded user (required)")
	flag.Parse()

	if *password == "" {
		slog.Error("-password is required")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// Unlike the API server, seeding has no fallback: the database must be up.
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("database unreachable", "error", err)
		os.Exit(1)
	}

	if err := runMigrations(cfg.DatabaseURL); err != nil {
		slog.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	authSvc := service.NewAuthService(repo.NewUserRepo(pool), auth.NewManager(cfg.JWTSecret, cfg.TokenTTL))

	user, err := authSvc.Register(context.Background(), *username, *email, *password, *role)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			slog.Info("user already exists, nothing to do", "username", *username)
			return
		}
		slog.Error("seeding failed", "error", err)
		os.Exit(1)
	}

	slog.Info("user seeded", "id", user.ID, "username", user.Username, "role", user.Role)
}

// runMigrations applies any pending goose migrations, same as the API server
// does at boot, so seeding works against a brand-new database.
func runMigrations(databaseURL string) error {
	db, err := goose.OpenDBWithDriver("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(db, ".")
}
