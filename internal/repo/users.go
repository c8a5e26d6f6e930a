package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mkumaran/trip-tracker/backend/internal/domain"
)

// UserRepo defines the persistence operations the auth service needs.
type UserRepo interface {
	// GetByUsername retrieves an active user by exact username.
	// Returns domain.ErrNotFound if no such user exists.
	GetByUsername(ctx context.Context, username string) (domain.User, error)

	// Create inserts a new user with a generated id.
	// Returns domain.ErrDuplicate if the username or email is taken.
	Create(ctx context.Context, u domain.User) (domain.User, error)

	// TouchLastLogin records a successful login timestamp.
	TouchLastLogin(ctx context.Context, id string) error
}

type pgUserRepo struct {
	db db
}

// NewUserRepo constructs a UserRepo backed by the provided db connection.
func NewUserRepo(db db) UserRepo {
	return &pgUserRepo{db: db}
}

const userColumns = `id, username, email, password_hash, role, is_active, last_login, created_at, updated_at`

func (r *pgUserRepo) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE username = @username AND is_active`

	u, err := scanUser(r.db.QueryRow(ctx, q, pgx.NamedArgs{"username": username}))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByUsername: %w", err)
	}
	return u, nil
}

func (r *pgUserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	if u.Role == "" {
		u.Role = "staff"
	}

	q := `
		INSERT INTO users (id, username, email, password_hash, role)
		VALUES (@id, @username, @email, @password_hash, @role)
		RETURNING ` + userColumns

	args := pgx.NamedArgs{
		"id":            domain.NewID("user"),
		"username":      u.Username,
		"email":         u.Email,
		"password_hash": u.PasswordHash,
		"role":          u.Role,
	}

	result, err := scanUser(r.db.QueryRow(ctx, q, args))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, fmt.Errorf("repo.UserRepo.Create: %w", domain.ErrDuplicate)
		}
		return domain.User{}, fmt.Errorf("repo.UserRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgUserRepo) TouchLastLogin(ctx context.Context, id string) error {
	q := `UPDATE users SET last_login = now(), updated_at = now() WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.UserRepo.TouchLastLogin: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.UserRepo.TouchLastLogin: %w", domain.ErrNotFound)
	}
	return nil
}

func scanUser(s scanner) (domain.User, error) {
	var u domain.User
	err := s.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role,
		&u.IsActive, &u.LastLogin, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, err
	}
	return u, nil
}
