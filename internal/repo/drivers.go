package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mkumaran/trip-tracker/backend/internal/domain"
)

// DriverRepo defines the persistence operations for Drivers.
// Deleting a driver only clears is_active so historic trips keep resolving.
type DriverRepo interface {
	// List returns all active drivers ordered by name.
	List(ctx context.Context) ([]domain.Driver, error)

	// GetByID retrieves a driver by id, active or not.
	// Returns domain.ErrNotFound if no driver with that id exists.
	GetByID(ctx context.Context, id string) (domain.Driver, error)

	// Create inserts a new driver with a generated id and returns the
	// persisted record. Returns domain.ErrDuplicate if the name is taken.
	Create(ctx context.Context, d domain.Driver) (domain.Driver, error)

	// Update overwrites the mutable fields of an existing driver.
	// Returns domain.ErrNotFound if it does not exist, domain.ErrDuplicate
	// on a name collision.
	Update(ctx context.Context, d domain.Driver) (domain.Driver, error)

	// Deactivate soft-deletes a driver by clearing is_active.
	// Returns domain.ErrNotFound if it does not exist.
	Deactivate(ctx context.Context, id string) error
}

type pgDriverRepo struct {
	db db
}

// NewDriverRepo constructs a DriverRepo backed by the provided db connection.
func NewDriverRepo(db db) DriverRepo {
	return &pgDriverRepo{db: db}
}

const driverColumns = `id, name, phone, license_number, is_active, created_at, updated_at`

func (r *pgDriverRepo) List(ctx context.Context) ([]domain.Driver, error) {
	q := `SELECT ` + driverColumns + ` FROM drivers WHERE is_active ORDER BY name`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.DriverRepo.List: %w", err)
	}
	defer rows.Close()

	var drivers []domain.Driver
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.DriverRepo.List: scan: %w", err)
		}
		drivers = append(drivers, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.DriverRepo.List: rows: %w", err)
	}
	return drivers, nil
}

func (r *pgDriverRepo) GetByID(ctx context.Context, id string) (domain.Driver, error) {
	q := `SELECT ` + driverColumns + ` FROM drivers WHERE id = @id`

	d, err := scanDriver(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Driver{}, fmt.Errorf("repo.DriverRepo.GetByID: %w", err)
	}
	return d, nil
}

func (r *pgDriverRepo) Create(ctx context.Context, d domain.Driver) (domain.Driver, error) {
	q := `
		INSERT INTO drivers (id, name, phone, license_number)
		VALUES (@id, @name, @phone, @license_number)
		RETURNING ` + driverColumns

	args := pgx.NamedArgs{
		"id":             domain.NewID("driver"),
		"name":           d.Name,
		"phone":          d.Phone,
		"license_number": d.LicenseNumber,
	}

	result, err := scanDriver(r.db.QueryRow(ctx, q, args))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Driver{}, fmt.Errorf("repo.DriverRepo.Create: %w", domain.ErrDuplicate)
		}
		return domain.Driver{}, fmt.Errorf("repo.DriverRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgDriverRepo) Update(ctx context.Context, d domain.Driver) (domain.Driver, error) {
	q := `
		UPDATE drivers
		SET name           = @name,
		    phone          = @phone,
		    license_number = @license_number,
		    is_active      = @is_active,
		    updated_at     = now()
		WHERE id = @id
		RETURNING ` + driverColumns

	args := pgx.NamedArgs{
		"id":             d.ID,
		"name":           d.Name,
		"phone":          d.Phone,
		"license_number": d.LicenseNumber,
		"is_active":      d.IsActive,
	}

	result, err := scanDriver(r.db.QueryRow(ctx, q, args))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Driver{}, fmt.Errorf("repo.DriverRepo.Update: %w", domain.ErrDuplicate)
		}
		return domain.Driver{}, fmt.Errorf("repo.DriverRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgDriverRepo) Deactivate(ctx context.Context, id string) error {
	q := `UPDATE drivers SET is_active = false, updated_at = now() WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.DriverRepo.Deactivate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.DriverRepo.Deactivate: %w", domain.ErrNotFound)
	}
	return nil
}

func scanDriver(s scanner) (domain.Driver, error) {
	var d domain.Driver
	err := s.Scan(&d.ID, &d.Name, &d.Phone, &d.LicenseNumber, &d.IsActive, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Driver{}, domain.ErrNotFound
		}
		return domain.Driver{}, err
	}
	return d, nil
}
