package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mkumaran/trip-tracker/backend/internal/domain"
)

// VehicleRepo defines the persistence operations for Vehicles.
// The registration number is the unique human key.
type VehicleRepo interface {
	List(ctx context.Context) ([]domain.Vehicle, error)
	GetByID(ctx context.Context, id string) (domain.Vehicle, error)
	Create(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error)
	Update(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error)
	Deactivate(ctx context.Context, id string) error
}

type pgVehicleRepo struct {
	db db
}

// NewVehicleRepo constructs a VehicleRepo backed by the provided db connection.
func NewVehicleRepo(db db) VehicleRepo {
	return &pgVehicleRepo{db: db}
}

const vehicleColumns = `id, vehicle_number, vehicle_type, driver_name, is_active, created_at, updated_at`

func (r *pgVehicleRepo) List(ctx context.Context) ([]domain.Vehicle, error) {
	q := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE is_active ORDER BY vehicle_number`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.VehicleRepo.List: %w", err)
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.VehicleRepo.List: scan: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.VehicleRepo.List: rows: %w", err)
	}
	return vehicles, nil
}

func (r *pgVehicleRepo) GetByID(ctx context.Context, id string) (domain.Vehicle, error) {
	q := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = @id`

	v, err := scanVehicle(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("repo.VehicleRepo.GetByID: %w", err)
	}
	return v, nil
}

func (r *pgVehicleRepo) Create(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error) {
	if v.VehicleType == "" {
		v.VehicleType = "Truck"
	}

	q := `
		INSERT INTO vehicles (id, vehicle_number, vehicle_type, driver_name)
		VALUES (@id, @vehicle_number, @vehicle_type, @driver_name)
		RETURNING ` + vehicleColumns

	args := pgx.NamedArgs{
		"id":             domain.NewID("vehicle"),
		"vehicle_number": v.VehicleNumber,
		"vehicle_type":   v.VehicleType,
		"driver_name":    v.DriverName,
	}

	result, err := scanVehicle(r.db.QueryRow(ctx, q, args))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Vehicle{}, fmt.Errorf("repo.VehicleRepo.Create: %w", domain.ErrDuplicate)
		}
		return domain.Vehicle{}, fmt.Errorf("repo.VehicleRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgVehicleRepo) Update(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error) {
	q := `
		UPDATE vehicles
		SET vehicle_number = @vehicle_number,
		    vehicle_type   = @vehicle_type,
		    driver_name    = @driver_name,
		    is_active      = @is_active,
		    updated_at     = now()
		WHERE id = @id
		RETURNING ` + vehicleColumns

	args := pgx.NamedArgs{
		"id":             v.ID,
		"vehicle_number": v.VehicleNumber,
		"vehicle_type":   v.VehicleType,
		"driver_name":    v.DriverName,
		"is_active":      v.IsActive,
	}

	result, err := scanVehicle(r.db.QueryRow(ctx, q, args))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Vehicle{}, fmt.Errorf("repo.VehicleRepo.Update: %w", domain.ErrDuplicate)
		}
		return domain.Vehicle{}, fmt.Errorf("repo.VehicleRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgVehicleRepo) Deactivate(ctx context.Context, id string) error {
	q := `UPDATE vehicles SET is_active = false, updated_at = now() WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.VehicleRepo.Deactivate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.VehicleRepo.Deactivate: %w", domain.ErrNotFound)
	}
	return nil
}

func scanVehicle(s scanner) (domain.Vehicle, error) {
	var v domain.Vehicle
	err := s.Scan(&v.ID, &v.VehicleNumber, &v.VehicleType, &v.DriverName, &v.IsActive, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Vehicle{}, domain.ErrNotFound
		}
		return domain.Vehicle{}, err
	}
	return v, nil
}
