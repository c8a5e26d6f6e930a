package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/mkumaran/trip-tracker/backend/internal/domain"
)

// tripColumns is the SELECT / RETURNING column list, in scanTrip order.
const tripColumns = `id, trip_start_date, estimated_end_date, vehicle_number, driver_name,
		partner, purchase_place, item_name, starting_km, ending_km, distance,
		tonnage, rate_per_ton, freight, expenses, total_expenses, revenue, profit,
		status, locked, amount_given_to_driver, notes, created_at, updated_at, created_by`

// updatableTripColumns whitelists the columns a partial update may touch.
// Keys not present here (unknown forward-compat fields, id, audit columns)
// are skipped rather than interpolated into SQL.
var updatableTripColumns = map[string]bool{
	"trip_start_date":        true,
	"estimated_end_date":     true,
	"vehicle_number":         true,
	"driver_name":            true,
	"partner":                true,
	"purchase_place":         true,
	"item_name":              true,
	"starting_km":            true,
	"ending_km":              true,
	"distance":               true,
	"tonnage":                true,
	"rate_per_ton":           true,
	"freight":                true,
	"expenses":               true,
	"total_expenses":         true,
	"revenue":                true,
	"profit":                 true,
	"status":                 true,
	"locked":                 true,
	"amount_given_to_driver": true,
	"notes":                  true,
}

// PGTripStore is the Postgres implementation of the relational trip store.
// Each call is a single statement, so writes are atomic per call: either the
// row commits with all fields consistent or nothing is applied.
type PGTripStore struct {
	db db
}

// NewPGTripStore constructs a PGTripStore backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewPGTripStore(db db) *PGTripStore {
	return &PGTripStore{db: db}
}

// GetAll returns all trip rows, newest first.
func (s *PGTripStore) GetAll(ctx context.Context) ([]domain.Trip, error) {
	q := `SELECT ` + tripColumns + ` FROM trips ORDER BY created_at DESC`

	rows, err := s.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.PGTripStore.GetAll: %w", err)
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.PGTripStore.GetAll: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.PGTripStore.GetAll: rows: %w", err)
	}

	return trips, nil
}

// GetByID retrieves a trip by primary key.
// Returns domain.ErrNotFound if no trip with that id exists.
func (s *PGTripStore) GetByID(ctx context.Context, id string) (domain.Trip, error) {
	q := `SELECT ` + tripColumns + ` FROM trips WHERE id = @id`

	row := s.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	t, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.PGTripStore.GetByID: %w", err)
	}
	return t, nil
}

// Create inserts a new trip with a freshly generated id and schema defaults
// applied, and returns the persisted record including DB-set timestamps.
func (s *PGTripStore) Create(ctx context.Context, trip domain.Trip, createdBy string) (domain.Trip, error) {
	trip.ID = domain.NewID("trip")
	trip.ApplyDefaults()
	if createdBy != "" {
		trip.CreatedBy = &createdBy
	}

	q := `
		INSERT INTO trips (id, trip_start_date, estimated_end_date, vehicle_number,
			driver_name, partner, purchase_place, item_name, starting_km, ending_km,
			distance, tonnage, rate_per_ton, freight, expenses, total_expenses,
			revenue, profit, status, locked, amount_given_to_driver, notes, created_by)
		VALUES (@id, @trip_start_date, @estimated_end_date, @vehicle_number,
			@driver_name, @partner, @purchase_place, @item_name, @starting_km, @ending_km,
			@distance, @tonnage, @rate_per_ton, @freight, @expenses, @total_expenses,
			@revenue, @profit, @status, @locked, @amount_given_to_driver, @notes, @created_by)
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"id":                     trip.ID,
		"trip_start_date":        trip.TripStartDate,
		"estimated_end_date":     trip.EstimatedEndDate,
		"vehicle_number":         trip.VehicleNumber,
		"driver_name":            trip.DriverName,
		"partner":                trip.Partner,
		"purchase_place":         trip.PurchasePlace,
		"item_name":              trip.ItemName,
		"starting_km":            trip.StartingKm,
		"ending_km":              trip.EndingKm,
		"distance":               trip.Distance,
		"tonnage":                trip.Tonnage,
		"rate_per_ton":           trip.RatePerTon,
		"freight":                trip.Freight,
		"expenses":               trip.Expenses,
		"total_expenses":         trip.TotalExpenses,
		"revenue":                trip.Revenue,
		"profit":                 trip.Profit,
		"status":                 trip.Status,
		"locked":                 trip.Locked,
		"amount_given_to_driver": trip.AmountGivenToDriver,
		"notes":                  trip.Notes,
		"created_by":             trip.CreatedBy,
	}

	row := s.db.QueryRow(ctx, q, args)
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.PGTripStore.Create: %w", err)
	}
	return result, nil
}

// Update applies a partial update. fields is keyed by internal column names;
// absent columns are untouched, explicit nils clear nullable columns, and
// keys outside the updatable whitelist are skipped. The update timestamp is
// refreshed even when fields is empty.
// Returns domain.ErrNotFound if no trip with that id exists.
func (s *PGTripStore) Update(ctx context.Context, id string, fields map[string]any) (domain.Trip, error) {
	set := []string{"updated_at = now()"}
	args := pgx.NamedArgs{"id": id}
	for col, val := range fields {
		if !updatableTripColumns[col] {
			continue
		}
		set = append(set, fmt.Sprintf("%s = @%s", col, col))
		args[col] = val
	}

	q := `UPDATE trips SET ` + strings.Join(set, ", ") + `
		WHERE id = @id
		RETURNING ` + tripColumns

	row := s.db.QueryRow(ctx, q, args)
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.PGTripStore.Update: %w", err)
	}
	return result, nil
}

// Delete hard-deletes a trip by primary key.
// Returns domain.ErrNotFound if no trip with that id exists.
func (s *PGTripStore) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM trips WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.PGTripStore.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.PGTripStore.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanTrip maps a single database row into a domain.Trip.
// Column order must match tripColumns. The expenses jsonb column decodes
// straight into the map via pgx's JSON codec.
func scanTrip(s scanner) (domain.Trip, error) {
	var t domain.Trip
	err := s.Scan(
		&t.ID, &t.TripStartDate, &t.EstimatedEndDate, &t.VehicleNumber, &t.DriverName,
		&t.Partner, &t.PurchasePlace, &t.ItemName, &t.StartingKm, &t.EndingKm, &t.Distance,
		&t.Tonnage, &t.RatePerTon, &t.Freight, &t.Expenses, &t.TotalExpenses, &t.Revenue, &t.Profit,
		&t.Status, &t.Locked, &t.AmountGivenToDriver, &t.Notes, &t.CreatedAt, &t.UpdatedAt, &t.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}
	t.ApplyDefaults()
	return t, nil
}
