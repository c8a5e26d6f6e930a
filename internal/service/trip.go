// Package service contains the business logic for the Trip Tracker API.
// Services validate inputs, enforce business rules, and orchestrate repo
// calls. No SQL or file I/O lives here — services depend on repo interfaces,
// not implementations.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/mkumaran/trip-tracker/backend/internal/domain"
)

// TripRepository is the persistence facade the trip service depends on.
// Implemented by repo.TripRepository; the interface lives here so the service
// can be unit-tested with a mock.
type TripRepository interface {
	GetAll(ctx context.Context) ([]domain.Trip, error)
	GetByID(ctx context.Context, id string) (domain.Trip, error)
	Create(ctx context.Context, trip domain.Trip, createdBy string) (domain.Trip, error)
	Update(ctx context.Context, id string, fields map[string]any) (domain.Trip, error)
	Delete(ctx context.Context, id string) error
}

// lockedFields are the external field names an update may not touch while a
// trip is locked. Dates, names, and notes stay editable; metrics and
// financials do not.
var lockedFields = map[string]bool{
	"startingKm":          true,
	"endingKm":            true,
	"distance":            true,
	"tonnage":             true,
	"ratePerTon":          true,
	"freight":             true,
	"expenses":            true,
	"totalExpenses":       true,
	"revenue":             true,
	"profit":              true,
	"amountGivenToDriver": true,
}

// TripService implements business rules for trip operations. The persistence
// core stores whatever it is given; required fields, status values, and the
// locked flag are enforced here.
type TripService struct {
	repo TripRepository
}

// NewTripService constructs a TripService backed by the provided repository.
func NewTripService(r TripRepository) *TripService {
	return &TripService{repo: r}
}

// GetAll returns all trips from the active store.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) GetAll(ctx context.Context) ([]domain.Trip, error) {
	trips, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.GetAll: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, nil
}

// GetByID returns a single trip by id.
func (s *TripService) GetByID(ctx context.Context, id string) (domain.Trip, error) {
	trip, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return trip, nil
}

// Create validates and persists a new trip. createdBy is the authenticated
// caller's id, recorded on the row.
func (s *TripService) Create(ctx context.Context, trip domain.Trip, createdBy string) (domain.Trip, error) {
	if strings.TrimSpace(trip.TripStartDate) == "" {
		return domain.Trip{}, fmt.Errorf("%w: tripStartDate is required", domain.ErrValidation)
	}
	if strings.TrimSpace(trip.VehicleNumber) == "" {
		return domain.Trip{}, fmt.Errorf("%w: vehicleNumber is required", domain.ErrValidation)
	}
	if strings.TrimSpace(trip.DriverName) == "" {
		return domain.Trip{}, fmt.Errorf("%w: driverName is required", domain.ErrValidation)
	}
	if err := validateStatus(trip.Status); err != nil {
		return domain.Trip{}, err
	}

	created, err := s.repo.Create(ctx, trip, createdBy)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return created, nil
}

// Update applies an external-shaped partial payload to an existing trip.
// Fields absent from the payload are left untouched. Updates that touch
// metric or financial fields of a locked trip are rejected; unlocking and
// editing must be two separate requests.
func (s *TripService) Update(ctx context.Context, id string, fields map[string]any) (domain.Trip, error) {
	if status, ok := fields["status"]; ok {
		str, isStr := status.(string)
		if !isStr {
			return domain.Trip{}, fmt.Errorf("%w: status must be a string", domain.ErrValidation)
		}
		if err := validateStatus(str); err != nil {
			return domain.Trip{}, err
		}
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	if existing.Locked {
		for name := range fields {
			if lockedFields[name] {
				return domain.Trip{}, fmt.Errorf("%w: trip is locked, %s cannot be edited", domain.ErrValidation, name)
			}
		}
	}

	updated, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes a trip by id.
func (s *TripService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// validateStatus accepts the empty string (the store defaults it to draft).
func validateStatus(status string) error {
	switch status {
	case "", domain.TripStatusDraft, domain.TripStatusClosed:
		return nil
	default:
		return fmt.Errorf("%w: status must be %q or %q", domain.ErrValidation,
			domain.TripStatusDraft, domain.TripStatusClosed)
	}
}
