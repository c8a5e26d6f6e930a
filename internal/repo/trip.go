package repo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/mkumaran/trip-tracker/backend/internal/domain"
	"github.com/mkumaran/trip-tracker/backend/internal/translate"
)

// RelationalTripStore is the primary persistence medium for trips.
// Implemented by PGTripStore; tests substitute a mock to drive failures.
type RelationalTripStore interface {
	GetAll(ctx context.Context) ([]domain.Trip, error)
	GetByID(ctx context.Context, id string) (domain.Trip, error)
	Create(ctx context.Context, trip domain.Trip, createdBy string) (domain.Trip, error)
	// Update takes a partial field map keyed by internal column names.
	Update(ctx context.Context, id string, fields map[string]any) (domain.Trip, error)
	Delete(ctx context.Context, id string) error
}

// FallbackTripStore is the read-only degraded path, served from a flat file.
// ReadAll has no error return by contract: the file store absorbs its own
// failure modes.
type FallbackTripStore interface {
	ReadAll(ctx context.Context) []domain.Trip
	FindByID(ctx context.Context, id string) (domain.Trip, error)
}

// TripRepository is the component callers depend on for trip persistence.
// It starts against the relational store and, on the first infrastructure
// failure, permanently downgrades to the fallback file for the rest of its
// lifetime — even if the database recovers. Flapping between sources
// mid-session is worse than staying degraded until restart; self-healing is
// a known, deliberate non-feature.
//
// A "not found" outcome is business data, not an infrastructure failure, and
// never triggers the downgrade.
//
// The repository owns the active-store decision exclusively; no other
// component may cache it. The flag is an atomic so a single instance shared
// across concurrent requests degrades safely (the transition is idempotent).
type TripRepository struct {
	rel      RelationalTripStore
	fallback FallbackTripStore
	log      *slog.Logger
	degraded atomic.Bool
}

// NewTripRepository constructs a TripRepository in the relational-active state.
func NewTripRepository(rel RelationalTripStore, fallback FallbackTripStore, log *slog.Logger) *TripRepository {
	if log == nil {
		log = slog.Default()
	}
	return &TripRepository{rel: rel, fallback: fallback, log: log}
}

// Degraded reports whether the repository has downgraded to the fallback
// file. Exposed for the health endpoint; callers must not branch on it for
// data access.
func (r *TripRepository) Degraded() bool {
	return r.degraded.Load()
}

// GetAll returns every trip in the external shape. Storage availability is
// never the caller's problem on reads: a relational failure downgrades the
// repository and the call is answered from the fallback file instead.
func (r *TripRepository) GetAll(ctx context.Context) ([]domain.Trip, error) {
	if !r.degraded.Load() {
		trips, err := r.rel.GetAll(ctx)
		if err == nil {
			if trips == nil {
				trips = []domain.Trip{}
			}
			return trips, nil
		}
		r.downgrade(ctx, "GetAll", err)
	}
	return r.fallback.ReadAll(ctx), nil
}

// GetByID returns a single trip by id from the active store.
// Returns domain.ErrNotFound when the id does not exist in the active store;
// absence is a valid outcome and does not trigger the fallback downgrade.
func (r *TripRepository) GetByID(ctx context.Context, id string) (domain.Trip, error) {
	if !r.degraded.Load() {
		trip, err := r.rel.GetByID(ctx, id)
		if err == nil {
			return trip, nil
		}
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Trip{}, fmt.Errorf("repo.TripRepository.GetByID: %w", domain.ErrNotFound)
		}
		r.downgrade(ctx, "GetByID", err)
	}
	trip, err := r.fallback.FindByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepository.GetByID: %w", err)
	}
	return trip, nil
}

// Create persists a new trip. Creation is only meaningful against the
// relational store; in degraded mode it fails with domain.ErrStorageUnavailable
// so callers can distinguish "read-only mode" from validation errors and
// missing rows. An infrastructure failure during the write downgrades the
// repository and is surfaced as a generic failure — the write did not happen.
// A payload the database itself rejects (wrong type, null in a required
// column) is the caller's error, not the storage's: it surfaces as
// domain.ErrValidation and never triggers the downgrade.
func (r *TripRepository) Create(ctx context.Context, trip domain.Trip, createdBy string) (domain.Trip, error) {
	if r.degraded.Load() {
		return domain.Trip{}, fmt.Errorf("repo.TripRepository.Create: %w", domain.ErrStorageUnavailable)
	}
	created, err := r.rel.Create(ctx, trip, createdBy)
	if err != nil {
		if isCallerDataError(err) {
			return domain.Trip{}, fmt.Errorf("repo.TripRepository.Create: %w: %v", domain.ErrValidation, err)
		}
		r.downgrade(ctx, "Create", err)
		return domain.Trip{}, fmt.Errorf("repo.TripRepository.Create: %w", err)
	}
	return created, nil
}

// Update applies an external-shaped partial payload to an existing trip.
// Field names are translated to the internal shape before hitting storage;
// unknown keys pass through translation and are dropped by the store's
// column whitelist. Same degraded-mode contract as Create.
// Returns domain.ErrNotFound if the id does not exist.
func (r *TripRepository) Update(ctx context.Context, id string, fields map[string]any) (domain.Trip, error) {
	if r.degraded.Load() {
		return domain.Trip{}, fmt.Errorf("repo.TripRepository.Update: %w", domain.ErrStorageUnavailable)
	}
	updated, err := r.rel.Update(ctx, id, translate.ToInternal(fields))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Trip{}, fmt.Errorf("repo.TripRepository.Update: %w", domain.ErrNotFound)
		}
		if isCallerDataError(err) {
			return domain.Trip{}, fmt.Errorf("repo.TripRepository.Update: %w: %v", domain.ErrValidation, err)
		}
		r.downgrade(ctx, "Update", err)
		return domain.Trip{}, fmt.Errorf("repo.TripRepository.Update: %w", err)
	}
	return updated, nil
}

// Delete hard-deletes a trip. Same degraded-mode contract as Create.
// Returns domain.ErrNotFound if the id does not exist (including on a second
// delete of the same id).
func (r *TripRepository) Delete(ctx context.Context, id string) error {
	if r.degraded.Load() {
		return fmt.Errorf("repo.TripRepository.Delete: %w", domain.ErrStorageUnavailable)
	}
	if err := r.rel.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("repo.TripRepository.Delete: %w", domain.ErrNotFound)
		}
		if isCallerDataError(err) {
			return fmt.Errorf("repo.TripRepository.Delete: %w: %v", domain.ErrValidation, err)
		}
		r.downgrade(ctx, "Delete", err)
		return fmt.Errorf("repo.TripRepository.Delete: %w", err)
	}
	return nil
}

// downgrade flips the repository into the fallback state. The transition is
// one-directional and sticky for the repository's lifetime; only the first
// caller logs, concurrent failures just land on the same terminal state.
func (r *TripRepository) downgrade(ctx context.Context, op string, err error) {
	if r.degraded.CompareAndSwap(false, true) {
		r.log.WarnContext(ctx, "relational trip store failed, falling back to file store",
			"op", op, "error", err)
	}
}
