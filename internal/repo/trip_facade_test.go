package repo_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/mkumaran/trip-tracker/backend/internal/domain"
	"github.com/mkumaran/trip-tracker/backend/internal/repo"
)

// mockRelStore is a test double for repo.RelationalTripStore.
// Set only the method fields your test needs.
type mockRelStore struct {
	getAll  func(ctx context.Context) ([]domain.Trip, error)
	getByID func(ctx context.Context, id string) (domain.Trip, error)
	create  func(ctx context.Context, trip domain.Trip, createdBy string) (domain.Trip, error)
	update  func(ctx context.Context, id string, fields map[string]any) (domain.Trip, error)
	delete  func(ctx context.Context, id string) error
}

func (m *mockRelStore) GetAll(ctx context.Context) ([]domain.Trip, error) { return m.getAll(ctx) }
func (m *mockRelStore) GetByID(ctx context.Context, id string) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockRelStore) Create(ctx context.Context, trip domain.Trip, createdBy string) (domain.Trip, error) {
	return m.create(ctx, trip, createdBy)
}
func (m *mockRelStore) Update(ctx context.Context, id string, fields map[string]any) (domain.Trip, error) {
	return m.update(ctx, id, fields)
}
func (m *mockRelStore) Delete(ctx context.Context, id string) error { return m.delete(ctx, id) }

// compile-time check: mockRelStore must satisfy repo.RelationalTripStore.
var _ repo.RelationalTripStore = (*mockRelStore)(nil)

// mockFallbackStore is a test double for repo.FallbackTripStore.
type mockFallbackStore struct {
	readAll  func(ctx context.Context) []domain.Trip
	findByID func(ctx context.Context, id string) (domain.Trip, error)
}

func (m *mockFallbackStore) ReadAll(ctx context.Context) []domain.Trip { return m.readAll(ctx) }
func (m *mockFallbackStore) FindByID(ctx context.Context, id string) (domain.Trip, error) {
	return m.findByID(ctx, id)
}

var _ repo.FallbackTripStore = (*mockFallbackStore)(nil)

var errConnRefused = errors.New("connection refused")

func fileTrips() []domain.Trip {
	return []domain.Trip{{ID: "trip_file0001", TripStartDate: "2023-11-02", VehicleNumber: "TN09ZZ9999", DriverName: "Mani"}}
}

// TestTripRepository_relationalHappyPath verifies the repository passes
// through to the relational store while healthy and stays non-degraded.
func TestTripRepository_relationalHappyPath(t *testing.T) {
	rel := &mockRelStore{
		getAll: func(context.Context) ([]domain.Trip, error) {
			return []domain.Trip{{ID: "trip_db000001"}}, nil
		},
	}
	r := repo.NewTripRepository(rel, &mockFallbackStore{}, nil)

	trips, err := r.GetAll(context.Background())

	require.NoError(t, err)
	require.Len(t, trips, 1)
	require.Equal(t, "trip_db000001", trips[0].ID)
	require.False(t, r.Degraded())
}

// TestTripRepository_getAllNilBecomesEmpty verifies a nil relational result
// is normalized to an empty slice so handlers encode [] instead of null.
func TestTripRepository_getAllNilBecomesEmpty(t *testing.T) {
	rel := &mockRelStore{getAll: func(context.Context) ([]domain.Trip, error) { return nil, nil }}
	r := repo.NewTripRepository(rel, &mockFallbackStore{}, nil)

	trips, err := r.GetAll(context.Background())

	require.NoError(t, err)
	require.NotNil(t, trips)
	require.Empty(t, trips)
}

// TestTripRepository_getAllFailureDowngrades verifies the first relational
// failure answers the same call from the fallback file and flips the sticky
// degraded state.
func TestTripRepository_getAllFailureDowngrades(t *testing.T) {
	relCalls := 0
	rel := &mockRelStore{
		getAll: func(context.Context) ([]domain.Trip, error) {
			relCalls++
			return nil, errConnRefused
		},
	}
	fb := &mockFallbackStore{readAll: func(context.Context) []domain.Trip { return fileTrips() }}
	r := repo.NewTripRepository(rel, fb, nil)

	trips, err := r.GetAll(context.Background())

	require.NoError(t, err)
	require.Equal(t, "trip_file0001", trips[0].ID)
	require.True(t, r.Degraded())

	// Once degraded, the relational store is never consulted again, even
	// if it would now succeed.
	_, err = r.GetAll(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, relCalls)
}

// TestTripRepository_notFoundDoesNotDowngrade verifies a missing row is
// business data, not an infrastructure failure.
func TestTripRepository_notFoundDoesNotDowngrade(t *testing.T) {
	rel := &mockRelStore{
		getByID: func(context.Context, string) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	}
	r := repo.NewTripRepository(rel, &mockFallbackStore{}, nil)

	_, err := r.GetByID(context.Background(), "trip_00000000")

	require.True(t, errors.Is(err, domain.ErrNotFound))
	require.False(t, r.Degraded())
}

// TestTripRepository_getByIDFailureDowngrades verifies an infrastructure
// failure on a single-row read falls back to the file for the same id.
func TestTripRepository_getByIDFailureDowngrades(t *testing.T) {
	rel := &mockRelStore{
		getByID: func(context.Context, string) (domain.Trip, error) {
			return domain.Trip{}, errConnRefused
		},
	}
	fb := &mockFallbackStore{
		findByID: func(_ context.Context, id string) (domain.Trip, error) {
			require.Equal(t, "trip_file0001", id)
			return fileTrips()[0], nil
		},
	}
	r := repo.NewTripRepository(rel, fb, nil)

	trip, err := r.GetByID(context.Background(), "trip_file0001")

	require.NoError(t, err)
	require.Equal(t, "Mani", trip.DriverName)
	require.True(t, r.Degraded())
}

// TestTripRepository_writesRejectedWhileDegraded verifies all mutations fail
// with domain.ErrStorageUnavailable once the repository has downgraded.
func TestTripRepository_writesRejectedWhileDegraded(t *testing.T) {
	rel := &mockRelStore{
		getAll: func(context.Context) ([]domain.Trip, error) { return nil, errConnRefused },
	}
	fb := &mockFallbackStore{readAll: func(context.Context) []domain.Trip { return nil }}
	r := repo.NewTripRepository(rel, fb, nil)

	_, _ = r.GetAll(context.Background())
	require.True(t, r.Degraded())

	_, err := r.Create(context.Background(), domain.Trip{}, "user_00000001")
	require.True(t, errors.Is(err, domain.ErrStorageUnavailable))

	_, err = r.Update(context.Background(), "trip_abc12345", map[string]any{"notes": "x"})
	require.True(t, errors.Is(err, domain.ErrStorageUnavailable))

	err = r.Delete(context.Background(), "trip_abc12345")
	require.True(t, errors.Is(err, domain.ErrStorageUnavailable))
}

// TestTripRepository_writeFailureDowngrades verifies an infrastructure
// failure during a write also flips the sticky state; the write itself
// surfaces as an error because it did not happen.
func TestTripRepository_writeFailureDowngrades(t *testing.T) {
	rel := &mockRelStore{
		create: func(context.Context, domain.Trip, string) (domain.Trip, error) {
			return domain.Trip{}, errConnRefused
		},
	}
	fb := &mockFallbackStore{readAll: func(context.Context) []domain.Trip { return fileTrips() }}
	r := repo.NewTripRepository(rel, fb, nil)

	_, err := r.Create(context.Background(), domain.Trip{}, "user_00000001")

	require.Error(t, err)
	require.False(t, errors.Is(err, domain.ErrStorageUnavailable))
	require.True(t, r.Degraded())

	// Reads now come from the file.
	trips, err := r.GetAll(context.Background())
	require.NoError(t, err)
	require.Equal(t, "trip_file0001", trips[0].ID)
}

// TestTripRepository_rejectedPayloadDoesNotDowngrade verifies a payload the
// database itself refuses (null in a required column, wrong type) surfaces as
// a validation error and leaves the repository fully relational: one bad
// request must not put the whole service into read-only mode.
func TestTripRepository_rejectedPayloadDoesNotDowngrade(t *testing.T) {
	notNull := &pgconn.PgError{Code: "23502", Message: "null value in column \"trip_start_date\""}
	badType := &pgconn.PgError{Code: "22P02", Message: "invalid input syntax for type double precision"}

	relCreates := 0
	rel := &mockRelStore{
		update: func(context.Context, string, map[string]any) (domain.Trip, error) {
			return domain.Trip{}, fmt.Errorf("repo.PGTripStore.Update: %w", notNull)
		},
		create: func(context.Context, domain.Trip, string) (domain.Trip, error) {
			relCreates++
			return domain.Trip{}, fmt.Errorf("repo.PGTripStore.Create: %w", badType)
		},
		delete: func(context.Context, string) error { return nil },
	}
	r := repo.NewTripRepository(rel, &mockFallbackStore{}, nil)

	_, err := r.Update(context.Background(), "trip_abc12345", map[string]any{"tripStartDate": nil})
	require.True(t, errors.Is(err, domain.ErrValidation))
	require.False(t, errors.Is(err, domain.ErrStorageUnavailable))
	require.False(t, r.Degraded())

	_, err = r.Create(context.Background(), domain.Trip{}, "user_00000001")
	require.True(t, errors.Is(err, domain.ErrValidation))
	require.False(t, r.Degraded())

	// Writes still reach the relational store afterwards.
	require.NoError(t, r.Delete(context.Background(), "trip_abc12345"))
	_, _ = r.Create(context.Background(), domain.Trip{}, "user_00000001")
	require.Equal(t, 2, relCreates)
}

// TestTripRepository_updateTranslatesFieldNames verifies the external-shaped
// payload reaches the relational store with internal column names.
func TestTripRepository_updateTranslatesFieldNames(t *testing.T) {
	var got map[string]any
	rel := &mockRelStore{
		update: func(_ context.Context, _ string, fields map[string]any) (domain.Trip, error) {
			got = fields
			return domain.Trip{ID: "trip_abc12345"}, nil
		},
	}
	r := repo.NewTripRepository(rel, &mockFallbackStore{}, nil)

	_, err := r.Update(context.Background(), "trip_abc12345", map[string]any{
		"tripStartDate": "2024-03-01",
		"ratePerTon":    900.0,
		"notes":         "rerouted",
	})

	require.NoError(t, err)
	require.Equal(t, map[string]any{
		"trip_start_date": "2024-03-01",
		"rate_per_ton":    900.0,
		"notes":           "rerouted",
	}, got)
}

// TestTripRepository_updateNotFoundPassesThrough verifies a missing row on
// update neither downgrades nor masks the not-found outcome.
func TestTripRepository_updateNotFoundPassesThrough(t *testing.T) {
	rel := &mockRelStore{
		update: func(context.Context, string, map[string]any) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	}
	r := repo.NewTripRepository(rel, &mockFallbackStore{}, nil)

	_, err := r.Update(context.Background(), "trip_00000000", map[string]any{"notes": "x"})

	require.True(t, errors.Is(err, domain.ErrNotFound))
	require.False(t, r.Degraded())
}

// TestTripRepository_deleteNotFoundPassesThrough is the delete counterpart.
func TestTripRepository_deleteNotFoundPassesThrough(t *testing.T) {
	rel := &mockRelStore{
		delete: func(context.Context, string) error { return domain.ErrNotFound },
	}
	r := repo.NewTripRepository(rel, &mockFallbackStore{}, nil)

	err := r.Delete(context.Background(), "trip_00000000")

	require.True(t, errors.Is(err, domain.ErrNotFound))
	require.False(t, r.Degraded())
}
