package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mkumaran/trip-tracker/backend/internal/domain"
	"github.com/mkumaran/trip-tracker/backend/internal/service"
)

// mockTripRepository is a test double for service.TripRepository.
// Set only the method fields your test needs.
type mockTripRepository struct {
	getAll  func(ctx context.Context) ([]domain.Trip, error)
	getByID func(ctx context.Context, id string) (domain.Trip, error)
	create  func(ctx context.Context, trip domain.Trip, createdBy string) (domain.Trip, error)
	update  func(ctx context.Context, id string, fields map[string]any) (domain.Trip, error)
	delete  func(ctx context.Context, id string) error
}

func (m *mockTripRepository) GetAll(ctx context.Context) ([]domain.Trip, error) {
	return m.getAll(ctx)
}
func (m *mockTripRepository) GetByID(ctx context.Context, id string) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepository) Create(ctx context.Context, trip domain.Trip, createdBy string) (domain.Trip, error) {
	return m.create(ctx, trip, createdBy)
}
func (m *mockTripRepository) Update(ctx context.Context, id string, fields map[string]any) (domain.Trip, error) {
	return m.update(ctx, id, fields)
}
func (m *mockTripRepository) Delete(ctx context.Context, id string) error { return m.delete(ctx, id) }

// compile-time check: mockTripRepository must satisfy service.TripRepository.
var _ service.TripRepository = (*mockTripRepository)(nil)

func validTrip() domain.Trip {
	return domain.Trip{
		TripStartDate: "2024-01-15",
		VehicleNumber: "TN01AB1234",
		DriverName:    "Kumar",
	}
}

func TestTripService_GetAll_neverNil(t *testing.T) {
	repo := &mockTripRepository{getAll: func(context.Context) ([]domain.Trip, error) { return nil, nil }}
	svc := service.NewTripService(repo)

	trips, err := svc.GetAll(context.Background())

	require.NoError(t, err)
	require.NotNil(t, trips)
	require.Empty(t, trips)
}

func TestTripService_Create_requiredFields(t *testing.T) {
	svc := service.NewTripService(&mockTripRepository{})

	cases := []struct {
		name   string
		mutate func(*domain.Trip)
		field  string
	}{
		{"missing start date", func(tr *domain.Trip) { tr.TripStartDate = "" }, "tripStartDate"},
		{"blank start date", func(tr *domain.Trip) { tr.TripStartDate = "   " }, "tripStartDate"},
		{"missing vehicle", func(tr *domain.Trip) { tr.VehicleNumber = "" }, "vehicleNumber"},
		{"missing driver", func(tr *domain.Trip) { tr.DriverName = "" }, "driverName"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			trip := validTrip()
			tc.mutate(&trip)

			_, err := svc.Create(context.Background(), trip, "user_00000001")

			require.True(t, errors.Is(err, domain.ErrValidation))
			require.ErrorContains(t, err, tc.field)
		})
	}
}

func TestTripService_Create_badStatus(t *testing.T) {
	svc := service.NewTripService(&mockTripRepository{})

	trip := validTrip()
	trip.Status = "in-flight"

	_, err := svc.Create(context.Background(), trip, "")

	require.True(t, errors.Is(err, domain.ErrValidation))
	require.ErrorContains(t, err, "status")
}

func TestTripService_Create_passesCreatedBy(t *testing.T) {
	var gotCreatedBy string
	repo := &mockTripRepository{
		create: func(_ context.Context, trip domain.Trip, createdBy string) (domain.Trip, error) {
			gotCreatedBy = createdBy
			trip.ID = "trip_abc12345"
			return trip, nil
		},
	}
	svc := service.NewTripService(repo)

	created, err := svc.Create(context.Background(), validTrip(), "user_11112222")

	require.NoError(t, err)
	require.Equal(t, "trip_abc12345", created.ID)
	require.Equal(t, "user_11112222", gotCreatedBy)
}

func TestTripService_Update_lockedTripRejectsFinancials(t *testing.T) {
	repo := &mockTripRepository{
		getByID: func(context.Context, string) (domain.Trip, error) {
			return domain.Trip{ID: "trip_abc12345", Locked: true}, nil
		},
	}
	svc := service.NewTripService(repo)

	for _, field := range []string{"startingKm", "tonnage", "revenue", "expenses", "amountGivenToDriver"} {
		_, err := svc.Update(context.Background(), "trip_abc12345", map[string]any{field: 1.0})
		require.True(t, errors.Is(err, domain.ErrValidation), "field %s should be rejected", field)
		require.ErrorContains(t, err, "locked")
	}
}

func TestTripService_Update_lockedTripAllowsMetadata(t *testing.T) {
	repo := &mockTripRepository{
		getByID: func(context.Context, string) (domain.Trip, error) {
			return domain.Trip{ID: "trip_abc12345", Locked: true}, nil
		},
		update: func(_ context.Context, _ string, fields map[string]any) (domain.Trip, error) {
			return domain.Trip{ID: "trip_abc12345"}, nil
		},
	}
	svc := service.NewTripService(repo)

	// Notes, dates, and the locked flag itself stay editable.
	_, err := svc.Update(context.Background(), "trip_abc12345", map[string]any{
		"notes":  "settled",
		"locked": false,
	})

	require.NoError(t, err)
}

func TestTripService_Update_statusMustBeString(t *testing.T) {
	svc := service.NewTripService(&mockTripRepository{})

	_, err := svc.Update(context.Background(), "trip_abc12345", map[string]any{"status": 7})

	require.True(t, errors.Is(err, domain.ErrValidation))
}

func TestTripService_Update_notFound(t *testing.T) {
	repo := &mockTripRepository{
		getByID: func(context.Context, string) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	}
	svc := service.NewTripService(repo)

	_, err := svc.Update(context.Background(), "trip_00000000", map[string]any{"notes": "x"})

	require.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestTripService_Update_propagatesStorageUnavailable(t *testing.T) {
	repo := &mockTripRepository{
		getByID: func(context.Context, string) (domain.Trip, error) {
			return domain.Trip{ID: "trip_abc12345"}, nil
		},
		update: func(context.Context, string, map[string]any) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrStorageUnavailable
		},
	}
	svc := service.NewTripService(repo)

	_, err := svc.Update(context.Background(), "trip_abc12345", map[string]any{"notes": "x"})

	require.True(t, errors.Is(err, domain.ErrStorageUnavailable))
}
