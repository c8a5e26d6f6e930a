package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mkumaran/trip-tracker/backend/internal/domain"
	"github.com/mkumaran/trip-tracker/backend/internal/service"
)

func TestExportService_Export(t *testing.T) {
	tonnage := 18.5
	notes := "two day run"
	repo := &mockTripRepository{
		getAll: func(context.Context) ([]domain.Trip, error) {
			return []domain.Trip{
				{
					ID:            "trip_abc12345",
					TripStartDate: "2024-01-15",
					VehicleNumber: "TN01AB1234",
					DriverName:    "Kumar",
					Tonnage:       &tonnage,
					TotalExpenses: 4350,
					Revenue:       17575,
					Profit:        13225,
					Status:        domain.TripStatusClosed,
					Locked:        true,
					Notes:         &notes,
				},
				{
					ID:            "trip_def67890",
					TripStartDate: "2024-02-01",
					VehicleNumber: "TN02CD5678",
					DriverName:    "Ravi",
					Status:        domain.TripStatusDraft,
				},
			}, nil
		},
	}
	svc := service.NewExportService(repo)

	records, err := svc.Export(context.Background())

	require.NoError(t, err)
	require.Len(t, records, 2)

	// Every record has one cell per header.
	for _, rec := range records {
		require.Len(t, rec, len(service.ExportHeaders))
	}

	first := records[0]
	require.Equal(t, "trip_abc12345", first[0])
	require.Equal(t, "2024-01-15", first[1])
	require.Equal(t, "18.5", first[11])
	require.Equal(t, "4350", first[14])
	require.Equal(t, "closed", first[17])
	require.Equal(t, "true", first[18])
	require.Equal(t, "two day run", first[20])

	// Nil optionals export as empty cells, zero financials as "0".
	second := records[1]
	require.Equal(t, "", second[2])
	require.Equal(t, "", second[11])
	require.Equal(t, "0", second[14])
	require.Equal(t, "false", second[18])
}

func TestExportService_Export_empty(t *testing.T) {
	repo := &mockTripRepository{
		getAll: func(context.Context) ([]domain.Trip, error) { return []domain.Trip{}, nil },
	}
	svc := service.NewExportService(repo)

	records, err := svc.Export(context.Background())

	require.NoError(t, err)
	require.NotNil(t, records)
	require.Empty(t, records)
}
