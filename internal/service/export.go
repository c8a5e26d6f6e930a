package service

import (
	"context"
	"fmt"
	"strconv"
)

// ExportHeaders are the CSV column names, in external field order.
var ExportHeaders = []string{
	"id", "tripStartDate", "estimatedEndDate", "vehicleNumber", "driverName",
	"partner", "purchasePlace", "itemName", "startingKm", "endingKm",
	"distance", "tonnage", "ratePerTon", "freight", "totalExpenses",
	"revenue", "profit", "status", "locked", "amountGivenToDriver", "notes",
}

// ExportService produces a flat tabular view of all trips for download.
// It reads through the trip repository, so the export keeps working (from
// the fallback file) when the database is down.
type ExportService struct {
	trips TripRepository
}

// NewExportService constructs an ExportService backed by the trip repository.
func NewExportService(trips TripRepository) *ExportService {
	return &ExportService{trips: trips}
}

// Export returns one CSV record per trip, columns matching ExportHeaders.
// The open-ended expense breakdown is deliberately not flattened into
// columns; totals carry the financial picture.
func (s *ExportService) Export(ctx context.Context) ([][]string, error) {
	trips, err := s.trips.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	records := make([][]string, 0, len(trips))
	for _, t := range trips {
		records = append(records, []string{
			t.ID,
			t.TripStartDate,
			strPtr(t.EstimatedEndDate),
			t.VehicleNumber,
			t.DriverName,
			strPtr(t.Partner),
			strPtr(t.PurchasePlace),
			strPtr(t.ItemName),
			floatPtr(t.StartingKm),
			floatPtr(t.EndingKm),
			floatPtr(t.Distance),
			floatPtr(t.Tonnage),
			floatPtr(t.RatePerTon),
			floatPtr(t.Freight),
			formatFloat(t.TotalExpenses),
			formatFloat(t.Revenue),
			formatFloat(t.Profit),
			t.Status,
			strconv.FormatBool(t.Locked),
			floatPtr(t.AmountGivenToDriver),
			strPtr(t.Notes),
		})
	}
	return records, nil
}

func strPtr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func floatPtr(p *float64) string {
	if p == nil {
		return ""
	}
	return formatFloat(*p)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
