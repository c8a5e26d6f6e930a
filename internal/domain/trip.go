// Package domain contains the core data types for the Trip Tracker backend.
// This package has no dependencies beyond id generation and is imported by
// every other internal package (repo, service, handler).
package domain

import "time"

// Trip statuses. A trip starts as a draft and is closed once it is settled.
const (
	TripStatusDraft  = "draft"
	TripStatusClosed = "closed"
)

// ExpenseCategories lists the well-known keys of the expense breakdown.
// The breakdown is open-ended: unknown categories are stored as given.
// "otherDescription" carries the free-text note for the "other" bucket.
var ExpenseCategories = []string{"food", "diesel", "toll", "salary", "tax", "other"}

// Trip represents a single freight trip and its financials.
//
// The JSON tags ARE the external (client-facing) field-name shape: encoding a
// Trip produces exactly the camelCase representation the API and the fallback
// file use. The relational schema uses the snake_case internal shape; the
// translate package maps between the two for partial updates.
//
// Dates are free-form strings on purpose — the legacy data contains partial
// and non-ISO values that must round-trip untouched.
type Trip struct {
	ID               string   `json:"id"`
	TripStartDate    string   `json:"tripStartDate"`
	EstimatedEndDate *string  `json:"estimatedEndDate,omitempty"`
	VehicleNumber    string   `json:"vehicleNumber"`
	DriverName       string   `json:"driverName"`
	Partner          *string  `json:"partner,omitempty"`
	PurchasePlace    *string  `json:"purchasePlace,omitempty"`
	ItemName         *string  `json:"itemName,omitempty"`
	StartingKm       *float64 `json:"startingKm,omitempty"`
	EndingKm         *float64 `json:"endingKm,omitempty"`
	Distance         *float64 `json:"distance,omitempty"`
	Tonnage          *float64 `json:"tonnage,omitempty"`
	RatePerTon       *float64 `json:"ratePerTon,omitempty"`
	Freight          *float64 `json:"freight,omitempty"`

	// Expenses maps category name to amount; values are numeric except the
	// free-text "otherDescription" entry. Never nil after ApplyDefaults.
	Expenses map[string]any `json:"expenses"`

	// TotalExpenses, Revenue, and Profit are trusted client-supplied values.
	// profit = revenue - totalExpenses is a caller-enforced invariant; the
	// backend stores what it is given and never recomputes.
	TotalExpenses float64 `json:"totalExpenses"`
	Revenue       float64 `json:"revenue"`
	Profit        float64 `json:"profit"`

	Status string `json:"status"`
	// Locked signals that metrics and financials must not be edited. The
	// persistence layer round-trips it faithfully; enforcement lives in the
	// service layer.
	Locked bool `json:"locked"`

	AmountGivenToDriver *float64 `json:"amountGivenToDriver,omitempty"`
	Notes               *string  `json:"notes,omitempty"`

	// CreatedAt/UpdatedAt are pointers because fallback-file records predate
	// these columns and must not sprout zero timestamps when served.
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
	CreatedBy *string    `json:"createdBy,omitempty"`
}

// ApplyDefaults fills the zero values the schema defines defaults for:
// a nil expense breakdown becomes an empty map and a missing status becomes
// draft. Numeric financials already default to 0.0 and Locked to false as Go
// zero values. Safe to call on records from either store.
func (t *Trip) ApplyDefaults() {
	if t.Expenses == nil {
		t.Expenses = map[string]any{}
	}
	if t.Status == "" {
		t.Status = TripStatusDraft
	}
}
