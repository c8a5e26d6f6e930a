package domain

import "time"

// Master-data entities referenced by trips. Each row has a prefixed string
// id, one unique human-readable key, an is_active soft-delete flag, and audit
// timestamps. Deleting a master record only deactivates it so historic trips
// keep resolving.

// Driver is a person who can be assigned to trips.
type Driver struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Phone         *string   `json:"phone,omitempty"`
	LicenseNumber *string   `json:"license_number,omitempty"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Vehicle is a truck, keyed by its registration number.
type Vehicle struct {
	ID            string    `json:"id"`
	VehicleNumber string    `json:"vehicle_number"`
	VehicleType   string    `json:"vehicle_type"`
	DriverName    *string   `json:"driver_name,omitempty"` // current driver
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Item is a cargo type carried on trips.
type Item struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PurchasePlace is a location where cargo is bought.
type PurchasePlace struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Location  *string   `json:"location,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Partner is a business counterparty on trips.
type Partner struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ContactInfo *string   `json:"contact_info,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TripMasters bundles the active master data for the trip-entry dropdowns.
type TripMasters struct {
	Drivers        []Driver        `json:"drivers"`
	Vehicles       []Vehicle       `json:"vehicles"`
	Items          []Item          `json:"items"`
	PurchasePlaces []PurchasePlace `json:"purchase_places"`
	Partners       []Partner       `json:"partners"`
}
