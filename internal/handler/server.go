// Package handler implements the HTTP handlers for the Trip Tracker API.
// All handlers are methods on Server; they are split into resource-specific
// files (trip.go, master.go, auth.go, ...) but share the same struct so they
// can access its dependencies. Handlers translate HTTP to service calls and
// sentinel errors to status codes — no business logic lives here.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mkumaran/trip-tracker/backend/internal/domain"
	"github.com/mkumaran/trip-tracker/backend/internal/service"
)

// TripServicer defines the trip operations the handler depends on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	GetAll(ctx context.Context) ([]domain.Trip, error)
	GetByID(ctx context.Context, id string) (domain.Trip, error)
	Create(ctx context.Context, trip domain.Trip, createdBy string) (domain.Trip, error)
	Update(ctx context.Context, id string, fields map[string]any) (domain.Trip, error)
	Delete(ctx context.Context, id string) error
}

// AuthServicer defines the login operation the handler depends on.
type AuthServicer interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// ExportServicer produces the flat CSV/JSON export rows.
type ExportServicer interface {
	Export(ctx context.Context) ([][]string, error)
}

// MasterServicer defines the master-data operations the handler depends on.
type MasterServicer interface {
	TripMasters(ctx context.Context) (domain.TripMasters, error)

	ListDrivers(ctx context.Context) ([]domain.Driver, error)
	GetDriver(ctx context.Context, id string) (domain.Driver, error)
	CreateDriver(ctx context.Context, d domain.Driver) (domain.Driver, error)
	UpdateDriver(ctx context.Context, id string, patch service.DriverPatch) (domain.Driver, error)
	DeactivateDriver(ctx context.Context, id string) error

	ListVehicles(ctx context.Context) ([]domain.Vehicle, error)
	GetVehicle(ctx context.Context, id string) (domain.Vehicle, error)
	CreateVehicle(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error)
	UpdateVehicle(ctx context.Context, id string, patch service.VehiclePatch) (domain.Vehicle, error)
	DeactivateVehicle(ctx context.Context, id string) error

	ListItems(ctx context.Context) ([]domain.Item, error)
	GetItem(ctx context.Context, id string) (domain.Item, error)
	CreateItem(ctx context.Context, it domain.Item) (domain.Item, error)
	UpdateItem(ctx context.Context, id string, patch service.CatalogPatch) (domain.Item, error)
	DeactivateItem(ctx context.Context, id string) error

	ListPurchasePlaces(ctx context.Context) ([]domain.PurchasePlace, error)
	GetPurchasePlace(ctx context.Context, id string) (domain.PurchasePlace, error)
	CreatePurchasePlace(ctx context.Context, p domain.PurchasePlace) (domain.PurchasePlace, error)
	UpdatePurchasePlace(ctx context.Context, id string, patch service.CatalogPatch) (domain.PurchasePlace, error)
	DeactivatePurchasePlace(ctx context.Context, id string) error

	ListPartners(ctx context.Context) ([]domain.Partner, error)
	GetPartner(ctx context.Context, id string) (domain.Partner, error)
	CreatePartner(ctx context.Context, p domain.Partner) (domain.Partner, error)
	UpdatePartner(ctx context.Context, id string, patch service.CatalogPatch) (domain.Partner, error)
	DeactivatePartner(ctx context.Context, id string) error
}

// StorageStatus reports whether the trip repository has fallen back to the
// flat file. Used only by the health endpoint.
type StorageStatus interface {
	Degraded() bool
}

// Server holds the dependencies shared by all endpoint handlers.
type Server struct {
	trips   TripServicer
	masters MasterServicer
	auth    AuthServicer
	export  ExportServicer
	storage StorageStatus
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, masters MasterServicer, auth AuthServicer,
	export ExportServicer, storage StorageStatus) *Server {
	return &Server{trips: trips, masters: masters, auth: auth, export: export, storage: storage}
}

// Routes mounts all API routes. authmw guards everything except login and
// health; pass middleware.RequireAuth(...) in production or nil in tests
// that exercise handlers directly.
func (s *Server) Routes(authmw func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			if authmw != nil {
				r.Use(authmw)
			}

			r.Route("/trips", func(r chi.Router) {
				r.Get("/", s.handleListTrips)
				r.Post("/", s.handleCreateTrip)
				r.Get("/masters", s.handleTripMasters)
				r.Get("/export", s.handleExportTrips)
				r.Get("/{id}", s.handleGetTrip)
				r.Put("/{id}", s.handleUpdateTrip)
				r.Delete("/{id}", s.handleDeleteTrip)
			})

			r.Get("/users/me", s.handleMe)

			s.mountMasterRoutes(r)
		})
	})

	return r
}
