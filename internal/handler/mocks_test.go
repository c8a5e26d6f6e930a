package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mkumaran/trip-tracker/backend/internal/domain"
	"github.com/mkumaran/trip-tracker/backend/internal/handler"
	"github.com/mkumaran/trip-tracker/backend/internal/middleware"
	"github.com/mkumaran/trip-tracker/backend/internal/service"
)

// mockTripServicer is a test double for handler.TripServicer.
// Set only the method fields your test needs.
type mockTripServicer struct {
	getAll  func(ctx context.Context) ([]domain.Trip, error)
	getByID func(ctx context.Context, id string) (domain.Trip, error)
	create  func(ctx context.Context, trip domain.Trip, createdBy string) (domain.Trip, error)
	update  func(ctx context.Context, id string, fields map[string]any) (domain.Trip, error)
	delete  func(ctx context.Context, id string) error
}

func (m *mockTripServicer) GetAll(ctx context.Context) ([]domain.Trip, error) { return m.getAll(ctx) }
func (m *mockTripServicer) GetByID(ctx context.Context, id string) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripServicer) Create(ctx context.Context, trip domain.Trip, createdBy string) (domain.Trip, error) {
	return m.create(ctx, trip, createdBy)
}
func (m *mockTripServicer) Update(ctx context.Context, id string, fields map[string]any) (domain.Trip, error) {
	return m.update(ctx, id, fields)
}
func (m *mockTripServicer) Delete(ctx context.Context, id string) error { return m.delete(ctx, id) }

var _ handler.TripServicer = (*mockTripServicer)(nil)

// mockAuthServicer is a test double for handler.AuthServicer.
type mockAuthServicer struct {
	login func(ctx context.Context, username, password string) (string, error)
}

func (m *mockAuthServicer) Login(ctx context.Context, username, password string) (string, error) {
	return m.login(ctx, username, password)
}

var _ handler.AuthServicer = (*mockAuthServicer)(nil)

// mockExportServicer is a test double for handler.ExportServicer.
type mockExportServicer struct {
	export func(ctx context.Context) ([][]string, error)
}

func (m *mockExportServicer) Export(ctx context.Context) ([][]string, error) {
	return m.export(ctx)
}

var _ handler.ExportServicer = (*mockExportServicer)(nil)

// mockStorageStatus reports a fixed degraded state.
type mockStorageStatus struct{ degraded bool }

func (m *mockStorageStatus) Degraded() bool { return m.degraded }

// mockMasterServicer is a test double for handler.MasterServicer.
// Unset method fields return zero values rather than panicking so route
// wiring tests don't have to stub all 26 methods.
type mockMasterServicer struct {
	tripMasters func(ctx context.Context) (domain.TripMasters, error)

	listDrivers      func(ctx context.Context) ([]domain.Driver, error)
	getDriver        func(ctx context.Context, id string) (domain.Driver, error)
	createDriver     func(ctx context.Context, d domain.Driver) (domain.Driver, error)
	updateDriver     func(ctx context.Context, id string, patch service.DriverPatch) (domain.Driver, error)
	deactivateDriver func(ctx context.Context, id string) error
}

func (m *mockMasterServicer) TripMasters(ctx context.Context) (domain.TripMasters, error) {
	if m.tripMasters == nil {
		return domain.TripMasters{}, nil
	}
	return m.tripMasters(ctx)
}

func (m *mockMasterServicer) ListDrivers(ctx context.Context) ([]domain.Driver, error) {
	if m.listDrivers == nil {
		return nil, nil
	}
	return m.listDrivers(ctx)
}
func (m *mockMasterServicer) GetDriver(ctx context.Context, id string) (domain.Driver, error) {
	if m.getDriver == nil {
		return domain.Driver{}, nil
	}
	return m.getDriver(ctx, id)
}
func (m *mockMasterServicer) CreateDriver(ctx context.Context, d domain.Driver) (domain.Driver, error) {
	if m.createDriver == nil {
		return d, nil
	}
	return m.createDriver(ctx, d)
}
func (m *mockMasterServicer) UpdateDriver(ctx context.Context, id string, patch service.DriverPatch) (domain.Driver, error) {
	if m.updateDriver == nil {
		return domain.Driver{}, nil
	}
	return m.updateDriver(ctx, id, patch)
}
func (m *mockMasterServicer) DeactivateDriver(ctx context.Context, id string) error {
	if m.deactivateDriver == nil {
		return nil
	}
	return m.deactivateDriver(ctx, id)
}

func (m *mockMasterServicer) ListVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	return nil, nil
}
func (m *mockMasterServicer) GetVehicle(ctx context.Context, id string) (domain.Vehicle, error) {
	return domain.Vehicle{}, nil
}
func (m *mockMasterServicer) CreateVehicle(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error) {
	return v, nil
}
func (m *mockMasterServicer) UpdateVehicle(ctx context.Context, id string, patch service.VehiclePatch) (domain.Vehicle, error) {
	return domain.Vehicle{}, nil
}
func (m *mockMasterServicer) DeactivateVehicle(ctx context.Context, id string) error { return nil }

func (m *mockMasterServicer) ListItems(ctx context.Context) ([]domain.Item, error) { return nil, nil }
func (m *mockMasterServicer) GetItem(ctx context.Context, id string) (domain.Item, error) {
	return domain.Item{}, nil
}
func (m *mockMasterServicer) CreateItem(ctx context.Context, it domain.Item) (domain.Item, error) {
	return it, nil
}
func (m *mockMasterServicer) UpdateItem(ctx context.Context, id string, patch service.CatalogPatch) (domain.Item, error) {
	return domain.Item{}, nil
}
func (m *mockMasterServicer) DeactivateItem(ctx context.Context, id string) error { return nil }

func (m *mockMasterServicer) ListPurchasePlaces(ctx context.Context) ([]domain.PurchasePlace, error) {
	return nil, nil
}
func (m *mockMasterServicer) GetPurchasePlace(ctx context.Context, id string) (domain.PurchasePlace, error) {
	return domain.PurchasePlace{}, nil
}
func (m *mockMasterServicer) CreatePurchasePlace(ctx context.Context, p domain.PurchasePlace) (domain.PurchasePlace, error) {
	return p, nil
}
func (m *mockMasterServicer) UpdatePurchasePlace(ctx context.Context, id string, patch service.CatalogPatch) (domain.PurchasePlace, error) {
	return domain.PurchasePlace{}, nil
}
func (m *mockMasterServicer) DeactivatePurchasePlace(ctx context.Context, id string) error {
	return nil
}

func (m *mockMasterServicer) ListPartners(ctx context.Context) ([]domain.Partner, error) {
	return nil, nil
}
func (m *mockMasterServicer) GetPartner(ctx context.Context, id string) (domain.Partner, error) {
	return domain.Partner{}, nil
}
func (m *mockMasterServicer) CreatePartner(ctx context.Context, p domain.Partner) (domain.Partner, error) {
	return p, nil
}
func (m *mockMasterServicer) UpdatePartner(ctx context.Context, id string, patch service.CatalogPatch) (domain.Partner, error) {
	return domain.Partner{}, nil
}
func (m *mockMasterServicer) DeactivatePartner(ctx context.Context, id string) error { return nil }

var _ handler.MasterServicer = (*mockMasterServicer)(nil)

// ---- helpers ---------------------------------------------------------------

// serverDeps bundles everything newTestRouter can inject; zero-value fields
// get harmless defaults.
type serverDeps struct {
	trips   handler.TripServicer
	masters handler.MasterServicer
	auth    handler.AuthServicer
	export  handler.ExportServicer
	storage handler.StorageStatus
}

// newTestRouter wires a Server with the given mocks into its chi router, with
// a stand-in auth middleware that injects a fixed user id. This mirrors how
// main.go wires it in production, minus real token verification.
func newTestRouter(deps serverDeps) http.Handler {
	if deps.masters == nil {
		deps.masters = &mockMasterServicer{}
	}
	if deps.storage == nil {
		deps.storage = &mockStorageStatus{}
	}
	srv := handler.NewServer(deps.trips, deps.masters, deps.auth, deps.export, deps.storage)
	authmw := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middleware.WithUserID(r.Context(), "user_11112222")))
		})
	}
	return srv.Routes(authmw)
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

// decodeBody decodes a JSON response body into a map for assertions.
func decodeBody(t *testing.T, body *bytes.Buffer) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(body.Bytes(), &m))
	return m
}
