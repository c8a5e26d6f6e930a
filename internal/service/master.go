package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/mkumaran/trip-tracker/backend/internal/domain"
	"github.com/mkumaran/trip-tracker/backend/internal/repo"
)

// MasterService wraps the five master-data repos behind one service.
// The entities are plain CRUD with soft delete; the only rules are that the
// human key is required and stays unique (uniqueness comes back from the repo
// as domain.ErrDuplicate).
type MasterService struct {
	drivers  repo.DriverRepo
	vehicles repo.VehicleRepo
	items    repo.ItemRepo
	places   repo.PurchasePlaceRepo
	partners repo.PartnerRepo
}

// NewMasterService constructs a MasterService backed by the provided repos.
func NewMasterService(drivers repo.DriverRepo, vehicles repo.VehicleRepo,
	items repo.ItemRepo, places repo.PurchasePlaceRepo, partners repo.PartnerRepo) *MasterService {
	return &MasterService{drivers: drivers, vehicles: vehicles, items: items, places: places, partners: partners}
}

// TripMasters returns the active master data for the trip-entry dropdowns.
// Each list is non-nil even when empty.
func (s *MasterService) TripMasters(ctx context.Context) (domain.TripMasters, error) {
	m := domain.TripMasters{
		Drivers:        []domain.Driver{},
		Vehicles:       []domain.Vehicle{},
		Items:          []domain.Item{},
		PurchasePlaces: []domain.PurchasePlace{},
		Partners:       []domain.Partner{},
	}

	drivers, err := s.drivers.List(ctx)
	if err != nil {
		return domain.TripMasters{}, fmt.Errorf("service.MasterService.TripMasters: %w", err)
	}
	vehicles, err := s.vehicles.List(ctx)
	if err != nil {
		return domain.TripMasters{}, fmt.Errorf("service.MasterService.TripMasters: %w", err)
	}
	items, err := s.items.List(ctx)
	if err != nil {
		return domain.TripMasters{}, fmt.Errorf("service.MasterService.TripMasters: %w", err)
	}
	places, err := s.places.List(ctx)
	if err != nil {
		return domain.TripMasters{}, fmt.Errorf("service.MasterService.TripMasters: %w", err)
	}
	partners, err := s.partners.List(ctx)
	if err != nil {
		return domain.TripMasters{}, fmt.Errorf("service.MasterService.TripMasters: %w", err)
	}

	m.Drivers = append(m.Drivers, drivers...)
	m.Vehicles = append(m.Vehicles, vehicles...)
	m.Items = append(m.Items, items...)
	m.PurchasePlaces = append(m.PurchasePlaces, places...)
	m.Partners = append(m.Partners, partners...)
	return m, nil
}

// List and get operations pass straight through to the repos; there are no
// rules to enforce on reads. Deactivations are plain soft deletes.

func (s *MasterService) ListDrivers(ctx context.Context) ([]domain.Driver, error) {
	return s.drivers.List(ctx)
}

func (s *MasterService) GetDriver(ctx context.Context, id string) (domain.Driver, error) {
	return s.drivers.GetByID(ctx, id)
}

func (s *MasterService) DeactivateDriver(ctx context.Context, id string) error {
	return s.drivers.Deactivate(ctx, id)
}

func (s *MasterService) ListVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	return s.vehicles.List(ctx)
}

func (s *MasterService) GetVehicle(ctx context.Context, id string) (domain.Vehicle, error) {
	return s.vehicles.GetByID(ctx, id)
}

func (s *MasterService) DeactivateVehicle(ctx context.Context, id string) error {
	return s.vehicles.Deactivate(ctx, id)
}

func (s *MasterService) ListItems(ctx context.Context) ([]domain.Item, error) {
	return s.items.List(ctx)
}

func (s *MasterService) GetItem(ctx context.Context, id string) (domain.Item, error) {
	return s.items.GetByID(ctx, id)
}

func (s *MasterService) DeactivateItem(ctx context.Context, id string) error {
	return s.items.Deactivate(ctx, id)
}

func (s *MasterService) ListPurchasePlaces(ctx context.Context) ([]domain.PurchasePlace, error) {
	return s.places.List(ctx)
}

func (s *MasterService) GetPurchasePlace(ctx context.Context, id string) (domain.PurchasePlace, error) {
	return s.places.GetByID(ctx, id)
}

func (s *MasterService) DeactivatePurchasePlace(ctx context.Context, id string) error {
	return s.places.Deactivate(ctx, id)
}

func (s *MasterService) ListPartners(ctx context.Context) ([]domain.Partner, error) {
	return s.partners.List(ctx)
}

func (s *MasterService) GetPartner(ctx context.Context, id string) (domain.Partner, error) {
	return s.partners.GetByID(ctx, id)
}

func (s *MasterService) DeactivatePartner(ctx context.Context, id string) error {
	return s.partners.Deactivate(ctx, id)
}

// CreateDriver validates and persists a new driver.
func (s *MasterService) CreateDriver(ctx context.Context, d domain.Driver) (domain.Driver, error) {
	if err := requireName(d.Name, "name"); err != nil {
		return domain.Driver{}, err
	}
	created, err := s.drivers.Create(ctx, d)
	if err != nil {
		return domain.Driver{}, fmt.Errorf("service.MasterService.CreateDriver: %w", err)
	}
	return created, nil
}

// UpdateDriver loads the driver, applies the non-nil patch fields, and saves.
func (s *MasterService) UpdateDriver(ctx context.Context, id string, patch DriverPatch) (domain.Driver, error) {
	d, err := s.drivers.GetByID(ctx, id)
	if err != nil {
		return domain.Driver{}, fmt.Errorf("service.MasterService.UpdateDriver: %w", err)
	}
	if patch.Name != nil {
		if err := requireName(*patch.Name, "name"); err != nil {
			return domain.Driver{}, err
		}
		d.Name = *patch.Name
	}
	if patch.Phone != nil {
		d.Phone = patch.Phone
	}
	if patch.LicenseNumber != nil {
		d.LicenseNumber = patch.LicenseNumber
	}
	updated, err := s.drivers.Update(ctx, d)
	if err != nil {
		return domain.Driver{}, fmt.Errorf("service.MasterService.UpdateDriver: %w", err)
	}
	return updated, nil
}

// CreateVehicle validates and persists a new vehicle.
func (s *MasterService) CreateVehicle(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error) {
	if err := requireName(v.VehicleNumber, "vehicle_number"); err != nil {
		return domain.Vehicle{}, err
	}
	created, err := s.vehicles.Create(ctx, v)
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("service.MasterService.CreateVehicle: %w", err)
	}
	return created, nil
}

// UpdateVehicle loads the vehicle, applies the non-nil patch fields, and saves.
func (s *MasterService) UpdateVehicle(ctx context.Context, id string, patch VehiclePatch) (domain.Vehicle, error) {
	v, err := s.vehicles.GetByID(ctx, id)
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("service.MasterService.UpdateVehicle: %w", err)
	}
	if patch.VehicleNumber != nil {
		if err := requireName(*patch.VehicleNumber, "vehicle_number"); err != nil {
			return domain.Vehicle{}, err
		}
		v.VehicleNumber = *patch.VehicleNumber
	}
	if patch.VehicleType != nil {
		v.VehicleType = *patch.VehicleType
	}
	if patch.DriverName != nil {
		v.DriverName = patch.DriverName
	}
	updated, err := s.vehicles.Update(ctx, v)
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("service.MasterService.UpdateVehicle: %w", err)
	}
	return updated, nil
}

// CreateItem validates and persists a new item.
func (s *MasterService) CreateItem(ctx context.Context, it domain.Item) (domain.Item, error) {
	if err := requireName(it.Name, "name"); err != nil {
		return domain.Item{}, err
	}
	created, err := s.items.Create(ctx, it)
	if err != nil {
		return domain.Item{}, fmt.Errorf("service.MasterService.CreateItem: %w", err)
	}
	return created, nil
}

// UpdateItem loads the item, applies the non-nil patch fields, and saves.
func (s *MasterService) UpdateItem(ctx context.Context, id string, patch CatalogPatch) (domain.Item, error) {
	it, err := s.items.GetByID(ctx, id)
	if err != nil {
		return domain.Item{}, fmt.Errorf("service.MasterService.UpdateItem: %w", err)
	}
	if patch.Name != nil {
		if err := requireName(*patch.Name, "name"); err != nil {
			return domain.Item{}, err
		}
		it.Name = *patch.Name
	}
	if patch.Extra != nil {
		it.Description = patch.Extra
	}
	updated, err := s.items.Update(ctx, it)
	if err != nil {
		return domain.Item{}, fmt.Errorf("service.MasterService.UpdateItem: %w", err)
	}
	return updated, nil
}

// CreatePurchasePlace validates and persists a new purchase place.
func (s *MasterService) CreatePurchasePlace(ctx context.Context, p domain.PurchasePlace) (domain.PurchasePlace, error) {
	if err := requireName(p.Name, "name"); err != nil {
		return domain.PurchasePlace{}, err
	}
	created, err := s.places.Create(ctx, p)
	if err != nil {
		return domain.PurchasePlace{}, fmt.Errorf("service.MasterService.CreatePurchasePlace: %w", err)
	}
	return created, nil
}

// UpdatePurchasePlace loads the place, applies the non-nil patch fields, and saves.
func (s *MasterService) UpdatePurchasePlace(ctx context.Context, id string, patch CatalogPatch) (domain.PurchasePlace, error) {
	p, err := s.places.GetByID(ctx, id)
	if err != nil {
		return domain.PurchasePlace{}, fmt.Errorf("service.MasterService.UpdatePurchasePlace: %w", err)
	}
	if patch.Name != nil {
		if err := requireName(*patch.Name, "name"); err != nil {
			return domain.PurchasePlace{}, err
		}
		p.Name = *patch.Name
	}
	if patch.Extra != nil {
		p.Location = patch.Extra
	}
	updated, err := s.places.Update(ctx, p)
	if err != nil {
		return domain.PurchasePlace{}, fmt.Errorf("service.MasterService.UpdatePurchasePlace: %w", err)
	}
	return updated, nil
}

// CreatePartner validates and persists a new partner.
func (s *MasterService) CreatePartner(ctx context.Context, p domain.Partner) (domain.Partner, error) {
	if err := requireName(p.Name, "name"); err != nil {
		return domain.Partner{}, err
	}
	created, err := s.partners.Create(ctx, p)
	if err != nil {
		return domain.Partner{}, fmt.Errorf("service.MasterService.CreatePartner: %w", err)
	}
	return created, nil
}

// UpdatePartner loads the partner, applies the non-nil patch fields, and saves.
func (s *MasterService) UpdatePartner(ctx context.Context, id string, patch CatalogPatch) (domain.Partner, error) {
	p, err := s.partners.GetByID(ctx, id)
	if err != nil {
		return domain.Partner{}, fmt.Errorf("service.MasterService.UpdatePartner: %w", err)
	}
	if patch.Name != nil {
		if err := requireName(*patch.Name, "name"); err != nil {
			return domain.Partner{}, err
		}
		p.Name = *patch.Name
	}
	if patch.Extra != nil {
		p.ContactInfo = patch.Extra
	}
	updated, err := s.partners.Update(ctx, p)
	if err != nil {
		return domain.Partner{}, fmt.Errorf("service.MasterService.UpdatePartner: %w", err)
	}
	return updated, nil
}

// DriverPatch is a partial driver update; nil fields are left untouched.
type DriverPatch struct {
	Name          *string `json:"name"`
	Phone         *string `json:"phone"`
	LicenseNumber *string `json:"license_number"`
}

// VehiclePatch is a partial vehicle update; nil fields are left untouched.
type VehiclePatch struct {
	VehicleNumber *string `json:"vehicle_number"`
	VehicleType   *string `json:"vehicle_type"`
	DriverName    *string `json:"driver_name"`
}

// CatalogPatch is a partial update for items, purchase places, and partners.
// Extra is the entity's single optional column (description / location /
// contact_info); nil fields are left untouched.
type CatalogPatch struct {
	Name  *string `json:"name"`
	Extra *string `json:"-"`
}

func requireName(v, field string) error {
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("%w: %s is required", domain.ErrValidation, field)
	}
	return nil
}
