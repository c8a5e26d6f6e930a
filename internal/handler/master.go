package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mkumaran/trip-tracker/backend/internal/domain"
	"github.com/mkumaran/trip-tracker/backend/internal/service"
)

// Master-data endpoints are uniform CRUD: list active rows, get by id,
// create, partial update, soft delete. The five resources share the
// resourceRoutes helper; only the decode/dispatch closures differ.

// mountMasterRoutes registers the five master-data resources under r.
func (s *Server) mountMasterRoutes(r chi.Router) {
	resourceRoutes(r, "/drivers", resource{
		list:   func(w http.ResponseWriter, r *http.Request) { respondList(w, r, s.masters.ListDrivers) },
		get:    func(w http.ResponseWriter, r *http.Request) { respondGet(w, r, s.masters.GetDriver) },
		create: s.handleCreateDriver,
		update: s.handleUpdateDriver,
		delete: func(w http.ResponseWriter, r *http.Request) { respondDelete(w, r, s.masters.DeactivateDriver) },
	})
	resourceRoutes(r, "/vehicles", resource{
		list:   func(w http.ResponseWriter, r *http.Request) { respondList(w, r, s.masters.ListVehicles) },
		get:    func(w http.ResponseWriter, r *http.Request) { respondGet(w, r, s.masters.GetVehicle) },
		create: s.handleCreateVehicle,
		update: s.handleUpdateVehicle,
		delete: func(w http.ResponseWriter, r *http.Request) { respondDelete(w, r, s.masters.DeactivateVehicle) },
	})
	resourceRoutes(r, "/items", resource{
		list:   func(w http.ResponseWriter, r *http.Request) { respondList(w, r, s.masters.ListItems) },
		get:    func(w http.ResponseWriter, r *http.Request) { respondGet(w, r, s.masters.GetItem) },
		create: s.handleCreateItem,
		update: s.handleUpdateItem,
		delete: func(w http.ResponseWriter, r *http.Request) { respondDelete(w, r, s.masters.DeactivateItem) },
	})
	resourceRoutes(r, "/purchase-places", resource{
		list:   func(w http.ResponseWriter, r *http.Request) { respondList(w, r, s.masters.ListPurchasePlaces) },
		get:    func(w http.ResponseWriter, r *http.Request) { respondGet(w, r, s.masters.GetPurchasePlace) },
		create: s.handleCreatePurchasePlace,
		update: s.handleUpdatePurchasePlace,
		delete: func(w http.ResponseWriter, r *http.Request) { respondDelete(w, r, s.masters.DeactivatePurchasePlace) },
	})
	resourceRoutes(r, "/partners", resource{
		list:   func(w http.ResponseWriter, r *http.Request) { respondList(w, r, s.masters.ListPartners) },
		get:    func(w http.ResponseWriter, r *http.Request) { respondGet(w, r, s.masters.GetPartner) },
		create: s.handleCreatePartner,
		update: s.handleUpdatePartner,
		delete: func(w http.ResponseWriter, r *http.Request) { respondDelete(w, r, s.masters.DeactivatePartner) },
	})
}

type resource struct {
	list, get, create, update, delete http.HandlerFunc
}

func resourceRoutes(r chi.Router, pattern string, res resource) {
	r.Route(pattern, func(r chi.Router) {
		r.Get("/", res.list)
		r.Post("/", res.create)
		r.Get("/{id}", res.get)
		r.Put("/{id}", res.update)
		r.Delete("/{id}", res.delete)
	})
}

func respondList[T any](w http.ResponseWriter, r *http.Request, list func(ctx context.Context) ([]T, error)) {
	rows, err := list(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if rows == nil {
		rows = []T{}
	}
	writeJSON(w, http.StatusOK, rows)
}

func respondGet[T any](w http.ResponseWriter, r *http.Request, get func(ctx context.Context, id string) (T, error)) {
	row, err := get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func respondDelete(w http.ResponseWriter, r *http.Request, deactivate func(ctx context.Context, id string) error) {
	if err := deactivate(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "deactivated"})
}

// --- drivers ----------------------------------------------------------------

func (s *Server) handleCreateDriver(w http.ResponseWriter, r *http.Request) {
	var d domain.Driver
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		badRequest(w, "request body must be a JSON driver object")
		return
	}
	created, err := s.masters.CreateDriver(r.Context(), d)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateDriver(w http.ResponseWriter, r *http.Request) {
	var patch service.DriverPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		badRequest(w, "request body must be a JSON driver object")
		return
	}
	updated, err := s.masters.UpdateDriver(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// --- vehicles ---------------------------------------------------------------

func (s *Server) handleCreateVehicle(w http.ResponseWriter, r *http.Request) {
	var v domain.Vehicle
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		badRequest(w, "request body must be a JSON vehicle object")
		return
	}
	created, err := s.masters.CreateVehicle(r.Context(), v)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateVehicle(w http.ResponseWriter, r *http.Request) {
	var patch service.VehiclePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		badRequest(w, "request body must be a JSON vehicle object")
		return
	}
	updated, err := s.masters.UpdateVehicle(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// --- items ------------------------------------------------------------------

type itemBody struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	var b itemBody
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		badRequest(w, "request body must be a JSON item object")
		return
	}
	it := domain.Item{Description: b.Description}
	if b.Name != nil {
		it.Name = *b.Name
	}
	created, err := s.masters.CreateItem(r.Context(), it)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	var b itemBody
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		badRequest(w, "request body must be a JSON item object")
		return
	}
	updated, err := s.masters.UpdateItem(r.Context(), chi.URLParam(r, "id"),
		service.CatalogPatch{Name: b.Name, Extra: b.Description})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// --- purchase places --------------------------------------------------------

type purchasePlaceBody struct {
	Name     *string `json:"name"`
	Location *string `json:"location"`
}

func (s *Server) handleCreatePurchasePlace(w http.ResponseWriter, r *http.Request) {
	var b purchasePlaceBody
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		badRequest(w, "request body must be a JSON purchase place object")
		return
	}
	p := domain.PurchasePlace{Location: b.Location}
	if b.Name != nil {
		p.Name = *b.Name
	}
	created, err := s.masters.CreatePurchasePlace(r.Context(), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdatePurchasePlace(w http.ResponseWriter, r *http.Request) {
	var b purchasePlaceBody
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		badRequest(w, "request body must be a JSON purchase place object")
		return
	}
	updated, err := s.masters.UpdatePurchasePlace(r.Context(), chi.URLParam(r, "id"),
		service.CatalogPatch{Name: b.Name, Extra: b.Location})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// --- partners ---------------------------------------------------------------

type partnerBody struct {
	Name        *string `json:"name"`
	ContactInfo *string `json:"contact_info"`
}

func (s *Server) handleCreatePartner(w http.ResponseWriter, r *http.Request) {
	var b partnerBody
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		badRequest(w, "request body must be a JSON partner object")
		return
	}
	p := domain.Partner{ContactInfo: b.ContactInfo}
	if b.Name != nil {
		p.Name = *b.Name
	}
	created, err := s.masters.CreatePartner(r.Context(), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdatePartner(w http.ResponseWriter, r *http.Request) {
	var b partnerBody
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		badRequest(w, "request body must be a JSON partner object")
		return
	}
	updated, err := s.masters.UpdatePartner(r.Context(), chi.URLParam(r, "id"),
		service.CatalogPatch{Name: b.Name, Extra: b.ContactInfo})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
