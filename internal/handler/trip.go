package handler

import (
	"encoding/csv"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mkumaran/trip-tracker/backend/internal/domain"
	"github.com/mkumaran/trip-tracker/backend/internal/middleware"
	"github.com/mkumaran/trip-tracker/backend/internal/service"
)

// Trip responses are domain.Trip values encoded directly: the struct's JSON
// tags are the external field-name shape, so the handler never remaps names.

// handleListTrips implements GET /api/v1/trips.
func (s *Server) handleListTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := s.trips.GetAll(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, trips)
}

// handleGetTrip implements GET /api/v1/trips/{id}.
func (s *Server) handleGetTrip(w http.ResponseWriter, r *http.Request) {
	trip, err := s.trips.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// handleCreateTrip implements POST /api/v1/trips.
// The body is an external-shaped trip object; the authenticated user id is
// recorded as createdBy.
func (s *Server) handleCreateTrip(w http.ResponseWriter, r *http.Request) {
	var trip domain.Trip
	if err := json.NewDecoder(r.Body).Decode(&trip); err != nil {
		badRequest(w, "request body must be a JSON trip object")
		return
	}

	created, err := s.trips.Create(r.Context(), trip, middleware.UserID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// handleUpdateTrip implements PUT /api/v1/trips/{id}.
// The body is a partial external-shaped object: absent fields stay untouched,
// explicit nulls clear nullable fields.
func (s *Server) handleUpdateTrip(w http.ResponseWriter, r *http.Request) {
	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		badRequest(w, "request body must be a JSON object of trip fields")
		return
	}

	updated, err := s.trips.Update(r.Context(), chi.URLParam(r, "id"), fields)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// handleDeleteTrip implements DELETE /api/v1/trips/{id}.
func (s *Server) handleDeleteTrip(w http.ResponseWriter, r *http.Request) {
	if err := s.trips.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleTripMasters implements GET /api/v1/trips/masters — the active master
// data for the trip-entry dropdowns. Once the trip repository has fallen back
// to the file the database is known-unreachable, so the dropdowns come back
// empty instead of erroring.
func (s *Server) handleTripMasters(w http.ResponseWriter, r *http.Request) {
	if s.storage != nil && s.storage.Degraded() {
		writeJSON(w, http.StatusOK, domain.TripMasters{
			Drivers:        []domain.Driver{},
			Vehicles:       []domain.Vehicle{},
			Items:          []domain.Item{},
			PurchasePlaces: []domain.PurchasePlace{},
			Partners:       []domain.Partner{},
		})
		return
	}

	masters, err := s.masters.TripMasters(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, masters)
}

// handleExportTrips implements GET /api/v1/trips/export.
// Use ?format=csv to receive CSV; default is JSON rows under the same headers.
func (s *Server) handleExportTrips(w http.ResponseWriter, r *http.Request) {
	records, err := s.export.Export(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	if r.URL.Query().Get("format") != "csv" {
		writeJSON(w, http.StatusOK, map[string]any{
			"headers": service.ExportHeaders,
			"rows":    records,
		})
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="trips.csv"`)
	cw := csv.NewWriter(w)
	//nolint:errcheck — Error() after Flush reports any buffered write failure.
	cw.Write(service.ExportHeaders)
	for _, rec := range records {
		//nolint:errcheck
		cw.Write(rec)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		// Headers are already on the wire; logging is all that is left.
		slog.ErrorContext(r.Context(), "csv export write failed", "error", err)
	}
}
