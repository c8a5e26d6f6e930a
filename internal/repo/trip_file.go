package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/mkumaran/trip-tracker/backend/internal/domain"
)

// FileTripStore serves the trip collection from a single JSON file. It is the
// degraded-availability read path: the file natively holds records in the
// external field-name shape (a legacy export format), so no translation is
// needed on the way out. The store is read-only — there is no write path and
// no reconciliation back into Postgres.
type FileTripStore struct {
	path string
	log  *slog.Logger
}

// NewFileTripStore constructs a FileTripStore reading from path.
func NewFileTripStore(path string, log *slog.Logger) *FileTripStore {
	if log == nil {
		log = slog.Default()
	}
	return &FileTripStore{path: path, log: log}
}

// ReadAll returns every trip in the file, in file order, with model defaults
// applied. An absent file is an empty collection, not an error; unparsable
// content is logged and likewise treated as empty. ReadAll never fails.
func (s *FileTripStore) ReadAll(ctx context.Context) []domain.Trip {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.WarnContext(ctx, "trips file unreadable, serving empty collection",
				"path", s.path, "error", err)
		}
		return []domain.Trip{}
	}

	var trips []domain.Trip
	if err := json.Unmarshal(data, &trips); err != nil {
		s.log.WarnContext(ctx, "trips file malformed, serving empty collection",
			"path", s.path, "error", err)
		return []domain.Trip{}
	}

	for i := range trips {
		trips[i].ApplyDefaults()
	}
	return trips
}

// FindByID scans the file for a trip with the given id.
// Returns domain.ErrNotFound if no record matches.
func (s *FileTripStore) FindByID(ctx context.Context, id string) (domain.Trip, error) {
	for _, t := range s.ReadAll(ctx) {
		if t.ID == id {
			return t, nil
		}
	}
	return domain.Trip{}, fmt.Errorf("repo.FileTripStore.FindByID: %w", domain.ErrNotFound)
}
