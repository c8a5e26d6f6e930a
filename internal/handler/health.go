package handler

import "net/http"

// handleHealth implements GET /health. Always 200 while the process is up;
// the storage field tells operators whether trips are being served from
// Postgres or from the read-only fallback file.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	storage := "relational"
	if s.storage != nil && s.storage.Degraded() {
		storage = "fallback"
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"storage": storage,
	})
}
