package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mkumaran/trip-tracker/backend/internal/middleware"
)

// loginRequest is the POST /api/v1/auth/login body.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// tokenResponse mirrors the OAuth-ish shape the frontend already expects.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// handleLogin implements POST /api/v1/auth/login.
// Wrong username and wrong password are the same 401 on purpose.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "request body must be JSON with username and password")
		return
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		badRequest(w, "username and password are required")
		return
	}

	token, err := s.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

// handleMe implements GET /api/v1/users/me.
// The id comes straight from the verified token; no database round-trip.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"user_id": middleware.UserID(r.Context())})
}
