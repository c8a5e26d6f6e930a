package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkumaran/trip-tracker/backend/internal/domain"
)

func TestLogin_200(t *testing.T) {
	auth := &mockAuthServicer{
		login: func(_ context.Context, username, password string) (string, error) {
			require.Equal(t, "mkumaran", username)
			require.Equal(t, "s3cret", password)
			return "signed.jwt.token", nil
		},
	}
	h := newTestRouter(serverDeps{auth: auth})

	body := jsonBody(t, map[string]string{"username": "mkumaran", "password": "s3cret"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", body))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody(t, rec.Body)
	assert.Equal(t, "signed.jwt.token", resp["access_token"])
	assert.Equal(t, "bearer", resp["token_type"])
}

func TestLogin_401(t *testing.T) {
	auth := &mockAuthServicer{
		login: func(context.Context, string, string) (string, error) {
			return "", domain.ErrInvalidCredentials
		},
	}
	h := newTestRouter(serverDeps{auth: auth})

	body := jsonBody(t, map[string]string{"username": "mkumaran", "password": "wrong"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", body))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	resp := decodeBody(t, rec.Body)
	errObj := resp["error"].(map[string]any)
	assert.Equal(t, "invalid_credentials", errObj["code"])
	// The message never says which of username/password was wrong.
	assert.Equal(t, "invalid username or password", errObj["message"])
}

func TestLogin_422_missingFields(t *testing.T) {
	h := newTestRouter(serverDeps{auth: &mockAuthServicer{}})

	body := jsonBody(t, map[string]string{"username": "   "})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", body))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestLogin_422_malformedBody(t *testing.T) {
	h := newTestRouter(serverDeps{auth: &mockAuthServicer{}})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader("nope")))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

// TestMe_200 verifies GET /users/me echoes the authenticated user id from
// the request context.
func TestMe_200(t *testing.T) {
	h := newTestRouter(serverDeps{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody(t, rec.Body)
	assert.Equal(t, "user_11112222", resp["user_id"])
}
