package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the currently active store.
// Handlers should map this to HTTP 404. It is a normal negative outcome and
// never causes the trip repository to fall back to the flat file.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, unknown trip status).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrStorageUnavailable is returned when a write is attempted while the trip
// repository is serving from the read-only fallback file. Handlers should map
// this to HTTP 503 so clients can explain "read-only mode" to the user.
var ErrStorageUnavailable = errors.New("storage unavailable")

// ErrDuplicate is returned when a create or update collides with a unique
// constraint (e.g. a second driver with the same name).
// Handlers should map this to HTTP 409 Conflict.
var ErrDuplicate = errors.New("already exists")

// ErrInvalidCredentials is returned by the auth service when a login attempt
// fails. Handlers should map this to HTTP 401 without saying which of
// username or password was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")
