package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails validation (malformed cadastral
// number, out-of-range coordinate or pagination parameter).
// Handlers map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrEmailTaken is returned on registration when a user with the same email
// already exists. Handlers map this to HTTP 409 Conflict.
var ErrEmailTaken = errors.New("user already exists")

// ErrInvalidCredentials is returned on a failed login or an invalid/expired
// bearer token. Handlers map this to HTTP 401 Unauthorized.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInactiveUser is returned when the credentials or token are valid but the
// account has been deactivated. Handlers map this to HTTP 403 Forbidden.
var ErrInactiveUser = errors.New("user inactive")
