// Package apperr defines the error taxonomy shared by services, repositories,
// and controllers. Callers branch with errors.Is and map to an HTTP status
// with HTTPStatus instead of logging-and-500ing at the call site.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInvalidArgument marks missing or malformed input, e.g. an empty
	// search term.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnauthorized marks a missing bearer token on a protected route.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden marks an invalid/expired token or an insufficient role.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound marks a lookup for a row that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNoBeansAvailable is returned by the bean-of-the-day selector when
	// the catalogue has no eligible bean.
	ErrNoBeansAvailable = errors.New("no beans available")

	// ErrStorage wraps failures of the backing store.
	ErrStorage = errors.New("storage error")
)

// InvalidArgumentf builds an ErrInvalidArgument with a caller-facing message.
func InvalidArgumentf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrInvalidArgument}, args...)...)
}

// NotFoundf builds an ErrNotFound with a caller-facing message.
func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrNotFound}, args...)...)
}

// Storage wraps a backing-store failure so errors.Is(err, ErrStorage) holds.
func Storage(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStorage, op, err)
}

// HTTPStatus maps an error to the status code the API contract prescribes.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		// ErrStorage, ErrNoBeansAvailable, and anything unexpected.
		return http.StatusInternalServerError
	}
}
