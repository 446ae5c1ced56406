package square

import (
	"errors"
	"fmt"
)

// APIError is returned when Square responds with a non-2xx status. The detail
// payload is for server-side logs only and must never reach a caller.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("square: api status %d", e.StatusCode)
}

// IsAPIError reports whether err wraps a provider error response.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}
