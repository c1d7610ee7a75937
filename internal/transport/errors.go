package transport

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated marks a request that stayed unauthorized after its
	// single replay; the caller must not retry further.
	ErrUnauthenticated = errors.New("request unauthorized")
)

// APIError is a non-2xx reply from the remote API, carrying the error
// envelope when the server sent one. It is passed through to callers
// unchanged; only 401 enters the refresh path.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Details    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d", e.StatusCode)
}

// IsStatus reports whether err is an APIError with the given status code
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}
