// internal/client/errors.go
package client

import (
	"errors"
	"fmt"
)

var (
	// ErrNetwork hides transport failures behind one message suitable for
	// an alert. The cause is logged.
	ErrNetwork = errors.New("network error, try again")

	// ErrMalformedResponse is returned when the body is not an envelope or
	// lacks the fields the call expects.
	ErrMalformedResponse = errors.New("unexpected response from server")
)

// ServerError carries the error field of a failed envelope verbatim.
type ServerError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *ServerError) Error() string {
	return e.Message
}

// ValidationError is raised before any request is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// IsStatus reports whether err is a ServerError with the given status.
func IsStatus(err error, status int) bool {
	var serverErr *ServerError
	return errors.As(err, &serverErr) && serverErr.StatusCode == status
}
