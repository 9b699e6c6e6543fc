package client

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable covers transport failures: no endpoint configured,
	// network errors, timeouts, non-2xx statuses and unparsable bodies.
	ErrUnavailable = errors.New("server unavailable")

	// ErrNotConfigured is returned, joined with ErrUnavailable, while no
	// endpoint URL is set.
	ErrNotConfigured = errors.New("sheet endpoint url not configured")

	// ErrRejected is matched by *RejectedError.
	ErrRejected = errors.New("rejected by server")
)

// RejectedError carries the endpoint's own message for an ok:false reply.
type RejectedError struct {
	Action  string
	Message string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("%s rejected: %s", e.Action, e.Message)
}

func (e *RejectedError) Is(target error) bool {
	return target == ErrRejected
}

// Reason returns a short user-facing explanation of a classified error.
func Reason(err error) string {
	var rejected *RejectedError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &rejected):
		return rejected.Message
	case errors.Is(err, ErrNotConfigured):
		return ErrNotConfigured.Error()
	default:
		return err.Error()
	}
}
