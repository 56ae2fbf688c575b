package apiclient

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized indicates the backend rejected the bearer credential.
	// The interceptor has already forced a logout by the time callers see it.
	ErrUnauthorized = errors.New("apiclient.unauthorized")

	// ErrRequestFailed covers every other failed request.
	ErrRequestFailed = errors.New("apiclient.request_failed")
)

// APIError carries the status and message of a failed API call. Protocol
// marks errors reported inside the response envelope, as opposed to the
// transport status line.
type APIError struct {
	Status   int
	Message  string
	Protocol bool

	err error
}

func (e *APIError) Error() string {
	kind := "transport"
	if e.Protocol {
		kind = "protocol"
	}
	if e.Message == "" {
		return fmt.Sprintf("api error (%s status %d)", kind, e.Status)
	}
	return fmt.Sprintf("api error (%s status %d): %s", kind, e.Status, e.Message)
}

func (e *APIError) Unwrap() error { return e.err }
