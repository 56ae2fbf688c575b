package flightapi

import "errors"

var (
	// ErrInvalidRequest indicates a payload failed client-side validation
	// and was never dispatched.
	ErrInvalidRequest = errors.New("flightapi.invalid_request")
)
