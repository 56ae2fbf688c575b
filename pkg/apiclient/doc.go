// Package apiclient builds the HTTP clients used for all backend calls,
// with the session interceptors installed on both sides of the wire.
//
// Outbound, every request refreshes the in-memory token from the session
// transport and, when present, attaches it as a bearer credential, along
// with a per-request X-Request-ID. Inbound, a transport-level 401 forces a
// logout (clearing the token and redirecting to login) before the error is
// propagated to the caller; other errors propagate unchanged after logging.
// No request is ever retried automatically.
//
// Two clients exist per process: the base client rooted at the API base
// URL, and the flight client rooted at the /api/flight sub-path. Both
// unwrap the backend's {status, message, data} envelope via the generic
// Get/Post/Put/Delete helpers; a protocol-level error status inside a 2xx
// body is surfaced as an APIError with Protocol set.
package apiclient
