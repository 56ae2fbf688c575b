// Package flightapi is the typed client for the flight booking backend and
// the local state store the views read from.
//
// Service maps one-to-one onto the backend's flight endpoints (list,
// my-bookings, create, book, update, delete) over the flight-prefixed API
// client, validating payloads before dispatch. Store layers the front-end
// behavior on top: results are reflected into local flight/booking lists, a
// loading flag, and a shared human-readable error slot, while the original
// error is re-returned to the caller. Auth failures never surface here;
// the API client's interceptors handle them before this package sees the
// response.
package flightapi
