// Package navguard intercepts in-app navigation attempts and enforces the
// session rules before a route is allowed to render.
//
// Each Evaluate call runs a small state machine:
//
//	idle → token_extraction → auth_check → role_check → resolved
//
// Token extraction consumes a one-time ?token= query parameter (the URL
// relay used when cookies cannot cross origins), stores it unvalidated, and
// resolves as an internal redirect to the same path with the parameter
// stripped, replacing the history entry. This branch bypasses the auth and
// role checks entirely; validation happens on the navigation that follows.
//
// The auth check is skipped for routes without RequiresAuth. Otherwise the
// session is validated remotely; failure resolves as an external redirect
// to the auth service login page carrying the encoded target URL, aborting
// the pending navigation. A failed role check surfaces a blocking denial
// notice through the Notifier and redirects to the home route; the session
// itself is preserved.
//
// Evaluations are serialized and non-cancellable: a newer navigation waits
// for the one in flight.
package navguard
