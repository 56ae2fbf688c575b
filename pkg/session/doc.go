// Package session owns the bearer-token lifecycle for the flight booking
// front-end: loading, storing and clearing the token across two transport
// strategies, validating it against the centralized auth service, and
// projecting the authenticated user for role checks.
//
// # Architecture
//
// Config is resolved once from the environment (with .env support) and
// selects the transport variant: a domain-scoped cookie when the front-end
// and the auth service share a parent domain, or a local persistent store
// when cookies cannot cross origins and the token arrives via URL relay.
// The rest of the system depends only on the Transport capability
// (Load/Store/Clear), never on the concrete variant.
//
// TokenStore holds the in-memory token slot over the transport. Its
// operations never fail observably; storage-layer errors are swallowed and
// treated as "no token".
//
// Manager composes the token store with the remote validator. Validate
// calls POST {api}/api/auth/validate with the token as a bearer credential
// and interprets the {status, message, data} envelope: a protocol status of
// 200 with a user payload populates the user projection; any other
// well-formed response or a transport 401 forces logout; transient
// transport failures (network, timeout, 5xx) preserve the session so a dead
// auth service does not evict valid sessions.
//
// Logout clears state and emits a full-page redirect to
// {auth}/login?redirect={current url} through the configured RedirectFunc,
// modelled as an explicit leave-application effect rather than in-app
// navigation.
//
// # Usage
//
//	cfg := session.MustLoadConfig()
//	sess, err := session.New(cfg,
//	    session.WithLogger(log),
//	    session.WithRedirect(browser.Open),
//	    session.WithLocation(browser.CurrentURL),
//	)
//	if err != nil {
//	    log.Error("session init failed", logger.Error(err))
//	}
//
//	if sess.Validate(ctx) && sess.HasRole("FLIGHT_AIRLINE") {
//	    // render airline view
//	}
//
// # Error Handling
//
// Sentinel errors can be compared with errors.Is: ErrTokenNotFound,
// ErrParsingConfig, ErrInvalidSiteURL, ErrStorageUnavailable. Validation
// outcomes are reported as booleans, matching the front-end contract where
// session errors never surface as exceptions to view code.
package session
