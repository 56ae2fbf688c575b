package session

import "errors"

var (
	// ErrTokenNotFound indicates the transport holds no token.
	ErrTokenNotFound = errors.New("session.token_not_found")

	// ErrParsingConfig is returned when environment variables cannot be
	// parsed into the config struct.
	ErrParsingConfig = errors.New("session.config_parse_failed")

	// ErrInvalidSiteURL indicates the cookie transport was given an
	// unusable site URL.
	ErrInvalidSiteURL = errors.New("session.invalid_site_url")

	// ErrStorageUnavailable indicates the local store backend rejected an
	// operation. The token store swallows it and treats it as "no token".
	ErrStorageUnavailable = errors.New("session.storage_unavailable")
)
