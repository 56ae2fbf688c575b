package apiclient

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
)

// authTransport decorates every outbound request with the current bearer
// token and reacts to unauthorized responses by forcing a logout.
type authTransport struct {
	next    http.RoundTripper
	session Session
	logger  *slog.Logger
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())

	if req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	// Refresh the in-memory token from the transport. The snapshot applies
	// to this dispatch only; a token change mid-flight does not affect
	// requests already sent.
	if token := t.session.Store().Initialize(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := t.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		t.logger.Warn("apiclient: unauthorized response, logging out",
			"method", req.Method,
			"url", req.URL.String(),
		)
		t.session.Logout()
	}

	return resp, nil
}
