package apiclient_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skylane/flightkit/pkg/apiclient"
	"github.com/skylane/flightkit/pkg/session"
)

type clientEnv struct {
	client    *apiclient.Client
	manager   *session.Manager
	redirects []string
}

func setupClient(t *testing.T, handler http.HandlerFunc, flight bool) *clientEnv {
	t.Helper()

	env := &clientEnv{}

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := session.Config{
		AuthServiceURL: "https://accounts.example.dev",
		APIBaseURL:     server.URL,
	}

	manager, err := session.New(cfg,
		session.WithTransport(session.NewLocalTransport(session.NewMemoryStore())),
		session.WithRedirect(func(url string) { env.redirects = append(env.redirects, url) }),
	)
	require.NoError(t, err)
	env.manager = manager

	if flight {
		env.client = apiclient.NewFlightClient(cfg, manager)
	} else {
		env.client = apiclient.New(cfg, manager)
	}
	return env
}

func TestClientInterceptors(t *testing.T) {
	ctx := context.Background()

	t.Run("attaches bearer token and request id", func(t *testing.T) {
		var gotAuth, gotRequestID, gotContentType string
		env := setupClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			gotRequestID = r.Header.Get("X-Request-ID")
			gotContentType = r.Header.Get("Content-Type")
			_, _ = w.Write([]byte(`{"status": 200, "message": "ok", "data": "pong"}`))
		}, false)
		env.manager.SetToken("tok-77")

		data, err := apiclient.Get[string](ctx, env.client, "/ping")
		require.NoError(t, err)

		assert.Equal(t, "pong", data)
		assert.Equal(t, "Bearer tok-77", gotAuth)
		assert.NotEmpty(t, gotRequestID)
		assert.Equal(t, "application/json", gotContentType)
	})

	t.Run("no token means no authorization header", func(t *testing.T) {
		var gotAuth string
		env := setupClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			_, _ = w.Write([]byte(`{"status": 200, "data": null}`))
		}, false)

		_, err := apiclient.Get[any](ctx, env.client, "/ping")
		require.NoError(t, err)
		assert.Empty(t, gotAuth)
	})

	t.Run("each dispatch refreshes the token from storage", func(t *testing.T) {
		var tokens []string
		env := setupClient(t, func(w http.ResponseWriter, r *http.Request) {
			tokens = append(tokens, r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(`{"status": 200, "data": null}`))
		}, false)

		env.manager.SetToken("tok-a")
		_, err := apiclient.Get[any](ctx, env.client, "/ping")
		require.NoError(t, err)

		env.manager.SetToken("tok-b")
		_, err = apiclient.Get[any](ctx, env.client, "/ping")
		require.NoError(t, err)

		assert.Equal(t, []string{"Bearer tok-a", "Bearer tok-b"}, tokens)
	})

	t.Run("401 forces logout exactly once and propagates", func(t *testing.T) {
		env := setupClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"status": 401, "message": "token expired"}`))
		}, false)
		env.manager.SetToken("tok-expired")

		_, err := apiclient.Get[any](ctx, env.client, "/secure")
		require.Error(t, err)
		assert.ErrorIs(t, err, apiclient.ErrUnauthorized)

		var apiErr *apiclient.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
		assert.Equal(t, "token expired", apiErr.Message)

		// Token cleared and redirect to login issued exactly once.
		assert.Empty(t, env.manager.Store().Initialize())
		assert.Len(t, env.redirects, 1)
		assert.Contains(t, env.redirects[0], "https://accounts.example.dev/login?redirect=")
	})

	t.Run("other errors propagate without logout", func(t *testing.T) {
		env := setupClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status": 503, "message": "maintenance"}`))
		}, false)
		env.manager.SetToken("tok-ok")

		_, err := apiclient.Get[any](ctx, env.client, "/flaky")
		require.Error(t, err)
		assert.ErrorIs(t, err, apiclient.ErrRequestFailed)
		assert.NotErrorIs(t, err, apiclient.ErrUnauthorized)

		assert.Equal(t, "tok-ok", env.manager.Store().Initialize())
		assert.Empty(t, env.redirects)
	})

	t.Run("protocol error inside 2xx body", func(t *testing.T) {
		env := setupClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"status": 422, "message": "seats unavailable"}`))
		}, false)

		_, err := apiclient.Post[any](ctx, env.client, "/book", map[string]int{"numberOfSeats": 3})
		require.Error(t, err)

		var apiErr *apiclient.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.True(t, apiErr.Protocol)
		assert.Equal(t, 422, apiErr.Status)
		assert.Equal(t, "seats unavailable", apiErr.Message)
	})

	t.Run("flight client is rooted at the flight prefix", func(t *testing.T) {
		var gotPath string
		env := setupClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			_, _ = w.Write([]byte(`{"status": 200, "data": []}`))
		}, true)

		_, err := apiclient.Get[[]string](ctx, env.client, "/list")
		require.NoError(t, err)
		assert.Equal(t, "/api/flight/list", gotPath)
	})

	t.Run("network failure wraps ErrRequestFailed", func(t *testing.T) {
		env := setupClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"status": 200, "data": null}`))
		}, false)

		// Point at a closed port.
		cfg := session.Config{APIBaseURL: "http://localhost:1", AuthServiceURL: "https://accounts.example.dev"}
		dead := apiclient.New(cfg, env.manager)

		_, err := apiclient.Get[any](ctx, dead, "/ping")
		require.Error(t, err)
		assert.True(t, errors.Is(err, apiclient.ErrRequestFailed))
	})
}
