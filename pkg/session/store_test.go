package session_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skylane/flightkit/pkg/session"
)

// brokenTransport fails every operation, modelling disabled storage.
type brokenTransport struct{}

func (brokenTransport) Load() (string, error) { return "", errors.New("storage disabled") }

func (brokenTransport) Store(string, time.Duration) error { return errors.New("storage disabled") }

func (brokenTransport) Clear() error { return errors.New("storage disabled") }

func TestTokenStore(t *testing.T) {
	t.Parallel()

	t.Run("set then initialize returns the token", func(t *testing.T) {
		t.Parallel()
		store := session.NewTokenStore(session.NewLocalTransport(session.NewMemoryStore()))

		store.Set("tok-abc")
		assert.Equal(t, "tok-abc", store.Initialize())
		assert.Equal(t, "tok-abc", store.Token())
	})

	t.Run("clear then initialize returns no token", func(t *testing.T) {
		t.Parallel()
		store := session.NewTokenStore(session.NewLocalTransport(session.NewMemoryStore()))

		store.Set("tok-abc")
		store.Clear()

		assert.Empty(t, store.Initialize())
		assert.Empty(t, store.Token())
	})

	t.Run("initialize picks up tokens written behind its back", func(t *testing.T) {
		t.Parallel()
		backing := session.NewMemoryStore()
		store := session.NewTokenStore(session.NewLocalTransport(backing))

		require.NoError(t, backing.Set(session.TokenKey, "tok-external"))
		assert.Equal(t, "tok-external", store.Initialize())
	})

	t.Run("storage failures are swallowed as no token", func(t *testing.T) {
		t.Parallel()
		store := session.NewTokenStore(brokenTransport{})

		store.Set("tok-abc")
		// The in-memory slot still holds the value for this process.
		assert.Equal(t, "tok-abc", store.Token())

		// A reload from the broken transport yields no token.
		assert.Empty(t, store.Initialize())
		store.Clear()
		assert.Empty(t, store.Token())
	})

	t.Run("cookie transport round trip", func(t *testing.T) {
		t.Parallel()
		transport, err := session.NewCookieTransport(".example.dev")
		require.NoError(t, err)
		store := session.NewTokenStore(transport)

		store.Set("tok-cookie")
		assert.Equal(t, "tok-cookie", store.Initialize())

		store.Clear()
		assert.Empty(t, store.Initialize())
	})
}
