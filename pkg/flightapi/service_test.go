package flightapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skylane/flightkit/pkg/apiclient"
	"github.com/skylane/flightkit/pkg/flightapi"
	"github.com/skylane/flightkit/pkg/session"
)

type serviceEnv struct {
	svc      *flightapi.Service
	requests *atomic.Int64
	lastPath string
	method   string
}

func setupService(t *testing.T, respond func(w http.ResponseWriter, r *http.Request)) *serviceEnv {
	t.Helper()

	env := &serviceEnv{requests: &atomic.Int64{}}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		env.requests.Add(1)
		env.lastPath = r.URL.Path
		env.method = r.Method
		respond(w, r)
	}))
	t.Cleanup(server.Close)

	cfg := session.Config{
		AuthServiceURL: "https://accounts.example.dev",
		APIBaseURL:     server.URL,
	}
	manager, err := session.New(cfg,
		session.WithTransport(session.NewLocalTransport(session.NewMemoryStore())),
	)
	require.NoError(t, err)

	env.svc = flightapi.NewService(apiclient.NewFlightClient(cfg, manager))
	return env
}

func respondJSON(payload string) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	}
}

func TestServiceEndpoints(t *testing.T) {
	ctx := context.Background()

	t.Run("list", func(t *testing.T) {
		env := setupService(t, respondJSON(`{
			"status": 200, "message": "ok",
			"data": [{"id": "f-1", "flightNumber": "SK100", "origin": "CGK", "destination": "DPS", "price": 120.5, "availableSeats": 42}]
		}`))

		flights, err := env.svc.List(ctx)
		require.NoError(t, err)

		assert.Equal(t, "/api/flight/list", env.lastPath)
		assert.Equal(t, http.MethodGet, env.method)
		require.Len(t, flights, 1)
		assert.Equal(t, "SK100", flights[0].FlightNumber)
		assert.Equal(t, 42, flights[0].AvailableSeats)
	})

	t.Run("my bookings", func(t *testing.T) {
		env := setupService(t, respondJSON(`{
			"status": 200,
			"data": [{"id": "b-1", "flightId": "f-1", "userId": "u-1", "numberOfSeats": 2, "totalPrice": 241.0, "bookingStatus": "CONFIRMED"}]
		}`))

		bookings, err := env.svc.MyBookings(ctx)
		require.NoError(t, err)

		assert.Equal(t, "/api/flight/my-bookings", env.lastPath)
		require.Len(t, bookings, 1)
		assert.Equal(t, "CONFIRMED", bookings[0].BookingStatus)
	})

	t.Run("create", func(t *testing.T) {
		env := setupService(t, respondJSON(`{"status": 200, "data": {"id": "f-9", "flightNumber": "SK900"}}`))

		flight, err := env.svc.Create(ctx, flightapi.CreateFlightRequest{
			FlightNumber:   "SK900",
			Origin:         "CGK",
			Destination:    "DPS",
			Price:          99.0,
			AvailableSeats: 100,
		})
		require.NoError(t, err)

		assert.Equal(t, "/api/flight/create", env.lastPath)
		assert.Equal(t, http.MethodPost, env.method)
		assert.Equal(t, "f-9", flight.ID)
	})

	t.Run("create rejects invalid payload without dispatch", func(t *testing.T) {
		env := setupService(t, respondJSON(`{"status": 200}`))

		_, err := env.svc.Create(ctx, flightapi.CreateFlightRequest{FlightNumber: "SK900"})
		require.Error(t, err)
		assert.ErrorIs(t, err, flightapi.ErrInvalidRequest)
		assert.Zero(t, env.requests.Load())
	})

	t.Run("book", func(t *testing.T) {
		env := setupService(t, respondJSON(`{"status": 200, "data": {"id": "b-7", "flightId": "f-1", "numberOfSeats": 3}}`))

		booking, err := env.svc.Book(ctx, "f-1", flightapi.BookFlightRequest{NumberOfSeats: 3})
		require.NoError(t, err)

		assert.Equal(t, "/api/flight/f-1/book", env.lastPath)
		assert.Equal(t, 3, booking.NumberOfSeats)
	})

	t.Run("book rejects zero seats", func(t *testing.T) {
		env := setupService(t, respondJSON(`{"status": 200}`))

		_, err := env.svc.Book(ctx, "f-1", flightapi.BookFlightRequest{})
		assert.ErrorIs(t, err, flightapi.ErrInvalidRequest)
		assert.Zero(t, env.requests.Load())
	})

	t.Run("update", func(t *testing.T) {
		env := setupService(t, respondJSON(`{"status": 200, "data": {"id": "f-1", "price": 150.0}}`))

		price := 150.0
		flight, err := env.svc.Update(ctx, "f-1", flightapi.UpdateFlightRequest{Price: &price})
		require.NoError(t, err)

		assert.Equal(t, "/api/flight/f-1", env.lastPath)
		assert.Equal(t, http.MethodPut, env.method)
		assert.Equal(t, 150.0, flight.Price)
	})

	t.Run("update rejects non-positive price", func(t *testing.T) {
		env := setupService(t, respondJSON(`{"status": 200}`))

		price := -1.0
		_, err := env.svc.Update(ctx, "f-1", flightapi.UpdateFlightRequest{Price: &price})
		assert.ErrorIs(t, err, flightapi.ErrInvalidRequest)
	})

	t.Run("delete", func(t *testing.T) {
		env := setupService(t, respondJSON(`{"status": 200, "message": "deleted"}`))

		require.NoError(t, env.svc.Delete(ctx, "f-1"))
		assert.Equal(t, "/api/flight/f-1", env.lastPath)
		assert.Equal(t, http.MethodDelete, env.method)
	})
}
