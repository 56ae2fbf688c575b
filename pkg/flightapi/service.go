package flightapi

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/skylane/flightkit/pkg/apiclient"
)

// Service is the typed client for the flight CRUD surface. It expects a
// client rooted at the flight sub-path (apiclient.NewFlightClient).
type Service struct {
	client   *apiclient.Client
	validate *validator.Validate
}

func NewService(client *apiclient.Client) *Service {
	return &Service{
		client:   client,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// List returns all flights.
func (s *Service) List(ctx context.Context) ([]Flight, error) {
	return apiclient.Get[[]Flight](ctx, s.client, "/list")
}

// MyBookings returns the authenticated user's bookings.
func (s *Service) MyBookings(ctx context.Context) ([]FlightBooking, error) {
	return apiclient.Get[[]FlightBooking](ctx, s.client, "/my-bookings")
}

// Create registers a new flight. Airline accounts only; the backend
// enforces the role, the guard keeps customers off the page.
func (s *Service) Create(ctx context.Context, req CreateFlightRequest) (Flight, error) {
	if err := s.validate.StructCtx(ctx, req); err != nil {
		return Flight{}, errors.Join(ErrInvalidRequest, err)
	}
	return apiclient.Post[Flight](ctx, s.client, "/create", req)
}

// Book reserves seats on a flight for the authenticated customer.
func (s *Service) Book(ctx context.Context, flightID string, req BookFlightRequest) (FlightBooking, error) {
	if err := s.validate.StructCtx(ctx, req); err != nil {
		return FlightBooking{}, errors.Join(ErrInvalidRequest, err)
	}
	return apiclient.Post[FlightBooking](ctx, s.client, "/"+flightID+"/book", req)
}

// Update applies a partial update to an owned flight.
func (s *Service) Update(ctx context.Context, flightID string, req UpdateFlightRequest) (Flight, error) {
	if err := s.validate.StructCtx(ctx, req); err != nil {
		return Flight{}, errors.Join(ErrInvalidRequest, err)
	}
	return apiclient.Put[Flight](ctx, s.client, "/"+flightID, req)
}

// Delete removes a flight.
func (s *Service) Delete(ctx context.Context, flightID string) error {
	return apiclient.Delete(ctx, s.client, "/"+flightID)
}
