package flightapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/skylane/flightkit/pkg/apiclient"
)

// Store reflects CRUD results into local state for the views. Errors are
// converted to a human-readable message, recorded in the shared error slot,
// and re-returned to the caller for local handling.
type Store struct {
	mu       sync.RWMutex
	svc      *Service
	flights  []Flight
	bookings []FlightBooking
	loading  bool
	lastErr  string
	logger   *slog.Logger
}

func NewStore(svc *Service) *Store {
	return &Store{svc: svc, logger: slog.Default()}
}

// SetLogger replaces the store's logger.
func (s *Store) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// LoadFlights fetches the flight list into the store.
func (s *Store) LoadFlights(ctx context.Context) error {
	return s.run("loading flights", func() error {
		flights, err := s.svc.List(ctx)
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.flights = flights
		s.mu.Unlock()
		return nil
	})
}

// LoadMyBookings fetches the user's bookings into the store.
func (s *Store) LoadMyBookings(ctx context.Context) error {
	return s.run("loading bookings", func() error {
		bookings, err := s.svc.MyBookings(ctx)
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.bookings = bookings
		s.mu.Unlock()
		return nil
	})
}

// CreateFlight creates a flight and appends it to the local list.
func (s *Store) CreateFlight(ctx context.Context, req CreateFlightRequest) (Flight, error) {
	var created Flight
	err := s.run("creating flight", func() error {
		flight, err := s.svc.Create(ctx, req)
		if err != nil {
			return err
		}
		created = flight
		s.mu.Lock()
		s.flights = append(s.flights, flight)
		s.mu.Unlock()
		return nil
	})
	return created, err
}

// BookFlight books seats and appends the booking to the local list.
func (s *Store) BookFlight(ctx context.Context, flightID string, req BookFlightRequest) (FlightBooking, error) {
	var booked FlightBooking
	err := s.run("booking flight", func() error {
		booking, err := s.svc.Book(ctx, flightID, req)
		if err != nil {
			return err
		}
		booked = booking
		s.mu.Lock()
		s.bookings = append(s.bookings, booking)
		s.mu.Unlock()
		return nil
	})
	return booked, err
}

// UpdateFlight updates a flight and replaces it in the local list.
func (s *Store) UpdateFlight(ctx context.Context, flightID string, req UpdateFlightRequest) (Flight, error) {
	var updated Flight
	err := s.run("updating flight", func() error {
		flight, err := s.svc.Update(ctx, flightID, req)
		if err != nil {
			return err
		}
		updated = flight
		s.mu.Lock()
		for i := range s.flights {
			if s.flights[i].ID == flightID {
				s.flights[i] = flight
			}
		}
		s.mu.Unlock()
		return nil
	})
	return updated, err
}

// DeleteFlight deletes a flight and drops it from the local list.
func (s *Store) DeleteFlight(ctx context.Context, flightID string) error {
	return s.run("deleting flight", func() error {
		if err := s.svc.Delete(ctx, flightID); err != nil {
			return err
		}
		s.mu.Lock()
		s.flights = slices.DeleteFunc(s.flights, func(f Flight) bool { return f.ID == flightID })
		s.mu.Unlock()
		return nil
	})
}

// Flights returns a snapshot of the local flight list.
func (s *Store) Flights() []Flight {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.flights)
}

// Bookings returns a snapshot of the local booking list.
func (s *Store) Bookings() []FlightBooking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.bookings)
}

// Loading reports whether a store operation is in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// LastError returns the shared human-readable error message, empty when the
// last operation succeeded.
func (s *Store) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// ClearError resets the shared error slot.
func (s *Store) ClearError() {
	s.mu.Lock()
	s.lastErr = ""
	s.mu.Unlock()
}

// run wraps an operation with the loading flag and the shared error slot.
// The original error is re-returned so callers can still branch on it.
func (s *Store) run(what string, op func() error) error {
	s.mu.Lock()
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()

	err := op()

	s.mu.Lock()
	s.loading = false
	if err != nil {
		s.lastErr = humanMessage(err)
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("flightapi: "+what+" failed", "error", err)
		return fmt.Errorf("%s: %w", what, err)
	}
	return nil
}

// humanMessage turns a CRUD error into text fit for inline display.
func humanMessage(err error) string {
	var apiErr *apiclient.APIError
	switch {
	case errors.Is(err, apiclient.ErrUnauthorized):
		return "Your session has expired. Please sign in again."
	case errors.Is(err, ErrInvalidRequest):
		return "Please check the highlighted fields and try again."
	case errors.As(err, &apiErr):
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return fmt.Sprintf("The request failed with status %d.", apiErr.Status)
	default:
		return "The server could not be reached. Please try again."
	}
}
