package flightapi

// Flight is a backend-owned payload; the client passes it through
// unmodified and imposes no invariants on it.
type Flight struct {
	ID             string  `json:"id"`
	FlightNumber   string  `json:"flightNumber"`
	Origin         string  `json:"origin"`
	Destination    string  `json:"destination"`
	Price          float64 `json:"price"`
	AvailableSeats int     `json:"availableSeats"`
	AirlineID      string  `json:"airlineId,omitempty"`
	CreatedAt      string  `json:"createdAt,omitempty"`
	UpdatedAt      string  `json:"updatedAt,omitempty"`
}

type FlightBooking struct {
	ID            string  `json:"id"`
	FlightID      string  `json:"flightId"`
	UserID        string  `json:"userId"`
	NumberOfSeats int     `json:"numberOfSeats"`
	TotalPrice    float64 `json:"totalPrice"`
	BookingStatus string  `json:"bookingStatus"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
	Flight        *Flight `json:"flight,omitempty"`
}

// CreateFlightRequest is validated client-side before dispatch; the backend
// remains the authority on business rules.
type CreateFlightRequest struct {
	FlightNumber   string  `json:"flightNumber" validate:"required"`
	Origin         string  `json:"origin" validate:"required"`
	Destination    string  `json:"destination" validate:"required"`
	Price          float64 `json:"price" validate:"required,gt=0"`
	AvailableSeats int     `json:"availableSeats" validate:"required,gte=1"`
}

// UpdateFlightRequest is a partial update; nil fields are left untouched by
// the backend.
type UpdateFlightRequest struct {
	FlightNumber   *string  `json:"flightNumber,omitempty" validate:"omitempty,min=1"`
	Origin         *string  `json:"origin,omitempty" validate:"omitempty,min=1"`
	Destination    *string  `json:"destination,omitempty" validate:"omitempty,min=1"`
	Price          *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	AvailableSeats *int     `json:"availableSeats,omitempty" validate:"omitempty,gte=1"`
}

type BookFlightRequest struct {
	NumberOfSeats int `json:"numberOfSeats" validate:"required,gte=1"`
}
