package flights

import "context"

// Intent is the classified purpose of the user's latest turn.
type Intent string

const (
	IntentSearch Intent = "search"
	IntentBook   Intent = "book"
	IntentCancel Intent = "cancel"
)

// FlightSegment is one leg of an itinerary.
type FlightSegment struct {
	Carrier      string `json:"carrier"`
	FlightNumber string `json:"flightNumber"`
	From         string `json:"from"`
	To           string `json:"to"`
	DepTime      string `json:"depTime"`
	ArrTime      string `json:"arrTime"`
	DurationMin  int    `json:"durationMin"`
}

// Itinerary is a priced, schedulable flight option returned by search.
type Itinerary struct {
	ItineraryID     string          `json:"itineraryId"`
	Airline         string          `json:"airline"`
	Outbound        []FlightSegment `json:"outbound"`
	Inbound         []FlightSegment `json:"inbound,omitempty"`
	Stops           int             `json:"stops"`
	BaggageIncluded bool            `json:"baggageIncluded"`
	TotalPrice      float64         `json:"totalPrice"`
	Currency        string          `json:"currency"`
}

// SearchParams are the validated flight-search parameters. Origin and
// destination are IATA codes; dates are YYYY-MM-DD.
type SearchParams struct {
	Origin       string `json:"origin"`
	Destination  string `json:"destination"`
	DepartDate   string `json:"departDate"`
	ReturnDate   string `json:"returnDate,omitempty"`
	Adults       int    `json:"adults"`
	DirectOnly   bool   `json:"directOnly"`
	WithBaggage  bool   `json:"withBaggage"`
	CheapestOnly bool   `json:"cheapestOnly"`
}

// Passenger identifies the main passenger on a booking.
type Passenger struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// BookingParams are the inputs to the booking domain call.
type BookingParams struct {
	ItineraryID string    `json:"itineraryId"`
	Passenger   Passenger `json:"passenger"`
}

// Booking is a confirmed reservation.
type Booking struct {
	PNR         string    `json:"pnr"`
	Status      string    `json:"status"` // always "TICKETED"
	Total       float64   `json:"total"`
	Passenger   Passenger `json:"passenger"`
	ItineraryID string    `json:"itineraryId"`
	CreatedAt   string    `json:"createdAt"`
}

// CancellationParams identify the booking to cancel by PNR.
type CancellationParams struct {
	PNR string `json:"pnr"`
}

// Cancellation is a confirmed cancellation.
type Cancellation struct {
	PNR        string `json:"pnr"`
	Status     string `json:"status"` // always "CANCELED"
	CanceledAt string `json:"canceledAt"`
}

// BookingExtraction is the flat shape produced by booking extraction before
// it is folded into BookingParams at invocation time.
type BookingExtraction struct {
	ItineraryID string `json:"itineraryId"`
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
}

// Service exposes the external flight domain functions. The graph is
// agnostic to whether the backing is a real HTTP API or an in-memory
// simulation.
type Service interface {
	ListFlights(ctx context.Context, params SearchParams) ([]Itinerary, error)
	BookFlight(ctx context.Context, params BookingParams) (Booking, error)
	CancelFlight(ctx context.Context, params CancellationParams) (Cancellation, error)
}

// UI component names and props consumed by the rendering layer.
const (
	ComponentFlightsList              = "flights-list"
	ComponentBookingConfirmation      = "flight-booking-confirmation"
	ComponentCancellationConfirmation = "flight-cancellation-confirmation"
)

type FlightsListProps struct {
	ToolCallID   string       `json:"toolCallId"`
	Flights      []Itinerary  `json:"flights"`
	SearchParams SearchParams `json:"searchParams"`
}

type BookingConfirmationProps struct {
	ToolCallID string  `json:"toolCallId"`
	Booking    Booking `json:"booking"`
}

type CancellationConfirmationProps struct {
	ToolCallID   string       `json:"toolCallId"`
	Cancellation Cancellation `json:"cancellation"`
}
