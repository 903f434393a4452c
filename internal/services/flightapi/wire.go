package flightapi

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/RafaelAngelo1999/trip-planner-agent/internal/agent/flights"
)

// Wire types for the trip-planner backend. The flights endpoints speak
// snake_case; the booking endpoints mostly camelCase, with enough drift
// between deployments that booking decoding stays defensive.

type apiFlight struct {
	ID              string   `json:"id"`
	FlightNumber    string   `json:"flight_number"`
	Airline         string   `json:"airline"`
	Origin          string   `json:"origin"`
	Destination     string   `json:"destination"`
	DepartureTime   string   `json:"departure_time"`
	ArrivalTime     string   `json:"arrival_time"`
	Price           float64  `json:"price"`
	Currency        string   `json:"currency"`
	Duration        string   `json:"duration"`
	AvailableSeats  int      `json:"available_seats"`
	TotalSeats      int      `json:"total_seats"`
	Aircraft        string   `json:"aircraft"`
	Stops           int      `json:"stops"`
	StopCities      []string `json:"stop_cities,omitempty"`
	BaggageIncluded bool     `json:"baggage_included"`
	MealIncluded    bool     `json:"meal_included"`
	Refundable      bool     `json:"refundable"`
	BookingClass    string   `json:"booking_class"`
	Status          string   `json:"status,omitempty"`
}

type apiFlightsResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Flights    []apiFlight `json:"flights"`
		Pagination struct {
			Total      int `json:"total"`
			Page       int `json:"page"`
			Limit      int `json:"limit"`
			TotalPages int `json:"total_pages"`
		} `json:"pagination"`
	} `json:"data"`
}

type apiBookingPassenger struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Document string `json:"document"`
}

type apiBookingRequest struct {
	Passenger apiBookingPassenger `json:"passenger"`
}

type apiCancellationRequest struct {
	Reason       string `json:"reason,omitempty"`
	RefundMethod string `json:"refundMethod,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiErrorResponse struct {
	Error *apiError `json:"error,omitempty"`
}

// apiBooking covers the field aliases observed across backend deployments.
// Reference, total and flight-id each have several historical spellings.
type apiBooking struct {
	ID               string  `json:"id"`
	BookingReference string  `json:"bookingReference"`
	BookingRefSnake  string  `json:"booking_reference"`
	Reference        string  `json:"reference"`
	ConfirmationCode string  `json:"confirmation_code"`
	PNR              string  `json:"pnr"`
	TotalPrice       float64 `json:"totalPrice"`
	TotalPriceSnake  float64 `json:"total_price"`
	Total            float64 `json:"total"`
	FlightID         string  `json:"flightId"`
	FlightIDSnake    string  `json:"flight_id"`
	CreatedAt        string  `json:"createdAt"`
	CreatedAtSnake   string  `json:"created_at"`
	Passenger        struct {
		Name     string `json:"name"`
		FullName string `json:"fullName"`
		Email    string `json:"email"`
	} `json:"passenger"`
	Flight struct {
		ID string `json:"id"`
	} `json:"flight"`
}

// apiBookingEnvelope matches the possible nesting of a booking response:
// top-level booking, data.booking, or a bare booking object.
type apiBookingEnvelope struct {
	Success bool            `json:"success"`
	Booking *apiBooking     `json:"booking"`
	Data    json.RawMessage `json:"data"`
}

func (env *apiBookingEnvelope) booking(raw []byte) (*apiBooking, error) {
	if env.Booking != nil {
		return env.Booking, nil
	}
	if len(env.Data) > 0 {
		var inner struct {
			Booking *apiBooking `json:"booking"`
		}
		if err := json.Unmarshal(env.Data, &inner); err == nil && inner.Booking != nil {
			return inner.Booking, nil
		}
		var direct apiBooking
		if err := json.Unmarshal(env.Data, &direct); err == nil {
			return &direct, nil
		}
	}
	var direct apiBooking
	if err := json.Unmarshal(raw, &direct); err != nil {
		return nil, fmt.Errorf("decode booking response: %w", err)
	}
	return &direct, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstNonZero(values ...float64) float64 {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}

func toBooking(b *apiBooking, now time.Time) (flights.Booking, error) {
	ref := firstNonEmpty(b.BookingReference, b.BookingRefSnake, b.Reference, b.ConfirmationCode, b.PNR, b.ID)
	if ref == "" {
		return flights.Booking{}, fmt.Errorf("booking response has no reference field")
	}
	createdAt := firstNonEmpty(b.CreatedAt, b.CreatedAtSnake)
	if createdAt == "" {
		createdAt = now.UTC().Format(time.RFC3339)
	}
	return flights.Booking{
		PNR:    ref,
		Status: "TICKETED",
		Total:  firstNonZero(b.TotalPrice, b.TotalPriceSnake, b.Total),
		Passenger: flights.Passenger{
			FullName: firstNonEmpty(b.Passenger.Name, b.Passenger.FullName),
			Email:    b.Passenger.Email,
		},
		ItineraryID: firstNonEmpty(b.FlightID, b.FlightIDSnake, b.Flight.ID),
		CreatedAt:   createdAt,
	}, nil
}

func toItinerary(f apiFlight) flights.Itinerary {
	return flights.Itinerary{
		ItineraryID: f.ID,
		Airline:     f.Airline,
		Outbound: []flights.FlightSegment{
			{
				Carrier:      carrierCode(f.Airline),
				FlightNumber: f.FlightNumber,
				From:         f.Origin,
				To:           f.Destination,
				DepTime:      clockTime(f.DepartureTime),
				ArrTime:      clockTime(f.ArrivalTime),
				DurationMin:  parseDurationMinutes(f.Duration),
			},
		},
		Inbound:         []flights.FlightSegment{},
		Stops:           f.Stops,
		BaggageIncluded: f.BaggageIncluded,
		TotalPrice:      f.Price,
		Currency:        f.Currency,
	}
}

// carrierCode derives a two-letter carrier code from the airline name.
func carrierCode(airline string) string {
	if len(airline) < 2 {
		return strings.ToUpper(airline)
	}
	return strings.ToUpper(airline[:2])
}

// clockTime renders an ISO 8601 timestamp as HH:MM; unparseable input passes
// through unchanged.
func clockTime(iso string) string {
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return iso
	}
	return t.Format("15:04")
}

var durationPattern = regexp.MustCompile(`(\d+)h\s*(\d+)?m?`)

// parseDurationMinutes converts durations like "2h 30m" to minutes. Empty
// input defaults to 120; unmatched input to 0.
func parseDurationMinutes(duration string) int {
	if duration == "" {
		return 120
	}
	m := durationPattern.FindStringSubmatch(duration)
	if m == nil {
		return 0
	}
	hours, _ := strconv.Atoi(m[1])
	minutes := 0
	if m[2] != "" {
		minutes, _ = strconv.Atoi(m[2])
	}
	return hours*60 + minutes
}
