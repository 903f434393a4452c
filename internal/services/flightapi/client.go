// Package flightapi implements flights.Service against the trip-planner
// backend HTTP API. Booking and cancellation run under the resilience
// executor; search is a plain read.
package flightapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/RafaelAngelo1999/trip-planner-agent/internal/agent/flights"
	"github.com/RafaelAngelo1999/trip-planner-agent/internal/agent/model"
	"github.com/RafaelAngelo1999/trip-planner-agent/internal/agent/resilience"
	logx "github.com/RafaelAngelo1999/trip-planner-agent/pkg/logger"
)

// Placeholder contact fields: the conversation only captures name and email,
// the backend requires a full passenger record.
const (
	defaultPhone    = "+5511999999999"
	defaultDocument = "000.000.000-00"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	exec       *resilience.Executor
	now        func() time.Time
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithNow injects the clock used for synthesized timestamps.
func WithNow(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// New builds a Client from config. The resilience executor governs booking
// and cancellation; pass one built with test options for determinism.
func New(cfg model.FlightAPIConfig, exec *resilience.Executor, opts ...Option) *Client {
	c := &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		exec:       exec,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListFlights queries the backend and applies the filters the API does not
// support server-side.
func (c *Client) ListFlights(ctx context.Context, params flights.SearchParams) ([]flights.Itinerary, error) {
	q := url.Values{}
	q.Set("origin", params.Origin)
	q.Set("destination", params.Destination)
	q.Set("departureDate", params.DepartDate)
	q.Set("page", "1")
	q.Set("limit", "50")

	var resp apiFlightsResponse
	if err := c.get(ctx, "/api/flights?"+q.Encode(), &resp); err != nil {
		logx.Error().Err(err).Str("origin", params.Origin).Str("destination", params.Destination).Msg("flight search failed")
		return nil, err
	}

	results := make([]flights.Itinerary, 0, len(resp.Data.Flights))
	for _, f := range resp.Data.Flights {
		results = append(results, toItinerary(f))
	}

	if params.DirectOnly {
		results = filter(results, func(it flights.Itinerary) bool { return it.Stops == 0 })
	}
	if params.WithBaggage {
		results = filter(results, func(it flights.Itinerary) bool { return it.BaggageIncluded })
	}
	if params.CheapestOnly {
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].TotalPrice < results[j].TotalPrice
		})
		if len(results) > 2 {
			results = results[:2]
		}
	}
	return results, nil
}

// BookFlight books the itinerary under the resilience policy.
func (c *Client) BookFlight(ctx context.Context, params flights.BookingParams) (flights.Booking, error) {
	// The request path doubles as the resilience operation name so the
	// critical-endpoint substrings match it.
	path := "/api/flights/" + url.PathEscape(params.ItineraryID) + "/book"
	return resilience.Do(ctx, c.exec, path, func(ctx context.Context) (flights.Booking, error) {
		body := apiBookingRequest{
			Passenger: apiBookingPassenger{
				Name:     params.Passenger.FullName,
				Email:    params.Passenger.Email,
				Phone:    defaultPhone,
				Document: defaultDocument,
			},
		}

		raw, err := c.send(ctx, http.MethodPost, path, body)
		if err != nil {
			return flights.Booking{}, err
		}

		var env apiBookingEnvelope
		if err := json.Unmarshal(raw, &env); err != nil {
			return flights.Booking{}, fmt.Errorf("decode booking response: %w", err)
		}
		booking, err := env.booking(raw)
		if err != nil {
			return flights.Booking{}, err
		}
		return toBooking(booking, c.now())
	})
}

// CancelFlight cancels the booking identified by PNR under the resilience
// policy. The backend keys cancellation by booking id; the PNR is used as
// that id.
func (c *Client) CancelFlight(ctx context.Context, params flights.CancellationParams) (flights.Cancellation, error) {
	path := "/api/bookings/" + url.PathEscape(params.PNR) + "/cancel"
	return resilience.Do(ctx, c.exec, path, func(ctx context.Context) (flights.Cancellation, error) {
		body := apiCancellationRequest{
			Reason:       "Cancellation requested by the user",
			RefundMethod: "original_payment",
		}
		if _, err := c.send(ctx, http.MethodPut, path, body); err != nil {
			return flights.Cancellation{}, err
		}
		return flights.Cancellation{
			PNR:        params.PNR,
			Status:     "CANCELED",
			CanceledAt: c.now().UTC().Format(time.RFC3339),
		}, nil
	})
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	raw, err := c.send(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func (c *Client) send(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr apiErrorResponse
		if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.Error != nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("%s", apiErr.Error.Message)
		}
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	return raw, nil
}

func filter(items []flights.Itinerary, keep func(flights.Itinerary) bool) []flights.Itinerary {
	out := items[:0]
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

var _ flights.Service = (*Client)(nil)
