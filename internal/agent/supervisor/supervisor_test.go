package supervisor

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/RafaelAngelo1999/trip-planner-agent/internal/agent/flights"
	"github.com/RafaelAngelo1999/trip-planner-agent/internal/agent/graph"
	"github.com/RafaelAngelo1999/trip-planner-agent/internal/agent/hotels"
	"github.com/RafaelAngelo1999/trip-planner-agent/internal/agent/model"
)

type scriptedModel struct {
	t     *testing.T
	steps []*model.Message
	errs  []error
	idx   int
}

func (m *scriptedModel) Invoke(ctx context.Context, msgs []*model.Message, tools ...model.ToolSchema) (*model.Message, error) {
	if m.idx >= len(m.steps) {
		m.t.Fatalf("model invoked %d times, only %d responses scripted", m.idx+1, len(m.steps))
	}
	resp := m.steps[m.idx]
	var err error
	if m.idx < len(m.errs) {
		err = m.errs[m.idx]
	}
	m.idx++
	return resp, err
}

func toolCallMessage(id, name string, args any) *model.Message {
	raw, _ := json.Marshal(args)
	return model.AssistantMessage("", []model.ToolCall{
		{ID: id, Name: name, Arguments: raw},
	})
}

type stubFlightService struct{ calls int }

func (s *stubFlightService) ListFlights(ctx context.Context, params flights.SearchParams) ([]flights.Itinerary, error) {
	s.calls++
	return []flights.Itinerary{{ItineraryID: "it-1"}}, nil
}

func (s *stubFlightService) BookFlight(ctx context.Context, params flights.BookingParams) (flights.Booking, error) {
	return flights.Booking{}, nil
}

func (s *stubFlightService) CancelFlight(ctx context.Context, params flights.CancellationParams) (flights.Cancellation, error) {
	return flights.Cancellation{}, nil
}

type stubHotelService struct{ calls int }

func (s *stubHotelService) ListHotels(ctx context.Context, params hotels.SearchParams) ([]hotels.Hotel, error) {
	s.calls++
	return []hotels.Hotel{{HotelID: "bh-001"}}, nil
}

func buildSupervisor(t *testing.T, chat model.ChatModel, fs flights.Service, hs hotels.Service) *graph.Runnable[State, Update] {
	t.Helper()
	fg, err := flights.NewGraph(flights.Config{Model: chat, Service: fs})
	if err != nil {
		t.Fatalf("build flights graph: %v", err)
	}
	hg, err := hotels.NewGraph(hotels.Config{Model: chat, Service: hs})
	if err != nil {
		t.Fatalf("build hotels graph: %v", err)
	}
	sv, err := NewGraph(Config{Model: chat, Flights: fg, Hotels: hg})
	if err != nil {
		t.Fatalf("build supervisor graph: %v", err)
	}
	return sv
}

func TestResolveDestination(t *testing.T) {
	tests := []struct {
		raw  string
		want Destination
	}{
		{"flights", DestFlights},
		{"hotels", DestHotels},
		{"tripPlanner", DestTripPlanner},
		{"writerAgent", DestWriterAgent},
		{"generalInput", DestGeneralInput},
		{"", DestGeneralInput},
		{"FLIGHTS", DestGeneralInput},
		{"something else", DestGeneralInput},
	}
	for _, tt := range tests {
		if got := ResolveDestination(tt.raw); got != tt.want {
			t.Errorf("ResolveDestination(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestDispatchToFlights(t *testing.T) {
	fs := &stubFlightService{}
	hs := &stubHotelService{}
	chat := &scriptedModel{t: t, steps: []*model.Message{
		model.AssistantMessage("flights", nil), // router
		model.AssistantMessage("search", nil),  // classify
		toolCallMessage("call_0", "extract_flight_search", map[string]any{
			"origin":      "CNF",
			"destination": "GRU",
		}),
		toolCallMessage("call_1", "list-flights", map[string]any{}),
	}}

	runner := buildSupervisor(t, chat, fs, hs)
	final, err := runner.Invoke(context.Background(), State{
		Messages: []*model.Message{model.UserMessage("find flights from CNF to GRU")},
	})
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}

	if final.Next != DestFlights {
		t.Errorf("destination = %q, want flights", final.Next)
	}
	if fs.calls != 1 {
		t.Errorf("flight service called %d times, want 1", fs.calls)
	}
	if hs.calls != 0 {
		t.Errorf("hotel service called %d times, want 0", hs.calls)
	}
	if len(final.UI) != 1 || final.UI[0].ComponentName != flights.ComponentFlightsList {
		t.Errorf("expected flights-list UI, got %+v", final.UI)
	}
	// The user message plus every sub-graph message must survive folding.
	if final.Messages[0].Role != model.User {
		t.Errorf("history head = %+v", final.Messages[0])
	}
	if len(final.Messages) < 4 {
		t.Errorf("expected sub-graph messages folded in, got %d messages", len(final.Messages))
	}
}

func TestDispatchToHotels(t *testing.T) {
	fs := &stubFlightService{}
	hs := &stubHotelService{}
	chat := &scriptedModel{t: t, steps: []*model.Message{
		model.AssistantMessage("hotels", nil), // router
		toolCallMessage("call_0", "extract_hotel_search", map[string]any{"city": "San Francisco"}),
		toolCallMessage("call_1", "list-hotels", map[string]any{"city": "San Francisco"}),
	}}

	runner := buildSupervisor(t, chat, fs, hs)
	final, err := runner.Invoke(context.Background(), State{
		Messages: []*model.Message{model.UserMessage("hotels in San Francisco")},
	})
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}

	if hs.calls != 1 {
		t.Errorf("hotel service called %d times, want 1", hs.calls)
	}
	if len(final.UI) != 1 || final.UI[0].ComponentName != hotels.ComponentHotelsList {
		t.Errorf("expected hotels-list UI, got %+v", final.UI)
	}
}

func TestMalformedRouteFallsBackToGeneralInput(t *testing.T) {
	fs := &stubFlightService{}
	hs := &stubHotelService{}
	chat := &scriptedModel{t: t, steps: []*model.Message{
		model.AssistantMessage("I believe the flights agent fits best", nil), // router, malformed
		model.AssistantMessage("Hello! I can help with flights and hotels.", nil),
	}}

	runner := buildSupervisor(t, chat, fs, hs)
	final, err := runner.Invoke(context.Background(), State{
		Messages: []*model.Message{model.UserMessage("hi")},
	})
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}

	if final.Next != DestGeneralInput {
		t.Errorf("destination = %q, want generalInput", final.Next)
	}
	if fs.calls != 0 || hs.calls != 0 {
		t.Error("domain services must not run for generalInput")
	}
	last := final.Messages[len(final.Messages)-1]
	if last.Role != model.Assistant || last.Content == "" {
		t.Errorf("expected assistant reply, got %+v", last)
	}
}

func TestRouterModelFailureDefaultsToGeneralInput(t *testing.T) {
	fs := &stubFlightService{}
	hs := &stubHotelService{}
	chat := &scriptedModel{
		t:     t,
		steps: []*model.Message{nil, model.AssistantMessage("Hi there!", nil)},
		errs:  []error{errors.New("model unavailable")},
	}

	runner := buildSupervisor(t, chat, fs, hs)
	final, err := runner.Invoke(context.Background(), State{
		Messages: []*model.Message{model.UserMessage("hi")},
	})
	if err != nil {
		t.Fatalf("router failure escaped in non-strict mode: %v", err)
	}
	if final.Next != DestGeneralInput {
		t.Errorf("destination = %q, want generalInput", final.Next)
	}
}
