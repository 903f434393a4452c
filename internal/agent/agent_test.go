package agent

import (
	"context"
	"testing"

	"github.com/RafaelAngelo1999/trip-planner-agent/internal/agent/flights"
	"github.com/RafaelAngelo1999/trip-planner-agent/internal/agent/hotels"
	"github.com/RafaelAngelo1999/trip-planner-agent/internal/agent/model"
	"github.com/RafaelAngelo1999/trip-planner-agent/internal/agent/supervisor"
)

type memoryRepo struct {
	conversations map[string][]*model.Message
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{conversations: make(map[string][]*model.Message)}
}

func (r *memoryRepo) AddMessages(ctx context.Context, conversationID string, messages ...*model.Message) error {
	r.conversations[conversationID] = append(r.conversations[conversationID], messages...)
	return nil
}

func (r *memoryRepo) LoadHistory(ctx context.Context, conversationID string) ([]*model.Message, error) {
	return r.conversations[conversationID], nil
}

func (r *memoryRepo) ClearHistory(ctx context.Context, conversationID string) error {
	delete(r.conversations, conversationID)
	return nil
}

func (r *memoryRepo) MessageCount(ctx context.Context, conversationID string) (int, error) {
	return len(r.conversations[conversationID]), nil
}

type scriptedModel struct {
	t     *testing.T
	steps []*model.Message
	idx   int
}

func (m *scriptedModel) Invoke(ctx context.Context, msgs []*model.Message, tools ...model.ToolSchema) (*model.Message, error) {
	if m.idx >= len(m.steps) {
		m.t.Fatalf("model invoked %d times, only %d responses scripted", m.idx+1, len(m.steps))
	}
	resp := m.steps[m.idx]
	m.idx++
	return resp, nil
}

type noopFlightService struct{}

func (noopFlightService) ListFlights(ctx context.Context, params flights.SearchParams) ([]flights.Itinerary, error) {
	return nil, nil
}

func (noopFlightService) BookFlight(ctx context.Context, params flights.BookingParams) (flights.Booking, error) {
	return flights.Booking{}, nil
}

func (noopFlightService) CancelFlight(ctx context.Context, params flights.CancellationParams) (flights.Cancellation, error) {
	return flights.Cancellation{}, nil
}

type noopHotelService struct{}

func (noopHotelService) ListHotels(ctx context.Context, params hotels.SearchParams) ([]hotels.Hotel, error) {
	return nil, nil
}

func buildAssistant(t *testing.T, chat model.ChatModel, conversations *memoryRepo) *Assistant {
	t.Helper()
	fg, err := flights.NewGraph(flights.Config{Model: chat, Service: noopFlightService{}})
	if err != nil {
		t.Fatalf("build flights graph: %v", err)
	}
	hg, err := hotels.NewGraph(hotels.Config{Model: chat, Service: noopHotelService{}})
	if err != nil {
		t.Fatalf("build hotels graph: %v", err)
	}
	sv, err := supervisor.NewGraph(supervisor.Config{Model: chat, Flights: fg, Hotels: hg})
	if err != nil {
		t.Fatalf("build supervisor graph: %v", err)
	}
	return NewAssistant(sv, conversations)
}

func TestProcessTurnPersistsHistory(t *testing.T) {
	conversations := newMemoryRepo()
	chat := &scriptedModel{t: t, steps: []*model.Message{
		model.AssistantMessage("generalInput", nil),
		model.AssistantMessage("Hello! I can help you plan trips.", nil),
	}}

	assistant := buildAssistant(t, chat, conversations)

	result, err := assistant.ProcessTurn(context.Background(), "conv-1", "hi there")
	if err != nil {
		t.Fatalf("ProcessTurn: %v", err)
	}

	if result.Reply != "Hello! I can help you plan trips." {
		t.Errorf("reply = %q", result.Reply)
	}

	stored := conversations.conversations["conv-1"]
	if len(stored) != 2 {
		t.Fatalf("stored %d messages, want 2 (user + assistant)", len(stored))
	}
	if stored[0].Role != model.User || stored[0].Content != "hi there" {
		t.Errorf("stored[0] = %+v", stored[0])
	}
	if stored[1].Role != model.Assistant {
		t.Errorf("stored[1] = %+v", stored[1])
	}
}

func TestProcessTurnSeedsFromHistory(t *testing.T) {
	conversations := newMemoryRepo()
	conversations.conversations["conv-1"] = []*model.Message{
		model.UserMessage("earlier question"),
		model.AssistantMessage("earlier answer", nil),
	}

	chat := &scriptedModel{t: t, steps: []*model.Message{
		model.AssistantMessage("generalInput", nil),
		model.AssistantMessage("Following up on that.", nil),
	}}

	assistant := buildAssistant(t, chat, conversations)

	result, err := assistant.ProcessTurn(context.Background(), "conv-1", "and another thing")
	if err != nil {
		t.Fatalf("ProcessTurn: %v", err)
	}

	// Only the new turn's messages are appended; history stays intact.
	if len(result.NewMessages) != 2 {
		t.Errorf("new messages = %d, want 2", len(result.NewMessages))
	}
	if total := len(conversations.conversations["conv-1"]); total != 4 {
		t.Errorf("stored %d messages, want 4", total)
	}
}

func TestLastReplySkipsInternalMessages(t *testing.T) {
	messages := []*model.Message{
		model.UserMessage("book it"),
		model.AssistantMessage("visible answer", nil),
		model.ToolMessage("Tool book-flight executed successfully", "call_0"),
	}

	if got := lastReply(messages); got != "visible answer" {
		t.Errorf("lastReply = %q, want visible answer", got)
	}

	if got := lastReply([]*model.Message{model.UserMessage("hi")}); got != "" {
		t.Errorf("lastReply = %q, want empty", got)
	}
}
