package hotels

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/RafaelAngelo1999/trip-planner-agent/internal/agent/model"
)

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

func toolCallMessage(id, name string, args any) *model.Message {
	raw, _ := json.Marshal(args)
	return model.AssistantMessage("", []model.ToolCall{
		{ID: id, Name: name, Arguments: raw},
	})
}

type stubService struct {
	calls  int
	params SearchParams
	result []Hotel
}

func (s *stubService) ListHotels(ctx context.Context, params SearchParams) ([]Hotel, error) {
	s.calls++
	s.params = params
	return s.result, nil
}

func fixedNow() time.Time {
	return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

func TestSearchTurnProducesHotelsListUI(t *testing.T) {
	svc := &stubService{
		result: []Hotel{{HotelID: "bh-001", Name: "Tryp Savassi", Rating: 4.6}},
	}
	chat := &scriptedModel{t: t, steps: []*model.Message{
		toolCallMessage("call_0", "extract_hotel_search", map[string]any{
			"city":          "Belo Horizonte",
			"checkin":       "2026-04-10",
			"withBreakfast": true,
		}),
		toolCallMessage("call_1", "list-hotels", map[string]any{"city": "Belo Horizonte"}),
	}}

	g, err := NewGraph(Config{Model: chat, Service: svc, Now: fixedNow})
	if err != nil {
		t.Fatalf("build graph: %v", err)
	}

	final, err := g.Invoke(context.Background(), State{
		Messages: []*model.Message{model.UserMessage("hotels in Belo Horizonte with breakfast")},
	})
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}

	if svc.calls != 1 {
		t.Fatalf("ListHotels called %d times, want 1", svc.calls)
	}
	if svc.params.Checkin != "2026-04-10" || svc.params.Checkout != "2026-04-17" {
		t.Errorf("inferred checkout = %q/%q", svc.params.Checkin, svc.params.Checkout)
	}
	if svc.params.Rooms != 1 {
		t.Errorf("rooms default = %d, want 1", svc.params.Rooms)
	}
	if !svc.params.WithBreakfast {
		t.Error("breakfast preference dropped")
	}

	if len(final.UI) != 1 {
		t.Fatalf("expected 1 UI directive, got %d", len(final.UI))
	}
	ui := final.UI[0]
	if ui.ComponentName != ComponentHotelsList || ui.ID != "call_1" {
		t.Errorf("UI directive = %+v", ui)
	}
	props := ui.Props.(HotelsListProps)
	if props.ToolCallID != "call_1" || len(props.Hotels) != 1 {
		t.Errorf("props = %+v", props)
	}
}

func TestMissingCityShortCircuits(t *testing.T) {
	svc := &stubService{}
	chat := &scriptedModel{t: t, steps: []*model.Message{
		toolCallMessage("call_0", "extract_hotel_search", map[string]any{"checkin": "2026-04-10"}),
	}}

	g, err := NewGraph(Config{Model: chat, Service: svc, Now: fixedNow})
	if err != nil {
		t.Fatalf("build graph: %v", err)
	}

	final, err := g.Invoke(context.Background(), State{
		Messages: []*model.Message{model.UserMessage("I need a hotel")},
	})
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}

	if svc.calls != 0 {
		t.Errorf("ListHotels called %d times, want 0", svc.calls)
	}
	if final.SearchParams != nil {
		t.Error("search slot set despite missing city")
	}

	found := false
	for _, m := range final.Messages {
		if m.Role == model.Tool && m.ToolCallID == "call_0" {
			found = true
			if m.Content != "Please specify the city where you would like to stay" {
				t.Errorf("clarification = %q", m.Content)
			}
		}
	}
	if !found {
		t.Error("no tool result appended for the unmatched extraction call")
	}
}

func TestExtractionPlaceholdersForUnrelatedToolCalls(t *testing.T) {
	svc := &stubService{}
	chat := &scriptedModel{t: t, steps: []*model.Message{
		toolCallMessage("call_9", "some_other_tool", map[string]any{}),
	}}

	g, err := NewGraph(Config{Model: chat, Service: svc, Now: fixedNow})
	if err != nil {
		t.Fatalf("build graph: %v", err)
	}

	final, err := g.Invoke(context.Background(), State{
		Messages: []*model.Message{model.UserMessage("hotels please")},
	})
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}

	if svc.calls != 0 {
		t.Errorf("ListHotels called %d times, want 0", svc.calls)
	}
	found := false
	for _, m := range final.Messages {
		if m.Role == model.Tool && m.ToolCallID == "call_9" {
			found = true
			if m.Content != "Tool call processed - no extraction needed" {
				t.Errorf("placeholder content = %q", m.Content)
			}
		}
	}
	if !found {
		t.Error("no tool-result message for unrelated tool call id call_9")
	}
}

func TestClarificationWithoutToolCallTerminates(t *testing.T) {
	svc := &stubService{}
	chat := &scriptedModel{t: t, steps: []*model.Message{
		model.AssistantMessage("Please specify the city where you would like to stay", nil),
	}}

	g, err := NewGraph(Config{Model: chat, Service: svc, Now: fixedNow})
	if err != nil {
		t.Fatalf("build graph: %v", err)
	}

	final, err := g.Invoke(context.Background(), State{
		Messages: []*model.Message{model.UserMessage("find me a hotel")},
	})
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}

	if svc.calls != 0 {
		t.Errorf("ListHotels called %d times, want 0", svc.calls)
	}
	last := final.Messages[len(final.Messages)-1]
	if last.Role != model.Assistant || last.Content == "" {
		t.Errorf("expected clarification as final message, got %+v", last)
	}
}

func TestRoomsClampedToRange(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, 1},
		{-3, 1},
		{5, 5},
		{25, 10},
	}

	for _, tt := range tests {
		svc := &stubService{}
		chat := &scriptedModel{t: t, steps: []*model.Message{
			toolCallMessage("call_0", "extract_hotel_search", map[string]any{
				"city":  "San Francisco",
				"rooms": tt.in,
			}),
			toolCallMessage("call_1", "list-hotels", map[string]any{"city": "San Francisco"}),
		}}

		g, err := NewGraph(Config{Model: chat, Service: svc, Now: fixedNow})
		if err != nil {
			t.Fatalf("build graph: %v", err)
		}
		if _, err := g.Invoke(context.Background(), State{
			Messages: []*model.Message{model.UserMessage("hotels")},
		}); err != nil {
			t.Fatalf("invoke: %v", err)
		}
		if svc.params.Rooms != tt.want {
			t.Errorf("rooms %d clamped to %d, want %d", tt.in, svc.params.Rooms, tt.want)
		}
	}
}
