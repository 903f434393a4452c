package model

import "testing"

func TestApplyUIUpsert(t *testing.T) {
	existing := []UIDirective{
		{ID: "a", ComponentName: "flights-list"},
		{ID: "b", ComponentName: "hotels-list"},
	}

	out := ApplyUI(existing, []UIUpdate{
		UpsertUI(UIDirective{ID: "a", ComponentName: "flights-list", Props: "updated"}),
		UpsertUI(UIDirective{ID: "c", ComponentName: "flight-booking-confirmation"}),
	})

	if len(out) != 3 {
		t.Fatalf("expected 3 directives, got %d", len(out))
	}
	if out[0].ID != "a" || out[0].Props != "updated" {
		t.Errorf("upsert did not replace in place: %+v", out[0])
	}
	if out[1].ID != "b" {
		t.Errorf("insertion order not preserved: %+v", out[1])
	}
	if out[2].ID != "c" {
		t.Errorf("new directive not appended: %+v", out[2])
	}
}

func TestApplyUIRemove(t *testing.T) {
	existing := []UIDirective{
		{ID: "a"},
		{ID: "b"},
	}

	out := ApplyUI(existing, []UIUpdate{RemoveUI("a"), RemoveUI("missing")})

	if len(out) != 1 || out[0].ID != "b" {
		t.Fatalf("expected only directive b to survive, got %+v", out)
	}
}

func TestApplyUIDoesNotMutateInput(t *testing.T) {
	existing := []UIDirective{{ID: "a", Props: "original"}}

	ApplyUI(existing, []UIUpdate{
		UpsertUI(UIDirective{ID: "a", Props: "changed"}),
	})

	if existing[0].Props != "original" {
		t.Fatal("ApplyUI mutated its input slice")
	}
}

func TestFirstToolCall(t *testing.T) {
	calls := []ToolCall{
		{ID: "call_0", Name: "extract_flight_search"},
		{ID: "call_1", Name: "list-flights"},
		{ID: "call_2", Name: "list-flights"},
	}

	tc, ok := FirstToolCall(calls, "list-flights")
	if !ok || tc.ID != "call_1" {
		t.Fatalf("expected first list-flights call call_1, got %+v ok=%v", tc, ok)
	}

	if _, ok := FirstToolCall(calls, "book-flight"); ok {
		t.Fatal("expected no match for book-flight")
	}
}
