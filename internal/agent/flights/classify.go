package flights

import (
	"context"
	"strings"

	"github.com/RafaelAngelo1999/trip-planner-agent/internal/agent/model"
	logx "github.com/RafaelAngelo1999/trip-planner-agent/pkg/logger"
)

const classifyPrompt = `You are a specialized AI assistant for flight intent classification with expertise in natural language understanding and travel domain knowledge.

Your role is to analyze the user's most recent message in the conversation context and accurately determine their primary flight-related intention.

INTENT CATEGORIES:

1. "search" - User wants to SEARCH/FIND flights
   Examples:
   - "I want to find flights from New York to London"
   - "Show me available flights for next week"
   - "Search for cheap flights to Paris"
   - "What flights are available from CNF to GRU?"

2. "book" - User wants to BOOK/PURCHASE a specific flight
   Examples:
   - "I want to reserve this flight"
   - "Book flight CNF-GRU-001"
   - "Reserve this ticket for me"
   - "Purchase the 6:30 AM departure"

3. "cancel" - User wants to CANCEL an existing reservation
   Examples:
   - "Cancel my reservation"
   - "I need to cancel flight PNR ABC123"
   - "I want to cancel my trip"
   - "Remove my reservation with PNR XYZ789"

CLASSIFICATION RULES:
- Respond with ONLY ONE WORD: "search", "book", or "cancel"
- Consider the full conversation context, not just individual keywords
- If intent is ambiguous or unclear, default to "search"
- Pay attention to specific flight codes, PNR numbers, or price references for booking/cancellation
- Look for action words like "find", "book", "cancel", "reserve", "purchase"

Conversation History:
`

// Classify runs single-shot intent classification over the conversation.
// Any answer outside the allowed set, including malformed or empty output,
// resolves to search: the most reversible downstream path.
func (n *nodes) Classify(ctx context.Context, state State) (Update, error) {
	prompt := classifyPrompt + model.FormatHistory(state.Messages)

	resp, err := n.model.Invoke(ctx, []*model.Message{model.SystemMessage(prompt)})
	if err != nil {
		if n.strict {
			return Update{}, err
		}
		logx.Warn().Err(err).Msg("Intent classification model call failed; defaulting to search")
		return Update{Intent: IntentSearch, Messages: []*model.Message{model.AssistantMessage(modelFailureNotice, nil)}}, nil
	}

	intent := ResolveIntent(resp.Content)
	logx.Debug().Str("raw", resp.Content).Str("intent", string(intent)).Msg("Flight intent classified")

	// The raw response joins the message sequence as part of the audit
	// trail even though the user never sees it directly.
	return Update{Intent: intent, Messages: []*model.Message{resp}}, nil
}

// ResolveIntent normalizes a raw model answer and validates membership in
// the allowed intent set, defaulting to search on anything else.
func ResolveIntent(raw string) Intent {
	switch Intent(strings.ToLower(strings.TrimSpace(raw))) {
	case IntentSearch:
		return IntentSearch
	case IntentBook:
		return IntentBook
	case IntentCancel:
		return IntentCancel
	default:
		return IntentSearch
	}
}
