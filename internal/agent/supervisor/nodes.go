package supervisor

import (
	"context"
	"strings"

	"github.com/RafaelAngelo1999/trip-planner-agent/internal/agent/flights"
	"github.com/RafaelAngelo1999/trip-planner-agent/internal/agent/graph"
	"github.com/RafaelAngelo1999/trip-planner-agent/internal/agent/hotels"
	"github.com/RafaelAngelo1999/trip-planner-agent/internal/agent/model"
	logx "github.com/RafaelAngelo1999/trip-planner-agent/pkg/logger"
)

// toolDescriptions enumerates every destination the router may choose.
const toolDescriptions = `- tripPlanner: helps the user plan their trip. it can suggest restaurants, and places to stay in any given location.
- flights: helps search, book, and cancel flight reservations for the user.
- hotels: helps search and find hotel accommodations for the user.
- writerAgent: can write a text document for the user. Only call this tool if they request a text document.`

const routerPrompt = `You are a supervisor for a travel assistant. Analyze the conversation and decide which specialized agent should handle the user's most recent message.

AVAILABLE AGENTS:
` + toolDescriptions + `
- generalInput: handles greetings, questions about the assistant itself, and anything that does not match the agents above.

ROUTING RULES:
- Respond with ONLY ONE WORD: "flights", "hotels", "tripPlanner", "writerAgent", or "generalInput"
- Consider the full conversation context, not just individual keywords
- If the request is ambiguous or unclear, default to "generalInput"

Conversation History:
`

const generalInputPrompt = `You are a friendly travel assistant. The user's message does not require any specialized agent. Respond helpfully and conversationally, and mention that you can search flights and hotels, plan trips, and write travel documents when relevant.

Conversation History:
`

const tripPlannerPrompt = `You are a trip planning assistant. Based on the conversation, suggest a concise plan for the user's trip: places to stay, restaurants and activities for the given location and dates. Keep the answer practical and well organized.

Conversation History:
`

const writerAgentPrompt = `You are a travel writing assistant. Write the text document the user requested, based on the conversation. Produce only the document content, ready to be used as-is.

Conversation History:
`

type nodes struct {
	model   model.ChatModel
	flights *graph.Runnable[flights.State, flights.Update]
	hotels  *graph.Runnable[hotels.State, hotels.Update]
	strict  bool
}

// Route produces the single routing decision for the turn. Any malformed
// answer, and any model failure in non-strict mode, lands on generalInput.
func (n *nodes) Route(ctx context.Context, state State) (Update, error) {
	resp, err := n.model.Invoke(ctx, []*model.Message{
		model.SystemMessage(routerPrompt + model.FormatHistory(state.Messages)),
	})
	if err != nil {
		if n.strict {
			return Update{}, err
		}
		logx.Warn().Err(err).Msg("supervisor routing model call failed; defaulting to generalInput")
		return Update{Next: DestGeneralInput}, nil
	}

	dest := ResolveDestination(strings.TrimSpace(resp.Content))
	logx.Debug().Str("raw", resp.Content).Str("destination", string(dest)).Msg("Supervisor routed turn")
	return Update{Next: dest}, nil
}

// Flights runs the flights sub-graph over a projection of the supervisor
// state and folds its outputs back into the turn.
func (n *nodes) Flights(ctx context.Context, state State) (Update, error) {
	sub, err := n.flights.Invoke(ctx, flights.State{
		Messages:  state.Messages,
		UI:        state.UI,
		Timestamp: state.Timestamp,
	})
	if err != nil {
		return Update{}, err
	}
	return Update{
		Messages:  sub.Messages[len(state.Messages):],
		UI:        upserts(sub.UI),
		Timestamp: sub.Timestamp,
	}, nil
}

// Hotels runs the hotels sub-graph over a projection of the supervisor
// state and folds its outputs back into the turn.
func (n *nodes) Hotels(ctx context.Context, state State) (Update, error) {
	sub, err := n.hotels.Invoke(ctx, hotels.State{
		Messages:  state.Messages,
		UI:        state.UI,
		Timestamp: state.Timestamp,
	})
	if err != nil {
		return Update{}, err
	}
	return Update{
		Messages:  sub.Messages[len(state.Messages):],
		UI:        upserts(sub.UI),
		Timestamp: sub.Timestamp,
	}, nil
}

func (n *nodes) TripPlanner(ctx context.Context, state State) (Update, error) {
	return n.respond(ctx, state, tripPlannerPrompt, "trip planner")
}

func (n *nodes) GeneralInput(ctx context.Context, state State) (Update, error) {
	return n.respond(ctx, state, generalInputPrompt, "general input")
}

func (n *nodes) WriterAgent(ctx context.Context, state State) (Update, error) {
	return n.respond(ctx, state, writerAgentPrompt, "writer agent")
}

const modelFailureNotice = "Sorry, I was unable to process that request right now. Please try again."

// respond is the shared shape of the leaf agents: one model call, one
// assistant message, no tools and no UI.
func (n *nodes) respond(ctx context.Context, state State, prompt, name string) (Update, error) {
	resp, err := n.model.Invoke(ctx, []*model.Message{
		model.SystemMessage(prompt + model.FormatHistory(state.Messages)),
	})
	if err != nil {
		if n.strict {
			return Update{}, err
		}
		logx.Warn().Err(err).Str("agent", name).Msg("leaf agent model call failed")
		return Update{Messages: []*model.Message{model.AssistantMessage(modelFailureNotice, nil)}}, nil
	}
	return Update{Messages: []*model.Message{resp}}, nil
}

// upserts converts a sub-graph's final UI list into idempotent upsert
// updates for the supervisor reducer.
func upserts(directives []model.UIDirective) []model.UIUpdate {
	out := make([]model.UIUpdate, 0, len(directives))
	for _, d := range directives {
		out = append(out, model.UpsertUI(d))
	}
	return out
}
