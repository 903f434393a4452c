package hotels

import (
	"context"
	"errors"
	"fmt"

	"github.com/RafaelAngelo1999/trip-planner-agent/internal/agent/model"
	logx "github.com/RafaelAngelo1999/trip-planner-agent/pkg/logger"
)

const callToolsPrompt = `You are an AI assistant that helps users with hotel bookings. Use the user's most recent messages to contextually generate a response and call the appropriate tools based on the extracted parameters.

Conversation History:
`

// CallTools asks the model to invoke the hotel search tool and executes it
// against the service. Failures become an error-content tool message so the
// turn always terminates cleanly.
func (n *nodes) CallTools(ctx context.Context, state State) (Update, error) {
	resp, err := n.model.Invoke(ctx, []*model.Message{
		model.SystemMessage(callToolsPrompt + model.FormatHistory(state.Messages)),
	}, hotelToolSchemas...)
	if err != nil {
		if n.strict {
			return Update{}, err
		}
		logx.Warn().Err(err).Msg("hotel tool selection model call failed")
		return modelFailureUpdate(), nil
	}

	tc, ok := model.FirstToolCall(resp.ToolCalls, toolListHotels)
	if !ok {
		if len(resp.ToolCalls) > 0 {
			results := placeholderResults(resp.ToolCalls, "Tool call processed - no matching hotel tool")
			return Update{Messages: append([]*model.Message{resp}, results...)}, nil
		}
		return Update{Messages: []*model.Message{resp}}, nil
	}

	hotels, err := n.listHotels(ctx, state)
	if err != nil {
		logx.Warn().Err(err).Str("tool", tc.Name).Msg("hotel tool execution failed")
		// The error result is keyed to the response's first tool-call id,
		// the same id the rendering layer pairs the batch with.
		return Update{Messages: []*model.Message{
			resp,
			model.ToolMessage("Error: "+err.Error(), resp.ToolCalls[0].ID),
		}}, nil
	}

	messages := []*model.Message{resp}
	for _, call := range resp.ToolCalls {
		if call.ID == tc.ID {
			messages = append(messages, model.ToolMessage(fmt.Sprintf("Tool %s executed successfully", tc.Name), tc.ID))
			continue
		}
		messages = append(messages, model.ToolMessage("Tool call processed - no matching hotel tool", call.ID))
	}

	return Update{
		Messages: messages,
		UI: []model.UIUpdate{model.UpsertUI(model.UIDirective{
			ID:            tc.ID,
			ComponentName: ComponentHotelsList,
			Props: HotelsListProps{
				ToolCallID:   tc.ID,
				Hotels:       hotels,
				SearchParams: *state.SearchParams,
			},
		})},
		Timestamp: n.now(),
	}, nil
}

func (n *nodes) listHotels(ctx context.Context, state State) ([]Hotel, error) {
	if state.SearchParams == nil {
		return nil, errors.New("Search parameters were not extracted")
	}
	return n.svc.ListHotels(ctx, *state.SearchParams)
}
