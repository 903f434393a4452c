package hotels

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/RafaelAngelo1999/trip-planner-agent/internal/agent/dates"
	"github.com/RafaelAngelo1999/trip-planner-agent/internal/agent/model"
	logx "github.com/RafaelAngelo1999/trip-planner-agent/pkg/logger"
)

const extractionPrompt = `You are an AI assistant for hotel booking. The user wants to search for hotels.
Extract the following information from the user's request:
- city - City where to search for hotels
- checkin - Check-in date in YYYY-MM-DD format (optional)
- checkout - Check-out date in YYYY-MM-DD format (optional)
- rooms - Number of desired rooms (optional, default 1)
- withBreakfast - If they want to include breakfast (optional)
- refundableOnly - If they want only hotels with free cancellation (optional)

You have access to the COMPLETE CONVERSATION HISTORY. Use these messages to extract the necessary information.

DO NOT make up information. If the user has NOT specified the city, respond with a request to specify this mandatory information.
It should be a single sentence, like "Please specify the city where you would like to stay".

Extract only what was specified by the user. It's ok to leave fields blank if the user didn't specify them.

Conversation History:
`

type searchArgs struct {
	City           string `json:"city"`
	Checkin        string `json:"checkin"`
	Checkout       string `json:"checkout"`
	Rooms          int    `json:"rooms"`
	WithBreakfast  bool   `json:"withBreakfast"`
	RefundableOnly bool   `json:"refundableOnly"`
}

// ExtractSearch asks the model for hotel search parameters. The parameter
// slot is only written when the city is present; otherwise the model's own
// clarification terminates the turn.
func (n *nodes) ExtractSearch(ctx context.Context, state State) (Update, error) {
	resp, err := n.model.Invoke(ctx, []*model.Message{
		model.SystemMessage(extractionPrompt + model.FormatHistory(state.Messages)),
	}, searchExtractionSchema)
	if err != nil {
		if n.strict {
			return Update{}, err
		}
		logx.Warn().Err(err).Msg("hotel search extraction model call failed")
		return modelFailureUpdate(), nil
	}

	tc, ok := model.FirstToolCall(resp.ToolCalls, toolExtractSearch)
	if !ok {
		if len(resp.ToolCalls) > 0 {
			results := placeholderResults(resp.ToolCalls, "Tool call processed - no extraction needed")
			return Update{Messages: append([]*model.Message{resp}, results...)}, nil
		}
		return Update{Messages: []*model.Message{resp}}, nil
	}

	var args searchArgs
	if err := json.Unmarshal(tc.Arguments, &args); err != nil {
		messages := []*model.Message{resp}
		for _, call := range resp.ToolCalls {
			if call.ID == tc.ID {
				messages = append(messages, model.ToolMessage("Error: "+fmt.Sprintf("decode %s arguments: %v", tc.Name, err), tc.ID))
				continue
			}
			messages = append(messages, model.ToolMessage("Tool call processed - no extraction needed", call.ID))
		}
		return Update{Messages: messages}, nil
	}

	if strings.TrimSpace(args.City) == "" {
		return Update{Messages: []*model.Message{
			resp,
			model.ToolMessage("Please specify the city where you would like to stay", tc.ID),
		}}, nil
	}

	checkin, checkout := dates.InferRange(n.now(), args.Checkin, args.Checkout)
	rooms := args.Rooms
	if rooms < 1 {
		rooms = 1
	}
	if rooms > 10 {
		rooms = 10
	}

	return Update{
		Messages: []*model.Message{
			resp,
			model.ToolMessage("Hotel search parameters extracted successfully", tc.ID),
		},
		SearchParams: &SearchParams{
			City:           args.City,
			Checkin:        checkin,
			Checkout:       checkout,
			Rooms:          rooms,
			WithBreakfast:  args.WithBreakfast,
			RefundableOnly: args.RefundableOnly,
		},
	}, nil
}
