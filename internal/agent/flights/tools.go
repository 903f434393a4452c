package flights

import (
	"context"
	"errors"
	"fmt"

	"github.com/RafaelAngelo1999/trip-planner-agent/internal/agent/model"
	logx "github.com/RafaelAngelo1999/trip-planner-agent/pkg/logger"
)

const callToolsPrompt = `You are an AI assistant that helps users with flight bookings. Use the user's most recent messages to contextually generate a response and call the appropriate tools based on the extracted parameters.

Conversation History:
`

// CallTools asks the model which flight tool to run, executes every
// recognized call against the service, and emits one UI directive plus one
// tool-result message per call. Failures never escape the node: the first
// failure voids the batch and becomes a single error-content tool message
// keyed to the response's first tool-call id, so the turn still terminates
// cleanly.
func (n *nodes) CallTools(ctx context.Context, state State) (Update, error) {
	resp, err := n.model.Invoke(ctx, []*model.Message{
		model.SystemMessage(callToolsPrompt + model.FormatHistory(state.Messages)),
	}, flightToolSchemas...)
	if err != nil {
		if n.strict {
			return Update{}, err
		}
		logx.Warn().Err(err).Msg("flight tool selection model call failed")
		return modelFailureUpdate(), nil
	}

	if len(resp.ToolCalls) == 0 {
		return Update{Messages: []*model.Message{resp}, Timestamp: n.now()}, nil
	}

	update := Update{Messages: []*model.Message{resp}, Timestamp: n.now()}
	matched := false
	for _, tc := range resp.ToolCalls {
		var (
			result model.UIDirective
			msg    *model.Message
			runErr error
		)
		switch tc.Name {
		case toolListFlights:
			matched = true
			result, msg, runErr = n.runListFlights(ctx, state, tc)
		case toolBookFlight:
			matched = true
			result, msg, runErr = n.runBookFlight(ctx, state, tc)
		case toolCancelFlight:
			matched = true
			result, msg, runErr = n.runCancelFlight(ctx, state, tc)
		default:
			update.Messages = append(update.Messages,
				model.ToolMessage("Tool call processed - no matching flight tool", tc.ID))
			continue
		}
		if runErr != nil {
			logx.Warn().Err(runErr).Str("tool", tc.Name).Msg("flight tool execution failed")
			return Update{Messages: []*model.Message{
				resp,
				model.ToolMessage("Error: "+runErr.Error(), resp.ToolCalls[0].ID),
			}}, nil
		}
		update.UI = append(update.UI, model.UpsertUI(result))
		update.Messages = append(update.Messages, msg)
	}

	if !matched {
		logx.Debug().Int("calls", len(resp.ToolCalls)).Msg("no recognized flight tool in model response")
	}
	return update, nil
}

func (n *nodes) runListFlights(ctx context.Context, state State, tc model.ToolCall) (model.UIDirective, *model.Message, error) {
	if state.SearchParams == nil {
		return model.UIDirective{}, nil, errors.New("Flight search parameters were not extracted")
	}
	// The extracted slot is authoritative; the model's tool-call arguments
	// are ignored so the service sees exactly what extraction validated.
	params := *state.SearchParams

	flights, err := n.svc.ListFlights(ctx, params)
	if err != nil {
		return model.UIDirective{}, nil, err
	}
	return model.UIDirective{
		ID:            tc.ID,
		ComponentName: ComponentFlightsList,
		Props: FlightsListProps{
			ToolCallID:   tc.ID,
			Flights:      flights,
			SearchParams: params,
		},
	}, model.ToolMessage(fmt.Sprintf("Tool %s executed successfully", tc.Name), tc.ID), nil
}

func (n *nodes) runBookFlight(ctx context.Context, state State, tc model.ToolCall) (model.UIDirective, *model.Message, error) {
	if state.BookingParams == nil {
		return model.UIDirective{}, nil, errors.New("Flight booking parameters were not extracted")
	}
	booking, err := n.svc.BookFlight(ctx, BookingParams{
		ItineraryID: state.BookingParams.ItineraryID,
		Passenger: Passenger{
			FullName: state.BookingParams.FullName,
			Email:    state.BookingParams.Email,
		},
	})
	if err != nil {
		return model.UIDirective{}, nil, err
	}
	return model.UIDirective{
		ID:            tc.ID,
		ComponentName: ComponentBookingConfirmation,
		Props: BookingConfirmationProps{
			ToolCallID: tc.ID,
			Booking:    booking,
		},
	}, model.ToolMessage(fmt.Sprintf("Tool %s executed successfully", tc.Name), tc.ID), nil
}

func (n *nodes) runCancelFlight(ctx context.Context, state State, tc model.ToolCall) (model.UIDirective, *model.Message, error) {
	if state.CancellationParams == nil {
		return model.UIDirective{}, nil, errors.New("Flight cancellation parameters were not extracted")
	}
	cancellation, err := n.svc.CancelFlight(ctx, *state.CancellationParams)
	if err != nil {
		return model.UIDirective{}, nil, err
	}
	return model.UIDirective{
		ID:            tc.ID,
		ComponentName: ComponentCancellationConfirmation,
		Props: CancellationConfirmationProps{
			ToolCallID:   tc.ID,
			Cancellation: cancellation,
		},
	}, model.ToolMessage(fmt.Sprintf("Tool %s executed successfully", tc.Name), tc.ID), nil
}
