// Package agent exposes the conversational assistant: one ProcessTurn call
// per user utterance, backed by the supervisor graph and a persistent
// conversation repository.
package agent

import (
	"context"
	"strings"
	"time"

	"github.com/RafaelAngelo1999/trip-planner-agent/internal/agent/graph"
	"github.com/RafaelAngelo1999/trip-planner-agent/internal/agent/model"
	"github.com/RafaelAngelo1999/trip-planner-agent/internal/agent/repo"
	"github.com/RafaelAngelo1999/trip-planner-agent/internal/agent/supervisor"
	logx "github.com/RafaelAngelo1999/trip-planner-agent/pkg/logger"
)

type Assistant struct {
	supervisor *graph.Runnable[supervisor.State, supervisor.Update]
	repo       repo.ConversationRepository
}

func NewAssistant(sv *graph.Runnable[supervisor.State, supervisor.Update], conversations repo.ConversationRepository) *Assistant {
	return &Assistant{supervisor: sv, repo: conversations}
}

// TurnResult is what one user turn produced.
type TurnResult struct {
	// Reply is the last renderable assistant message of the turn, empty
	// when the turn produced only UI directives or internal bookkeeping.
	Reply string

	// NewMessages are the messages added this turn, user message included,
	// in traversal order.
	NewMessages []*model.Message

	// UI is the full UI directive list after the turn's reducers ran.
	UI []model.UIDirective

	Timestamp time.Time
}

// ProcessTurn loads the conversation history, runs the supervisor graph over
// it plus the new user message, and persists everything the turn appended.
func (a *Assistant) ProcessTurn(ctx context.Context, conversationID, query string) (*TurnResult, error) {
	history, err := a.repo.LoadHistory(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	seed := supervisor.State{
		Messages: model.AppendMessages(history, []*model.Message{model.UserMessage(query)}),
	}

	final, err := a.supervisor.Invoke(ctx, seed)
	if err != nil {
		return nil, err
	}

	newMessages := final.Messages[len(history):]
	if err := a.repo.AddMessages(ctx, conversationID, newMessages...); err != nil {
		// The turn already ran; losing persistence degrades future context
		// but the reply is still valid.
		logx.Error().Err(err).Str("conversationID", conversationID).Msg("failed to persist turn messages")
	}

	return &TurnResult{
		Reply:       lastReply(newMessages),
		NewMessages: newMessages,
		UI:          final.UI,
		Timestamp:   final.Timestamp,
	}, nil
}

// lastReply picks the closing user-visible assistant content of a turn.
// Internal bookkeeping messages and raw classifier output never qualify.
func lastReply(messages []*model.Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		m := messages[i]
		if m.Role != model.Assistant {
			continue
		}
		if strings.HasPrefix(m.ID, model.InternalIDPrefix) {
			continue
		}
		if strings.TrimSpace(m.Content) == "" {
			continue
		}
		return m.Content
	}
	return ""
}
