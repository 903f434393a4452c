package hotels

import (
	"time"

	"github.com/RafaelAngelo1999/trip-planner-agent/internal/agent/model"
)

type nodes struct {
	model  model.ChatModel
	svc    Service
	now    func() time.Time
	strict bool
}

func newNodes(cfg Config) *nodes {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &nodes{
		model:  cfg.Model,
		svc:    cfg.Service,
		now:    now,
		strict: cfg.StrictModelErrors,
	}
}

const modelFailureNotice = "Sorry, I was unable to process that request right now. Please try again."

func modelFailureUpdate() Update {
	return Update{Messages: []*model.Message{model.AssistantMessage(modelFailureNotice, nil)}}
}

// placeholderResults synthesizes one tool-result message per tool call so
// that every tool-call id keeps a corresponding result in the sequence.
func placeholderResults(calls []model.ToolCall, content string) []*model.Message {
	out := make([]*model.Message, 0, len(calls))
	for _, tc := range calls {
		out = append(out, model.ToolMessage(content, tc.ID))
	}
	return out
}
