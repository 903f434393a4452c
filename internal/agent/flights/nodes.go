package flights

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/RafaelAngelo1999/trip-planner-agent/internal/agent/model"
)

// nodes bundles the collaborators shared by every flight node.
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

// decodeArgs validates and casts a tool call's arguments into the expected
// shape once, at the boundary.
func decodeArgs[T any](tc model.ToolCall) (T, error) {
	var out T
	if len(tc.Arguments) == 0 {
		return out, fmt.Errorf("tool call %s has no arguments", tc.Name)
	}
	if err := json.Unmarshal(tc.Arguments, &out); err != nil {
		return out, fmt.Errorf("decode %s arguments: %w", tc.Name, err)
	}
	return out, nil
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

// toolFailureResults records a tool-call decode failure as the result for
// the failing call and synthesizes placeholder results for any other calls
// in the response, so every tool-call id keeps a matching result.
func toolFailureResults(resp *model.Message, toolCallID string, err error) []*model.Message {
	out := make([]*model.Message, 0, 1+len(resp.ToolCalls))
	out = append(out, resp)
	for _, tc := range resp.ToolCalls {
		if tc.ID == toolCallID {
			out = append(out, model.ToolMessage("Error: "+err.Error(), tc.ID))
			continue
		}
		out = append(out, model.ToolMessage("Tool call processed - no extraction needed", tc.ID))
	}
	return out
}

// modelFailure is the non-strict fallback when the language-model call
// itself fails at a classification or extraction node: surface a plain
// message and let the graph terminate.
const modelFailureNotice = "Sorry, I was unable to process that request right now. Please try again."

func modelFailureUpdate() Update {
	return Update{Messages: []*model.Message{model.AssistantMessage(modelFailureNotice, nil)}}
}
