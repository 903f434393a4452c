package model

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

// Role identifies who produced a conversation message.
type Role string

const (
	System    Role = "system"
	User      Role = "user"
	Assistant Role = "assistant"
	Tool      Role = "tool"
)

// InternalIDPrefix marks messages that exist only for protocol bookkeeping
// (synthesized tool results) and must never be rendered to the user.
const InternalIDPrefix = "internal:"

// ToolCall is a structured invocation proposed by the language model. It is
// ephemeral: produced by one node and consumed by the immediately following
// logic, never stored on state directly.
type ToolCall struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// Message is a single conversation turn.
type Message struct {
	ID         string     `json:"id,omitempty"`
	Role       Role       `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

func SystemMessage(content string) *Message {
	return &Message{Role: System, Content: content}
}

func UserMessage(content string) *Message {
	return &Message{Role: User, Content: content}
}

func AssistantMessage(content string, toolCalls []ToolCall) *Message {
	return &Message{Role: Assistant, Content: content, ToolCalls: toolCalls}
}

// ToolMessage builds a tool-result message tied to the given tool-call id.
// The message carries an internal id so the rendering layer skips it.
func ToolMessage(content, toolCallID string) *Message {
	return &Message{
		ID:         NewInternalID(),
		Role:       Tool,
		Content:    content,
		ToolCallID: toolCallID,
	}
}

// NewInternalID returns a fresh non-renderable message id.
func NewInternalID() string {
	return InternalIDPrefix + uuid.NewString()
}

// FindToolCall returns a predicate matching tool calls by name. Absence of a
// match is not an error; callers use FirstToolCall for lookup.
func FindToolCall(name string) func(ToolCall) bool {
	return func(tc ToolCall) bool {
		return tc.Name == name
	}
}

// FirstToolCall finds the first tool call in calls whose name equals name.
func FirstToolCall(calls []ToolCall, name string) (ToolCall, bool) {
	match := FindToolCall(name)
	for _, tc := range calls {
		if match(tc) {
			return tc, true
		}
	}
	return ToolCall{}, false
}

// AppendMessages is the reducer for message lists: new messages are
// concatenated to the existing sequence, never replacing it.
func AppendMessages(existing, add []*Message) []*Message {
	if len(add) == 0 {
		return existing
	}
	out := make([]*Message, 0, len(existing)+len(add))
	out = append(out, existing...)
	out = append(out, add...)
	return out
}

// FormatHistory renders the conversation as plain text for inclusion in a
// model prompt. Tool-result messages are included so the model can see the
// outcome of prior calls.
func FormatHistory(messages []*Message) string {
	var b strings.Builder
	for _, msg := range messages {
		if msg == nil {
			continue
		}
		switch msg.Role {
		case User:
			b.WriteString("User: " + msg.Content + "\n")
		case Assistant:
			if msg.Content != "" {
				b.WriteString("Assistant: " + msg.Content + "\n")
			}
			for _, tc := range msg.ToolCalls {
				b.WriteString("Assistant tool call: " + tc.Name + "(" + string(tc.Arguments) + ")\n")
			}
		case Tool:
			b.WriteString("Tool result (" + msg.ToolCallID + "): " + msg.Content + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
