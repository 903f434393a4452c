package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/RafaelAngelo1999/trip-planner-agent/internal/agent/model"
	logx "github.com/RafaelAngelo1999/trip-planner-agent/pkg/logger"
)

// OpenAI adapts the OpenAI chat-completions API to the ChatModel contract.
type OpenAI struct {
	client openai.Client
	cfg    Config
}

// NewOpenAI builds the adapter. BaseURL overrides the API endpoint for
// OpenAI-compatible gateways.
func NewOpenAI(cfg Config) (*OpenAI, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &OpenAI{client: openai.NewClient(opts...), cfg: cfg}, nil
}

// Invoke sends the conversation plus optional tool schemas and maps the
// first choice back into a Message.
func (o *OpenAI) Invoke(ctx context.Context, messages []*model.Message, tools ...model.ToolSchema) (*model.Message, error) {
	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(o.cfg.Model),
		Messages:    toOpenAIMessages(messages),
		Temperature: openai.Float(float64(o.cfg.Temperature)),
	}
	if o.cfg.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(o.cfg.MaxTokens))
	}
	for _, t := range tools {
		params.Tools = append(params.Tools, toOpenAITool(t))
	}

	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai chat completion: no choices returned")
	}

	choice := resp.Choices[0].Message
	out := model.AssistantMessage(choice.Content, nil)
	for i, tc := range choice.ToolCalls {
		id := tc.ID
		if id == "" {
			// Some OpenAI-compatible gateways omit tool call ids.
			id = fmt.Sprintf("call_%d", i+1)
		}
		out.ToolCalls = append(out.ToolCalls, model.ToolCall{
			ID:        id,
			Name:      tc.Function.Name,
			Arguments: []byte(tc.Function.Arguments),
		})
	}

	logx.Debug().
		Str("model", o.cfg.Model).
		Int("tool_count", len(out.ToolCalls)).
		Msg("OpenAI completion received")

	return out, nil
}

func toOpenAIMessages(messages []*model.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		if m == nil {
			continue
		}
		switch m.Role {
		case model.System:
			out = append(out, openai.SystemMessage(m.Content))
		case model.User:
			out = append(out, openai.UserMessage(m.Content))
		case model.Assistant:
			if len(m.ToolCalls) == 0 {
				out = append(out, openai.AssistantMessage(m.Content))
				continue
			}
			assistant := openai.ChatCompletionAssistantMessageParam{}
			if m.Content != "" {
				assistant.Content = openai.ChatCompletionAssistantMessageParamContentUnion{
					OfString: openai.String(m.Content),
				}
			}
			for _, tc := range m.ToolCalls {
				assistant.ToolCalls = append(assistant.ToolCalls, openai.ChatCompletionMessageToolCallParam{
					ID: tc.ID,
					Function: openai.ChatCompletionMessageToolCallFunctionParam{
						Name:      tc.Name,
						Arguments: string(tc.Arguments),
					},
				})
			}
			out = append(out, openai.ChatCompletionMessageParamUnion{OfAssistant: &assistant})
		case model.Tool:
			out = append(out, openai.ToolMessage(m.Content, m.ToolCallID))
		}
	}
	return out
}

func toOpenAITool(t model.ToolSchema) openai.ChatCompletionToolParam {
	return openai.ChatCompletionToolParam{
		Type: "function",
		Function: shared.FunctionDefinitionParam{
			Name:        t.Name,
			Description: openai.String(t.Description),
			Parameters: shared.FunctionParameters{
				"type":       "object",
				"properties": propertiesMap(t.Properties),
				"required":   t.Required,
			},
		},
	}
}

func propertiesMap(props map[string]model.Property) map[string]any {
	out := make(map[string]any, len(props))
	for name, p := range props {
		field := map[string]any{"type": p.Type}
		if p.Description != "" {
			field["description"] = p.Description
		}
		if len(p.Properties) > 0 {
			field["properties"] = propertiesMap(p.Properties)
			if len(p.Required) > 0 {
				field["required"] = p.Required
			}
		}
		out[name] = field
	}
	return out
}
