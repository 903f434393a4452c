package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/RafaelAngelo1999/trip-planner-agent/internal/agent/model"
	logx "github.com/RafaelAngelo1999/trip-planner-agent/pkg/logger"
)

// Gemini adapts the Google GenAI API to the ChatModel contract.
type Gemini struct {
	client *genai.Client
	cfg    Config
}

// NewGemini builds the adapter against the Gemini API backend.
func NewGemini(ctx context.Context, cfg Config) (*Gemini, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = cfg.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}
	return &Gemini{client: client, cfg: cfg}, nil
}

// Invoke sends the conversation plus optional tool schemas and maps the
// first candidate back into a Message.
func (g *Gemini) Invoke(ctx context.Context, messages []*model.Message, tools ...model.ToolSchema) (*model.Message, error) {
	system, contents := toGeminiContents(messages)

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(g.cfg.Temperature),
	}
	if g.cfg.MaxTokens > 0 {
		config.MaxOutputTokens = int32(g.cfg.MaxTokens)
	}
	if system != "" {
		config.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}
	if len(tools) > 0 {
		decls := make([]*genai.FunctionDeclaration, 0, len(tools))
		for _, t := range tools {
			decls = append(decls, toGeminiFunction(t))
		}
		config.Tools = []*genai.Tool{{FunctionDeclarations: decls}}
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.cfg.Model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("gemini generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("gemini generate content: empty response")
	}

	var text strings.Builder
	out := model.AssistantMessage("", nil)
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil {
			continue
		}
		if part.Text != "" {
			text.WriteString(part.Text)
		}
		if part.FunctionCall != nil {
			args, err := json.Marshal(part.FunctionCall.Args)
			if err != nil {
				return nil, fmt.Errorf("marshal function call args: %w", err)
			}
			id := part.FunctionCall.ID
			if id == "" {
				// Gemini omits function-call ids; synthesize a local one.
				id = fmt.Sprintf("call_%d", len(out.ToolCalls)+1)
			}
			out.ToolCalls = append(out.ToolCalls, model.ToolCall{
				ID:        id,
				Name:      part.FunctionCall.Name,
				Arguments: args,
			})
		}
	}
	out.Content = text.String()

	logx.Debug().
		Str("model", g.cfg.Model).
		Int("tool_count", len(out.ToolCalls)).
		Msg("Gemini completion received")

	return out, nil
}

// toGeminiContents splits out system prompts (Gemini carries them as a
// system instruction, not a turn) and renders the remaining history.
func toGeminiContents(messages []*model.Message) (string, []*genai.Content) {
	var system strings.Builder
	contents := make([]*genai.Content, 0, len(messages))

	for _, m := range messages {
		if m == nil {
			continue
		}
		switch m.Role {
		case model.System:
			if system.Len() > 0 {
				system.WriteString("\n\n")
			}
			system.WriteString(m.Content)
		case model.User:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		case model.Assistant:
			parts := make([]*genai.Part, 0, 1+len(m.ToolCalls))
			if m.Content != "" {
				parts = append(parts, genai.NewPartFromText(m.Content))
			}
			for _, tc := range m.ToolCalls {
				var args map[string]any
				if len(tc.Arguments) > 0 {
					_ = json.Unmarshal(tc.Arguments, &args)
				}
				parts = append(parts, genai.NewPartFromFunctionCall(tc.Name, args))
			}
			if len(parts) > 0 {
				contents = append(contents, genai.NewContentFromParts(parts, genai.RoleModel))
			}
		case model.Tool:
			// Tool results travel as plain user-visible context; Gemini keys
			// function responses by name, which tool messages don't carry.
			contents = append(contents, genai.NewContentFromText("Tool result: "+m.Content, genai.RoleUser))
		}
	}
	return system.String(), contents
}

func toGeminiFunction(t model.ToolSchema) *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        t.Name,
		Description: t.Description,
		Parameters: &genai.Schema{
			Type:       genai.TypeObject,
			Properties: toGeminiProperties(t.Properties),
			Required:   t.Required,
		},
	}
}

func toGeminiProperties(props map[string]model.Property) map[string]*genai.Schema {
	out := make(map[string]*genai.Schema, len(props))
	for name, p := range props {
		s := &genai.Schema{Description: p.Description}
		switch p.Type {
		case "string":
			s.Type = genai.TypeString
		case "number":
			s.Type = genai.TypeNumber
		case "integer":
			s.Type = genai.TypeInteger
		case "boolean":
			s.Type = genai.TypeBoolean
		case "object":
			s.Type = genai.TypeObject
			s.Properties = toGeminiProperties(p.Properties)
			s.Required = p.Required
		default:
			s.Type = genai.TypeString
		}
		out[name] = s
	}
	return out
}
