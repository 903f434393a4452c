package model

import "context"

// Property describes a single field of a tool parameter schema. Nested
// objects carry their own Properties/Required sets.
type Property struct {
	Type        string
	Description string
	Properties  map[string]Property
	Required    []string
}

// ToolSchema names a tool the model may call and the JSON-schema shape of its
// arguments. Adapters translate this neutral form into their provider's
// function-declaration type.
type ToolSchema struct {
	Name        string
	Description string
	Properties  map[string]Property
	Required    []string
}

// ChatModel is the language-model capability consumed by the graph nodes.
// The core supplies a system prompt plus conversation history and, for
// extraction/tool nodes, a set of named tool schemas; it reads back free-text
// content and zero or more proposed tool calls. Model choice, temperature and
// provider are adapter concerns.
type ChatModel interface {
	Invoke(ctx context.Context, messages []*Message, tools ...ToolSchema) (*Message, error)
}
