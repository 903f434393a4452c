// Package llm provides ChatModel adapters over the supported model-serving
// clients. The graph core only sees the model.ChatModel contract; provider
// choice is configuration.
package llm

import (
	"context"
	"fmt"

	"github.com/RafaelAngelo1999/trip-planner-agent/internal/agent/model"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Config holds everything needed to construct a provider-backed ChatModel.
type Config struct {
	Provider    string
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	MaxTokens   int
}

// New builds the ChatModel for the configured provider.
func New(ctx context.Context, cfg Config) (model.ChatModel, error) {
	switch cfg.Provider {
	case ProviderOpenAI, "":
		return NewOpenAI(cfg)
	case ProviderGemini:
		return NewGemini(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
