package model

// ================ Config ================

type ConversationConfig struct {
	TTL string `envconfig:"CONVERSATION_TTL" default:"15m"`
}

type ChatModelConfig struct {
	Provider    string  `envconfig:"LLM_PROVIDER" default:"openai"`
	Model       string  `envconfig:"LLM_MODEL" default:"gpt-4o"`
	Temperature float32 `envconfig:"LLM_TEMPERATURE" default:"0"`
	MaxTokens   int     `envconfig:"LLM_MAX_TOKENS" default:"2000"`
}

type FlightAPIConfig struct {
	BaseURL        string `envconfig:"FLIGHTS_API_BASE_URL" default:"https://trip-planner-backend-three.vercel.app"`
	TimeoutSeconds int    `envconfig:"FLIGHTS_API_TIMEOUT_SECONDS" default:"30"`
}
