package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/RafaelAngelo1999/trip-planner-agent/internal/agent"
	"github.com/RafaelAngelo1999/trip-planner-agent/internal/agent/flights"
	"github.com/RafaelAngelo1999/trip-planner-agent/internal/agent/hotels"
	"github.com/RafaelAngelo1999/trip-planner-agent/internal/agent/llm"
	"github.com/RafaelAngelo1999/trip-planner-agent/internal/agent/model"
	"github.com/RafaelAngelo1999/trip-planner-agent/internal/agent/repo"
	"github.com/RafaelAngelo1999/trip-planner-agent/internal/agent/resilience"
	"github.com/RafaelAngelo1999/trip-planner-agent/internal/agent/supervisor"
	"github.com/RafaelAngelo1999/trip-planner-agent/internal/core"
	"github.com/RafaelAngelo1999/trip-planner-agent/internal/services/flightapi"
	"github.com/RafaelAngelo1999/trip-planner-agent/internal/services/hotelapi"
	logx "github.com/RafaelAngelo1999/trip-planner-agent/pkg/logger"
	pkgredis "github.com/RafaelAngelo1999/trip-planner-agent/pkg/redis"
)

// AppConfig defines all configurable parameters for the assistant, sourced
// from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"APP_ENV" default:"development"`

	// Infrastructure
	Redis pkgredis.Config

	// LLM provider
	APIKey  string `envconfig:"LLM_API_KEY" required:"true"`
	BaseURL string `envconfig:"LLM_BASE_URL"`

	// Agent configs
	ChatModel    model.ChatModelConfig
	Conversation model.ConversationConfig
	FlightAPI    model.FlightAPIConfig
	Resilience   resilience.Config
}

func main() {
	fmt.Println("Starting trip planner assistant...")
	ctx := context.Background()

	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	var envCfg AppConfig
	if err := envconfig.Process("", &envCfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	logx.Init(logx.Opts{
		Environment: core.ParseEnvironment(envCfg.Environment),
		Service:     "trip-planner-agent",
	})

	rdb, err := envCfg.Redis.New(ctx)
	if err != nil {
		log.Fatalf("Failed to initialise Redis client: %v", err)
	}
	defer rdb.Close()

	fmt.Println("Connected to Redis successfully")

	ttl, err := time.ParseDuration(envCfg.Conversation.TTL)
	if err != nil {
		log.Fatalf("Invalid CONVERSATION_TTL '%s': %v", envCfg.Conversation.TTL, err)
	}
	conversations := repo.NewRedisConversationRepository(rdb, ttl)

	chatModel, err := llm.New(ctx, llm.Config{
		Provider:    envCfg.ChatModel.Provider,
		APIKey:      envCfg.APIKey,
		BaseURL:     envCfg.BaseURL,
		Model:       envCfg.ChatModel.Model,
		Temperature: envCfg.ChatModel.Temperature,
		MaxTokens:   envCfg.ChatModel.MaxTokens,
	})
	if err != nil {
		log.Fatalf("Failed to build chat model: %v", err)
	}

	flightService := flightapi.New(envCfg.FlightAPI, resilience.New(envCfg.Resilience))
	hotelService := hotelapi.New()

	flightsGraph, err := flights.NewGraph(flights.Config{Model: chatModel, Service: flightService})
	if err != nil {
		log.Fatalf("Failed to build flights graph: %v", err)
	}
	hotelsGraph, err := hotels.NewGraph(hotels.Config{Model: chatModel, Service: hotelService})
	if err != nil {
		log.Fatalf("Failed to build hotels graph: %v", err)
	}
	supervisorGraph, err := supervisor.NewGraph(supervisor.Config{
		Model:   chatModel,
		Flights: flightsGraph,
		Hotels:  hotelsGraph,
	})
	if err != nil {
		log.Fatalf("Failed to build supervisor graph: %v", err)
	}

	assistant := agent.NewAssistant(supervisorGraph, conversations)

	testQueries := []struct {
		description string
		query       string
	}{
		{
			description: "General greeting",
			query:       "Hi! What can you help me with?",
		},
		{
			description: "Flight search",
			query:       "I want to find flights from CNF to GRU next month",
		},
		{
			description: "Hotel search",
			query:       "Now find me hotels in Belo Horizonte with breakfast included",
		},
	}

	conversationID := "demo-conversation-001"

	for i, test := range testQueries {
		fmt.Printf("\nTest %d: %s\n", i+1, test.description)
		fmt.Printf("Query: %q\n", test.query)
		fmt.Println("Processing...")

		result, err := assistant.ProcessTurn(ctx, conversationID, test.query)
		if err != nil {
			log.Fatalf("Failed to process turn %d: %v", i+1, err)
		}

		fmt.Printf("Response %d: %s\n", i+1, result.Reply)
		for _, directive := range result.UI {
			fmt.Printf("UI directive: %s (id=%s)\n", directive.ComponentName, directive.ID)
		}
		fmt.Println("------------------------------------------------")

		// slight delay between turns for readability
		time.Sleep(500 * time.Millisecond)
	}

	fmt.Println("All turns completed successfully")
}
