package flights

import (
	"context"
	"fmt"
	"strings"

	"github.com/RafaelAngelo1999/trip-planner-agent/internal/agent/dates"
	"github.com/RafaelAngelo1999/trip-planner-agent/internal/agent/model"
	logx "github.com/RafaelAngelo1999/trip-planner-agent/pkg/logger"
)

const (
	searchExtractionPrompt = `You are an expert AI assistant specialized in flight booking and parameter extraction with deep understanding of travel industry standards.

TASK: Extract comprehensive flight search parameters from user conversation with intelligent interpretation and validation.

REQUIRED PARAMETERS TO EXTRACT:
- origin: Origin airport code (REQUIRED)
  * MUST convert city names to 3-letter IATA airport codes
  * Examples: "Belo Horizonte" → "CNF", "São Paulo" → "GRU", "New York" → "JFK"
  * Common conversions: Rio de Janeiro→GIG, San Francisco→SFO, Los Angeles→LAX, Miami→MIA

- destination: Destination airport code (REQUIRED)
  * MUST convert city names to 3-letter IATA airport codes
  * Same conversion rules as origin
  * Always return the official IATA code, not city names

OPTIONAL PARAMETERS TO EXTRACT:
- departDate: Departure date in YYYY-MM-DD format
  * Parse natural language: "next week", "tomorrow", "December 15th"
  * Convert relative dates to absolute dates

- returnDate: Return date in YYYY-MM-DD format (for round-trip flights)
  * Only extract if user mentions return/round-trip travel

- adults: Number of adult passengers (default: 1)
  * Parse: "for two people", "3 passengers", "family of 4"

- directOnly: Boolean - user preference for direct flights only
  * Keywords: "direct", "non-stop", "no connections", "straight flight"

- withBaggage: Boolean - user wants flights with baggage included
  * Keywords: "with luggage", "baggage included", "checked bags"

- cheapestOnly: Boolean - user wants only the cheapest options
  * Keywords: "cheapest", "lowest price", "budget", "economical"

EXTRACTION GUIDELINES:
- Analyze the COMPLETE conversation history for context
- DO NOT invent or assume information not provided by the user
- If origin AND destination are NOT specified, respond with a request for these mandatory fields
- Use this exact format: "Please specify both origin and destination cities for your flight search."
- Extract only what the user explicitly mentioned
- Leave optional fields empty if not specified
- Be intelligent about date parsing and location recognition

AIRPORT CODE CONVERSION RULES:
- ALWAYS convert city names to official 3-letter IATA codes
- Common Brazilian airports: Belo Horizonte→CNF, São Paulo→GRU, Rio de Janeiro→GIG, Santos Dumont→SDU
- Common International airports: New York→JFK, San Francisco→SFO, Los Angeles→LAX, Miami→MIA, Houston→IAH
- If you receive an airport code already, keep it as is
- If uncertain about a code, use your knowledge of major airports worldwide

Conversation History Analysis:
`

	bookingExtractionPrompt = `You are an AI assistant specialized in flight booking. The user wants to book a specific flight.
Extract the following required information from the user's conversation:

REQUIRED PARAMETERS:
- itineraryId: The unique identifier of the flight itinerary to be booked
  * Should be extracted from previous flight search results shown to the user
  * Usually appears when user selects a specific flight from search results
  * Format: typically alphanumeric string (e.g., "FLT-ABC123", "ITIN-789")

- fullName: Complete passenger name for the booking
  * Must include first name and last name
  * Should match official travel document format
  * Examples: "John Smith", "Maria Silva Santos", "Jean-Pierre Dubois"

- email: Valid email address for booking confirmation
  * Required for sending booking confirmation and tickets
  * Must be in valid email format (user@domain.com)
  * Will be used for future booking management

EXTRACTION GUIDELINES:
1. Analyze the COMPLETE conversation history to find all required information
2. Look for flight selection context (which specific flight the user chose)
3. Check for passenger details provided in current or previous messages
4. Validate that all three parameters are present and properly formatted

VALIDATION RULES:
- Never invent or assume missing information
- If any required parameter is missing, do not extract - instead respond asking for it
- Ensure itineraryId corresponds to a flight shown in previous search results
- Verify email format is valid before extraction
- Confirm fullName contains both first and last name components

If any required information is missing, respond with a helpful message requesting the specific missing details.
Example: "To complete your flight booking, I need your full name and email address. Please provide these details."

Here is the complete conversation so far:
`

	cancellationExtractionPrompt = `You are an AI assistant specialized in flight cancellations. The user wants to cancel a flight booking.
Extract the following required information from the user's conversation:

REQUIRED PARAMETER:
- pnr: The PNR (Passenger Name Record) code of the booking to be cancelled
  * Also known as booking reference, confirmation code, or reservation code
  * Usually alphanumeric, typically 6 characters (e.g., "ABC123", "XYZ789")
  * May appear in various formats: with or without hyphens/spaces
  * Examples: "ABCD12", "AB-123C", "PNR123", "CONF456"

EXTRACTION GUIDELINES:
1. Analyze the COMPLETE conversation history to find the PNR code
2. Look for booking confirmation messages or previous booking references
3. Check if the user mentioned a confirmation code, booking reference, or PNR
4. The PNR might be provided in the current message or found in booking confirmations

PNR IDENTIFICATION PATTERNS:
- Direct mention: "My PNR is ABC123" or "Cancel booking ABC123"
- From booking confirmation: Previous booking confirmations in the conversation
- Indirect reference: "Cancel my flight" (look for PNR in booking history)
- Format variations: Handle spaces, hyphens, and different case formats

VALIDATION RULES:
- Never invent or generate a PNR code
- If no PNR is found in the conversation, do not extract - ask for it instead
- Ensure the PNR format appears valid (alphanumeric, appropriate length)
- Confirm the PNR corresponds to an existing booking context in the conversation

If the PNR is not provided or cannot be found, respond asking for this information.
Example: "To cancel your flight booking, I need your PNR (booking confirmation code). Please provide your 6-character booking reference."

Here is the complete conversation so far:
`
)

type searchArgs struct {
	Origin       string `json:"origin"`
	Destination  string `json:"destination"`
	DepartDate   string `json:"departDate"`
	ReturnDate   string `json:"returnDate"`
	Adults       int    `json:"adults"`
	DirectOnly   bool   `json:"directOnly"`
	WithBaggage  bool   `json:"withBaggage"`
	CheapestOnly bool   `json:"cheapestOnly"`
}

// ExtractSearch asks the model for search parameters and validates them. The
// extracted slot is only written when origin and destination are both present.
func (n *nodes) ExtractSearch(ctx context.Context, state State) (Update, error) {
	resp, err := n.model.Invoke(ctx, []*model.Message{
		model.SystemMessage(searchExtractionPrompt + model.FormatHistory(state.Messages)),
	}, searchExtractionSchema)
	if err != nil {
		if n.strict {
			return Update{}, err
		}
		logx.Warn().Err(err).Msg("flight search extraction model call failed")
		return modelFailureUpdate(), nil
	}

	tc, ok := model.FirstToolCall(resp.ToolCalls, toolExtractSearch)
	if !ok {
		if len(resp.ToolCalls) > 0 {
			results := placeholderResults(resp.ToolCalls, "Tool call processed - no extraction needed")
			return Update{Messages: append([]*model.Message{resp}, results...)}, nil
		}
		return Update{Messages: []*model.Message{resp}}, nil
	}

	args, err := decodeArgs[searchArgs](tc)
	if err != nil {
		return Update{Messages: toolFailureResults(resp, tc.ID, err)}, nil
	}

	if strings.TrimSpace(args.Origin) == "" || strings.TrimSpace(args.Destination) == "" {
		return Update{Messages: []*model.Message{
			resp,
			model.ToolMessage("Origin and destination cities were not specified in the request", tc.ID),
		}}, nil
	}

	depart, ret := dates.InferRange(n.now(), args.DepartDate, args.ReturnDate)
	adults := args.Adults
	if adults <= 0 {
		adults = 1
	}

	params := &SearchParams{
		Origin:       args.Origin,
		Destination:  args.Destination,
		DepartDate:   depart,
		ReturnDate:   ret,
		Adults:       adults,
		DirectOnly:   args.DirectOnly,
		WithBaggage:  args.WithBaggage,
		CheapestOnly: args.CheapestOnly,
	}

	return Update{
		Messages: []*model.Message{
			resp,
			model.ToolMessage("Flight search parameters successfully extracted and validated", tc.ID),
		},
		SearchParams: params,
	}, nil
}

type bookingArgs struct {
	ItineraryID string `json:"itineraryId"`
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
}

// ExtractBooking asks the model for booking parameters. All three fields are
// required before the booking tool may run.
func (n *nodes) ExtractBooking(ctx context.Context, state State) (Update, error) {
	resp, err := n.model.Invoke(ctx, []*model.Message{
		model.SystemMessage(bookingExtractionPrompt + model.FormatHistory(state.Messages)),
	}, bookingExtractionSchema)
	if err != nil {
		if n.strict {
			return Update{}, err
		}
		logx.Warn().Err(err).Msg("flight booking extraction model call failed")
		return modelFailureUpdate(), nil
	}

	tc, ok := model.FirstToolCall(resp.ToolCalls, toolExtractBooking)
	if !ok {
		if len(resp.ToolCalls) > 0 {
			results := placeholderResults(resp.ToolCalls, "Tool call processed - no extraction needed")
			return Update{Messages: append([]*model.Message{resp}, results...)}, nil
		}
		return Update{Messages: []*model.Message{resp}}, nil
	}

	args, err := decodeArgs[bookingArgs](tc)
	if err != nil {
		return Update{Messages: toolFailureResults(resp, tc.ID, err)}, nil
	}

	var missing []string
	if strings.TrimSpace(args.ItineraryID) == "" {
		missing = append(missing, "itineraryId")
	}
	if strings.TrimSpace(args.FullName) == "" {
		missing = append(missing, "fullName")
	}
	if strings.TrimSpace(args.Email) == "" {
		missing = append(missing, "email")
	}
	if len(missing) > 0 {
		return Update{Messages: []*model.Message{
			resp,
			model.ToolMessage(fmt.Sprintf("Missing required fields for booking: %s", strings.Join(missing, ", ")), tc.ID),
		}}, nil
	}

	return Update{
		Messages: []*model.Message{
			resp,
			model.ToolMessage("Flight booking parameters successfully extracted and validated", tc.ID),
		},
		BookingParams: &BookingExtraction{
			ItineraryID: args.ItineraryID,
			FullName:    args.FullName,
			Email:       args.Email,
		},
	}, nil
}

type cancellationArgs struct {
	PNR string `json:"pnr"`
}

// ExtractCancellation asks the model for the PNR. A missing PNR short
// circuits the turn with a clarification instead of calling the tool.
func (n *nodes) ExtractCancellation(ctx context.Context, state State) (Update, error) {
	resp, err := n.model.Invoke(ctx, []*model.Message{
		model.SystemMessage(cancellationExtractionPrompt + model.FormatHistory(state.Messages)),
	}, cancellationExtractionSchema)
	if err != nil {
		if n.strict {
			return Update{}, err
		}
		logx.Warn().Err(err).Msg("flight cancellation extraction model call failed")
		return modelFailureUpdate(), nil
	}

	tc, ok := model.FirstToolCall(resp.ToolCalls, toolExtractCancel)
	if !ok {
		if len(resp.ToolCalls) > 0 {
			results := placeholderResults(resp.ToolCalls, "Tool call processed - no extraction needed")
			return Update{Messages: append([]*model.Message{resp}, results...)}, nil
		}
		return Update{Messages: []*model.Message{resp}}, nil
	}

	args, err := decodeArgs[cancellationArgs](tc)
	if err != nil {
		return Update{Messages: toolFailureResults(resp, tc.ID, err)}, nil
	}

	if strings.TrimSpace(args.PNR) == "" {
		return Update{Messages: []*model.Message{
			resp,
			model.ToolMessage("PNR code was not specified in the request", tc.ID),
		}}, nil
	}

	return Update{
		Messages: []*model.Message{
			resp,
			model.ToolMessage("Flight cancellation parameters successfully extracted and validated", tc.ID),
		},
		CancellationParams: &CancellationParams{PNR: args.PNR},
	}, nil
}
