package flights

import "github.com/RafaelAngelo1999/trip-planner-agent/internal/agent/model"

// Extraction tool names. The model is offered exactly one of these per
// extraction node and either calls it or answers with a clarification.
const (
	toolExtractSearch  = "extract_flight_search"
	toolExtractBooking = "extract_flight_booking"
	toolExtractCancel  = "extract_flight_cancellation"
)

// Domain tool names offered to the model at invocation time.
const (
	toolListFlights  = "list-flights"
	toolBookFlight   = "book-flight"
	toolCancelFlight = "cancel-flight"
)

var searchExtractionSchema = model.ToolSchema{
	Name:        toolExtractSearch,
	Description: "Extracts flight search parameters from user conversation with intelligent defaults and validation.",
	Properties: map[string]model.Property{
		"origin":       {Type: "string", Description: "Origin city or airport"},
		"destination":  {Type: "string", Description: "Destination city or airport"},
		"departDate":   {Type: "string", Description: "Departure date in YYYY-MM-DD format"},
		"returnDate":   {Type: "string", Description: "Return date in YYYY-MM-DD format"},
		"adults":       {Type: "number", Description: "Number of adult passengers"},
		"directOnly":   {Type: "boolean", Description: "Preference for direct flights"},
		"withBaggage":  {Type: "boolean", Description: "Include baggage"},
		"cheapestOnly": {Type: "boolean", Description: "Search for cheapest flights only"},
	},
	Required: []string{"origin", "destination"},
}

var bookingExtractionSchema = model.ToolSchema{
	Name:        toolExtractBooking,
	Description: "Extracts flight booking parameters from the user's conversation.",
	Properties: map[string]model.Property{
		"itineraryId": {Type: "string", Description: "Itinerary ID of the flight to be booked"},
		"fullName":    {Type: "string", Description: "Full name of the passenger"},
		"email":       {Type: "string", Description: "Email address of the passenger"},
	},
	Required: []string{"itineraryId", "fullName", "email"},
}

var cancellationExtractionSchema = model.ToolSchema{
	Name:        toolExtractCancel,
	Description: "Extracts flight cancellation parameters from the user's conversation.",
	Properties: map[string]model.Property{
		"pnr": {Type: "string", Description: "PNR code of the booking to be cancelled"},
	},
	Required: []string{"pnr"},
}

var flightToolSchemas = []model.ToolSchema{
	{
		Name:        toolListFlights,
		Description: "Search for available flights based on provided parameters",
		Properties: map[string]model.Property{
			"origin":       {Type: "string", Description: "Origin airport code (e.g., CNF, GRU)"},
			"destination":  {Type: "string", Description: "Destination airport code (e.g., SFO, LAX)"},
			"departDate":   {Type: "string", Description: "Departure date in YYYY-MM-DD format"},
			"returnDate":   {Type: "string", Description: "Return date in YYYY-MM-DD format (optional for one-way flights)"},
			"adults":       {Type: "number", Description: "Number of adults (1-9)"},
			"directOnly":   {Type: "boolean", Description: "Direct flights only (optional, default false)"},
			"withBaggage":  {Type: "boolean", Description: "Include baggage (optional, default false)"},
			"cheapestOnly": {Type: "boolean", Description: "Show cheapest flights only (optional, default false)"},
		},
		Required: []string{"origin", "destination", "departDate", "adults"},
	},
	{
		Name:        toolBookFlight,
		Description: "Book a flight based on the selected itinerary",
		Properties: map[string]model.Property{
			"itineraryId": {Type: "string", Description: "Itinerary ID of the flight to be booked"},
			"passenger": {
				Type:        "object",
				Description: "Main passenger information",
				Properties: map[string]model.Property{
					"fullName": {Type: "string", Description: "Full name of the passenger"},
					"email":    {Type: "string", Description: "Email address of the passenger"},
				},
				Required: []string{"fullName", "email"},
			},
		},
		Required: []string{"itineraryId", "passenger"},
	},
	{
		Name:        toolCancelFlight,
		Description: "Cancel a flight booking based on the PNR code",
		Properties: map[string]model.Property{
			"pnr": {Type: "string", Description: "PNR code of the booking to be cancelled"},
		},
		Required: []string{"pnr"},
	},
}
