package hotels

import "github.com/RafaelAngelo1999/trip-planner-agent/internal/agent/model"

const (
	toolExtractSearch = "extract_hotel_search"
	toolListHotels    = "list-hotels"
)

var searchExtractionSchema = model.ToolSchema{
	Name:        toolExtractSearch,
	Description: "Extract hotel search parameters from user conversation.",
	Properties: map[string]model.Property{
		"city":           {Type: "string", Description: "City where to search for hotels"},
		"checkin":        {Type: "string", Description: "Check-in date in YYYY-MM-DD format"},
		"checkout":       {Type: "string", Description: "Check-out date in YYYY-MM-DD format"},
		"rooms":          {Type: "number", Description: "Number of desired rooms"},
		"withBreakfast":  {Type: "boolean", Description: "Preference for included breakfast"},
		"refundableOnly": {Type: "boolean", Description: "Preference for free cancellation"},
	},
	Required: []string{"city"},
}

var hotelToolSchemas = []model.ToolSchema{
	{
		Name:        toolListHotels,
		Description: "Search available hotels based on provided parameters",
		Properties: map[string]model.Property{
			"city":           {Type: "string", Description: "City where to search for hotels"},
			"checkin":        {Type: "string", Description: "Check-in date in YYYY-MM-DD format"},
			"checkout":       {Type: "string", Description: "Check-out date in YYYY-MM-DD format"},
			"rooms":          {Type: "number", Description: "Number of rooms (1-10)"},
			"withBreakfast":  {Type: "boolean", Description: "Include breakfast (optional, default false)"},
			"refundableOnly": {Type: "boolean", Description: "Only bookings with free cancellation (optional, default false)"},
		},
		Required: []string{"city", "checkin", "checkout", "rooms"},
	},
}
