package hotels

import "context"

// Hotel is a single search result, priced for the full stay.
type Hotel struct {
	HotelID  string  `json:"hotelId"`
	Name     string  `json:"name"`
	Nightly  float64 `json:"nightly"`
	Total    float64 `json:"total"`
	Rating   float64 `json:"rating"`
	Policy   string  `json:"policy"`
	Currency string  `json:"currency"`
	City     string  `json:"city"`
	Image    string  `json:"image,omitempty"`
}

// SearchParams are the validated hotel-search parameters. City is required;
// dates are YYYY-MM-DD; rooms is clamped to 1 through 10.
type SearchParams struct {
	City           string `json:"city"`
	Checkin        string `json:"checkin"`
	Checkout       string `json:"checkout"`
	Rooms          int    `json:"rooms"`
	WithBreakfast  bool   `json:"withBreakfast"`
	RefundableOnly bool   `json:"refundableOnly"`
}

// Service exposes the external hotel search function.
type Service interface {
	ListHotels(ctx context.Context, params SearchParams) ([]Hotel, error)
}

// ComponentHotelsList is the UI component rendered for search results.
const ComponentHotelsList = "hotels-list"

type HotelsListProps struct {
	ToolCallID   string       `json:"toolCallId"`
	Hotels       []Hotel      `json:"hotels"`
	SearchParams SearchParams `json:"searchParams"`
}
