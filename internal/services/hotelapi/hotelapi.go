// Package hotelapi implements hotels.Service over a static in-memory
// dataset. The dataset is read-only: every search filters and sorts a copy.
package hotelapi

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/RafaelAngelo1999/trip-planner-agent/internal/agent/hotels"
	logx "github.com/RafaelAngelo1999/trip-planner-agent/pkg/logger"
)

var hotelsDatabase = []hotels.Hotel{
	{
		HotelID:  "bh-001",
		Name:     "Tryp by Wyndham Belo Horizonte Savassi",
		Nightly:  280.0,
		Total:    560.0,
		Rating:   4.6,
		Policy:   "Cancelamento gratuito até 24h antes - Café da manhã incluído",
		Currency: "BRL",
		City:     "Belo Horizonte",
		Image:    "https://images.unsplash.com/photo-1566073771259-6a8506099945?w=400",
	},
	{
		HotelID:  "bh-002",
		Name:     "Radisson Blu Belo Horizonte",
		Nightly:  320.0,
		Total:    640.0,
		Rating:   4.5,
		Policy:   "Cancelamento gratuito até 48h antes",
		Currency: "BRL",
		City:     "Belo Horizonte",
		Image:    "https://images.unsplash.com/photo-1571003123894-1f0594d2b5d9?w=400",
	},
	{
		HotelID:  "bh-003",
		Name:     "Holiday Inn Express Belo Horizonte Afonso Pena",
		Nightly:  195.0,
		Total:    390.0,
		Rating:   4.2,
		Policy:   "Cancelamento gratuito até 24h antes - Café da manhã incluído",
		Currency: "BRL",
		City:     "Belo Horizonte",
		Image:    "https://images.unsplash.com/photo-1551882547-ff40c63fe5fa?w=400",
	},
	{
		HotelID:  "bh-004",
		Name:     "Mercure Belo Horizonte Vila da Serra",
		Nightly:  380.0,
		Total:    760.0,
		Rating:   4.7,
		Policy:   "Cancelamento gratuito até 72h antes",
		Currency: "BRL",
		City:     "Belo Horizonte",
		Image:    "https://images.unsplash.com/photo-1520250497591-112f2f40a3f4?w=400",
	},
	{
		HotelID:  "bh-005",
		Name:     "ibis Belo Horizonte Liberdade",
		Nightly:  140.0,
		Total:    280.0,
		Rating:   3.9,
		Policy:   "Cancelamento gratuito até 18h do dia da chegada",
		Currency: "BRL",
		City:     "Belo Horizonte",
		Image:    "https://images.unsplash.com/photo-1582719478250-c89cae4dc85b?w=400",
	},
	{
		HotelID:  "bh-006",
		Name:     "Hotel Fasano Belo Horizonte",
		Nightly:  650.0,
		Total:    1300.0,
		Rating:   4.9,
		Policy:   "Não reembolsável - Serviço de concierge 24h",
		Currency: "BRL",
		City:     "Belo Horizonte",
		Image:    "https://images.unsplash.com/photo-1590490360182-c33d57733427?w=400",
	},
	{
		HotelID:  "bh-007",
		Name:     "Quality Hotel Afonso Pena",
		Nightly:  165.0,
		Total:    330.0,
		Rating:   4.1,
		Policy:   "Cancelamento gratuito até 24h antes",
		Currency: "BRL",
		City:     "Belo Horizonte",
		Image:    "https://images.unsplash.com/photo-1566073771259-6a8506099945?w=400",
	},
	{
		HotelID:  "sfo-001",
		Name:     "Grand Hyatt San Francisco",
		Nightly:  350.0,
		Total:    3150.0,
		Rating:   4.5,
		Policy:   "Cancelamento gratuito até 24h antes",
		Currency: "USD",
		City:     "San Francisco",
		Image:    "https://images.unsplash.com/photo-1566073771259-6a8506099945?w=400",
	},
	{
		HotelID:  "sfo-002",
		Name:     "Hotel Zephyr San Francisco",
		Nightly:  280.0,
		Total:    2520.0,
		Rating:   4.2,
		Policy:   "Cancelamento gratuito até 48h antes",
		Currency: "USD",
		City:     "San Francisco",
		Image:    "https://images.unsplash.com/photo-1571003123894-1f0594d2b5d9?w=400",
	},
	{
		HotelID:  "sfo-003",
		Name:     "The Ritz-Carlton San Francisco",
		Nightly:  650.0,
		Total:    5850.0,
		Rating:   4.8,
		Policy:   "Não reembolsável",
		Currency: "USD",
		City:     "San Francisco",
		Image:    "https://images.unsplash.com/photo-1551882547-ff40c63fe5fa?w=400",
	},
}

// Service is the in-memory hotel search backend.
type Service struct {
	delay time.Duration
	sleep func(time.Duration)
}

// Option customizes a Service.
type Option func(*Service)

// WithDelay sets the simulated API latency per call.
func WithDelay(d time.Duration) Option {
	return func(s *Service) { s.delay = d }
}

// WithSleep replaces the sleep function for tests.
func WithSleep(sleep func(time.Duration)) Option {
	return func(s *Service) { s.sleep = sleep }
}

// New builds the hotel service with the stock 600ms simulated latency.
func New(opts ...Option) *Service {
	s := &Service{
		delay: 600 * time.Millisecond,
		sleep: time.Sleep,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListHotels filters the dataset by city and policy preferences, reprices
// each hotel for the actual number of nights, and sorts by rating descending.
func (s *Service) ListHotels(ctx context.Context, params hotels.SearchParams) ([]hotels.Hotel, error) {
	if s.delay > 0 {
		s.sleep(s.delay)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	nights := calculateNights(params.Checkin, params.Checkout)
	city := strings.ToLower(params.City)

	results := make([]hotels.Hotel, 0, len(hotelsDatabase))
	for _, h := range hotelsDatabase {
		hotelCity := strings.ToLower(h.City)
		if !strings.Contains(hotelCity, city) && !strings.Contains(city, hotelCity) {
			continue
		}
		h.Total = h.Nightly * float64(nights)
		results = append(results, h)
	}

	if params.WithBreakfast {
		results = keep(results, func(h hotels.Hotel) bool {
			policy := strings.ToLower(h.Policy)
			return strings.Contains(policy, "café da manhã") || strings.Contains(policy, "breakfast")
		})
	}
	if params.RefundableOnly {
		results = keep(results, func(h hotels.Hotel) bool {
			policy := strings.ToLower(h.Policy)
			return strings.Contains(policy, "cancelamento gratuito") || strings.Contains(policy, "free cancellation")
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Rating > results[j].Rating
	})

	logx.Debug().Str("city", params.City).Int("nights", nights).Int("results", len(results)).Msg("Hotel search complete")
	return results, nil
}

// calculateNights rounds the stay length up to whole nights. Unparseable
// dates count as a zero-length stay.
func calculateNights(checkin, checkout string) int {
	in, err := time.Parse("2006-01-02", checkin)
	if err != nil {
		return 0
	}
	out, err := time.Parse("2006-01-02", checkout)
	if err != nil {
		return 0
	}
	return int(math.Ceil(out.Sub(in).Hours() / 24))
}

func keep(items []hotels.Hotel, pred func(hotels.Hotel) bool) []hotels.Hotel {
	out := items[:0]
	for _, h := range items {
		if pred(h) {
			out = append(out, h)
		}
	}
	return out
}

var _ hotels.Service = (*Service)(nil)
