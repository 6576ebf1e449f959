package country

import (
	"time"

	"countrypulse/internal/domain"
)

type View struct {
	Name            string    `json:"name"`
	Capital         *string   `json:"capital"`
	Region          *string   `json:"region"`
	Population      int64     `json:"population"`
	CurrencyCode    *string   `json:"currency_code"`
	ExchangeRate    *float64  `json:"exchange_rate"`
	EstimatedGDP    *float64  `json:"estimated_gdp"`
	FlagURL         *string   `json:"flag_url"`
	LastRefreshedAt time.Time `json:"last_refreshed_at"`
}

func NewView(c domain.Country) View {
	return View{
		Name:            c.Name,
		Capital:         c.Capital,
		Region:          c.Region,
		Population:      c.Population,
		CurrencyCode:    c.CurrencyCode,
		ExchangeRate:    c.ExchangeRate,
		EstimatedGDP:    c.EstimatedGDP,
		FlagURL:         c.FlagURL,
		LastRefreshedAt: c.LastRefreshedAt,
	}
}

func NewViews(countries []domain.Country) []View {
	views := make([]View, 0, len(countries))
	for _, c := range countries {
		views = append(views, NewView(c))
	}
	return views
}

// Status is the aggregate state of the store. LastRefreshedAt is nil when no
// refresh has ever succeeded.
type Status struct {
	Total           int64
	LastRefreshedAt *string
}
