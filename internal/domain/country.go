package domain

import (
	"time"
)

// Country is one reconciled row, keyed by name compared case-insensitively.
type Country struct {
	ID              int64
	Name            string
	Capital         *string
	Region          *string
	Population      int64
	CurrencyCode    *string
	ExchangeRate    *float64
	EstimatedGDP    *float64
	FlagURL         *string
	LastRefreshedAt time.Time
}

// RawCurrency is one entry of the countries source's currency list.
type RawCurrency struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// RawCountry is the validated shape of one record from the countries source.
type RawCountry struct {
	Name       string        `json:"name"`
	Capital    string        `json:"capital"`
	Region     string        `json:"region"`
	Population int64         `json:"population"`
	Flag       string        `json:"flag"`
	Currencies []RawCurrency `json:"currencies"`
}

// CurrencyCode returns the code of the first currency entry, or "" when the
// list is empty or the first entry carries no code.
func (r RawCountry) CurrencyCode() string {
	if len(r.Currencies) == 0 {
		return ""
	}
	return r.Currencies[0].Code
}

// RefreshResult is the terminal success outcome of one refresh run.
type RefreshResult struct {
	Total           int64
	LastRefreshedAt string
}

// CountrySort orders a country listing by estimated GDP.
type CountrySort string

const (
	SortNone    CountrySort = ""
	SortGDPAsc  CountrySort = "gdp_asc"
	SortGDPDesc CountrySort = "gdp_desc"
)

// CountryFilter narrows a country listing. Empty fields match everything.
type CountryFilter struct {
	Region       string
	CurrencyCode string
	Sort         CountrySort
}
