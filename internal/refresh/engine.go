package refresh

import (
	"math/rand/v2"
	"time"

	"countrypulse/internal/domain"
)

const (
	multiplierMin = 1000
	multiplierMax = 2000
)

// MultiplierSource draws the per-country GDP multiplier. Injected so tests
// can fix the draw and count calls.
type MultiplierSource interface {
	Multiplier() int
}

type randomMultiplier struct{}

func (randomMultiplier) Multiplier() int {
	return rand.IntN(multiplierMax-multiplierMin+1) + multiplierMin
}

func NewMultiplierSource() MultiplierSource { return randomMultiplier{} }

// Reconcile merges one raw country with the rate table into a finalized row.
// Pure apart from the multiplier draw, which happens only when a valid
// non-zero rate exists. refreshedAt is the orchestrator-supplied instant,
// identical for every record of a batch.
//
// Missing-data policy:
//   - no currency code:        rate nil, gdp 0
//   - code unknown to table:   rate nil, gdp nil
//   - rate is zero:            rate 0, gdp nil
//   - otherwise:               gdp = population * multiplier / rate
func Reconcile(raw domain.RawCountry, rates map[string]float64, refreshedAt time.Time, multipliers MultiplierSource) domain.Country {
	rec := domain.Country{
		Name:            raw.Name,
		Population:      raw.Population,
		LastRefreshedAt: refreshedAt,
	}
	if raw.Capital != "" {
		rec.Capital = &raw.Capital
	}
	if raw.Region != "" {
		rec.Region = &raw.Region
	}
	if raw.Flag != "" {
		rec.FlagURL = &raw.Flag
	}

	code := raw.CurrencyCode()
	if code == "" {
		zero := 0.0
		rec.EstimatedGDP = &zero
		return rec
	}
	rec.CurrencyCode = &code

	rate, ok := rates[code]
	if !ok {
		return rec
	}
	rec.ExchangeRate = &rate
	if rate == 0 {
		return rec
	}

	gdp := float64(raw.Population) * float64(multipliers.Multiplier()) / rate
	rec.EstimatedGDP = &gdp
	return rec
}
